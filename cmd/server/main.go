package main

import (
	"context"
	"flag"
	"time"

	"github.com/baguioroutes/roadadvisor/pkg/advisor"
	"github.com/baguioroutes/roadadvisor/pkg/http"
	"github.com/baguioroutes/roadadvisor/pkg/http/router/controllers"
	"github.com/baguioroutes/roadadvisor/pkg/http/usecases"
	"github.com/baguioroutes/roadadvisor/pkg/logger"
	"github.com/baguioroutes/roadadvisor/pkg/matcher"
	"github.com/baguioroutes/roadadvisor/pkg/planner"
	"github.com/baguioroutes/roadadvisor/pkg/present"
	"github.com/baguioroutes/roadadvisor/pkg/roads"
	"github.com/baguioroutes/roadadvisor/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", true, "enable per-ip rate limiting on the rest api")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Info("no config file found, using defaults", zap.Error(err))
	}

	viper.SetDefault("ROADS_DATASET", "./data/roads.geojson")
	viper.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("ROUTER_BASE_URL", "https://router.project-osrm.org")
	viper.SetDefault("LOCALITY", "Baguio City, Philippines")
	viper.SetDefault("UPSTREAM_TIMEOUT", "10s")

	features, err := roads.Load(viper.GetString("ROADS_DATASET"))
	if err != nil {
		panic(err)
	}
	index := roads.NewIndex(features, roads.DefaultSpeedTable())
	logger.Info("road index loaded", zap.Int("features", index.Len()))

	roadMatcher := matcher.NewMatcher(index, logger)

	// the hub doubles as the production map and speech surface: every
	// presentation call is broadcast to connected devices over the
	// websocket stream
	hub := controllers.NewHub(logger)
	adapter := present.NewAdapter(hub, hub, logger)

	adv := advisor.NewAdvisor(roadMatcher, index, adapter, nil, logger)

	geocoder, err := planner.NewGeocoder(viper.GetString("GEOCODER_BASE_URL"),
		viper.GetDuration("UPSTREAM_TIMEOUT"), logger)
	if err != nil {
		panic(err)
	}
	osrmRouter := planner.NewRouter(viper.GetString("ROUTER_BASE_URL"),
		viper.GetDuration("UPSTREAM_TIMEOUT"), logger)

	routePlanner := planner.NewRoutePlanner(geocoder, osrmRouter, index, adv, adapter,
		viper.GetString("LOCALITY"), logger)

	advisoryService := usecases.NewAdvisoryService(adv, index, logger)
	routePlanService := usecases.NewRoutePlanService(routePlanner, logger)
	hub.Bind(advisoryService)

	api := http.NewServer(logger)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	_, err = api.Use(ctx, logger, *useRateLimit, advisoryService, routePlanService, hub)
	if err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("Road Advisory Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	time.Sleep(500 * time.Millisecond)
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
