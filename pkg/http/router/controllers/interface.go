package controllers

import (
	"context"

	"github.com/baguioroutes/roadadvisor/pkg/advisor"
	"github.com/baguioroutes/roadadvisor/pkg/planner"
	"github.com/baguioroutes/roadadvisor/pkg/roads"
)

type AdvisoryService interface {
	HandleFix(lat, lon, speedMps float64) advisor.Advisory
	Suggest(prefix string) []roads.RoadFeature
	ReportPermission(granted bool) error
}

type RoutePlanService interface {
	PlanRoute(ctx context.Context, query string) (planner.RouteResult, error)
}
