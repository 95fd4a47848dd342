package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/baguioroutes/roadadvisor/pkg/util"
	"go.uber.org/zap"
)

// routeResponse. wire format of the external routing endpoint:
// { "routes": [ { "geometry": { "coordinates": [[lon,lat],...] } } ] }
type routeResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Router requests driving routes with full geometry from an OSRM-style
// routing endpoint. No retries: the user re-issues the search on failure.
type Router struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewRouter(baseURL string, timeout time.Duration, log *zap.Logger) *Router {
	return &Router{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// DrivingRoute returns the full route geometry from origin to dest.
// ErrRoutingFailed when the router has no route between the pair.
func (r *Router) DrivingRoute(ctx context.Context, origin, dest geo.Coordinate) ([]geo.Coordinate, error) {
	endpoint := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		r.baseURL, origin.Lon, origin.Lat, dest.Lon, dest.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError,
			"routing request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, util.WrapErrorf(fmt.Errorf("router status %d", resp.StatusCode),
			util.ErrInternalServerError, "routing request failed")
	}

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError,
			"decode routing response")
	}

	if len(decoded.Routes) == 0 || len(decoded.Routes[0].Geometry.Coordinates) == 0 {
		return nil, util.WrapErrorf(ErrRoutingFailed, util.ErrNotFound,
			"no route from %f,%f to %f,%f", origin.Lat, origin.Lon, dest.Lat, dest.Lon)
	}

	coords := make([]geo.Coordinate, 0, len(decoded.Routes[0].Geometry.Coordinates))
	for _, pair := range decoded.Routes[0].Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		coords = append(coords, geo.NewCoordinate(pair[1], pair[0]))
	}
	r.log.Debug("routing response", zap.Int("route_points", len(coords)))
	return coords, nil
}
