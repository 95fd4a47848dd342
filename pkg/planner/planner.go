package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/baguioroutes/roadadvisor/pkg"
	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/baguioroutes/roadadvisor/pkg/present"
	"github.com/baguioroutes/roadadvisor/pkg/roads"
	"github.com/baguioroutes/roadadvisor/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrGeocodeNotFound     = errors.New("no geocoding candidates for query")
	ErrRoutingFailed       = errors.New("router returned no route")
	ErrLocationUnavailable = errors.New("no position fix received yet")
)

// FixSource yields the last known device position; route planning starts
// from it.
type FixSource interface {
	LastFix() (geo.Coordinate, bool)
}

// Presenter is the slice of the presentation adapter the planner needs
// for its side effects (spoken confirmation, route drawing, camera).
type Presenter interface {
	Announce(text string)
	ShowRoute(route []geo.Coordinate, legend []present.LegendEntry)
}

// MatchedRoad is one indexed road lying within the proximity threshold of
// the planned route, tagged with its legend color.
type MatchedRoad struct {
	Name          string            `json:"name"`
	SpeedLimitKmh float64           `json:"speed_limit_kmh"`
	Color         pkg.ColorCategory `json:"color"`
	geometry      []geo.Coordinate
}

// RouteResult is created fresh per successful search and replaces any
// prior result wholesale. No history is kept.
type RouteResult struct {
	Polyline     []geo.Coordinate
	MatchedRoads []MatchedRoad
}

// RoutePlanner resolves a free-text destination through the external
// geocoder, requests a driving route from the external router, and
// cross-references the road index against the route geometry.
//
// Planning is cancellable by replacement: each call takes a monotonic
// sequence number, and a completion whose sequence is no longer the latest
// issued is discarded without side effects, so a late-arriving response
// can never overwrite a newer one.
type RoutePlanner struct {
	geocoder  *Geocoder
	router    *Router
	index     *roads.Index
	fixSource FixSource
	presenter Presenter
	locality  string

	seq atomic.Uint64

	mu     sync.Mutex
	result *RouteResult

	log *zap.Logger
}

func NewRoutePlanner(geocoder *Geocoder, router *Router, index *roads.Index,
	fixSource FixSource, presenter Presenter, locality string, log *zap.Logger) *RoutePlanner {
	return &RoutePlanner{
		geocoder:  geocoder,
		router:    router,
		index:     index,
		fixSource: fixSource,
		presenter: presenter,
		locality:  locality,
		log:       log,
	}
}

// PlanRoute geocodes query (with the fixed locality qualifier appended),
// routes from the last known fix to the first candidate and builds the
// colored matched-roads preview.
func (p *RoutePlanner) PlanRoute(ctx context.Context, query string) (RouteResult, error) {
	seq := p.seq.Add(1)

	origin, ok := p.fixSource.LastFix()
	if !ok {
		return RouteResult{}, util.WrapErrorf(ErrLocationUnavailable, util.ErrUnavailable,
			"cannot plan route to %q: no position fix received yet", query)
	}

	dest, err := p.geocoder.Geocode(ctx, fmt.Sprintf("%s, %s", query, p.locality))
	if err != nil {
		return RouteResult{}, err
	}

	route, err := p.router.DrivingRoute(ctx, origin, dest)
	if err != nil {
		return RouteResult{}, err
	}

	result := RouteResult{
		Polyline:     route,
		MatchedRoads: p.crossReference(route),
	}

	// the staleness check, the result store and the presenter side effects
	// form one atomic step under mu: a completion that merely passed the
	// check could otherwise still overwrite a newer result that raced in
	// between check and store
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seq.Load() != seq {
		// a newer search was issued while this one was in flight:
		// discard without applying side effects
		p.log.Info("discarding stale route plan",
			zap.String("query", query), zap.Uint64("seq", seq))
		return result, nil
	}

	p.result = &result

	p.presenter.Announce(fmt.Sprintf("Starting route to %s", query))
	p.presenter.ShowRoute(route, legendEntries(result.MatchedRoads))
	return result, nil
}

// Result returns the latest applied route result, if any.
func (p *RoutePlanner) Result() (RouteResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return RouteResult{}, false
	}
	return *p.result, true
}

// crossReference scans every route coordinate against every indexed road
// and collects roads within the proximity threshold, deduplicated by name,
// in index order.
//
// This is O(routePoints x roadFeatures) per search. Acceptable only
// because both collections are small and bounded; a larger road set would
// need a spatial index here.
func (p *RoutePlanner) crossReference(route []geo.Coordinate) []MatchedRoad {
	matched := make([]MatchedRoad, 0)
	seen := make(map[string]struct{})
	for _, f := range p.index.GetFeatures() {
		if _, ok := seen[f.GetName()]; ok {
			continue
		}
		if f.Malformed() {
			p.log.Warn("skipping malformed road feature in route cross-reference",
				zap.String("road", f.GetName()))
			continue
		}

		for _, coord := range route {
			dist := geo.PointToPolylineDistance(f.GetGeometry(), coord)
			if dist < 0 || dist > pkg.ROAD_PROXIMITY_THRESHOLD_METER {
				continue
			}

			limit := p.index.EffectiveSpeedLimit(f)
			seen[f.GetName()] = struct{}{}
			matched = append(matched, MatchedRoad{
				Name:          f.GetName(),
				SpeedLimitKmh: limit,
				Color:         roads.ColorCategoryForLimit(limit),
				geometry:      f.GetGeometry(),
			})
			break
		}
	}
	return matched
}

func legendEntries(matched []MatchedRoad) []present.LegendEntry {
	legend := make([]present.LegendEntry, len(matched))
	for i, m := range matched {
		legend[i] = present.LegendEntry{
			Name:     m.Name,
			LimitKmh: m.SpeedLimitKmh,
			Color:    m.Color,
			Geometry: m.geometry,
		}
	}
	return legend
}
