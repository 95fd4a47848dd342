package matcher

import (
	"math"

	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/baguioroutes/roadadvisor/pkg/roads"
	"go.uber.org/zap"
)

// Matcher finds the road feature nearest to a position fix. It scans the
// whole index linearly: the road set is small and static, so the scan is a
// deliberate design choice over a spatial index.
type Matcher struct {
	index *roads.Index
	log   *zap.Logger
}

func NewMatcher(index *roads.Index, log *zap.Logger) *Matcher {
	return &Matcher{
		index: index,
		log:   log,
	}
}

// Match is the result of a nearest-road query.
type Match struct {
	Feature       roads.RoadFeature
	DistanceMeter float64
}

// FindNearest returns the feature with the global minimum point-to-segment
// distance from point, ties broken by index order (first seen wins). The
// second return is false only when no feature yields a usable distance.
//
// Features with malformed geometry are skipped for this scan only and
// logged; a single corrupt feature must not block matching against the
// rest, and it is re-attempted on the next scan.
func (m *Matcher) FindNearest(point geo.Coordinate) (Match, bool) {
	var (
		best  Match
		found bool
	)

	for _, f := range m.index.GetFeatures() {
		if f.Malformed() {
			m.log.Warn("skipping malformed road feature",
				zap.String("road", f.GetName()),
				zap.Int("vertices", len(f.GetGeometry())))
			continue
		}

		dist := geo.PointToPolylineDistance(f.GetGeometry(), point)
		if dist < 0 || math.IsNaN(dist) {
			m.log.Warn("skipping road feature with unusable geometry",
				zap.String("road", f.GetName()))
			continue
		}

		if !found || dist < best.DistanceMeter {
			best = Match{Feature: f, DistanceMeter: dist}
			found = true
		}
	}

	return best, found
}
