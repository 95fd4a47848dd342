package roads

import (
	"github.com/baguioroutes/roadadvisor/pkg"
	"github.com/baguioroutes/roadadvisor/pkg/geo"
)

// RoadFeature is one named road segment with geometry and optional
// posted speed limit. Immutable after load.
type RoadFeature struct {
	name       string
	speedLimit *float64
	geometry   []geo.Coordinate
}

func NewRoadFeature(name string, speedLimit *float64, geometry []geo.Coordinate) RoadFeature {
	return RoadFeature{
		name:       name,
		speedLimit: speedLimit,
		geometry:   geometry,
	}
}

func (f RoadFeature) GetName() string {
	return f.name
}

func (f RoadFeature) GetSpeedLimit() *float64 {
	return f.speedLimit
}

func (f RoadFeature) GetGeometry() []geo.Coordinate {
	return f.geometry
}

// Malformed reports whether the feature geometry cannot participate in a
// proximity scan. Such features are skipped per scan, never dropped from
// the index.
func (f RoadFeature) Malformed() bool {
	return len(f.geometry) < 2
}

// SpeedTable maps road name to its default posted limit (km/h), used when
// a feature carries no explicit speed_limit.
type SpeedTable map[string]float64

// DefaultSpeedTable. posted limits of the Baguio road network covered by
// the bundled dataset.
func DefaultSpeedTable() SpeedTable {
	return SpeedTable{
		"Session Road":      20,
		"Magsaysay Avenue":  30,
		"Harrison Road":     30,
		"Asin Road":         40,
		"Naguilian Road":    40,
		"Kennon Road":       50,
		"Marcos Highway":    60,
		"Loakan Road":       40,
		"Ambuklao Road":     50,
		"Legarda Road":      30,
	}
}

// EffectiveSpeedLimit resolves the limit used for display and advisory:
// explicit feature limit, then table lookup by name, then the 30 km/h
// fallback.
func (f RoadFeature) EffectiveSpeedLimit(table SpeedTable) float64 {
	if f.speedLimit != nil {
		return *f.speedLimit
	}
	if limit, ok := table[f.name]; ok {
		return limit
	}
	return pkg.DEFAULT_SPEED_LIMIT_KMH
}

// ColorCategoryForLimit buckets an effective limit for the route legend.
// Boundaries are inclusive: exactly 20 is yellow, 30 orange, 40 red.
func ColorCategoryForLimit(limitKmh float64) pkg.ColorCategory {
	switch {
	case limitKmh <= 20:
		return pkg.YELLOW
	case limitKmh <= 30:
		return pkg.ORANGE
	case limitKmh <= 40:
		return pkg.RED
	default:
		return pkg.GREEN
	}
}
