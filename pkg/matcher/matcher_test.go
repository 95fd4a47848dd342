package matcher

import (
	"math"
	"testing"

	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/baguioroutes/roadadvisor/pkg/roads"
	"go.uber.org/zap"
)

func straightRoad(name string, lat, lonStart, lonEnd float64) roads.RoadFeature {
	return roads.NewRoadFeature(name, nil, []geo.Coordinate{
		geo.NewCoordinate(lat, lonStart),
		geo.NewCoordinate(lat, lonEnd),
	})
}

func TestFindNearest(t *testing.T) {
	idx := roads.NewIndex([]roads.RoadFeature{
		straightRoad("Session Road", 16.4100, 120.5900, 120.6000),
		straightRoad("Harrison Road", 16.4200, 120.5900, 120.6000),
	}, roads.DefaultSpeedTable())
	m := NewMatcher(idx, zap.NewNop())

	// 0.0001 degree (~11 m) north of session road
	match, ok := m.FindNearest(geo.NewCoordinate(16.4101, 120.5950))
	if !ok {
		t.Fatal("want a match")
	}
	if match.Feature.GetName() != "Session Road" {
		t.Errorf("got %q, want Session Road", match.Feature.GetName())
	}

	want := 0.0001 * 111195.0
	if math.Abs(match.DistanceMeter-want) > 1.0 {
		t.Errorf("distance %v m, want ~%v m", match.DistanceMeter, want)
	}
}

func TestFindNearestTieBreak(t *testing.T) {
	// two identical roads: the first in index order must win
	idx := roads.NewIndex([]roads.RoadFeature{
		straightRoad("First Road", 16.4100, 120.5900, 120.6000),
		straightRoad("Second Road", 16.4100, 120.5900, 120.6000),
	}, roads.DefaultSpeedTable())
	m := NewMatcher(idx, zap.NewNop())

	match, ok := m.FindNearest(geo.NewCoordinate(16.4101, 120.5950))
	if !ok {
		t.Fatal("want a match")
	}
	if match.Feature.GetName() != "First Road" {
		t.Errorf("tie-break: got %q, want First Road", match.Feature.GetName())
	}
}

func TestFindNearestSkipsMalformed(t *testing.T) {
	malformed := roads.NewRoadFeature("Broken Lane", nil, []geo.Coordinate{
		geo.NewCoordinate(16.4101, 120.5950),
	})
	idx := roads.NewIndex([]roads.RoadFeature{
		malformed,
		straightRoad("Session Road", 16.4100, 120.5900, 120.6000),
	}, roads.DefaultSpeedTable())
	m := NewMatcher(idx, zap.NewNop())

	match, ok := m.FindNearest(geo.NewCoordinate(16.4101, 120.5950))
	if !ok {
		t.Fatal("want a match despite the malformed feature")
	}
	if match.Feature.GetName() != "Session Road" {
		t.Errorf("got %q, want Session Road", match.Feature.GetName())
	}
}

func TestFindNearestNoUsableFeature(t *testing.T) {
	idx := roads.NewIndex([]roads.RoadFeature{
		roads.NewRoadFeature("Broken Lane", nil, nil),
	}, roads.DefaultSpeedTable())
	m := NewMatcher(idx, zap.NewNop())

	if _, ok := m.FindNearest(geo.NewCoordinate(16.41, 120.59)); ok {
		t.Error("want no match when every feature is malformed")
	}
}
