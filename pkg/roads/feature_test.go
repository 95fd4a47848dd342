package roads

import (
	"testing"

	"github.com/baguioroutes/roadadvisor/pkg"
	"github.com/baguioroutes/roadadvisor/pkg/geo"
)

func limitPtr(v float64) *float64 {
	return &v
}

func TestEffectiveSpeedLimit(t *testing.T) {
	table := DefaultSpeedTable()

	testCases := []struct {
		name    string
		feature RoadFeature
		want    float64
	}{
		{
			name:    "explicit feature limit wins over table",
			feature: NewRoadFeature("Session Road", limitPtr(25), nil),
			want:    25,
		},
		{
			name:    "table lookup when feature has no limit",
			feature: NewRoadFeature("Session Road", nil, nil),
			want:    20,
		},
		{
			name:    "kennon road from table",
			feature: NewRoadFeature("Kennon Road", nil, nil),
			want:    50,
		},
		{
			name:    "unknown road falls back to default",
			feature: NewRoadFeature("Unnamed Alley", nil, nil),
			want:    pkg.DEFAULT_SPEED_LIMIT_KMH,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.feature.EffectiveSpeedLimit(table)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorCategoryForLimit(t *testing.T) {
	testCases := []struct {
		limit float64
		want  pkg.ColorCategory
	}{
		{15, pkg.YELLOW},
		{20, pkg.YELLOW},
		{20.5, pkg.ORANGE},
		{30, pkg.ORANGE},
		{35, pkg.RED},
		{40, pkg.RED},
		{40.5, pkg.GREEN},
		{60, pkg.GREEN},
	}

	for _, tt := range testCases {
		got := ColorCategoryForLimit(tt.limit)
		if got != tt.want {
			t.Errorf("limit %v: got %v, want %v", tt.limit, got, tt.want)
		}
	}
}

func TestMalformed(t *testing.T) {
	twoVertices := []geo.Coordinate{
		geo.NewCoordinate(16.41, 120.59),
		geo.NewCoordinate(16.42, 120.60),
	}

	if NewRoadFeature("ok", nil, twoVertices).Malformed() {
		t.Error("two vertices should not be malformed")
	}
	if !NewRoadFeature("single", nil, twoVertices[:1]).Malformed() {
		t.Error("single vertex should be malformed")
	}
	if !NewRoadFeature("empty", nil, nil).Malformed() {
		t.Error("empty geometry should be malformed")
	}
}
