package roads

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/dsnet/compress/bzip2"
)

// geojson wire types. feature order in the file is the index order, which
// drives suggestion results and nearest-match tie-breaking.

type geojsonFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
}

type geojsonFeature struct {
	Type       string            `json:"type"`
	Geometry   geojsonGeometry   `json:"geometry"`
	Properties geojsonProperties `json:"properties"`
}

type geojsonGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
}

type geojsonProperties struct {
	Name       string   `json:"name"`
	SpeedLimit *float64 `json:"speed_limit,omitempty"`
}

// Load parses the static road dataset once, at startup. A dataset the
// decoder cannot parse is fatal for the caller: the advisory screen cannot
// function without its road index. Datasets ending in .bz2 are
// decompressed transparently.
//
// Features with degenerate geometry (fewer than two vertices) still load;
// the proximity scan skips them per scan so one corrupt feature never
// blocks matching against the rest.
func Load(path string) ([]RoadFeature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open road dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, fmt.Errorf("open bzip2 road dataset: %w", err)
		}
		defer bz.Close()
		r = bz
	}

	return decode(r)
}

func decode(r io.Reader) ([]RoadFeature, error) {
	var fc geojsonFeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode road dataset: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("road dataset: expected FeatureCollection, got %q", fc.Type)
	}

	features := make([]RoadFeature, 0, len(fc.Features))
	for i, gf := range fc.Features {
		if gf.Properties.Name == "" {
			return nil, fmt.Errorf("road dataset: feature %d has no name", i)
		}
		if gf.Geometry.Type != "LineString" {
			return nil, fmt.Errorf("road dataset: feature %q: expected LineString, got %q",
				gf.Properties.Name, gf.Geometry.Type)
		}

		coords := make([]geo.Coordinate, 0, len(gf.Geometry.Coordinates))
		for _, pair := range gf.Geometry.Coordinates {
			if len(pair) < 2 {
				continue
			}
			coords = append(coords, geo.NewCoordinate(pair[1], pair[0]))
		}

		features = append(features, NewRoadFeature(gf.Properties.Name, gf.Properties.SpeedLimit, coords))
	}

	return features, nil
}
