package roads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/compress/bzip2"
)

const datasetFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": { "name": "Kennon Road", "speed_limit": 50 },
      "geometry": {
        "type": "LineString",
        "coordinates": [[120.5997, 16.3852], [120.5978, 16.3901]]
      }
    },
    {
      "type": "Feature",
      "properties": { "name": "Session Road" },
      "geometry": {
        "type": "LineString",
        "coordinates": [[120.5960, 16.4119], [120.5953, 16.4131]]
      }
    },
    {
      "type": "Feature",
      "properties": { "name": "Broken Lane" },
      "geometry": {
        "type": "LineString",
        "coordinates": [[120.6000, 16.4000]]
      }
    }
  ]
}`

func TestDecode(t *testing.T) {
	features, err := decode(strings.NewReader(datasetFixture))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if len(features) != 3 {
		t.Fatalf("got %d features, want 3", len(features))
	}

	// file order is index order
	if features[0].GetName() != "Kennon Road" || features[1].GetName() != "Session Road" {
		t.Errorf("feature order not preserved: %q, %q",
			features[0].GetName(), features[1].GetName())
	}

	if limit := features[0].GetSpeedLimit(); limit == nil || *limit != 50 {
		t.Errorf("kennon road speed_limit: got %v, want 50", limit)
	}
	if features[1].GetSpeedLimit() != nil {
		t.Error("session road should have no explicit speed_limit")
	}

	// coordinates arrive as [lon, lat] pairs
	first := features[0].GetGeometry()[0]
	if first.Lat != 16.3852 || first.Lon != 120.5997 {
		t.Errorf("coordinate order: got lat=%v lon=%v", first.Lat, first.Lon)
	}

	// degenerate geometry loads but is marked malformed
	if !features[2].Malformed() {
		t.Error("single-vertex feature should be malformed")
	}
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "not json",
			input: "not a dataset",
		},
		{
			name:  "wrong collection type",
			input: `{"type": "Feature", "features": []}`,
		},
		{
			name: "feature without name",
			input: `{"type": "FeatureCollection", "features": [
				{"type": "Feature", "properties": {},
				 "geometry": {"type": "LineString", "coordinates": [[120.59, 16.41], [120.60, 16.42]]}}]}`,
		},
		{
			name: "non-linestring geometry",
			input: `{"type": "FeatureCollection", "features": [
				{"type": "Feature", "properties": {"name": "Session Road"},
				 "geometry": {"type": "Point", "coordinates": [[120.59, 16.41]]}}]}`,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decode(strings.NewReader(tt.input)); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestLoadBzip2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roads.geojson.bz2")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	bw, err := bzip2.NewWriter(f, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := bw.Write([]byte(datasetFixture)); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}

	features, err := Load(path)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(features) != 3 {
		t.Fatalf("got %d features, want 3", len(features))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("./does-not-exist.geojson"); err == nil {
		t.Error("want error for missing dataset")
	}
}
