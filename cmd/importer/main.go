package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// importer converts an openstreetmap pbf extract into the named-roads
// geojson dataset consumed by the advisory server. Only named ways are
// kept; maxspeed becomes the optional speed_limit property.

var (
	inputFile  = flag.String("input", "./data/baguio.osm.pbf", "openstreetmap pbf extract")
	outputFile = flag.String("output", "./data/roads.geojson", "geojson output (use a .bz2 suffix to compress)")
)

type geojsonFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
}

type geojsonFeature struct {
	Type       string            `json:"type"`
	Properties geojsonProperties `json:"properties"`
	Geometry   geojsonGeometry   `json:"geometry"`
}

type geojsonProperties struct {
	Name       string   `json:"name"`
	SpeedLimit *float64 `json:"speed_limit,omitempty"`
}

type geojsonGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type nodeCoord struct {
	lat float64
	lon float64
}

func main() {
	flag.Parse()

	f, err := os.Open(*inputFile)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	// first pass: named drivable ways and the node ids they reference
	wayNodes := make(map[int64]struct{})
	type namedWay struct {
		name       string
		speedLimit *float64
		nodes      []int64
	}
	ways := make([]namedWay, 0)

	scanner := osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 {
			continue
		}
		name := way.Tags.Find("name")
		if name == "" || way.Tags.Find("highway") == "" {
			continue
		}

		w := namedWay{name: name}
		if limit := parseMaxspeed(way.Tags.Find("maxspeed")); limit > 0 {
			w.speedLimit = &limit
		}
		for _, n := range way.Nodes {
			w.nodes = append(w.nodes, int64(n.ID))
			wayNodes[int64(n.ID)] = struct{}{}
		}
		ways = append(ways, w)

		if len(ways)%10000 == 0 {
			log.Printf("reading openstreetmap ways: %d...", len(ways))
		}
	}
	scanner.Close()

	// second pass: coordinates of the referenced nodes
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		log.Fatal(err)
	}
	nodeCoords := make(map[int64]nodeCoord, len(wayNodes))

	scanner = osmpbf.New(context.Background(), f, 0)
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		node := o.(*osm.Node)
		if _, ok := wayNodes[int64(node.ID)]; ok {
			nodeCoords[int64(node.ID)] = nodeCoord{lat: node.Lat, lon: node.Lon}
		}
	}
	scanner.Close()

	fc := geojsonFeatureCollection{Type: "FeatureCollection"}
	for _, w := range ways {
		coords := make([][]float64, 0, len(w.nodes))
		for _, id := range w.nodes {
			c, ok := nodeCoords[id]
			if !ok {
				continue
			}
			coords = append(coords, []float64{c.lon, c.lat})
		}

		fc.Features = append(fc.Features, geojsonFeature{
			Type: "Feature",
			Properties: geojsonProperties{
				Name:       w.name,
				SpeedLimit: w.speedLimit,
			},
			Geometry: geojsonGeometry{
				Type:        "LineString",
				Coordinates: coords,
			},
		})
	}

	if err := writeDataset(*outputFile, fc); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d named road features to %s", len(fc.Features), *outputFile)
}

func writeDataset(path string, fc geojsonFeatureCollection) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	var w io.Writer = out
	if strings.HasSuffix(path, ".bz2") {
		bw, err := bzip2.NewWriter(out, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
		if err != nil {
			return err
		}
		defer bw.Close()
		w = bw
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(fc)
}

// parseMaxspeed handles plain km/h values and the "NN mph" form. 0 when
// the tag is absent or non-numeric (e.g. "walk", "PH:urban").
func parseMaxspeed(tag string) float64 {
	if tag == "" {
		return 0
	}
	mph := false
	if strings.HasSuffix(tag, "mph") {
		mph = true
		tag = strings.TrimSuffix(tag, "mph")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(tag), 64)
	if err != nil {
		return 0
	}
	if mph {
		v *= 1.609344
	}
	return v
}
