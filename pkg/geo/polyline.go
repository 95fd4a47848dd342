package geo

import (
	polyline "github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes coords with the google encoded-polyline
// algorithm for compact transport to map clients.
func PolylineFromCoords(coords []Coordinate) string {
	flat := make([][]float64, len(coords))
	for i, c := range coords {
		flat[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(flat))
}
