package present

import (
	"fmt"

	"github.com/baguioroutes/roadadvisor/pkg"
	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"go.uber.org/zap"
)

// LegendEntry is one matched road of a route preview: name, effective
// limit, color bucket and the geometry to draw.
type LegendEntry struct {
	Name     string            `json:"name"`
	LimitKmh float64           `json:"speed_limit_kmh"`
	Color    pkg.ColorCategory `json:"-"`
	Geometry []geo.Coordinate  `json:"-"`
}

const (
	routeStrokeColor = "#1a73e8"
	routeStrokeWidth = 5.0
	roadStrokeWidth  = 3.0
)

var categoryStrokeColor = map[pkg.ColorCategory]string{
	pkg.YELLOW: "#fbbc04",
	pkg.ORANGE: "#fa7b17",
	pkg.RED:    "#ea4335",
	pkg.GREEN:  "#34a853",
}

// Adapter is the only consumer-facing surface of the engine: it turns
// advisory and route-planning output into map-drawing calls, status text
// and speech.
type Adapter struct {
	mapSurface MapSurface
	speech     SpeechSurface
	log        *zap.Logger
}

func NewAdapter(mapSurface MapSurface, speech SpeechSurface, log *zap.Logger) *Adapter {
	return &Adapter{
		mapSurface: mapSurface,
		speech:     speech,
		log:        log,
	}
}

// Announce speaks one utterance, stopping any in-flight playback first so
// utterances never overlap. There is no queue of pending utterances.
func (a *Adapter) Announce(text string) {
	a.speech.Stop()
	a.speech.Speak(text, pkg.DEFAULT_SPEECH_RATE)
}

// ShowCurrentRoad updates the live status line. roadName may be empty when
// no road has been matched yet; the speed readout still updates.
func (a *Adapter) ShowCurrentRoad(roadName string, limitKmh, speedKmh float64) {
	if roadName == "" {
		a.mapSurface.SetStatusText(fmt.Sprintf("Speed: %.0f km/h", speedKmh))
		return
	}
	a.mapSurface.SetStatusText(fmt.Sprintf("%s • limit %.0f km/h • %.0f km/h",
		roadName, limitKmh, speedKmh))
}

// ShowRoute draws the planned route plus every matched road colored by its
// speed-limit bucket, and moves the camera over the route.
func (a *Adapter) ShowRoute(route []geo.Coordinate, legend []LegendEntry) {
	polylines := make([]Polyline, 0, len(legend)+1)
	polylines = append(polylines, Polyline{
		Coordinates: route,
		StrokeColor: routeStrokeColor,
		Width:       routeStrokeWidth,
	})
	for _, entry := range legend {
		polylines = append(polylines, Polyline{
			Coordinates: entry.Geometry,
			StrokeColor: categoryStrokeColor[entry.Color],
			Width:       roadStrokeWidth,
		})
	}

	a.mapSurface.SetPolylines(polylines)
	a.mapSurface.AnimateToRegion(geo.NewBoundingRegion(route))
}
