package present

import (
	"github.com/baguioroutes/roadadvisor/pkg/geo"
)

// The map widget and the text-to-speech engine are external collaborators:
// the engine only ever talks to them through these interfaces. The
// production implementation pushes the calls as JSON events to connected
// websocket clients; tests plug in fakes.

type Polyline struct {
	Coordinates []geo.Coordinate `json:"coordinates"`
	StrokeColor string           `json:"stroke_color"`
	Width       float64          `json:"width"`
}

type MapSurface interface {
	// SetPolylines replaces all drawn polylines wholesale.
	SetPolylines(polylines []Polyline)
	AnimateToRegion(region geo.BoundingRegion)
	SetStatusText(text string)
}

type SpeechSurface interface {
	// Speak is fire-and-forget; implementations must be idempotent under
	// cancel-then-speak.
	Speak(text string, rate float64)
	Stop()
}
