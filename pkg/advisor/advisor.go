package advisor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/baguioroutes/roadadvisor/pkg"
	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/baguioroutes/roadadvisor/pkg/matcher"
	"github.com/baguioroutes/roadadvisor/pkg/roads"
	"github.com/baguioroutes/roadadvisor/pkg/util"
	"go.uber.org/zap"
)

// ErrPermissionDenied. the device reported no foreground location grant:
// the advisory stream is inert until the grant arrives.
var ErrPermissionDenied = errors.New("location permission denied")

// Presenter is the slice of the presentation adapter the advisor needs.
type Presenter interface {
	Announce(text string)
	ShowCurrentRoad(roadName string, limitKmh, speedKmh float64)
}

// PositionFix is one reported device position/speed sample. Ephemeral,
// superseded by the next fix.
type PositionFix struct {
	Lat      float64
	Lon      float64
	SpeedMps float64
}

// CurrentRoadState is mutated on each fix matched within the proximity
// threshold. lastAnnouncedAt drives the advisory cooldown: the cooldown is
// a pure function of now-lastAnnouncedAt, re-evaluated per fix, never a
// scheduled timer.
type CurrentRoadState struct {
	roadName        string
	speedLimitKmh   float64
	lastAnnouncedAt time.Time
}

func (s CurrentRoadState) GetRoadName() string {
	return s.roadName
}

func (s CurrentRoadState) GetSpeedLimitKmh() float64 {
	return s.speedLimitKmh
}

// Advisory is the outcome of handling one fix.
type Advisory struct {
	RoadName      string
	LimitKmh      float64
	SpeedKmh      float64
	DistanceMeter float64
	Matched       bool
	Announced     bool
	Utterance     string
}

// Advisor runs the two-state (silent/cooldown) speed-advisory machine.
// Fix handling is serialized: REST fixes and websocket frames may
// interleave, so the state is mutex-guarded.
type Advisor struct {
	mu        sync.Mutex
	matcher   *matcher.Matcher
	index     *roads.Index
	presenter Presenter
	now       func() time.Time

	state   CurrentRoadState
	lastFix *geo.Coordinate

	log *zap.Logger
}

func NewAdvisor(m *matcher.Matcher, index *roads.Index, presenter Presenter,
	now func() time.Time, log *zap.Logger) *Advisor {
	if now == nil {
		now = time.Now
	}
	return &Advisor{
		matcher:   m,
		index:     index,
		presenter: presenter,
		now:       now,
		log:       log,
	}
}

// OnFix handles one position fix to completion before the next is
// processed. When the nearest road is within the proximity threshold the
// current road state is updated regardless of cooldown; an announcement
// fires only once the cooldown has elapsed. Without a match the previous
// road/limit stay on screen and only the live speed readout moves.
func (a *Advisor) OnFix(fix PositionFix) Advisory {
	a.mu.Lock()
	defer a.mu.Unlock()

	point := geo.NewCoordinate(fix.Lat, fix.Lon)
	a.lastFix = &point

	speedKmh := util.MpsToKmh(fix.SpeedMps)
	out := Advisory{
		RoadName: a.state.roadName,
		LimitKmh: a.state.speedLimitKmh,
		SpeedKmh: speedKmh,
	}

	match, ok := a.matcher.FindNearest(point)
	if ok && match.DistanceMeter <= pkg.ROAD_PROXIMITY_THRESHOLD_METER {
		limit := a.index.EffectiveSpeedLimit(match.Feature)

		a.state.roadName = match.Feature.GetName()
		a.state.speedLimitKmh = limit

		out.RoadName = a.state.roadName
		out.LimitKmh = limit
		out.DistanceMeter = match.DistanceMeter
		out.Matched = true

		if a.cooldownElapsed() {
			out.Utterance = advisoryText(a.state.roadName, limit, speedKmh)
			out.Announced = true
			a.state.lastAnnouncedAt = a.now()
			a.presenter.Announce(out.Utterance)
		}
	}

	a.presenter.ShowCurrentRoad(a.state.roadName, a.state.speedLimitKmh, speedKmh)
	return out
}

// LastFix returns the most recent device position, if any was received.
func (a *Advisor) LastFix() (geo.Coordinate, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastFix == nil {
		return geo.Coordinate{}, false
	}
	return *a.lastFix, true
}

// State returns a copy of the current road state.
func (a *Advisor) State() CurrentRoadState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Advisor) cooldownElapsed() bool {
	elapsed := a.now().Sub(a.state.lastAnnouncedAt)
	return elapsed > pkg.ADVISORY_COOLDOWN_MS*time.Millisecond
}

// advisoryText picks the overspeed wording iff speed exceeds the limit by
// strictly more than the tolerance; exactly limit+tolerance is normal.
func advisoryText(roadName string, limitKmh, speedKmh float64) string {
	if speedKmh > limitKmh+pkg.OVERSPEED_TOLERANCE_KMH {
		return fmt.Sprintf("Overspeeding. The limit on %s is %.0f kilometers per hour",
			roadName, limitKmh)
	}
	return fmt.Sprintf("You are now on %s. Speed limit is %.0f kilometers per hour",
		roadName, limitKmh)
}
