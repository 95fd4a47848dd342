package pkg

// ColorCategory is the coarse visual bucket derived from a road's
// effective speed limit. Used for the route preview legend.
type ColorCategory uint8

const (
	YELLOW ColorCategory = iota
	ORANGE
	RED
	GREEN
)

func (c ColorCategory) String() string {
	switch c {
	case YELLOW:
		return "yellow"
	case ORANGE:
		return "orange"
	case RED:
		return "red"
	default:
		return "green"
	}
}

const (
	// a road is "current" only while the fix is within this distance of its geometry
	ROAD_PROXIMITY_THRESHOLD_METER = 30.0

	// minimum interval between spoken advisories
	ADVISORY_COOLDOWN_MS = 7000

	// overspeed wording iff speedKmh > limit + OVERSPEED_TOLERANCE_KMH (boundary exclusive)
	OVERSPEED_TOLERANCE_KMH = 3.0

	// fallback when neither the feature nor the speed table carries a limit
	DEFAULT_SPEED_LIMIT_KMH = 30.0

	MPS_TO_KMH = 3.6

	MAX_SUGGESTIONS = 5

	DEFAULT_SPEECH_RATE = 0.9
)

const (
	DEBUG = false
)
