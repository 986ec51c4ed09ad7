package throwin

import "math"

// Pitch dimensions used to convert 0-100 feed coordinates into meters.
const (
	PitchLengthM = 105.0
	PitchWidthM  = 68.0
)

const (
	ZoneUnknown = "Unknown"
	ZoneFirst   = "First 1/3"
	ZoneSecond  = "Second 1/3"
	ZoneLast    = "Last 1/3"
)

// ZoneFromX splits the absolute x axis into three equal thirds. The split is
// attack-direction agnostic: "Last 1/3" can be either team's attacking third
// depending on the period. Downstream reporting depends on this behavior.
func ZoneFromX(x *float64) string {
	if x == nil {
		return ZoneUnknown
	}
	switch {
	case *x <= 33.3333:
		return ZoneFirst
	case *x <= 66.6666:
		return ZoneSecond
	default:
		return ZoneLast
	}
}

// InOffensiveBox reports whether a coordinate pair falls inside the fixed
// attacking penalty-box rectangle.
func InOffensiveBox(x, y *float64) bool {
	if x == nil || y == nil {
		return false
	}
	return *x >= 84.3 && *x <= 100.0 && *y >= 20.4 && *y <= 79.6
}

// DistanceMeters is the straight-line distance between two feed coordinates
// after scaling each axis to pitch dimensions. Nil when either endpoint is
// missing. Rounded to two decimals.
func DistanceMeters(x1, y1, x2, y2 *float64) *float64 {
	if x1 == nil || y1 == nil || x2 == nil || y2 == nil {
		return nil
	}
	dx := (*x2 - *x1) / 100.0 * PitchLengthM
	dy := (*y2 - *y1) / 100.0 * PitchWidthM
	d := math.Round(math.Sqrt(dx*dx+dy*dy)*100) / 100
	return &d
}
