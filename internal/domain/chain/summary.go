package chain

import "github.com/mkjeldsen/matchchain/internal/domain/event"

const (
	LastTypePass = "Pass"
	LastTypeShot = "Shot"
)

// Summary describes one built chain for reporting joins.
type Summary struct {
	Events       int
	Passes       int
	DurationS    int
	EndsWithShot bool
	LastX        *float64
	LastY        *float64
	LastType     string
}

// Summarize condenses a chain built over events. The last event's effective
// end-location is the pass end-coordinates for a pass and the event
// coordinates for a shot.
func Summarize(events []event.Event, idx []int) Summary {
	first := events[idx[0]]
	last := events[idx[len(idx)-1]]

	passes := 0
	for _, i := range idx {
		if events[i].IsPass() {
			passes++
		}
	}

	duration := last.TimeS - first.TimeS
	if duration < 0 {
		duration = 0
	}

	s := Summary{
		Events:       len(idx),
		Passes:       passes,
		DurationS:    duration,
		EndsWithShot: last.IsShot(),
		LastType:     LastTypePass,
	}
	if last.IsShot() {
		s.LastType = LastTypeShot
		s.LastX, s.LastY = last.X, last.Y
	} else {
		s.LastX, s.LastY = last.EndX, last.EndY
	}
	return s
}
