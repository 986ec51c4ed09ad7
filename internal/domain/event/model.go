package event

import "sort"

// Action type codes used by the event feed.
const (
	TypePass         = 1
	TypeBallOut      = 5
	TypeMiss         = 13
	TypePost         = 14
	TypeAttemptSaved = 15
	TypeGoal         = 16
)

// Qualifier codes consumed by the engine.
const (
	QualifierPenalty       = 9
	QualifierThrowIn       = 107
	QualifierEndX          = 140
	QualifierEndY          = 141
	QualifierExpectedGoals = 321
)

const (
	SideHome = "Home"
	SideAway = "Away"
)

// Event is one on-ball action in a match. Instances are built once by the
// feed reader and treated as immutable afterwards.
type Event struct {
	ID         string
	TypeID     int
	PeriodID   int
	TeamID     string
	TeamName   string
	TeamSide   string
	PlayerID   string
	PlayerName string
	Minute     int
	Second     int
	TimeS      int
	X          *float64
	Y          *float64
	EndX       *float64
	EndY       *float64
	Qualifiers QualifierSet
}

func (e Event) IsPass() bool {
	return e.TypeID == TypePass
}

func (e Event) IsShot() bool {
	switch e.TypeID {
	case TypeMiss, TypePost, TypeAttemptSaved, TypeGoal:
		return true
	default:
		return false
	}
}

func (e Event) IsGoal() bool {
	return e.TypeID == TypeGoal
}

func (e Event) IsBallOut() bool {
	return e.TypeID == TypeBallOut
}

// SortChronological orders events ascending by (period, match clock). The
// sort is stable so ties keep document order.
func SortChronological(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].PeriodID != events[j].PeriodID {
			return events[i].PeriodID < events[j].PeriodID
		}
		return events[i].TimeS < events[j].TimeS
	})
}
