package throwin

import "fmt"

// Defaults for the delay analytics derived from detected throw-ins.
const (
	DefaultOutlierThresholdS   = 40.0
	DefaultRetentionThresholdS = 7.0
	DefaultShotWindowS         = 30
)

// Record is one detected throw-in: a ball-out event paired with the next
// qualifying throw-in pass in the same period.
type Record struct {
	PeriodID      int
	BallOutMinute int
	BallOutSecond int
	BallOutTimeS  int
	Minute        int
	Second        int
	TimeS         int
	DelayS        float64
	TeamID        string
	TeamName      string
	TeamSide      string
	X             *float64
	Y             *float64
	EndX          *float64
	EndY          *float64
	Zone          string
	EndZone       string
	IntoBox       bool
	DistanceM     *float64
	TakerID       string
	TakerName     string
	EventID       string
	IsOutlier     bool
}

// BallOutClock renders the ball-out time as mm:ss.
func (r Record) BallOutClock() string {
	return fmt.Sprintf("%02d:%02d", r.BallOutMinute, r.BallOutSecond)
}

// Clock renders the throw-in time as mm:ss.
func (r Record) Clock() string {
	return fmt.Sprintf("%02d:%02d", r.Minute, r.Second)
}
