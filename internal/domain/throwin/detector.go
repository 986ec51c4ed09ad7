package throwin

import "github.com/mkjeldsen/matchchain/internal/domain/event"

// Detect scans a chronologically ordered event sequence and pairs each
// ball-out event with the next throw-in pass in the same period. A ball-out
// followed by another ball-out before any throw-in pass produces no record:
// the restart was something else, e.g. a corner or goal kick. At most one
// record per ball-out.
func Detect(events []event.Event, outlierThresholdS float64) []Record {
	var out []Record
	for i, e := range events {
		if !e.IsBallOut() {
			continue
		}
		for j := i + 1; j < len(events); j++ {
			next := events[j]
			if next.PeriodID != e.PeriodID {
				break
			}
			if next.IsBallOut() {
				break
			}
			if !next.IsPass() || !next.Qualifiers.Has(event.QualifierThrowIn) {
				continue
			}

			delay := float64(next.TimeS - e.TimeS)
			if delay < 0 {
				delay = 0
			}
			out = append(out, Record{
				PeriodID:      e.PeriodID,
				BallOutMinute: e.Minute,
				BallOutSecond: e.Second,
				BallOutTimeS:  e.TimeS,
				Minute:        next.Minute,
				Second:        next.Second,
				TimeS:         next.TimeS,
				DelayS:        delay,
				TeamID:        next.TeamID,
				TeamName:      next.TeamName,
				TeamSide:      next.TeamSide,
				X:             next.X,
				Y:             next.Y,
				EndX:          next.EndX,
				EndY:          next.EndY,
				Zone:          ZoneFromX(next.X),
				EndZone:       ZoneFromX(next.EndX),
				IntoBox:       InOffensiveBox(next.EndX, next.EndY),
				DistanceM:     DistanceMeters(next.X, next.Y, next.EndX, next.EndY),
				TakerID:       next.PlayerID,
				TakerName:     next.PlayerName,
				EventID:       next.ID,
				IsOutlier:     delay > outlierThresholdS,
			})
			break
		}
	}
	return out
}
