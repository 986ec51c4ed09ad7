package usecase

import (
	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	"github.com/mkjeldsen/matchchain/internal/domain/annotation"
	"github.com/mkjeldsen/matchchain/internal/domain/chain"
	"github.com/mkjeldsen/matchchain/internal/domain/event"
	"github.com/mkjeldsen/matchchain/internal/domain/throwin"
)

// eventSignature locates an event when its id is missing from an index:
// same period, same feed clock, same team.
type eventSignature struct {
	periodID int
	timeS    int
	teamID   string
}

type eventIndex struct {
	events []event.Event
	byID   map[string]int
	bySig  map[eventSignature][]int
}

func indexEvents(events []event.Event) eventIndex {
	ix := eventIndex{
		events: events,
		byID:   make(map[string]int, len(events)),
		bySig:  make(map[eventSignature][]int, len(events)),
	}
	for i, e := range events {
		if e.ID != "" {
			if _, seen := ix.byID[e.ID]; !seen {
				ix.byID[e.ID] = i
			}
		}
		sig := eventSignature{periodID: e.PeriodID, timeS: e.TimeS, teamID: e.TeamID}
		ix.bySig[sig] = append(ix.bySig[sig], i)
	}
	return ix
}

// locate returns the index of the record's originating event, preferring the
// event id and falling back to the (period, time, team) signature.
func (ix eventIndex) locate(r throwin.Record) (int, bool) {
	if r.EventID != "" {
		if i, ok := ix.byID[r.EventID]; ok {
			return i, true
		}
	}
	sig := eventSignature{periodID: r.PeriodID, timeS: r.TimeS, teamID: r.TeamID}
	if cand := ix.bySig[sig]; len(cand) > 0 {
		return cand[0], true
	}
	return 0, false
}

// enrichThrowIns joins each detected throw-in with the possession chain it
// starts and with the first same-team shot inside the shot window. A record
// that cannot be located keeps nil enrichment fields so the detection row
// itself is never dropped.
func (s *AnalysisService) enrichThrowIns(events []event.Event, records []throwin.Record, ann annotation.Table) []analysis.ThrowIn {
	if len(records) == 0 {
		return nil
	}

	seq := passShotEvents(events)
	seqIx := indexEvents(seq)
	allIx := indexEvents(events)

	out := make([]analysis.ThrowIn, 0, len(records))
	for _, r := range records {
		ti := analysis.ThrowIn{Record: r}

		if i, ok := seqIx.locate(r); ok {
			idx := chain.Forward(seq, i, s.opts.MaxChainGapS)
			summary := chain.Summarize(seq, idx)
			ti.Sequence = &summary
			ti.BallRetention = float64(summary.DurationS) >= s.opts.RetentionThresholdS
		}

		if i, ok := allIx.locate(r); ok {
			if shot, delay, found := firstShotWithin(events, i, r.TeamID, r.PeriodID, s.opts.ShotWindowS); found {
				d := float64(delay)
				xg := ann.XG(shot.ID)
				ti.ShotInWindow = true
				ti.GoalInWindow = shot.IsGoal()
				ti.ShotDelayS = &d
				ti.ShotX = shot.X
				ti.ShotY = shot.Y
				ti.ShotEventID = shot.ID
				ti.ShotXG = &xg
			}
		}

		out = append(out, ti)
	}
	return out
}

// firstShotWithin scans forward from start for the first shot by team within
// windowS seconds, stopping at a period change or when the window closes.
func firstShotWithin(events []event.Event, start int, teamID string, periodID int, windowS int) (event.Event, int, bool) {
	t0 := events[start].TimeS
	for k := start; k < len(events); k++ {
		e := events[k]
		if e.PeriodID != periodID {
			break
		}
		dt := e.TimeS - t0
		if dt > windowS {
			break
		}
		if e.TeamID == teamID && e.IsShot() {
			return e, dt, true
		}
	}
	return event.Event{}, 0, false
}
