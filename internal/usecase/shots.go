package usecase

import (
	"sort"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	"github.com/mkjeldsen/matchchain/internal/domain/annotation"
	"github.com/mkjeldsen/matchchain/internal/domain/event"
	"github.com/mkjeldsen/matchchain/internal/domain/phase"
)

// buildShots joins every shot in the feed with its annotation. Unannotated
// shots keep zero xG and classify as regular play through the empty
// qualifier set.
func buildShots(events []event.Event, ann annotation.Table) []analysis.Shot {
	var shots []analysis.Shot
	for _, e := range events {
		if !e.IsShot() {
			continue
		}
		a, _ := ann.Lookup(e.ID)
		shots = append(shots, analysis.Shot{
			EventID:    e.ID,
			TeamID:     e.TeamID,
			TeamName:   e.TeamName,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			Minute:     e.Minute,
			Second:     e.Second,
			TimeS:      e.TimeS,
			PeriodID:   e.PeriodID,
			IsGoal:     e.IsGoal(),
			XG:         a.XG,
			Phase:      phase.Classify(a.Qualifiers),
		})
	}
	return shots
}

// aggregateTeamXG tallies shots and xG per team, sorted by xG descending.
func aggregateTeamXG(shots []analysis.Shot) []analysis.TeamXG {
	if len(shots) == 0 {
		return nil
	}

	totals := make(map[string]*analysis.TeamXG)
	order := make([]string, 0, 2)
	for _, s := range shots {
		t, ok := totals[s.TeamName]
		if !ok {
			t = &analysis.TeamXG{TeamName: s.TeamName}
			totals[s.TeamName] = t
			order = append(order, s.TeamName)
		}
		t.Shots++
		t.XG += s.XG
	}

	out := make([]analysis.TeamXG, 0, len(order))
	for _, name := range order {
		out = append(out, *totals[name])
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].XG > out[b].XG
	})
	return out
}
