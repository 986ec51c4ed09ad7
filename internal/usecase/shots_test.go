package usecase

import (
	"testing"

	"github.com/mkjeldsen/matchchain/internal/domain/annotation"
	"github.com/mkjeldsen/matchchain/internal/domain/event"
	"github.com/mkjeldsen/matchchain/internal/domain/phase"
)

func TestBuildShotsJoinsAnnotations(t *testing.T) {
	t.Parallel()

	cornerQS := event.NewQualifierSet()
	cornerQS.Add(25)
	cornerQS.Add(22)

	events := []event.Event{
		testEvent("e1", event.TypePass, 1, 10, "t1"),
		testEvent("e2", event.TypeGoal, 1, 12, "t1"),
		testEvent("e3", event.TypeMiss, 1, 40, "t2"),
	}
	ann := annotation.Table{
		"e2": {XG: 0.31, Qualifiers: cornerQS},
	}

	shots := buildShots(events, ann)
	if len(shots) != 2 {
		t.Fatalf("unexpected shot count: got=%d want=2", len(shots))
	}

	goal := shots[0]
	if !goal.IsGoal || goal.XG != 0.31 {
		t.Fatalf("unexpected goal row: %+v", goal)
	}
	if goal.Phase != phase.LabelCorner {
		t.Fatalf("corner qualifier must win over regular play, got %q", goal.Phase)
	}

	miss := shots[1]
	if miss.IsGoal {
		t.Fatal("type 13 is not a goal")
	}
	if miss.XG != 0 {
		t.Fatalf("unannotated shot must carry zero xG, got %v", miss.XG)
	}
	if miss.Phase != phase.LabelRegularPlay {
		t.Fatalf("unannotated shot defaults to regular play, got %q", miss.Phase)
	}
}

func TestAggregateTeamXG(t *testing.T) {
	t.Parallel()

	shots := []struct {
		team string
		xg   float64
	}{
		{"Home FC", 0.1},
		{"Away FC", 0.6},
		{"Home FC", 0.25},
	}

	events := make([]event.Event, 0, len(shots))
	ann := annotation.Table{}
	for i, s := range shots {
		id := string(rune('a' + i))
		e := testEvent(id, event.TypeMiss, 1, 10+i, "t"+id)
		e.TeamName = s.team
		events = append(events, e)
		ann[id] = annotation.Annotation{XG: s.xg}
	}

	totals := aggregateTeamXG(buildShots(events, ann))
	if len(totals) != 2 {
		t.Fatalf("unexpected team count: got=%d want=2", len(totals))
	}
	if totals[0].TeamName != "Away FC" || totals[0].Shots != 1 || totals[0].XG != 0.6 {
		t.Fatalf("unexpected leader: %+v", totals[0])
	}
	if totals[1].TeamName != "Home FC" || totals[1].Shots != 2 || totals[1].XG != 0.35 {
		t.Fatalf("unexpected runner-up: %+v", totals[1])
	}
}
