package chain

import (
	"testing"

	"github.com/mkjeldsen/matchchain/internal/domain/event"
)

func ev(typeID, period, timeS int, teamID string) event.Event {
	return event.Event{TypeID: typeID, PeriodID: period, TimeS: timeS, TeamID: teamID}
}

func TestForward(t *testing.T) {
	t.Run("stops at team change", func(t *testing.T) {
		events := []event.Event{
			ev(event.TypePass, 1, 100, "a"),
			ev(event.TypePass, 1, 104, "a"),
			ev(event.TypePass, 1, 106, "b"),
		}
		got := Forward(events, 0, DefaultMaxGapSeconds)
		if len(got) != 2 || got[0] != 0 || got[1] != 1 {
			t.Fatalf("unexpected indexes: %v", got)
		}
	})

	t.Run("stops at gap above threshold", func(t *testing.T) {
		events := []event.Event{
			ev(event.TypePass, 1, 100, "a"),
			ev(event.TypePass, 1, 111, "a"),
		}
		got := Forward(events, 0, DefaultMaxGapSeconds)
		if len(got) != 1 {
			t.Fatalf("gap of 11s should break the chain: %v", got)
		}
	})

	t.Run("gap exactly at threshold continues", func(t *testing.T) {
		events := []event.Event{
			ev(event.TypePass, 1, 100, "a"),
			ev(event.TypePass, 1, 110, "a"),
		}
		got := Forward(events, 0, DefaultMaxGapSeconds)
		if len(got) != 2 {
			t.Fatalf("gap of exactly 10s should continue: %v", got)
		}
	})

	t.Run("stops at period boundary", func(t *testing.T) {
		events := []event.Event{
			ev(event.TypePass, 1, 2700, "a"),
			ev(event.TypePass, 2, 2705, "a"),
		}
		got := Forward(events, 0, DefaultMaxGapSeconds)
		if len(got) != 1 {
			t.Fatalf("period change should break the chain: %v", got)
		}
	})

	t.Run("always contains start", func(t *testing.T) {
		events := []event.Event{ev(event.TypePass, 1, 100, "a")}
		got := Forward(events, 0, DefaultMaxGapSeconds)
		if len(got) != 1 || got[0] != 0 {
			t.Fatalf("unexpected indexes: %v", got)
		}
	})
}

func TestBackward(t *testing.T) {
	t.Run("stops at non pass or shot", func(t *testing.T) {
		events := []event.Event{
			ev(7, 1, 95, "a"),
			ev(event.TypePass, 1, 98, "a"),
			ev(event.TypeGoal, 1, 100, "a"),
		}
		got := Backward(events, 2, DefaultMaxGapSeconds)
		if len(got) != 2 || got[0] != 1 || got[1] != 2 {
			t.Fatalf("unexpected indexes: %v", got)
		}
	})

	t.Run("stops at opponent event", func(t *testing.T) {
		events := []event.Event{
			ev(event.TypePass, 1, 95, "b"),
			ev(event.TypePass, 1, 98, "a"),
			ev(event.TypeMiss, 1, 100, "a"),
		}
		got := Backward(events, 2, DefaultMaxGapSeconds)
		if len(got) != 2 || got[0] != 1 {
			t.Fatalf("unexpected indexes: %v", got)
		}
	})

	t.Run("walks through consecutive passes", func(t *testing.T) {
		events := []event.Event{
			ev(event.TypePass, 1, 90, "a"),
			ev(event.TypePass, 1, 94, "a"),
			ev(event.TypePass, 1, 98, "a"),
			ev(event.TypeGoal, 1, 100, "a"),
		}
		got := Backward(events, 3, DefaultMaxGapSeconds)
		if len(got) != 4 || got[0] != 0 {
			t.Fatalf("unexpected indexes: %v", got)
		}
	})
}

func TestAssignIDs(t *testing.T) {
	events := []event.Event{
		ev(event.TypePass, 1, 100, "a"),
		ev(event.TypePass, 1, 104, "a"),
		ev(event.TypePass, 1, 106, "b"),
		ev(event.TypePass, 1, 120, "b"),
		ev(event.TypePass, 2, 2700, "b"),
	}

	got := AssignIDs(events, DefaultMaxGapSeconds)
	want := []int{0, 0, 1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got chain %d, want %d (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestAssignIDsEmpty(t *testing.T) {
	if got := AssignIDs(nil, DefaultMaxGapSeconds); len(got) != 0 {
		t.Fatalf("expected no ids, got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	x, y := 88.0, 45.0
	endX, endY := 70.0, 30.0

	t.Run("chain ending in a shot", func(t *testing.T) {
		events := []event.Event{
			{TypeID: event.TypePass, PeriodID: 1, TimeS: 90, TeamID: "a", EndX: &endX, EndY: &endY},
			{TypeID: event.TypeGoal, PeriodID: 1, TimeS: 97, TeamID: "a", X: &x, Y: &y},
		}
		s := Summarize(events, []int{0, 1})
		if s.Events != 2 || s.Passes != 1 || s.DurationS != 7 {
			t.Fatalf("unexpected summary: %+v", s)
		}
		if !s.EndsWithShot || s.LastType != LastTypeShot {
			t.Fatalf("chain should end with a shot: %+v", s)
		}
		if s.LastX == nil || *s.LastX != x || s.LastY == nil || *s.LastY != y {
			t.Fatalf("shot end location should use event coordinates: %+v", s)
		}
	})

	t.Run("chain ending in a pass", func(t *testing.T) {
		events := []event.Event{
			{TypeID: event.TypePass, PeriodID: 1, TimeS: 90, TeamID: "a", EndX: &endX, EndY: &endY},
		}
		s := Summarize(events, []int{0})
		if s.EndsWithShot || s.LastType != LastTypePass {
			t.Fatalf("chain should end with a pass: %+v", s)
		}
		if s.LastX == nil || *s.LastX != endX {
			t.Fatalf("pass end location should use end coordinates: %+v", s)
		}
	})
}
