package throwin

import (
	"testing"

	"github.com/mkjeldsen/matchchain/internal/domain/event"
)

func throwInPass(id string, period, timeS int, teamID string) event.Event {
	e := event.Event{
		ID:       id,
		TypeID:   event.TypePass,
		PeriodID: period,
		Minute:   timeS / 60,
		Second:   timeS % 60,
		TimeS:    timeS,
		TeamID:   teamID,
	}
	e.Qualifiers.Add(event.QualifierThrowIn)
	return e
}

func ballOut(period, timeS int) event.Event {
	return event.Event{
		TypeID:   event.TypeBallOut,
		PeriodID: period,
		Minute:   timeS / 60,
		Second:   timeS % 60,
		TimeS:    timeS,
	}
}

func TestDetect(t *testing.T) {
	t.Run("pairs ball out with next throw-in pass", func(t *testing.T) {
		events := []event.Event{
			ballOut(1, 300),
			{TypeID: 7, PeriodID: 1, TimeS: 303},
			throwInPass("e9", 1, 308, "a"),
		}

		got := Detect(events, DefaultOutlierThresholdS)
		if len(got) != 1 {
			t.Fatalf("unexpected record count: %d", len(got))
		}
		r := got[0]
		if r.EventID != "e9" || r.DelayS != 8 || r.IsOutlier {
			t.Fatalf("unexpected record: %+v", r)
		}
		if r.BallOutClock() != "05:00" || r.Clock() != "05:08" {
			t.Fatalf("unexpected clocks: %s %s", r.BallOutClock(), r.Clock())
		}
	})

	t.Run("consecutive ball outs produce no record", func(t *testing.T) {
		events := []event.Event{
			ballOut(1, 300),
			ballOut(1, 320),
			throwInPass("e9", 1, 325, "a"),
		}

		got := Detect(events, DefaultOutlierThresholdS)
		if len(got) != 1 || got[0].BallOutTimeS != 320 {
			t.Fatalf("first ball out should be discarded: %+v", got)
		}
	})

	t.Run("does not pair across periods", func(t *testing.T) {
		events := []event.Event{
			ballOut(1, 2690),
			throwInPass("e9", 2, 2705, "a"),
		}

		if got := Detect(events, DefaultOutlierThresholdS); len(got) != 0 {
			t.Fatalf("expected no records, got %+v", got)
		}
	})

	t.Run("plain pass without throw-in qualifier is skipped", func(t *testing.T) {
		events := []event.Event{
			ballOut(1, 300),
			{TypeID: event.TypePass, PeriodID: 1, TimeS: 305, TeamID: "a"},
			throwInPass("e9", 1, 310, "a"),
		}

		got := Detect(events, DefaultOutlierThresholdS)
		if len(got) != 1 || got[0].EventID != "e9" {
			t.Fatalf("expected the qualified pass only: %+v", got)
		}
	})

	t.Run("delay above threshold is flagged as outlier", func(t *testing.T) {
		events := []event.Event{
			ballOut(1, 300),
			throwInPass("e9", 1, 345, "a"),
		}

		got := Detect(events, DefaultOutlierThresholdS)
		if len(got) != 1 || !got[0].IsOutlier || got[0].DelayS != 45 {
			t.Fatalf("expected outlier record: %+v", got)
		}
	})

	t.Run("negative clock skew clamps delay to zero", func(t *testing.T) {
		events := []event.Event{
			ballOut(1, 300),
			throwInPass("e9", 1, 298, "a"),
		}

		got := Detect(events, DefaultOutlierThresholdS)
		if len(got) != 1 || got[0].DelayS != 0 {
			t.Fatalf("expected zero delay: %+v", got)
		}
	})
}

func TestZoneFromX(t *testing.T) {
	cases := []struct {
		name string
		x    *float64
		want string
	}{
		{"nil", nil, ZoneUnknown},
		{"first third", fptr(10), ZoneFirst},
		{"boundary stays in first", fptr(33.3333), ZoneFirst},
		{"second third", fptr(50), ZoneSecond},
		{"last third", fptr(80), ZoneLast},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ZoneFromX(tc.x); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInOffensiveBox(t *testing.T) {
	if !InOffensiveBox(fptr(90), fptr(50)) {
		t.Fatalf("center of the box should be inside")
	}
	if InOffensiveBox(fptr(84.2), fptr(50)) {
		t.Fatalf("just short of the box should be outside")
	}
	if InOffensiveBox(fptr(90), fptr(20.3)) {
		t.Fatalf("just wide of the box should be outside")
	}
	if InOffensiveBox(nil, fptr(50)) || InOffensiveBox(fptr(90), nil) {
		t.Fatalf("missing coordinates are never inside")
	}
}

func TestDistanceMeters(t *testing.T) {
	t.Run("scales axes to pitch dimensions", func(t *testing.T) {
		got := DistanceMeters(fptr(0), fptr(50), fptr(100), fptr(50))
		if got == nil || *got != PitchLengthM {
			t.Fatalf("full length run should be %v m, got %v", PitchLengthM, got)
		}
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		got := DistanceMeters(fptr(10), fptr(10), fptr(20), fptr(30))
		if got == nil {
			t.Fatalf("expected a distance")
		}
		want := 17.18
		if *got != want {
			t.Fatalf("got %v, want %v", *got, want)
		}
	})

	t.Run("nil endpoint yields nil", func(t *testing.T) {
		if got := DistanceMeters(nil, fptr(1), fptr(2), fptr(3)); got != nil {
			t.Fatalf("expected nil, got %v", *got)
		}
	})
}

func fptr(v float64) *float64 { return &v }
