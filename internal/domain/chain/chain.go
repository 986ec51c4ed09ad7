package chain

import "github.com/mkjeldsen/matchchain/internal/domain/event"

// DefaultMaxGapSeconds bounds the time between consecutive events of one
// possession chain.
const DefaultMaxGapSeconds = 10

// Forward walks upward from start while the next event keeps the same team
// and period and follows within maxGapS seconds. The returned index list is
// contiguous, ascending and always contains start.
func Forward(events []event.Event, start int, maxGapS int) []int {
	first := events[start]
	team := first.TeamID
	period := first.PeriodID

	idx := []int{start}
	cur := start
	for cur+1 < len(events) {
		next := events[cur+1]
		if next.PeriodID != period {
			break
		}
		if next.TeamID != team {
			break
		}
		if next.TimeS-events[cur].TimeS > maxGapS {
			break
		}
		idx = append(idx, cur+1)
		cur++
	}
	return idx
}

// Backward walks downward from start under the same team/period/gap rule,
// additionally stopping at the first event that is not a pass or shot.
// The returned index list is ascending and always contains start.
func Backward(events []event.Event, start int, maxGapS int) []int {
	first := events[start]
	team := first.TeamID
	period := first.PeriodID

	lo := start
	for lo-1 >= 0 {
		prev := events[lo-1]
		if prev.PeriodID != period {
			break
		}
		if prev.TeamID != team {
			break
		}
		if events[lo].TimeS-prev.TimeS > maxGapS {
			break
		}
		if !prev.IsPass() && !prev.IsShot() {
			break
		}
		lo--
	}

	idx := make([]int, 0, start-lo+1)
	for i := lo; i <= start; i++ {
		idx = append(idx, i)
	}
	return idx
}

// AssignIDs segments a pass/shot sequence into chains: a new chain starts at
// every team change, period change or gap above maxGapS. Every event belongs
// to exactly one chain. Returns one chain id per input index.
func AssignIDs(events []event.Event, maxGapS int) []int {
	ids := make([]int, len(events))
	id := -1
	for i, e := range events {
		if i == 0 {
			id++
		} else {
			last := events[i-1]
			if e.TeamID != last.TeamID || e.PeriodID != last.PeriodID || e.TimeS-last.TimeS > maxGapS {
				id++
			}
		}
		ids[i] = id
	}
	return ids
}
