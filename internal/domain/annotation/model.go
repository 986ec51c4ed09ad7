package annotation

import "github.com/mkjeldsen/matchchain/internal/domain/event"

// Annotation is the externally supplied metadata for one event: the
// expected-goals value and the full qualifier set of the annotation element.
// Play-phase qualifiers only appear here, not in the raw event feed.
type Annotation struct {
	XG         float64
	Qualifiers event.QualifierSet
}

// Table maps event id -> annotation. At most one entry per event id.
type Table map[string]Annotation

func (t Table) Lookup(eventID string) (Annotation, bool) {
	a, ok := t[eventID]
	return a, ok
}

// XG returns the annotated expected-goals value, or 0 for unannotated events.
func (t Table) XG(eventID string) float64 {
	if a, ok := t[eventID]; ok {
		return a.XG
	}
	return 0
}
