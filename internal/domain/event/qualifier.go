package event

// QualifierSet holds the qualifier ids attached to an event plus the sparse
// id -> value mapping for qualifiers that carry one. Membership and value
// lookups are kept separate: a qualifier can be present without a value.
type QualifierSet struct {
	ids    map[int]struct{}
	values map[int]string
}

func NewQualifierSet() QualifierSet {
	return QualifierSet{
		ids:    make(map[int]struct{}),
		values: make(map[int]string),
	}
}

func (q *QualifierSet) Add(id int) {
	if q.ids == nil {
		q.ids = make(map[int]struct{})
	}
	q.ids[id] = struct{}{}
}

func (q *QualifierSet) SetValue(id int, value string) {
	q.Add(id)
	if q.values == nil {
		q.values = make(map[int]string)
	}
	q.values[id] = value
}

func (q QualifierSet) Has(id int) bool {
	_, ok := q.ids[id]
	return ok
}

func (q QualifierSet) Value(id int) (string, bool) {
	v, ok := q.values[id]
	return v, ok
}

func (q QualifierSet) Len() int {
	return len(q.ids)
}

// IDs returns the qualifier ids present in the set. Order is unspecified.
func (q QualifierSet) IDs() []int {
	out := make([]int, 0, len(q.ids))
	for id := range q.ids {
		out = append(out, id)
	}
	return out
}
