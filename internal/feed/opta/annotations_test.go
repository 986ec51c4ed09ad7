package opta

import (
	"testing"

	"github.com/mkjeldsen/matchchain/internal/domain/phase"
)

func TestReadAnnotations(t *testing.T) {
	t.Parallel()

	doc := `<Annotations>
  <Event event_id="10" type_id="16">
    <Q qualifier_id="321" value="0.62"/>
    <Q qualifier_id="25"/>
  </Event>
  <Event id="11">
    <Q qualifier_id="321" value="0.08"/>
  </Event>
  <Event event_id="12">
    <Q qualifier_id="22"/>
  </Event>
  <Event event_id="10">
    <Q qualifier_id="321" value="0.99"/>
  </Event>
  <Event event_id="13">
    <Q qualifier_id="321" value="not-a-number"/>
  </Event>
</Annotations>`

	table := ReadAnnotations(writeDoc(t, "f70.xml", doc))

	a, ok := table.Lookup("10")
	if !ok || a.XG != 0.62 {
		t.Fatalf("first entry should win for duplicate ids: %+v ok=%v", a, ok)
	}
	if got := phase.Classify(a.Qualifiers); got != phase.LabelCorner {
		t.Fatalf("qualifier set should classify as corner: %q", got)
	}

	if got := table.XG("11"); got != 0.08 {
		t.Fatalf("bare id attribute alias: %v", got)
	}

	if _, ok := table.Lookup("12"); ok {
		t.Fatalf("event without a parsable xG should be dropped")
	}
	if _, ok := table.Lookup("13"); ok {
		t.Fatalf("unparsable xG value should be dropped")
	}

	if got := table.XG("missing"); got != 0 {
		t.Fatalf("unannotated event should report zero xG: %v", got)
	}
}

func TestReadAnnotationsBrokenDocuments(t *testing.T) {
	t.Parallel()

	if table := ReadAnnotations("does/not/exist.xml"); len(table) != 0 {
		t.Fatalf("missing file should yield empty table")
	}

	path := writeDoc(t, "f70.xml", `<Annotations><Event event_id="1"`)
	if table := ReadAnnotations(path); len(table) != 0 {
		t.Fatalf("malformed document should yield empty table")
	}
}
