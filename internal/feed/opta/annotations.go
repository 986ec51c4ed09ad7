package opta

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strconv"

	"github.com/mkjeldsen/matchchain/internal/domain/annotation"
	"github.com/mkjeldsen/matchchain/internal/domain/event"
)

type annotationEventElement struct {
	EventID    string             `xml:"event_id,attr"`
	ID         string             `xml:"id,attr"`
	Qualifiers []qualifierElement `xml:"Q"`
}

// ReadAnnotations builds the event-id -> annotation lookup from the
// expected-goals document. An event only gets an entry when its xG
// qualifier parses; the first xG qualifier wins when duplicates exist. The
// full qualifier set is retained for play-phase classification, which only
// exists in this document.
func ReadAnnotations(path string) annotation.Table {
	table := annotation.Table{}
	data, err := os.ReadFile(path)
	if err != nil {
		return table
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return annotation.Table{}
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Event" {
			continue
		}

		var el annotationEventElement
		if err := dec.DecodeElement(&el, &start); err != nil {
			return annotation.Table{}
		}

		eventID := el.EventID
		if eventID == "" {
			eventID = el.ID
		}
		if eventID == "" {
			continue
		}
		if _, exists := table[eventID]; exists {
			continue
		}

		qs := event.NewQualifierSet()
		var xg *float64
		for _, q := range el.Qualifiers {
			id := safeInt(q.QualifierID, -1)
			value := ""
			if q.Value != nil {
				value = *q.Value
				qs.SetValue(id, value)
			} else {
				qs.Add(id)
			}
			if id == event.QualifierExpectedGoals && xg == nil {
				if v, err := strconv.ParseFloat(value, 64); err == nil {
					xg = &v
				}
			}
		}
		if xg == nil {
			continue
		}
		table[eventID] = annotation.Annotation{XG: *xg, Qualifiers: qs}
	}
	return table
}
