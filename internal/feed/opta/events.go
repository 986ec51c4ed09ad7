// Package opta reads the three per-match XML documents: the raw event feed,
// the team/roster document and the expected-goals annotation document.
//
// Readers never return errors. A missing, unreadable or malformed document
// yields an empty result so that one broken match cannot abort a batch run
// over a full season; downstream joins fall back to raw ids for anything the
// roster could not resolve.
package opta

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"

	"github.com/mkjeldsen/matchchain/internal/domain/event"
	"github.com/mkjeldsen/matchchain/internal/domain/identity"
)

// Game is one fixture's normalized event sequence, sorted ascending by
// (period, match clock) with document order preserved on ties.
type Game struct {
	ID     string
	Date   string
	Events []event.Event
}

type gameElement struct {
	ID     string         `xml:"id,attr"`
	Date   string         `xml:"game_date,attr"`
	Events []eventElement `xml:"Event"`
}

type eventElement struct {
	ID         string             `xml:"id,attr"`
	TypeID     string             `xml:"type_id,attr"`
	PeriodID   string             `xml:"period_id,attr"`
	TeamID     string             `xml:"team_id,attr"`
	PlayerID   string             `xml:"player_id,attr"`
	Min        string             `xml:"min,attr"`
	Sec        string             `xml:"sec,attr"`
	X          string             `xml:"x,attr"`
	Y          string             `xml:"y,attr"`
	Qualifiers []qualifierElement `xml:"Q"`
}

type qualifierElement struct {
	QualifierID string  `xml:"qualifier_id,attr"`
	Value       *string `xml:"value,attr"`
}

// ReadEvents decodes the event feed document and normalizes every game's
// events: integer coercion, qualifier set and value map, end-coordinates
// from the positional qualifiers, and team/player identity resolution.
func ReadEvents(path string, ids *identity.Table) []Game {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if ids == nil {
		ids = identity.NewTable()
	}

	var games []Game
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Game" {
			continue
		}

		var raw gameElement
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return nil
		}
		games = append(games, normalizeGame(raw, ids))
	}
	return games
}

func normalizeGame(raw gameElement, ids *identity.Table) Game {
	game := Game{
		ID:     raw.ID,
		Date:   raw.Date,
		Events: make([]event.Event, 0, len(raw.Events)),
	}
	for _, el := range raw.Events {
		game.Events = append(game.Events, normalizeEvent(el, ids))
	}
	event.SortChronological(game.Events)
	return game
}

func normalizeEvent(el eventElement, ids *identity.Table) event.Event {
	minute := safeInt(el.Min, 0)
	second := safeInt(el.Sec, 0)

	qs := event.NewQualifierSet()
	for _, q := range el.Qualifiers {
		id := safeInt(q.QualifierID, -1)
		if q.Value != nil {
			qs.SetValue(id, *q.Value)
		} else {
			qs.Add(id)
		}
	}

	e := event.Event{
		ID:         el.ID,
		TypeID:     safeInt(el.TypeID, -1),
		PeriodID:   safeInt(el.PeriodID, -1),
		TeamID:     el.TeamID,
		TeamName:   ids.TeamName(el.TeamID),
		TeamSide:   ids.TeamSide(el.TeamID),
		PlayerID:   el.PlayerID,
		PlayerName: ids.PlayerName(el.PlayerID),
		Minute:     minute,
		Second:     second,
		TimeS:      minute*60 + second,
		X:          safeFloat(el.X),
		Y:          safeFloat(el.Y),
		Qualifiers: qs,
	}
	if v, ok := qs.Value(event.QualifierEndX); ok {
		e.EndX = safeFloat(v)
	}
	if v, ok := qs.Value(event.QualifierEndY); ok {
		e.EndY = safeFloat(v)
	}
	return e
}
