package opta

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/mkjeldsen/matchchain/internal/domain/identity"
)

type teamElement struct {
	UID      string          `xml:"uID,attr"`
	TeamName string          `xml:"TeamName,attr"`
	Name     string          `xml:"Name"`
	Players  []playerElement `xml:"Player"`
}

type playerElement struct {
	UID        string        `xml:"uID,attr"`
	PersonName personElement `xml:"PersonName"`
}

type personElement struct {
	First      string `xml:"First"`
	Known      string `xml:"Known"`
	Last       string `xml:"Last"`
	FamilyName string `xml:"FamilyName"`
}

type teamDataElement struct {
	TeamRef string `xml:"TeamRef,attr"`
	Side    string `xml:"Side,attr"`
}

// ReadRoster builds the identity table from the roster document: team
// id -> name, team ref -> side, player id -> display name, each registered
// under prefixed and bare id aliases.
func ReadRoster(path string) *identity.Table {
	table := identity.NewTable()
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
			return identity.NewTable()
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "Team":
			var team teamElement
			if err := dec.DecodeElement(&team, &start); err != nil {
				return identity.NewTable()
			}
			registerTeam(table, team)
		case "TeamData":
			var td teamDataElement
			if err := dec.DecodeElement(&td, &start); err != nil {
				return identity.NewTable()
			}
			table.AddTeamSide(td.TeamRef, td.Side)
		}
	}
	return table
}

func registerTeam(table *identity.Table, team teamElement) {
	name := strings.TrimSpace(team.Name)
	if name == "" {
		name = strings.TrimSpace(team.TeamName)
	}
	table.AddTeam(team.UID, name)

	for _, p := range team.Players {
		table.AddPlayer(strings.TrimSpace(p.UID), displayName(p.PersonName))
	}
}

// displayName prefers the known name, then "First Last", then whichever
// part exists. An empty result maps to "Unknown" in the identity table.
func displayName(person personElement) string {
	first := strings.TrimSpace(person.First)
	known := strings.TrimSpace(person.Known)
	last := strings.TrimSpace(person.Last)
	if last == "" {
		last = strings.TrimSpace(person.FamilyName)
	}

	if known != "" {
		return known
	}
	parts := make([]string, 0, 2)
	if first != "" {
		parts = append(parts, first)
	}
	if last != "" {
		parts = append(parts, last)
	}
	return strings.Join(parts, " ")
}
