package opta

import (
	"testing"

	"github.com/mkjeldsen/matchchain/internal/domain/identity"
)

func TestReadRoster(t *testing.T) {
	t.Parallel()

	doc := `<SoccerFeed>
  <Team uID="t1">
    <Name>Hjemme BK</Name>
    <Player uID="p1">
      <PersonName>
        <First>Bo</First>
        <Known>Bosse</Known>
        <Last>Larsen</Last>
      </PersonName>
    </Player>
    <Player uID="p2">
      <PersonName>
        <First>Anders</First>
        <Last>Berg</Last>
      </PersonName>
    </Player>
    <Player uID="p3">
      <PersonName>
        <First>Niels</First>
        <FamilyName>Holm</FamilyName>
      </PersonName>
    </Player>
  </Team>
  <Team uID="t2" TeamName="Ude IF"/>
  <TeamData TeamRef="t1" Side="Home"/>
  <TeamData TeamRef="t2" Side="Away"/>
</SoccerFeed>`

	table := ReadRoster(writeDoc(t, "f7.xml", doc))

	if got := table.TeamName("t1"); got != "Hjemme BK" {
		t.Fatalf("team name from element: %q", got)
	}
	if got := table.TeamName("t2"); got != "Ude IF" {
		t.Fatalf("team name from attribute fallback: %q", got)
	}
	if got := table.TeamSide("2"); got != "Away" {
		t.Fatalf("bare alias side lookup: %q", got)
	}

	if got := table.PlayerName("p1"); got != "Bosse" {
		t.Fatalf("known name should win: %q", got)
	}
	if got := table.PlayerName("p2"); got != "Anders Berg" {
		t.Fatalf("first+last fallback: %q", got)
	}
	if got := table.PlayerName("p3"); got != "Niels Holm" {
		t.Fatalf("family name fallback: %q", got)
	}
}

func TestReadRosterBrokenDocuments(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields empty table", func(t *testing.T) {
		table := ReadRoster("does/not/exist.xml")
		if table.TeamCount() != 0 || table.PlayerCount() != 0 {
			t.Fatalf("expected empty table")
		}
		if got := table.PlayerName(""); got != identity.UnknownPlayerName {
			t.Fatalf("empty table should still resolve empty ids to %q", identity.UnknownPlayerName)
		}
	})

	t.Run("malformed xml yields empty table", func(t *testing.T) {
		path := writeDoc(t, "f7.xml", `<SoccerFeed><Team uID="t1"><Name>`)
		table := ReadRoster(path)
		if table.TeamCount() != 0 {
			t.Fatalf("expected empty table")
		}
	})
}
