package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	analysismock "github.com/mkjeldsen/matchchain/internal/mocks/domain/analysis"
	"github.com/mkjeldsen/matchchain/internal/platform/cache"
	"github.com/mkjeldsen/matchchain/internal/platform/logging"
)

const testEventsXML = `<Games>
  <Game id="g1001" game_date="2026-03-07">
    <Event id="10" event_id="10" type_id="5" period_id="1" min="12" sec="4" team_id="t1" player_id="p1" x="2.1" y="0.4"/>
    <Event id="11" event_id="11" type_id="1" period_id="1" min="12" sec="11" team_id="t1" player_id="p2" x="3.0" y="1.0">
      <Q id="q1" qualifier_id="107"/>
      <Q id="q2" qualifier_id="140" value="28.5"/>
      <Q id="q3" qualifier_id="141" value="14.0"/>
    </Event>
    <Event id="12" event_id="12" type_id="1" period_id="1" min="12" sec="15" team_id="t1" player_id="p3" x="30.0" y="16.0">
      <Q id="q4" qualifier_id="140" value="88.0"/>
      <Q id="q5" qualifier_id="141" value="48.0"/>
    </Event>
    <Event id="13" event_id="13" type_id="16" period_id="1" min="12" sec="19" team_id="t1" player_id="p3" x="90.0" y="50.0"/>
  </Game>
</Games>`

const testRosterXML = `<SoccerFeed>
  <SoccerDocument>
    <Team uID="t1">
      <Name>Hjemme BK</Name>
      <Player uID="p1"><PersonName><First>Anders</First><Last>Jensen</Last></PersonName></Player>
      <Player uID="p2"><PersonName><First>Bo</First><Known>Bosse</Known><Last>Larsen</Last></PersonName></Player>
      <Player uID="p3"><PersonName><First>Carl</First><Last>Nielsen</Last></PersonName></Player>
    </Team>
    <MatchData>
      <TeamData TeamRef="t1" Side="Home"/>
    </MatchData>
  </SoccerDocument>
</SoccerFeed>`

const testAnnotationsXML = `<Annotations>
  <Event event_id="13" type_id="16">
    <Q qualifier_id="321" value="0.62"/>
    <Q qualifier_id="22"/>
  </Event>
</Annotations>`

func writeTestDocs(t *testing.T) DocumentSet {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}
	return DocumentSet{
		MatchID:         "g1001",
		EventsPath:      write("f24.xml", testEventsXML),
		RosterPath:      write("f7.xml", testRosterXML),
		AnnotationsPath: write("f70.xml", testAnnotationsXML),
	}
}

func TestAnalysisServiceAnalyzePipeline(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(nil, nil, DefaultAnalyzerOptions(), logging.NewNop())
	match, err := svc.Analyze(context.Background(), writeTestDocs(t))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if match.MatchID != "g1001" || match.GameDate != "2026-03-07" {
		t.Fatalf("unexpected match header: id=%s date=%s", match.MatchID, match.GameDate)
	}

	if len(match.ThrowIns) != 1 {
		t.Fatalf("unexpected throw-in count: got=%d want=1", len(match.ThrowIns))
	}
	ti := match.ThrowIns[0]
	if ti.DelayS != 7 {
		t.Fatalf("unexpected delay: got=%v want=7", ti.DelayS)
	}
	if ti.TeamName != "Hjemme BK" || ti.TeamSide != "Home" {
		t.Fatalf("roster join failed: team=%s side=%s", ti.TeamName, ti.TeamSide)
	}
	if ti.TakerName != "Bosse" {
		t.Fatalf("known name must win: got %q", ti.TakerName)
	}
	if !ti.ShotInWindow || !ti.GoalInWindow {
		t.Fatalf("goal 8s after throw-in must register: shot=%v goal=%v", ti.ShotInWindow, ti.GoalInWindow)
	}
	if ti.ShotXG == nil || *ti.ShotXG != 0.62 {
		t.Fatalf("unexpected windowed shot xG: %v", ti.ShotXG)
	}

	if len(match.Shots) != 1 || match.Shots[0].XG != 0.62 {
		t.Fatalf("unexpected shots: %+v", match.Shots)
	}
	if match.Shots[0].PlayerName != "Carl Nielsen" {
		t.Fatalf("shooter name join failed: %q", match.Shots[0].PlayerName)
	}

	// Throw-in taker, the receiving passer and the shooter all sit in the
	// goal's backward chain.
	if len(match.ChainCredits) != 2 {
		t.Fatalf("unexpected chain credits: got=%d want=2", len(match.ChainCredits))
	}
	if len(match.TeamXG) != 1 || match.TeamXG[0].XG != 0.62 {
		t.Fatalf("unexpected team xG: %+v", match.TeamXG)
	}
	if match.ChainCount != 1 {
		t.Fatalf("unexpected chain count: got=%d want=1", match.ChainCount)
	}
}

func TestAnalysisServiceAnalyzeMissingDocumentsDegrade(t *testing.T) {
	t.Parallel()

	docs := writeTestDocs(t)
	docs.RosterPath = filepath.Join(t.TempDir(), "absent.xml")
	docs.AnnotationsPath = ""

	svc := NewAnalysisService(nil, nil, DefaultAnalyzerOptions(), logging.NewNop())
	match, err := svc.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if len(match.ThrowIns) != 1 {
		t.Fatalf("detection must survive missing roster: got=%d", len(match.ThrowIns))
	}
	if got := match.ThrowIns[0].TeamName; got != "t1" {
		t.Fatalf("missing roster must fall back to raw team id, got %q", got)
	}
	if match.Shots[0].XG != 0 {
		t.Fatalf("missing annotations must yield zero xG, got %v", match.Shots[0].XG)
	}
	if len(match.ChainCredits) != 0 {
		t.Fatalf("no xG means no chain credit, got %d rows", len(match.ChainCredits))
	}
}

func TestAnalysisServiceAnalyzeRequiresEventsPath(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(nil, nil, DefaultAnalyzerOptions(), logging.NewNop())
	_, err := svc.Analyze(context.Background(), DocumentSet{MatchID: "m1"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalysisServiceAnalyzeMemoizes(t *testing.T) {
	t.Parallel()

	docs := writeTestDocs(t)
	memo := cache.NewStore(time.Minute)
	svc := NewAnalysisService(nil, memo, DefaultAnalyzerOptions(), logging.NewNop())

	first, err := svc.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("first analyze: %v", err)
	}

	// Corrupt the source file; a memoized second run must not re-read it.
	if err := os.WriteFile(docs.EventsPath, []byte("<not-xml"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	second, err := svc.Analyze(context.Background(), docs)
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}
	if len(second.ThrowIns) != len(first.ThrowIns) || second.ChainCount != first.ChainCount {
		t.Fatal("second run must come from the memo, not a re-parse")
	}
}

func TestAnalysisServiceAnalyzeAndStoreUsingMockery(t *testing.T) {
	t.Parallel()

	repo := analysismock.NewRepository(t)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(m analysis.Match) bool {
		return m.MatchID == "g1001" && len(m.ThrowIns) == 1
	})).Return(nil).Once()

	svc := NewAnalysisService(repo, nil, DefaultAnalyzerOptions(), logging.NewNop())
	match, err := svc.AnalyzeAndStore(context.Background(), writeTestDocs(t))
	if err != nil {
		t.Fatalf("analyze and store: %v", err)
	}
	if match.MatchID != "g1001" {
		t.Fatalf("unexpected match id: %s", match.MatchID)
	}
}

func TestAnalysisServiceGetNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	repo := analysismock.NewRepository(t)
	repo.On("Get", mock.Anything, "missing").Return(analysis.Match{}, false, nil).Once()

	svc := NewAnalysisService(repo, nil, DefaultAnalyzerOptions(), logging.NewNop())
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
