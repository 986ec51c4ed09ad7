package analysis

import (
	"github.com/mkjeldsen/matchchain/internal/domain/chain"
	"github.com/mkjeldsen/matchchain/internal/domain/throwin"
)

// ThrowIn is a detected throw-in enriched with its forward possession chain
// and the windowed shot search. Sequence is nil when the originating event
// could not be located in the pass/shot sequence.
type ThrowIn struct {
	throwin.Record
	Sequence      *chain.Summary
	BallRetention bool
	ShotInWindow  bool
	GoalInWindow  bool
	ShotDelayS    *float64
	ShotX         *float64
	ShotY         *float64
	ShotEventID   string
	ShotXG        *float64
}

// Shot joins one annotated shot across the three documents: feed metadata,
// roster identities and the annotation's xG plus play phase.
type Shot struct {
	EventID    string
	TeamID     string
	TeamName   string
	PlayerID   string
	PlayerName string
	Minute     int
	Second     int
	TimeS      int
	PeriodID   int
	IsGoal     bool
	XG         float64
	Phase      string
}

// ChainCredit is one row per unique (team, player) participant in the
// backward chain of a positive-xG shot. The shot's full xG is credited to
// each participant once, deliberately undivided.
type ChainCredit struct {
	ShotEventID string
	TeamName    string
	PlayerName  string
	XG          float64
}

// PlayerChainTotal aggregates chain credit per (team, player) within a match.
// Contribs counts credits in chains that end with a shot; AllChainContribs
// counts the player's pass/shot events across every chain of the match and
// serves as the denominator for the per-all-chains rate.
type PlayerChainTotal struct {
	TeamName         string
	PlayerName       string
	Contribs         int
	XGChain          float64
	AllChainContribs int
}

func (p PlayerChainTotal) PerChainWithShot() float64 {
	if p.Contribs == 0 {
		return 0
	}
	return p.XGChain / float64(p.Contribs)
}

func (p PlayerChainTotal) PerAllChains() float64 {
	if p.AllChainContribs == 0 {
		return 0
	}
	return p.XGChain / float64(p.AllChainContribs)
}

// TeamXG is the per-team shot/xG tally for one match.
type TeamXG struct {
	TeamName string
	Shots    int
	XG       float64
}

// Match is the full analytics output for one fixture. ChainCount is the
// number of possession chains the match's pass/shot sequence segments into.
type Match struct {
	MatchID      string
	GameDate     string
	ChainCount   int
	ThrowIns     []ThrowIn
	Shots        []Shot
	ChainCredits []ChainCredit
	PlayerChains []PlayerChainTotal
	TeamXG       []TeamXG
}
