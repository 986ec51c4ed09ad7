package usecase

import (
	"sort"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	"github.com/mkjeldsen/matchchain/internal/domain/annotation"
	"github.com/mkjeldsen/matchchain/internal/domain/chain"
	"github.com/mkjeldsen/matchchain/internal/domain/event"
	"github.com/mkjeldsen/matchchain/internal/feed/opta"
)

type playerKey struct {
	teamName   string
	playerName string
}

// attributeChains builds one credit row per unique (team, player) in the
// backward chain of every positive-xG shot, crediting the shot's full xG to
// each participant. The shooter is always included even when the backward
// walk is trimmed. Penalty shots are skipped when penalties are excluded.
// The second return value is the number of possession chains the match's
// pass/shot sequence segments into.
func (s *AnalysisService) attributeChains(events []event.Event, ann annotation.Table) ([]analysis.ChainCredit, int) {
	seq := passShotEvents(events)
	if len(seq) == 0 {
		return nil, 0
	}

	chainIDs := chain.AssignIDs(seq, s.opts.MaxChainGapS)
	chainCount := chainIDs[len(chainIDs)-1] + 1

	var credits []analysis.ChainCredit
	for i, shot := range seq {
		if !shot.IsShot() {
			continue
		}
		if !s.opts.IncludePenalties && shot.Qualifiers.Has(event.QualifierPenalty) {
			continue
		}
		xg := ann.XG(shot.ID)
		if xg <= 0 {
			continue
		}

		idx := chain.Backward(seq, i, s.opts.MaxChainGapS)
		if s.opts.LastPassOnly {
			idx = lastPassAndShot(seq, idx, i)
		}

		contributors := make(map[playerKey]struct{}, len(idx)+1)
		for _, j := range idx {
			contributors[creditKey(seq[j])] = struct{}{}
		}
		contributors[creditKey(shot)] = struct{}{}

		keys := make([]playerKey, 0, len(contributors))
		for k := range contributors {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(a, b int) bool {
			if keys[a].teamName != keys[b].teamName {
				return keys[a].teamName < keys[b].teamName
			}
			return keys[a].playerName < keys[b].playerName
		})

		for _, k := range keys {
			credits = append(credits, analysis.ChainCredit{
				ShotEventID: shot.ID,
				TeamName:    k.teamName,
				PlayerName:  k.playerName,
				XG:          xg,
			})
		}
	}
	return credits, chainCount
}

func creditKey(e event.Event) playerKey {
	name := e.PlayerName
	if name == "" {
		name = e.PlayerID
	}
	if name == "" {
		name = "Unknown"
	}
	return playerKey{teamName: e.TeamName, playerName: name}
}

// lastPassAndShot reduces a backward chain to the final pass plus the shot.
func lastPassAndShot(seq []event.Event, idx []int, shotIdx int) []int {
	lastPass := -1
	for _, j := range idx {
		if seq[j].IsPass() {
			lastPass = j
		}
	}
	if lastPass < 0 {
		return []int{shotIdx}
	}
	return []int{lastPass, shotIdx}
}

// allChainContribs counts, per (team, player), every pass/shot event across
// all possession chains of all games. It is the denominator for the
// per-all-chains xG rate.
func (s *AnalysisService) allChainContribs(games []opta.Game) map[playerKey]int {
	contribs := make(map[playerKey]int)
	for _, game := range games {
		for _, e := range passShotEvents(game.Events) {
			contribs[creditKey(e)]++
		}
	}
	return contribs
}

// aggregatePlayerChains rolls credit rows up per (team, player), sorted by
// total chain xG descending.
func aggregatePlayerChains(credits []analysis.ChainCredit, allContribs map[playerKey]int) []analysis.PlayerChainTotal {
	if len(credits) == 0 {
		return nil
	}

	totals := make(map[playerKey]*analysis.PlayerChainTotal, len(credits))
	order := make([]playerKey, 0, len(credits))
	for _, c := range credits {
		k := playerKey{teamName: c.TeamName, playerName: c.PlayerName}
		t, ok := totals[k]
		if !ok {
			t = &analysis.PlayerChainTotal{
				TeamName:         c.TeamName,
				PlayerName:       c.PlayerName,
				AllChainContribs: allContribs[k],
			}
			totals[k] = t
			order = append(order, k)
		}
		t.Contribs++
		t.XGChain += c.XG
	}

	out := make([]analysis.PlayerChainTotal, 0, len(order))
	for _, k := range order {
		out = append(out, *totals[k])
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].XGChain > out[b].XGChain
	})
	return out
}
