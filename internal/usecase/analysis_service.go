package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	"github.com/mkjeldsen/matchchain/internal/domain/annotation"
	"github.com/mkjeldsen/matchchain/internal/domain/chain"
	"github.com/mkjeldsen/matchchain/internal/domain/event"
	"github.com/mkjeldsen/matchchain/internal/domain/identity"
	"github.com/mkjeldsen/matchchain/internal/domain/throwin"
	"github.com/mkjeldsen/matchchain/internal/feed/opta"
	"github.com/mkjeldsen/matchchain/internal/platform/cache"
	"github.com/mkjeldsen/matchchain/internal/platform/logging"
)

// SchemaVersion tags memoized results; bump it whenever the shape or
// semantics of the computed analytics change.
const SchemaVersion = 12

// DocumentSet identifies one match's three source documents. RosterPath and
// AnnotationsPath may be empty or point at missing files; the analysis
// degrades to raw ids and zero xG instead of failing.
type DocumentSet struct {
	MatchID         string
	EventsPath      string
	RosterPath      string
	AnnotationsPath string
}

// AnalyzerOptions carries every tunable threshold of the engine.
type AnalyzerOptions struct {
	MaxChainGapS        int
	ShotWindowS         int
	RetentionThresholdS float64
	OutlierThresholdS   float64
	IncludePenalties    bool
	LastPassOnly        bool
	SchemaVersion       int
}

func DefaultAnalyzerOptions() AnalyzerOptions {
	return AnalyzerOptions{
		MaxChainGapS:        chain.DefaultMaxGapSeconds,
		ShotWindowS:         throwin.DefaultShotWindowS,
		RetentionThresholdS: throwin.DefaultRetentionThresholdS,
		OutlierThresholdS:   throwin.DefaultOutlierThresholdS,
		IncludePenalties:    true,
		SchemaVersion:       SchemaVersion,
	}
}

// AnalysisService runs the per-match pipeline: read the three documents,
// normalize events, detect and enrich throw-ins, attribute xG chain credit
// and classify shots. The pipeline is pure in its inputs, so results are
// memoized per document set.
type AnalysisService struct {
	repo   analysis.Repository
	memo   *cache.Store
	opts   AnalyzerOptions
	logger *logging.Logger
}

func NewAnalysisService(repo analysis.Repository, memo *cache.Store, opts AnalyzerOptions, logger *logging.Logger) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.MaxChainGapS <= 0 {
		opts.MaxChainGapS = chain.DefaultMaxGapSeconds
	}
	if opts.ShotWindowS <= 0 {
		opts.ShotWindowS = throwin.DefaultShotWindowS
	}
	if opts.RetentionThresholdS <= 0 {
		opts.RetentionThresholdS = throwin.DefaultRetentionThresholdS
	}
	if opts.OutlierThresholdS <= 0 {
		opts.OutlierThresholdS = throwin.DefaultOutlierThresholdS
	}
	if opts.SchemaVersion <= 0 {
		opts.SchemaVersion = SchemaVersion
	}
	return &AnalysisService{
		repo:   repo,
		memo:   memo,
		opts:   opts,
		logger: logger,
	}
}

// Analyze computes the full analytics record for one match.
func (s *AnalysisService) Analyze(ctx context.Context, docs DocumentSet) (analysis.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Analyze")
	defer span.End()

	if strings.TrimSpace(docs.EventsPath) == "" {
		return analysis.Match{}, fmt.Errorf("%w: events path is required", ErrInvalidInput)
	}

	if s.memo == nil {
		return s.analyzeMatch(ctx, docs), nil
	}

	key := cache.MatchKey(docs.EventsPath, docs.RosterPath, docs.AnnotationsPath, s.opts.SchemaVersion)
	value, err := s.memo.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.analyzeMatch(ctx, docs), nil
	})
	if err != nil {
		return analysis.Match{}, err
	}

	match, ok := value.(analysis.Match)
	if !ok {
		return analysis.Match{}, fmt.Errorf("unexpected cached value for match %s", docs.MatchID)
	}
	if docs.MatchID != "" {
		match.MatchID = docs.MatchID
	}
	return match, nil
}

// AnalyzeAndStore computes and persists the analytics record.
func (s *AnalysisService) AnalyzeAndStore(ctx context.Context, docs DocumentSet) (analysis.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.AnalyzeAndStore")
	defer span.End()

	match, err := s.Analyze(ctx, docs)
	if err != nil {
		return analysis.Match{}, err
	}
	if match.MatchID == "" {
		return analysis.Match{}, fmt.Errorf("%w: match id is required to store results", ErrInvalidInput)
	}

	if err := s.repo.Save(ctx, match); err != nil {
		return analysis.Match{}, fmt.Errorf("save match analysis: %w", err)
	}

	s.logger.InfoContext(ctx, "match analyzed",
		"match_id", match.MatchID,
		"throw_ins", len(match.ThrowIns),
		"shots", len(match.Shots),
		"chains", match.ChainCount,
	)
	return match, nil
}

// Get returns a previously stored analytics record.
func (s *AnalysisService) Get(ctx context.Context, matchID string) (analysis.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Get")
	defer span.End()

	if strings.TrimSpace(matchID) == "" {
		return analysis.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	match, found, err := s.repo.Get(ctx, matchID)
	if err != nil {
		return analysis.Match{}, fmt.Errorf("get match analysis: %w", err)
	}
	if !found {
		return analysis.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return match, nil
}

// ListMatchIDs returns the ids of all stored analyses.
func (s *AnalysisService) ListMatchIDs(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.ListMatchIDs")
	defer span.End()

	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list match ids: %w", err)
	}
	return ids, nil
}

// analyzeMatch is the pure pipeline body. The roster and annotation
// documents have no dependency on each other and are read concurrently; the
// event feed needs the identity table and is read afterwards.
func (s *AnalysisService) analyzeMatch(ctx context.Context, docs DocumentSet) analysis.Match {
	var (
		ids *identity.Table
		ann annotation.Table
	)
	var wg conc.WaitGroup
	wg.Go(func() { ids = opta.ReadRoster(docs.RosterPath) })
	wg.Go(func() { ann = opta.ReadAnnotations(docs.AnnotationsPath) })
	wg.Wait()

	games := opta.ReadEvents(docs.EventsPath, ids)

	match := analysis.Match{MatchID: docs.MatchID}
	if len(games) > 0 {
		match.GameDate = games[0].Date
		if match.MatchID == "" {
			match.MatchID = games[0].ID
		}
	}

	for _, game := range games {
		records := throwin.Detect(game.Events, s.opts.OutlierThresholdS)
		match.ThrowIns = append(match.ThrowIns, s.enrichThrowIns(game.Events, records, ann)...)
		match.Shots = append(match.Shots, buildShots(game.Events, ann)...)

		credits, chains := s.attributeChains(game.Events, ann)
		match.ChainCredits = append(match.ChainCredits, credits...)
		match.ChainCount += chains
	}

	match.PlayerChains = aggregatePlayerChains(match.ChainCredits, s.allChainContribs(games))
	match.TeamXG = aggregateTeamXG(match.Shots)

	if len(games) == 0 {
		s.logger.DebugContext(ctx, "no games decoded", "events_path", docs.EventsPath)
	}
	return match
}

func passShotEvents(events []event.Event) []event.Event {
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.IsPass() || e.IsShot() {
			out = append(out, e)
		}
	}
	return out
}
