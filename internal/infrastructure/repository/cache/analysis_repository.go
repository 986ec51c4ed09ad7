package cache

import (
	"context"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	basecache "github.com/mkjeldsen/matchchain/internal/platform/cache"
)

const analysisListKey = "analysis:ids"

// AnalysisRepository is a read-through cache in front of another
// repository. Saves write through and invalidate, so a Get right after a
// Save always observes the new analysis.
type AnalysisRepository struct {
	next  analysis.Repository
	cache *basecache.Store
}

func NewAnalysisRepository(next analysis.Repository, cache *basecache.Store) *AnalysisRepository {
	return &AnalysisRepository{next: next, cache: cache}
}

type cachedMatch struct {
	match analysis.Match
	found bool
}

func (r *AnalysisRepository) Save(ctx context.Context, match analysis.Match) error {
	if err := r.next.Save(ctx, match); err != nil {
		return err
	}

	r.cache.Delete(ctx, matchKey(match.MatchID))
	r.cache.Delete(ctx, analysisListKey)
	return nil
}

func (r *AnalysisRepository) Get(ctx context.Context, matchID string) (analysis.Match, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, matchKey(matchID), func(ctx context.Context) (any, error) {
		match, found, err := r.next.Get(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatch{match: match, found: found}, nil
	})
	if err != nil {
		return analysis.Match{}, false, err
	}

	cached, _ := v.(cachedMatch)
	return cached.match, cached.found, nil
}

func (r *AnalysisRepository) ListIDs(ctx context.Context) ([]string, error) {
	v, err := r.cache.GetOrLoad(ctx, analysisListKey, func(ctx context.Context) (any, error) {
		ids, err := r.next.ListIDs(ctx)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), ids...), nil
	})
	if err != nil {
		return nil, err
	}

	ids, _ := v.([]string)
	return append([]string(nil), ids...), nil
}

func matchKey(matchID string) string {
	return "analysis:match:" + matchID
}
