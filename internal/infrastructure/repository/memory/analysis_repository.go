package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
)

// AnalysisRepository keeps analyzed matches in process memory. It backs the
// API when no database is configured and the batch runner's dry mode.
type AnalysisRepository struct {
	mu    sync.RWMutex
	items map[string]analysis.Match
}

func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{
		items: make(map[string]analysis.Match),
	}
}

func (r *AnalysisRepository) Save(_ context.Context, match analysis.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[match.MatchID] = match
	return nil
}

func (r *AnalysisRepository) Get(_ context.Context, matchID string) (analysis.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return analysis.Match{}, false, nil
	}
	return m, true, nil
}

func (r *AnalysisRepository) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
