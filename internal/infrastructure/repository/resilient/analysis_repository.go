package resilient

import (
	"context"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	"github.com/mkjeldsen/matchchain/internal/platform/resilience"
)

// AnalysisRepository guards another repository with a circuit breaker so a
// struggling database sheds load fast instead of queueing every request
// behind its timeouts.
type AnalysisRepository struct {
	next    analysis.Repository
	breaker *resilience.CircuitBreaker
}

func NewAnalysisRepository(next analysis.Repository, cfg resilience.CircuitBreakerConfig) *AnalysisRepository {
	cfg = resilience.NormalizeCircuitBreakerConfig(cfg)
	return &AnalysisRepository{
		next:    next,
		breaker: resilience.NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq),
	}
}

func (r *AnalysisRepository) Save(ctx context.Context, match analysis.Match) error {
	if err := r.breaker.Allow(); err != nil {
		return err
	}

	if err := r.next.Save(ctx, match); err != nil {
		r.breaker.RecordFailure()
		return err
	}

	r.breaker.RecordSuccess()
	return nil
}

func (r *AnalysisRepository) Get(ctx context.Context, matchID string) (analysis.Match, bool, error) {
	if err := r.breaker.Allow(); err != nil {
		return analysis.Match{}, false, err
	}

	match, found, err := r.next.Get(ctx, matchID)
	if err != nil {
		r.breaker.RecordFailure()
		return analysis.Match{}, false, err
	}

	r.breaker.RecordSuccess()
	return match, found, nil
}

func (r *AnalysisRepository) ListIDs(ctx context.Context) ([]string, error) {
	if err := r.breaker.Allow(); err != nil {
		return nil, err
	}

	ids, err := r.next.ListIDs(ctx)
	if err != nil {
		r.breaker.RecordFailure()
		return nil, err
	}

	r.breaker.RecordSuccess()
	return ids, nil
}
