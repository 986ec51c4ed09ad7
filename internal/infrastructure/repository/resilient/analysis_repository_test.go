package resilient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	analysismock "github.com/mkjeldsen/matchchain/internal/mocks/domain/analysis"
	"github.com/mkjeldsen/matchchain/internal/platform/resilience"
)

func breakerConfig(threshold int) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}
}

func TestBreakerPassesThroughHealthyCalls(t *testing.T) {
	t.Parallel()

	next := analysismock.NewRepository(t)
	next.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	next.On("Get", mock.Anything, "m1").Return(analysis.Match{MatchID: "m1"}, true, nil).Once()
	next.On("ListIDs", mock.Anything).Return([]string{"m1"}, nil).Once()

	repo := NewAnalysisRepository(next, breakerConfig(3))
	ctx := context.Background()

	if err := repo.Save(ctx, analysis.Match{MatchID: "m1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if match, found, err := repo.Get(ctx, "m1"); err != nil || !found || match.MatchID != "m1" {
		t.Fatalf("get: match=%+v found=%v err=%v", match, found, err)
	}
	if ids, err := repo.ListIDs(ctx); err != nil || len(ids) != 1 {
		t.Fatalf("list: ids=%v err=%v", ids, err)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection refused")
	next := analysismock.NewRepository(t)
	next.On("Get", mock.Anything, "m1").Return(analysis.Match{}, false, dbErr).Twice()

	repo := NewAnalysisRepository(next, breakerConfig(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, _, err := repo.Get(ctx, "m1"); !errors.Is(err, dbErr) {
			t.Fatalf("call %d: expected backend error, got %v", i, err)
		}
	}

	// Third call must be rejected without touching the backend.
	if _, _, err := repo.Get(ctx, "m1"); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if err := repo.Save(ctx, analysis.Match{MatchID: "m1"}); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("save should also be rejected, got %v", err)
	}
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("timeout")
	next := analysismock.NewRepository(t)
	next.On("ListIDs", mock.Anything).Return(nil, dbErr).Once()
	next.On("ListIDs", mock.Anything).Return([]string{}, nil).Once()
	next.On("ListIDs", mock.Anything).Return(nil, dbErr).Once()

	repo := NewAnalysisRepository(next, breakerConfig(2))
	ctx := context.Background()

	if _, err := repo.ListIDs(ctx); !errors.Is(err, dbErr) {
		t.Fatalf("first call: %v", err)
	}
	if _, err := repo.ListIDs(ctx); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if _, err := repo.ListIDs(ctx); !errors.Is(err, dbErr) {
		t.Fatalf("third call should reach the backend again, got %v", err)
	}

	// One failure after a success is below the threshold of two.
	next.On("ListIDs", mock.Anything).Return([]string{}, nil).Once()
	if _, err := repo.ListIDs(ctx); err != nil {
		t.Fatalf("circuit should still be closed: %v", err)
	}
}
