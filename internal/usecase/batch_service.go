package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
)

const (
	batchStatusSuccess = "success"
	batchStatusFailed  = "failed"
)

// DefaultBatchWorkers bounds concurrent document parsing when the caller
// does not size the pool.
const DefaultBatchWorkers = 4

// BatchItem is one entry of an analyze manifest.
type BatchItem struct {
	MatchID         string `json:"matchId"`
	EventsPath      string `json:"eventsPath" validate:"required"`
	RosterPath      string `json:"rosterPath"`
	AnnotationsPath string `json:"annotationsPath"`
}

// BatchTaskResult reports the outcome of one manifest entry.
type BatchTaskResult struct {
	MatchID    string          `json:"matchId"`
	EventsPath string          `json:"eventsPath"`
	Status     string          `json:"status"`
	Message    string          `json:"message,omitempty"`
	DurationMs int64           `json:"durationMs"`
	Match      *analysis.Match `json:"match,omitempty"`
}

// BatchResult aggregates a full manifest run.
type BatchResult struct {
	Tasks        []BatchTaskResult `json:"tasks"`
	SuccessCount int               `json:"successCount"`
	FailedCount  int               `json:"failedCount"`
}

// AnalyzeBatch runs every manifest item through the pipeline on a bounded
// worker pool. Individual failures are reported per task and never abort
// the rest of the batch.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, items []BatchItem, workers int) (BatchResult, error) {
	var result BatchResult
	if len(items) == 0 {
		return result, nil
	}

	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make(chan BatchTaskResult, len(items))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workers)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, item := range items {
		item := item
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			start := time.Now()
			row := BatchTaskResult{
				MatchID:    item.MatchID,
				EventsPath: item.EventsPath,
			}

			match, err := s.Analyze(ctx, DocumentSet{
				MatchID:         item.MatchID,
				EventsPath:      item.EventsPath,
				RosterPath:      item.RosterPath,
				AnnotationsPath: item.AnnotationsPath,
			})
			if err != nil {
				row.Status = batchStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = batchStatusSuccess
				row.MatchID = match.MatchID
				row.Match = &match
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			wg.Done()
			return BatchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	wg.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].MatchID != result.Tasks[j].MatchID {
			return result.Tasks[i].MatchID < result.Tasks[j].MatchID
		}
		return result.Tasks[i].EventsPath < result.Tasks[j].EventsPath
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	return result, nil
}
