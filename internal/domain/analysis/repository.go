package analysis

import "context"

// Repository stores computed match analytics for the reporting API.
type Repository interface {
	Save(ctx context.Context, match Match) error
	Get(ctx context.Context, matchID string) (Match, bool, error)
	ListIDs(ctx context.Context) ([]string, error)
}
