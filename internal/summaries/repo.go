package summaries

import "context"

// Repo defines persistence operations for summaries. The store assigns ids
// and fills CreatedAt when the caller leaves it zero. Missing ids yield
// ErrNotFound.
type Repo interface {
	Create(ctx context.Context, s Summary) (Summary, error)
	ListNewestFirst(ctx context.Context) ([]Summary, error)
	UpdateGeneratedSummary(ctx context.Context, id, text string) (Summary, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
