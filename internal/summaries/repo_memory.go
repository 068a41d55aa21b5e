package summaries

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo stores summaries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Summary
	now  func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]Summary),
		now:  time.Now,
	}
}

// Create assigns a fresh id and stores the summary.
func (r *MemoryRepo) Create(ctx context.Context, s Summary) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		s.ID = uuid.NewString()
		if _, taken := r.byID[s.ID]; !taken {
			break
		}
	}
	r.byID[s.ID] = s
	return s, nil
}

// ListNewestFirst returns every summary ordered by CreatedAt descending,
// ties broken by id descending.
func (r *MemoryRepo) ListNewestFirst(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Summary, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// UpdateGeneratedSummary replaces the generated text and returns the updated record.
func (r *MemoryRepo) UpdateGeneratedSummary(ctx context.Context, id, text string) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return Summary{}, ErrNotFound
	}
	s.GeneratedSummary = text
	r.byID[id] = s
	return s, nil
}

// Delete removes the summary.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Ping always succeeds.
func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

var _ Repo = (*MemoryRepo)(nil)
