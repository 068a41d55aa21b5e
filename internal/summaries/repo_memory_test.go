package summaries

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryRepoAssignsUniqueIDs(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := repo.Create(ctx, Summary{OriginalTranscript: "t", GeneratedSummary: "s"})
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			ids <- s.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
	list, err := repo.ListNewestFirst(ctx)
	if err != nil {
		t.Fatalf("ListNewestFirst: %v", err)
	}
	if len(list) != n {
		t.Fatalf("expected %d summaries, got %d", n, len(list))
	}
}

func TestMemoryRepoStampsCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	fixed := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	s, err := repo.Create(context.Background(), Summary{OriginalTranscript: "t", GeneratedSummary: "s"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !s.CreatedAt.Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, s.CreatedAt)
	}
}

func TestMemoryRepoListOrdering(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{base, base.Add(2 * time.Hour), base.Add(time.Hour), base.Add(time.Hour)} {
		if _, err := repo.Create(ctx, Summary{OriginalTranscript: "t", GeneratedSummary: "s", CreatedAt: at}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := repo.ListNewestFirst(ctx)
	if err != nil {
		t.Fatalf("ListNewestFirst: %v", err)
	}
	for i := 1; i < len(list); i++ {
		prev, cur := list[i-1], list[i]
		if cur.CreatedAt.After(prev.CreatedAt) {
			t.Fatalf("not newest first at %d", i)
		}
		if cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID > prev.ID {
			t.Fatalf("tie not broken by id desc at %d", i)
		}
	}
}

func TestMemoryRepoUpdateAndDeleteMissing(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if _, err := repo.UpdateGeneratedSummary(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoHonoursCancelledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.Create(ctx, Summary{OriginalTranscript: "t", GeneratedSummary: "s"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := repo.Ping(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
