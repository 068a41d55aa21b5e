package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	store   Pinger
	backend string
}

// NewService constructs a health service. backend names the store in the
// payload ("postgres" reports "up", anything else is reported as is).
func NewService(store Pinger, backend string) *Service {
	return &Service{store: store, backend: backend}
}

// Status pings the store and returns the health payload. ok is false when
// the ping fails.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	if s.store == nil {
		return map[string]any{"ok": true, "db": "none"}, true
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		return map[string]any{"ok": false, "db": "down", "error": err.Error()}, false
	}
	db := s.backend
	if db == "postgres" {
		db = "up"
	}
	return map[string]any{"ok": true, "db": db}, true
}
