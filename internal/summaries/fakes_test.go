package summaries

import (
	"context"
	"sync"

	"summary-backend/internal/mailer"
)

type fakeGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls []string
}

func (g *fakeGenerator) Generate(ctx context.Context, instruction string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, instruction)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *fakeGenerator) Name() string { return "fake" }

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []mailer.Message
}

func (s *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

// brokenRepo fails every call with err.
type brokenRepo struct {
	err error
}

func (r brokenRepo) Create(context.Context, Summary) (Summary, error) { return Summary{}, r.err }
func (r brokenRepo) ListNewestFirst(context.Context) ([]Summary, error) {
	return nil, r.err
}
func (r brokenRepo) UpdateGeneratedSummary(context.Context, string, string) (Summary, error) {
	return Summary{}, r.err
}
func (r brokenRepo) Delete(context.Context, string) error { return r.err }
func (r brokenRepo) Ping(context.Context) error           { return r.err }
