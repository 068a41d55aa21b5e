package summaries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"summary-backend/internal/llm"
	"summary-backend/internal/mailer"
	"summary-backend/internal/shared/metrics"
	"summary-backend/internal/shared/telemetry"
	"summary-backend/internal/shared/util"
)

// DefaultShareSubject is used when a share request carries no subject.
const DefaultShareSubject = "AI-Generated Meeting Summary"

// Service contains business logic for summaries.
type Service struct {
	Repo   Repo
	LLM    llm.Generator
	Mailer mailer.Sender
	Now    func() time.Time
}

// Summarize generates a summary for transcript using prompt and persists it
// only after the provider returns usable text.
func (s *Service) Summarize(ctx context.Context, transcript, prompt string) (Summary, error) {
	if strings.TrimSpace(transcript) == "" {
		return Summary{}, invalid("Transcript is required.", nil)
	}
	if s.Repo == nil || s.LLM == nil {
		return Summary{}, errors.New("missing dependencies")
	}

	provider := s.LLM.Name()
	start := time.Now()
	text, err := s.LLM.Generate(ctx, llm.BuildInstruction(prompt, transcript))
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveGeneration(provider, metrics.OutcomeError, elapsed)
		return Summary{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if strings.TrimSpace(text) == "" {
		metrics.ObserveGeneration(provider, metrics.OutcomeEmpty, elapsed)
		return Summary{}, fmt.Errorf("%w: %w", ErrGeneration, ErrEmptyResponse)
	}
	metrics.ObserveGeneration(provider, metrics.OutcomeSuccess, elapsed)

	created, err := s.Repo.Create(ctx, Summary{
		OriginalTranscript: transcript,
		CustomPrompt:       prompt,
		GeneratedSummary:   text,
		CreatedAt:          s.now(),
	})
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrStore, err)
	}

	telemetry.Info("summary.created", map[string]any{
		"summary_id":        created.ID,
		"provider":          provider,
		"transcript_hash":   util.HashText(transcript),
		"transcript_chars":  len(transcript),
		"summary_chars":     len(text),
		"generation_ms":     elapsed.Milliseconds(),
		"custom_prompt_set": prompt != "",
	})
	return created, nil
}

// List returns every summary, newest first. An empty store yields an empty slice.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	out, err := s.Repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if out == nil {
		out = []Summary{}
	}
	return out, nil
}

// Update replaces the generated text of an existing summary. Empty text is accepted.
func (s *Service) Update(ctx context.Context, id, text string) (Summary, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Summary{}, ErrNotFound
	}
	updated, err := s.Repo.UpdateGeneratedSummary(ctx, id, text)
	if err != nil {
		return Summary{}, storeErr(err)
	}
	telemetry.Info("summary.updated", map[string]any{
		"summary_id":    updated.ID,
		"summary_chars": len(text),
	})
	return updated, nil
}

// Delete permanently removes a summary. Deleting an absent id reports ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return storeErr(err)
	}
	telemetry.Info("summary.deleted", map[string]any{"summary_id": id})
	return nil
}

// Share emails the caller-supplied summary text. No summary is looked up or stored.
func (s *Service) Share(ctx context.Context, req ShareRequest) error {
	to, err := mailer.ParseRecipient(req.To)
	if err != nil {
		return invalid("A valid recipient email address is required.", err)
	}
	if s.Mailer == nil {
		return errors.New("missing dependencies")
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = DefaultShareSubject
	}

	err = s.Mailer.Send(ctx, mailer.Message{
		To:       to.Address,
		Subject:  subject,
		HTMLBody: req.Body,
	})
	if err != nil {
		metrics.IncShare(metrics.OutcomeError)
		return fmt.Errorf("%w: %w", ErrNotification, err)
	}
	metrics.IncShare(metrics.OutcomeSuccess)
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func storeErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}
