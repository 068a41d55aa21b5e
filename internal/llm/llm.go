package llm

import (
	"context"
	"errors"
	"fmt"
)

// Generator abstracts generative-text providers. Implementations make exactly
// one upstream call per Generate and never retry.
type Generator interface {
	// Generate returns the provider's text for instruction. An unexpected
	// response shape yields "" and a nil error; callers decide whether empty
	// text is usable.
	Generate(ctx context.Context, instruction string) (string, error)
	// Name identifies the provider in logs and metrics.
	Name() string
}

var (
	// ErrProvider wraps any failed upstream call: transport error, timeout or non-2xx status.
	ErrProvider = errors.New("provider request failed")

	// ErrNotConfigured is returned by the placeholder generator.
	ErrNotConfigured = errors.New("generative-text provider not configured")
)

// BuildInstruction embeds prompt and transcript into the single instruction
// string sent to the provider.
func BuildInstruction(prompt, transcript string) string {
	return fmt.Sprintf("Summarize the following text based on this prompt: \"%s\".\n\nText to summarize:\n%s", prompt, transcript)
}

// PlaceholderClient stands in when no provider key is configured.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, instruction string) (string, error) {
	_ = ctx
	_ = instruction
	return "", ErrNotConfigured
}

// Name implements Generator.
func (PlaceholderClient) Name() string { return "placeholder" }
