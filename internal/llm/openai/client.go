package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"summary-backend/internal/llm"
)

const defaultTimeout = 120 * time.Second

// Options configures a Client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implements llm.Generator using OpenAI chat completions.
type Client struct {
	client *goopenai.Client
	model  string
}

// NewClient constructs a new OpenAI client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := goopenai.DefaultConfig(opts.APIKey)
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.BaseURL = strings.TrimRight(base, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		client: goopenai.NewClientWithConfig(cfg),
		model:  opts.Model,
	}, nil
}

// Name implements llm.Generator.
func (c *Client) Name() string { return "openai" }

// Generate sends instruction as a single user message and returns the first
// choice's content.
func (c *Client) Generate(ctx context.Context, instruction string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: instruction},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %w", llm.ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
