package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"summary-backend/internal/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 120 * time.Second

	// maxErrorBody bounds how much of a failed response is echoed into errors.
	maxErrorBody = 512
)

// Options configures a Client. Endpoint, when set, is the full
// generateContent URL and takes precedence over Model.
type Options struct {
	APIKey     string
	Model      string
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client implements llm.Generator against the Gemini generateContent REST API.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient constructs a Gemini client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		model := strings.TrimSpace(opts.Model)
		if model == "" {
			model = defaultModel
		}
		endpoint = defaultBaseURL + "/" + model + ":generateContent"
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid gemini endpoint: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     opts.APIKey,
		endpoint:   endpoint,
		httpClient: httpClient,
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig struct{}  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Name implements llm.Generator.
func (c *Client) Name() string { return "gemini" }

// Generate sends instruction as a single user part and returns the first
// candidate's first text part.
func (c *Client) Generate(ctx context.Context, instruction string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: instruction}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("%w: gemini request timeout: %w", llm.ErrProvider, redact(err, c.apiKey))
		}
		return "", fmt.Errorf("%w: %w", llm.ErrProvider, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", llm.ErrProvider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: Gemini API responded with status: %d: %s", llm.ErrProvider, resp.StatusCode, excerpt(body))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) requestURL() string {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return c.endpoint
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String()
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}

// redact strips the API key from transport errors, which embed the request URL.
func redact(err error, apiKey string) error {
	if apiKey == "" || !strings.Contains(err.Error(), apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), apiKey, "REDACTED"))
}
