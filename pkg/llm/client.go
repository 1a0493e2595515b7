package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrMalformedResponse = errors.New("llm: response has no completion content")
	ErrMissingAPIKey     = errors.New("llm: api key is not configured")
)

// Config describes an OpenAI-compatible chat completions endpoint (Groq, OpenAI, vLLM...).
type Config struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Completer produces one completion for a single user prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*Completion, error)
}

type Completion struct {
	Content      string
	Model        string
	FinishReason string
}

// ProviderError is a non-2xx answer from the provider.
type ProviderError struct {
	StatusCode int
	Type       string
	Message    string
}

func (err *ProviderError) Error() string {
	if err.Type != "" {
		return fmt.Sprintf("llm: HTTP %d: %s: %s", err.StatusCode, err.Type, err.Message)
	}
	return fmt.Sprintf("llm: HTTP %d: %s", err.StatusCode, err.Message)
}

// Temporary reports whether the same request may succeed later.
func (err *ProviderError) Temporary() bool {
	return err.StatusCode == http.StatusRequestTimeout ||
		err.StatusCode == http.StatusTooManyRequests ||
		err.StatusCode >= http.StatusInternalServerError
}

func (err *ProviderError) IsAuth() bool {
	return err.StatusCode == http.StatusUnauthorized || err.StatusCode == http.StatusForbidden
}

// IsRetryable classifies completion errors: transport failures, timeouts,
// throttling, 5xx and malformed bodies are retryable; other 4xx and
// cancellation are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrMissingAPIKey) {
		return false
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Temporary()
	}
	return true
}

type Client struct {
	httpClient *http.Client
	cfg        Config
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{httpClient: httpClient, cfg: cfg}
}

func (c *Client) Model() string {
	return c.cfg.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, prompt string) (*Completion, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("llm: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readProviderError(resp)
	}

	var wire chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrMalformedResponse, err)
	}
	if len(wire.Choices) == 0 || strings.TrimSpace(wire.Choices[0].Message.Content) == "" {
		return nil, ErrMalformedResponse
	}

	model := wire.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &Completion{
		Content:      wire.Choices[0].Message.Content,
		Model:        model,
		FinishReason: wire.Choices[0].FinishReason,
	}, nil
}

// readProviderError parses {"error":{"type","message"}} and falls back to the raw body.
func readProviderError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var wire struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &wire) == nil && wire.Error.Message != "" {
		return &ProviderError{StatusCode: resp.StatusCode, Type: wire.Error.Type, Message: wire.Error.Message}
	}

	message := strings.TrimSpace(string(body))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &ProviderError{StatusCode: resp.StatusCode, Message: message}
}
