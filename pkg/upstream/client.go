package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Defaults applied when Config fields are zero.
const (
	DefaultChatPath = "/chat"
	DefaultTimeout  = 30 * time.Second
)

// Config contains the upstream client configuration.
type Config struct {
	// BaseURL is the root URL of the LLM service.
	BaseURL string

	// ChatPath is the chat endpoint path, appended to BaseURL.
	ChatPath string

	// Timeout bounds the whole request, connection included.
	Timeout time.Duration
}

// ChatRequest is the payload forwarded to the LLM chat endpoint.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
	Email     string `json:"email"`
}

// ChatResponse is the payload returned by the LLM chat endpoint.
// Response defaults to the empty string when the field is absent.
type ChatResponse struct {
	Response string `json:"response"`
}

// Client sends chat requests to the LLM service over HTTP.
type Client struct {
	chatURL string
	timeout time.Duration
	client  *http.Client
}

// NewClient creates a client for the given configuration. Zero config
// fields fall back to DefaultChatPath and DefaultTimeout.
func NewClient(config Config) *Client {
	chatPath := config.ChatPath
	if chatPath == "" {
		chatPath = DefaultChatPath
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		chatURL: strings.TrimSuffix(config.BaseURL, "/") + chatPath,
		timeout: timeout,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// Chat forwards a validated chat request to the LLM service and returns the
// parsed response. Failures are classified into the package's typed errors;
// exactly one attempt is made.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.WarnContext(ctx, "upstream returned error status",
			"status", resp.StatusCode,
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(responseBody),
		}
	}

	var chatResp ChatResponse
	if len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, &chatResp); err != nil {
			return nil, &ParseError{
				RawResponse: string(responseBody),
				Cause:       err,
			}
		}
	}

	slog.DebugContext(ctx, "upstream request completed",
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return &chatResp, nil
}

// Timeout returns the configured wait ceiling.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// classifyTransportError maps a transport failure to a typed error.
// Timeouts (client deadline or context deadline) become *TimeoutError;
// everything else that happened before a response becomes *ConnectionError.
func (c *Client) classifyTransportError(ctx context.Context, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &TimeoutError{Timeout: c.timeout}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: c.timeout}
	}
	return &ConnectionError{Cause: err}
}
