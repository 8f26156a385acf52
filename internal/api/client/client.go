// Package client provides a thin HTTP client for the pricing analysis
// API, used by the CLI subcommands that talk to a running server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// Client is a thin HTTP client for the pricing analysis API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Analyze requests a market analysis for a search term.
func (c *Client) Analyze(ctx context.Context, term string, refresh bool) (*domain.RunResult, error) {
	body := map[string]any{"term": term, "refresh": refresh}
	var result domain.RunResult
	if err := c.post(ctx, "/api/v1/analyze", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChatResponse is the answer to a chat question.
type ChatResponse struct {
	Answer string `json:"answer"`
	RunID  string `json:"run_id,omitempty"`
}

// Chat asks a question about a previously analyzed term.
func (c *Client) Chat(ctx context.Context, term, question string) (*ChatResponse, error) {
	body := map[string]any{"term": term, "question": question}
	var resp ChatResponse
	if err := c.post(ctx, "/api/v1/chat", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post performs a POST request with a JSON body and decodes the response into dst.
func (c *Client) post(ctx context.Context, path string, body, dst any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return fmt.Errorf("API server not running at %s", c.baseURL)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	if dst != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func isConnectionRefused(err error) bool {
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "connect: connection refused")
}
