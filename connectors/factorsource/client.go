// Package factorsource fetches emission factor sets from a remote
// JSON endpoint. It implements factors.Provider so a curated dataset
// can replace the built-in defaults without touching the calculator.
package factorsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/greenloop/biolca/core/factors"
	"github.com/greenloop/biolca/core/lca"
)

// Config holds the remote source settings.
type Config struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	APIKey  string `json:"api_key"`
}

// Client retrieves factor sets over HTTP.
type Client struct {
	url    string
	apiKey string
	httpc  *http.Client
}

// New builds a Client for the given endpoint. Options adjust the HTTP
// client and authentication.
func New(url string, opts ...Option) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("factor source url is required")
	}
	c := &Client{
		url:   url,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Factors fetches and validates the remote factor set.
func (c *Client) Factors(ctx context.Context) (lca.FactorSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return lca.FactorSet{}, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return lca.FactorSet{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return lca.FactorSet{}, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return lca.FactorSet{}, fmt.Errorf("failed to read response: %w", err)
	}
	var set lca.FactorSet
	if err := json.Unmarshal(body, &set); err != nil {
		return lca.FactorSet{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := factors.Validate(set); err != nil {
		return lca.FactorSet{}, fmt.Errorf("remote factor set rejected: %w", err)
	}
	return set, nil
}
