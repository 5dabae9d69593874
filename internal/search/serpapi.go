// README: Thin SerpAPI HTTP client shared by the flights and weather adapters.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const serpSource = "SerpAPI"

// SerpClient issues query-string GET requests against the SerpAPI search
// endpoint and decodes the top-level JSON object.
type SerpClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSerpClient builds a client with a per-request timeout. An empty apiKey
// is tolerated; Configured reports it and adapters degrade to fallbacks.
func NewSerpClient(apiKey string, timeout time.Duration) *SerpClient {
	return &SerpClient{
		apiKey:     apiKey,
		baseURL:    "https://serpapi.com",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an API key is present.
func (c *SerpClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Get runs one search and returns the raw top-level fields for the caller
// to pick apart leniently.
func (c *SerpClient) Get(ctx context.Context, params url.Values) (map[string]json.RawMessage, error) {
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("serpapi: status %d: %s", resp.StatusCode, string(body))
	}

	var out map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("serpapi: decode: %w", err)
	}
	return out, nil
}
