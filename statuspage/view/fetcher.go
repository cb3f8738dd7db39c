package view

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smell-of-curry/pokebedrock-status/statuspage/proxy"
)

// HTTPFetcher fetches the status from a status proxy endpoint over HTTP.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher returns a fetcher for the endpoint at url. timeout bounds each
// request; zero means no bound besides the context.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch requests the status. The proxy answers errors with a JSON status as
// well, so the body is decoded whatever the response code.
func (f *HTTPFetcher) Fetch(ctx context.Context) (proxy.Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return proxy.Status{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return proxy.Status{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var st proxy.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return proxy.Status{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return st, nil
}
