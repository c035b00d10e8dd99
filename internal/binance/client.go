// Package binance provides the exchange ping endpoint client used as a
// latency reference target.
package binance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const pingPath = "/api/v3/ping"

// Client calls the Binance public REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new Binance client.
//
// baseURL is the API root, e.g. "https://api.binance.com".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ping performs one round trip against the ping endpoint. The success body
// is trivial and discarded.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pingPath, nil)
	if err != nil {
		return fmt.Errorf("binance: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("binance: http request: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("binance: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("binance: HTTP %d", resp.StatusCode)
	}

	return nil
}

// CloseIdleConnections releases the keep-alive connections held by the client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
