// Package polymarket provides read-only clients for the Polymarket APIs:
// the Gamma markets API, the CLOB price API, the site geoblock endpoint,
// and the CLOB WebSocket endpoint.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rewired-gh/polylatency/internal/models"
)

// GammaClient queries the Gamma markets API for market discovery.
type GammaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGammaClient creates a new Gamma API client.
//
// baseURL is the Gamma API root, e.g. "https://gamma-api.polymarket.com".
func NewGammaClient(baseURL string, timeout time.Duration) *GammaClient {
	return &GammaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// MarketsBySlug returns the markets matching the given slug. An empty result
// is a miss, not an error.
func (c *GammaClient) MarketsBySlug(ctx context.Context, slug string) ([]models.Market, error) {
	q := url.Values{}
	q.Set("slug", slug)

	body, err := c.doGet(ctx, "/markets?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("polymarket/gamma: get markets by slug %s: %w", slug, err)
	}

	var markets []models.Market
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode markets: %w", err)
	}

	return markets, nil
}

// Markets returns up to limit markets filtered by closed state.
func (c *GammaClient) Markets(ctx context.Context, limit int, closed bool) ([]models.Market, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("closed", strconv.FormatBool(closed))

	body, err := c.doGet(ctx, "/markets?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("polymarket/gamma: get markets: %w", err)
	}

	var markets []models.Market
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode markets: %w", err)
	}

	return markets, nil
}

// CloseIdleConnections releases the keep-alive connections held by the client.
func (c *GammaClient) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// doGet sends an unauthenticated GET request to the Gamma API.
func (c *GammaClient) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if err := checkHTTPStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	return body, nil
}

// checkHTTPStatus maps non-2xx status codes to errors.
func checkHTTPStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	if statusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", models.ErrNotFound, string(body))
	}
	return fmt.Errorf("HTTP %d: %s", statusCode, string(body))
}
