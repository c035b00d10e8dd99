package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rewired-gh/polylatency/internal/models"
)

const geoblockPath = "/api/geoblock"

// SiteClient queries the polymarket.com site API, which hosts the geoblock
// status endpoint.
type SiteClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSiteClient creates a new site API client.
//
// baseURL is the site root, e.g. "https://polymarket.com".
func NewSiteClient(baseURL string, timeout time.Duration) *SiteClient {
	return &SiteClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GeoStatus returns the geoblock verdict for the caller's location.
func (c *SiteClient) GeoStatus(ctx context.Context) (models.GeoStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+geoblockPath, nil)
	if err != nil {
		return models.GeoStatus{}, fmt.Errorf("polymarket/site: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.GeoStatus{}, fmt.Errorf("polymarket/site: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.GeoStatus{}, fmt.Errorf("polymarket/site: read response: %w", err)
	}

	if err := checkHTTPStatus(resp.StatusCode, body); err != nil {
		return models.GeoStatus{}, fmt.Errorf("polymarket/site: %w", err)
	}

	var status models.GeoStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return models.GeoStatus{}, fmt.Errorf("polymarket/site: decode status: %w", err)
	}

	return status, nil
}

// Ping hits the geoblock endpoint and discards the body. Used for latency
// sampling, where only the round trip matters.
func (c *SiteClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+geoblockPath, nil)
	if err != nil {
		return fmt.Errorf("polymarket/site: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("polymarket/site: http request: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("polymarket/site: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("polymarket/site: HTTP %d", resp.StatusCode)
	}

	return nil
}

// CloseIdleConnections releases the keep-alive connections held by the client.
func (c *SiteClient) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
