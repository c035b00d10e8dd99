package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ClobClient is the REST client for the Polymarket CLOB (Central Limit
// Order Book) API. Only the unauthenticated price read path is needed here.
type ClobClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClobClient creates a new CLOB REST client.
//
// baseURL is the CLOB API root, e.g. "https://clob.polymarket.com".
func NewClobClient(baseURL string, timeout time.Duration) *ClobClient {
	return &ClobClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PriceResponse is the /price endpoint payload. The price value is only
// confirmed, never interpreted, by the latency tools.
type PriceResponse struct {
	Price string `json:"price"`
}

// Price fetches the current price for a token on the given side. The side is
// normalized to the canonical upper-case form accepted by the API.
func (c *ClobClient) Price(ctx context.Context, tokenID, side string) (PriceResponse, error) {
	q := url.Values{}
	q.Set("token_id", tokenID)
	q.Set("side", strings.ToUpper(side))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/price?"+q.Encode(), nil)
	if err != nil {
		return PriceResponse{}, fmt.Errorf("polymarket/clob: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PriceResponse{}, fmt.Errorf("polymarket/clob: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return PriceResponse{}, fmt.Errorf("polymarket/clob: read response: %w", err)
	}

	if err := checkHTTPStatus(resp.StatusCode, body); err != nil {
		return PriceResponse{}, fmt.Errorf("polymarket/clob: %w", err)
	}

	var price PriceResponse
	if err := json.Unmarshal(body, &price); err != nil {
		return PriceResponse{}, fmt.Errorf("polymarket/clob: decode price: %w", err)
	}

	return price, nil
}

// CloseIdleConnections releases the keep-alive connections held by the client.
func (c *ClobClient) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
