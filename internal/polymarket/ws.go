package polymarket

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// WSProbe dials the CLOB market WebSocket endpoint to measure connection
// setup cost (DNS + TCP + TLS + upgrade handshake). Each probe is a full
// dial; there is nothing to keep warm between calls.
type WSProbe struct {
	url     string
	timeout time.Duration
}

// NewWSProbe creates a probe for the given WebSocket URL.
func NewWSProbe(url string, timeout time.Duration) *WSProbe {
	return &WSProbe{url: url, timeout: timeout}
}

// Connect performs one full dial handshake and closes the connection.
func (p *WSProbe) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: p.timeout,
	}

	conn, resp, err := dialer.DialContext(ctx, p.url, nil)
	if err != nil {
		return fmt.Errorf("polymarket/ws: dial %s: %w", p.url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	return conn.Close()
}
