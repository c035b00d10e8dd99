// Package discovery locates the BTC 15-minute up/down market on the
// Polymarket Gamma API and extracts its tradable token identifiers.
package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/rewired-gh/polylatency/internal/logger"
	"github.com/rewired-gh/polylatency/internal/models"
)

// Interval is the spacing of the BTC up/down market grid. Markets are
// created exactly on these boundaries.
const Interval = 15 * time.Minute

// MarketSource is the slice of the Gamma API the resolver needs.
type MarketSource interface {
	MarketsBySlug(ctx context.Context, slug string) ([]models.Market, error)
	Markets(ctx context.Context, limit int, closed bool) ([]models.Market, error)
}

// FloorTo15m truncates t to the most recent 15-minute boundary, in UTC.
func FloorTo15m(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), (t.Minute()/15)*15, 0, 0, time.UTC)
}

// SlugFor derives the deterministic market slug for a boundary timestamp.
func SlugFor(unix int64) string {
	return fmt.Sprintf("btc-updown-15m-%d", unix)
}

// Resolver finds the most recent BTC 15-minute market.
type Resolver struct {
	source   MarketSource
	lookback int
	now      func() time.Time
}

// NewResolver creates a resolver. lookback is the number of prior intervals
// tried after the current one; the newest market may not be indexed yet.
func NewResolver(source MarketSource, lookback int) *Resolver {
	return &Resolver{
		source:   source,
		lookback: lookback,
		now:      time.Now,
	}
}

// LatestMarket walks backward from the current 15-minute boundary until a
// market is found. A transport or status error for one interval is logged
// and counts as a miss for that interval only. Returns models.ErrNoMarket
// once the walk is exhausted.
func (r *Resolver) LatestMarket(ctx context.Context) (models.Market, error) {
	current := FloorTo15m(r.now()).Unix()
	step := int64(Interval / time.Second)

	for i := 0; i <= r.lookback; i++ {
		slug := SlugFor(current - int64(i)*step)

		markets, err := r.source.MarketsBySlug(ctx, slug)
		if err != nil {
			logger.Warn("Market query failed for slug %s: %v", slug, err)
			continue
		}
		if len(markets) > 0 {
			return markets[0], nil
		}
	}

	return models.Market{}, fmt.Errorf("%w: tried %d intervals", models.ErrNoMarket, r.lookback+1)
}
