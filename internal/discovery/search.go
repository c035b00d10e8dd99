package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/rewired-gh/polylatency/internal/models"
)

// BroadSearchLimit is used for the wide fallback scans in the token lister.
const BroadSearchLimit = 500

// Search fetches up to limit markets with the given closed filter and keeps
// only those whose question or slug contains term, case-insensitive. An
// empty term keeps everything. Filtering happens client-side; the Gamma API
// has no free-text parameter for this listing.
func (r *Resolver) Search(ctx context.Context, term string, limit int, closed bool) ([]models.Market, error) {
	markets, err := r.source.Markets(ctx, limit, closed)
	if err != nil {
		return nil, fmt.Errorf("search markets: %w", err)
	}
	if term == "" {
		return markets, nil
	}

	needle := strings.ToLower(term)
	var out []models.Market
	for _, m := range markets {
		if strings.Contains(strings.ToLower(m.Question), needle) ||
			strings.Contains(strings.ToLower(m.Slug), needle) {
			out = append(out, m)
		}
	}
	return out, nil
}

// FindBTC15mMarkets scans open markets for BTC 15-minute up/down markets
// by name, matching any BTC spelling combined with any 15-minute spelling.
func (r *Resolver) FindBTC15mMarkets(ctx context.Context) ([]models.Market, error) {
	markets, err := r.source.Markets(ctx, BroadSearchLimit, false)
	if err != nil {
		return nil, fmt.Errorf("find btc 15m markets: %w", err)
	}

	btcTerms := []string{"btc", "bitcoin"}
	intervalTerms := []string{"15m", "15 minute", "15-minute", "15min"}

	var out []models.Market
	for _, m := range markets {
		question := strings.ToLower(m.Question)
		slug := strings.ToLower(m.Slug)
		if containsAny(question, slug, btcTerms) && containsAny(question, slug, intervalTerms) {
			out = append(out, m)
		}
	}
	return out, nil
}

func containsAny(question, slug string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(question, term) || strings.Contains(slug, term) {
			return true
		}
	}
	return false
}
