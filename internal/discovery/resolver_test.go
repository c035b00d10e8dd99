package discovery

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rewired-gh/polylatency/internal/models"
)

// fakeSource records slug queries and serves canned responses.
type fakeSource struct {
	bySlug  map[string][]models.Market
	slugErr map[string]error
	queried []string

	markets    []models.Market
	marketsErr error
}

func (f *fakeSource) MarketsBySlug(_ context.Context, slug string) ([]models.Market, error) {
	f.queried = append(f.queried, slug)
	if err, ok := f.slugErr[slug]; ok {
		return nil, err
	}
	return f.bySlug[slug], nil
}

func (f *fakeSource) Markets(_ context.Context, _ int, _ bool) ([]models.Market, error) {
	return f.markets, f.marketsErr
}

func TestFloorTo15m(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 10, 14, 59, 999999000, time.UTC),
		time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 7, 30, 0, time.UTC),
	}

	for _, tm := range times {
		t.Run(tm.Format(time.RFC3339Nano), func(t *testing.T) {
			floored := FloorTo15m(tm)
			if floored.After(tm) {
				t.Errorf("FloorTo15m(%v) = %v is after input", tm, floored)
			}
			if d := tm.Sub(floored); d >= 15*time.Minute {
				t.Errorf("FloorTo15m(%v) = %v, gap %v >= 15m", tm, floored, d)
			}
			if floored.Second() != 0 || floored.Nanosecond() != 0 {
				t.Errorf("FloorTo15m(%v) has nonzero seconds: %v", tm, floored)
			}
			if floored.Minute()%15 != 0 {
				t.Errorf("FloorTo15m(%v) minute %d not on grid", tm, floored.Minute())
			}
		})
	}
}

func TestSlugFor(t *testing.T) {
	if got := SlugFor(1700000100); got != "btc-updown-15m-1700000100" {
		t.Errorf("SlugFor() = %q", got)
	}
}

func TestLatestMarketExhaustsWalk(t *testing.T) {
	src := &fakeSource{}
	r := NewResolver(src, 8)
	now := time.Date(2024, 3, 1, 10, 22, 41, 0, time.UTC)
	r.now = func() time.Time { return now }

	_, err := r.LatestMarket(context.Background())
	if !errors.Is(err, models.ErrNoMarket) {
		t.Fatalf("Expected ErrNoMarket, got %v", err)
	}

	// Current boundary plus 8 prior intervals, strictly decreasing by 900s.
	if len(src.queried) != 9 {
		t.Fatalf("Expected 9 slug queries, got %d", len(src.queried))
	}
	base := FloorTo15m(now).Unix()
	for i, slug := range src.queried {
		ts, err := strconv.ParseInt(strings.TrimPrefix(slug, "btc-updown-15m-"), 10, 64)
		if err != nil {
			t.Fatalf("Bad slug %q: %v", slug, err)
		}
		want := base - int64(i)*900
		if ts != want {
			t.Errorf("Query %d: timestamp %d, want %d", i, ts, want)
		}
	}
}

func TestLatestMarketFindsEarlierInterval(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 22, 41, 0, time.UTC)
	base := FloorTo15m(now).Unix()
	hitSlug := SlugFor(base - 3*900)

	src := &fakeSource{
		bySlug: map[string][]models.Market{
			hitSlug: {{Slug: hitSlug, Question: "Bitcoin Up or Down?"}},
		},
	}
	r := NewResolver(src, 8)
	r.now = func() time.Time { return now }

	market, err := r.LatestMarket(context.Background())
	if err != nil {
		t.Fatalf("LatestMarket failed: %v", err)
	}
	if market.Slug != hitSlug {
		t.Errorf("Unexpected market slug: %s", market.Slug)
	}
	if len(src.queried) != 4 {
		t.Errorf("Expected walk to stop after 4 queries, got %d", len(src.queried))
	}
}

func TestLatestMarketTreatsErrorAsMiss(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 22, 41, 0, time.UTC)
	base := FloorTo15m(now).Unix()

	src := &fakeSource{
		slugErr: map[string]error{
			SlugFor(base): errors.New("connection refused"),
		},
		bySlug: map[string][]models.Market{
			SlugFor(base - 900): {{Slug: SlugFor(base - 900)}},
		},
	}
	r := NewResolver(src, 8)
	r.now = func() time.Time { return now }

	market, err := r.LatestMarket(context.Background())
	if err != nil {
		t.Fatalf("LatestMarket failed: %v", err)
	}
	if market.Slug != SlugFor(base-900) {
		t.Errorf("Unexpected market slug: %s", market.Slug)
	}
}

func TestSearch(t *testing.T) {
	src := &fakeSource{
		markets: []models.Market{
			{Question: "Will BTC hit 100k?", Slug: "btc-100k"},
			{Question: "Presidential election", Slug: "election-2024"},
			{Question: "Ethereum merge", Slug: "eth-merge-btc-pair"},
		},
	}
	r := NewResolver(src, 8)

	got, err := r.Search(context.Background(), "BTC", 100, false)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(got))
	}

	all, err := r.Search(context.Background(), "", 100, false)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Empty term should keep everything, got %d", len(all))
	}
}

func TestFindBTC15mMarkets(t *testing.T) {
	src := &fakeSource{
		markets: []models.Market{
			{Question: "Bitcoin Up or Down - 15 minute", Slug: "btc-updown-15m-1700000100"},
			{Question: "BTC yearly close", Slug: "btc-yearly"},
			{Question: "ETH 15m up/down", Slug: "eth-updown-15m-1700000100"},
		},
	}
	r := NewResolver(src, 8)

	got, err := r.FindBTC15mMarkets(context.Background())
	if err != nil {
		t.Fatalf("FindBTC15mMarkets failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(got))
	}
	if got[0].Slug != "btc-updown-15m-1700000100" {
		t.Errorf("Unexpected match: %s", got[0].Slug)
	}
}
