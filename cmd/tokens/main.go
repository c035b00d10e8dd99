// Command tokens lists BTC 15-minute up/down markets and their token
// identifiers. When no such market is open it falls back to progressively
// broader searches so the market data structure can still be inspected.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rewired-gh/polylatency/internal/config"
	"github.com/rewired-gh/polylatency/internal/discovery"
	"github.com/rewired-gh/polylatency/internal/logger"
	"github.com/rewired-gh/polylatency/internal/models"
	"github.com/rewired-gh/polylatency/internal/polymarket"
	"github.com/rewired-gh/polylatency/internal/report"
)

const (
	reportWidth = 60
	maxShown    = 5
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	os.Exit(runList(cfg, os.Stdout))
}

func runList(cfg *config.Config, out io.Writer) int {
	ctx := context.Background()
	r := report.New(out, reportWidth)

	gamma := polymarket.NewGammaClient(cfg.Polymarket.GammaAPIURL, cfg.Sampler.Timeout)
	defer gamma.CloseIdleConnections()
	resolver := discovery.NewResolver(gamma, cfg.Discovery.LookbackIntervals)

	fmt.Fprintln(out, "Searching for BTC 15-minute up/down markets...")
	markets, err := resolver.FindBTC15mMarkets(ctx)
	if err != nil {
		logger.Error("Failed to fetch markets - %v", err)
		return 1
	}

	if len(markets) == 0 {
		markets, err = broaden(ctx, resolver, r, out)
		if err != nil {
			logger.Error("Failed to fetch markets - %v", err)
			return 1
		}
		if markets == nil {
			return 1
		}
	} else {
		fmt.Fprintf(out, "Found %d BTC 15-minute market(s)\n", len(markets))
	}

	shown := markets
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	for _, m := range shown {
		r.MarketInfo(m)
	}
	if len(markets) > maxShown {
		fmt.Fprintf(out, "\n... and %d more market(s)\n", len(markets)-maxShown)
	}
	return 0
}

// broaden runs the fallback searches when no BTC 15-minute market is open.
// A nil slice with nil error means nothing BTC-related exists either; a
// structural sample has already been printed in that case.
func broaden(ctx context.Context, resolver *discovery.Resolver, r *report.Renderer, out io.Writer) ([]models.Market, error) {
	fmt.Fprintln(out, "No BTC 15-minute markets found.")
	fmt.Fprintln(out, "\nTrying broader search for any BTC markets (including closed)...")

	markets, err := resolver.Search(ctx, "btc", discovery.BroadSearchLimit, true)
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		fmt.Fprintln(out, "No BTC markets found at all.")
		fmt.Fprintln(out, "\nFetching sample of recent markets to show structure...")
		sample, err := resolver.Search(ctx, "", maxShown, false)
		if err != nil {
			return nil, err
		}
		if len(sample) > 0 {
			fmt.Fprintf(out, "\nShowing %d sample market(s) for reference:\n", len(sample))
			for _, m := range sample {
				r.MarketInfo(m)
			}
		}
		return nil, nil
	}

	fmt.Fprintf(out, "\nFound %d BTC-related market(s)\n", len(markets))
	var withTokens []models.Market
	for _, m := range markets {
		if m.HasTokenInfo() {
			withTokens = append(withTokens, m)
		}
	}
	if len(withTokens) > 0 {
		fmt.Fprintf(out, "%d of them have token information\n", len(withTokens))
		return withTokens, nil
	}
	return markets, nil
}
