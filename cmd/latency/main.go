// Command latency measures round-trip latency of the Polymarket CLOB price
// endpoint and the Binance ping endpoint for the most recent BTC 15-minute
// up/down market. It accepts no flags; see internal/config for settings.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/rewired-gh/polylatency/internal/binance"
	"github.com/rewired-gh/polylatency/internal/config"
	"github.com/rewired-gh/polylatency/internal/discovery"
	"github.com/rewired-gh/polylatency/internal/logger"
	"github.com/rewired-gh/polylatency/internal/polymarket"
	"github.com/rewired-gh/polylatency/internal/report"
	"github.com/rewired-gh/polylatency/internal/sampler"
	"github.com/rewired-gh/polylatency/internal/telegram"
)

const reportWidth = 60

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	os.Exit(runTest(cfg, os.Stdout))
}

func runTest(cfg *config.Config, out io.Writer) int {
	ctx := context.Background()
	r := report.New(out, reportWidth)
	run := report.NewRun()

	r.Banner("Polymarket & Binance API Latency Test")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Finding latest BTC 15-minute market...")
	gamma := polymarket.NewGammaClient(cfg.Polymarket.GammaAPIURL, cfg.Sampler.Timeout)
	defer gamma.CloseIdleConnections()

	resolver := discovery.NewResolver(gamma, cfg.Discovery.LookbackIntervals)
	market, err := resolver.LatestMarket(ctx)
	if err != nil {
		logger.Error("Could not find BTC 15-minute market: %v", err)
		return 1
	}
	fmt.Fprintf(out, "✓ Found: %s\n\n", market.Question)

	tokenID, err := discovery.ExtractUpToken(market)
	if err != nil {
		logger.Error("Could not extract Up token ID: %v", err)
		return 1
	}
	fmt.Fprintf(out, "Up Token ID: %s\n\n", tokenID)

	s := sampler.New(cfg.Sampler.Timeout, out)

	clob := polymarket.NewClobClient(cfg.Polymarket.CLOBAPIURL, cfg.Sampler.Timeout)
	pmSamples := s.Sample(ctx, "Polymarket price API", cfg.Sampler.PriceCalls, func(ctx context.Context) error {
		_, err := clob.Price(ctx, tokenID, "buy")
		return err
	})
	clob.CloseIdleConnections()

	bn := binance.New(cfg.Binance.APIURL, cfg.Sampler.Timeout)
	bnSamples := s.Sample(ctx, "Binance API", cfg.Sampler.PingCalls, bn.Ping)
	bn.CloseIdleConnections()

	r.Banner("Latency Test Results")
	r.RunLine(run)
	r.MarketBlock(market, tokenID)
	r.Section("Latency Measurements (ms)")

	var summaries []report.LabeledSummary
	if sum, ok := sampler.Summarize(pmSamples); ok {
		r.StatsBlock("Polymarket CLOB Price API", sum)
		summaries = append(summaries, report.LabeledSummary{Label: "Polymarket CLOB Price API", Summary: sum})
	}
	if sum, ok := sampler.Summarize(bnSamples); ok {
		r.StatsBlock("Binance API", sum)
		summaries = append(summaries, report.LabeledSummary{Label: "Binance API", Summary: sum})
	}
	r.Footer()

	notify(cfg, run, summaries)
	return 0
}

// notify delivers the summary via Telegram when enabled. Delivery failures
// never affect the exit status.
func notify(cfg *config.Config, run report.Run, summaries []report.LabeledSummary) {
	if !cfg.Telegram.Enabled || len(summaries) == 0 {
		return
	}
	tg, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 3, time.Second)
	if err != nil {
		logger.Warn("Failed to initialize Telegram client: %v", err)
		return
	}
	if err := tg.SendLatencyReport("Polymarket & Binance API Latency Test", run, summaries); err != nil {
		logger.Warn("Failed to send Telegram notification: %v", err)
	}
}
