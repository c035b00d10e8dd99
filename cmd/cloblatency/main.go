// Command cloblatency measures round-trip latency of the CLOB price
// endpoint through the REST client wrapper and of the market data WebSocket
// handshake, then prints every individual sample alongside the summary.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

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

	r.Banner("Polymarket CLOB Client Latency Test")
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

	fmt.Fprintln(out, "Initializing CLOB client...")
	clob := polymarket.NewClobClient(cfg.Polymarket.CLOBAPIURL, cfg.Sampler.Timeout)
	fmt.Fprint(out, "✓ Client initialized\n\n")

	s := sampler.New(cfg.Sampler.Timeout, out)

	priceSamples := s.Sample(ctx, "CLOB client price", cfg.Sampler.PriceCalls, func(ctx context.Context) error {
		_, err := clob.Price(ctx, tokenID, "BUY")
		return err
	})
	clob.CloseIdleConnections()

	probe := polymarket.NewWSProbe(cfg.Polymarket.CLOBWSURL, cfg.Sampler.Timeout)
	wsSamples := s.Sample(ctx, "WebSocket connect", cfg.Sampler.WSConnects, probe.Connect)

	r.Banner("CLOB Client Latency Results")
	r.RunLine(run)
	r.MarketBlock(market, tokenID)
	r.Section("Latency Measurements (ms)")

	var summaries []report.LabeledSummary
	if sum, ok := sampler.Summarize(priceSamples); ok {
		r.StatsBlock("CLOB Client Price API", sum)
		summaries = append(summaries, report.LabeledSummary{Label: "CLOB Client Price API", Summary: sum})
	}
	if sum, ok := sampler.Summarize(wsSamples); ok {
		r.StatsBlock("WebSocket Connect", sum)
		summaries = append(summaries, report.LabeledSummary{Label: "WebSocket Connect", Summary: sum})
	}
	if len(priceSamples) > 0 {
		r.SampleList("CLOB Client Price API", priceSamples)
	}
	r.Footer()

	notify(cfg, run, summaries)
	return 0
}

func notify(cfg *config.Config, run report.Run, summaries []report.LabeledSummary) {
	if !cfg.Telegram.Enabled || len(summaries) == 0 {
		return
	}
	tg, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 3, time.Second)
	if err != nil {
		logger.Warn("Failed to initialize Telegram client: %v", err)
		return
	}
	if err := tg.SendLatencyReport("Polymarket CLOB Client Latency Test", run, summaries); err != nil {
		logger.Warn("Failed to send Telegram notification: %v", err)
	}
}
