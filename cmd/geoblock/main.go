// Command geoblock reports whether the current location may access
// Polymarket and measures latency to the geoblock and Binance ping
// endpoints. It exits non-zero when the location is blocked or the status
// endpoint cannot be reached.
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
	"github.com/rewired-gh/polylatency/internal/logger"
	"github.com/rewired-gh/polylatency/internal/models"
	"github.com/rewired-gh/polylatency/internal/polymarket"
	"github.com/rewired-gh/polylatency/internal/report"
	"github.com/rewired-gh/polylatency/internal/sampler"
	"github.com/rewired-gh/polylatency/internal/telegram"
)

const reportWidth = 50

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

	r.Banner("Polymarket Geoblock Check")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Checking Polymarket geoblock status...")
	site := polymarket.NewSiteClient(cfg.Polymarket.SiteAPIURL, cfg.Sampler.Timeout)
	defer site.CloseIdleConnections()

	status, err := site.GeoStatus(ctx)
	if err != nil {
		logger.Error("Failed to check geoblock status - %v", err)
		return 1
	}
	fmt.Fprint(out, "✓ Status received\n\n")

	s := sampler.New(cfg.Sampler.Timeout, out)

	pmSamples := s.Sample(ctx, "Polymarket geoblock API", cfg.Sampler.GeoblockCalls, site.Ping)

	bn := binance.New(cfg.Binance.APIURL, cfg.Sampler.Timeout)
	bnSamples := s.Sample(ctx, "Binance API", cfg.Sampler.PingCalls, bn.Ping)
	bn.CloseIdleConnections()

	r.Banner("Geoblock Check Results")
	r.RunLine(run)
	r.GeoBlock(status)
	r.Section("Latency Measurements (ms)")

	var summaries []report.LabeledSummary
	if sum, ok := sampler.Summarize(pmSamples); ok {
		r.StatsBlock("Polymarket Geoblock API", sum)
		summaries = append(summaries, report.LabeledSummary{Label: "Polymarket Geoblock API", Summary: sum})
	}
	if sum, ok := sampler.Summarize(bnSamples); ok {
		r.StatsBlock("Binance API", sum)
		summaries = append(summaries, report.LabeledSummary{Label: "Binance API", Summary: sum})
	}
	r.Footer()

	notify(cfg, run, status, summaries)

	if status.Blocked {
		return 1
	}
	return 0
}

func notify(cfg *config.Config, run report.Run, status models.GeoStatus, summaries []report.LabeledSummary) {
	if !cfg.Telegram.Enabled {
		return
	}
	tg, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 3, time.Second)
	if err != nil {
		logger.Warn("Failed to initialize Telegram client: %v", err)
		return
	}
	if err := tg.SendGeoAlert(run, status); err != nil {
		logger.Warn("Failed to send Telegram geoblock alert: %v", err)
	}
	if len(summaries) == 0 {
		return
	}
	if err := tg.SendLatencyReport("Polymarket Geoblock Check", run, summaries); err != nil {
		logger.Warn("Failed to send Telegram notification: %v", err)
	}
}
