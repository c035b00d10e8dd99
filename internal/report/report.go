// Package report renders the human-readable latency reports written to
// standard output.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/polylatency/internal/models"
	"github.com/rewired-gh/polylatency/internal/sampler"
)

// Run identifies one tool invocation in reports and notifications.
type Run struct {
	ID        uuid.UUID
	StartedAt time.Time
}

// NewRun creates a fresh run identity.
func NewRun() Run {
	return Run{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
	}
}

// LabeledSummary pairs a latency summary with the name of its target.
type LabeledSummary struct {
	Label   string
	Summary sampler.Summary
}

// Renderer writes report blocks at a fixed banner width.
type Renderer struct {
	w     io.Writer
	width int
}

// New creates a renderer writing to w with the given banner width.
func New(w io.Writer, width int) *Renderer {
	return &Renderer{w: w, width: width}
}

// Banner writes a title between two full-width rules.
func (r *Renderer) Banner(title string) {
	rule := strings.Repeat("=", r.width)
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, title)
	fmt.Fprintln(r.w, rule)
}

// Footer closes the report with a full-width rule and a blank line.
func (r *Renderer) Footer() {
	fmt.Fprintln(r.w, strings.Repeat("=", r.width))
	fmt.Fprintln(r.w)
}

// Section writes a light rule with an optional section title.
func (r *Renderer) Section(title string) {
	rule := strings.Repeat("─", r.width)
	fmt.Fprintf(r.w, "\n%s\n", rule)
	if title != "" {
		fmt.Fprintln(r.w, title)
		fmt.Fprintln(r.w, rule)
	}
}

// RunLine writes the run identity header.
func (r *Renderer) RunLine(run Run) {
	fmt.Fprintf(r.w, "\nRun:         %s\n", run.ID)
	fmt.Fprintf(r.w, "Started:     %s\n", run.StartedAt.Format(time.RFC3339))
}

// MarketBlock identifies the measured market and token.
func (r *Renderer) MarketBlock(m models.Market, tokenID string) {
	fmt.Fprintf(r.w, "\nMarket:      %s\n", orNA(m.Question))
	fmt.Fprintf(r.w, "Slug:        %s\n", orNA(m.Slug))
	fmt.Fprintf(r.w, "Up Token ID: %s\n", ElideToken(tokenID))
}

// GeoBlock writes the geolocation verdict with its explanatory text.
func (r *Renderer) GeoBlock(status models.GeoStatus) {
	fmt.Fprintf(r.w, "\nIP Address:  %s\n", orUnknown(status.IP))
	fmt.Fprintf(r.w, "Country:     %s\n", orUnknown(status.Country))
	fmt.Fprintf(r.w, "Region:      %s\n", orUnknown(status.Region))
	fmt.Fprint(r.w, "\nStatus:      ")

	if status.Blocked {
		fmt.Fprintln(r.w, "🚫 BLOCKED")
		fmt.Fprintln(r.w, "\nYour location is restricted from accessing Polymarket.")
		fmt.Fprintln(r.w, "This may be due to regulatory requirements or compliance")
		fmt.Fprintln(r.w, "with international sanctions.")
	} else {
		fmt.Fprintln(r.w, "✓ ALLOWED")
		fmt.Fprintln(r.w, "\nYour location can access Polymarket!")
	}
}

// StatsBlock writes summary statistics for one labeled latency set.
func (r *Renderer) StatsBlock(label string, s sampler.Summary) {
	fmt.Fprintf(r.w, "\n%s:\n", label)
	fmt.Fprintf(r.w, "  Calls:      %d\n", s.Count)
	fmt.Fprintf(r.w, "  Median:     %.2f ms\n", s.Median)
	fmt.Fprintf(r.w, "  Average:    %.2f ms\n", s.Mean)
	fmt.Fprintf(r.w, "  Min:        %.2f ms\n", s.Min)
	fmt.Fprintf(r.w, "  Max:        %.2f ms\n", s.Max)
}

// SampleList writes every individual sample with its 1-based ordinal.
func (r *Renderer) SampleList(label string, samples []float64) {
	fmt.Fprintf(r.w, "\n%s samples:\n", label)
	for i, v := range samples {
		fmt.Fprintf(r.w, "  %3d. %8.2f ms\n", i+1, v)
	}
}

// MarketInfo writes the diagnostic listing for one market, including its
// token identifiers.
func (r *Renderer) MarketInfo(m models.Market) {
	rule := strings.Repeat("=", r.width)
	fmt.Fprintf(r.w, "\n%s\n", rule)
	fmt.Fprintf(r.w, "Market: %s\n", orNA(m.Question))
	fmt.Fprintln(r.w, rule)

	fmt.Fprintf(r.w, "\nSlug:           %s\n", orNA(m.Slug))
	fmt.Fprintf(r.w, "Market ID:      %s\n", orNA(m.ID))
	fmt.Fprintf(r.w, "Condition ID:   %s\n", orNA(m.ConditionID))
	fmt.Fprintf(r.w, "Active:         %t\n", m.Active)
	fmt.Fprintf(r.w, "Closed:         %t\n", m.Closed)
	fmt.Fprintf(r.w, "End Date:       %s\n", orNA(m.EndDate))

	switch {
	case len(m.Tokens) > 0:
		r.Section("Tokens (Outcomes):")
		for i, tok := range m.Tokens {
			fmt.Fprintf(r.w, "\n  Outcome %d: %s\n", i+1, orUnknown(tok.Outcome))
			fmt.Fprintf(r.w, "  Token ID:  %s\n", orNA(tok.TokenID))
			if tok.Winner {
				fmt.Fprintln(r.w, "  Winner:    ✓")
			}
		}
	case !models.RawIsEmpty(m.ClobTokenIDs):
		fmt.Fprintf(r.w, "\nCLOB Token IDs: %s\n", string(m.ClobTokenIDs))
	default:
		fmt.Fprintln(r.w, "\nNo token information available")
	}

	fmt.Fprintf(r.w, "\n%s\n", rule)
}

// ElideToken shortens long token identifiers for display, keeping a fixed
// prefix and suffix. Short identifiers pass through unchanged.
func ElideToken(id string) string {
	const keep = 20
	if len(id) <= 2*keep+3 {
		return id
	}
	return id[:keep] + "..." + id[len(id)-keep:]
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
