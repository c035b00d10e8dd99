package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/polylatency/internal/report"
	"github.com/rewired-gh/polylatency/internal/sampler"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "Hello World"},
		{"Hello_World", "Hello\\_World"},
		{"Test*bold*", "Test\\*bold\\*"},
		{"12.34 ms", "12\\.34 ms"},
		{"[link](url)", "\\[link\\]\\(url\\)"},
		{"~strikethrough~", "\\~strikethrough\\~"},
		{"`code`", "\\`code\\`"},
		{">blockquote", "\\>blockquote"},
		{"#header", "\\#header"},
		{"+plus-minus", "\\+plus\\-minus"},
		{"=equal|pipe", "\\=equal\\|pipe"},
		{"{brace}", "\\{brace\\}"},
		{"end!", "end\\!"},
		{"", ""},
		{"_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := escapeMarkdownV2(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdownV2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	c := &Client{}
	run := report.Run{
		ID:        uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		StartedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}

	msg := c.formatReport("Latency Test", run, []report.LabeledSummary{
		{
			Label: "Polymarket CLOB Price API",
			Summary: sampler.Summary{
				Count: 20, Median: 85.5, Mean: 90.25, Min: 70.0, Max: 140.75,
			},
		},
	})

	for _, want := range []string{
		"*Latency Test*",
		"11111111\\-2222\\-3333\\-4444\\-555555555555",
		"*Polymarket CLOB Price API*",
		"20 calls",
		"median 85\\.50 ms",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Message missing %q:\n%s", want, msg)
		}
	}
}
