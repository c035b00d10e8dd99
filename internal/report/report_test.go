package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rewired-gh/polylatency/internal/models"
	"github.com/rewired-gh/polylatency/internal/sampler"
)

func TestElideToken(t *testing.T) {
	long := strings.Repeat("a", 25) + strings.Repeat("b", 25)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "long id keeps 20-char prefix and suffix",
			in:   long,
			want: long[:20] + "..." + long[len(long)-20:],
		},
		{
			name: "short id unchanged",
			in:   "abc123",
			want: "abc123",
		},
		{
			name: "empty id unchanged",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElideToken(tt.in); got != tt.want {
				t.Errorf("ElideToken(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatsBlockFormatting(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 60)

	r.StatsBlock("Polymarket CLOB Price API", sampler.Summary{
		Count:  3,
		Median: 20.0,
		Mean:   20.0,
		Min:    10.0,
		Max:    30.0,
	})

	out := buf.String()
	for _, want := range []string{
		"Polymarket CLOB Price API:",
		"Calls:      3",
		"Median:     20.00 ms",
		"Average:    20.00 ms",
		"Min:        10.00 ms",
		"Max:        30.00 ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestGeoBlockRendering(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 50)

	r.GeoBlock(models.GeoStatus{Blocked: true, IP: "203.0.113.7", Country: "US"})
	out := buf.String()
	if !strings.Contains(out, "BLOCKED") {
		t.Errorf("Blocked status not rendered:\n%s", out)
	}
	if !strings.Contains(out, "Region:      Unknown") {
		t.Errorf("Absent region should render as Unknown:\n%s", out)
	}
	if !strings.Contains(out, "restricted from accessing Polymarket") {
		t.Errorf("Explanatory text missing:\n%s", out)
	}

	buf.Reset()
	r.GeoBlock(models.GeoStatus{Blocked: false, IP: "203.0.113.7"})
	out = buf.String()
	if !strings.Contains(out, "ALLOWED") {
		t.Errorf("Allowed status not rendered:\n%s", out)
	}
	if !strings.Contains(out, "can access Polymarket") {
		t.Errorf("Allowed text missing:\n%s", out)
	}
}

func TestSampleList(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 60)

	r.SampleList("CLOB client", []float64{12.34, 56.78})

	out := buf.String()
	if !strings.Contains(out, "1.") || !strings.Contains(out, "12.34 ms") {
		t.Errorf("First sample missing:\n%s", out)
	}
	if !strings.Contains(out, "2.") || !strings.Contains(out, "56.78 ms") {
		t.Errorf("Second sample missing:\n%s", out)
	}
}

func TestMarketInfo(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 60)

	r.MarketInfo(models.Market{
		Question:    "Bitcoin Up or Down?",
		Slug:        "btc-updown-15m-1700000100",
		ID:          "512345",
		ConditionID: "0xabc",
		Active:      true,
		Tokens: []models.Token{
			{Outcome: "Up", TokenID: "111", Winner: true},
			{Outcome: "Down", TokenID: "222"},
		},
	})

	out := buf.String()
	for _, want := range []string{
		"Market: Bitcoin Up or Down?",
		"Outcome 1: Up",
		"Token ID:  111",
		"Winner:    ✓",
		"Outcome 2: Down",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}

	// Without tokens the legacy field is shown raw.
	buf.Reset()
	r.MarketInfo(models.Market{
		Question:     "Legacy market",
		ClobTokenIDs: json.RawMessage(`["1","2"]`),
	})
	if !strings.Contains(buf.String(), `CLOB Token IDs: ["1","2"]`) {
		t.Errorf("Legacy clobTokenIds not rendered:\n%s", buf.String())
	}

	// No token info at all.
	buf.Reset()
	r.MarketInfo(models.Market{Question: "Empty"})
	if !strings.Contains(buf.String(), "No token information available") {
		t.Errorf("Missing no-token note:\n%s", buf.String())
	}
}
