package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rewired-gh/polylatency/internal/config"
)

func testConfig(t *testing.T, siteURL, binanceURL string) *config.Config {
	t.Helper()
	cfg, err := config.Load("nonexistent-config.yaml")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	cfg.Polymarket.SiteAPIURL = siteURL
	cfg.Binance.APIURL = binanceURL
	cfg.Sampler.Timeout = 5 * time.Second
	cfg.Sampler.GeoblockCalls = 2
	cfg.Sampler.PingCalls = 2
	return cfg
}

func TestRunTestAllowed(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"blocked":false,"ip":"203.0.113.7","country":"DE","region":"BE"}`))
	}))
	defer site.Close()
	bn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer bn.Close()

	var out bytes.Buffer
	if code := runTest(testConfig(t, site.URL, bn.URL), &out); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "✓ ALLOWED") {
		t.Errorf("Report missing allowed verdict:\n%s", out.String())
	}
}

func TestRunTestBlocked(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"blocked":true,"ip":"198.51.100.9","country":"US","region":"NY"}`))
	}))
	defer site.Close()
	bn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer bn.Close()

	var out bytes.Buffer
	if code := runTest(testConfig(t, site.URL, bn.URL), &out); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "🚫 BLOCKED") {
		t.Errorf("Report missing blocked verdict:\n%s", out.String())
	}
}

func TestRunTestStatusUnreachable(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer site.Close()

	var out bytes.Buffer
	if code := runTest(testConfig(t, site.URL, "http://127.0.0.1:0"), &out); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}
