// Package config loads and validates the toolkit configuration. Every value
// has a default, so running without a config file is fully supported.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultPath is used when POLYLATENCY_CONFIG is not set.
const DefaultPath = "configs/config.yaml"

// Config represents the complete application configuration
type Config struct {
	Polymarket PolymarketConfig `mapstructure:"polymarket"`
	Binance    BinanceConfig    `mapstructure:"binance"`
	Sampler    SamplerConfig    `mapstructure:"sampler"`
	Discovery  DiscoveryConfig  `mapstructure:"discovery"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// PolymarketConfig holds the Polymarket API endpoints
type PolymarketConfig struct {
	GammaAPIURL string `mapstructure:"gamma_api_url"`
	CLOBAPIURL  string `mapstructure:"clob_api_url"`
	CLOBWSURL   string `mapstructure:"clob_ws_url"`
	SiteAPIURL  string `mapstructure:"site_api_url"`
}

// BinanceConfig holds the Binance API endpoint
type BinanceConfig struct {
	APIURL string `mapstructure:"api_url"`
}

// SamplerConfig holds latency sampling behavior configuration
type SamplerConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	PriceCalls    int           `mapstructure:"price_calls"`
	PingCalls     int           `mapstructure:"ping_calls"`
	GeoblockCalls int           `mapstructure:"geoblock_calls"`
	WSConnects    int           `mapstructure:"ws_connects"`
}

// DiscoveryConfig holds market discovery configuration
type DiscoveryConfig struct {
	LookbackIntervals int `mapstructure:"lookback_intervals"`
	SearchLimit       int `mapstructure:"search_limit"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	Enabled  bool   `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Path returns the config file location from POLYLATENCY_CONFIG, falling
// back to DefaultPath. The tools accept no command-line flags.
func Path() string {
	if p := os.Getenv("POLYLATENCY_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads configuration from the given file and environment variables.
// A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	// Pick up a local .env before viper reads the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	v.SetEnvPrefix("POLYLATENCY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
// The timeout, call counts, and lookback cap are the shipped policy values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("polymarket.gamma_api_url", "https://gamma-api.polymarket.com")
	v.SetDefault("polymarket.clob_api_url", "https://clob.polymarket.com")
	v.SetDefault("polymarket.clob_ws_url", "wss://ws-subscriptions-clob.polymarket.com/ws/market")
	v.SetDefault("polymarket.site_api_url", "https://polymarket.com")

	v.SetDefault("binance.api_url", "https://api.binance.com")

	v.SetDefault("sampler.timeout", "10s")
	v.SetDefault("sampler.price_calls", 20)
	v.SetDefault("sampler.ping_calls", 20)
	v.SetDefault("sampler.geoblock_calls", 20)
	v.SetDefault("sampler.ws_connects", 5)

	v.SetDefault("discovery.lookback_intervals", 8)
	v.SetDefault("discovery.search_limit", 100)

	v.SetDefault("telegram.enabled", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Polymarket.GammaAPIURL == "" {
		return fmt.Errorf("polymarket.gamma_api_url is required")
	}
	if c.Polymarket.CLOBAPIURL == "" {
		return fmt.Errorf("polymarket.clob_api_url is required")
	}
	if c.Polymarket.CLOBWSURL == "" {
		return fmt.Errorf("polymarket.clob_ws_url is required")
	}
	if c.Polymarket.SiteAPIURL == "" {
		return fmt.Errorf("polymarket.site_api_url is required")
	}
	if c.Binance.APIURL == "" {
		return fmt.Errorf("binance.api_url is required")
	}

	if c.Sampler.Timeout < time.Second {
		return fmt.Errorf("sampler.timeout must be at least 1 second")
	}
	if c.Sampler.PriceCalls < 1 || c.Sampler.PriceCalls > 1000 {
		return fmt.Errorf("sampler.price_calls must be between 1 and 1000")
	}
	if c.Sampler.PingCalls < 1 || c.Sampler.PingCalls > 1000 {
		return fmt.Errorf("sampler.ping_calls must be between 1 and 1000")
	}
	if c.Sampler.GeoblockCalls < 1 || c.Sampler.GeoblockCalls > 1000 {
		return fmt.Errorf("sampler.geoblock_calls must be between 1 and 1000")
	}
	if c.Sampler.WSConnects < 0 || c.Sampler.WSConnects > 1000 {
		return fmt.Errorf("sampler.ws_connects must be between 0 and 1000")
	}

	if c.Discovery.LookbackIntervals < 0 || c.Discovery.LookbackIntervals > 96 {
		return fmt.Errorf("discovery.lookback_intervals must be between 0 and 96")
	}
	if c.Discovery.SearchLimit < 1 || c.Discovery.SearchLimit > 500 {
		return fmt.Errorf("discovery.search_limit must be between 1 and 500")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
