// Package config provides configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Venues    VenuesConfig    `mapstructure:"venues"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Combo     ComboConfig     `mapstructure:"combo"`
	Sink      SinkConfig      `mapstructure:"sink"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	Debug       bool   `mapstructure:"debug"`
}

// VenuesConfig selects which venues' snapshots to fetch and which
// canonical pairs every venue is expected to carry.
type VenuesConfig struct {
	Use       []string `mapstructure:"use"`        // empty means "every configured venue"
	BasePairs []string `mapstructure:"base_pairs"`  // canonical pairs requested per venue
	Depth     int      `mapstructure:"depth"`       // levels requested per side per snapshot
}

// FetchConfig governs the Snapshot Fetcher's retry/backoff/throttle
// behavior (business/fetch, wired via internal/httpclient + gobreaker +
// x/time/rate).
type FetchConfig struct {
	BookRetries     int           `mapstructure:"book_retries"`
	BookTimeout     time.Duration `mapstructure:"book_timeout"`
	InitBackoff     time.Duration `mapstructure:"init_backoff"`
	MaxBackoff      time.Duration `mapstructure:"max_backoff"`
	RequestsPerSec  float64       `mapstructure:"requests_per_sec"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
}

// ComboConfig governs the combo-book algebra's runtime choices: debug
// provenance trails, ladder aggregation, join/merge behavior, and the
// trade sizes the comparator evaluates.
type ComboConfig struct {
	AggLevels  bool      `mapstructure:"agg_levels"`
	AllCombos  bool      `mapstructure:"all_combos"`
	TradeSizes []float64 `mapstructure:"trade_sizes"`
}

// TradeSizesDecimal returns the configured comparator trade sizes as
// decimal.Decimal.
func (c *ComboConfig) TradeSizesDecimal() []decimal.Decimal {
	result := make([]decimal.Decimal, len(c.TradeSizes))
	for i, s := range c.TradeSizes {
		result[i] = decimal.NewFromFloat(s)
	}
	return result
}

// SinkConfig governs the batched result-file writer (internal/resultsink).
type SinkConfig struct {
	ResultsDir string        `mapstructure:"results_dir"`
	RunFor     time.Duration `mapstructure:"run_for"`
	IterEvery  time.Duration `mapstructure:"iter_every"`
	SaveEveryN int           `mapstructure:"save_every_n"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("COMBO")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("app.name", "COMBO_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "COMBO_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "COMBO_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("app.debug", "COMBO_DEBUG")

	v.BindEnv("venues.use", "COMBO_VENUES")
	v.BindEnv("venues.base_pairs", "COMBO_BASE_PAIRS")
	v.BindEnv("venues.depth", "COMBO_DEPTH")

	v.BindEnv("fetch.book_retries", "COMBO_BOOK_RETRIES")
	v.BindEnv("fetch.book_timeout", "COMBO_BOOK_TIMEOUT")
	v.BindEnv("fetch.init_backoff", "COMBO_INIT_BACKOFF")

	v.BindEnv("sink.results_dir", "COMBO_RESULTS_DIR")
	v.BindEnv("sink.run_for", "COMBO_RUN_FOR")
	v.BindEnv("sink.iter_every", "COMBO_ITER_EVERY")
	v.BindEnv("sink.save_every_n", "COMBO_SAVE_EVERY_N")

	v.BindEnv("telemetry.enabled", "COMBO_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "COMBO_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "combobooks")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.debug", false)

	v.SetDefault("venues.use", []string{"binance", "okx", "coinbase"})
	v.SetDefault("venues.base_pairs", []string{
		"ETH-USDC", "USDC-USDT", "BTC-USDC", "ETH-BTC", "ETH-USDT", "ETH-DAI", "BTC-DAI",
	})
	v.SetDefault("venues.depth", 50)

	v.SetDefault("fetch.book_retries", 3)
	v.SetDefault("fetch.book_timeout", "5s")
	v.SetDefault("fetch.init_backoff", "500ms")
	v.SetDefault("fetch.max_backoff", "10s")
	v.SetDefault("fetch.requests_per_sec", 5.0)
	v.SetDefault("fetch.breaker_failures", 5)

	v.SetDefault("combo.agg_levels", true)
	v.SetDefault("combo.all_combos", false)
	v.SetDefault("combo.trade_sizes", []float64{0.1, 1.0, 10.0})

	v.SetDefault("sink.results_dir", "./results")
	v.SetDefault("sink.run_for", "1h")
	v.SetDefault("sink.iter_every", "10s")
	v.SetDefault("sink.save_every_n", 10)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "combobooks")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Venues.Use) == 0 {
		return fmt.Errorf("venues.use cannot be empty")
	}
	if len(c.Venues.BasePairs) == 0 {
		return fmt.Errorf("venues.base_pairs cannot be empty")
	}
	if c.Venues.Depth <= 0 {
		return fmt.Errorf("venues.depth must be positive")
	}
	if c.Fetch.BookRetries < 0 {
		return fmt.Errorf("fetch.book_retries cannot be negative")
	}
	if c.Fetch.BookTimeout <= 0 {
		return fmt.Errorf("fetch.book_timeout must be positive")
	}
	if c.Sink.SaveEveryN <= 0 {
		return fmt.Errorf("sink.save_every_n must be positive")
	}
	return nil
}
