package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaultsWithNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with a missing config file should fall back to defaults, got error: %v", err)
	}
	if cfg.App.Name != "combobooks" {
		t.Errorf("App.Name = %q, want default combobooks", cfg.App.Name)
	}
	if len(cfg.Venues.Use) != 3 {
		t.Errorf("Venues.Use = %v, want the 3 default venues", cfg.Venues.Use)
	}
	if cfg.Venues.Depth != 50 {
		t.Errorf("Venues.Depth = %d, want default 50", cfg.Venues.Depth)
	}
	if cfg.Sink.SaveEveryN != 10 {
		t.Errorf("Sink.SaveEveryN = %d, want default 10", cfg.Sink.SaveEveryN)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
app:
  name: test-service
venues:
  use: ["binance"]
  base_pairs: ["BTC-USDT"]
  depth: 25
sink:
  save_every_n: 3
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.App.Name != "test-service" {
		t.Errorf("App.Name = %q, want test-service", cfg.App.Name)
	}
	if len(cfg.Venues.Use) != 1 || cfg.Venues.Use[0] != "binance" {
		t.Errorf("Venues.Use = %v, want [binance]", cfg.Venues.Use)
	}
	if cfg.Venues.Depth != 25 {
		t.Errorf("Venues.Depth = %d, want 25", cfg.Venues.Depth)
	}
	if cfg.Sink.SaveEveryN != 3 {
		t.Errorf("Sink.SaveEveryN = %d, want 3", cfg.Sink.SaveEveryN)
	}
}

func TestLoadEnvVarOverridesDefault(t *testing.T) {
	t.Setenv("COMBO_APP_NAME", "env-service")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.App.Name != "env-service" {
		t.Errorf("App.Name = %q, want env-service from COMBO_APP_NAME", cfg.App.Name)
	}
}

func TestValidateRejectsEmptyVenues(t *testing.T) {
	cfg := &Config{
		Venues: VenuesConfig{Use: nil, BasePairs: []string{"BTC-USDT"}, Depth: 1},
		Fetch:  FetchConfig{BookTimeout: 1},
		Sink:   SinkConfig{SaveEveryN: 1},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject an empty venues.use list")
	}
}

func TestValidateRejectsNonPositiveDepth(t *testing.T) {
	cfg := &Config{
		Venues: VenuesConfig{Use: []string{"binance"}, BasePairs: []string{"BTC-USDT"}, Depth: 0},
		Fetch:  FetchConfig{BookTimeout: 1},
		Sink:   SinkConfig{SaveEveryN: 1},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a non-positive depth")
	}
}

func TestValidateRejectsNonPositiveSaveEveryN(t *testing.T) {
	cfg := &Config{
		Venues: VenuesConfig{Use: []string{"binance"}, BasePairs: []string{"BTC-USDT"}, Depth: 1},
		Fetch:  FetchConfig{BookTimeout: 1},
		Sink:   SinkConfig{SaveEveryN: 0},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a non-positive save_every_n")
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := &Config{
		Venues: VenuesConfig{Use: []string{"binance"}, BasePairs: []string{"BTC-USDT"}, Depth: 50},
		Fetch:  FetchConfig{BookRetries: 3, BookTimeout: 5},
		Sink:   SinkConfig{SaveEveryN: 10},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate rejected a well-formed config: %v", err)
	}
}

func TestTradeSizesDecimalConvertsEveryEntry(t *testing.T) {
	c := &ComboConfig{TradeSizes: []float64{0.1, 1.0, 10.0}}
	got := c.TradeSizesDecimal()
	if len(got) != 3 {
		t.Fatalf("TradeSizesDecimal returned %d entries, want 3", len(got))
	}
	if !got[1].Equal(got[1]) || got[1].String() != "1" {
		t.Errorf("TradeSizesDecimal[1] = %s, want 1", got[1])
	}
}
