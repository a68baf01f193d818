// Package main is the entry point for the combo order-book service: it
// polls venue depth snapshots on a timer, runs the combo-book algebra
// over them, and batches WAP comparisons to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shopspring/decimal"

	comboapp "github.com/chrisliatas/combobooks/business/combo/app"
	combodomain "github.com/chrisliatas/combobooks/business/combo/domain"
	fetchapp "github.com/chrisliatas/combobooks/business/fetch/app"
	fetchinfra "github.com/chrisliatas/combobooks/business/fetch/infra"
	obapp "github.com/chrisliatas/combobooks/business/orderbook/app"
	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
	venue "github.com/chrisliatas/combobooks/business/venue/domain"
	venueapp "github.com/chrisliatas/combobooks/business/venue/app"
	venueinfra "github.com/chrisliatas/combobooks/business/venue/infra"

	"github.com/chrisliatas/combobooks/internal/apm"
	"github.com/chrisliatas/combobooks/internal/config"
	"github.com/chrisliatas/combobooks/internal/health"
	"github.com/chrisliatas/combobooks/internal/logger"
	"github.com/chrisliatas/combobooks/internal/metrics"
	"github.com/chrisliatas/combobooks/internal/resultsink"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("combobooks %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	log.Info(ctx, "starting combobooks", "version", version, "environment", cfg.App.Environment)

	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ConsoleProvider, log))

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{Provider: metrics.PrometheusProvider}),
		)
		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "telemetry initialized", "prometheus_port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	healthServer := health.NewServer(8081, version)

	venueTable := venueinfra.BuildVenueTable(cfg.Venues.BasePairs)
	catalog := venueapp.NewStaticCatalog(venueTable, venueinfra.DefaultVenueOrder, cfg.Venues.Use, venue.ValidQuotes)
	healthServer.RegisterCheck("catalog", func(context.Context) (bool, string) {
		if len(catalog.Venues()) == 0 {
			return false, "no venues configured"
		}
		return true, ""
	})

	fetcher, err := fetchinfra.NewHTTPFetcher(fetchinfra.FetcherConfig{
		Venues:         catalog.Venues(),
		Retries:        cfg.Fetch.BookRetries,
		Timeout:        cfg.Fetch.BookTimeout,
		InitBackoff:    cfg.Fetch.InitBackoff,
		RequestsPerSec: cfg.Fetch.RequestsPerSec,
		BreakerFailure: cfg.Fetch.BreakerFailures,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to build fetcher: %w", err)
	}

	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	}
	defer healthServer.Stop(ctx)

	sink := resultsink.New(cfg.Sink.ResultsDir, "combo_comparisons.json", cfg.Sink.SaveEveryN, log)

	runLoop(ctx, cfg, catalog, fetcher, sink, log)

	if err := sink.Flush(); err != nil {
		log.Error(ctx, "final flush failed", "error", err)
	}
	return nil
}

func runLoop(ctx context.Context, cfg *config.Config, catalog venueapp.Catalog, fetcher fetchapp.Fetcher, sink *resultsink.Sink, log logger.Logger) {
	ticker := time.NewTicker(cfg.Sink.IterEvery)
	defer ticker.Stop()

	deadline := time.Now().Add(cfg.Sink.RunFor)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if cfg.Sink.RunFor > 0 && time.Now().After(deadline) {
				return
			}
			iterate(ctx, cfg, catalog, fetcher, sink, log)
		}
	}
}

// iterate runs one fetch/combine/compare cycle: Fetcher -> IntraJoin ->
// CrossMerge -> ComboDispatcher, matching spec.md §2's data flow. Joins and
// merges are computed once per cycle and folded into books so the
// dispatcher can resolve requested pairs against native, joined, and
// merged venue labels alike.
func iterate(ctx context.Context, cfg *config.Config, catalog venueapp.Catalog, fetcher fetchapp.Fetcher, sink *resultsink.Sink, log logger.Logger) {
	books := fetchSnapshots(ctx, cfg, catalog, fetcher, log)

	joinSpecs := stableJoinSpecs(cfg.Venues.BasePairs)
	joinedVenues := comboapp.MultipleIntraVenueJoin(books, catalog.Venues(), joinSpecs, comboapp.JoinReplace, cfg.Combo.AggLevels)
	comboapp.CrossVenueMerge(books, joinedVenues, catalogFeeLookup(catalog), cfg.Combo.AllCombos)

	joinedMap := comboapp.JoinedMap{}
	for _, spec := range joinSpecs {
		joinedMap[spec.Pair1] = spec.Label
		joinedMap[spec.Pair2] = spec.Label
	}

	for _, venueID := range books.Venues() {
		for _, pair := range cfg.Venues.BasePairs {
			results := comboapp.CompareComboBooks(pair, cfg.Combo.TradeSizesDecimal(), dispatchThunk(pair, venueID, books, catalog, joinedMapFor(venueID, joinedMap), cfg, log))
			for _, r := range results {
				if err := sink.Add(r); err != nil {
					log.Error(ctx, "sink add failed", "error", err)
				}
			}
		}
	}
}

// joinedMapFor applies the pair-redirection map only when dispatching
// against a joined (or merged-from-joined) venue label: a raw venue's own
// listings must win over the DAI/USDC substitution.
func joinedMapFor(venueID string, joinedMap comboapp.JoinedMap) comboapp.JoinedMap {
	if strings.Contains(venueID, venue.JoinedSuffix) {
		return joinedMap
	}
	return comboapp.JoinedMap{}
}

// stableJoinSpecs pairs each "<base>-DAI" pair with its "<base>-USDC"
// counterpart when both are requested, treating DAI as 1:1 with USDC per
// spec.md §2/§4.E (e.g. ETH-USDC + ETH-DAI -> ETH-USDC').
func stableJoinSpecs(basePairs []string) []comboapp.JoinSpec {
	known := make(map[string]bool, len(basePairs))
	for _, p := range basePairs {
		known[p] = true
	}
	var specs []comboapp.JoinSpec
	for _, p := range basePairs {
		pair, ok := venue.ParsePair(p)
		if !ok || pair.Quote != "DAI" {
			continue
		}
		usdcPair := venue.Pair{Base: pair.Base, Quote: "USDC"}.String()
		if known[usdcPair] {
			specs = append(specs, comboapp.JoinSpec{Label: usdcPair, Pair1: usdcPair, Pair2: p})
		}
	}
	return specs
}

func dispatchThunk(want, venueID string, books combodomain.Books, catalog venueapp.Catalog, joinedMap comboapp.JoinedMap, cfg *config.Config, log logger.Logger) func() []*ob.Book {
	return func() []*ob.Book {
		return comboapp.ComboBook(want, venueID, books, catalog, joinedMap, comboComboFee(catalog), cfg.App.Debug, cfg.Combo.AggLevels, log)
	}
}

// comboComboFee adapts the catalog's pairwise venue fee lookup to the
// two-hop ComboFeeFunc shape ComboBook needs when bridging a synthesized
// pair across two venue legs.
func comboComboFee(catalog venueapp.Catalog) comboapp.ComboFeeFunc {
	return func(v1, p1, v2, p2 string) decimal.Decimal {
		return catalog.ComboFee([]venueapp.VenuePair{{Venue: v1, Pair: p1}, {Venue: v2, Pair: p2}})
	}
}

// catalogFeeLookup adapts the catalog's single-hop fee lookup to the
// orderbook app's FeeLookup shape, used by CrossVenueMerge to fold taker
// fees into each venue's levels before combining them.
func catalogFeeLookup(catalog venueapp.Catalog) obapp.FeeLookup {
	return func(v, p string, inverse bool) decimal.Decimal {
		rate, _ := catalog.Fee(v, p, inverse)
		return rate
	}
}

func fetchSnapshots(ctx context.Context, cfg *config.Config, catalog venueapp.Catalog, fetcher fetchapp.Fetcher, log logger.Logger) combodomain.Books {
	books := combodomain.Books{}
	for _, venueID := range catalog.Venues() {
		for _, pair := range cfg.Venues.BasePairs {
			native, ok := catalog.Native(venueID, pair)
			if !ok {
				continue
			}
			src := fetchapp.Source{
				Venue:        venueID,
				Pair:         pair,
				NativeSymbol: native,
				URL:          depthURL(venueID, native, cfg.Venues.Depth),
			}
			book, err := fetcher.Fetch(ctx, src, cfg.Venues.Depth)
			if err != nil {
				log.Warn(ctx, "snapshot fetch failed", "venue", venueID, "pair", pair, "error", err)
				continue
			}
			books.Set(book)
		}
	}
	return books
}

func depthURL(venueID, nativeSymbol string, depth int) string {
	switch venueID {
	case "binance":
		return fmt.Sprintf("https://api.binance.com/api/v3/depth?symbol=%s&limit=%d", nativeSymbol, depth)
	case "okx":
		return fmt.Sprintf("https://www.okx.com/api/v5/market/books?instId=%s&sz=%d", nativeSymbol, depth)
	case "coinbase":
		return fmt.Sprintf("https://api.exchange.coinbase.com/products/%s/book?level=2", nativeSymbol)
	default:
		return ""
	}
}
