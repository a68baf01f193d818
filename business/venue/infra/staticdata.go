// Package infra carries the concrete venue fee tables and symbol maps used
// to construct a Catalog, grounded on exchangesData.py's ExchangesConstants
// and coinbaseUtils.py's product-code substitution.
package infra

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chrisliatas/combobooks/business/venue/app"
	"github.com/chrisliatas/combobooks/business/venue/domain"
)

// DefaultVenueOrder is the iteration order of the built-in venue set.
var DefaultVenueOrder = []string{"binance", "okx", "coinbase"}

// DefaultBasePairs mirrors exchangesData.py's BASE_PAIRS.
var DefaultBasePairs = []string{
	"ETH-USDC",
	"USDC-USDT",
	"BTC-USDC",
	"ETH-BTC",
	"ETH-USDT",
	"ETH-DAI",
	"BTC-DAI",
}

// binanceNativeSymbol renders a canonical pair as Binance's concatenated
// native symbol, e.g. "ETH-USDC" -> "ETHUSDC".
func binanceNativeSymbol(canonical string) string {
	return strings.ReplaceAll(canonical, "-", "")
}

// coinbaseNativeSymbol implements the USDC->USD product-code substitution
// from coinbaseUtils.py's get_CB_pair: Coinbase lists "USD" products, not
// "USDC" ones, even though the canonical pair and venue fee classification
// stay "*-USDC".
func coinbaseNativeSymbol(canonical string) string {
	p, ok := domain.ParsePair(canonical)
	if !ok {
		return canonical
	}
	if p.Quote == "USDC" {
		p.Quote = "USD"
	}
	return p.String()
}

// BuildVenueTable constructs the static per-venue catalog entries for
// basePairs, the way exchangesData.py's constructor derives EXCH_DATA from
// BASE_PAIRS for each configured exchange.
func BuildVenueTable(basePairs []string) map[string]app.VenueData {
	binanceMap := make(map[string]string, len(basePairs))
	okxMap := make(map[string]string, len(basePairs))
	coinbaseMap := make(map[string]string, len(basePairs))
	for _, p := range basePairs {
		binanceMap[binanceNativeSymbol(p)] = p
		okxMap[p] = p // OKX native symbols are already "BASE-QUOTE".
		coinbaseMap[coinbaseNativeSymbol(p)] = p
	}

	return map[string]app.VenueData{
		"binance": {
			Fees: app.FeeTable{
				Split:       true,
				SpotRate:    decimal.NewFromFloat(0.000405),
				StableRate:  decimal.Zero,
				StablePairs: domain.NewCurrencySet("USDCUSDT"),
			},
			NativeToCanonical: binanceMap,
		},
		"okx": {
			Fees: app.FeeTable{Flat: decimal.NewFromFloat(0.0004)},
			NativeToCanonical: okxMap,
		},
		"coinbase": {
			Fees: app.FeeTable{
				Split:      true,
				SpotRate:   decimal.NewFromFloat(0.001),
				StableRate: decimal.NewFromFloat(0.00001),
				// populated below once native symbols are known, matching
				// CbProducts.stable_pairs being derived at runtime in the
				// original; here it's the set of native stable product codes.
				StablePairs: coinbaseStablePairs(coinbaseMap),
			},
			NativeToCanonical: coinbaseMap,
		},
	}
}

// coinbaseStablePairs picks out native product codes whose canonical quote
// is a stablecoin-class currency (DAI/USDC/USDT/BUSD), the Go equivalent of
// CbProducts classifying products into a stable_pairs set.
func coinbaseStablePairs(nativeToCanonical map[string]string) domain.CurrencySet {
	stableQuotes := domain.NewCurrencySet("DAI", "USDC", "USDT", "BUSD")
	out := domain.CurrencySet{}
	for native, canonical := range nativeToCanonical {
		p, ok := domain.ParsePair(canonical)
		if ok && stableQuotes.Has(p.Quote) {
			out[native] = struct{}{}
		}
	}
	return out
}
