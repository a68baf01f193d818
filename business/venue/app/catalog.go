// Package app implements the Venue Catalog (component A): venue
// enumeration, canonical<->native symbol mapping, taker-fee lookup with
// stablecoin-class overrides, and the bridge-currency set used by
// synthesis. Grounded on exchangesData.py's ExchangesConstants.
package app

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chrisliatas/combobooks/business/venue/domain"
)

// FeeTable is either a single flat taker rate, or a rate split between
// "spot" and "stables" pairs (Coinbase and Binance both do this).
// Expressed as a discriminated union per the spec's DESIGN NOTES, rather
// than always carrying both fields.
type FeeTable struct {
	Flat        decimal.Decimal
	Split       bool
	SpotRate    decimal.Decimal
	StableRate  decimal.Decimal
	StablePairs domain.CurrencySet // native pair strings treated as "stables"
}

// Rate resolves the table to a single rate for a native pair string.
func (t FeeTable) Rate(nativePair string) decimal.Decimal {
	if !t.Split {
		return t.Flat
	}
	if t.StablePairs.Has(nativePair) {
		return t.StableRate
	}
	return t.SpotRate
}

// VenuePair names a pair as traded on a specific venue, used by ComboFee
// to sum fees across hops.
type VenuePair struct {
	Venue string
	Pair  string
}

// VenueData is one venue's static catalog entry.
type VenueData struct {
	Fees FeeTable
	// NativeToCanonical maps this venue's native symbol to the canonical
	// Pair string ("BASE-QUOTE").
	NativeToCanonical map[string]string
	// CanonicalToNative is the inverse map, built once at construction.
	CanonicalToNative map[string]string
}

// Catalog is the Venue Catalog port.
type Catalog interface {
	Venues() []string
	Canonical(venue, nativeSymbol string) (string, bool)
	Native(venue, canonicalPair string) (string, bool)
	Fee(venue, pair string, inverse bool) (decimal.Decimal, bool)
	ComboFee(hops []VenuePair) decimal.Decimal
	ValidQuotes() domain.CurrencySet
}

// StaticCatalog is a Catalog backed by an in-memory venue table, mirroring
// exchangesData.py's ExchangesConstants (a static table keyed by venue,
// optionally filtered to an allow-list).
type StaticCatalog struct {
	venues      map[string]VenueData
	order       []string
	validQuotes domain.CurrencySet
}

// NewStaticCatalog builds a catalog restricted to allowVenues (nil/empty
// means "use every configured venue"), mirroring the `use_exchs` filter in
// exchangesData.py's constructor.
func NewStaticCatalog(all map[string]VenueData, order []string, allowVenues []string, validQuotes domain.CurrencySet) *StaticCatalog {
	c := &StaticCatalog{venues: make(map[string]VenueData), validQuotes: validQuotes}
	allow := domain.NewCurrencySet(allowVenues...)
	filter := len(allowVenues) > 0
	for _, v := range order {
		if filter && !allow.Has(v) {
			continue
		}
		data := all[v]
		if data.CanonicalToNative == nil {
			data.CanonicalToNative = make(map[string]string, len(data.NativeToCanonical))
			for native, canon := range data.NativeToCanonical {
				data.CanonicalToNative[canon] = native
			}
		}
		c.venues[v] = data
		c.order = append(c.order, v)
	}
	return c
}

func (c *StaticCatalog) Venues() []string { return c.order }

func (c *StaticCatalog) ValidQuotes() domain.CurrencySet { return c.validQuotes }

func (c *StaticCatalog) resolveVenue(venue string) (VenueData, string, bool) {
	base, _ := domain.StripJoinedSuffix(venue)
	data, ok := c.venues[base]
	return data, base, ok
}

func (c *StaticCatalog) Canonical(venue, nativeSymbol string) (string, bool) {
	data, _, ok := c.resolveVenue(venue)
	if !ok {
		return "", false
	}
	canon, ok := data.NativeToCanonical[nativeSymbol]
	return canon, ok
}

func (c *StaticCatalog) Native(venue, canonicalPair string) (string, bool) {
	data, _, ok := c.resolveVenue(venue)
	if !ok {
		return "", false
	}
	native, ok := data.CanonicalToNative[canonicalPair]
	return native, ok
}

// Fee returns the taker fee rate for pair on venue. _jnd venues inherit
// their parent's fees, stripping the suffix first. If inverse is set, the
// pair is reversed before the stable-pair lookup, matching `exchFees`'s
// `inverse` handling in exchangesData.py.
func (c *StaticCatalog) Fee(venue, pair string, inverse bool) (decimal.Decimal, bool) {
	data, _, ok := c.resolveVenue(venue)
	if !ok {
		return decimal.Zero, false
	}
	lookupPair := pair
	if inverse {
		if p, valid := domain.ParsePair(pair); valid {
			lookupPair = p.Inverse().String()
		}
	}
	native, _ := data.CanonicalToNative[lookupPair]
	if native == "" {
		native = strings.ReplaceAll(lookupPair, "-", "")
	}
	return data.Fees.Rate(native), true
}

// ComboFee sums the fee for each (venue, pair) hop; fees stack linearly
// across a synthesis chain.
func (c *StaticCatalog) ComboFee(hops []VenuePair) decimal.Decimal {
	total := decimal.Zero
	for _, h := range hops {
		if rate, ok := c.Fee(h.Venue, h.Pair, false); ok {
			total = total.Add(rate)
		}
	}
	return total
}
