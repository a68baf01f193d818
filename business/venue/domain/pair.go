// Package domain models the currency-pair and venue vocabulary shared by
// the order-book and combo packages: a pair is an ordered (base, quote)
// tuple rendered "BASE-QUOTE"; a venue is a named source of depth
// snapshots, possibly a derived "_jnd" (intra-venue-join) label.
package domain

import "strings"

// JoinedSuffix is the canonical label suffix for a venue's intra-venue-join
// output. The original research script also checked for "_joined" in one
// fee-lookup branch; that was a naming slip fixed here (spec's DESIGN NOTES
// item 4) — "_jnd" is the only suffix this module emits; StripJoinedSuffix
// still accepts the legacy "_joined" spelling on read.
const JoinedSuffix = "_jnd"

// Pair is an ordered base/quote currency tuple.
type Pair struct {
	Base  string
	Quote string
}

// ParsePair tokenizes "BASE-QUOTE" on the separator, not by substring
// matching — the spec's DESIGN NOTES flag the original's substring tests
// (e.g. "BTC" inside "WBTC") as fragile; this tokenizes on "-" instead.
func ParsePair(s string) (Pair, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, false
	}
	return Pair{Base: parts[0], Quote: parts[1]}, true
}

// String renders the pair canonically.
func (p Pair) String() string {
	return p.Base + "-" + p.Quote
}

// Inverse swaps base and quote.
func (p Pair) Inverse() Pair {
	return Pair{Base: p.Quote, Quote: p.Base}
}

// HasCurrency reports whether c is either leg of the pair, compared as a
// whole token (never a substring match).
func (p Pair) HasCurrency(c string) bool {
	return p.Base == c || p.Quote == c
}

// Other returns the currency on the opposite side from c, and whether c was
// found at all.
func (p Pair) Other(c string) (string, bool) {
	switch c {
	case p.Base:
		return p.Quote, true
	case p.Quote:
		return p.Base, true
	default:
		return "", false
	}
}

// StripJoinedSuffix returns the parent venue id for a "_jnd" derived venue,
// and whether a joined suffix was present. Kept tolerant of the legacy "_joined" spelling
// found in the original source so catalog lookups against data carried over
// from that format still resolve; new code never produces it.
func StripJoinedSuffix(venue string) (string, bool) {
	if strings.HasSuffix(venue, JoinedSuffix) {
		return strings.TrimSuffix(venue, JoinedSuffix), true
	}
	if strings.HasSuffix(venue, "_joined") {
		return strings.TrimSuffix(venue, "_joined"), true
	}
	return venue, false
}

// JoinedVenue returns the "_jnd" label for venue.
func JoinedVenue(venue string) string {
	return venue + JoinedSuffix
}

// MergedVenue returns the hyphenated label cross-venue merge uses for a set
// of venues, in the order given.
func MergedVenue(venues []string) string {
	return strings.Join(venues, "-")
}

// ValidQuotes is the default bridge-currency set: tickers eligible to serve
// as the common currency during pair synthesis.
var ValidQuotes = NewCurrencySet("DAI", "USDT", "BUSD", "USDC", "BTC", "WBTC", "WETH", "ETH")

// CurrencySet is a small set of currency tickers.
type CurrencySet map[string]struct{}

// NewCurrencySet builds a CurrencySet from the given tickers.
func NewCurrencySet(tickers ...string) CurrencySet {
	s := make(CurrencySet, len(tickers))
	for _, t := range tickers {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether c is a member.
func (s CurrencySet) Has(c string) bool {
	_, ok := s[c]
	return ok
}
