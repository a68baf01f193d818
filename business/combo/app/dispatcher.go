// Component H: the Combo Dispatcher, the high-level entry point deciding
// whether a requested pair is directly known, a known inverse, or must be
// synthesized, then composing E/F/G.
package app

import (
	"context"

	"github.com/shopspring/decimal"

	obapp "github.com/chrisliatas/combobooks/business/orderbook/app"
	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
	"github.com/chrisliatas/combobooks/business/combo/domain"
	venueapp "github.com/chrisliatas/combobooks/business/venue/app"
	venue "github.com/chrisliatas/combobooks/business/venue/domain"
	"github.com/chrisliatas/combobooks/internal/logger"
)

// JoinedMap records, per requested canonical pair, the intra-venue-joined
// label it should resolve to instead (e.g. "ETH-USDC" -> "ETH-USDC" after
// DAI has been folded in under that label).
type JoinedMap map[string]string

func lookupOrSelf(m JoinedMap, pair string) string {
	if v, ok := m[pair]; ok {
		return v
	}
	return pair
}

func contains(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}

// TakerBook builds the final ladder for a directly-known (or known-inverse)
// pair: optional inversion, then taker fees folded into both sides,
// optional aggregation, relabeled to `want`.
func TakerBook(want, lookupPair, venueID string, books domain.Books, catalog venueapp.Catalog, inverse, debug, aggregate bool, log logger.Logger) (*ob.Book, bool) {
	b, ok := books.Get(venueID, lookupPair)
	if !ok {
		return nil, false
	}
	if inverse {
		b = b.Inverse()
	}
	feeLookup := func(v, p string, inv bool) decimal.Decimal {
		rate, _ := catalog.Fee(v, p, inv)
		return rate
	}
	asks := obapp.AsksAfterFees(b, feeLookup, decimal.Zero, inverse)
	bids := obapp.BidsAfterFees(b, feeLookup, decimal.Zero, inverse)
	result := ob.New(venueID, want, b.Ts, bids, asks)
	if !debug {
		stripDebug(result)
	}
	if aggregate {
		result.Aggregate()
	}
	warnIfCrossedSpread(log, result)
	return result, true
}

// warnIfCrossedSpread logs a warning when a dispatched book's top-of-book
// spread is non-positive (spec's "reportable warning condition, not an
// error" for synthesized/fee-adjusted books).
func warnIfCrossedSpread(log logger.Logger, b *ob.Book) {
	if log == nil || !b.HasLiquidity() {
		return
	}
	if spread := b.Spread(); spread.Sign() <= 0 {
		log.Warn(context.Background(), "non-positive spread", "venue", b.Venue, "pair", b.Pair, "spread", spread)
	}
}

func stripDebug(b *ob.Book) {
	clear := func(levels []ob.Level) []ob.Level {
		for i := range levels {
			levels[i].DebugTrail = nil
		}
		return levels
	}
	b.SetLevels(ob.Bid, clear(b.Bids))
	b.SetLevels(ob.Ask, clear(b.Asks))
}

// ComboBook is the dispatcher: direct match, then known inverse, then a
// "_jnd" parent-venue fallback, then full synthesis. It returns one book
// per (p1, p2) candidate the synthesizer found.
func ComboBook(want, venueID string, books domain.Books, catalog venueapp.Catalog, joinedMap JoinedMap, comboFee ComboFeeFunc, debug, aggregate bool, log logger.Logger) []*ob.Book {
	wantPair, ok := venue.ParsePair(want)
	if !ok {
		return nil
	}
	known := books.Pairs(venueID)

	target := lookupOrSelf(joinedMap, want)
	if contains(known, target) {
		if b, ok := TakerBook(want, target, venueID, books, catalog, false, debug, aggregate, log); ok {
			return []*ob.Book{b}
		}
	}

	inversePair := wantPair.Inverse().String()
	inverseTarget := lookupOrSelf(joinedMap, inversePair)
	if contains(known, inverseTarget) {
		if b, ok := TakerBook(want, inverseTarget, venueID, books, catalog, true, debug, aggregate, log); ok {
			return []*ob.Book{b}
		}
	}

	if parent, wasJoined := venue.StripJoinedSuffix(venueID); wasJoined {
		if parentKnown := books.Pairs(parent); len(parentKnown) > 0 {
			return ComboBook(want, parent, books, catalog, joinedMap, comboFee, debug, aggregate, log)
		}
	}

	return synthesizeAll(wantPair, venueID, books, catalog, comboFee, debug, aggregate, log)
}

func synthesizeAll(want venue.Pair, venueID string, books domain.Books, catalog venueapp.Catalog, comboFee ComboFeeFunc, debug, aggregate bool, log logger.Logger) []*ob.Book {
	known := books.Pairs(venueID)
	knownPairs := make([]venue.Pair, 0, len(known))
	for _, k := range known {
		if p, ok := venue.ParsePair(k); ok {
			knownPairs = append(knownPairs, p)
		}
	}

	candidates := FindPairs(want, knownPairs, catalog.ValidQuotes())
	out := make([]*ob.Book, 0, len(candidates))
	for _, cand := range candidates {
		p1Book, ok1 := books.Get(venueID, cand.P1.String())
		p2Book, ok2 := books.Get(venueID, cand.P2.String())
		if !ok1 || !ok2 {
			continue
		}
		synth, c := Synthesize(want, p1Book, p2Book, comboFee, debug, aggregate)
		if synth == nil || c == domain.CaseNone {
			continue
		}
		warnIfCrossedSpread(log, synth)
		out = append(out, synth)
	}
	return out
}
