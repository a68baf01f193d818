package app

import (
	venue "github.com/chrisliatas/combobooks/business/venue/domain"
)

// ComponentPair is one (p1, p2) candidate bridge returned by FindPairs:
// two known pairs sharing a currency that can synthesize `want`.
type ComponentPair struct {
	P1, P2 venue.Pair
}

// FindPairs locates component pairs that bridge want through a common
// currency, among known. This tokenizes on "-" (via venue.Pair) rather
// than doing substring containment on raw strings, fixing the "BTC" inside
// "WBTC" fragility the spec's DESIGN NOTES flag in the original
// (find_pairs); the returned candidate shape and fallback order otherwise
// follow the original algorithm step for step.
func FindPairs(want venue.Pair, known []venue.Pair, validQuotes venue.CurrencySet) []ComponentPair {
	for _, p := range known {
		if p == want || p == want.Inverse() {
			return []ComponentPair{{P1: want, P2: want}}
		}
	}

	var commonBase []venue.Pair
	for _, p := range known {
		if p.HasCurrency(want.Base) {
			commonBase = append(commonBase, p)
		}
	}
	if len(commonBase) == 0 {
		return nil
	}

	var bridgeQuotes []string
	for _, p := range commonBase {
		if other, ok := p.Other(want.Base); ok && validQuotes.Has(other) {
			bridgeQuotes = append(bridgeQuotes, other)
		}
	}

	matchRelated := func(bridges []string) []venue.Pair {
		var related []venue.Pair
		for _, p := range known {
			for _, c := range bridges {
				if p.HasCurrency(c) && p.HasCurrency(want.Quote) {
					related = append(related, p)
					break
				}
			}
		}
		return related
	}

	related := matchRelated(bridgeQuotes)
	filterByQuotePosition := true
	if len(related) == 0 {
		// Fallback: bridge on the *base* leg of each common_base pair
		// instead of its quote-position other side.
		var baseBridges []string
		for _, p := range commonBase {
			baseBridges = append(baseBridges, p.Base)
		}
		related = matchRelated(baseBridges)
		filterByQuotePosition = false
	}
	if len(related) == 0 {
		return nil
	}

	relatedTokens := venue.CurrencySet{}
	for _, p := range related {
		relatedTokens[p.Base] = struct{}{}
		relatedTokens[p.Quote] = struct{}{}
	}

	var filteredBase []venue.Pair
	for _, p := range commonBase {
		var token string
		if filterByQuotePosition {
			token, _ = p.Other(want.Base)
		} else {
			token = p.Base
		}
		if relatedTokens.Has(token) {
			filteredBase = append(filteredBase, p)
		}
	}

	n := len(filteredBase)
	if len(related) < n {
		n = len(related)
	}
	out := make([]ComponentPair, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ComponentPair{P1: filteredBase[i], P2: related[i]})
	}
	return out
}
