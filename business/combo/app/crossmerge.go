package app

import (
	"github.com/shopspring/decimal"

	obapp "github.com/chrisliatas/combobooks/business/orderbook/app"
	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
	"github.com/chrisliatas/combobooks/business/combo/domain"
	venue "github.com/chrisliatas/combobooks/business/venue/domain"
)

// CrossVenueMerge unites the common pairs across venues into fee-adjusted
// books labeled by the hyphenated venue set. When allCombos is true it
// additionally emits one merged book per non-trivial subset of venues
// (size >= 2); otherwise only the full superset is produced. The result is
// both returned and written into books under each merged label.
func CrossVenueMerge(books domain.Books, venues []string, lookup obapp.FeeLookup, allCombos bool) domain.Books {
	result := domain.Books{}
	subsets := [][]string{venues}
	if allCombos {
		subsets = nonTrivialSubsets(venues)
	}
	for _, subset := range subsets {
		if len(subset) < 2 {
			continue
		}
		mergeSubset(books, subset, lookup, result)
	}
	for label, byPair := range result {
		books[label] = byPair
	}
	return result
}

func mergeSubset(books domain.Books, venues []string, lookup obapp.FeeLookup, result domain.Books) {
	common := commonPairs(books, venues)
	label := venue.MergedVenue(venues)
	for _, pair := range common {
		var bids, asks []ob.Level
		var latest *ob.Book
		for _, v := range venues {
			b, ok := books.Get(v, pair)
			if !ok {
				continue
			}
			asks = append(asks, obapp.AsksAfterFees(b, lookup, decimal.Zero, false)...)
			bids = append(bids, obapp.BidsAfterFees(b, lookup, decimal.Zero, false)...)
			if latest == nil || b.Ts.After(latest.Ts) {
				latest = b
			}
		}
		if latest == nil {
			continue
		}
		merged := ob.New(label, pair, latest.Ts, bids, asks)
		result.Set(merged)
	}
}

// commonPairs returns the intersection of pairs known to every venue in
// venues, sorted for deterministic zip alignment.
func commonPairs(books domain.Books, venues []string) []string {
	if len(venues) == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, v := range venues {
		seen := map[string]struct{}{}
		for _, p := range books.Pairs(v) {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			counts[p]++
		}
	}
	var common []string
	for pair, n := range counts {
		if n == len(venues) {
			common = append(common, pair)
		}
	}
	sortStrings(common)
	return common
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// nonTrivialSubsets returns every subset of items with size >= 2, the Go
// equivalent of itertools.combinations over every length from 2 to len(items).
func nonTrivialSubsets(items []string) [][]string {
	n := len(items)
	var out [][]string
	for mask := 1; mask < (1 << n); mask++ {
		if bitCount(mask) < 2 {
			continue
		}
		var subset []string
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, items[i])
			}
		}
		out = append(out, subset)
	}
	return out
}

func bitCount(x int) int {
	c := 0
	for x != 0 {
		c += x & 1
		x >>= 1
	}
	return c
}
