// Comparator reconstructs compareComboBooks, referenced by
// original_source/tests/test_comboBooks.py but absent from the retained
// comboBooks.py — the distillation in spec.md dropped it. It answers "how
// does execution quality change with trade size" for a requested pair,
// across whatever books ComboBook produces (direct, inverse, or one per
// synthesized component-pair candidate).
package app

import (
	"github.com/shopspring/decimal"

	obapp "github.com/chrisliatas/combobooks/business/orderbook/app"
	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
)

// Comparison is one (pair, venue, amount, side) WAP observation.
type Comparison struct {
	Pair        string
	Venue       string
	Amount      decimal.Decimal
	Side        ob.Side
	Wap         decimal.Decimal
	Synthesized bool
}

// CompareComboBooks computes, for each notional in amounts, the base-qty
// WAP on both sides of every book dispatch() returns — typically a
// ComboBook(want, ...) call closed over the caller's venue/books/catalog.
func CompareComboBooks(want string, amounts []decimal.Decimal, dispatch func() []*ob.Book) []Comparison {
	results := dispatch()
	var out []Comparison
	for _, b := range results {
		synthesized := b.Venue == "merged"
		for _, amt := range amounts {
			out = append(out,
				Comparison{Pair: want, Venue: b.Venue, Amount: amt, Side: ob.Ask, Wap: obapp.WapBase(b.Asks, amt), Synthesized: synthesized},
				Comparison{Pair: want, Venue: b.Venue, Amount: amt, Side: ob.Bid, Wap: obapp.WapBase(b.Bids, amt), Synthesized: synthesized},
			)
		}
	}
	return out
}
