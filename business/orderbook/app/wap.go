package app

import (
	"github.com/shopspring/decimal"

	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
)

// Cursor is the resumable traversal position for one (side, denomination)
// combination: the index of the next level to consume, and how much of
// that level's size has already been consumed by a prior call.
type Cursor struct {
	Idx     int
	Partial decimal.Decimal
}

// State holds all four independent cursors a WAP traversal needs: base-
// and quote-denominated consumption, each per side. It is an explicit
// scratchpad parameter, not a Book field (spec DESIGN NOTES item 4), so
// two traversals of the same book never alias each other's progress.
type State struct {
	BaseBids, BaseAsks   Cursor
	QuoteBids, QuoteAsks Cursor
}

// Reset clears all four cursors.
func (s *State) Reset() { *s = State{} }

func (s *State) baseCursor(side ob.Side) *Cursor {
	if side == ob.Bid {
		return &s.BaseBids
	}
	return &s.BaseAsks
}

func (s *State) quoteCursor(side ob.Side) *Cursor {
	if side == ob.Bid {
		return &s.QuoteBids
	}
	return &s.QuoteAsks
}

// Consumed is one sub-level produced by a traversal: the price it was
// taken at, how much was consumed, its origin venue, and the quote notional
// (amt = price*size) it represents.
type Consumed struct {
	Price  decimal.Decimal
	Size   decimal.Decimal
	Origin string
	Amt    decimal.Decimal
}

// WapBaseLevels consumes baseQty of base currency from levels starting at
// cur's position, advancing cur in place. If depth is insufficient the
// traversal ends with a partial result — not an error (DepthExhausted is
// informational only).
func WapBaseLevels(levels []ob.Level, cur *Cursor, baseQty decimal.Decimal) []Consumed {
	var out []Consumed
	qty := baseQty
	first := true
	for cur.Idx < len(levels) && qty.IsPositive() {
		l := levels[cur.Idx]
		effSize := l.Size
		if first {
			effSize = effSize.Sub(cur.Partial)
		}
		first = false
		if effSize.LessThanOrEqual(decimal.Zero) {
			cur.Idx++
			cur.Partial = decimal.Zero
			continue
		}
		if qty.GreaterThanOrEqual(effSize) {
			out = append(out, Consumed{Price: l.Price, Size: effSize, Origin: l.Origin, Amt: effSize.Mul(l.Price)})
			cur.Idx++
			cur.Partial = decimal.Zero
			qty = qty.Sub(effSize)
			continue
		}
		out = append(out, Consumed{Price: l.Price, Size: qty, Origin: l.Origin, Amt: qty.Mul(l.Price)})
		cur.Partial = cur.Partial.Add(qty)
		qty = decimal.Zero
	}
	return out
}

// WapBase is the stateless convenience form: walks levels from the start
// with a fresh cursor and returns only the weighted-average price, or zero
// if nothing was consumed. The consumed notional is divided by baseQty, so
// when depth runs out before baseQty is filled the result is smaller than
// the average price of the consumed levels.
func WapBase(levels []ob.Level, baseQty decimal.Decimal) decimal.Decimal {
	var cur Cursor
	consumed := WapBaseLevels(levels, &cur, baseQty)
	return wapFromConsumed(consumed, baseQty)
}

func wapFromConsumed(consumed []Consumed, qty decimal.Decimal) decimal.Decimal {
	if qty.IsZero() {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, c := range consumed {
		total = total.Add(c.Price.Mul(c.Size))
	}
	return total.Div(qty)
}

// WapQuoteLevels consumes quoteQty of quote currency from levels, advancing
// cur in place.
func WapQuoteLevels(levels []ob.Level, cur *Cursor, quoteQty decimal.Decimal) []Consumed {
	var out []Consumed
	qty := quoteQty
	first := true
	for cur.Idx < len(levels) && qty.IsPositive() {
		l := levels[cur.Idx]
		effSize := l.Size
		if first {
			effSize = effSize.Sub(cur.Partial)
		}
		first = false
		effQuote := effSize.Mul(l.Price)
		if effQuote.LessThanOrEqual(decimal.Zero) {
			cur.Idx++
			cur.Partial = decimal.Zero
			continue
		}
		if qty.GreaterThanOrEqual(effQuote) {
			out = append(out, Consumed{Price: l.Price, Size: effSize, Origin: l.Origin, Amt: effQuote})
			cur.Idx++
			cur.Partial = decimal.Zero
			qty = qty.Sub(effQuote)
			continue
		}
		baseConsumed := qty.Div(l.Price)
		out = append(out, Consumed{Price: l.Price, Size: baseConsumed, Origin: l.Origin, Amt: qty})
		cur.Partial = cur.Partial.Add(baseConsumed)
		qty = decimal.Zero
	}
	return out
}

// WapQuote is WapQuoteLevels's stateless scalar form:
// wap(quote_qty) = quote_qty / Σ size_i consumed, or zero if nothing was
// consumed.
func WapQuote(levels []ob.Level, quoteQty decimal.Decimal) decimal.Decimal {
	var cur Cursor
	consumed := WapQuoteLevels(levels, &cur, quoteQty)
	totalSize := decimal.Zero
	for _, c := range consumed {
		totalSize = totalSize.Add(c.Size)
	}
	if totalSize.IsZero() {
		return decimal.Zero
	}
	return quoteQty.Div(totalSize)
}
