package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Spread is asks[0].Price - bids[0].Price. Callers must check
// HasLiquidity first; synthesized books may legitimately produce a
// non-positive spread, which is a reportable warning condition, not an
// error (spec §3 Book invariants).
func (b *Book) Spread() decimal.Decimal {
	return b.Asks[0].Price.Sub(b.Bids[0].Price)
}

// Mid is the midpoint between best bid and best ask.
func (b *Book) Mid() decimal.Decimal {
	return b.Asks[0].Price.Add(b.Bids[0].Price).Div(decimal.NewFromInt(2))
}

// TotSize sums size across every level on side.
func (b *Book) TotSize(side Side) decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.Levels(side) {
		total = total.Add(l.Size)
	}
	return total
}

// Imbalance is the normalized bid/ask size asymmetry within the top n
// levels of each side, in [-1, 1]. Returns 0 when both sides are empty
// within top-n (zero denominator).
func (b *Book) Imbalance(n int) decimal.Decimal {
	ones := make([]decimal.Decimal, n)
	for k := range ones {
		ones[k] = decimal.NewFromInt(1)
	}
	return b.WeightedImbalance(n, ones)
}

// WeightedImbalance is Imbalance with an element-wise weight applied per
// rank; a nil/short weights slice defaults missing entries to exp(-k) for
// rank k, matching the original's default weighting.
func (b *Book) WeightedImbalance(n int, weights []decimal.Decimal) decimal.Decimal {
	weightAt := func(k int) decimal.Decimal {
		if k < len(weights) {
			return weights[k]
		}
		return decimal.NewFromFloat(math.Exp(-float64(k)))
	}
	sumSide := func(side Side) decimal.Decimal {
		levels := b.Levels(side)
		if n < len(levels) {
			levels = levels[:n]
		}
		total := decimal.Zero
		for k, l := range levels {
			total = total.Add(l.Size.Mul(weightAt(k)))
		}
		return total
	}
	bidSum := sumSide(Bid)
	askSum := sumSide(Ask)
	denom := bidSum.Add(askSum)
	if denom.IsZero() {
		return decimal.Zero
	}
	return bidSum.Sub(askSum).Div(denom)
}

// levelAt returns the level at rank i, or a zero-price/zero-size level if
// the side is shorter than i+1 ("missing ranks count as (0, 0)").
func levelAt(levels []Level, i int) Level {
	if i < len(levels) {
		return levels[i]
	}
	return Level{}
}

// OrderFlowImbalance compares the top-n ranks of two consecutive book
// snapshots and returns the directional size-change signal: positive means
// net buy pressure, negative net sell pressure.
//
// Bid ΔV at rank i: curr>prev -> +curr.size; curr==prev -> curr.size-prev.size;
// curr<prev -> -prev.size. Ask ΔV uses the mirrored rule. Missing ranks are
// (0, 0) on both price and size: a bid rank present only in curr adds its
// size, a bid rank present only in prev subtracts its size, and an ask rank
// present in only one snapshot contributes zero.
func OrderFlowImbalance(prevBids, prevAsks, currBids, currAsks []Level, n int) decimal.Decimal {
	deltaSide := func(prev, curr []Level, mirrored bool) decimal.Decimal {
		total := decimal.Zero
		for i := 0; i < n; i++ {
			p := levelAt(prev, i)
			c := levelAt(curr, i)
			switch {
			case c.Price.GreaterThan(p.Price):
				if mirrored {
					total = total.Sub(p.Size)
				} else {
					total = total.Add(c.Size)
				}
			case c.Price.Equal(p.Price):
				total = total.Add(c.Size.Sub(p.Size))
			default: // c.Price < p.Price
				if mirrored {
					total = total.Add(c.Size)
				} else {
					total = total.Sub(p.Size)
				}
			}
		}
		return total
	}
	bidDelta := deltaSide(prevBids, currBids, false)
	askDelta := deltaSide(prevAsks, currAsks, true)
	return bidDelta.Sub(askDelta)
}

// Inverse produces the book for the swapped pair: new asks are built by
// inverting the source bids, new bids by inverting the source asks (a bid
// to buy base with quote becomes, from the inverted pair's perspective, an
// offer to sell quote for base). Per level: price' = 1/price,
// size' = size*price.
func (b *Book) Inverse() *Book {
	inv := &Book{
		Venue: b.Venue,
		Pair:  invertPairLabel(b.Pair),
		Ts:    b.Ts,
		Asks:  invertLevels(b.Bids),
		Bids:  invertLevels(b.Asks),
	}
	inv.Sort()
	return inv
}

func invertLevels(levels []Level) []Level {
	out := make([]Level, len(levels))
	one := decimal.NewFromInt(1)
	for i, l := range levels {
		out[i] = Level{
			Price:      one.Div(l.Price),
			Size:       l.Size.Mul(l.Price),
			Origin:     l.Origin,
			DebugTrail: append([]DebugLevel{}, l.DebugTrail...),
		}
	}
	return out
}

func invertPairLabel(pair string) string {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '-' {
			return pair[i+1:] + "-" + pair[:i]
		}
	}
	return pair
}
