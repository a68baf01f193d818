package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Book is a single venue/pair snapshot: sorted bids (desc), asks (asc), a
// timestamp, and cached decimal-precision metadata. Transformations that
// would mutate a shared Book (aggregation, in-place join) operate on a
// Clone(); WAP traversal state is never stored here (see orderbook/app's
// Cursor and State) —
// it is threaded explicitly by callers, per the spec's DESIGN NOTES item 4,
// to avoid aliasing surprises between concurrent traversals of one book.
type Book struct {
	Venue string
	Pair  string
	Ts    time.Time
	Bids  []Level
	Asks  []Level

	prcDecimals  int32
	sizeDecimals int32
	decimalsSet  bool
}

// New constructs a Book, taking ownership of copies of bids/asks and
// sorting them into invariant order (bids desc, asks asc).
func New(venue, pair string, ts time.Time, bids, asks []Level) *Book {
	b := &Book{
		Venue: venue,
		Pair:  pair,
		Ts:    ts,
		Bids:  cloneLevels(bids),
		Asks:  cloneLevels(asks),
	}
	b.Sort()
	return b
}

// Sort restores the sort invariant (bids strictly descending, asks
// strictly ascending) and invalidates cached decimal-precision metadata.
func (b *Book) Sort() {
	sort.SliceStable(b.Bids, func(i, j int) bool { return b.Bids[i].Price.GreaterThan(b.Bids[j].Price) })
	sort.SliceStable(b.Asks, func(i, j int) bool { return b.Asks[i].Price.LessThan(b.Asks[j].Price) })
	b.decimalsSet = false
}

// Clone deep-copies the book, including debug trails, so transformations
// never mutate shared input state.
func (b *Book) Clone() *Book {
	return &Book{
		Venue:        b.Venue,
		Pair:         b.Pair,
		Ts:           b.Ts,
		Bids:         cloneLevels(b.Bids),
		Asks:         cloneLevels(b.Asks),
		prcDecimals:  b.prcDecimals,
		sizeDecimals: b.sizeDecimals,
		decimalsSet:  b.decimalsSet,
	}
}

// Levels returns the side's level slice.
func (b *Book) Levels(side Side) []Level {
	if side == Bid {
		return b.Bids
	}
	return b.Asks
}

// SetLevels replaces a side's levels and invalidates cached metadata.
func (b *Book) SetLevels(side Side, levels []Level) {
	if side == Bid {
		b.Bids = levels
	} else {
		b.Asks = levels
	}
	b.decimalsSet = false
}

// Decimals returns the cached (price, size) decimal-place counts, computed
// as the maximum observed across both sides on first access and fixed
// until the next mutation invalidates them.
func (b *Book) Decimals() (price, size int32) {
	if !b.decimalsSet {
		b.prcDecimals = maxDecimalPlaces(b.Bids, b.Asks, true)
		b.sizeDecimals = maxDecimalPlaces(b.Bids, b.Asks, false)
		b.decimalsSet = true
	}
	return b.prcDecimals, b.sizeDecimals
}

func maxDecimalPlaces(bids, asks []Level, price bool) int32 {
	var max int32
	scan := func(levels []Level) {
		for _, l := range levels {
			v := l.Size
			if price {
				v = l.Price
			}
			if e := -v.Exponent(); e > max {
				max = e
			}
		}
	}
	scan(bids)
	scan(asks)
	return max
}

// RoundDigits implements round_digits(a, b, v) from the synthesizer: the
// number of decimal places to round a synthesized level to is the larger
// of the two source books' cached precisions and a value-dependent floor,
// since very small or very large prices need more or fewer significant
// decimals to stay distinguishable.
func RoundDigits(a, b int32, v decimal.Decimal) int32 {
	var r int32
	switch {
	case v.LessThanOrEqual(decimal.NewFromFloat(0.01)):
		r = 8
	case v.LessThan(decimal.NewFromInt(1)):
		r = 5
	default:
		r = 2
	}
	max := a
	if b > max {
		max = b
	}
	if r > max {
		max = r
	}
	return max
}

// Aggregate collapses consecutive equal-price levels on both sides into a
// single level per price, summing sizes and concatenating debug trails,
// keeping the first level's origin at that price.
func (b *Book) Aggregate() {
	b.Bids = aggregateSide(b.Bids)
	b.Asks = aggregateSide(b.Asks)
	b.decimalsSet = false
}

func aggregateSide(levels []Level) []Level {
	if len(levels) == 0 {
		return levels
	}
	out := make([]Level, 0, len(levels))
	cur := levels[0]
	for _, l := range levels[1:] {
		if l.Price.Equal(cur.Price) {
			cur.Size = cur.Size.Add(l.Size)
			cur.DebugTrail = append(cur.DebugTrail, l.DebugTrail...)
			continue
		}
		out = append(out, cur)
		cur = l
	}
	return append(out, cur)
}

// HasLiquidity reports whether both sides carry at least one level.
func (b *Book) HasLiquidity() bool {
	return len(b.Bids) > 0 && len(b.Asks) > 0
}

// SideLiquidityToLevel sums size on side up to (and including) index n-1.
func (b *Book) SideLiquidityToLevel(side Side, n int) decimal.Decimal {
	levels := b.Levels(side)
	if n > len(levels) {
		n = len(levels)
	}
	total := decimal.Zero
	for _, l := range levels[:n] {
		total = total.Add(l.Size)
	}
	return total
}
