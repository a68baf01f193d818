// Package domain implements the Order-Book Entity (component B): an
// immutable-ish ladder of bid/ask levels with derived metrics, grounded on
// orderbook.py's OrderBookItem.
package domain

import "github.com/shopspring/decimal"

// Side tags which side of a book a level sits on. Replaces the original's
// string-keyed getattr(self, "bids"/"asks") selection (DESIGN NOTES item 1)
// with a two-valued enum and explicit indexing.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// TakerSide records which direction a debug-trail entry represents:
// consuming resting asks is a buy, consuming resting bids is a sell. This
// is a different axis from Side (which ladder a level lives in) and is
// kept as its own type to avoid conflating the two.
type TakerSide int

const (
	TakerBuy TakerSide = iota
	TakerSell
)

func (t TakerSide) String() string {
	if t == TakerBuy {
		return "buy"
	}
	return "sell"
}

// SideForTaker maps a book Side to the TakerSide produced when that side is
// the one being consumed (asks consumed -> buy, bids consumed -> sell).
func SideForTaker(s Side) TakerSide {
	if s == Ask {
		return TakerBuy
	}
	return TakerSell
}

// DebugLevel is a provenance record attached to a synthesized or
// fee-adjusted level.
type DebugLevel struct {
	Price     decimal.Decimal
	Size      decimal.Decimal
	Venue     string
	FeeRate   decimal.Decimal
	Pair      string
	TakerSide TakerSide
}

// Level is one price/size rung of a book. Size must be strictly positive;
// the venue normalizers drop zero-size levels and traversal skips them,
// while New does not filter them.
type Level struct {
	Price      decimal.Decimal
	Size       decimal.Decimal
	Origin     string
	DebugTrail []DebugLevel
}

// WithDebug returns a copy of l with d appended to its debug trail.
func (l Level) WithDebug(d DebugLevel) Level {
	trail := make([]DebugLevel, len(l.DebugTrail), len(l.DebugTrail)+1)
	copy(trail, l.DebugTrail)
	l.DebugTrail = append(trail, d)
	return l
}

// IsZeroSize reports whether the level carries no size, which inputs must
// never contain and traversal skips defensively.
func (l Level) IsZeroSize() bool {
	return l.Size.IsZero() || l.Size.IsNegative()
}

func cloneLevels(levels []Level) []Level {
	out := make([]Level, len(levels))
	for i, l := range levels {
		trail := make([]DebugLevel, len(l.DebugTrail))
		copy(trail, l.DebugTrail)
		l.DebugTrail = trail
		out[i] = l
	}
	return out
}
