// Package app holds the order-book operations that need a collaborator
// beyond the pure domain type: fee-adjusted views (component C) need a fee
// lookup, WAP traversal (component D) needs an explicit cursor scratchpad.
package app

import (
	"github.com/shopspring/decimal"

	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
)

// FeeLookup resolves the taker fee rate for a level's origin venue and a
// pair, optionally reversed for inverse lookups. It is satisfied by
// venue/app.Catalog.Fee with the bool return value dropped by the caller's
// wrapper when a default (zero, warn) is acceptable.
type FeeLookup func(venue, pair string, inverse bool) decimal.Decimal

// SideAfterFees folds taker fees into price for every level on side,
// leaving size untouched. Asks move up (sign +1), bids move down (sign
// -1). If extraFee is non-zero a DebugLevel capturing the pre-fee state is
// appended to each level's trail; otherwise the original trail is carried
// forward unchanged (no allocation of a new debug entry for a zero extra
// fee, matching the spec's "carried by reference" wording).
func SideAfterFees(levels []ob.Level, pair string, side ob.Side, lookup FeeLookup, extraFee decimal.Decimal, inverse bool, priceDecimals int32) []ob.Level {
	sign := decimal.NewFromInt(1)
	if side == ob.Bid {
		sign = decimal.NewFromInt(-1)
	}
	out := make([]ob.Level, len(levels))
	for i, l := range levels {
		feeRate := lookup(l.Origin, pair, inverse).Add(extraFee)
		factor := decimal.NewFromInt(1).Add(feeRate.Mul(sign))
		nl := ob.Level{
			Price:  l.Price.Mul(factor).Round(priceDecimals),
			Size:   l.Size,
			Origin: l.Origin,
		}
		if extraFee.IsZero() {
			nl.DebugTrail = l.DebugTrail
		} else {
			trail := make([]ob.DebugLevel, len(l.DebugTrail), len(l.DebugTrail)+1)
			copy(trail, l.DebugTrail)
			nl.DebugTrail = append(trail, ob.DebugLevel{
				Price:     l.Price,
				Size:      l.Size,
				Venue:     l.Origin,
				FeeRate:   feeRate,
				Pair:      pair,
				TakerSide: ob.SideForTaker(side),
			})
		}
		out[i] = nl
	}
	return out
}

// AsksAfterFees is SideAfterFees(book.Asks, ...) with side fixed to Ask.
func AsksAfterFees(book *ob.Book, lookup FeeLookup, extraFee decimal.Decimal, inverse bool) []ob.Level {
	priceDecimals, _ := book.Decimals()
	return SideAfterFees(book.Asks, book.Pair, ob.Ask, lookup, extraFee, inverse, priceDecimals)
}

// BidsAfterFees is SideAfterFees(book.Bids, ...) with side fixed to Bid.
func BidsAfterFees(book *ob.Book, lookup FeeLookup, extraFee decimal.Decimal, inverse bool) []ob.Level {
	priceDecimals, _ := book.Decimals()
	return SideAfterFees(book.Bids, book.Pair, ob.Bid, lookup, extraFee, inverse, priceDecimals)
}
