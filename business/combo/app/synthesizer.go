package app

import (
	"github.com/shopspring/decimal"

	obapp "github.com/chrisliatas/combobooks/business/orderbook/app"
	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
	"github.com/chrisliatas/combobooks/business/combo/domain"
	venue "github.com/chrisliatas/combobooks/business/venue/domain"
)

// ComboFeeFunc sums the taker fee across the two hops a synthesized level
// passed through: the source p1 level's venue/pair, and the p2 sub-level's
// venue/pair.
type ComboFeeFunc func(venue1, pair1, venue2, pair2 string) decimal.Decimal

type sideSpec struct {
	sourceSide ob.Side // which side of p1 this output side is built from
	bridgeSide ob.Side // which side of p2 is traversed
}

// caseLayout resolves, for a Case, which p1/p2 sides feed the output ask
// and bid sides, and whether the bridge traversal is quote- or
// base-denominated (spec §4.G step 2/3).
type caseLayout struct {
	quoteMode bool
	ask       sideSpec
	bid       sideSpec
}

func layoutFor(c domain.Case) (caseLayout, bool) {
	switch c {
	case domain.CaseCommonQuote:
		return caseLayout{
			quoteMode: true,
			ask:       sideSpec{sourceSide: ob.Ask, bridgeSide: ob.Bid},
			bid:       sideSpec{sourceSide: ob.Bid, bridgeSide: ob.Ask},
		}, true
	case domain.CaseCommonBase:
		return caseLayout{
			quoteMode: false,
			ask:       sideSpec{sourceSide: ob.Bid, bridgeSide: ob.Ask},
			bid:       sideSpec{sourceSide: ob.Ask, bridgeSide: ob.Bid},
		}, true
	case domain.CaseQuoteBase:
		return caseLayout{
			quoteMode: true,
			ask:       sideSpec{sourceSide: ob.Ask, bridgeSide: ob.Ask},
			bid:       sideSpec{sourceSide: ob.Bid, bridgeSide: ob.Bid},
		}, true
	case domain.CaseBaseQuote:
		return caseLayout{
			quoteMode: false,
			ask:       sideSpec{sourceSide: ob.Bid, bridgeSide: ob.Bid},
			bid:       sideSpec{sourceSide: ob.Ask, bridgeSide: ob.Ask},
		}, true
	default:
		return caseLayout{}, false
	}
}

// Synthesize builds the synthetic book for (p1, p2) per the four-case
// engine: every level of p1's relevant side is traversed through p2's
// WAP engine on the bridge side, converted back to a BASE-QUOTE price/size
// for `want`, and fee-adjusted across both hops.
//
// Zero-size levels are skipped. If p2's depth is exhausted before a level's
// notional is consumed, the partial output is kept — this is
// CodeDepthExhausted territory, not an error.
func Synthesize(want venue.Pair, p1, p2 *ob.Book, comboFee ComboFeeFunc, debug bool, aggregate bool) (*ob.Book, domain.Case) {
	p1Pair, ok1 := venue.ParsePair(p1.Pair)
	p2Pair, ok2 := venue.ParsePair(p2.Pair)
	if !ok1 || !ok2 {
		return nil, domain.CaseNone
	}
	c := domain.CaseSelect(p1Pair, p2Pair)
	layout, ok := layoutFor(c)
	if !ok {
		return nil, domain.CaseNone
	}

	p1Dec, _ := p1.Decimals()
	p2Dec, _ := p2.Decimals()

	var bridgeCur obapp.Cursor
	asks := synthesizeSide(p1.Levels(layout.ask.sourceSide), p2.Levels(layout.ask.bridgeSide), &bridgeCur, layout.quoteMode, p1.Venue, p1.Pair, p2.Venue, p2.Pair, comboFee, p1Dec, p2Dec, debug)
	bridgeCur.Reset() // reset between ask- and bid-construction passes over p2
	bids := synthesizeSide(p1.Levels(layout.bid.sourceSide), p2.Levels(layout.bid.bridgeSide), &bridgeCur, layout.quoteMode, p1.Venue, p1.Pair, p2.Venue, p2.Pair, comboFee, p1Dec, p2Dec, debug)

	result := ob.New("merged", want.String(), p1.Ts, bids, asks)
	if aggregate {
		result.Aggregate()
	}
	return result, c
}

func synthesizeSide(sourceLevels, bridgeLevels []ob.Level, cur *obapp.Cursor, quoteMode bool, v1, pair1, v2, pair2 string, comboFee ComboFeeFunc, p1Dec, p2Dec int32, debug bool) []ob.Level {
	var out []ob.Level
	for _, l := range sourceLevels {
		if l.IsZeroSize() {
			continue
		}
		notional := l.Price.Mul(l.Size)
		var consumed []obapp.Consumed
		if quoteMode {
			consumed = obapp.WapQuoteLevels(bridgeLevels, cur, notional)
		} else {
			consumed = obapp.WapBaseLevels(bridgeLevels, cur, notional)
		}
		for _, m := range consumed {
			if m.Price.IsZero() {
				continue
			}
			var price, size decimal.Decimal
			if quoteMode {
				price = l.Price.Div(m.Price)
				size = m.Size.Div(price)
			} else {
				price = l.Price.Mul(m.Price)
				size = m.Size
			}
			digits := ob.RoundDigits(p1Dec, p2Dec, price)
			price = price.Round(digits)
			size = size.Round(digits)

			fee := comboFee(v1, pair1, v2, pair2)
			priceFinal := price.Mul(decimal.NewFromInt(1).Add(fee)).Round(digits)

			nl := ob.Level{Price: priceFinal, Size: size, Origin: "merged"}
			if debug {
				nl = nl.WithDebug(ob.DebugLevel{
					Price:   price,
					Size:    size,
					Venue:   v1 + "+" + v2,
					FeeRate: fee,
					Pair:    pair1 + "/" + pair2,
				})
			}
			out = append(out, nl)
		}
	}
	return out
}
