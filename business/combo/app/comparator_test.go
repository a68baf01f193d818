package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
)

func TestCompareComboBooksCoversEachAmountAndSide(t *testing.T) {
	ts := time.Now()
	direct := ob.New("binance", "BTC-USDT", ts,
		[]ob.Level{{Price: decimal.NewFromInt(99), Size: decimal.NewFromInt(10)}},
		[]ob.Level{{Price: decimal.NewFromInt(101), Size: decimal.NewFromInt(10)}},
	)
	dispatch := func() []*ob.Book { return []*ob.Book{direct} }

	amounts := []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(5)}
	got := CompareComboBooks("BTC-USDT", amounts, dispatch)

	if len(got) != 4 { // 1 book x 2 amounts x 2 sides
		t.Fatalf("CompareComboBooks returned %d rows, want 4", len(got))
	}
	for _, row := range got {
		if row.Pair != "BTC-USDT" || row.Venue != "binance" {
			t.Errorf("row = %+v, want Pair=BTC-USDT Venue=binance", row)
		}
		if row.Synthesized {
			t.Error("a book from a non-merged venue should not be flagged Synthesized")
		}
	}
}

func TestCompareComboBooksFlagsSynthesizedVenue(t *testing.T) {
	ts := time.Now()
	synth := ob.New("merged", "ETH-DAI", ts,
		[]ob.Level{{Price: decimal.NewFromInt(2990), Size: decimal.NewFromInt(1)}},
		[]ob.Level{{Price: decimal.NewFromInt(3000), Size: decimal.NewFromInt(1)}},
	)
	dispatch := func() []*ob.Book { return []*ob.Book{synth} }

	got := CompareComboBooks("ETH-DAI", []decimal.Decimal{decimal.NewFromInt(1)}, dispatch)
	if len(got) != 2 {
		t.Fatalf("CompareComboBooks returned %d rows, want 2", len(got))
	}
	for _, row := range got {
		if !row.Synthesized {
			t.Error("a book from the merged venue should be flagged Synthesized")
		}
	}
}

func TestCompareComboBooksEmptyDispatchReturnsNil(t *testing.T) {
	got := CompareComboBooks("BTC-USDT", []decimal.Decimal{decimal.NewFromInt(1)}, func() []*ob.Book { return nil })
	if len(got) != 0 {
		t.Errorf("CompareComboBooks with no dispatched books = %v, want empty", got)
	}
}
