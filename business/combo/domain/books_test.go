package domain

import (
	"testing"
	"time"

	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
	venue "github.com/chrisliatas/combobooks/business/venue/domain"
)

func TestBooksSetAndGet(t *testing.T) {
	books := Books{}
	b := ob.New("binance", "BTC-USDT", time.Now(), nil, nil)
	books.Set(b)

	got, ok := books.Get("binance", "BTC-USDT")
	if !ok || got != b {
		t.Fatalf("Get(binance, BTC-USDT) = (%v, %v), want the book just set", got, ok)
	}
	if _, ok := books.Get("binance", "ETH-USDT"); ok {
		t.Error("Get should report not-found for an unset pair")
	}
}

func TestBooksPairsAndVenues(t *testing.T) {
	books := Books{}
	books.Set(ob.New("binance", "BTC-USDT", time.Now(), nil, nil))
	books.Set(ob.New("binance", "ETH-USDT", time.Now(), nil, nil))
	books.Set(ob.New("okx", "BTC-USDT", time.Now(), nil, nil))

	pairs := books.Pairs("binance")
	if len(pairs) != 2 {
		t.Errorf("Pairs(binance) = %v, want 2 entries", pairs)
	}
	venues := books.Venues()
	if len(venues) != 2 {
		t.Errorf("Venues() = %v, want 2 entries", venues)
	}
}

func TestCaseSelect(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 venue.Pair
		want   Case
	}{
		{"common_quote", venue.Pair{Base: "ETH", Quote: "USDT"}, venue.Pair{Base: "BTC", Quote: "USDT"}, CaseCommonQuote},
		{"common_base", venue.Pair{Base: "ETH", Quote: "USDT"}, venue.Pair{Base: "ETH", Quote: "DAI"}, CaseCommonBase},
		{"quote_base", venue.Pair{Base: "ETH", Quote: "BTC"}, venue.Pair{Base: "BTC", Quote: "USDT"}, CaseQuoteBase},
		{"base_quote", venue.Pair{Base: "BTC", Quote: "ETH"}, venue.Pair{Base: "USDT", Quote: "BTC"}, CaseBaseQuote},
		{"no_bridge", venue.Pair{Base: "ETH", Quote: "USDT"}, venue.Pair{Base: "SOL", Quote: "DAI"}, CaseNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CaseSelect(tt.p1, tt.p2)
			if got != tt.want {
				t.Errorf("CaseSelect(%v, %v) = %s, want %s", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}
