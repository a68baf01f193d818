package domain

import "testing"

func TestParsePair(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBase string
		wantQuote string
		wantOk   bool
	}{
		{"well_formed", "BTC-USDT", "BTC", "USDT", true},
		{"no_separator", "BTCUSDT", "", "", false},
		{"empty_base", "-USDT", "", "", false},
		{"empty_quote", "BTC-", "", "", false},
		{"second_hyphen_kept_in_quote", "BTC-USD-T", "BTC", "USD-T", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ParsePair(tt.input)
			if ok != tt.wantOk {
				t.Fatalf("ParsePair(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if p.Base != tt.wantBase || p.Quote != tt.wantQuote {
				t.Errorf("ParsePair(%q) = %+v, want base=%s quote=%s", tt.input, p, tt.wantBase, tt.wantQuote)
			}
		})
	}
}

func TestPairStringRoundTrips(t *testing.T) {
	p, _ := ParsePair("ETH-USDC")
	if p.String() != "ETH-USDC" {
		t.Errorf("String() = %s, want ETH-USDC", p.String())
	}
}

func TestPairInverse(t *testing.T) {
	p := Pair{Base: "ETH", Quote: "USDC"}
	inv := p.Inverse()
	if inv.Base != "USDC" || inv.Quote != "ETH" {
		t.Errorf("Inverse() = %+v, want base=USDC quote=ETH", inv)
	}
}

func TestPairHasCurrencyIsWholeTokenOnly(t *testing.T) {
	p := Pair{Base: "WBTC", Quote: "USDT"}
	if p.HasCurrency("BTC") {
		t.Error("HasCurrency(\"BTC\") matched WBTC by substring — must be whole-token only")
	}
	if !p.HasCurrency("WBTC") {
		t.Error("HasCurrency(\"WBTC\") should match the exact base token")
	}
}

func TestPairOther(t *testing.T) {
	p := Pair{Base: "ETH", Quote: "USDC"}
	other, ok := p.Other("ETH")
	if !ok || other != "USDC" {
		t.Errorf("Other(ETH) = (%s, %v), want (USDC, true)", other, ok)
	}
	if _, ok := p.Other("BTC"); ok {
		t.Error("Other(BTC) should report not-found for an unrelated currency")
	}
}

func TestStripJoinedSuffix(t *testing.T) {
	tests := []struct {
		name   string
		venue  string
		wantID string
		wantOk bool
	}{
		{"canonical_jnd", "binance_jnd", "binance", true},
		{"legacy_joined_spelling", "binance_joined", "binance", true},
		{"plain_venue_unaffected", "binance", "binance", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StripJoinedSuffix(tt.venue)
			if got != tt.wantID || ok != tt.wantOk {
				t.Errorf("StripJoinedSuffix(%q) = (%s, %v), want (%s, %v)", tt.venue, got, ok, tt.wantID, tt.wantOk)
			}
		})
	}
}

func TestJoinedVenueRoundTripsWithStrip(t *testing.T) {
	joined := JoinedVenue("okx")
	if joined != "okx_jnd" {
		t.Fatalf("JoinedVenue(okx) = %s, want okx_jnd", joined)
	}
	id, ok := StripJoinedSuffix(joined)
	if !ok || id != "okx" {
		t.Errorf("StripJoinedSuffix(JoinedVenue(okx)) = (%s, %v), want (okx, true)", id, ok)
	}
}

func TestMergedVenue(t *testing.T) {
	got := MergedVenue([]string{"binance", "okx", "coinbase"})
	want := "binance-okx-coinbase"
	if got != want {
		t.Errorf("MergedVenue(...) = %s, want %s", got, want)
	}
}

func TestCurrencySetHas(t *testing.T) {
	set := NewCurrencySet("USDT", "USDC")
	if !set.Has("USDT") {
		t.Error("expected USDT to be a member")
	}
	if set.Has("DAI") {
		t.Error("expected DAI to not be a member")
	}
}

func TestValidQuotesIncludesExpectedBridgeCurrencies(t *testing.T) {
	for _, c := range []string{"USDT", "USDC", "DAI", "BTC", "ETH"} {
		if !ValidQuotes.Has(c) {
			t.Errorf("ValidQuotes missing expected bridge currency %s", c)
		}
	}
}
