package infra

import (
	"testing"
)

func TestNormalizeBinanceParsesBidsAndAsks(t *testing.T) {
	raw := []byte(`{"bids":[["100.5","1.0"],["100.0","2.0"]],"asks":[["101.0","1.5"]]}`)
	b, err := NormalizeBinance(raw, "binance", "BTC-USDT", 50)
	if err != nil {
		t.Fatalf("NormalizeBinance failed: %v", err)
	}
	if len(b.Bids) != 2 || len(b.Asks) != 1 {
		t.Fatalf("parsed %d bids / %d asks, want 2/1", len(b.Bids), len(b.Asks))
	}
	if b.Bids[0].Origin != "binance" {
		t.Errorf("level Origin = %q, want binance", b.Bids[0].Origin)
	}
}

func TestNormalizeBinanceSkipsZeroAndNegativeSize(t *testing.T) {
	raw := []byte(`{"bids":[["100.0","0"],["99.0","-1"],["98.0","1"]],"asks":[]}`)
	b, err := NormalizeBinance(raw, "binance", "BTC-USDT", 50)
	if err != nil {
		t.Fatalf("NormalizeBinance failed: %v", err)
	}
	if len(b.Bids) != 1 {
		t.Fatalf("expected zero/negative-size levels dropped, got %d bids", len(b.Bids))
	}
}

func TestNormalizeBinanceRespectsDepth(t *testing.T) {
	raw := []byte(`{"bids":[["3","1"],["2","1"],["1","1"]],"asks":[]}`)
	b, err := NormalizeBinance(raw, "binance", "BTC-USDT", 2)
	if err != nil {
		t.Fatalf("NormalizeBinance failed: %v", err)
	}
	if len(b.Bids) != 2 {
		t.Fatalf("depth=2 should truncate to 2 bids, got %d", len(b.Bids))
	}
}

func TestNormalizeBinanceMalformedPayloadErrors(t *testing.T) {
	if _, err := NormalizeBinance([]byte(`not json`), "binance", "BTC-USDT", 50); err == nil {
		t.Error("NormalizeBinance with invalid JSON should return an error")
	}
}

func TestNormalizeOKXParsesFirstDataEntry(t *testing.T) {
	raw := []byte(`{"data":[{"ts":"1700000000000","bids":[["100","1"]],"asks":[["101","1"]]}]}`)
	b, err := NormalizeOKX(raw, "okx", "BTC-USDT", 50)
	if err != nil {
		t.Fatalf("NormalizeOKX failed: %v", err)
	}
	if len(b.Bids) != 1 || len(b.Asks) != 1 {
		t.Fatalf("parsed %d bids / %d asks, want 1/1", len(b.Bids), len(b.Asks))
	}
	if b.Ts.IsZero() {
		t.Error("NormalizeOKX should derive a timestamp from the ts field")
	}
}

func TestNormalizeOKXEmptyDataErrors(t *testing.T) {
	if _, err := NormalizeOKX([]byte(`{"data":[]}`), "okx", "BTC-USDT", 50); err == nil {
		t.Error("NormalizeOKX with an empty data array should return an error")
	}
}

func TestNormalizeCoinbaseSkipsAuctionMode(t *testing.T) {
	raw := []byte(`{"time":"2024-01-01T00:00:00Z","bids":[],"asks":[],"auction_mode":true}`)
	if _, err := NormalizeCoinbase(raw, "coinbase", "BTC-USDT", 50); err == nil {
		t.Error("NormalizeCoinbase should error on auction_mode products")
	}
}

func TestNormalizeCoinbaseSkipsErrorMessage(t *testing.T) {
	raw := []byte(`{"time":"2024-01-01T00:00:00Z","bids":[],"asks":[],"message":"NotFound"}`)
	if _, err := NormalizeCoinbase(raw, "coinbase", "BTC-USDT", 50); err == nil {
		t.Error("NormalizeCoinbase should error when a message envelope is present")
	}
}

func TestNormalizeCoinbaseTruncatesToDepth(t *testing.T) {
	raw := []byte(`{"time":"2024-01-01T00:00:00Z","bids":[["3","1"],["2","1"],["1","1"]],"asks":[]}`)
	b, err := NormalizeCoinbase(raw, "coinbase", "BTC-USDT", 2)
	if err != nil {
		t.Fatalf("NormalizeCoinbase failed: %v", err)
	}
	if len(b.Bids) != 2 {
		t.Fatalf("depth=2 should truncate the full book to 2 bids, got %d", len(b.Bids))
	}
}

func TestNormalizeCoinbaseParsesRFC3339Timestamp(t *testing.T) {
	raw := []byte(`{"time":"2024-06-15T12:30:00Z","bids":[["1","1"]],"asks":[]}`)
	b, err := NormalizeCoinbase(raw, "coinbase", "BTC-USDT", 50)
	if err != nil {
		t.Fatalf("NormalizeCoinbase failed: %v", err)
	}
	if b.Ts.Year() != 2024 || b.Ts.Month() != 6 || b.Ts.Day() != 15 {
		t.Errorf("parsed Ts = %v, want 2024-06-15", b.Ts)
	}
}

func TestNormalizersMapCoversEveryVenue(t *testing.T) {
	for _, v := range []string{"binance", "okx", "coinbase"} {
		if _, ok := Normalizers[v]; !ok {
			t.Errorf("Normalizers map missing entry for %q", v)
		}
	}
}
