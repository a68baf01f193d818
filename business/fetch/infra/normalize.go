// Package infra supplies a concrete Snapshot Fetcher (business/fetch/app's
// port): one Normalizer per venue JSON shape, grounded on booksGetter.py's
// parse_binance_obs/parse_okx_obs/parse_coinbase_obs, plus an HTTP-backed
// Fetcher wiring internal/httpclient, internal/ratelimit and gobreaker.
package infra

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chrisliatas/combobooks/internal/apperror"

	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
)

type binancePayload struct {
	Bids [][2]string `json:"bids"`
	Asks [][2]string `json:"asks"`
}

// NormalizeBinance parses the `{bids, asks}` shape. Binance's REST depth
// endpoint carries no timestamp, so one is synthesized as now-0.5s, per
// parse_binance_obs's "assume 500ms delay" comment.
func NormalizeBinance(raw []byte, venue, pair string, depth int) (*ob.Book, error) {
	var payload binancePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperror.New(apperror.CodeMalformedPayload, apperror.WithCause(err))
	}
	ts := time.Now().UTC().Add(-500 * time.Millisecond)
	bids, err := levelsFromPairs(payload.Bids, venue, depth)
	if err != nil {
		return nil, err
	}
	asks, err := levelsFromPairs(payload.Asks, venue, depth)
	if err != nil {
		return nil, err
	}
	return ob.New(venue, pair, ts, bids, asks), nil
}

type okxPayload struct {
	Data []struct {
		Ts   string      `json:"ts"`
		Bids [][]string  `json:"bids"`
		Asks [][]string  `json:"asks"`
	} `json:"data"`
}

// NormalizeOKX parses the `{data: [{ts, bids, asks}]}` envelope.
func NormalizeOKX(raw []byte, venue, pair string, depth int) (*ob.Book, error) {
	var payload okxPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperror.New(apperror.CodeMalformedPayload, apperror.WithCause(err))
	}
	if len(payload.Data) == 0 {
		return nil, apperror.New(apperror.CodeMalformedPayload, apperror.WithContext("empty okx data"))
	}
	entry := payload.Data[0]
	tsMs, err := decimal.NewFromString(entry.Ts)
	if err != nil {
		return nil, apperror.New(apperror.CodeMalformedPayload, apperror.WithCause(err))
	}
	ts := time.UnixMilli(tsMs.IntPart()).UTC()
	bids, err := levelsFromRows(entry.Bids, venue, depth)
	if err != nil {
		return nil, err
	}
	asks, err := levelsFromRows(entry.Asks, venue, depth)
	if err != nil {
		return nil, err
	}
	return ob.New(venue, pair, ts, bids, asks), nil
}

type coinbasePayload struct {
	Time        string      `json:"time"`
	Bids        [][]string  `json:"bids"`
	Asks        [][]string  `json:"asks"`
	AuctionMode bool        `json:"auction_mode"`
	Message     string      `json:"message,omitempty"`
}

// NormalizeCoinbase parses Coinbase's full-book shape, skipping halted
// products (auction_mode) or error envelopes (message present), and
// truncating client-side to depth since Coinbase returns the entire book.
func NormalizeCoinbase(raw []byte, venue, pair string, depth int) (*ob.Book, error) {
	var payload coinbasePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperror.New(apperror.CodeMalformedPayload, apperror.WithCause(err))
	}
	if payload.Message != "" || payload.AuctionMode {
		return nil, apperror.New(apperror.CodeMalformedPayload, apperror.WithContext("coinbase auction_mode or message present"))
	}
	ts, err := time.Parse(time.RFC3339, payload.Time)
	if err != nil {
		return nil, apperror.New(apperror.CodeMalformedPayload, apperror.WithCause(err))
	}
	bids, err := levelsFromRows(truncate(payload.Bids, depth), venue, depth)
	if err != nil {
		return nil, err
	}
	asks, err := levelsFromRows(truncate(payload.Asks, depth), venue, depth)
	if err != nil {
		return nil, err
	}
	return ob.New(venue, pair, ts.UTC(), bids, asks), nil
}

func truncate(rows [][]string, depth int) [][]string {
	if depth > 0 && len(rows) > depth {
		return rows[:depth]
	}
	return rows
}

func levelsFromPairs(rows [][2]string, venue string, depth int) ([]ob.Level, error) {
	out := make([]ob.Level, 0, len(rows))
	for i, r := range rows {
		if depth > 0 && i >= depth {
			break
		}
		price, err := decimal.NewFromString(r[0])
		if err != nil {
			continue
		}
		size, err := decimal.NewFromString(r[1])
		if err != nil {
			continue
		}
		if size.IsZero() || size.IsNegative() {
			continue
		}
		out = append(out, ob.Level{Price: price, Size: size, Origin: venue})
	}
	return out, nil
}

func levelsFromRows(rows [][]string, venue string, depth int) ([]ob.Level, error) {
	out := make([]ob.Level, 0, len(rows))
	for i, r := range rows {
		if depth > 0 && i >= depth {
			break
		}
		if len(r) < 2 {
			continue
		}
		price, err := decimal.NewFromString(r[0])
		if err != nil {
			continue
		}
		size, err := decimal.NewFromString(r[1])
		if err != nil {
			continue
		}
		if size.IsZero() || size.IsNegative() {
			continue
		}
		out = append(out, ob.Level{Price: price, Size: size, Origin: venue})
	}
	return out, nil
}

// Normalizers maps a venue name to its Normalizer, for use by Fetcher.
var Normalizers = map[string]func([]byte, string, string, int) (*ob.Book, error){
	"binance":  NormalizeBinance,
	"okx":      NormalizeOKX,
	"coinbase": NormalizeCoinbase,
}
