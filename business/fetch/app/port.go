// Package app defines the Snapshot Fetcher port: the spec treats exchange
// depth-endpoint fetching as an external collaborator, specified only at
// its interface (binance-like/okx-like/coinbase-like JSON shapes in, a
// normalized Book out). business/fetch/infra supplies one concrete
// implementation; business/combo only ever depends on this interface.
package app

import (
	"context"

	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
)

// Source names one depth snapshot to fetch: a venue, its canonical pair,
// the venue-native symbol for that pair, and the URL to fetch it from.
type Source struct {
	Venue        string
	Pair         string
	NativeSymbol string
	URL          string
}

// Normalizer turns one venue's raw JSON depth payload into a Book. Each
// venue shape (binance-like, okx-like, coinbase-like) gets its own
// Normalizer; auction/halt payloads are reported via apperror's
// CodeMalformedPayload rather than returning a half-built Book.
type Normalizer func(raw []byte, venue, pair string, depth int) (*ob.Book, error)

// Fetcher retrieves and normalizes one venue's order-book snapshot.
type Fetcher interface {
	Fetch(ctx context.Context, src Source, depth int) (*ob.Book, error)
}
