// Package domain holds the combo-book algebra's pure types: the book
// collection shape and the four-case bridge selector (component G, step 2).
package domain

import (
	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
	venue "github.com/chrisliatas/combobooks/business/venue/domain"
)

// Books is a venue -> pair -> Book collection, the "obs" mapping of the
// spec's data model. Intra-join inserts a "<venue>_jnd" entry; cross-merge
// inserts an entry keyed by the hyphenated venue-set label.
type Books map[string]map[string]*ob.Book

// Get looks up a (venue, pair) book.
func (b Books) Get(venueID, pair string) (*ob.Book, bool) {
	byPair, ok := b[venueID]
	if !ok {
		return nil, false
	}
	book, ok := byPair[pair]
	return book, ok
}

// Set stores a book under (book.Venue, book.Pair).
func (b Books) Set(book *ob.Book) {
	byPair, ok := b[book.Venue]
	if !ok {
		byPair = make(map[string]*ob.Book)
		b[book.Venue] = byPair
	}
	byPair[book.Pair] = book
}

// Pairs lists the known pairs for a venue.
func (b Books) Pairs(venueID string) []string {
	byPair, ok := b[venueID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(byPair))
	for p := range byPair {
		out = append(out, p)
	}
	return out
}

// Venues lists every venue label currently present.
func (b Books) Venues() []string {
	out := make([]string, 0, len(b))
	for v := range b {
		out = append(out, v)
	}
	return out
}

// Case is the geometric relationship between two component pairs sharing a
// bridge currency (spec §4.G step 2).
type Case int

const (
	CaseNone Case = iota
	CaseCommonQuote
	CaseCommonBase
	CaseQuoteBase
	CaseBaseQuote
)

func (c Case) String() string {
	switch c {
	case CaseCommonQuote:
		return "common_quote"
	case CaseCommonBase:
		return "common_base"
	case CaseQuoteBase:
		return "quote_base"
	case CaseBaseQuote:
		return "base_quote"
	default:
		return "none"
	}
}

// CaseSelect picks the bridge case for p1 = b1-q1, p2 = b2-q2, per the
// spec's case table. Order of the checks matters only when a pair could
// satisfy two conditions at once (e.g. b1==q1==b2==q2), which a sane
// catalog never produces; checked in the spec's listed order.
func CaseSelect(p1, p2 venue.Pair) Case {
	switch {
	case p1.Quote == p2.Quote:
		return CaseCommonQuote
	case p1.Base == p2.Base:
		return CaseCommonBase
	case p1.Quote == p2.Base:
		return CaseQuoteBase
	case p1.Base == p2.Quote:
		return CaseBaseQuote
	default:
		return CaseNone
	}
}
