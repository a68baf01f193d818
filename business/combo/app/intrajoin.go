// Package app implements the combo-book algebra's operations: intra-venue
// join (E), cross-venue merge (F), pair synthesis (G) and the combo
// dispatcher (H), grounded on comboBooks.py's nBooksJoin/join_exch_obs,
// xExchMerge, CombineCaseLogic/combo_by_conversion and combo_book.
package app

import (
	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
	"github.com/chrisliatas/combobooks/business/combo/domain"
	venue "github.com/chrisliatas/combobooks/business/venue/domain"
)

// JoinMode selects how IntraVenueJoin writes its result back into the
// venue's book set.
type JoinMode int

const (
	// JoinReplace overwrites p1 in place with the joined levels and drops p2.
	JoinReplace JoinMode = iota
	// JoinKeepBoth appends the joined book alongside the two originals.
	JoinKeepBoth
)

// JoinSpec names the two component pairs to union under joinedLabel.
type JoinSpec struct {
	Label string
	Pair1 string
	Pair2 string
}

// IntraVenueJoin builds "<venue>_jnd" from books, unioning each JoinSpec's
// two pairs' levels into one book labeled joinedLabel. It returns the
// joined venue label; books is mutated to add the new venue entry.
func IntraVenueJoin(books domain.Books, venueID string, specs []JoinSpec, mode JoinMode, aggregate bool) string {
	joinedVenue := venue.JoinedVenue(venueID)
	joinedBooks := make(map[string]*ob.Book)

	source := books[venueID]
	// Seed with deep copies of every book whose pair appears in any spec,
	// so JoinKeepBoth can carry the untouched originals forward too.
	referenced := map[string]struct{}{}
	for _, s := range specs {
		referenced[s.Pair1] = struct{}{}
		referenced[s.Pair2] = struct{}{}
	}
	for pair, b := range source {
		if _, ok := referenced[pair]; ok {
			joinedBooks[pair] = b.Clone()
		}
	}

	for _, s := range specs {
		b1, ok1 := source[s.Pair1]
		b2, ok2 := source[s.Pair2]
		if !ok1 || !ok2 {
			continue
		}
		bids := append(append([]ob.Level{}, b1.Bids...), b2.Bids...)
		asks := append(append([]ob.Level{}, b1.Asks...), b2.Asks...)
		ts := b1.Ts
		if b2.Ts.After(ts) {
			ts = b2.Ts
		}
		joined := ob.New(joinedVenue, s.Label, ts, bids, asks)
		if aggregate {
			joined.Aggregate()
		}

		switch mode {
		case JoinReplace:
			delete(joinedBooks, s.Pair1)
			delete(joinedBooks, s.Pair2)
			joinedBooks[s.Label] = joined
		case JoinKeepBoth:
			joinedBooks[s.Label] = joined
		}
	}

	books[joinedVenue] = joinedBooks
	return joinedVenue
}

// MultipleIntraVenueJoin runs IntraVenueJoin for every venue in venues.
func MultipleIntraVenueJoin(books domain.Books, venues []string, specs []JoinSpec, mode JoinMode, aggregate bool) []string {
	out := make([]string, 0, len(venues))
	for _, v := range venues {
		out = append(out, IntraVenueJoin(books, v, specs, mode, aggregate))
	}
	return out
}
