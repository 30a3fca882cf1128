package ledger

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnreadable means the persisted ledger cannot be interpreted. It is
// fatal for the invocation; there is no partial recovery.
var ErrUnreadable = errors.New("ledger unreadable")

// Store is an ordered, append-only sequence of trade records.
type Store interface {
	// Records returns every row in append order. A medium that was never
	// written returns no rows and no error.
	Records(ctx context.Context) ([]TradeRecord, error)

	// Append durably adds one row to the end of the ledger, creating the
	// medium on first use.
	Append(ctx context.Context, rec TradeRecord) error

	Close() error
}

// State is what an invocation starts from.
type State struct {
	Records []TradeRecord
	Capital float64

	// Open is the position still awaiting a closing row, or nil.
	Open *TradeRecord
}

// Load reads the store and derives the current capital and open position.
//
// Capital is the capital_after of the latest CLOSED row, or initialCapital
// when nothing has closed yet. Because closing appends a new row instead of
// editing the OPEN one, an OPEN row only counts as open while no CLOSED row
// follows it.
func Load(ctx context.Context, s Store, initialCapital float64) (State, error) {
	recs, err := s.Records(ctx)
	if err != nil {
		return State{}, err
	}

	st := State{Records: recs, Capital: initialCapital}
	for i, r := range recs {
		switch r.Status {
		case StatusClosed:
			if r.CapitalAfter == nil {
				return State{}, fmt.Errorf("%w: row %d is CLOSED without capital_after", ErrUnreadable, i+1)
			}
			st.Capital = *r.CapitalAfter
			st.Open = nil
		case StatusOpen:
			open := r.Clone()
			st.Open = &open
		default:
			return State{}, fmt.Errorf("%w: row %d has status %q", ErrUnreadable, i+1, r.Status)
		}
	}
	return st, nil
}
