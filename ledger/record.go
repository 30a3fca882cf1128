// Package ledger is the append-only trade log: one row per position event,
// with running capital carried on closing rows.
package ledger

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a ledger row.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// ParseStatus maps the persisted text back to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClosed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// TradeRecord is one ledger row. A CLOSED row repeats the identity fields
// of the OPEN row it terminates and adds the exit fields.
type TradeRecord struct {
	Timestamp  time.Time
	EntryPrice float64
	ShortCall  float64
	LongCall   float64
	ShortPut   float64
	LongPut    float64
	Credit     float64

	// Unset (nil) on OPEN rows.
	ExitPrice    *float64
	PnL          *float64
	CapitalAfter *float64

	Status Status
}

// Columns is the fixed header order of the tabular ledger format.
var Columns = []string{
	"timestamp",
	"entry_price",
	"short_call",
	"long_call",
	"short_put",
	"long_put",
	"credit",
	"exit_price",
	"pnl",
	"capital_after",
	"status",
}

// Float returns a pointer to v, for filling the nullable fields.
func Float(v float64) *float64 {
	return &v
}

// Clone returns a copy that shares no pointers with r.
func (r TradeRecord) Clone() TradeRecord {
	out := r
	out.ExitPrice = clonePtr(r.ExitPrice)
	out.PnL = clonePtr(r.PnL)
	out.CapitalAfter = clonePtr(r.CapitalAfter)
	return out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IsOpen reports whether r is an OPEN row.
func (r TradeRecord) IsOpen() bool { return r.Status == StatusOpen }
