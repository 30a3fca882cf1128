// Package condor builds iron condor positions from percentage offsets and
// settles them against a later spot price.
package condor

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/condor/ledger"
)

var (
	// ErrNoSpot means the spot price is missing or not a positive number.
	ErrNoSpot = errors.New("no usable spot price")

	// ErrNotOpen means Evaluate was handed a row that is not OPEN.
	ErrNotOpen = errors.New("record is not open")
)

// Params are the strategy tunables, all expressed as fractions.
type Params struct {
	ShortStrikePct float64 // short strikes sit this far from spot
	WingWidthPct   float64 // long wing distance, as a fraction of spot
	CreditPct      float64 // premium collected per unit of notional
	DeployFraction float64 // share of capital put to work
}

// Notional is the capital deployed into one position.
func (p Params) Notional(capital float64) float64 {
	return capital * p.DeployFraction
}

// Build derives a new OPEN position at spot.
//
// The wing width is a fraction of spot. Dividing it by (1 ± ShortStrikePct)
// re-expresses it relative to each short strike, so both wings sit the same
// absolute distance from their short strike.
func Build(spot, capital float64, p Params, now time.Time) (ledger.TradeRecord, error) {
	if !positive(spot) {
		return ledger.TradeRecord{}, fmt.Errorf("%w: %v", ErrNoSpot, spot)
	}

	shortCall := spot * (1 + p.ShortStrikePct)
	shortPut := spot * (1 - p.ShortStrikePct)

	return ledger.TradeRecord{
		Timestamp:  now,
		EntryPrice: spot,
		ShortCall:  shortCall,
		LongCall:   shortCall * (1 + p.WingWidthPct/(1+p.ShortStrikePct)),
		ShortPut:   shortPut,
		LongPut:    shortPut * (1 - p.WingWidthPct/(1-p.ShortStrikePct)),
		Credit:     p.CreditPct * p.Notional(capital),
		Status:     ledger.StatusOpen,
	}, nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
