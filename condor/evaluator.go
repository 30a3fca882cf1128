package condor

import (
	"fmt"
	"time"

	"github.com/rustyeddy/condor/ledger"
)

// Breach says which side of the condor, if any, spot has moved through.
type Breach int

const (
	NoBreach Breach = iota
	CallBreach
	PutBreach
)

func (b Breach) String() string {
	switch b {
	case NoBreach:
		return "none"
	case CallBreach:
		return "call"
	case PutBreach:
		return "put"
	default:
		return fmt.Sprintf("Breach(%d)", int(b))
	}
}

// Classify places spot relative to the short strikes. Both comparisons
// are strict, so spot sitting exactly on a short strike is NoBreach. The
// call side is checked first; with well-ordered strikes the two cases
// cannot overlap.
func Classify(spot float64, rec ledger.TradeRecord) Breach {
	switch {
	case spot > rec.ShortCall:
		return CallBreach
	case spot < rec.ShortPut:
		return PutBreach
	default:
		return NoBreach
	}
}

// MaxLoss is the defined-risk loss of the spread net of half the credit.
func MaxLoss(rec ledger.TradeRecord, p Params) float64 {
	return p.WingWidthPct*rec.EntryPrice*p.DeployFraction - rec.Credit/2
}

// PnL settles rec at spot. Inside the short strikes the whole credit is
// kept. Past a long wing the full max loss is taken. Between a short strike
// and its wing the loss is interpolated linearly.
func PnL(spot float64, rec ledger.TradeRecord, p Params) (float64, Breach) {
	maxLoss := MaxLoss(rec, p)

	b := Classify(spot, rec)
	switch b {
	case CallBreach:
		if spot >= rec.LongCall {
			return -maxLoss, b
		}
		pct := (spot - rec.ShortCall) / (rec.LongCall - rec.ShortCall)
		return rec.Credit - pct*maxLoss, b
	case PutBreach:
		if spot <= rec.LongPut {
			return -maxLoss, b
		}
		pct := (rec.ShortPut - spot) / (rec.ShortPut - rec.LongPut)
		return rec.Credit - pct*maxLoss, b
	default:
		return rec.Credit, b
	}
}

// Evaluate closes open at spot. The returned row copies the identity
// fields of open and fills exit_price, pnl and capital_after; the second
// return value is the capital after the trade.
func Evaluate(open ledger.TradeRecord, spot, capital float64, p Params, now time.Time) (ledger.TradeRecord, float64, error) {
	if !open.IsOpen() {
		return ledger.TradeRecord{}, 0, fmt.Errorf("%w: status %s", ErrNotOpen, open.Status)
	}
	if !positive(spot) {
		return ledger.TradeRecord{}, 0, fmt.Errorf("%w: %v", ErrNoSpot, spot)
	}

	pnl, _ := PnL(spot, open, p)
	newCapital := capital + pnl

	closed := open.Clone()
	closed.Timestamp = now
	closed.ExitPrice = ledger.Float(spot)
	closed.PnL = ledger.Float(pnl)
	closed.CapitalAfter = ledger.Float(newCapital)
	closed.Status = ledger.StatusClosed
	return closed, newCapital, nil
}
