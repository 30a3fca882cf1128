// Package pricing fetches the latest traded price of an index.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrUnavailable means no usable price could be obtained. It is never
// fatal: the caller skips this invocation and tries again next cycle.
var ErrUnavailable = errors.New("price unavailable")

// Quote is one price sample.
type Quote struct {
	Symbol string
	Price  float64
	Time   time.Time
}

// Source returns the most recent price for a symbol. Absence of data,
// including transport failures, is reported as an error wrapping
// ErrUnavailable.
type Source interface {
	Latest(ctx context.Context, symbol string) (Quote, error)
}

// Fixed always answers with the same price. A non-positive price means
// no data.
type Fixed struct {
	Price float64
	Now   func() time.Time
}

func (f Fixed) Latest(ctx context.Context, symbol string) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !usable(f.Price) {
		return Quote{}, fmt.Errorf("%w: no fixed price for %s", ErrUnavailable, symbol)
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return Quote{Symbol: symbol, Price: f.Price, Time: now()}, nil
}

func usable(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}
