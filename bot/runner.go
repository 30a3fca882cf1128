// Package bot runs one invocation of the condor logger: reload the ledger,
// then either open a position or close the one that is open.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/condor/condor"
	"github.com/rustyeddy/condor/config"
	"github.com/rustyeddy/condor/ledger"
	"github.com/rustyeddy/condor/pricing"
)

// Action is the transition an invocation performed.
type Action string

const (
	ActionOpened           Action = "opened"
	ActionClosed           Action = "closed"
	ActionPriceUnavailable Action = "price_unavailable" // no position, nothing built
	ActionContinued        Action = "continued"         // position open, no price, no row
)

// Outcome describes what Run did.
type Outcome struct {
	Action  Action
	Capital float64

	// Record is the row appended, or for ActionContinued the position that
	// remains open. Nil for ActionPriceUnavailable.
	Record *ledger.TradeRecord

	// Quote is the price sample used, zero when unavailable.
	Quote  pricing.Quote
	Breach condor.Breach

	// Reason carries the price error for the no-op actions.
	Reason error
}

// Runner performs exactly one state transition per Run.
type Runner struct {
	Ledger ledger.Store
	Prices pricing.Source
	Config *config.Config
	Logger zerolog.Logger

	// Clock stamps new rows; time.Now when nil.
	Clock func() time.Time
}

// Params maps the strategy section of the config onto condor.Params.
func Params(s config.StrategyConfig) condor.Params {
	return condor.Params{
		ShortStrikePct: s.ShortStrikePct,
		WingWidthPct:   s.WingWidthPct,
		CreditPct:      s.CreditPct,
		DeployFraction: s.DeployFraction,
	}
}

// Run loads the ledger and advances the state machine once:
//
//	no open position  -> fetch price, build, append OPEN
//	open position     -> fetch price, evaluate, append CLOSED
//
// An unavailable price is a no-op in both states and returns a nil error.
// Ledger failures are returned and end the invocation.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	if r.Ledger == nil {
		return Outcome{}, fmt.Errorf("bot: Ledger is required")
	}
	if r.Prices == nil {
		return Outcome{}, fmt.Errorf("bot: Prices is required")
	}
	if r.Config == nil {
		return Outcome{}, fmt.Errorf("bot: Config is required")
	}

	st, err := ledger.Load(ctx, r.Ledger, r.Config.Account.InitialCapital)
	if err != nil {
		return Outcome{}, fmt.Errorf("load ledger: %w", err)
	}
	r.Logger.Debug().
		Int("rows", len(st.Records)).
		Float64("capital", st.Capital).
		Bool("open", st.Open != nil).
		Msg("ledger loaded")

	if st.Open == nil {
		return r.open(ctx, st)
	}
	return r.close(ctx, st)
}

func (r *Runner) open(ctx context.Context, st ledger.State) (Outcome, error) {
	symbol := r.Config.Strategy.Symbol

	q, err := r.Prices.Latest(ctx, symbol)
	if err != nil {
		if !errors.Is(err, pricing.ErrUnavailable) {
			return Outcome{}, fmt.Errorf("fetch price: %w", err)
		}
		r.Logger.Warn().Err(err).Str("symbol", symbol).Msg("failed to fetch price, no position opened")
		return Outcome{Action: ActionPriceUnavailable, Capital: st.Capital, Reason: err}, nil
	}

	rec, err := condor.Build(q.Price, st.Capital, Params(r.Config.Strategy), r.now())
	if err != nil {
		r.Logger.Warn().Err(err).Float64("spot", q.Price).Msg("unusable price, no position opened")
		return Outcome{Action: ActionPriceUnavailable, Capital: st.Capital, Quote: q, Reason: err}, nil
	}

	if err := r.Ledger.Append(ctx, rec); err != nil {
		return Outcome{}, fmt.Errorf("append open row: %w", err)
	}

	r.Logger.Info().
		Str("symbol", symbol).
		Float64("spot", rec.EntryPrice).
		Float64("long_put", rec.LongPut).
		Float64("short_put", rec.ShortPut).
		Float64("short_call", rec.ShortCall).
		Float64("long_call", rec.LongCall).
		Float64("credit", rec.Credit).
		Float64("capital", st.Capital).
		Msg("position opened")

	return Outcome{Action: ActionOpened, Capital: st.Capital, Record: &rec, Quote: q}, nil
}

func (r *Runner) close(ctx context.Context, st ledger.State) (Outcome, error) {
	symbol := r.Config.Strategy.Symbol
	open := *st.Open

	q, err := r.Prices.Latest(ctx, symbol)
	if err == nil && q.Price <= 0 {
		err = fmt.Errorf("%w: non-positive price %v", pricing.ErrUnavailable, q.Price)
	}
	if err != nil {
		if !errors.Is(err, pricing.ErrUnavailable) {
			return Outcome{}, fmt.Errorf("fetch price: %w", err)
		}
		// No row is written; the same OPEN row is picked up next time.
		r.Logger.Warn().Err(err).Str("symbol", symbol).Msg("trade continues, price unavailable")
		return Outcome{Action: ActionContinued, Capital: st.Capital, Record: &open, Reason: err}, nil
	}

	params := Params(r.Config.Strategy)
	_, breach := condor.PnL(q.Price, open, params)
	closed, capital, err := condor.Evaluate(open, q.Price, st.Capital, params, r.now())
	if err != nil {
		return Outcome{}, fmt.Errorf("evaluate: %w", err)
	}

	if err := r.Ledger.Append(ctx, closed); err != nil {
		return Outcome{}, fmt.Errorf("append closed row: %w", err)
	}

	r.Logger.Info().
		Str("symbol", symbol).
		Float64("entry", closed.EntryPrice).
		Float64("exit", q.Price).
		Stringer("breach", breach).
		Float64("pnl", *closed.PnL).
		Float64("capital", capital).
		Msg("position closed")

	return Outcome{Action: ActionClosed, Capital: capital, Record: &closed, Quote: q, Breach: breach}, nil
}

func (r *Runner) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}
