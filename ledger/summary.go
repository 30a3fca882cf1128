package ledger

// Summary aggregates the closed trades of a ledger.
type Summary struct {
	Trades int
	Wins   int
	Losses int

	StartCapital float64
	FinalCapital float64
	NetPnL       float64
	ReturnPct    float64
	WinRate      float64
	BestTrade    float64
	WorstTrade   float64

	// Largest peak-to-trough fall of the capital curve, as a fraction of
	// the peak.
	MaxDrawdownPct float64

	// HasOpen is true when the last OPEN row has not been closed yet.
	HasOpen bool
}

// Summarize walks the rows in order. Rows other than CLOSED ones only
// affect HasOpen.
func Summarize(recs []TradeRecord, initialCapital float64) Summary {
	s := Summary{StartCapital: initialCapital, FinalCapital: initialCapital}
	peak := initialCapital

	for _, r := range recs {
		if r.IsOpen() {
			s.HasOpen = true
			continue
		}
		s.HasOpen = false
		if r.PnL == nil {
			continue
		}

		pnl := *r.PnL
		if s.Trades == 0 || pnl > s.BestTrade {
			s.BestTrade = pnl
		}
		if s.Trades == 0 || pnl < s.WorstTrade {
			s.WorstTrade = pnl
		}
		s.Trades++
		s.NetPnL += pnl
		if pnl > 0 {
			s.Wins++
		} else {
			s.Losses++
		}

		if r.CapitalAfter != nil {
			s.FinalCapital = *r.CapitalAfter
		} else {
			s.FinalCapital += pnl
		}
		if s.FinalCapital > peak {
			peak = s.FinalCapital
		}
		if peak > 0 {
			if dd := (peak - s.FinalCapital) / peak; dd > s.MaxDrawdownPct {
				s.MaxDrawdownPct = dd
			}
		}
	}

	if s.Trades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Trades)
	}
	if initialCapital > 0 {
		s.ReturnPct = (s.FinalCapital - initialCapital) / initialCapital * 100
	}
	return s
}
