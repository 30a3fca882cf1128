package ledger

import (
	"fmt"
	"strings"
	"time"
)

// FormatRecordOrg renders a ledger row as an Org-mode block. Structured
// facts live in a PROPERTIES drawer so they stay searchable.
func FormatRecordOrg(r TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %.2f (%s)\n", r.Status, r.EntryPrice, r.Timestamp.UTC().Format("2006-01-02 15:04"))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TIMESTAMP: %s\n", r.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":STATUS: %s\n", r.Status)
	fmt.Fprintf(&b, ":ENTRY_PRICE: %.2f\n", r.EntryPrice)
	fmt.Fprintf(&b, ":LONG_PUT: %.2f\n", r.LongPut)
	fmt.Fprintf(&b, ":SHORT_PUT: %.2f\n", r.ShortPut)
	fmt.Fprintf(&b, ":SHORT_CALL: %.2f\n", r.ShortCall)
	fmt.Fprintf(&b, ":LONG_CALL: %.2f\n", r.LongCall)
	fmt.Fprintf(&b, ":CREDIT: %.2f\n", r.Credit)
	if r.ExitPrice != nil {
		fmt.Fprintf(&b, ":EXIT_PRICE: %.2f\n", *r.ExitPrice)
	}
	if r.PnL != nil {
		fmt.Fprintf(&b, ":PNL: %.2f\n", *r.PnL)
	}
	if r.CapitalAfter != nil {
		fmt.Fprintf(&b, ":CAPITAL_AFTER: %.2f\n", *r.CapitalAfter)
	}
	b.WriteString(":END:\n")
	return b.String()
}

// FormatRecordsOrg renders multiple rows separated by blank lines.
func FormatRecordsOrg(recs []TradeRecord) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatRecordOrg(r))
	}
	return b.String()
}

// FormatSummaryOrg renders a Summary as an Org table.
func FormatSummaryOrg(s Summary) string {
	var b strings.Builder
	b.WriteString("* Ledger Summary\n")
	b.WriteString("| Metric        | Value |\n")
	b.WriteString("|---------------+-------|\n")
	fmt.Fprintf(&b, "| Trades        | %d |\n", s.Trades)
	fmt.Fprintf(&b, "| Wins          | %d |\n", s.Wins)
	fmt.Fprintf(&b, "| Losses        | %d |\n", s.Losses)
	fmt.Fprintf(&b, "| Win rate      | %.2f%% |\n", s.WinRate*100)
	fmt.Fprintf(&b, "| Start capital | %.2f |\n", s.StartCapital)
	fmt.Fprintf(&b, "| Final capital | %.2f |\n", s.FinalCapital)
	fmt.Fprintf(&b, "| Net P/L       | %.2f |\n", s.NetPnL)
	fmt.Fprintf(&b, "| Return        | %.2f%% |\n", s.ReturnPct)
	fmt.Fprintf(&b, "| Best trade    | %.2f |\n", s.BestTrade)
	fmt.Fprintf(&b, "| Worst trade   | %.2f |\n", s.WorstTrade)
	fmt.Fprintf(&b, "| Max drawdown  | %.2f%% |\n", s.MaxDrawdownPct*100)
	open := "no"
	if s.HasOpen {
		open = "yes"
	}
	fmt.Fprintf(&b, "| Open position | %s |\n", open)
	return b.String()
}
