package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/condor/bot"
	"github.com/rustyeddy/condor/pricing"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one invocation (same as running condor with no command)",
	Long: `Load the ledger, then open a new condor or close the open one.

A missing price is not an error: nothing is written and the next scheduled
run tries again.

Example:
  condor run -f condor.yaml`,
	Args: cobra.NoArgs,
	RunE: runOnce,
}

var fixedPrice float64

func init() {
	rootCmd.AddCommand(runCmd)

	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().Float64Var(&fixedPrice, "price", 0, "use this spot price instead of the live feed")
	}
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openLedger(cfg)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()

	var prices pricing.Source
	if cmd.Flags().Changed("price") {
		prices = pricing.Fixed{Price: fixedPrice}
	} else {
		timeout, err := cfg.Feed.ParseTimeout()
		if err != nil {
			return fmt.Errorf("feed timeout: %w", err)
		}
		prices = pricing.NewYahoo(cfg.Feed.BaseURL, cfg.Feed.Interval, cfg.Feed.Range, timeout)
	}

	r := &bot.Runner{
		Ledger: store,
		Prices: prices,
		Config: cfg,
		Logger: logger,
	}

	out, err := r.Run(cmd.Context())
	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		return err
	}

	report(cmd.OutOrStdout(), out)
	return nil
}

func report(w io.Writer, out bot.Outcome) {
	switch out.Action {
	case bot.ActionOpened:
		r := out.Record
		fmt.Fprintf(w, "New trade opened at %.2f\n", r.EntryPrice)
		fmt.Fprintf(w, "  Puts:   %.2f / %.2f\n", r.LongPut, r.ShortPut)
		fmt.Fprintf(w, "  Calls:  %.2f / %.2f\n", r.ShortCall, r.LongCall)
		fmt.Fprintf(w, "  Credit: %.2f\n", r.Credit)
		fmt.Fprintf(w, "  Capital: %.2f\n", out.Capital)
	case bot.ActionClosed:
		r := out.Record
		fmt.Fprintf(w, "Trade closed at %.2f (entry %.2f, breach %s)\n", *r.ExitPrice, r.EntryPrice, out.Breach)
		fmt.Fprintf(w, "  P/L:     %.2f\n", *r.PnL)
		fmt.Fprintf(w, "  Capital: %.2f\n", out.Capital)
	case bot.ActionContinued:
		fmt.Fprintf(w, "Trade continues, price unavailable (entry %.2f)\n", out.Record.EntryPrice)
	case bot.ActionPriceUnavailable:
		fmt.Fprintln(w, "Failed to fetch price.")
	}
}
