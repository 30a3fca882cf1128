package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/condor/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the trade ledger",
	Long: `Read the ledger named by the configuration without modifying it.

Subcommands:
  show     - Print every row as an Org-mode block
  summary  - Print win/loss and capital statistics

Examples:
  condor ledger show
  condor ledger summary -f condor.yaml`,
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every ledger row",
	Args:  cobra.NoArgs,
	RunE:  runLedgerShow,
}

var ledgerSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print ledger statistics",
	Args:  cobra.NoArgs,
	RunE:  runLedgerSummary,
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerShowCmd)
	ledgerCmd.AddCommand(ledgerSummaryCmd)
}

func loadLedger(cmd *cobra.Command) (ledger.State, float64, error) {
	cfg, err := loadConfig()
	if err != nil {
		return ledger.State{}, 0, err
	}
	store, err := openLedger(cfg)
	if err != nil {
		return ledger.State{}, 0, fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()

	st, err := ledger.Load(cmd.Context(), store, cfg.Account.InitialCapital)
	if err != nil {
		return ledger.State{}, 0, fmt.Errorf("load ledger: %w", err)
	}
	return st, cfg.Account.InitialCapital, nil
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	st, _, err := loadLedger(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(st.Records) == 0 {
		fmt.Fprintln(w, "Ledger is empty.")
		return nil
	}
	fmt.Fprint(w, ledger.FormatRecordsOrg(st.Records))
	return nil
}

func runLedgerSummary(cmd *cobra.Command, args []string) error {
	st, initial, err := loadLedger(cmd)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), ledger.FormatSummaryOrg(ledger.Summarize(st.Records, initial)))
	return nil
}
