package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/condor/config"
	"github.com/rustyeddy/condor/ledger"
	"github.com/rustyeddy/condor/pkg/id"
)

var rootCmd = &cobra.Command{
	Use:   "condor",
	Short: "Log a weekly iron condor against a live index price",
	Long: `Condor samples the latest index price and keeps a paper ledger of a
single iron condor position.

Each invocation performs one step:
  - with no open position, it builds a new condor around spot and records it
  - with an open position, it settles the position at spot and records the close

Run it from cron or any scheduler. Invocations must not overlap.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runOnce,
}

var (
	cfgFile  string
	logLevel string
	jsonLog  bool

	logger zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file (YAML or JSON); built-in defaults when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "emit JSON logs instead of console output")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	var out io.Writer = os.Stderr
	if !jsonLog {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	logger = zerolog.New(out).Level(lvl).With().Timestamp().Str("run", id.New()).Logger()
	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openLedger(cfg *config.Config) (ledger.Store, error) {
	switch cfg.Ledger.Type {
	case config.LedgerSQLite:
		return ledger.NewSQLite(cfg.Ledger.DBPath)
	default:
		return ledger.NewCSV(cfg.Ledger.Path), nil
	}
}
