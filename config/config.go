package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	LedgerCSV    = "csv"
	LedgerSQLite = "sqlite"

	DefaultFeedURL     = "https://query1.finance.yahoo.com"
	DefaultFeedTimeout = 10 * time.Second
)

// Config is everything one invocation needs.
type Config struct {
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Account  AccountConfig  `json:"account" yaml:"account"`
	Ledger   LedgerConfig   `json:"ledger" yaml:"ledger"`
	Feed     FeedConfig     `json:"feed" yaml:"feed"`
}

// StrategyConfig holds the condor construction offsets. All percentages
// are fractions (0.025 == 2.5%).
type StrategyConfig struct {
	Symbol         string  `json:"symbol" yaml:"symbol"`
	ShortStrikePct float64 `json:"short_strike_pct" yaml:"short_strike_pct"`
	WingWidthPct   float64 `json:"wing_width_pct" yaml:"wing_width_pct"`
	CreditPct      float64 `json:"credit_pct" yaml:"credit_pct"`
	DeployFraction float64 `json:"deploy_fraction" yaml:"deploy_fraction"`
}

// AccountConfig holds the capital basis used while the ledger has no
// closed trade.
type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// LedgerConfig selects the persistence medium.
type LedgerConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// FeedConfig points at the chart API used for the latest price.
type FeedConfig struct {
	BaseURL  string `json:"base_url" yaml:"base_url"`
	Interval string `json:"interval" yaml:"interval"` // e.g. "1m"
	Range    string `json:"range" yaml:"range"`       // e.g. "1d"
	Timeout  string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// ParseTimeout converts the timeout string to a duration, falling back to
// DefaultFeedTimeout when unset.
func (f FeedConfig) ParseTimeout() (time.Duration, error) {
	if f.Timeout == "" {
		return DefaultFeedTimeout, nil
	}
	return time.ParseDuration(f.Timeout)
}

// LoadFromFile loads configuration from a YAML or JSON file and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Start from the defaults so a partial file only overrides what it names.
	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	s := c.Strategy
	if strings.TrimSpace(s.Symbol) == "" {
		return fmt.Errorf("strategy.symbol is required")
	}
	if err := fraction("strategy.short_strike_pct", s.ShortStrikePct); err != nil {
		return err
	}
	if err := fraction("strategy.wing_width_pct", s.WingWidthPct); err != nil {
		return err
	}
	if err := fraction("strategy.credit_pct", s.CreditPct); err != nil {
		return err
	}
	if err := fraction("strategy.deploy_fraction", s.DeployFraction); err != nil {
		return err
	}
	if s.ShortStrikePct+s.WingWidthPct >= 1 {
		return fmt.Errorf("strategy.short_strike_pct + strategy.wing_width_pct must be below 1")
	}
	if c.Account.InitialCapital <= 0 || math.IsInf(c.Account.InitialCapital, 0) || math.IsNaN(c.Account.InitialCapital) {
		return fmt.Errorf("account.initial_capital must be positive")
	}

	switch c.Ledger.Type {
	case LedgerCSV:
		if c.Ledger.Path == "" {
			return fmt.Errorf("ledger.path required for csv type")
		}
	case LedgerSQLite:
		if c.Ledger.DBPath == "" {
			return fmt.Errorf("ledger.db_path required for sqlite type")
		}
	default:
		return fmt.Errorf("ledger.type must be 'csv' or 'sqlite'")
	}

	if c.Feed.BaseURL == "" {
		return fmt.Errorf("feed.base_url is required")
	}
	if c.Feed.Interval == "" || c.Feed.Range == "" {
		return fmt.Errorf("feed.interval and feed.range are required")
	}
	if d, err := c.Feed.ParseTimeout(); err != nil || d <= 0 {
		return fmt.Errorf("feed.timeout must be a positive duration")
	}
	return nil
}

func fraction(name string, v float64) error {
	if !(v > 0 && v < 1) {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}

// Default returns the weekly NIFTY condor settings.
func Default() *Config {
	return &Config{
		Strategy: StrategyConfig{
			Symbol:         "^NSEI",
			ShortStrikePct: 0.025,
			WingWidthPct:   0.05,
			CreditPct:      0.012,
			DeployFraction: 0.60,
		},
		Account: AccountConfig{
			InitialCapital: 1_000_000,
		},
		Ledger: LedgerConfig{
			Type: LedgerCSV,
			Path: "ic_live_trades.csv",
		},
		Feed: FeedConfig{
			BaseURL:  DefaultFeedURL,
			Interval: "1m",
			Range:    "1d",
			Timeout:  "10s",
		},
	}
}
