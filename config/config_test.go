package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "^NSEI", cfg.Strategy.Symbol)
	assert.Equal(t, 0.025, cfg.Strategy.ShortStrikePct)
	assert.Equal(t, 0.05, cfg.Strategy.WingWidthPct)
	assert.Equal(t, 0.012, cfg.Strategy.CreditPct)
	assert.Equal(t, 0.60, cfg.Strategy.DeployFraction)
	assert.Equal(t, 1_000_000.0, cfg.Account.InitialCapital)
	assert.Equal(t, LedgerCSV, cfg.Ledger.Type)
	assert.Equal(t, "ic_live_trades.csv", cfg.Ledger.Path)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "missing symbol",
			mutate: func(c *Config) { c.Strategy.Symbol = " " },
			errMsg: "strategy.symbol is required",
		},
		{
			name:   "zero short strike",
			mutate: func(c *Config) { c.Strategy.ShortStrikePct = 0 },
			errMsg: "strategy.short_strike_pct must be between 0 and 1",
		},
		{
			name:   "wing width of one",
			mutate: func(c *Config) { c.Strategy.WingWidthPct = 1 },
			errMsg: "strategy.wing_width_pct must be between 0 and 1",
		},
		{
			name:   "negative credit",
			mutate: func(c *Config) { c.Strategy.CreditPct = -0.01 },
			errMsg: "strategy.credit_pct must be between 0 and 1",
		},
		{
			name:   "deploy fraction above one",
			mutate: func(c *Config) { c.Strategy.DeployFraction = 1.5 },
			errMsg: "strategy.deploy_fraction must be between 0 and 1",
		},
		{
			name: "put wing crosses zero",
			mutate: func(c *Config) {
				c.Strategy.ShortStrikePct = 0.5
				c.Strategy.WingWidthPct = 0.5
			},
			errMsg: "must be below 1",
		},
		{
			name:   "non-positive capital",
			mutate: func(c *Config) { c.Account.InitialCapital = 0 },
			errMsg: "account.initial_capital must be positive",
		},
		{
			name:   "unknown ledger type",
			mutate: func(c *Config) { c.Ledger.Type = "parquet" },
			errMsg: "ledger.type must be 'csv' or 'sqlite'",
		},
		{
			name:   "csv without path",
			mutate: func(c *Config) { c.Ledger.Path = "" },
			errMsg: "ledger.path required for csv type",
		},
		{
			name:   "sqlite without db path",
			mutate: func(c *Config) { c.Ledger.Type = LedgerSQLite },
			errMsg: "ledger.db_path required for sqlite type",
		},
		{
			name:   "missing feed url",
			mutate: func(c *Config) { c.Feed.BaseURL = "" },
			errMsg: "feed.base_url is required",
		},
		{
			name:   "missing interval",
			mutate: func(c *Config) { c.Feed.Interval = "" },
			errMsg: "feed.interval and feed.range are required",
		},
		{
			name:   "bad timeout",
			mutate: func(c *Config) { c.Feed.Timeout = "soon" },
			errMsg: "feed.timeout must be a positive duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Strategy.Symbol = "^NSEBANK"
			cfg.Ledger = LedgerConfig{Type: LedgerSQLite, Path: "unused.csv", DBPath: "condor.sqlite"}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account:\n  initial_capital: 250000\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 250000.0, cfg.Account.InitialCapital)
	assert.Equal(t, "^NSEI", cfg.Strategy.Symbol)
	assert.Equal(t, 0.05, cfg.Strategy.WingWidthPct)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy:\n  credit_pct: 2\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestFeedParseTimeout(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{"", DefaultFeedTimeout, false},
		{"5s", 5 * time.Second, false},
		{"1m", time.Minute, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			d, err := FeedConfig{Timeout: tt.timeout}.ParseTimeout()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}
