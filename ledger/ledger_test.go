package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initialCapital = 1_000_000.0

var t0 = time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC)

func openRow(ts time.Time, entry float64) TradeRecord {
	return TradeRecord{
		Timestamp:  ts,
		EntryPrice: entry,
		ShortCall:  entry * 1.025,
		LongCall:   entry*1.025 + entry*0.05,
		ShortPut:   entry * 0.975,
		LongPut:    entry*0.975 - entry*0.05,
		Credit:     7200,
		Status:     StatusOpen,
	}
}

func closedRow(open TradeRecord, ts time.Time, exit, pnl, capitalAfter float64) TradeRecord {
	r := open.Clone()
	r.Timestamp = ts
	r.ExitPrice = Float(exit)
	r.PnL = Float(pnl)
	r.CapitalAfter = Float(capitalAfter)
	r.Status = StatusClosed
	return r
}

// stores returns one fresh instance of every Store implementation.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()
	sq, err := NewSQLite(filepath.Join(dir, "ledger.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"csv":    NewCSV(filepath.Join(dir, "ledger.csv")),
		"sqlite": sq,
	}
}

func TestLoadEmpty(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			st, err := Load(context.Background(), s, initialCapital)
			require.NoError(t, err)
			assert.Empty(t, st.Records)
			assert.Equal(t, initialCapital, st.Capital)
			assert.Nil(t, st.Open)
		})
	}
}

func TestLoadStates(t *testing.T) {
	o1 := openRow(t0, 20000)
	c1 := closedRow(o1, t0.Add(7*24*time.Hour), 20100, 7200, 1_007_200)
	o2 := openRow(t0.Add(8*24*time.Hour), 20300)
	c2 := closedRow(o2, t0.Add(15*24*time.Hour), 21000, -1500, 1_005_700)

	tests := []struct {
		name        string
		rows        []TradeRecord
		wantCapital float64
		wantOpen    *TradeRecord
	}{
		{"single open", []TradeRecord{o1}, initialCapital, &o1},
		{"open then closed", []TradeRecord{o1, c1}, 1_007_200, nil},
		{"second open", []TradeRecord{o1, c1, o2}, 1_007_200, &o2},
		{"two round trips", []TradeRecord{o1, c1, o2, c2}, 1_005_700, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for name, s := range stores(t) {
				t.Run(name, func(t *testing.T) {
					ctx := context.Background()
					for _, r := range tt.rows {
						require.NoError(t, s.Append(ctx, r))
					}

					st, err := Load(ctx, s, initialCapital)
					require.NoError(t, err)
					assert.Len(t, st.Records, len(tt.rows))
					assert.Equal(t, tt.wantCapital, st.Capital)
					if tt.wantOpen == nil {
						assert.Nil(t, st.Open)
						return
					}
					require.NotNil(t, st.Open)
					assert.True(t, tt.wantOpen.Timestamp.Equal(st.Open.Timestamp))
					assert.Equal(t, tt.wantOpen.EntryPrice, st.Open.EntryPrice)
					assert.Equal(t, tt.wantOpen.ShortCall, st.Open.ShortCall)
					assert.Equal(t, tt.wantOpen.LongPut, st.Open.LongPut)
					assert.Equal(t, StatusOpen, st.Open.Status)
				})
			}
		})
	}
}

func TestLoadRejectsClosedWithoutCapital(t *testing.T) {
	bad := closedRow(openRow(t0, 20000), t0, 20000, 7200, 0)
	bad.CapitalAfter = nil

	_, err := Load(context.Background(), NewMemory(bad), initialCapital)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestLoadRejectsUnknownStatus(t *testing.T) {
	bad := openRow(t0, 20000)
	bad.Status = "PENDING"

	_, err := Load(context.Background(), NewMemory(bad), initialCapital)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLoadDoesNotAliasStore(t *testing.T) {
	m := NewMemory(openRow(t0, 20000))

	st, err := Load(context.Background(), m, initialCapital)
	require.NoError(t, err)
	st.Open.EntryPrice = 1

	again, err := Load(context.Background(), m, initialCapital)
	require.NoError(t, err)
	assert.Equal(t, 20000.0, again.Open.EntryPrice)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("OPEN")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, s)

	s, err = ParseStatus("CLOSED")
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, s)

	_, err = ParseStatus("open")
	assert.Error(t, err)
}
