package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"time"
)

// legacyTimeLayout is how pandas writes datetime.now() into CSV. Ledgers
// started by the older logger still carry it.
const legacyTimeLayout = "2006-01-02 15:04:05.999999999"

// CSV keeps the ledger in a single comma-separated file. The file is only
// ever appended to.
type CSV struct {
	path string
}

// NewCSV returns a CSV ledger at path. The file is created on first Append.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Path returns the backing file.
func (c *CSV) Path() string { return c.path }

func (c *CSV) Records(ctx context.Context) ([]TradeRecord, error) {
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnreadable, c.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrUnreadable, err)
	}
	if !slices.Equal(header, Columns) {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrUnreadable, header)
	}

	var out []TradeRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrUnreadable, line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *CSV) Append(ctx context.Context, rec TradeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat ledger: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(encodeRow(rec)); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	return f.Sync()
}

func (c *CSV) Close() error { return nil }

func encodeRow(r TradeRecord) []string {
	return []string{
		r.Timestamp.Format(time.RFC3339Nano),
		num(r.EntryPrice),
		num(r.ShortCall),
		num(r.LongCall),
		num(r.ShortPut),
		num(r.LongPut),
		num(r.Credit),
		optNum(r.ExitPrice),
		optNum(r.PnL),
		optNum(r.CapitalAfter),
		string(r.Status),
	}
}

func decodeRow(row []string) (TradeRecord, error) {
	if len(row) != len(Columns) {
		return TradeRecord{}, fmt.Errorf("want %d fields, got %d", len(Columns), len(row))
	}

	var (
		rec TradeRecord
		err error
	)
	if rec.Timestamp, err = parseTime(row[0]); err != nil {
		return TradeRecord{}, fmt.Errorf("timestamp: %w", err)
	}

	required := []struct {
		name string
		dst  *float64
		val  string
	}{
		{"entry_price", &rec.EntryPrice, row[1]},
		{"short_call", &rec.ShortCall, row[2]},
		{"long_call", &rec.LongCall, row[3]},
		{"short_put", &rec.ShortPut, row[4]},
		{"long_put", &rec.LongPut, row[5]},
		{"credit", &rec.Credit, row[6]},
	}
	for _, f := range required {
		if *f.dst, err = strconv.ParseFloat(f.val, 64); err != nil {
			return TradeRecord{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	if rec.ExitPrice, err = parseOpt(row[7]); err != nil {
		return TradeRecord{}, fmt.Errorf("exit_price: %w", err)
	}
	if rec.PnL, err = parseOpt(row[8]); err != nil {
		return TradeRecord{}, fmt.Errorf("pnl: %w", err)
	}
	if rec.CapitalAfter, err = parseOpt(row[9]); err != nil {
		return TradeRecord{}, fmt.Errorf("capital_after: %w", err)
	}
	if rec.Status, err = ParseStatus(row[10]); err != nil {
		return TradeRecord{}, err
	}
	return rec, nil
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func optNum(p *float64) string {
	if p == nil {
		return ""
	}
	return num(*p)
}

func parseOpt(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(legacyTimeLayout, s, time.Local)
}
