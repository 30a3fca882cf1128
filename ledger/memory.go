package ledger

import "context"

// Memory is an in-process Store for tests and dry runs.
type Memory struct {
	rows []TradeRecord
}

// NewMemory returns a Memory ledger pre-filled with rows.
func NewMemory(rows ...TradeRecord) *Memory {
	m := &Memory{}
	for _, r := range rows {
		m.rows = append(m.rows, r.Clone())
	}
	return m
}

func (m *Memory) Records(ctx context.Context) ([]TradeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]TradeRecord, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Clone()
	}
	return out, nil
}

func (m *Memory) Append(ctx context.Context, rec TradeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.rows = append(m.rows, rec.Clone())
	return nil
}

func (m *Memory) Close() error { return nil }

// Len returns the number of rows held.
func (m *Memory) Len() int { return len(m.rows) }

var (
	_ Store = (*CSV)(nil)
	_ Store = (*SQLite)(nil)
	_ Store = (*Memory)(nil)
)
