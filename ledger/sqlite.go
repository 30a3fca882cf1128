package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/condor/pkg/id"
)

// SQLite keeps the ledger in a single insert-only table.
type SQLite struct {
	db    *sql.DB
	newID func() string
}

// NewSQLite opens (or creates) the database at path and ensures the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: schema: %v", ErrUnreadable, err)
	}

	return &SQLite{db: db, newID: id.New}, nil
}

func (j *SQLite) Records(ctx context.Context) ([]TradeRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT timestamp, entry_price, short_call, long_call, short_put, long_put,
		       credit, exit_price, pnl, capital_after, status
		FROM ledger
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var (
			rec                 TradeRecord
			ts, status          string
			exit, pnl, capAfter sql.NullFloat64
		)
		if err := rows.Scan(
			&ts,
			&rec.EntryPrice,
			&rec.ShortCall,
			&rec.LongCall,
			&rec.ShortPut,
			&rec.LongPut,
			&rec.Credit,
			&exit,
			&pnl,
			&capAfter,
			&status,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("%w: timestamp: %v", ErrUnreadable, err)
		}
		if rec.Status, err = ParseStatus(status); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		rec.ExitPrice = fromNull(exit)
		rec.PnL = fromNull(pnl)
		rec.CapitalAfter = fromNull(capAfter)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return out, nil
}

func (j *SQLite) Append(ctx context.Context, rec TradeRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO ledger
		(row_id, timestamp, entry_price, short_call, long_call, short_put, long_put,
		 credit, exit_price, pnl, capital_after, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.newID(), rec.Timestamp.Format(time.RFC3339Nano),
		rec.EntryPrice, rec.ShortCall, rec.LongCall, rec.ShortPut, rec.LongPut,
		rec.Credit, toNull(rec.ExitPrice), toNull(rec.PnL), toNull(rec.CapitalAfter),
		string(rec.Status),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func toNull(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func fromNull(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return Float(n.Float64)
}
