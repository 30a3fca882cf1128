package ledger

// Schema creates the SQLite ledger table. Rows are insert-only; seq fixes
// append order and row_id is a ULID.
const Schema = `
CREATE TABLE IF NOT EXISTS ledger (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	row_id TEXT NOT NULL UNIQUE,
	timestamp TEXT NOT NULL,
	entry_price REAL NOT NULL,
	short_call REAL NOT NULL,
	long_call REAL NOT NULL,
	short_put REAL NOT NULL,
	long_put REAL NOT NULL,
	credit REAL NOT NULL,
	exit_price REAL,
	pnl REAL,
	capital_after REAL,
	status TEXT NOT NULL CHECK (status IN ('OPEN', 'CLOSED'))
);

CREATE INDEX IF NOT EXISTS idx_ledger_status ON ledger(status);
`
