package output

import (
	"database/sql"
	"fmt"
	"sync"

	"LogonTriage/core"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteWriter implements the Writer interface for SQLite output. Rows from
// several runs can share one database; run_id tells them apart.
type SQLiteWriter struct {
	mu         sync.Mutex
	db         *sql.DB
	insertStmt *sql.Stmt
	tx         *sql.Tx
	txStmt     *sql.Stmt
	runID      string
}

const createLogonsSQL = `
CREATE TABLE IF NOT EXISTS logons (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	event_id TEXT NOT NULL,
	event_time TEXT,
	account TEXT NOT NULL,
	source_address TEXT NOT NULL,
	source TEXT
);
`

const insertLogonSQL = `
INSERT INTO logons (run_id, event_id, event_time, account, source_address, source)
VALUES (?, ?, ?, ?, ?, ?);
`

// NewSQLiteWriter opens (or creates) the database and begins a transaction
func NewSQLiteWriter(outputPath, runID string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	if _, err := db.Exec(createLogonsSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create logons table: %w", err)
	}

	stmt, err := db.Prepare(insertLogonSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		stmt.Close()
		db.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &SQLiteWriter{
		db:         db,
		insertStmt: stmt,
		tx:         tx,
		txStmt:     tx.Stmt(stmt),
		runID:      runID,
	}, nil
}

// Write inserts the events into the logons table
func (w *SQLiteWriter) Write(events []*core.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, event := range events {
		_, err := w.txStmt.Exec(
			w.runID,
			event.EventID,
			event.When,
			event.AccountOrUnknown(),
			event.AddressOrUnknown(),
			event.Source,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	return nil
}

// Close commits the transaction, indexes the table and closes the database
func (w *SQLiteWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.txStmt.Close()
	w.insertStmt.Close()

	if err := w.tx.Commit(); err != nil {
		w.db.Close()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_logons_run ON logons (run_id)",
		"CREATE INDEX IF NOT EXISTS idx_logons_source_address ON logons (source_address)",
	}
	for _, stmt := range indexes {
		if _, err := w.db.Exec(stmt); err != nil {
			w.db.Close()
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
