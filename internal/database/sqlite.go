// Package database implements the durable ledger and settings stores on an
// embedded SQLite database.
package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    user_id INTEGER PRIMARY KEY,
    salt REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS history (
    user_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    amount REAL NOT NULL,
    PRIMARY KEY (user_id, date)
);

CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// DB wraps the shared SQLite connection.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the SQLite database at path and applies the
// schema. Writes are serialized on a single connection; SQLite has no row
// locks and the ledger's read-modify-write transactions must not interleave.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{DB: db}, nil
}
