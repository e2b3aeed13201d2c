package storage

import (
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// MemoryDSN opens an in-memory database shared across connections. Passage
// text lives only for the lifetime of the process, matching the session
// model: nothing survives a restart.
const MemoryDSN = "file:xplaindfile?mode=memory&cache=shared"

// New opens a SQLite database connection for the given DSN.
func New(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// A shared in-memory database is dropped when the last connection
	// closes; keep one connection open at all times.
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the required tables. It is idempotent and can be run
// multiple times safely.
func Migrate(db *sql.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS passages (
		id TEXT PRIMARY KEY,
		index_name TEXT NOT NULL,
		position INTEGER NOT NULL,
		text TEXT NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		return err
	}

	return nil
}
