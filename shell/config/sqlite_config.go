package config

import (
	"context"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

const (
	sqliteDriverName = "sqlite"
	sqlitePragmas    = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
)

// OpenSQLite creates a *sqlx.DB on the SQLite database file at path and pings it.
// The file is created if it does not exist.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open(sqliteDriverName, filepath.Clean(path)+sqlitePragmas)
	if err != nil {
		return nil, err
	}

	// one writer at a time
	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}
