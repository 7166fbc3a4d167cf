package config

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/persistence"
	"github.com/AntonStoeckl/library-circulation-go/persistence/fileengine"
	"github.com/AntonStoeckl/library-circulation-go/persistence/sqlengine"
)

// Logger interface for operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// CloseFunc releases the resources held by a store.
type CloseFunc func()

// NewStore builds the persistence.Store selected by the configuration.
// SQL backends get their schema ensured. The store reads the date from now. The returned
// CloseFunc must be called when done.
func NewStore(ctx context.Context, cfg Config, logger Logger, now func() time.Time) (persistence.Store, CloseFunc, error) {
	noop := func() {}

	switch cfg.Backend {
	case BackendFile:
		store, err := fileengine.NewStore(cfg.DataDir, fileengine.WithLogger(logger), fileengine.WithClock(now))
		if err != nil {
			return nil, noop, err
		}

		return store, noop, nil

	case BackendPostgres:
		return newPostgresStore(ctx, cfg, logger, now)

	case BackendSQLite:
		return newSQLiteStore(ctx, cfg, logger, now)

	default:
		return nil, noop, errors.Join(ErrUnknownBackend, errors.New(cfg.Backend))
	}
}

func newPostgresStore(ctx context.Context, cfg Config, logger Logger, now func() time.Time) (persistence.Store, CloseFunc, error) {
	options := []sqlengine.Option{
		sqlengine.WithDialect(sqlengine.DialectPostgres), sqlengine.WithLogger(logger), sqlengine.WithClock(now),
	}

	var store *sqlengine.Store
	var closeFn CloseFunc

	switch cfg.DBAdapter {
	case AdapterPGX:
		pool, err := OpenPostgresPGXPool(ctx, cfg.DSN)
		if err != nil {
			return nil, func() {}, err
		}

		closeFn = pool.Close
		store, err = sqlengine.NewStoreFromPGXPool(pool, options...)
		if err != nil {
			closeFn()
			return nil, func() {}, err
		}

	case AdapterSQL:
		db, err := OpenPostgresSQLDB(ctx, cfg.DSN)
		if err != nil {
			return nil, func() {}, err
		}

		closeFn = func() { _ = db.Close() }
		store, err = sqlengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			closeFn()
			return nil, func() {}, err
		}

	case AdapterSQLX:
		db, err := OpenPostgresSQLX(ctx, cfg.DSN)
		if err != nil {
			return nil, func() {}, err
		}

		closeFn = func() { _ = db.Close() }
		store, err = sqlengine.NewStoreFromSQLX(db, options...)
		if err != nil {
			closeFn()
			return nil, func() {}, err
		}

	default:
		return nil, func() {}, errors.Join(ErrUnknownAdapter, errors.New(cfg.DBAdapter))
	}

	if err := store.EnsureSchema(ctx); err != nil {
		closeFn()
		return nil, func() {}, err
	}

	return store, closeFn, nil
}

func newSQLiteStore(ctx context.Context, cfg Config, logger Logger, now func() time.Time) (persistence.Store, CloseFunc, error) {
	db, err := OpenSQLite(ctx, cfg.SQLitePath())
	if err != nil {
		return nil, func() {}, err
	}

	closeFn := func() { _ = db.Close() }
	options := []sqlengine.Option{
		sqlengine.WithDialect(sqlengine.DialectSQLite), sqlengine.WithLogger(logger), sqlengine.WithClock(now),
	}

	var store *sqlengine.Store

	switch cfg.DBAdapter {
	case AdapterSQL:
		store, err = sqlengine.NewStoreFromSQLDB(db.DB, options...)
	case AdapterSQLX:
		store, err = sqlengine.NewStoreFromSQLX(db, options...)
	default:
		err = errors.Join(ErrUnknownAdapter, errors.New(cfg.DBAdapter))
	}

	if err != nil {
		closeFn()
		return nil, func() {}, err
	}

	if err = store.EnsureSchema(ctx); err != nil {
		closeFn()
		return nil, func() {}, err
	}

	return store, closeFn, nil
}
