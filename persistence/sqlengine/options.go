package sqlengine

import (
	"time"
)

// Logger interface for SQL query logging, operational metrics, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithDialect sets the goqu dialect used to build queries, DialectPostgres or DialectSQLite.
func WithDialect(dialect string) Option {
	return func(s *Store) error {
		switch dialect {
		case DialectPostgres, DialectSQLite:
			s.dialect = dialect
			return nil

		default:
			return ErrUnsupportedDialect
		}
	}
}

// WithTableNames sets the names of the items, readers, and reader items tables.
func WithTableNames(items, readers, readerItems string) Option {
	return func(s *Store) error {
		if items == "" || readers == "" || readerItems == "" {
			return ErrEmptyTableName
		}

		s.itemsTable = items
		s.readersTable = readers
		s.readerItemsTable = readerItems

		return nil
	}
}

// WithCategoriesTableName sets the name of the categories table.
func WithCategoriesTableName(name string) Option {
	return func(s *Store) error {
		if name == "" {
			return ErrEmptyTableName
		}

		s.categoriesTable = name

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Record counts of saves and loads (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithClock sets the time source used as load date for items which are stored as unavailable without dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) error {
		if now != nil {
			s.now = now
		}

		return nil
	}
}
