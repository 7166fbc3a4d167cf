package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

const (
	// BackendFile stores items in a binary file and readers in a JSON file.
	BackendFile = "file"

	// BackendPostgres stores everything in PostgreSQL.
	BackendPostgres = "postgres"

	// BackendSQLite stores everything in an embedded SQLite database file.
	BackendSQLite = "sqlite"

	// AdapterPGX connects through a pgx pool.
	AdapterPGX = "pgx"

	// AdapterSQL connects through database/sql.
	AdapterSQL = "sql"

	// AdapterSQLX connects through sqlx.
	AdapterSQLX = "sqlx"

	defaultDataDir       = "."
	defaultSQLiteFile    = "library.db"
	defaultLogLevel      = "warn"
	defaultLibrarianName = "Head Librarian"
	defaultStoreAttempts = 3
)

var (
	// ErrUnknownBackend is returned for a -backend value other than file, postgres, and sqlite.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrUnknownAdapter is returned for a -db-adapter value other than pgx, sql, and sqlx.
	ErrUnknownAdapter = errors.New("unknown database adapter")

	// ErrMissingDSN is returned when the postgres backend is selected without a DSN.
	ErrMissingDSN = errors.New("the postgres backend needs a -dsn")

	// ErrInvalidLogLevel is returned for a -log-level which slog does not know.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidStoreAttempts is returned when -store-attempts is not positive.
	ErrInvalidStoreAttempts = errors.New("store attempts must be positive")

	// ErrInvalidLibrarianName is returned when the librarian name has no last name.
	ErrInvalidLibrarianName = errors.New("librarian name must consist of a first and a last name")
)

// Config holds the command-line configuration.
type Config struct {
	Backend       string
	DataDir       string
	DSN           string
	DBAdapter     string
	LogLevel      string
	LibrarianName string
	StoreAttempts int
}

// ParseFlags parses the configuration flags from args and returns the remaining arguments.
func ParseFlags(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config

	fs.StringVar(&cfg.Backend, "backend", BackendFile, "storage backend: file, postgres, or sqlite")
	fs.StringVar(&cfg.DataDir, "data-dir", defaultDataDir, "directory of the data files (file and sqlite backends)")
	fs.StringVar(&cfg.DSN, "dsn", "", "database DSN, for sqlite a file path (default <data-dir>/"+defaultSQLiteFile+")")
	fs.StringVar(&cfg.DBAdapter, "db-adapter", AdapterPGX, "database adapter: pgx, sql, or sqlx (sqlite supports sql and sqlx)")
	fs.StringVar(&cfg.LogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, or error")
	fs.StringVar(&cfg.LibrarianName, "librarian", defaultLibrarianName, "first and last name of the processing librarian")
	fs.IntVar(&cfg.StoreAttempts, "store-attempts", defaultStoreAttempts, "attempts per store call when the database is busy")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	if cfg.Backend == BackendSQLite && !isFlagSet(fs, "db-adapter") {
		cfg.DBAdapter = AdapterSQLX
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}

	return cfg, fs.Args(), nil
}

// Validate checks the combination of backend, adapter, DSN, and log level.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile:

	case BackendPostgres:
		if c.DSN == "" {
			return ErrMissingDSN
		}

		if c.DBAdapter != AdapterPGX && c.DBAdapter != AdapterSQL && c.DBAdapter != AdapterSQLX {
			return errors.Join(ErrUnknownAdapter, errors.New(c.DBAdapter))
		}

	case BackendSQLite:
		if c.DBAdapter != AdapterSQL && c.DBAdapter != AdapterSQLX {
			return errors.Join(ErrUnknownAdapter, fmt.Errorf("%s is not supported for sqlite", c.DBAdapter))
		}

	default:
		return errors.Join(ErrUnknownBackend, errors.New(c.Backend))
	}

	if c.StoreAttempts <= 0 {
		return ErrInvalidStoreAttempts
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if _, _, err := c.LibrarianFirstAndLastName(); err != nil {
		return err
	}

	return nil
}

// SlogLevel converts the configured log level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.Join(ErrInvalidLogLevel, err)
	}

	return level, nil
}

// LibrarianFirstAndLastName splits the librarian name at the first blank.
func (c Config) LibrarianFirstAndLastName() (string, string, error) {
	first, last, found := strings.Cut(strings.TrimSpace(c.LibrarianName), " ")
	last = strings.TrimSpace(last)

	if !found || last == "" {
		return "", "", errors.Join(ErrInvalidLibrarianName, errors.New(c.LibrarianName))
	}

	return first, last, nil
}

// SQLitePath returns the database file of the sqlite backend.
func (c Config) SQLitePath() string {
	if c.DSN != "" {
		return c.DSN
	}

	return filepath.Join(c.DataDir, defaultSQLiteFile)
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false

	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	return set
}
