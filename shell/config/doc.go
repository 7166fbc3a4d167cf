// Package config parses the command-line configuration of the library and builds the
// persistence.Store it selects.
//
// This package contains factory functions for creating database connections
// using different drivers (pgx.Pool, sql.DB, sqlx.DB for PostgreSQL, and the embedded
// modernc SQLite driver) with pre-configured pool settings.
//
// This package is part of the shell (infrastructure) layer.
package config
