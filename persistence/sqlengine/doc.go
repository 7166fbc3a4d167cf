// Package sqlengine provides a SQL implementation of persistence.Store.
//
// Items, readers and the reader-to-item links live in three tables which are replaced as a whole
// on every save. All SQL is built with goqu, so the same store serves PostgreSQL (via pgx, lib/pq
// or sqlx) and SQLite. Unlike the file engine, loan dates are persisted exactly.
//
// Usage:
//
//	store, err := sqlengine.NewStoreFromPGXPool(pool, sqlengine.WithLogger(logger))
//	if err != nil { ... }
//	if err = store.EnsureSchema(ctx); err != nil { ... }
package sqlengine
