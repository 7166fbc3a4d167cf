// Package adapters hide the connection type behind the SQL store.
//
// *sql.DB (lib/pq or the embedded SQLite driver) and *sqlx.DB share StdAdapter,
// a pgxpool.Pool gets PGXAdapter.
package adapters
