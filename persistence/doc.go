// Package persistence defines the contract between the library core and its storage engines.
//
// A Store saves and loads the whole catalog and the whole reader list. Encoding is the
// engine's concern; every engine must supply and accept exactly the per-variant field set
// described by ItemRecord (Book: author, genre; Magazine: issue number, publisher).
//
// Engines:
//   - fileengine: a binary item data file plus a JSON users file
//   - sqlengine: relational tables, built with goqu, on Postgres (pgx, lib/pq, sqlx) or SQLite
package persistence
