package adapters

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// DBAdapter defines the database operations needed by the SQL store.
// Statements are complete SQL strings, the store renders all values with goqu.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, statement string) error
	BeginTx(ctx context.Context) (DBTx, error)
}

// DBTx is an open transaction. After Commit or Rollback it must not be used again.
type DBTx interface {
	Exec(ctx context.Context, statement string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// stdConn is the part of *sql.DB and *sqlx.DB the StdAdapter needs.
type stdConn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// StdAdapter implements DBAdapter for database/sql based connections.
type StdAdapter struct {
	db stdConn
}

// NewSQLAdapter creates an adapter for a sql.DB.
func NewSQLAdapter(db *sql.DB) StdAdapter {
	return StdAdapter{db: db}
}

// NewSQLXAdapter creates an adapter for a sqlx.DB.
func NewSQLXAdapter(db *sqlx.DB) StdAdapter {
	return StdAdapter{db: db}
}

// Query runs a query, *sql.Rows already satisfies DBRows.
func (a StdAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Exec runs a statement.
func (a StdAdapter) Exec(ctx context.Context, statement string) error {
	_, err := a.db.ExecContext(ctx, statement)

	return err
}

// BeginTx starts a transaction.
func (a StdAdapter) BeginTx(ctx context.Context) (DBTx, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return stdTx{tx: tx}, nil
}

// stdTx adapts sql.Tx, whose Commit and Rollback take no context.
type stdTx struct {
	tx *sql.Tx
}

func (t stdTx) Exec(ctx context.Context, statement string) error {
	_, err := t.tx.ExecContext(ctx, statement)

	return err
}

func (t stdTx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t stdTx) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}

// PGXAdapter implements DBAdapter for pgxpool.Pool.
type PGXAdapter struct {
	pool *pgxpool.Pool
}

// NewPGXAdapter creates an adapter for a pgx pool.
func NewPGXAdapter(pool *pgxpool.Pool) PGXAdapter {
	return PGXAdapter{pool: pool}
}

// Query runs a query on the pool.
func (a PGXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxRows{Rows: rows}, nil
}

// Exec runs a statement on the pool.
func (a PGXAdapter) Exec(ctx context.Context, statement string) error {
	_, err := a.pool.Exec(ctx, statement)

	return err
}

// BeginTx starts a transaction on the pool.
func (a PGXAdapter) BeginTx(ctx context.Context) (DBTx, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return pgxTx{tx: tx}, nil
}

type pgxTx struct {
	tx pgx.Tx
}

func (t pgxTx) Exec(ctx context.Context, statement string) error {
	_, err := t.tx.Exec(ctx, statement)

	return err
}

func (t pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t pgxTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// pgxRows adapts pgx.Rows, whose Close has no error result.
type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Close() error {
	r.Rows.Close()
	return nil
}
