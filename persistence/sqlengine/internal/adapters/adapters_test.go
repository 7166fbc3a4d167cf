package adapters_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // driver import

	"github.com/AntonStoeckl/library-circulation-go/persistence/sqlengine/internal/adapters"
)

func Test_StdAdapter_ExecAndQuery(t *testing.T) {
	// arrange
	ctx := context.Background()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer func() { _ = db.Close() }()

	for _, adapter := range []adapters.DBAdapter{adapters.NewSQLXAdapter(db), adapters.NewSQLAdapter(db.DB)} {
		require.NoError(t, adapter.Exec(ctx, `CREATE TABLE IF NOT EXISTS t (v TEXT)`), "error in arranging test data")
	}

	adapter := adapters.NewSQLXAdapter(db)
	require.NoError(t, adapter.Exec(ctx, `INSERT INTO t (v) VALUES ('a'), ('b')`), "error in arranging test data")

	// act
	rows, err := adapter.Query(ctx, `SELECT v FROM t ORDER BY v`)
	require.NoError(t, err)

	values := make([]string, 0)
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		values = append(values, v)
	}

	// assert
	assert.NoError(t, rows.Err())
	assert.NoError(t, rows.Close())
	assert.Equal(t, []string{"a", "b"}, values)
}

func Test_StdAdapter_Error_BadStatement(t *testing.T) {
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	adapter := adapters.NewSQLAdapter(db.DB)

	assert.Error(t, adapter.Exec(context.Background(), `NOT SQL`))

	_, err = adapter.Query(context.Background(), `SELECT * FROM missing`)
	assert.Error(t, err)
}

func Test_StdAdapter_BeginTx_RollbackDiscardsStatements(t *testing.T) {
	// arrange
	ctx := context.Background()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer func() { _ = db.Close() }()

	adapter := adapters.NewSQLXAdapter(db)
	require.NoError(t, adapter.Exec(ctx, `CREATE TABLE t (v TEXT)`), "error in arranging test data")

	// act
	tx, err := adapter.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Exec(ctx, `INSERT INTO t (v) VALUES ('a')`))
	require.NoError(t, tx.Rollback(ctx))

	committed, err := adapter.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, committed.Exec(ctx, `INSERT INTO t (v) VALUES ('b')`))
	require.NoError(t, committed.Commit(ctx))

	// assert
	var values []string
	require.NoError(t, db.SelectContext(ctx, &values, `SELECT v FROM t`))
	assert.Equal(t, []string{"b"}, values)
}
