package dbmetrics

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-SmartScheduler/pkg/metrics"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dbmetrics.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_ObservesQueries(t *testing.T) {
	ctx := context.Background()
	m := metrics.New("dbmetrics_test")
	db := Wrap(openSQLite(t), m)

	_, err := db.ExecContext(ctx, `CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO items (name) VALUES (?)`, "a")
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT name FROM items WHERE id = 1`).Scan(&name))
	assert.Equal(t, "a", name)

	_, err = db.ExecContext(ctx, `SELECT * FROM missing_table`)
	require.Error(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(m.DBQueryDuration))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("exec")))
}

func TestDB_NilMetrics(t *testing.T) {
	ctx := context.Background()
	db := Wrap(openSQLite(t), nil)

	_, err := db.ExecContext(ctx, `CREATE TABLE items (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, db.PingContext(ctx))
}

func TestGetExecutor(t *testing.T) {
	ctx := context.Background()
	db := Wrap(openSQLite(t), nil)

	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestTx_RollbackAfterCommitIsNotCounted(t *testing.T) {
	ctx := context.Background()
	m := metrics.New("dbmetrics_tx_test")
	db := Wrap(openSQLite(t), m)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.ErrorIs(t, tx.Rollback(), sql.ErrTxDone)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("rollback")))
}
