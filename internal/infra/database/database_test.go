package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/pkg/sqlbuilder"
)

func TestDetectDriver(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want Driver
	}{
		{name: "empty", dsn: "", want: DriverSQLite},
		{name: "postgres url", dsn: "postgres://u:p@localhost/db", want: DriverPostgres},
		{name: "postgresql url", dsn: "postgresql://localhost/db", want: DriverPostgres},
		{name: "key value dsn", dsn: "host=localhost port=5432 dbname=x", want: DriverPostgres},
		{name: "sqlite scheme", dsn: "sqlite:///var/data.db", want: DriverSQLite},
		{name: "file uri", dsn: "file:test.db?cache=shared", want: DriverSQLite},
		{name: "db extension", dsn: "data/scheduler.db", want: DriverSQLite},
		{name: "sqlite3 extension", dsn: "scheduler.sqlite3", want: DriverSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDriver(tt.dsn))
		})
	}
}

func TestParseDriver(t *testing.T) {
	d, err := ParseDriver("PostgreSQL", "")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, d)
	assert.Equal(t, sqlbuilder.Postgres, d.Dialect())

	d, err = ParseDriver("", "tasks.db")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, d)
	assert.Equal(t, sqlbuilder.SQLite, d.Dialect())

	_, err = ParseDriver("mysql", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scheduler.db")

	db, err := Open(context.Background(), Options{Driver: DriverSQLite, DSN: path})
	require.NoError(t, err)
	defer db.Close()

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestSqliteDSN(t *testing.T) {
	dsn, err := sqliteDSN(":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:?"+sqlitePragmas, dsn)

	dsn, err = sqliteDSN("file:x.db?cache=shared")
	require.NoError(t, err)
	assert.Equal(t, "file:x.db?cache=shared&"+sqlitePragmas, dsn)

	_, err = sqliteDSN("")
	assert.Error(t, err)
}
