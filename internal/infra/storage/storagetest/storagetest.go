// Package storagetest поднимает временную SQLite базу для тестов репозиториев.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/internal/infra/database"
	"github.com/m04kA/SMC-SmartScheduler/internal/infra/migrations"
	"github.com/m04kA/SMC-SmartScheduler/pkg/sqlbuilder"
)

// Open создает файл базы во временной директории теста и применяет миграции
func Open(t testing.TB) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	_, err = migrations.Run(ctx, db, database.DriverSQLite, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Builder билдер запросов для тестовой базы
func Builder() sqlbuilder.Builder {
	return sqlbuilder.New(sqlbuilder.SQLite)
}
