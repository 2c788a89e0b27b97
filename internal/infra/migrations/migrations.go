package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/infra/database"
	"github.com/m04kA/SMC-SmartScheduler/pkg/sqlbuilder"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TEXT NOT NULL
)`

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Run применяет еще не примененные *.up.sql миграции драйвера по порядку имен.
// Каждая миграция выполняется в отдельной транзакции.
func Run(ctx context.Context, db *sql.DB, driver database.Driver, log Logger) (int, error) {
	dir := "sqlite"
	if driver == database.DriverPostgres {
		dir = "postgres"
	}

	files, err := upFiles(dir)
	if err != nil {
		return 0, err
	}

	if _, err := db.ExecContext(ctx, createVersionsTable); err != nil {
		return 0, fmt.Errorf("migrations: create schema_migrations: %w", err)
	}

	qb := sqlbuilder.New(driver.Dialect())
	applied, err := appliedVersions(ctx, db, qb)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, file := range files {
		version := strings.TrimSuffix(file, ".up.sql")
		if applied[version] {
			continue
		}

		body, err := migrationsFS.ReadFile(dir + "/" + file)
		if err != nil {
			return count, fmt.Errorf("migrations: read %s: %w", file, err)
		}

		if err := apply(ctx, db, qb, version, string(body)); err != nil {
			return count, fmt.Errorf("migrations: apply %s: %w", file, err)
		}

		if log != nil {
			log.Info("Migration applied: %s (%s)", version, driver)
		}
		count++
	}

	return count, nil
}

func upFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("migrations: read dir %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func appliedVersions(ctx context.Context, db *sql.DB, qb sqlbuilder.Builder) (map[string]bool, error) {
	query, args, err := qb.Select("version").From("schema_migrations").ToSql()
	if err != nil {
		return nil, fmt.Errorf("migrations: build select: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("migrations: list applied: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("migrations: scan version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, qb sqlbuilder.Builder, version, body string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return err
	}

	query, args, err := qb.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(version, time.Now().UTC().Format(time.RFC3339)).
		Suffix("ON CONFLICT (version) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}

// Versions возвращает примененные версии по порядку. Используется CLI командой migrate.
func Versions(ctx context.Context, db *sql.DB, driver database.Driver) ([]string, error) {
	qb := sqlbuilder.New(driver.Dialect())
	query, args, err := qb.Select("version").From("schema_migrations").OrderBy("version ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
