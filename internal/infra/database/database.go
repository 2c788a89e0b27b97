package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-SmartScheduler/pkg/sqlbuilder"
)

// Driver тип хранилища
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// sqlitePragmas WAL, внешние ключи, ожидание блокировки 5с.
// _txlock=immediate берет блокировку на запись в начале транзакции,
// _time_format=sqlite пишет время в формате, который драйвер читает обратно в time.Time.
const sqlitePragmas = "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_txlock=immediate&_time_format=sqlite"

var ErrUnknownDriver = errors.New("database: unknown driver")

// ParseDriver разбирает имя драйвера; пустое имя определяется по DSN
func ParseDriver(name, dsn string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "":
		return DetectDriver(dsn), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
}

// DetectDriver определяет драйвер по строке подключения.
// Пустая строка означает локальную SQLite базу.
func DetectDriver(dsn string) Driver {
	if dsn == "" {
		return DriverSQLite
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return DriverPostgres
	}
	if strings.HasPrefix(dsn, "sqlite://") ||
		strings.HasPrefix(dsn, "file:") ||
		strings.HasSuffix(dsn, ".db") ||
		strings.HasSuffix(dsn, ".sqlite") ||
		strings.HasSuffix(dsn, ".sqlite3") {
		return DriverSQLite
	}
	return DriverPostgres
}

// Dialect SQL-диалект драйвера
func (d Driver) Dialect() sqlbuilder.Dialect {
	if d == DriverPostgres {
		return sqlbuilder.Postgres
	}
	return sqlbuilder.SQLite
}

func (d Driver) String() string {
	return string(d)
}

// Options параметры подключения
type Options struct {
	Driver          Driver
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open открывает соединение, настраивает пул и проверяет его ping-ом
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch opts.Driver {
	case DriverPostgres:
		db, err = sql.Open("postgres", opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("database: open postgres: %w", err)
		}
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxIdleConns)
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	case DriverSQLite:
		dsn, err := sqliteDSN(opts.DSN)
		if err != nil {
			return nil, err
		}
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("database: open sqlite: %w", err)
		}
		// SQLite допускает одного писателя
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", opts.Driver, err)
	}

	return db, nil
}

func sqliteDSN(path string) (string, error) {
	path = strings.TrimPrefix(path, "sqlite://")
	if path == "" {
		return "", fmt.Errorf("database: empty sqlite path")
	}

	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		file := path
		if i := strings.Index(file, "?"); i >= 0 {
			file = file[:i]
		}
		if dir := filepath.Dir(file); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("database: create sqlite dir: %w", err)
			}
		}
	}

	if strings.Contains(path, "?") {
		return path + "&" + sqlitePragmas, nil
	}
	return path + "?" + sqlitePragmas, nil
}
