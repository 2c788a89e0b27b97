package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/pkg/metrics"
)

// DefaultPoolStatsInterval период сбора статистики connection pool
const DefaultPoolStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, которая замеряет длительность запросов.
// С nil-метриками работает как обычный *sql.DB.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает соединение без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула
// до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectPoolStats(DefaultPoolStatsInterval, stopCh)
	}
	return wrapped
}

// Unwrap возвращает исходный *sql.DB
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", start, err)
	return result, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start, row.Err())
	return row
}

// BeginTx начинает транзакцию, запросы которой тоже замеряются
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.observe("begin", start, err)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) observe(operation string, start time.Time, err error) {
	observe(d.metrics, operation, start, err)
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.recordPoolStats()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			d.recordPoolStats()
		}
	}
}

func (d *DB) recordPoolStats() {
	stats := d.db.Stats()
	d.metrics.DBConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	d.metrics.DBConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	d.metrics.DBConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	d.metrics.DBWaitCount.WithLabelValues().Set(float64(stats.WaitCount))
}

// Tx транзакция с замером запросов
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	observe(t.metrics, "tx_exec", start, err)
	return result, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	observe(t.metrics, "tx_query", start, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	observe(t.metrics, "tx_query_row", start, row.Err())
	return row
}

func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	observe(t.metrics, "commit", start, err)
	return err
}

func (t *Tx) Rollback() error {
	start := time.Now()
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return err
	}
	observe(t.metrics, "rollback", start, err)
	return err
}

func observe(m *metrics.Metrics, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}
