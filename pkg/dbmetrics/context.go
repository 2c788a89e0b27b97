package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor общий интерфейс *sql.DB, *sql.Tx и их обёрток
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция, через которую выполняются запросы
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// TxBeginner источник транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext достает транзакцию из контекста
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return tx, ok && tx != nil
}

// IsInTransaction проверяет, выполняется ли код внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}

// SqlTxWrapper адаптирует *sql.Tx к TxExecutor
type SqlTxWrapper struct {
	Tx *sql.Tx
}

func (w *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return w.Tx.ExecContext(ctx, query, args...)
}

func (w *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return w.Tx.QueryContext(ctx, query, args...)
}

func (w *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return w.Tx.QueryRowContext(ctx, query, args...)
}

func (w *SqlTxWrapper) Commit() error {
	return w.Tx.Commit()
}

func (w *SqlTxWrapper) Rollback() error {
	return w.Tx.Rollback()
}
