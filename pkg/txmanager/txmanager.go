package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SmartScheduler/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается, если не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, если не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// Option настройка менеджера транзакций
type Option func(*TransactionManager)

// WithoutIsolationLevels отключает передачу уровня изоляции драйверу.
// Нужно для SQLite: запись там и так сериализуется блокировкой базы.
func WithoutIsolationLevels() Option {
	return func(m *TransactionManager) {
		m.isolationLevels = false
	}
}

// TransactionManager выполняет функции в транзакции, переданной через контекст
type TransactionManager struct {
	db              dbmetrics.TxBeginner
	isolationLevels bool
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db dbmetrics.TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{db: db, isolationLevels: true}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// Используется для связки "проверка конфликтов -> запись".
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	if !m.isolationLevels {
		opts = nil
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}
