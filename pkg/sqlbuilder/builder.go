package sqlbuilder

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SmartScheduler/pkg/dbmetrics"
)

// Dialect SQL-диалект хранилища
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Builder squirrel-билдер с плейсхолдерами нужного диалекта
type Builder struct {
	sb      squirrel.StatementBuilderType
	dialect Dialect
}

// New создает билдер для диалекта. Postgres использует $1, SQLite - ?.
func New(dialect Dialect) Builder {
	placeholder := squirrel.PlaceholderFormat(squirrel.Question)
	if dialect == Postgres {
		placeholder = squirrel.Dollar
	}
	return Builder{
		sb:      squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		dialect: dialect,
	}
}

func (b Builder) Dialect() Dialect {
	return b.dialect
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}

// LockForUpdate добавляет FOR UPDATE, если запрос выполняется в транзакции.
// SQLite блокирует базу целиком и FOR UPDATE не поддерживает.
func (b Builder) LockForUpdate(ctx context.Context, sb squirrel.SelectBuilder) squirrel.SelectBuilder {
	if b.dialect == Postgres && dbmetrics.IsInTransaction(ctx) {
		return sb.Suffix("FOR UPDATE")
	}
	return sb
}
