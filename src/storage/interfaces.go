package storage

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// Execer is the write half of the database seam. Every insert in this
// package (CreateItem, AppendMessage, ...) takes it instead of *sql.DB so
// callers can pass a transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// ExecQuerier is accepted by operations that both read and write, like
// FindOrCreateThread. Reads go through sqlscan.
type ExecQuerier interface {
	Execer
	sqlscan.Querier
}
