package db

import (
	"context"
	"database/sql"
)

// Handle is the database surface the repositories depend on. Both *sql.DB and
// the circuit-breaker wrapper in internal/resilience/circuitbreaker satisfy
// it, so protection can be added at wiring time without touching repository
// code.
type Handle interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
