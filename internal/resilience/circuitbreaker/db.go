package circuitbreaker

import (
	"context"
	"database/sql"

	"github.com/sony/gobreaker"
)

// DB wraps a *sql.DB behind a circuit breaker. It satisfies db.Handle, so
// the repositories take it in place of the raw connection and protection is
// decided at wiring time.
type DB struct {
	cb  *CircuitBreaker
	sdb *sql.DB
}

// NewDB wraps the connection with the default database breaker.
func NewDB(sdb *sql.DB) *DB {
	return &DB{cb: New(DBConfig()), sdb: sdb}
}

// NewDBWithConfig wraps the connection with a custom breaker configuration.
func NewDBWithConfig(sdb *sql.DB, cfg Config) *DB {
	return &DB{cb: New(cfg), sdb: sdb}
}

// QueryContext executes a query through the breaker. When the circuit is
// open it returns gobreaker.ErrOpenState without hitting the database.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	result, err := d.cb.Execute(func() (any, error) {
		return d.sdb.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// QueryRowContext passes through unprotected: sql.Row defers its error to
// Scan, so the breaker cannot observe the outcome here.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.sdb.QueryRowContext(ctx, query, args...)
}

// ExecContext executes a statement through the breaker.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := d.cb.Execute(func() (any, error) {
		return d.sdb.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}

// BeginTx opens a transaction through the breaker. The statements inside the
// transaction run on the returned *sql.Tx and are not individually counted;
// a database that cannot even open transactions is what trips the circuit.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	result, err := d.cb.Execute(func() (any, error) {
		return d.sdb.BeginTx(ctx, opts)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Tx), nil
}

// State returns the current breaker state.
func (d *DB) State() gobreaker.State {
	return d.cb.State()
}

// IsOpen reports whether the breaker is open.
func (d *DB) IsOpen() bool {
	return d.cb.IsOpen()
}

// Unwrap returns the underlying connection for operations that must bypass
// the breaker, such as health checks that need the real error.
func (d *DB) Unwrap() *sql.DB {
	return d.sdb
}
