package orm

import (
	"context"
	"database/sql"
)

// Querier is what query factories and the ownership operations run against.
// Both *DB and *Tx satisfy it, so reads and writes look the same inside and
// outside a transaction.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	dialect() Dialect
	valid() bool
}

// DialectOf returns the Dialect q was built with.
func DialectOf(q Querier) Dialect { return q.dialect() }

// Valid reports whether q is usable. A nil interface, a nil *DB or *Tx, and
// a handle not built by New or Begin all report false.
func Valid(q Querier) bool { return q != nil && q.valid() }

// DB is a store handle: a *sql.DB paired with the Dialect its SQL is
// rendered in, plus an optional statement Logger.
type DB struct {
	raw    *sql.DB
	d      Dialect
	logger Logger
}

// New wraps db. Every statement issued through the result uses d.
func New(db *sql.DB, d Dialect) *DB {
	return &DB{raw: db, d: d}
}

// Debug returns a copy of db that hands every statement to l before running
// it. db itself keeps logging as before.
func (db *DB) Debug(l Logger) *DB {
	cp := *db
	cp.logger = l
	return &cp
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	logStatement(ctx, db.logger, query, args)
	return db.raw.QueryContext(ctx, query, args...) //nolint:wrapcheck // thin wrapper
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	logStatement(ctx, db.logger, query, args)
	return db.raw.ExecContext(ctx, query, args...) //nolint:wrapcheck // thin wrapper
}

// Ping checks the store answers. Failures are *StorageError.
func (db *DB) Ping(ctx context.Context) error {
	if !db.valid() {
		return &StorageError{Op: "ping", Err: errInvalidHandle}
	}
	if err := db.raw.PingContext(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

// Begin opens a transaction that inherits the dialect and logger of db.
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	if !db.valid() {
		return nil, errInvalidHandle
	}
	raw, err := db.raw.BeginTx(ctx, nil)
	if err != nil {
		return nil, err //nolint:wrapcheck // thin wrapper
	}
	return &Tx{raw: raw, d: db.d, logger: db.logger}, nil
}

// Transaction runs fn inside one transaction. A nil return commits; an
// error or a panic rolls back, and the panic is re-raised afterwards.
func (db *DB) Transaction(ctx context.Context, fn func(tx *Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	committed = true
	return tx.Commit()
}

// Close releases the underlying pool.
func (db *DB) Close() error { return db.raw.Close() } //nolint:wrapcheck // thin wrapper

func (db *DB) dialect() Dialect { return db.d }
func (db *DB) valid() bool      { return db != nil && db.raw != nil && db.d != nil }

// Tx is a transaction-scoped Querier obtained from DB.Begin or DB.Transaction.
type Tx struct {
	raw    *sql.Tx
	d      Dialect
	logger Logger
}

func (tx *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	logStatement(ctx, tx.logger, query, args)
	return tx.raw.QueryContext(ctx, query, args...) //nolint:wrapcheck // thin wrapper
}

func (tx *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	logStatement(ctx, tx.logger, query, args)
	return tx.raw.ExecContext(ctx, query, args...) //nolint:wrapcheck // thin wrapper
}

func (tx *Tx) Commit() error   { return tx.raw.Commit() }   //nolint:wrapcheck // thin wrapper
func (tx *Tx) Rollback() error { return tx.raw.Rollback() } //nolint:wrapcheck // thin wrapper

func (tx *Tx) dialect() Dialect { return tx.d }
func (tx *Tx) valid() bool      { return tx != nil && tx.raw != nil && tx.d != nil }

func logStatement(ctx context.Context, l Logger, query string, args []any) {
	if l != nil {
		l.Log(ctx, query, args...)
	}
}
