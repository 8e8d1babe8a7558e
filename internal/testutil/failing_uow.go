package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/vocuz/vocuz/internal/db"
)

// FailOnNthExecUoW runs work in a real transaction but makes write number
// FailOn (1-based) return Err. Reads are not counted. Signup uses it to prove
// that a failed token insert leaves no orphaned user row.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &faultyTx{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type faultyTx struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
