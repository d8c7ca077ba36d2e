package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dErrors "unitbridge/pkg/domain-errors"
	txcontext "unitbridge/pkg/platform/tx"
)

// TxRunner runs fn inside a READ COMMITTED transaction and exposes the
// transaction to stores through the context.
type TxRunner struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTxRunner returns a runner over db. A zero timeout uses
// txcontext.DefaultTimeout.
func NewTxRunner(db *sql.DB, timeout time.Duration) *TxRunner {
	if timeout <= 0 {
		timeout = txcontext.DefaultTimeout
	}
	return &TxRunner{db: db, timeout: timeout}
}

func (r *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return timeoutOr(ctx, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return timeoutOr(ctx, err)
	}
	if err := tx.Commit(); err != nil {
		return timeoutOr(ctx, fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// timeoutOr reclassifies err as a timeout when the transaction's deadline
// expired, unless it already carries a domain code.
func timeoutOr(ctx context.Context, err error) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction timed out")
	}
	return err
}
