package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/cinder/internal/db"
)

// FailingInsertUoW wraps a real unit of work and fails the first INSERT
// into Table with Err. Reads and other writes run against the real
// transaction, so everything written before the failure is rolled back.
type FailingInsertUoW struct {
	Inner db.UnitOfWork
	Table string
	Err   error
}

func (u *FailingInsertUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &insertTrap{DBTX: tx, prefix: "INSERT INTO " + u.Table + " ", err: u.Err})
	})
}

type insertTrap struct {
	db.DBTX
	prefix string
	err    error
}

func (t *insertTrap) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.HasPrefix(strings.Join(strings.Fields(query), " ")+" ", t.prefix) {
		return nil, t.err
	}
	return t.DBTX.ExecContext(ctx, query, args...)
}
