package postgres

import (
	"context"
	"fmt"

	"github.com/rfpereira/goalvault-backend/internal/domain"
)

// transactor implements domain.Transactor on top of database/sql transactions
type transactor struct {
	db *DB
}

// NewTransactor creates a new transactor bound to the given database
func NewTransactor(db *DB) domain.Transactor {
	return &transactor{db: db}
}

// WithinTx begins a database transaction, hands fn repositories bound to it,
// and commits only if fn returns nil. Any error rolls everything back, so a
// partially-applied transfer is never observable.
func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, r domain.Repositories) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	repos := domain.Repositories{
		Goals:    &goalRepository{q: tx},
		Accounts: &accountRepository{q: tx},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
