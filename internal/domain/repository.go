package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	// Create creates a new goal
	Create(ctx context.Context, goal *Goal) error

	// GetByID retrieves a goal by its ID, including its transfer history
	GetByID(ctx context.Context, id uuid.UUID) (*Goal, error)

	// GetByIDForUpdate retrieves a goal and locks its row for the duration
	// of the surrounding transaction. Must be called inside WithinTx.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Goal, error)

	// Update persists the goal's editable fields (name, target amount,
	// deadline, status). Progress and history are only written through
	// AppendTransfer.
	Update(ctx context.Context, goal *Goal) error

	// AppendTransfer writes a history record and the goal's updated
	// progress/status as one unit. Callers run it inside WithinTx when the
	// account debit must commit atomically with it.
	AppendTransfer(ctx context.Context, goal *Goal, record TransferRecord) error

	// ListByUser retrieves a user's goals, optionally filtered by status.
	// If statusFilter is empty, returns all of the user's goals.
	ListByUser(ctx context.Context, userID uuid.UUID, statusFilter GoalStatus) ([]*Goal, error)
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetByIDForUpdate retrieves an account and locks its row for the
	// duration of the surrounding transaction. Must be called inside WithinTx.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)

	// UpdateBalance sets the account's balance
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	// List retrieves all accounts
	List(ctx context.Context) ([]*Account, error)
}

// Repositories bundles the repository set bound to a single transaction scope
type Repositories struct {
	Goals    GoalRepository
	Accounts AccountRepository
}

// Transactor runs a function inside a single storage transaction.
// Either every write performed through the supplied repositories commits, or
// none do. Row locks taken via the ForUpdate reads serialize concurrent
// read-modify-write cycles against the same record.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
}
