package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus represents the lifecycle stage of a goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
	GoalStatusArchived  GoalStatus = "archived"
)

// ValidGoalStatus reports whether s is one of the known goal statuses
func ValidGoalStatus(s GoalStatus) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusCancelled, GoalStatusArchived:
		return true
	}
	return false
}

// Goal represents a savings goal entity in the domain layer.
// Progress is a denormalized aggregate: it equals the sum of History amounts
// at all times and is maintained transactionally alongside every append.
type Goal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	AccountID    uuid.UUID // Destination account holding the accumulated funds
	Name         string
	TargetAmount decimal.Decimal
	Deadline     time.Time
	Progress     decimal.Decimal
	Status       GoalStatus
	History      []TransferRecord
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TransferRecord represents a single contribution to a goal.
// Records are append-only: once written they are never edited or removed.
type TransferRecord struct {
	ID            uuid.UUID
	GoalID        uuid.UUID
	FromAccountID uuid.UUID
	Amount        decimal.Decimal
	TransferredAt time.Time
}

// Validate ensures the goal adheres to domain rules
// Returns an error if validation fails
func (g *Goal) Validate() error {
	if g.Name == "" {
		return ErrEmptyName
	}

	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTarget
	}

	if g.Deadline.IsZero() {
		return ErrInvalidDeadline
	}

	if g.Progress.IsNegative() {
		return ErrNegativeProgress
	}

	if !ValidGoalStatus(g.Status) {
		return ErrInvalidGoalStatus
	}

	return nil
}

// TargetReached reports whether the accumulated progress satisfies the target.
// Overshoot is retained as-is; only displayed percentages are ever clamped.
func (g *Goal) TargetReached() bool {
	return g.Progress.GreaterThanOrEqual(g.TargetAmount)
}

// ValidTransferAmount reports whether amount is a positive value with at most
// two decimal places of currency precision.
func ValidTransferAmount(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	return amount.Equal(amount.Truncate(2))
}
