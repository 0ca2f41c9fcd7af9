package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/rfpereira/goalvault-backend/internal/domain"
	"github.com/rfpereira/goalvault-backend/internal/usecase/lifecycle"
)

// CreateInput represents the input for creating a goal
type CreateInput struct {
	UserID       uuid.UUID
	Name         string
	AccountID    uuid.UUID
	TargetAmount decimal.Decimal
	Deadline     time.Time
}

// UpdateInput represents a partial edit of a goal's fields.
// Nil fields are left unchanged.
type UpdateInput struct {
	Name         *string
	TargetAmount *decimal.Decimal
	Deadline     *time.Time
}

// Service handles goal record operations: creation, field edits, and listing
type Service struct {
	Goals    domain.GoalRepository
	Accounts domain.AccountRepository
	Tx       domain.Transactor
}

// NewService creates a new goal Service instance
func NewService(goals domain.GoalRepository, accounts domain.AccountRepository, tx domain.Transactor) *Service {
	return &Service{
		Goals:    goals,
		Accounts: accounts,
		Tx:       tx,
	}
}

// Create creates a new goal with zero progress, empty history, and active
// status. The destination account must exist.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Goal, error) {
	if input.UserID == uuid.Nil {
		return nil, domain.ErrMissingUser
	}

	if _, err := s.Accounts.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	goal := &domain.Goal{
		ID:           uuid.New(),
		UserID:       input.UserID,
		AccountID:    input.AccountID,
		Name:         input.Name,
		TargetAmount: input.TargetAmount,
		Deadline:     input.Deadline,
		Progress:     decimal.Zero,
		Status:       domain.GoalStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	if err := s.Goals.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// Get retrieves a goal by ID, including its transfer history
func (s *Service) Get(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error) {
	return s.Goals.GetByID(ctx, goalID)
}

// Update applies a partial field edit. Edits never touch progress or history,
// but lowering the target to or below the current progress retroactively
// completes the goal, so the edit runs transactionally against a locked row.
func (s *Service) Update(ctx context.Context, goalID uuid.UUID, input UpdateInput) (*domain.Goal, error) {
	var updated *domain.Goal
	err := s.Tx.WithinTx(ctx, func(ctx context.Context, r domain.Repositories) error {
		goal, err := r.Goals.GetByIDForUpdate(ctx, goalID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			goal.Name = *input.Name
		}
		if input.Deadline != nil {
			goal.Deadline = *input.Deadline
		}
		if input.TargetAmount != nil {
			goal.TargetAmount = *input.TargetAmount
			lifecycle.Recompute(goal)
		}

		if err := goal.Validate(); err != nil {
			return err
		}

		goal.UpdatedAt = time.Now().UTC()
		if err := r.Goals.Update(ctx, goal); err != nil {
			return err
		}

		updated = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List retrieves a user's goals, optionally filtered by status
func (s *Service) List(ctx context.Context, userID uuid.UUID, statusFilter domain.GoalStatus) ([]*domain.Goal, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrMissingUser
	}

	if statusFilter != "" && !domain.ValidGoalStatus(statusFilter) {
		return nil, domain.ErrInvalidGoalStatus
	}

	return s.Goals.ListByUser(ctx, userID, statusFilter)
}
