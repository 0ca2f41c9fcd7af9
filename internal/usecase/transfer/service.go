package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/rfpereira/goalvault-backend/internal/domain"
	"github.com/rfpereira/goalvault-backend/internal/usecase/lifecycle"
)

// Input represents the input for a goal contribution
type Input struct {
	GoalID        uuid.UUID
	FromAccountID uuid.UUID
	Amount        decimal.Decimal
}

// Service executes fund transfers from a source account into a goal's
// accumulated progress as one atomic unit of work.
type Service struct {
	Tx domain.Transactor
}

// NewService creates a new transfer Service instance
func NewService(tx domain.Transactor) *Service {
	return &Service{Tx: tx}
}

// Transfer debits the source account, appends a history record, and raises
// the goal's progress, flipping the goal to completed when the target is
// reached. All four effects commit together or not at all.
//
// Logic:
//  1. Validate the amount (positive, at most two decimal places)
//  2. Lock and re-read the goal; it must be active
//  3. Lock and re-read the source account; it must be active, not goal-type,
//     and hold at least the requested amount
//  4. Debit the account, append the record, raise progress, recompute status
//
// The row locks taken in steps 2 and 3 serialize concurrent transfers against
// the same goal or account, so the final progress always equals the sum of
// committed amounts.
func (s *Service) Transfer(ctx context.Context, input Input) (*domain.Goal, error) {
	if !domain.ValidTransferAmount(input.Amount) {
		return nil, domain.ErrInvalidAmount
	}

	var updated *domain.Goal
	err := s.Tx.WithinTx(ctx, func(ctx context.Context, r domain.Repositories) error {
		goal, err := r.Goals.GetByIDForUpdate(ctx, input.GoalID)
		if err != nil {
			return err
		}

		if goal.Status != domain.GoalStatusActive {
			return domain.ErrGoalNotActive
		}

		account, err := r.Accounts.GetByIDForUpdate(ctx, input.FromAccountID)
		if err != nil {
			return err
		}

		if account.Status != domain.AccountStatusActive {
			return domain.ErrAccountNotActive
		}

		// No goal-to-goal transfers
		if account.AccountType == domain.AccountTypeGoal {
			return domain.ErrGoalAccountSource
		}

		if account.Balance.LessThan(input.Amount) {
			return domain.ErrInsufficientFunds
		}

		if err := r.Accounts.UpdateBalance(ctx, account.ID, account.Balance.Sub(input.Amount)); err != nil {
			return err
		}

		now := time.Now().UTC()
		record := domain.TransferRecord{
			ID:            uuid.New(),
			GoalID:        goal.ID,
			FromAccountID: account.ID,
			Amount:        input.Amount,
			TransferredAt: now,
		}

		goal.Progress = goal.Progress.Add(input.Amount)
		goal.History = append(goal.History, record)
		lifecycle.Recompute(goal)
		goal.UpdatedAt = now

		if err := r.Goals.AppendTransfer(ctx, goal, record); err != nil {
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
