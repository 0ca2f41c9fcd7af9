package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rfpereira/goalvault-backend/internal/domain"
)

// Service governs goal status transitions outside of transfer-triggered
// auto-completion: archiving, restoring, and recomputation after target edits.
type Service struct {
	Tx domain.Transactor
}

// NewService creates a new lifecycle Service instance
func NewService(tx domain.Transactor) *Service {
	return &Service{Tx: tx}
}

// Recompute flips an active goal to completed once its progress satisfies the
// target. It never reverts a completed goal and leaves every other status
// untouched. Returns true when the status changed.
func Recompute(goal *domain.Goal) bool {
	if goal.Status == domain.GoalStatusActive && goal.TargetReached() {
		goal.Status = domain.GoalStatusCompleted
		return true
	}
	return false
}

// Archive sets the goal's status to archived. Archiving a goal that is
// already archived is a no-op success.
func (s *Service) Archive(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error) {
	var archived *domain.Goal
	err := s.Tx.WithinTx(ctx, func(ctx context.Context, r domain.Repositories) error {
		goal, err := r.Goals.GetByIDForUpdate(ctx, goalID)
		if err != nil {
			return err
		}

		if goal.Status == domain.GoalStatusArchived {
			archived = goal
			return nil
		}

		goal.Status = domain.GoalStatusArchived
		goal.UpdatedAt = time.Now().UTC()
		if err := r.Goals.Update(ctx, goal); err != nil {
			return err
		}

		archived = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return archived, nil
}

// Restore brings an archived goal back into circulation. The restored status
// is recomputed from progress and target: a goal whose progress already
// satisfies its target comes back completed, everything else comes back
// active. Restoring a non-archived goal is rejected.
func (s *Service) Restore(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error) {
	var restored *domain.Goal
	err := s.Tx.WithinTx(ctx, func(ctx context.Context, r domain.Repositories) error {
		goal, err := r.Goals.GetByIDForUpdate(ctx, goalID)
		if err != nil {
			return err
		}

		if goal.Status != domain.GoalStatusArchived {
			return domain.ErrGoalNotArchived
		}

		goal.Status = domain.GoalStatusActive
		Recompute(goal)
		goal.UpdatedAt = time.Now().UTC()
		if err := r.Goals.Update(ctx, goal); err != nil {
			return err
		}

		restored = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}
