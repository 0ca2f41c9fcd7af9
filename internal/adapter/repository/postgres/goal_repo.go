package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/rfpereira/goalvault-backend/internal/domain"
)

// goalRepository implements domain.GoalRepository
type goalRepository struct {
	q querier
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *DB) domain.GoalRepository {
	return &goalRepository{q: db}
}

const goalColumns = "id, user_id, account_id, name, target_amount, deadline, progress, status, created_at, updated_at"

// Create creates a new goal
func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, account_id, name, target_amount, deadline, progress, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	`

	_, err := r.q.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.AccountID,
		goal.Name,
		goal.TargetAmount.String(),
		goal.Deadline,
		goal.Progress.String(),
		string(goal.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// GetByID retrieves a goal by its ID, including its transfer history
func (r *goalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`
	return r.getGoal(ctx, query, id)
}

// GetByIDForUpdate retrieves a goal and locks its row until the surrounding
// transaction ends
func (r *goalRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 FOR UPDATE`
	return r.getGoal(ctx, query, id)
}

func (r *goalRepository) getGoal(ctx context.Context, query string, id uuid.UUID) (*domain.Goal, error) {
	goal, err := r.scanGoal(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}

	history, err := r.loadHistory(ctx, goal.ID)
	if err != nil {
		return nil, err
	}
	goal.History = history

	return goal, nil
}

// Update persists the goal's editable fields
func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET name = $2, target_amount = $3, deadline = $4, status = $5, updated_at = now()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query,
		goal.ID,
		goal.Name,
		goal.TargetAmount.String(),
		goal.Deadline,
		string(goal.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

// AppendTransfer writes the history record and the goal's updated progress
// and status. Runs against whatever querier this repository is bound to, so
// inside WithinTx both statements share the transfer's transaction.
func (r *goalRepository) AppendTransfer(ctx context.Context, goal *domain.Goal, record domain.TransferRecord) error {
	insertQuery := `
		INSERT INTO goal_transfers (id, goal_id, from_account_id, amount, transferred_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, insertQuery,
		record.ID,
		record.GoalID,
		record.FromAccountID,
		record.Amount.String(),
		record.TransferredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer record: %w", err)
	}

	updateQuery := `
		UPDATE goals SET progress = $2, status = $3, updated_at = now() WHERE id = $1
	`

	_, err = r.q.ExecContext(ctx, updateQuery,
		goal.ID,
		goal.Progress.String(),
		string(goal.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to update goal progress: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's goals, optionally filtered by status
func (r *goalRepository) ListByUser(ctx context.Context, userID uuid.UUID, statusFilter domain.GoalStatus) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1`
	args := []any{userID}
	if statusFilter != "" {
		query += ` AND status = $2`
		args = append(args, string(statusFilter))
	}
	query += ` ORDER BY created_at`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := r.scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}

	for _, goal := range goals {
		history, err := r.loadHistory(ctx, goal.ID)
		if err != nil {
			return nil, err
		}
		goal.History = history
	}

	return goals, nil
}

func (r *goalRepository) loadHistory(ctx context.Context, goalID uuid.UUID) ([]domain.TransferRecord, error) {
	query := `
		SELECT id, goal_id, from_account_id, amount, transferred_at
		FROM goal_transfers
		WHERE goal_id = $1
		ORDER BY transferred_at, id
	`

	rows, err := r.q.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer history: %w", err)
	}
	defer rows.Close()

	var history []domain.TransferRecord
	for rows.Next() {
		var record domain.TransferRecord
		var amountStr string

		err := rows.Scan(
			&record.ID,
			&record.GoalID,
			&record.FromAccountID,
			&amountStr,
			&record.TransferredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer record: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transfer amount: %w", err)
		}
		record.Amount = amount

		history = append(history, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfer history: %w", err)
	}

	return history, nil
}

func (r *goalRepository) scanGoal(row rowScanner) (*domain.Goal, error) {
	var goal domain.Goal
	var targetStr, progressStr, status string

	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.AccountID,
		&goal.Name,
		&targetStr,
		&goal.Deadline,
		&progressStr,
		&status,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}

	target, err := decimal.NewFromString(targetStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target_amount: %w", err)
	}
	progress, err := decimal.NewFromString(progressStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse progress: %w", err)
	}

	goal.TargetAmount = target
	goal.Progress = progress
	goal.Status = domain.GoalStatus(status)

	return &goal, nil
}
