package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validGoal() *Goal {
	return &Goal{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		AccountID:    uuid.New(),
		Name:         "Emergency Fund",
		TargetAmount: decimal.NewFromInt(1000),
		Deadline:     time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		Progress:     decimal.Zero,
		Status:       GoalStatusActive,
	}
}

func TestGoalValidate_Valid(t *testing.T) {
	goal := validGoal()
	assert.NoError(t, goal.Validate())
}

func TestGoalValidate_EmptyName(t *testing.T) {
	goal := validGoal()
	goal.Name = ""
	assert.ErrorIs(t, goal.Validate(), ErrEmptyName)
}

func TestGoalValidate_NonPositiveTarget(t *testing.T) {
	goal := validGoal()
	goal.TargetAmount = decimal.Zero
	assert.ErrorIs(t, goal.Validate(), ErrInvalidTarget)

	goal.TargetAmount = decimal.NewFromInt(-50)
	assert.ErrorIs(t, goal.Validate(), ErrInvalidTarget)
}

func TestGoalValidate_MissingDeadline(t *testing.T) {
	goal := validGoal()
	goal.Deadline = time.Time{}
	assert.ErrorIs(t, goal.Validate(), ErrInvalidDeadline)
}

func TestGoalValidate_NegativeProgress(t *testing.T) {
	goal := validGoal()
	goal.Progress = decimal.NewFromInt(-1)
	assert.ErrorIs(t, goal.Validate(), ErrNegativeProgress)
}

func TestGoalValidate_UnknownStatus(t *testing.T) {
	goal := validGoal()
	goal.Status = GoalStatus("paused")
	assert.ErrorIs(t, goal.Validate(), ErrInvalidGoalStatus)
}

func TestTargetReached(t *testing.T) {
	goal := validGoal()

	goal.Progress = decimal.NewFromInt(999)
	assert.False(t, goal.TargetReached())

	goal.Progress = decimal.NewFromInt(1000)
	assert.True(t, goal.TargetReached())

	// Overshoot is retained, not capped
	goal.Progress = decimal.NewFromInt(1250)
	assert.True(t, goal.TargetReached())
}

func TestValidTransferAmount(t *testing.T) {
	assert.True(t, ValidTransferAmount(decimal.NewFromInt(1)))
	assert.True(t, ValidTransferAmount(decimal.RequireFromString("0.01")))
	assert.True(t, ValidTransferAmount(decimal.RequireFromString("400.50")))

	assert.False(t, ValidTransferAmount(decimal.Zero))
	assert.False(t, ValidTransferAmount(decimal.NewFromInt(-10)))
	// More than two decimal places of currency precision
	assert.False(t, ValidTransferAmount(decimal.RequireFromString("0.001")))
	assert.False(t, ValidTransferAmount(decimal.RequireFromString("10.999")))
}

func TestValidGoalStatus(t *testing.T) {
	assert.True(t, ValidGoalStatus(GoalStatusActive))
	assert.True(t, ValidGoalStatus(GoalStatusCompleted))
	assert.True(t, ValidGoalStatus(GoalStatusCancelled))
	assert.True(t, ValidGoalStatus(GoalStatusArchived))
	assert.False(t, ValidGoalStatus(GoalStatus("deleted")))
}
