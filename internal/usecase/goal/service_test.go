package goal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rfpereira/goalvault-backend/internal/domain"
)

// MockGoalRepository is a mock implementation of GoalRepository for testing
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) AppendTransfer(ctx context.Context, goal *domain.Goal, record domain.TransferRecord) error {
	args := m.Called(ctx, goal, record)
	return args.Error(0)
}

func (m *MockGoalRepository) ListByUser(ctx context.Context, userID uuid.UUID, statusFilter domain.GoalStatus) ([]*domain.Goal, error) {
	args := m.Called(ctx, userID, statusFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

// stubTransactor runs the callback directly against the given repositories
type stubTransactor struct {
	repos domain.Repositories
}

func (s *stubTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, r domain.Repositories) error) error {
	return fn(ctx, s.repos)
}

func newTestService(goals *MockGoalRepository, accounts *MockAccountRepository) *Service {
	tx := &stubTransactor{repos: domain.Repositories{Goals: goals, Accounts: accounts}}
	return NewService(goals, accounts, tx)
}

func validCreateInput(accountID uuid.UUID) CreateInput {
	return CreateInput{
		UserID:       uuid.New(),
		Name:         "Emergency Fund",
		AccountID:    accountID,
		TargetAmount: decimal.NewFromInt(5000),
		Deadline:     time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	accountID := uuid.New()
	mockAccounts.On("GetByID", ctx, accountID).Return(&domain.Account{ID: accountID}, nil)
	mockGoals.On("Create", ctx, mock.MatchedBy(func(g *domain.Goal) bool {
		return g.Name == "Emergency Fund" &&
			g.Progress.IsZero() &&
			g.Status == domain.GoalStatusActive &&
			len(g.History) == 0
	})).Return(nil)

	goal, err := service.Create(ctx, validCreateInput(accountID))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, goal.ID)
	assert.Equal(t, domain.GoalStatusActive, goal.Status)
	assert.True(t, goal.Progress.IsZero())
	mockGoals.AssertExpectations(t)
}

func TestCreate_MissingUser(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	input := validCreateInput(uuid.New())
	input.UserID = uuid.Nil

	_, err := service.Create(ctx, input)

	assert.ErrorIs(t, err, domain.ErrMissingUser)
	mockGoals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_AccountNotFound(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	input := validCreateInput(uuid.New())
	mockAccounts.On("GetByID", ctx, input.AccountID).Return(nil, domain.ErrAccountNotFound)

	_, err := service.Create(ctx, input)

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	mockGoals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_ValidationFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateInput)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(in *CreateInput) { in.Name = "" },
			wantErr: domain.ErrEmptyName,
		},
		{
			name:    "zero target",
			mutate:  func(in *CreateInput) { in.TargetAmount = decimal.Zero },
			wantErr: domain.ErrInvalidTarget,
		},
		{
			name:    "negative target",
			mutate:  func(in *CreateInput) { in.TargetAmount = decimal.NewFromInt(-100) },
			wantErr: domain.ErrInvalidTarget,
		},
		{
			name:    "zero deadline",
			mutate:  func(in *CreateInput) { in.Deadline = time.Time{} },
			wantErr: domain.ErrInvalidDeadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGoals := new(MockGoalRepository)
			mockAccounts := new(MockAccountRepository)
			service := newTestService(mockGoals, mockAccounts)

			input := validCreateInput(uuid.New())
			tt.mutate(&input)
			mockAccounts.On("GetByID", ctx, input.AccountID).Return(&domain.Account{ID: input.AccountID}, nil)

			_, err := service.Create(ctx, input)

			assert.ErrorIs(t, err, tt.wantErr)
			mockGoals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	goal := &domain.Goal{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		AccountID:    uuid.New(),
		Name:         "Old Name",
		TargetAmount: decimal.NewFromInt(1000),
		Deadline:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Progress:     decimal.NewFromInt(100),
		Status:       domain.GoalStatusActive,
	}

	mockGoals.On("GetByIDForUpdate", ctx, goal.ID).Return(goal, nil)
	mockGoals.On("Update", ctx, mock.Anything).Return(nil)

	newName := "New Name"
	updated, err := service.Update(ctx, goal.ID, UpdateInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	// Untouched fields survive the patch
	assert.True(t, updated.TargetAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, updated.Progress.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.GoalStatusActive, updated.Status)
}

func TestUpdate_LoweringTargetCompletesGoal(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	goal := &domain.Goal{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		AccountID:    uuid.New(),
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(1000),
		Deadline:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Progress:     decimal.NewFromInt(600),
		Status:       domain.GoalStatusActive,
	}

	mockGoals.On("GetByIDForUpdate", ctx, goal.ID).Return(goal, nil)
	mockGoals.On("Update", ctx, mock.MatchedBy(func(g *domain.Goal) bool {
		return g.Status == domain.GoalStatusCompleted
	})).Return(nil)

	newTarget := decimal.NewFromInt(500)
	updated, err := service.Update(ctx, goal.ID, UpdateInput{TargetAmount: &newTarget})

	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusCompleted, updated.Status)
	assert.True(t, updated.Progress.Equal(decimal.NewFromInt(600)))
	mockGoals.AssertExpectations(t)
}

func TestUpdate_RaisingTargetDoesNotRevertCompleted(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	goal := &domain.Goal{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		AccountID:    uuid.New(),
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(500),
		Deadline:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Progress:     decimal.NewFromInt(600),
		Status:       domain.GoalStatusCompleted,
	}

	mockGoals.On("GetByIDForUpdate", ctx, goal.ID).Return(goal, nil)
	mockGoals.On("Update", ctx, mock.MatchedBy(func(g *domain.Goal) bool {
		return g.Status == domain.GoalStatusCompleted
	})).Return(nil)

	newTarget := decimal.NewFromInt(2000)
	updated, err := service.Update(ctx, goal.ID, UpdateInput{TargetAmount: &newTarget})

	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusCompleted, updated.Status)
}

func TestUpdate_InvalidTargetRejected(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	goal := &domain.Goal{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		AccountID:    uuid.New(),
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(1000),
		Deadline:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:       domain.GoalStatusActive,
	}

	mockGoals.On("GetByIDForUpdate", ctx, goal.ID).Return(goal, nil)

	newTarget := decimal.NewFromInt(-5)
	_, err := service.Update(ctx, goal.ID, UpdateInput{TargetAmount: &newTarget})

	assert.ErrorIs(t, err, domain.ErrInvalidTarget)
	mockGoals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	goalID := uuid.New()
	mockGoals.On("GetByIDForUpdate", ctx, goalID).Return(nil, domain.ErrGoalNotFound)

	newName := "anything"
	_, err := service.Update(ctx, goalID, UpdateInput{Name: &newName})

	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestList_Success(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	userID := uuid.New()
	goals := []*domain.Goal{
		{ID: uuid.New(), UserID: userID, Status: domain.GoalStatusActive},
		{ID: uuid.New(), UserID: userID, Status: domain.GoalStatusCompleted},
	}
	mockGoals.On("ListByUser", ctx, userID, domain.GoalStatus("")).Return(goals, nil)

	result, err := service.List(ctx, userID, "")

	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestList_StatusFilter(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	userID := uuid.New()
	mockGoals.On("ListByUser", ctx, userID, domain.GoalStatusArchived).Return([]*domain.Goal{}, nil)

	result, err := service.List(ctx, userID, domain.GoalStatusArchived)

	require.NoError(t, err)
	assert.Empty(t, result)
	mockGoals.AssertExpectations(t)
}

func TestList_InvalidFilterRejected(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	_, err := service.List(ctx, uuid.New(), domain.GoalStatus("paused"))

	assert.ErrorIs(t, err, domain.ErrInvalidGoalStatus)
	mockGoals.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_MissingUser(t *testing.T) {
	ctx := context.Background()
	mockGoals := new(MockGoalRepository)
	mockAccounts := new(MockAccountRepository)
	service := newTestService(mockGoals, mockAccounts)

	_, err := service.List(ctx, uuid.Nil, "")

	assert.ErrorIs(t, err, domain.ErrMissingUser)
}
