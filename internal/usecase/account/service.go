package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/rfpereira/goalvault-backend/internal/domain"
)

// CreateInput represents the input for opening an account
type CreateInput struct {
	Name           string
	AccountType    domain.AccountType
	InitialBalance decimal.Decimal
}

// Service handles account ledger operations. Balances are only ever moved by
// the transfer engine; this service covers opening and reading accounts.
type Service struct {
	Accounts domain.AccountRepository
}

// NewService creates a new account Service instance
func NewService(accounts domain.AccountRepository) *Service {
	return &Service{Accounts: accounts}
}

// Create opens a new active account with the given starting balance
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Account, error) {
	now := time.Now().UTC()
	account := &domain.Account{
		ID:          uuid.New(),
		Name:        input.Name,
		AccountType: input.AccountType,
		Status:      domain.AccountStatusActive,
		Balance:     input.InitialBalance,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := s.Accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Get retrieves an account by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.Accounts.GetByID(ctx, id)
}

// List retrieves all accounts
func (s *Service) List(ctx context.Context) ([]*domain.Account, error) {
	return s.Accounts.List(ctx)
}
