package seeder

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/rfpereira/goalvault-backend/internal/domain"
)

// DefaultAccountID is the fixed ID of the seeded default account, stable
// across restarts so clients can rely on it.
var DefaultAccountID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Seeder ensures the ledger holds the baseline records the system expects:
// at least one active funding account.
type Seeder struct {
	repo domain.AccountRepository
}

// NewSeeder creates a new Seeder instance
func NewSeeder(repo domain.AccountRepository) *Seeder {
	return &Seeder{repo: repo}
}

// Seed creates the default account if it does not exist yet.
// Safe to run on every boot.
func (s *Seeder) Seed(ctx context.Context) error {
	_, err := s.repo.GetByID(ctx, DefaultAccountID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	account := &domain.Account{
		ID:          DefaultAccountID,
		Name:        "Main Account",
		AccountType: domain.AccountTypeRegular,
		Status:      domain.AccountStatusActive,
		Balance:     decimal.Zero,
	}
	return s.repo.Create(ctx, account)
}
