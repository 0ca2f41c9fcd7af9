package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the type of account in the system
type AccountType string

const (
	AccountTypeRegular AccountType = "regular"
	AccountTypeSavings AccountType = "savings"
	AccountTypeGoal    AccountType = "goal"
)

// AccountStatus represents the lifecycle state of an account
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusArchived AccountStatus = "archived"
)

// Account represents an account entity in the domain layer.
// The balance is the BOOK VALUE of the account (cash in/out); overdraft
// protection is not enforced here, but the transfer engine rejects any
// transfer exceeding the current balance.
type Account struct {
	ID          uuid.UUID
	Name        string
	AccountType AccountType
	Status      AccountStatus
	Balance     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.Name == "" {
		return ErrEmptyName
	}

	switch a.AccountType {
	case AccountTypeRegular, AccountTypeSavings, AccountTypeGoal:
	default:
		return ErrInvalidAccountType
	}

	switch a.Status {
	case AccountStatusActive, AccountStatusArchived:
	default:
		return ErrInvalidAccountStatus
	}

	if a.Balance.IsNegative() {
		return ErrNegativeBalance
	}

	return nil
}
