package domain

import "errors"

// Validation errors: malformed input, rejected before any mutation
var (
	ErrEmptyName            = errors.New("name cannot be empty")
	ErrInvalidTarget        = errors.New("target amount must be positive")
	ErrInvalidDeadline      = errors.New("deadline is required")
	ErrNegativeProgress     = errors.New("progress cannot be negative")
	ErrNegativeBalance      = errors.New("balance cannot be negative")
	ErrInvalidGoalStatus    = errors.New("invalid goal status")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidAccountStatus = errors.New("invalid account status")
	ErrInvalidAmount        = errors.New("amount must be positive with at most two decimal places")
	ErrMissingUser          = errors.New("user id is required")
)

// Lookup errors
var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrAccountNotFound = errors.New("account not found")
)

// State errors: the operation is not permitted given the current status
var (
	ErrGoalNotActive     = errors.New("goal is not active")
	ErrGoalNotArchived   = errors.New("goal is not archived")
	ErrAccountNotActive  = errors.New("source account is not active")
	ErrGoalAccountSource = errors.New("transfers from goal accounts are not allowed")
)

// Business-rule rejection, not a system fault
var ErrInsufficientFunds = errors.New("insufficient funds in source account")

// IsValidation reports whether err is a malformed-input rejection
func IsValidation(err error) bool {
	for _, e := range []error{
		ErrEmptyName, ErrInvalidTarget, ErrInvalidDeadline, ErrNegativeProgress,
		ErrNegativeBalance, ErrInvalidGoalStatus, ErrInvalidAccountType,
		ErrInvalidAccountStatus, ErrInvalidAmount, ErrMissingUser,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a failed id lookup
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGoalNotFound) || errors.Is(err, ErrAccountNotFound)
}

// IsInvalidState reports whether err is a status-precondition failure
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrGoalNotActive) ||
		errors.Is(err, ErrGoalNotArchived) ||
		errors.Is(err, ErrAccountNotActive) ||
		errors.Is(err, ErrGoalAccountSource)
}
