package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation is the base error for malformed input. Every specific
	// validation sentinel wraps it, so callers can match the whole family
	// with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	ErrInvalidAmount    = fmt.Errorf("invalid amount: %w", ErrValidation)
	ErrInvalidDate      = fmt.Errorf("invalid date: %w", ErrValidation)
	ErrInvalidMonth     = fmt.Errorf("month must be between 1 and 12: %w", ErrValidation)
	ErrEmptyDescription = fmt.Errorf("empty description: %w", ErrValidation)
	ErrEmptyAccount     = fmt.Errorf("empty account: %w", ErrValidation)
	ErrEmptyCategory    = fmt.Errorf("empty category: %w", ErrValidation)
	ErrZeroSplitAmount  = fmt.Errorf("zero split amount: %w", ErrValidation)

	ErrNotFound = errors.New("transaction not found")
)

// SplitSumError reports a split set whose amounts do not add up to the
// owning transaction's amount. Both sides are carried for diagnostics.
type SplitSumError struct {
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func (e *SplitSumError) Error() string {
	return fmt.Sprintf("splits sum to %s, transaction amount is %s", e.Actual, e.Expected)
}
