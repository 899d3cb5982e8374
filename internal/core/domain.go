package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date form used for identity keys and storage.
const DateLayout = "2006-01-02"

// CategoryUncategorized is the implicit category attributed to transactions
// that have no splits.
const CategoryUncategorized = "Uncategorized"

// identityNamespace seeds the deterministic transaction identity keys.
// Changing it would break duplicate detection against existing databases.
var identityNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("ledger.transaction"))

type (
	// Transaction is one imported financial movement. Date and Amount are
	// fixed at import time; categorization happens through Splits.
	Transaction struct {
		ID          string
		Date        time.Time
		Description string
		Amount      decimal.Decimal // signed, negative = outflow
		Account     string
		Institution string
		Hidden      bool
		Splits      []Split
	}

	// Split assigns one portion of a transaction's amount to a category.
	Split struct {
		Category string
		Amount   decimal.Decimal
		Memo     string
	}

	// Record is a raw import row as produced by the CSV importer, before
	// any validation or parsing.
	Record struct {
		Date        string
		Description string
		Amount      string
		Account     string
		Institution string
		Pending     bool
	}

	// QueryFilter narrows the transactions returned by Query. Zero values
	// mean "no constraint". Category matches against resolved splits, so
	// filtering for CategoryUncategorized finds unsplit transactions too.
	QueryFilter struct {
		From              time.Time
		To                time.Time
		Account           string
		Category          string
		UncategorizedOnly bool
		IncludeHidden     bool
	}
)

// IdentityKey derives the stable identity of a transaction from the fields
// that make a bank export row unique. The same row imported twice yields the
// same key, which is what makes Import idempotent.
func IdentityKey(date time.Time, description string, amount decimal.Decimal, account string) string {
	seed := strings.Join([]string{
		date.Format(DateLayout),
		description,
		amount.String(),
		account,
	}, "|")
	return uuid.NewSHA1(identityNamespace, []byte(seed)).String()
}

// ParseDate parses a date in the canonical layout, falling back to the
// US-style layout common in aggregator exports.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Normalize validates a raw record and converts it into a Transaction with
// its identity key computed. The returned transaction has no splits.
func (r Record) Normalize() (Transaction, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return Transaction{}, err
	}

	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return Transaction{}, err
	}

	description := strings.TrimSpace(r.Description)
	if description == "" {
		return Transaction{}, ErrEmptyDescription
	}

	account := strings.TrimSpace(r.Account)
	if account == "" {
		return Transaction{}, ErrEmptyAccount
	}

	return Transaction{
		ID:          IdentityKey(date, description, amount, account),
		Date:        date,
		Description: description,
		Amount:      amount,
		Account:     account,
		Institution: strings.TrimSpace(r.Institution),
	}, nil
}

// ResolvedSplits returns the transaction's split set, synthesizing the
// implicit single Uncategorized split when none exist. The result always
// sums to the transaction amount.
func (t Transaction) ResolvedSplits() []Split {
	if len(t.Splits) > 0 {
		return t.Splits
	}
	return []Split{{Category: CategoryUncategorized, Amount: t.Amount}}
}

// ValidateSplits checks a replacement split set against the transaction
// amount it must cover. An empty set is valid and means "clear all splits":
// the transaction reverts to uncategorized. Otherwise every category label
// must be non-empty, no split amount may be zero, and the amounts must sum
// to the transaction amount exactly, to the last decimal digit.
func ValidateSplits(amount decimal.Decimal, splits []Split) error {
	if len(splits) == 0 {
		return nil
	}

	sum := decimal.Zero
	for i, sp := range splits {
		if strings.TrimSpace(sp.Category) == "" {
			return fmt.Errorf("split %d: %w", i+1, ErrEmptyCategory)
		}
		if sp.Amount.IsZero() {
			return fmt.Errorf("split %d: %w", i+1, ErrZeroSplitAmount)
		}
		sum = sum.Add(sp.Amount)
	}

	if !sum.Equal(amount) {
		return &SplitSumError{Expected: amount, Actual: sum}
	}
	return nil
}
