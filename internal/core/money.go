// Package core holds the domain model of the ledger: transactions, splits,
// amount parsing and the split sum invariant.
//
// Amounts are exact decimals everywhere. They are parsed from strings,
// persisted as strings and compared with decimal arithmetic; they never pass
// through a binary floating-point representation.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary amount as exported by bank aggregators.
//
// It accepts plain decimals with an optional sign, a leading currency symbol,
// thousands separators and the accounting convention of parentheses for
// negative values:
//
//	ParseAmount("-54.32")      -> -54.32
//	ParseAmount("$1,234.56")   -> 1234.56
//	ParseAmount("($54.32)")    -> -54.32
//
// Anything that does not parse as an exact decimal returns ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	negative := false
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		negative = true
		raw = raw[1 : len(raw)-1]
	}

	// Currency symbol and thousands separators carry no value.
	raw = strings.ReplaceAll(raw, "$", "")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSpace(raw)

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if negative {
		d = d.Neg()
	}
	return d, nil
}

// FormatAmount renders an amount with two decimal places for display and
// export columns. Round-tripping storage uses decimal.String instead.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
