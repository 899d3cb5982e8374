package cli

import (
	"fmt"
	"strings"

	"ledger/internal/core"
)

// ParseSplitSpec parses one command-line split argument of the form
//
//	Category=amount
//	Category=amount:memo
//
// e.g. "Groceries=-50.00" or "Tips=-4.32:cash tip". The amount accepts the
// same formats as imported amounts.
func ParseSplitSpec(spec string) (core.Split, error) {
	category, rest, found := strings.Cut(spec, "=")
	if !found {
		return core.Split{}, fmt.Errorf("%w: split %q must look like Category=amount[:memo]", core.ErrValidation, spec)
	}

	amountText, memo, _ := strings.Cut(rest, ":")
	amount, err := core.ParseAmount(amountText)
	if err != nil {
		return core.Split{}, fmt.Errorf("split %q: %w", spec, err)
	}

	return core.Split{
		Category: strings.TrimSpace(category),
		Amount:   amount,
		Memo:     strings.TrimSpace(memo),
	}, nil
}

// ParseSplitSpecs parses all split arguments in order.
func ParseSplitSpecs(specs []string) ([]core.Split, error) {
	splits := make([]core.Split, 0, len(specs))
	for _, spec := range specs {
		sp, err := ParseSplitSpec(spec)
		if err != nil {
			return nil, err
		}
		splits = append(splits, sp)
	}
	return splits, nil
}
