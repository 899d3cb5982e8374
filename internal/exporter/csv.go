// Package exporter writes query and summary results as CSV.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"ledger/internal/core"
)

// WriteMonthSummary writes one row per category: year, month, category,
// amount. Amounts keep their canonical decimal form so the file can be
// re-parsed without loss.
func WriteMonthSummary(w io.Writer, summary core.MonthSummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"year", "month", "category", "amount"}); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	for _, ct := range summary.ByCategory {
		row := []string{
			strconv.Itoa(summary.Year),
			strconv.Itoa(summary.Month),
			ct.Category,
			ct.Amount.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush summary: %w", err)
	}
	return nil
}

// WriteTransactions writes one row per (transaction, resolved split), so
// unsplit transactions appear once under Uncategorized and split ones appear
// once per split. The split_amount column across a transaction's rows always
// sums to its amount column.
func WriteTransactions(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "date", "description", "account", "amount", "category", "split_amount", "memo"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write transactions header: %w", err)
	}

	for _, t := range txs {
		for _, sp := range t.ResolvedSplits() {
			row := []string{
				t.ID,
				t.Date.Format(core.DateLayout),
				t.Description,
				t.Account,
				t.Amount.String(),
				sp.Category,
				sp.Amount.String(),
				sp.Memo,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write transaction row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush transactions: %w", err)
	}
	return nil
}
