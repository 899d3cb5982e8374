package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ledger/internal/core"

	"github.com/shopspring/decimal"
)

// MonthSummary aggregates every visible transaction dated in the given month
// into per-category totals. Amounts are summed with decimal arithmetic in Go
// because they are stored as text; a SQL SUM would coerce them through
// floating point. The grand total equals the sum of the in-month transaction
// amounts exactly.
func (s *Store) MonthSummary(ctx context.Context, year, month int) (core.MonthSummary, error) {
	if month < 1 || month > 12 {
		return core.MonthSummary{}, fmt.Errorf("%d: %w", month, core.ErrInvalidMonth)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	txs, err := s.Query(ctx, core.QueryFilter{From: first, To: last})
	if err != nil {
		return core.MonthSummary{}, err
	}

	summary := core.MonthSummary{
		Year:  year,
		Month: month,
		Total: decimal.Zero,
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, t := range txs {
		summary.Total = summary.Total.Add(t.Amount)
		for _, sp := range t.ResolvedSplits() {
			byCategory[sp.Category] = byCategory[sp.Category].Add(sp.Amount)
		}
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		summary.ByCategory = append(summary.ByCategory, core.CategoryTotal{
			Category: c,
			Amount:   byCategory[c],
		})
	}

	return summary, nil
}

// Stats holds the counters shown by the stats command.
type Stats struct {
	Transactions int64
	Hidden       int64
	WithSplits   int64
	SplitRows    int64
}

// Stats returns database-wide counters.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM transactions", &st.Transactions},
		{"SELECT COUNT(*) FROM transactions WHERE is_hidden = 1", &st.Hidden},
		{"SELECT COUNT(DISTINCT transaction_id) FROM splits", &st.WithSplits},
		{"SELECT COUNT(*) FROM splits", &st.SplitRows},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("count: %w", err)
		}
	}
	return st, nil
}
