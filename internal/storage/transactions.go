package storage

import (
	"context"
	"errors"
	"fmt"

	"ledger/internal/core"
	"ledger/internal/log"
)

// Import validates a raw record and persists it as a new transaction with
// zero splits. When a transaction with the same identity key already exists
// the call is a no-op and the stored transaction is returned; the second
// return value reports whether a row was created. Import is idempotent under
// repeated runs of the same export file.
func (s *Store) Import(ctx context.Context, rec core.Record) (core.Transaction, bool, error) {
	t, err := rec.Normalize()
	if err != nil {
		return core.Transaction{}, false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	existing, err := getTransaction(ctx, tx, t.ID)
	if err == nil {
		existing.Splits, err = loadSplits(ctx, tx, existing.ID)
		if err != nil {
			return core.Transaction{}, false, err
		}
		return existing, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return core.Transaction{}, false, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, tx_date, description, amount, account, institution, is_hidden)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		t.ID, t.Date.Format(core.DateLayout), t.Description, t.Amount.String(), t.Account, t.Institution)
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Transaction{}, false, fmt.Errorf("commit import: %w", err)
	}

	s.log.InfoContext(ctx, "Transaction imported",
		log.FieldTransactionID, t.ID,
		log.FieldAccount, t.Account,
		log.FieldAmount, t.Amount.String())

	return t, true, nil
}

// Get returns one transaction with its stored split set.
func (s *Store) Get(ctx context.Context, id string) (core.Transaction, error) {
	t, err := getTransaction(ctx, s.db, id)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Splits, err = loadSplits(ctx, s.db, id)
	if err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// Query returns transactions matching the filter, ordered by date ascending
// then identity key, each with its resolved split set (the implicit
// Uncategorized split is synthesized for unsplit transactions). Hidden
// transactions are excluded unless the filter asks for them.
func (s *Store) Query(ctx context.Context, f core.QueryFilter) ([]core.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions"
	var (
		conds []string
		args  []any
	)
	if !f.From.IsZero() {
		conds = append(conds, "tx_date >= ?")
		args = append(args, f.From.Format(core.DateLayout))
	}
	if !f.To.IsZero() {
		conds = append(conds, "tx_date <= ?")
		args = append(args, f.To.Format(core.DateLayout))
	}
	if f.Account != "" {
		conds = append(conds, "account = ?")
		args = append(args, f.Account)
	}
	if !f.IncludeHidden {
		conds = append(conds, "is_hidden = 0")
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY tx_date ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	// Category and uncategorized filters need the resolved splits, so they
	// are applied after loading rather than in SQL.
	out := txs[:0]
	for _, t := range txs {
		splits, err := loadSplits(ctx, s.db, t.ID)
		if err != nil {
			return nil, err
		}
		t.Splits = splits

		if f.UncategorizedOnly && len(t.Splits) > 0 {
			continue
		}
		if f.Category != "" && !hasCategory(t, f.Category) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func hasCategory(t core.Transaction, category string) bool {
	for _, sp := range t.ResolvedSplits() {
		if sp.Category == category {
			return true
		}
	}
	return false
}

// Delete removes a transaction and all its splits in one database
// transaction. Returns core.ErrNotFound when the id is absent.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	// The FK cascade covers this, but being explicit keeps the cascade an
	// invariant of the store rather than of the schema alone.
	if _, err := tx.ExecContext(ctx, "DELETE FROM splits WHERE transaction_id = ?", id); err != nil {
		return fmt.Errorf("delete splits: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	s.log.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id)
	return nil
}

// SetHidden marks a transaction hidden or visible. Hidden transactions are
// excluded from queries and monthly summaries but keep their splits.
func (s *Store) SetHidden(ctx context.Context, id string, hidden bool) error {
	val := 0
	if hidden {
		val = 1
	}
	res, err := s.db.ExecContext(ctx, "UPDATE transactions SET is_hidden = ? WHERE id = ?", val, id)
	if err != nil {
		return fmt.Errorf("set hidden: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set hidden: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}
