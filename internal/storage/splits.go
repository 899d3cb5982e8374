package storage

import (
	"context"
	"fmt"

	"ledger/internal/core"
	"ledger/internal/log"
)

// ReplaceSplits atomically replaces a transaction's entire split set. The new
// set must sum to the transaction's stored amount exactly; an empty set
// clears all splits, reverting the transaction to uncategorized. On any
// failure the previously stored splits are left untouched.
//
// Returns core.ErrNotFound for an unknown id, a core.ErrValidation error for
// empty categories or zero amounts, and *core.SplitSumError when the amounts
// do not add up.
func (s *Store) ReplaceSplits(ctx context.Context, id string, splits []core.Split) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin split: %w", err)
	}
	defer tx.Rollback()

	t, err := getTransaction(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := core.ValidateSplits(t.Amount, splits); err != nil {
		return err
	}

	// Delete-then-insert inside the one transaction: readers see the old
	// set or the new set, never a mix.
	if _, err := tx.ExecContext(ctx, "DELETE FROM splits WHERE transaction_id = ?", id); err != nil {
		return fmt.Errorf("clear splits: %w", err)
	}

	for _, sp := range splits {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO splits (transaction_id, category, amount, memo) VALUES (?, ?, ?, ?)",
			id, sp.Category, sp.Amount.String(), sp.Memo)
		if err != nil {
			return fmt.Errorf("insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit split: %w", err)
	}

	s.log.InfoContext(ctx, "Splits replaced",
		log.FieldTransactionID, id,
		log.FieldSplits, len(splits))
	return nil
}
