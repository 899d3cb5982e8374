// Package storage persists transactions and their category splits in a local
// SQLite database. Every mutation runs inside a single database transaction
// and the split sum invariant is enforced before anything is committed.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ledger/internal/core"
	"ledger/internal/log"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Store is the ledger store. Open one per process and pass it to every
// caller; it is not a global.
type Store struct {
	db  *sql.DB
	log *log.Logger
}

// Open opens (or creates) the SQLite database at dbPath, runs pending
// migrations and returns a ready store. Callers own the returned store and
// must Close it.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Single connection: the workload is single-writer and this keeps the
	// foreign_keys pragma in force for every statement.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{
		db:  db,
		log: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx so row helpers can run
// inside or outside an explicit transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// scanTransaction decodes one transactions row. Amounts are stored as
// canonical decimal text and parsed back without touching float64.
func scanTransaction(scan func(...any) error) (core.Transaction, error) {
	var (
		t          core.Transaction
		dateText   string
		amountText string
		hidden     int64
	)
	if err := scan(&t.ID, &dateText, &t.Description, &amountText, &t.Account, &t.Institution, &hidden); err != nil {
		return core.Transaction{}, err
	}

	date, err := time.Parse(core.DateLayout, dateText)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", dateText, err)
	}
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amountText, err)
	}

	t.Date = date
	t.Amount = amount
	t.Hidden = hidden != 0
	return t, nil
}

const transactionColumns = "id, tx_date, description, amount, account, institution, is_hidden"

// getTransaction fetches a single transaction without its splits, returning
// core.ErrNotFound when the id is absent.
func getTransaction(ctx context.Context, q querier, id string) (core.Transaction, error) {
	row := q.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)

	t, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// loadSplits fetches the stored split set for one transaction, in insertion
// order.
func loadSplits(ctx context.Context, q querier, transactionID string) ([]core.Split, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT category, amount, memo FROM splits WHERE transaction_id = ? ORDER BY id ASC",
		transactionID)
	if err != nil {
		return nil, fmt.Errorf("query splits: %w", err)
	}
	defer rows.Close()

	var splits []core.Split
	for rows.Next() {
		var (
			sp         core.Split
			amountText string
		)
		if err := rows.Scan(&sp.Category, &amountText, &sp.Memo); err != nil {
			return nil, fmt.Errorf("scan split: %w", err)
		}
		amount, err := decimal.NewFromString(amountText)
		if err != nil {
			return nil, fmt.Errorf("parse stored split amount %q: %w", amountText, err)
		}
		sp.Amount = amount
		splits = append(splits, sp)
	}
	return splits, rows.Err()
}
