// Package importer reads aggregator CSV exports and feeds them to the ledger
// store. It only normalizes rows; all validation and deduplication happens in
// the store.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"ledger/internal/core"
	"ledger/internal/log"
)

// Store is the subset of the ledger store the importer needs.
type Store interface {
	Import(ctx context.Context, rec core.Record) (core.Transaction, bool, error)
}

// Result tallies one import run.
type Result struct {
	Imported   int
	Duplicates int
	Pending    int // rows skipped because they were still pending
}

type Importer struct {
	store Store
	log   *log.Logger

	// defaultAccount fills the account field when the export has no
	// account column.
	defaultAccount string
}

func New(store Store, logger *log.Logger, defaultAccount string) *Importer {
	return &Importer{
		store:          store,
		log:            logger.WithComponent(log.ComponentImporter),
		defaultAccount: defaultAccount,
	}
}

// ImportFile imports every non-pending row of the CSV file at path.
func (i *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	res, err := i.ImportReader(ctx, f)
	if err != nil {
		return res, fmt.Errorf("import %s: %w", path, err)
	}
	return res, nil
}

// ImportReader imports rows from r. The first row is the header; column
// names are matched case-insensitively. A malformed row aborts the run with
// its row number attached; rows already imported are counted as duplicates.
func (i *Importer) ImportReader(ctx context.Context, r io.Reader) (Result, error) {
	records, pending, err := ReadRecords(r)
	if err != nil {
		return Result{}, err
	}

	res := Result{Pending: pending}
	for n, rec := range records {
		if rec.Account == "" {
			rec.Account = i.defaultAccount
		}

		tx, created, err := i.store.Import(ctx, rec)
		if err != nil {
			return res, fmt.Errorf("record %d: %w", n+1, err)
		}
		if created {
			res.Imported++
			i.log.InfoContext(ctx, "Row imported",
				log.FieldTransactionID, tx.ID,
				log.FieldAmount, tx.Amount.String())
		} else {
			res.Duplicates++
		}
	}

	i.log.InfoContext(ctx, "Import finished",
		log.FieldRows, len(records),
		"imported", res.Imported,
		"duplicates", res.Duplicates,
		"pending_skipped", res.Pending)
	return res, nil
}

// ReadRecords parses a CSV export into raw records, skipping pending rows.
// It returns the records in file order and the number of pending rows
// skipped.
func ReadRecords(r io.Reader) ([]core.Record, int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	cols := headerMap(header)

	if _, ok := cols["date"]; !ok {
		return nil, 0, fmt.Errorf("%w: csv has no date column", core.ErrValidation)
	}
	if _, ok := cols["amount"]; !ok {
		return nil, 0, fmt.Errorf("%w: csv has no amount column", core.ErrValidation)
	}

	var (
		records []core.Record
		pending int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read csv row: %w", err)
		}

		rec := core.Record{
			Date:        field(row, cols, "date"),
			Description: field(row, cols, "description"),
			Amount:      field(row, cols, "amount"),
			Account:     field(row, cols, "account"),
			Institution: field(row, cols, "institution"),
			Pending:     parseBool(field(row, cols, "is pending")),
		}
		if rec.Pending {
			pending++
			continue
		}
		records = append(records, rec)
	}

	return records, pending, nil
}

// headerMap maps lower-cased column names to their index.
func headerMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		m[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return m
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
