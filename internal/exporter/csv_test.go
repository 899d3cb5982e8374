package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"ledger/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestWriteMonthSummary(t *testing.T) {
	summary := core.MonthSummary{
		Year:  2024,
		Month: 3,
		Total: dec(t, "-54.32"),
		ByCategory: []core.CategoryTotal{
			{Category: "Groceries", Amount: dec(t, "-50.00")},
			{Category: "Tips", Amount: dec(t, "-4.32")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMonthSummary(&buf, summary))

	want := "year,month,category,amount\n" +
		"2024,3,Groceries,-50\n" +
		"2024,3,Tips,-4.32\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTransactions(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		{
			ID:          "tx-1",
			Date:        date,
			Description: "GROCERY STORE",
			Account:     "Checking",
			Amount:      dec(t, "-54.32"),
			Splits: []core.Split{
				{Category: "Groceries", Amount: dec(t, "-50.00")},
				{Category: "Tips", Amount: dec(t, "-4.32"), Memo: "cash tip"},
			},
		},
		{
			ID:          "tx-2",
			Date:        date.AddDate(0, 0, 1),
			Description: "CAFE",
			Account:     "Checking",
			Amount:      dec(t, "-4.00"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "header + 2 splits + 1 implicit split")

	assert.Equal(t, []string{"tx-1", "2024-03-05", "GROCERY STORE", "Checking", "-54.32", "Groceries", "-50", ""}, rows[1])
	assert.Equal(t, "cash tip", rows[2][7])

	// The unsplit transaction gets the implicit Uncategorized row.
	assert.Equal(t, core.CategoryUncategorized, rows[3][5])
	assert.Equal(t, "-4", rows[3][6])

	// Split amounts for tx-1 sum back to the transaction amount.
	a := dec(t, rows[1][6]).Add(dec(t, rows[2][6]))
	assert.True(t, a.Equal(dec(t, "-54.32")))
}
