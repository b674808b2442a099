package dataprocessing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactions(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		wantCount   int
		wantSkipped int
	}{
		{
			name:        "single valid row",
			lines:       []string{"T001|2024-01-05|P101|Widget A|10|25.00|C001|North"},
			wantCount:   1,
			wantSkipped: 0,
		},
		{
			name: "malformed row with 7 fields is skipped",
			lines: []string{
				"T001|2024-01-05|P101|Widget A|10|25.00|C001|North",
				"T002|2024-01-06|P102|Widget B|5|10.00|C002",
			},
			wantCount:   1,
			wantSkipped: 1,
		},
		{
			name: "malformed row with 9 fields is skipped",
			lines: []string{
				"T001|2024-01-05|P101|Widget A|10|25.00|C001|North|extra",
			},
			wantCount:   0,
			wantSkipped: 1,
		},
		{
			name: "unparseable quantity is skipped",
			lines: []string{
				"T001|2024-01-05|P101|Widget A|ten|25.00|C001|North",
			},
			wantCount:   0,
			wantSkipped: 1,
		},
		{
			name: "unparseable price is skipped",
			lines: []string{
				"T001|2024-01-05|P101|Widget A|10|abc|C001|North",
			},
			wantCount:   0,
			wantSkipped: 1,
		},
		{
			name:        "empty input",
			lines:       nil,
			wantCount:   0,
			wantSkipped: 0,
		},
		{
			name: "duplicates are kept",
			lines: []string{
				"T001|2024-01-05|P101|Widget A|10|25.00|C001|North",
				"T001|2024-01-05|P101|Widget A|10|25.00|C001|North",
			},
			wantCount:   2,
			wantSkipped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseTransactions(tt.lines, nil)

			assert.Len(t, result.Transactions, tt.wantCount)
			assert.Equal(t, tt.wantSkipped, result.Skipped)
		})
	}
}

func TestParseTransactions_FieldCleaning(t *testing.T) {
	result := ParseTransactions([]string{
		" T001 | 2024-01-05 | P101 |Widget, Deluxe, A| 1,250 | 1,025.50 | C001 | North ",
	}, nil)

	require.Len(t, result.Transactions, 1)
	tx := result.Transactions[0]

	assert.Equal(t, "T001", tx.TransactionID)
	assert.Equal(t, "2024-01-05", tx.Date)
	assert.Equal(t, "P101", tx.ProductID)
	assert.Equal(t, "Widget  Deluxe  A", tx.ProductName)
	assert.Equal(t, int64(1250), tx.Quantity)
	assert.True(t, tx.UnitPrice.Equal(decimal.RequireFromString("1025.50")),
		"unit price %s", tx.UnitPrice)
	assert.Equal(t, "C001", tx.CustomerID)
	assert.Equal(t, "North", tx.Region)
}

func TestParseTransactions_QuotesStripped(t *testing.T) {
	result := ParseTransactions([]string{
		`T001|2024-01-05|P101|Widget "Pro" A|10|25.50|C001|North`,
	}, nil)

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Widget  Pro  A", result.Transactions[0].ProductName)
	assert.NotContains(t, result.Transactions[0].ProductName, `"`)
}

func TestParseTransactions_DerivedAmount(t *testing.T) {
	result := ParseTransactions([]string{
		"T001|2024-01-05|P101|Widget A|10|25.00|C001|North",
	}, nil)

	require.Len(t, result.Transactions, 1)
	amount := result.Transactions[0].Amount()
	assert.True(t, amount.Equal(decimal.RequireFromString("250.00")), "amount %s", amount)
}

func TestParseTransactions_PreservesInputOrder(t *testing.T) {
	result := ParseTransactions([]string{
		"T003|2024-01-07|P103|Gadget|1|5.00|C003|East",
		"T001|2024-01-05|P101|Widget A|10|25.00|C001|North",
		"T002|2024-01-06|P102|Widget B|2|7.50|C002|South",
	}, nil)

	require.Len(t, result.Transactions, 3)
	assert.Equal(t, "T003", result.Transactions[0].TransactionID)
	assert.Equal(t, "T001", result.Transactions[1].TransactionID)
	assert.Equal(t, "T002", result.Transactions[2].TransactionID)
}
