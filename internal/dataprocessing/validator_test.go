package dataprocessing

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func tx(id, date, product, customer, region string, qty int64, price string) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     "P" + id[1:],
		ProductName:   product,
		Quantity:      qty,
		UnitPrice:     decimal.RequireFromString(price),
		CustomerID:    customer,
		Region:        region,
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidate_BusinessRules(t *testing.T) {
	tests := []struct {
		name   string
		record domain.Transaction
		valid  bool
	}{
		{
			name:   "fully valid record",
			record: tx("T001", "2024-01-05", "Widget A", "C001", "North", 10, "25.00"),
			valid:  true,
		},
		{
			name:   "zero quantity",
			record: tx("T002", "2024-01-05", "Widget A", "C001", "North", 0, "25.00"),
			valid:  false,
		},
		{
			name:   "negative quantity",
			record: tx("T003", "2024-01-05", "Widget A", "C001", "North", -2, "25.00"),
			valid:  false,
		},
		{
			name:   "zero price",
			record: tx("T004", "2024-01-05", "Widget A", "C001", "North", 1, "0"),
			valid:  false,
		},
		{
			name:   "negative price",
			record: tx("T005", "2024-01-05", "Widget A", "C001", "North", 1, "-3.50"),
			valid:  false,
		},
		{
			name:   "empty customer",
			record: tx("T006", "2024-01-05", "Widget A", "", "North", 1, "25.00"),
			valid:  false,
		},
		{
			name:   "empty region",
			record: tx("T007", "2024-01-05", "Widget A", "C001", "", 1, "25.00"),
			valid:  false,
		},
		{
			name:   "wrong id prefix",
			record: tx("X008", "2024-01-05", "Widget A", "C001", "North", 1, "25.00"),
			valid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, invalid, summary := Validate([]domain.Transaction{tt.record}, FilterOptions{}, nil)

			if tt.valid {
				assert.Len(t, valid, 1)
				assert.Equal(t, 0, invalid)
			} else {
				assert.Empty(t, valid)
				assert.Equal(t, 1, invalid)
				assert.Equal(t, 1, summary.BusinessInvalid)
				assert.Equal(t, 0, summary.FilteredOut)
			}
		})
	}
}

func TestValidate_Filters(t *testing.T) {
	records := []domain.Transaction{
		tx("T001", "2024-01-05", "Widget A", "C001", "North", 10, "25.00"), // 250.00
		tx("T002", "2024-01-05", "Widget B", "C002", "South", 2, "50.00"),  // 100.00
		tx("T003", "2024-01-06", "Widget C", "C003", "North", 1, "500.00"), // 500.00
	}

	tests := []struct {
		name        string
		opts        FilterOptions
		wantIDs     []string
		wantInvalid int
	}{
		{
			name:        "no filters keeps all",
			opts:        FilterOptions{},
			wantIDs:     []string{"T001", "T002", "T003"},
			wantInvalid: 0,
		},
		{
			name:        "region filter is exact match",
			opts:        FilterOptions{Region: "North"},
			wantIDs:     []string{"T001", "T003"},
			wantInvalid: 1,
		},
		{
			name:        "min amount is inclusive",
			opts:        FilterOptions{MinAmount: dec("250.00")},
			wantIDs:     []string{"T001", "T003"},
			wantInvalid: 1,
		},
		{
			name:        "max amount is inclusive",
			opts:        FilterOptions{MaxAmount: dec("250.00")},
			wantIDs:     []string{"T001", "T002"},
			wantInvalid: 1,
		},
		{
			name:        "combined filters",
			opts:        FilterOptions{Region: "North", MinAmount: dec("300")},
			wantIDs:     []string{"T003"},
			wantInvalid: 2,
		},
		{
			name:        "unknown region excludes everything",
			opts:        FilterOptions{Region: "West"},
			wantIDs:     []string{},
			wantInvalid: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, invalid, summary := Validate(records, tt.opts, nil)

			ids := make([]string, 0, len(valid))
			for _, v := range valid {
				ids = append(ids, v.TransactionID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantInvalid, invalid)
			assert.Equal(t, len(records), summary.TotalInput)
			assert.Equal(t, len(tt.wantIDs), summary.FinalCount)
			assert.Equal(t, tt.opts.Region != "", summary.RegionFilter)
			assert.Equal(t, tt.opts.MinAmount != nil || tt.opts.MaxAmount != nil, summary.AmountFilter)
		})
	}
}

func TestValidate_MergedInvalidCount(t *testing.T) {
	records := []domain.Transaction{
		tx("T001", "2024-01-05", "Widget A", "C001", "North", 10, "25.00"),
		tx("X002", "2024-01-05", "Widget B", "C002", "South", 2, "50.00"), // business-invalid
		tx("T003", "2024-01-06", "Widget C", "C003", "South", 1, "500.00"),
	}

	valid, invalid, summary := Validate(records, FilterOptions{Region: "North"}, nil)

	require.Len(t, valid, 1)
	// Merged count: one business-invalid plus one filter exclusion.
	assert.Equal(t, 2, invalid)
	assert.Equal(t, 1, summary.BusinessInvalid)
	assert.Equal(t, 1, summary.FilteredOut)
	assert.Equal(t, 2, summary.Invalid)
}

func TestValidate_Idempotent(t *testing.T) {
	records := []domain.Transaction{
		tx("T002", "2024-01-06", "Widget B", "C002", "South", 2, "50.00"),
		tx("T001", "2024-01-05", "Widget A", "C001", "North", 10, "25.00"),
	}

	first, firstInvalid, firstSummary := Validate(records, FilterOptions{}, nil)
	second, secondInvalid, secondSummary := Validate(records, FilterOptions{}, nil)

	assert.Equal(t, first, second)
	assert.Equal(t, firstInvalid, secondInvalid)
	assert.Equal(t, firstSummary, secondSummary)

	// Input order preserved for valid records.
	assert.Equal(t, "T002", first[0].TransactionID)
	assert.Equal(t, "T001", first[1].TransactionID)
}

func TestFilterOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    FilterOptions
		wantErr bool
	}{
		{name: "empty options", opts: FilterOptions{}, wantErr: false},
		{name: "min below max", opts: FilterOptions{MinAmount: dec("10"), MaxAmount: dec("20")}, wantErr: false},
		{name: "min equals max", opts: FilterOptions{MinAmount: dec("10"), MaxAmount: dec("10")}, wantErr: false},
		{name: "max below min", opts: FilterOptions{MinAmount: dec("20"), MaxAmount: dec("10")}, wantErr: true},
		{name: "negative min", opts: FilterOptions{MinAmount: dec("-1")}, wantErr: true},
		{name: "negative max", opts: FilterOptions{MaxAmount: dec("-1")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilterOptions_Validate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		opts      FilterOptions
		wantField string
		wantTag   string
	}{
		{
			name:      "negative min reports min rule",
			opts:      FilterOptions{MinAmount: dec("-5")},
			wantField: "MinAmount",
			wantTag:   "min",
		},
		{
			name:      "max below min reports cross-field rule",
			opts:      FilterOptions{MinAmount: dec("20"), MaxAmount: dec("10")},
			wantField: "MaxAmount",
			wantTag:   "gtefield",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			require.Error(t, err)

			var fieldErrs validator.ValidationErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field())
			assert.Equal(t, tt.wantTag, fieldErrs[0].Tag())
		})
	}
}
