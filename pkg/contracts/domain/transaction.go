package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionIDPrefix marks a record as a sales transaction. Rows whose
// identifier does not carry the prefix are business-invalid.
const TransactionIDPrefix = "T"

// Transaction is the Single Source of Truth for one parsed sales record.
// All pipeline stages (validation, analytics, enrichment, export) operate
// on this structure; none of them mutate it.
//
// The monetary amount of a transaction is always derived via Amount() and
// never stored, so it can not go stale when fields change.
type Transaction struct {
	// TransactionID is the raw record identifier (e.g. "T001").
	// Business-valid only when it starts with TransactionIDPrefix.
	TransactionID string `json:"transaction_id" csv:"Transaction_ID" validate:"required"`

	// Date is the calendar day of the sale as a lexically sortable
	// "2006-01-02" string. Kept as a string key because every grouping
	// and ordering in the pipeline is defined over the textual form.
	Date string `json:"date" csv:"Date" validate:"required"`

	// ProductID is the catalog code (e.g. "P101"). The enrichment stage
	// extracts the leading numeric run to join against the catalog.
	ProductID string `json:"product_id" csv:"Product_ID"`

	// ProductName is the display name with commas normalized to spaces
	// so the pipe-delimited export stays single-line safe.
	ProductName string `json:"product_name" csv:"Product_Name"`

	// Quantity is the number of units sold. Business-valid only when > 0.
	Quantity int64 `json:"quantity" csv:"Quantity"`

	// UnitPrice is the price per unit. Business-valid only when > 0.
	UnitPrice decimal.Decimal `json:"unit_price" csv:"Unit_Price"`

	// CustomerID identifies the buyer. Must be non-empty.
	CustomerID string `json:"customer_id" csv:"Customer_ID"`

	// Region is the sales region. Must be non-empty.
	Region string `json:"region" csv:"Region"`
}

// Amount returns the derived transaction value: Quantity × UnitPrice.
func (t Transaction) Amount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
}

// IsBusinessValid reports whether the record passes the hard validity
// rules, independent of any user-supplied filter.
func (t Transaction) IsBusinessValid() bool {
	return t.Quantity > 0 &&
		t.UnitPrice.IsPositive() &&
		t.CustomerID != "" &&
		t.Region != "" &&
		strings.HasPrefix(t.TransactionID, TransactionIDPrefix)
}

// ValidationSummary is an immutable snapshot describing one validation
// pass. Invalid merges business-invalid records and filter exclusions
// (the legacy contract); BusinessInvalid and FilteredOut expose the two
// reasons separately for consumers that need the distinction.
type ValidationSummary struct {
	TotalInput      int  `json:"total_input"`
	Invalid         int  `json:"invalid"`
	BusinessInvalid int  `json:"business_invalid"`
	FilteredOut     int  `json:"filtered_out"`
	FinalCount      int  `json:"final_count"`
	RegionFilter    bool `json:"filtered_by_region"`
	AmountFilter    bool `json:"filtered_by_amount"`
}

// EnrichedTransaction is a Transaction joined against the external
// product catalog. Catalog fields are nil when no catalog entry matched.
type EnrichedTransaction struct {
	Transaction

	Category *string          `json:"api_category"`
	Brand    *string          `json:"api_brand"`
	Rating   *decimal.Decimal `json:"api_rating"`
	Matched  bool             `json:"api_match"`
}
