package domain

import "github.com/shopspring/decimal"

// CatalogProduct is one product entry as returned by the external
// catalog service. The service owns this shape; the pipeline only
// reads it.
type CatalogProduct struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Brand    string          `json:"brand,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Rating   decimal.Decimal `json:"rating"`
}

// ProductCatalog maps the textual numeric product id (e.g. "101") to its
// catalog entry. An empty catalog is valid and simply matches nothing.
type ProductCatalog map[string]CatalogProduct
