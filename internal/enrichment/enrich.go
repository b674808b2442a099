// Package enrichment joins validated transactions against the external
// product catalog by the numeric id embedded in the product code.
package enrichment

import (
	"log/slog"
	"regexp"

	"github.com/shopspring/decimal"

	"salescli/pkg/contracts/domain"
)

var numericIDPattern = regexp.MustCompile(`\d+`)

// Result holds the enriched record set together with the match counts
// the caller needs to report a success rate. The stage itself performs
// no I/O and computes no percentages.
type Result struct {
	Records      []domain.EnrichedTransaction
	MatchedCount int
	Total        int
}

// SuccessRate returns the share of matched records in percent, zero for
// an empty set.
func (r Result) SuccessRate() decimal.Decimal {
	if r.Total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(r.MatchedCount)).
		Div(decimal.NewFromInt(int64(r.Total))).
		Mul(decimal.NewFromInt(100))
}

// ExtractNumericID returns the first numeric run in a product code
// ("P101" → "101"). The second return value is false when the code
// contains no digits.
func ExtractNumericID(productID string) (string, bool) {
	id := numericIDPattern.FindString(productID)
	return id, id != ""
}

// Enrich joins each record against the catalog mapping. A record whose
// extracted numeric id exists in the mapping gets the catalog category,
// brand and rating attached and Matched=true; records without digits or
// without a catalog entry keep nil catalog fields and Matched=false.
// Input order is preserved; an empty mapping simply matches nothing.
func Enrich(records []domain.Transaction, mapping domain.ProductCatalog, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}

	result := Result{
		Records: make([]domain.EnrichedTransaction, 0, len(records)),
		Total:   len(records),
	}

	for _, tx := range records {
		enriched := domain.EnrichedTransaction{Transaction: tx}

		if id, ok := ExtractNumericID(tx.ProductID); ok {
			if entry, found := mapping[id]; found {
				category, brand, rating := entry.Category, entry.Brand, entry.Rating
				enriched.Category = &category
				enriched.Brand = &brand
				enriched.Rating = &rating
				enriched.Matched = true
				result.MatchedCount++
			}
		}

		result.Records = append(result.Records, enriched)
	}

	logger.Info("enriched sales data",
		slog.Int("total", result.Total),
		slog.Int("matched", result.MatchedCount))

	return result
}
