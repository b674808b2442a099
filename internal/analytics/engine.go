// Package analytics computes the descriptive statistics views over a
// validated sales record set: total revenue, regional breakdown, product
// rankings, customer summaries and the daily trend.
//
// Every view is a pure function of its input: nothing is mutated, each
// call returns freshly built structures, and grouping preserves
// first-seen order so that stable sorts produce identical output across
// repeated runs of the same input.
package analytics

import (
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"salescli/pkg/contracts/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Engine computes the aggregation views. It carries no state besides a
// logger; all methods are safe to call repeatedly and in any order.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an analytics engine. A nil logger falls back to the
// slog default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// TotalRevenue returns the sum of the derived amount over all records.
// An empty record set yields zero.
func (e *Engine) TotalRevenue(records []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range records {
		total = total.Add(tx.Amount())
	}
	return total
}

// RegionWiseSales groups records by region and returns per-region sales
// totals, transaction counts and revenue share, sorted descending by
// total sales. Ties keep the order in which regions were first seen.
//
// When total revenue is zero every percentage is zero by convention.
func (e *Engine) RegionWiseSales(records []domain.Transaction) []domain.RegionStat {
	totalRevenue := e.TotalRevenue(records)

	stats := map[string]*domain.RegionStat{}
	var order []string

	for _, tx := range records {
		st, ok := stats[tx.Region]
		if !ok {
			st = &domain.RegionStat{Region: tx.Region}
			stats[tx.Region] = st
			order = append(order, tx.Region)
		}
		st.TotalSales = st.TotalSales.Add(tx.Amount())
		st.TransactionCount++
	}

	out := make([]domain.RegionStat, 0, len(order))
	for _, region := range order {
		st := *stats[region]
		if totalRevenue.IsPositive() {
			st.Percentage = st.TotalSales.Div(totalRevenue).Mul(oneHundred)
		}
		out = append(out, st)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSales.GreaterThan(out[j].TotalSales)
	})

	e.logger.Debug("computed region-wise sales",
		slog.Int("regions", len(out)),
		slog.String("total_revenue", totalRevenue.String()))

	return out
}
