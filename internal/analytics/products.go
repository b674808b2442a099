package analytics

import (
	"log/slog"
	"sort"

	"salescli/pkg/contracts/domain"
)

// groupByProduct accumulates quantity and revenue per product name,
// preserving first-seen order.
func groupByProduct(records []domain.Transaction) []domain.ProductStat {
	stats := map[string]*domain.ProductStat{}
	var order []string

	for _, tx := range records {
		st, ok := stats[tx.ProductName]
		if !ok {
			st = &domain.ProductStat{ProductName: tx.ProductName}
			stats[tx.ProductName] = st
			order = append(order, tx.ProductName)
		}
		st.TotalQuantity += tx.Quantity
		st.TotalRevenue = st.TotalRevenue.Add(tx.Amount())
	}

	out := make([]domain.ProductStat, 0, len(order))
	for _, name := range order {
		out = append(out, *stats[name])
	}
	return out
}

// TopSellingProducts returns the n best-selling products by total
// quantity, descending. Ties keep first-seen order. The result is
// shorter than n when fewer distinct products exist.
func (e *Engine) TopSellingProducts(records []domain.Transaction, n int) []domain.ProductStat {
	products := groupByProduct(records)

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].TotalQuantity > products[j].TotalQuantity
	})

	if n >= 0 && len(products) > n {
		products = products[:n]
	}

	e.logger.Debug("computed top products",
		slog.Int("limit", n),
		slog.Int("returned", len(products)))

	return products
}

// LowPerformingProducts returns products whose total quantity is
// strictly below threshold, sorted ascending by quantity. A product
// with quantity equal to the threshold is not a low performer.
func (e *Engine) LowPerformingProducts(records []domain.Transaction, threshold int64) []domain.ProductStat {
	products := groupByProduct(records)

	low := make([]domain.ProductStat, 0)
	for _, p := range products {
		if p.TotalQuantity < threshold {
			low = append(low, p)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].TotalQuantity < low[j].TotalQuantity
	})

	e.logger.Debug("computed low performing products",
		slog.Int64("threshold", threshold),
		slog.Int("returned", len(low)))

	return low
}
