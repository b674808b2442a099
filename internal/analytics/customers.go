package analytics

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"salescli/pkg/contracts/domain"
)

type customerAccumulator struct {
	totalSpent    decimal.Decimal
	purchaseCount int
	products      map[string]struct{}
}

// CustomerAnalysis summarizes purchases per customer: total spent,
// order count, average order value and the distinct products bought
// (sorted, comma-joined). Customers are sorted descending by total
// spent with first-seen order breaking ties.
func (e *Engine) CustomerAnalysis(records []domain.Transaction) []domain.CustomerStat {
	accum := map[string]*customerAccumulator{}
	var order []string

	for _, tx := range records {
		acc, ok := accum[tx.CustomerID]
		if !ok {
			acc = &customerAccumulator{products: map[string]struct{}{}}
			accum[tx.CustomerID] = acc
			order = append(order, tx.CustomerID)
		}
		acc.totalSpent = acc.totalSpent.Add(tx.Amount())
		acc.purchaseCount++
		acc.products[tx.ProductName] = struct{}{}
	}

	out := make([]domain.CustomerStat, 0, len(order))
	for _, id := range order {
		acc := accum[id]

		products := make([]string, 0, len(acc.products))
		for name := range acc.products {
			products = append(products, name)
		}
		sort.Strings(products)

		out = append(out, domain.CustomerStat{
			CustomerID:     id,
			TotalSpent:     acc.totalSpent,
			PurchaseCount:  acc.purchaseCount,
			AvgOrderValue:  acc.totalSpent.Div(decimal.NewFromInt(int64(acc.purchaseCount))),
			ProductsBought: strings.Join(products, ", "),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpent.GreaterThan(out[j].TotalSpent)
	})

	e.logger.Debug("computed customer analysis", slog.Int("customers", len(out)))

	return out
}
