package analytics

import (
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"salescli/pkg/contracts/domain"
)

type dailyAccumulator struct {
	revenue   decimal.Decimal
	count     int
	customers map[string]struct{}
}

// DailySalesTrend groups records by date and returns revenue,
// transaction count and distinct customer count per day, sorted
// ascending by the lexically sortable date key.
func (e *Engine) DailySalesTrend(records []domain.Transaction) []domain.DailyStat {
	accum := map[string]*dailyAccumulator{}

	for _, tx := range records {
		acc, ok := accum[tx.Date]
		if !ok {
			acc = &dailyAccumulator{customers: map[string]struct{}{}}
			accum[tx.Date] = acc
		}
		acc.revenue = acc.revenue.Add(tx.Amount())
		acc.count++
		acc.customers[tx.CustomerID] = struct{}{}
	}

	dates := make([]string, 0, len(accum))
	for date := range accum {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]domain.DailyStat, 0, len(dates))
	for _, date := range dates {
		acc := accum[date]
		out = append(out, domain.DailyStat{
			Date:             date,
			Revenue:          acc.revenue,
			TransactionCount: acc.count,
			UniqueCustomers:  len(acc.customers),
		})
	}

	e.logger.Debug("computed daily sales trend", slog.Int("days", len(out)))

	return out
}

// PeakSalesDay returns the day with the highest revenue from the daily
// trend. When several days share the maximum the chronologically first
// one wins. The second return value is false for an empty record set.
func (e *Engine) PeakSalesDay(records []domain.Transaction) (domain.DailyStat, bool) {
	trend := e.DailySalesTrend(records)
	if len(trend) == 0 {
		return domain.DailyStat{}, false
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue.GreaterThan(peak.Revenue) {
			peak = day
		}
	}
	return peak, true
}
