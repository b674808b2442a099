// Package report renders the computed aggregate views and the
// enrichment summary into the formatted text report. It is a pure
// consumer: it reads the structures the pipeline produced and keeps no
// references to them afterwards.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"salescli/internal/analytics"
	"salescli/internal/config"
	"salescli/internal/enrichment"
	"salescli/pkg/contracts/domain"
)

// Assembler builds the sales analytics text report.
type Assembler struct {
	engine *analytics.Engine
	cfg    config.AnalyticsConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewAssembler creates a report assembler. A nil logger falls back to
// the slog default.
func NewAssembler(engine *analytics.Engine, cfg config.AnalyticsConfig, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		engine: engine,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Generate renders the full report for the valid record set and the
// enrichment result.
func (a *Assembler) Generate(valid []domain.Transaction, enriched enrichment.Result) string {
	var b strings.Builder

	b.WriteString("SALES ANALYTICS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", a.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run ID: %s\n", uuid.NewString())
	fmt.Fprintf(&b, "Records Processed: %d\n\n", len(valid))

	a.writeSummary(&b, valid)
	a.writeRegions(&b, valid)
	a.writeTopProducts(&b, valid)
	a.writeTopCustomers(&b, valid)
	a.writeDailyTrend(&b, valid)
	a.writePeakDay(&b, valid)
	a.writeEnrichment(&b, enriched)

	return b.String()
}

// Write renders the report and saves it to path.
func (a *Assembler) Write(path string, valid []domain.Transaction, enriched enrichment.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(a.Generate(valid, enriched)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Info("saved report", slog.String("path", path))
	return nil
}

func (a *Assembler) writeSummary(b *strings.Builder, valid []domain.Transaction) {
	writeSection(b, "OVERALL SUMMARY")

	if len(valid) == 0 {
		b.WriteString("No data\n\n")
		return
	}

	total := a.engine.TotalRevenue(valid)
	avg := total.Div(decimal.NewFromInt(int64(len(valid))))
	trend := a.engine.DailySalesTrend(valid)

	fmt.Fprintf(b, "Total Revenue: %s\n", total.StringFixed(2))
	fmt.Fprintf(b, "Total Transactions: %d\n", len(valid))
	fmt.Fprintf(b, "Average Order Value: %s\n", avg.StringFixed(2))
	fmt.Fprintf(b, "Date Range: %s to %s\n\n", trend[0].Date, trend[len(trend)-1].Date)
}

func (a *Assembler) writeRegions(b *strings.Builder, valid []domain.Transaction) {
	writeSection(b, "REGION-WISE PERFORMANCE")

	regions := a.engine.RegionWiseSales(valid)
	if len(regions) == 0 {
		b.WriteString("No data\n\n")
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"Region", "Sales", "Share", "Transactions"})
	for _, r := range regions {
		t.AppendRow(table.Row{
			r.Region,
			r.TotalSales.StringFixed(2),
			r.Percentage.StringFixed(1) + "%",
			r.TransactionCount,
		})
	}
	b.WriteString(t.Render() + "\n\n")
}

func (a *Assembler) writeTopProducts(b *strings.Builder, valid []domain.Transaction) {
	writeSection(b, fmt.Sprintf("TOP %d PRODUCTS", a.cfg.TopProducts))

	products := a.engine.TopSellingProducts(valid, a.cfg.TopProducts)
	if len(products) == 0 {
		b.WriteString("No data\n\n")
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"#", "Product", "Quantity", "Revenue"})
	for i, p := range products {
		t.AppendRow(table.Row{i + 1, p.ProductName, p.TotalQuantity, p.TotalRevenue.StringFixed(2)})
	}
	b.WriteString(t.Render() + "\n\n")
}

func (a *Assembler) writeTopCustomers(b *strings.Builder, valid []domain.Transaction) {
	writeSection(b, fmt.Sprintf("TOP %d CUSTOMERS", a.cfg.TopCustomers))

	customers := a.engine.CustomerAnalysis(valid)
	if len(customers) == 0 {
		b.WriteString("No data\n\n")
		return
	}
	if len(customers) > a.cfg.TopCustomers {
		customers = customers[:a.cfg.TopCustomers]
	}

	t := newTable()
	t.AppendHeader(table.Row{"#", "Customer", "Spent", "Orders", "Avg Order"})
	for i, c := range customers {
		t.AppendRow(table.Row{
			i + 1,
			c.CustomerID,
			c.TotalSpent.StringFixed(2),
			c.PurchaseCount,
			c.AvgOrderValue.StringFixed(2),
		})
	}
	b.WriteString(t.Render() + "\n\n")
}

func (a *Assembler) writeDailyTrend(b *strings.Builder, valid []domain.Transaction) {
	writeSection(b, "DAILY SALES TREND")

	trend := a.engine.DailySalesTrend(valid)
	if len(trend) == 0 {
		b.WriteString("No data\n\n")
		return
	}
	if len(trend) > a.cfg.TrendDays {
		trend = trend[:a.cfg.TrendDays]
	}

	t := newTable()
	t.AppendHeader(table.Row{"Date", "Revenue", "Transactions", "Customers"})
	for _, d := range trend {
		t.AppendRow(table.Row{d.Date, d.Revenue.StringFixed(2), d.TransactionCount, d.UniqueCustomers})
	}
	b.WriteString(t.Render() + "\n\n")
}

func (a *Assembler) writePeakDay(b *strings.Builder, valid []domain.Transaction) {
	writeSection(b, "PEAK SALES DAY")

	peak, ok := a.engine.PeakSalesDay(valid)
	if !ok {
		b.WriteString("No data\n\n")
		return
	}

	fmt.Fprintf(b, "%s  revenue %s  (%d transactions)\n\n",
		peak.Date, peak.Revenue.StringFixed(2), peak.TransactionCount)
}

func (a *Assembler) writeEnrichment(b *strings.Builder, enriched enrichment.Result) {
	writeSection(b, "API ENRICHMENT SUMMARY")

	fmt.Fprintf(b, "Total Products Enriched: %d\n", enriched.Total)
	fmt.Fprintf(b, "Success Rate: %s%%\n", enriched.SuccessRate().StringFixed(1))
	if enriched.Total > 0 && enriched.MatchedCount == 0 {
		b.WriteString("No products matched the catalog\n")
	}
	b.WriteString("\n")
}

func writeSection(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", len(title)) + "\n")
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}
