// Command analyzer runs the sales analytics pipeline: it reads the
// pipe-delimited sales log, validates and filters it, computes the
// aggregate views, enriches the records against the external product
// catalog and writes the enriched data set plus the text report.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"salescli/internal/analytics"
	"salescli/internal/catalog"
	"salescli/internal/config"
	"salescli/internal/dataprocessing"
	"salescli/internal/enrichment"
	"salescli/internal/exporter"
	"salescli/internal/infrastructure"
	"salescli/internal/report"
)

type flags struct {
	input       string
	region      string
	minAmount   string
	maxAmount   string
	topProducts int
	threshold   int
	interactive bool
	xlsx        bool
	offline     bool
}

func main() {
	var f flags

	cmd := &cobra.Command{
		Use:           "analyzer",
		Short:         "Analyze a pipe-delimited sales transaction log",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.input, "input", "", "sales data file (defaults to <data_dir>/<sales_file>)")
	cmd.Flags().StringVar(&f.region, "region", "", "only include transactions from this region")
	cmd.Flags().StringVar(&f.minAmount, "min-amount", "", "minimum transaction amount (inclusive)")
	cmd.Flags().StringVar(&f.maxAmount, "max-amount", "", "maximum transaction amount (inclusive)")
	cmd.Flags().IntVar(&f.topProducts, "top", 0, "number of top products to report (default from config)")
	cmd.Flags().IntVar(&f.threshold, "threshold", -1, "low performer quantity threshold (default from config)")
	cmd.Flags().BoolVar(&f.interactive, "interactive", false, "prompt for filters on stdin")
	cmd.Flags().BoolVar(&f.xlsx, "xlsx", false, "also export the enriched data as an Excel workbook")
	cmd.Flags().BoolVar(&f.offline, "offline", false, "skip the catalog fetch; all records stay unmatched")

	if err := cmd.Execute(); err != nil {
		slog.Error("analyzer failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, f)

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = infrastructure.GetLogger()
	}
	defer infrastructure.CloseLogger()

	inputPath := f.input
	if inputPath == "" {
		inputPath = cfg.SalesPath()
	}

	logger.Info("starting sales analytics pipeline",
		slog.String("input", inputPath),
		slog.String("output_dir", cfg.Paths.OutputDir))

	// A missing or undecodable file degrades to zero records; every
	// downstream stage handles the empty set.
	lines, err := dataprocessing.ReadSalesLines(inputPath, logger)
	if err != nil {
		logger.Warn("proceeding with empty record set", "error", err)
		lines = nil
	}

	parsed := dataprocessing.ParseTransactions(lines, logger)

	opts, err := filterOptions(f)
	if err != nil {
		return fmt.Errorf("parse filters: %w", err)
	}
	if f.interactive {
		opts, err = promptFilters(os.Stdin, os.Stdout)
		if err != nil {
			return fmt.Errorf("read filters: %w", err)
		}
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}

	valid, _, summary := dataprocessing.Validate(parsed.Transactions, opts, logger)

	mapping := catalog.BuildMapping(nil)
	if !f.offline {
		client := catalog.NewClient(cfg.Catalog, logger)
		products, err := client.FetchProducts(ctx)
		if err != nil {
			logger.Warn("catalog unavailable, continuing unenriched", "error", err)
		}
		mapping = catalog.BuildMapping(products)
	}

	enriched := enrichment.Enrich(valid, mapping, logger)

	if err := exporter.NewPipeWriter(logger).WriteEnriched(cfg.EnrichedPath(), enriched.Records); err != nil {
		return fmt.Errorf("write enriched data: %w", err)
	}
	if f.xlsx {
		xlsxPath := strings.TrimSuffix(cfg.EnrichedPath(), ".txt") + ".xlsx"
		if err := exporter.NewXLSXWriter(logger).WriteEnriched(xlsxPath, enriched.Records); err != nil {
			return fmt.Errorf("write enriched workbook: %w", err)
		}
	}

	engine := analytics.NewEngine(logger)

	low := engine.LowPerformingProducts(valid, int64(cfg.Analytics.LowQtyThreshold))
	for _, p := range low {
		logger.Info("low performing product",
			slog.String("product", p.ProductName),
			slog.Int64("quantity", p.TotalQuantity),
			slog.String("revenue", p.TotalRevenue.StringFixed(2)))
	}

	assembler := report.NewAssembler(engine, cfg.Analytics, logger)
	if err := assembler.Write(cfg.ReportPath(), valid, enriched); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logger.Info("pipeline complete",
		slog.Int("valid", summary.FinalCount),
		slog.Int("invalid", summary.Invalid),
		slog.Int("parse_skipped", parsed.Skipped),
		slog.String("enrichment_success_rate", enriched.SuccessRate().StringFixed(1)+"%"),
		slog.String("report", cfg.ReportPath()),
		slog.String("enriched", cfg.EnrichedPath()))

	return nil
}

// applyFlags overlays command line values onto the loaded configuration.
func applyFlags(cfg *config.Config, f flags) {
	if f.topProducts > 0 {
		cfg.Analytics.TopProducts = f.topProducts
	}
	if f.threshold >= 0 {
		cfg.Analytics.LowQtyThreshold = f.threshold
	}
}

// filterOptions builds the filter set from command line flags.
func filterOptions(f flags) (dataprocessing.FilterOptions, error) {
	opts := dataprocessing.FilterOptions{Region: f.region}

	var err error
	if opts.MinAmount, err = parseAmount(f.minAmount); err != nil {
		return opts, fmt.Errorf("invalid min amount %q: %w", f.minAmount, err)
	}
	if opts.MaxAmount, err = parseAmount(f.maxAmount); err != nil {
		return opts, fmt.Errorf("invalid max amount %q: %w", f.maxAmount, err)
	}
	return opts, nil
}

// promptFilters interactively asks for the optional region and amount
// bounds. Blank answers mean "no filter".
func promptFilters(in *os.File, out *os.File) (dataprocessing.FilterOptions, error) {
	reader := bufio.NewReader(in)
	var opts dataprocessing.FilterOptions

	region, err := prompt(reader, out, "Region (blank for none): ")
	if err != nil {
		return opts, err
	}
	opts.Region = region

	minStr, err := prompt(reader, out, "Min amount (blank for none): ")
	if err != nil {
		return opts, err
	}
	if opts.MinAmount, err = parseAmount(minStr); err != nil {
		return opts, fmt.Errorf("invalid min amount %q: %w", minStr, err)
	}

	maxStr, err := prompt(reader, out, "Max amount (blank for none): ")
	if err != nil {
		return opts, err
	}
	if opts.MaxAmount, err = parseAmount(maxStr); err != nil {
		return opts, fmt.Errorf("invalid max amount %q: %w", maxStr, err)
	}

	return opts, nil
}

func prompt(reader *bufio.Reader, out *os.File, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parseAmount parses an optional decimal amount; empty means unset.
func parseAmount(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &d, nil
}
