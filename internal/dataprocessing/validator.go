package dataprocessing

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"salescli/pkg/contracts/domain"
)

// FilterOptions holds the optional user-supplied filters applied after
// business validation. Zero / nil fields mean "no filter".
type FilterOptions struct {
	Region    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

var filterValidate = newFilterValidate()

func newFilterValidate() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(filterStructLevel, FilterOptions{})
	return v
}

// filterStructLevel holds the cross-field rules for FilterOptions: the
// amount bounds must be non-negative and the upper bound must not fall
// below the lower one. Decimal fields carry no built-in validator tags,
// so the rules live in a struct-level validation.
func filterStructLevel(sl validator.StructLevel) {
	opts := sl.Current().Interface().(FilterOptions)
	if opts.MinAmount != nil && opts.MinAmount.IsNegative() {
		sl.ReportError(opts.MinAmount, "MinAmount", "MinAmount", "min", "0")
	}
	if opts.MaxAmount != nil && opts.MaxAmount.IsNegative() {
		sl.ReportError(opts.MaxAmount, "MaxAmount", "MaxAmount", "min", "0")
	}
	if opts.MinAmount != nil && opts.MaxAmount != nil && opts.MaxAmount.LessThan(*opts.MinAmount) {
		sl.ReportError(opts.MaxAmount, "MaxAmount", "MaxAmount", "gtefield", "MinAmount")
	}
}

// Validate checks the filter combination against its struct-level rules.
func (o FilterOptions) Validate() error {
	if err := filterValidate.Struct(o); err != nil {
		return fmt.Errorf("invalid filter options: %w", err)
	}
	return nil
}

// hasAmountFilter reports whether a lower or upper amount bound is set.
func (o FilterOptions) hasAmountFilter() bool {
	return o.MinAmount != nil || o.MaxAmount != nil
}

// Validate classifies records into valid and invalid and applies the
// optional filters. The merged invalid count includes both
// business-invalid records and filter exclusions, matching the legacy
// contract; the summary additionally carries the two reasons separately.
//
// The function is pure and deterministic: it never mutates its input,
// and valid records keep their input order.
func Validate(records []domain.Transaction, opts FilterOptions, logger *slog.Logger) ([]domain.Transaction, int, domain.ValidationSummary) {
	if logger == nil {
		logger = slog.Default()
	}

	valid := make([]domain.Transaction, 0, len(records))
	businessInvalid := 0
	filteredOut := 0

	for _, tx := range records {
		if !tx.IsBusinessValid() {
			businessInvalid++
			continue
		}
		if !passesFilters(tx, opts) {
			filteredOut++
			continue
		}
		valid = append(valid, tx)
	}

	summary := domain.ValidationSummary{
		TotalInput:      len(records),
		Invalid:         businessInvalid + filteredOut,
		BusinessInvalid: businessInvalid,
		FilteredOut:     filteredOut,
		FinalCount:      len(valid),
		RegionFilter:    opts.Region != "",
		AmountFilter:    opts.hasAmountFilter(),
	}

	logger.Info("validated sales data",
		slog.Int("total_input", summary.TotalInput),
		slog.Int("valid", summary.FinalCount),
		slog.Int("business_invalid", summary.BusinessInvalid),
		slog.Int("filtered_out", summary.FilteredOut),
		slog.Bool("region_filter", summary.RegionFilter),
		slog.Bool("amount_filter", summary.AmountFilter))

	return valid, summary.Invalid, summary
}

func passesFilters(tx domain.Transaction, opts FilterOptions) bool {
	if opts.Region != "" && tx.Region != opts.Region {
		return false
	}
	if opts.MinAmount != nil && tx.Amount().LessThan(*opts.MinAmount) {
		return false
	}
	if opts.MaxAmount != nil && tx.Amount().GreaterThan(*opts.MaxAmount) {
		return false
	}
	return true
}
