package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"salescli/pkg/contracts/domain"
)

// fieldCount is the exact number of pipe-delimited fields per record:
// TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
const fieldCount = 8

// ParseResult holds the parsed records together with the number of
// malformed rows that were skipped.
type ParseResult struct {
	Transactions []domain.Transaction
	Skipped      int
}

// ParseTransactions parses raw sales lines into Transaction records.
// Malformed rows (wrong field count, unparseable numerics) are skipped
// and counted, never surfaced as errors. Input order is preserved and
// duplicates are kept.
func ParseTransactions(lines []string, logger *slog.Logger) ParseResult {
	if logger == nil {
		logger = slog.Default()
	}

	result := ParseResult{
		Transactions: make([]domain.Transaction, 0, len(lines)),
	}

	for _, line := range lines {
		tx, ok := parseLine(line)
		if !ok {
			result.Skipped++
			logger.Debug("skipping malformed row", slog.String("line", line))
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	logger.Info("parsed sales data",
		slog.Int("transactions", len(result.Transactions)),
		slog.Int("skipped", result.Skipped))

	return result
}

func parseLine(line string) (domain.Transaction, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != fieldCount {
		return domain.Transaction{}, false
	}

	quantity, err := strconv.ParseInt(stripThousands(fields[4]), 10, 64)
	if err != nil {
		return domain.Transaction{}, false
	}

	unitPrice, err := decimal.NewFromString(stripThousands(fields[5]))
	if err != nil {
		return domain.Transaction{}, false
	}

	return domain.Transaction{
		TransactionID: strings.TrimSpace(fields[0]),
		Date:          strings.TrimSpace(fields[1]),
		ProductID:     strings.TrimSpace(fields[2]),
		ProductName:   normalizeName(fields[3]),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    strings.TrimSpace(fields[6]),
		Region:        strings.TrimSpace(fields[7]),
	}, true
}

// normalizeName replaces commas and double quotes with spaces so product
// names stay safe in delimited output, then trims the result. Quotes
// would otherwise trigger CSV-style quoting in the enriched export.
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, ",", " ")
	name = strings.ReplaceAll(name, `"`, " ")
	return strings.TrimSpace(name)
}

// stripThousands removes thousands separators from numeric fields
// ("1,250" → "1250") and trims whitespace.
func stripThousands(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}
