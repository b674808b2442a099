// Package exporter writes the enriched record set to flat files, in the
// legacy pipe-delimited format and optionally as an Excel workbook.
//
// Pipe-delimited output goes through encoding/csv with '|' as the
// delimiter, so a field containing a double quote or newline would be
// CSV-quoted. The parser strips quotes from product names, keeping the
// export plain one-record-per-line in practice.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"salescli/pkg/contracts/domain"
)

// enrichedHeader is the fixed column set of the enriched export.
var enrichedHeader = []string{
	"Transaction_ID", "Date", "Product_ID", "Product_Name",
	"Quantity", "Unit_Price", "Customer_ID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// PipeWriter writes pipe-delimited files.
type PipeWriter struct {
	logger *slog.Logger
}

// NewPipeWriter creates a pipe-delimited file writer. A nil logger falls
// back to the slog default.
func NewPipeWriter(logger *slog.Logger) *PipeWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PipeWriter{logger: logger}
}

// WriteEnriched writes the enriched record set to path, one record per
// line. Unmatched catalog fields render as empty strings, the match flag
// as "true"/"false".
func (w *PipeWriter) WriteEnriched(path string, records []domain.EnrichedTransaction) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, enrichedRow(r))
	}

	if err := w.writeFile(path, enrichedHeader, rows); err != nil {
		return err
	}

	w.logger.Info("saved enriched data",
		slog.String("path", path),
		slog.Int("records", len(records)))

	return nil
}

func (w *PipeWriter) writeFile(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = '|'
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// enrichedRow renders one enriched transaction as its column values.
func enrichedRow(r domain.EnrichedTransaction) []string {
	category, brand, rating := "", "", ""
	if r.Category != nil {
		category = *r.Category
	}
	if r.Brand != nil {
		brand = *r.Brand
	}
	if r.Rating != nil {
		rating = r.Rating.String()
	}

	return []string{
		r.TransactionID,
		r.Date,
		r.ProductID,
		r.ProductName,
		strconv.FormatInt(r.Quantity, 10),
		r.UnitPrice.String(),
		r.CustomerID,
		r.Region,
		category,
		brand,
		rating,
		strconv.FormatBool(r.Matched),
	}
}
