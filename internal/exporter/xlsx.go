package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salescli/pkg/contracts/domain"
)

const enrichedSheet = "Enriched Sales"

// XLSXWriter writes the enriched record set as an Excel workbook.
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates an Excel writer. A nil logger falls back to the
// slog default.
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger}
}

// WriteEnriched writes one sheet with the same columns as the
// pipe-delimited export.
func (w *XLSXWriter) WriteEnriched(path string, records []domain.EnrichedTransaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", enrichedSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := make([]interface{}, len(enrichedHeader))
	for i, h := range enrichedHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(enrichedSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", i, err)
		}
		values := enrichedRow(r)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		if err := f.SetSheetRow(enrichedSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("saved enriched workbook",
		slog.String("path", path),
		slog.Int("records", len(records)))

	return nil
}
