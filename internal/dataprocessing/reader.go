package dataprocessing

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadSalesLines reads the sales data file and returns its data lines,
// skipping the header line and any blank lines. Files written by legacy
// exports are not always UTF-8, so non-UTF-8 content falls back to
// Windows-1252 decoding.
//
// On failure it returns an empty slice together with the error; the
// pipeline is expected to proceed with zero records.
func ReadSalesLines(path string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales file %s: %w", path, err)
	}

	text, encoding := decodeContent(content)

	rawLines := strings.Split(text, "\n")
	lines := make([]string, 0, len(rawLines))
	for i, line := range rawLines {
		line = strings.TrimSpace(line)
		if i == 0 || line == "" {
			continue // header or blank
		}
		lines = append(lines, line)
	}

	logger.Info("read sales data",
		slog.String("path", path),
		slog.String("encoding", encoding),
		slog.Int("lines", len(lines)))

	return lines, nil
}

// decodeContent returns the file content as UTF-8 text. Non-UTF-8 input
// is treated as Windows-1252, which also covers the Latin-1 range the
// legacy exports use; the decoder maps unknown bytes to U+FFFD instead
// of failing.
func decodeContent(content []byte) (string, string) {
	// Strip a UTF-8 BOM if present
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	if utf8.Valid(content) {
		return string(content), "utf-8"
	}

	decoded, _ := charmap.Windows1252.NewDecoder().Bytes(content)
	return string(decoded), "windows-1252"
}
