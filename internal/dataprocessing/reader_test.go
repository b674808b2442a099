package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSales(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.txt")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestReadSalesLines(t *testing.T) {
	content := "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n" +
		"T001|2024-01-05|P101|Widget A|10|25.00|C001|North\n" +
		"\n" +
		"T002|2024-01-06|P102|Widget B|5|10.00|C002|South\n"

	lines, err := ReadSalesLines(writeTempSales(t, []byte(content)), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"T001|2024-01-05|P101|Widget A|10|25.00|C001|North",
		"T002|2024-01-06|P102|Widget B|5|10.00|C002|South",
	}, lines)
}

func TestReadSalesLines_MissingFile(t *testing.T) {
	lines, err := ReadSalesLines(filepath.Join(t.TempDir(), "nope.txt"), nil)

	assert.Error(t, err)
	assert.Empty(t, lines)
}

func TestReadSalesLines_StripsBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF},
		[]byte("header\nT001|2024-01-05|P101|Widget A|10|25.00|C001|North\n")...)

	lines, err := ReadSalesLines(writeTempSales(t, content), nil)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "T001|2024-01-05|P101|Widget A|10|25.00|C001|North", lines[0])
}

func TestReadSalesLines_NonUTF8Fallback(t *testing.T) {
	// "Café" in Windows-1252: 0xE9 is not valid UTF-8.
	content := []byte("header\nT001|2024-01-05|P101|Caf\xe9 Set|10|25.00|C001|North\n")

	lines, err := ReadSalesLines(writeTempSales(t, content), nil)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Café Set")
}

func TestReadSalesLines_WindowsLineEndings(t *testing.T) {
	content := "header\r\nT001|2024-01-05|P101|Widget A|10|25.00|C001|North\r\n"

	lines, err := ReadSalesLines(writeTempSales(t, []byte(content)), nil)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "T001|2024-01-05|P101|Widget A|10|25.00|C001|North", lines[0])
}
