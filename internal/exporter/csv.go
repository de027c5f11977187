package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"carboncli/internal/errors"
	"carboncli/pkg/contracts/domain"
)

// CSVWriter writes result tables to the reports directory.
type CSVWriter struct {
	reportsDir string
}

// NewCSVWriter creates a new CSV writer rooted at reportsDir.
func NewCSVWriter(reportsDir string) *CSVWriter {
	return &CSVWriter{reportsDir: reportsDir}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(fileName string, options WriteOptions) error {
	fullPath := w.resolvePath(fileName)

	slog.Info("writing CSV report",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return errors.NewStorageError("failed to create report file", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewStorageError("failed to write CSV header row", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	return writer.Error()
}

// WriteRankings writes a top-K-per-year table to a CSV report.
func (w *CSVWriter) WriteRankings(fileName string, entries []domain.RankingEntry) error {
	records := make([][]string, len(entries))
	for i, e := range entries {
		records[i] = []string{
			formatInt(e.Year),
			formatInt(e.Rank),
			e.Country,
			formatFloat(e.Value),
		}
	}
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   []string{"Year", "Rank", "Country", "Value"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteTrends writes a decade-change table to a CSV report.
func (w *CSVWriter) WriteTrends(fileName string, entries []domain.TrendEntry) error {
	records := make([][]string, len(entries))
	for i, e := range entries {
		records[i] = []string{
			e.Country,
			formatFloat(e.Recent),
			formatFloat(e.Past),
			formatFloat(e.Delta),
		}
	}
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   []string{"Country", "Recent", "Past", "Delta"},
		Records:   records,
		BOMPrefix: true,
	})
}

// resolvePath resolves a report file name against the reports directory
func (w *CSVWriter) resolvePath(fileName string) string {
	if filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(w.reportsDir, fileName)
}
