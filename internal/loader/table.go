package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"carboncli/internal/errors"
)

// Table is a raw tabular source: one header row plus data rows, all
// fields still strings. Rows may be ragged; consumers must bounds-check.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads a tabular file into a Table. The format is picked by
// extension: .xlsx workbooks go through excelize (first sheet), anything
// else is treated as CSV. skipRows drops metadata preamble lines before
// the header (World Bank exports carry four).
func ReadTable(path string, skipRows int) (Table, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return Table{}, err
	}

	switch {
	case skipRows > 0:
		if skipRows >= len(rows) {
			rows = nil
		} else {
			rows = rows[skipRows:]
		}
	default:
		// World Bank exports carry a few metadata lines before the real
		// header; find the first row that names a country column.
		rows = rows[detectHeaderRow(rows):]
	}
	if len(rows) == 0 {
		return Table{}, errors.NewParsingError(
			fmt.Sprintf("file %s has no header row", filepath.Base(path)), nil)
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	return Table{Header: header, Rows: rows[1:]}, nil
}

// detectHeaderRow scans the leading rows for one naming a country
// column and returns its index. Falls back to the first row so that a
// source without any country column still reaches the parser, which
// reports it as malformed.
func detectHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > 20 {
		limit = 20
	}
	for i := 0; i < limit; i++ {
		if findColumn(rows[i], countryColumns) >= 0 {
			return i
		}
	}
	return 0
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open CSV file", err).
			WithContext("path", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV file", err).
			WithContext("path", path)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read workbook sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}
	return rows, nil
}
