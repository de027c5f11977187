package loader

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"carboncli/internal/config"
	"carboncli/internal/errors"
	"carboncli/pkg/contracts/domain"
)

// Source describes one tabular input feeding the pipeline.
type Source struct {
	// Name identifies the source in errors and logs ("emissions").
	Name string
	// Metric is the measure this source carries.
	Metric domain.Metric
	// Path is the file to read.
	Path string
	// SkipRows drops this many lines before the header row. Zero means
	// the header row is detected by scanning for a country column.
	SkipRows int
	// Scale multiplies every parsed value; zero means 1. The emissions
	// source uses 1000 to convert thousand metric tons to metric tons.
	Scale float64
}

// header names accepted for the identifying columns, lowercase
var (
	countryColumns     = []string{"country", "country name"}
	countryCodeColumns = []string{"country code", "code"}
	yearColumns        = []string{"year"}
)

// valueColumns lists the accepted value-column names per metric for
// long-format sources, most specific first.
var valueColumns = map[domain.Metric][]string{
	domain.MetricEmissions:  {"total", "emissions", "value"},
	domain.MetricGDP:        {"gdp", "value"},
	domain.MetricPopulation: {"population", "value"},
}

// Load reads and normalizes one source into RawRecords.
func Load(ctx context.Context, src Source, aliases *config.AliasTable) ([]domain.RawRecord, error) {
	table, err := ReadTable(src.Path, src.SkipRows)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, src, table, aliases)
}

// Parse normalizes an already-read Table into RawRecords.
//
// Both source shapes are handled: long format, where each row carries a
// year field next to the value, and wide (World-Bank-style) format,
// where every year is its own column. Unparseable or empty value cells
// become missing, never errors. Duplicate (country, year) rows within
// one source keep the position of the first occurrence and the value of
// the last one.
func Parse(ctx context.Context, src Source, table Table, aliases *config.AliasTable) ([]domain.RawRecord, error) {
	logger := slog.Default()

	countryIdx := findColumn(table.Header, countryColumns)
	if countryIdx < 0 {
		return nil, errors.NewMalformedInputError(src.Name, nil).
			WithContext("header", strings.Join(table.Header, ","))
	}
	codeIdx := findColumn(table.Header, countryCodeColumns)
	yearIdx := findColumn(table.Header, yearColumns)

	scale := src.Scale
	if scale == 0 {
		scale = 1
	}

	var records []domain.RawRecord
	// index of the record holding each (country, year), for last-wins
	seen := make(map[rawKey]int)
	dropped := 0

	emit := func(country string, year int, value domain.Value) {
		key := rawKey{country: country, year: year}
		if i, ok := seen[key]; ok {
			records[i].Value = value
			return
		}
		seen[key] = len(records)
		records = append(records, domain.RawRecord{Country: country, Year: year, Value: value})
	}

	if yearIdx >= 0 {
		// long format: one row per (country, year)
		valueIdx := findColumn(table.Header, valueColumns[src.Metric])
		if valueIdx < 0 {
			return nil, errors.NewParsingError(
				"no value column found in long-format source", nil).
				WithContext("source", src.Name).
				WithContext("header", strings.Join(table.Header, ","))
		}

		for _, row := range table.Rows {
			country := cell(row, countryIdx)
			if country == "" {
				continue
			}
			if codeIdx >= 0 && aliases.IsNonCountry(cell(row, codeIdx)) {
				dropped++
				continue
			}
			year, ok := parseYear(cell(row, yearIdx))
			if !ok {
				continue
			}
			emit(country, year, parseValue(cell(row, valueIdx)).Scale(scale))
		}
	} else {
		// wide format: every year-shaped header is a value column,
		// kept in header order so output order is stable
		type yearCol struct {
			idx  int
			year int
		}
		var yearCols []yearCol
		for i, name := range table.Header {
			if year, ok := parseYear(name); ok {
				yearCols = append(yearCols, yearCol{idx: i, year: year})
			}
		}
		if len(yearCols) == 0 {
			return nil, errors.NewParsingError(
				"no year columns found in wide-format source", nil).
				WithContext("source", src.Name).
				WithContext("header", strings.Join(table.Header, ","))
		}

		for _, row := range table.Rows {
			country := cell(row, countryIdx)
			if country == "" {
				continue
			}
			if codeIdx >= 0 && aliases.IsNonCountry(cell(row, codeIdx)) {
				dropped++
				continue
			}
			for _, yc := range yearCols {
				emit(country, yc.year, parseValue(cell(row, yc.idx)).Scale(scale))
			}
		}
	}

	logger.InfoContext(ctx, "normalized source",
		slog.String("source", src.Name),
		slog.String("metric", string(src.Metric)),
		slog.Int("records", len(records)),
		slog.Int("non_country_rows_dropped", dropped))

	return records, nil
}

type rawKey struct {
	country string
	year    int
}

// findColumn returns the index of the first header matching any of the
// candidate names, case-insensitively, or -1.
func findColumn(header []string, candidates []string) int {
	for _, want := range candidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseYear(s string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || year < 1000 || year > 9999 {
		return 0, false
	}
	return year, true
}

// parseValue turns a raw cell into a Value. Thousands separators are
// stripped; anything unparseable degrades to missing.
func parseValue(s string) domain.Value {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return domain.Missing()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Missing()
	}
	return domain.NewValue(f)
}
