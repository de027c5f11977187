package merge

import (
	"context"
	"log/slog"
	"sort"

	"carboncli/internal/config"
	"carboncli/pkg/contracts/domain"
)

// Options configures a merge run.
type Options struct {
	// StartYear and EndYear bound the dataset inclusively. Zero means
	// unbounded on that side.
	StartYear int
	EndYear   int
}

// Inputs carries the three normalized record sets, one per metric.
type Inputs struct {
	Emissions  []domain.RawRecord
	GDP        []domain.RawRecord
	Population []domain.RawRecord
}

type joinKey struct {
	country string
	year    int
}

// Merge performs a full outer join of the three sources over the
// composite key (canonical country, year). Every key present in at
// least one source yields exactly one record; metrics the other sources
// lack stay missing. The join is symmetric in the sources, so feeding
// them in any order produces the same record set.
//
// When two raw names of one source collapse onto the same canonical key,
// a present value beats a missing one and the later record wins among
// present values.
func Merge(ctx context.Context, in Inputs, aliases *config.AliasTable, opts Options) []domain.CountryYearRecord {
	logger := slog.Default()

	joined := make(map[joinKey]*domain.CountryYearRecord)

	assign := func(records []domain.RawRecord, set func(*domain.CountryYearRecord, domain.Value)) {
		for _, r := range records {
			key := joinKey{country: Canonicalize(r.Country, aliases), year: r.Year}
			rec, ok := joined[key]
			if !ok {
				rec = &domain.CountryYearRecord{Country: key.country, Year: key.year}
				joined[key] = rec
			}
			set(rec, r.Value)
		}
	}

	assign(in.Emissions, func(rec *domain.CountryYearRecord, v domain.Value) {
		if v.Valid || !rec.Emissions.Valid {
			rec.Emissions = v
		}
	})
	assign(in.GDP, func(rec *domain.CountryYearRecord, v domain.Value) {
		if v.Valid || !rec.GDP.Valid {
			rec.GDP = v
		}
	})
	assign(in.Population, func(rec *domain.CountryYearRecord, v domain.Value) {
		if v.Valid || !rec.Population.Valid {
			rec.Population = v
		}
	})

	records := make([]domain.CountryYearRecord, 0, len(joined))
	for _, rec := range joined {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Country != records[j].Country {
			return records[i].Country < records[j].Country
		}
		return records[i].Year < records[j].Year
	})

	filtered := FilterYears(records, opts.StartYear, opts.EndYear)

	logger.InfoContext(ctx, "merged sources",
		slog.Int("joined_records", len(records)),
		slog.Int("after_year_filter", len(filtered)),
		slog.Int("start_year", opts.StartYear),
		slog.Int("end_year", opts.EndYear))

	return filtered
}

// FilterYears returns the records whose year lies in [start, end]
// inclusive. A zero bound leaves that side open. The input is not
// mutated.
func FilterYears(records []domain.CountryYearRecord, start, end int) []domain.CountryYearRecord {
	if start == 0 && end == 0 {
		return records
	}
	filtered := make([]domain.CountryYearRecord, 0, len(records))
	for _, r := range records {
		if start != 0 && r.Year < start {
			continue
		}
		if end != 0 && r.Year > end {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
