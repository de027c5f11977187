package domain

import (
	"fmt"
	"strconv"
)

// Metric identifies one of the three tabular inputs.
type Metric string

const (
	MetricEmissions  Metric = "emissions"
	MetricGDP        Metric = "gdp"
	MetricPopulation Metric = "population"
)

// Value is an optional float64. The zero value is missing. Missing is
// distinct from zero and propagates through every derivation instead of
// being defaulted.
type Value struct {
	Float64 float64
	Valid   bool
}

// NewValue returns a present Value.
func NewValue(f float64) Value {
	return Value{Float64: f, Valid: true}
}

// Missing returns an absent Value.
func Missing() Value {
	return Value{}
}

// Scale multiplies a present value by factor; missing stays missing.
func (v Value) Scale(factor float64) Value {
	if !v.Valid {
		return v
	}
	return NewValue(v.Float64 * factor)
}

// String renders the value for reports; missing renders as empty.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

// RawRecord is one normalized row of a single source: a country, a year
// and the (possibly missing) value of that source's metric. Records are
// never mutated after the loader produces them.
type RawRecord struct {
	Country string `json:"country" validate:"required"`
	Year    int    `json:"year" validate:"required,min=1"`
	Value   Value  `json:"value"`
}

// CountryYearRecord is the joined row for one (canonical country, year)
// key, carrying whichever of the three metrics were available.
type CountryYearRecord struct {
	Country    string `json:"country" validate:"required"`
	Year       int    `json:"year" validate:"required,min=1"`
	Emissions  Value  `json:"emissions"`
	GDP        Value  `json:"gdp"`
	Population Value  `json:"population"`
}

// Key returns the composite join key of the record.
func (r CountryYearRecord) Key() string {
	return fmt.Sprintf("%s|%d", r.Country, r.Year)
}

// DerivedRecord extends CountryYearRecord with the per-capita metrics.
// Both derived fields are missing whenever population is missing or zero.
type DerivedRecord struct {
	CountryYearRecord
	EmissionsPerCapita Value `json:"emissions_per_capita"`
	GDPPerCapita       Value `json:"gdp_per_capita"`
}

// PerCapita selects one of the two derived metrics.
type PerCapita string

const (
	PerCapitaEmissions PerCapita = "emissions_per_capita"
	PerCapitaGDP       PerCapita = "gdp_per_capita"
)

// Of returns the selected per-capita value of a record.
func (m PerCapita) Of(r DerivedRecord) Value {
	if m == PerCapitaGDP {
		return r.GDPPerCapita
	}
	return r.EmissionsPerCapita
}

// RankingEntry is one row of a top-K-per-year table. Rank is 1-based
// within the entry's year.
type RankingEntry struct {
	Year    int     `json:"year" csv:"Year"`
	Rank    int     `json:"rank" csv:"Rank" validate:"min=1"`
	Country string  `json:"country" csv:"Country"`
	Value   float64 `json:"value" csv:"Value"`
}

// TrendEntry is one row of a decade-change table. Delta is Recent - Past;
// positive means emissions per capita grew over the decade.
type TrendEntry struct {
	Country string  `json:"country" csv:"Country"`
	Recent  float64 `json:"recent" csv:"Recent"`
	Past    float64 `json:"past" csv:"Past"`
	Delta   float64 `json:"delta" csv:"Delta"`
}

// Results bundles the tables one pipeline run produces for the
// presentation layer.
type Results struct {
	EmissionsTop  []RankingEntry `json:"emissions_top"`
	GDPTop        []RankingEntry `json:"gdp_top"`
	TrendIncrease []TrendEntry   `json:"trend_increase,omitempty"`
	TrendDecrease []TrendEntry   `json:"trend_decrease,omitempty"`
	ReferenceYear int            `json:"reference_year,omitempty"`
}
