package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carboncli/internal/config"
	apperrors "carboncli/internal/errors"
	"carboncli/pkg/contracts/domain"
)

func emissionsSource() Source {
	return Source{Name: "emissions", Metric: domain.MetricEmissions}
}

func TestParse_LongFormat(t *testing.T) {
	table := Table{
		Header: []string{"Year", "Country", "Total"},
		Rows: [][]string{
			{"2015", "Poland", "80000"},
			{"2015", "France", "75000"},
			{"2016", "Poland", ""},
			{"2016", "France", "not a number"},
		},
	}

	records, err := Parse(context.Background(), emissionsSource(), table, config.DefaultAliasTable())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, domain.RawRecord{Country: "Poland", Year: 2015, Value: domain.NewValue(80000)}, records[0])
	// empty and unparseable cells degrade to missing, never errors
	assert.False(t, records[2].Value.Valid)
	assert.False(t, records[3].Value.Valid)
}

func TestParse_WideFormat(t *testing.T) {
	table := Table{
		Header: []string{"Country Name", "Country Code", "Indicator Name", "2014", "2015"},
		Rows: [][]string{
			{"Poland", "POL", "GDP (current US$)", "545000000", "477000000"},
			{"France", "FRA", "GDP (current US$)", "", "2440000000"},
		},
	}

	src := Source{Name: "gdp", Metric: domain.MetricGDP}
	records, err := Parse(context.Background(), src, table, config.DefaultAliasTable())
	require.NoError(t, err)
	require.Len(t, records, 4)

	byKey := indexRecords(records)
	assert.Equal(t, domain.NewValue(545000000), byKey[rawKey{"Poland", 2014}])
	assert.Equal(t, domain.NewValue(477000000), byKey[rawKey{"Poland", 2015}])
	assert.False(t, byKey[rawKey{"France", 2014}].Valid)
	assert.Equal(t, domain.NewValue(2440000000), byKey[rawKey{"France", 2015}])
}

func TestParse_MissingCountryColumnIsMalformed(t *testing.T) {
	table := Table{
		Header: []string{"Region", "Year", "Total"},
		Rows:   [][]string{{"Somewhere", "2015", "1"}},
	}

	_, err := Parse(context.Background(), emissionsSource(), table, config.DefaultAliasTable())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMalformedInput))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "emissions", appErr.Context["source"])
}

func TestParse_DuplicateRowsLastWins(t *testing.T) {
	table := Table{
		Header: []string{"Year", "Country", "Total"},
		Rows: [][]string{
			{"2015", "Poland", "100"},
			{"2015", "Poland", "200"},
		},
	}

	records, err := Parse(context.Background(), emissionsSource(), table, config.DefaultAliasTable())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.NewValue(200), records[0].Value)
}

func TestParse_NonCountryRowsDropped(t *testing.T) {
	table := Table{
		Header: []string{"Country Name", "Country Code", "2015"},
		Rows: [][]string{
			{"World", "WLD", "7000000000"},
			{"European Union", "EUU", "450000000"},
			{"Poland", "POL", "38000000"},
		},
	}

	src := Source{Name: "population", Metric: domain.MetricPopulation}
	records, err := Parse(context.Background(), src, table, config.DefaultAliasTable())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Poland", records[0].Country)
}

func TestParse_ScaleApplied(t *testing.T) {
	table := Table{
		Header: []string{"Year", "Country", "Total"},
		Rows:   [][]string{{"2015", "Poland", "80"}},
	}

	src := Source{Name: "emissions", Metric: domain.MetricEmissions, Scale: 1000}
	records, err := Parse(context.Background(), src, table, config.DefaultAliasTable())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.NewValue(80000), records[0].Value)
}

func TestParse_LongFormatWithoutValueColumn(t *testing.T) {
	table := Table{
		Header: []string{"Year", "Country"},
		Rows:   [][]string{{"2015", "Poland"}},
	}

	_, err := Parse(context.Background(), emissionsSource(), table, config.DefaultAliasTable())
	assert.Error(t, err)
}

func TestParse_WideFormatWithoutYearColumns(t *testing.T) {
	table := Table{
		Header: []string{"Country Name", "Country Code", "Indicator Name"},
		Rows:   [][]string{{"Poland", "POL", "GDP"}},
	}

	src := Source{Name: "gdp", Metric: domain.MetricGDP}
	_, err := Parse(context.Background(), src, table, config.DefaultAliasTable())
	assert.Error(t, err)
}

func TestParse_CommaSeparatedThousands(t *testing.T) {
	table := Table{
		Header: []string{"Year", "Country", "Total"},
		Rows:   [][]string{{"2015", "Poland", "1,234,567"}},
	}

	records, err := Parse(context.Background(), emissionsSource(), table, config.DefaultAliasTable())
	require.NoError(t, err)
	assert.Equal(t, domain.NewValue(1234567), records[0].Value)
}

func TestParse_SkipsRowsWithUnparseableYear(t *testing.T) {
	table := Table{
		Header: []string{"Year", "Country", "Total"},
		Rows: [][]string{
			{"n/a", "Poland", "100"},
			{"2015", "Poland", "100"},
		},
	}

	records, err := Parse(context.Background(), emissionsSource(), table, config.DefaultAliasTable())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func indexRecords(records []domain.RawRecord) map[rawKey]domain.Value {
	byKey := make(map[rawKey]domain.Value, len(records))
	for _, r := range records {
		byKey[rawKey{country: r.Country, year: r.Year}] = r.Value
	}
	return byKey
}
