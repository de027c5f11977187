package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"carboncli/internal/config"
	"carboncli/pkg/contracts/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadTable_CSV(t *testing.T) {
	path := writeFile(t, "emissions.csv", "Year,Country,Total\n2015,Poland,80000\n2015,France,75000\n")

	table, err := ReadTable(path, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Year", "Country", "Total"}, table.Header)
	assert.Len(t, table.Rows, 2)
}

func TestReadTable_DetectsWorldBankPreamble(t *testing.T) {
	content := `"Data Source","World Development Indicators",
"Last Updated Date","2020-01-01",

"Country Name","Country Code","Indicator Name","2015"
"Poland","POL","Population, total","38000000"
`
	path := writeFile(t, "population.csv", content)

	table, err := ReadTable(path, 0)
	require.NoError(t, err)

	assert.Equal(t, "Country Name", table.Header[0])
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Poland", table.Rows[0][0])
}

func TestReadTable_ExplicitSkipRows(t *testing.T) {
	path := writeFile(t, "data.csv", "junk line,\nYear,Country,Total\n2015,Poland,1\n")

	table, err := ReadTable(path, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"Year", "Country", "Total"}, table.Header)
	assert.Len(t, table.Rows, 1)
}

func TestReadTable_SkipRowsPastEnd(t *testing.T) {
	path := writeFile(t, "data.csv", "Year,Country\n")

	_, err := ReadTable(path, 5)
	assert.Error(t, err)
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"), 0)
	assert.Error(t, err)
}

func TestReadTable_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"Country Name", "Country Code", "2014", "2015"},
		{"Poland", "POL", "545000000", "477000000"},
	}
	for r, row := range cells {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "gdp.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, err := ReadTable(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "Country Name", table.Header[0])
	require.Len(t, table.Rows, 1)
}

// XLSX and CSV loaders must produce identical records for equivalent content.
func TestLoad_XLSXMatchesCSV(t *testing.T) {
	ctx := context.Background()
	aliases := config.DefaultAliasTable()

	csvPath := writeFile(t, "gdp.csv", "Country Name,Country Code,2014,2015\nPoland,POL,100,200\n")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"Country Name", "Country Code", "2014", "2015"},
		{"Poland", "POL", 100, 200},
	}
	for r, row := range cells {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}
	xlsxPath := filepath.Join(t.TempDir(), "gdp.xlsx")
	require.NoError(t, f.SaveAs(xlsxPath))

	fromCSV, err := Load(ctx, Source{Name: "gdp", Metric: domain.MetricGDP, Path: csvPath}, aliases)
	require.NoError(t, err)
	fromXLSX, err := Load(ctx, Source{Name: "gdp", Metric: domain.MetricGDP, Path: xlsxPath}, aliases)
	require.NoError(t, err)

	assert.Equal(t, indexRecords(fromCSV), indexRecords(fromXLSX))
}
