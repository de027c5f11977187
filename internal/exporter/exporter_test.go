package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carboncli/pkg/contracts/domain"
)

var sampleRankings = []domain.RankingEntry{
	{Year: 2015, Rank: 1, Country: "QATAR", Value: 35.1234},
	{Year: 2015, Rank: 2, Country: "KUWAIT", Value: 23.9},
}

var sampleTrends = []domain.TrendEntry{
	{Country: "CHINA", Recent: 7.5, Past: 5.2, Delta: 2.3},
}

func TestParseDisplayMode(t *testing.T) {
	tests := []struct {
		input   string
		want    DisplayMode
		wantErr bool
	}{
		{"plain", DisplayPlain, false},
		{"pretty", DisplayPretty, false},
		{"fancy", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDisplayMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSVWriter_WriteRankings(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteRankings("emissions_top.csv", sampleRankings))

	data, err := os.ReadFile(filepath.Join(dir, "emissions_top.csv"))
	require.NoError(t, err)

	// strip the BOM before parsing
	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Year", "Rank", "Country", "Value"}, rows[0])
	assert.Equal(t, []string{"2015", "1", "QATAR", "35.1234"}, rows[1])
}

func TestCSVWriter_WriteTrends(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteTrends("trend_increase.csv", sampleTrends))

	data, err := os.ReadFile(filepath.Join(dir, "trend_increase.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "CHINA,7.5000,5.2000,2.3000")
}

func TestCSVWriter_CreatesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(filepath.Join(dir, "nested", "reports"))

	require.NoError(t, writer.WriteRankings("out.csv", sampleRankings))
	_, err := os.Stat(filepath.Join(dir, "nested", "reports", "out.csv"))
	assert.NoError(t, err)
}

func TestRenderer_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, DisplayPlain)

	r.RenderRankings("Top emitters", sampleRankings)

	out := buf.String()
	assert.Contains(t, out, "Top emitters")
	assert.Contains(t, out, "QATAR")
	assert.Contains(t, out, "35.1234")
	assert.NotContains(t, out, "+--")
}

func TestRenderer_Pretty(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, DisplayPretty)

	r.RenderTrends("Largest increases", sampleTrends)

	out := buf.String()
	assert.Contains(t, out, "Largest increases")
	assert.Contains(t, out, "CHINA")
	// bordered table decoration
	assert.Contains(t, out, "+--")
}

func TestRenderer_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, DisplayPlain)

	r.RenderRankings("Nothing here", nil)

	assert.Contains(t, buf.String(), "(no data)")
}
