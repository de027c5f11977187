package exporter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/olekukonko/tablewriter"

	"carboncli/pkg/contracts/domain"
)

// DisplayMode controls how result tables are rendered on the console.
type DisplayMode string

const (
	// DisplayPlain renders tab-aligned columns with no decoration.
	DisplayPlain DisplayMode = "plain"
	// DisplayPretty renders bordered ASCII tables.
	DisplayPretty DisplayMode = "pretty"
)

// ParseDisplayMode validates a display mode flag value.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case DisplayPlain, DisplayPretty:
		return DisplayMode(s), nil
	default:
		return "", fmt.Errorf("unknown display mode %q (want plain or pretty)", s)
	}
}

// Renderer writes result tables to a console stream. It is the
// presentation collaborator of the pipeline: the core never formats.
type Renderer struct {
	out  io.Writer
	mode DisplayMode
}

// NewRenderer creates a renderer for the given stream and mode.
func NewRenderer(out io.Writer, mode DisplayMode) *Renderer {
	return &Renderer{out: out, mode: mode}
}

// RenderRankings renders a top-K-per-year table under a title.
func (r *Renderer) RenderRankings(title string, entries []domain.RankingEntry) {
	header := []string{"Year", "Rank", "Country", "Value"}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{formatInt(e.Year), formatInt(e.Rank), e.Country, formatFloat(e.Value)}
	}
	r.renderTable(title, header, rows)
}

// RenderTrends renders a decade-change table under a title.
func (r *Renderer) RenderTrends(title string, entries []domain.TrendEntry) {
	header := []string{"Country", "Recent", "Past", "Delta"}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Country, formatFloat(e.Recent), formatFloat(e.Past), formatFloat(e.Delta)}
	}
	r.renderTable(title, header, rows)
}

func (r *Renderer) renderTable(title string, header []string, rows [][]string) {
	fmt.Fprintf(r.out, "\n%s\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(r.out, "(no data)")
		return
	}

	if r.mode == DisplayPretty {
		table := tablewriter.NewWriter(r.out)
		table.SetHeader(header)
		table.AppendBulk(rows)
		table.Render()
		return
	}

	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	printRow(w, header)
	for _, row := range rows {
		printRow(w, row)
	}
	w.Flush()
}

func printRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}
