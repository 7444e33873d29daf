package report

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Alignment selects how a column is justified. Numeric columns are
// right-aligned so magnitudes line up.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table is one renderable analysis result.
type Table struct {
	Title   string
	Headers []string
	Aligns  []Alignment
	Rows    [][]string
	// Empty is printed instead of the table when there are no rows.
	Empty string
}

// AddRow appends one row. Short rows are padded when rendering.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render returns the table as a rounded-border string, or the Empty message
// when there is nothing to show.
func (t Table) Render() string {
	tw, fallback := t.writer()
	if tw == nil {
		return fallback
	}
	return tw.Render()
}

// RenderTSV returns the table as tab-separated values for piped output.
func (t Table) RenderTSV() string {
	tw, fallback := t.writer()
	if tw == nil {
		return fallback
	}
	return tw.RenderTSV()
}

func (t Table) writer() (table.Writer, string) {
	if len(t.Rows) == 0 {
		if t.Empty != "" {
			return nil, t.Empty
		}
		return nil, "No results"
	}

	columns := len(t.Headers)
	if columns == 0 {
		return nil, ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = t.Headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(t.Aligns) && t.Aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw, ""
}

// Fprint writes the optional title and the rendered table to w. When w is
// not a terminal the table is emitted as tab-separated values instead, so
// piped output stays friendly to cut and awk.
func (t Table) Fprint(w io.Writer) {
	if t.Title != "" {
		fmt.Fprintln(w, t.Title)
	}
	if isTerminal(w) {
		fmt.Fprintln(w, t.Render())
		return
	}
	fmt.Fprintln(w, t.RenderTSV())
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
