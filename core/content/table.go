package content

import (
	"strings"

	"github.com/FocuswithJustin/issuetex/core/encoding"
)

const (
	headerCellMarker = "_."
	headerCellPrefix = `\thead `
	cellSeparator    = " & "
)

// TableLine is one formatted table row.
type TableLine struct {
	Text       string
	IsHeader   bool
	NumColumns int
}

// NewTableLine formats raw cell texts into a row. Each cell is trimmed and
// its "#", "&" and "%" are escaped here, since cells do not pass through the
// inline formatter. A cell starting with "_." is a header cell and marks the
// whole line as a header.
func NewTableLine(cells []string) TableLine {
	line := TableLine{NumColumns: len(cells)}
	out := make([]string, 0, len(cells))
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if rest, ok := strings.CutPrefix(cell, headerCellMarker); ok {
			line.IsHeader = true
			out = append(out, headerCellPrefix+encoding.EscapeLaTeXMeta(strings.TrimSpace(rest)))
			continue
		}
		out = append(out, encoding.EscapeLaTeXMeta(cell))
	}
	line.Text = strings.Join(out, cellSeparator)
	return line
}

// ColumnDescriptor returns the column spec for a table of numColumns
// columns, e.g. "|L|L|L|" for three.
func ColumnDescriptor(numColumns int) string {
	return "|" + strings.Repeat("L|", max(numColumns, 1))
}

// FormatTable renders table lines. The first line fixes the column count.
// A header first line becomes the header block; otherwise it is body.
// Without EmitTableHeaders only the body rows are returned.
func FormatTable(lines []TableLine, opts Options) string {
	if len(lines) == 0 {
		return ""
	}
	sep := " " + opts.RowSeparator + "\n"

	first := lines[0]
	body := lines[1:]
	header := ""
	if first.IsHeader {
		header = `\theadstart` + "\n" + first.Text + sep
	} else {
		body = lines
	}

	var rows strings.Builder
	for _, l := range body {
		rows.WriteString(l.Text)
		rows.WriteString(sep)
	}

	if !opts.EmitTableHeaders {
		return rows.String()
	}

	var sb strings.Builder
	sb.WriteString(`\begin{tabulary}{\textwidth}{` + ColumnDescriptor(first.NumColumns) + "}\n")
	sb.WriteString(header)
	sb.WriteString(`\tbody` + "\n")
	sb.WriteString(rows.String())
	sb.WriteString(`\tend` + "\n")
	sb.WriteString(`\end{tabulary}`)
	return sb.String()
}
