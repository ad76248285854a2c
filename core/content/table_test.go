package content

import (
	"strings"
	"testing"
)

func TestNewTableLine(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  TableLine
	}{
		{
			name:  "header cells",
			cells: []string{"_.Name", "_. Value"},
			want:  TableLine{Text: `\thead Name & \thead Value`, IsHeader: true, NumColumns: 2},
		},
		{
			name:  "one header cell marks the line",
			cells: []string{"plain", "_.Name"},
			want:  TableLine{Text: `plain & \thead Name`, IsHeader: true, NumColumns: 2},
		},
		{
			name:  "body cells are trimmed and escaped",
			cells: []string{" a ", "50%", "#1"},
			want:  TableLine{Text: `a & 50\% & \#1`, NumColumns: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTableLine(tt.cells)
			if got != tt.want {
				t.Errorf("NewTableLine(%q) = %+v, want %+v", tt.cells, got, tt.want)
			}
		})
	}
}

func TestColumnDescriptor(t *testing.T) {
	tests := map[int]string{
		1: "|L|",
		2: "|L|L|",
		3: "|L|L|L|",
		0: "|L|",
	}
	for n, want := range tests {
		if got := ColumnDescriptor(n); got != want {
			t.Errorf("ColumnDescriptor(%d) = %q, want %q", n, got, want)
		}
	}
}

// TestFormatTableColumnsFromFirstRow verifies later rows do not change the
// column count.
func TestFormatTableColumnsFromFirstRow(t *testing.T) {
	m := mustParse(t, "#[T]#\n|a|b|c|\n|d|e|\n|f|g|h|i|\n")

	want := strings.Join([]string{
		`\begin{tabulary}{\textwidth}{|L|L|L|}`,
		`\tbody`,
		`a & b & c \tnl`,
		`d & e \tnl`,
		`f & g & h & i \tnl`,
		`\tend`,
		`\end{tabulary}`,
	}, "\n")
	if got := m.Text("t"); got != want {
		t.Errorf("table =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatTableHeader(t *testing.T) {
	m := mustParse(t, "#[T]#\n|=. Ignored caption\n|_.Name|_. Value|\n|x|y|\n")

	want := strings.Join([]string{
		`\begin{tabulary}{\textwidth}{|L|L|}`,
		`\theadstart`,
		`\thead Name & \thead Value \tnl`,
		`\tbody`,
		`x & y \tnl`,
		`\tend`,
		`\end{tabulary}`,
	}, "\n")
	if got := m.Text("t"); got != want {
		t.Errorf("table =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(m.Text("t"), "Ignored caption") {
		t.Error("caption should not be rendered")
	}
}

func TestFormatTableWithoutHeaders(t *testing.T) {
	text := "#[T]#\n|_.Name|_.Value|\n|x|y|\n|z|w|\n"
	m := mustParse(t, text, WithTableHeaders(false), WithRowSeparator(`\\`))

	want := "x & y \\\\\nz & w \\\\"
	if got := m.Text("t"); got != want {
		t.Errorf("rows = %q, want %q", got, want)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if got := FormatTable(nil, DefaultOptions()); got != "" {
		t.Errorf("FormatTable(nil) = %q, want empty", got)
	}
}
