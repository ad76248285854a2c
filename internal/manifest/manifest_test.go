package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FocuswithJustin/issuetex/core/content"
	ierrors "github.com/FocuswithJustin/issuetex/core/errors"
	"github.com/FocuswithJustin/issuetex/internal/validation"
)

const validManifest = `
issues:
  - name: sqli
    issue: issues/sqli.textile
    evidences:
      - path: evidence/login.textile
        location: 10.0.0.5
      - path: evidence/raw.textile
  - name: xss
    issue: issues/xss.textile
    template: templates/short.tex
options:
  table_headers: false
  row_separator: '\\'
`

func TestLoad(t *testing.T) {
	t.Parallel()

	m, err := Load(strings.NewReader(validManifest), "/reports/acme")
	require.NoError(t, err)

	assert.Equal(t, "/reports/acme", m.Dir)
	require.Len(t, m.Issues, 2)
	assert.Equal(t, "sqli", m.Issues[0].Name)
	assert.Equal(t, "issues/sqli.textile", m.Issues[0].Issue)
	require.Len(t, m.Issues[0].Evidences, 2)
	assert.Equal(t, "10.0.0.5", m.Issues[0].Evidences[0].Location)
	assert.Empty(t, m.Issues[0].Evidences[1].Location)
	assert.Equal(t, "templates/short.tex", m.Issues[1].Template)

	require.NotNil(t, m.Options.TableHeaders)
	assert.False(t, *m.Options.TableHeaders)
	assert.Equal(t, `\\`, m.Options.RowSeparator)
}

func TestOptionsContentOptions(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Options{}.ContentOptions())

	headers := false
	opts := Options{TableHeaders: &headers, RowSeparator: `\\`}.ContentOptions()
	got := content.NewInterpreter(opts...).Options()
	assert.False(t, got.EmitTableHeaders)
	assert.Equal(t, `\\`, got.RowSeparator)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"empty", "", "manifest is empty"},
		{"no issues", "issues: []\n", "no issues"},
		{"unknown key", "issues:\n  - name: a\n    issue: a.textile\n    severity: high\n", "severity"},
		{"missing name", "issues:\n  - issue: a.textile\n", "has no name"},
		{"duplicate name", "issues:\n  - name: a\n    issue: a.textile\n  - name: a\n    issue: b.textile\n", "duplicate issue name"},
		{"missing issue file", "issues:\n  - name: a\n", "no issue file"},
		{"traversal", "issues:\n  - name: a\n    issue: ../../etc/passwd\n", "path traversal"},
		{"absolute evidence", "issues:\n  - name: a\n    issue: a.textile\n    evidences:\n      - path: /etc/passwd\n", "evidence 1"},
		{"unsafe name", "issues:\n  - name: '---'\n    issue: a.textile\n", "invalid filename"},
		{"bad yaml", "issues: [\n", "failed to parse YAML"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(strings.NewReader(tt.yaml), "/reports")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadValidationErrorType(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("issues: []\n"), ".")
	var verr *ierrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, errors.Is(err, ierrors.ErrInvalidInput))
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validManifest), 0o600))

	m, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, dir, m.Dir)

	resolved, err := m.Resolve(m.Issues[0].Issue)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "issues", "sqli.textile"), resolved)

	_, err = m.Resolve("../outside.textile")
	assert.ErrorIs(t, err, validation.ErrPathTraversal)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	var ioErr *ierrors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestParseEvidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		data         string
		location     string
		wantLocation string
		wantBody     string
	}{
		{
			name:         "front matter location",
			data:         "---\nlocation: web01.acme.test\n---\n#[Output]#\nok\n",
			wantLocation: "web01.acme.test",
			wantBody:     "#[Output]#\nok\n",
		},
		{
			name:         "declared location overrides front matter",
			data:         "---\nlocation: web01\n---\n#[Output]#\nok\n",
			location:     "10.0.0.5",
			wantLocation: "10.0.0.5",
			wantBody:     "#[Output]#\nok\n",
		},
		{
			name:     "no front matter",
			data:     "#[Output]#\nplain\n",
			wantBody: "#[Output]#\nplain\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, err := ParseEvidence("ev.textile", []byte(tt.data), tt.location)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLocation, ev.Location)
			assert.Equal(t, strings.TrimSpace(tt.wantBody), strings.TrimSpace(ev.Textile))
			assert.Equal(t, "ev.textile", ev.Source)
		})
	}
}

// TestReadEvidenceInterprets runs a front-matter evidence through the
// content assembler end to end.
func TestReadEvidenceInterprets(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ev.textile")
	require.NoError(t, os.WriteFile(path, []byte("---\nlocation: db01\n---\n#[Output]#\n50% done\n"), 0o600))

	ev, err := ReadEvidence(path, "")
	require.NoError(t, err)

	m, err := content.NewAssembler().Evidence(ev)
	require.NoError(t, err)
	assert.Equal(t, "db01", m.Text(content.LocationKey))
	assert.Equal(t, `50\% done`, m.Text("output"))

	_, err = ReadEvidence(filepath.Join(t.TempDir(), "missing.textile"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
