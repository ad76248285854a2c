// Package render turns issue content models into LaTeX with text/template.
// Templates use \VAR{ and } as action delimiters so that LaTeX braces
// in the template body need no escaping.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/FocuswithJustin/issuetex/core/content"
	"github.com/FocuswithJustin/issuetex/core/encoding"
	"github.com/FocuswithJustin/issuetex/internal/validation"
)

// Template action delimiters.
const (
	LeftDelim  = `\VAR{`
	RightDelim = `}`
)

//go:embed templates/issue.tex
var builtinIssueTemplate string

// Config selects the template. With neither field set the built-in issue
// template is used.
type Config struct {
	// TemplatePath is the path to a custom template file.
	TemplatePath string

	// TemplateString is an inline template (alternative to TemplatePath).
	TemplateString string
}

// Renderer executes one parsed template. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the configured template once.
func New(cfg Config) (*Renderer, error) {
	var src string
	switch {
	case cfg.TemplatePath != "":
		data, err := validation.ReadTextFile(cfg.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template file: %w", err)
		}
		src = string(data)
	case cfg.TemplateString != "":
		src = cfg.TemplateString
	default:
		src = builtinIssueTemplate
	}

	tmpl, err := template.New("issue.tex").
		Delims(LeftDelim, RightDelim).
		Option("missingkey=error").
		Funcs(funcMap()).
		Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse issue template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// funcMap is sprig's text functions plus the model helpers.
func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["field"] = tmplField
	fm["evidences"] = tmplEvidences
	fm["latex"] = encoding.EscapeLaTeX
	return fm
}

// Render executes the template against model and writes the result to w.
func (r *Renderer) Render(w io.Writer, model content.Model) error {
	if err := r.tmpl.Execute(w, model); err != nil {
		return fmt.Errorf("render issue: %w", err)
	}
	return nil
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(model content.Model) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, model); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// IssueToLaTeX interprets an issue with its evidences and renders it with
// the built-in template.
func IssueToLaTeX(issue string, evidences []content.Evidence, opts ...content.Option) (string, error) {
	model, err := content.IssueContent(issue, evidences, opts...)
	if err != nil {
		return "", err
	}
	r, err := New(Config{})
	if err != nil {
		return "", err
	}
	return r.RenderString(model)
}

// tmplField returns the text of key, or "" when the field is absent.
func tmplField(m content.Model, key string) string {
	return m.Text(key)
}

func tmplEvidences(m content.Model) []content.Model {
	return m.Evidences()
}
