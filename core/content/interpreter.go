package content

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/issuetex/core/textile"
)

const blockSeparator = "\n\n"

// Interpreter turns parse trees into content models. It holds only
// immutable options, so one value may serve many documents concurrently.
// Footnote tables are built per content block and passed down explicitly.
type Interpreter struct {
	opts Options
}

// NewInterpreter returns an interpreter configured by opts.
func NewInterpreter(opts ...Option) *Interpreter {
	return &Interpreter{opts: buildOptions(opts)}
}

// Options returns the interpreter's options.
func (in *Interpreter) Options() Options {
	return in.opts
}

// Interpret converts a document into a model keyed by normalized field
// name. It returns no model if any element fails.
func (in *Interpreter) Interpret(doc *textile.Document) (Model, error) {
	model := make(Model, len(doc.Elements))
	for _, e := range doc.Elements {
		key, value, err := in.element(e)
		if err != nil {
			return nil, err
		}
		model[NormalizeKey(key)] = value
	}
	return model, nil
}

func (in *Interpreter) element(e *textile.Element) (string, string, error) {
	name := e.Name()
	if e.Content == nil {
		return name, "", nil
	}
	value, err := in.content(e.Content)
	if err != nil {
		return "", "", fmt.Errorf("field %q: %w", name, err)
	}
	return name, value, nil
}

// content interprets one footnote scope: definitions are collected first so
// anchors may precede them, then each block is formatted, trimmed, and the
// non-empty results are joined by blank lines.
func (in *Interpreter) content(c *textile.Content) (string, error) {
	notes, err := CollectFootnotes(c)
	if err != nil {
		return "", err
	}

	var out []string
	for _, child := range c.Children() {
		s, err := in.format(child, notes)
		if err != nil {
			return "", err
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, blockSeparator), nil
}

// format renders a node below a content scope.
func (in *Interpreter) format(n textile.Node, notes FootnoteTable) (string, error) {
	switch n := n.(type) {
	case *textile.Content:
		return in.content(n)
	case *textile.Paragraph:
		var sb strings.Builder
		for _, child := range n.Children() {
			if child.Kind() == textile.KindFootnoteDef {
				continue
			}
			s, err := in.format(child, notes)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		}
		return sb.String(), nil
	case *textile.ParagraphLine:
		s, err := formatSpans(n.Spans, notes)
		if err != nil {
			return "", err
		}
		return s + "\n", nil
	case *textile.FootnoteDef:
		// Consumed by CollectFootnotes.
		return "", nil
	case *textile.Span:
		return formatSpan(n, notes)
	case *textile.Bullets:
		return in.list("itemize", n.Children(), notes)
	case *textile.Enumeration:
		return in.list("enumerate", n.Children(), notes)
	case *textile.Bullet:
		return listItem(n.Spans, notes)
	case *textile.Item:
		return listItem(n.Spans, notes)
	case *textile.CodeBlock:
		return codeBlock(n.Lines), nil
	case *textile.InlineCodeBlock:
		return codeBlock(n.Lines), nil
	case *textile.Table:
		return in.table(n), nil
	case *textile.TableLine:
		return NewTableLine(n.CellTexts()).Text, nil
	case *textile.TableCaption:
		// Parsed but not rendered yet.
		return "", nil
	case *textile.Element, *textile.Document:
		return "", fmt.Errorf("%s node is not allowed inside content", n.Kind())
	default:
		return "", fmt.Errorf("unexpected %s node", n.Kind())
	}
}

func (in *Interpreter) list(env string, items []textile.Node, notes FootnoteTable) (string, error) {
	var sb strings.Builder
	sb.WriteString(`\begin{` + env + "}\n")
	for _, item := range items {
		s, err := in.format(item, notes)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteString(`\end{` + env + "}\n")
	return sb.String(), nil
}

func listItem(spans []*textile.Span, notes FootnoteTable) (string, error) {
	s, err := formatSpans(spans, notes)
	if err != nil {
		return "", err
	}
	return `\item ` + s + "\n", nil
}

// codeBlock wraps code lines verbatim; code is never escaped.
func codeBlock(lines []string) string {
	return `\begin{code}` + "\n" + strings.Join(lines, "") + `\end{code}`
}

func (in *Interpreter) table(t *textile.Table) string {
	lines := make([]TableLine, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, NewTableLine(l.CellTexts()))
	}
	return FormatTable(lines, in.opts)
}
