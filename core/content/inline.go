package content

import (
	"strings"

	"github.com/FocuswithJustin/issuetex/core/encoding"
	"github.com/FocuswithJustin/issuetex/core/textile"
)

// formatSpans renders a run of inline spans. Anchors resolve against
// notes; everything else is escaped exactly once.
func formatSpans(spans []*textile.Span, notes FootnoteTable) (string, error) {
	var sb strings.Builder
	for _, s := range spans {
		out, err := formatSpan(s, notes)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

func formatSpan(s *textile.Span, notes FootnoteTable) (string, error) {
	switch s.Kind() {
	case textile.KindAnchor:
		index, err := ParseAnchor(s.Anchor)
		if err != nil {
			return "", err
		}
		return notes.Resolve(index, s.Pos.Line)
	case textile.KindBold:
		return emphasis("textbf", s.Inner()), nil
	case textile.KindItalic:
		return emphasis("textit", s.Inner()), nil
	case textile.KindMonospace:
		return emphasis("texttt", s.Inner()), nil
	default:
		return encoding.EscapeLaTeXMeta(s.Text), nil
	}
}

func emphasis(command, inner string) string {
	return `\` + command + "{" + encoding.EscapeLaTeXMeta(inner) + "}"
}
