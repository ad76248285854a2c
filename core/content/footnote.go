package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/issuetex/core/encoding"
	ierrors "github.com/FocuswithJustin/issuetex/core/errors"
	"github.com/FocuswithJustin/issuetex/core/textile"
)

// Footnote and anchor tokens are matched here rather than in the grammar.
var (
	footnoteDefPattern = regexp.MustCompile(`^bc\.\.? fn(\d)\. (.*)$`)
	anchorPattern      = regexp.MustCompile(`^<(\d)>$`)
)

// Footnote is a definition extracted from a "bc. fnN. link" line.
type Footnote struct {
	Index string
	Link  string
}

// FootnoteTable maps footnote indices to link text for one content block.
// It is built before the block is interpreted and only read afterwards.
type FootnoteTable map[string]string

// ParseFootnoteDef extracts the index and link text of a footnote definition.
func ParseFootnoteDef(raw string) (Footnote, error) {
	m := footnoteDefPattern.FindStringSubmatch(strings.TrimRight(raw, "\r\n"))
	if m == nil {
		return Footnote{}, fmt.Errorf("malformed footnote definition %q", raw)
	}
	return Footnote{Index: m[1], Link: strings.TrimSpace(m[2])}, nil
}

// ParseAnchor returns the index referenced by an anchor token such as "<1>".
func ParseAnchor(raw string) (string, error) {
	m := anchorPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("malformed footnote anchor %q", raw)
	}
	return m[1], nil
}

// CollectFootnotes gathers every footnote definition below scope, at any
// depth. A later definition of the same index replaces an earlier one.
func CollectFootnotes(scope textile.Node) (FootnoteTable, error) {
	notes := FootnoteTable{}
	var err error
	textile.Walk(scope, func(n textile.Node) bool {
		if err != nil {
			return false
		}
		def, ok := n.(*textile.FootnoteDef)
		if !ok {
			return true
		}
		var fn Footnote
		if fn, err = ParseFootnoteDef(def.Raw); err == nil {
			notes[fn.Index] = fn.Link
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Resolve returns the footnote annotation for index. The line is only used
// in the error when no definition exists.
func (t FootnoteTable) Resolve(index string, line int) (string, error) {
	link, ok := t[index]
	if !ok {
		return "", ierrors.NewUnresolvedFootnote(index, line)
	}
	return `\footnote{` + encoding.EscapeLaTeXMeta(link) + "}", nil
}
