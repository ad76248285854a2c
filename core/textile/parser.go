// Package textile parses the textile dialect used for issue and evidence
// records into an immutable parse tree.
package textile

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"

	ierrors "github.com/FocuswithJustin/issuetex/core/errors"
)

// documentParser is built once and shared; participle parsers are safe for
// concurrent use.
var documentParser = participle.MustBuild[Document](
	participle.Lexer(textileLexer),
	participle.UseLookahead(2),
)

// Normalize converts line endings to "\n" and makes sure the text ends
// with a newline. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

// Parse parses textile markup into a Document. The source names the input
// in diagnostics and may be empty.
// Any token sequence outside the grammar yields a *errors.SyntaxError and
// no tree.
func Parse(source, text string) (*Document, error) {
	doc, err := documentParser.ParseString(source, Normalize(text))
	if err != nil {
		return nil, syntaxError(source, err)
	}
	return doc, nil
}

func syntaxError(source string, err error) error {
	serr := ierrors.NewSyntax(source, err.Error(), err)

	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		serr.Line = pos.Line
		serr.Column = pos.Column
		serr.Message = perr.Message()
	}
	return serr
}
