package textile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// textileLexer tokenizes the textile dialect line by line.
//
// Root is positioned at the start of a line and decides what kind of line
// follows. Paragraph and list text is lexed in Inline until the newline,
// code in Code until a blank line, and table cells in Row until the newline.
// Footnote definitions, field headers and table captions are lexed as one
// opaque token each and picked apart after parsing.
//
// Rules within a state are tried in order, so the more specific line
// markers come before the catch-all text rules.
var textileLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Field", Pattern: `#\[[^\]\n]+\]#[ \t]*\n`},
		{Name: "Blank", Pattern: `[ \t]*\n`},
		{Name: "FootnoteDef", Pattern: `bc\.\.? fn\d\. [^\n]*\n`},
		{Name: "CodeStart", Pattern: `bc\.\.?[ \t]*\n`, Action: lexer.Push("Code")},
		{Name: "InlineCodeStart", Pattern: `bc\.\.? `, Action: lexer.Push("Code")},
		{Name: "Bullet", Pattern: `\*+ `, Action: lexer.Push("Inline")},
		{Name: "Item", Pattern: `#+ `, Action: lexer.Push("Inline")},
		{Name: "TableCaption", Pattern: `\|=\.[^\n]*\n`},
		{Name: "TableStart", Pattern: `\|`, Action: lexer.Push("Row")},
		{Name: "Anchor", Pattern: `<\d>`, Action: lexer.Push("Inline")},
		{Name: "Bold", Pattern: `\*[^*\n]+\*`, Action: lexer.Push("Inline")},
		{Name: "Italic", Pattern: `_[^_\n]+_`, Action: lexer.Push("Inline")},
		{Name: "Mono", Pattern: `@[^@\n]+@`, Action: lexer.Push("Inline")},
		{Name: "Text", Pattern: `[^\n*_@<]+`, Action: lexer.Push("Inline")},
		{Name: "Char", Pattern: `[*_@<]`, Action: lexer.Push("Inline")},
	},
	"Inline": {
		{Name: "EOL", Pattern: `\n`, Action: lexer.Pop()},
		{Name: "Anchor", Pattern: `<\d>`},
		{Name: "Bold", Pattern: `\*[^*\n]+\*`},
		{Name: "Italic", Pattern: `_[^_\n]+_`},
		{Name: "Mono", Pattern: `@[^@\n]+@`},
		{Name: "Text", Pattern: `[^\n*_@<]+`},
		{Name: "Char", Pattern: `[*_@<]`},
	},
	"Code": {
		{Name: "CodeEnd", Pattern: `[ \t]*\n`, Action: lexer.Pop()},
		{Name: "CodeLine", Pattern: `[^\n]+\n`},
	},
	"Row": {
		{Name: "RowEnd", Pattern: `[ \t]*\n`, Action: lexer.Pop()},
		{Name: "Cell", Pattern: `[^|\n]*\||[^|\n]+`},
	},
})
