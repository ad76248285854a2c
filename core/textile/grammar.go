package textile

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind enumerates the parse tree node kinds.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindContent
	KindParagraph
	KindParagraphLine
	KindFootnoteDef
	KindText
	KindAnchor
	KindBold
	KindItalic
	KindMonospace
	KindBullets
	KindBullet
	KindEnumeration
	KindItem
	KindCodeBlock
	KindInlineCodeBlock
	KindTable
	KindTableCaption
	KindTableLine
)

var kindNames = [...]string{
	KindDocument:        "elements",
	KindElement:         "element",
	KindContent:         "content",
	KindParagraph:       "paragraph",
	KindParagraphLine:   "paragraph_line",
	KindFootnoteDef:     "footnote",
	KindText:            "text",
	KindAnchor:          "footnote_anchor",
	KindBold:            "bold_text",
	KindItalic:          "italics_text",
	KindMonospace:       "monospace_text",
	KindBullets:         "bullets",
	KindBullet:          "bullet",
	KindEnumeration:     "enumeration",
	KindItem:            "item",
	KindCodeBlock:       "code_block",
	KindInlineCodeBlock: "inline_code_block",
	KindTable:           "table",
	KindTableCaption:    "table_caption",
	KindTableLine:       "table_line",
}

// String returns the rule name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is implemented by every parse tree node.
type Node interface {
	Kind() Kind
	Children() []Node
}

// The types below double as the participle grammar. Field tags describe
// the shape of each node; the interpreter switches on the concrete types.

// Document is the root: a sequence of field elements.
type Document struct {
	Pos lexer.Position

	Elements []*Element `parser:"Blank* @@*"`
}

// Element is one "#[Name]#" field and the content block that follows it.
type Element struct {
	Pos lexer.Position

	Field   string   `parser:"@Field"`
	Content *Content `parser:"@@"`
}

// Name returns the field name between the "#[" and "]#" markers.
func (e *Element) Name() string {
	name := strings.TrimSpace(e.Field)
	name = strings.TrimPrefix(name, "#[")
	name = strings.TrimSuffix(name, "]#")
	return strings.TrimSpace(name)
}

// Content is the block sequence of an element; it is the footnote scope.
type Content struct {
	Pos lexer.Position

	Blocks []*Block `parser:"( @@ | Blank )*"`
}

// Block is exactly one of its fields.
type Block struct {
	Table       *Table           `parser:"  @@"`
	Bullets     *Bullets         `parser:"| @@"`
	Enumeration *Enumeration     `parser:"| @@"`
	Code        *CodeBlock       `parser:"| @@"`
	InlineCode  *InlineCodeBlock `parser:"| @@"`
	Paragraph   *Paragraph       `parser:"| @@"`
}

// Node returns the node held by the block.
func (b *Block) Node() Node {
	switch {
	case b.Table != nil:
		return b.Table
	case b.Bullets != nil:
		return b.Bullets
	case b.Enumeration != nil:
		return b.Enumeration
	case b.Code != nil:
		return b.Code
	case b.InlineCode != nil:
		return b.InlineCode
	case b.Paragraph != nil:
		return b.Paragraph
	}
	return nil
}

// Paragraph is a run of paragraph lines and footnote definitions.
type Paragraph struct {
	Pos lexer.Position

	Parts []*ParagraphPart `parser:"@@+"`
}

// ParagraphPart is either a footnote definition or a line of text.
type ParagraphPart struct {
	Footnote *FootnoteDef   `parser:"  @@"`
	Line     *ParagraphLine `parser:"| @@"`
}

// Node returns the node held by the part.
func (p *ParagraphPart) Node() Node {
	if p.Footnote != nil {
		return p.Footnote
	}
	if p.Line != nil {
		return p.Line
	}
	return nil
}

// FootnoteDef holds a raw "bc. fnN. link" line.
type FootnoteDef struct {
	Pos lexer.Position

	Raw string `parser:"@FootnoteDef"`
}

// ParagraphLine is one line of inline spans.
type ParagraphLine struct {
	Pos lexer.Position

	Spans []*Span `parser:"@@+ EOL"`
}

// Span is one inline token. Exactly one field is set.
type Span struct {
	Pos lexer.Position

	Anchor string `parser:"  @Anchor"`
	Bold   string `parser:"| @Bold"`
	Italic string `parser:"| @Italic"`
	Mono   string `parser:"| @Mono"`
	Text   string `parser:"| @( Text | Char )"`
}

// Bullets is a run of "* " items.
type Bullets struct {
	Pos lexer.Position

	Items []*Bullet `parser:"@@+"`
}

// Bullet is a single "* " item.
type Bullet struct {
	Pos lexer.Position

	Marker string  `parser:"@Bullet"`
	Spans  []*Span `parser:"@@* EOL"`
}

// Enumeration is a run of "# " items.
type Enumeration struct {
	Pos lexer.Position

	Items []*Item `parser:"@@+"`
}

// Item is a single "# " item.
type Item struct {
	Pos lexer.Position

	Marker string  `parser:"@Item"`
	Spans  []*Span `parser:"@@* EOL"`
}

// CodeBlock is "bc." on its own line followed by verbatim lines.
type CodeBlock struct {
	Pos lexer.Position

	Start string   `parser:"@CodeStart"`
	Lines []string `parser:"@CodeLine* CodeEnd?"`
}

// InlineCodeBlock is "bc. code" where the code starts on the marker line.
type InlineCodeBlock struct {
	Pos lexer.Position

	Start string   `parser:"@InlineCodeStart"`
	Lines []string `parser:"@CodeLine+ CodeEnd?"`
}

// Table is an optional caption followed by table lines.
type Table struct {
	Pos lexer.Position

	Caption *TableCaption `parser:"@@?"`
	Lines   []*TableLine  `parser:"@@+"`
}

// TableCaption holds a raw "|=. caption" line. It is parsed but not rendered.
type TableCaption struct {
	Pos lexer.Position

	Raw string `parser:"@TableCaption"`
}

// Text returns the caption text without the marker.
func (c *TableCaption) Text() string {
	return strings.TrimSpace(strings.TrimPrefix(c.Raw, "|=."))
}

// TableLine is one "|a|b|" row.
type TableLine struct {
	Pos lexer.Position

	Cells []string `parser:"TableStart @Cell+ RowEnd"`
}

// CellTexts returns the cell contents without the closing "|".
func (l *TableLine) CellTexts() []string {
	out := make([]string, len(l.Cells))
	for i, c := range l.Cells {
		out[i] = strings.TrimSuffix(c, "|")
	}
	return out
}

func (*Document) Kind() Kind        { return KindDocument }
func (*Element) Kind() Kind         { return KindElement }
func (*Content) Kind() Kind         { return KindContent }
func (*Paragraph) Kind() Kind       { return KindParagraph }
func (*ParagraphLine) Kind() Kind   { return KindParagraphLine }
func (*FootnoteDef) Kind() Kind     { return KindFootnoteDef }
func (*Bullets) Kind() Kind         { return KindBullets }
func (*Bullet) Kind() Kind          { return KindBullet }
func (*Enumeration) Kind() Kind     { return KindEnumeration }
func (*Item) Kind() Kind            { return KindItem }
func (*CodeBlock) Kind() Kind       { return KindCodeBlock }
func (*InlineCodeBlock) Kind() Kind { return KindInlineCodeBlock }
func (*Table) Kind() Kind           { return KindTable }
func (*TableCaption) Kind() Kind    { return KindTableCaption }
func (*TableLine) Kind() Kind       { return KindTableLine }

// Kind reports which inline token the span holds.
func (s *Span) Kind() Kind {
	switch {
	case s.Anchor != "":
		return KindAnchor
	case s.Bold != "":
		return KindBold
	case s.Italic != "":
		return KindItalic
	case s.Mono != "":
		return KindMonospace
	}
	return KindText
}

// Inner returns the span text without its emphasis markers.
func (s *Span) Inner() string {
	switch s.Kind() {
	case KindBold:
		return s.Bold[1 : len(s.Bold)-1]
	case KindItalic:
		return s.Italic[1 : len(s.Italic)-1]
	case KindMonospace:
		return s.Mono[1 : len(s.Mono)-1]
	case KindAnchor:
		return s.Anchor
	}
	return s.Text
}

func (d *Document) Children() []Node {
	out := make([]Node, 0, len(d.Elements))
	for _, e := range d.Elements {
		out = append(out, e)
	}
	return out
}

func (e *Element) Children() []Node {
	if e.Content == nil {
		return nil
	}
	return []Node{e.Content}
}

func (c *Content) Children() []Node {
	out := make([]Node, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		if n := b.Node(); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (p *Paragraph) Children() []Node {
	out := make([]Node, 0, len(p.Parts))
	for _, part := range p.Parts {
		if n := part.Node(); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (l *ParagraphLine) Children() []Node { return spanNodes(l.Spans) }
func (*FootnoteDef) Children() []Node     { return nil }
func (*Span) Children() []Node            { return nil }
func (b *Bullet) Children() []Node        { return spanNodes(b.Spans) }
func (i *Item) Children() []Node          { return spanNodes(i.Spans) }
func (*CodeBlock) Children() []Node       { return nil }
func (*InlineCodeBlock) Children() []Node { return nil }
func (*TableCaption) Children() []Node    { return nil }
func (*TableLine) Children() []Node       { return nil }

func (b *Bullets) Children() []Node {
	out := make([]Node, 0, len(b.Items))
	for _, item := range b.Items {
		out = append(out, item)
	}
	return out
}

func (e *Enumeration) Children() []Node {
	out := make([]Node, 0, len(e.Items))
	for _, item := range e.Items {
		out = append(out, item)
	}
	return out
}

func (t *Table) Children() []Node {
	out := make([]Node, 0, len(t.Lines)+1)
	if t.Caption != nil {
		out = append(out, t.Caption)
	}
	for _, l := range t.Lines {
		out = append(out, l)
	}
	return out
}

func spanNodes(spans []*Span) []Node {
	out := make([]Node, 0, len(spans))
	for _, s := range spans {
		out = append(out, s)
	}
	return out
}
