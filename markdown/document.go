package markdown

import "strings"

// Block is a processed block-level document node.
type Block interface {
	Kind() BlockKind
}

// CustomBlock is a Block produced by a BlockProcessorExtension.
type CustomBlock interface {
	Block

	// BlockName names the extension block, e.g. "Table".
	BlockName() string
}

// BlockKind identifies the type of a Block.
type BlockKind int

// BlockKind constants; extension blocks all share KindCustomBlock.
const (
	noBlockKind BlockKind = iota
	KindParagraph
	KindHeading
	KindBlockQuote
	KindList
	KindCodeBlock
	KindThematicBreak
	KindHTMLBlock
	KindCustomBlock
)

// Paragraph is a run of inline content.
type Paragraph struct {
	Inlines []Inline
}

// Heading is an ATX or setext heading.
type Heading struct {
	Level   int
	Inlines []Inline
}

// BlockQuote contains quoted blocks.
type BlockQuote struct {
	Blocks []Block
}

// List is an ordered or bullet list.
type List struct {
	Ordered bool
	Start   int
	Marker  byte
	Tight   bool
	Items   []ListItem
}

// ListItem is one List entry.
type ListItem struct {
	Blocks []Block
}

// CodeBlock is an indented or fenced code block; Content retains its final
// newline.
type CodeBlock struct {
	Fenced  bool
	Info    string
	Content string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// HTMLBlock is raw HTML passed through verbatim.
type HTMLBlock struct {
	Content string
}

// Kind implements Block.
func (Paragraph) Kind() BlockKind { return KindParagraph }

// Kind implements Block.
func (Heading) Kind() BlockKind { return KindHeading }

// Kind implements Block.
func (BlockQuote) Kind() BlockKind { return KindBlockQuote }

// Kind implements Block.
func (List) Kind() BlockKind { return KindList }

// Kind implements Block.
func (CodeBlock) Kind() BlockKind { return KindCodeBlock }

// Kind implements Block.
func (ThematicBreak) Kind() BlockKind { return KindThematicBreak }

// Kind implements Block.
func (HTMLBlock) Kind() BlockKind { return KindHTMLBlock }

// Inline is a processed inline document node.
type Inline interface {
	Kind() InlineKind
}

// CustomInline is an Inline produced by an InlineProcessorExtension.
type CustomInline interface {
	Inline

	// InlineName names the extension inline, e.g. "Strikethrough".
	InlineName() string

	// PlainText returns the textual content of the inline, without markup.
	PlainText() string
}

// InlineKind identifies the type of an Inline.
type InlineKind int

// InlineKind constants; extension inlines all share KindCustomInline.
const (
	noInlineKind InlineKind = iota
	KindText
	KindCode
	KindEmphasis
	KindStrongEmphasis
	KindLink
	KindImage
	KindHTML
	KindSoftLineBreak
	KindHardLineBreak
	KindCustomInline
)

// Text is literal text, with any escapes and entities already resolved.
type Text struct {
	Content string
}

// Code is a code span.
type Code struct {
	Content string
}

// Emphasis is single-delimiter emphasis.
type Emphasis struct {
	Inlines []Inline
}

// StrongEmphasis is double-delimiter emphasis.
type StrongEmphasis struct {
	Inlines []Inline
}

// Link is an inline, reference, or autolink.
type Link struct {
	Destination string
	Title       string
	Inlines     []Inline
}

// Image is an image; Alt is the plain text of its description.
type Image struct {
	Source string
	Title  string
	Alt    string
}

// HTML is an inline raw HTML fragment.
type HTML struct {
	Content string
}

// SoftLineBreak is a line ending within a paragraph.
type SoftLineBreak struct{}

// HardLineBreak is an explicit line break.
type HardLineBreak struct{}

// Kind implements Inline.
func (Text) Kind() InlineKind { return KindText }

// Kind implements Inline.
func (Code) Kind() InlineKind { return KindCode }

// Kind implements Inline.
func (Emphasis) Kind() InlineKind { return KindEmphasis }

// Kind implements Inline.
func (StrongEmphasis) Kind() InlineKind { return KindStrongEmphasis }

// Kind implements Inline.
func (Link) Kind() InlineKind { return KindLink }

// Kind implements Inline.
func (Image) Kind() InlineKind { return KindImage }

// Kind implements Inline.
func (HTML) Kind() InlineKind { return KindHTML }

// Kind implements Inline.
func (SoftLineBreak) Kind() InlineKind { return KindSoftLineBreak }

// Kind implements Inline.
func (HardLineBreak) Kind() InlineKind { return KindHardLineBreak }

// PlainText returns the textual content of the given inlines with all markup
// removed. Line breaks become a single space.
func PlainText(inlines []Inline) string {
	var sb strings.Builder
	writePlain(&sb, inlines)
	return sb.String()
}

func writePlain(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case Text:
			sb.WriteString(v.Content)
		case Code:
			sb.WriteString(v.Content)
		case Emphasis:
			writePlain(sb, v.Inlines)
		case StrongEmphasis:
			writePlain(sb, v.Inlines)
		case Link:
			writePlain(sb, v.Inlines)
		case Image:
			sb.WriteString(v.Alt)
		case SoftLineBreak, HardLineBreak:
			sb.WriteByte(' ')
		case CustomInline:
			sb.WriteString(v.PlainText())
		}
	}
}
