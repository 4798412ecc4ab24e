package markdown

// RawBlock is an engine-neutral block node, lifted out of an engine's
// sibling-linked tree into plain ordered slices. Engines build RawBlock trees;
// the Processor and block extensions consume them.
//
// Fields beyond Type are only meaningful for certain types, as noted.
type RawBlock struct {
	Type RawType

	// Level is the heading level for RawHeading.
	Level int

	// Start is the first item number for an ordered RawList.
	Start int

	// Marker is the RawList marker byte: '-', '*', '+' for bullets; '.' or
	// ')' for ordered lists.
	Marker byte

	// Ordered and Tight describe a RawList.
	Ordered, Tight bool

	// Fenced is set for fenced (rather than indented) RawCodeBlock.
	Fenced bool

	// Info is the info string following a RawCodeBlock fence.
	Info string

	// Literal is the content of a RawCodeBlock or RawHTMLBlock.
	Literal string

	// Name is the engine's own kind name for RawOther blocks.
	Name string

	// Align is the column alignment marker of a RawTableCell.
	Align CellAlign

	// Inlines holds the unprocessed inline content of leaf blocks:
	// RawParagraph, RawHeading, and RawTableCell.
	Inlines []RawInline

	// Children holds the sub-blocks of containers:
	// - RawDocument, RawBlockQuote, RawListItem: any blocks
	// - RawList: RawListItem
	// - RawTable: one RawTableHead, then at most one RawTableBody
	// - RawTableHead, RawTableBody: RawTableRow
	// - RawTableRow: RawTableCell
	Children []RawBlock
}

// RawType determines the semantic meaning of a RawBlock.
type RawType int

// RawType constants for the structures engines can report.
const (
	noRaw RawType = iota // 0 value should never be seen by user
	RawDocument
	RawParagraph
	RawHeading
	RawBlockQuote
	RawList
	RawListItem
	RawCodeBlock
	RawThematicBreak
	RawHTMLBlock
	RawTable
	RawTableHead
	RawTableBody
	RawTableRow
	RawTableCell
	RawOther
)

// CellAlign is a table column alignment marker, as written in a table's
// delimiter row.
type CellAlign int

// CellAlign constants; CellAlignNone is a column without any colon.
const (
	CellAlignNone CellAlign = iota
	CellAlignLeft
	CellAlignCenter
	CellAlignRight
)

// RawInline is an engine-neutral inline node.
type RawInline struct {
	Type RawInlineType

	// Level is the emphasis level for RawEmphasis: 1 for emphasis, 2 for
	// strong emphasis.
	Level int

	// Literal is the already unescaped content of RawText, RawCode, and
	// RawHTML.
	Literal string

	// Destination and Title describe a RawLink or RawImage.
	Destination, Title string

	// Name is the engine's own kind name for RawOtherInline.
	Name string

	// Children holds nested content of RawEmphasis, RawLink, RawImage, and
	// RawOtherInline.
	Children []RawInline
}

// RawInlineType determines the semantic meaning of a RawInline.
type RawInlineType int

// RawInlineType constants.
const (
	noRawInline RawInlineType = iota
	RawText
	RawCode
	RawEmphasis
	RawLink
	RawImage
	RawHTML
	RawSoftBreak
	RawHardBreak
	RawOtherInline
)
