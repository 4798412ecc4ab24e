// Package tables implements the GitHub Flavored Markdown table extension for
// the markdown processing pipeline: engine grammar to recognize tables, and a
// block processor turning them into a typed table document node.
package tables

import (
	"fmt"

	"github.com/jcorbin/mdtable/markdown"
)

// TableBlock is a processed table. Body is nil when the table has no rows
// after its delimiter row.
type TableBlock struct {
	Header TableHead  `json:"header" yaml:"header"`
	Body   *TableBody `json:"body,omitempty" yaml:"body,omitempty"`
}

// TableHead holds the header row.
type TableHead struct {
	HeaderRow TableRow `json:"headerRow" yaml:"headerRow"`
}

// TableBody holds data rows in source order; it is never empty.
type TableBody struct {
	Rows []TableRow `json:"rows" yaml:"rows"`
}

// TableRow holds cells in column order. Rows of one table need not have the
// same number of cells.
type TableRow struct {
	Cells []TableCell `json:"cells" yaml:"cells"`
}

// TableCell is one cell of a row; Inlines is empty, not nil, for a blank
// cell.
type TableCell struct {
	Inlines   []markdown.Inline `json:"-" yaml:"-"`
	IsHeader  bool              `json:"isHeader" yaml:"isHeader"`
	Alignment Alignment         `json:"alignment" yaml:"alignment"`
}

// Kind implements markdown.Block.
func (TableBlock) Kind() markdown.BlockKind { return markdown.KindCustomBlock }

// BlockName implements markdown.CustomBlock.
func (TableBlock) BlockName() string { return "Table" }

// Rows returns every row, header row first.
func (tb TableBlock) Rows() []TableRow {
	rows := []TableRow{tb.Header.HeaderRow}
	if tb.Body != nil {
		rows = append(rows, tb.Body.Rows...)
	}
	return rows
}

// Columns returns the largest cell count of any row.
func (tb TableBlock) Columns() int {
	n := 0
	for _, row := range tb.Rows() {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}
	return n
}

// Alignment is the horizontal alignment of a table column.
type Alignment int

// Alignment constants; the zero value is AlignLeft.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// AlignmentOf resolves a delimiter row marker. Columns without a marker, or
// with an unknown one, are left aligned.
func AlignmentOf(marker markdown.CellAlign) Alignment {
	switch marker {
	case markdown.CellAlignCenter:
		return AlignCenter
	case markdown.CellAlignRight:
		return AlignRight
	default:
		return AlignLeft
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("InvalidAlignment%d", int(a))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return []byte(a.String()), nil
	}
	return nil, fmt.Errorf("invalid table alignment %d", int(a))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left", "":
		*a = AlignLeft
	case "center":
		*a = AlignCenter
	case "right":
		*a = AlignRight
	default:
		return fmt.Errorf("invalid table alignment %q", text)
	}
	return nil
}
