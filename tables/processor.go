package tables

import (
	"errors"
	"fmt"

	"github.com/jcorbin/mdtable/markdown"
)

// ErrUnsupportedBlock is returned when processing a raw block that is not a
// well formed table.
var ErrUnsupportedBlock = errors.New("unsupported block")

// blockProcessor holds no state: every Process call depends only on its
// arguments.
type blockProcessor struct{}

// CanProcess returns true for raw table blocks.
func (blockProcessor) CanProcess(raw markdown.RawBlock) bool {
	return raw.Type == markdown.RawTable
}

// Process returns a TableBlock.
func (blockProcessor) Process(raw markdown.RawBlock, ctx markdown.Context) (markdown.CustomBlock, error) {
	tb, err := ProcessTable(raw, ctx)
	if err != nil {
		return nil, err
	}
	return tb, nil
}

// ProcessTable converts a raw table block, reading cell content through ctx.
// It returns an error wrapping ErrUnsupportedBlock if raw is not a table, or
// not shaped like one.
func ProcessTable(raw markdown.RawBlock, ctx markdown.Context) (TableBlock, error) {
	if raw.Type != markdown.RawTable {
		return TableBlock{}, fmt.Errorf("%w of type %v cannot be processed as a table", ErrUnsupportedBlock, raw.Type)
	}
	rt, err := normalize(raw)
	if err != nil {
		return TableBlock{}, err
	}

	var tb TableBlock
	tb.Header.HeaderRow = extractRow(rt.head, true, ctx.ReadInline)
	if len(rt.body) > 0 {
		tb.Body = &TableBody{Rows: make([]TableRow, len(rt.body))}
		for i, cells := range rt.body {
			tb.Body.Rows[i] = extractRow(cells, false, ctx.ReadInline)
		}
	}
	return tb, nil
}

// rawTable is a raw table reduced to its rows of raw cells.
type rawTable struct {
	head []markdown.RawBlock
	body [][]markdown.RawBlock
}

// normalize checks the structure of a raw table: exactly one head section
// holding exactly one row, then at most one body section; rows hold only
// cells.
func normalize(raw markdown.RawBlock) (rawTable, error) {
	var rt rawTable
	sections := raw.Children
	if len(sections) == 0 || sections[0].Type != markdown.RawTableHead {
		return rt, fmt.Errorf("%w: table without a head section", ErrUnsupportedBlock)
	}
	if n := len(sections[0].Children); n != 1 {
		return rt, fmt.Errorf("%w: table head with %v rows", ErrUnsupportedBlock, n)
	}
	head, err := rowCells(sections[0].Children[0])
	if err != nil {
		return rt, err
	}
	rt.head = head

	switch rest := sections[1:]; {
	case len(rest) == 0:
	case len(rest) > 1:
		return rt, fmt.Errorf("%w: table with %v sections after its head", ErrUnsupportedBlock, len(rest))
	case rest[0].Type != markdown.RawTableBody:
		return rt, fmt.Errorf("%w: %v in place of a table body", ErrUnsupportedBlock, rest[0].Type)
	default:
		rt.body = make([][]markdown.RawBlock, 0, len(rest[0].Children))
		for _, row := range rest[0].Children {
			cells, err := rowCells(row)
			if err != nil {
				return rt, err
			}
			rt.body = append(rt.body, cells)
		}
	}
	return rt, nil
}

func rowCells(row markdown.RawBlock) ([]markdown.RawBlock, error) {
	if row.Type != markdown.RawTableRow {
		return nil, fmt.Errorf("%w: %v in place of a table row", ErrUnsupportedBlock, row.Type)
	}
	for _, cell := range row.Children {
		if cell.Type != markdown.RawTableCell {
			return nil, fmt.Errorf("%w: %v in place of a table cell", ErrUnsupportedBlock, cell.Type)
		}
	}
	return row.Children, nil
}

// extractRow converts each raw cell, in order; it never pads or truncates,
// leaving column counts as the grammar resolved them.
func extractRow(cells []markdown.RawBlock, isHeader bool, read func([]markdown.RawInline) []markdown.Inline) TableRow {
	row := TableRow{Cells: make([]TableCell, len(cells))}
	for i, cell := range cells {
		inlines := read(cell.Inlines)
		if inlines == nil {
			inlines = []markdown.Inline{}
		}
		row.Cells[i] = TableCell{
			Inlines:   inlines,
			IsHeader:  isHeader,
			Alignment: AlignmentOf(cell.Align),
		}
	}
	return row
}
