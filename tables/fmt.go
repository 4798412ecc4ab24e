package tables

import (
	"fmt"
	"io"

	"github.com/jcorbin/mdtable/markdown"
)

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display. Produces a multi-line form, one row per line, when
// formatted with `%+v`, and a single line otherwise.
func (tb TableBlock) Format(f fmt.State, _ rune) {
	if !f.Flag('+') {
		fmt.Fprintf(f, "Table head=%v body=", tb.Header.HeaderRow)
		if tb.Body == nil {
			io.WriteString(f, "<nil>")
			return
		}
		io.WriteString(f, "[")
		for i, row := range tb.Body.Rows {
			if i > 0 {
				io.WriteString(f, " ")
			}
			fmt.Fprintf(f, "%v", row)
		}
		io.WriteString(f, "]")
		return
	}
	fmt.Fprintf(f, "Table\nhead: %+v", tb.Header.HeaderRow)
	if tb.Body == nil {
		io.WriteString(f, "\nbody: none")
		return
	}
	for i, row := range tb.Body.Rows {
		fmt.Fprintf(f, "\nrow %v: %+v", i+1, row)
	}
}

// Format writes the row's cells: quoted plain text joined by " | " for `%v`,
// every cell in full for `%+v`.
func (row TableRow) Format(f fmt.State, _ rune) {
	if f.Flag('+') {
		for i, cell := range row.Cells {
			if i > 0 {
				io.WriteString(f, ", ")
			}
			fmt.Fprintf(f, "%+v", cell)
		}
		return
	}
	io.WriteString(f, "[")
	for i, cell := range row.Cells {
		if i > 0 {
			io.WriteString(f, " | ")
		}
		fmt.Fprintf(f, "%v", cell)
	}
	io.WriteString(f, "]")
}

// Format writes the quoted plain text of the cell for `%v`; `%+v` adds
// whether it is a header (th) or data (td) cell, its alignment, and its
// inline content.
func (cell TableCell) Format(f fmt.State, _ rune) {
	if !f.Flag('+') {
		fmt.Fprintf(f, "%q", markdown.PlainText(cell.Inlines))
		return
	}
	kind := "td"
	if cell.IsHeader {
		kind = "th"
	}
	fmt.Fprintf(f, "%v %v %+v", kind, cell.Alignment, markdown.Inlines(cell.Inlines))
}
