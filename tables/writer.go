package tables

import (
	"strings"
	"unicode/utf8"

	"github.com/jcorbin/mdtable/markdown"
)

// AppendMarkdown implements markdown.MarkdownAppender, writing a pipe table
// with every column padded to its widest cell. Short rows are padded with
// empty cells, which reads back the same as the grammar's own padding.
func (tb TableBlock) AppendMarkdown(buf []byte) []byte {
	rows := tb.Rows()
	cols := tb.Columns()
	if cols == 0 {
		return buf
	}

	text := make([][]string, len(rows))
	widths := make([]int, cols)
	aligns := make([]Alignment, cols)
	aligned := make([]bool, cols)
	for i := range widths {
		widths[i] = 3 // shortest delimiter cell
	}
	for r, row := range rows {
		text[r] = make([]string, cols)
		for c, cell := range row.Cells {
			text[r][c] = string(markdown.AppendInlines(nil, cell.Inlines, true))
			if w := utf8.RuneCountInString(text[r][c]); w > widths[c] {
				widths[c] = w
			}
			if !aligned[c] {
				aligns[c], aligned[c] = cell.Alignment, true
			}
		}
	}

	buf = appendRow(buf, text[0], widths, aligns)
	buf = append(buf, '\n')
	buf = appendDelimiterRow(buf, widths, aligns)
	for _, cells := range text[1:] {
		buf = append(buf, '\n')
		buf = appendRow(buf, cells, widths, aligns)
	}
	return buf
}

func appendRow(buf []byte, cells []string, widths []int, aligns []Alignment) []byte {
	buf = append(buf, '|')
	for c, s := range cells {
		pad := widths[c] - utf8.RuneCountInString(s)
		var left int
		switch aligns[c] {
		case AlignRight:
			left = pad
		case AlignCenter:
			left = pad / 2
		}
		buf = append(buf, ' ')
		buf = append(buf, strings.Repeat(" ", left)...)
		buf = append(buf, s...)
		buf = append(buf, strings.Repeat(" ", pad-left)...)
		buf = append(buf, " |"...)
	}
	return buf
}

func appendDelimiterRow(buf []byte, widths []int, aligns []Alignment) []byte {
	buf = append(buf, '|')
	for c, w := range widths {
		buf = append(buf, ' ')
		switch aligns[c] {
		case AlignCenter:
			buf = append(buf, ':')
			buf = append(buf, strings.Repeat("-", w-2)...)
			buf = append(buf, ':')
		case AlignRight:
			buf = append(buf, strings.Repeat("-", w-1)...)
			buf = append(buf, ':')
		default:
			buf = append(buf, strings.Repeat("-", w)...)
		}
		buf = append(buf, " |"...)
	}
	return buf
}
