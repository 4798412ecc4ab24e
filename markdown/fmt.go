package markdown

import (
	"fmt"
	"io"

	"github.com/jcorbin/mdtable/internal/textutil"
)

func (t RawType) String() string {
	switch t {
	case noRaw:
		return "None"
	case RawDocument:
		return "Document"
	case RawParagraph:
		return "Paragraph"
	case RawHeading:
		return "Heading"
	case RawBlockQuote:
		return "BlockQuote"
	case RawList:
		return "List"
	case RawListItem:
		return "ListItem"
	case RawCodeBlock:
		return "CodeBlock"
	case RawThematicBreak:
		return "ThematicBreak"
	case RawHTMLBlock:
		return "HTMLBlock"
	case RawTable:
		return "Table"
	case RawTableHead:
		return "TableHead"
	case RawTableBody:
		return "TableBody"
	case RawTableRow:
		return "TableRow"
	case RawTableCell:
		return "TableCell"
	case RawOther:
		return "Other"
	default:
		return fmt.Sprintf("InvalidRaw%d", int(t))
	}
}

func (a CellAlign) String() string {
	switch a {
	case CellAlignNone:
		return "none"
	case CellAlignLeft:
		return "left"
	case CellAlignCenter:
		return "center"
	case CellAlignRight:
		return "right"
	default:
		return fmt.Sprintf("InvalidAlign%d", int(a))
	}
}

// Format writes a single line describing the receiver, but not its children.
// Produces a verbose "Type attr=value" form when formatted with `%+v`, a
// terse "Type" form otherwise.
func (rb RawBlock) Format(f fmt.State, _ rune) {
	switch rb.Type {
	case RawHeading:
		fmt.Fprintf(f, "%v%v", rb.Type, rb.Level)
	case RawList:
		if rb.Ordered {
			io.WriteString(f, "OrderedList")
		} else {
			io.WriteString(f, "List")
		}
	case RawOther:
		fmt.Fprintf(f, "Other(%v)", rb.Name)
	default:
		io.WriteString(f, rb.Type.String())
	}
	if !f.Flag('+') {
		return
	}
	if rb.Marker != 0 {
		fmt.Fprintf(f, " marker=%q", rb.Marker)
	}
	if rb.Ordered {
		fmt.Fprintf(f, " start=%v", rb.Start)
	}
	if rb.Tight {
		io.WriteString(f, " tight")
	}
	if rb.Fenced {
		io.WriteString(f, " fenced")
	}
	if rb.Info != "" {
		fmt.Fprintf(f, " info=%q", rb.Info)
	}
	if rb.Type == RawTableCell {
		fmt.Fprintf(f, " align=%v", rb.Align)
	}
	if rb.Literal != "" {
		fmt.Fprintf(f, " literal=%q", rb.Literal)
	}
	if len(rb.Inlines) > 0 {
		io.WriteString(f, " ")
		formatRawInlines(f, rb.Inlines)
	}
}

// Format writes the receiver and its children in a terse nested form.
func (ri RawInline) Format(f fmt.State, _ rune) {
	switch ri.Type {
	case RawText:
		fmt.Fprintf(f, "Text(%q)", ri.Literal)
	case RawCode:
		fmt.Fprintf(f, "Code(%q)", ri.Literal)
	case RawHTML:
		fmt.Fprintf(f, "HTML(%q)", ri.Literal)
	case RawSoftBreak:
		io.WriteString(f, "SoftBreak")
	case RawHardBreak:
		io.WriteString(f, "HardBreak")
	case RawEmphasis:
		fmt.Fprintf(f, "Emphasis%v", ri.Level)
		formatRawInlines(f, ri.Children)
	case RawLink:
		fmt.Fprintf(f, "Link(%q)", ri.Destination)
		formatRawInlines(f, ri.Children)
	case RawImage:
		fmt.Fprintf(f, "Image(%q)", ri.Destination)
		formatRawInlines(f, ri.Children)
	case RawOtherInline:
		fmt.Fprintf(f, "Other(%v)", ri.Name)
		formatRawInlines(f, ri.Children)
	default:
		fmt.Fprintf(f, "InvalidRawInline%d", int(ri.Type))
	}
}

func formatRawInlines(w io.Writer, inlines []RawInline) {
	io.WriteString(w, "[")
	for i, in := range inlines {
		if i > 0 {
			io.WriteString(w, ", ")
		}
		fmt.Fprintf(w, "%v", in)
	}
	io.WriteString(w, "]")
}

// Inlines provides fmt.Printf display for a sequence of inlines.
type Inlines []Inline

// Format writes a bracketed, comma separated list, passing any `+` flag
// along to each inline.
func (ins Inlines) Format(f fmt.State, _ rune) {
	verb := "%v"
	if f.Flag('+') {
		verb = "%+v"
	}
	io.WriteString(f, "[")
	for i, in := range ins {
		if i > 0 {
			io.WriteString(f, ", ")
		}
		fmt.Fprintf(f, verb, in)
	}
	io.WriteString(f, "]")
}

func (t Text) Format(f fmt.State, _ rune) { fmt.Fprintf(f, "Text(%q)", t.Content) }
func (c Code) Format(f fmt.State, _ rune) { fmt.Fprintf(f, "Code(%q)", c.Content) }
func (h HTML) Format(f fmt.State, _ rune) { fmt.Fprintf(f, "HTML(%q)", h.Content) }

func (SoftLineBreak) Format(f fmt.State, _ rune) { io.WriteString(f, "SoftLineBreak") }
func (HardLineBreak) Format(f fmt.State, _ rune) { io.WriteString(f, "HardLineBreak") }

func (e Emphasis) Format(f fmt.State, c rune) {
	io.WriteString(f, "Emphasis")
	Inlines(e.Inlines).Format(f, c)
}

func (e StrongEmphasis) Format(f fmt.State, c rune) {
	io.WriteString(f, "StrongEmphasis")
	Inlines(e.Inlines).Format(f, c)
}

// Format writes "Link(destination)[...]"; the `%+v` form includes any title.
func (l Link) Format(f fmt.State, c rune) {
	if f.Flag('+') && l.Title != "" {
		fmt.Fprintf(f, "Link(%q title=%q)", l.Destination, l.Title)
	} else {
		fmt.Fprintf(f, "Link(%q)", l.Destination)
	}
	Inlines(l.Inlines).Format(f, c)
}

// Format writes "Image(source alt=...)"; the `%+v` form includes any title.
func (im Image) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "Image(%q alt=%q", im.Source, im.Alt)
	if f.Flag('+') && im.Title != "" {
		fmt.Fprintf(f, " title=%q", im.Title)
	}
	io.WriteString(f, ")")
}

func (p Paragraph) Format(f fmt.State, c rune) {
	io.WriteString(f, "Paragraph")
	Inlines(p.Inlines).Format(f, c)
}

func (h Heading) Format(f fmt.State, c rune) {
	fmt.Fprintf(f, "Heading%v", h.Level)
	Inlines(h.Inlines).Format(f, c)
}

// Format writes "BlockQuote(N)"; the `%+v` form lists every quoted block,
// indented, on following lines.
func (bq BlockQuote) Format(f fmt.State, _ rune) {
	if !f.Flag('+') {
		fmt.Fprintf(f, "BlockQuote(%v)", len(bq.Blocks))
		return
	}
	io.WriteString(f, "BlockQuote")
	formatNested(f, bq.Blocks)
}

// Format writes "List(N)"; the `%+v` form lists every item and its blocks on
// following lines.
func (l List) Format(f fmt.State, _ rune) {
	name := "List"
	if l.Ordered {
		name = "OrderedList"
	}
	if !f.Flag('+') {
		fmt.Fprintf(f, "%v(%v)", name, len(l.Items))
		return
	}
	io.WriteString(f, name)
	if l.Marker != 0 {
		fmt.Fprintf(f, " marker=%q", l.Marker)
	}
	if l.Ordered {
		fmt.Fprintf(f, " start=%v", l.Start)
	}
	if l.Tight {
		io.WriteString(f, " tight")
	}
	for _, item := range l.Items {
		io.WriteString(f, "\n")
		pw := textutil.Indent(f, 1)
		io.WriteString(pw, "Item")
		formatNested(pw, item.Blocks)
	}
}

func formatNested(w io.Writer, blocks []Block) {
	for _, b := range blocks {
		io.WriteString(w, "\n")
		fmt.Fprintf(textutil.Indent(w, 1), "%+v", b)
	}
}

func (cb CodeBlock) Format(f fmt.State, _ rune) {
	io.WriteString(f, "CodeBlock")
	if cb.Info != "" {
		fmt.Fprintf(f, "(%q)", cb.Info)
	}
	if f.Flag('+') {
		fmt.Fprintf(f, " %q", cb.Content)
	}
}

func (ThematicBreak) Format(f fmt.State, _ rune) { io.WriteString(f, "ThematicBreak") }

func (hb HTMLBlock) Format(f fmt.State, _ rune) { fmt.Fprintf(f, "HTMLBlock(%q)", hb.Content) }

// WriteRawTree writes rb and all of its descendants in `%+v` form, one per
// line, indented by depth.
func WriteRawTree(w io.Writer, rb RawBlock) error {
	ew := &textutil.ErrWriter{Writer: w}
	writeRawTree(ew, rb, 0)
	return ew.Err
}

func writeRawTree(w io.Writer, rb RawBlock, depth int) {
	fmt.Fprintf(textutil.Indent(w, depth), "%+v\n", rb)
	for _, child := range rb.Children {
		writeRawTree(w, child, depth+1)
	}
}
