package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type goldmarkEngine struct {
	md goldmark.Markdown
}

func newGoldmarkEngine(grammars []Grammar) Engine {
	var exts []goldmark.Extender
	for _, g := range grammars {
		if g.Goldmark != nil {
			exts = append(exts, g.Goldmark)
		}
	}
	return goldmarkEngine{md: goldmark.New(goldmark.WithExtensions(exts...))}
}

func (ge goldmarkEngine) Name() string { return EngineGoldmark }

func (ge goldmarkEngine) Parse(source []byte) RawBlock {
	doc := ge.md.Parser().Parse(text.NewReader(source))
	gc := goldmarkConverter{source: source}
	return RawBlock{Type: RawDocument, Children: gc.blocks(doc)}
}

// goldmarkConverter copies a goldmark tree into RawBlock form; goldmark nodes
// only hold segments, so it needs the source to extract any text.
type goldmarkConverter struct {
	source []byte
}

func (gc goldmarkConverter) blocks(parent ast.Node) []RawBlock {
	var out []RawBlock
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, gc.block(n))
	}
	return out
}

func (gc goldmarkConverter) block(node ast.Node) RawBlock {
	switch n := node.(type) {
	case *ast.Paragraph:
		return RawBlock{Type: RawParagraph, Inlines: gc.inlines(n)}

	case *ast.TextBlock:
		// tight list item content
		return RawBlock{Type: RawParagraph, Inlines: gc.inlines(n)}

	case *ast.Heading:
		return RawBlock{Type: RawHeading, Level: n.Level, Inlines: gc.inlines(n)}

	case *ast.Blockquote:
		return RawBlock{Type: RawBlockQuote, Children: gc.blocks(n)}

	case *ast.List:
		raw := RawBlock{
			Type:     RawList,
			Marker:   n.Marker,
			Ordered:  n.IsOrdered(),
			Tight:    n.IsTight,
			Children: gc.blocks(n),
		}
		if raw.Ordered {
			raw.Start = n.Start
		}
		return raw

	case *ast.ListItem:
		return RawBlock{Type: RawListItem, Children: gc.blocks(n)}

	case *ast.FencedCodeBlock:
		raw := RawBlock{Type: RawCodeBlock, Fenced: true, Literal: gc.lines(n)}
		if n.Info != nil {
			raw.Info = string(n.Info.Segment.Value(gc.source))
		}
		return raw

	case *ast.CodeBlock:
		return RawBlock{Type: RawCodeBlock, Literal: gc.lines(n)}

	case *ast.ThematicBreak:
		return RawBlock{Type: RawThematicBreak}

	case *ast.HTMLBlock:
		lit := gc.lines(n)
		if n.HasClosure() {
			lit += string(n.ClosureLine.Value(gc.source))
		}
		return RawBlock{Type: RawHTMLBlock, Literal: lit}

	case *extast.Table:
		return gc.table(n)

	default:
		raw := RawBlock{Type: RawOther, Name: node.Kind().String()}
		if c := node.FirstChild(); c != nil {
			if c.Type() == ast.TypeBlock {
				raw.Children = gc.blocks(node)
			} else {
				raw.Inlines = gc.inlines(node)
			}
		}
		return raw
	}
}

func (gc goldmarkConverter) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(gc.source))
	}
	return sb.String()
}

// table splits goldmark's header-then-rows table into head and body
// sections; the body section is only present when there are rows.
func (gc goldmarkConverter) table(tbl *extast.Table) RawBlock {
	raw := RawBlock{Type: RawTable}
	var body []RawBlock
	for n := tbl.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.(type) {
		case *extast.TableHeader:
			raw.Children = append(raw.Children, RawBlock{
				Type:     RawTableHead,
				Children: []RawBlock{gc.tableRow(tbl, n)},
			})
		case *extast.TableRow:
			body = append(body, gc.tableRow(tbl, n))
		}
	}
	if len(body) > 0 {
		raw.Children = append(raw.Children, RawBlock{Type: RawTableBody, Children: body})
	}
	return raw
}

// tableRow reads cell alignment from the table's column list, since cells
// that the grammar pads onto short rows carry no alignment of their own.
func (gc goldmarkConverter) tableRow(tbl *extast.Table, row ast.Node) RawBlock {
	raw := RawBlock{Type: RawTableRow}
	col := 0
	for n := row.FirstChild(); n != nil; n = n.NextSibling() {
		cell, ok := n.(*extast.TableCell)
		if !ok {
			continue
		}
		align := cell.Alignment
		if col < len(tbl.Alignments) {
			align = tbl.Alignments[col]
		}
		raw.Children = append(raw.Children, RawBlock{
			Type:    RawTableCell,
			Align:   goldmarkAlign(align),
			Inlines: gc.inlines(cell),
		})
		col++
	}
	return raw
}

func goldmarkAlign(a extast.Alignment) CellAlign {
	switch a {
	case extast.AlignLeft:
		return CellAlignLeft
	case extast.AlignCenter:
		return CellAlignCenter
	case extast.AlignRight:
		return CellAlignRight
	default:
		return CellAlignNone
	}
}

func (gc goldmarkConverter) inlines(parent ast.Node) []RawInline {
	var out []RawInline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = gc.appendInline(out, n)
	}
	return out
}

func (gc goldmarkConverter) appendInline(out []RawInline, node ast.Node) []RawInline {
	switch n := node.(type) {
	case *ast.Text:
		value := n.Segment.Value(gc.source)
		if !n.IsRaw() {
			value = unescapeText(value)
		}
		if len(value) > 0 {
			out = append(out, RawInline{Type: RawText, Literal: string(value)})
		}
		if n.HardLineBreak() {
			out = append(out, RawInline{Type: RawHardBreak})
		} else if n.SoftLineBreak() {
			out = append(out, RawInline{Type: RawSoftBreak})
		}

	case *ast.String:
		if len(n.Value) > 0 {
			out = append(out, RawInline{Type: RawText, Literal: string(n.Value)})
		}

	case *ast.CodeSpan:
		out = append(out, RawInline{Type: RawCode, Literal: gc.codeSpan(n)})

	case *ast.Emphasis:
		out = append(out, RawInline{Type: RawEmphasis, Level: n.Level, Children: gc.inlines(n)})

	case *ast.Link:
		out = append(out, RawInline{
			Type:        RawLink,
			Destination: string(n.Destination),
			Title:       string(n.Title),
			Children:    gc.inlines(n),
		})

	case *ast.Image:
		out = append(out, RawInline{
			Type:        RawImage,
			Destination: string(n.Destination),
			Title:       string(n.Title),
			Children:    gc.inlines(n),
		})

	case *ast.AutoLink:
		url := string(n.URL(gc.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		out = append(out, RawInline{
			Type:        RawLink,
			Destination: url,
			Children:    []RawInline{{Type: RawText, Literal: string(n.Label(gc.source))}},
		})

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(gc.source))
		}
		out = append(out, RawInline{Type: RawHTML, Literal: sb.String()})

	default:
		out = append(out, RawInline{
			Type:     RawOtherInline,
			Name:     node.Kind().String(),
			Children: gc.inlines(node),
		})
	}
	return out
}

// codeSpan joins a code span's raw text children; line endings within a code
// span read as spaces.
func (gc goldmarkConverter) codeSpan(n *ast.CodeSpan) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(gc.source))
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return strings.ReplaceAll(sb.String(), "\n", " ")
}

// unescapeText drops backslashes before ASCII punctuation and resolves
// character references, leaving escaped characters alone.
func unescapeText(v []byte) []byte {
	out := make([]byte, 0, len(v))
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) && util.IsPunct(v[i+1]) {
			out = append(out, resolveReferences(v[start:i])...)
			out = append(out, v[i+1])
			i++
			start = i + 1
		}
	}
	return append(out, resolveReferences(v[start:])...)
}

func resolveReferences(v []byte) []byte {
	return util.ResolveEntityNames(util.ResolveNumericReferences(v))
}
