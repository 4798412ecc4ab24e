package markdown

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

// blackfridayBase are the extensions always enabled in the blackfriday engine.
const blackfridayBase = 0 |
	blackfriday.NoIntraEmphasis |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.SpaceHeadings |
	blackfriday.BackslashLineBreak

type blackfridayEngine struct {
	flags blackfriday.Extensions
}

func newBlackfridayEngine(grammars []Grammar) Engine {
	flags := blackfriday.Extensions(blackfridayBase)
	for _, g := range grammars {
		flags |= g.Blackfriday
	}
	return blackfridayEngine{flags: flags}
}

func (be blackfridayEngine) Name() string { return EngineBlackfriday }

// Parse builds a new blackfriday parser per call, as blackfriday.Markdown
// carries parse state.
func (be blackfridayEngine) Parse(source []byte) RawBlock {
	// blackfriday only recognizes some blocks on terminated lines
	if n := len(source); n == 0 || source[n-1] != '\n' {
		source = append(source[:n:n], '\n')
	}
	md := blackfriday.New(blackfriday.WithExtensions(be.flags))
	doc := md.Parse(source)
	return RawBlock{Type: RawDocument, Children: blackfridayBlocks(doc)}
}

func blackfridayBlocks(parent *blackfriday.Node) []RawBlock {
	var out []RawBlock
	for n := parent.FirstChild; n != nil; n = n.Next {
		if raw, ok := blackfridayBlock(n); ok {
			out = append(out, raw)
		}
	}
	return out
}

func blackfridayBlock(n *blackfriday.Node) (RawBlock, bool) {
	switch n.Type {
	case blackfriday.Paragraph:
		return RawBlock{Type: RawParagraph, Inlines: blackfridayInlines(n)}, true

	case blackfriday.Heading:
		return RawBlock{Type: RawHeading, Level: n.Level, Inlines: blackfridayInlines(n)}, true

	case blackfriday.BlockQuote:
		return RawBlock{Type: RawBlockQuote, Children: blackfridayBlocks(n)}, true

	case blackfriday.List:
		raw := RawBlock{Type: RawList, Tight: n.Tight, Children: blackfridayBlocks(n)}
		// markers are only recorded on items
		var item blackfriday.ListData
		if n.FirstChild != nil {
			item = n.FirstChild.ListData
		}
		if n.ListFlags&blackfriday.ListTypeOrdered != 0 {
			// blackfriday does not retain the start number
			raw.Ordered = true
			raw.Start = 1
			raw.Marker = item.Delimiter
		} else {
			raw.Marker = item.BulletChar
		}
		return raw, true

	case blackfriday.Item:
		return RawBlock{Type: RawListItem, Children: blackfridayBlocks(n)}, true

	case blackfriday.CodeBlock:
		return RawBlock{
			Type:    RawCodeBlock,
			Fenced:  n.IsFenced,
			Info:    string(n.Info),
			Literal: string(n.Literal),
		}, true

	case blackfriday.HorizontalRule:
		return RawBlock{Type: RawThematicBreak}, true

	case blackfriday.HTMLBlock:
		return RawBlock{Type: RawHTMLBlock, Literal: string(n.Literal)}, true

	case blackfriday.Table:
		return RawBlock{Type: RawTable, Children: blackfridayBlocks(n)}, true

	case blackfriday.TableHead:
		return RawBlock{Type: RawTableHead, Children: blackfridayBlocks(n)}, true

	case blackfriday.TableBody:
		// always added by the grammar, even without any rows
		if n.FirstChild == nil {
			return RawBlock{}, false
		}
		return RawBlock{Type: RawTableBody, Children: blackfridayBlocks(n)}, true

	case blackfriday.TableRow:
		return RawBlock{Type: RawTableRow, Children: blackfridayBlocks(n)}, true

	case blackfriday.TableCell:
		return RawBlock{
			Type:    RawTableCell,
			Align:   blackfridayAlign(n.Align),
			Inlines: blackfridayInlines(n),
		}, true

	default:
		return RawBlock{Type: RawOther, Name: n.Type.String(), Children: blackfridayBlocks(n)}, true
	}
}

func blackfridayAlign(flags blackfriday.CellAlignFlags) CellAlign {
	switch flags {
	case blackfriday.TableAlignmentCenter:
		return CellAlignCenter
	case blackfriday.TableAlignmentRight:
		return CellAlignRight
	case blackfriday.TableAlignmentLeft:
		return CellAlignLeft
	default:
		return CellAlignNone
	}
}

func blackfridayInlines(parent *blackfriday.Node) []RawInline {
	var out []RawInline
	for n := parent.FirstChild; n != nil; n = n.Next {
		out = appendBlackfridayInline(out, n)
	}
	return out
}

func appendBlackfridayInline(out []RawInline, n *blackfriday.Node) []RawInline {
	switch n.Type {
	case blackfriday.Text:
		// paragraph text retains its line endings
		for i, line := range strings.Split(string(n.Literal), "\n") {
			if i > 0 {
				out = append(out, RawInline{Type: RawSoftBreak})
			}
			if line != "" {
				out = append(out, RawInline{Type: RawText, Literal: line})
			}
		}

	case blackfriday.Code:
		out = append(out, RawInline{Type: RawCode, Literal: string(n.Literal)})

	case blackfriday.Emph:
		out = append(out, RawInline{Type: RawEmphasis, Level: 1, Children: blackfridayInlines(n)})

	case blackfriday.Strong:
		out = append(out, RawInline{Type: RawEmphasis, Level: 2, Children: blackfridayInlines(n)})

	case blackfriday.Del:
		out = append(out, RawInline{Type: RawOtherInline, Name: "Strikethrough", Children: blackfridayInlines(n)})

	case blackfriday.Link:
		out = append(out, RawInline{
			Type:        RawLink,
			Destination: string(n.Destination),
			Title:       string(n.Title),
			Children:    blackfridayInlines(n),
		})

	case blackfriday.Image:
		out = append(out, RawInline{
			Type:        RawImage,
			Destination: string(n.Destination),
			Title:       string(n.Title),
			Children:    blackfridayInlines(n),
		})

	case blackfriday.HTMLSpan:
		out = append(out, RawInline{Type: RawHTML, Literal: string(n.Literal)})

	case blackfriday.Hardbreak:
		out = append(out, RawInline{Type: RawHardBreak})

	case blackfriday.Softbreak:
		out = append(out, RawInline{Type: RawSoftBreak})

	default:
		out = append(out, RawInline{
			Type:     RawOtherInline,
			Name:     n.Type.String(),
			Children: blackfridayInlines(n),
		})
	}
	return out
}
