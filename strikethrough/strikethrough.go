// Package strikethrough implements the GitHub Flavored Markdown
// strikethrough extension: text between double tildes.
package strikethrough

import (
	"fmt"
	"io"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/jcorbin/mdtable/markdown"
)

// rawName is the name both engines' adapters give a raw strikethrough.
const rawName = "Strikethrough"

// Strikethrough is struck out inline content.
type Strikethrough struct {
	Inlines []markdown.Inline
}

// Kind implements markdown.Inline.
func (Strikethrough) Kind() markdown.InlineKind { return markdown.KindCustomInline }

// InlineName implements markdown.CustomInline.
func (Strikethrough) InlineName() string { return rawName }

// PlainText implements markdown.CustomInline.
func (s Strikethrough) PlainText() string { return markdown.PlainText(s.Inlines) }

// AppendInlineMarkdown implements markdown.InlineAppender.
func (s Strikethrough) AppendInlineMarkdown(buf []byte, inTable bool) []byte {
	buf = append(buf, "~~"...)
	buf = markdown.AppendInlines(buf, s.Inlines, inTable)
	return append(buf, "~~"...)
}

func (s Strikethrough) Format(f fmt.State, c rune) {
	io.WriteString(f, "Strikethrough")
	markdown.Inlines(s.Inlines).Format(f, c)
}

type strikethroughExtension struct {
	grammar markdown.Grammar
}

// New returns a strikethrough extension for markdown.WithExtensions.
func New() markdown.ProcessorExtension {
	return &strikethroughExtension{
		grammar: markdown.Grammar{
			Goldmark:    extension.Strikethrough,
			Blackfriday: blackfriday.Strikethrough,
		},
	}
}

func (ext *strikethroughExtension) Grammar() markdown.Grammar { return ext.grammar }

func (*strikethroughExtension) BlockProcessor() markdown.BlockProcessorExtension { return nil }

func (*strikethroughExtension) InlineProcessor() markdown.InlineProcessorExtension {
	return inlineProcessor{}
}

type inlineProcessor struct{}

func (inlineProcessor) CanProcess(raw markdown.RawInline) bool {
	return raw.Type == markdown.RawOtherInline && raw.Name == rawName
}

func (inlineProcessor) Process(raw markdown.RawInline, ctx markdown.Context) markdown.CustomInline {
	return Strikethrough{Inlines: ctx.ReadInline(raw.Children)}
}
