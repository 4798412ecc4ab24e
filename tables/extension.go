package tables

import (
	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/jcorbin/mdtable/markdown"
)

type tableExtension struct {
	grammar   markdown.Grammar
	processor blockProcessor
}

// New returns a table extension for markdown.WithExtensions. Each call
// returns an independent value; none share any state.
func New() markdown.ProcessorExtension {
	return &tableExtension{
		grammar: markdown.Grammar{
			Goldmark:    extension.NewTable(),
			Blackfriday: blackfriday.Tables,
		},
	}
}

// Grammar enables each engine's own table syntax.
func (ext *tableExtension) Grammar() markdown.Grammar { return ext.grammar }

func (ext *tableExtension) BlockProcessor() markdown.BlockProcessorExtension {
	return ext.processor
}

func (*tableExtension) InlineProcessor() markdown.InlineProcessorExtension {
	return nil
}
