package markdown

import (
	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
)

// Grammar names the syntax an extension enables within each engine. Engines
// cannot produce an extension's raw nodes unless its grammar is registered.
type Grammar struct {
	Goldmark    goldmark.Extender
	Blackfriday blackfriday.Extensions
}

// ProcessorExtension is a pluggable unit pairing engine grammar with the
// processors that turn the resulting raw nodes into document nodes.
// Either processor may be nil.
type ProcessorExtension interface {
	Grammar() Grammar
	BlockProcessor() BlockProcessorExtension
	InlineProcessor() InlineProcessorExtension
}

// BlockProcessorExtension transforms raw blocks that no core block covers.
//
// Process must only be called after CanProcess returned true for the same
// raw block; implementations return an error otherwise.
type BlockProcessorExtension interface {
	CanProcess(raw RawBlock) bool
	Process(raw RawBlock, ctx Context) (CustomBlock, error)
}

// InlineProcessorExtension transforms RawOtherInline nodes.
type InlineProcessorExtension interface {
	CanProcess(raw RawInline) bool
	Process(raw RawInline, ctx Context) CustomInline
}

// Context is the processing state that extensions may call back into.
type Context interface {
	// ReadInline converts raw inline content, routing through every
	// registered inline extension.
	ReadInline(raw []RawInline) []Inline

	// ProcessBlocks converts nested raw blocks.
	ProcessBlocks(raw []RawBlock) ([]Block, error)

	// Extensions returns the registered extensions, in registration order.
	Extensions() []ProcessorExtension
}
