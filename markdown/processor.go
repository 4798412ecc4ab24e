package markdown

import (
	"fmt"

	"go.uber.org/zap"
)

// Processor turns markdown source into a processed document: an Engine
// recognizes the syntax, then core conversion or the first matching
// registered extension transforms each raw node.
//
// A Processor is immutable once built. Independent Processors may be used
// from parallel goroutines.
type Processor struct {
	engine     Engine
	extensions []ProcessorExtension
	blocks     []BlockProcessorExtension
	inlines    []InlineProcessorExtension
	log        *zap.Logger
}

type options struct {
	engine     string
	extensions []ProcessorExtension
	log        *zap.Logger
}

// Option configures NewProcessor.
type Option func(*options)

// WithEngine selects an engine by name; see EngineNames.
func WithEngine(name string) Option {
	return func(o *options) { o.engine = name }
}

// WithExtensions registers extensions, after any already registered. Order
// matters: when more than one extension can process a node, the first one
// registered wins.
func WithExtensions(exts ...ProcessorExtension) Option {
	return func(o *options) { o.extensions = append(o.extensions, exts...) }
}

// WithLogger sets a logger for dispatch decisions; none by default.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// NewProcessor builds a Processor, and its engine with the grammar of every
// registered extension.
func NewProcessor(opts ...Option) (*Processor, error) {
	o := options{engine: EngineGoldmark, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Processor{extensions: o.extensions}
	grammars := make([]Grammar, 0, len(o.extensions))
	for _, ext := range o.extensions {
		grammars = append(grammars, ext.Grammar())
		if bp := ext.BlockProcessor(); bp != nil {
			p.blocks = append(p.blocks, bp)
		}
		if ip := ext.InlineProcessor(); ip != nil {
			p.inlines = append(p.inlines, ip)
		}
	}

	engine, err := NewEngine(o.engine, grammars)
	if err != nil {
		return nil, err
	}
	p.engine = engine
	p.log = o.log.With(zap.String("engine", engine.Name()))
	return p, nil
}

// Engine returns the engine used by Parse.
func (p *Processor) Engine() Engine { return p.engine }

// Extensions returns the registered extensions, in registration order.
func (p *Processor) Extensions() []ProcessorExtension {
	return append([]ProcessorExtension(nil), p.extensions...)
}

// Parse runs only the engine, returning its RawDocument.
func (p *Processor) Parse(source []byte) RawBlock {
	return p.engine.Parse(source)
}

// ProcessDocument parses and processes a whole document.
func (p *Processor) ProcessDocument(source []byte) ([]Block, error) {
	doc := p.Parse(source)
	return p.ProcessBlocks(doc.Children)
}

// ProcessBlocks processes a sequence of sibling raw blocks, skipping any that
// no processor claims. It stops at the first error.
func (p *Processor) ProcessBlocks(raw []RawBlock) ([]Block, error) {
	blocks := make([]Block, 0, len(raw))
	for _, rb := range raw {
		b, err := p.ProcessBlock(rb)
		if err != nil {
			return nil, err
		}
		if b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

// ProcessBlock processes a single raw block. It returns a nil Block and nil
// error if no processor claims the block.
func (p *Processor) ProcessBlock(raw RawBlock) (Block, error) {
	switch raw.Type {
	case RawParagraph:
		return Paragraph{Inlines: trimBreaks(p.ReadInline(raw.Inlines))}, nil

	case RawHeading:
		return Heading{Level: raw.Level, Inlines: trimBreaks(p.ReadInline(raw.Inlines))}, nil

	case RawBlockQuote:
		blocks, err := p.ProcessBlocks(raw.Children)
		if err != nil {
			return nil, err
		}
		return BlockQuote{Blocks: blocks}, nil

	case RawList:
		list := List{
			Ordered: raw.Ordered,
			Start:   raw.Start,
			Marker:  raw.Marker,
			Tight:   raw.Tight,
			Items:   make([]ListItem, 0, len(raw.Children)),
		}
		for _, item := range raw.Children {
			if item.Type != RawListItem {
				continue
			}
			blocks, err := p.ProcessBlocks(item.Children)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, ListItem{Blocks: blocks})
		}
		return list, nil

	case RawCodeBlock:
		return CodeBlock{Fenced: raw.Fenced, Info: raw.Info, Content: raw.Literal}, nil

	case RawThematicBreak:
		return ThematicBreak{}, nil

	case RawHTMLBlock:
		return HTMLBlock{Content: raw.Literal}, nil
	}

	for i, bp := range p.blocks {
		if !bp.CanProcess(raw) {
			continue
		}
		p.log.Debug("extension block",
			zap.Stringer("type", raw.Type),
			zap.Int("processor", i))
		b, err := bp.Process(raw, p)
		if err != nil {
			return nil, fmt.Errorf("processing %v block: %w", raw.Type, err)
		}
		if b == nil {
			return nil, nil // avoid a non-nil Block holding a nil CustomBlock
		}
		return b, nil
	}

	p.log.Warn("no processor for block",
		zap.Stringer("type", raw.Type),
		zap.String("name", raw.Name))
	return nil, nil
}

// trimBreaks drops line breaks trailing a paragraph or heading.
func trimBreaks(inlines []Inline) []Inline {
	for i := len(inlines) - 1; i >= 0; i-- {
		switch inlines[i].(type) {
		case SoftLineBreak, HardLineBreak:
			inlines = inlines[:i]
			continue
		}
		break
	}
	return inlines
}
