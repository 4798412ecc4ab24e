package markdown

import "go.uber.org/zap"

// ReadInline converts raw inline content. Adjacent text is merged into a
// single Text. RawOtherInline nodes go to the first registered inline
// extension that can process them; when none can, their children are read in
// their place so that no content is lost.
//
// The result is never nil, even for empty content.
func (p *Processor) ReadInline(raw []RawInline) []Inline {
	return p.appendInlines(make([]Inline, 0, len(raw)), raw)
}

func (p *Processor) appendInlines(out []Inline, raw []RawInline) []Inline {
	for _, in := range raw {
		out = p.appendInline(out, in)
	}
	return out
}

func (p *Processor) appendInline(out []Inline, raw RawInline) []Inline {
	switch raw.Type {
	case RawText:
		return mergeText(out, raw.Literal)

	case RawCode:
		return append(out, Code{Content: raw.Literal})

	case RawEmphasis:
		if raw.Level >= 2 {
			return append(out, StrongEmphasis{Inlines: p.ReadInline(raw.Children)})
		}
		return append(out, Emphasis{Inlines: p.ReadInline(raw.Children)})

	case RawLink:
		return append(out, Link{
			Destination: raw.Destination,
			Title:       raw.Title,
			Inlines:     p.ReadInline(raw.Children),
		})

	case RawImage:
		return append(out, Image{
			Source: raw.Destination,
			Title:  raw.Title,
			Alt:    PlainText(p.ReadInline(raw.Children)),
		})

	case RawHTML:
		return append(out, HTML{Content: raw.Literal})

	case RawSoftBreak:
		return append(out, SoftLineBreak{})

	case RawHardBreak:
		return append(out, HardLineBreak{})
	}

	for _, ip := range p.inlines {
		if ip.CanProcess(raw) {
			if in := ip.Process(raw, p); in != nil {
				out = append(out, in)
			}
			return out
		}
	}
	p.log.Debug("no processor for inline", zap.String("name", raw.Name))
	return p.appendInlines(out, raw.Children)
}

func mergeText(out []Inline, s string) []Inline {
	if s == "" {
		return out
	}
	if i := len(out) - 1; i >= 0 {
		if t, ok := out[i].(Text); ok {
			out[i] = Text{Content: t.Content + s}
			return out
		}
	}
	return append(out, Text{Content: s})
}
