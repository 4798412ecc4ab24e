package markdown

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// MarkdownAppender is implemented by custom blocks that can write themselves
// as markdown. The appended text has no trailing newline.
type MarkdownAppender interface {
	AppendMarkdown(buf []byte) []byte
}

// InlineAppender is implemented by custom inlines that can write themselves
// as markdown; see AppendInlines for inTable.
type InlineAppender interface {
	AppendInlineMarkdown(buf []byte, inTable bool) []byte
}

// Render writes blocks back out as markdown, terminated by a newline.
func Render(blocks []Block) []byte {
	buf := appendBlocks(nil, blocks, false)
	if len(buf) > 0 {
		buf = append(buf, '\n')
	}
	return buf
}

// WriteMarkdown writes Render(blocks) into w.
func WriteMarkdown(w io.Writer, blocks []Block) error {
	_, err := w.Write(Render(blocks))
	return err
}

func appendBlocks(buf []byte, blocks []Block, tight bool) []byte {
	for i, b := range blocks {
		if i > 0 {
			buf = append(buf, '\n')
			if !tight {
				buf = append(buf, '\n')
			}
		}
		buf = appendBlock(buf, b)
	}
	return buf
}

func appendBlock(buf []byte, b Block) []byte {
	switch v := b.(type) {
	case Paragraph:
		return appendInlines(buf, v.Inlines, inlineFlags{lineStart: true})

	case Heading:
		for i := 0; i < v.Level; i++ {
			buf = append(buf, '#')
		}
		buf = append(buf, ' ')
		return appendInlines(buf, v.Inlines, inlineFlags{oneLine: true})

	case BlockQuote:
		inner := appendBlocks(nil, v.Blocks, false)
		return appendPrefixed(buf, inner, "> ", "> ")

	case List:
		for i, item := range v.Items {
			if i > 0 {
				buf = append(buf, '\n')
				if !v.Tight {
					buf = append(buf, '\n')
				}
			}
			marker := listMarker(v, i)
			inner := appendBlocks(nil, item.Blocks, v.Tight)
			buf = appendPrefixed(buf, inner, marker, strings.Repeat(" ", len(marker)))
		}
		return buf

	case CodeBlock:
		content := v.Content
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		fence := strings.Repeat("`", fenceWidth(content))
		buf = append(buf, fence...)
		buf = append(buf, v.Info...)
		buf = append(buf, '\n')
		buf = append(buf, content...)
		return append(buf, fence...)

	case ThematicBreak:
		// not "---", which may turn a preceding tight paragraph into a heading
		return append(buf, "***"...)

	case HTMLBlock:
		return append(buf, strings.TrimRight(v.Content, "\n")...)

	case MarkdownAppender:
		return v.AppendMarkdown(buf)

	case CustomBlock:
		return append(buf, "<!-- unsupported "+v.BlockName()+" -->"...)
	}
	return buf
}

func listMarker(l List, i int) string {
	if !l.Ordered {
		if l.Marker == 0 {
			return "- "
		}
		return string(l.Marker) + " "
	}
	delim := l.Marker
	if delim == 0 {
		delim = '.'
	}
	return strconv.Itoa(l.Start+i) + string(delim) + " "
}

// appendPrefixed appends text with first before its first line, and rest
// before every other line; blank lines only get rest without trailing space.
func appendPrefixed(buf, text []byte, first, rest string) []byte {
	if len(text) == 0 {
		return append(buf, strings.TrimRight(first, " ")...)
	}
	for i, line := range bytes.Split(text, []byte{'\n'}) {
		if i > 0 {
			buf = append(buf, '\n')
		}
		switch {
		case i == 0:
			buf = append(buf, first...)
		case len(line) == 0:
			buf = append(buf, strings.TrimRight(rest, " ")...)
		default:
			buf = append(buf, rest...)
		}
		buf = append(buf, line...)
	}
	return buf
}

// fenceWidth returns how many backticks are needed to fence content.
func fenceWidth(content string) int {
	width := 3
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if run := len(trimmed) - len(strings.TrimLeft(trimmed, "`")); run >= width {
			width = run + 1
		}
	}
	return width
}

type inlineFlags struct {
	inTable   bool // escape pipes, write line breaks as spaces
	oneLine   bool // write line breaks as spaces
	lineStart bool // at the start of a line, where block syntax may begin
}

// AppendInlines appends inlines as markdown. When inTable is set, the result
// is suitable for a table cell: pipes are escaped, even within code spans,
// and line breaks become spaces.
func AppendInlines(buf []byte, inlines []Inline, inTable bool) []byte {
	return appendInlines(buf, inlines, inlineFlags{inTable: inTable, oneLine: inTable})
}

func appendInlines(buf []byte, inlines []Inline, flags inlineFlags) []byte {
	for _, in := range inlines {
		start := len(buf)
		buf = appendInline(buf, in, flags)
		if len(buf) > start {
			flags.lineStart = buf[len(buf)-1] == '\n'
		}
	}
	return buf
}

func appendInline(buf []byte, in Inline, flags inlineFlags) []byte {
	switch v := in.(type) {
	case Text:
		return appendText(buf, v.Content, flags)

	case Code:
		return appendCode(buf, v.Content, flags.inTable)

	case Emphasis:
		buf = append(buf, '*')
		buf = appendInlines(buf, v.Inlines, flags.nested())
		return append(buf, '*')

	case StrongEmphasis:
		buf = append(buf, "**"...)
		buf = appendInlines(buf, v.Inlines, flags.nested())
		return append(buf, "**"...)

	case Link:
		if auto, ok := autoLink(v); ok {
			buf = append(buf, '<')
			buf = append(buf, auto...)
			return append(buf, '>')
		}
		buf = append(buf, '[')
		buf = appendInlines(buf, v.Inlines, flags.nested())
		buf = append(buf, "]("...)
		buf = appendDestination(buf, v.Destination, v.Title, flags.inTable)
		return append(buf, ')')

	case Image:
		buf = append(buf, "!["...)
		buf = appendText(buf, v.Alt, flags.nested())
		buf = append(buf, "]("...)
		buf = appendDestination(buf, v.Source, v.Title, flags.inTable)
		return append(buf, ')')

	case HTML:
		return append(buf, v.Content...)

	case SoftLineBreak:
		if flags.oneLine {
			return append(buf, ' ')
		}
		return append(buf, '\n')

	case HardLineBreak:
		if flags.oneLine {
			return append(buf, ' ')
		}
		return append(buf, "\\\n"...)

	case InlineAppender:
		return v.AppendInlineMarkdown(buf, flags.inTable)

	case CustomInline:
		return appendText(buf, v.PlainText(), flags)
	}
	return buf
}

func (flags inlineFlags) nested() inlineFlags {
	flags.lineStart = false
	return flags
}

// autoLink returns what to write within angle brackets for a link whose
// text is its own destination.
func autoLink(l Link) (string, bool) {
	if len(l.Inlines) != 1 || l.Title != "" || strings.ContainsAny(l.Destination, " <>") {
		return "", false
	}
	t, ok := l.Inlines[0].(Text)
	switch {
	case !ok || !strings.Contains(l.Destination, ":"):
		return "", false
	case t.Content == l.Destination:
		return t.Content, true
	case "mailto:"+t.Content == l.Destination:
		return t.Content, true
	}
	return "", false
}

func appendDestination(buf []byte, dest, title string, inTable bool) []byte {
	start := len(buf)
	if dest == "" || strings.ContainsAny(dest, " ()<>") {
		buf = append(buf, '<')
		buf = append(buf, strings.NewReplacer("<", `\<`, ">", `\>`).Replace(dest)...)
		buf = append(buf, '>')
	} else {
		buf = append(buf, dest...)
	}
	if title != "" {
		buf = append(buf, ' ')
		buf = strconv.AppendQuote(buf, title)
	}
	if inTable {
		buf = escapePipes(buf, start)
	}
	return buf
}

// escapePipes escapes any unescaped pipe in buf[from:].
func escapePipes(buf []byte, from int) []byte {
	if bytes.IndexByte(buf[from:], '|') < 0 {
		return buf
	}
	tail := append([]byte(nil), buf[from:]...)
	buf = buf[:from]
	for i, c := range tail {
		if c == '|' && (i == 0 || tail[i-1] != '\\') {
			buf = append(buf, '\\')
		}
		buf = append(buf, c)
	}
	return buf
}

const textEscapes = "\\`*_[]<>~&"

func appendText(buf []byte, s string, flags inlineFlags) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if flags.lineStart {
			var n int
			buf, n = appendLineStart(buf, s[i:])
			i += n
			c = s[i]
			flags.lineStart = false
		}
		switch {
		case c == '\n':
			if flags.oneLine {
				c = ' '
			} else {
				flags.lineStart = true
			}
		case strings.IndexByte(textEscapes, c) >= 0,
			c == '|' && flags.inTable:
			buf = append(buf, '\\')
		}
		buf = append(buf, c)
	}
	return buf
}

// appendLineStart escapes text that would otherwise begin a block when
// written at the start of a line. It returns how many bytes of s it consumed.
func appendLineStart(buf []byte, s string) ([]byte, int) {
	switch s[0] {
	case '#', '-', '+', '=':
		return append(buf, '\\'), 0
	}
	digits := 0
	for digits < len(s) && '0' <= s[digits] && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		// escape the delimiter rather than the number
		buf = append(buf, s[:digits]...)
		return append(buf, '\\'), digits
	}
	return buf, 0
}

func appendCode(buf []byte, content string, inTable bool) []byte {
	if inTable {
		content = strings.ReplaceAll(content, "|", `\|`)
	}
	width := 1
	for run := 0; ; {
		i := strings.IndexByte(content[run:], '`')
		if i < 0 {
			break
		}
		j := run + i
		k := j
		for k < len(content) && content[k] == '`' {
			k++
		}
		if k-j >= width {
			width = k - j + 1
		}
		run = k
	}
	fence := strings.Repeat("`", width)
	pad := strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") ||
		(len(content) > 1 && content[0] == ' ' && content[len(content)-1] == ' ' && strings.Trim(content, " ") != "")
	buf = append(buf, fence...)
	if pad {
		buf = append(buf, ' ')
	}
	buf = append(buf, content...)
	if pad {
		buf = append(buf, ' ')
	}
	return append(buf, fence...)
}
