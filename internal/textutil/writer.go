package textutil

import (
	"bytes"
	"io"
	"strings"
)

// ErrWriter wraps a writer, tracking its first error, and dropping all
// writes after it.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer if Err is nil, retaining any returned error.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// WriteString is Write for strings.
func (ew *ErrWriter) WriteString(s string) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = io.WriteString(ew.Writer, s)
	}
	return n, ew.Err
}

// PrefixWriter prepends Prefix to every line written through it.
type PrefixWriter struct {
	Prefix string

	// Skip suppresses the prefix once, for the first line written. Used to
	// continue a line already started, e.g. after a list marker.
	Skip bool

	w   io.Writer
	mid bool // within a line
}

// NewPrefixWriter returns a PrefixWriter writing into w.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{Prefix: prefix, w: w}
}

// Indent returns a PrefixWriter indenting by depth levels of two spaces.
func Indent(w io.Writer, depth int) *PrefixWriter {
	return NewPrefixWriter(strings.Repeat("  ", depth), w)
}

// ListItem writes marker into w, and returns a PrefixWriter that continues
// that line, then hangs every following line under it.
func ListItem(w io.Writer, marker string) *PrefixWriter {
	n, _ := io.WriteString(w, marker)
	pw := NewPrefixWriter(strings.Repeat(" ", n), w)
	pw.Skip = true
	return pw
}

// Write writes p a line at a time, inserting the prefix at line starts.
// The returned count excludes prefix bytes.
func (pw *PrefixWriter) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		if !pw.mid {
			if pw.Skip {
				pw.Skip = false
			} else if _, err := io.WriteString(pw.w, pw.Prefix); err != nil {
				return n, err
			}
			pw.mid = true
		}
		line := p
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			line = p[:i+1]
			pw.mid = false
		}
		m, err := pw.w.Write(line)
		n += m
		if err != nil {
			return n, err
		}
		p = p[len(line):]
	}
	return n, nil
}

// WriteLines calls next with a line-buffered writer until it returns false,
// or until a write error; after each call, complete lines are flushed into
// to. It returns the first write error.
func WriteLines(to io.Writer, next func(w io.Writer) bool) error {
	ew, _ := to.(*ErrWriter)
	if ew == nil {
		ew = &ErrWriter{Writer: to}
	}
	var buf bytes.Buffer
	flush := func(all bool) {
		b := buf.Bytes()
		if !all {
			i := bytes.LastIndexByte(b, '\n')
			if i < 0 {
				return
			}
			b = b[:i+1]
		}
		n, _ := ew.Write(b)
		buf.Next(n)
	}
	for ew.Err == nil && next(&buf) {
		flush(false)
	}
	flush(true)
	return ew.Err
}
