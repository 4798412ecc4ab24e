package sink

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Stream is a store over a reader and a writer, such as standard input and
// output. The reader is consumed once, by the first Open; every Open, even
// concurrent ones, reads the same content. Written content reaches the writer
// only once committed, so that a failed run writes nothing.
type Stream struct {
	name string
	r    io.Reader
	w    io.Writer

	readOnce sync.Once
	content  []byte
	readErr  error
}

// NewStream returns a stream store; either of r or w may be nil.
func NewStream(name string, r io.Reader, w io.Writer) *Stream {
	return &Stream{name: name, r: r, w: w}
}

func (st *Stream) Name() string { return st.name }

func (st *Stream) Open() (io.ReadCloser, error) {
	if st.r == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotExists, st.name)
	}
	st.readOnce.Do(func() {
		st.content, st.readErr = io.ReadAll(st.r)
	})
	if st.readErr != nil {
		return nil, st.readErr
	}
	return io.NopCloser(bytes.NewReader(st.content)), nil
}

// Create is the same as Update: a stream always accepts more output.
func (st *Stream) Create() (WriteCloser, error) { return st.Update() }

func (st *Stream) Update() (WriteCloser, error) {
	if st.w == nil {
		return nil, fmt.Errorf("%w: %v", errReadOnly, st.name)
	}
	return newPendingBuffer(0, func(p []byte) error {
		_, err := st.w.Write(p)
		return err
	}), nil
}
