// Package sink provides whole-document streams, read in one go, then created
// or atomically replaced: files, in-memory buffers, and standard streams.
package sink

import (
	"bytes"
	"errors"
	"io"

	"go.uber.org/multierr"
)

var (
	// ErrExists is returned when creating a stream that already exists.
	ErrExists = errors.New("stream already exists")

	// ErrNotExists is returned when opening or updating a stream that does
	// not exist.
	ErrNotExists = errors.New("stream does not exist")

	errBufferClosed = errors.New("write to closed buffer")
	errReadOnly     = errors.New("stream is read only")
)

// Store is a named document stream.
type Store interface {
	Name() string
	Open() (io.ReadCloser, error)
	Create() (WriteCloser, error)
	Update() (WriteCloser, error)
}

// WriteCloser commits everything written when closed. Cleanup discards any
// uncommitted content; it should always be called, and does nothing after a
// successful Close.
type WriteCloser interface {
	io.WriteCloser
	Cleanup() error
}

// ReadAll reads the whole content of st.
func ReadAll(st Store) (_ []byte, rerr error) {
	r, err := st.Open()
	if err != nil {
		return nil, err
	}
	defer func() { rerr = multierr.Append(rerr, r.Close()) }()
	return io.ReadAll(r)
}

// Save writes into st, replacing its content, or creating it if it does not
// exist yet. Nothing is committed if write returns an error.
func Save(st Store, write func(w io.Writer) error) (rerr error) {
	w, err := st.Update()
	if errors.Is(err, ErrNotExists) {
		w, err = st.Create()
	}
	if err != nil {
		return err
	}
	defer func() { rerr = multierr.Append(rerr, w.Cleanup()) }()
	if err := write(w); err != nil {
		return err
	}
	return w.Close()
}

// pendingBuffer collects writes in memory, and passes them to sink on Close.
type pendingBuffer struct {
	buf    bytes.Buffer
	closed bool
	sink   func([]byte) error
}

func newPendingBuffer(sizeHint int, sink func([]byte) error) *pendingBuffer {
	const minSize = 1024
	pb := &pendingBuffer{sink: sink}
	if sizeHint > minSize {
		pb.buf.Grow(sizeHint)
	} else {
		pb.buf.Grow(minSize)
	}
	return pb
}

func (pb *pendingBuffer) Write(p []byte) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.Write(p)
}

func (pb *pendingBuffer) WriteString(s string) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.WriteString(s)
}

func (pb *pendingBuffer) Close() error {
	if !pb.closed {
		pb.closed = true
		return pb.sink(pb.buf.Bytes())
	}
	return nil
}

func (pb *pendingBuffer) Cleanup() error {
	if !pb.closed {
		// discarded
		pb.closed = true
	}
	return nil
}
