package sink

import (
	"bytes"
	"fmt"
	"io"
)

// Memory is a store held in memory; its zero value does not exist yet.
type Memory struct {
	name    string
	cur     []byte
	defined bool
}

// NewMemory returns a memory store; it exists if content is non-nil.
func NewMemory(name string, content []byte) *Memory {
	return &Memory{name: name, cur: content, defined: content != nil}
}

func (ms *Memory) Name() string { return ms.name }

// Content returns the current content, and whether the store exists.
func (ms *Memory) Content() ([]byte, bool) { return ms.cur, ms.defined }

func (ms *Memory) Open() (io.ReadCloser, error) {
	if !ms.defined {
		return nil, fmt.Errorf("%w: %v", ErrNotExists, ms.name)
	}
	return io.NopCloser(bytes.NewReader(ms.cur)), nil
}

func (ms *Memory) Create() (WriteCloser, error) {
	if ms.defined {
		return nil, fmt.Errorf("%w: %v", ErrExists, ms.name)
	}
	return newPendingBuffer(0, ms.set), nil
}

func (ms *Memory) Update() (WriteCloser, error) {
	if !ms.defined {
		return nil, fmt.Errorf("%w: %v", ErrNotExists, ms.name)
	}
	return newPendingBuffer(len(ms.cur), ms.set), nil
}

func (ms *Memory) set(content []byte) error {
	ms.cur = append([]byte(nil), content...)
	ms.defined = true
	return nil
}
