package sink

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"go.uber.org/multierr"
)

// File is a store backed by a file. Updates are written into a temporary
// file, then renamed over the original when closed.
type File struct {
	path string
}

// NewFile returns a file store.
func NewFile(path string) *File { return &File{path: path} }

func (fst *File) Name() string { return fst.path }

func (fst *File) Open() (io.ReadCloser, error) {
	f, err := os.Open(fst.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrNotExists, fst.path)
	}
	return f, err
}

func (fst *File) Create() (WriteCloser, error) {
	f, err := os.OpenFile(fst.path, os.O_EXCL|os.O_CREATE|os.O_WRONLY, 0666)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%w: %v", ErrExists, fst.path)
	}
	if err != nil {
		return nil, err
	}
	return &pendingCreateFile{File: f}, nil
}

func (fst *File) Update() (WriteCloser, error) {
	info, err := os.Stat(fst.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrNotExists, fst.path)
	}
	if err != nil {
		return nil, err
	}
	pf, err := renameio.TempFile(filepath.Dir(fst.path), fst.path)
	if err != nil {
		return nil, err
	}
	// temp files are created private
	if err := pf.Chmod(info.Mode().Perm()); err != nil {
		return nil, multierr.Append(err, pf.Cleanup())
	}
	return &pendingUpdateFile{PendingFile: pf}, nil
}

type pendingUpdateFile struct {
	*renameio.PendingFile
	closed bool
}

func (uf *pendingUpdateFile) Close() error {
	if uf.closed {
		return nil
	}
	err := uf.CloseAtomicallyReplace()
	uf.closed = err == nil
	return err
}

func (uf *pendingUpdateFile) Cleanup() error {
	if uf.closed {
		return nil
	}
	uf.closed = true
	return uf.PendingFile.Cleanup()
}

type pendingCreateFile struct {
	*os.File
	closed bool
}

func (cf *pendingCreateFile) Close() error {
	if cf.closed {
		return nil
	}
	err := cf.File.Close()
	cf.closed = err == nil
	return err
}

func (cf *pendingCreateFile) Cleanup() error {
	if cf.closed {
		return nil
	}
	cf.closed = true
	return multierr.Append(
		os.Remove(cf.Name()),
		cf.File.Close())
}
