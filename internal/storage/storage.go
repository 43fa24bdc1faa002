// Package storage defines the persistence backend for history state.
//
// The history store takes a Backend rather than a file path so the MRU core
// stays free of filesystem concerns and tests can substitute an in-memory
// implementation.
package storage

import (
	"github.com/openproj/openproj/internal/fsops"
)

// Backend reads and writes the single persisted state record.
// Write replaces the record wholesale; there is no partial update.
type Backend interface {
	// Read returns the persisted record. A missing record is reported
	// as an error satisfying os.IsNotExist.
	Read() ([]byte, error)

	// Write replaces the persisted record.
	Write(data []byte) error
}

// FileBackend stores the record in a single file. The file handle is opened
// and closed on every call; it is never held across calls.
type FileBackend struct {
	fs   fsops.FS
	path string
}

// NewFileBackend creates a FileBackend persisting to path.
func NewFileBackend(fs fsops.FS, path string) *FileBackend {
	return &FileBackend{fs: fs, path: path}
}

// Read returns the file contents.
func (b *FileBackend) Read() ([]byte, error) {
	return b.fs.ReadFile(b.path)
}

// Write replaces the file contents atomically.
func (b *FileBackend) Write(data []byte) error {
	return b.fs.AtomicWrite(b.path, data, 0644)
}

// Path returns the location of the backing file.
func (b *FileBackend) Path() string {
	return b.path
}
