package tape

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempFileAllocator creates run tapes as files in Dir.
//
// Each run gets a UUIDv7 file name, so concurrently live runs never share a
// file. Release removes the file.
type TempFileAllocator struct {
	// Dir is the directory for run files. Empty means os.TempDir().
	Dir string
}

// Create implements Allocator.
func (a TempFileAllocator) Create() (Temp, error) {
	dir := a.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, NewResourceError("create", "cannot generate run id", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("run-%s.tape", id))

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, NewResourceError("create", fmt.Sprintf("cannot create run tape in %s", dir), err)
	}
	return &File{f: f, path: path}, nil
}

// MemoryAllocator creates run tapes in memory.
//
// Memory runs defeat the point of an external sort for large inputs; they
// exist for tests and small jobs.
type MemoryAllocator struct{}

// Create implements Allocator.
func (MemoryAllocator) Create() (Temp, error) {
	return &Memory{}, nil
}
