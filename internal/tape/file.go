package tape

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// File is a tape persisted as a binary file of little-endian 4-byte cells.
//
// Cell i lives at byte offset i*CellSize. A trailing partial cell is not
// part of the content.
type File struct {
	f      *os.File
	path   string
	pos    int
	length int
	buf    [CellSize]byte
}

// OpenFile opens the tape at path, creating an empty file when none exists.
// The head starts on the first cell.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, NewResourceError("open", fmt.Sprintf("cannot open tape %s", path), err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, NewResourceError("open", fmt.Sprintf("cannot stat tape %s", path), err)
	}
	return &File{
		f:      f,
		path:   path,
		length: int(info.Size() / CellSize),
	}, nil
}

// Path returns the backing file path.
func (t *File) Path() string {
	return t.path
}

// Len returns the number of complete cells on the tape.
func (t *File) Len() int {
	return t.length
}

// Read implements Tape.
func (t *File) Read() (int32, bool, error) {
	if t.pos == beforeBegin || t.pos >= t.length {
		return 0, false, nil
	}
	if _, err := t.f.ReadAt(t.buf[:], int64(t.pos)*CellSize); err != nil {
		if errors.Is(err, io.EOF) {
			// The file shrank under us.
			return 0, false, NewResourceError("read",
				fmt.Sprintf("%s: cell %d missing, tape holds %d cells", t.path, t.pos, t.length), err)
		}
		return 0, false, NewResourceError("read", t.path, err)
	}
	return int32(binary.LittleEndian.Uint32(t.buf[:])), true, nil
}

// Write implements Tape.
func (t *File) Write(v int32) error {
	if t.pos == beforeBegin {
		return NewOutOfRangeError("write", msgWriteBeforeBegin)
	}
	binary.LittleEndian.PutUint32(t.buf[:], uint32(v))
	if _, err := t.f.WriteAt(t.buf[:], int64(t.pos)*CellSize); err != nil {
		return NewResourceError("write", t.path, err)
	}
	if t.pos == t.length {
		t.length++
	}
	return nil
}

// MoveForward implements Tape.
func (t *File) MoveForward() (bool, error) {
	if t.pos == beforeBegin || t.pos >= t.length {
		return false, nil
	}
	t.pos++
	return true, nil
}

// MoveBackward implements Tape.
func (t *File) MoveBackward() (bool, error) {
	if t.pos == beforeBegin {
		return false, nil
	}
	t.pos--
	return true, nil
}

// Rewind implements Tape.
func (t *File) Rewind() error {
	t.pos = 0
	return nil
}

// Truncate discards all content and rewinds.
func (t *File) Truncate() error {
	if err := t.f.Truncate(0); err != nil {
		return NewResourceError("truncate", t.path, err)
	}
	t.length = 0
	t.pos = 0
	return nil
}

// Sync flushes the file to stable storage.
func (t *File) Sync() error {
	if err := t.f.Sync(); err != nil {
		return NewResourceError("sync", t.path, err)
	}
	return nil
}

// Close closes the backing file. The content stays on disk.
func (t *File) Close() error {
	return t.f.Close()
}

// Release implements Temp: it closes and removes the backing file.
func (t *File) Release() error {
	closeErr := t.f.Close()
	if err := os.Remove(t.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return NewResourceError("release", t.path, err)
	}
	return closeErr
}
