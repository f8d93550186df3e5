package tape

// Tape is a sequential-access device with a single movable head.
//
// The boolean results carry the contract signals ("no value here", "no
// movement occurred"). The error results carry backend failures such as
// I/O errors; a non-nil error means the boolean must be ignored.
type Tape interface {
	// Read returns the value under the head without moving.
	// ok is false at before-begin and at or past the end of content.
	Read() (v int32, ok bool, err error)

	// Write overwrites the cell under the head, or appends a cell when the
	// head is at the end of content. Fails with OUT_OF_RANGE at before-begin.
	Write(v int32) error

	// MoveForward advances one cell if a value exists under the head.
	MoveForward() (moved bool, err error)

	// MoveBackward retreats one cell unless the head is at before-begin.
	MoveBackward() (moved bool, err error)

	// Rewind puts the head on the first cell.
	Rewind() error
}

// Temp is a tape whose backing storage belongs to its holder.
// Release frees the storage; the tape must not be used afterwards.
type Temp interface {
	Tape
	Release() error
}

// Allocator produces fresh, empty temporary tapes.
//
// Every call yields storage with a distinct identity. Ownership of the
// returned tape, including the duty to Release it, passes to the caller.
type Allocator interface {
	Create() (Temp, error)
}

// beforeBegin is the head position one step before the first cell.
const beforeBegin = -1

// CellSize is the on-disk width of one cell in bytes.
const CellSize = 4
