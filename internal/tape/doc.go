// Package tape defines the sequential-access storage device the sorter works
// against, plus the in-memory and file-backed implementations.
//
// A tape has a single head. The head can read or overwrite the cell under
// it, move one cell forward or backward, or rewind to the first cell. There
// is one sentinel position before the first cell ("before-begin"):
//
//	before-begin   0     1     2         length
//	     |       [ c0 ][ c1 ][ c2 ] ... [end)
//
// Reading at before-begin or at the end yields no value. Writing at the end
// extends the tape by one cell. Writing at before-begin fails with an
// OUT_OF_RANGE error.
//
// Movement never skips more than one cell per call:
//   - MoveForward succeeds only when a value exists under the head.
//   - MoveBackward succeeds unless the head is already at before-begin.
//
// # Variants
//
//   - Memory: slice-backed, used by tests and the conformance harness.
//   - File: binary file of little-endian 4-byte cells.
//   - SQLite-backed tapes live in internal/store.
//
// Decorators add behavior without touching the contract: WithDelays sleeps a
// configured duration per operation category (move, read, write, rewind).
// The sort algorithms depend only on the Tape interface and never on a
// concrete variant.
package tape
