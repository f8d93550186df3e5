// Package store provides SQLite-backed persistent tapes.
//
// A database holds any number of named tapes. Each tape is a row in
// "tapes" and its content is one row per cell in "cells", keyed by
// (tape_name, pos). The head position is not persisted: opening a tape
// always puts the head on the first cell.
//
// The store also serves as a run allocator for the sorter. Runs are
// temporary tapes named "run-<uuidv7>" and are deleted on Release.
//
// # Database Configuration
//
//   - WAL mode: readers are not blocked by the writer
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: deleting a tape deletes its cells
package store
