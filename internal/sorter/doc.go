// Package sorter implements an external merge sort over sequential tapes.
//
// A sort runs in two phases:
//
//  1. Split: the input tape is read in chunks of at most maxBufferSize
//     values. Each chunk is sorted in memory in descending order and written
//     to a fresh temporary tape (a run). The run's head is then moved back
//     one cell, so it rests on the chunk's minimum.
//  2. Merge: a min-heap holds one candidate per live run, keyed by the value
//     under that run's head. The smallest candidate is emitted to the output
//     tape, its run moves backward onto its next-larger value, and the
//     candidate is pushed back with the refreshed key. An exhausted run is
//     released immediately.
//
// Runs are written descending so the merge only ever moves a run's head
// backward, never rewinds it.
//
// The whole sort is one synchronous control flow. The input is not read
// again after the split and the output is written strictly forward.
// Ties between equal values are broken by whatever the heap surfaces first;
// the sort is not stable.
package sorter
