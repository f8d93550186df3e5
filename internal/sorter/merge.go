package sorter

import (
	"container/heap"
	"errors"
	"log/slog"

	"github.com/roach88/tapesort/internal/tape"
)

// candidate is a live run together with the value under its head.
// min always equals what run.Read() would return.
type candidate struct {
	run tape.Temp
	min int32
}

// candidateHeap is a min-heap of candidates ordered by min.
type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].min < h[j].min }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) {
	*h = append(*h, x.(candidate))
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = candidate{}
	*h = old[:n-1]
	return c
}

// Merger yields the smallest remaining value across a set of sorted runs.
//
// The Merger owns every run passed to NewMerger. A run is released as soon
// as its last value is popped; Close releases whatever is left.
type Merger struct {
	h candidateHeap
}

// NewMerger takes ownership of runs. Each run must be stored descending
// with its head on its minimum, as Split leaves it.
//
// Runs with no value under the head are released and excluded.
func NewMerger(runs []tape.Temp) (*Merger, error) {
	m := &Merger{h: make(candidateHeap, 0, len(runs))}
	for i, run := range runs {
		v, ok, err := run.Read()
		if err != nil {
			return m.abort(runs[i:], err)
		}
		if !ok {
			if err := run.Release(); err != nil {
				return m.abort(runs[i+1:], err)
			}
			continue
		}
		m.h = append(m.h, candidate{run: run, min: v})
	}
	heap.Init(&m.h)
	return m, nil
}

// abort releases rest and every run already held, then reports err.
func (m *Merger) abort(rest []tape.Temp, err error) (*Merger, error) {
	releaseAll(rest)
	if cerr := m.Close(); cerr != nil {
		slog.Warn("failed to release runs", "error", cerr)
	}
	return nil, err
}

// Empty reports whether all runs are exhausted.
func (m *Merger) Empty() bool {
	return len(m.h) == 0
}

// Len returns the number of live runs.
func (m *Merger) Len() int {
	return len(m.h)
}

// Top returns the smallest remaining value. ok is false when Empty.
func (m *Merger) Top() (v int32, ok bool) {
	if len(m.h) == 0 {
		return 0, false
	}
	return m.h[0].min, true
}

// Pop consumes the smallest remaining value.
//
// The candidate is removed from the heap before its run moves, then pushed
// back with the refreshed key; keys are never changed in place.
func (m *Merger) Pop() error {
	if len(m.h) == 0 {
		return nil
	}
	c := heap.Pop(&m.h).(candidate)

	if _, err := c.run.MoveBackward(); err != nil {
		releaseAll([]tape.Temp{c.run})
		return err
	}
	v, ok, err := c.run.Read()
	if err != nil {
		releaseAll([]tape.Temp{c.run})
		return err
	}
	if !ok {
		return c.run.Release()
	}

	c.min = v
	heap.Push(&m.h, c)
	return nil
}

// Close releases every run still held. It is only needed when a merge is
// abandoned before Empty.
func (m *Merger) Close() error {
	var errs []error
	for _, c := range m.h {
		if err := c.run.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	m.h = nil
	return errors.Join(errs...)
}
