package sorter

import (
	"fmt"
	"log/slog"

	"github.com/roach88/tapesort/internal/tape"
)

// DefaultMaxBufferSize is the chunk size used when the caller has no
// better estimate of available memory.
const DefaultMaxBufferSize = 50

// Observer receives progress notifications from a sort.
//
// OnRun is called once per materialized run with the run's values in the
// order they were written (descending). The slice is reused after the
// call returns; observers that keep it must copy it.
// OnEmit is called once per value written to the output tape.
type Observer interface {
	OnRun(values []int32)
	OnEmit(v int32)
}

// Stats summarizes a completed sort.
type Stats struct {
	Values        int `json:"values"`
	Runs          int `json:"runs"`
	MaxBufferSize int `json:"buffer_size"`
}

// Sorter sorts tapes with a bounded in-memory buffer.
type Sorter struct {
	alloc         tape.Allocator
	maxBufferSize int
	observers     []Observer
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithObserver registers an observer. Observers are notified in
// registration order.
func WithObserver(o Observer) Option {
	return func(s *Sorter) {
		s.observers = append(s.observers, o)
	}
}

// New creates a Sorter that holds at most maxBufferSize values in memory
// and allocates runs from alloc.
//
// Returns a CONFIGURATION_ERROR when maxBufferSize < 1.
func New(alloc tape.Allocator, maxBufferSize int, opts ...Option) (*Sorter, error) {
	if maxBufferSize < 1 {
		return nil, errBufferSize(maxBufferSize)
	}
	if alloc == nil {
		return nil, tape.NewConfigurationError("run allocator is required", nil)
	}
	s := &Sorter{alloc: alloc, maxBufferSize: maxBufferSize}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MaxBufferSize returns the configured chunk size.
func (s *Sorter) MaxBufferSize() int {
	return s.maxBufferSize
}

// Sort writes the values readable from in, in ascending order, to out
// starting at out's current head.
//
// in is consumed from its current head and not read again once the split
// completes. out is written strictly forward. On error the content of out
// must be considered invalid; there is no partial success.
func (s *Sorter) Sort(in, out tape.Tape) (Stats, error) {
	stats := Stats{MaxBufferSize: s.maxBufferSize}

	slog.Debug("split starting", "buffer_size", s.maxBufferSize)
	runs, err := split(in, s.alloc, s.maxBufferSize, s.notifyRun)
	if err != nil {
		return stats, fmt.Errorf("split: %w", err)
	}
	stats.Runs = len(runs)
	slog.Debug("split complete", "runs", len(runs))

	merger, err := NewMerger(runs)
	if err != nil {
		return stats, fmt.Errorf("merge: %w", err)
	}
	defer func() {
		if err := merger.Close(); err != nil {
			slog.Warn("failed to release runs", "error", err)
		}
	}()

	for !merger.Empty() {
		v, _ := merger.Top()
		if err := merger.Pop(); err != nil {
			return stats, fmt.Errorf("merge: %w", err)
		}
		if err := out.Write(v); err != nil {
			return stats, fmt.Errorf("write output: %w", err)
		}
		if _, err := out.MoveForward(); err != nil {
			return stats, fmt.Errorf("write output: %w", err)
		}
		stats.Values++
		for _, o := range s.observers {
			o.OnEmit(v)
		}
	}

	slog.Debug("merge complete", "values", stats.Values, "runs", stats.Runs)
	return stats, nil
}

func (s *Sorter) notifyRun(values []int32) {
	for _, o := range s.observers {
		o.OnRun(values)
	}
}

// Sort is a convenience wrapper that builds a Sorter and runs it once.
func Sort(in, out tape.Tape, alloc tape.Allocator, maxBufferSize int) (Stats, error) {
	s, err := New(alloc, maxBufferSize)
	if err != nil {
		return Stats{}, err
	}
	return s.Sort(in, out)
}
