package testutil

import (
	"errors"
	"slices"
	"sync"

	"github.com/roach88/tapesort/internal/tape"
)

// ErrAllocatorExhausted is the cause attached to the RESOURCE_UNAVAILABLE
// error returned once a TrackingAllocator's budget is spent.
var ErrAllocatorExhausted = errors.New("allocator exhausted")

// TrackingAllocator wraps an allocator and remembers the runs it hands
// out, so tests can check which were released.
type TrackingAllocator struct {
	inner tape.Allocator

	// Budget limits how many runs Create succeeds for. Zero or negative
	// means unlimited.
	Budget int

	mu       sync.Mutex
	runs     []*TrackedRun
	released int
}

// NewTrackingAllocator wraps inner.
func NewTrackingAllocator(inner tape.Allocator) *TrackingAllocator {
	return &TrackingAllocator{inner: inner}
}

// Create implements tape.Allocator.
func (a *TrackingAllocator) Create() (tape.Temp, error) {
	a.mu.Lock()
	if a.Budget > 0 && len(a.runs) >= a.Budget {
		a.mu.Unlock()
		return nil, tape.NewResourceError("create", "run budget spent", ErrAllocatorExhausted)
	}
	a.mu.Unlock()

	t, err := a.inner.Create()
	if err != nil {
		return nil, err
	}

	r := &TrackedRun{Temp: t, owner: a}
	a.mu.Lock()
	a.runs = append(a.runs, r)
	a.mu.Unlock()
	return r, nil
}

// Created returns the number of runs handed out.
func (a *TrackingAllocator) Created() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.runs)
}

// Live returns the number of runs handed out and not yet released.
func (a *TrackingAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.runs) - a.released
}

// Runs returns the runs handed out, in creation order.
func (a *TrackingAllocator) Runs() []*TrackedRun {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.runs)
}

// TrackedRun is a run handed out by a TrackingAllocator.
type TrackedRun struct {
	tape.Temp
	owner    *TrackingAllocator
	released bool
}

// Release releases the wrapped run. Only the first call is counted.
func (r *TrackedRun) Release() error {
	err := r.Temp.Release()
	r.owner.mu.Lock()
	if !r.released {
		r.released = true
		r.owner.released++
	}
	r.owner.mu.Unlock()
	return err
}

// Released reports whether Release has been called.
func (r *TrackedRun) Released() bool {
	r.owner.mu.Lock()
	defer r.owner.mu.Unlock()
	return r.released
}
