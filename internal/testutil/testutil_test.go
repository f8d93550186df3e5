package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapesort/internal/tape"
)

func TestSequence_Monotonic(t *testing.T) {
	var s Sequence
	assert.Equal(t, int64(0), s.Current())
	assert.Equal(t, int64(1), s.Next())
	assert.Equal(t, int64(2), s.Next())
	assert.Equal(t, int64(2), s.Current())

	s.Reset()
	assert.Equal(t, int64(1), s.Next())
}

func TestSequence_Concurrent(t *testing.T) {
	var s Sequence
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Next()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1000), s.Current())
}

func TestTrackingAllocator_CountsReleases(t *testing.T) {
	a := NewTrackingAllocator(tape.MemoryAllocator{})

	r1, err := a.Create()
	require.NoError(t, err)
	r2, err := a.Create()
	require.NoError(t, err)
	assert.Equal(t, 2, a.Created())
	assert.Equal(t, 2, a.Live())

	require.NoError(t, r1.Release())
	require.NoError(t, r1.Release())
	assert.Equal(t, 1, a.Live(), "double release counts once")

	require.NoError(t, r2.Release())
	assert.Equal(t, 0, a.Live())
}

func TestTrackingAllocator_Budget(t *testing.T) {
	a := NewTrackingAllocator(tape.MemoryAllocator{})
	a.Budget = 1

	_, err := a.Create()
	require.NoError(t, err)

	_, err = a.Create()
	require.Error(t, err)
	assert.True(t, tape.IsResourceUnavailable(err))
	assert.ErrorIs(t, err, ErrAllocatorExhausted)
	assert.Equal(t, 1, a.Created())
}

func TestTrackingAllocator_RunsReportRelease(t *testing.T) {
	a := NewTrackingAllocator(tape.MemoryAllocator{})

	r1, err := a.Create()
	require.NoError(t, err)
	_, err = a.Create()
	require.NoError(t, err)
	require.NoError(t, r1.Release())

	runs := a.Runs()
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Released())
	assert.False(t, runs[1].Released())
	assert.Same(t, r1, runs[0])
}
