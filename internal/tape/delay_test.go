package tape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayed_SleepsPerCategory(t *testing.T) {
	var slept []time.Duration
	d := WithDelays(&Memory{}, Delays{
		Move:   1 * time.Millisecond,
		Read:   2 * time.Millisecond,
		Write:  3 * time.Millisecond,
		Rewind: 4 * time.Millisecond,
	})
	d.sleep = func(v time.Duration) { slept = append(slept, v) }

	require.NoError(t, d.Write(5))
	_, _, err := d.Read()
	require.NoError(t, err)
	_, err = d.MoveForward()
	require.NoError(t, err)
	_, err = d.MoveBackward()
	require.NoError(t, err)
	require.NoError(t, d.Rewind())

	assert.Equal(t, []time.Duration{
		3 * time.Millisecond,
		2 * time.Millisecond,
		1 * time.Millisecond,
		2 * time.Millisecond,
		1 * time.Millisecond,
		4 * time.Millisecond,
	}, slept)
}

func TestDelayed_MoveForwardChargesMoveAndRead(t *testing.T) {
	var total time.Duration
	d := WithDelays(NewMemory(1, 2), Delays{Move: 5 * time.Millisecond, Read: 7 * time.Millisecond})
	d.sleep = func(v time.Duration) { total += v }

	moved, err := d.MoveForward()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 12*time.Millisecond, total)
}

func TestDelayed_ZeroDelaySkipsSleep(t *testing.T) {
	called := false
	d := WithDelays(NewMemory(1), Delays{})
	d.sleep = func(time.Duration) { called = true }

	v, ok, err := d.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(1), v)
	assert.False(t, called)
}

func TestDelayed_PreservesErrors(t *testing.T) {
	d := WithDelays(&Memory{}, Delays{})
	_, err := d.MoveBackward()
	require.NoError(t, err)
	assert.True(t, IsOutOfRange(d.Write(1)))
}

func TestDelayed_ReleasePassesThrough(t *testing.T) {
	m := NewMemory(1, 2)
	d := WithDelays(m, Delays{})
	require.NoError(t, d.Release())
	assert.Equal(t, 0, m.Len())
	assert.Same(t, Tape(m), d.Unwrap())
}

func TestDelayedAllocator_WrapsRuns(t *testing.T) {
	a := DelayedAllocator{Allocator: MemoryAllocator{}, Delays: Delays{Read: time.Millisecond}}
	run, err := a.Create()
	require.NoError(t, err)
	_, ok := run.(*Delayed)
	assert.True(t, ok)

	plain := DelayedAllocator{Allocator: MemoryAllocator{}}
	run, err = plain.Create()
	require.NoError(t, err)
	_, ok = run.(*Memory)
	assert.True(t, ok, "zero delays return the run unwrapped")
}
