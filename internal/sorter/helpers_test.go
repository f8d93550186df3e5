package sorter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tapesort/internal/tape"
	"github.com/roach88/tapesort/internal/testutil"
)

// newTrackingAllocator hands out memory runs and remembers them.
func newTrackingAllocator() *testutil.TrackingAllocator {
	return testutil.NewTrackingAllocator(tape.MemoryAllocator{})
}

// readAll rewinds t and returns its content.
func readAll(t *testing.T, tp tape.Tape) []int32 {
	t.Helper()
	require.NoError(t, tp.Rewind())
	var out []int32
	for {
		v, ok, err := tp.Read()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, v)
		moved, err := tp.MoveForward()
		require.NoError(t, err)
		if !moved {
			return out
		}
	}
}

// runValues returns a run's content in written (descending) order.
func runValues(r tape.Temp) []int32 {
	switch v := r.(type) {
	case *testutil.TrackedRun:
		return runValues(v.Temp)
	case *tape.Memory:
		return v.Values()
	}
	return nil
}
