package sorter

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/tapesort/internal/tape"
)

// Split reads in from its current head to the end and materializes the
// values as sorted runs, each holding at most maxBufferSize values.
//
// Every run is stored in descending order with its head on its minimum. The
// caller owns the returned runs. An empty input yields no runs.
//
// On failure the runs created so far are released and the error is
// returned as-is.
func Split(in tape.Tape, alloc tape.Allocator, maxBufferSize int) ([]tape.Temp, error) {
	return split(in, alloc, maxBufferSize, nil)
}

func split(in tape.Tape, alloc tape.Allocator, maxBufferSize int, onRun func([]int32)) ([]tape.Temp, error) {
	if maxBufferSize < 1 {
		return nil, errBufferSize(maxBufferSize)
	}

	var runs []tape.Temp
	block := make([]int32, 0, maxBufferSize)
	for {
		_, ok, err := in.Read()
		if err != nil {
			releaseAll(runs)
			return nil, err
		}
		if !ok {
			break
		}

		block, err = readBlock(in, block[:0], maxBufferSize)
		if err != nil {
			releaseAll(runs)
			return nil, err
		}

		// sort descending
		slices.SortFunc(block, func(a, b int32) int { return cmp.Compare(b, a) })

		run, err := alloc.Create()
		if err != nil {
			releaseAll(runs)
			return nil, err
		}
		runs = append(runs, run)

		if err := writeBlock(run, block); err != nil {
			releaseAll(runs)
			return nil, err
		}
		// rest on the last (minimum) value
		if _, err := run.MoveBackward(); err != nil {
			releaseAll(runs)
			return nil, err
		}

		if onRun != nil {
			onRun(block)
		}
		slog.Debug("run materialized", "run", len(runs), "values", len(block))
	}

	return runs, nil
}

// readBlock appends up to limit values from t to block, advancing the head
// past every value it reads.
func readBlock(t tape.Tape, block []int32, limit int) ([]int32, error) {
	for i := 0; i < limit; i++ {
		v, ok, err := t.Read()
		if err != nil {
			return block, err
		}
		if !ok {
			break
		}
		block = append(block, v)

		moved, err := t.MoveForward()
		if err != nil {
			return block, err
		}
		if !moved {
			break
		}
	}
	return block, nil
}

// writeBlock writes block to t sequentially, leaving the head just past the
// last value.
func writeBlock(t tape.Tape, block []int32) error {
	for _, v := range block {
		if err := t.Write(v); err != nil {
			return err
		}
		if _, err := t.MoveForward(); err != nil {
			return err
		}
	}
	return nil
}

// releaseAll releases runs on an abort path. Release failures are logged;
// the error that caused the abort is the one reported.
func releaseAll(runs []tape.Temp) {
	for _, run := range runs {
		if err := run.Release(); err != nil {
			slog.Warn("failed to release run", "error", err)
		}
	}
}

func errBufferSize(n int) error {
	return tape.NewConfigurationError(fmt.Sprintf("max buffer size must be at least 1, got %d", n), nil)
}
