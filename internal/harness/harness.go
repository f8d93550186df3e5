package harness

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/roach88/tapesort/internal/sorter"
	"github.com/roach88/tapesort/internal/store"
	"github.com/roach88/tapesort/internal/tape"
	"github.com/roach88/tapesort/internal/testutil"
)

// recorder turns sorter notifications into trace events.
type recorder struct {
	seq    testutil.Sequence
	result *Result
}

func (r *recorder) OnRun(values []int32) {
	r.result.Trace = append(r.result.Trace, TraceEvent{
		Seq:    r.seq.Next(),
		Type:   EventRun,
		Values: slices.Clone(values),
	})
}

func (r *recorder) OnEmit(v int32) {
	r.result.Trace = append(r.result.Trace, TraceEvent{
		Seq:   r.seq.Next(),
		Type:  EventEmit,
		Value: &v,
	})
}

// Run executes a scenario and returns the result.
//
// The input and output tapes live in memory. Runs use the scenario's
// backend: a fresh temporary directory for file runs and a fresh
// in-memory database for sqlite runs, both discarded afterwards.
//
// A returned error means the scenario could not be executed at all. A
// sort that fails is a normal result, checked against expect.error.
func Run(scenario *Scenario) (*Result, error) {
	base, cleanup, err := runAllocator(scenario.Runs)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare %s runs: %w", scenario.Runs, err)
	}
	defer cleanup()

	alloc := testutil.NewTrackingAllocator(base)
	alloc.Budget = scenario.RunBudget

	result := NewResult()
	rec := &recorder{result: result}

	in := tape.NewMemory(scenario.Input...)
	out := tape.NewMemory()

	bufferSize := 0
	if scenario.BufferSize != nil {
		bufferSize = *scenario.BufferSize
	}

	stats, sortErr := sortScenario(in, out, alloc, bufferSize, rec)
	result.Stats = stats
	result.Output = out.Values()
	result.LiveRuns = alloc.Live()

	slog.Debug("scenario executed",
		"scenario", scenario.Name,
		"values", stats.Values,
		"runs", stats.Runs,
		"error", sortErr,
	)

	checkExpect(scenario.Expect, sortErr, result)
	for i, r := range result.Runs() {
		if !descending(r.Values) {
			result.AddError(fmt.Sprintf("run %d not written in descending order: %v", i, r.Values))
		}
	}
	for _, errMsg := range EvaluateAssertions(result, scenario) {
		result.AddError(errMsg)
	}
	return result, nil
}

func sortScenario(in, out tape.Tape, alloc tape.Allocator, bufferSize int, rec *recorder) (sorter.Stats, error) {
	s, err := sorter.New(alloc, bufferSize, sorter.WithObserver(rec))
	if err != nil {
		return sorter.Stats{MaxBufferSize: bufferSize}, err
	}
	return s.Sort(in, out)
}

func checkExpect(expect ExpectClause, sortErr error, result *Result) {
	if sortErr != nil {
		if code, ok := tape.CodeOf(sortErr); ok {
			result.ErrorCode = string(code)
		}
	}

	switch {
	case expect.Error != "" && sortErr == nil:
		result.AddError(fmt.Sprintf("expected %s error, sort succeeded", expect.Error))
	case expect.Error != "" && result.ErrorCode != expect.Error:
		result.AddError(fmt.Sprintf("expected %s error, got: %v", expect.Error, sortErr))
	case expect.Error == "" && sortErr != nil:
		result.AddError(fmt.Sprintf("unexpected error: %v", sortErr))
	case expect.Output != nil && !slices.Equal(expect.Output, result.Output):
		result.AddError(fmt.Sprintf("output mismatch: expected %v, got %v", expect.Output, result.Output))
	}
}

// runAllocator builds the run allocator for a backend and a cleanup func
// that discards whatever the backend created.
func runAllocator(backend string) (tape.Allocator, func(), error) {
	switch backend {
	case "", RunsMemory:
		return tape.MemoryAllocator{}, func() {}, nil
	case RunsFile:
		dir, err := os.MkdirTemp("", "tapesort-scenario-*")
		if err != nil {
			return nil, nil, err
		}
		return tape.TempFileAllocator{Dir: dir}, func() { os.RemoveAll(dir) }, nil
	case RunsSQLite:
		st, err := store.Open(":memory:")
		if err != nil {
			return nil, nil, err
		}
		return store.RunAllocator{Store: st}, func() { st.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown runs backend %q", backend)
	}
}
