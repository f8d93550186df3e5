package harness

import "github.com/roach88/tapesort/internal/sorter"

// Trace event types.
const (
	EventRun  = "run"
	EventEmit = "emit"
)

// TraceEvent is one recorded step of a sort.
type TraceEvent struct {
	Seq    int64   `json:"seq"`
	Type   string  `json:"type"`
	Values []int32 `json:"values,omitempty"` // run content, in written order
	Value  *int32  `json:"value,omitempty"`  // emitted value
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when the expectation and every assertion held.
	Pass bool `json:"pass"`

	// Output is the content of the output tape after the sort.
	Output []int32 `json:"output"`

	Stats sorter.Stats `json:"stats"`

	// ErrorCode is the code of the error the sort returned, if any.
	ErrorCode string `json:"error_code,omitempty"`

	// LiveRuns counts runs that were never released.
	LiveRuns int `json:"live_runs"`

	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Output: []int32{},
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Runs returns the run events of the trace in creation order.
func (r *Result) Runs() []TraceEvent {
	var runs []TraceEvent
	for _, e := range r.Trace {
		if e.Type == EventRun {
			runs = append(runs, e)
		}
	}
	return runs
}
