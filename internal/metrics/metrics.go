// Package metrics counts tape operations and sort progress in a private
// Prometheus registry, which can be dumped in the text exposition format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/tapesort/internal/tape"
)

// Tape roles used as the "role" label.
const (
	RoleInput  = "input"
	RoleOutput = "output"
	RoleRun    = "run"
)

// Operation names used as the "op" label.
const (
	OpRead         = "read"
	OpWrite        = "write"
	OpMoveForward  = "move_forward"
	OpMoveBackward = "move_backward"
	OpRewind       = "rewind"
)

// Metrics holds the counters of a single sort.
type Metrics struct {
	registry *prometheus.Registry

	tapeOps       *prometheus.CounterVec
	tapeErrors    *prometheus.CounterVec
	runsCreated   prometheus.Counter
	runsReleased  prometheus.Counter
	runLength     prometheus.Histogram
	valuesEmitted prometheus.Counter
}

// New creates a Metrics backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		tapeOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tapesort_tape_operations_total",
			Help: "Tape operations performed, by tape role and operation",
		}, []string{"role", "op"}),
		tapeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tapesort_tape_errors_total",
			Help: "Tape operations that returned an error, by tape role and operation",
		}, []string{"role", "op"}),
		runsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tapesort_runs_created_total",
			Help: "Temporary runs allocated",
		}),
		runsReleased: factory.NewCounter(prometheus.CounterOpts{
			Name: "tapesort_runs_released_total",
			Help: "Temporary runs released",
		}),
		runLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tapesort_run_length",
			Help:    "Number of values written to each run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		valuesEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tapesort_values_emitted_total",
			Help: "Values written to the output tape",
		}),
	}
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// OnRun implements sorter.Observer.
func (m *Metrics) OnRun(values []int32) {
	m.runLength.Observe(float64(len(values)))
}

// OnEmit implements sorter.Observer.
func (m *Metrics) OnEmit(int32) {
	m.valuesEmitted.Inc()
}

// WriteTextfile writes the current values to path in the text exposition
// format, replacing the file atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return tape.NewResourceError("metrics", "cannot write metrics file", err)
	}
	return nil
}

func (m *Metrics) record(role, op string, err error) {
	m.tapeOps.WithLabelValues(role, op).Inc()
	if err != nil {
		m.tapeErrors.WithLabelValues(role, op).Inc()
	}
}
