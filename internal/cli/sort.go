package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/tapesort/internal/metrics"
	"github.com/roach88/tapesort/internal/sorter"
	"github.com/roach88/tapesort/internal/store"
	"github.com/roach88/tapesort/internal/tape"
)

// Run backends accepted by --runs.
const (
	runsFile   = "file"
	runsMemory = "memory"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	BufferSize  int
	Runs        string // file | memory | sqlite:<db-path>
	TempDir     string
	MetricsFile string
}

// SortResult is the data reported by a successful sort.
type SortResult struct {
	sorter.Stats
}

// String renders the result for text output.
func (r SortResult) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("Sorted %d values into %d runs (buffer size %d)", r.Values, r.Runs, r.MaxBufferSize)
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort <input> <output>",
		Short: "Sort a tape into another tape",
		Long: `Sort the integers on the input tape in ascending order onto the output tape.

At most --buffer-size values are held in memory at once. The output tape is
truncated first. A location is a file path, or sqlite:<db-path>#<tape-name>
for a tape stored in a SQLite database.

Temporary runs are stored according to --runs:
  file            one file per run in --temp-dir (default)
  memory          in memory
  sqlite:<db>     as temporary tapes in a SQLite database

Examples:
  tapesort sort input.tape output.tape
  tapesort sort input.tape output.tape --buffer-size 1000 --temp-dir /scratch
  tapesort sort sqlite:tapes.db#in sqlite:tapes.db#out --runs sqlite:runs.db
  tapesort sort input.tape output.tape --delay-config delays.cfg --metrics-file sort.prom`,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.BufferSize, "buffer-size", "b", sorter.DefaultMaxBufferSize, "maximum number of values held in memory")
	cmd.Flags().StringVar(&opts.Runs, "runs", runsFile, "where temporary runs are stored (file|memory|sqlite:<db>)")
	cmd.Flags().StringVar(&opts.TempDir, "temp-dir", "", "directory for file runs (default: system temp dir)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file after the sort")

	return cmd
}

func runSort(opts *SortOptions, inputLoc, outputLoc string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	delays, err := opts.delays()
	if err != nil {
		return err
	}

	alloc, closeRuns, err := runAllocator(opts.Runs, opts.TempDir)
	if err != nil {
		return err
	}
	defer closeRuns()

	m := metrics.New()
	var runs tape.Allocator = metrics.Allocator{Allocator: alloc, Metrics: m}
	runs = tape.DelayedAllocator{Allocator: runs, Delays: delays}

	// Validate before touching the output tape
	s, err := sorter.New(runs, opts.BufferSize, sorter.WithObserver(m))
	if err != nil {
		return out.Fail(ExitCommandError, "E_CONFIG", "invalid sort configuration", err)
	}

	// The output is truncated before the input is read.
	if sameLocation(inputLoc, outputLoc) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("input and output are the same tape: %s", inputLoc))
	}

	ctx := cmd.Context()
	input, err := openTape(ctx, inputLoc, true)
	if err != nil {
		return err
	}
	defer closeTape(input, metrics.RoleInput)

	output, err := openTape(ctx, outputLoc, false)
	if err != nil {
		return err
	}
	outputClosed := false
	defer func() {
		if !outputClosed {
			closeTape(output, metrics.RoleOutput)
		}
	}()

	if err := output.Truncate(); err != nil {
		return out.Fail(ExitFailure, "E_SORT_FAILED", "failed to truncate output", err)
	}

	slog.Info("sort starting",
		"input", inputLoc,
		"output", outputLoc,
		"buffer_size", opts.BufferSize,
		"runs", opts.Runs,
	)

	in := m.Instrument(wrapDelays(input, delays), metrics.RoleInput)
	dst := m.Instrument(wrapDelays(output, delays), metrics.RoleOutput)

	stats, err := s.Sort(in, dst)
	if err != nil {
		return out.Fail(ExitFailure, "E_SORT_FAILED", "sort failed", err)
	}

	outputClosed = true
	if err := output.Close(); err != nil {
		return out.Fail(ExitFailure, "E_SORT_FAILED", "failed to close output", err)
	}

	slog.Info("sort complete", "values", stats.Values, "runs", stats.Runs)

	if opts.MetricsFile != "" {
		if err := m.WriteTextfile(opts.MetricsFile); err != nil {
			return out.Fail(ExitFailure, "E_METRICS", "failed to write metrics", err)
		}
		out.VerboseLog("metrics written to %s", opts.MetricsFile)
	}

	return out.Success(SortResult{Stats: stats})
}

// wrapDelays applies delays to t unless there are none.
func wrapDelays(t tape.Tape, d tape.Delays) tape.Tape {
	if d.IsZero() {
		return t
	}
	return tape.WithDelays(t, d)
}

// runAllocator builds the allocator named by --runs and a func that closes
// whatever backs it.
func runAllocator(runs, tempDir string) (tape.Allocator, func(), error) {
	switch {
	case runs == runsFile:
		return tape.TempFileAllocator{Dir: tempDir}, func() {}, nil
	case runs == runsMemory:
		return tape.MemoryAllocator{}, func() {}, nil
	case strings.HasPrefix(runs, sqlitePrefix):
		path := strings.TrimPrefix(runs, sqlitePrefix)
		if path == "" {
			return nil, nil, NewExitError(ExitCommandError, "invalid --runs: sqlite:<db-path> needs a path")
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to open run database", err)
		}
		closeStore := func() {
			if err := st.Close(); err != nil {
				slog.Error("error closing run database", "error", err)
			}
		}
		return store.RunAllocator{Store: st}, closeStore, nil
	default:
		return nil, nil, NewExitError(ExitCommandError,
			fmt.Sprintf("invalid --runs %q: must be file, memory or sqlite:<db-path>", runs))
	}
}
