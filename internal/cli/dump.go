package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tapesort/internal/tape"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Limit int
}

// DumpResult is the content of a tape.
type DumpResult struct {
	Values    []int32 `json:"values"`
	Truncated bool    `json:"truncated,omitempty"`
}

// String renders one value per line.
func (r DumpResult) String() string {
	var b strings.Builder
	for i, v := range r.Values {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprint(&b, v)
	}
	if r.Truncated {
		b.WriteString("\n...")
	}
	return b.String()
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump <input>",
		Short: "Print the values on a tape",
		Long: `Print the values on a tape from the first cell, one per line.

Examples:
  tapesort dump output.tape
  tapesort dump sqlite:tapes.db#out --limit 20 --format json`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", 0, "print at most this many values (0 = all)")

	return cmd
}

func runDump(opts *DumpOptions, inputLoc string, cmd *cobra.Command) error {
	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--limit must be non-negative, got %d", opts.Limit))
	}
	out := opts.formatter(cmd)

	delays, err := opts.delays()
	if err != nil {
		return err
	}

	input, err := openTape(cmd.Context(), inputLoc, true)
	if err != nil {
		return err
	}
	defer closeTape(input, "input")

	result := DumpResult{Values: []int32{}}
	err = scanTape(wrapDelays(input, delays), func(v int32) bool {
		if opts.Limit > 0 && len(result.Values) == opts.Limit {
			result.Truncated = true
			return false
		}
		result.Values = append(result.Values, v)
		return true
	})
	if err != nil {
		return out.Fail(ExitFailure, "E_READ_FAILED", "failed to read tape", err)
	}

	if len(result.Values) == 0 && out.Format != "json" {
		return nil
	}
	return out.Success(result)
}

// scanTape rewinds t and calls fn for each value until fn returns false or
// the tape ends.
func scanTape(t tape.Tape, fn func(int32) bool) error {
	if err := t.Rewind(); err != nil {
		return err
	}
	for {
		v, ok, err := t.Read()
		if err != nil {
			return err
		}
		if !ok || !fn(v) {
			return nil
		}
		moved, err := t.MoveForward()
		if err != nil {
			return err
		}
		if !moved {
			return nil
		}
	}
}
