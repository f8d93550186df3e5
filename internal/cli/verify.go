package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// VerifyResult reports whether a tape is in non-decreasing order.
type VerifyResult struct {
	Values int  `json:"values"`
	Sorted bool `json:"sorted"`

	// Position of the first value smaller than its predecessor.
	Position *int   `json:"position,omitempty"`
	Previous *int32 `json:"previous,omitempty"`
	Value    *int32 `json:"value,omitempty"`
}

// String renders the result for text output.
func (r VerifyResult) String() string {
	p := message.NewPrinter(language.English)
	if r.Sorted {
		return p.Sprintf("OK: %d values in non-decreasing order", r.Values)
	}
	return p.Sprintf("NOT SORTED: %d at position %d follows %d", *r.Value, *r.Position, *r.Previous)
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <input>",
		Short: "Check that a tape is sorted",
		Long: `Check that the values on a tape are in non-decreasing order.

Exit codes:
  0 - Tape is sorted
  1 - Tape is not sorted
  2 - Command error

Examples:
  tapesort verify output.tape`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runVerify(opts *RootOptions, inputLoc string, cmd *cobra.Command) error {
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

	result := VerifyResult{Sorted: true}
	var prev int32
	err = scanTape(wrapDelays(input, delays), func(v int32) bool {
		if result.Values > 0 && v < prev {
			pos, p, cur := result.Values, prev, v
			result.Sorted = false
			result.Position, result.Previous, result.Value = &pos, &p, &cur
			return false
		}
		prev = v
		result.Values++
		return true
	})
	if err != nil {
		return out.Fail(ExitFailure, "E_READ_FAILED", "failed to read tape", err)
	}

	if err := out.Success(result); err != nil {
		return err
	}
	if !result.Sorted {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("tape not sorted at position %d", *result.Position),
			reported: true,
		}
	}
	return nil
}
