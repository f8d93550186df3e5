package cli

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Count int
	Seed  uint64
	Min   int64
	Max   int64
}

// GenerateResult is the data reported by the generate command.
type GenerateResult struct {
	Values int    `json:"values"`
	Seed   uint64 `json:"seed"`
}

// String renders the result for text output.
func (r GenerateResult) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("Generated %d values", r.Values) + fmt.Sprintf(" (seed %d)", r.Seed)
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <output>",
		Short: "Write a tape of random integers",
		Long: `Write --count uniformly distributed integers in [--min, --max] to a tape.

The tape is truncated first. The same --seed always produces the same tape;
without --seed a time-based seed is used and reported.

Examples:
  tapesort generate input.tape --count 100000
  tapesort generate sqlite:tapes.db#in --count 500 --seed 42 --min -10 --max 10`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") {
				return NewExitError(ExitCommandError, "--count is required")
			}
			if !cmd.Flags().Changed("seed") {
				opts.Seed = uint64(time.Now().UnixNano())
			}
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 0, "number of values to write (required)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed")
	cmd.Flags().Int64Var(&opts.Min, "min", math.MinInt32, "smallest value")
	cmd.Flags().Int64Var(&opts.Max, "max", math.MaxInt32, "largest value")

	return cmd
}

func runGenerate(opts *GenerateOptions, outputLoc string, cmd *cobra.Command) error {
	if opts.Count < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--count must be non-negative, got %d", opts.Count))
	}
	if opts.Min < math.MinInt32 || opts.Max > math.MaxInt32 || opts.Min > opts.Max {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid range [%d, %d]: need %d <= min <= max <= %d",
				opts.Min, opts.Max, math.MinInt32, math.MaxInt32))
	}
	out := opts.formatter(cmd)

	delays, err := opts.delays()
	if err != nil {
		return err
	}

	output, err := openTape(cmd.Context(), outputLoc, false)
	if err != nil {
		return err
	}
	closed := false
	defer func() {
		if !closed {
			closeTape(output, "output")
		}
	}()

	if err := output.Truncate(); err != nil {
		return out.Fail(ExitFailure, "E_GENERATE_FAILED", "failed to truncate output", err)
	}

	dst := wrapDelays(output, delays)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	span := uint64(opts.Max - opts.Min + 1)
	for i := 0; i < opts.Count; i++ {
		v := int32(opts.Min + int64(rng.Uint64N(span)))
		if err := dst.Write(v); err != nil {
			return out.Fail(ExitFailure, "E_GENERATE_FAILED", "failed to write tape", err)
		}
		if _, err := dst.MoveForward(); err != nil {
			return out.Fail(ExitFailure, "E_GENERATE_FAILED", "failed to write tape", err)
		}
	}

	closed = true
	if err := output.Close(); err != nil {
		return out.Fail(ExitFailure, "E_GENERATE_FAILED", "failed to close output", err)
	}

	slog.Info("tape generated", "output", outputLoc, "values", opts.Count, "seed", opts.Seed)
	return out.Success(GenerateResult{Values: opts.Count, Seed: opts.Seed})
}
