package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/tapesort/internal/config"
	"github.com/roach88/tapesort/internal/tape"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	DelayConfig string // path to a delay config file, optional
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tapesort CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tapesort",
		Short: "tapesort - external merge sort over sequential tapes",
		Long: `Sort integer tapes that do not fit in memory.

A tape is a sequence of 32-bit integer cells accessed through a single
head. tapesort splits the input into sorted runs of at most --buffer-size
values, stores them on temporary tapes, and merges them into the output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DelayConfig, "delay-config", "", "tape delay configuration (key=value, .yaml or .cue)")

	cmd.AddCommand(NewSortCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// exactArgs is cobra.ExactArgs reporting a command error exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

// setupLogging installs the default slog handler. Logs always go to the
// diagnostic stream so JSON output stays parseable.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter returns an OutputFormatter bound to the command's streams.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// delays loads --delay-config. No flag means no delays.
func (o *RootOptions) delays() (tape.Delays, error) {
	if o.DelayConfig == "" {
		return tape.Delays{}, nil
	}
	d, err := config.LoadDelays(o.DelayConfig)
	if err != nil {
		return tape.Delays{}, WrapExitError(ExitCommandError, "invalid delay configuration", err)
	}
	slog.Debug("delays loaded",
		"path", o.DelayConfig,
		"move", d.Move,
		"read", d.Read,
		"write", d.Write,
		"rewind", d.Rewind,
	)
	return d, nil
}
