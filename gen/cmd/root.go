// Package cmd provides the command-line interface of the gen trace generator.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/memtrace/trace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Exit codes.
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitInvalidParameter = 2
)

// usageError marks malformed command lines, such as flags that do not parse.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// usageArgs wraps a positional-argument validator so that its failures are
// reported as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}

		return nil
	}
}

// NewRootCommand creates the gen command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gen",
		Short: "gen generates synthetic memory-access traces.",
		Long: `gen generates synthetic memory-access traces that can be fed ` +
			`into memory-system simulators. Traces are printed to standard ` +
			`output as space-separated addresses and can also be stored in ` +
			`CSV files or SQLite recordings.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if getBool(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}

			return loadEnvFile(getString(cmd, "env-file"))
		},
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &usageError{err: fmt.Errorf(
					"unknown command %q for %q", args[0], cmd.CommandPath())}
			}

			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"increase logging verbosity")
	rootCmd.PersistentFlags().String("env-file", ".env",
		"file to load MEMTRACE_* defaults from, if it exists")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(
		newPatternCmd(trace.Sequential),
		newPatternCmd(trace.Random),
		newPatternCmd(trace.Shuffled),
		newCatCmd(),
	)

	return rootCmd
}

// Run executes the command line and returns the process exit code. Errors are
// reported on stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	return exitCode(err)
}

// Execute runs the command line of the current process and exits.
func Execute() {
	atexit.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

func exitCode(err error) int {
	var uErr *usageError

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, trace.ErrInvalidParameter), errors.As(err, &uErr):
		return ExitInvalidParameter
	default:
		return ExitFailure
	}
}

func getBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func getString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
