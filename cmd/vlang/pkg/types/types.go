// Package types defines the data shared by the vlang subcommands.
package types

import (
	"fmt"
	"io"

	"github.com/vlang-lab/vlang/internal/cli"
)

// Context holds the configuration and streams every command runs with.
type Context struct {
	// Config is the loaded configuration after environment and flag overrides
	Config *cli.Config
	// Logger reports progress on stderr
	Logger *cli.Logger
	// Stdout receives program output and reports
	Stdout io.Writer
	// Stderr receives diagnostics
	Stderr io.Writer
	// Color enables ANSI colors in diagnostics
	Color bool
}

// CommandHandler defines the interface for subcommand implementations.
type CommandHandler interface {
	// Execute runs the command with the given arguments and context
	Execute(ctx *Context, args []string) error
	// Description returns a human-readable description of the command
	Description() string
	// Usage returns usage information for the command
	Usage() string
}

// ExitError carries a process exit code. A nil Err means the command has
// already reported the problem.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Failed is the ExitError for a run that produced diagnostics.
func Failed() error { return &ExitError{Code: cli.ExitError} }

// UsageError is the ExitError for bad arguments.
func UsageError(format string, args ...interface{}) error {
	return &ExitError{Code: cli.ExitUsage, Err: fmt.Errorf(format, args...)}
}
