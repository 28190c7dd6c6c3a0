// Package commands implements the vlang subcommands. Each command is a
// separate handler registered in Registry.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/diagnostic"
	"github.com/vlang-lab/vlang/internal/interpreter"
	"github.com/vlang-lab/vlang/internal/position"
)

// BaseCommand provides the description and usage shared by all commands.
type BaseCommand struct {
	description string
	usage       string
}

// NewBaseCommand creates a new base command with the given description and usage.
func NewBaseCommand(description, usage string) *BaseCommand {
	return &BaseCommand{
		description: description,
		usage:       usage,
	}
}

// Description returns the human-readable description of the command.
func (c *BaseCommand) Description() string {
	return c.description
}

// Usage returns the usage information for the command.
func (c *BaseCommand) Usage() string {
	return c.usage
}

// flags returns a flag set that reports errors instead of exiting and
// prints the command usage before the flag defaults.
func (c *BaseCommand) flags(ctx *types.Context, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(ctx.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(ctx.Stderr, c.usage)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses args, mapping flag errors to a usage exit.
func (c *BaseCommand) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return &types.ExitError{Code: 0}
		}
		return &types.ExitError{Code: 2}
	}
	return nil
}

// Output formats shared by the dump commands.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return types.UsageError("unknown format %q: want text, json or yaml", format)
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, format string, v interface{}) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// report renders diagnostics with source excerpts on stderr.
func report(ctx *types.Context, filename, src string, diags []*diagnostic.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	_ = diagnostic.Render(ctx.Stderr, diags, position.NewSourceFile(filename, src), ctx.Color)
}

// interpreterOptions maps the configuration onto interpreter options.
func interpreterOptions(ctx *types.Context) []interpreter.Option {
	return []interpreter.Option{
		interpreter.WithFloatPrecision(ctx.Config.FloatPrecision),
		interpreter.WithMaxDepth(ctx.Config.MaxCallDepth),
	}
}
