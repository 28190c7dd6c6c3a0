package commands

import (
	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/interpreter"
)

// RunCommand evaluates a script.
type RunCommand struct {
	*BaseCommand
}

// NewRunCommand creates a new run command handler.
func NewRunCommand() *RunCommand {
	return &RunCommand{
		BaseCommand: NewBaseCommand("Run a VLang script", usageFor("run", "<file.vl>")),
	}
}

// Execute runs the file, writing program output to stdout and
// diagnostics to stderr.
func (c *RunCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "run")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return types.UsageError("%s", c.Usage())
	}

	path := fs.Arg(0)
	src, err := readSource(path)
	if err != nil {
		return err
	}

	if !runSource(ctx, path, src) {
		return types.Failed()
	}
	return nil
}

// runSource evaluates src and reports its diagnostics. It returns false
// if any error was reported.
func runSource(ctx *types.Context, path, src string) bool {
	ctx.Logger.Debug("running %s (%d bytes)", path, len(src))
	opts := append(interpreterOptions(ctx), interpreter.WithOutput(ctx.Stdout))
	result := interpreter.Run(src, path, opts...)
	report(ctx, path, src, result.Diagnostics)
	ctx.Logger.Info("%s: %d diagnostic(s)", path, len(result.Diagnostics))
	return !result.HasErrors()
}
