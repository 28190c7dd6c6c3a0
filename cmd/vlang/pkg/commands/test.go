package commands

import (
	"context"
	"runtime"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/golden"
)

// TestCommand runs scripts and compares them with their golden files.
type TestCommand struct {
	*BaseCommand
}

// NewTestCommand creates a new test command handler.
func NewTestCommand() *TestCommand {
	return &TestCommand{
		BaseCommand: NewBaseCommand("Run scripts against their .golden files",
			usageFor("test", "[--update] [--jobs n] [--format text|json|yaml] [path...]")),
	}
}

// Execute implements the CommandHandler interface. Paths default to the
// working directory.
func (c *TestCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "test")
	update := fs.Bool("update", false, "write missing or differing golden files")
	jobs := fs.Int("jobs", runtime.NumCPU(), "scripts run concurrently")
	format := fs.String("format", FormatText, "output format: text, json or yaml")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	scripts, err := golden.Discover(paths)
	if err != nil {
		return err
	}
	ctx.Logger.Info("found %d script(s)", len(scripts))

	runner := golden.New(golden.Options{
		Update:      *update,
		Jobs:        *jobs,
		Interpreter: interpreterOptions(ctx),
	})
	results, err := runner.Run(context.Background(), scripts)
	if err != nil {
		return err
	}

	failed := 0
	if *format == FormatText {
		failed = golden.Report(ctx.Stdout, results)
	} else {
		for _, r := range results {
			if r.Status == golden.StatusFail {
				failed++
			}
		}
		if err := encode(ctx.Stdout, *format, results); err != nil {
			return err
		}
	}

	if failed > 0 {
		return types.Failed()
	}
	return nil
}
