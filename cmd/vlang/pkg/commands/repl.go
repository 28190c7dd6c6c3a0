package commands

import (
	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/repl"
)

// REPLCommand starts the interactive prompt.
type REPLCommand struct {
	*BaseCommand
}

// NewREPLCommand creates a new repl command handler.
func NewREPLCommand() *REPLCommand {
	return &REPLCommand{
		BaseCommand: NewBaseCommand("Start an interactive session",
			usageFor("repl", "[--history file] [--load file.vl]")),
	}
}

// Execute implements the CommandHandler interface.
func (c *REPLCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "repl")
	history := fs.String("history", ctx.Config.HistoryFile, "history file, empty to disable")
	load := fs.String("load", "", "file to run before the first prompt")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return types.UsageError("%s", c.Usage())
	}

	r := repl.New(repl.Options{
		Out:         ctx.Stdout,
		Err:         ctx.Stderr,
		Color:       ctx.Color,
		HistoryFile: *history,
		MaxHistory:  ctx.Config.MaxHistory,
		Logger:      ctx.Logger,
		Interpreter: interpreterOptions(ctx),
	})
	r.PrintWelcome()
	if *load != "" {
		if err := r.LoadFile(*load); err != nil {
			ctx.Logger.Warn("%v", err)
		}
	}
	ctx.Logger.Debug("history file %q", *history)
	return r.Run()
}
