package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/watch"
)

// WatchCommand reruns a script every time it is saved.
type WatchCommand struct {
	*BaseCommand
}

// NewWatchCommand creates a new watch command handler.
func NewWatchCommand() *WatchCommand {
	return &WatchCommand{
		BaseCommand: NewBaseCommand("Run a script and rerun it on every change",
			usageFor("watch", "[--debounce 100ms] [--clear] <file.vl>")),
	}
}

// Execute runs the file once, then after each change until interrupted.
func (c *WatchCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "watch")
	debounce := fs.Duration("debounce", ctx.Config.Watch.Debounce, "quiet period before rerunning")
	clearScreen := fs.Bool("clear", false, "clear the terminal before each run")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return types.UsageError("%s", c.Usage())
	}
	path := fs.Arg(0)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return WatchFile(sigCtx, ctx, path, *debounce, *clearScreen)
}

// WatchFile runs path, then reruns it after every change until runCtx is
// done.
func WatchFile(runCtx context.Context, ctx *types.Context, path string, debounce time.Duration, clearScreen bool) error {
	rerun := func() {
		if clearScreen {
			fmt.Fprint(ctx.Stdout, "\033[H\033[2J")
		}
		src, err := readSource(path)
		if err != nil {
			ctx.Logger.Error("%v", err)
			return
		}
		runSource(ctx, path, src)
	}

	rerun()
	ctx.Logger.Info("watching %s", path)

	w := watch.New(path, debounce, func(ev watch.Event) {
		ctx.Logger.Debug("%s: %s", ev.Op, ev.Path)
		rerun()
	})
	w.OnError = func(err error) { ctx.Logger.Warn("watch: %v", err) }
	return w.Run(runCtx)
}
