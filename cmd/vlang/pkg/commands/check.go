package commands

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/diagnostic"
	"github.com/vlang-lab/vlang/internal/interpreter"
	"github.com/vlang-lab/vlang/internal/parser"
)

// CheckCommand reports syntax and control-flow errors without running.
type CheckCommand struct {
	*BaseCommand
}

// NewCheckCommand creates a new check command handler.
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{
		BaseCommand: NewBaseCommand("Check scripts without running them",
			usageFor("check", "[--format text|json|yaml] [--jobs n] <file.vl>...")),
	}
}

// FileReport is the check result for one file.
type FileReport struct {
	File        string              `json:"file" yaml:"file"`
	Diagnostics []diagnostic.Record `json:"diagnostics" yaml:"diagnostics"`

	src   string
	diags []*diagnostic.Diagnostic
}

// CheckSource parses src and, if it parses, validates break, continue
// and return placement.
func CheckSource(src, filename string) []*diagnostic.Diagnostic {
	prog, errs := parser.ParseSource(src, filename)
	if len(errs) == 0 {
		errs = interpreter.Validate(prog)
	}
	return diagnostic.FromErrors(errs)
}

// Execute checks every file, several at a time, and reports in argument
// order.
func (c *CheckCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "check")
	format := fs.String("format", FormatText, "output format: text, json or yaml")
	jobs := fs.Int("jobs", runtime.NumCPU(), "files checked concurrently")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return types.UsageError("%s", c.Usage())
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	files := fs.Args()
	reports := make([]*FileReport, len(files))

	g, gctx := errgroup.WithContext(context.Background())
	if *jobs > 0 {
		g.SetLimit(*jobs)
	}
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := readSource(file)
			if err != nil {
				return err
			}
			diags := CheckSource(src, file)
			reports[i] = &FileReport{File: file, Diagnostics: diagnostic.Records(diags), src: src, diags: diags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for _, r := range reports {
		if len(r.diags) > 0 {
			failed = true
		}
		if *format == FormatText {
			report(ctx, r.File, r.src, r.diags)
			ctx.Logger.Info("checked %s", r.File)
		}
	}
	if *format != FormatText {
		if err := encode(ctx.Stdout, *format, reports); err != nil {
			return err
		}
	}

	if failed {
		return types.Failed()
	}
	return nil
}
