package commands

import (
	"fmt"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/ast"
	"github.com/vlang-lab/vlang/internal/diagnostic"
	"github.com/vlang-lab/vlang/internal/parser"
)

// ASTCommand dumps the syntax tree of a file.
type ASTCommand struct {
	*BaseCommand
}

// NewASTCommand creates a new ast command handler.
func NewASTCommand() *ASTCommand {
	return &ASTCommand{
		BaseCommand: NewBaseCommand("Print the syntax tree of a script",
			usageFor("ast", "[--format text|json|yaml] <file.vl>")),
	}
}

// Execute implements the CommandHandler interface. The text format
// prints the program back as source.
func (c *ASTCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "ast")
	format := fs.String("format", FormatText, "output format: text, json or yaml")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return types.UsageError("%s", c.Usage())
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	path := fs.Arg(0)
	src, err := readSource(path)
	if err != nil {
		return err
	}

	prog, errs := parser.ParseSource(src, path)
	if len(errs) > 0 {
		report(ctx, path, src, diagnostic.FromErrors(errs))
		return types.Failed()
	}

	if *format == FormatText {
		for _, stmt := range prog.Statements {
			fmt.Fprintln(ctx.Stdout, stmt.String())
		}
		return nil
	}
	return encode(ctx.Stdout, *format, ast.Dump(prog))
}
