package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/env"
	"github.com/vlang-lab/vlang/internal/interpreter"
)

// SymbolsCommand runs a script and prints the scopes and names it
// declared.
type SymbolsCommand struct {
	*BaseCommand
}

// NewSymbolsCommand creates a new symbols command handler.
func NewSymbolsCommand() *SymbolsCommand {
	return &SymbolsCommand{
		BaseCommand: NewBaseCommand("Run a script and print its symbol table",
			usageFor("symbols", "[--format text|json|yaml] [--max-scopes n] <file.vl>")),
	}
}

// Execute implements the CommandHandler interface. Program output is
// discarded.
func (c *SymbolsCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "symbols")
	format := fs.String("format", FormatText, "output format: text, json or yaml")
	maxScopes := fs.Int("max-scopes", env.DefaultMaxScopes, "maximum number of scopes recorded")
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

	opts := append(interpreterOptions(ctx), interpreter.WithSymbolLimit(*maxScopes))
	result := interpreter.Run(src, path, opts...)
	report(ctx, path, src, result.Diagnostics)

	if result.Symbols != nil {
		if *format == FormatText {
			WriteSymbols(ctx.Stdout, result.Symbols)
		} else if err := encode(ctx.Stdout, *format, result.Symbols); err != nil {
			return err
		}
	}

	if result.HasErrors() {
		return types.Failed()
	}
	return nil
}

// WriteSymbols prints the table as an indented tree:
//
//	global
//	  struct P: P (1:8)
//	  function f: fn(int) int (2:4)
//	  f (function)
//	    mut a: int (2:6)
func WriteSymbols(w io.Writer, st *env.SymbolTable) {
	st.Walk(func(scope *env.ScopeReport, depth int) {
		indent := strings.Repeat("  ", depth)
		if depth == 0 {
			fmt.Fprintln(w, scope.Name)
		} else {
			fmt.Fprintf(w, "%s%s (%s)\n", indent, scope.Name, scope.Kind)
		}
		for _, s := range scope.Symbols {
			kind := s.Kind
			if kind == "variable" {
				kind = "let"
				if s.Mutable {
					kind = "mut"
				}
			}
			fmt.Fprintf(w, "%s  %s %s: %s (%d:%d)\n", indent, kind, s.Name, s.Type, s.Line, s.Column)
		}
	})
	if st.Truncated {
		fmt.Fprintln(w, "... more scopes not shown")
	}
}
