package commands

import (
	"fmt"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/diagnostic"
	"github.com/vlang-lab/vlang/internal/lexer"
)

// TokensCommand dumps the token stream of a file.
type TokensCommand struct {
	*BaseCommand
}

// NewTokensCommand creates a new tokens command handler.
func NewTokensCommand() *TokensCommand {
	return &TokensCommand{
		BaseCommand: NewBaseCommand("Print the tokens of a script",
			usageFor("tokens", "[--format text|json|yaml] <file.vl>")),
	}
}

// TokenRecord is the serialized form of a token.
type TokenRecord struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// Execute implements the CommandHandler interface.
func (c *TokensCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "tokens")
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

	l := lexer.NewWithFilename(src, path)
	records := make([]TokenRecord, 0, len(src)/2)
	for {
		tok := l.NextToken()
		if tok.Type == lexer.TokenEOF {
			break
		}
		records = append(records, TokenRecord{Type: tok.Type.String(), Literal: tok.Literal, Line: tok.Line, Column: tok.Column})
	}

	if *format == FormatText {
		for _, r := range records {
			fmt.Fprintf(ctx.Stdout, "%d:%d\t%s\t%q\n", r.Line, r.Column, r.Type, r.Literal)
		}
	} else if err := encode(ctx.Stdout, *format, records); err != nil {
		return err
	}

	errs := make([]error, 0, len(l.Errors()))
	for _, e := range l.Errors() {
		errs = append(errs, e)
	}
	if len(errs) > 0 {
		report(ctx, path, src, diagnostic.FromErrors(errs))
		return types.Failed()
	}
	return nil
}
