// Package repl implements the interactive VLang prompt. The interpreter
// state persists between inputs until :reset.
package repl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/vlang-lab/vlang/internal/ast"
	"github.com/vlang-lab/vlang/internal/cli"
	"github.com/vlang-lab/vlang/internal/diagnostic"
	"github.com/vlang-lab/vlang/internal/interpreter"
	"github.com/vlang-lab/vlang/internal/lexer"
	"github.com/vlang-lab/vlang/internal/parser"
	"github.com/vlang-lab/vlang/internal/position"
)

const (
	promptMain = "vlang> "
	promptCont = "  ...> "
	inputName  = "<repl>"
)

// Options configures a REPL.
type Options struct {
	Out         io.Writer
	Err         io.Writer
	Color       bool
	HistoryFile string
	MaxHistory  int
	Logger      *cli.Logger
	Interpreter []interpreter.Option
}

// REPL holds the interpreter and the session history.
type REPL struct {
	opts    Options
	in      *interpreter.Interpreter
	history []string
}

// New creates a REPL. Program output is streamed to Options.Out.
func New(opts Options) *REPL {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = 1000
	}
	interpOpts := append([]interpreter.Option{interpreter.WithOutput(opts.Out)}, opts.Interpreter...)
	return &REPL{opts: opts, in: interpreter.New(interpOpts...)}
}

// Interpreter returns the session interpreter.
func (r *REPL) Interpreter() *interpreter.Interpreter { return r.in }

// PrintWelcome writes the banner.
func (r *REPL) PrintWelcome() {
	fmt.Fprintf(r.opts.Out, "VLang REPL v%s\n", cli.Version)
	fmt.Fprintf(r.opts.Out, "Type :help for help, :quit to exit\n\n")
}

// Run reads inputs with line editing until EOF or :quit.
func (r *REPL) Run() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	if r.opts.HistoryFile != "" {
		if f, err := os.Open(r.opts.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			f.Close()
		}
		defer r.saveHistory(ln)
	}

	for {
		code, ok := r.read(ln)
		if !ok {
			fmt.Fprintln(r.opts.Out)
			return nil
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if r.Handle(code) {
			return nil
		}
	}
}

func (r *REPL) saveHistory(ln *liner.State) {
	f, err := os.Create(r.opts.HistoryFile)
	if err != nil {
		r.logf("failed to save history: %v", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		r.logf("failed to save history: %v", err)
	}
}

func (r *REPL) logf(format string, args ...interface{}) {
	if r.opts.Logger != nil {
		r.opts.Logger.Warn(format, args...)
	}
}

// read prompts until the input is no longer Incomplete. Ctrl-C discards
// the pending input.
func (r *REPL) read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			return "", false
		case errors.Is(err, liner.ErrPromptAborted):
			return "", true
		case err != nil:
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !Incomplete(src) {
			return src, true
		}
	}
}

// Incomplete reports whether src has unclosed braces, parentheses or
// brackets, meaning more lines should be read before evaluating.
func Incomplete(src string) bool {
	tokens, _ := lexer.Tokenize(src)
	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.TokenLBrace, lexer.TokenLParen, lexer.TokenLBracket:
			depth++
		case lexer.TokenRBrace, lexer.TokenRParen, lexer.TokenRBracket:
			depth--
		}
	}
	return depth > 0
}

// Handle evaluates one input or meta command and reports whether the
// session should end.
func (r *REPL) Handle(input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		return r.command(trimmed)
	}
	r.eval(input, inputName)
	return false
}

func (r *REPL) addHistory(input string) {
	r.history = append(r.history, input)
	if len(r.history) > r.opts.MaxHistory {
		r.history = r.history[1:]
	}
}

func (r *REPL) eval(src, name string) bool {
	r.addHistory(src)
	result := r.in.RunSource(src, name)
	if result.Output != "" && !strings.HasSuffix(result.Output, "\n") {
		fmt.Fprintln(r.opts.Out)
	}
	r.report(src, name, result.Diagnostics)
	return !result.HasErrors()
}

func (r *REPL) report(src, name string, diags []*diagnostic.Diagnostic) {
	file := position.NewSourceFile(name, src)
	for _, d := range diags {
		fmt.Fprint(r.opts.Err, diagnostic.Format(d, file, r.opts.Color))
	}
}

func (r *REPL) command(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":help", ":h":
		r.printHelp()
	case ":quit", ":q", ":exit":
		fmt.Fprintln(r.opts.Out, "Goodbye!")
		return true
	case ":reset":
		r.in.Reset()
		fmt.Fprintln(r.opts.Out, "Environment reset")
	case ":vars":
		r.showVariables()
	case ":history":
		for i, h := range r.history {
			fmt.Fprintf(r.opts.Out, "%3d: %s\n", i+1, h)
		}
	case ":load":
		if arg == "" {
			fmt.Fprintln(r.opts.Err, "Usage: :load <file>")
			break
		}
		if err := r.LoadFile(arg); err != nil {
			fmt.Fprintf(r.opts.Err, "Error loading file: %v\n", err)
		}
	case ":ast":
		r.showAST(arg)
	case ":tokens":
		r.showTokens(arg)
	default:
		fmt.Fprintf(r.opts.Err, "Unknown command: %s\n", name)
		fmt.Fprintln(r.opts.Err, "Type :help for available commands")
	}
	return false
}

func (r *REPL) printHelp() {
	w := r.opts.Out
	fmt.Fprintln(w, "REPL Commands:")
	fmt.Fprintln(w, "  :help, :h          Show this help")
	fmt.Fprintln(w, "  :quit, :q, :exit   Exit REPL")
	fmt.Fprintln(w, "  :reset             Reset environment")
	fmt.Fprintln(w, "  :vars              Show global variables, functions and structs")
	fmt.Fprintln(w, "  :history           Show inputs of this session")
	fmt.Fprintln(w, "  :load <file>       Load and execute file")
	fmt.Fprintln(w, "  :ast <code>        Show the syntax tree of code")
	fmt.Fprintln(w, "  :tokens <code>     Show the tokens of code")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Enter VLang statements to run them. Open braces continue on the next line.")
}

// LoadFile runs a file in the session.
func (r *REPL) LoadFile(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if !r.eval(string(content), filename) {
		return fmt.Errorf("%s has errors", filename)
	}
	fmt.Fprintf(r.opts.Out, "Loaded file: %s\n", filename)
	return nil
}

func (r *REPL) showVariables() {
	reg := r.in.Registry()
	bindings := r.in.Environment().Global().Bindings()
	if len(bindings) == 0 && len(reg.Functions()) == 0 && len(reg.Types().Names()) == 0 {
		fmt.Fprintln(r.opts.Out, "No variables defined")
		return
	}

	for _, name := range reg.Types().Names() {
		fmt.Fprintf(r.opts.Out, "  struct %s\n", name)
	}
	for _, fn := range reg.Functions() {
		fmt.Fprintf(r.opts.Out, "  %s %s\n", fn.Name, fn.Signature())
	}
	for _, b := range bindings {
		kind := "  "
		if b.Mutable {
			kind = "  mut "
		}
		fmt.Fprintf(r.opts.Out, "%s%s %s = %s\n", kind, b.Name, b.Type, r.in.Format(b.Value))
	}
}

func (r *REPL) showAST(code string) {
	prog, errs := parser.ParseSource(code, inputName)
	if len(errs) > 0 {
		r.report(code, inputName, diagnostic.FromErrors(errs))
		return
	}
	data, err := json.MarshalIndent(ast.Dump(prog), "", "  ")
	if err != nil {
		fmt.Fprintf(r.opts.Err, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(r.opts.Out, string(data))
}

func (r *REPL) showTokens(code string) {
	tokens, errs := lexer.Tokenize(code)
	for _, tok := range tokens {
		if tok.Type == lexer.TokenEOF {
			break
		}
		fmt.Fprintf(r.opts.Out, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Literal)
	}
	for _, e := range errs {
		fmt.Fprintln(r.opts.Err, e.Error())
	}
}
