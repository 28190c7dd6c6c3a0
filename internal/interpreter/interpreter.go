// Package interpreter implements the tree-walking evaluator for VLang.
//
// Evaluation happens in three steps: a static pass that rejects misplaced
// break, continue and return; loading every top-level struct and function
// declaration into the registry; and executing the remaining top-level
// statements in source order. The first evaluation error stops the
// program and is reported as a diagnostic.
package interpreter

import (
	"bytes"
	"context"
	"io"

	"github.com/vlang-lab/vlang/internal/ast"
	"github.com/vlang-lab/vlang/internal/diagnostic"
	"github.com/vlang-lab/vlang/internal/env"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/parser"
	"github.com/vlang-lab/vlang/internal/value"
)

// DefaultMaxDepth is the default limit on nested function calls.
const DefaultMaxDepth = 1000

// Result is the outcome of one evaluation.
type Result struct {
	Program     *ast.Program
	Symbols     *env.SymbolTable
	Output      string
	Diagnostics []*diagnostic.Diagnostic
}

// HasErrors reports whether any error-level diagnostic was produced.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sends program output to w in addition to Result.Output.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.stdout = w }
}

// WithMaxDepth limits the number of nested function calls.
func WithMaxDepth(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxDepth = n
		}
	}
}

// WithFloatPrecision sets the number of decimals print uses for floats.
func WithFloatPrecision(n int) Option {
	return func(in *Interpreter) {
		if n >= 0 {
			in.precision = n
		}
	}
}

// WithContext stops evaluation with an EVALUATION_CANCELLED error once
// ctx is done. Loops and function calls check it.
func WithContext(ctx context.Context) Option {
	return func(in *Interpreter) {
		if ctx != nil {
			in.ctx = ctx
		}
	}
}

// WithSink streams every diagnostic to sink as it is produced.
func WithSink(sink diagnostic.Sink) Option {
	return func(in *Interpreter) { in.sink = sink }
}

// WithSymbolLimit bounds how many scopes the symbol report records.
func WithSymbolLimit(n int) Option {
	return func(in *Interpreter) { in.symbolLimit = n }
}

// Interpreter evaluates programs. Globals, structs and functions persist
// across calls to Evaluate until Reset, which lets a REPL feed it one
// line at a time. An Interpreter is not safe for concurrent use.
type Interpreter struct {
	ctx         context.Context
	env         *env.Environment
	registry    *env.Registry
	symbols     *env.SymbolTable
	stdout      io.Writer
	out         io.Writer
	buf         *bytes.Buffer
	sink        diagnostic.Sink
	maxDepth    int
	depth       int
	precision   int
	symbolLimit int
}

// New creates an interpreter with a fresh global environment.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		ctx:       context.Background(),
		maxDepth:  DefaultMaxDepth,
		precision: value.DefaultPrecision,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.Reset()
	return in
}

// Reset discards all globals, structs and functions.
func (in *Interpreter) Reset() {
	in.env = env.New()
	in.registry = env.NewRegistry(builtinNames()...)
	in.symbols = in.env.TrackSymbols(in.symbolLimit)
	in.depth = 0
}

func (in *Interpreter) checkCancelled() error {
	if err := in.ctx.Err(); err != nil {
		return vlerrors.Cancelled(err)
	}
	return nil
}

// Environment exposes the global environment, e.g. for listing variables.
func (in *Interpreter) Environment() *env.Environment { return in.env }

// Registry exposes the declared structs and functions.
func (in *Interpreter) Registry() *env.Registry { return in.registry }

// Format renders v the way print does.
func (in *Interpreter) Format(v value.Value) string { return value.Format(v, in.precision) }

// Run lexes, parses and evaluates src with a new interpreter. Syntax
// errors stop before evaluation.
func Run(src, filename string, opts ...Option) *Result {
	return New(opts...).RunSource(src, filename)
}

// RunSource parses src and evaluates it against the interpreter's
// current state.
func (in *Interpreter) RunSource(src, filename string) *Result {
	prog, errs := parser.ParseSource(src, filename)
	if len(errs) > 0 {
		collector, sink := in.newCollector()
		diagnostic.ReportAll(sink, errs)
		return &Result{Program: prog, Symbols: in.symbols, Diagnostics: collector.Diagnostics()}
	}
	return in.Evaluate(prog)
}

func (in *Interpreter) newCollector() (*diagnostic.Collector, diagnostic.Sink) {
	collector := diagnostic.NewCollector(diagnostic.CollectorConfig{})
	if in.sink == nil {
		return collector, collector
	}
	return collector, diagnostic.SinkFunc(func(d *diagnostic.Diagnostic) {
		collector.Report(d)
		in.sink.Report(d)
	})
}

// Evaluate executes prog and returns its output and diagnostics.
func (in *Interpreter) Evaluate(prog *ast.Program) *Result {
	in.buf = &bytes.Buffer{}
	in.out = in.buf
	if in.stdout != nil {
		in.out = io.MultiWriter(in.buf, in.stdout)
	}

	collector, sink := in.newCollector()
	result := &Result{Program: prog, Symbols: in.symbols}
	defer func() {
		result.Output = in.buf.String()
		result.Diagnostics = collector.Diagnostics()
	}()

	if errs := Validate(prog); len(errs) > 0 {
		diagnostic.ReportAll(sink, errs)
		return result
	}

	if errs := in.load(prog); len(errs) > 0 {
		diagnostic.ReportAll(sink, errs)
		return result
	}

	depth := in.env.Depth()
	for _, stmt := range prog.Statements {
		ctl, err := in.execStatement(stmt)
		if err != nil {
			in.env.Unwind(depth)
			in.depth = 0
			sink.Report(diagnostic.FromError(locate(err, stmt)))
			return result
		}
		if ctl.kind != controlNone {
			sink.Report(diagnostic.FromError(
				vlerrors.InvalidTransfer(ctl.kind.String(), ctl.kind.scope()).At(stmt.GetSpan())))
			return result
		}
	}

	return result
}

// load registers the top-level struct and function declarations of prog.
// Nothing stays registered when any declaration fails.
func (in *Interpreter) load(prog *ast.Program) []error {
	var structs []*ast.StructDeclaration
	var funcs []*ast.FunctionDeclaration
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.StructDeclaration:
			structs = append(structs, s)
		case *ast.FunctionDeclaration:
			funcs = append(funcs, s)
		}
	}

	mark := in.registry.Mark()
	var reports []env.SymbolReport
	errs := in.registry.DeclareStructs(structs)
	for _, s := range structs {
		declared, _ := in.registry.Position(s.Name)
		if t, ok := in.registry.Struct(s.Name); ok && declared == s.Span.Start {
			reports = append(reports, env.SymbolReport{
				Name: s.Name, Kind: "struct", Type: t.String(),
				Line: s.Span.Start.Line, Column: s.Span.Start.Column,
			})
		}
	}

	for _, f := range funcs {
		if err := in.registry.DeclareFunction(f); err != nil {
			errs = append(errs, err)
			continue
		}
		fn, _ := in.registry.Function(f.Name)
		reports = append(reports, env.SymbolReport{
			Name: f.Name, Kind: "function", Type: fn.Signature(),
			Line: f.Span.Start.Line, Column: f.Span.Start.Column,
		})
	}

	if len(errs) > 0 {
		in.registry.Rollback(mark)
		return errs
	}
	if in.symbols != nil {
		for _, r := range reports {
			in.symbols.AddGlobal(r)
		}
	}
	return nil
}
