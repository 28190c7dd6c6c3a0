package diagnostic

import (
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/lexer"
	"github.com/vlang-lab/vlang/internal/parser"
	"github.com/vlang-lab/vlang/internal/position"
)

var hints = map[string]string{
	vlerrors.CodeImmutableAssign: "declare it with mut to allow assignment",
	vlerrors.CodeMissingReturn:   "end every path through the function with a return",
	vlerrors.CodeInvalidTransfer: "break and continue belong in a loop, return in a function",
}

// Codes for front-end diagnostics. Interpreter diagnostics carry the code
// of the underlying StandardError.
const (
	CodeLexical = "LEXICAL_ERROR"
	CodeSyntax  = "SYNTAX_ERROR"
	CodeRuntime = "RUNTIME_ERROR"
)

// FromError converts an error produced by any phase into a diagnostic.
func FromError(err error) *Diagnostic {
	switch e := err.(type) {
	case nil:
		return nil
	case *Diagnostic:
		return e
	case *lexer.LexError:
		return NewDiagnostic().
			Error().
			Lexical().
			Code(CodeLexical).
			Message(e.Message).
			Source("lexer").
			At(e.Position).
			Build()
	case *parser.ParseError:
		return NewDiagnostic().
			Error().
			Syntax().
			Code(CodeSyntax).
			Message(e.Message).
			Source("parser").
			At(e.Position).
			Build()
	}

	if se, ok := vlerrors.As(err); ok {
		return FromStandardError(se)
	}

	return NewDiagnostic().
		Error().
		Runtime().
		Code(CodeRuntime).
		Message(err.Error()).
		Source("interpreter").
		Build()
}

// FromStandardError converts an evaluator error, keeping its code and span.
func FromStandardError(se *vlerrors.StandardError) *Diagnostic {
	b := NewDiagnostic().
		Error().
		Code(se.Code).
		Message(se.Message).
		Source("interpreter").
		Span(se.Span)
	if se.Category.IsRuntime() {
		b.Runtime()
	} else {
		b.Semantic()
	}
	if hint, ok := hints[se.Code]; ok {
		b.Suggest(hint)
	}
	if prev, ok := se.Context["previous"].(position.Position); ok && prev.IsValid() {
		b.Related(position.Between(prev, prev), "previously declared here")
	}
	return b.Build()
}

// FromErrors converts a slice of errors, skipping nils.
func FromErrors(errs []error) []*Diagnostic {
	out := make([]*Diagnostic, 0, len(errs))
	for _, err := range errs {
		if d := FromError(err); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// ReportAll converts errs and reports each to sink.
func ReportAll(sink Sink, errs []error) {
	for _, d := range FromErrors(errs) {
		sink.Report(d)
	}
}
