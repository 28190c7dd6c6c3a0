// Diagnostic reporting for VLang.
// Lexer, parser and interpreter findings are all reported as Diagnostics
// through a Sink; rendering is left to the caller.

package diagnostic

import (
	"fmt"

	"github.com/vlang-lab/vlang/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic message.
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticWarning
	DiagnosticInfo
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticInfo:
		return "info"
	default:
		return "unknown"
	}
}

// DiagnosticCategory represents the phase that produced a diagnostic.
type DiagnosticCategory int

const (
	DiagnosticLexical DiagnosticCategory = iota
	DiagnosticSyntax
	DiagnosticSemantic
	DiagnosticRuntime
)

func (dc DiagnosticCategory) String() string {
	switch dc {
	case DiagnosticLexical:
		return "lexical"
	case DiagnosticSyntax:
		return "syntax"
	case DiagnosticSemantic:
		return "semantic"
	case DiagnosticRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Severity folds the category onto the three user-facing classes:
// Syntax (lexical and grammar errors), Semantic and Runtime.
func (dc DiagnosticCategory) Severity() string {
	switch dc {
	case DiagnosticLexical, DiagnosticSyntax:
		return "Syntax"
	case DiagnosticSemantic:
		return "Semantic"
	case DiagnosticRuntime:
		return "Runtime"
	default:
		return "Unknown"
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Code        string
	Message     string
	Source      string // component that reported it: lexer, parser, interpreter
	Suggestions []string
	RelatedInfo []RelatedInformation
	Span        position.Span
	Level       DiagnosticLevel
	Category    DiagnosticCategory
}

// RelatedInformation provides additional context for a diagnostic.
type RelatedInformation struct {
	Message string
	Span    position.Span
}

// Line returns the 1-based line the diagnostic starts on.
func (d *Diagnostic) Line() int { return d.Span.Start.Line }

// Column returns the 1-based column the diagnostic starts on.
func (d *Diagnostic) Column() int { return d.Span.Start.Column }

// Error implements the error interface so a diagnostic can travel as one.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s %s[%s]: %s",
		d.Span.Start, d.Category, d.Level, d.Code, d.Message)
}

// IsError reports whether the diagnostic is error-level.
func (d *Diagnostic) IsError() bool { return d.Level == DiagnosticError }

// DiagnosticBuilder helps construct diagnostic messages with fluent API.
type DiagnosticBuilder struct {
	diagnostic *Diagnostic
}

// NewDiagnostic creates a new diagnostic builder.
func NewDiagnostic() *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diagnostic: &Diagnostic{
			Suggestions: make([]string, 0),
			RelatedInfo: make([]RelatedInformation, 0),
		},
	}
}

func (db *DiagnosticBuilder) Error() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticError

	return db
}

func (db *DiagnosticBuilder) Warning() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticWarning

	return db
}

func (db *DiagnosticBuilder) Info() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticInfo

	return db
}

func (db *DiagnosticBuilder) Lexical() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticLexical

	return db
}

func (db *DiagnosticBuilder) Syntax() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticSyntax

	return db
}

func (db *DiagnosticBuilder) Semantic() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticSemantic

	return db
}

func (db *DiagnosticBuilder) Runtime() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticRuntime

	return db
}

func (db *DiagnosticBuilder) Category(category DiagnosticCategory) *DiagnosticBuilder {
	db.diagnostic.Category = category

	return db
}

func (db *DiagnosticBuilder) Code(code string) *DiagnosticBuilder {
	db.diagnostic.Code = code

	return db
}

func (db *DiagnosticBuilder) Message(message string) *DiagnosticBuilder {
	db.diagnostic.Message = message

	return db
}

func (db *DiagnosticBuilder) Messagef(format string, args ...interface{}) *DiagnosticBuilder {
	db.diagnostic.Message = fmt.Sprintf(format, args...)

	return db
}

func (db *DiagnosticBuilder) Source(source string) *DiagnosticBuilder {
	db.diagnostic.Source = source

	return db
}

func (db *DiagnosticBuilder) Span(span position.Span) *DiagnosticBuilder {
	db.diagnostic.Span = span

	return db
}

// At sets a one-character span starting at pos.
func (db *DiagnosticBuilder) At(pos position.Position) *DiagnosticBuilder {
	end := pos
	end.Column++
	end.Offset++
	db.diagnostic.Span = position.Between(pos, end)

	return db
}

func (db *DiagnosticBuilder) Suggest(suggestion string) *DiagnosticBuilder {
	db.diagnostic.Suggestions = append(db.diagnostic.Suggestions, suggestion)

	return db
}

func (db *DiagnosticBuilder) Related(span position.Span, message string) *DiagnosticBuilder {
	related := RelatedInformation{
		Span:    span,
		Message: message,
	}
	db.diagnostic.RelatedInfo = append(db.diagnostic.RelatedInfo, related)

	return db
}

func (db *DiagnosticBuilder) Build() *Diagnostic {
	return db.diagnostic
}
