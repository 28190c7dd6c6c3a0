package diagnostic

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vlang-lab/vlang/internal/position"
)

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorBlue  = "\033[1;34m"
	colorGreen = "\033[1;32m"
)

// colorizeLevel adds color codes for terminal display
func colorizeLevel(level DiagnosticLevel) string {
	switch level {
	case DiagnosticError:
		return "\033[1;31m" // Bold red
	case DiagnosticWarning:
		return "\033[1;33m" // Bold yellow
	case DiagnosticInfo:
		return "\033[1;36m" // Bold cyan
	default:
		return ""
	}
}

// Format renders one diagnostic with its source excerpt. src may be nil,
// in which case only the header and notes are written.
//
//	main.vl:3:5: semantic error[UNDEFINED_NAME]: undefined symbol 'y'
//	   3 | x = y + 1;
//	     |     ^
func Format(d *Diagnostic, src *position.SourceFile, color bool) string {
	var sb strings.Builder

	paint := func(code, text string) {
		if color {
			sb.WriteString(code)
			sb.WriteString(text)
			sb.WriteString(colorReset)
			return
		}
		sb.WriteString(text)
	}

	if d.Span.Start.IsValid() {
		paint(colorBold, d.Span.Start.String()+":")
		sb.WriteByte(' ')
	}
	paint(colorizeLevel(d.Level), fmt.Sprintf("%s %s[%s]:", d.Category, d.Level, d.Code))
	sb.WriteByte(' ')
	sb.WriteString(d.Message)
	sb.WriteByte('\n')

	if snippet := src.Snippet(d.Span); snippet != "" {
		if color {
			paint(colorBlue, snippet)
		} else {
			sb.WriteString(snippet)
		}
	}

	for _, s := range d.Suggestions {
		paint(colorGreen, "   help: ")
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	for _, r := range d.RelatedInfo {
		paint(colorBlue, "   note: ")
		if r.Span.Start.IsValid() {
			sb.WriteString(r.Span.Start.String() + ": ")
		}
		sb.WriteString(r.Message)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Render writes every diagnostic followed by a summary line.
func Render(w io.Writer, diags []*Diagnostic, src *position.SourceFile, color bool) error {
	for _, d := range diags {
		if _, err := io.WriteString(w, Format(d, src, color)); err != nil {
			return err
		}
	}
	if len(diags) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, Summary(diags))
	return err
}

// Summary formats a count of errors and warnings.
func Summary(diags []*Diagnostic) string {
	errorCount, warningCount := 0, 0
	for _, d := range diags {
		switch d.Level {
		case DiagnosticError:
			errorCount++
		case DiagnosticWarning:
			warningCount++
		}
	}

	if errorCount == 0 && warningCount == 0 {
		return "No issues found."
	}
	return fmt.Sprintf("Found %d error(s) and %d warning(s).", errorCount, warningCount)
}

// Record is the flat, serializable form of a diagnostic used by the error
// table of the HTTP endpoint and by --format json|yaml output.
type Record struct {
	Line      int    `json:"line" yaml:"line"`
	Column    int    `json:"column" yaml:"column"`
	EndLine   int    `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty" yaml:"end_column,omitempty"`
	File      string `json:"file,omitempty" yaml:"file,omitempty"`
	Message   string `json:"message" yaml:"message"`
	Type      string `json:"type" yaml:"type"`
	Severity  string `json:"severity" yaml:"severity"`
	Level     string `json:"level" yaml:"level"`
	Code      string `json:"code" yaml:"code"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
}

// ToRecord flattens a diagnostic.
func (d *Diagnostic) ToRecord() Record {
	return Record{
		Line:      d.Span.Start.Line,
		Column:    d.Span.Start.Column,
		EndLine:   d.Span.End.Line,
		EndColumn: d.Span.End.Column,
		File:      d.Span.Start.Filename,
		Message:   d.Message,
		Type:      d.Category.String(),
		Severity:  d.Category.Severity(),
		Level:     d.Level.String(),
		Code:      d.Code,
		Source:    d.Source,
	}
}

// MarshalJSON encodes the diagnostic as its Record.
func (d *Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToRecord())
}

// Records flattens a list of diagnostics.
func Records(diags []*Diagnostic) []Record {
	out := make([]Record, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.ToRecord())
	}
	return out
}
