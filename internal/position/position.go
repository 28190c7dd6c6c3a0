// Package position provides source position tracking shared by the lexer,
// the parser and the diagnostics renderer.
package position

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position is a point in a source file. Line and Column are 1-based and
// Column counts bytes, which is what the lexer advances by.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

// IsValid reports whether p was produced by the lexer.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String formats p as file:line:col, or line:col for unnamed input.
func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
}

// Span is the half-open range [Start, End) covered by a token or node.
type Span struct {
	Start Position
	End   Position
}

// Between builds the span from start to end.
func Between(start, end Position) Span {
	return Span{Start: start, End: end}
}

// IsValid reports whether both ends are valid and in order.
func (s Span) IsValid() bool {
	if !s.Start.IsValid() || !s.End.IsValid() {
		return false
	}
	return s.Start.Filename == s.End.Filename && s.Start.Offset <= s.End.Offset
}

func (s Span) String() string {
	var prefix string
	if s.Start.Filename != "" {
		prefix = filepath.Base(s.Start.Filename) + ":"
	}
	if s.End.Line != s.Start.Line {
		return fmt.Sprintf("%s%d:%d-%d:%d", prefix, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
	}
	return fmt.Sprintf("%s%d:%d-%d", prefix, s.Start.Line, s.Start.Column, s.End.Column)
}

// SourceFile keeps a script's text split into lines for diagnostics.
type SourceFile struct {
	Filename string
	Content  string
	Lines    []string
}

// NewSourceFile splits content into lines.
func NewSourceFile(filename, content string) *SourceFile {
	return &SourceFile{
		Filename: filename,
		Content:  content,
		Lines:    strings.Split(content, "\n"),
	}
}

// GetLine returns line n (1-based) without its line ending, or "" when
// n is out of range.
func (sf *SourceFile) GetLine(n int) string {
	if n < 1 || n > len(sf.Lines) {
		return ""
	}
	return strings.TrimSuffix(sf.Lines[n-1], "\r")
}

// Text returns the source covered by span, or "" when span does not fit.
func (sf *SourceFile) Text(span Span) string {
	if !span.IsValid() || span.End.Offset > len(sf.Content) {
		return ""
	}
	return sf.Content[span.Start.Offset:span.End.Offset]
}
