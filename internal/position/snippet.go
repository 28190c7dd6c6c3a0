package position

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Snippet renders the lines covered by span with a caret underline, in the
// compact form used by diagnostics:
//
//	   3 | x = 10;
//	     | ^
func (sf *SourceFile) Snippet(span Span) string {
	if sf == nil || span.Start.Line < 1 || span.Start.Line > len(sf.Lines) {
		return ""
	}

	endLine := span.End.Line
	if endLine < span.Start.Line || endLine > len(sf.Lines) {
		endLine = span.Start.Line
	}

	var b strings.Builder
	for lineNum := span.Start.Line; lineNum <= endLine; lineNum++ {
		line := sf.GetLine(lineNum)
		fmt.Fprintf(&b, "%4d | %s\n", lineNum, line)

		startCol, endCol := 1, utf8.RuneCountInString(line)+1
		if lineNum == span.Start.Line {
			startCol = span.Start.Column
		}
		if lineNum == endLine && span.End.Line == endLine {
			endCol = span.End.Column
		}
		b.WriteString("     | ")
		writeUnderline(&b, line, startCol, endCol)
		b.WriteString("\n")
	}

	return b.String()
}

// writeUnderline pads to startCol (keeping tabs) and writes at least one caret.
func writeUnderline(b *strings.Builder, line string, startCol, endCol int) {
	runes := []rune(line)
	for i := 1; i < startCol; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}

	n := endCol - startCol
	if limit := len(runes) - startCol + 1; n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	b.WriteString(strings.Repeat("^", n))
}
