package position

import (
	"strings"
	"testing"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{"no filename", Position{Line: 3, Column: 7, Offset: 20}, "3:7"},
		{"with filename", Position{Filename: "/tmp/demo.vl", Line: 1, Column: 2, Offset: 1}, "demo.vl:1:2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSpan(t *testing.T) {
	start := Position{Filename: "a.vl", Line: 1, Column: 1, Offset: 0}
	tests := []struct {
		name  string
		span  Span
		valid bool
		str   string
	}{
		{"one line", Between(start, Position{Filename: "a.vl", Line: 1, Column: 4, Offset: 3}), true, "a.vl:1:1-4"},
		{"two lines", Between(start, Position{Filename: "a.vl", Line: 2, Column: 2, Offset: 9}), true, "a.vl:1:1-2:2"},
		{"reversed", Between(Position{Filename: "a.vl", Line: 1, Column: 4, Offset: 3}, start), false, "a.vl:1:4-1"},
		{"zero", Span{}, false, "0:0-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
			if got := tt.span.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestSourceFile(t *testing.T) {
	sf := NewSourceFile("main.vl", "mut x = 1;\r\nx = 2;\n")

	if got := sf.GetLine(1); got != "mut x = 1;" {
		t.Errorf("unexpected line %q", got)
	}
	if got := sf.GetLine(2); got != "x = 2;" {
		t.Errorf("unexpected line %q", got)
	}
	if got := sf.GetLine(42); got != "" {
		t.Errorf("expected empty line, got %q", got)
	}

	span := Between(
		Position{Filename: "main.vl", Line: 1, Column: 5, Offset: 4},
		Position{Filename: "main.vl", Line: 1, Column: 6, Offset: 5},
	)
	if got := sf.Text(span); got != "x" {
		t.Errorf("expected span text x, got %q", got)
	}
	span.End.Offset = 100
	if got := sf.Text(span); got != "" {
		t.Errorf("expected no text past the end, got %q", got)
	}
}

func TestSnippet(t *testing.T) {
	sf := NewSourceFile("main.vl", "x int = 5;\nx = 10;")
	span := Span{
		Start: Position{Filename: "main.vl", Line: 2, Column: 1, Offset: 11},
		End:   Position{Filename: "main.vl", Line: 2, Column: 7, Offset: 17},
	}

	out := sf.Snippet(span)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "   2 | x = 10;" {
		t.Errorf("unexpected source line %q", lines[0])
	}
	if lines[1] != "     | ^^^^^^" {
		t.Errorf("unexpected underline %q", lines[1])
	}

	if got := sf.Snippet(Span{}); got != "" {
		t.Errorf("expected empty snippet for invalid span, got %q", got)
	}
}
