package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vlang-lab/vlang/internal/position"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err      *StandardError
		category ErrorCategory
		code     string
		message  string
	}{
		{IndexOutOfBounds(5, 3), CategoryBounds, CodeIndexOutOfBounds, "index 5 out of bounds for length 3"},
		{DivisionByZero("/"), CategoryArithmetic, CodeDivisionByZero, "division by zero in '/'"},
		{NilDereference("field access"), CategoryMemory, CodeNilDereference, "nil dereference in field access"},
		{UndefinedName("x"), CategorySemantic, CodeUndefinedName, "undefined symbol 'x'"},
		{ImmutableAssign("x"), CategorySemantic, CodeImmutableAssign, "cannot assign to immutable variable 'x'"},
		{TypeMismatch("assignment to x", "int", "string"), CategoryType, CodeTypeMismatch, "assignment to x: expected int, got string"},
		{InvalidOperation("-", "string", "string"), CategoryType, CodeInvalidOperation, "operator '-' is not defined for string and string"},
		{InvalidOperation("!", "int", ""), CategoryType, CodeInvalidOperation, "operator '!' is not defined for int"},
		{ArityMismatch("add", 2, 1), CategorySemantic, CodeArity, "add expects 2 argument(s), got 1"},
		{UnknownField("P", "z"), CategorySemantic, CodeUnknownField, "struct 'P' has no field 'z'"},
		{MissingField("P", "y"), CategorySemantic, CodeMissingField, "missing field 'y' in P literal"},
		{InvalidTransfer("break", "loop"), CategorySemantic, CodeInvalidTransfer, "break outside of a loop"},
		{CallDepthExceeded(10), CategorySystem, CodeCallDepthExceeded, "maximum call depth of 10 exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Category != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, tt.err.Category)
			}
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, tt.err.Message)
			}
			if !strings.HasPrefix(tt.err.Error(), "["+string(tt.category)+":"+tt.code+"]") {
				t.Errorf("unexpected Error() format %q", tt.err.Error())
			}
		})
	}
}

func TestCallerRecorded(t *testing.T) {
	err := UndefinedName("x")
	if !strings.HasSuffix(err.Caller, "TestCallerRecorded") {
		t.Errorf("expected caller to be the test function, got %s", err.Caller)
	}
}

func TestRuntimeCategories(t *testing.T) {
	if !IndexOutOfBounds(1, 0).Category.IsRuntime() || !DivisionByZero("%").Category.IsRuntime() {
		t.Error("expected bounds and arithmetic errors to be runtime errors")
	}
	if UndefinedName("x").Category.IsRuntime() || TypeMismatch("x", "int", "bool").Category.IsRuntime() {
		t.Error("expected semantic and type errors not to be runtime errors")
	}
}

func TestCodeMatching(t *testing.T) {
	wrapped := fmt.Errorf("evaluating: %w", ImmutableAssign("x"))
	if !HasCode(wrapped, CodeImmutableAssign) {
		t.Fatal("expected wrapped error to carry its code")
	}
	if HasCode(wrapped, CodeUndefinedName) {
		t.Fatal("unexpected code match")
	}
	se, ok := As(wrapped)
	if !ok || se.Context["name"] != "x" {
		t.Fatalf("expected context to survive wrapping, got %#v", se)
	}
}

func TestAtKeepsFirstSpan(t *testing.T) {
	first := position.Between(position.Position{Line: 1, Column: 1}, position.Position{Line: 1, Column: 4})
	second := position.Between(position.Position{Line: 2, Column: 1}, position.Position{Line: 2, Column: 4})
	err := DivisionByZero("/").At(first).At(second)
	if err.Span != first {
		t.Errorf("expected the innermost span to win, got %s", err.Span)
	}
}

func TestDuplicateNameMentionsPrevious(t *testing.T) {
	err := DuplicateName("x", position.Position{Line: 3, Column: 5})
	if !strings.Contains(err.Message, "3:5") {
		t.Errorf("expected previous position in %q", err.Message)
	}
	if err := DuplicateName("x", position.Position{}); strings.Contains(err.Message, " at ") {
		t.Errorf("unexpected position in %q", err.Message)
	}
}
