package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestREPL() (*REPL, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(Options{Out: &out, Err: &errOut}), &out, &errOut
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"print(1);", false},
		{"fn f() {", true},
		{"fn f() {\n  return 1;", true},
		{"fn f() int {\n  return 1;\n}", false},
		{"print(1,", true},
		{"v = []int{1,", true},
		{"}", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Incomplete(tt.src); got != tt.want {
			t.Errorf("Incomplete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestStatePersists(t *testing.T) {
	r, out, errOut := newTestREPL()

	inputs := []string{
		"mut n int = 1;",
		"fn double(x int) int { return x * 2; }",
		"n = double(n + 1);",
		"print(n);",
	}
	for _, in := range inputs {
		if r.Handle(in) {
			t.Fatalf("%q should not end the session", in)
		}
	}

	if out.String() != "4\n" {
		t.Errorf("expected 4, got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected errors: %s", errOut.String())
	}
}

func TestErrorsDoNotEndSession(t *testing.T) {
	r, out, errOut := newTestREPL()

	r.Handle("x int = 1;")
	r.Handle("x = 2;")
	if !strings.Contains(errOut.String(), "IMMUTABLE_ASSIGN") {
		t.Errorf("expected an immutable assignment error, got %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "x = 2;") {
		t.Errorf("expected the source line in the report, got %q", errOut.String())
	}

	r.Handle("print(x);")
	if out.String() != "1\n" {
		t.Errorf("expected the session to continue, got %q", out.String())
	}
}

func TestCommands(t *testing.T) {
	r, out, errOut := newTestREPL()

	r.Handle("struct P { int x; }")
	r.Handle("fn id(p P) P { return p; }")
	r.Handle("mut p = P{x: 3};")
	out.Reset()

	r.Handle(":vars")
	vars := out.String()
	for _, want := range []string{"struct P", "id fn(P) P", "mut p P = P{x: 3}"} {
		if !strings.Contains(vars, want) {
			t.Errorf(":vars missing %q in:\n%s", want, vars)
		}
	}

	out.Reset()
	r.Handle(":reset")
	out.Reset()
	r.Handle(":vars")
	if out.String() != "No variables defined\n" {
		t.Errorf("expected an empty environment after :reset, got %q", out.String())
	}

	out.Reset()
	r.Handle(":tokens x = 1;")
	if lines := strings.Split(strings.TrimSpace(out.String()), "\n"); len(lines) != 4 {
		t.Errorf("expected 4 tokens, got:\n%s", out.String())
	}

	out.Reset()
	r.Handle(":ast print(1);")
	if !strings.Contains(out.String(), `"node": "Program"`) {
		t.Errorf("expected an AST dump, got %s", out.String())
	}

	errOut.Reset()
	r.Handle(":frobnicate")
	if !strings.Contains(errOut.String(), "Unknown command") {
		t.Errorf("expected unknown command message, got %q", errOut.String())
	}

	if !r.Handle(":quit") {
		t.Error(":quit should end the session")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "lib.vl")
	bad := filepath.Join(dir, "bad.vl")
	os.WriteFile(good, []byte("fn sq(x int) int { return x * x; }\n"), 0644)
	os.WriteFile(bad, []byte("print(1 / 0);\n"), 0644)

	r, out, errOut := newTestREPL()
	r.Handle(":load " + good)
	r.Handle("print(sq(5));")
	if !strings.Contains(out.String(), "Loaded file: "+good) || !strings.HasSuffix(out.String(), "25\n") {
		t.Errorf("unexpected output %q", out.String())
	}

	r.Handle(":load " + bad)
	if !strings.Contains(errOut.String(), "DIVISION_BY_ZERO") || !strings.Contains(errOut.String(), "Error loading file") {
		t.Errorf("unexpected errors %q", errOut.String())
	}

	errOut.Reset()
	r.Handle(":load")
	if !strings.Contains(errOut.String(), "Usage") {
		t.Errorf("expected usage, got %q", errOut.String())
	}
}

func TestHistory(t *testing.T) {
	var out bytes.Buffer
	r := New(Options{Out: &out, Err: &out, MaxHistory: 2})
	r.Handle("mut a = 1;")
	r.Handle("mut b = 2;")
	r.Handle("mut c = 3;")
	out.Reset()
	r.Handle(":history")
	if out.String() != "  1: mut b = 2;\n  2: mut c = 3;\n" {
		t.Errorf("unexpected history %q", out.String())
	}
}
