package interpreter

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vlang-lab/vlang/internal/diagnostic"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
)

func run(t *testing.T, src string) *Result {
	t.Helper()
	return Run(src, "test.vl")
}

func expectOutput(t *testing.T, src, want string) {
	t.Helper()
	result := run(t, src)
	if len(result.Diagnostics) > 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", src, result.Diagnostics)
	}
	if result.Output != want {
		t.Errorf("expected output %q, got %q", want, result.Output)
	}
}

func expectError(t *testing.T, src, code string) *diagnostic.Diagnostic {
	t.Helper()
	result := run(t, src)
	if len(result.Diagnostics) == 0 {
		t.Fatalf("expected %s for %q, got output %q", code, src, result.Output)
	}
	d := result.Diagnostics[0]
	if d.Code != code {
		t.Fatalf("expected %s, got %s: %s", code, d.Code, d.Message)
	}
	return d
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"7 / 2", "3"},
		{"7 % 3", "1"},
		{"7.0 / 2", "3.5000"},
		{"1 + 0.5", "1.5000"},
		{"-3 + 1", "-2"},
		{"\"ab\" + \"cd\"", "abcd"},
		{"1 < 2 && 2 <= 2", "true"},
		{"\"a\" < \"b\"", "true"},
		{"1 == 1.0", "true"},
		{"!true || false", "false"},
		{"3 != 4", "true"},
		{"9007199254740993 > 9007199254740992", "true"},
		{"9007199254740993 <= 9007199254740992", "false"},
		{"-9007199254740993 < -9007199254740992", "true"},
		{"1 < 1.5", "true"},
		{"9223372036854775806 + 1", "9223372036854775807"},
		{"-9223372036854775807 - 1", "-9223372036854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expectOutput(t, "print("+tt.expr+");", tt.want)
		})
	}
}

func TestShortCircuit(t *testing.T) {
	expectOutput(t, "print(false && (1/0 == 0));", "false")
	expectOutput(t, "print(true || (1/0 == 0));", "true")
	expectError(t, "print(true && (1/0 == 0));", vlerrors.CodeDivisionByZero)
}

func TestOperatorErrors(t *testing.T) {
	tests := []struct {
		src  string
		code string
	}{
		{"print(1 / 0);", vlerrors.CodeDivisionByZero},
		{"print(1.5 % 0);", vlerrors.CodeDivisionByZero},
		{"print(1 + \"a\");", vlerrors.CodeInvalidOperation},
		{"print(\"a\" - \"b\");", vlerrors.CodeInvalidOperation},
		{"print(1 < \"a\");", vlerrors.CodeInvalidOperation},
		{"print(1 == \"a\");", vlerrors.CodeInvalidOperation},
		{"print(-true);", vlerrors.CodeInvalidOperation},
		{"print(1 && true);", vlerrors.CodeInvalidOperation},
		{"print(9223372036854775807 + 1);", vlerrors.CodeIntegerOverflow},
		{"print(-9223372036854775807 - 2);", vlerrors.CodeIntegerOverflow},
		{"print(4611686018427387904 * 2);", vlerrors.CodeIntegerOverflow},
		{"m = -9223372036854775807 - 1; print(m / -1);", vlerrors.CodeIntegerOverflow},
		{"m = -9223372036854775807 - 1; print(-m);", vlerrors.CodeIntegerOverflow},
		{"mut n = 9223372036854775807; n++;", vlerrors.CodeIntegerOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectError(t, tt.src, tt.code)
		})
	}
}

func TestMutability(t *testing.T) {
	expectOutput(t, "mut x int = 5; x = 10; print(x);", "10")

	d := expectError(t, "x int = 5;\nx = 10;", vlerrors.CodeImmutableAssign)
	if d.Line() != 2 || d.Category != diagnostic.DiagnosticSemantic {
		t.Errorf("expected semantic error on line 2, got %s", d)
	}

	expectError(t, "x int = 5; x++;", vlerrors.CodeImmutableAssign)
	expectError(t, "struct P { int x; }\np P = P{x: 1};\np.x = 2;", vlerrors.CodeImmutableAssign)
}

func TestDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"widening", "mut f float = 3; print(f);", "3.0000"},
		{"defaults", "mut i int; mut s string; mut b bool; mut v []int; print(i, s, b, v);", "0  false [ ]"},
		{"inferred", "mut x = 1.5; print(TypeOf(x));", "float"},
		{"vector", "v = []int{1, 2, 3}; print(v);", "[ 1 2 3 ]"},
		{"empty typed vector", "v = []float{}; print(TypeOf(v), len(v));", "[]float 0"},
		{"matrix", "m = [][]int{{1, 2}, {3, 4}}; print(m);", "[ [ 1 2 ] [ 3 4 ] ]"},
		{"vector widening", "v = []float{1, 2.5}; print(v);", "[ 1.0000 2.5000 ]"},
		{"shadowing", "x int = 1; { x string = \"in\"; print(x); } print(x);", "in1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectOutput(t, tt.src, tt.want)
		})
	}
}

func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"duplicate", "x int = 1; x int = 2;", vlerrors.CodeDuplicateName},
		{"type mismatch", "x int = \"a\";", vlerrors.CodeTypeMismatch},
		{"no narrowing", "x int = 1.5;", vlerrors.CodeTypeMismatch},
		{"unknown type", "x Shape = nil;", vlerrors.CodeUnknownType},
		{"infer nil", "mut x = nil;", vlerrors.CodeTypeMismatch},
		{"infer empty", "mut x = {};", vlerrors.CodeTypeMismatch},
		{"mixed vector", "mut v = {1, \"a\"};", vlerrors.CodeTypeMismatch},
		{"undefined", "print(y);", vlerrors.CodeUndefinedName},
		{"assign undefined", "y = 1;", vlerrors.CodeUndefinedName},
		{"assign wrong type", "mut x int = 1; x = \"s\";", vlerrors.CodeTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.src, tt.code)
		})
	}
}

func TestIndexing(t *testing.T) {
	expectOutput(t, "v = []int{1, 2, 3}; print(v[1]);", "2")
	expectOutput(t, "print({1, 2, 3}[1]);", "2")
	expectOutput(t, "m = [][]int{{1, 2}, {3, 4}}; m[1][0] = 9; print(m[1][0], m[0]);", "9 [ 1 2 ]")
	expectOutput(t, "v = []int{1, 2}; v[0] += 5; print(v);", "[ 6 2 ]")

	d := expectError(t, "v = []int{1, 2, 3};\nprint(v[5]);", vlerrors.CodeIndexOutOfBounds)
	if d.Category != diagnostic.DiagnosticRuntime || d.Line() != 2 || d.Column() != 9 {
		t.Errorf("expected runtime error at 2:9, got %s", d)
	}
	expectError(t, "v = []int{1}; print(v[-1]);", vlerrors.CodeIndexOutOfBounds)
	expectError(t, "v = []int{1}; print(v[\"a\"]);", vlerrors.CodeTypeMismatch)
	expectError(t, "x int = 1; print(x[0]);", vlerrors.CodeInvalidOperation)
	expectError(t, "v = []int{1}; v[0] = \"s\";", vlerrors.CodeTypeMismatch)
}

func TestCopySemantics(t *testing.T) {
	expectOutput(t, `
a = []int{1, 2};
mut b = a;
b[0] = 9;
print(a, b);
`, "[ 1 2 ] [ 9 2 ]")

	expectOutput(t, `
struct P { int x; }
mut p = P{x: 1};
mut q = p;
q.x = 5;
print(p.x, q.x);
`, "1 5")

	expectOutput(t, `
fn bump(v []int) { v[0] = 100; }
a = []int{1};
bump(a);
print(a);
`, "[ 1 ]")
}

func TestForEach(t *testing.T) {
	expectOutput(t, `
v = []int{10, 20, 30};
for i, x in v {
	x = x + 1;
	print(i, x, "");
}
print(v);
`, "0 11 1 21 2 31 [ 10 20 30 ]")

	expectOutput(t, "for i, n in 1...3 { print(n); }", "123")
	expectOutput(t, "for _, c in \"héj\" { print(c, \"\"); }", "h é j ")
	expectOutput(t, "m = [][]int{{1}, {2, 3}}; for r, row in m { print(r, len(row), \"\"); }", "0 1 1 2 ")
	expectOutput(t, "for i, n in 3...1 { print(n); } print(\"done\");", "done")

	// fresh scope per iteration
	expectOutput(t, "for i, v in {1, 2} { mut seen int = v; print(seen); }", "12")

	expectError(t, "for i, v in 5 { }", vlerrors.CodeTypeMismatch)
	expectError(t, "for i, v in 1...\"a\" { }", vlerrors.CodeTypeMismatch)
}

func TestLoops(t *testing.T) {
	expectOutput(t, "mut i = 0; while i < 3 { print(i); i++; }", "012")
	expectOutput(t, "mut i = 0; for i < 3 { i += 1; } print(i);", "3")
	expectOutput(t, "for i = 0; i < 5; i++ { if i == 1 { continue; } if i == 3 { break; } print(i); }", "02")
	expectOutput(t, "mut i int = 10; for i = 0; i < 2; i++ { } print(i);", "2")

	// the loop variable is scoped to the loop
	expectError(t, "for i = 0; i < 2; i++ { } print(i);", vlerrors.CodeUndefinedName)
	expectError(t, "while 1 { }", vlerrors.CodeTypeMismatch)
	expectError(t, "if \"yes\" { }", vlerrors.CodeTypeMismatch)
}

func TestIfChain(t *testing.T) {
	src := `
fn grade(n int) string {
	if n >= 90 {
		return "A";
	} else if n >= 80 {
		return "B";
	} else {
		return "C";
	}
}
print(grade(95), grade(85), grade(10));
`
	expectOutput(t, src, "A B C")
}

func TestSwitch(t *testing.T) {
	src := `
fn name(n int) string {
	mut out string = "?";
	switch n {
	case 1:
		out = "one";
	case 2:
		out = "two";
		break;
		out = "unreachable";
	default:
		out = "many";
	}
	return out;
}
print(name(1), name(2), name(7));
`
	expectOutput(t, src, "one two many")

	// cases compare by type as well as value
	expectOutput(t, "switch 1 { case 1.0: print(\"float\"); default: print(\"int\"); }", "int")

	// break inside a switch inside a loop leaves only the switch
	expectOutput(t, "for i, v in {1, 2} { switch v { case 1: break; } print(v); }", "12")
}

func TestFunctions(t *testing.T) {
	expectOutput(t, `
fn fib(n int) int {
	if n < 2 { return n; }
	return fib(n - 1) + fib(n - 2);
}
print(fib(10));
`, "55")

	expectOutput(t, "fn half(x float) float { return x / 2; } print(half(3));", "1.5000")
	expectOutput(t, "fn sub(a int, b int) int { return a - b; } print(sub(b: 1, a: 5));", "4")
	expectOutput(t, "fn later() int { return 1; } x int = later(); print(x);", "1")
	expectOutput(t, "g int = 3; fn get() int { return g; } print(get());", "3")
	expectOutput(t, "fn twice(v []int) []int { return append(v, v[0]); } v = []int{4}; print(v.twice());", "[ 4 4 ]")
}

func TestFunctionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"arity", "fn f(a int) { } f(1, 2);", vlerrors.CodeArity},
		{"argument type", "fn f(a int) { } f(\"s\");", vlerrors.CodeTypeMismatch},
		{"unknown named", "fn f(a int) { } f(b: 1);", vlerrors.CodeInvalidArgument},
		{"return type", "fn f() int { return \"s\"; } f();", vlerrors.CodeTypeMismatch},
		{"missing return path", "fn f(b bool) int { if b { return 1; } } print(f(false));", vlerrors.CodeMissingReturn},
		{"no return at all", "fn f() int { print(1); }", vlerrors.CodeMissingReturn},
		{"void used as value", "fn f() { } mut x = f();", vlerrors.CodeTypeMismatch},
		{"caller locals invisible", "fn f() int { return local; } { local int = 1; print(f()); }", vlerrors.CodeUndefinedName},
		{"not callable", "x int = 1; x();", vlerrors.CodeNotCallable},
		{"undefined function", "nope();", vlerrors.CodeUndefinedName},
		{"duplicate function", "fn f() { } fn f() { }", vlerrors.CodeDuplicateName},
		{"builtin clash", "fn len(x int) int { return x; }", vlerrors.CodeDuplicateName},
		{"function as value", "fn f() { } mut x = f;", vlerrors.CodeInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.src, tt.code)
		})
	}
}

func TestCallDepth(t *testing.T) {
	result := Run("fn down(n int) int { return down(n + 1); } down(0);", "test.vl", WithMaxDepth(50))
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != vlerrors.CodeCallDepthExceeded {
		t.Fatalf("expected call depth error, got %v", result.Diagnostics)
	}
}

func TestTransferMisuse(t *testing.T) {
	tests := []struct {
		src  string
		line int
	}{
		{"break;", 1},
		{"x int = 1;\ncontinue;", 2},
		{"return 1;", 1},
		{"fn f() {\n  break;\n}", 2},
		{"switch 1 { case 1: continue; }", 1},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			d := expectError(t, tt.src, vlerrors.CodeInvalidTransfer)
			if d.Line() != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, d.Line())
			}
		})
	}

	// nothing runs when validation fails
	result := run(t, "print(1);\nbreak;")
	if result.Output != "" {
		t.Errorf("expected no output, got %q", result.Output)
	}
}

func TestStructs(t *testing.T) {
	expectOutput(t, "struct P { int x; int y; }\nprint(P{x: 1, y: 2}.x);", "1")

	expectOutput(t, `
struct Point { float x; float y; }
struct Line { Point a; Point b; string name; }
mut l = Line{a: Point{x: 0, y: 0}, b: Point{x: 1, y: 2}, name: "diag"};
l.b.y = 5;
print(l.b.y, l.name);
println("");
print(l);
`, "5.0000 diag\nLine{a: Point{x: 0.0000, y: 0.0000}, b: Point{x: 1.0000, y: 5.0000}, name: \"diag\"}")

	expectOutput(t, `
struct Node { int v; Node next; }
mut n = Node{v: 1, next: nil};
print(n.next == nil);
n.next = Node{v: 2, next: nil};
print(n.next.v);
`, "true2")

	expectOutput(t, `
struct P { int x; }
ps = []P{P{x: 1}, P{x: 2}};
ps[1].x = 7;
print(ps[1].x, len(ps));
`, "7 2")
}

func TestStructErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"missing field", "struct P { int x; int y; }\nmut p = P{x: 1};", vlerrors.CodeMissingField},
		{"unknown field", "struct P { int x; }\nmut p = P{x: 1, z: 2};", vlerrors.CodeUnknownField},
		{"duplicate field", "struct P { int x; }\nmut p = P{x: 1, x: 2};", vlerrors.CodeDuplicateField},
		{"field type", "struct P { int x; }\nmut p = P{x: \"s\"};", vlerrors.CodeTypeMismatch},
		{"unknown struct", "mut p = Q{x: 1};", vlerrors.CodeUnknownType},
		{"nil dereference", "struct N { int v; N next; }\nmut n = N{v: 1, next: nil};\nprint(n.next.v);", vlerrors.CodeNilDereference},
		{"read unknown field", "struct P { int x; }\nmut p = P{x: 1};\nprint(p.y);", vlerrors.CodeUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := expectError(t, tt.src, tt.code)
			if tt.code == vlerrors.CodeNilDereference && d.Category != diagnostic.DiagnosticRuntime {
				t.Errorf("nil dereference should be a runtime error, got %s", d.Category)
			}
		})
	}
}

func TestRepeatingBuilder(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"vector", "mut v []int = []int(count: 3, value: 7); print(v);", "[ 7 7 7 ]"},
		{"names in any order", "mut v []string = []string(value: \"a\", count: 2); print(v);", "[ a a ]"},
		{"positional names", "mut v []int = []int(n: 2, x: 1); print(v);", "[ 1 1 ]"},
		{"widening", "mut v []float = []float(size: 2, fill: 1); print(v);", "[ 1.0000 1.0000 ]"},
		{"matrix", "mut m [][]int = [][]int(rows: 2, value: {0, 1}); m[0][0] = 5; print(m);", "[ [ 5 1 ] [ 0 1 ] ]"},
		{"empty", "mut v []int = []int(count: 0, value: 1); print(len(v));", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectOutput(t, tt.src, tt.want)
		})
	}

	expectError(t, "mut v []int = []int(count: -1, value: 0);", vlerrors.CodeInvalidArgument)
	expectError(t, "mut v []int = []int(count: \"3\", value: 0);", vlerrors.CodeTypeMismatch)
	expectError(t, "mut v []int = []int(count: 3, value: \"x\");", vlerrors.CodeTypeMismatch)
}

func TestIncDecAndCompound(t *testing.T) {
	expectOutput(t, "mut i = 1; mut j = i++; print(i, j);", "2 1")
	expectOutput(t, "mut f = 1.5; f--; print(f);", "0.5000")
	expectOutput(t, "mut s = \"a\"; s += \"b\"; print(s);", "ab")
	expectOutput(t, "mut n float = 1; n += 1; n -= 0.5; print(n);", "1.5000")
	expectError(t, "mut n int = 1; n += 0.5;", vlerrors.CodeTypeMismatch)
	expectError(t, "mut s = \"a\"; s++;", vlerrors.CodeInvalidOperation)
}

func TestInterpolation(t *testing.T) {
	expectOutput(t, "name string = \"vl\"; n float = 2; print(\"hi $name, ${n}!\");", "hi vl, 2.0000!")
	expectOutput(t, "struct P { int x; } p P = P{x: 3}; print(\"x=${p.x}\");", "x=3")
	expectError(t, "print(\"$missing\");", vlerrors.CodeUndefinedName)
}

func TestSyntaxErrorsStopEvaluation(t *testing.T) {
	result := run(t, "print(1);\nx = ;")
	if result.Output != "" {
		t.Errorf("nothing should run after a syntax error, got %q", result.Output)
	}
	if len(result.Diagnostics) == 0 || result.Diagnostics[0].Category.Severity() != "Syntax" {
		t.Fatalf("expected a syntax diagnostic, got %v", result.Diagnostics)
	}
}

func TestRuntimeErrorStopsProgram(t *testing.T) {
	result := run(t, "print(1);\nprint(1 / 0);\nprint(2);")
	if result.Output != "1" {
		t.Errorf("expected output before the error only, got %q", result.Output)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Line() != 2 {
		t.Fatalf("expected one diagnostic on line 2, got %v", result.Diagnostics)
	}
}

func TestOptions(t *testing.T) {
	var out bytes.Buffer
	var streamed []string
	result := Run("println(1.23456); print(1/0);", "test.vl",
		WithOutput(&out),
		WithFloatPrecision(2),
		WithSink(diagnostic.SinkFunc(func(d *diagnostic.Diagnostic) { streamed = append(streamed, d.Code) })),
	)

	if out.String() != "1.23\n" || result.Output != "1.23\n" {
		t.Errorf("expected output in both places, got %q and %q", out.String(), result.Output)
	}
	if len(streamed) != 1 || streamed[0] != vlerrors.CodeDivisionByZero {
		t.Errorf("expected streamed division error, got %v", streamed)
	}
}

func TestContextCancellation(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		src  string
	}{
		{"while", "while true { }"},
		{"for clause", "for i = 0; i >= 0; i = 0 { }"},
		{"for each", "for i, v in 1...3 { print(v); }"},
		{"call", "fn f() int { return 1; }\nprint(f());"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Run(tt.src, "test.vl", WithContext(cancelled))
			if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != vlerrors.CodeCancelled {
				t.Fatalf("expected a cancelled evaluation, got %v", result.Diagnostics)
			}
			if result.Output != "" {
				t.Errorf("expected no output, got %q", result.Output)
			}
		})
	}

	ctx, stop := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer stop()
	result := Run("mut n = 0;\nwhile true { n++; }", "test.vl", WithContext(ctx))
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != vlerrors.CodeCancelled {
		t.Errorf("expected the deadline to stop the loop, got %v", result.Diagnostics)
	}
}

func TestPersistentState(t *testing.T) {
	in := New()
	in.RunSource("mut total = 1; fn add(n int) int { return total + n; }", "repl")
	result := in.RunSource("total = add(4); print(total);", "repl")
	if result.Output != "5" || len(result.Diagnostics) > 0 {
		t.Fatalf("expected state to persist, got %q %v", result.Output, result.Diagnostics)
	}

	// a failed line leaves no scopes behind
	in.RunSource("{ { print(1 / 0); } }", "repl")
	if in.Environment().Depth() != 1 {
		t.Errorf("expected only the global scope, got depth %d", in.Environment().Depth())
	}

	in.Reset()
	result = in.RunSource("print(total);", "repl")
	if len(result.Diagnostics) == 0 {
		t.Errorf("expected total to be gone after Reset")
	}
}

func TestFailedLoadDeclaresNothing(t *testing.T) {
	in := New()
	result := in.RunSource("struct P { int x; }\nfn f() Shape { return 1; }", "repl")
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != vlerrors.CodeUnknownType {
		t.Fatalf("expected one unknown type error, got %v", result.Diagnostics)
	}
	if _, ok := in.Registry().Struct("P"); ok {
		t.Errorf("P should not stay declared after a failed load")
	}

	result = in.RunSource("struct P { int x; }\nfn f() int { return 1; }\nprint(f());", "repl")
	if len(result.Diagnostics) > 0 || result.Output != "1" {
		t.Fatalf("expected the corrected line to load, got %q %v", result.Output, result.Diagnostics)
	}
	var names []string
	for _, s := range result.Symbols.Root.Symbols {
		names = append(names, s.Name)
	}
	if strings.Join(names, ",") != "P,f" {
		t.Errorf("expected P and f reported once, got %v", names)
	}
}

func TestSymbols(t *testing.T) {
	result := run(t, `
struct P { int x; }
fn f(a int) int { mut b = a; return b; }
g int = f(1);
for i, v in {1} { }
`)
	if len(result.Diagnostics) > 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	var kinds []string
	for _, s := range result.Symbols.Root.Symbols {
		kinds = append(kinds, s.Kind+":"+s.Name+":"+s.Type)
	}
	got := strings.Join(kinds, ",")
	want := "struct:P:P,function:f:fn(int) int,variable:g:int"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	fn := result.Symbols.Root.Children[0]
	if fn.Kind != "function" || len(fn.Symbols) != 2 || fn.Symbols[1].Name != "b" {
		t.Errorf("unexpected function scope %+v", fn)
	}
}
