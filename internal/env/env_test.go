package env

import (
	"testing"

	"github.com/vlang-lab/vlang/internal/ast"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/position"
	"github.com/vlang-lab/vlang/internal/types"
	"github.com/vlang-lab/vlang/internal/value"
)

func pos(line, col int) position.Position {
	return position.Position{Filename: "test.vl", Line: line, Column: col, Offset: col}
}

func TestDeclareAndGet(t *testing.T) {
	e := New()
	if err := e.Declare("x", types.TypeInt, false, value.Int(5), pos(1, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := e.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Value != value.Int(5) || b.Mutable {
		t.Errorf("unexpected binding %+v", b)
	}

	if _, err := e.Get("y"); !vlerrors.HasCode(err, vlerrors.CodeUndefinedName) {
		t.Errorf("expected undefined name error, got %v", err)
	}
}

func TestDuplicateAndShadowing(t *testing.T) {
	e := New()
	_ = e.Declare("x", types.TypeInt, true, value.Int(1), pos(1, 1))

	err := e.Declare("x", types.TypeInt, true, value.Int(2), pos(2, 1))
	if !vlerrors.HasCode(err, vlerrors.CodeDuplicateName) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}

	e.Push("block")
	if err := e.Declare("x", types.TypeString, false, value.String("inner"), pos(3, 1)); err != nil {
		t.Fatalf("shadowing should be allowed: %v", err)
	}
	b, _ := e.Get("x")
	if b.Value != value.String("inner") {
		t.Errorf("expected inner binding, got %v", b.Value)
	}

	e.Pop()
	b, _ = e.Get("x")
	if b.Value != value.Int(1) {
		t.Errorf("expected outer binding after pop, got %v", b.Value)
	}
}

func TestAssign(t *testing.T) {
	e := New()
	_ = e.Declare("m", types.TypeFloat, true, value.Float(0), pos(1, 1))
	_ = e.Declare("c", types.TypeInt, false, value.Int(1), pos(2, 1))

	tests := []struct {
		name string
		v    value.Value
		code string
	}{
		{"m", value.Int(10), ""},
		{"m", value.String("no"), vlerrors.CodeTypeMismatch},
		{"c", value.Int(2), vlerrors.CodeImmutableAssign},
		{"missing", value.Int(2), vlerrors.CodeUndefinedName},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.code, func(t *testing.T) {
			err := e.Assign(tt.name, tt.v)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !vlerrors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}

	b, _ := e.Get("m")
	if b.Value != value.Float(10) {
		t.Errorf("expected widened 10.0, got %v", b.Value)
	}
}

func TestStoresCopies(t *testing.T) {
	e := New()
	v := value.NewVector(types.TypeInt, value.Int(1), value.Int(2))
	_ = e.Declare("v", v.Type(), true, v, pos(1, 1))

	v.Items[0] = value.Int(42)
	b, _ := e.Get("v")
	if b.Value.(*value.Vector).Items[0] != value.Int(1) {
		t.Fatalf("declaration must store a copy")
	}
}

func TestFunctionScopeSkipsCaller(t *testing.T) {
	e := New()
	_ = e.Declare("g", types.TypeInt, false, value.Int(1), pos(1, 1))

	e.Push("caller")
	_ = e.Declare("local", types.TypeInt, false, value.Int(2), pos(2, 1))

	e.PushFunction("f")
	if !e.IsDefined("g") {
		t.Errorf("globals should be visible in functions")
	}
	if e.IsDefined("local") {
		t.Errorf("caller locals must not be visible in functions")
	}
	e.Pop()

	if !e.IsDefined("local") {
		t.Errorf("caller scope should be restored after the call")
	}

	e.Unwind(1)
	if e.Depth() != 1 || e.Current() != e.Global() {
		t.Errorf("expected only the global scope after unwind")
	}
	e.Pop()
	if e.Depth() != 1 {
		t.Errorf("the global scope must never be popped")
	}
}

func TestSymbolTable(t *testing.T) {
	e := New()
	_ = e.Declare("before", types.TypeInt, false, value.Int(1), pos(1, 1))
	st := e.TrackSymbols(2)

	e.PushLoop("for")
	_ = e.Declare("i", types.TypeInt, true, value.Int(0), pos(2, 5))
	e.Push("block")
	e.Pop()
	e.Pop()
	e.Push("dropped")
	e.Pop()

	if len(st.Root.Symbols) != 1 || st.Root.Symbols[0].Name != "before" {
		t.Fatalf("expected the pre-existing global, got %+v", st.Root.Symbols)
	}
	if len(st.Root.Children) != 1 {
		t.Fatalf("expected one recorded child scope, got %d", len(st.Root.Children))
	}
	loop := st.Root.Children[0]
	if loop.Kind != "loop" || loop.Symbols[0].Name != "i" || loop.Symbols[0].Line != 2 {
		t.Errorf("unexpected loop report %+v", loop)
	}
	if !st.Truncated {
		t.Errorf("expected the table to be marked truncated")
	}

	count := 0
	st.Walk(func(*ScopeReport, int) { count++ })
	if count != 3 {
		t.Errorf("expected 3 scopes walked, got %d", count)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry("print")

	structs := []*ast.StructDeclaration{
		{Name: "Line", Fields: []*ast.StructField{
			{Name: "a", Type: &ast.TypeExpr{Name: "Point"}},
			{Name: "b", Type: &ast.TypeExpr{Name: "Point"}},
		}},
		{Name: "Point", Fields: []*ast.StructField{
			{Name: "x", Type: &ast.TypeExpr{Name: "int"}},
			{Name: "x", Type: &ast.TypeExpr{Name: "int"}},
		}},
		{Name: "Point", Fields: []*ast.StructField{{Name: "y", Type: &ast.TypeExpr{Name: "int"}}}},
		{Name: "Bad", Fields: []*ast.StructField{{Name: "s", Type: &ast.TypeExpr{Name: "Shape"}}}},
	}
	errs := r.DeclareStructs(structs)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}

	line, ok := r.Struct("Line")
	if !ok {
		t.Fatalf("Line should be registered")
	}
	if f, _ := line.Struct().Field("a"); f.Type.Struct().Name != "Point" {
		t.Errorf("forward reference to Point not resolved")
	}
	if _, ok := r.Struct("int"); ok {
		t.Errorf("scalars are not structs")
	}

	fn := &ast.FunctionDeclaration{
		Name: "norm",
		Parameters: []*ast.Parameter{
			{Name: "p", Type: &ast.TypeExpr{Name: "Point"}},
			{Name: "scale", Type: &ast.TypeExpr{Name: "float", Dimensions: 1}},
		},
		ReturnType: &ast.TypeExpr{Name: "float"},
		Body:       &ast.BlockStatement{},
	}
	if err := r.DeclareFunction(fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := r.Function("norm")
	if got.Signature() != "fn(Point, []float) float" {
		t.Errorf("unexpected signature %s", got.Signature())
	}

	if err := r.DeclareFunction(fn); !vlerrors.HasCode(err, vlerrors.CodeDuplicateName) {
		t.Errorf("expected duplicate function error, got %v", err)
	}
	builtin := &ast.FunctionDeclaration{Name: "print", Body: &ast.BlockStatement{}}
	if err := r.DeclareFunction(builtin); !vlerrors.HasCode(err, vlerrors.CodeDuplicateName) {
		t.Errorf("expected builtin clash, got %v", err)
	}
}

func TestRegistryRollback(t *testing.T) {
	r := NewRegistry()
	keep := []*ast.StructDeclaration{{Name: "Keep", Fields: []*ast.StructField{{Name: "x", Type: &ast.TypeExpr{Name: "int"}}}}}
	if errs := r.DeclareStructs(keep); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	mark := r.Mark()
	r.DeclareStructs([]*ast.StructDeclaration{{Name: "Temp"}})
	r.DeclareFunction(&ast.FunctionDeclaration{Name: "tmp", Body: &ast.BlockStatement{}})
	r.Rollback(mark)

	if _, ok := r.Struct("Temp"); ok {
		t.Errorf("Temp should be rolled back")
	}
	if _, ok := r.Function("tmp"); ok {
		t.Errorf("tmp should be rolled back")
	}
	if _, ok := r.Struct("Keep"); !ok {
		t.Errorf("Keep was declared before the mark")
	}
	if err := r.DeclareFunction(&ast.FunctionDeclaration{Name: "tmp", Body: &ast.BlockStatement{}}); err != nil {
		t.Errorf("tmp should be declarable again, got %v", err)
	}
	if _, ok := r.Types().LookupType("int"); !ok {
		t.Errorf("builtin types must survive a rollback")
	}
}
