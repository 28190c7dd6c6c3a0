package env

import (
	"github.com/vlang-lab/vlang/internal/ast"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/position"
	"github.com/vlang-lab/vlang/internal/types"
)

// Parameter is a resolved function parameter.
type Parameter struct {
	Name string
	Type *types.Type
}

// Function is a resolved function declaration.
type Function struct {
	Decl       *ast.FunctionDeclaration
	Name       string
	Parameters []Parameter
	ReturnType *types.Type // nil for void functions
}

// Signature renders the function type, e.g. `fn(int, []float) bool`.
func (f *Function) Signature() string {
	s := "fn("
	for i, p := range f.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.Type.String()
	}
	s += ")"
	if f.ReturnType != nil {
		s += " " + f.ReturnType.String()
	}
	return s
}

// Registry holds the struct and function declarations of a program. It
// is filled at program load and only read during evaluation.
type Registry struct {
	types     *types.TypeRegistry
	functions map[string]*Function
	positions map[string]position.Position
	reserved  map[string]bool
	claimed   []string
}

// NewRegistry creates an empty registry. Names in reserved (builtins)
// cannot be declared.
func NewRegistry(reserved ...string) *Registry {
	r := &Registry{
		types:     types.NewTypeRegistry(),
		functions: make(map[string]*Function),
		positions: make(map[string]position.Position),
		reserved:  make(map[string]bool, len(reserved)),
	}
	for _, name := range reserved {
		r.reserved[name] = true
	}
	return r
}

// Types exposes the type registry used to resolve written types.
func (r *Registry) Types() *types.TypeRegistry { return r.types }

// Resolve resolves a written type against the declared structs.
func (r *Registry) Resolve(expr *ast.TypeExpr) (*types.Type, error) {
	return r.types.Resolve(expr)
}

func (r *Registry) claim(name string, span position.Span) error {
	if prev, exists := r.positions[name]; exists {
		return vlerrors.DuplicateName(name, prev).At(span)
	}
	if r.reserved[name] || types.IsBuiltin(name) {
		return vlerrors.Semantic(vlerrors.CodeDuplicateName, "'%s' is a builtin name and cannot be redeclared", name).At(span)
	}
	r.positions[name] = span.Start
	r.claimed = append(r.claimed, name)
	return nil
}

// Mark returns a checkpoint for Rollback.
func (r *Registry) Mark() int { return len(r.claimed) }

// Rollback removes every struct and function declared since mark.
func (r *Registry) Rollback(mark int) {
	if mark < 0 || mark > len(r.claimed) {
		return
	}
	for _, name := range r.claimed[mark:] {
		delete(r.positions, name)
		delete(r.functions, name)
		r.types.Unregister(name)
	}
	r.claimed = r.claimed[:mark]
}

// DeclareStructs registers a batch of struct declarations. Names are
// registered first so that fields may refer to any struct in the batch.
func (r *Registry) DeclareStructs(decls []*ast.StructDeclaration) []error {
	var errs []error
	declared := make([]*ast.StructDeclaration, 0, len(decls))

	for _, decl := range decls {
		if err := r.claim(decl.Name, decl.Span); err != nil {
			errs = append(errs, err)
			continue
		}
		r.types.RegisterType(decl.Name, types.NewStructType(decl.Name, nil))
		declared = append(declared, decl)
	}

	for _, decl := range declared {
		t, _ := r.types.LookupType(decl.Name)
		st := t.Struct()
		seen := make(map[string]bool, len(decl.Fields))
		for _, f := range decl.Fields {
			if seen[f.Name] {
				errs = append(errs, vlerrors.Semantic(vlerrors.CodeDuplicateField,
					"field '%s' declared more than once in struct '%s'", f.Name, decl.Name).At(f.Span))
				continue
			}
			seen[f.Name] = true
			ft, err := r.Resolve(f.Type)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			st.Fields = append(st.Fields, types.StructField{Name: f.Name, Type: ft})
		}
	}

	return errs
}

// DeclareFunction resolves and registers a function declaration.
func (r *Registry) DeclareFunction(decl *ast.FunctionDeclaration) error {
	fn := &Function{Decl: decl, Name: decl.Name}

	seen := make(map[string]position.Position, len(decl.Parameters))
	for _, p := range decl.Parameters {
		if prev, dup := seen[p.Name]; dup {
			return vlerrors.DuplicateName(p.Name, prev).At(p.Span)
		}
		seen[p.Name] = p.Span.Start
		t, err := r.Resolve(p.Type)
		if err != nil {
			return err
		}
		fn.Parameters = append(fn.Parameters, Parameter{Name: p.Name, Type: t})
	}

	if decl.ReturnType != nil {
		t, err := r.Resolve(decl.ReturnType)
		if err != nil {
			return err
		}
		fn.ReturnType = t
	}

	if err := r.claim(decl.Name, decl.Span); err != nil {
		return err
	}
	r.functions[decl.Name] = fn
	return nil
}

// Struct looks up a struct type by name.
func (r *Registry) Struct(name string) (*types.Type, bool) {
	t, ok := r.types.LookupType(name)
	if !ok || t.Kind != types.TypeKindStruct {
		return nil, false
	}
	return t, true
}

// Function looks up a function by name.
func (r *Registry) Function(name string) (*Function, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// Functions returns every registered function.
func (r *Registry) Functions() []*Function {
	out := make([]*Function, 0, len(r.functions))
	for _, fn := range r.functions {
		out = append(out, fn)
	}
	return out
}

// Position returns where a struct or function was declared.
func (r *Registry) Position(name string) (position.Position, bool) {
	pos, ok := r.positions[name]
	return pos, ok
}
