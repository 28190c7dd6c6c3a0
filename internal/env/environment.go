// Package env implements the runtime scope stack used for name resolution
// during evaluation, together with the registry of declared structs and
// functions.
package env

import (
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/position"
	"github.com/vlang-lab/vlang/internal/types"
	"github.com/vlang-lab/vlang/internal/value"
)

// ScopeKind represents the kind of scope.
type ScopeKind int

const (
	ScopeKindGlobal ScopeKind = iota
	ScopeKindFunction
	ScopeKindBlock
	ScopeKindLoop
)

// String returns the string representation of ScopeKind.
func (sk ScopeKind) String() string {
	switch sk {
	case ScopeKindGlobal:
		return "global"
	case ScopeKindFunction:
		return "function"
	case ScopeKindBlock:
		return "block"
	case ScopeKindLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// Binding is a name's association with a type, a mutability flag and a
// current value.
type Binding struct {
	Value   value.Value
	Type    *types.Type
	Name    string
	Pos     position.Position
	Mutable bool
}

// Scope represents a lexical scope.
type Scope struct {
	bindings map[string]*Binding
	parent   *Scope
	report   *ScopeReport
	Name     string
	order    []string
	Kind     ScopeKind
	Depth    int
}

func newScope(kind ScopeKind, name string, parent *Scope) *Scope {
	s := &Scope{
		bindings: make(map[string]*Binding),
		parent:   parent,
		Name:     name,
		Kind:     kind,
	}
	if parent != nil {
		s.Depth = parent.Depth + 1
	}
	return s
}

// Parent exposes the lexical parent (nil when global).
func (s *Scope) Parent() *Scope { return s.parent }

// Lookup finds a binding in this scope only.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Bindings returns the bindings of this scope in declaration order.
func (s *Scope) Bindings() []*Binding {
	out := make([]*Binding, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.bindings[name])
	}
	return out
}

// Environment is an ordered stack of scopes. Lookups follow the lexical
// parent chain of the top scope, which for function bodies skips the
// caller's scopes and continues at the global scope.
type Environment struct {
	global  *Scope
	stack   []*Scope
	symbols *SymbolTable
}

// New creates an environment holding only the global scope.
func New() *Environment {
	global := newScope(ScopeKindGlobal, "global", nil)
	e := &Environment{
		global: global,
		stack:  []*Scope{global},
	}
	return e
}

// Current returns the innermost scope.
func (e *Environment) Current() *Scope { return e.stack[len(e.stack)-1] }

// Global returns the root scope.
func (e *Environment) Global() *Scope { return e.global }

// Depth returns the number of scopes on the stack.
func (e *Environment) Depth() int { return len(e.stack) }

// Push opens a block scope nested in the current one.
func (e *Environment) Push(name string) {
	e.push(newScope(ScopeKindBlock, name, e.Current()))
}

// PushLoop opens a loop scope nested in the current one.
func (e *Environment) PushLoop(name string) {
	e.push(newScope(ScopeKindLoop, name, e.Current()))
}

// PushFunction opens a function scope whose parent is the global scope.
func (e *Environment) PushFunction(name string) {
	e.push(newScope(ScopeKindFunction, name, e.global))
}

func (e *Environment) push(s *Scope) {
	e.stack = append(e.stack, s)
	if e.symbols != nil {
		e.symbols.enter(s, e.reportParent(s))
	}
}

func (e *Environment) reportParent(s *Scope) *ScopeReport {
	// Function scopes are reported under the global scope, blocks under
	// the scope that opened them.
	if s.Kind == ScopeKindFunction {
		return e.global.report
	}
	return e.stack[len(e.stack)-2].report
}

// Pop closes the innermost scope. The global scope is never popped.
func (e *Environment) Pop() {
	if len(e.stack) == 1 {
		return
	}
	e.stack[len(e.stack)-1] = nil
	e.stack = e.stack[:len(e.stack)-1]
}

// Unwind pops scopes until depth scopes remain.
func (e *Environment) Unwind(depth int) {
	for len(e.stack) > depth && len(e.stack) > 1 {
		e.Pop()
	}
}

// Declare binds name in the current scope. Redeclaring a name in the same
// scope fails; shadowing an outer scope's name is allowed. The stored
// value is a copy of v.
func (e *Environment) Declare(name string, t *types.Type, mutable bool, v value.Value, pos position.Position) error {
	scope := e.Current()
	if existing, exists := scope.bindings[name]; exists {
		return vlerrors.DuplicateName(name, existing.Pos)
	}

	b := &Binding{
		Name:    name,
		Type:    t,
		Mutable: mutable,
		Value:   value.Copy(v),
		Pos:     pos,
	}
	scope.bindings[name] = b
	scope.order = append(scope.order, name)

	if e.symbols != nil {
		e.symbols.declare(scope, b)
	}
	return nil
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (*Binding, error) {
	for s := e.Current(); s != nil; s = s.parent {
		if b, ok := s.bindings[name]; ok {
			return b, nil
		}
	}
	return nil, vlerrors.UndefinedName(name)
}

// IsDefined reports whether name resolves from the current scope.
func (e *Environment) IsDefined(name string) bool {
	_, err := e.Get(name)
	return err == nil
}

// Assign updates an existing binding in the first scope where it appears,
// converting v to the binding's type and storing a copy.
func (e *Environment) Assign(name string, v value.Value) error {
	b, err := e.Get(name)
	if err != nil {
		return err
	}
	if !b.Mutable {
		return vlerrors.ImmutableAssign(name)
	}

	converted, ok := value.Convert(v, b.Type)
	if !ok {
		return vlerrors.TypeMismatch("assignment to '"+name+"'", b.Type.String(), v.Type().String())
	}
	b.Value = value.Copy(converted)
	return nil
}
