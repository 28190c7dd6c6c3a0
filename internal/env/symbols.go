package env

// DefaultMaxScopes bounds how many scopes a SymbolTable records; loops
// open a scope per iteration.
const DefaultMaxScopes = 512

// SymbolReport describes one declared name.
type SymbolReport struct {
	Name    string `json:"name" yaml:"name"`
	Kind    string `json:"kind" yaml:"kind"`
	Type    string `json:"type" yaml:"type"`
	Mutable bool   `json:"mutable,omitempty" yaml:"mutable,omitempty"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// ScopeReport describes a scope, its symbols and the scopes opened in it.
type ScopeReport struct {
	Name     string         `json:"name" yaml:"name"`
	Kind     string         `json:"kind" yaml:"kind"`
	Symbols  []SymbolReport `json:"symbols" yaml:"symbols"`
	Children []*ScopeReport `json:"children,omitempty" yaml:"children,omitempty"`
}

// SymbolTable records every scope and declaration made through an
// Environment, after the scopes themselves are gone.
type SymbolTable struct {
	Root      *ScopeReport `json:"root" yaml:"root"`
	Truncated bool         `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	scopes    int
	maxScopes int
}

// TrackSymbols starts recording scopes and declarations. maxScopes <= 0
// uses DefaultMaxScopes.
func (e *Environment) TrackSymbols(maxScopes int) *SymbolTable {
	if maxScopes <= 0 {
		maxScopes = DefaultMaxScopes
	}
	st := &SymbolTable{maxScopes: maxScopes}
	st.Root = &ScopeReport{Name: e.global.Name, Kind: e.global.Kind.String(), Symbols: []SymbolReport{}}
	e.global.report = st.Root
	for _, b := range e.global.Bindings() {
		st.declare(e.global, b)
	}
	e.symbols = st
	return st
}

// Symbols returns the table started by TrackSymbols, or nil.
func (e *Environment) Symbols() *SymbolTable { return e.symbols }

func (st *SymbolTable) enter(s *Scope, parent *ScopeReport) {
	if parent == nil || st.scopes >= st.maxScopes {
		st.Truncated = st.Truncated || parent != nil
		return
	}
	st.scopes++
	s.report = &ScopeReport{Name: s.Name, Kind: s.Kind.String(), Symbols: []SymbolReport{}}
	parent.Children = append(parent.Children, s.report)
}

func (st *SymbolTable) declare(s *Scope, b *Binding) {
	if s.report == nil {
		return
	}
	s.report.Symbols = append(s.report.Symbols, SymbolReport{
		Name:    b.Name,
		Kind:    "variable",
		Type:    b.Type.String(),
		Mutable: b.Mutable,
		Line:    b.Pos.Line,
		Column:  b.Pos.Column,
	})
}

// AddGlobal records a non-variable symbol such as a function or struct in
// the root scope.
func (st *SymbolTable) AddGlobal(sym SymbolReport) {
	st.Root.Symbols = append(st.Root.Symbols, sym)
}

// Walk calls f for every scope report, depth first.
func (st *SymbolTable) Walk(f func(scope *ScopeReport, depth int)) {
	var walk func(s *ScopeReport, depth int)
	walk = func(s *ScopeReport, depth int) {
		f(s, depth)
		for _, c := range s.Children {
			walk(c, depth+1)
		}
	}
	walk(st.Root, 0)
}
