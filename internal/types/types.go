// Type system for VLang: scalars, vectors (nested vectors form
// matrices) and named struct types.

package types

import (
	"strings"

	"github.com/vlang-lab/vlang/internal/ast"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
)

// ====== Core Type System ======

// TypeKind represents the kind of a type
type TypeKind int

const (
	TypeKindVoid TypeKind = iota
	TypeKindInt
	TypeKindFloat
	TypeKindString
	TypeKindBool
	TypeKindNil
	TypeKindVector
	TypeKindStruct
)

// String returns the string representation of a TypeKind
func (tk TypeKind) String() string {
	switch tk {
	case TypeKindVoid:
		return "void"
	case TypeKindInt:
		return "int"
	case TypeKindFloat:
		return "float"
	case TypeKindString:
		return "string"
	case TypeKindBool:
		return "bool"
	case TypeKindNil:
		return "nil"
	case TypeKindVector:
		return "vector"
	case TypeKindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Type represents a type in the VLang type system
type Type struct {
	Kind TypeKind
	Data interface{} // *VectorType or *StructType, nil for scalars
}

// VectorType represents `[]T`. A vector whose element is itself a vector
// is a matrix.
type VectorType struct {
	ElementType *Type
}

// StructType represents a declared struct
type StructType struct {
	Name   string
	Fields []StructField
}

// StructField represents a field in a struct
type StructField struct {
	Name string
	Type *Type
}

// Field returns the declared field with the given name.
func (st *StructType) Field(name string) (StructField, bool) {
	for _, f := range st.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

// ====== Built-in Types ======

var (
	TypeVoid   = &Type{Kind: TypeKindVoid}
	TypeInt    = &Type{Kind: TypeKindInt}
	TypeFloat  = &Type{Kind: TypeKindFloat}
	TypeString = &Type{Kind: TypeKindString}
	TypeBool   = &Type{Kind: TypeKindBool}
	TypeNil    = &Type{Kind: TypeKindNil}
)

// ====== Type Construction Functions ======

// NewVectorType creates a new vector type
func NewVectorType(elementType *Type) *Type {
	return &Type{
		Kind: TypeKindVector,
		Data: &VectorType{ElementType: elementType},
	}
}

// NewMatrixType wraps elementType in dims vector levels.
func NewMatrixType(elementType *Type, dims int) *Type {
	t := elementType
	for i := 0; i < dims; i++ {
		t = NewVectorType(t)
	}
	return t
}

// NewStructType creates a new struct type. Field types may be filled in
// after registration so that structs can refer to each other.
func NewStructType(name string, fields []StructField) *Type {
	return &Type{
		Kind: TypeKindStruct,
		Data: &StructType{
			Name:   name,
			Fields: fields,
		},
	}
}

// ====== Accessors ======

// Elem returns the element type of a vector, or nil.
func (t *Type) Elem() *Type {
	if vt, ok := t.Data.(*VectorType); ok {
		return vt.ElementType
	}
	return nil
}

// Struct returns the struct description, or nil.
func (t *Type) Struct() *StructType {
	if st, ok := t.Data.(*StructType); ok {
		return st
	}
	return nil
}

// Dimensions returns how many vector levels wrap the innermost type.
func (t *Type) Dimensions() int {
	n := 0
	for cur := t; cur != nil && cur.Kind == TypeKindVector; cur = cur.Elem() {
		n++
	}
	return n
}

// Innermost returns the non-vector type at the bottom of t.
func (t *Type) Innermost() *Type {
	cur := t
	for cur.Kind == TypeKindVector {
		cur = cur.Elem()
	}
	return cur
}

// ====== Type Equivalence ======

// Equals checks if two types are equivalent
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}

	if t.Kind != other.Kind {
		return false
	}

	switch t.Kind {
	case TypeKindVector:
		return t.Elem().Equals(other.Elem())
	case TypeKindStruct:
		// struct names are unique in a program
		return t.Struct().Name == other.Struct().Name
	default:
		return true // Scalar types are equal if kinds match
	}
}

// ====== Type Conversion Rules ======

// CanConvertTo reports whether a value of type t may be stored where
// target is expected: identical types, int widened to float (also inside
// vectors) and nil into a struct slot.
func (t *Type) CanConvertTo(target *Type) bool {
	if t.Equals(target) {
		return true
	}

	switch {
	case t.Kind == TypeKindInt && target.Kind == TypeKindFloat:
		return true
	case t.Kind == TypeKindNil && target.Kind == TypeKindStruct:
		return true
	case t.Kind == TypeKindVector && target.Kind == TypeKindVector:
		return t.Elem().CanConvertTo(target.Elem())
	}

	return false
}

// ====== Type Properties ======

// IsNumeric checks if the type is int or float
func (t *Type) IsNumeric() bool {
	return t.Kind == TypeKindInt || t.Kind == TypeKindFloat
}

// IsOrdered reports whether <, <=, > and >= apply.
func (t *Type) IsOrdered() bool {
	return t.IsNumeric() || t.Kind == TypeKindString
}

// IsAggregate checks if the type is an aggregate type
func (t *Type) IsAggregate() bool {
	return t.Kind == TypeKindVector || t.Kind == TypeKindStruct
}

// ====== String Representation ======

// String returns the source spelling of the type, e.g. `[][]float`.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindVector:
		return "[]" + t.Elem().String()
	case TypeKindStruct:
		return t.Struct().Name
	default:
		return t.Kind.String()
	}
}

// ====== Type Registry ======

// TypeRegistry maintains a registry of all named types in a program
type TypeRegistry struct {
	types map[string]*Type
}

// NewTypeRegistry creates a new type registry
func NewTypeRegistry() *TypeRegistry {
	registry := &TypeRegistry{
		types: make(map[string]*Type),
	}

	// Register built-in types
	registry.RegisterType("int", TypeInt)
	registry.RegisterType("float", TypeFloat)
	registry.RegisterType("string", TypeString)
	registry.RegisterType("bool", TypeBool)

	return registry
}

// RegisterType registers a type with the given name
func (tr *TypeRegistry) RegisterType(name string, typeObj *Type) {
	tr.types[name] = typeObj
}

// Unregister removes a declared type. Builtin names are kept.
func (tr *TypeRegistry) Unregister(name string) {
	if !IsBuiltin(name) {
		delete(tr.types, name)
	}
}

// LookupType looks up a type by name
func (tr *TypeRegistry) LookupType(name string) (*Type, bool) {
	typeObj, exists := tr.types[name]
	return typeObj, exists
}

// IsBuiltin reports whether name is one of the scalar type names.
func IsBuiltin(name string) bool {
	switch name {
	case "int", "float", "string", "bool":
		return true
	}
	return false
}

// Resolve turns a written type into a Type, failing on unknown names.
func (tr *TypeRegistry) Resolve(expr *ast.TypeExpr) (*Type, error) {
	base, ok := tr.LookupType(expr.Name)
	if !ok {
		return nil, vlerrors.UnknownType(strings.Repeat("[]", expr.Dimensions) + expr.Name).At(expr.Span)
	}
	return NewMatrixType(base, expr.Dimensions), nil
}

// Names returns the registered struct names.
func (tr *TypeRegistry) Names() []string {
	names := make([]string, 0, len(tr.types))
	for name, t := range tr.types {
		if t.Kind == TypeKindStruct {
			names = append(names, name)
		}
	}
	return names
}
