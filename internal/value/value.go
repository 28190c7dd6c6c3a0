// Package value defines the runtime values produced by the evaluator.
//
// Scalars are plain Go value types. Vectors and structs are pointers and
// are mutated in place by indexed and field assignment, so every store
// into a binding, a vector slot or a struct field goes through Copy.
package value

import (
	"github.com/vlang-lab/vlang/internal/types"
)

// Value is the shared behaviour for all runtime values.
type Value interface {
	Type() *types.Type
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type Int int64

func (Int) Type() *types.Type { return types.TypeInt }

type Float float64

func (Float) Type() *types.Type { return types.TypeFloat }

type String string

func (String) Type() *types.Type { return types.TypeString }

type Bool bool

func (Bool) Type() *types.Type { return types.TypeBool }

// Nil is the value of an unset struct slot.
type Nil struct{}

func (Nil) Type() *types.Type { return types.TypeNil }

//-----------------------------------------------------------------------------
// Aggregates
//-----------------------------------------------------------------------------

// Vector holds items of a single element type. A vector of vectors is a
// matrix; rows may differ in length.
type Vector struct {
	Elem  *types.Type
	Items []Value
}

func (v *Vector) Type() *types.Type { return types.NewVectorType(v.Elem) }

// Len returns the number of items.
func (v *Vector) Len() int { return len(v.Items) }

// NewVector creates a vector with the given element type and items.
func NewVector(elem *types.Type, items ...Value) *Vector {
	if items == nil {
		items = []Value{}
	}
	return &Vector{Elem: elem, Items: items}
}

// Struct is an instance of a declared struct. Fields are stored in
// declaration order.
type Struct struct {
	Def    *types.Type
	Fields []Value
}

func (s *Struct) Type() *types.Type { return s.Def }

// Name returns the struct type name.
func (s *Struct) Name() string { return s.Def.Struct().Name }

func (s *Struct) index(name string) int {
	for i, f := range s.Def.Struct().Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the value of the named field.
func (s *Struct) Get(name string) (Value, bool) {
	i := s.index(name)
	if i < 0 {
		return nil, false
	}
	return s.Fields[i], true
}

// Set stores v in the named field without conversion.
func (s *Struct) Set(name string, v Value) bool {
	i := s.index(name)
	if i < 0 {
		return false
	}
	s.Fields[i] = v
	return true
}

// NewStruct creates an instance of def with every field at its default.
func NewStruct(def *types.Type) *Struct {
	fields := def.Struct().Fields
	s := &Struct{Def: def, Fields: make([]Value, len(fields))}
	for i, f := range fields {
		s.Fields[i] = Default(f.Type)
	}
	return s
}

//-----------------------------------------------------------------------------
// Operations
//-----------------------------------------------------------------------------

// Copy returns a deep copy of aggregates; scalars are returned as is.
func Copy(v Value) Value {
	switch x := v.(type) {
	case *Vector:
		items := make([]Value, len(x.Items))
		for i, item := range x.Items {
			items[i] = Copy(item)
		}
		return &Vector{Elem: x.Elem, Items: items}
	case *Struct:
		fields := make([]Value, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = Copy(f)
		}
		return &Struct{Def: x.Def, Fields: fields}
	default:
		return v
	}
}

// Default returns the zero value of t: 0, 0.0, "", false, an empty vector
// or nil for structs.
func Default(t *types.Type) Value {
	switch t.Kind {
	case types.TypeKindInt:
		return Int(0)
	case types.TypeKindFloat:
		return Float(0)
	case types.TypeKindString:
		return String("")
	case types.TypeKindBool:
		return Bool(false)
	case types.TypeKindVector:
		return NewVector(t.Elem())
	default:
		return Nil{}
	}
}

// Convert adapts v to the target type, widening ints to floats (also
// inside vectors) and accepting nil for struct slots. An empty vector
// whose element type is still unknown takes the target element type.
func Convert(v Value, target *types.Type) (Value, bool) {
	switch x := v.(type) {
	case Int:
		switch target.Kind {
		case types.TypeKindInt:
			return x, true
		case types.TypeKindFloat:
			return Float(x), true
		}
		return nil, false
	case *Vector:
		if target.Kind != types.TypeKindVector {
			return nil, false
		}
		if x.Elem.Equals(target.Elem()) {
			return x, true
		}
		if len(x.Items) == 0 {
			if x.Elem.Kind == types.TypeKindVoid || x.Elem.CanConvertTo(target.Elem()) {
				return NewVector(target.Elem()), true
			}
			return nil, false
		}
		items := make([]Value, len(x.Items))
		for i, item := range x.Items {
			converted, ok := Convert(item, target.Elem())
			if !ok {
				return nil, false
			}
			items[i] = converted
		}
		return &Vector{Elem: target.Elem(), Items: items}, true
	default:
		if v.Type().CanConvertTo(target) {
			return v, true
		}
		return nil, false
	}
}

// Equal compares two values. Ints and floats compare numerically;
// aggregates compare element by element.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Int:
		switch y := b.(type) {
		case Int:
			return x == y
		case Float:
			return Float(x) == y
		}
	case Float:
		switch y := b.(type) {
		case Float:
			return x == y
		case Int:
			return x == Float(y)
		}
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Nil:
		_, ok := b.(Nil)
		return ok
	case *Vector:
		y, ok := b.(*Vector)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Struct:
		y, ok := b.(*Struct)
		if !ok || x.Name() != y.Name() {
			return false
		}
		for i := range x.Fields {
			if !Equal(x.Fields[i], y.Fields[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// ToFloat returns the numeric value of an int or float.
func ToFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x), true
	case Float:
		return float64(x), true
	}
	return 0, false
}
