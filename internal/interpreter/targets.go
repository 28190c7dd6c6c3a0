package interpreter

import (
	"github.com/vlang-lab/vlang/internal/ast"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/types"
	"github.com/vlang-lab/vlang/internal/value"
)

// target is an assignable location: a binding, a struct field or a
// vector slot.
type target struct {
	get func() value.Value
	set func(value.Value) error
	typ *types.Type
}

// slot builds a target whose setter converts to typ and stores a copy.
func slot(typ *types.Type, context string, get func() value.Value, store func(value.Value)) *target {
	return &target{
		typ: typ,
		get: get,
		set: func(v value.Value) error {
			converted, ok := value.Convert(v, typ)
			if !ok {
				return vlerrors.TypeMismatch(context, typ.String(), v.Type().String())
			}
			store(value.Copy(converted))
			return nil
		},
	}
}

// resolveTarget finds the location named by expr. Writing through a path
// requires the root binding to be mutable.
func (in *Interpreter) resolveTarget(expr ast.Expression) (*target, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		b, err := in.env.Get(e.Name())
		if err != nil {
			return nil, locate(err, e)
		}
		if len(e.Path) == 1 {
			name := e.Name()
			return &target{
				typ: b.Type,
				get: func() value.Value { return b.Value },
				set: func(v value.Value) error { return in.env.Assign(name, v) },
			}, nil
		}
		if !b.Mutable {
			return nil, vlerrors.ImmutableAssign(b.Name).At(e.Span)
		}
		base := b.Value
		for _, name := range e.Path[1 : len(e.Path)-1] {
			if base, err = field(base, name); err != nil {
				return nil, locate(err, e)
			}
		}
		t, err := fieldTarget(base, e.Path[len(e.Path)-1])
		return t, locateOrNil(err, e)

	case *ast.PropertyExpression:
		if err := in.checkMutableRoot(e); err != nil {
			return nil, err
		}
		base, err := in.evalValue(e.Base)
		if err != nil {
			return nil, err
		}
		t, err := fieldTarget(base, e.Field)
		return t, locateOrNil(err, e)

	case *ast.IndexExpression:
		if err := in.checkMutableRoot(e); err != nil {
			return nil, err
		}
		container, err := in.evalValue(e.Base)
		if err != nil {
			return nil, err
		}
		last := len(e.Indices) - 1
		for _, idxExpr := range e.Indices[:last] {
			vec, i, err := in.indexInto(container, idxExpr)
			if err != nil {
				return nil, err
			}
			container = vec.Items[i]
		}
		vec, i, err := in.indexInto(container, e.Indices[last])
		if err != nil {
			return nil, err
		}
		return slot(vec.Elem, "element of "+e.Base.String(),
			func() value.Value { return vec.Items[i] },
			func(v value.Value) { vec.Items[i] = v },
		), nil
	}

	return nil, vlerrors.Semantic(vlerrors.CodeInvalidOperation, "cannot assign to %s", expr).At(expr.GetSpan())
}

func fieldTarget(base value.Value, name string) (*target, error) {
	if _, err := field(base, name); err != nil {
		return nil, err
	}
	s := base.(*value.Struct)
	f, _ := s.Def.Struct().Field(name)
	return slot(f.Type, "field '"+name+"' of "+s.Name(),
		func() value.Value { v, _ := s.Get(name); return v },
		func(v value.Value) { s.Set(name, v) },
	), nil
}

func locateOrNil(err error, node ast.Node) error {
	if err == nil {
		return nil
	}
	return locate(err, node)
}

// checkMutableRoot walks down to the variable an index or property
// target writes into and fails if it is immutable.
func (in *Interpreter) checkMutableRoot(expr ast.Expression) error {
	cur := expr
	for {
		switch e := cur.(type) {
		case *ast.IndexExpression:
			cur = e.Base
		case *ast.PropertyExpression:
			cur = e.Base
		case *ast.ParenExpression:
			cur = e.Inner
		case *ast.Identifier:
			b, err := in.env.Get(e.Name())
			if err != nil {
				return locate(err, e)
			}
			if !b.Mutable {
				return vlerrors.ImmutableAssign(b.Name).At(expr.GetSpan())
			}
			return nil
		default:
			return vlerrors.Semantic(vlerrors.CodeInvalidOperation, "cannot assign to %s", expr).At(expr.GetSpan())
		}
	}
}
