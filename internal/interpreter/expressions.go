package interpreter

import (
	"fmt"
	"strings"

	"github.com/vlang-lab/vlang/internal/ast"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/types"
	"github.com/vlang-lab/vlang/internal/value"
)

// eval evaluates expr. The result is nil for calls to functions without a
// return value. Aggregates are returned by reference; stores copy them.
func (in *Interpreter) eval(expr ast.Expression) (value.Value, error) {
	v, err := in.evalNode(expr)
	if err != nil {
		return nil, locate(err, expr)
	}
	return v, nil
}

// evalValue is eval for positions that need a value.
func (in *Interpreter) evalValue(expr ast.Expression) (value.Value, error) {
	v, err := in.eval(expr)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, vlerrors.Semantic(vlerrors.CodeTypeMismatch, "%s is used as a value but returns nothing", expr).At(expr.GetSpan())
	}
	return v, nil
}

// evalExpecting evaluates expr where a value of type expected is stored.
// Vector literals and repeating builders take their element type from
// expected, so `{}` can initialize any vector.
func (in *Interpreter) evalExpecting(expr ast.Expression, expected *types.Type) (value.Value, error) {
	if lit, ok := expr.(*ast.VectorLiteral); ok && expected != nil && expected.Kind == types.TypeKindVector {
		v, err := in.evalVectorLiteral(lit, expected)
		if err != nil {
			return nil, locate(err, expr)
		}
		return v, nil
	}
	return in.evalValue(expr)
}

func (in *Interpreter) evalNode(expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literal(e), nil
	case *ast.InterpolatedString:
		return in.evalInterpolated(e)
	case *ast.ParenExpression:
		return in.eval(e.Inner)
	case *ast.Identifier:
		return in.readPath(e)
	case *ast.CallExpression:
		return in.evalCall(e)
	case *ast.IndexExpression:
		return in.evalIndex(e)
	case *ast.PropertyExpression:
		base, err := in.evalValue(e.Base)
		if err != nil {
			return nil, err
		}
		return field(base, e.Field)
	case *ast.MethodCallExpression:
		return in.evalMethodCall(e)
	case *ast.VectorLiteral:
		return in.evalVectorLiteral(e, nil)
	case *ast.RepeatingExpression:
		return in.evalRepeating(e)
	case *ast.UnaryExpression:
		return in.evalUnary(e)
	case *ast.BinaryExpression:
		return in.evalBinary(e)
	case *ast.StructLiteral:
		return in.evalStructLiteral(e)
	case *ast.IncDecExpression:
		return in.evalIncDec(e)
	case *ast.RangeExpression:
		return nil, vlerrors.Semantic(vlerrors.CodeInvalidOperation, "a range can only be iterated by for-each")
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression %T", expr))
	}
}

func literal(l *ast.Literal) value.Value {
	switch l.Kind {
	case ast.LiteralInteger:
		return value.Int(l.Value.(int64))
	case ast.LiteralFloat:
		return value.Float(l.Value.(float64))
	case ast.LiteralString:
		return value.String(l.Value.(string))
	case ast.LiteralBool:
		return value.Bool(l.Value.(bool))
	default:
		return value.Nil{}
	}
}

func (in *Interpreter) evalInterpolated(s *ast.InterpolatedString) (value.Value, error) {
	var sb strings.Builder
	for _, part := range s.Parts {
		if part.Ref == nil {
			sb.WriteString(part.Text)
			continue
		}
		v, err := in.readPath(part.Ref)
		if err != nil {
			return nil, locate(err, part.Ref)
		}
		sb.WriteString(value.Format(v, in.precision))
	}
	return value.String(sb.String()), nil
}

// readPath reads a name or a dotted field path such as `p.pos.x`.
func (in *Interpreter) readPath(id *ast.Identifier) (value.Value, error) {
	b, err := in.env.Get(id.Name())
	if err != nil {
		if _, isFn := in.registry.Function(id.Name()); isFn {
			return nil, vlerrors.Semantic(vlerrors.CodeInvalidOperation, "function '%s' used as a value", id.Name())
		}
		if isBuiltin(id.Name()) {
			return nil, vlerrors.Semantic(vlerrors.CodeInvalidOperation, "builtin '%s' used as a value", id.Name())
		}
		return nil, err
	}

	v := b.Value
	for _, name := range id.Path[1:] {
		if v, err = field(v, name); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// field reads a struct field, failing on nil structs and non-structs.
func field(base value.Value, name string) (value.Value, error) {
	switch s := base.(type) {
	case *value.Struct:
		v, ok := s.Get(name)
		if !ok {
			return nil, vlerrors.UnknownField(s.Name(), name)
		}
		return v, nil
	case value.Nil:
		return nil, vlerrors.NilDereference("access to field '" + name + "'")
	default:
		return nil, vlerrors.InvalidOperation("."+name, base.Type().String(), "")
	}
}

func (in *Interpreter) evalIndex(e *ast.IndexExpression) (value.Value, error) {
	v, err := in.evalValue(e.Base)
	if err != nil {
		return nil, err
	}
	for _, idxExpr := range e.Indices {
		vec, i, err := in.indexInto(v, idxExpr)
		if err != nil {
			return nil, err
		}
		v = vec.Items[i]
	}
	return v, nil
}

// indexInto checks that container is a vector and that idxExpr is an
// in-range int index into it.
func (in *Interpreter) indexInto(container value.Value, idxExpr ast.Expression) (*value.Vector, int, error) {
	vec, ok := container.(*value.Vector)
	if !ok {
		if _, isNil := container.(value.Nil); isNil {
			return nil, 0, vlerrors.NilDereference("index").At(idxExpr.GetSpan())
		}
		return nil, 0, vlerrors.InvalidOperation("[]", container.Type().String(), "").At(idxExpr.GetSpan())
	}

	iv, err := in.evalValue(idxExpr)
	if err != nil {
		return nil, 0, err
	}
	idx, ok := iv.(value.Int)
	if !ok {
		return nil, 0, vlerrors.TypeMismatch("index", "int", iv.Type().String()).At(idxExpr.GetSpan())
	}
	if idx < 0 || int64(idx) >= int64(len(vec.Items)) {
		return nil, 0, vlerrors.IndexOutOfBounds(int64(idx), len(vec.Items)).At(idxExpr.GetSpan())
	}
	return vec, int(idx), nil
}

// evalVectorLiteral builds a vector. With an expected type every element
// is converted to its element type; otherwise the element type is taken
// from the elements, promoting to float when ints and floats mix.
func (in *Interpreter) evalVectorLiteral(lit *ast.VectorLiteral, expected *types.Type) (value.Value, error) {
	var elem *types.Type
	if expected != nil {
		elem = expected.Elem()
	}

	items := make([]value.Value, 0, len(lit.Elements))
	for _, e := range lit.Elements {
		v, err := in.evalExpecting(e, elem)
		if err != nil {
			return nil, err
		}
		items = append(items, value.Copy(v))
	}

	if elem == nil {
		inferred, err := elementType(items, lit)
		if err != nil {
			return nil, err
		}
		elem = inferred
	}

	for i, item := range items {
		converted, ok := value.Convert(item, elem)
		if !ok {
			return nil, vlerrors.TypeMismatch("vector element", elem.String(), item.Type().String()).At(lit.Elements[i].GetSpan())
		}
		items[i] = converted
	}
	return value.NewVector(elem, items...), nil
}

// elementType picks the element type of an untyped vector literal. Nil
// elements and empty vectors do not constrain it.
func elementType(items []value.Value, lit *ast.VectorLiteral) (*types.Type, error) {
	var elem *types.Type
	for i, item := range items {
		t := item.Type()
		switch {
		case t.Kind == types.TypeKindNil || unknownElement(t):
			continue
		case elem == nil:
			elem = t
		case t.CanConvertTo(elem):
		case elem.CanConvertTo(t):
			elem = t
		default:
			return nil, vlerrors.TypeMismatch("vector element", elem.String(), t.String()).At(lit.Elements[i].GetSpan())
		}
	}

	switch {
	case elem != nil:
		return elem, nil
	case len(items) == 0:
		return types.TypeVoid, nil
	case unknownElement(items[0].Type()):
		return items[0].Type(), nil
	default:
		return nil, vlerrors.Semantic(vlerrors.CodeTypeMismatch, "cannot infer the element type of a vector of nil")
	}
}

// unknownElement reports whether t is a vector built only from empty
// literals, such as `{}` or `{{}, {}}`.
func unknownElement(t *types.Type) bool {
	return t.Kind == types.TypeKindVector && t.Innermost().Kind == types.TypeKindVoid
}

// evalRepeating builds `[]T(count: n, value: v)`: n copies of v. Bindings
// are matched by name, falling back to (count, value) order.
func (in *Interpreter) evalRepeating(r *ast.RepeatingExpression) (value.Value, error) {
	t, err := in.registry.Resolve(r.Type)
	if err != nil {
		return nil, err
	}

	countArg, valueArg := repeatingBindings(r.Bindings)

	cv, err := in.evalValue(countArg.Value)
	if err != nil {
		return nil, err
	}
	count, ok := cv.(value.Int)
	if !ok {
		return nil, vlerrors.TypeMismatch("repeating count '"+countArg.Name+"'", "int", cv.Type().String()).At(countArg.Value.GetSpan())
	}
	if count < 0 {
		return nil, vlerrors.InvalidArgument(r.Type.String(), fmt.Sprintf("negative count %d", count)).At(countArg.Value.GetSpan())
	}

	raw, err := in.evalExpecting(valueArg.Value, t.Elem())
	if err != nil {
		return nil, err
	}
	item, ok := value.Convert(raw, t.Elem())
	if !ok {
		return nil, vlerrors.TypeMismatch("repeating value '"+valueArg.Name+"'", t.Elem().String(), raw.Type().String()).At(valueArg.Value.GetSpan())
	}

	items := make([]value.Value, count)
	for i := range items {
		items[i] = value.Copy(item)
	}
	return value.NewVector(t.Elem(), items...), nil
}

var (
	countNames = map[string]bool{"count": true, "size": true, "rows": true}
	valueNames = map[string]bool{"value": true, "repeating": true, "fill": true}
)

func repeatingBindings(bindings []*ast.Argument) (count, val *ast.Argument) {
	first, second := bindings[0], bindings[1]
	switch {
	case countNames[second.Name] || valueNames[first.Name]:
		return second, first
	default:
		return first, second
	}
}

func (in *Interpreter) evalStructLiteral(lit *ast.StructLiteral) (value.Value, error) {
	def, ok := in.registry.Struct(lit.TypeName)
	if !ok {
		return nil, vlerrors.UnknownType(lit.TypeName)
	}
	st := def.Struct()
	instance := value.NewStruct(def)

	given := make(map[string]bool, len(lit.Fields))
	for _, init := range lit.Fields {
		f, ok := st.Field(init.Name)
		if !ok {
			return nil, vlerrors.UnknownField(st.Name, init.Name).At(init.Span)
		}
		if given[init.Name] {
			return nil, vlerrors.DuplicateField(st.Name, init.Name).At(init.Span)
		}
		given[init.Name] = true

		raw, err := in.evalExpecting(init.Value, f.Type)
		if err != nil {
			return nil, err
		}
		converted, ok := value.Convert(raw, f.Type)
		if !ok {
			return nil, vlerrors.TypeMismatch("field '"+init.Name+"' of "+st.Name, f.Type.String(), raw.Type().String()).At(init.Value.GetSpan())
		}
		instance.Set(init.Name, value.Copy(converted))
	}

	for _, f := range st.Fields {
		if !given[f.Name] {
			return nil, vlerrors.MissingField(st.Name, f.Name)
		}
	}
	return instance, nil
}

// evalIncDec applies `x++` or `x--` and yields the old value.
func (in *Interpreter) evalIncDec(e *ast.IncDecExpression) (value.Value, error) {
	target, err := in.resolveTarget(e.Target)
	if err != nil {
		return nil, err
	}

	old := target.get()
	op := e.Operator[:1]
	updated, err := binary(op, old, value.Int(1))
	if vlerrors.HasCode(err, vlerrors.CodeInvalidOperation) {
		return nil, vlerrors.InvalidOperation(e.Operator, old.Type().String(), "")
	}
	if err != nil {
		return nil, err
	}
	if err := target.set(updated); err != nil {
		return nil, err
	}
	return old, nil
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpression) (value.Value, error) {
	v, err := in.evalValue(e.Operand)
	if err != nil {
		return nil, err
	}
	return unary(e.Operator, v)
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpression) (value.Value, error) {
	left, err := in.evalValue(e.Left)
	if err != nil {
		return nil, err
	}

	// && and || do not evaluate the right operand once the left one
	// decides the result.
	if e.Operator == "&&" || e.Operator == "||" {
		lb, ok := left.(value.Bool)
		if !ok {
			return nil, vlerrors.InvalidOperation(e.Operator, left.Type().String(), "bool")
		}
		if (e.Operator == "&&" && !bool(lb)) || (e.Operator == "||" && bool(lb)) {
			return lb, nil
		}
		right, err := in.evalValue(e.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(value.Bool)
		if !ok {
			return nil, vlerrors.InvalidOperation(e.Operator, "bool", right.Type().String())
		}
		return rb, nil
	}

	right, err := in.evalValue(e.Right)
	if err != nil {
		return nil, err
	}
	return binary(e.Operator, left, right)
}
