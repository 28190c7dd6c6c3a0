package interpreter

import (
	"fmt"

	"github.com/vlang-lab/vlang/internal/ast"
	"github.com/vlang-lab/vlang/internal/env"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/value"
)

// evalCall calls a function or builtin. A dotted callee such as `v.len()`
// or `p.items.append(3)` passes the value named by the rest of the path as
// the first argument.
func (in *Interpreter) evalCall(c *ast.CallExpression) (value.Value, error) {
	path := c.Callee.Path
	if len(path) == 1 {
		return in.callNamed(path[0], nil, c)
	}

	recv, err := in.readPath(&ast.Identifier{Span: c.Callee.Span, Path: path[:len(path)-1]})
	if err != nil {
		return nil, err
	}
	return in.callNamed(path[len(path)-1], recv, c)
}

// evalMethodCall is evalCall for receivers that are not plain paths, as
// in `m[0].len()`.
func (in *Interpreter) evalMethodCall(m *ast.MethodCallExpression) (value.Value, error) {
	recv, err := in.evalValue(m.Base)
	if err != nil {
		return nil, err
	}
	v, err := in.callNamed(m.Call.Callee.Name(), recv, m.Call)
	if err != nil {
		return nil, locate(err, m.Call)
	}
	return v, nil
}

func (in *Interpreter) callNamed(name string, recv value.Value, c *ast.CallExpression) (value.Value, error) {
	if fn, ok := in.registry.Function(name); ok {
		return in.callFunction(fn, recv, c)
	}

	if b, ok := builtins[name]; ok {
		args := make([]value.Value, 0, len(c.Arguments)+1)
		if recv != nil {
			args = append(args, recv)
		}
		for _, a := range c.Arguments {
			v, err := in.evalValue(a.Value)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return b(in, name, args)
	}

	if in.env.IsDefined(name) {
		return nil, vlerrors.NotCallable(name)
	}
	return nil, vlerrors.UndefinedName(name)
}

// bindArguments matches call arguments to parameters: positional ones in
// order, named ones by parameter name. A receiver fills the first
// parameter.
func (in *Interpreter) bindArguments(fn *env.Function, recv value.Value, c *ast.CallExpression) ([]value.Value, error) {
	params := fn.Parameters
	given := len(c.Arguments)
	if recv != nil {
		given++
	}
	if given != len(params) {
		return nil, vlerrors.ArityMismatch(fn.Name, len(params), given)
	}

	values := make([]value.Value, len(params))
	next := 0
	if recv != nil {
		values[0] = recv
		next = 1
	}

	named := false
	for _, a := range c.Arguments {
		idx := next
		switch {
		case a.Name == "" && named:
			return nil, vlerrors.InvalidArgument(fn.Name, "positional argument after named argument").At(a.Span)
		case a.Name == "":
			next++
		default:
			named = true
			idx = parameterIndex(params, a.Name)
			if idx < 0 {
				return nil, vlerrors.InvalidArgument(fn.Name, fmt.Sprintf("unknown parameter '%s'", a.Name)).At(a.Span)
			}
			if values[idx] != nil {
				return nil, vlerrors.InvalidArgument(fn.Name, fmt.Sprintf("parameter '%s' given more than once", a.Name)).At(a.Span)
			}
		}

		p := params[idx]
		raw, err := in.evalExpecting(a.Value, p.Type)
		if err != nil {
			return nil, err
		}
		converted, ok := value.Convert(raw, p.Type)
		if !ok {
			return nil, vlerrors.TypeMismatch(fmt.Sprintf("argument '%s' of %s", p.Name, fn.Name), p.Type.String(), raw.Type().String()).At(a.Value.GetSpan())
		}
		values[idx] = converted
	}

	if recv != nil {
		converted, ok := value.Convert(recv, params[0].Type)
		if !ok {
			return nil, vlerrors.TypeMismatch(fmt.Sprintf("receiver of %s", fn.Name), params[0].Type.String(), recv.Type().String())
		}
		values[0] = converted
	}
	return values, nil
}

func parameterIndex(params []env.Parameter, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// callFunction runs fn in a fresh scope whose parent is the global scope.
func (in *Interpreter) callFunction(fn *env.Function, recv value.Value, c *ast.CallExpression) (value.Value, error) {
	args, err := in.bindArguments(fn, recv, c)
	if err != nil {
		return nil, err
	}

	if in.depth >= in.maxDepth {
		return nil, vlerrors.CallDepthExceeded(in.maxDepth)
	}
	if err := in.checkCancelled(); err != nil {
		return nil, err
	}
	in.depth++
	defer func() { in.depth-- }()

	in.env.PushFunction(fn.Name)
	defer in.env.Pop()

	for i, p := range fn.Parameters {
		if err := in.env.Declare(p.Name, p.Type, true, args[i], fn.Decl.Parameters[i].Span.Start); err != nil {
			return nil, err
		}
	}

	ctl, err := in.execStatements(fn.Decl.Body.Statements)
	if err != nil {
		return nil, err
	}

	if fn.ReturnType == nil {
		if ctl.kind == controlReturn && ctl.value != nil {
			return nil, vlerrors.TypeMismatch("return value of '"+fn.Name+"'", "no value", ctl.value.Type().String())
		}
		return nil, nil
	}

	if ctl.kind != controlReturn || ctl.value == nil {
		return nil, vlerrors.MissingReturn(fn.Name, fn.ReturnType.String())
	}
	result, ok := value.Convert(ctl.value, fn.ReturnType)
	if !ok {
		return nil, vlerrors.TypeMismatch("return value of '"+fn.Name+"'", fn.ReturnType.String(), ctl.value.Type().String())
	}
	return value.Copy(result), nil
}
