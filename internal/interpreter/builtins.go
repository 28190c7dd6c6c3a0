package interpreter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/types"
	"github.com/vlang-lab/vlang/internal/value"
)

// builtin implements a predefined function. A nil result means the call
// produces no value.
type builtin func(in *Interpreter, name string, args []value.Value) (value.Value, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"print":      builtinPrint,
		"println":    builtinPrint,
		"atoi":       builtinAtoi,
		"parseFloat": builtinParseFloat,
		"TypeOf":     builtinTypeOf,
		"indexOf":    builtinIndexOf,
		"join":       builtinJoin,
		"len":        builtinLen,
		"append":     builtinAppend,
	}
}

func isBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func builtinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func arity(name string, args []value.Value, want int) error {
	if len(args) != want {
		return vlerrors.ArityMismatch(name, want, len(args))
	}
	return nil
}

// builtinPrint writes its arguments separated by spaces; println adds a
// newline.
func builtinPrint(in *Interpreter, name string, args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.Format(a, in.precision)
	}
	line := strings.Join(parts, " ")
	if name == "println" {
		line += "\n"
	}
	if _, err := fmt.Fprint(in.out, line); err != nil {
		return nil, vlerrors.NewStandardError(vlerrors.CategorySystem, vlerrors.CodeInvalidArgument, err.Error(), nil)
	}
	return nil, nil
}

// builtinAtoi converts a string or float to an int, truncating toward
// zero.
func builtinAtoi(_ *Interpreter, name string, args []value.Value) (value.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case value.Int:
		return x, nil
	case value.Float:
		return value.Int(int64(x)), nil
	case value.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		if err != nil {
			return nil, vlerrors.InvalidArgument(name, fmt.Sprintf("cannot convert %q to int", string(x)))
		}
		return value.Int(int64(f)), nil
	}
	return nil, vlerrors.TypeMismatch(name, "string or float", args[0].Type().String())
}

func builtinParseFloat(_ *Interpreter, name string, args []value.Value) (value.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case value.Float:
		return x, nil
	case value.Int:
		return value.Float(x), nil
	case value.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		if err != nil {
			return nil, vlerrors.InvalidArgument(name, fmt.Sprintf("cannot convert %q to float", string(x)))
		}
		return value.Float(f), nil
	}
	return nil, vlerrors.TypeMismatch(name, "string", args[0].Type().String())
}

func builtinTypeOf(_ *Interpreter, name string, args []value.Value) (value.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	return value.String(args[0].Type().String()), nil
}

func vectorArg(name string, v value.Value) (*value.Vector, error) {
	vec, ok := v.(*value.Vector)
	if !ok {
		return nil, vlerrors.TypeMismatch(name, "vector", v.Type().String())
	}
	return vec, nil
}

// builtinIndexOf returns the index of the first item equal to the value,
// or -1.
func builtinIndexOf(_ *Interpreter, name string, args []value.Value) (value.Value, error) {
	if err := arity(name, args, 2); err != nil {
		return nil, err
	}
	vec, err := vectorArg(name, args[0])
	if err != nil {
		return nil, err
	}
	for i, item := range vec.Items {
		if value.Equal(item, args[1]) {
			return value.Int(i), nil
		}
	}
	return value.Int(-1), nil
}

func builtinJoin(in *Interpreter, name string, args []value.Value) (value.Value, error) {
	if err := arity(name, args, 2); err != nil {
		return nil, err
	}
	vec, err := vectorArg(name, args[0])
	if err != nil {
		return nil, err
	}
	sep, ok := args[1].(value.String)
	if !ok {
		return nil, vlerrors.TypeMismatch(name+" separator", "string", args[1].Type().String())
	}
	parts := make([]string, len(vec.Items))
	for i, item := range vec.Items {
		parts[i] = value.Format(item, in.precision)
	}
	return value.String(strings.Join(parts, string(sep))), nil
}

func builtinLen(_ *Interpreter, name string, args []value.Value) (value.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case *value.Vector:
		return value.Int(len(x.Items)), nil
	case value.String:
		return value.Int(utf8.RuneCountInString(string(x))), nil
	}
	return nil, vlerrors.TypeMismatch(name, "vector or string", args[0].Type().String())
}

// builtinAppend returns a new vector with the value added at the end; the
// argument vector is not modified. Appending a row to a matrix works the
// same way.
func builtinAppend(_ *Interpreter, name string, args []value.Value) (value.Value, error) {
	if err := arity(name, args, 2); err != nil {
		return nil, err
	}
	vec, err := vectorArg(name, args[0])
	if err != nil {
		return nil, err
	}

	elem := vec.Elem
	if elem.Kind == types.TypeKindVoid {
		elem = args[1].Type()
	}
	item, ok := value.Convert(args[1], elem)
	if !ok {
		return nil, vlerrors.TypeMismatch(name, elem.String(), args[1].Type().String())
	}

	out := value.Copy(vec).(*value.Vector)
	out.Elem = elem
	out.Items = append(out.Items, value.Copy(item))
	return out, nil
}
