package interpreter

import (
	"math"

	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/value"
)

func unary(op string, v value.Value) (value.Value, error) {
	switch op {
	case "-":
		switch x := v.(type) {
		case value.Int:
			if x == math.MinInt64 {
				return nil, vlerrors.IntegerOverflow(op)
			}
			return -x, nil
		case value.Float:
			return -x, nil
		}
	case "!":
		if b, ok := v.(value.Bool); ok {
			return !b, nil
		}
	}
	return nil, vlerrors.InvalidOperation(op, v.Type().String(), "")
}

// binary applies every binary operator except && and ||. Ints stay ints,
// mixing an int with a float yields a float, two strings concatenate
// under +.
func binary(op string, left, right value.Value) (value.Value, error) {
	switch op {
	case "==", "!=":
		eq, err := equality(op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool(eq == (op == "==")), nil
	case "<", "<=", ">", ">=":
		return compare(op, left, right)
	}

	if l, ok := left.(value.String); ok && op == "+" {
		if r, ok := right.(value.String); ok {
			return l + r, nil
		}
	}

	li, lInt := left.(value.Int)
	ri, rInt := right.(value.Int)
	if lInt && rInt {
		return intArithmetic(op, li, ri)
	}

	lf, lNum := value.ToFloat(left)
	rf, rNum := value.ToFloat(right)
	if lNum && rNum {
		return floatArithmetic(op, lf, rf)
	}

	return nil, vlerrors.InvalidOperation(op, left.Type().String(), right.Type().String())
}

// intArithmetic reports INTEGER_OVERFLOW instead of wrapping.
func intArithmetic(op string, l, r value.Int) (value.Value, error) {
	switch op {
	case "+":
		sum := l + r
		if (l >= 0) == (r >= 0) && (sum >= 0) != (l >= 0) {
			return nil, vlerrors.IntegerOverflow(op)
		}
		return sum, nil
	case "-":
		diff := l - r
		if (l >= 0) != (r >= 0) && (diff >= 0) != (l >= 0) {
			return nil, vlerrors.IntegerOverflow(op)
		}
		return diff, nil
	case "*":
		product := l * r
		if l != 0 && (product/l != r || (l == -1 && r == math.MinInt64)) {
			return nil, vlerrors.IntegerOverflow(op)
		}
		return product, nil
	case "/", "%":
		if r == 0 {
			return nil, vlerrors.DivisionByZero(op)
		}
		if op == "/" {
			if l == math.MinInt64 && r == -1 {
				return nil, vlerrors.IntegerOverflow(op)
			}
			return l / r, nil
		}
		return l % r, nil
	}
	return nil, vlerrors.InvalidOperation(op, "int", "int")
}

func floatArithmetic(op string, l, r float64) (value.Value, error) {
	switch op {
	case "+":
		return value.Float(l + r), nil
	case "-":
		return value.Float(l - r), nil
	case "*":
		return value.Float(l * r), nil
	case "/", "%":
		if r == 0 {
			return nil, vlerrors.DivisionByZero(op)
		}
		if op == "/" {
			return value.Float(l / r), nil
		}
		return value.Float(math.Mod(l, r)), nil
	}
	return nil, vlerrors.InvalidOperation(op, "float", "float")
}

// equality compares numbers numerically and everything else by type and
// value. nil compares equal only to nil or an unset struct.
func equality(op string, left, right value.Value) (bool, error) {
	_, lNum := value.ToFloat(left)
	_, rNum := value.ToFloat(right)
	if lNum && rNum {
		return value.Equal(left, right), nil
	}

	lt, rt := left.Type(), right.Type()
	if !lt.CanConvertTo(rt) && !rt.CanConvertTo(lt) {
		return false, vlerrors.InvalidOperation(op, lt.String(), rt.String())
	}
	return value.Equal(left, right), nil
}

func compare(op string, left, right value.Value) (value.Value, error) {
	var c int
	li, lInt := left.(value.Int)
	ri, rInt := right.(value.Int)
	lf, lNum := value.ToFloat(left)
	rf, rNum := value.ToFloat(right)
	ls, lStr := left.(value.String)
	rs, rStr := right.(value.String)

	switch {
	case lInt && rInt:
		c = cmp(li < ri, li > ri)
	case lNum && rNum:
		c = cmp(lf < rf, lf > rf)
	case lStr && rStr:
		c = cmp(ls < rs, ls > rs)
	default:
		return nil, vlerrors.InvalidOperation(op, left.Type().String(), right.Type().String())
	}

	switch op {
	case "<":
		return value.Bool(c < 0), nil
	case "<=":
		return value.Bool(c <= 0), nil
	case ">":
		return value.Bool(c > 0), nil
	default:
		return value.Bool(c >= 0), nil
	}
}

func cmp(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}
