package value

import (
	"strconv"
	"strings"
)

// DefaultPrecision is the number of decimals used for floats.
const DefaultPrecision = 4

// Format renders v the way print shows it. Floats use precision decimals,
// vectors render as `[ 1 2 3 ]` and structs as `P{x: 1, name: "a"}`.
func Format(v Value, precision int) string {
	var sb strings.Builder
	write(&sb, v, precision, false)
	return sb.String()
}

func write(sb *strings.Builder, v Value, precision int, quote bool) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("void")
	case Int:
		sb.WriteString(strconv.FormatInt(int64(x), 10))
	case Float:
		sb.WriteString(strconv.FormatFloat(float64(x), 'f', precision, 64))
	case String:
		if quote {
			sb.WriteString(strconv.Quote(string(x)))
		} else {
			sb.WriteString(string(x))
		}
	case Bool:
		sb.WriteString(strconv.FormatBool(bool(x)))
	case Nil:
		sb.WriteString("nil")
	case *Vector:
		if len(x.Items) == 0 {
			sb.WriteString("[ ]")
			return
		}
		sb.WriteString("[ ")
		for i, item := range x.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			write(sb, item, precision, false)
		}
		sb.WriteString(" ]")
	case *Struct:
		sb.WriteString(x.Name())
		sb.WriteByte('{')
		for i, f := range x.Def.Struct().Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			write(sb, x.Fields[i], precision, true)
		}
		sb.WriteByte('}')
	}
}
