package interpreter

import (
	"github.com/vlang-lab/vlang/internal/ast"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/value"
)

// controlKind is the loop-control state threaded through statement
// execution. Break and continue are absorbed by the nearest loop (break
// also by a switch), return by the nearest function call.
type controlKind int

const (
	controlNone controlKind = iota
	controlBreak
	controlContinue
	controlReturn
)

func (k controlKind) String() string {
	switch k {
	case controlBreak:
		return "break"
	case controlContinue:
		return "continue"
	case controlReturn:
		return "return"
	default:
		return "running"
	}
}

// scope names the construct that absorbs the transfer.
func (k controlKind) scope() string {
	if k == controlReturn {
		return "function"
	}
	return "loop"
}

type control struct {
	value value.Value // return value, nil for a bare return
	kind  controlKind
}

var running = control{}

// locate attaches the span of node to err unless it already has one.
func locate(err error, node ast.Node) error {
	if se, ok := vlerrors.As(err); ok {
		return se.At(node.GetSpan())
	}
	return err
}
