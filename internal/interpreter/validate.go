package interpreter

import (
	"github.com/vlang-lab/vlang/internal/ast"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
)

// Validate checks prog before execution. It reports break outside a loop
// or switch, continue outside a loop, return outside a function, and
// functions with a return type whose body never returns.
func Validate(prog *ast.Program) []error {
	v := &validator{}
	for _, s := range prog.Statements {
		v.statement(s)
	}
	return v.errs
}

type validator struct {
	errs     []error
	loops    int
	switches int
	funcs    int
}

func (v *validator) report(err *vlerrors.StandardError, node ast.Node) {
	v.errs = append(v.errs, err.At(node.GetSpan()))
}

func (v *validator) statements(stmts []ast.Statement) {
	for _, s := range stmts {
		v.statement(s)
	}
}

func (v *validator) loop(body *ast.BlockStatement) {
	v.loops++
	v.statements(body.Statements)
	v.loops--
}

func (v *validator) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BreakStatement:
		if v.loops == 0 && v.switches == 0 {
			v.report(vlerrors.InvalidTransfer("break", "loop or switch"), s)
		}
	case *ast.ContinueStatement:
		if v.loops == 0 {
			v.report(vlerrors.InvalidTransfer("continue", "loop"), s)
		}
	case *ast.ReturnStatement:
		if v.funcs == 0 {
			v.report(vlerrors.InvalidTransfer("return", "function"), s)
		}
	case *ast.BlockStatement:
		v.statements(s.Statements)
	case *ast.IfStatement:
		for _, br := range s.Branches {
			v.statements(br.Body.Statements)
		}
		if s.Else != nil {
			v.statements(s.Else.Statements)
		}
	case *ast.SwitchStatement:
		v.switches++
		for _, c := range s.Cases {
			v.statements(c.Body)
		}
		if s.Default != nil {
			v.statements(s.Default.Body)
		}
		v.switches--
	case *ast.WhileStatement:
		v.loop(s.Body)
	case *ast.ForStatement:
		v.loop(s.Body)
	case *ast.ForClauseStatement:
		v.loop(s.Body)
	case *ast.ForEachStatement:
		v.loop(s.Body)
	case *ast.FunctionDeclaration:
		loops, switches := v.loops, v.switches
		v.loops, v.switches = 0, 0
		v.funcs++
		v.statements(s.Body.Statements)
		v.funcs--
		v.loops, v.switches = loops, switches

		if s.ReturnType != nil && !returnsValue(s.Body) {
			v.report(vlerrors.MissingReturn(s.Name, s.ReturnType.String()), s)
		}
	}
}

// returnsValue reports whether any return statement with a value appears
// in body.
func returnsValue(body *ast.BlockStatement) bool {
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		if r, ok := n.(*ast.ReturnStatement); ok && r.Value != nil {
			found = true
		}
		return !found
	})
	return found
}
