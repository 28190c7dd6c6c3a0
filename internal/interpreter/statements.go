package interpreter

import (
	"fmt"

	"github.com/vlang-lab/vlang/internal/ast"
	vlerrors "github.com/vlang-lab/vlang/internal/errors"
	"github.com/vlang-lab/vlang/internal/position"
	"github.com/vlang-lab/vlang/internal/types"
	"github.com/vlang-lab/vlang/internal/value"
)

func (in *Interpreter) execStatement(stmt ast.Statement) (control, error) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		return running, in.execDeclaration(s)
	case *ast.AssignStatement:
		return running, in.execAssign(s)
	case *ast.BlockStatement:
		return in.execBlock(s, "block")
	case *ast.ExpressionStatement:
		_, err := in.eval(s.Expression)
		return running, err
	case *ast.ReturnStatement:
		if s.Value == nil {
			return control{kind: controlReturn}, nil
		}
		v, err := in.evalValue(s.Value)
		if err != nil {
			return running, err
		}
		return control{kind: controlReturn, value: v}, nil
	case *ast.BreakStatement:
		return control{kind: controlBreak}, nil
	case *ast.ContinueStatement:
		return control{kind: controlContinue}, nil
	case *ast.IfStatement:
		return in.execIf(s)
	case *ast.SwitchStatement:
		return in.execSwitch(s)
	case *ast.WhileStatement:
		return in.execConditionalLoop("while", s.Condition, s.Body)
	case *ast.ForStatement:
		return in.execConditionalLoop("for", s.Condition, s.Body)
	case *ast.ForClauseStatement:
		return in.execForClause(s)
	case *ast.ForEachStatement:
		return in.execForEach(s)
	case *ast.FunctionDeclaration, *ast.StructDeclaration:
		// registered before execution
		return running, nil
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement %T", stmt))
	}
}

// execStatements runs stmts in the current scope until one transfers
// control.
func (in *Interpreter) execStatements(stmts []ast.Statement) (control, error) {
	for _, stmt := range stmts {
		ctl, err := in.execStatement(stmt)
		if err != nil {
			return running, locate(err, stmt)
		}
		if ctl.kind != controlNone {
			return ctl, nil
		}
	}
	return running, nil
}

// execBlock runs a block in a fresh child scope.
func (in *Interpreter) execBlock(block *ast.BlockStatement, name string) (control, error) {
	in.env.Push(name)
	defer in.env.Pop()
	return in.execStatements(block.Statements)
}

func (in *Interpreter) execDeclaration(d *ast.VarDeclaration) error {
	var declared *types.Type
	if d.Type != nil {
		t, err := in.registry.Resolve(d.Type)
		if err != nil {
			return err
		}
		declared = t
	}

	var v value.Value
	switch {
	case d.Value == nil:
		v = value.Default(declared)
	case declared != nil:
		raw, err := in.evalExpecting(d.Value, declared)
		if err != nil {
			return err
		}
		converted, ok := value.Convert(raw, declared)
		if !ok {
			return vlerrors.TypeMismatch("declaration of '"+d.Name+"'", declared.String(), raw.Type().String()).At(d.Value.GetSpan())
		}
		v = converted
	default:
		raw, err := in.evalValue(d.Value)
		if err != nil {
			return err
		}
		if err := inferable(raw); err != nil {
			return err.At(d.Value.GetSpan())
		}
		v = raw
		declared = raw.Type()
	}

	if err := in.env.Declare(d.Name, declared, d.Mutable, v, d.NamePos); err != nil {
		return locate(err, d)
	}
	return nil
}

// inferable rejects values whose type cannot be a binding type.
func inferable(v value.Value) *vlerrors.StandardError {
	t := v.Type()
	switch {
	case t.Kind == types.TypeKindNil:
		return vlerrors.Semantic(vlerrors.CodeTypeMismatch, "cannot infer a type from nil")
	case unknownElement(t):
		return vlerrors.Semantic(vlerrors.CodeTypeMismatch, "cannot infer the element type of an empty vector")
	}
	return nil
}

func (in *Interpreter) execAssign(a *ast.AssignStatement) error {
	target, err := in.resolveTarget(a.Target)
	if err != nil {
		return err
	}

	v, err := in.evalExpecting(a.Value, target.typ)
	if err != nil {
		return err
	}

	if a.Operator != "=" {
		current := target.get()
		v, err = binary(a.Operator[:1], current, v)
		if err != nil {
			return locate(err, a)
		}
	}

	return locate(target.set(v), a.Value)
}

func (in *Interpreter) condition(expr ast.Expression, context string) (bool, error) {
	v, err := in.evalValue(expr)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return false, vlerrors.TypeMismatch(context, "bool", v.Type().String()).At(expr.GetSpan())
	}
	return bool(b), nil
}

func (in *Interpreter) execIf(s *ast.IfStatement) (control, error) {
	for _, br := range s.Branches {
		ok, err := in.condition(br.Condition, "if condition")
		if err != nil {
			return running, err
		}
		if ok {
			return in.execBlock(br.Body, "if")
		}
	}
	if s.Else != nil {
		return in.execBlock(s.Else, "else")
	}
	return running, nil
}

// execSwitch compares the subject with each case by type and value. The
// first match runs; there is no fallthrough. break leaves the switch.
func (in *Interpreter) execSwitch(s *ast.SwitchStatement) (control, error) {
	subject, err := in.evalValue(s.Subject)
	if err != nil {
		return running, err
	}

	var chosen *ast.SwitchCase
	for _, c := range s.Cases {
		v, err := in.evalValue(c.Value)
		if err != nil {
			return running, err
		}
		if v.Type().Equals(subject.Type()) && value.Equal(v, subject) {
			chosen = c
			break
		}
	}
	if chosen == nil {
		chosen = s.Default
	}
	if chosen == nil {
		return running, nil
	}

	in.env.Push("case")
	defer in.env.Pop()
	ctl, err := in.execStatements(chosen.Body)
	if ctl.kind == controlBreak {
		ctl = running
	}
	return ctl, err
}

// loopBody runs one iteration and reports whether the loop should stop.
func loopBody(ctl control, err error) (stop bool, result control, _ error) {
	if err != nil {
		return true, running, err
	}
	switch ctl.kind {
	case controlBreak:
		return true, running, nil
	case controlReturn:
		return true, ctl, nil
	}
	return false, running, nil
}

func (in *Interpreter) execConditionalLoop(keyword string, cond ast.Expression, body *ast.BlockStatement) (control, error) {
	for {
		if err := in.checkCancelled(); err != nil {
			return running, err
		}
		ok, err := in.condition(cond, keyword+" condition")
		if err != nil || !ok {
			return running, err
		}
		if stop, ctl, err := loopBody(in.execBlock(body, keyword)); stop {
			return ctl, err
		}
	}
}

// execForClause runs `for init; cond; update {}`. The init binding lives
// in a scope that persists across iterations; when its target is an
// undeclared plain name it declares a mutable loop variable. The update
// expression's value is discarded.
func (in *Interpreter) execForClause(s *ast.ForClauseStatement) (control, error) {
	in.env.PushLoop("for")
	defer in.env.Pop()

	if err := in.execForInit(s.Init); err != nil {
		return running, locate(err, s.Init)
	}

	for {
		if err := in.checkCancelled(); err != nil {
			return running, err
		}
		ok, err := in.condition(s.Condition, "for condition")
		if err != nil || !ok {
			return running, err
		}
		if stop, ctl, err := loopBody(in.execBlock(s.Body, "for body")); stop {
			return ctl, err
		}
		if _, err := in.eval(s.Update); err != nil {
			return running, locate(err, s.Update)
		}
	}
}

func (in *Interpreter) execForInit(init *ast.AssignStatement) error {
	id, ok := init.Target.(*ast.Identifier)
	if !ok || len(id.Path) != 1 || init.Operator != "=" || in.env.IsDefined(id.Name()) {
		return in.execAssign(init)
	}

	v, err := in.evalValue(init.Value)
	if err != nil {
		return err
	}
	if err := inferable(v); err != nil {
		return err.At(init.Value.GetSpan())
	}
	return in.env.Declare(id.Name(), v.Type(), true, v, id.Span.Start)
}

// execForEach iterates (index, value) pairs over a vector, a matrix (rows),
// a string (one-character strings) or an inclusive integer range. Each
// iteration binds copies in a fresh scope; `_` skips a binding.
func (in *Interpreter) execForEach(s *ast.ForEachStatement) (control, error) {
	var items []value.Value
	var elem *types.Type

	if r, ok := s.Iterable.(*ast.RangeExpression); ok {
		from, to, err := in.rangeBounds(r)
		if err != nil {
			return running, err
		}
		for i := from; i <= to; i++ {
			items = append(items, value.Int(i))
		}
		elem = types.TypeInt
	} else {
		v, err := in.evalValue(s.Iterable)
		if err != nil {
			return running, err
		}
		switch x := v.(type) {
		case *value.Vector:
			items, elem = x.Items, x.Elem
		case value.String:
			for _, r := range string(x) {
				items = append(items, value.String(string(r)))
			}
			elem = types.TypeString
		default:
			return running, vlerrors.TypeMismatch("for-each", "vector, matrix, range or string", v.Type().String()).At(s.Iterable.GetSpan())
		}
	}

	pos := s.Span.Start
	for i := 0; i < len(items); i++ {
		if err := in.checkCancelled(); err != nil {
			return running, err
		}
		ctl, err := in.forEachIteration(s, i, items[i], elem, pos)
		if stop, result, err := loopBody(ctl, err); stop {
			return result, err
		}
	}
	return running, nil
}

func (in *Interpreter) forEachIteration(s *ast.ForEachStatement, i int, item value.Value, elem *types.Type, pos position.Position) (control, error) {
	in.env.PushLoop("for-each")
	defer in.env.Pop()

	if s.Key != "_" {
		if err := in.env.Declare(s.Key, types.TypeInt, true, value.Int(i), pos); err != nil {
			return running, err
		}
	}
	if s.Value != "_" {
		if err := in.env.Declare(s.Value, elem, true, item, pos); err != nil {
			return running, err
		}
	}
	return in.execBlock(s.Body, "for-each body")
}

func (in *Interpreter) rangeBounds(r *ast.RangeExpression) (int64, int64, error) {
	bound := func(e ast.Expression) (int64, error) {
		v, err := in.evalValue(e)
		if err != nil {
			return 0, err
		}
		n, ok := v.(value.Int)
		if !ok {
			return 0, vlerrors.TypeMismatch("range bound", "int", v.Type().String()).At(e.GetSpan())
		}
		return int64(n), nil
	}

	from, err := bound(r.From)
	if err != nil {
		return 0, 0, err
	}
	to, err := bound(r.To)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
