package ast

// Visitor has one method per node type. Implementations that only care
// about a few node types embed BaseVisitor.
type Visitor interface {
	VisitProgram(node *Program) interface{}
	VisitTypeExpr(node *TypeExpr) interface{}

	// Statement visitors.
	VisitVarDeclaration(node *VarDeclaration) interface{}
	VisitAssignStatement(node *AssignStatement) interface{}
	VisitBlockStatement(node *BlockStatement) interface{}
	VisitExpressionStatement(node *ExpressionStatement) interface{}
	VisitReturnStatement(node *ReturnStatement) interface{}
	VisitBreakStatement(node *BreakStatement) interface{}
	VisitContinueStatement(node *ContinueStatement) interface{}
	VisitIfStatement(node *IfStatement) interface{}
	VisitSwitchStatement(node *SwitchStatement) interface{}
	VisitWhileStatement(node *WhileStatement) interface{}
	VisitForStatement(node *ForStatement) interface{}
	VisitForClauseStatement(node *ForClauseStatement) interface{}
	VisitForEachStatement(node *ForEachStatement) interface{}
	VisitFunctionDeclaration(node *FunctionDeclaration) interface{}
	VisitStructDeclaration(node *StructDeclaration) interface{}

	// Expression visitors.
	VisitIdentifier(node *Identifier) interface{}
	VisitLiteral(node *Literal) interface{}
	VisitInterpolatedString(node *InterpolatedString) interface{}
	VisitParenExpression(node *ParenExpression) interface{}
	VisitCallExpression(node *CallExpression) interface{}
	VisitIndexExpression(node *IndexExpression) interface{}
	VisitPropertyExpression(node *PropertyExpression) interface{}
	VisitMethodCallExpression(node *MethodCallExpression) interface{}
	VisitVectorLiteral(node *VectorLiteral) interface{}
	VisitRepeatingExpression(node *RepeatingExpression) interface{}
	VisitUnaryExpression(node *UnaryExpression) interface{}
	VisitBinaryExpression(node *BinaryExpression) interface{}
	VisitStructLiteral(node *StructLiteral) interface{}
	VisitIncDecExpression(node *IncDecExpression) interface{}
	VisitRangeExpression(node *RangeExpression) interface{}
}

// BaseVisitor provides a default implementation of the Visitor interface
// that returns nil for all visits.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitProgram(node *Program) interface{}                         { return nil }
func (v *BaseVisitor) VisitTypeExpr(node *TypeExpr) interface{}                       { return nil }
func (v *BaseVisitor) VisitVarDeclaration(node *VarDeclaration) interface{}           { return nil }
func (v *BaseVisitor) VisitAssignStatement(node *AssignStatement) interface{}         { return nil }
func (v *BaseVisitor) VisitBlockStatement(node *BlockStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitExpressionStatement(node *ExpressionStatement) interface{} { return nil }
func (v *BaseVisitor) VisitReturnStatement(node *ReturnStatement) interface{}         { return nil }
func (v *BaseVisitor) VisitBreakStatement(node *BreakStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitContinueStatement(node *ContinueStatement) interface{}     { return nil }
func (v *BaseVisitor) VisitIfStatement(node *IfStatement) interface{}                 { return nil }
func (v *BaseVisitor) VisitSwitchStatement(node *SwitchStatement) interface{}         { return nil }
func (v *BaseVisitor) VisitWhileStatement(node *WhileStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitForStatement(node *ForStatement) interface{}               { return nil }
func (v *BaseVisitor) VisitForClauseStatement(node *ForClauseStatement) interface{}   { return nil }
func (v *BaseVisitor) VisitForEachStatement(node *ForEachStatement) interface{}       { return nil }
func (v *BaseVisitor) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} { return nil }
func (v *BaseVisitor) VisitStructDeclaration(node *StructDeclaration) interface{}     { return nil }
func (v *BaseVisitor) VisitIdentifier(node *Identifier) interface{}                   { return nil }
func (v *BaseVisitor) VisitLiteral(node *Literal) interface{}                         { return nil }
func (v *BaseVisitor) VisitInterpolatedString(node *InterpolatedString) interface{}   { return nil }
func (v *BaseVisitor) VisitParenExpression(node *ParenExpression) interface{}         { return nil }
func (v *BaseVisitor) VisitCallExpression(node *CallExpression) interface{}           { return nil }
func (v *BaseVisitor) VisitIndexExpression(node *IndexExpression) interface{}         { return nil }
func (v *BaseVisitor) VisitPropertyExpression(node *PropertyExpression) interface{}   { return nil }
func (v *BaseVisitor) VisitMethodCallExpression(node *MethodCallExpression) interface{} {
	return nil
}
func (v *BaseVisitor) VisitVectorLiteral(node *VectorLiteral) interface{}             { return nil }
func (v *BaseVisitor) VisitRepeatingExpression(node *RepeatingExpression) interface{} { return nil }
func (v *BaseVisitor) VisitUnaryExpression(node *UnaryExpression) interface{}         { return nil }
func (v *BaseVisitor) VisitBinaryExpression(node *BinaryExpression) interface{}       { return nil }
func (v *BaseVisitor) VisitStructLiteral(node *StructLiteral) interface{}             { return nil }
func (v *BaseVisitor) VisitIncDecExpression(node *IncDecExpression) interface{}       { return nil }
func (v *BaseVisitor) VisitRangeExpression(node *RangeExpression) interface{}         { return nil }

// Children returns the direct child nodes of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil && !isNilNode(n) {
				out = append(out, n)
			}
		}
	}
	addStmts := func(stmts []Statement) {
		for _, s := range stmts {
			add(s)
		}
	}
	addArgs := func(args []*Argument) {
		for _, a := range args {
			add(a.Value)
		}
	}

	switch n := node.(type) {
	case *Program:
		addStmts(n.Statements)
	case *VarDeclaration:
		add(n.Type, n.Value)
	case *AssignStatement:
		add(n.Target, n.Value)
	case *BlockStatement:
		addStmts(n.Statements)
	case *ExpressionStatement:
		add(n.Expression)
	case *ReturnStatement:
		add(n.Value)
	case *IfStatement:
		for _, br := range n.Branches {
			add(br.Condition, br.Body)
		}
		add(n.Else)
	case *SwitchStatement:
		add(n.Subject)
		for _, c := range n.Cases {
			add(c.Value)
			addStmts(c.Body)
		}
		if n.Default != nil {
			addStmts(n.Default.Body)
		}
	case *WhileStatement:
		add(n.Condition, n.Body)
	case *ForStatement:
		add(n.Condition, n.Body)
	case *ForClauseStatement:
		add(n.Init, n.Condition, n.Update, n.Body)
	case *ForEachStatement:
		add(n.Iterable, n.Body)
	case *FunctionDeclaration:
		for _, p := range n.Parameters {
			add(p.Type)
		}
		add(n.ReturnType, n.Body)
	case *StructDeclaration:
		for _, f := range n.Fields {
			add(f.Type)
		}
	case *InterpolatedString:
		for _, p := range n.Parts {
			add(p.Ref)
		}
	case *ParenExpression:
		add(n.Inner)
	case *CallExpression:
		add(n.Callee)
		addArgs(n.Arguments)
	case *IndexExpression:
		add(n.Base)
		for _, idx := range n.Indices {
			add(idx)
		}
	case *PropertyExpression:
		add(n.Base)
	case *MethodCallExpression:
		add(n.Base, n.Call)
	case *VectorLiteral:
		for _, e := range n.Elements {
			add(e)
		}
	case *RepeatingExpression:
		add(n.Type)
		addArgs(n.Bindings)
	case *UnaryExpression:
		add(n.Operand)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *StructLiteral:
		for _, f := range n.Fields {
			add(f.Value)
		}
	case *IncDecExpression:
		add(n.Target)
	case *RangeExpression:
		add(n.From, n.To)
	}

	return out
}

// isNilNode catches typed nil pointers stored in a Node interface.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *TypeExpr:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *AssignStatement:
		return v == nil
	case *Identifier:
		return v == nil
	case *CallExpression:
		return v == nil
	}
	return false
}

// Inspect traverses the tree depth-first, calling f for each node. If f
// returns false the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || isNilNode(node) || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}
