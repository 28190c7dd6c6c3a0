package ast

// Dump converts a node into nested maps and slices suitable for JSON or
// YAML encoding. Every map carries a "node" key naming the variant and a
// "span" key with the source range.
func Dump(node Node) map[string]interface{} {
	if node == nil || isNilNode(node) {
		return nil
	}
	m, _ := node.Accept(dumper{}).(map[string]interface{})
	return m
}

type dumper struct{}

func entry(kind string, n Node, kv ...interface{}) map[string]interface{} {
	m := map[string]interface{}{
		"node": kind,
		"span": n.GetSpan().String(),
	}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}
	return m
}

func dumpStmts(stmts []Statement) []interface{} {
	out := make([]interface{}, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, Dump(s))
	}
	return out
}

func dumpExprs(exprs []Expression) []interface{} {
	out := make([]interface{}, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, Dump(e))
	}
	return out
}

func dumpArgs(args []*Argument) []interface{} {
	out := make([]interface{}, 0, len(args))
	for _, a := range args {
		m := map[string]interface{}{"value": Dump(a.Value)}
		if a.Name != "" {
			m["name"] = a.Name
		}
		out = append(out, m)
	}
	return out
}

func typeName(t *TypeExpr) interface{} {
	if t == nil {
		return nil
	}
	return t.String()
}

func (dumper) VisitProgram(n *Program) interface{} {
	return entry("Program", n, "statements", dumpStmts(n.Statements))
}

func (dumper) VisitTypeExpr(n *TypeExpr) interface{} {
	return entry("Type", n, "name", n.Name, "dimensions", n.Dimensions)
}

func (dumper) VisitVarDeclaration(n *VarDeclaration) interface{} {
	return entry("VarDeclaration", n,
		"kind", n.Kind.String(),
		"name", n.Name,
		"mutable", n.Mutable,
		"type", typeName(n.Type),
		"value", Dump(n.Value))
}

func (dumper) VisitAssignStatement(n *AssignStatement) interface{} {
	return entry("Assign", n, "target", Dump(n.Target), "operator", n.Operator, "value", Dump(n.Value))
}

func (dumper) VisitBlockStatement(n *BlockStatement) interface{} {
	return entry("Block", n, "statements", dumpStmts(n.Statements))
}

func (dumper) VisitExpressionStatement(n *ExpressionStatement) interface{} {
	return entry("ExpressionStatement", n, "expression", Dump(n.Expression))
}

func (dumper) VisitReturnStatement(n *ReturnStatement) interface{} {
	return entry("Return", n, "value", Dump(n.Value))
}

func (dumper) VisitBreakStatement(n *BreakStatement) interface{} {
	return entry("Break", n)
}

func (dumper) VisitContinueStatement(n *ContinueStatement) interface{} {
	return entry("Continue", n)
}

func (dumper) VisitIfStatement(n *IfStatement) interface{} {
	branches := make([]interface{}, 0, len(n.Branches))
	for _, br := range n.Branches {
		branches = append(branches, map[string]interface{}{
			"condition": Dump(br.Condition),
			"body":      Dump(br.Body),
		})
	}
	return entry("If", n, "branches", branches, "else", Dump(n.Else))
}

func (dumper) VisitSwitchStatement(n *SwitchStatement) interface{} {
	cases := make([]interface{}, 0, len(n.Cases))
	for _, c := range n.Cases {
		cases = append(cases, map[string]interface{}{
			"value": Dump(c.Value),
			"body":  dumpStmts(c.Body),
		})
	}
	var def interface{}
	if n.Default != nil {
		def = dumpStmts(n.Default.Body)
	}
	return entry("Switch", n, "subject", Dump(n.Subject), "cases", cases, "default", def)
}

func (dumper) VisitWhileStatement(n *WhileStatement) interface{} {
	return entry("While", n, "condition", Dump(n.Condition), "body", Dump(n.Body))
}

func (dumper) VisitForStatement(n *ForStatement) interface{} {
	return entry("For", n, "condition", Dump(n.Condition), "body", Dump(n.Body))
}

func (dumper) VisitForClauseStatement(n *ForClauseStatement) interface{} {
	return entry("ForClause", n,
		"init", Dump(n.Init),
		"condition", Dump(n.Condition),
		"update", Dump(n.Update),
		"body", Dump(n.Body))
}

func (dumper) VisitForEachStatement(n *ForEachStatement) interface{} {
	return entry("ForEach", n,
		"key", n.Key,
		"value", n.Value,
		"iterable", Dump(n.Iterable),
		"body", Dump(n.Body))
}

func (dumper) VisitFunctionDeclaration(n *FunctionDeclaration) interface{} {
	params := make([]interface{}, 0, len(n.Parameters))
	for _, p := range n.Parameters {
		params = append(params, map[string]interface{}{"name": p.Name, "type": p.Type.String()})
	}
	return entry("Function", n,
		"name", n.Name,
		"parameters", params,
		"return_type", typeName(n.ReturnType),
		"body", Dump(n.Body))
}

func (dumper) VisitStructDeclaration(n *StructDeclaration) interface{} {
	fields := make([]interface{}, 0, len(n.Fields))
	for _, f := range n.Fields {
		fields = append(fields, map[string]interface{}{"name": f.Name, "type": f.Type.String()})
	}
	return entry("Struct", n, "name", n.Name, "fields", fields)
}

func (dumper) VisitIdentifier(n *Identifier) interface{} {
	return entry("Identifier", n, "name", n.String())
}

func (dumper) VisitLiteral(n *Literal) interface{} {
	return entry("Literal", n, "kind", n.Kind.String(), "value", n.Value)
}

func (dumper) VisitInterpolatedString(n *InterpolatedString) interface{} {
	parts := make([]interface{}, 0, len(n.Parts))
	for _, p := range n.Parts {
		if p.Ref != nil {
			parts = append(parts, map[string]interface{}{"ref": p.Ref.String()})
		} else {
			parts = append(parts, map[string]interface{}{"text": p.Text})
		}
	}
	return entry("InterpolatedString", n, "parts", parts)
}

func (dumper) VisitParenExpression(n *ParenExpression) interface{} {
	return entry("Paren", n, "inner", Dump(n.Inner))
}

func (dumper) VisitCallExpression(n *CallExpression) interface{} {
	return entry("Call", n, "callee", n.Callee.String(), "arguments", dumpArgs(n.Arguments))
}

func (dumper) VisitIndexExpression(n *IndexExpression) interface{} {
	return entry("Index", n, "base", Dump(n.Base), "indices", dumpExprs(n.Indices))
}

func (dumper) VisitPropertyExpression(n *PropertyExpression) interface{} {
	return entry("Property", n, "base", Dump(n.Base), "field", n.Field)
}

func (dumper) VisitMethodCallExpression(n *MethodCallExpression) interface{} {
	return entry("MethodCall", n, "base", Dump(n.Base), "call", Dump(n.Call))
}

func (dumper) VisitVectorLiteral(n *VectorLiteral) interface{} {
	return entry("Vector", n, "elements", dumpExprs(n.Elements))
}

func (dumper) VisitRepeatingExpression(n *RepeatingExpression) interface{} {
	return entry("Repeating", n, "type", n.Type.String(), "bindings", dumpArgs(n.Bindings))
}

func (dumper) VisitUnaryExpression(n *UnaryExpression) interface{} {
	return entry("Unary", n, "operator", n.Operator, "operand", Dump(n.Operand))
}

func (dumper) VisitBinaryExpression(n *BinaryExpression) interface{} {
	return entry("Binary", n, "operator", n.Operator, "left", Dump(n.Left), "right", Dump(n.Right))
}

func (dumper) VisitStructLiteral(n *StructLiteral) interface{} {
	fields := make([]interface{}, 0, len(n.Fields))
	for _, f := range n.Fields {
		fields = append(fields, map[string]interface{}{"name": f.Name, "value": Dump(f.Value)})
	}
	return entry("StructLiteral", n, "type", n.TypeName, "fields", fields)
}

func (dumper) VisitIncDecExpression(n *IncDecExpression) interface{} {
	return entry("IncDec", n, "target", n.Target.String(), "operator", n.Operator)
}

func (dumper) VisitRangeExpression(n *RangeExpression) interface{} {
	return entry("Range", n, "from", Dump(n.From), "to", Dump(n.To))
}
