package ast

import (
	"testing"
)

func ident(path ...string) *Identifier { return &Identifier{Path: path} }

func intLit(v int64) *Literal { return &Literal{Kind: LiteralInteger, Value: v} }

func TestStringRendering(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{
			"typed declaration",
			&VarDeclaration{Kind: DeclTyped, Name: "x", Type: &TypeExpr{Name: "int"}, Value: intLit(5)},
			"x int = 5;",
		},
		{
			"mutable no init",
			&VarDeclaration{Kind: DeclMutNoInit, Name: "v", Type: &TypeExpr{Name: "float", Dimensions: 1}, Mutable: true},
			"mut v []float;",
		},
		{
			"vector declaration",
			&VarDeclaration{
				Kind: DeclVector, Name: "v", Mutable: true,
				Type:  &TypeExpr{Name: "int", Dimensions: 1},
				Value: &VectorLiteral{Elements: []Expression{intLit(1), intLit(2)}},
			},
			"v = []int{1, 2};",
		},
		{
			"binary precedence is explicit",
			&BinaryExpression{
				Left:     intLit(1),
				Operator: "+",
				Right:    &BinaryExpression{Left: intLit(2), Operator: "*", Right: intLit(3)},
			},
			"(1 + (2 * 3))",
		},
		{
			"index then property",
			&PropertyExpression{
				Base:  &IndexExpression{Base: ident("pts"), Indices: []Expression{intLit(0)}},
				Field: "x",
			},
			"pts[0].x",
		},
		{
			"call with named argument",
			&CallExpression{Callee: ident("f"), Arguments: []*Argument{{Value: intLit(1)}, {Name: "y", Value: intLit(2)}}},
			"f(1, y: 2)",
		},
		{
			"interpolated string",
			&InterpolatedString{Parts: []StringPart{{Text: "hi "}, {Ref: ident("name")}, {Text: " $"}}},
			`"hi ${name} \$"`,
		},
		{
			"repeating builder",
			&RepeatingExpression{
				Type:     &TypeExpr{Name: "int", Dimensions: 1},
				Bindings: []*Argument{{Name: "count", Value: intLit(3)}, {Name: "value", Value: intLit(0)}},
			},
			"[]int(count: 3, value: 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestInspectVisitsEveryNode(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&FunctionDeclaration{
			Name:       "f",
			Parameters: []*Parameter{{Name: "a", Type: &TypeExpr{Name: "int"}}},
			ReturnType: &TypeExpr{Name: "int"},
			Body: &BlockStatement{Statements: []Statement{
				&ReturnStatement{Value: &BinaryExpression{Left: ident("a"), Operator: "+", Right: intLit(1)}},
			}},
		},
		&IfStatement{
			Branches: []*IfBranch{{Condition: &Literal{Kind: LiteralBool, Value: true}, Body: &BlockStatement{}}},
		},
	}}

	counts := map[string]int{}
	Inspect(prog, func(n Node) bool {
		switch n.(type) {
		case *Identifier:
			counts["ident"]++
		case *Literal:
			counts["literal"]++
		case *TypeExpr:
			counts["type"]++
		case *BlockStatement:
			counts["block"]++
		}
		return true
	})

	if counts["ident"] != 1 || counts["literal"] != 2 || counts["type"] != 2 || counts["block"] != 2 {
		t.Fatalf("unexpected node counts %v", counts)
	}

	// Returning false prunes the subtree.
	seen := 0
	Inspect(prog, func(n Node) bool {
		seen++
		_, isFn := n.(*FunctionDeclaration)
		return !isFn
	})
	if seen != 5 {
		t.Fatalf("expected 5 nodes outside the function body, got %d", seen)
	}
}

type countingVisitor struct {
	BaseVisitor
	loops int
}

func (c *countingVisitor) VisitWhileStatement(node *WhileStatement) interface{} {
	c.loops++
	return nil
}

func (c *countingVisitor) VisitForEachStatement(node *ForEachStatement) interface{} {
	c.loops++
	return nil
}

func TestVisitorDispatch(t *testing.T) {
	stmts := []Statement{
		&WhileStatement{Condition: ident("ok"), Body: &BlockStatement{}},
		&ForEachStatement{Key: "i", Value: "v", Iterable: ident("xs"), Body: &BlockStatement{}},
		&BreakStatement{},
	}

	v := &countingVisitor{}
	for _, s := range stmts {
		s.Accept(v)
	}
	if v.loops != 2 {
		t.Fatalf("expected 2 loops, got %d", v.loops)
	}
}

func TestDump(t *testing.T) {
	decl := &VarDeclaration{Kind: DeclMutInferred, Name: "x", Mutable: true, Value: intLit(3)}
	m := Dump(decl)

	if m["node"] != "VarDeclaration" {
		t.Fatalf("unexpected node kind %v", m["node"])
	}
	if m["kind"] != "mut-inferred" || m["mutable"] != true {
		t.Errorf("unexpected declaration fields %v", m)
	}
	value, ok := m["value"].(map[string]interface{})
	if !ok || value["node"] != "Literal" || value["value"] != int64(3) {
		t.Errorf("unexpected value %v", m["value"])
	}

	if Dump(nil) != nil {
		t.Error("Dump(nil) should be nil")
	}
}
