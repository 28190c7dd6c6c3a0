// Package ast defines the Abstract Syntax Tree (AST) nodes for VLang.
//
// The node set is closed: statements and expressions carry unexported
// marker methods, so only this package can add variants, and consumers
// switch over the concrete types exhaustively. Every node records the
// source span it was parsed from.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vlang-lab/vlang/internal/position"
)

// Node is the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// String returns a source-like representation of the node
	String() string
	// Accept implements the visitor pattern for AST traversal
	Accept(visitor Visitor) interface{}
}

// Statement represents all statement nodes in the AST
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes in the AST
type Expression interface {
	Node
	expressionNode()
}

// ===== Program Structure =====

// Program represents the root of the AST - a complete source file
type Program struct {
	Span       position.Span
	Statements []Statement
}

func (p *Program) GetSpan() position.Span { return p.Span }
func (p *Program) String() string {
	parts := make([]string, 0, len(p.Statements))
	for _, s := range p.Statements {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "\n")
}
func (p *Program) Accept(visitor Visitor) interface{} { return visitor.VisitProgram(p) }

// TypeExpr is a written type: a named scalar or struct type wrapped in
// zero or more `[]` dimensions.
type TypeExpr struct {
	Span       position.Span
	Name       string
	Dimensions int
}

func (t *TypeExpr) GetSpan() position.Span             { return t.Span }
func (t *TypeExpr) String() string                     { return strings.Repeat("[]", t.Dimensions) + t.Name }
func (t *TypeExpr) Accept(visitor Visitor) interface{} { return visitor.VisitTypeExpr(t) }

// ===== Statements =====

// DeclKind identifies which of the declaration shapes produced a VarDeclaration.
type DeclKind int

const (
	DeclMutTyped    DeclKind = iota // mut x int = e
	DeclMutInferred                 // mut x = e
	DeclMutNoInit                   // mut x int
	DeclTyped                       // x int = e
	DeclVector                      // x = []int{...}
	DeclMatrix                      // x = [][]int{{...}}
)

func (k DeclKind) String() string {
	switch k {
	case DeclMutTyped:
		return "mut-typed"
	case DeclMutInferred:
		return "mut-inferred"
	case DeclMutNoInit:
		return "mut-no-init"
	case DeclTyped:
		return "typed"
	case DeclVector:
		return "vector"
	case DeclMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// VarDeclaration binds a new name in the current scope.
type VarDeclaration struct {
	Span    position.Span
	Kind    DeclKind
	Name    string
	NamePos position.Position
	Type    *TypeExpr  // nil when inferred
	Value   Expression // nil for DeclMutNoInit
	Mutable bool
}

func (d *VarDeclaration) GetSpan() position.Span { return d.Span }
func (d *VarDeclaration) statementNode()         {}
func (d *VarDeclaration) String() string {
	var b strings.Builder
	if d.Mutable && d.Kind != DeclVector && d.Kind != DeclMatrix {
		b.WriteString("mut ")
	}
	b.WriteString(d.Name)
	switch d.Kind {
	case DeclVector, DeclMatrix:
		b.WriteString(" = " + d.Type.String() + d.Value.String())
	default:
		if d.Type != nil {
			b.WriteString(" " + d.Type.String())
		}
		if d.Value != nil {
			b.WriteString(" = " + d.Value.String())
		}
	}
	b.WriteString(";")
	return b.String()
}
func (d *VarDeclaration) Accept(visitor Visitor) interface{} { return visitor.VisitVarDeclaration(d) }

// AssignStatement is `target = e`, `target += e` or `target -= e`. The
// target is an *Identifier (possibly dotted) or an *IndexExpression.
type AssignStatement struct {
	Span     position.Span
	Target   Expression
	Operator string
	Value    Expression
}

func (a *AssignStatement) GetSpan() position.Span { return a.Span }
func (a *AssignStatement) statementNode()         {}
func (a *AssignStatement) String() string {
	return fmt.Sprintf("%s %s %s;", a.Target, a.Operator, a.Value)
}
func (a *AssignStatement) Accept(visitor Visitor) interface{} { return visitor.VisitAssignStatement(a) }

// BlockStatement represents a brace-delimited list of statements
type BlockStatement struct {
	Span       position.Span
	Statements []Statement
}

func (b *BlockStatement) GetSpan() position.Span { return b.Span }
func (b *BlockStatement) statementNode()         {}
func (b *BlockStatement) String() string {
	if len(b.Statements) == 0 {
		return "{ }"
	}
	parts := make([]string, 0, len(b.Statements))
	for _, s := range b.Statements {
		parts = append(parts, s.String())
	}
	return "{ " + strings.Join(parts, " ") + " }"
}
func (b *BlockStatement) Accept(visitor Visitor) interface{} { return visitor.VisitBlockStatement(b) }

// ExpressionStatement is an expression evaluated for its side effects:
// a call, a method call or an increment.
type ExpressionStatement struct {
	Span       position.Span
	Expression Expression
}

func (e *ExpressionStatement) GetSpan() position.Span { return e.Span }
func (e *ExpressionStatement) statementNode()         {}
func (e *ExpressionStatement) String() string         { return e.Expression.String() + ";" }
func (e *ExpressionStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitExpressionStatement(e)
}

// ReturnStatement represents `return` with an optional value
type ReturnStatement struct {
	Span  position.Span
	Value Expression
}

func (r *ReturnStatement) GetSpan() position.Span { return r.Span }
func (r *ReturnStatement) statementNode()         {}
func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}
func (r *ReturnStatement) Accept(visitor Visitor) interface{} { return visitor.VisitReturnStatement(r) }

// BreakStatement represents `break`
type BreakStatement struct {
	Span position.Span
}

func (b *BreakStatement) GetSpan() position.Span             { return b.Span }
func (b *BreakStatement) statementNode()                     {}
func (b *BreakStatement) String() string                     { return "break;" }
func (b *BreakStatement) Accept(visitor Visitor) interface{} { return visitor.VisitBreakStatement(b) }

// ContinueStatement represents `continue`
type ContinueStatement struct {
	Span position.Span
}

func (c *ContinueStatement) GetSpan() position.Span { return c.Span }
func (c *ContinueStatement) statementNode()         {}
func (c *ContinueStatement) String() string         { return "continue;" }
func (c *ContinueStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitContinueStatement(c)
}

// IfBranch is one condition/block pair of an if chain.
type IfBranch struct {
	Span      position.Span
	Condition Expression
	Body      *BlockStatement
}

// IfStatement is `if c {} else if c {} else {}`.
type IfStatement struct {
	Span     position.Span
	Branches []*IfBranch
	Else     *BlockStatement
}

func (i *IfStatement) GetSpan() position.Span { return i.Span }
func (i *IfStatement) statementNode()         {}
func (i *IfStatement) String() string {
	parts := make([]string, 0, len(i.Branches)+1)
	for _, br := range i.Branches {
		parts = append(parts, "if "+br.Condition.String()+" "+br.Body.String())
	}
	s := strings.Join(parts, " else ")
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}
func (i *IfStatement) Accept(visitor Visitor) interface{} { return visitor.VisitIfStatement(i) }

// SwitchCase is a `case e:` arm; Value is nil for `default:`.
type SwitchCase struct {
	Span  position.Span
	Value Expression
	Body  []Statement
}

func (c *SwitchCase) String() string {
	head := "default:"
	if c.Value != nil {
		head = "case " + c.Value.String() + ":"
	}
	for _, s := range c.Body {
		head += " " + s.String()
	}
	return head
}

// SwitchStatement compares Subject against each case in order.
type SwitchStatement struct {
	Span    position.Span
	Subject Expression
	Cases   []*SwitchCase
	Default *SwitchCase
}

func (s *SwitchStatement) GetSpan() position.Span { return s.Span }
func (s *SwitchStatement) statementNode()         {}
func (s *SwitchStatement) String() string {
	parts := []string{"switch " + s.Subject.String() + " {"}
	for _, c := range s.Cases {
		parts = append(parts, c.String())
	}
	if s.Default != nil {
		parts = append(parts, s.Default.String())
	}
	return strings.Join(parts, " ") + " }"
}
func (s *SwitchStatement) Accept(visitor Visitor) interface{} { return visitor.VisitSwitchStatement(s) }

// WhileStatement is `while c {}`.
type WhileStatement struct {
	Span      position.Span
	Condition Expression
	Body      *BlockStatement
}

func (w *WhileStatement) GetSpan() position.Span { return w.Span }
func (w *WhileStatement) statementNode()         {}
func (w *WhileStatement) String() string {
	return "while " + w.Condition.String() + " " + w.Body.String()
}
func (w *WhileStatement) Accept(visitor Visitor) interface{} { return visitor.VisitWhileStatement(w) }

// ForStatement is the conditional form `for c {}`.
type ForStatement struct {
	Span      position.Span
	Condition Expression
	Body      *BlockStatement
}

func (f *ForStatement) GetSpan() position.Span { return f.Span }
func (f *ForStatement) statementNode()         {}
func (f *ForStatement) String() string {
	return "for " + f.Condition.String() + " " + f.Body.String()
}
func (f *ForStatement) Accept(visitor Visitor) interface{} { return visitor.VisitForStatement(f) }

// ForClauseStatement is the three-part form `for init; cond; update {}`.
type ForClauseStatement struct {
	Span      position.Span
	Init      *AssignStatement
	Condition Expression
	Update    Expression
	Body      *BlockStatement
}

func (f *ForClauseStatement) GetSpan() position.Span { return f.Span }
func (f *ForClauseStatement) statementNode()         {}
func (f *ForClauseStatement) String() string {
	init := strings.TrimSuffix(f.Init.String(), ";")
	return fmt.Sprintf("for %s; %s; %s %s", init, f.Condition, f.Update, f.Body)
}
func (f *ForClauseStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitForClauseStatement(f)
}

// ForEachStatement is `for k, v in iterable {}`.
type ForEachStatement struct {
	Span     position.Span
	Key      string
	Value    string
	Iterable Expression
	Body     *BlockStatement
}

func (f *ForEachStatement) GetSpan() position.Span { return f.Span }
func (f *ForEachStatement) statementNode()         {}
func (f *ForEachStatement) String() string {
	return fmt.Sprintf("for %s, %s in %s %s", f.Key, f.Value, f.Iterable, f.Body)
}
func (f *ForEachStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitForEachStatement(f)
}

// Parameter is a typed function parameter.
type Parameter struct {
	Span position.Span
	Name string
	Type *TypeExpr
}

func (p *Parameter) String() string { return p.Name + " " + p.Type.String() }

// FunctionDeclaration represents a top-level function definition
type FunctionDeclaration struct {
	Span       position.Span
	Name       string
	Parameters []*Parameter
	ReturnType *TypeExpr // nil for void functions
	Body       *BlockStatement
}

func (f *FunctionDeclaration) GetSpan() position.Span { return f.Span }
func (f *FunctionDeclaration) statementNode()         {}
func (f *FunctionDeclaration) String() string {
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}
	ret := ""
	if f.ReturnType != nil {
		ret = " " + f.ReturnType.String()
	}
	return fmt.Sprintf("fn %s(%s)%s %s", f.Name, strings.Join(params, ", "), ret, f.Body)
}
func (f *FunctionDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitFunctionDeclaration(f)
}

// StructField is one `type name;` entry of a struct declaration.
type StructField struct {
	Span position.Span
	Type *TypeExpr
	Name string
}

// StructDeclaration represents `struct Name { T a; T b; }`
type StructDeclaration struct {
	Span   position.Span
	Name   string
	Fields []*StructField
}

func (s *StructDeclaration) GetSpan() position.Span { return s.Span }
func (s *StructDeclaration) statementNode()         {}
func (s *StructDeclaration) String() string {
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		parts = append(parts, f.Type.String()+" "+f.Name+";")
	}
	return "struct " + s.Name + " { " + strings.Join(parts, " ") + " }"
}
func (s *StructDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitStructDeclaration(s)
}

// ===== Expressions =====

// Identifier is a name or a dotted path such as `p.pos.x`.
type Identifier struct {
	Span position.Span
	Path []string
}

func (i *Identifier) GetSpan() position.Span             { return i.Span }
func (i *Identifier) expressionNode()                    {}
func (i *Identifier) String() string                     { return strings.Join(i.Path, ".") }
func (i *Identifier) Accept(visitor Visitor) interface{} { return visitor.VisitIdentifier(i) }

// Name returns the root name of the path.
func (i *Identifier) Name() string { return i.Path[0] }

// LiteralKind represents the kind of literal
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBool
	LiteralNil
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInteger:
		return "int"
	case LiteralFloat:
		return "float"
	case LiteralString:
		return "string"
	case LiteralBool:
		return "bool"
	case LiteralNil:
		return "nil"
	default:
		return "unknown"
	}
}

// Literal is an int, float, string, bool or nil constant. Value holds an
// int64, float64, string, bool or nil respectively.
type Literal struct {
	Span  position.Span
	Kind  LiteralKind
	Value interface{}
}

func (l *Literal) GetSpan() position.Span { return l.Span }
func (l *Literal) expressionNode()        {}
func (l *Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return strconv.Quote(l.Value.(string))
	case LiteralNil:
		return "nil"
	case LiteralFloat:
		return strconv.FormatFloat(l.Value.(float64), 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", l.Value)
	}
}
func (l *Literal) Accept(visitor Visitor) interface{} { return visitor.VisitLiteral(l) }

// StringPart is either literal text or a reference interpolated with $name.
type StringPart struct {
	Text string
	Ref  *Identifier
}

// InterpolatedString is a string literal containing `$name` or `${name}`.
type InterpolatedString struct {
	Span  position.Span
	Parts []StringPart
}

func (s *InterpolatedString) GetSpan() position.Span { return s.Span }
func (s *InterpolatedString) expressionNode()        {}
func (s *InterpolatedString) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range s.Parts {
		if p.Ref != nil {
			b.WriteString("${" + p.Ref.String() + "}")
		} else {
			q := strconv.Quote(p.Text)
			b.WriteString(strings.ReplaceAll(q[1:len(q)-1], "$", `\$`))
		}
	}
	b.WriteByte('"')
	return b.String()
}
func (s *InterpolatedString) Accept(visitor Visitor) interface{} {
	return visitor.VisitInterpolatedString(s)
}

// ParenExpression is a parenthesized expression.
type ParenExpression struct {
	Span  position.Span
	Inner Expression
}

func (p *ParenExpression) GetSpan() position.Span             { return p.Span }
func (p *ParenExpression) expressionNode()                    {}
func (p *ParenExpression) String() string                     { return "(" + p.Inner.String() + ")" }
func (p *ParenExpression) Accept(visitor Visitor) interface{} { return visitor.VisitParenExpression(p) }

// Argument is a call argument, optionally named (`f(x: 1)`).
type Argument struct {
	Span  position.Span
	Name  string
	Value Expression
}

func (a *Argument) String() string {
	if a.Name != "" {
		return a.Name + ": " + a.Value.String()
	}
	return a.Value.String()
}

func argumentList(args []*Argument) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}

// CallExpression is `callee(args)`. A dotted callee such as `v.len()`
// applies the last segment to the value named by the rest of the path.
type CallExpression struct {
	Span      position.Span
	Callee    *Identifier
	Arguments []*Argument
}

func (c *CallExpression) GetSpan() position.Span { return c.Span }
func (c *CallExpression) expressionNode()        {}
func (c *CallExpression) String() string {
	return c.Callee.String() + "(" + argumentList(c.Arguments) + ")"
}
func (c *CallExpression) Accept(visitor Visitor) interface{} { return visitor.VisitCallExpression(c) }

// IndexExpression is `base[i][j]...` with at least one index.
type IndexExpression struct {
	Span    position.Span
	Base    Expression
	Indices []Expression
}

func (i *IndexExpression) GetSpan() position.Span { return i.Span }
func (i *IndexExpression) expressionNode()        {}
func (i *IndexExpression) String() string {
	var b strings.Builder
	b.WriteString(i.Base.String())
	for _, idx := range i.Indices {
		b.WriteString("[" + idx.String() + "]")
	}
	return b.String()
}
func (i *IndexExpression) Accept(visitor Visitor) interface{} { return visitor.VisitIndexExpression(i) }

// PropertyExpression is `base.field` where base is not a plain path.
type PropertyExpression struct {
	Span  position.Span
	Base  Expression
	Field string
}

func (p *PropertyExpression) GetSpan() position.Span { return p.Span }
func (p *PropertyExpression) expressionNode()        {}
func (p *PropertyExpression) String() string         { return p.Base.String() + "." + p.Field }
func (p *PropertyExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitPropertyExpression(p)
}

// MethodCallExpression is `base.f(args)` where base is not a plain path.
type MethodCallExpression struct {
	Span position.Span
	Base Expression
	Call *CallExpression
}

func (m *MethodCallExpression) GetSpan() position.Span { return m.Span }
func (m *MethodCallExpression) expressionNode()        {}
func (m *MethodCallExpression) String() string         { return m.Base.String() + "." + m.Call.String() }
func (m *MethodCallExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitMethodCallExpression(m)
}

// VectorLiteral is `{e, e, ...}`, possibly empty. Nested vector literals
// form matrices.
type VectorLiteral struct {
	Span     position.Span
	Elements []Expression
}

func (v *VectorLiteral) GetSpan() position.Span { return v.Span }
func (v *VectorLiteral) expressionNode()        {}
func (v *VectorLiteral) String() string {
	parts := make([]string, 0, len(v.Elements))
	for _, e := range v.Elements {
		parts = append(parts, e.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (v *VectorLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitVectorLiteral(v) }

// RepeatingExpression is `[]T(count: n, value: v)` or its matrix form.
// The parser guarantees exactly two bindings.
type RepeatingExpression struct {
	Span     position.Span
	Type     *TypeExpr
	Bindings []*Argument
}

func (r *RepeatingExpression) GetSpan() position.Span { return r.Span }
func (r *RepeatingExpression) expressionNode()        {}
func (r *RepeatingExpression) String() string {
	return r.Type.String() + "(" + argumentList(r.Bindings) + ")"
}
func (r *RepeatingExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitRepeatingExpression(r)
}

// UnaryExpression is `-e` or `!e`.
type UnaryExpression struct {
	Span     position.Span
	Operator string
	Operand  Expression
}

func (u *UnaryExpression) GetSpan() position.Span { return u.Span }
func (u *UnaryExpression) expressionNode()        {}
func (u *UnaryExpression) String() string         { return "(" + u.Operator + u.Operand.String() + ")" }
func (u *UnaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitUnaryExpression(u)
}

// BinaryExpression is `left op right`.
type BinaryExpression struct {
	Span     position.Span
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) GetSpan() position.Span { return b.Span }
func (b *BinaryExpression) expressionNode()        {}
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}
func (b *BinaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinaryExpression(b)
}

// FieldInit is one `name: e` entry of a struct literal.
type FieldInit struct {
	Span  position.Span
	Name  string
	Value Expression
}

// StructLiteral is `Name{a: e, b: e}`. Duplicate names are kept so the
// evaluator can report them.
type StructLiteral struct {
	Span     position.Span
	TypeName string
	Fields   []*FieldInit
}

func (s *StructLiteral) GetSpan() position.Span { return s.Span }
func (s *StructLiteral) expressionNode()        {}
func (s *StructLiteral) String() string {
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		parts = append(parts, f.Name+": "+f.Value.String())
	}
	return s.TypeName + "{" + strings.Join(parts, ", ") + "}"
}
func (s *StructLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitStructLiteral(s) }

// IncDecExpression is the postfix `x++` or `x--`.
type IncDecExpression struct {
	Span     position.Span
	Target   *Identifier
	Operator string
}

func (i *IncDecExpression) GetSpan() position.Span { return i.Span }
func (i *IncDecExpression) expressionNode()        {}
func (i *IncDecExpression) String() string         { return i.Target.String() + i.Operator }
func (i *IncDecExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitIncDecExpression(i)
}

// RangeExpression is the inclusive integer range `from...to`.
type RangeExpression struct {
	Span position.Span
	From Expression
	To   Expression
}

func (r *RangeExpression) GetSpan() position.Span { return r.Span }
func (r *RangeExpression) expressionNode()        {}
func (r *RangeExpression) String() string         { return r.From.String() + "..." + r.To.String() }
func (r *RangeExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitRangeExpression(r)
}
