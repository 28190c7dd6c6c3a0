package parser

import (
	"fmt"
	"strconv"

	"github.com/vlang-lab/vlang/internal/ast"
	"github.com/vlang-lab/vlang/internal/lexer"
	"github.com/vlang-lab/vlang/internal/position"
)

// Operator precedence levels, loosest first.
const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	POSTFIX     // x[i] x.f x.f() x++
)

// precedences maps binary operator tokens to their precedence
var precedences = map[lexer.TokenType]int{
	lexer.TokenOr:  OR,
	lexer.TokenAnd: AND,
	lexer.TokenEq:  EQUALS,
	lexer.TokenNe:  EQUALS,
	lexer.TokenLt:  LESSGREATER,
	lexer.TokenLe:  LESSGREATER,
	lexer.TokenGt:  LESSGREATER,
	lexer.TokenGe:  LESSGREATER,

	lexer.TokenPlus:  SUM,
	lexer.TokenMinus: SUM,
	lexer.TokenMul:   PRODUCT,
	lexer.TokenDiv:   PRODUCT,
	lexer.TokenMod:   PRODUCT,
}

// peekPrecedence returns the precedence of the peek token
func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Type]; ok {
		return prec
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token
func (p *Parser) currentPrecedence() int {
	if prec, ok := precedences[p.current.Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression climbs binary operators whose precedence is above
// precedence. On return current is the last token of the expression.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefixExpression()
	if left == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.TokenSemicolon) && precedence < p.peekPrecedence() {
		p.nextToken()
		left = p.parseBinaryExpression(left)
		if left == nil {
			return nil
		}
	}

	return left
}

// parseBinaryExpression parses the right operand of a left-associative
// binary operator. Current is the operator.
func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	op := p.current
	precedence := p.currentPrecedence()
	p.nextToken()

	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	return &ast.BinaryExpression{
		Span:     position.Between(left.GetSpan().Start, p.current.Span.End),
		Left:     left,
		Operator: op.Literal,
		Right:    right,
	}
}

// parsePrefixExpression parses unary operators, then a primary followed
// by its postfix chain.
func (p *Parser) parsePrefixExpression() ast.Expression {
	switch p.current.Type {
	case lexer.TokenMinus, lexer.TokenNot:
		start := p.current
		p.nextToken()
		operand := p.parseExpression(PREFIX)
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpression{
			Span:     p.spanFrom(start),
			Operator: start.Literal,
			Operand:  operand,
		}
	}

	primary := p.parsePrimaryExpression()
	if primary == nil {
		return nil
	}
	return p.parsePostfixChain(primary)
}

// parsePrimaryExpression parses literals, identifiers, calls, struct
// literals, vector literals, repeating expressions and parentheses.
func (p *Parser) parsePrimaryExpression() ast.Expression {
	switch p.current.Type {
	case lexer.TokenInteger:
		return p.parseIntegerLiteral()
	case lexer.TokenFloat:
		return p.parseFloatLiteral()
	case lexer.TokenString:
		return p.parseStringLiteral()
	case lexer.TokenTrue, lexer.TokenFalse:
		return &ast.Literal{
			Span:  p.current.Span,
			Kind:  ast.LiteralBool,
			Value: p.currentTokenIs(lexer.TokenTrue),
		}
	case lexer.TokenNil:
		return &ast.Literal{Span: p.current.Span, Kind: ast.LiteralNil}
	case lexer.TokenLParen:
		start := p.current
		p.nextToken()
		inner := p.parseExpression(LOWEST)
		if inner == nil || !p.expectPeek(lexer.TokenRParen) {
			return nil
		}
		return &ast.ParenExpression{Span: p.spanFrom(start), Inner: inner}
	case lexer.TokenLBrace:
		if lit := p.parseVectorLiteral(); lit != nil {
			return lit
		}
		return nil
	case lexer.TokenLBracket:
		if rep := p.parseRepeatingExpression(); rep != nil {
			return rep
		}
		return nil
	case lexer.TokenIdentifier:
		return p.parseIdentifierExpression()
	default:
		p.addError(p.current.Pos(),
			fmt.Sprintf("unexpected %s in expression", describe(p.current)), "expression")
		return nil
	}
}

// parseIntegerLiteral parses integer literals
func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.current.Literal, 10, 64)
	if err != nil {
		p.addError(p.current.Pos(), fmt.Sprintf("could not parse %q as integer", p.current.Literal), "literal")
		return nil
	}
	return &ast.Literal{Span: p.current.Span, Kind: ast.LiteralInteger, Value: value}
}

// parseFloatLiteral parses float literals
func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.current.Literal, 64)
	if err != nil {
		p.addError(p.current.Pos(), fmt.Sprintf("could not parse %q as float", p.current.Literal), "literal")
		return nil
	}
	return &ast.Literal{Span: p.current.Span, Kind: ast.LiteralFloat, Value: value}
}

// parseIdentifierExpression parses a dotted path and whatever it heads:
// a call `a.b(x)`, a struct literal `P{x: 1}` or an increment `x++`.
func (p *Parser) parseIdentifierExpression() ast.Expression {
	start := p.current
	path := []string{p.current.Literal}
	for p.peekTokenIs(lexer.TokenDot) && p.peekAt(2).Type == lexer.TokenIdentifier {
		p.nextToken()
		p.nextToken()
		path = append(path, p.current.Literal)
	}
	ident := &ast.Identifier{Span: p.spanFrom(start), Path: path}

	switch {
	case p.peekTokenIs(lexer.TokenLParen):
		p.nextToken()
		args, ok := p.parseArguments()
		if !ok {
			return nil
		}
		return &ast.CallExpression{Span: p.spanFrom(start), Callee: ident, Arguments: args}
	case len(path) == 1 && p.structLiteralAhead():
		return p.parseStructLiteral()
	case p.peekTokenIs(lexer.TokenIncrement), p.peekTokenIs(lexer.TokenDecrement):
		p.nextToken()
		return &ast.IncDecExpression{Span: p.spanFrom(start), Target: ident, Operator: p.current.Literal}
	}
	return ident
}

// structLiteralAhead reports whether `{ ID :` follows, the only shape in
// which an identifier followed by a brace opens a struct literal rather
// than the block of an enclosing if, while, for or switch.
func (p *Parser) structLiteralAhead() bool {
	return p.peekTokenIs(lexer.TokenLBrace) &&
		p.peekAt(2).Type == lexer.TokenIdentifier &&
		p.peekAt(3).Type == lexer.TokenColon
}

// parseStructLiteral parses `Name{a: e, b: e,}`. Current is the name.
func (p *Parser) parseStructLiteral() ast.Expression {
	start := p.current
	lit := &ast.StructLiteral{TypeName: p.current.Literal, Fields: make([]*ast.FieldInit, 0)}
	p.nextToken() // '{'

	for {
		if p.peekTokenIs(lexer.TokenRBrace) {
			p.nextToken()
			break
		}
		if !p.expectPeek(lexer.TokenIdentifier) {
			return nil
		}
		fieldStart := p.current
		if !p.expectPeek(lexer.TokenColon) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		lit.Fields = append(lit.Fields, &ast.FieldInit{
			Span:  p.spanFrom(fieldStart),
			Name:  fieldStart.Literal,
			Value: value,
		})
		if p.peekTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(lexer.TokenRBrace) {
			return nil
		}
		break
	}

	lit.Span = p.spanFrom(start)
	return lit
}

// parseArguments parses `(a, name: b)`. Current is the opening paren.
func (p *Parser) parseArguments() ([]*ast.Argument, bool) {
	args := make([]*ast.Argument, 0)
	if p.peekTokenIs(lexer.TokenRParen) {
		p.nextToken()
		return args, true
	}

	for {
		p.nextToken()
		argStart := p.current
		arg := &ast.Argument{}
		if p.currentTokenIs(lexer.TokenIdentifier) && p.peekTokenIs(lexer.TokenColon) {
			arg.Name = p.current.Literal
			p.nextToken()
			p.nextToken()
		}
		if arg.Value = p.parseExpression(LOWEST); arg.Value == nil {
			return nil, false
		}
		arg.Span = p.spanFrom(argStart)
		args = append(args, arg)

		if p.peekTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(lexer.TokenRParen) {
			return nil, false
		}
		return args, true
	}
}

// parseVectorLiteral parses `{e, e, ...}`. Current is the opening brace.
func (p *Parser) parseVectorLiteral() *ast.VectorLiteral {
	start := p.current
	lit := &ast.VectorLiteral{Elements: make([]ast.Expression, 0)}

	if p.peekTokenIs(lexer.TokenRBrace) {
		p.nextToken()
		lit.Span = p.spanFrom(start)
		return lit
	}

	for {
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		lit.Elements = append(lit.Elements, el)
		if p.peekTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(lexer.TokenRBrace) {
			return nil
		}
		break
	}

	lit.Span = p.spanFrom(start)
	return lit
}

// parseRepeatingExpression parses `[]T(count: n, value: v)`. Exactly two
// named bindings are accepted.
func (p *Parser) parseRepeatingExpression() *ast.RepeatingExpression {
	start := p.current
	t := p.parseType()
	if t == nil {
		return nil
	}
	if !p.peekTokenIs(lexer.TokenLParen) {
		p.addError(p.peek.Pos(),
			fmt.Sprintf("expected ( after %s, got %s", t.String(), describe(p.peek)), "repeating expression")
		return nil
	}
	p.nextToken()
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}

	if len(args) != 2 {
		p.addError(start.Pos(),
			fmt.Sprintf("%s(...) takes exactly two bindings, got %d", t.String(), len(args)), "repeating expression")
		return nil
	}
	for _, arg := range args {
		if arg.Name == "" {
			p.addError(arg.Span.Start,
				fmt.Sprintf("binding %s must be named, as in count: n", arg.Value.String()), "repeating expression")
			return nil
		}
	}

	return &ast.RepeatingExpression{Span: p.spanFrom(start), Type: t, Bindings: args}
}

// parsePostfixChain applies `[i]`, `.field` and `.f(args)` to a primary
// expression until no postfix operator follows.
func (p *Parser) parsePostfixChain(expr ast.Expression) ast.Expression {
	for {
		start := expr.GetSpan().Start
		switch {
		case p.peekTokenIs(lexer.TokenLBracket):
			indices := make([]ast.Expression, 0, 2)
			for p.peekTokenIs(lexer.TokenLBracket) {
				p.nextToken()
				p.nextToken()
				idx := p.parseExpression(LOWEST)
				if idx == nil || !p.expectPeek(lexer.TokenRBracket) {
					return nil
				}
				indices = append(indices, idx)
			}
			expr = &ast.IndexExpression{
				Span:    position.Between(start, p.current.Span.End),
				Base:    expr,
				Indices: indices,
			}

		case p.peekTokenIs(lexer.TokenDot) && p.peekAt(2).Type == lexer.TokenIdentifier:
			p.nextToken()
			p.nextToken()
			name := p.current
			if !p.peekTokenIs(lexer.TokenLParen) {
				expr = &ast.PropertyExpression{
					Span:  position.Between(start, p.current.Span.End),
					Base:  expr,
					Field: name.Literal,
				}
				continue
			}
			p.nextToken()
			args, ok := p.parseArguments()
			if !ok {
				return nil
			}
			call := &ast.CallExpression{
				Span:      p.spanFrom(name),
				Callee:    &ast.Identifier{Span: name.Span, Path: []string{name.Literal}},
				Arguments: args,
			}
			expr = &ast.MethodCallExpression{
				Span: position.Between(start, p.current.Span.End),
				Base: expr,
				Call: call,
			}

		default:
			return expr
		}
	}
}

// parseType parses `[]...[]Name`. Current is the first token of the type.
func (p *Parser) parseType() *ast.TypeExpr {
	start := p.current
	dims := 0
	for p.currentTokenIs(lexer.TokenLBracket) {
		if !p.expectPeek(lexer.TokenRBracket) {
			return nil
		}
		dims++
		p.nextToken()
	}
	if !p.currentTokenIs(lexer.TokenIdentifier) {
		p.addError(p.current.Pos(), fmt.Sprintf("expected type name, got %s", describe(p.current)), "type")
		return nil
	}
	return &ast.TypeExpr{Span: p.spanFrom(start), Name: p.current.Literal, Dimensions: dims}
}
