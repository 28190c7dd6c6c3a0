package parser

import (
	"fmt"

	"github.com/vlang-lab/vlang/internal/ast"
	"github.com/vlang-lab/vlang/internal/lexer"
)

// parseStatement dispatches on the current token. Statements beginning
// with an identifier are resolved by parseIdentifierStatement.
func (p *Parser) parseStatement() ast.Statement {
	switch p.current.Type {
	case lexer.TokenMut:
		return nilStatement(p.parseMutDeclaration())
	case lexer.TokenIdentifier:
		return p.parseIdentifierStatement()
	case lexer.TokenLBrace:
		return nilStatement(p.parseBlockStatement())
	case lexer.TokenReturn:
		return nilStatement(p.parseReturnStatement())
	case lexer.TokenBreak:
		stmt := &ast.BreakStatement{Span: p.current.Span}
		p.skipSemicolon()
		return stmt
	case lexer.TokenContinue:
		stmt := &ast.ContinueStatement{Span: p.current.Span}
		p.skipSemicolon()
		return stmt
	case lexer.TokenIf:
		return nilStatement(p.parseIfStatement())
	case lexer.TokenSwitch:
		return nilStatement(p.parseSwitchStatement())
	case lexer.TokenWhile:
		return nilStatement(p.parseWhileStatement())
	case lexer.TokenFor:
		return p.parseForStatement()
	case lexer.TokenFn:
		return nilStatement(p.parseFunctionDeclaration())
	case lexer.TokenStruct:
		return nilStatement(p.parseStructDeclaration())
	default:
		p.addError(p.current.Pos(),
			fmt.Sprintf("unexpected %s at start of statement", describe(p.current)), "statement")
		return nil
	}
}

// nilStatement keeps typed nil pointers from escaping as non-nil
// interface values.
func nilStatement[T interface {
	ast.Statement
	comparable
}](stmt T) ast.Statement {
	var zero T
	if stmt == zero {
		return nil
	}
	return stmt
}

// skipSemicolon consumes an optional statement terminator.
func (p *Parser) skipSemicolon() {
	if p.peekTokenIs(lexer.TokenSemicolon) {
		p.nextToken()
	}
}

// parseIdentifierStatement resolves the statements that start with an
// identifier, in order: declaration, assignment, then bare call or
// increment.
//
//	x int = e        typed declaration
//	x []int = e      typed declaration
//	x = []int{...}   vector or matrix declaration
//	x = e, x += e    assignment (also x.f = e, v[i] = e)
//	f(a), v.len()    call statement
//	x++              increment statement
func (p *Parser) parseIdentifierStatement() ast.Statement {
	switch {
	case p.peekTokenIs(lexer.TokenIdentifier):
		return nilStatement(p.parseTypedDeclaration())
	case p.peekTokenIs(lexer.TokenLBracket) && p.peekAt(2).Type == lexer.TokenRBracket:
		return nilStatement(p.parseTypedDeclaration())
	case p.peekTokenIs(lexer.TokenAssign) && p.aggregateDeclarationAhead():
		return nilStatement(p.parseAggregateDeclaration())
	}
	return p.parseSimpleStatement()
}

// aggregateDeclarationAhead reports whether the tokens after `ID =` read
// `[]...[]T {`, the shape of a vector or matrix declaration. A type
// followed by `(` is a repeating expression on the right of an assignment.
func (p *Parser) aggregateDeclarationAhead() bool {
	n, dims := 2, 0
	for p.peekAt(n).Type == lexer.TokenLBracket && p.peekAt(n+1).Type == lexer.TokenRBracket {
		dims++
		n += 2
	}
	return dims > 0 &&
		p.peekAt(n).Type == lexer.TokenIdentifier &&
		p.peekAt(n+1).Type == lexer.TokenLBrace
}

// parseMutDeclaration parses `mut x T = e`, `mut x = e` and `mut x T`.
func (p *Parser) parseMutDeclaration() *ast.VarDeclaration {
	start := p.current
	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil
	}
	decl := &ast.VarDeclaration{
		Name:    p.current.Literal,
		NamePos: p.current.Pos(),
		Mutable: true,
	}

	if p.peekTokenIs(lexer.TokenAssign) {
		decl.Kind = ast.DeclMutInferred
		p.nextToken()
		p.nextToken()
		if decl.Value = p.parseExpression(LOWEST); decl.Value == nil {
			return nil
		}
	} else {
		p.nextToken()
		if decl.Type = p.parseType(); decl.Type == nil {
			return nil
		}
		decl.Kind = ast.DeclMutNoInit
		if p.peekTokenIs(lexer.TokenAssign) {
			decl.Kind = ast.DeclMutTyped
			p.nextToken()
			p.nextToken()
			if decl.Value = p.parseExpression(LOWEST); decl.Value == nil {
				return nil
			}
		}
	}

	decl.Span = p.spanFrom(start)
	p.skipSemicolon()
	return decl
}

// parseTypedDeclaration parses the immutable `x T = e`.
func (p *Parser) parseTypedDeclaration() *ast.VarDeclaration {
	start := p.current
	decl := &ast.VarDeclaration{
		Kind:    ast.DeclTyped,
		Name:    p.current.Literal,
		NamePos: p.current.Pos(),
	}

	p.nextToken()
	if decl.Type = p.parseType(); decl.Type == nil {
		return nil
	}
	if !p.peekTokenIs(lexer.TokenAssign) {
		p.addError(p.peek.Pos(),
			fmt.Sprintf("immutable declaration of '%s' requires an initializer", decl.Name), "declaration")
		return nil
	}
	p.nextToken()
	p.nextToken()
	if decl.Value = p.parseExpression(LOWEST); decl.Value == nil {
		return nil
	}

	decl.Span = p.spanFrom(start)
	p.skipSemicolon()
	return decl
}

// parseAggregateDeclaration parses `x = []T{...}` and `x = [][]T{...}`.
func (p *Parser) parseAggregateDeclaration() *ast.VarDeclaration {
	start := p.current
	decl := &ast.VarDeclaration{
		Name:    p.current.Literal,
		NamePos: p.current.Pos(),
		Mutable: true,
	}

	p.nextToken() // '='
	p.nextToken() // '['
	if decl.Type = p.parseType(); decl.Type == nil {
		return nil
	}
	decl.Kind = ast.DeclVector
	if decl.Type.Dimensions > 1 {
		decl.Kind = ast.DeclMatrix
	}
	if !p.expectPeek(lexer.TokenLBrace) {
		return nil
	}
	lit := p.parseVectorLiteral()
	if lit == nil {
		return nil
	}
	decl.Value = lit

	decl.Span = p.spanFrom(start)
	p.skipSemicolon()
	return decl
}

// parseSimpleStatement parses an assignment or an expression statement.
// Only calls and increments are allowed to stand alone.
func (p *Parser) parseSimpleStatement() ast.Statement {
	start := p.current
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if isAssignOperator(p.peek.Type) {
		stmt := p.parseAssignStatement(start, expr)
		if stmt == nil {
			return nil
		}
		p.skipSemicolon()
		return stmt
	}

	switch expr.(type) {
	case *ast.CallExpression, *ast.MethodCallExpression, *ast.IncDecExpression:
		stmt := &ast.ExpressionStatement{Span: p.spanFrom(start), Expression: expr}
		p.skipSemicolon()
		return stmt
	}

	p.addError(start.Pos(), fmt.Sprintf("%s is not a statement", expr.String()), "statement")
	return nil
}

func isAssignOperator(tt lexer.TokenType) bool {
	return tt == lexer.TokenAssign || tt == lexer.TokenPlusAssign || tt == lexer.TokenMinusAssign
}

// parseAssignStatement parses the operator and right-hand side of an
// assignment whose target has already been parsed. Current is the last
// token of the target.
func (p *Parser) parseAssignStatement(start lexer.Token, target ast.Expression) *ast.AssignStatement {
	switch target.(type) {
	case *ast.Identifier, *ast.IndexExpression, *ast.PropertyExpression:
	default:
		p.addError(start.Pos(), fmt.Sprintf("cannot assign to %s", target.String()), "assignment")
		return nil
	}

	p.nextToken()
	op := p.current.Literal
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	return &ast.AssignStatement{
		Span:     p.spanFrom(start),
		Target:   target,
		Operator: op,
		Value:    value,
	}
}

// parseBlockStatement parses `{ stmt* }`. Current is the opening brace.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	start := p.current
	block := &ast.BlockStatement{Statements: make([]ast.Statement, 0)}

	p.depth++
	defer func() { p.depth-- }()

	p.nextToken()
	for !p.currentTokenIs(lexer.TokenRBrace) {
		if p.currentTokenIs(lexer.TokenEOF) {
			p.addError(start.Pos(), "Unclosed block: missing closing brace", "block")
			return nil
		}
		if p.currentTokenIs(lexer.TokenSemicolon) {
			p.nextToken()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}

	block.Span = p.spanFrom(start)
	return block
}

// parseReturnStatement parses `return` with an optional value.
func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	start := p.current
	stmt := &ast.ReturnStatement{}

	if !p.peekTokenIs(lexer.TokenSemicolon) && !p.peekTokenIs(lexer.TokenRBrace) &&
		!p.peekTokenIs(lexer.TokenEOF) && !statementStarts[p.peek.Type] {
		p.nextToken()
		if stmt.Value = p.parseExpression(LOWEST); stmt.Value == nil {
			return nil
		}
	}

	stmt.Span = p.spanFrom(start)
	p.skipSemicolon()
	return stmt
}

// parseIfStatement parses an if / else if / else chain.
func (p *Parser) parseIfStatement() *ast.IfStatement {
	start := p.current
	stmt := &ast.IfStatement{}

	for {
		branchStart := p.current
		p.nextToken()
		cond := p.parseExpression(LOWEST)
		if cond == nil || !p.expectPeek(lexer.TokenLBrace) {
			return nil
		}
		body := p.parseBlockStatement()
		if body == nil {
			return nil
		}
		stmt.Branches = append(stmt.Branches, &ast.IfBranch{
			Span:      p.spanFrom(branchStart),
			Condition: cond,
			Body:      body,
		})

		if !p.peekTokenIs(lexer.TokenElse) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(lexer.TokenIf) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(lexer.TokenLBrace) {
			return nil
		}
		if stmt.Else = p.parseBlockStatement(); stmt.Else == nil {
			return nil
		}
		break
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseSwitchStatement parses `switch e { case v: ... default: ... }`.
func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	start := p.current
	p.nextToken()
	subject := p.parseExpression(LOWEST)
	if subject == nil || !p.expectPeek(lexer.TokenLBrace) {
		return nil
	}
	stmt := &ast.SwitchStatement{Subject: subject, Cases: make([]*ast.SwitchCase, 0)}

	p.nextToken()
	for !p.currentTokenIs(lexer.TokenRBrace) {
		caseStart := p.current
		switch p.current.Type {
		case lexer.TokenCase:
			p.nextToken()
			value := p.parseExpression(LOWEST)
			if value == nil || !p.expectPeek(lexer.TokenColon) {
				return nil
			}
			body := p.parseCaseBody()
			stmt.Cases = append(stmt.Cases, &ast.SwitchCase{
				Span:  p.spanFrom(caseStart),
				Value: value,
				Body:  body,
			})
		case lexer.TokenDefault:
			if stmt.Default != nil {
				p.addError(p.current.Pos(), "multiple default clauses in switch", "switch")
				return nil
			}
			if !p.expectPeek(lexer.TokenColon) {
				return nil
			}
			body := p.parseCaseBody()
			stmt.Default = &ast.SwitchCase{Span: p.spanFrom(caseStart), Body: body}
		case lexer.TokenEOF:
			p.addError(start.Pos(), "Unclosed switch: missing closing brace", "switch")
			return nil
		default:
			p.addError(p.current.Pos(),
				fmt.Sprintf("expected case or default, got %s", describe(p.current)), "switch")
			return nil
		}
		p.nextToken()
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseCaseBody parses statements up to the next case, default or the
// closing brace. Current is the colon; on return current is the last
// token of the body.
func (p *Parser) parseCaseBody() []ast.Statement {
	body := make([]ast.Statement, 0)
	for !p.peekTokenIs(lexer.TokenCase) && !p.peekTokenIs(lexer.TokenDefault) &&
		!p.peekTokenIs(lexer.TokenRBrace) && !p.peekTokenIs(lexer.TokenEOF) {
		p.nextToken()
		if p.currentTokenIs(lexer.TokenSemicolon) {
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		} else {
			p.synchronize()
		}
	}
	return body
}

// parseWhileStatement parses `while c { ... }`.
func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	start := p.current
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil || !p.expectPeek(lexer.TokenLBrace) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &ast.WhileStatement{Span: p.spanFrom(start), Condition: cond, Body: body}
}

// parseForStatement picks one of the three loop forms:
//
//	for k, v in e { ... }       for-each
//	for i = 0; c; u { ... }     three-part
//	for c { ... }               conditional
func (p *Parser) parseForStatement() ast.Statement {
	start := p.current
	p.nextToken()

	if p.currentTokenIs(lexer.TokenIdentifier) {
		switch {
		case p.peekTokenIs(lexer.TokenComma):
			return nilStatement(p.parseForEach(start))
		case isAssignOperator(p.peek.Type):
			return nilStatement(p.parseForClause(start))
		}
	}

	cond := p.parseExpression(LOWEST)
	if cond == nil || !p.expectPeek(lexer.TokenLBrace) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &ast.ForStatement{Span: p.spanFrom(start), Condition: cond, Body: body}
}

func (p *Parser) parseForClause(start lexer.Token) *ast.ForClauseStatement {
	initStart := p.current
	target := &ast.Identifier{Span: p.current.Span, Path: []string{p.current.Literal}}
	init := p.parseAssignStatement(initStart, target)
	if init == nil || !p.expectPeek(lexer.TokenSemicolon) {
		return nil
	}

	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil || !p.expectPeek(lexer.TokenSemicolon) {
		return nil
	}

	p.nextToken()
	update := p.parseExpression(LOWEST)
	if update == nil || !p.expectPeek(lexer.TokenLBrace) {
		return nil
	}

	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &ast.ForClauseStatement{
		Span:      p.spanFrom(start),
		Init:      init,
		Condition: cond,
		Update:    update,
		Body:      body,
	}
}

func (p *Parser) parseForEach(start lexer.Token) *ast.ForEachStatement {
	stmt := &ast.ForEachStatement{Key: p.current.Literal}
	p.nextToken() // ','
	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil
	}
	stmt.Value = p.current.Literal
	if !p.expectPeek(lexer.TokenIn) {
		return nil
	}

	p.nextToken()
	iterStart := p.current
	iter := p.parseExpression(LOWEST)
	if iter == nil {
		return nil
	}
	if p.peekTokenIs(lexer.TokenEllipsis) {
		p.nextToken()
		p.nextToken()
		to := p.parseExpression(LOWEST)
		if to == nil {
			return nil
		}
		iter = &ast.RangeExpression{Span: p.spanFrom(iterStart), From: iter, To: to}
	}
	stmt.Iterable = iter

	if !p.expectPeek(lexer.TokenLBrace) {
		return nil
	}
	if stmt.Body = p.parseBlockStatement(); stmt.Body == nil {
		return nil
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseFunctionDeclaration parses `fn name(a T, b T) R { ... }`.
func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	start := p.current
	if p.depth > 0 {
		p.addError(start.Pos(), "function declarations are only allowed at top level", "function")
		return nil
	}
	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil
	}
	fn := &ast.FunctionDeclaration{Name: p.current.Literal, Parameters: make([]*ast.Parameter, 0)}
	if !p.expectPeek(lexer.TokenLParen) {
		return nil
	}

	if p.peekTokenIs(lexer.TokenRParen) {
		p.nextToken()
	} else {
		for {
			if !p.expectPeek(lexer.TokenIdentifier) {
				return nil
			}
			paramStart := p.current
			p.nextToken()
			t := p.parseType()
			if t == nil {
				return nil
			}
			fn.Parameters = append(fn.Parameters, &ast.Parameter{
				Span: p.spanFrom(paramStart),
				Name: paramStart.Literal,
				Type: t,
			})
			if p.peekTokenIs(lexer.TokenComma) {
				p.nextToken()
				continue
			}
			if !p.expectPeek(lexer.TokenRParen) {
				return nil
			}
			break
		}
	}

	if !p.peekTokenIs(lexer.TokenLBrace) {
		p.nextToken()
		if fn.ReturnType = p.parseType(); fn.ReturnType == nil {
			return nil
		}
	}
	if !p.expectPeek(lexer.TokenLBrace) {
		return nil
	}
	if fn.Body = p.parseBlockStatement(); fn.Body == nil {
		return nil
	}

	fn.Span = p.spanFrom(start)
	return fn
}

// parseStructDeclaration parses `struct Name { T a; T b; }`.
func (p *Parser) parseStructDeclaration() *ast.StructDeclaration {
	start := p.current
	if p.depth > 0 {
		p.addError(start.Pos(), "struct declarations are only allowed at top level", "struct")
		return nil
	}
	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil
	}
	decl := &ast.StructDeclaration{Name: p.current.Literal, Fields: make([]*ast.StructField, 0)}
	if !p.expectPeek(lexer.TokenLBrace) {
		return nil
	}

	for !p.peekTokenIs(lexer.TokenRBrace) {
		if p.peekTokenIs(lexer.TokenEOF) {
			p.addError(start.Pos(), "Unclosed struct: missing closing brace", "struct")
			return nil
		}
		p.nextToken()
		fieldStart := p.current
		t := p.parseType()
		if t == nil || !p.expectPeek(lexer.TokenIdentifier) {
			return nil
		}
		decl.Fields = append(decl.Fields, &ast.StructField{
			Span: p.spanFrom(fieldStart),
			Type: t,
			Name: p.current.Literal,
		})
		if p.peekTokenIs(lexer.TokenSemicolon) || p.peekTokenIs(lexer.TokenComma) {
			p.nextToken()
		}
	}
	p.nextToken()

	if len(decl.Fields) == 0 {
		p.addError(start.Pos(), fmt.Sprintf("struct '%s' must declare at least one field", decl.Name), "struct")
		return nil
	}

	decl.Span = p.spanFrom(start)
	return decl
}
