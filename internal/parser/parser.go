// Package parser implements the VLang recursive descent parser.
package parser

import (
	"fmt"
	"sort"

	"github.com/vlang-lab/vlang/internal/ast"
	"github.com/vlang-lab/vlang/internal/lexer"
	"github.com/vlang-lab/vlang/internal/position"
)

// Parser represents the recursive descent parser
type Parser struct {
	lexer   *lexer.Lexer
	current lexer.Token
	peek    lexer.Token
	ahead   []lexer.Token // tokens read past peek for bounded lookahead
	errors  []error

	// Parser state
	filename string
	depth    int // block nesting; declarations of fn and struct need 0
}

// ParseError represents a parsing error with context
type ParseError struct {
	Position position.Position
	Message  string
	Context  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error at %s: %s", e.Position.String(), e.Message)
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer, filename string) *Parser {
	p := &Parser{
		lexer:    l,
		filename: filename,
		errors:   make([]error, 0),
	}

	// Read the first two tokens
	p.nextToken()
	p.nextToken()

	return p
}

// ParseSource lexes and parses src in one step.
func ParseSource(src, filename string) (*ast.Program, []error) {
	return NewParser(lexer.NewWithFilename(src, filename), filename).Parse()
}

// Parse parses the input and returns an AST. Lexical errors are merged
// into the returned list, ordered by source position.
func (p *Parser) Parse() (*ast.Program, []error) {
	program := p.parseProgram()

	all := make([]error, 0, len(p.errors))
	for _, le := range p.lexer.Errors() {
		all = append(all, le)
	}
	all = append(all, p.errors...)
	sort.SliceStable(all, func(i, j int) bool {
		return errorOffset(all[i]) < errorOffset(all[j])
	})

	return program, all
}

func errorOffset(err error) int {
	switch e := err.(type) {
	case *lexer.LexError:
		return e.Position.Offset
	case *ParseError:
		return e.Position.Offset
	default:
		return 0
	}
}

// nextToken advances the parser to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	if len(p.ahead) > 0 {
		p.peek = p.ahead[0]
		p.ahead = p.ahead[1:]
		return
	}
	p.peek = p.read()
}

// read pulls the next meaningful token from the lexer. Error tokens were
// already reported by the lexer and are skipped here.
func (p *Parser) read() lexer.Token {
	for {
		tok := p.lexer.NextToken()
		if tok.Type != lexer.TokenError {
			return tok
		}
	}
}

// peekAt returns the token n positions after current; peekAt(1) is peek.
func (p *Parser) peekAt(n int) lexer.Token {
	if n <= 1 {
		return p.peek
	}
	for len(p.ahead) < n-1 {
		last := p.peek
		if len(p.ahead) > 0 {
			last = p.ahead[len(p.ahead)-1]
		}
		if last.Type == lexer.TokenEOF {
			return last
		}
		p.ahead = append(p.ahead, p.read())
	}
	return p.ahead[n-2]
}

// currentTokenIs checks if the current token is of the given type
func (p *Parser) currentTokenIs(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

// peekTokenIs checks if the peek token is of the given type
func (p *Parser) peekTokenIs(tokenType lexer.TokenType) bool {
	return p.peek.Type == tokenType
}

// expectPeek advances if the peek token matches the expected type
func (p *Parser) expectPeek(tokenType lexer.TokenType) bool {
	if p.peekTokenIs(tokenType) {
		p.nextToken()
		return true
	}
	p.peekError(tokenType)
	return false
}

// peekError adds an error for unexpected peek token
func (p *Parser) peekError(expected lexer.TokenType) {
	msg := fmt.Sprintf("expected %s, got %s", expected.String(), describe(p.peek))
	p.addError(p.peek.Pos(), msg, "token mismatch")
}

// addError adds an error to the parser's error list
func (p *Parser) addError(pos position.Position, message, context string) {
	pos.Filename = p.filename
	p.errors = append(p.errors, &ParseError{
		Position: pos,
		Message:  message,
		Context:  context,
	})
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenIdentifier, lexer.TokenInteger, lexer.TokenFloat:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	case lexer.TokenString:
		return "string literal"
	default:
		return fmt.Sprintf("'%s'", tok.Type)
	}
}

// spanFrom builds a span from the start token to the current token.
func (p *Parser) spanFrom(start lexer.Token) position.Span {
	return position.Between(start.Span.Start, p.current.Span.End)
}

// statementStarts are the keywords that begin a statement or a switch arm.
// They act as synchronization points after a syntax error.
var statementStarts = map[lexer.TokenType]bool{
	lexer.TokenMut:      true,
	lexer.TokenFn:       true,
	lexer.TokenStruct:   true,
	lexer.TokenIf:       true,
	lexer.TokenSwitch:   true,
	lexer.TokenWhile:    true,
	lexer.TokenFor:      true,
	lexer.TokenReturn:   true,
	lexer.TokenBreak:    true,
	lexer.TokenContinue: true,
	lexer.TokenCase:     true,
	lexer.TokenDefault:  true,
}

// synchronize skips tokens until current ends a statement or peek starts
// a new one, so the caller's nextToken lands on a statement boundary.
func (p *Parser) synchronize() {
	for !p.currentTokenIs(lexer.TokenEOF) {
		if p.currentTokenIs(lexer.TokenSemicolon) {
			return
		}
		if statementStarts[p.peek.Type] || p.peekTokenIs(lexer.TokenRBrace) || p.peekTokenIs(lexer.TokenEOF) {
			return
		}
		p.nextToken()
	}
}

// ====== Grammar Rules ======

// parseProgram parses the entire program
func (p *Parser) parseProgram() *ast.Program {
	start := p.current
	program := &ast.Program{Statements: make([]ast.Statement, 0)}

	for !p.currentTokenIs(lexer.TokenEOF) {
		if p.currentTokenIs(lexer.TokenSemicolon) {
			p.nextToken()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}

	program.Span = position.Between(start.Span.Start, p.current.Span.End)
	return program
}
