// Package lexer implements the VLang lexical analyzer.
package lexer

import (
	"github.com/vlang-lab/vlang/internal/position"
)

// Lexer converts source text into tokens. Whitespace and comments are
// consumed between tokens and never emitted.
type Lexer struct {
	input        string
	filename     string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // line of ch
	column       int  // column of ch

	errors []*LexError
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with filename for error reporting
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:    input,
		filename: filename,
		line:     1,
	}
	l.readChar()
	return l
}

// Tokenize lexes the whole input, EOF token included.
func Tokenize(input string) ([]Token, []*LexError) {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, l.Errors()
		}
	}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	return l.peekCharAt(0)
}

func (l *Lexer) peekCharAt(n int) byte {
	if l.readPosition+n >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition+n]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// skipTrivia skips whitespace, line comments and block comments
func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.getCurrentPosition()
	l.readChar() // '/'
	l.readChar() // '*'
	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
	l.addError(start, CategoryCommentError, "unterminated block comment")
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads an integer or a float literal. A dot only belongs to the
// number when a digit follows it, so `1...5` lexes as 1, ..., 5.
func (l *Lexer) readNumber() (TokenType, string) {
	start := l.position
	startPos := l.getCurrentPosition()
	tt := TokenInteger

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tt = TokenFloat
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if isLetter(l.ch) {
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		l.addError(startPos, CategoryMalformedNumber, "malformed number %q", l.input[start:l.position])
	}

	return tt, l.input[start:l.position]
}

// readString reads a double quoted string and returns its raw body. Escape
// sequences are validated here and decoded by the parser.
func (l *Lexer) readString() string {
	startPos := l.getCurrentPosition()
	l.readChar() // opening quote
	start := l.position

	for {
		switch {
		case l.ch == '"':
			body := l.input[start:l.position]
			l.readChar()
			return body
		case l.ch == '\n' || l.atEOF():
			l.addError(startPos, CategoryUnterminatedString, "unterminated string literal")
			return l.input[start:l.position]
		case l.ch == '\\':
			escPos := l.getCurrentPosition()
			l.readChar()
			if !isEscape(l.ch) {
				l.addError(escPos, CategoryInvalidEscape, "invalid escape sequence \\%c", l.ch)
			}
			if l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
		default:
			l.readChar()
		}
	}
}

func isEscape(ch byte) bool {
	switch ch {
	case 'n', 't', 'r', '\\', '"', '$', '\'':
		return true
	}
	return false
}

// isLetter checks if character can start an identifier
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if character is ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// NextToken scans the input and returns the next token with full position information
func (l *Lexer) NextToken() Token {
	l.skipTrivia()

	startPos := l.getCurrentPosition()
	if l.atEOF() {
		return l.newTokenFromPosition(TokenEOF, "", startPos)
	}

	switch l.ch {
	case '=':
		return l.either('=', TokenEq, TokenAssign, startPos)
	case '!':
		return l.either('=', TokenNe, TokenNot, startPos)
	case '<':
		return l.either('=', TokenLe, TokenLt, startPos)
	case '>':
		return l.either('=', TokenGe, TokenGt, startPos)
	case '+':
		if l.peekChar() == '+' {
			return l.twoChar(TokenIncrement, startPos)
		}
		return l.either('=', TokenPlusAssign, TokenPlus, startPos)
	case '-':
		if l.peekChar() == '-' {
			return l.twoChar(TokenDecrement, startPos)
		}
		return l.either('=', TokenMinusAssign, TokenMinus, startPos)
	case '&':
		if l.peekChar() == '&' {
			return l.twoChar(TokenAnd, startPos)
		}
	case '|':
		if l.peekChar() == '|' {
			return l.twoChar(TokenOr, startPos)
		}
	case '.':
		if l.peekChar() == '.' && l.peekCharAt(1) == '.' {
			l.readChar()
			l.readChar()
			l.readChar()
			return l.newTokenFromPosition(TokenEllipsis, "...", startPos)
		}
		return l.oneChar(TokenDot, startPos)
	case '*':
		return l.oneChar(TokenMul, startPos)
	case '/':
		return l.oneChar(TokenDiv, startPos)
	case '%':
		return l.oneChar(TokenMod, startPos)
	case '(':
		return l.oneChar(TokenLParen, startPos)
	case ')':
		return l.oneChar(TokenRParen, startPos)
	case '{':
		return l.oneChar(TokenLBrace, startPos)
	case '}':
		return l.oneChar(TokenRBrace, startPos)
	case '[':
		return l.oneChar(TokenLBracket, startPos)
	case ']':
		return l.oneChar(TokenRBracket, startPos)
	case ';':
		return l.oneChar(TokenSemicolon, startPos)
	case ':':
		return l.oneChar(TokenColon, startPos)
	case ',':
		return l.oneChar(TokenComma, startPos)
	case '"':
		body := l.readString()
		return l.newTokenFromPosition(TokenString, body, startPos)
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return l.newTokenFromPosition(lookupIdent(ident), ident, startPos)
		}
		if isDigit(l.ch) {
			tt, lit := l.readNumber()
			return l.newTokenFromPosition(tt, lit, startPos)
		}
	}

	ch := l.ch
	l.readChar()
	if ch < 0x20 || ch >= 0x7f {
		l.addError(startPos, CategoryInvalidCharacter, "unexpected character 0x%02x", ch)
	} else {
		l.addError(startPos, CategoryInvalidCharacter, "unexpected character %q", ch)
	}
	return l.newTokenFromPosition(TokenError, string(ch), startPos)
}

// oneChar consumes the current character as a token of type tt.
func (l *Lexer) oneChar(tt TokenType, startPos position.Position) Token {
	lit := string(l.ch)
	l.readChar()
	return l.newTokenFromPosition(tt, lit, startPos)
}

// twoChar consumes the current and the next character as a token of type tt.
func (l *Lexer) twoChar(tt TokenType, startPos position.Position) Token {
	lit := l.input[l.position : l.position+2]
	l.readChar()
	l.readChar()
	return l.newTokenFromPosition(tt, lit, startPos)
}

// either picks the two-character form when the next char is next.
func (l *Lexer) either(next byte, two, one TokenType, startPos position.Position) Token {
	if l.peekChar() == next {
		return l.twoChar(two, startPos)
	}
	return l.oneChar(one, startPos)
}

// newTokenFromPosition creates a token spanning startPos to the current position
func (l *Lexer) newTokenFromPosition(tokenType TokenType, literal string, startPos position.Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Span: position.Span{
			Start: startPos,
			End:   l.getCurrentPosition(),
		},
		Line:   startPos.Line,
		Column: startPos.Column,
	}
}

// getCurrentPosition returns current position in source
func (l *Lexer) getCurrentPosition() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.position,
	}
}
