package lexer

import (
	"fmt"

	"github.com/vlang-lab/vlang/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenIdentifier
	TokenInteger
	TokenFloat
	TokenString

	// Keywords
	TokenMut
	TokenFn
	TokenStruct
	TokenIf
	TokenElse
	TokenSwitch
	TokenCase
	TokenDefault
	TokenFor
	TokenWhile
	TokenIn
	TokenBreak
	TokenContinue
	TokenReturn
	TokenTrue
	TokenFalse
	TokenNil

	// Operators
	TokenPlus        // +
	TokenMinus       // -
	TokenMul         // *
	TokenDiv         // /
	TokenMod         // %
	TokenAssign      // =
	TokenPlusAssign  // +=
	TokenMinusAssign // -=
	TokenIncrement   // ++
	TokenDecrement   // --
	TokenEq          // ==
	TokenNe          // !=
	TokenLt          // <
	TokenLe          // <=
	TokenGt          // >
	TokenGe          // >=
	TokenAnd         // &&
	TokenOr          // ||
	TokenNot         // !

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenColon     // :
	TokenDot       // .
	TokenComma     // ,
	TokenEllipsis  // ...
)

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF:   "EOF",
	TokenError: "ERROR",

	TokenIdentifier: "IDENTIFIER",
	TokenInteger:    "INTEGER",
	TokenFloat:      "FLOAT",
	TokenString:     "STRING",

	TokenMut:      "mut",
	TokenFn:       "fn",
	TokenStruct:   "struct",
	TokenIf:       "if",
	TokenElse:     "else",
	TokenSwitch:   "switch",
	TokenCase:     "case",
	TokenDefault:  "default",
	TokenFor:      "for",
	TokenWhile:    "while",
	TokenIn:       "in",
	TokenBreak:    "break",
	TokenContinue: "continue",
	TokenReturn:   "return",
	TokenTrue:     "true",
	TokenFalse:    "false",
	TokenNil:      "nil",

	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenMul:         "*",
	TokenDiv:         "/",
	TokenMod:         "%",
	TokenAssign:      "=",
	TokenPlusAssign:  "+=",
	TokenMinusAssign: "-=",
	TokenIncrement:   "++",
	TokenDecrement:   "--",
	TokenEq:          "==",
	TokenNe:          "!=",
	TokenLt:          "<",
	TokenLe:          "<=",
	TokenGt:          ">",
	TokenGe:          ">=",
	TokenAnd:         "&&",
	TokenOr:          "||",
	TokenNot:         "!",

	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenSemicolon: ";",
	TokenColon:     ":",
	TokenDot:       ".",
	TokenComma:     ",",
	TokenEllipsis:  "...",
}

// keywords are reserved and never lexed as identifiers
var keywords = map[string]TokenType{
	"mut":      TokenMut,
	"fn":       TokenFn,
	"struct":   TokenStruct,
	"if":       TokenIf,
	"else":     TokenElse,
	"switch":   TokenSwitch,
	"case":     TokenCase,
	"default":  TokenDefault,
	"for":      TokenFor,
	"while":    TokenWhile,
	"in":       TokenIn,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"return":   TokenReturn,
	"true":     TokenTrue,
	"false":    TokenFalse,
	"nil":      TokenNil,
}

// Token represents a lexical token with position information
type Token struct {
	Type    TokenType
	Literal string
	Span    position.Span

	Line   int
	Column int
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Line, t.Column)
}

// Pos returns the start position of the token.
func (t Token) Pos() position.Position {
	return t.Span.Start
}

// IsKeyword reports whether the token type is a reserved word.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenMut && tt <= TokenNil
}

// lookupIdent checks if identifier is keyword
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}
