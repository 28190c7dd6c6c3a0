package lexer

import (
	"fmt"

	"github.com/vlang-lab/vlang/internal/position"
)

// ErrorCategory categorizes types of lexical errors
type ErrorCategory int

const (
	CategoryUnterminatedString ErrorCategory = iota // Unclosed string literals
	CategoryInvalidCharacter                        // Characters outside the language alphabet
	CategoryMalformedNumber                         // Invalid number formats
	CategoryInvalidEscape                           // Invalid escape sequences
	CategoryCommentError                            // Unclosed block comments
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryUnterminatedString:
		return "unterminated string"
	case CategoryInvalidCharacter:
		return "invalid character"
	case CategoryMalformedNumber:
		return "malformed number"
	case CategoryInvalidEscape:
		return "invalid escape"
	case CategoryCommentError:
		return "unterminated comment"
	default:
		return "unknown"
	}
}

// LexError is a lexical error with the position where it was detected.
type LexError struct {
	Position position.Position
	Category ErrorCategory
	Message  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Lexical error at %s: %s", e.Position, e.Message)
}

func (l *Lexer) addError(pos position.Position, category ErrorCategory, format string, args ...interface{}) {
	l.errors = append(l.errors, &LexError{
		Position: pos,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Errors returns the lexical errors collected so far.
func (l *Lexer) Errors() []*LexError {
	return l.errors
}
