package lexer

import (
	"strings"
	"testing"
)

func TestBasicTokens(t *testing.T) {
	input := `fn add(a int, b int) int {
	return a + b;
}
mut total = add(1, 2);`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenFn, "fn"},
		{TokenIdentifier, "add"},
		{TokenLParen, "("},
		{TokenIdentifier, "a"},
		{TokenIdentifier, "int"},
		{TokenComma, ","},
		{TokenIdentifier, "b"},
		{TokenIdentifier, "int"},
		{TokenRParen, ")"},
		{TokenIdentifier, "int"},
		{TokenLBrace, "{"},
		{TokenReturn, "return"},
		{TokenIdentifier, "a"},
		{TokenPlus, "+"},
		{TokenIdentifier, "b"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenMut, "mut"},
		{TokenIdentifier, "total"},
		{TokenAssign, "="},
		{TokenIdentifier, "add"},
		{TokenLParen, "("},
		{TokenInteger, "1"},
		{TokenComma, ","},
		{TokenInteger, "2"},
		{TokenRParen, ")"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Literal)
		}
	}

	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected lexical errors: %v", l.Errors())
	}
}

func TestKeywords(t *testing.T) {
	input := `mut fn struct if else switch case default for while in break continue return true false nil`

	expected := []TokenType{
		TokenMut, TokenFn, TokenStruct, TokenIf, TokenElse, TokenSwitch, TokenCase,
		TokenDefault, TokenFor, TokenWhile, TokenIn, TokenBreak, TokenContinue,
		TokenReturn, TokenTrue, TokenFalse, TokenNil, TokenEOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, want, tok.Type)
		}
		if want != TokenEOF && !tok.Type.IsKeyword() {
			t.Errorf("tests[%d] - %q should be a keyword", i, tok.Literal)
		}
	}

	// Keywords are matched on the whole identifier only.
	toks, _ := Tokenize("mutable iffy format")
	for _, tok := range toks[:3] {
		if tok.Type != TokenIdentifier {
			t.Errorf("expected identifier for %q, got %s", tok.Literal, tok.Type)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = += -= ++ -- == != < <= > >= && || ! ( ) { } [ ] ; : . , ...`

	expected := []TokenType{
		TokenPlus, TokenMinus, TokenMul, TokenDiv, TokenMod, TokenAssign,
		TokenPlusAssign, TokenMinusAssign, TokenIncrement, TokenDecrement,
		TokenEq, TokenNe, TokenLt, TokenLe, TokenGt, TokenGe, TokenAnd, TokenOr,
		TokenNot, TokenLParen, TokenRParen, TokenLBrace, TokenRBrace,
		TokenLBracket, TokenRBracket, TokenSemicolon, TokenColon, TokenDot,
		TokenComma, TokenEllipsis, TokenEOF,
	}

	toks, errs := Tokenize(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("tests[%d] - expected %s, got %s", i, want, toks[i].Type)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
		literals []string
	}{
		{"42", []TokenType{TokenInteger}, []string{"42"}},
		{"3.14", []TokenType{TokenFloat}, []string{"3.14"}},
		{"1...5", []TokenType{TokenInteger, TokenEllipsis, TokenInteger}, []string{"1", "...", "5"}},
		{"v.x", []TokenType{TokenIdentifier, TokenDot, TokenIdentifier}, []string{"v", ".", "x"}},
		{"7.", []TokenType{TokenInteger, TokenDot}, []string{"7", "."}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, errs := Tokenize(tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			toks = toks[:len(toks)-1]
			if len(toks) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d (%v)", len(tt.expected), len(toks), toks)
			}
			for i := range toks {
				if toks[i].Type != tt.expected[i] || toks[i].Literal != tt.literals[i] {
					t.Errorf("token %d: expected %s %q, got %s %q",
						i, tt.expected[i], tt.literals[i], toks[i].Type, toks[i].Literal)
				}
			}
		})
	}
}

func TestCommentsAreDiscarded(t *testing.T) {
	input := `// leading comment
mut x = 1; /* block
comment */ x++ // trailing`

	toks, errs := Tokenize(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	var got []string
	for _, tok := range toks {
		got = append(got, tok.Literal)
	}
	if strings.Join(got, " ") != "mut x = 1 ; x ++ " {
		t.Fatalf("unexpected token stream %q", strings.Join(got, " "))
	}
}

func TestStringLiteral(t *testing.T) {
	toks, errs := Tokenize(`"hello \"world\" $name\n"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != TokenString {
		t.Fatalf("expected STRING, got %s", toks[0].Type)
	}
	if toks[0].Literal != `hello \"world\" $name\n` {
		t.Errorf("unexpected raw body %q", toks[0].Literal)
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		category ErrorCategory
		line     int
		column   int
	}{
		{"unterminated string", "x = \"abc", CategoryUnterminatedString, 1, 5},
		{"unterminated comment", "x = 1;\n/* never closed", CategoryCommentError, 2, 1},
		{"invalid character", "x = 1 # 2", CategoryInvalidCharacter, 1, 7},
		{"malformed number", "x = 12ab", CategoryMalformedNumber, 1, 5},
		{"invalid escape", `"a\qb"`, CategoryInvalidEscape, 1, 3},
		{"lone ampersand", "a & b", CategoryInvalidCharacter, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Tokenize(tt.input)
			if len(errs) == 0 {
				t.Fatal("expected a lexical error")
			}
			err := errs[0]
			if err.Category != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, err.Category)
			}
			if err.Position.Line != tt.line || err.Position.Column != tt.column {
				t.Errorf("expected error at %d:%d, got %s", tt.line, tt.column, err.Position)
			}
			if !strings.HasPrefix(err.Error(), "Lexical error at ") {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestPositions(t *testing.T) {
	input := "mut a = 1;\n  b += 2;"
	toks, _ := Tokenize(input)

	b := toks[5]
	if b.Literal != "b" || b.Line != 2 || b.Column != 3 {
		t.Fatalf("expected b at 2:3, got %q at %d:%d", b.Literal, b.Line, b.Column)
	}
	plusAssign := toks[6]
	if plusAssign.Span.Start.Column != 5 || plusAssign.Span.End.Column != 7 {
		t.Errorf("unexpected span for +=: %s", plusAssign.Span)
	}
}

// Every token's span covers exactly its source text and the gaps between
// tokens hold only whitespace and comments.
func TestLexemeRoundTrip(t *testing.T) {
	input := `struct P { int x; int y; }
p = P{x: 1, y: 2}; // point
mut s string = "a\tb";
for i, v in {10, 20} { println(i, v); }`

	toks, errs := Tokenize(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	var rebuilt strings.Builder
	prev := 0
	for _, tok := range toks {
		gap := input[prev:tok.Span.Start.Offset]
		if strings.TrimSpace(stripComments(gap)) != "" {
			t.Fatalf("non-trivia gap %q before %s", gap, tok)
		}
		rebuilt.WriteString(gap)

		text := input[tok.Span.Start.Offset:tok.Span.End.Offset]
		if tok.Type == TokenString {
			if text != `"`+tok.Literal+`"` {
				t.Fatalf("string span %q does not match literal %q", text, tok.Literal)
			}
		} else if text != tok.Literal {
			t.Fatalf("span text %q does not match literal %q", text, tok.Literal)
		}
		rebuilt.WriteString(text)
		prev = tok.Span.End.Offset
	}

	if rebuilt.String() != input {
		t.Fatalf("round trip mismatch:\n%s\n---\n%s", rebuilt.String(), input)
	}
}

func stripComments(s string) string {
	for {
		i := strings.Index(s, "//")
		if i < 0 {
			return s
		}
		j := strings.Index(s[i:], "\n")
		if j < 0 {
			return s[:i]
		}
		s = s[:i] + s[i+j:]
	}
}
