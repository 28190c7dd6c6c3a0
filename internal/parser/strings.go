package parser

import (
	"fmt"
	"strings"

	"github.com/vlang-lab/vlang/internal/ast"
	"github.com/vlang-lab/vlang/internal/position"
)

// parseStringLiteral decodes escapes in the raw string body and splits
// out `$name` and `${name.path}` references. A string without references
// becomes a plain literal.
func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.current
	raw := tok.Literal

	// raw[i] sits one column after the opening quote
	posAt := func(i int) position.Position {
		pos := tok.Span.Start
		pos.Column += 1 + i
		pos.Offset += 1 + i
		return pos
	}

	parts := make([]ast.StringPart, 0, 1)
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, ast.StringPart{Text: text.String()})
			text.Reset()
		}
	}
	refs := 0

	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case ch == '\\' && i+1 < len(raw):
			i++
			text.WriteByte(unescape(raw[i]))

		case ch == '$' && i+1 < len(raw) && raw[i+1] == '{':
			end := strings.IndexByte(raw[i+2:], '}')
			if end < 0 {
				p.addError(posAt(i), "unterminated ${ in string literal", "string")
				return nil
			}
			name := strings.TrimSpace(raw[i+2 : i+2+end])
			path := strings.Split(name, ".")
			for _, seg := range path {
				if !isIdentifier(seg) {
					p.addError(posAt(i), fmt.Sprintf("invalid interpolation ${%s}", name), "string")
					return nil
				}
			}
			flush()
			parts = append(parts, ast.StringPart{Ref: &ast.Identifier{
				Span: position.Between(posAt(i), posAt(i+3+end)),
				Path: path,
			}})
			refs++
			i += 2 + end

		case ch == '$' && i+1 < len(raw) && isIdentStart(raw[i+1]):
			j := i + 1
			for j < len(raw) && isIdentPart(raw[j]) {
				j++
			}
			flush()
			parts = append(parts, ast.StringPart{Ref: &ast.Identifier{
				Span: position.Between(posAt(i), posAt(j)),
				Path: []string{raw[i+1 : j]},
			}})
			refs++
			i = j - 1

		default:
			text.WriteByte(ch)
		}
	}
	flush()

	if refs == 0 {
		value := ""
		if len(parts) == 1 {
			value = parts[0].Text
		}
		return &ast.Literal{Span: tok.Span, Kind: ast.LiteralString, Value: value}
	}
	return &ast.InterpolatedString{Span: tok.Span, Parts: parts}
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return ch
	}
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || '0' <= ch && ch <= '9'
}

func isIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}
