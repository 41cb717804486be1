package token

import (
	"pylift/internal/source"
)

// Token represents a single source token with its location.
// Tokens are immutable once produced; the parser consumes them read-only.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, string, boolean, or
// none literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, KwTrue, KwFalse, KwNone:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a keyword of either dialect.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind <= KwFalse
}

// IsStructural reports whether the token is a synthetic layout token.
func (t Token) IsStructural() bool {
	switch t.Kind {
	case Newline, Indent, Dedent, EOF:
		return true
	default:
		return false
	}
}

// EndsLogicalLine reports whether the token terminates a simple statement.
func (t Token) EndsLogicalLine() bool {
	switch t.Kind {
	case Newline, Dedent, EOF, Semicolon:
		return true
	default:
		return false
	}
}
