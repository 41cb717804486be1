package lexer

import (
	"strings"

	"pylift/internal/diag"
	"pylift/internal/token"
)

// scanString reads a string literal delimited by quote. Triple-quoted
// strings may span lines; single-quoted ones end at the closing quote or,
// with a diagnostic, at the first raw newline. The token text carries the
// decoded value, not the source spelling.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()

	triple := false
	if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == quote && b1 == quote && b2 == quote {
		triple = true
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.cursor.Bump()
	} else {
		lx.cursor.Bump()
	}

	var sb strings.Builder
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.String, Span: sp, Text: sb.String()}
		}

		ch := lx.cursor.Peek()

		if ch == '\n' && !triple {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.String, Span: sp, Text: sb.String()}
		}

		if ch == quote {
			if !triple {
				lx.cursor.Bump()
				break
			}
			if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == quote && b1 == quote && b2 == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.cursor.Bump()
				break
			}
			// Triple form at EOF tail: fewer than three quotes left means
			// they are literal content only if more input follows.
			if lx.cursor.PeekAt(1) == 0 || (lx.cursor.PeekAt(1) == quote && lx.cursor.PeekAt(2) == 0) {
				for !lx.cursor.EOF() {
					lx.cursor.Bump()
				}
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
				return token.Token{Kind: token.String, Span: sp, Text: sb.String()}
			}
			sb.WriteByte(lx.cursor.Bump())
			continue
		}

		if ch == '\\' {
			lx.cursor.Bump()
			esc := lx.cursor.Bump()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '\'':
				sb.WriteByte('\'')
			case '"':
				sb.WriteByte('"')
			case '0':
				sb.WriteByte(0)
			case '\n':
				// Line continuation inside a string: the newline is elided.
			default:
				// Unknown escapes pass through verbatim, backslash included.
				sb.WriteByte('\\')
				if esc != 0 {
					sb.WriteByte(esc)
				}
			}
			continue
		}

		sb.WriteByte(lx.cursor.Bump())
	}

	return token.Token{Kind: token.String, Span: lx.cursor.SpanFrom(start), Text: sb.String()}
}
