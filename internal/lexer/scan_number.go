package lexer

import (
	"pylift/internal/diag"
	"pylift/internal/token"
)

// scanNumber reads an integer or float literal. Supported forms are hex
// (0x), binary (0b), octal (0o), plain decimal, decimal fractions, and
// exponents. A trailing L or l marks the legacy long suffix; it is kept in
// the token text so later stages can rewrite it.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	bad := false

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.eatDigits(isHex) {
				bad = true
			}
			return lx.numberToken(start, bad)
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' }) {
				bad = true
			}
			return lx.numberToken(start, bad)
		case 'o', 'O':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.eatDigits(func(b byte) bool { return b >= '0' && b <= '7' }) {
				bad = true
			}
			return lx.numberToken(start, bad)
		}
	}

	lx.eatDigits(isDec)

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			lx.eatDigits(isDec)
		}
	}

	return lx.numberToken(start, bad)
}

// eatDigits consumes a run of digits accepted by ok and reports whether at
// least one was consumed.
func (lx *Lexer) eatDigits(ok func(byte) bool) bool {
	n := 0
	for !lx.cursor.EOF() && ok(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	return n > 0
}

func (lx *Lexer) numberToken(start Mark, bad bool) token.Token {
	// Legacy long suffix.
	if b := lx.cursor.Peek(); b == 'L' || b == 'l' {
		lx.cursor.Bump()
	}

	// A digit run flowing straight into identifier characters is a single
	// malformed literal, not two tokens.
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		bad = true
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text(sp)
	if bad {
		lx.errLex(diag.LexBadNumber, sp, "malformed number literal "+quoted(text))
		return token.Token{Kind: token.Unknown, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Number, Span: sp, Text: text}
}
