package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"pylift/internal/diag"
	"pylift/internal/symtab"
	"pylift/internal/token"
)

// scanIdentOrKeyword reads an identifier or keyword. Identifiers start with
// a letter or underscore and continue with letters, digits, or underscores.
// Non-ASCII identifiers are NFKC-normalized, matching the source language's
// own identifier rule. Identifiers (not keywords) are inserted into the
// identifier table under the lexer's current scope.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b < 0x80 {
			break
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		if r == utf8.RuneError || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			break
		}
		for i := 0; i < size; i++ {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text(sp)
	if !isASCII(text) {
		text = norm.NFKC.String(text)
	}

	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: sp, Text: text}
	}

	pos := lx.file.Position(sp.Start)
	if err := lx.symbols.Insert(text, symtab.SymbolVar, "auto", "", pos); err != nil {
		lx.errLex(diag.LexInvalidIdentifier, sp, err.Error())
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
