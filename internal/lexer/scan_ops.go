package lexer

import (
	"strconv"

	"pylift/internal/diag"
	"pylift/internal/token"
)

// twoCharOps maps two-byte operator spellings to kinds. Longest match wins,
// so these are tried before the single-byte table.
var twoCharOps = map[[2]byte]token.Kind{
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '>'}: token.LtGt,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
	{'+', '='}: token.PlusAssign,
	{'-', '='}: token.MinusAssign,
	{'*', '='}: token.StarAssign,
	{'/', '='}: token.SlashAssign,
	{'%', '='}: token.PercentAssign,
	{'*', '*'}: token.StarStar,
	{'/', '/'}: token.SlashSlash,
	{'-', '>'}: token.Arrow,
}

var oneCharOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Assign,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	':': token.Colon,
	';': token.Semicolon,
	'.': token.Dot,
}

// scanOperatorOrPunct reads an operator or delimiter, preferring the longest
// spelling. Anything unrecognized becomes an Unknown token with a
// diagnostic, and scanning moves past it.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if kind, found := twoCharOps[[2]byte{b0, b1}]; found {
			lx.cursor.Bump()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.cursor.Text(sp)}
		}
	}

	ch := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	if kind, found := oneCharOps[ch]; found {
		return token.Token{Kind: kind, Span: sp, Text: lx.cursor.Text(sp)}
	}

	lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+quoted(string(ch)))
	return token.Token{Kind: token.Unknown, Span: sp, Text: lx.cursor.Text(sp)}
}

func quoted(s string) string {
	return strconv.Quote(s)
}
