package dialect

import (
	"strings"

	"pylift/internal/token"
)

// Signal weights. Constructs that only exist in one dialect score high;
// spellings that are merely typical score low.
const (
	scoreExclusive = 3
	scoreStrong    = 2
	scoreWeak      = 1
)

var legacyNames = map[string]string{
	"xrange":     "xrange() only exists in the legacy dialect",
	"raw_input":  "raw_input() only exists in the legacy dialect",
	"basestring": "basestring only exists in the legacy dialect",
	"unichr":     "unichr() only exists in the legacy dialect",
	"iteritems":  "dict.iteritems() only exists in the legacy dialect",
	"iterkeys":   "dict.iterkeys() only exists in the legacy dialect",
	"itervalues": "dict.itervalues() only exists in the legacy dialect",
}

// Collect scans a token stream and gathers dialect evidence.
func Collect(tokens []token.Token) *Evidence {
	ev := NewEvidence()
	for i, tok := range tokens {
		switch tok.Kind {
		case token.LtGt:
			ev.Add(Hint{Legacy, scoreExclusive, "the '<>' operator was removed from the modern dialect", tok.Span})

		case token.KwPrint:
			// A bare print statement is legacy; print( could be either.
			if next(tokens, i).Kind == token.LParen {
				ev.Add(Hint{Modern, scoreWeak, "parenthesized print call", tok.Span})
			} else {
				ev.Add(Hint{Legacy, scoreExclusive, "the print statement form was removed from the modern dialect", tok.Span})
			}

		case token.KwExec:
			if next(tokens, i).Kind != token.LParen {
				ev.Add(Hint{Legacy, scoreExclusive, "the exec statement form was removed from the modern dialect", tok.Span})
			}

		case token.KwAsync, token.KwAwait, token.KwNonlocal:
			ev.Add(Hint{Modern, scoreExclusive, "the '" + tok.Text + "' keyword only exists in the modern dialect", tok.Span})

		case token.Arrow:
			ev.Add(Hint{Modern, scoreStrong, "return annotations only exist in the modern dialect", tok.Span})

		case token.KwExcept:
			if commaBeforeColon(tokens, i+1) {
				ev.Add(Hint{Legacy, scoreExclusive, "the 'except X, e' binding form was replaced by 'except X as e'", tok.Span})
			}

		case token.Number:
			if strings.HasSuffix(tok.Text, "L") || strings.HasSuffix(tok.Text, "l") {
				ev.Add(Hint{Legacy, scoreExclusive, "the long-integer suffix was removed from the modern dialect", tok.Span})
			}

		case token.Ident:
			if reason, ok := legacyNames[tok.Text]; ok {
				ev.Add(Hint{Legacy, scoreStrong, reason, tok.Span})
			}
			if tok.Text == "unicode" && next(tokens, i).Kind == token.LParen {
				ev.Add(Hint{Legacy, scoreStrong, "the unicode type was merged into str in the modern dialect", tok.Span})
			}
		}
	}
	return ev
}

// commaBeforeColon reports whether an except clause separates the exception
// from its binding with a comma instead of 'as'.
func commaBeforeColon(tokens []token.Token, from int) bool {
	for i := from; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case token.Comma:
			return true
		case token.Colon, token.Newline, token.EOF:
			return false
		}
	}
	return false
}

func next(tokens []token.Token, i int) token.Token {
	if i+1 < len(tokens) {
		return tokens[i+1]
	}
	return token.Token{Kind: token.EOF}
}
