// Package lexer converts raw source text into a token stream. It owns the
// identifier table and drives its scope entry/exit as indentation changes.
// No lexical error is fatal: diagnostics accumulate and scanning proceeds to
// maximize error yield in one pass.
package lexer

import (
	"pylift/internal/diag"
	"pylift/internal/source"
	"pylift/internal/symtab"
	"pylift/internal/token"
)

// Lexer scans one source file. Obtain tokens through Next or the package
// level Tokenize helper.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	symbols *symtab.Table

	// pending holds tokens already produced but not yet handed out; a
	// single dedent step can release several of them at once.
	pending []token.Token

	indentStack []int
	atLineStart bool
	done        bool
}

// New creates a lexer over file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		symbols:     symtab.New(128),
		indentStack: []int{0},
		atLineStart: true,
	}
}

// Symbols exposes the identifier table populated during scanning, for
// diagnostics and visualization tools.
func (lx *Lexer) Symbols() *symtab.Table {
	return lx.symbols
}

// Next returns the next token. After the terminal EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	for len(lx.pending) == 0 {
		lx.scanOne()
	}
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok
}

// Tokenize scans the whole file and returns the token sequence terminated by
// EOF, plus the populated identifier table.
func Tokenize(file *source.File, opts Options) ([]token.Token, *symtab.Table) {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+8)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, lx.symbols
}

// scanOne appends at least one token to pending, or finishes the file.
func (lx *Lexer) scanOne() {
	if lx.done {
		lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: lx.hereSpan()})
		return
	}

	if lx.atLineStart {
		lx.handleIndentation()
		if len(lx.pending) > 0 {
			return
		}
	}

	if lx.cursor.EOF() {
		lx.finish()
		return
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == ' ' || ch == '\t':
		// Interior whitespace between tokens.
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if b != ' ' && b != '\t' {
				break
			}
			lx.cursor.Bump()
		}

	case ch == '\n':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.pending = append(lx.pending, token.Token{
			Kind: token.Newline,
			Span: lx.cursor.SpanFrom(start),
		})
		lx.atLineStart = true

	case ch == '#':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}

	case isIdentStartByte(ch) || ch >= 0x80:
		lx.pending = append(lx.pending, lx.scanIdentOrKeyword())

	case isDec(ch):
		lx.pending = append(lx.pending, lx.scanNumber())

	case ch == '"' || ch == '\'':
		lx.pending = append(lx.pending, lx.scanString(ch))

	default:
		lx.pending = append(lx.pending, lx.scanOperatorOrPunct())
	}
}

// handleIndentation measures leading whitespace at the start of a logical
// line. Blank and comment-only lines do not affect the indent stack. Spaces
// weigh 1, tabs weigh the configured tab width.
func (lx *Lexer) handleIndentation() {
	var start Mark
	width := 0
	for {
		start = lx.cursor.Mark()
		width = 0
	measure:
		for !lx.cursor.EOF() {
			switch lx.cursor.Peek() {
			case ' ':
				width++
			case '\t':
				width += lx.opts.tabWidth()
			default:
				break measure
			}
			lx.cursor.Bump()
		}
		if lx.cursor.EOF() {
			return
		}
		if b := lx.cursor.Peek(); b == '\n' || b == '#' {
			// Blank and comment-only lines yield no tokens and leave the
			// indent stack alone; measure again on the next line.
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.cursor.Eat('\n')
			continue
		}
		break
	}

	lx.atLineStart = false
	sp := lx.cursor.SpanFrom(start)

	top := lx.indentStack[len(lx.indentStack)-1]
	switch {
	case width > top:
		lx.indentStack = append(lx.indentStack, width)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: sp})
		lx.symbols.EnterScope()

	case width < top:
		for len(lx.indentStack) > 1 && lx.indentStack[len(lx.indentStack)-1] > width {
			lx.indentStack = lx.indentStack[:len(lx.indentStack)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
			lx.symbols.ExitScope()
		}
		if lx.indentStack[len(lx.indentStack)-1] != width {
			lx.errLex(diag.LexInconsistentIndent, sp, "inconsistent indentation level")
		}
	}
}

// finish pops every remaining indent level and appends the terminal EOF.
func (lx *Lexer) finish() {
	sp := lx.hereSpan()
	for len(lx.indentStack) > 1 {
		lx.indentStack = lx.indentStack[:len(lx.indentStack)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
		lx.symbols.ExitScope()
	}
	lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: sp})
	lx.done = true
}

func (lx *Lexer) hereSpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
