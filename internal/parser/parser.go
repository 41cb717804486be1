// Package parser builds the syntax tree from a token sequence by recursive
// descent. Every entry point that can fail to consume input re-checks the
// cursor before returning; if nothing moved, the main loops force-advance
// one token, so parsing terminates on arbitrarily malformed input.
package parser

import (
	"slices"

	"pylift/internal/ast"
	"pylift/internal/diag"
	"pylift/internal/source"
	"pylift/internal/token"
)

// maxNestingDepth bounds statement and expression recursion; input nested
// deeper is rejected with a diagnostic instead of overflowing the stack.
const maxNestingDepth = 100

// Options configure one parse.
type Options struct {
	// Reporter receives syntax diagnostics. May be nil.
	Reporter diag.Reporter
	// Hints presizes the tree arenas. Zero values pick defaults.
	Hints ast.Hints
}

// Result is the outcome of one parse: the program root and the builder
// holding every node it references.
type Result struct {
	Program ast.Program
	Tree    *ast.Builder
}

// Parser holds the state for one file.
type Parser struct {
	tokens   []token.Token
	pos      int
	b        *ast.Builder
	opts     Options
	depth    int
	lastSpan source.Span
}

// Parse consumes the token list produced by the lexer, which must be
// terminated by an EOF token.
func Parse(tokens []token.Token, opts Options) Result {
	p := &Parser{
		tokens: tokens,
		b:      ast.NewBuilder(opts.Hints),
		opts:   opts,
	}
	if len(tokens) > 0 {
		p.lastSpan = tokens[0].Span
	}
	return Result{
		Program: p.parseProgram(),
		Tree:    p.b,
	}
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF, Span: p.lastSpan}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.tokens) {
		return token.Token{Kind: token.EOF, Span: p.lastSpan}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) bump() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	return false
}

// expect consumes and returns the current token if it matches kind.
// Otherwise it records a diagnostic and leaves the cursor unchanged; the
// caller decides how to recover.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	p.errSyn(code, p.peek().Span, msg)
	return token.Token{}, false
}

func (p *Parser) errSyn(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// atLineEnd reports whether the cursor sits at a logical line boundary.
func (p *Parser) atLineEnd() bool {
	return p.atOr(token.Newline, token.Semicolon, token.Dedent, token.EOF)
}

// endStatement consumes the line terminator after a simple statement.
// Dedent and EOF terminate a line implicitly and are left for the block
// loop to handle.
func (p *Parser) endStatement() {
	switch p.peek().Kind {
	case token.Newline, token.Semicolon:
		p.bump()
	case token.Dedent, token.EOF, token.Indent:
	default:
		p.errSyn(diag.SynExpectNewline, p.peek().Span,
			"expected end of line, found "+p.peek().Kind.String())
		p.skipToLineEnd()
	}
}

// skipToLineEnd advances past the rest of the current logical line,
// consuming the terminating newline.
func (p *Parser) skipToLineEnd() {
	for !p.atLineEnd() {
		p.bump()
	}
	p.eat(token.Newline)
	p.eat(token.Semicolon)
}

func (p *Parser) skipBlankLines() {
	for p.at(token.Newline) || p.at(token.Semicolon) {
		p.bump()
	}
}

// parseProgram parses statements until EOF, skipping blank newlines between
// them and force-advancing whenever a statement fails without moving.
func (p *Parser) parseProgram() ast.Program {
	start := p.peek().Span
	var body []ast.StmtID
	for !p.at(token.EOF) {
		p.skipBlankLines()
		if p.at(token.EOF) {
			break
		}
		// Stray structural tokens at top level come from lexer recovery.
		if p.at(token.Indent) || p.at(token.Dedent) {
			p.errSyn(diag.SynUnexpectedToken, p.peek().Span,
				"unexpected "+p.peek().Kind.String()+" at top level")
			p.bump()
			continue
		}
		before := p.pos
		id := p.parseStatement()
		if id.IsValid() {
			body = append(body, id)
		}
		if p.pos == before {
			tok := p.bump()
			p.errSyn(diag.SynStuckStatement, tok.Span,
				"could not parse statement starting at "+tok.Kind.String())
		}
	}
	return ast.Program{Span: p.spanFrom(start), Body: body}
}
