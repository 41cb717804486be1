package parser

import (
	"pylift/internal/ast"
	"pylift/internal/diag"
	"pylift/internal/source"
	"pylift/internal/token"
)

// parseStatement dispatches on the leading token. It returns NoStmtID when
// nothing usable could be built; the caller guarantees forward progress.
func (p *Parser) parseStatement() ast.StmtID {
	if p.depth >= maxNestingDepth {
		p.errSyn(diag.SynTooDeeplyNested, p.peek().Span, "statement nesting too deep")
		sp := p.peek().Span
		p.skipToLineEnd()
		return p.b.Stmts.NewBad(p.spanFrom(sp))
	}
	p.depth++
	defer func() { p.depth-- }()

	switch p.peek().Kind {
	case token.KwDef:
		return p.parseFuncDef()
	case token.KwClass:
		return p.parseClassDef()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwPrint:
		return p.parsePrint()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		sp := p.bump().Span
		p.endStatement()
		return p.b.Stmts.NewBreak(sp)
	case token.KwContinue:
		sp := p.bump().Span
		p.endStatement()
		return p.b.Stmts.NewContinue(sp)
	case token.KwPass:
		sp := p.bump().Span
		p.endStatement()
		return p.b.Stmts.NewPass(sp)
	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseImportFrom()
	default:
		return p.parseExprOrAssign()
	}
}

// parseBlock parses the COLON NEWLINE INDENT stmt* DEDENT envelope shared by
// every compound statement. Missing envelope tokens are reported and the
// block degrades to an empty body rather than aborting the parse.
func (p *Parser) parseBlock() []ast.StmtID {
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' to open block")
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after ':'")
	if _, ok := p.expect(token.Indent, diag.SynExpectIndent, "expected indented block"); !ok {
		return nil
	}

	var body []ast.StmtID
	for !p.at(token.Dedent) && !p.at(token.EOF) {
		p.skipBlankLines()
		if p.at(token.Dedent) || p.at(token.EOF) {
			break
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
	if !p.eat(token.Dedent) && !p.at(token.EOF) {
		p.errSyn(diag.SynExpectDedent, p.peek().Span, "expected end of block")
	}
	return body
}

func (p *Parser) parseFuncDef() ast.StmtID {
	start := p.bump().Span // def

	name := p.b.Intern("_")
	if tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name after 'def'"); ok {
		name = p.b.Intern(tok.Text)
	}

	var params []source.StringID
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); ok {
		params = p.parseIdentList(token.RParen)
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameter list")
	}

	body := p.parseBlock()
	return p.b.Stmts.NewFuncDef(p.spanFrom(start), name, params, body)
}

func (p *Parser) parseClassDef() ast.StmtID {
	start := p.bump().Span // class

	name := p.b.Intern("_")
	if tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected class name after 'class'"); ok {
		name = p.b.Intern(tok.Text)
	}

	var bases []ast.ExprID
	if p.eat(token.LParen) {
		for !p.at(token.RParen) && !p.atLineEnd() {
			base, ok := p.parseExpression()
			if !ok {
				break
			}
			bases = append(bases, base)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after base class list")
	}

	body := p.parseBlock()
	return p.b.Stmts.NewClassDef(p.spanFrom(start), name, bases, body)
}

// parseIdentList reads comma-separated identifiers until stop. No defaults,
// no varargs, no keyword-only syntax.
func (p *Parser) parseIdentList(stop token.Kind) []source.StringID {
	var names []source.StringID
	for !p.at(stop) && !p.atLineEnd() {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier")
		if !ok {
			break
		}
		names = append(names, p.b.Intern(tok.Text))
		if !p.eat(token.Comma) {
			break
		}
	}
	return names
}

func (p *Parser) parseIf() ast.StmtID {
	start := p.bump().Span // if

	var arms []ast.IfArm
	cond := p.parseCondition()
	arms = append(arms, ast.IfArm{Cond: cond, Body: p.parseBlock()})

	for p.at(token.KwElif) {
		p.bump()
		cond := p.parseCondition()
		arms = append(arms, ast.IfArm{Cond: cond, Body: p.parseBlock()})
	}

	var elseBody []ast.StmtID
	if p.eat(token.KwElse) {
		elseBody = p.parseBlock()
	}
	return p.b.Stmts.NewIf(p.spanFrom(start), arms, elseBody)
}

// parseCondition parses the header expression of if/elif/while; on failure
// it reports and leaves NoExprID so the block envelope can still be parsed.
func (p *Parser) parseCondition() ast.ExprID {
	cond, ok := p.parseExpression()
	if !ok {
		p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected condition expression")
		return ast.NoExprID
	}
	return cond
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.bump().Span // while
	cond := p.parseCondition()
	body := p.parseBlock()
	return p.b.Stmts.NewWhile(p.spanFrom(start), cond, body)
}

// parseFor parses `for target in iterable: block`. The target is a name or
// an unparenthesized comma tuple of names.
func (p *Parser) parseFor() ast.StmtID {
	start := p.bump().Span // for

	target := p.parseForTarget()
	p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after loop target")
	iter, ok := p.parseExpression()
	if !ok {
		p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected iterable expression")
		iter = ast.NoExprID
	}
	body := p.parseBlock()
	return p.b.Stmts.NewFor(p.spanFrom(start), target, iter, body)
}

func (p *Parser) parseForTarget() ast.ExprID {
	start := p.peek().Span
	var names []ast.ExprID
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected loop variable name")
		if !ok {
			break
		}
		names = append(names, p.b.Exprs.NewName(tok.Span, p.b.Intern(tok.Text)))
		if !p.eat(token.Comma) {
			break
		}
	}
	switch len(names) {
	case 0:
		return ast.NoExprID
	case 1:
		return names[0]
	default:
		return p.b.Exprs.NewTuple(p.spanFrom(start), names)
	}
}

// parsePrint parses the legacy print statement: zero or more comma-separated
// expressions, where a trailing comma suppresses the newline. Two adjacent
// expressions without a comma are reported but both are kept.
func (p *Parser) parsePrint() ast.StmtID {
	start := p.bump().Span // print

	var args []ast.ExprID
	trailing := false
	for !p.atLineEnd() {
		arg, ok := p.parseExpression()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression in print statement")
			p.skipToLineEnd()
			return p.b.Stmts.NewPrint(p.spanFrom(start), args, trailing)
		}
		args = append(args, arg)
		if p.eat(token.Comma) {
			if p.atLineEnd() {
				trailing = true
				break
			}
			continue
		}
		if !p.atLineEnd() {
			p.errSyn(diag.SynPrintMissingComma, p.peek().Span,
				"expected ',' between print arguments")
		}
	}
	p.endStatement()
	return p.b.Stmts.NewPrint(p.spanFrom(start), args, trailing)
}

func (p *Parser) parseReturn() ast.StmtID {
	start := p.bump().Span // return

	value := ast.NoExprID
	if !p.atLineEnd() {
		if v, ok := p.parseExpression(); ok {
			value = v
		} else {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after 'return'")
			p.skipToLineEnd()
			return p.b.Stmts.NewReturn(p.spanFrom(start), ast.NoExprID)
		}
	}
	p.endStatement()
	return p.b.Stmts.NewReturn(p.spanFrom(start), value)
}

// parseImport parses `import a, b.c`. Dotted module paths are kept as a
// single name with the dots inside.
func (p *Parser) parseImport() ast.StmtID {
	start := p.bump().Span // import

	var modules []source.StringID
	for {
		name, ok := p.parseDottedName()
		if !ok {
			break
		}
		modules = append(modules, name)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.endStatement()
	return p.b.Stmts.NewImport(p.spanFrom(start), modules)
}

// parseImportFrom parses `from a.b import x, y` and `from a import *`.
func (p *Parser) parseImportFrom() ast.StmtID {
	start := p.bump().Span // from

	module, _ := p.parseDottedName()
	p.expect(token.KwImport, diag.SynUnexpectedToken, "expected 'import' after module name")

	var names []source.StringID
	if p.eat(token.Star) {
		names = append(names, p.b.Intern("*"))
	} else {
		names = p.parseIdentList(token.Newline)
	}
	p.endStatement()
	return p.b.Stmts.NewImportFrom(p.spanFrom(start), module, names)
}

func (p *Parser) parseDottedName() (source.StringID, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name")
	if !ok {
		return 0, false
	}
	name := tok.Text
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.bump()
		name += "." + p.bump().Text
	}
	return p.b.Intern(name), true
}

// parseExprOrAssign parses an expression statement, upgrading it to an
// assignment when an '=' or augmented form follows.
func (p *Parser) parseExprOrAssign() ast.StmtID {
	start := p.peek().Span

	target, ok := p.parseExpression()
	if !ok {
		p.errSyn(diag.SynUnexpectedToken, p.peek().Span,
			"unexpected "+p.peek().Kind.String())
		sp := p.peek().Span
		p.skipToLineEnd()
		return p.b.Stmts.NewBad(sp.Cover(p.lastSpan))
	}

	op, isAssign := assignOpFor(p.peek().Kind)
	if !isAssign {
		p.endStatement()
		return p.b.Stmts.NewExprStmt(p.spanFrom(start), target)
	}
	p.bump()

	value, ok := p.parseExpression()
	if !ok {
		p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after assignment operator")
		p.skipToLineEnd()
		return p.b.Stmts.NewAssign(p.spanFrom(start), op, target, ast.NoExprID)
	}
	p.endStatement()
	return p.b.Stmts.NewAssign(p.spanFrom(start), op, target, value)
}

func assignOpFor(k token.Kind) (ast.AssignOp, bool) {
	switch k {
	case token.Assign:
		return ast.AssignPlain, true
	case token.PlusAssign:
		return ast.AssignAdd, true
	case token.MinusAssign:
		return ast.AssignSub, true
	case token.StarAssign:
		return ast.AssignMul, true
	case token.SlashAssign:
		return ast.AssignDiv, true
	case token.PercentAssign:
		return ast.AssignMod, true
	}
	return ast.AssignPlain, false
}
