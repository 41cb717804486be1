package parser

import (
	"strings"

	"pylift/internal/ast"
	"pylift/internal/diag"
	"pylift/internal/source"
	"pylift/internal/token"
)

// Expression grammar, lowest precedence first:
//
//	or -> and -> not -> comparison -> additive -> multiplicative
//	   -> power (right-associative) -> unary -> postfix -> primary
//
// Each level returns (NoExprID, false) without consuming input when no
// expression starts at the cursor; the statement layer recovers.

func (p *Parser) parseExpression() (ast.ExprID, bool) {
	if p.depth >= maxNestingDepth {
		p.errSyn(diag.SynTooDeeplyNested, p.peek().Span, "expression nesting too deep")
		return ast.NoExprID, false
	}
	p.depth++
	defer func() { p.depth-- }()
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.ExprID, bool) {
	left, ok := p.parseAnd()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwOr) {
		start := p.exprSpan(left)
		p.bump()
		right, ok := p.parseAnd()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after 'or'")
			return left, true
		}
		left = p.b.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinOr, left, right)
	}
	return left, true
}

func (p *Parser) parseAnd() (ast.ExprID, bool) {
	left, ok := p.parseNot()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwAnd) {
		start := p.exprSpan(left)
		p.bump()
		right, ok := p.parseNot()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after 'and'")
			return left, true
		}
		left = p.b.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinAnd, left, right)
	}
	return left, true
}

func (p *Parser) parseNot() (ast.ExprID, bool) {
	if p.at(token.KwNot) {
		start := p.bump().Span
		operand, ok := p.parseNot()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after 'not'")
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewUnary(start.Cover(p.lastSpan), ast.UnaryNot, operand), true
	}
	return p.parseComparison()
}

func comparisonOpFor(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.EqEq:
		return ast.BinEq, true
	case token.BangEq, token.LtGt:
		// The legacy spelling normalizes to the modern one here.
		return ast.BinNotEq, true
	case token.Lt:
		return ast.BinLess, true
	case token.LtEq:
		return ast.BinLessEq, true
	case token.Gt:
		return ast.BinGreater, true
	case token.GtEq:
		return ast.BinGreaterEq, true
	case token.KwIs:
		return ast.BinIs, true
	case token.KwIn:
		return ast.BinIn, true
	}
	return ast.BinEq, false
}

func (p *Parser) parseComparison() (ast.ExprID, bool) {
	left, ok := p.parseAdditive()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op, isCmp := comparisonOpFor(p.peek().Kind)
		if !isCmp {
			return left, true
		}
		start := p.exprSpan(left)
		p.bump()
		right, ok := p.parseAdditive()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after comparison operator")
			return left, true
		}
		left = p.b.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right)
	}
}

func (p *Parser) parseAdditive() (ast.ExprID, bool) {
	left, ok := p.parseMultiplicative()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.BinAdd
		if p.at(token.Minus) {
			op = ast.BinSub
		}
		start := p.exprSpan(left)
		p.bump()
		right, ok := p.parseMultiplicative()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after operator")
			return left, true
		}
		left = p.b.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right)
	}
	return left, true
}

func multiplicativeOpFor(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.Star:
		return ast.BinMul, true
	case token.Slash:
		return ast.BinDiv, true
	case token.SlashSlash:
		return ast.BinFloorDiv, true
	case token.Percent:
		return ast.BinMod, true
	}
	return ast.BinMul, false
}

func (p *Parser) parseMultiplicative() (ast.ExprID, bool) {
	left, ok := p.parsePower()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op, isMul := multiplicativeOpFor(p.peek().Kind)
		if !isMul {
			return left, true
		}
		start := p.exprSpan(left)
		p.bump()
		right, ok := p.parsePower()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after operator")
			return left, true
		}
		left = p.b.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right)
	}
}

// parsePower handles '**', which is right-associative: the right operand
// recurses into parsePower itself.
func (p *Parser) parsePower() (ast.ExprID, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.StarStar) {
		return left, true
	}
	start := p.exprSpan(left)
	p.bump()
	right, ok := p.parsePower()
	if !ok {
		p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after '**'")
		return left, true
	}
	return p.b.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinPow, left, right), true
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	switch p.peek().Kind {
	case token.Minus, token.Plus:
		op := ast.UnaryNeg
		if p.at(token.Plus) {
			op = ast.UnaryPos
		}
		start := p.bump().Span
		operand, ok := p.parseUnary()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after unary operator")
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewUnary(start.Cover(p.lastSpan), op, operand), true
	}
	return p.parsePostfix()
}

// parsePostfix consumes a chain of attribute accesses, subscripts, and
// calls after a primary. A call only attaches when the base is a name or an
// attribute access; calling an arbitrary parenthesized expression is a
// deliberate grammar restriction.
func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.peek().Kind {
		case token.Dot:
			start := p.exprSpan(expr)
			p.bump()
			tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected attribute name after '.'")
			if !ok {
				return expr, true
			}
			expr = p.b.Exprs.NewAttr(start.Cover(p.lastSpan), expr, p.b.Intern(tok.Text))

		case token.LBracket:
			start := p.exprSpan(expr)
			p.bump()
			index, ok := p.parseExpression()
			if !ok {
				p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected subscript expression")
				return expr, true
			}
			p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after subscript")
			expr = p.b.Exprs.NewIndex(start.Cover(p.lastSpan), expr, index)

		case token.LParen:
			kind := p.b.Exprs.Get(expr).Kind
			if kind != ast.ExprName && kind != ast.ExprAttr {
				p.errSyn(diag.SynBadCallTarget, p.peek().Span,
					"only a name or attribute access can be called")
				return expr, true
			}
			start := p.exprSpan(expr)
			p.bump()
			args := p.parseCallArgs()
			p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after call arguments")
			expr = p.b.Exprs.NewCall(start.Cover(p.lastSpan), expr, args)

		default:
			return expr, true
		}
	}
}

func (p *Parser) parseCallArgs() []ast.ExprID {
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpression()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected call argument")
			break
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	return args
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.bump()
		return p.b.Exprs.NewName(tok.Span, p.b.Intern(tok.Text)), true

	case token.Number:
		p.bump()
		kind := ast.LitInt
		if isFloatLiteral(tok.Text) {
			kind = ast.LitFloat
		}
		return p.b.Exprs.NewLit(tok.Span, kind, p.b.Intern(tok.Text)), true

	case token.String:
		p.bump()
		return p.b.Exprs.NewLit(tok.Span, ast.LitString, p.b.Intern(tok.Text)), true

	case token.KwTrue, token.KwFalse:
		p.bump()
		return p.b.Exprs.NewLit(tok.Span, ast.LitBool, p.b.Intern(tok.Text)), true

	case token.KwNone:
		p.bump()
		return p.b.Exprs.NewLit(tok.Span, ast.LitNone, p.b.Intern(tok.Text)), true

	case token.LBracket:
		return p.parseListDisplay()

	case token.LBrace:
		return p.parseDictDisplay()

	case token.LParen:
		return p.parseParenOrTuple()
	}
	return ast.NoExprID, false
}

func (p *Parser) parseListDisplay() (ast.ExprID, bool) {
	start := p.bump().Span // [
	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elem, ok := p.parseExpression()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected list element")
			break
		}
		elems = append(elems, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close list")
	return p.b.Exprs.NewList(start.Cover(p.lastSpan), elems), true
}

func (p *Parser) parseDictDisplay() (ast.ExprID, bool) {
	start := p.bump().Span // {
	var keys, values []ast.ExprID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		key, ok := p.parseExpression()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected dict key")
			break
		}
		p.expect(token.Colon, diag.SynExpectColon, "expected ':' after dict key")
		value, ok := p.parseExpression()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected dict value")
			break
		}
		keys = append(keys, key)
		values = append(values, value)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close dict")
	return p.b.Exprs.NewDict(start.Cover(p.lastSpan), keys, values), true
}

// parseParenOrTuple parses a parenthesized expression or a tuple display.
// A single element is a tuple only with a trailing comma, matching the
// dialect's own disambiguation rule.
func (p *Parser) parseParenOrTuple() (ast.ExprID, bool) {
	start := p.bump().Span // (

	if p.eat(token.RParen) {
		return p.b.Exprs.NewTuple(start.Cover(p.lastSpan), nil), true
	}

	first, ok := p.parseExpression()
	if !ok {
		p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected expression after '('")
		p.eat(token.RParen)
		return ast.NoExprID, false
	}

	if !p.at(token.Comma) {
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return first, true
	}

	elems := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(token.RParen) {
			break
		}
		elem, ok := p.parseExpression()
		if !ok {
			p.errSyn(diag.SynExpectExpression, p.peek().Span, "expected tuple element")
			break
		}
		elems = append(elems, elem)
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close tuple")
	return p.b.Exprs.NewTuple(start.Cover(p.lastSpan), elems), true
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}

func isFloatLiteral(text string) bool {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") ||
		strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B") ||
		strings.HasPrefix(text, "0o") || strings.HasPrefix(text, "0O") {
		return false
	}
	return strings.ContainsAny(text, ".eE")
}
