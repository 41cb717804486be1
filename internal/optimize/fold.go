package optimize

import (
	"strconv"
	"strings"

	"pylift/internal/ast"
	"pylift/internal/source"
)

// copyExpr copies an expression into dst, folding constant subtrees bottom
// up.
func (rw *rewriter) copyExpr(id ast.ExprID) ast.ExprID {
	expr := rw.src.Exprs.Get(id)
	if expr == nil {
		return ast.NoExprID
	}
	sp := expr.Span

	switch expr.Kind {
	case ast.ExprName:
		data, _ := rw.src.Exprs.Name(id)
		return rw.dst.Exprs.NewName(sp, rw.dst.Intern(rw.src.Str(data.Name)))

	case ast.ExprLit:
		data, _ := rw.src.Exprs.Lit(id)
		return rw.dst.Exprs.NewLit(sp, data.Kind, rw.dst.Intern(rw.src.Str(data.Text)))

	case ast.ExprBinary:
		data, _ := rw.src.Exprs.Binary(id)
		left := rw.copyExpr(data.Left)
		right := rw.copyExpr(data.Right)
		if folded, ok := rw.foldBinary(sp, data.Op, left, right); ok {
			rw.applied++
			return folded
		}
		return rw.dst.Exprs.NewBinary(sp, data.Op, left, right)

	case ast.ExprUnary:
		data, _ := rw.src.Exprs.Unary(id)
		operand := rw.copyExpr(data.Operand)
		if folded, ok := rw.foldUnary(sp, data.Op, operand); ok {
			rw.applied++
			return folded
		}
		return rw.dst.Exprs.NewUnary(sp, data.Op, operand)

	case ast.ExprCall:
		data, _ := rw.src.Exprs.Call(id)
		args := make([]ast.ExprID, 0, len(data.Args))
		for _, arg := range data.Args {
			args = append(args, rw.copyExpr(arg))
		}
		return rw.dst.Exprs.NewCall(sp, rw.copyExpr(data.Callee), args)

	case ast.ExprAttr:
		data, _ := rw.src.Exprs.Attr(id)
		return rw.dst.Exprs.NewAttr(sp, rw.copyExpr(data.Object),
			rw.dst.Intern(rw.src.Str(data.Name)))

	case ast.ExprIndex:
		data, _ := rw.src.Exprs.Index(id)
		return rw.dst.Exprs.NewIndex(sp, rw.copyExpr(data.Object), rw.copyExpr(data.Index))

	case ast.ExprList:
		data, _ := rw.src.Exprs.List(id)
		return rw.dst.Exprs.NewList(sp, rw.copyExprs(data.Elems))

	case ast.ExprTuple:
		data, _ := rw.src.Exprs.Tuple(id)
		return rw.dst.Exprs.NewTuple(sp, rw.copyExprs(data.Elems))

	case ast.ExprDict:
		data, _ := rw.src.Exprs.Dict(id)
		return rw.dst.Exprs.NewDict(sp, rw.copyExprs(data.Keys), rw.copyExprs(data.Values))
	}
	return ast.NoExprID
}

func (rw *rewriter) copyExprs(ids []ast.ExprID) []ast.ExprID {
	if ids == nil {
		return nil
	}
	out := make([]ast.ExprID, 0, len(ids))
	for _, id := range ids {
		out = append(out, rw.copyExpr(id))
	}
	return out
}

// foldBinary evaluates arithmetic over two literals already copied into
// dst. Division by a zero literal is deliberately left unfolded so the
// checker still sees and reports it.
func (rw *rewriter) foldBinary(sp source.Span, op ast.BinaryOp, left, right ast.ExprID) (ast.ExprID, bool) {
	ll, lok := rw.dst.Exprs.Lit(left)
	rl, rok := rw.dst.Exprs.Lit(right)
	if !lok || !rok {
		return ast.NoExprID, false
	}

	if op == ast.BinAdd && ll.Kind == ast.LitString && rl.Kind == ast.LitString {
		text := rw.dst.Str(ll.Text) + rw.dst.Str(rl.Text)
		return rw.dst.Exprs.NewLit(sp, ast.LitString, rw.dst.Intern(text)), true
	}

	if ll.Kind == ast.LitInt && rl.Kind == ast.LitInt {
		return rw.foldIntOp(sp, op, ll, rl)
	}
	if isNumeric(ll.Kind) && isNumeric(rl.Kind) {
		return rw.foldFloatOp(sp, op, ll, rl)
	}
	return ast.NoExprID, false
}

func isNumeric(k ast.LitKind) bool {
	return k == ast.LitInt || k == ast.LitFloat
}

func (rw *rewriter) foldIntOp(sp source.Span, op ast.BinaryOp, ll, rl *ast.ExprLitData) (ast.ExprID, bool) {
	a, aok := parseInt(rw.dst.Str(ll.Text))
	b, bok := parseInt(rw.dst.Str(rl.Text))
	if !aok || !bok {
		return ast.NoExprID, false
	}

	var v int64
	switch op {
	case ast.BinAdd:
		v = a + b
	case ast.BinSub:
		v = a - b
	case ast.BinMul:
		v = a * b
	case ast.BinDiv:
		// True division always yields a float in the target dialect.
		if b == 0 {
			return ast.NoExprID, false
		}
		return rw.newFloatLit(sp, float64(a)/float64(b)), true
	case ast.BinFloorDiv:
		if b == 0 {
			return ast.NoExprID, false
		}
		v = floorDiv(a, b)
	case ast.BinMod:
		if b == 0 {
			return ast.NoExprID, false
		}
		v = floorMod(a, b)
	case ast.BinPow:
		pv, ok := intPow(a, b)
		if !ok {
			return ast.NoExprID, false
		}
		v = pv
	default:
		return ast.NoExprID, false
	}
	return rw.newIntLit(sp, v), true
}

func (rw *rewriter) foldFloatOp(sp source.Span, op ast.BinaryOp, ll, rl *ast.ExprLitData) (ast.ExprID, bool) {
	a, aok := parseFloat(rw.dst.Str(ll.Text))
	b, bok := parseFloat(rw.dst.Str(rl.Text))
	if !aok || !bok {
		return ast.NoExprID, false
	}

	var v float64
	switch op {
	case ast.BinAdd:
		v = a + b
	case ast.BinSub:
		v = a - b
	case ast.BinMul:
		v = a * b
	case ast.BinDiv:
		if b == 0 {
			return ast.NoExprID, false
		}
		v = a / b
	default:
		return ast.NoExprID, false
	}
	return rw.newFloatLit(sp, v), true
}

func (rw *rewriter) foldUnary(sp source.Span, op ast.UnaryOp, operand ast.ExprID) (ast.ExprID, bool) {
	lit, ok := rw.dst.Exprs.Lit(operand)
	if !ok {
		return ast.NoExprID, false
	}

	if op == ast.UnaryNot {
		truthy, known := rw.literalTruth(operand)
		if !known {
			return ast.NoExprID, false
		}
		text := "True"
		if truthy {
			text = "False"
		}
		return rw.dst.Exprs.NewLit(sp, ast.LitBool, rw.dst.Intern(text)), true
	}

	switch lit.Kind {
	case ast.LitInt:
		v, ok := parseInt(rw.dst.Str(lit.Text))
		if !ok {
			return ast.NoExprID, false
		}
		if op == ast.UnaryNeg {
			v = -v
		}
		return rw.newIntLit(sp, v), true
	case ast.LitFloat:
		v, ok := parseFloat(rw.dst.Str(lit.Text))
		if !ok {
			return ast.NoExprID, false
		}
		if op == ast.UnaryNeg {
			v = -v
		}
		return rw.newFloatLit(sp, v), true
	}
	return ast.NoExprID, false
}

func (rw *rewriter) newIntLit(sp source.Span, v int64) ast.ExprID {
	return rw.dst.Exprs.NewLit(sp, ast.LitInt, rw.dst.Intern(strconv.FormatInt(v, 10)))
}

func (rw *rewriter) newFloatLit(sp source.Span, v float64) ast.ExprID {
	text := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return rw.dst.Exprs.NewLit(sp, ast.LitFloat, rw.dst.Intern(text))
}

// parseInt handles all source spellings: hex, binary, octal, decimal, and
// the legacy long suffix.
func parseInt(text string) (int64, bool) {
	text = strings.TrimSuffix(strings.TrimSuffix(text, "L"), "l")
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloat(text string) (float64, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// floorDiv matches the dialect's floored integer division.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod matches the dialect's modulo, whose result takes the divisor's
// sign.
func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}

// intPow folds only small non-negative exponents to stay clear of
// overflow.
func intPow(base, exp int64) (int64, bool) {
	if exp < 0 || exp > 62 {
		return 0, false
	}
	v := int64(1)
	for i := int64(0); i < exp; i++ {
		next := v * base
		if base != 0 && next/base != v {
			return 0, false
		}
		v = next
	}
	return v, true
}
