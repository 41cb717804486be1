package emit

import (
	"strings"

	"pylift/internal/ast"
)

// Operator precedence for re-parenthesization, higher binds tighter.
const (
	precLowest = iota
	precOr
	precAnd
	precNot
	precCmp
	precAdd
	precMul
	precUnary
	precPow
	precPostfix
	precAtom
)

func binaryPrec(op ast.BinaryOp) int {
	switch op {
	case ast.BinOr:
		return precOr
	case ast.BinAnd:
		return precAnd
	case ast.BinAdd, ast.BinSub:
		return precAdd
	case ast.BinMul, ast.BinDiv, ast.BinFloorDiv, ast.BinMod:
		return precMul
	case ast.BinPow:
		return precPow
	default: // comparisons, is, in
		return precCmp
	}
}

// expr renders an expression, wrapping it in parentheses when its
// precedence is below what the surrounding context requires.
func (g *generator) expr(id ast.ExprID, need int) string {
	expr := g.tree.Exprs.Get(id)
	if expr == nil {
		return ""
	}
	text, prec := g.render(id, expr)
	if prec < need {
		return "(" + text + ")"
	}
	return text
}

func (g *generator) render(id ast.ExprID, expr *ast.Expr) (string, int) {
	switch expr.Kind {
	case ast.ExprName:
		data, _ := g.tree.Exprs.Name(id)
		name := g.tree.Str(data.Name)
		if modern, ok := renamedCallables[name]; ok {
			name = modern
		}
		return name, precAtom

	case ast.ExprLit:
		data, _ := g.tree.Exprs.Lit(id)
		return g.literal(data), precAtom

	case ast.ExprBinary:
		data, _ := g.tree.Exprs.Binary(id)
		prec := binaryPrec(data.Op)
		// Power is right-associative; everything else associates left.
		leftNeed, rightNeed := prec, prec+1
		if data.Op == ast.BinPow {
			leftNeed, rightNeed = prec+1, prec
		}
		return g.expr(data.Left, leftNeed) + " " + data.Op.String() + " " +
			g.expr(data.Right, rightNeed), prec

	case ast.ExprUnary:
		data, _ := g.tree.Exprs.Unary(id)
		if data.Op == ast.UnaryNot {
			return "not " + g.expr(data.Operand, precNot), precNot
		}
		return data.Op.String() + g.expr(data.Operand, precUnary), precUnary

	case ast.ExprCall:
		data, _ := g.tree.Exprs.Call(id)
		if text, ok := g.hasKeyCall(data); ok {
			return text, precCmp
		}
		args := make([]string, 0, len(data.Args))
		for _, arg := range data.Args {
			args = append(args, g.expr(arg, precLowest))
		}
		return g.expr(data.Callee, precPostfix) + "(" + strings.Join(args, ", ") + ")",
			precPostfix

	case ast.ExprAttr:
		data, _ := g.tree.Exprs.Attr(id)
		name := g.tree.Str(data.Name)
		if modern, ok := renamedMethods[name]; ok {
			name = modern
		}
		return g.expr(data.Object, precPostfix) + "." + name, precPostfix

	case ast.ExprIndex:
		data, _ := g.tree.Exprs.Index(id)
		return g.expr(data.Object, precPostfix) + "[" + g.expr(data.Index, precLowest) + "]",
			precPostfix

	case ast.ExprList:
		data, _ := g.tree.Exprs.List(id)
		return "[" + g.joined(data.Elems) + "]", precAtom

	case ast.ExprTuple:
		data, _ := g.tree.Exprs.Tuple(id)
		if len(data.Elems) == 1 {
			return "(" + g.expr(data.Elems[0], precLowest) + ",)", precAtom
		}
		return "(" + g.joined(data.Elems) + ")", precAtom

	case ast.ExprDict:
		data, _ := g.tree.Exprs.Dict(id)
		pairs := make([]string, 0, len(data.Keys))
		for i := range data.Keys {
			pairs = append(pairs, g.expr(data.Keys[i], precLowest)+": "+
				g.expr(data.Values[i], precLowest))
		}
		return "{" + strings.Join(pairs, ", ") + "}", precAtom
	}
	return "", precAtom
}

// hasKeyCall rewrites the legacy d.has_key(k) form as a membership test.
func (g *generator) hasKeyCall(data *ast.ExprCallData) (string, bool) {
	if len(data.Args) != 1 {
		return "", false
	}
	attr, ok := g.tree.Exprs.Attr(data.Callee)
	if !ok || g.tree.Str(attr.Name) != "has_key" {
		return "", false
	}
	return g.expr(data.Args[0], precCmp+1) + " in " + g.expr(attr.Object, precCmp+1), true
}

func (g *generator) joined(ids []ast.ExprID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, g.expr(id, precLowest))
	}
	return strings.Join(parts, ", ")
}

func (g *generator) literal(data *ast.ExprLitData) string {
	text := g.tree.Str(data.Text)
	switch data.Kind {
	case ast.LitString:
		return quoteString(text)
	case ast.LitInt:
		// The legacy long suffix has no modern counterpart.
		return strings.TrimSuffix(strings.TrimSuffix(text, "L"), "l")
	default:
		return text
	}
}

// quoteString renders a decoded string value back to a double-quoted
// literal with minimal escaping.
func quoteString(value string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(value); i++ {
		switch ch := value[i]; ch {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteByte(ch)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
