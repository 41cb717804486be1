package sema

import (
	"fmt"

	"pylift/internal/ast"
	"pylift/internal/diag"
)

func (c *Checker) checkExpr(id ast.ExprID) {
	expr := c.tree.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprName:
		data, _ := c.tree.Exprs.Name(id)
		name := c.tree.Str(data.Name)
		if !c.current.isDeclared(name) && !IsBuiltinFunction(name) {
			c.errAt(diag.SemUndeclaredIdentifier, expr.Span,
				fmt.Sprintf("name %q is not defined", name))
		}

	case ast.ExprLit:

	case ast.ExprBinary:
		c.checkBinary(id, expr)

	case ast.ExprUnary:
		data, _ := c.tree.Exprs.Unary(id)
		c.checkExpr(data.Operand)

	case ast.ExprCall:
		c.checkCall(id, expr)

	case ast.ExprAttr:
		data, _ := c.tree.Exprs.Attr(id)
		c.checkExpr(data.Object)

	case ast.ExprIndex:
		data, _ := c.tree.Exprs.Index(id)
		c.checkExpr(data.Object)
		c.checkExpr(data.Index)

	case ast.ExprList:
		data, _ := c.tree.Exprs.List(id)
		for _, elem := range data.Elems {
			c.checkExpr(elem)
		}

	case ast.ExprTuple:
		data, _ := c.tree.Exprs.Tuple(id)
		for _, elem := range data.Elems {
			c.checkExpr(elem)
		}

	case ast.ExprDict:
		data, _ := c.tree.Exprs.Dict(id)
		for i := range data.Keys {
			c.checkExpr(data.Keys[i])
			c.checkExpr(data.Values[i])
		}
	}
}

// checkBinary descends into both operands and flags a division whose right
// operand is the literal zero, regardless of numeric form.
func (c *Checker) checkBinary(id ast.ExprID, expr *ast.Expr) {
	data, _ := c.tree.Exprs.Binary(id)
	c.checkExpr(data.Left)
	c.checkExpr(data.Right)

	if data.Op != ast.BinDiv && data.Op != ast.BinFloorDiv {
		return
	}
	if lit, ok := c.tree.Exprs.Lit(data.Right); ok && c.isZeroLiteral(lit) {
		c.errAt(diag.SemConstDivisionByZero, expr.Span, "division by zero (constant)")
	}
}

func (c *Checker) isZeroLiteral(lit *ast.ExprLitData) bool {
	if lit.Kind != ast.LitInt && lit.Kind != ast.LitFloat {
		return false
	}
	text := c.tree.Str(lit.Text)
	sawDigit := false
	for i := 0; i < len(text); i++ {
		switch ch := text[i]; {
		case ch == '0' || ch == '.':
			sawDigit = sawDigit || ch == '0'
		case ch == 'L' || ch == 'l':
		case (ch == 'x' || ch == 'X' || ch == 'b' || ch == 'B' || ch == 'o' || ch == 'O') && i == 1:
		default:
			return false
		}
	}
	return sawDigit
}

// checkCall validates the callee and its argument count. Builtins check
// against their arity; user functions against their declared parameter
// count; method calls on a name resolving to a known class against the
// method's parameter count minus the implicit receiver.
func (c *Checker) checkCall(id ast.ExprID, expr *ast.Expr) {
	data, _ := c.tree.Exprs.Call(id)

	if nameData, ok := c.tree.Exprs.Name(data.Callee); ok {
		name := c.tree.Str(nameData.Name)
		argc := len(data.Args)

		switch {
		case IsBuiltinFunction(name):
			if spec := builtinFunctions[name]; !spec.Accepts(argc) {
				c.errAt(diag.SemArgumentCountMismatch, expr.Span,
					fmt.Sprintf("builtin %q does not accept %d argument(s)", name, argc))
			}
		default:
			sig, known := c.current.lookupFunc(name)
			if known {
				if argc != sig.paramCount {
					c.errAt(diag.SemArgumentCountMismatch, expr.Span,
						fmt.Sprintf("function %q expects %d argument(s), got %d",
							name, sig.paramCount, argc))
				}
			} else if !c.current.isDeclared(name) {
				c.errAt(diag.SemUndeclaredIdentifier, expr.Span,
					fmt.Sprintf("function %q is not defined", name))
			}
		}
	} else if attrData, ok := c.tree.Exprs.Attr(data.Callee); ok {
		c.checkMethodCall(expr, attrData, len(data.Args))
	} else {
		c.checkExpr(data.Callee)
	}

	for _, arg := range data.Args {
		c.checkExpr(arg)
	}
}

// checkMethodCall handles callee forms like Base.method(...). Only when the
// base name statically resolves to a known class is the arity checked; an
// arbitrary instance receiver is left alone.
func (c *Checker) checkMethodCall(expr *ast.Expr, attr *ast.ExprAttrData, argc int) {
	baseName, ok := c.tree.Exprs.Name(attr.Object)
	if !ok {
		c.checkExpr(attr.Object)
		return
	}
	base := c.tree.Str(baseName.Name)
	info, isClass := c.classes[base]
	if !isClass {
		c.checkExpr(attr.Object)
		return
	}
	method := c.tree.Str(attr.Name)
	params, known := info.methods[method]
	if !known {
		return
	}
	// The receiver parameter does not count toward the call site.
	if want := params - 1; argc != want {
		c.errAt(diag.SemArgumentCountMismatch, expr.Span,
			fmt.Sprintf("method %q of class %q expects %d argument(s), got %d",
				method, base, want, argc))
	}
}
