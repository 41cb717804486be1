package ast

import (
	"pylift/internal/source"
)

// ExprKind enumerates the expression variants.
type ExprKind uint8

const (
	// ExprName represents a bare identifier reference.
	ExprName ExprKind = iota
	// ExprLit represents a literal value.
	ExprLit
	// ExprBinary represents an infix binary operation.
	ExprBinary
	// ExprUnary represents a prefix unary operation.
	ExprUnary
	// ExprCall represents a function or constructor call.
	ExprCall
	// ExprAttr represents attribute access (obj.name).
	ExprAttr
	// ExprIndex represents subscripting (obj[index]).
	ExprIndex
	// ExprList represents a list display.
	ExprList
	// ExprTuple represents a tuple display.
	ExprTuple
	// ExprDict represents a dict display.
	ExprDict

	exprKindCount
)

var exprKindNames = [exprKindCount]string{
	ExprName:   "Name",
	ExprLit:    "Lit",
	ExprBinary: "Binary",
	ExprUnary:  "Unary",
	ExprCall:   "Call",
	ExprAttr:   "Attr",
	ExprIndex:  "Index",
	ExprList:   "List",
	ExprTuple:  "Tuple",
	ExprDict:   "Dict",
}

func (k ExprKind) String() string {
	if k < exprKindCount {
		return exprKindNames[k]
	}
	return "Invalid"
}

// Expr is an expression node header; the payload lives in the per-kind
// arena selected by Kind.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp enumerates binary operators. The legacy inequality spelling is
// normalized to BinNotEq during parsing.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota // +
	BinSub                 // -
	BinMul                 // *
	BinDiv                 // /
	BinFloorDiv            // //
	BinMod                 // %
	BinPow                 // **

	BinEq        // ==
	BinNotEq     // !=
	BinLess      // <
	BinLessEq    // <=
	BinGreater   // >
	BinGreaterEq // >=

	BinAnd // and
	BinOr  // or
	BinIs  // is
	BinIn  // in

	binaryOpCount
)

var binaryOpNames = [binaryOpCount]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/",
	BinFloorDiv: "//", BinMod: "%", BinPow: "**",
	BinEq: "==", BinNotEq: "!=", BinLess: "<", BinLessEq: "<=",
	BinGreater: ">", BinGreaterEq: ">=",
	BinAnd: "and", BinOr: "or", BinIs: "is", BinIn: "in",
}

func (op BinaryOp) String() string {
	if op < binaryOpCount {
		return binaryOpNames[op]
	}
	return "?"
}

// IsComparison reports whether the operator is a comparison.
func (op BinaryOp) IsComparison() bool {
	return op >= BinEq && op <= BinGreaterEq
}

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota // -
	UnaryPos                // +
	UnaryNot                // not
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryPos:
		return "+"
	case UnaryNot:
		return "not"
	}
	return "?"
}

// LitKind enumerates literal payload categories.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitNone
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	case LitNone:
		return "none"
	default:
		return "invalid"
	}
}
