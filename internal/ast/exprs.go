package ast

import (
	"pylift/internal/source"
)

// ExprNameData is the payload of an ExprName node.
type ExprNameData struct {
	Name source.StringID
}

// ExprLitData is the payload of an ExprLit node. Text holds the semantic
// value: decoded string content, raw number spelling, or the keyword
// spelling for bool and none literals.
type ExprLitData struct {
	Kind LitKind
	Text source.StringID
}

// ExprBinaryData is the payload of an ExprBinary node.
type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

// ExprUnaryData is the payload of an ExprUnary node.
type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// ExprCallData is the payload of an ExprCall node.
type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

// ExprAttrData is the payload of an ExprAttr node.
type ExprAttrData struct {
	Object ExprID
	Name   source.StringID
}

// ExprIndexData is the payload of an ExprIndex node.
type ExprIndexData struct {
	Object ExprID
	Index  ExprID
}

// ExprListData is the payload of an ExprList node.
type ExprListData struct {
	Elems []ExprID
}

// ExprTupleData is the payload of an ExprTuple node.
type ExprTupleData struct {
	Elems []ExprID
}

// ExprDictData is the payload of an ExprDict node. Keys and Values are
// parallel slices.
type ExprDictData struct {
	Keys   []ExprID
	Values []ExprID
}

// Exprs manages allocation of expression nodes.
type Exprs struct {
	Arena    *Arena[Expr]
	Names    *Arena[ExprNameData]
	Literals *Arena[ExprLitData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Calls    *Arena[ExprCallData]
	Attrs    *Arena[ExprAttrData]
	Indices  *Arena[ExprIndexData]
	Lists    *Arena[ExprListData]
	Tuples   *Arena[ExprTupleData]
	Dicts    *Arena[ExprDictData]
}

// NewExprs creates per-kind arenas with capHint as initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Names:    NewArena[ExprNameData](capHint),
		Literals: NewArena[ExprLitData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint / 4),
		Calls:    NewArena[ExprCallData](capHint / 4),
		Attrs:    NewArena[ExprAttrData](capHint / 4),
		Indices:  NewArena[ExprIndexData](capHint / 4),
		Lists:    NewArena[ExprListData](capHint / 4),
		Tuples:   NewArena[ExprTupleData](capHint / 4),
		Dicts:    NewArena[ExprDictData](capHint / 4),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression header for id, or nil for NoExprID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewName creates an identifier reference expression.
func (e *Exprs) NewName(span source.Span, name source.StringID) ExprID {
	payload := e.Names.Allocate(ExprNameData{Name: name})
	return e.new(ExprName, span, PayloadID(payload))
}

// Name returns the payload of an ExprName node.
func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprName {
		return nil, false
	}
	return e.Names.Get(uint32(expr.Payload)), true
}

// NewLit creates a literal expression.
func (e *Exprs) NewLit(span source.Span, kind LitKind, text source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLitData{Kind: kind, Text: text})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Lit returns the payload of an ExprLit node.
func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewBinary creates a binary operation expression.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the payload of an ExprBinary node.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewUnary creates a unary operation expression.
func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the payload of an ExprUnary node.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewCall creates a call expression.
func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the payload of an ExprCall node.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewAttr creates an attribute access expression.
func (e *Exprs) NewAttr(span source.Span, object ExprID, name source.StringID) ExprID {
	payload := e.Attrs.Allocate(ExprAttrData{Object: object, Name: name})
	return e.new(ExprAttr, span, PayloadID(payload))
}

// Attr returns the payload of an ExprAttr node.
func (e *Exprs) Attr(id ExprID) (*ExprAttrData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAttr {
		return nil, false
	}
	return e.Attrs.Get(uint32(expr.Payload)), true
}

// NewIndex creates a subscript expression.
func (e *Exprs) NewIndex(span source.Span, object, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Object: object, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

// Index returns the payload of an ExprIndex node.
func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

// NewList creates a list display expression.
func (e *Exprs) NewList(span source.Span, elems []ExprID) ExprID {
	payload := e.Lists.Allocate(ExprListData{Elems: elems})
	return e.new(ExprList, span, PayloadID(payload))
}

// List returns the payload of an ExprList node.
func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprList {
		return nil, false
	}
	return e.Lists.Get(uint32(expr.Payload)), true
}

// NewTuple creates a tuple display expression.
func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{Elems: elems})
	return e.new(ExprTuple, span, PayloadID(payload))
}

// Tuple returns the payload of an ExprTuple node.
func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(expr.Payload)), true
}

// NewDict creates a dict display expression.
func (e *Exprs) NewDict(span source.Span, keys, values []ExprID) ExprID {
	payload := e.Dicts.Allocate(ExprDictData{Keys: keys, Values: values})
	return e.new(ExprDict, span, PayloadID(payload))
}

// Dict returns the payload of an ExprDict node.
func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprDict {
		return nil, false
	}
	return e.Dicts.Get(uint32(expr.Payload)), true
}
