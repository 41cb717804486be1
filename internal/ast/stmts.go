package ast

import (
	"pylift/internal/source"
)

// StmtExprData is the payload of a StmtExpr node.
type StmtExprData struct {
	Expr ExprID
}

// StmtAssignData is the payload of a StmtAssign node.
type StmtAssignData struct {
	Op     AssignOp
	Target ExprID
	Value  ExprID
}

// StmtPrintData is the payload of a StmtPrint node. A trailing comma in the
// legacy form suppresses the newline.
type StmtPrintData struct {
	Args          []ExprID
	TrailingComma bool
}

// StmtReturnData is the payload of a StmtReturn node. Value is NoExprID for
// a bare return.
type StmtReturnData struct {
	Value ExprID
}

// IfArm is one condition/body pair of an if statement; index zero is the
// leading if, the rest are elif arms.
type IfArm struct {
	Cond ExprID
	Body []StmtID
}

// StmtIfData is the payload of a StmtIf node.
type StmtIfData struct {
	Arms []IfArm
	Else []StmtID
}

// StmtWhileData is the payload of a StmtWhile node.
type StmtWhileData struct {
	Cond ExprID
	Body []StmtID
}

// StmtForData is the payload of a StmtFor node. Target is a name or tuple
// of names.
type StmtForData struct {
	Target ExprID
	Iter   ExprID
	Body   []StmtID
}

// StmtFuncDefData is the payload of a StmtFuncDef node.
type StmtFuncDefData struct {
	Name   source.StringID
	Params []source.StringID
	Body   []StmtID
}

// StmtClassDefData is the payload of a StmtClassDef node.
type StmtClassDefData struct {
	Name  source.StringID
	Bases []ExprID
	Body  []StmtID
}

// StmtImportData is the payload of a StmtImport node.
type StmtImportData struct {
	Modules []source.StringID
}

// StmtImportFromData is the payload of a StmtImportFrom node. A single "*"
// entry in Names means the star import form.
type StmtImportFromData struct {
	Module source.StringID
	Names  []source.StringID
}

// Stmts manages allocation of statement nodes.
type Stmts struct {
	Arena       *Arena[Stmt]
	ExprStmts   *Arena[StmtExprData]
	Assigns     *Arena[StmtAssignData]
	Prints      *Arena[StmtPrintData]
	Returns     *Arena[StmtReturnData]
	Ifs         *Arena[StmtIfData]
	Whiles      *Arena[StmtWhileData]
	Fors        *Arena[StmtForData]
	FuncDefs    *Arena[StmtFuncDefData]
	ClassDefs   *Arena[StmtClassDefData]
	Imports     *Arena[StmtImportData]
	ImportFroms *Arena[StmtImportFromData]
}

// NewStmts creates per-kind arenas with capHint as initial capacity.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:       NewArena[Stmt](capHint),
		ExprStmts:   NewArena[StmtExprData](capHint / 2),
		Assigns:     NewArena[StmtAssignData](capHint / 2),
		Prints:      NewArena[StmtPrintData](capHint / 4),
		Returns:     NewArena[StmtReturnData](capHint / 4),
		Ifs:         NewArena[StmtIfData](capHint / 4),
		Whiles:      NewArena[StmtWhileData](capHint / 8),
		Fors:        NewArena[StmtForData](capHint / 8),
		FuncDefs:    NewArena[StmtFuncDefData](capHint / 8),
		ClassDefs:   NewArena[StmtClassDefData](capHint / 8),
		Imports:     NewArena[StmtImportData](capHint / 8),
		ImportFroms: NewArena[StmtImportFromData](capHint / 8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement header for id, or nil for NoStmtID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewExprStmt creates a bare expression statement.
func (s *Stmts) NewExprStmt(span source.Span, expr ExprID) StmtID {
	payload := s.ExprStmts.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// ExprStmt returns the payload of a StmtExpr node.
func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprStmts.Get(uint32(st.Payload)), true
}

// NewAssign creates an assignment statement.
func (s *Stmts) NewAssign(span source.Span, op AssignOp, target, value ExprID) StmtID {
	payload := s.Assigns.Allocate(StmtAssignData{Op: op, Target: target, Value: value})
	return s.new(StmtAssign, span, PayloadID(payload))
}

// Assign returns the payload of a StmtAssign node.
func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(st.Payload)), true
}

// NewPrint creates a legacy print statement.
func (s *Stmts) NewPrint(span source.Span, args []ExprID, trailingComma bool) StmtID {
	payload := s.Prints.Allocate(StmtPrintData{Args: args, TrailingComma: trailingComma})
	return s.new(StmtPrint, span, PayloadID(payload))
}

// Print returns the payload of a StmtPrint node.
func (s *Stmts) Print(id StmtID) (*StmtPrintData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtPrint {
		return nil, false
	}
	return s.Prints.Get(uint32(st.Payload)), true
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the payload of a StmtReturn node.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(st.Payload)), true
}

// NewIf creates an if statement.
func (s *Stmts) NewIf(span source.Span, arms []IfArm, elseBody []StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Arms: arms, Else: elseBody})
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the payload of a StmtIf node.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(st.Payload)), true
}

// NewWhile creates a while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body []StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// While returns the payload of a StmtWhile node.
func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(st.Payload)), true
}

// NewFor creates a for statement.
func (s *Stmts) NewFor(span source.Span, target, iter ExprID, body []StmtID) StmtID {
	payload := s.Fors.Allocate(StmtForData{Target: target, Iter: iter, Body: body})
	return s.new(StmtFor, span, PayloadID(payload))
}

// For returns the payload of a StmtFor node.
func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(st.Payload)), true
}

// NewFuncDef creates a function definition statement.
func (s *Stmts) NewFuncDef(span source.Span, name source.StringID, params []source.StringID, body []StmtID) StmtID {
	payload := s.FuncDefs.Allocate(StmtFuncDefData{Name: name, Params: params, Body: body})
	return s.new(StmtFuncDef, span, PayloadID(payload))
}

// FuncDef returns the payload of a StmtFuncDef node.
func (s *Stmts) FuncDef(id StmtID) (*StmtFuncDefData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFuncDef {
		return nil, false
	}
	return s.FuncDefs.Get(uint32(st.Payload)), true
}

// NewClassDef creates a class definition statement.
func (s *Stmts) NewClassDef(span source.Span, name source.StringID, bases []ExprID, body []StmtID) StmtID {
	payload := s.ClassDefs.Allocate(StmtClassDefData{Name: name, Bases: bases, Body: body})
	return s.new(StmtClassDef, span, PayloadID(payload))
}

// ClassDef returns the payload of a StmtClassDef node.
func (s *Stmts) ClassDef(id StmtID) (*StmtClassDefData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtClassDef {
		return nil, false
	}
	return s.ClassDefs.Get(uint32(st.Payload)), true
}

// NewBreak creates a break statement.
func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

// NewContinue creates a continue statement.
func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.new(StmtContinue, span, NoPayloadID)
}

// NewPass creates a pass statement.
func (s *Stmts) NewPass(span source.Span) StmtID {
	return s.new(StmtPass, span, NoPayloadID)
}

// NewBad creates a placeholder for a region skipped by error recovery.
func (s *Stmts) NewBad(span source.Span) StmtID {
	return s.new(StmtBad, span, NoPayloadID)
}

// NewImport creates an import statement.
func (s *Stmts) NewImport(span source.Span, modules []source.StringID) StmtID {
	payload := s.Imports.Allocate(StmtImportData{Modules: modules})
	return s.new(StmtImport, span, PayloadID(payload))
}

// Import returns the payload of a StmtImport node.
func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtImport {
		return nil, false
	}
	return s.Imports.Get(uint32(st.Payload)), true
}

// NewImportFrom creates a from-import statement.
func (s *Stmts) NewImportFrom(span source.Span, module source.StringID, names []source.StringID) StmtID {
	payload := s.ImportFroms.Allocate(StmtImportFromData{Module: module, Names: names})
	return s.new(StmtImportFrom, span, PayloadID(payload))
}

// ImportFrom returns the payload of a StmtImportFrom node.
func (s *Stmts) ImportFrom(id StmtID) (*StmtImportFromData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtImportFrom {
		return nil, false
	}
	return s.ImportFroms.Get(uint32(st.Payload)), true
}
