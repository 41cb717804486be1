package ast

import (
	"pylift/internal/source"
)

// StmtKind enumerates the statement variants.
type StmtKind uint8

const (
	// StmtExpr represents a bare expression statement.
	StmtExpr StmtKind = iota
	// StmtAssign represents plain or augmented assignment.
	StmtAssign
	// StmtPrint represents the legacy print statement.
	StmtPrint
	// StmtReturn represents a return statement.
	StmtReturn
	// StmtIf represents an if statement with its elif arms and else block.
	StmtIf
	// StmtWhile represents a while loop.
	StmtWhile
	// StmtFor represents a for loop.
	StmtFor
	// StmtFuncDef represents a function definition.
	StmtFuncDef
	// StmtClassDef represents a class definition.
	StmtClassDef
	// StmtBreak represents a break statement.
	StmtBreak
	// StmtContinue represents a continue statement.
	StmtContinue
	// StmtPass represents a pass statement.
	StmtPass
	// StmtImport represents an import statement.
	StmtImport
	// StmtImportFrom represents a from-import statement.
	StmtImportFrom
	// StmtBad represents a statement the parser could not understand;
	// it anchors the span that error recovery skipped over.
	StmtBad

	stmtKindCount
)

var stmtKindNames = [stmtKindCount]string{
	StmtExpr:       "Expr",
	StmtAssign:     "Assign",
	StmtPrint:      "Print",
	StmtReturn:     "Return",
	StmtIf:         "If",
	StmtWhile:      "While",
	StmtFor:        "For",
	StmtFuncDef:    "FuncDef",
	StmtClassDef:   "ClassDef",
	StmtBreak:      "Break",
	StmtContinue:   "Continue",
	StmtPass:       "Pass",
	StmtImport:     "Import",
	StmtImportFrom: "ImportFrom",
	StmtBad:        "Bad",
}

func (k StmtKind) String() string {
	if k < stmtKindCount {
		return stmtKindNames[k]
	}
	return "Invalid"
}

// Stmt is a statement node header; the payload lives in the per-kind arena
// selected by Kind. Kinds without payload leave Payload at zero.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// AssignOp distinguishes plain assignment from the augmented forms.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota // =
	AssignAdd                   // +=
	AssignSub                   // -=
	AssignMul                   // *=
	AssignDiv                   // /=
	AssignMod                   // %=
)

func (op AssignOp) String() string {
	switch op {
	case AssignPlain:
		return "="
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	}
	return "?"
}
