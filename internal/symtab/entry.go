package symtab

import (
	"pylift/internal/source"
)

// SymbolKind categorizes a symbol table entry.
type SymbolKind uint8

const (
	SymbolVar SymbolKind = iota
	SymbolFunc
	SymbolClass
	SymbolParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "var"
	case SymbolFunc:
		return "func"
	case SymbolClass:
		return "class"
	case SymbolParam:
		return "param"
	default:
		return "invalid"
	}
}

// Entry is one record in the identifier table. Within one scope id a name is
// unique; re-insertion updates attributes in place, keeping the first
// occurrence position. Entries never migrate between scopes.
type Entry struct {
	Name   string
	Kind   SymbolKind
	Type   string // best-effort declared type, defaults to "auto"
	Value  string // optional literal value, informational
	Scope  string // scope id, e.g. "0", "1", "1a"
	Bucket int
	Slot   int
	Pos    source.LineCol // first occurrence
}
