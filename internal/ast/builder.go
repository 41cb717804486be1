// Package ast defines the syntax tree as arena-allocated node headers with
// per-kind payload tables. Nodes are addressed by 1-based IDs; ID zero is
// the absent node. A tree is never mutated after parsing; passes that
// rewrite it build a fresh one.
package ast

import (
	"pylift/internal/source"
)

// Hints sizes the builder's arenas up front.
type Hints struct{ Stmts, Exprs uint }

// Builder owns every arena of one tree plus the string table its nodes
// reference.
type Builder struct {
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

// NewBuilder creates a builder with its own string table.
func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Strings: source.NewInterner(),
	}
}

// Intern adds s to the builder's string table.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// Str resolves a string ID; it panics on an ID the builder never issued.
func (b *Builder) Str(id source.StringID) string {
	return b.Strings.MustLookup(id)
}

// Program is the root of one parsed file.
type Program struct {
	Span source.Span
	Body []StmtID
}
