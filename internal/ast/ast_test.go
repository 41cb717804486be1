package ast

import (
	"testing"

	"pylift/internal/source"
)

func TestArenaIDsAreOneBased(t *testing.T) {
	b := NewBuilder(Hints{})
	name := b.Exprs.NewName(source.Span{}, b.Intern("x"))
	if name != 1 {
		t.Fatalf("first expression id = %d, want 1", name)
	}
	if NoExprID.IsValid() {
		t.Fatal("the zero id must be invalid")
	}
	if !name.IsValid() {
		t.Fatal("allocated id must be valid")
	}
}

func TestPayloadAccessors(t *testing.T) {
	b := NewBuilder(Hints{})
	left := b.Exprs.NewLit(source.Span{}, LitInt, b.Intern("1"))
	right := b.Exprs.NewLit(source.Span{}, LitInt, b.Intern("2"))
	sum := b.Exprs.NewBinary(source.Span{}, BinAdd, left, right)

	data, ok := b.Exprs.Binary(sum)
	if !ok {
		t.Fatal("binary payload not found")
	}
	if data.Op != BinAdd || data.Left != left || data.Right != right {
		t.Fatalf("payload = %+v", data)
	}

	// Accessing a node through the wrong kind fails cleanly.
	if _, ok := b.Exprs.Name(sum); ok {
		t.Fatal("binary node must not decode as a name")
	}
	if _, ok := b.Exprs.Binary(left); ok {
		t.Fatal("literal node must not decode as a binary")
	}
}

func TestStatementPayloads(t *testing.T) {
	b := NewBuilder(Hints{})
	cond := b.Exprs.NewLit(source.Span{}, LitBool, b.Intern("True"))
	body := []StmtID{b.Stmts.NewPass(source.Span{})}
	loop := b.Stmts.NewWhile(source.Span{}, cond, body)

	stmt := b.Stmts.Get(loop)
	if stmt == nil || stmt.Kind != StmtWhile {
		t.Fatalf("stmt = %+v", stmt)
	}
	data, ok := b.Stmts.While(loop)
	if !ok || data.Cond != cond || len(data.Body) != 1 {
		t.Fatalf("while payload = %+v ok=%v", data, ok)
	}
}

func TestInternDeduplicates(t *testing.T) {
	b := NewBuilder(Hints{})
	a := b.Intern("value")
	c := b.Intern("value")
	if a != c {
		t.Fatalf("interning the same string gave %d and %d", a, c)
	}
	if b.Str(a) != "value" {
		t.Fatalf("round trip gave %q", b.Str(a))
	}
}

func TestArenaGetOutOfRange(t *testing.T) {
	b := NewBuilder(Hints{})
	if b.Stmts.Get(NoStmtID) != nil {
		t.Fatal("zero id must resolve to nil")
	}
	if b.Stmts.Get(StmtID(42)) != nil {
		t.Fatal("unallocated id must resolve to nil")
	}
}
