package symtab

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"pylift/internal/source"
)

func pos(line, col uint32) source.LineCol {
	return source.LineCol{Line: line, Col: col}
}

func TestInsertValidation(t *testing.T) {
	tbl := New(16)

	assert.Error(t, tbl.Insert("", SymbolVar, "auto", "", pos(1, 1)))
	assert.Error(t, tbl.Insert("1abc", SymbolVar, "auto", "", pos(1, 1)))
	assert.Error(t, tbl.Insert("a-b", SymbolVar, "auto", "", pos(1, 1)))
	assert.NoError(t, tbl.Insert("_ok", SymbolVar, "auto", "", pos(1, 1)))
	assert.NoError(t, tbl.Insert("abc123", SymbolVar, "auto", "", pos(1, 5)))
	assert.Equal(t, 2, tbl.Count())
}

func TestInsertUpdatesInPlace(t *testing.T) {
	tbl := New(16)

	assert.NoError(t, tbl.Insert("x", SymbolVar, "auto", "", pos(1, 1)))
	assert.NoError(t, tbl.Insert("x", SymbolFunc, "callable", "", pos(9, 9)))

	assert.Equal(t, 1, tbl.Count())
	e := tbl.Search("x")
	assert.NotNil(t, e)
	assert.Equal(t, SymbolFunc, e.Kind)
	assert.Equal(t, "callable", e.Type)
	// First-occurrence position is preserved on update.
	assert.Equal(t, pos(1, 1), e.Pos)
}

func TestScopeIds(t *testing.T) {
	tbl := New(16)
	assert.Equal(t, "0", tbl.CurrentScope())

	assert.Equal(t, "1", tbl.EnterScope())
	assert.Equal(t, "2", tbl.EnterScope())
	assert.Equal(t, "2", tbl.ExitScope())
	assert.Equal(t, "1", tbl.ExitScope())

	// Sibling blocks at the same depth get letter suffixes.
	assert.Equal(t, "1a", tbl.EnterScope())
	assert.Equal(t, "1a", tbl.ExitScope())
	assert.Equal(t, "1b", tbl.EnterScope())

	// Exiting the global scope is a no-op.
	tbl.ExitScope()
	assert.Equal(t, "0", tbl.CurrentScope())
	assert.Equal(t, "", tbl.ExitScope())
	assert.Equal(t, "0", tbl.CurrentScope())
}

func TestShadowing(t *testing.T) {
	tbl := New(16)

	assert.NoError(t, tbl.Insert("x", SymbolVar, "auto", "outer", pos(1, 1)))
	tbl.EnterScope()

	// Visible from the child scope before shadowing.
	e := tbl.Search("x")
	assert.NotNil(t, e)
	assert.Equal(t, "0", e.Scope)

	// Shadow in the child; innermost wins.
	assert.NoError(t, tbl.Insert("x", SymbolVar, "auto", "inner", pos(2, 5)))
	e = tbl.Search("x")
	assert.NotNil(t, e)
	assert.Equal(t, "1", e.Scope)
	assert.Equal(t, "inner", e.Value)

	// The child declaration is invisible from the parent.
	tbl.ExitScope()
	e = tbl.Search("x")
	assert.NotNil(t, e)
	assert.Equal(t, "0", e.Scope)
	assert.Nil(t, tbl.SearchLocal("missing"))
}

func TestResizePreservesEntries(t *testing.T) {
	tbl := New(4)
	names := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("name%02d", i)
		names = append(names, name)
		assert.NoError(t, tbl.Insert(name, SymbolVar, "auto", "", pos(1, 1)))
	}

	assert.Equal(t, 50, tbl.Count())
	assert.GreaterOrEqual(t, tbl.Capacity(), 64)

	for _, name := range names {
		e := tbl.Search(name)
		assert.NotNil(t, e, "lost %s after resize", name)
		assert.Equal(t, "0", e.Scope)
	}

	// count == sum of chain lengths
	total := 0
	for _, e := range tbl.AllEntries() {
		_ = e
		total++
	}
	assert.Equal(t, tbl.Count(), total)
}

func TestEnumerationOrder(t *testing.T) {
	tbl := New(16)
	assert.NoError(t, tbl.Insert("zeta", SymbolVar, "auto", "", pos(1, 1)))
	assert.NoError(t, tbl.Insert("alpha", SymbolVar, "auto", "", pos(1, 5)))
	tbl.EnterScope()
	assert.NoError(t, tbl.Insert("mid", SymbolVar, "auto", "", pos(2, 1)))
	tbl.ExitScope()
	tbl.EnterScope() // scope "1a"
	assert.NoError(t, tbl.Insert("deep", SymbolVar, "auto", "", pos(4, 1)))
	tbl.ExitScope()

	entries := tbl.AllEntries()
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Scope+":"+e.Name)
	}
	assert.Equal(t, []string{"0:alpha", "0:zeta", "1:mid", "1a:deep"}, got)

	assert.Equal(t, []string{"0", "1", "1a"}, tbl.AllScopes())
}

func TestStatistics(t *testing.T) {
	tbl := New(16)
	assert.NoError(t, tbl.Insert("a", SymbolVar, "auto", "", pos(1, 1)))
	tbl.Search("a")
	tbl.Search("b")

	st := tbl.Statistics()
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, 1, st.Insertions)
	assert.Equal(t, 2, st.Searches)
	assert.Equal(t, []string{"0"}, st.ScopeStack)
}
