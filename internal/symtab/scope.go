package symtab

import (
	"strconv"
)

// Scope ids encode a nesting coordinate as a decimal depth plus an optional
// lowercase letter distinguishing sibling blocks that reopen the same depth:
// the first block at a depth is "1", later siblings are "1a", "1b", ...
// The global scope is "0".

// scopeDepth extracts the numeric depth prefix of a scope id.
func scopeDepth(scope string) int {
	if scope == "0" {
		return 0
	}
	i := 0
	for i < len(scope) && scope[i] >= '0' && scope[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	depth, err := strconv.Atoi(scope[:i])
	if err != nil {
		return 0
	}
	return depth
}

// scopeLetter extracts the sibling letter suffix of a scope id ("" if none).
func scopeLetter(scope string) string {
	i := 0
	for i < len(scope) && scope[i] >= '0' && scope[i] <= '9' {
		i++
	}
	return scope[i:]
}

// EnterScope pushes a fresh scope one level deeper than the current one and
// returns its id. Sibling blocks at the same depth get successive letter
// suffixes.
func (t *Table) EnterScope() string {
	newDepth := scopeDepth(t.currentScope) + 1

	blockNumber := t.depthBlockCounters[newDepth]
	t.depthBlockCounters[newDepth]++

	var newScope string
	if blockNumber == 0 {
		newScope = strconv.Itoa(newDepth)
	} else {
		newScope = strconv.Itoa(newDepth) + string(rune('a'+blockNumber-1))
	}

	t.scopeStack = append(t.scopeStack, newScope)
	t.currentScope = newScope
	return newScope
}

// ExitScope pops the current scope and returns the id that was left.
// Exiting the global scope is a no-op returning "".
func (t *Table) ExitScope() string {
	if len(t.scopeStack) <= 1 {
		return ""
	}

	old := t.scopeStack[len(t.scopeStack)-1]
	t.scopeStack = t.scopeStack[:len(t.scopeStack)-1]
	t.currentScope = t.scopeStack[len(t.scopeStack)-1]
	return old
}

// CurrentScope returns the innermost live scope id.
func (t *Table) CurrentScope() string {
	return t.currentScope
}

// ScopeStack returns a copy of the live scope chain, outermost first.
func (t *Table) ScopeStack() []string {
	out := make([]string, len(t.scopeStack))
	copy(out, t.scopeStack)
	return out
}

// Depth returns the nesting depth of the current scope.
func (t *Table) Depth() int {
	return scopeDepth(t.currentScope)
}
