// Package symtab implements the lexer's identifier table: a chained hash
// table keyed by name and nested-scope id. It is bookkeeping for diagnostics
// and visualization; name-resolution correctness is owned by the semantic
// checker's own scope chain.
package symtab

import (
	"fmt"
	"sort"

	"pylift/internal/source"
)

const loadFactorThreshold = 0.75

// Table is a chained hash table with power-of-two capacity and shadow-aware
// lookup across a live scope stack.
type Table struct {
	buckets  [][]*Entry
	capacity int
	count    int

	currentScope       string
	scopeStack         []string
	depthBlockCounters map[int]int

	// statistics
	totalProbes int
	insertions  int
	searches    int
	collisions  int
}

// New creates a table with at least the given initial capacity, rounded up
// to a power of two.
func New(initialCapacity int) *Table {
	if initialCapacity < 2 {
		initialCapacity = 2
	}
	capacity := nextPowerOfTwo(initialCapacity)
	return &Table{
		buckets:            make([][]*Entry, capacity),
		capacity:           capacity,
		currentScope:       "0",
		scopeStack:         []string{"0"},
		depthBlockCounters: make(map[int]int),
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// hash is the polynomial string hash h = h*31 + c, kept non-negative and
// reduced modulo the capacity.
func (t *Table) hash(key string) int {
	if key == "" {
		return 0
	}
	h := 0
	for _, ch := range key {
		h = ((h << 5) - h + int(ch)) & 0x7FFFFFFF
	}
	return h % t.capacity
}

func isValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		alpha := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
		digit := ch >= '0' && ch <= '9'
		if i == 0 && !alpha {
			return false
		}
		if !alpha && !digit {
			return false
		}
	}
	return true
}

// Insert adds name to the current scope. If the name already exists in the
// current scope its attributes are updated in place and the first-occurrence
// position is preserved. The table doubles before insertion once the load
// factor reaches 0.75.
func (t *Table) Insert(name string, kind SymbolKind, typ, value string, pos source.LineCol) error {
	if name == "" {
		return fmt.Errorf("empty identifier name")
	}
	if !isValidIdentifier(name) {
		if name[0] >= '0' && name[0] <= '9' {
			return fmt.Errorf("identifier %q cannot start with a digit", name)
		}
		return fmt.Errorf("invalid characters in identifier %q", name)
	}

	if float64(t.count)/float64(t.capacity) >= loadFactorThreshold {
		t.resize()
	}

	bi := t.hash(name)
	t.totalProbes++
	bucket := t.buckets[bi]

	for _, existing := range bucket {
		t.totalProbes++
		if existing.Name == name && existing.Scope == t.currentScope {
			existing.Kind = kind
			existing.Type = typ
			existing.Value = value
			return nil
		}
	}

	entry := &Entry{
		Name:   name,
		Kind:   kind,
		Type:   typ,
		Value:  value,
		Scope:  t.currentScope,
		Bucket: bi,
		Slot:   len(bucket),
		Pos:    pos,
	}
	t.buckets[bi] = append(bucket, entry)
	t.count++
	t.insertions++

	if len(t.buckets[bi]) > 1 {
		t.collisions++
	}
	return nil
}

// resize doubles the capacity and rehashes every entry, recomputing bucket
// and slot indices.
func (t *Table) resize() {
	oldBuckets := t.buckets
	t.capacity *= 2
	t.buckets = make([][]*Entry, t.capacity)
	t.count = 0

	for _, bucket := range oldBuckets {
		for _, entry := range bucket {
			bi := t.hash(entry.Name)
			entry.Bucket = bi
			entry.Slot = len(t.buckets[bi])
			t.buckets[bi] = append(t.buckets[bi], entry)
			t.count++
		}
	}
}

// Search walks the scope stack from innermost to outermost and returns the
// first entry whose name and scope match: lexical shadowing.
func (t *Table) Search(name string) *Entry {
	if name == "" {
		return nil
	}

	bi := t.hash(name)
	t.totalProbes++
	t.searches++

	bucket := t.buckets[bi]
	if len(bucket) == 0 {
		return nil
	}

	for i := len(t.scopeStack) - 1; i >= 0; i-- {
		scope := t.scopeStack[i]
		for _, entry := range bucket {
			t.totalProbes++
			if entry.Name == name && entry.Scope == scope {
				return entry
			}
		}
	}
	return nil
}

// SearchLocal restricts the lookup to the current scope only.
func (t *Table) SearchLocal(name string) *Entry {
	if name == "" {
		return nil
	}
	for _, entry := range t.buckets[t.hash(name)] {
		if entry.Name == name && entry.Scope == t.currentScope {
			return entry
		}
	}
	return nil
}

// Count returns the number of live entries.
func (t *Table) Count() int {
	return t.count
}

// Capacity returns the current bucket array size.
func (t *Table) Capacity() int {
	return t.capacity
}

// AllEntries enumerates every entry sorted by (depth, letter, name).
// It does not mutate table state.
func (t *Table) AllEntries() []*Entry {
	result := make([]*Entry, 0, t.count)
	for _, bucket := range t.buckets {
		result = append(result, bucket...)
	}

	sort.SliceStable(result, func(i, j int) bool {
		di, dj := scopeDepth(result[i].Scope), scopeDepth(result[j].Scope)
		if di != dj {
			return di < dj
		}
		li, lj := scopeLetter(result[i].Scope), scopeLetter(result[j].Scope)
		if li != lj {
			return li < lj
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// AllScopes enumerates every scope id that holds at least one entry, sorted
// by (depth, letter). It does not mutate table state.
func (t *Table) AllScopes() []string {
	seen := make(map[string]bool)
	for _, bucket := range t.buckets {
		for _, entry := range bucket {
			seen[entry.Scope] = true
		}
	}

	scopes := make([]string, 0, len(seen))
	for s := range seen {
		scopes = append(scopes, s)
	}
	sort.Slice(scopes, func(i, j int) bool {
		di, dj := scopeDepth(scopes[i]), scopeDepth(scopes[j])
		if di != dj {
			return di < dj
		}
		return scopes[i] < scopes[j]
	})
	return scopes
}

// Stats is a snapshot of table counters for diagnostics output.
type Stats struct {
	Capacity    int
	Count       int
	LoadFactor  float64
	Insertions  int
	Searches    int
	Collisions  int
	TotalProbes int
	Scope       string
	ScopeStack  []string
}

// Statistics returns a snapshot of the table counters.
func (t *Table) Statistics() Stats {
	lf := 0.0
	if t.capacity > 0 {
		lf = float64(t.count) / float64(t.capacity)
	}
	return Stats{
		Capacity:    t.capacity,
		Count:       t.count,
		LoadFactor:  lf,
		Insertions:  t.insertions,
		Searches:    t.searches,
		Collisions:  t.collisions,
		TotalProbes: t.totalProbes,
		Scope:       t.currentScope,
		ScopeStack:  t.ScopeStack(),
	}
}
