package sema

// funcSig records what the checker knows about a user-defined function.
type funcSig struct {
	name       string
	paramCount int
}

// classInfo tracks a class's directly defined methods (name to parameter
// count, receiver included) and its top-level assignment attributes.
type classInfo struct {
	name    string
	methods map[string]int
	attrs   map[string]struct{}
}

// scope is one link of the checker's name-resolution chain. A scope is
// created per function body and per class body; plain blocks share their
// enclosing scope. The loop flag belongs to the scope so that a nested
// function body never inherits the loop context of its definition site.
type scope struct {
	parent     *scope
	names      map[string]struct{}
	funcs      map[string]funcSig
	inLoop     bool
	inFunction bool
}

func newScope(parent *scope) *scope {
	return &scope{
		parent: parent,
		names:  make(map[string]struct{}),
		funcs:  make(map[string]funcSig),
	}
}

func (s *scope) declare(name string) {
	s.names[name] = struct{}{}
}

// isDeclared walks the chain outward. Function and class registrations
// count as declarations.
func (s *scope) isDeclared(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.names[name]; ok {
			return true
		}
		if _, ok := cur.funcs[name]; ok {
			return true
		}
	}
	return false
}

// lookupFunc returns the innermost function registration for name.
func (s *scope) lookupFunc(name string) (funcSig, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sig, ok := cur.funcs[name]; ok {
			return sig, true
		}
	}
	return funcSig{}, false
}
