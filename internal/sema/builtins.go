package sema

// Arity is the accepted argument count of a builtin: an exact count, a
// bounded range, or unbounded above.
type Arity struct {
	Min int
	Max int // -1 means no upper bound
}

func exact(n int) Arity        { return Arity{Min: n, Max: n} }
func between(lo, hi int) Arity { return Arity{Min: lo, Max: hi} }
func atLeast(n int) Arity      { return Arity{Min: n, Max: -1} }

// Accepts reports whether n arguments fall inside the range.
func (a Arity) Accepts(n int) bool {
	if n < a.Min {
		return false
	}
	return a.Max < 0 || n <= a.Max
}

// builtinFunctions maps every predeclared callable of either dialect to its
// arity. The set is the union of both dialects so legacy input checks
// cleanly before translation.
var builtinFunctions = map[string]Arity{
	"print":      atLeast(0),
	"range":      between(1, 3),
	"xrange":     between(1, 3),
	"len":        exact(1),
	"str":        between(0, 1),
	"int":        between(0, 2),
	"float":      between(0, 1),
	"bool":       between(0, 1),
	"list":       between(0, 1),
	"dict":       atLeast(0),
	"set":        between(0, 1),
	"tuple":      between(0, 1),
	"type":       between(1, 3),
	"isinstance": exact(2),
	"max":        atLeast(1),
	"min":        atLeast(1),
	"sum":        between(1, 2),
	"sorted":     exact(1),
	"reversed":   exact(1),
	"enumerate":  between(1, 2),
	"zip":        atLeast(0),
	"map":        atLeast(2),
	"filter":     exact(2),
	"input":      between(0, 1),
	"raw_input":  between(0, 1),
	"open":       between(1, 3),
	"file":       between(1, 3),
	"abs":        exact(1),
	"round":      between(1, 2),
	"pow":        between(2, 3),
	"all":        exact(1),
	"any":        exact(1),
	"ord":        exact(1),
	"chr":        exact(1),
	"unichr":     exact(1),
	"bin":        exact(1),
	"hex":        exact(1),
	"oct":        exact(1),
}

// builtinTypes are the names whose reassignment draws a warning; several of
// them only exist in one dialect.
var builtinTypes = map[string]struct{}{
	"int": {}, "float": {}, "str": {}, "bool": {},
	"list": {}, "dict": {}, "set": {}, "tuple": {},
	"type": {}, "object": {}, "bytes": {}, "bytearray": {},
	"unicode": {}, "long": {},
}

// IsBuiltinFunction reports whether name is a predeclared callable.
func IsBuiltinFunction(name string) bool {
	_, ok := builtinFunctions[name]
	return ok
}

// IsBuiltinType reports whether name is a predeclared type name.
func IsBuiltinType(name string) bool {
	_, ok := builtinTypes[name]
	return ok
}
