package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylift/internal/diag"
	"pylift/internal/lexer"
	"pylift/internal/parser"
	"pylift/internal/source"
)

type testReporter struct {
	codes []diag.Code
	sevs  []diag.Severity
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, _ source.Span, _ string, _ []diag.Note) {
	r.codes = append(r.codes, code)
	r.sevs = append(r.sevs, sev)
}

func (r *testReporter) count(code diag.Code) int {
	n := 0
	for _, c := range r.codes {
		if c == code {
			n++
		}
	}
	return n
}

func checkSrc(t *testing.T, src string) *testReporter {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))

	frontRep := &testReporter{}
	tokens, _ := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: frontRep})
	res := parser.Parse(tokens, parser.Options{Reporter: frontRep})
	require.Empty(t, frontRep.codes, "input must lex and parse cleanly")

	rep := &testReporter{}
	Check(res.Program, res.Tree, Options{Reporter: rep})
	return rep
}

func TestReturnOutsideFunction(t *testing.T) {
	rep := checkSrc(t, "return 1\n")
	assert.Equal(t, 1, rep.count(diag.SemReturnOutsideFunction))

	rep = checkSrc(t, "def f():\n    return 1\n")
	assert.Zero(t, rep.count(diag.SemReturnOutsideFunction))
}

func TestReturnInsideClassBody(t *testing.T) {
	rep := checkSrc(t, "class C:\n    return 1\n")
	assert.Equal(t, 1, rep.count(diag.SemReturnOutsideFunction))
}

func TestBreakContinueContext(t *testing.T) {
	rep := checkSrc(t, "break\ncontinue\n")
	assert.Equal(t, 1, rep.count(diag.SemBreakOutsideLoop))
	assert.Equal(t, 1, rep.count(diag.SemContinueOutsideLoop))

	rep = checkSrc(t, "for i in range(10):\n    break\n    continue\n")
	assert.Zero(t, rep.count(diag.SemBreakOutsideLoop))
	assert.Zero(t, rep.count(diag.SemContinueOutsideLoop))

	// A nested function body does not inherit the loop context.
	rep = checkSrc(t, "while 1:\n    def f():\n        break\n")
	assert.Equal(t, 1, rep.count(diag.SemBreakOutsideLoop))
}

func TestLoopContextRestored(t *testing.T) {
	rep := checkSrc(t, "while 1:\n    pass\nbreak\n")
	assert.Equal(t, 1, rep.count(diag.SemBreakOutsideLoop))
}

func TestArgumentCountMismatch(t *testing.T) {
	rep := checkSrc(t, "def f(a, b):\n    pass\nf(1)\n")
	assert.Equal(t, 1, rep.count(diag.SemArgumentCountMismatch))

	rep = checkSrc(t, "def f(a, b):\n    pass\nf(1, 2)\n")
	assert.Zero(t, rep.count(diag.SemArgumentCountMismatch))
}

func TestBuiltinArity(t *testing.T) {
	rep := checkSrc(t, "x = len()\n")
	assert.Equal(t, 1, rep.count(diag.SemArgumentCountMismatch))

	rep = checkSrc(t, "x = len([1, 2])\ny = range(1, 10, 2)\n")
	assert.Zero(t, rep.count(diag.SemArgumentCountMismatch))

	rep = checkSrc(t, "x = range(1, 2, 3, 4)\n")
	assert.Equal(t, 1, rep.count(diag.SemArgumentCountMismatch))
}

func TestRecursionResolves(t *testing.T) {
	rep := checkSrc(t, "def fact(n):\n    if n < 2:\n        return 1\n    return n * fact(n - 1)\n")
	assert.Empty(t, rep.codes)
}

func TestDuplicateParameter(t *testing.T) {
	rep := checkSrc(t, "def f(a, b, a):\n    pass\n")
	assert.Equal(t, 1, rep.count(diag.SemDuplicateArgument))
}

func TestUndeclaredName(t *testing.T) {
	rep := checkSrc(t, "x = y + 1\n")
	assert.Equal(t, 1, rep.count(diag.SemUndeclaredIdentifier))

	rep = checkSrc(t, "y = 1\nx = y + 1\n")
	assert.Zero(t, rep.count(diag.SemUndeclaredIdentifier))
}

func TestShadowedNameVisibleInside(t *testing.T) {
	rep := checkSrc(t, "x = 1\ndef f():\n    return x\n")
	assert.Empty(t, rep.codes)
}

func TestConstDivisionByZero(t *testing.T) {
	rep := checkSrc(t, "x = 5 / 0\n")
	assert.Equal(t, 1, rep.count(diag.SemConstDivisionByZero))

	rep = checkSrc(t, "x = 5 // 0\n")
	assert.Equal(t, 1, rep.count(diag.SemConstDivisionByZero))

	rep = checkSrc(t, "x = 5 / 0.0\n")
	assert.Equal(t, 1, rep.count(diag.SemConstDivisionByZero))

	rep = checkSrc(t, "x = 5 / 2\n")
	assert.Zero(t, rep.count(diag.SemConstDivisionByZero))
}

func TestBuiltinTypeRedefinitionWarns(t *testing.T) {
	rep := checkSrc(t, "list = [1, 2]\n")
	assert.Equal(t, 1, rep.count(diag.SemRedefinitionBuiltin))
	require.Len(t, rep.sevs, 1)
	assert.Equal(t, diag.SevWarning, rep.sevs[0])
}

func TestMethodCallArity(t *testing.T) {
	src := "class Greeter:\n" +
		"    def hello(self, name):\n" +
		"        print name\n" +
		"Greeter.hello(1, 2)\n"
	rep := checkSrc(t, src)
	assert.Equal(t, 1, rep.count(diag.SemArgumentCountMismatch))

	src = "class Greeter:\n" +
		"    def hello(self, name):\n" +
		"        print name\n" +
		"Greeter.hello(1)\n"
	rep = checkSrc(t, src)
	assert.Zero(t, rep.count(diag.SemArgumentCountMismatch))
}

func TestForTargetDeclared(t *testing.T) {
	rep := checkSrc(t, "for k, v in [(1, 2)]:\n    x = k + v\n")
	assert.Empty(t, rep.codes)
}

func TestImportDeclaresModule(t *testing.T) {
	rep := checkSrc(t, "import os.path\nx = os\n")
	assert.Empty(t, rep.codes)

	rep = checkSrc(t, "from collections import OrderedDict\nx = OrderedDict()\n")
	assert.Empty(t, rep.codes)
}

func TestEndToEndCleanProgram(t *testing.T) {
	rep := checkSrc(t, "def add(a, b):\n    return a + b\n\nprint add(1, 2)\n")
	assert.Empty(t, rep.codes)
}
