package parser

import (
	"testing"

	"pylift/internal/ast"
	"pylift/internal/diag"
	"pylift/internal/lexer"
	"pylift/internal/source"
)

type testReporter struct {
	codes []diag.Code
}

func (r *testReporter) Report(code diag.Code, _ diag.Severity, _ source.Span, _ string, _ []diag.Note) {
	r.codes = append(r.codes, code)
}

func (r *testReporter) has(code diag.Code) bool {
	for _, c := range r.codes {
		if c == code {
			return true
		}
	}
	return false
}

func parseSrc(t *testing.T, src string) (Result, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	rep := &testReporter{}
	tokens, _ := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: rep})
	return Parse(tokens, Options{Reporter: rep}), rep
}

func parseClean(t *testing.T, src string) Result {
	t.Helper()
	res, rep := parseSrc(t, src)
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", src, rep.codes)
	}
	return res
}

// exprOf unwraps a single expression statement.
func exprOf(t *testing.T, res Result) ast.ExprID {
	t.Helper()
	if len(res.Program.Body) != 1 {
		t.Fatalf("want one statement, got %d", len(res.Program.Body))
	}
	data, ok := res.Tree.Stmts.ExprStmt(res.Program.Body[0])
	if !ok {
		t.Fatalf("statement is not an expression statement")
	}
	return data.Expr
}

func TestPrecedenceMulBindsTighter(t *testing.T) {
	res := parseClean(t, "1 + 2 * 3\n")
	root, ok := res.Tree.Exprs.Binary(exprOf(t, res))
	if !ok || root.Op != ast.BinAdd {
		t.Fatalf("root is not an addition: %+v", root)
	}
	right, ok := res.Tree.Exprs.Binary(root.Right)
	if !ok || right.Op != ast.BinMul {
		t.Fatalf("right operand is not a multiplication: %+v", right)
	}
	if lit, ok := res.Tree.Exprs.Lit(root.Left); !ok || res.Tree.Str(lit.Text) != "1" {
		t.Fatalf("left operand is not literal 1")
	}
}

func TestPowerRightAssociative(t *testing.T) {
	res := parseClean(t, "2 ** 3 ** 2\n")
	root, ok := res.Tree.Exprs.Binary(exprOf(t, res))
	if !ok || root.Op != ast.BinPow {
		t.Fatalf("root is not a power: %+v", root)
	}
	right, ok := res.Tree.Exprs.Binary(root.Right)
	if !ok || right.Op != ast.BinPow {
		t.Fatalf("power is not right-associative: right operand %+v", right)
	}
}

func TestLegacyInequalityNormalized(t *testing.T) {
	res, rep := parseSrc(t, "a <> b\n")
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
	root, ok := res.Tree.Exprs.Binary(exprOf(t, res))
	if !ok || root.Op != ast.BinNotEq {
		t.Fatalf("'<>' did not normalize to !=: %+v", root)
	}
}

func TestPrintTrailingComma(t *testing.T) {
	res := parseClean(t, "print \"a\", \"b\",\n")
	data, ok := res.Tree.Stmts.Print(res.Program.Body[0])
	if !ok {
		t.Fatalf("not a print statement")
	}
	if len(data.Args) != 2 || !data.TrailingComma {
		t.Fatalf("want 2 args with trailing comma, got %d args, trailing=%v", len(data.Args), data.TrailingComma)
	}

	res = parseClean(t, "print \"a\", \"b\"\n")
	data, _ = res.Tree.Stmts.Print(res.Program.Body[0])
	if data.TrailingComma {
		t.Fatalf("trailing comma flagged without one")
	}
}

func TestPrintMissingCommaReported(t *testing.T) {
	res, rep := parseSrc(t, "print \"a\" \"b\"\n")
	if !rep.has(diag.SynPrintMissingComma) {
		t.Fatalf("expected missing comma diagnostic, got %v", rep.codes)
	}
	data, ok := res.Tree.Stmts.Print(res.Program.Body[0])
	if !ok || len(data.Args) != 2 {
		t.Fatalf("both arguments should survive the missing comma")
	}
}

func TestIfElifElseArms(t *testing.T) {
	src := "if a:\n    pass\nelif b:\n    pass\nelif c:\n    pass\nelse:\n    pass\n"
	res := parseClean(t, src)
	data, ok := res.Tree.Stmts.If(res.Program.Body[0])
	if !ok {
		t.Fatalf("not an if statement")
	}
	if len(data.Arms) != 3 {
		t.Fatalf("want 3 arms, got %d", len(data.Arms))
	}
	if len(data.Else) != 1 {
		t.Fatalf("want 1 else statement, got %d", len(data.Else))
	}
}

func TestForTupleTarget(t *testing.T) {
	res := parseClean(t, "for k, v in items:\n    pass\n")
	data, ok := res.Tree.Stmts.For(res.Program.Body[0])
	if !ok {
		t.Fatalf("not a for statement")
	}
	tuple, ok := res.Tree.Exprs.Tuple(data.Target)
	if !ok || len(tuple.Elems) != 2 {
		t.Fatalf("target is not a two-name tuple")
	}
}

func TestFuncDefParams(t *testing.T) {
	res := parseClean(t, "def add(a, b):\n    return a + b\n")
	data, ok := res.Tree.Stmts.FuncDef(res.Program.Body[0])
	if !ok {
		t.Fatalf("not a function definition")
	}
	if res.Tree.Str(data.Name) != "add" || len(data.Params) != 2 {
		t.Fatalf("header parsed wrong: name=%q params=%d", res.Tree.Str(data.Name), len(data.Params))
	}
	if len(data.Body) != 1 {
		t.Fatalf("want 1 body statement, got %d", len(data.Body))
	}
}

func TestClassDefWithBase(t *testing.T) {
	res := parseClean(t, "class Dog(Animal):\n    def bark(self):\n        pass\n")
	data, ok := res.Tree.Stmts.ClassDef(res.Program.Body[0])
	if !ok {
		t.Fatalf("not a class definition")
	}
	if len(data.Bases) != 1 || len(data.Body) != 1 {
		t.Fatalf("want 1 base and 1 body statement, got %d and %d", len(data.Bases), len(data.Body))
	}
}

func TestAugmentedAssign(t *testing.T) {
	res := parseClean(t, "x += 1\n")
	data, ok := res.Tree.Stmts.Assign(res.Program.Body[0])
	if !ok || data.Op != ast.AssignAdd {
		t.Fatalf("not an augmented assignment: %+v", data)
	}
}

func TestSingleElementTupleNeedsTrailingComma(t *testing.T) {
	res := parseClean(t, "x = (1,)\n")
	data, _ := res.Tree.Stmts.Assign(res.Program.Body[0])
	if tuple, ok := res.Tree.Exprs.Tuple(data.Value); !ok || len(tuple.Elems) != 1 {
		t.Fatalf("(1,) should be a one-element tuple")
	}

	res = parseClean(t, "x = (1)\n")
	data, _ = res.Tree.Stmts.Assign(res.Program.Body[0])
	if _, ok := res.Tree.Exprs.Lit(data.Value); !ok {
		t.Fatalf("(1) should be a plain literal, not a tuple")
	}
}

func TestCallOnlyOnNameOrAttr(t *testing.T) {
	_, rep := parseSrc(t, "x = (a + b)(1)\n")
	if !rep.has(diag.SynBadCallTarget) {
		t.Fatalf("expected bad call target diagnostic, got %v", rep.codes)
	}

	res := parseClean(t, "x = obj.method(1)\n")
	data, _ := res.Tree.Stmts.Assign(res.Program.Body[0])
	call, ok := res.Tree.Exprs.Call(data.Value)
	if !ok {
		t.Fatalf("attribute call did not parse as call")
	}
	if _, ok := res.Tree.Exprs.Attr(call.Callee); !ok {
		t.Fatalf("callee is not an attribute access")
	}
}

func TestImportForms(t *testing.T) {
	res := parseClean(t, "import os, sys.path\nfrom collections import OrderedDict, deque\nfrom os import *\n")
	if len(res.Program.Body) != 3 {
		t.Fatalf("want 3 statements, got %d", len(res.Program.Body))
	}
	imp, ok := res.Tree.Stmts.Import(res.Program.Body[0])
	if !ok || len(imp.Modules) != 2 || res.Tree.Str(imp.Modules[1]) != "sys.path" {
		t.Fatalf("import list parsed wrong")
	}
	from, ok := res.Tree.Stmts.ImportFrom(res.Program.Body[1])
	if !ok || len(from.Names) != 2 {
		t.Fatalf("from-import parsed wrong")
	}
	star, _ := res.Tree.Stmts.ImportFrom(res.Program.Body[2])
	if len(star.Names) != 1 || res.Tree.Str(star.Names[0]) != "*" {
		t.Fatalf("star import parsed wrong")
	}
}

func TestMalformedInputTerminates(t *testing.T) {
	inputs := []string{
		"))) ((( ]]] :::\n",
		"def : : :\n",
		"if\nif\nif\n",
		"= = = =\n",
		"x = \n",
		"((((((((((\n",
		"print ,\n",
		"for in in in:\n",
		"class\n",
		"@ $ ` ?\n",
	}
	for _, src := range inputs {
		res, _ := parseSrc(t, src)
		_ = res // reaching here at all is the property under test
	}
}

func TestMissingBlockBodyRecovers(t *testing.T) {
	res, rep := parseSrc(t, "if x:\ny = 1\n")
	if !rep.has(diag.SynExpectIndent) {
		t.Fatalf("expected missing indent diagnostic, got %v", rep.codes)
	}
	// Both the degraded if and the following assignment survive.
	if len(res.Program.Body) != 2 {
		t.Fatalf("want 2 statements, got %d", len(res.Program.Body))
	}
}

func TestNestedTooDeepReported(t *testing.T) {
	src := ""
	indent := ""
	for i := 0; i < maxNestingDepth+10; i++ {
		src += indent + "if x:\n"
		indent += "    "
	}
	src += indent + "pass\n"
	_, rep := parseSrc(t, src)
	if !rep.has(diag.SynTooDeeplyNested) {
		t.Fatalf("expected nesting depth diagnostic")
	}
}

func TestEndToEndProgram(t *testing.T) {
	src := "def add(a, b):\n    return a + b\n\nprint add(1, 2)\n"
	res := parseClean(t, src)
	if len(res.Program.Body) != 2 {
		t.Fatalf("want 2 statements, got %d", len(res.Program.Body))
	}
	if _, ok := res.Tree.Stmts.FuncDef(res.Program.Body[0]); !ok {
		t.Fatalf("first statement is not a function definition")
	}
	pr, ok := res.Tree.Stmts.Print(res.Program.Body[1])
	if !ok || len(pr.Args) != 1 {
		t.Fatalf("second statement is not a one-argument print")
	}
	if _, ok := res.Tree.Exprs.Call(pr.Args[0]); !ok {
		t.Fatalf("print argument is not a call")
	}
}
