package optimize

import (
	"testing"

	"pylift/internal/ast"
	"pylift/internal/lexer"
	"pylift/internal/parser"
	"pylift/internal/source"
)

func optimizeSrc(t *testing.T, src string) Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	tokens, _ := lexer.Tokenize(fs.Get(id), lexer.Options{})
	res := parser.Parse(tokens, parser.Options{})
	return Optimize(res.Program, res.Tree)
}

func litText(t *testing.T, res Result, id ast.ExprID) string {
	t.Helper()
	lit, ok := res.Tree.Exprs.Lit(id)
	if !ok {
		t.Fatalf("expression %d is not a literal", id)
	}
	return res.Tree.Str(lit.Text)
}

func assignValue(t *testing.T, res Result, idx int) ast.ExprID {
	t.Helper()
	data, ok := res.Tree.Stmts.Assign(res.Program.Body[idx])
	if !ok {
		t.Fatalf("statement %d is not an assignment", idx)
	}
	return data.Value
}

func TestFoldArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x = 1 + 2 * 3\n", "7"},
		{"x = 2 ** 10\n", "1024"},
		{"x = 7 // 2\n", "3"},
		{"x = -7 // 2\n", "-4"},
		{"x = 7 % 3\n", "1"},
		{"x = -7 % 3\n", "2"},
		{"x = 6 / 2\n", "3.0"},
		{"x = 1.5 + 2.5\n", "4.0"},
		{"x = -(3 + 4)\n", "-7"},
		{"x = \"ab\" + \"cd\"\n", "abcd"},
		{"x = 10L + 1\n", "11"},
		{"x = 0x10 + 0b1\n", "17"},
	}
	for _, tc := range cases {
		res := optimizeSrc(t, tc.src)
		if got := litText(t, res, assignValue(t, res, 0)); got != tc.want {
			t.Errorf("%q: folded to %q, want %q", tc.src, got, tc.want)
		}
		if res.Applied == 0 {
			t.Errorf("%q: no optimization counted", tc.src)
		}
	}
}

func TestDivisionByZeroNotFolded(t *testing.T) {
	res := optimizeSrc(t, "x = 5 / 0\n")
	if _, ok := res.Tree.Exprs.Binary(assignValue(t, res, 0)); !ok {
		t.Fatalf("division by zero must survive folding for the checker to see")
	}
}

func TestNonConstantLeftAlone(t *testing.T) {
	res := optimizeSrc(t, "x = a + 2\n")
	if _, ok := res.Tree.Exprs.Binary(assignValue(t, res, 0)); !ok {
		t.Fatalf("expression with a free name must not fold")
	}
	if res.Applied != 0 {
		t.Fatalf("nothing should have been counted, got %d", res.Applied)
	}
}

func TestFoldNot(t *testing.T) {
	res := optimizeSrc(t, "x = not 0\n")
	if got := litText(t, res, assignValue(t, res, 0)); got != "True" {
		t.Fatalf("not 0 folded to %q", got)
	}
}

func TestDeadBranchTrueSplices(t *testing.T) {
	res := optimizeSrc(t, "if 1:\n    x = 1\nelse:\n    y = 2\n")
	if len(res.Program.Body) != 1 {
		t.Fatalf("want the spliced body only, got %d statements", len(res.Program.Body))
	}
	if res.Tree.Stmts.Get(res.Program.Body[0]).Kind != ast.StmtAssign {
		t.Fatalf("surviving statement is not the then-branch assignment")
	}
}

func TestDeadBranchFalseTakesElse(t *testing.T) {
	res := optimizeSrc(t, "if 0:\n    x = 1\nelse:\n    y = 2\n")
	if len(res.Program.Body) != 1 {
		t.Fatalf("want the else body only, got %d statements", len(res.Program.Body))
	}
	data, _ := res.Tree.Stmts.Assign(res.Program.Body[0])
	if name, _ := res.Tree.Exprs.Name(data.Target); res.Tree.Str(name.Name) != "y" {
		t.Fatalf("else branch did not survive")
	}
}

func TestDeadBranchFalseNoElseDropped(t *testing.T) {
	res := optimizeSrc(t, "if 0:\n    x = 1\nz = 3\n")
	if len(res.Program.Body) != 1 {
		t.Fatalf("dead if should vanish, got %d statements", len(res.Program.Body))
	}
}

func TestWhileFalseDropped(t *testing.T) {
	res := optimizeSrc(t, "while False:\n    x = 1\nz = 3\n")
	if len(res.Program.Body) != 1 {
		t.Fatalf("unreachable while should vanish, got %d statements", len(res.Program.Body))
	}
	res = optimizeSrc(t, "while n > 0:\n    n = n - 1\n")
	if len(res.Program.Body) != 1 {
		t.Fatalf("dynamic while must stay, got %d statements", len(res.Program.Body))
	}
}

func TestElifChainResolution(t *testing.T) {
	res := optimizeSrc(t, "if 0:\n    a = 1\nelif 1:\n    b = 2\nelse:\n    c = 3\n")
	if len(res.Program.Body) != 1 {
		t.Fatalf("want the elif body only, got %d statements", len(res.Program.Body))
	}
	data, _ := res.Tree.Stmts.Assign(res.Program.Body[0])
	if name, _ := res.Tree.Exprs.Name(data.Target); res.Tree.Str(name.Name) != "b" {
		t.Fatalf("true elif arm did not survive")
	}
}

func TestDynamicConditionKept(t *testing.T) {
	res := optimizeSrc(t, "if a:\n    x = 1\nelif 0:\n    y = 2\n")
	if len(res.Program.Body) != 1 {
		t.Fatalf("want one if statement, got %d", len(res.Program.Body))
	}
	data, ok := res.Tree.Stmts.If(res.Program.Body[0])
	if !ok {
		t.Fatalf("dynamic if was eliminated")
	}
	// The constant-false elif arm stays; only a leading decidable arm may
	// resolve the statement.
	if len(data.Arms) != 2 {
		t.Fatalf("want 2 arms, got %d", len(data.Arms))
	}
}

func TestFoldInsideFunctionBody(t *testing.T) {
	res := optimizeSrc(t, "def f():\n    return 2 + 3\n")
	fn, _ := res.Tree.Stmts.FuncDef(res.Program.Body[0])
	ret, _ := res.Tree.Stmts.Return(fn.Body[0])
	if got := litText(t, res, ret.Value); got != "5" {
		t.Fatalf("body expression folded to %q", got)
	}
}

func TestSourceTreeUntouched(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("x = 1 + 2\n"))
	tokens, _ := lexer.Tokenize(fs.Get(id), lexer.Options{})
	parsed := parser.Parse(tokens, parser.Options{})

	before := parsed.Tree.Exprs.Arena.Len()
	Optimize(parsed.Program, parsed.Tree)
	if parsed.Tree.Exprs.Arena.Len() != before {
		t.Fatalf("optimizer touched the input tree")
	}
	data, _ := parsed.Tree.Stmts.Assign(parsed.Program.Body[0])
	if _, ok := parsed.Tree.Exprs.Binary(data.Value); !ok {
		t.Fatalf("input tree no longer holds the original expression")
	}
}
