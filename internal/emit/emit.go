// Package emit renders a syntax tree back to source text in the modern
// dialect. Legacy constructs that survive as distinct tree shapes or
// spellings are rewritten here: the print statement becomes a call, renamed
// builtins and iterator methods get their modern names, and long-integer
// suffixes are dropped. The legacy inequality operator never reaches this
// stage; the parser already normalizes it.
package emit

import (
	"strings"

	"pylift/internal/ast"
)

const indentUnit = "    "

// renamedCallables maps legacy callables to their modern spellings.
var renamedCallables = map[string]string{
	"xrange":     "range",
	"raw_input":  "input",
	"basestring": "str",
	"unicode":    "str",
	"unichr":     "chr",
}

// renamedMethods maps legacy dict iterator methods to their modern names.
var renamedMethods = map[string]string{
	"iteritems":  "items",
	"iterkeys":   "keys",
	"itervalues": "values",
}

// Emit renders the whole program, one statement per logical line, ending
// with a trailing newline when the program is non-empty.
func Emit(program ast.Program, tree *ast.Builder) string {
	g := &generator{tree: tree}
	for _, id := range program.Body {
		g.stmt(id, 0)
	}
	return g.out.String()
}

type generator struct {
	tree *ast.Builder
	out  strings.Builder
}

func (g *generator) line(depth int, text string) {
	for i := 0; i < depth; i++ {
		g.out.WriteString(indentUnit)
	}
	g.out.WriteString(text)
	g.out.WriteByte('\n')
}

func (g *generator) stmt(id ast.StmtID, depth int) {
	stmt := g.tree.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := g.tree.Stmts.ExprStmt(id)
		g.line(depth, g.expr(data.Expr, precLowest))

	case ast.StmtAssign:
		data, _ := g.tree.Stmts.Assign(id)
		g.line(depth, g.expr(data.Target, precLowest)+" "+data.Op.String()+" "+
			g.expr(data.Value, precLowest))

	case ast.StmtPrint:
		g.printStmt(id, depth)

	case ast.StmtReturn:
		data, _ := g.tree.Stmts.Return(id)
		if data.Value.IsValid() {
			g.line(depth, "return "+g.expr(data.Value, precLowest))
		} else {
			g.line(depth, "return")
		}

	case ast.StmtIf:
		data, _ := g.tree.Stmts.If(id)
		for i, arm := range data.Arms {
			kw := "if"
			if i > 0 {
				kw = "elif"
			}
			g.line(depth, kw+" "+g.expr(arm.Cond, precLowest)+":")
			g.block(arm.Body, depth+1)
		}
		if data.Else != nil {
			g.line(depth, "else:")
			g.block(data.Else, depth+1)
		}

	case ast.StmtWhile:
		data, _ := g.tree.Stmts.While(id)
		g.line(depth, "while "+g.expr(data.Cond, precLowest)+":")
		g.block(data.Body, depth+1)

	case ast.StmtFor:
		data, _ := g.tree.Stmts.For(id)
		g.line(depth, "for "+g.forTarget(data.Target)+" in "+
			g.expr(data.Iter, precLowest)+":")
		g.block(data.Body, depth+1)

	case ast.StmtFuncDef:
		data, _ := g.tree.Stmts.FuncDef(id)
		params := make([]string, 0, len(data.Params))
		for _, p := range data.Params {
			params = append(params, g.tree.Str(p))
		}
		g.line(depth, "def "+g.tree.Str(data.Name)+"("+strings.Join(params, ", ")+"):")
		g.block(data.Body, depth+1)

	case ast.StmtClassDef:
		data, _ := g.tree.Stmts.ClassDef(id)
		header := "class " + g.tree.Str(data.Name)
		if len(data.Bases) > 0 {
			bases := make([]string, 0, len(data.Bases))
			for _, b := range data.Bases {
				bases = append(bases, g.expr(b, precLowest))
			}
			header += "(" + strings.Join(bases, ", ") + ")"
		}
		g.line(depth, header+":")
		g.block(data.Body, depth+1)

	case ast.StmtBreak:
		g.line(depth, "break")
	case ast.StmtContinue:
		g.line(depth, "continue")
	case ast.StmtPass:
		g.line(depth, "pass")
	case ast.StmtBad:
		// Skipped regions have nothing trustworthy to render.

	case ast.StmtImport:
		data, _ := g.tree.Stmts.Import(id)
		mods := make([]string, 0, len(data.Modules))
		for _, m := range data.Modules {
			mods = append(mods, g.tree.Str(m))
		}
		g.line(depth, "import "+strings.Join(mods, ", "))

	case ast.StmtImportFrom:
		data, _ := g.tree.Stmts.ImportFrom(id)
		names := make([]string, 0, len(data.Names))
		for _, n := range data.Names {
			names = append(names, g.tree.Str(n))
		}
		g.line(depth, "from "+g.tree.Str(data.Module)+" import "+strings.Join(names, ", "))
	}
}

// block renders a body, substituting pass for an empty one so the output
// always parses.
func (g *generator) block(body []ast.StmtID, depth int) {
	if len(body) == 0 {
		g.line(depth, "pass")
		return
	}
	for _, id := range body {
		g.stmt(id, depth)
	}
}

// printStmt renders the legacy print statement as a call; a trailing comma
// in the source becomes end=''.
func (g *generator) printStmt(id ast.StmtID, depth int) {
	data, _ := g.tree.Stmts.Print(id)
	args := make([]string, 0, len(data.Args)+1)
	for _, arg := range data.Args {
		args = append(args, g.expr(arg, precLowest))
	}
	if data.TrailingComma {
		args = append(args, "end=''")
	}
	g.line(depth, "print("+strings.Join(args, ", ")+")")
}

// forTarget renders a loop target, leaving a bare name unparenthesized and
// a tuple of names comma-joined.
func (g *generator) forTarget(id ast.ExprID) string {
	if tuple, ok := g.tree.Exprs.Tuple(id); ok {
		names := make([]string, 0, len(tuple.Elems))
		for _, elem := range tuple.Elems {
			names = append(names, g.expr(elem, precLowest))
		}
		return strings.Join(names, ", ")
	}
	return g.expr(id, precLowest)
}
