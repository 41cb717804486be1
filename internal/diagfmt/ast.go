package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"pylift/internal/ast"
)

// DumpProgram writes an indented tree of every statement, for the parse
// command's pretty output.
func DumpProgram(w io.Writer, program ast.Program, tree *ast.Builder) {
	d := &dumper{tree: tree, w: w}
	for _, id := range program.Body {
		d.stmt(id, 0)
	}
}

type dumper struct {
	tree *ast.Builder
	w    io.Writer
}

func (d *dumper) line(depth int, format string, args ...any) {
	fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) stmt(id ast.StmtID, depth int) {
	stmt := d.tree.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := d.tree.Stmts.ExprStmt(id)
		d.line(depth, "ExprStmt")
		d.expr(data.Expr, depth+1)
	case ast.StmtAssign:
		data, _ := d.tree.Stmts.Assign(id)
		d.line(depth, "Assign op=%s", data.Op)
		d.expr(data.Target, depth+1)
		d.expr(data.Value, depth+1)
	case ast.StmtPrint:
		data, _ := d.tree.Stmts.Print(id)
		if data.TrailingComma {
			d.line(depth, "Print trailing-comma")
		} else {
			d.line(depth, "Print")
		}
		for _, arg := range data.Args {
			d.expr(arg, depth+1)
		}
	case ast.StmtReturn:
		data, _ := d.tree.Stmts.Return(id)
		d.line(depth, "Return")
		if data.Value.IsValid() {
			d.expr(data.Value, depth+1)
		}
	case ast.StmtIf:
		data, _ := d.tree.Stmts.If(id)
		d.line(depth, "If")
		for _, arm := range data.Arms {
			d.line(depth+1, "Arm")
			d.expr(arm.Cond, depth+2)
			d.body(arm.Body, depth+2)
		}
		if len(data.Else) > 0 {
			d.line(depth+1, "Else")
			d.body(data.Else, depth+2)
		}
	case ast.StmtWhile:
		data, _ := d.tree.Stmts.While(id)
		d.line(depth, "While")
		d.expr(data.Cond, depth+1)
		d.body(data.Body, depth+1)
	case ast.StmtFor:
		data, _ := d.tree.Stmts.For(id)
		d.line(depth, "For")
		d.expr(data.Target, depth+1)
		d.expr(data.Iter, depth+1)
		d.body(data.Body, depth+1)
	case ast.StmtFuncDef:
		data, _ := d.tree.Stmts.FuncDef(id)
		params := make([]string, 0, len(data.Params))
		for _, p := range data.Params {
			params = append(params, d.tree.Str(p))
		}
		d.line(depth, "FuncDef name=%s params=[%s]", d.tree.Str(data.Name), strings.Join(params, " "))
		d.body(data.Body, depth+1)
	case ast.StmtClassDef:
		data, _ := d.tree.Stmts.ClassDef(id)
		d.line(depth, "ClassDef name=%s", d.tree.Str(data.Name))
		for _, base := range data.Bases {
			d.expr(base, depth+1)
		}
		d.body(data.Body, depth+1)
	case ast.StmtBreak:
		d.line(depth, "Break")
	case ast.StmtContinue:
		d.line(depth, "Continue")
	case ast.StmtPass:
		d.line(depth, "Pass")
	case ast.StmtBad:
		d.line(depth, "Bad")
	case ast.StmtImport:
		data, _ := d.tree.Stmts.Import(id)
		mods := make([]string, 0, len(data.Modules))
		for _, m := range data.Modules {
			mods = append(mods, d.tree.Str(m))
		}
		d.line(depth, "Import %s", strings.Join(mods, " "))
	case ast.StmtImportFrom:
		data, _ := d.tree.Stmts.ImportFrom(id)
		names := make([]string, 0, len(data.Names))
		for _, n := range data.Names {
			names = append(names, d.tree.Str(n))
		}
		d.line(depth, "ImportFrom %s [%s]", d.tree.Str(data.Module), strings.Join(names, " "))
	default:
		d.line(depth, "Stmt(%s)", stmt.Kind)
	}
}

func (d *dumper) body(body []ast.StmtID, depth int) {
	for _, id := range body {
		d.stmt(id, depth)
	}
}

func (d *dumper) expr(id ast.ExprID, depth int) {
	expr := d.tree.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprName:
		data, _ := d.tree.Exprs.Name(id)
		d.line(depth, "Name %s", d.tree.Str(data.Name))
	case ast.ExprLit:
		data, _ := d.tree.Exprs.Lit(id)
		d.line(depth, "Lit %s %q", data.Kind, d.tree.Str(data.Text))
	case ast.ExprBinary:
		data, _ := d.tree.Exprs.Binary(id)
		d.line(depth, "Binary op=%s", data.Op)
		d.expr(data.Left, depth+1)
		d.expr(data.Right, depth+1)
	case ast.ExprUnary:
		data, _ := d.tree.Exprs.Unary(id)
		d.line(depth, "Unary op=%s", data.Op)
		d.expr(data.Operand, depth+1)
	case ast.ExprCall:
		data, _ := d.tree.Exprs.Call(id)
		d.line(depth, "Call")
		d.expr(data.Callee, depth+1)
		for _, arg := range data.Args {
			d.expr(arg, depth+1)
		}
	case ast.ExprAttr:
		data, _ := d.tree.Exprs.Attr(id)
		d.line(depth, "Attr %s", d.tree.Str(data.Name))
		d.expr(data.Object, depth+1)
	case ast.ExprIndex:
		data, _ := d.tree.Exprs.Index(id)
		d.line(depth, "Index")
		d.expr(data.Object, depth+1)
		d.expr(data.Index, depth+1)
	case ast.ExprList:
		data, _ := d.tree.Exprs.List(id)
		d.line(depth, "List")
		for _, e := range data.Elems {
			d.expr(e, depth+1)
		}
	case ast.ExprTuple:
		data, _ := d.tree.Exprs.Tuple(id)
		d.line(depth, "Tuple")
		for _, e := range data.Elems {
			d.expr(e, depth+1)
		}
	case ast.ExprDict:
		data, _ := d.tree.Exprs.Dict(id)
		d.line(depth, "Dict")
		for i := range data.Keys {
			d.expr(data.Keys[i], depth+1)
			d.expr(data.Values[i], depth+1)
		}
	default:
		d.line(depth, "Expr(%s)", expr.Kind)
	}
}
