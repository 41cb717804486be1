// Package optimize applies constant folding and dead-branch elimination to
// a parsed program. The input tree is never mutated: the optimizer rebuilds
// the program into a fresh builder, folding as it copies.
package optimize

import (
	"pylift/internal/ast"
	"pylift/internal/source"
)

// Result carries the rebuilt program, the builder that owns its nodes, and
// the number of individual rewrites performed.
type Result struct {
	Program ast.Program
	Tree    *ast.Builder
	Applied int
}

// Optimize rebuilds program with constant subexpressions folded and
// statically decidable branches resolved.
func Optimize(program ast.Program, tree *ast.Builder) Result {
	rw := &rewriter{
		src: tree,
		dst: ast.NewBuilder(ast.Hints{}),
	}
	out := ast.Program{
		Span: program.Span,
		Body: rw.copyBody(program.Body),
	}
	return Result{Program: out, Tree: rw.dst, Applied: rw.applied}
}

type rewriter struct {
	src     *ast.Builder
	dst     *ast.Builder
	applied int
}

func (rw *rewriter) copyBody(body []ast.StmtID) []ast.StmtID {
	var out []ast.StmtID
	for _, id := range body {
		out = append(out, rw.copyStmt(id)...)
	}
	return out
}

// copyStmt returns zero or more statements: dead-branch elimination can
// splice a block's body in place of the statement or drop it entirely.
func (rw *rewriter) copyStmt(id ast.StmtID) []ast.StmtID {
	stmt := rw.src.Stmts.Get(id)
	if stmt == nil {
		return nil
	}
	one := func(id ast.StmtID) []ast.StmtID { return []ast.StmtID{id} }

	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := rw.src.Stmts.ExprStmt(id)
		return one(rw.dst.Stmts.NewExprStmt(stmt.Span, rw.copyExpr(data.Expr)))

	case ast.StmtAssign:
		data, _ := rw.src.Stmts.Assign(id)
		return one(rw.dst.Stmts.NewAssign(stmt.Span, data.Op,
			rw.copyExpr(data.Target), rw.copyExpr(data.Value)))

	case ast.StmtPrint:
		data, _ := rw.src.Stmts.Print(id)
		args := make([]ast.ExprID, 0, len(data.Args))
		for _, arg := range data.Args {
			args = append(args, rw.copyExpr(arg))
		}
		return one(rw.dst.Stmts.NewPrint(stmt.Span, args, data.TrailingComma))

	case ast.StmtReturn:
		data, _ := rw.src.Stmts.Return(id)
		return one(rw.dst.Stmts.NewReturn(stmt.Span, rw.copyExpr(data.Value)))

	case ast.StmtIf:
		return rw.copyIf(id, stmt)

	case ast.StmtWhile:
		data, _ := rw.src.Stmts.While(id)
		cond := rw.copyExpr(data.Cond)
		if truthy, known := rw.literalTruth(cond); known && !truthy {
			// The body can never run.
			rw.applied++
			return nil
		}
		return one(rw.dst.Stmts.NewWhile(stmt.Span, cond, rw.copyBody(data.Body)))

	case ast.StmtFor:
		data, _ := rw.src.Stmts.For(id)
		return one(rw.dst.Stmts.NewFor(stmt.Span,
			rw.copyExpr(data.Target), rw.copyExpr(data.Iter), rw.copyBody(data.Body)))

	case ast.StmtFuncDef:
		data, _ := rw.src.Stmts.FuncDef(id)
		params := make([]source.StringID, 0, len(data.Params))
		for _, p := range data.Params {
			params = append(params, rw.dst.Intern(rw.src.Str(p)))
		}
		return one(rw.dst.Stmts.NewFuncDef(stmt.Span,
			rw.dst.Intern(rw.src.Str(data.Name)), params, rw.copyBody(data.Body)))

	case ast.StmtClassDef:
		data, _ := rw.src.Stmts.ClassDef(id)
		bases := make([]ast.ExprID, 0, len(data.Bases))
		for _, b := range data.Bases {
			bases = append(bases, rw.copyExpr(b))
		}
		return one(rw.dst.Stmts.NewClassDef(stmt.Span,
			rw.dst.Intern(rw.src.Str(data.Name)), bases, rw.copyBody(data.Body)))

	case ast.StmtBreak:
		return one(rw.dst.Stmts.NewBreak(stmt.Span))
	case ast.StmtContinue:
		return one(rw.dst.Stmts.NewContinue(stmt.Span))
	case ast.StmtPass:
		return one(rw.dst.Stmts.NewPass(stmt.Span))
	case ast.StmtBad:
		return one(rw.dst.Stmts.NewBad(stmt.Span))

	case ast.StmtImport:
		data, _ := rw.src.Stmts.Import(id)
		mods := make([]source.StringID, 0, len(data.Modules))
		for _, m := range data.Modules {
			mods = append(mods, rw.dst.Intern(rw.src.Str(m)))
		}
		return one(rw.dst.Stmts.NewImport(stmt.Span, mods))

	case ast.StmtImportFrom:
		data, _ := rw.src.Stmts.ImportFrom(id)
		names := make([]source.StringID, 0, len(data.Names))
		for _, n := range data.Names {
			names = append(names, rw.dst.Intern(rw.src.Str(n)))
		}
		return one(rw.dst.Stmts.NewImportFrom(stmt.Span,
			rw.dst.Intern(rw.src.Str(data.Module)), names))
	}
	return nil
}

// copyIf resolves leading arms whose condition folded to a literal: a true
// arm splices its body in place of the whole statement, a false arm is
// dropped and the decision moves to the next arm.
func (rw *rewriter) copyIf(id ast.StmtID, stmt *ast.Stmt) []ast.StmtID {
	data, _ := rw.src.Stmts.If(id)
	arms := data.Arms

	for len(arms) > 0 {
		cond := rw.copyExpr(arms[0].Cond)
		truthy, known := rw.literalTruth(cond)
		if !known {
			return rw.copyRemainingIf(stmt, cond, arms, data.Else)
		}
		rw.applied++
		if truthy {
			return rw.copyBody(arms[0].Body)
		}
		arms = arms[1:]
	}
	// Every arm folded false; only the else body survives.
	return rw.copyBody(data.Else)
}

func (rw *rewriter) copyRemainingIf(stmt *ast.Stmt, firstCond ast.ExprID, arms []ast.IfArm, elseBody []ast.StmtID) []ast.StmtID {
	outArms := []ast.IfArm{{Cond: firstCond, Body: rw.copyBody(arms[0].Body)}}
	for _, arm := range arms[1:] {
		outArms = append(outArms, ast.IfArm{
			Cond: rw.copyExpr(arm.Cond),
			Body: rw.copyBody(arm.Body),
		})
	}
	return []ast.StmtID{rw.dst.Stmts.NewIf(stmt.Span, outArms, rw.copyBody(elseBody))}
}

// literalTruth evaluates a folded condition already living in dst.
func (rw *rewriter) literalTruth(id ast.ExprID) (truthy, known bool) {
	lit, ok := rw.dst.Exprs.Lit(id)
	if !ok {
		return false, false
	}
	text := rw.dst.Str(lit.Text)
	switch lit.Kind {
	case ast.LitBool:
		return text == "True", true
	case ast.LitNone:
		return false, true
	case ast.LitString:
		return text != "", true
	case ast.LitInt:
		v, ok := parseInt(text)
		if !ok {
			return false, false
		}
		return v != 0, true
	case ast.LitFloat:
		v, ok := parseFloat(text)
		if !ok {
			return false, false
		}
		return v != 0, true
	}
	return false, false
}
