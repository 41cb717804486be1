// Package sema validates a parsed program against scoping and arity rules.
// It builds its own scope chain while walking the tree; the lexer's
// indentation-driven identifier table plays no part here. No finding stops
// the traversal, so one pass reports everything it can see.
package sema

import (
	"fmt"

	"pylift/internal/ast"
	"pylift/internal/diag"
	"pylift/internal/source"
)

// Options configure one checking pass.
type Options struct {
	// Reporter receives semantic diagnostics. May be nil.
	Reporter diag.Reporter
}

// Checker walks one program.
type Checker struct {
	tree    *ast.Builder
	opts    Options
	current *scope
	classes map[string]*classInfo
}

// Check runs a full semantic pass over the program. The tree is not
// mutated.
func Check(program ast.Program, tree *ast.Builder, opts Options) {
	c := &Checker{
		tree:    tree,
		opts:    opts,
		current: newScope(nil),
		classes: make(map[string]*classInfo),
	}
	for name := range builtinFunctions {
		c.current.declare(name)
	}
	for _, id := range program.Body {
		c.checkStmt(id)
	}
}

func (c *Checker) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if c.opts.Reporter != nil {
		c.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

func (c *Checker) errAt(code diag.Code, sp source.Span, msg string) {
	c.report(code, diag.SevError, sp, msg)
}

func (c *Checker) checkBody(body []ast.StmtID) {
	for _, id := range body {
		c.checkStmt(id)
	}
}

func (c *Checker) checkStmt(id ast.StmtID) {
	stmt := c.tree.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := c.tree.Stmts.ExprStmt(id)
		c.checkExpr(data.Expr)

	case ast.StmtAssign:
		c.checkAssign(id, stmt)

	case ast.StmtPrint:
		data, _ := c.tree.Stmts.Print(id)
		for _, arg := range data.Args {
			c.checkExpr(arg)
		}

	case ast.StmtReturn:
		data, _ := c.tree.Stmts.Return(id)
		if !c.current.inFunction {
			c.errAt(diag.SemReturnOutsideFunction, stmt.Span, "'return' outside function")
		}
		c.checkExpr(data.Value)

	case ast.StmtIf:
		data, _ := c.tree.Stmts.If(id)
		for _, arm := range data.Arms {
			c.checkExpr(arm.Cond)
			c.checkBody(arm.Body)
		}
		c.checkBody(data.Else)

	case ast.StmtWhile:
		data, _ := c.tree.Stmts.While(id)
		c.checkExpr(data.Cond)
		c.inLoopBody(func() { c.checkBody(data.Body) })

	case ast.StmtFor:
		data, _ := c.tree.Stmts.For(id)
		c.checkExpr(data.Iter)
		c.declareTarget(data.Target)
		c.inLoopBody(func() { c.checkBody(data.Body) })

	case ast.StmtFuncDef:
		c.checkFuncDef(id, stmt)

	case ast.StmtClassDef:
		c.checkClassDef(id, stmt)

	case ast.StmtBreak:
		if !c.current.inLoop {
			c.errAt(diag.SemBreakOutsideLoop, stmt.Span, "'break' outside loop")
		}

	case ast.StmtContinue:
		if !c.current.inLoop {
			c.errAt(diag.SemContinueOutsideLoop, stmt.Span, "'continue' outside loop")
		}

	case ast.StmtImport:
		data, _ := c.tree.Stmts.Import(id)
		for _, mod := range data.Modules {
			c.current.declare(rootModuleName(c.tree.Str(mod)))
		}

	case ast.StmtImportFrom:
		data, _ := c.tree.Stmts.ImportFrom(id)
		for _, name := range data.Names {
			text := c.tree.Str(name)
			if text != "*" {
				c.current.declare(text)
			}
		}

	case ast.StmtPass, ast.StmtBad:
	}
}

// inLoopBody toggles the loop flag on the current scope around fn and
// restores the previous value, so nested loop and non-loop regions report
// correctly.
func (c *Checker) inLoopBody(fn func()) {
	prev := c.current.inLoop
	c.current.inLoop = true
	fn()
	c.current.inLoop = prev
}

func (c *Checker) checkAssign(id ast.StmtID, stmt *ast.Stmt) {
	data, _ := c.tree.Stmts.Assign(id)

	if nameData, ok := c.tree.Exprs.Name(data.Target); ok {
		name := c.tree.Str(nameData.Name)
		if IsBuiltinType(name) {
			c.report(diag.SemRedefinitionBuiltin, diag.SevWarning, stmt.Span,
				fmt.Sprintf("redefining built-in type %q", name))
		}
		if data.Op != ast.AssignPlain && !c.current.isDeclared(name) && !IsBuiltinFunction(name) {
			c.errAt(diag.SemUndeclaredIdentifier, stmt.Span,
				fmt.Sprintf("name %q is not defined", name))
		}
		c.current.declare(name)
	} else {
		c.checkExpr(data.Target)
	}

	c.checkExpr(data.Value)
}

func (c *Checker) declareTarget(id ast.ExprID) {
	if nameData, ok := c.tree.Exprs.Name(id); ok {
		c.current.declare(c.tree.Str(nameData.Name))
		return
	}
	if tuple, ok := c.tree.Exprs.Tuple(id); ok {
		for _, elem := range tuple.Elems {
			c.declareTarget(elem)
		}
	}
}

func (c *Checker) checkFuncDef(id ast.StmtID, stmt *ast.Stmt) {
	data, _ := c.tree.Stmts.FuncDef(id)
	name := c.tree.Str(data.Name)

	seen := make(map[string]struct{}, len(data.Params))
	for _, param := range data.Params {
		text := c.tree.Str(param)
		if _, dup := seen[text]; dup {
			c.errAt(diag.SemDuplicateArgument, stmt.Span,
				fmt.Sprintf("parameter %q is duplicated in function definition", text))
		}
		seen[text] = struct{}{}
	}

	// Registered before descending so direct and mutual recursion resolve.
	c.current.funcs[name] = funcSig{name: name, paramCount: len(data.Params)}

	funcScope := newScope(c.current)
	funcScope.inFunction = true
	for _, param := range data.Params {
		funcScope.declare(c.tree.Str(param))
	}

	prev := c.current
	c.current = funcScope
	c.checkBody(data.Body)
	c.current = prev
}

func (c *Checker) checkClassDef(id ast.StmtID, stmt *ast.Stmt) {
	data, _ := c.tree.Stmts.ClassDef(id)
	name := c.tree.Str(data.Name)
	c.current.declare(name)

	for _, base := range data.Bases {
		c.checkExpr(base)
	}

	info := &classInfo{
		name:    name,
		methods: make(map[string]int),
		attrs:   make(map[string]struct{}),
	}
	for _, child := range data.Body {
		if fn, ok := c.tree.Stmts.FuncDef(child); ok {
			info.methods[c.tree.Str(fn.Name)] = len(fn.Params)
			continue
		}
		if assign, ok := c.tree.Stmts.Assign(child); ok {
			if nameData, ok := c.tree.Exprs.Name(assign.Target); ok {
				info.attrs[c.tree.Str(nameData.Name)] = struct{}{}
			}
		}
	}
	c.classes[name] = info

	classScope := newScope(c.current)
	prev := c.current
	c.current = classScope
	c.checkBody(data.Body)
	c.current = prev
}

func rootModuleName(dotted string) string {
	for i := 0; i < len(dotted); i++ {
		if dotted[i] == '.' {
			return dotted[:i]
		}
	}
	return dotted
}
