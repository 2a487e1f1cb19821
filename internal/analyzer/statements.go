package analyzer

import (
	"fmt"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// stmtAnalyzer dispatches one statement.
type stmtAnalyzer struct {
	ctx *Context
}

func (ctx *Context) statements(stmts []ast.Statement) {
	for _, s := range stmts {
		ctx.statement(s)
	}
}

func (ctx *Context) statement(s ast.Statement) {
	if s == nil {
		ctx.malformed(nil, "nil statement")
	}
	s.Accept(&stmtAnalyzer{ctx: ctx})
}

func (s *stmtAnalyzer) VisitDeclarationStatement(n *ast.DeclarationStatement) {
	s.ctx.declaration(n)
}

func (s *stmtAnalyzer) VisitAssignStatement(n *ast.AssignStatement) {
	s.ctx.assignment(n)
}

func (s *stmtAnalyzer) VisitReturnStatement(n *ast.ReturnStatement) {
	s.ctx.returnStatement(n)
}

func (s *stmtAnalyzer) VisitYieldStatement(n *ast.YieldStatement) {
	s.ctx.yield(n)
}

func (s *stmtAnalyzer) VisitExpressionStatement(n *ast.ExpressionStatement) {
	s.ctx.expr(n.Expression, nil)
}

func (s *stmtAnalyzer) VisitFunctionStatement(n *ast.FunctionStatement) {
	if s.ctx.fn != nil || s.ctx.block != nil {
		s.ctx.report(s.ctx.errorf(diagnostics.ErrScope, n, "functions can only be declared at the top level"))
		return
	}
	s.ctx.functionBody(n)
}

// assignment checks `x = value`: x must be mutable and the value must fill
// x's existing type, exactly like a mut declaration's initializer.
func (ctx *Context) assignment(n *ast.AssignStatement) {
	if n.Name == nil || n.Value == nil {
		ctx.malformed(n, "assignment without target or value")
	}
	name := n.Name.Value
	sym, ok := ctx.Scope.Lookup(name)
	if !ok {
		ctx.report(ctx.errorf(diagnostics.ErrScope, n.Name, "undeclared identifier %s", name))
		ctx.expr(n.Value, nil)
		return
	}
	if !sym.Mutable {
		if p, isParam := ctx.Scope.ParameterInfo(name); isParam {
			p.Mutable = true
			ctx.report(ctx.errorf(diagnostics.ErrMutability, n.Name, "cannot assign to parameter %s", name).
				WithHelp(fmt.Sprintf("declare the parameter as `%s`", p)))
		} else {
			ctx.report(ctx.errorf(diagnostics.ErrMutability, n.Name, "cannot assign to immutable %s", name).
				WithHelp(fmt.Sprintf("declare it with `mut %s: %s`", name, sym.Type)))
		}
	}
	op := ctx.expr(n.Value, sym.Type)
	ctx.materialize(n.Value, op, sym.Type, "assignment to "+name)
	ctx.record(n.Name, sym.Type)
	ctx.Scope.MarkInitialized(name)
}

// returnStatement checks a value against the enclosing function's return
// type.
func (ctx *Context) returnStatement(n *ast.ReturnStatement) {
	if ctx.fn == nil {
		ctx.report(ctx.errorf(diagnostics.ErrScope, n, "return outside of a function"))
		if n.Value != nil {
			ctx.expr(n.Value, nil)
		}
		return
	}
	ctx.fn.returns++
	sig := ctx.fn.sig
	ret := sig.Return
	if ret == nil || typesystem.IsVoid(ret) {
		if n.Value == nil {
			return
		}
		op := ctx.expr(n.Value, nil)
		if !typesystem.IsUnknown(op.typ) && !typesystem.IsVoid(op.typ) {
			ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.Value, "function %s returns void but a value of type %s is returned", sig.Name, op.typ).
				WithHelp("remove the value: `return`"))
		}
		return
	}
	if n.Value == nil {
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "function %s must return a value of type %s", sig.Name, ret))
		return
	}
	op := ctx.expr(n.Value, ret)
	ctx.materialize(n.Value, op, ret, "return value of "+sig.Name)
}

// yield records a `->` value for the innermost expression block.
func (ctx *Context) yield(n *ast.YieldStatement) {
	if n.Value == nil {
		ctx.malformed(n, "-> without value")
	}
	if ctx.block == nil {
		ctx.report(ctx.errorf(diagnostics.ErrScope, n, "`->` is only valid inside an expression block"))
		ctx.expr(n.Value, nil)
		return
	}
	op := ctx.expr(n.Value, ctx.block.target)
	ctx.block.yields = append(ctx.block.yields, branch{node: n.Value, op: op})
}
