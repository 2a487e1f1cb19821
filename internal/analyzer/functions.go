package analyzer

import (
	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/symbols"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// signature builds the signature of a function declaration once per node.
func (ctx *Context) signature(n *ast.FunctionStatement) *symbols.FunctionSignature {
	if sig, ok := ctx.signatures[n]; ok {
		return sig
	}
	if n.Name == nil || n.Body == nil {
		ctx.malformed(n, "function without name or body")
	}
	sig := &symbols.FunctionSignature{Name: n.Name.Value, Node: n, Return: typesystem.TVoid}
	seen := make(map[string]bool)
	for _, p := range n.Parameters {
		if p == nil || p.Name == nil || p.Type == nil {
			ctx.malformed(n, "incomplete parameter in %s", sig.Name)
		}
		t := ctx.typeExpr(p.Type)
		if typesystem.IsVoid(t) {
			ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, p.Type, "parameter %s cannot have type void", p.Name.Value))
			t = typesystem.TUnknown
		}
		if seen[p.Name.Value] {
			ctx.report(ctx.errorf(diagnostics.ErrScope, p.Name, "duplicate parameter %s in %s", p.Name.Value, sig.Name))
			continue
		}
		seen[p.Name.Value] = true
		sig.Parameters = append(sig.Parameters, symbols.Parameter{Name: p.Name.Value, Type: t, Mutable: p.Mutable})
	}
	if n.ReturnType != nil {
		sig.Return = ctx.typeExpr(n.ReturnType)
	}
	ctx.signatures[n] = sig
	return sig
}

// declareFunction registers a top-level signature so calls may precede the
// callee's declaration.
func (ctx *Context) declareFunction(n *ast.FunctionStatement) {
	sig := ctx.signature(n)
	if err := ctx.Scope.DeclareFunction(sig); err != nil {
		ctx.report(ctx.errorf(diagnostics.ErrScope, n.Name, "function %s is already declared", sig.Name))
	}
}

// functionBody analyzes a body in a fresh function scope holding the
// parameters. The scope is popped on every exit, including an aborted
// analysis.
func (ctx *Context) functionBody(n *ast.FunctionStatement) {
	sig := ctx.signature(n)
	fctx := ctx.withFunction(sig)

	ctx.Scope.EnterFunctionScope()
	defer ctx.Scope.ExitScope()

	for i, p := range sig.Parameters {
		if _, err := ctx.Scope.DeclareParameter(p); err != nil {
			ctx.report(ctx.errorf(diagnostics.ErrScope, n, "cannot declare parameter %d (%s) of %s: %v", i+1, p.Name, sig.Name, err))
		}
	}
	fctx.statements(n.Body.Statements)

	if !typesystem.IsVoid(sig.Return) && !typesystem.IsUnknown(sig.Return) && fctx.fn.returns == 0 {
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.Name, "function %s must return a value of type %s", sig.Name, sig.Return).
			WithHelp("add `return value` to the body"))
	}
}
