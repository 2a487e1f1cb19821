package analyzer

import (
	"fmt"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/symbols"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// AnalyzeCall checks a call against sig and returns the signature's
// return type. Each argument is resolved with its parameter type as
// context and must fill the parameter like an annotated declaration.
func (ctx *Context) AnalyzeCall(call *ast.CallExpression, sig *symbols.FunctionSignature) (t typesystem.Type, err error) {
	t = typesystem.TUnknown
	err = ctx.guard(func() {
		t = ctx.call(call, sig).typ
		ctx.record(call, t)
	})
	return t, err
}

func (ctx *Context) callExpr(n *ast.CallExpression) operand {
	if n.Function == nil {
		ctx.malformed(n, "call without function name")
	}
	sig, ok := ctx.Scope.LookupFunction(n.Function.Value)
	if !ok {
		d := ctx.errorf(diagnostics.ErrScope, n.Function, "undeclared function %s", n.Function.Value)
		if _, isVar := ctx.Scope.Lookup(n.Function.Value); isVar {
			d.WithNote(n.Function.Value + " is a variable, not a function")
		}
		ctx.report(d)
		for _, arg := range n.Arguments {
			ctx.expr(arg, nil)
		}
		return unknown()
	}
	return ctx.call(n, sig)
}

func (ctx *Context) call(n *ast.CallExpression, sig *symbols.FunctionSignature) operand {
	if len(n.Arguments) != len(sig.Parameters) {
		ctx.report(ctx.errorf(diagnostics.ErrArityMismatch, n, "%s expects %d argument(s), got %d",
			sig.Name, len(sig.Parameters), len(n.Arguments)).
			WithHelp("signature: " + sig.String()))
	}
	for i, arg := range n.Arguments {
		if i >= len(sig.Parameters) {
			ctx.expr(arg, nil)
			continue
		}
		p := sig.Parameters[i]
		op := ctx.expr(arg, p.Type)
		ctx.materialize(arg, op, p.Type, fmt.Sprintf("argument %d (%s) of %s", i+1, p.Name, sig.Name))
	}
	if sig.Return == nil {
		return typed(typesystem.TVoid)
	}
	return typed(sig.Return)
}
