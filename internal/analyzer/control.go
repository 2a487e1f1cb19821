package analyzer

import (
	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/config"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// blockExpr resolves `{ ...; -> value }`. The block gets its own scope and
// its value is the agreement of all its `->` statements; a block without
// one is void.
func (ctx *Context) blockExpr(n *ast.BlockExpression, target typesystem.Type) operand {
	ctx.Scope.EnterScope()
	defer ctx.Scope.ExitScope()

	inner := ctx.withBlock(target)
	inner.statements(n.Statements)
	if len(inner.block.yields) == 0 {
		return typed(typesystem.TVoid)
	}
	return ctx.unifyBranches(inner.block.yields, target)
}

func (ctx *Context) ifExpr(n *ast.IfExpression, target typesystem.Type) operand {
	cond := ctx.expr(n.Condition, typesystem.TBool)
	if !typesystem.IsUnknown(cond.typ) && !cond.typ.Equal(typesystem.TBool) {
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.Condition, "if condition must be bool, got %s", cond.typ))
	}
	if n.Consequence == nil {
		ctx.malformed(n, "if without consequence block")
	}
	cons := ctx.expr(n.Consequence, target)
	if n.Alternative == nil {
		// Without else there is a path producing nothing.
		return typed(typesystem.TVoid)
	}
	alt := ctx.expr(n.Alternative, target)
	return ctx.unifyBranches([]branch{{node: n.Consequence, op: cons}, {node: n.Alternative, op: alt}}, target)
}

// unifyBranches combines the values of every exit of a block or
// conditional. With a target each value must fill it. Without one they must
// agree on a single type; comptime values may still combine under the
// comptime rules, and mixed comptime_int/comptime_float branches follow
// Options.BranchPolicy.
func (ctx *Context) unifyBranches(branches []branch, target typesystem.Type) operand {
	if target != nil && !typesystem.IsVoid(target) {
		for _, b := range branches {
			ctx.materialize(b.node, b.op, target, "branch value")
		}
		return typed(target)
	}

	var acc operand
	have := false
	for _, b := range branches {
		if typesystem.IsUnknown(b.op.typ) {
			continue
		}
		if !have {
			acc, have = b.op, true
			continue
		}
		at, aok := typesystem.ScalarTag(acc.typ)
		bt, bok := typesystem.ScalarTag(b.op.typ)
		if aok && bok && at.IsComptime() && bt.IsComptime() && at != bt {
			if ctx.Options.BranchPolicy == config.BranchStrict {
				ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, b.node, "branches disagree: %s and %s", acc.typ, b.op.typ).
					WithHelp("annotate the result to choose a type, e.g. `val x: f64 = ...`").
					WithNote("comptime_int and comptime_float branches are not combined implicitly"))
				return unknown()
			}
			acc = typed(typesystem.TComptimeFloat)
			continue
		}
		res, err := typesystem.Resolve(acc.typ, b.op.typ, false)
		if err != nil {
			ctx.reportCoercion(b.node, err, "branch value")
			return unknown()
		}
		acc = typed(res)
	}
	if !have {
		return unknown()
	}
	if tag, ok := typesystem.ScalarTag(acc.typ); ok && tag.IsConcrete() {
		for _, b := range branches {
			if b.op.typ.IsComptime() {
				ctx.checkFits(b.node, b.op.val, tag)
			}
		}
	}
	if len(branches) == 1 {
		return branches[0].op
	}
	return acc
}
