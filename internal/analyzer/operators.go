package analyzer

import (
	"fmt"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/constant"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

const (
	opAdd    = "+"
	opSub    = "-"
	opMul    = "*"
	opDiv    = "/"
	opIntDiv = "\\"
	opMod    = "%"
	opNot    = "!"
	opAnd    = "&&"
	opOr     = "||"
	opEq     = "=="
	opNotEq  = "!="
	opLt     = "<"
	opLte    = "<="
	opGt     = ">"
	opGte    = ">="
)

func (ctx *Context) prefix(n *ast.PrefixExpression, target typesystem.Type) operand {
	right := ctx.expr(n.Right, target)
	if typesystem.IsUnknown(right.typ) {
		return unknown()
	}
	tag, isScalar := typesystem.ScalarTag(right.typ)
	switch n.Operator {
	case opSub:
		if !isScalar || !tag.IsNumeric() {
			ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "operator - is not defined for %s", right.typ))
			return unknown()
		}
		if tag == typesystem.Usize {
			ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "cannot negate a usize value").
				WithHelp("convert to a signed type first: `value:i64`"))
			return unknown()
		}
		out := operand{typ: right.typ}
		if right.val.IsValid() && tag.IsComptime() {
			out.val = right.val.Neg()
		}
		return out
	case opNot:
		if !isScalar || tag != typesystem.Bool {
			ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "operator ! requires bool, got %s", right.typ))
			return unknown()
		}
		return typed(typesystem.TBool)
	}
	ctx.malformed(n, "unknown prefix operator %q", n.Operator)
	return unknown()
}

func (ctx *Context) infix(n *ast.InfixExpression, target typesystem.Type) operand {
	switch n.Operator {
	case opAdd, opSub, opMul, opDiv, opIntDiv, opMod:
		return ctx.arithmetic(n, target)
	case opEq, opNotEq, opLt, opLte, opGt, opGte:
		return ctx.comparison(n)
	case opAnd, opOr:
		return ctx.logical(n)
	}
	ctx.malformed(n, "unknown infix operator %q", n.Operator)
	return unknown()
}

// arithmetic resolves both operands left to right, lets a comptime operand
// adapt to a concrete partner and folds comptime values so overflow is
// checked where the result materializes.
func (ctx *Context) arithmetic(n *ast.InfixExpression, target typesystem.Type) operand {
	hint := scalarHint(target)
	left := ctx.expr(n.Left, hint)
	right := ctx.expr(n.Right, hint)
	if typesystem.IsUnknown(left.typ) || typesystem.IsUnknown(right.typ) {
		return unknown()
	}
	lt, lok := typesystem.ScalarTag(left.typ)
	rt, rok := typesystem.ScalarTag(right.typ)
	if !lok || !rok || !lt.IsNumeric() || !rt.IsNumeric() {
		bad := left.typ
		if lok && lt.IsNumeric() {
			bad = right.typ
		}
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "operator %s is not defined for %s", n.Operator, bad))
		return unknown()
	}

	switch n.Operator {
	case opIntDiv, opMod:
		if lt.IsFloat() || rt.IsFloat() {
			ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "operator %s requires integer operands, got %s and %s", n.Operator, lt, rt).
				WithHelp("use `/` for float division"))
			return unknown()
		}
	}

	// Both comptime: pattern 1, fold the value.
	if lt.IsComptime() && rt.IsComptime() {
		tag := typesystem.PromoteComptime(lt, rt)
		if n.Operator == opDiv {
			tag = typesystem.ComptimeFloat
		}
		out := operand{typ: typesystem.Scalar{Tag: tag}}
		if v, ok := constant.Binary(n.Operator, left.val, right.val); ok {
			out.val = v
		} else if left.val.IsValid() && right.val.IsValid() && right.val.Sign() == 0 {
			ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.Right, "division by zero in constant expression"))
			return unknown()
		}
		return out
	}

	explicit := left.explicit || right.explicit
	var result typesystem.Tag
	if explicit {
		result = explicitResult(left, right, lt, rt, target)
		if !ctx.keepsFraction(n.Left, left, result) || !ctx.keepsFraction(n.Right, right, result) {
			return unknown()
		}
	} else {
		res, err := typesystem.Resolve(left.typ, right.typ, false)
		if err != nil {
			ctx.reportCoercion(n, err, "")
			return unknown()
		}
		result, _ = typesystem.ScalarTag(res)
	}
	// Pattern 2: the comptime side adapts to the concrete side.
	if lt.IsComptime() {
		ctx.checkFits(n.Left, left.val, result)
	}
	if rt.IsComptime() {
		ctx.checkFits(n.Right, right.val, result)
	}

	if n.Operator == opDiv && result.IsInteger() {
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "operator / is float division and cannot produce %s", result).
			WithHelp(fmt.Sprintf("use `\\` for integer division, or convert an operand: `value:%s`", floatPartner(result))))
		return unknown()
	}
	return typed(typesystem.Scalar{Tag: result})
}

// explicitResult picks the type of an arithmetic expression that carries a
// conversion marker: the surrounding target when it is a numeric scalar,
// otherwise the type of the marked operand.
func explicitResult(left, right operand, lt, rt typesystem.Tag, target typesystem.Type) typesystem.Tag {
	if tag, ok := typesystem.ScalarTag(target); ok && tag.IsNumeric() && tag.IsConcrete() {
		return tag
	}
	switch {
	case left.explicit && !right.explicit:
		return lt
	case right.explicit && !left.explicit:
		return rt
	}
	if rt.IsComptime() {
		return lt
	}
	return rt
}

// keepsFraction rejects an unmarked comptime float operand of an integer
// result. The marker on the other operand does not license truncation.
func (ctx *Context) keepsFraction(node ast.Node, op operand, result typesystem.Tag) bool {
	tag, _ := typesystem.ScalarTag(op.typ)
	if tag != typesystem.ComptimeFloat || op.explicit || !result.IsInteger() {
		return true
	}
	if _, err := typesystem.Assign(op.typ, typesystem.Scalar{Tag: result}, false); err != nil {
		ctx.reportCoercion(node, err, "")
		return false
	}
	return true
}

func floatPartner(t typesystem.Tag) typesystem.Tag {
	if t == typesystem.I32 {
		return typesystem.F32
	}
	return typesystem.F64
}

func (ctx *Context) comparison(n *ast.InfixExpression) operand {
	left := ctx.expr(n.Left, nil)
	right := ctx.expr(n.Right, nil)
	if typesystem.IsUnknown(left.typ) || typesystem.IsUnknown(right.typ) {
		return typed(typesystem.TBool)
	}
	lt, lok := typesystem.ScalarTag(left.typ)
	rt, rok := typesystem.ScalarTag(right.typ)
	if !lok || !rok {
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "operator %s is not defined for %s and %s", n.Operator, left.typ, right.typ))
		return typed(typesystem.TBool)
	}
	ordered := n.Operator != opEq && n.Operator != opNotEq
	if ordered && (!lt.IsNumeric() || !rt.IsNumeric()) {
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "operator %s requires numeric operands, got %s and %s", n.Operator, lt, rt))
		return typed(typesystem.TBool)
	}
	res, err := typesystem.Resolve(left.typ, right.typ, left.explicit || right.explicit)
	if err != nil {
		ctx.reportCoercion(n, err, "")
		return typed(typesystem.TBool)
	}
	if tag, ok := typesystem.ScalarTag(res); ok && tag.IsConcrete() {
		if lt.IsComptime() {
			ctx.checkFits(n.Left, left.val, tag)
		}
		if rt.IsComptime() {
			ctx.checkFits(n.Right, right.val, tag)
		}
	}
	return typed(typesystem.TBool)
}

func (ctx *Context) logical(n *ast.InfixExpression) operand {
	left := ctx.expr(n.Left, typesystem.TBool)
	right := ctx.expr(n.Right, typesystem.TBool)
	for _, side := range []struct {
		node ast.Node
		op   operand
	}{{n.Left, left}, {n.Right, right}} {
		if typesystem.IsUnknown(side.op.typ) || side.op.typ.Equal(typesystem.TBool) {
			continue
		}
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, side.node, "operator %s requires bool operands, got %s", n.Operator, side.op.typ))
	}
	return typed(typesystem.TBool)
}

func scalarHint(target typesystem.Type) typesystem.Type {
	if _, ok := target.(typesystem.Scalar); ok {
		return target
	}
	return nil
}

// checkFits reports an overflow when a folded comptime value does not fit
// the concrete tag it materializes to. Boundary values fit.
func (ctx *Context) checkFits(node ast.Node, v constant.Value, tag typesystem.Tag) bool {
	if !v.IsValid() || !tag.IsNumeric() || tag.IsComptime() {
		return true
	}
	if constant.Fits(v, tag, ctx.pointerWidth()) {
		return true
	}
	ctx.report(ctx.errorf(diagnostics.ErrOverflow, node, "value %s overflows %s", v, tag).
		WithNote(fmt.Sprintf("%s holds %s", tag, constant.Describe(tag, ctx.pointerWidth()))).
		WithHelp(overflowHelp(tag)))
	return false
}

func overflowHelp(tag typesystem.Tag) string {
	switch tag {
	case typesystem.I32:
		return "use a wider type such as `i64`"
	case typesystem.F32:
		return "use `f64`"
	}
	return "reduce the value"
}
