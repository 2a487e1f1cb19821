package analyzer

import (
	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/constant"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// rangeBounds keeps the folded bounds of a range literal for overflow and
// slice length computation. Missing or non-constant bounds are invalid
// values.
type rangeBounds struct {
	start, end, step             constant.Value
	startNode, endNode, stepNode ast.Node
}

// AnalyzeRange resolves a range expression. target, when it is a range
// type, supplies the element type the bounds adapt to.
func (ctx *Context) AnalyzeRange(n *ast.RangeExpression, target typesystem.Type) (t typesystem.Type, err error) {
	t = typesystem.TUnknown
	err = ctx.guard(func() {
		t = ctx.expr(n, target).typ
	})
	return t, err
}

func (ctx *Context) rangeExpr(n *ast.RangeExpression, target typesystem.Type) operand {
	hint := typesystem.Unknown
	switch t := target.(type) {
	case typesystem.Range:
		hint = t.Element
	case typesystem.ComptimeRange:
		hint = t.Element
	}
	var hintType typesystem.Type
	if hint != typesystem.Unknown {
		hintType = typesystem.Scalar{Tag: hint}
	}

	invalid := false
	if n.Step != nil && n.Start == nil {
		ctx.report(ctx.errorf(diagnostics.ErrRangeShape, n.Step, "a range step requires a start bound").
			WithHelp("write the range as `start..end:step`"))
		invalid = true
	}

	bounds := &rangeBounds{}
	var acc typesystem.Type
	parts := []struct {
		name string
		node ast.Expression
		val  *constant.Value
		at   *ast.Node
	}{
		{"start", n.Start, &bounds.start, &bounds.startNode},
		{"end", n.End, &bounds.end, &bounds.endNode},
		{"step", n.Step, &bounds.step, &bounds.stepNode},
	}
	for _, part := range parts {
		if part.node == nil {
			continue
		}
		op := ctx.expr(part.node, hintType)
		if typesystem.IsUnknown(op.typ) {
			invalid = true
			continue
		}
		tag, ok := typesystem.ScalarTag(op.typ)
		if !ok || !tag.IsNumeric() {
			ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, part.node, "range %s must be numeric, got %s", part.name, op.typ))
			invalid = true
			continue
		}
		if tag.IsComptime() {
			*part.val = op.val
		}
		*part.at = part.node
		if acc == nil {
			acc = op.typ
			continue
		}
		res, err := typesystem.Resolve(acc, op.typ, false)
		if err != nil {
			ctx.reportCoercion(part.node, err, "range "+part.name+" does not match the other bounds")
			invalid = true
			continue
		}
		acc = res
	}
	if invalid {
		return unknown()
	}

	shape := typesystem.Range{
		HasStart:  n.Start != nil,
		HasEnd:    n.End != nil,
		HasStep:   n.Step != nil,
		Inclusive: n.Inclusive,
	}
	if acc == nil {
		// `..` carries no bounds; it takes the target's element if any.
		if hint.IsConcrete() && hint.IsNumeric() {
			shape.Element = hint
			return operand{typ: shape, bounds: bounds}
		}
		shape.Element = typesystem.ComptimeInt
		return operand{typ: typesystem.ComptimeRange{Range: shape}, bounds: bounds}
	}

	tag, _ := typesystem.ScalarTag(acc)
	if tag.IsComptime() && hint.IsConcrete() && typesystem.CanAdapt(tag, hint) {
		if !ctx.checkBoundsFit(bounds, hint) {
			return unknown()
		}
		tag = hint
	}
	if bounds.step.IsValid() && bounds.step.Sign() == 0 {
		ctx.report(ctx.errorf(diagnostics.ErrRangeShape, n.Step, "range step cannot be zero"))
		return unknown()
	}
	shape.Element = tag
	if !ctx.requireFloatStep(n, shape) {
		return unknown()
	}
	if tag.IsComptime() {
		return operand{typ: typesystem.ComptimeRange{Range: shape}, bounds: bounds}
	}
	return operand{typ: shape, bounds: bounds}
}

// checkBoundsFit checks every folded bound against the element tag the
// range materializes to.
func (ctx *Context) checkBoundsFit(b *rangeBounds, tag typesystem.Tag) bool {
	ok := true
	if b.startNode != nil && !ctx.checkFits(b.startNode, b.start, tag) {
		ok = false
	}
	if b.endNode != nil && !ctx.checkFits(b.endNode, b.end, tag) {
		ok = false
	}
	if b.stepNode != nil && !ctx.checkFits(b.stepNode, b.step, tag) {
		ok = false
	}
	return ok
}

// requireFloatStep reports a bounded float range without a step.
func (ctx *Context) requireFloatStep(node ast.Node, r typesystem.Range) bool {
	if !r.Element.IsFloat() || !r.IsBounded() || r.HasStep {
		return true
	}
	ctx.report(ctx.errorf(diagnostics.ErrRangeShape, node, "float range requires explicit step").
		WithHelp("add a step: `start..end:step`, e.g. `0.0..10.0:0.1`").
		WithNote("float ranges have no natural increment"))
	return false
}

// ValidateRangeIndex checks that t may index an array: only usize ranges
// and comptime_int ranges qualify. Signed integer ranges need an explicit
// conversion; float ranges are rejected outright since no conversion to
// range[usize] exists.
func (ctx *Context) ValidateRangeIndex(node ast.Node, t typesystem.Type) bool {
	var elem typesystem.Tag
	switch r := t.(type) {
	case typesystem.Range:
		elem = r.Element
	case typesystem.ComptimeRange:
		elem = r.Element
	default:
		if typesystem.IsUnknown(t) {
			return true
		}
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, node, "%s cannot index an array", t))
		return false
	}
	switch {
	case elem == typesystem.Usize || elem == typesystem.ComptimeInt:
		return true
	case elem.IsFloat():
		ctx.report(ctx.errorf(diagnostics.ErrUnsupportedConversion, node, "%s cannot index an array", t).
			WithHelp("use integer bounds").
			WithNote("array indices are usize and there is no conversion from a float range to range[usize], explicit or not"))
	default:
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, node, "array index range must be range[usize], got %s", t).
			WithHelp("convert explicitly: `r:range[usize]`"))
	}
	return false
}
