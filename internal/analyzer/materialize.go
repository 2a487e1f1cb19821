package analyzer

import (
	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/constant"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// materialize checks that op may fill a slot of type target (annotated
// declaration, argument, assignment or return) and returns the type the
// slot ends up holding. what names the site in the diagnostic. Array
// shapes are validated first so a size problem is reported as such even
// when the element types also disagree.
func (ctx *Context) materialize(node ast.Node, op operand, target typesystem.Type, what string) typesystem.Type {
	if target == nil {
		return op.typ
	}
	res := ctx.fill(node, op, target, what)
	if ctx.Slots != nil && !typesystem.IsUnknown(res) {
		ctx.Slots[node] = res
	}
	return res
}

func (ctx *Context) fill(node ast.Node, op operand, target typesystem.Type, what string) typesystem.Type {
	if typesystem.IsUnknown(op.typ) || typesystem.IsUnknown(target) {
		return target
	}
	if arr, ok := target.(typesystem.ConcreteArray); ok {
		switch op.typ.(type) {
		case typesystem.ComptimeArray, typesystem.ConcreteArray:
			if !ctx.validateMaterialization(node, op.typ, arr, what) {
				return target
			}
		}
	}
	res, err := typesystem.Assign(op.typ, target, false)
	if err != nil {
		ctx.reportCoercion(node, err, what)
		return target
	}
	if tag, ok := typesystem.ScalarTag(res); ok && op.typ.IsComptime() {
		ctx.checkFits(node, op.val, tag)
	}
	if arr, ok := res.(typesystem.ConcreteArray); ok && op.typ.IsComptime() {
		ctx.checkElementsFit(node, op.elems, arr.Element)
	}
	if rng, ok := res.(typesystem.Range); ok && op.typ.IsComptime() {
		if op.bounds != nil {
			ctx.checkBoundsFit(op.bounds, rng.Element)
		}
		ctx.requireFloatStep(node, rng)
	}
	return res
}

// checkElementsFit checks the folded elements of a comptime array against
// the element tag it materializes to.
func (ctx *Context) checkElementsFit(node ast.Node, elems []constant.Value, tag typesystem.Tag) bool {
	ok := true
	for _, v := range elems {
		if !ctx.checkFits(node, v, tag) {
			ok = false
		}
	}
	return ok
}
