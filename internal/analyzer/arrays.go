package analyzer

import (
	"fmt"
	"strings"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/constant"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// AnalyzeArrayLiteral resolves an array literal. Without a target the
// result is a ComptimeArray when every element is comptime; with a
// concrete array target each element is resolved against the target's
// element type so no conversion syntax is needed.
func (ctx *Context) AnalyzeArrayLiteral(lit *ast.ArrayLiteral, target typesystem.Type) (t typesystem.Type, err error) {
	t = typesystem.TUnknown
	err = ctx.guard(func() {
		t = ctx.expr(lit, target).typ
	})
	return t, err
}

// ValidateMaterialization checks that source fits the shape of target:
// the dimension count first, then every fixed axis. Every offending axis
// is reported in a single diagnostic. Nothing is ever truncated or padded.
func (ctx *Context) ValidateMaterialization(node ast.Node, source typesystem.Type, target typesystem.ConcreteArray) bool {
	return ctx.validateMaterialization(node, source, target, "")
}

func (ctx *Context) validateMaterialization(node ast.Node, source typesystem.Type, target typesystem.ConcreteArray, what string) bool {
	var m *typesystem.ShapeMismatch
	switch s := source.(type) {
	case typesystem.ComptimeArray:
		m = typesystem.CheckShape(s.Dims, target.Dims)
	case typesystem.ConcreteArray:
		m = typesystem.CheckConcreteShape(s.Dims, target.Dims)
	default:
		return true
	}
	if m == nil {
		return true
	}
	msg := m.String()
	if what != "" {
		msg = what + ": " + msg
	}
	d := diagnostics.NewError(diagnostics.ErrDimensionMismatch, node.GetToken(), msg).WithHelp(shapeHelp(m))
	for _, ax := range m.Axes {
		if ax.Source == int(typesystem.Wildcard) {
			d.WithNote("a `_` dimension is only known at runtime and cannot fill a fixed dimension")
			break
		}
	}
	ctx.report(d)
	return false
}

// shapeHelp suggests the exact type that would accept the value.
func shapeHelp(m *typesystem.ShapeMismatch) string {
	if m.CountMismatch {
		return fmt.Sprintf("the value is %d-dimensional; use a %d-dimensional type such as `%s`, or reshape the literal",
			len(m.SourceDims), len(m.SourceDims), strings.Repeat("[_]", len(m.SourceDims)))
	}
	relaxed := append([]typesystem.Dim(nil), m.TargetDims...)
	for _, ax := range m.Axes {
		relaxed[ax.Axis] = typesystem.Wildcard
	}
	var sb strings.Builder
	for _, d := range relaxed {
		sb.WriteString("[" + d.String() + "]")
	}
	return fmt.Sprintf("accept any length with a wildcard dimension such as `%s`, or resize the literal to %s",
		sb.String(), m.TargetShape())
}

func (ctx *Context) arrayLiteral(n *ast.ArrayLiteral, target typesystem.Type) operand {
	arrTarget, hasTarget := target.(typesystem.ConcreteArray)
	if len(n.Elements) == 0 {
		return ctx.emptyArray(n, arrTarget, hasTarget)
	}
	var sub typesystem.Type
	if hasTarget {
		sub = arrTarget.Sub()
	}
	elems := make([]operand, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = ctx.expr(e, sub)
	}
	for _, el := range elems {
		if typesystem.IsUnknown(el.typ) {
			return unknown()
		}
	}
	switch elems[0].typ.(type) {
	case typesystem.Scalar:
		return ctx.flatArray(n, elems, sub)
	case typesystem.ComptimeArray, typesystem.ConcreteArray:
		return ctx.nestedArray(n, elems)
	}
	ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.Elements[0], "array elements must be scalars or arrays, got %s", elems[0].typ))
	return unknown()
}

func (ctx *Context) emptyArray(n *ast.ArrayLiteral, target typesystem.ConcreteArray, hasTarget bool) operand {
	if !hasTarget {
		ctx.report(ctx.errorf(diagnostics.ErrMissingAnnotation, n, "empty array literal needs a type annotation").
			WithHelp("annotate the declaration, e.g. `val xs: [_]i32 = []`"))
		return unknown()
	}
	if outer := target.Dims[0]; outer != typesystem.Wildcard {
		ctx.report(ctx.errorf(diagnostics.ErrDimensionMismatch, n, "array size mismatch (dimension 0: 0 vs %d)", int(outer)).
			WithHelp("use a wildcard dimension `[_]` or add elements"))
	}
	return typed(target)
}

// flatArray unifies scalar element types left to right: comptime_int and
// comptime_float give comptime_float, a concrete element fixes the type.
func (ctx *Context) flatArray(n *ast.ArrayLiteral, elems []operand, sub typesystem.Type) operand {
	acc := elems[0].typ
	for i := 1; i < len(elems); i++ {
		if _, ok := elems[i].typ.(typesystem.Scalar); !ok {
			ctx.report(ctx.errorf(diagnostics.ErrDimensionMismatch, n.Elements[i],
				"array element %d is %s, but element 0 is a scalar", i, elems[i].typ))
			return unknown()
		}
		res, err := typesystem.Resolve(acc, elems[i].typ, false)
		if err != nil {
			ctx.reportCoercion(n.Elements[i], err, fmt.Sprintf("array element %d", i))
			return unknown()
		}
		acc = res
	}
	tag, _ := typesystem.ScalarTag(acc)
	if tag == typesystem.Void {
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "array elements cannot be void"))
		return unknown()
	}

	if tag.IsComptime() {
		out := typed(typesystem.ComptimeArray{Element: tag, Dims: []int{len(elems)}})
		if subTag, ok := typesystem.ScalarTag(sub); ok && typesystem.CanAdapt(tag, subTag) {
			for i, el := range elems {
				ctx.checkFits(n.Elements[i], el.val, subTag)
			}
			return out
		}
		out.elems = make([]constant.Value, len(elems))
		for i, el := range elems {
			out.elems[i] = el.val
		}
		return out
	}
	for i, el := range elems {
		if el.typ.IsComptime() {
			ctx.checkFits(n.Elements[i], el.val, tag)
		}
	}
	return typed(typesystem.ConcreteArray{Element: tag, Dims: []typesystem.Dim{typesystem.Dim(len(elems))}})
}

// nestedArray requires every sub-array to have the shape of the first one
// and prepends the outer length.
func (ctx *Context) nestedArray(n *ast.ArrayLiteral, elems []operand) operand {
	first := arrayDims(elems[0].typ)
	tag := typesystem.ElementTag(elems[0].typ)
	comptime := elems[0].typ.IsComptime()
	for i := 1; i < len(elems); i++ {
		dims := arrayDims(elems[i].typ)
		if dims == nil {
			ctx.report(ctx.errorf(diagnostics.ErrDimensionMismatch, n.Elements[i],
				"array element %d is %s, but element 0 is an array", i, elems[i].typ))
			return unknown()
		}
		if !sameDims(first, dims) {
			ctx.report(ctx.errorf(diagnostics.ErrDimensionMismatch, n.Elements[i],
				"inconsistent sub-array shapes: element 0 is %s, element %d is %s", shapeOf(first), i, shapeOf(dims)).
				WithHelp("every row of a multidimensional array must have the same length"))
			return unknown()
		}
		res, err := typesystem.Resolve(typesystem.Scalar{Tag: tag}, typesystem.Scalar{Tag: typesystem.ElementTag(elems[i].typ)}, false)
		if err != nil {
			ctx.reportCoercion(n.Elements[i], err, fmt.Sprintf("array element %d", i))
			return unknown()
		}
		tag, _ = typesystem.ScalarTag(res)
		comptime = comptime && elems[i].typ.IsComptime()
	}
	dims := append([]typesystem.Dim{typesystem.Dim(len(elems))}, first...)
	if comptime && tag.IsComptime() {
		ints := make([]int, len(dims))
		for i, d := range dims {
			ints[i] = int(d)
		}
		out := typed(typesystem.ComptimeArray{Element: tag, Dims: ints})
		out.elems = joinRows(elems)
		return out
	}
	return typed(typesystem.ConcreteArray{Element: tag, Dims: dims})
}

// joinRows concatenates the folded elements of every row, or returns nil
// when some row has none.
func joinRows(rows []operand) []constant.Value {
	var out []constant.Value
	for _, row := range rows {
		if row.elems == nil {
			return nil
		}
		out = append(out, row.elems...)
	}
	return out
}

// arrayDims returns the dimensions of an array type, nil for anything else.
func arrayDims(t typesystem.Type) []typesystem.Dim {
	switch a := t.(type) {
	case typesystem.ConcreteArray:
		return a.Dims
	case typesystem.ComptimeArray:
		dims := make([]typesystem.Dim, len(a.Dims))
		for i, d := range a.Dims {
			dims[i] = typesystem.Dim(d)
		}
		return dims
	}
	return nil
}

func sameDims(a, b []typesystem.Dim) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func shapeOf(dims []typesystem.Dim) string {
	var sb strings.Builder
	for _, d := range dims {
		sb.WriteString("[" + d.String() + "]")
	}
	return sb.String()
}
