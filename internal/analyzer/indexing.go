package analyzer

import (
	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/constant"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

var indexRange = typesystem.Range{Element: typesystem.Usize}

// index resolves `arr[i]` and the slice `arr[range]`. Range literals are
// resolved with range[usize] as context so comptime bounds adapt and are
// range-checked as indices.
func (ctx *Context) index(n *ast.IndexExpression) operand {
	left := ctx.expr(n.Left, nil)
	var idx operand
	if _, isRange := n.Index.(*ast.RangeExpression); isRange {
		idx = ctx.expr(n.Index, indexRange)
	} else {
		idx = ctx.expr(n.Index, typesystem.TUsize)
	}
	if typesystem.IsUnknown(left.typ) {
		return unknown()
	}
	dims := arrayDims(left.typ)
	if dims == nil {
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n, "%s cannot be indexed", left.typ))
		return unknown()
	}
	switch idx.typ.(type) {
	case typesystem.Range, typesystem.ComptimeRange:
		return ctx.slice(n, left, dims, idx)
	}
	return ctx.element(n, left, dims, idx)
}

func (ctx *Context) element(n *ast.IndexExpression, arr operand, dims []typesystem.Dim, idx operand) operand {
	sub := subOf(arr.typ)
	if typesystem.IsUnknown(idx.typ) {
		return typed(sub)
	}
	tag, ok := typesystem.ScalarTag(idx.typ)
	switch {
	case ok && tag == typesystem.Usize:
	case ok && tag == typesystem.ComptimeInt:
		if !ctx.checkFits(n.Index, idx.val, typesystem.Usize) {
			return typed(sub)
		}
		i, known := idx.val.Int64()
		if known && dims[0] != typesystem.Wildcard && i >= int64(dims[0]) {
			ctx.report(ctx.errorf(diagnostics.ErrDimensionMismatch, n.Index, "index %d is out of bounds for length %d", i, int(dims[0])))
			return typed(sub)
		}
		if known {
			return pickRows(arr, sub, i, 1, 1)
		}
	case ok && tag.IsFloat():
		ctx.report(ctx.errorf(diagnostics.ErrUnsupportedConversion, n.Index, "array index must be usize, got %s", tag).
			WithNote("float values never index arrays"))
	case ok && tag.IsInteger():
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.Index, "array index must be usize, got %s", tag).
			WithHelp("convert explicitly: `i:usize`"))
	default:
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.Index, "array index must be usize, got %s", idx.typ))
	}
	return typed(sub)
}

// slice produces a view of arr. Its first axis is the folded slice length
// when the bounds are literal, otherwise `_`.
func (ctx *Context) slice(n *ast.IndexExpression, arr operand, dims []typesystem.Dim, idx operand) operand {
	if !ctx.ValidateRangeIndex(n.Index, idx.typ) {
		return unknown()
	}
	var r typesystem.Range
	switch t := idx.typ.(type) {
	case typesystem.Range:
		r = t
	case typesystem.ComptimeRange:
		r = t.Range
		// A preserved comptime range adapts to usize here.
		if idx.bounds != nil && !ctx.checkBoundsFit(idx.bounds, typesystem.Usize) {
			return unknown()
		}
	}
	span, ok := ctx.sliceLength(n, r, idx.bounds, dims[0])
	if !ok {
		return unknown()
	}
	switch a := arr.typ.(type) {
	case typesystem.ConcreteArray:
		return typed(a.WithOuter(span.length))
	case typesystem.ComptimeArray:
		if span.length == typesystem.Wildcard {
			ctx.report(ctx.errorf(diagnostics.ErrMissingAnnotation, n, "slicing a comptime array needs literal bounds").
				WithHelp("materialize the array first, e.g. `val xs: [_]i32 = ...`"))
			return unknown()
		}
		out := append([]int{int(span.length)}, a.Dims[1:]...)
		return pickRows(arr, typesystem.ComptimeArray{Element: a.Element, Dims: out}, span.start, span.step, int64(span.length))
	}
	return unknown()
}

// sliceSpan is the folded extent of a slice. start and step are only
// meaningful when length is fixed.
type sliceSpan struct {
	length      typesystem.Dim
	start, step int64
}

// pickRows returns count rows of arr, every step-th from start, as an
// operand of type t. The folded elements of a comptime array come along so
// the result is still checked where it materializes.
func pickRows(arr operand, t typesystem.Type, start, step, count int64) operand {
	out := typed(t)
	a, ok := arr.typ.(typesystem.ComptimeArray)
	if !ok || arr.elems == nil || a.Dims[0] == 0 {
		return out
	}
	stride := int64(len(arr.elems) / a.Dims[0])
	var picked []constant.Value
	for k := int64(0); k < count; k++ {
		row := start + k*step
		if row < 0 || (row+1)*stride > int64(len(arr.elems)) {
			return out
		}
		picked = append(picked, arr.elems[row*stride:(row+1)*stride]...)
	}
	if _, scalar := t.(typesystem.Scalar); scalar && len(picked) == 1 {
		out.val = picked[0]
		return out
	}
	out.elems = picked
	return out
}

// sliceLength folds end-start (plus one when inclusive) divided by the
// step, rounding up. A missing start is 0 and a missing end is the axis
// length. Literal bounds outside a fixed axis are reported.
func (ctx *Context) sliceLength(n *ast.IndexExpression, r typesystem.Range, b *rangeBounds, outer typesystem.Dim) (sliceSpan, bool) {
	open := sliceSpan{length: typesystem.Wildcard}
	if b == nil {
		if !r.HasStart && !r.HasEnd && !r.HasStep {
			return sliceSpan{length: outer, step: 1}, true
		}
		return open, true
	}
	start := int64(0)
	if r.HasStart {
		v, ok := b.start.Int64()
		if !ok || v < 0 {
			return open, true
		}
		start = v
	}
	var end int64
	switch {
	case r.HasEnd:
		v, ok := b.end.Int64()
		if !ok || v < 0 {
			return open, true
		}
		end = v
		if r.Inclusive {
			end++
		}
	case outer != typesystem.Wildcard:
		end = int64(outer)
	default:
		return open, true
	}
	step := int64(1)
	if r.HasStep {
		v, ok := b.step.Int64()
		if !ok {
			return open, true
		}
		if v < 0 {
			ctx.report(ctx.errorf(diagnostics.ErrRangeShape, b.stepNode, "slice step must be positive, got %d", v))
			return open, false
		}
		step = v
	}
	if outer != typesystem.Wildcard && (start > int64(outer) || end > int64(outer)) {
		ctx.report(ctx.errorf(diagnostics.ErrDimensionMismatch, n.Index, "slice %d..%d is out of bounds for length %d", start, end, int(outer)))
		return open, false
	}
	if end <= start {
		ctx.report(ctx.errorf(diagnostics.ErrRangeShape, n.Index, "slice %d..%d is empty", start, end))
		return open, false
	}
	return sliceSpan{length: typesystem.Dim((end - start + step - 1) / step), start: start, step: step}, true
}

func subOf(arr typesystem.Type) typesystem.Type {
	switch a := arr.(type) {
	case typesystem.ConcreteArray:
		return a.Sub()
	case typesystem.ComptimeArray:
		return a.Sub()
	}
	return typesystem.TUnknown
}
