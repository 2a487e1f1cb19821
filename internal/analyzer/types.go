package analyzer

import (
	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// typeBuilder turns a type annotation into a type.
type typeBuilder struct {
	ctx *Context
	out typesystem.Type
}

func (ctx *Context) typeExpr(t ast.Type) typesystem.Type {
	if t == nil {
		ctx.malformed(nil, "missing type expression")
	}
	b := &typeBuilder{ctx: ctx, out: typesystem.TUnknown}
	t.Accept(b)
	return b.out
}

func (b *typeBuilder) VisitNamedType(n *ast.NamedType) {
	tag, ok := typesystem.ParseTag(n.Name)
	if !ok {
		b.ctx.report(b.ctx.errorf(diagnostics.ErrScope, n, "unknown type %s", n.Name))
		return
	}
	b.out = typesystem.Scalar{Tag: tag}
}

func (b *typeBuilder) VisitArrayType(n *ast.ArrayType) {
	var dims []typesystem.Dim
	var elem ast.Type = n
	// [2]([3]i32) and [2][3]i32 are the same type.
	for {
		at, ok := elem.(*ast.ArrayType)
		if !ok {
			break
		}
		if len(at.Dims) == 0 || at.Element == nil {
			b.ctx.malformed(at, "array type without dimensions or element")
		}
		for _, d := range at.Dims {
			if d == nil {
				b.ctx.malformed(at, "nil array dimension")
			}
			if d.Wildcard {
				dims = append(dims, typesystem.Wildcard)
				continue
			}
			if d.Size <= 0 {
				b.ctx.report(diagnostics.Errorf(diagnostics.ErrDimensionMismatch, d.Token, "array dimension must be positive, got %d", d.Size))
				return
			}
			dims = append(dims, typesystem.Dim(d.Size))
		}
		elem = at.Element
	}
	et := b.ctx.typeExpr(elem)
	if typesystem.IsUnknown(et) {
		return
	}
	tag, ok := typesystem.ScalarTag(et)
	if !ok {
		b.ctx.report(b.ctx.errorf(diagnostics.ErrTypeMismatch, elem, "array element must be a scalar type, got %s", et))
		return
	}
	arr, err := typesystem.NewConcreteArray(tag, dims...)
	if err != nil {
		b.ctx.report(b.ctx.errorf(diagnostics.ErrTypeMismatch, n, "%v", err))
		return
	}
	b.out = arr
}

func (b *typeBuilder) VisitRangeType(n *ast.RangeType) {
	if n.Element == nil {
		b.ctx.malformed(n, "range type without element")
	}
	et := b.ctx.typeExpr(n.Element)
	if typesystem.IsUnknown(et) {
		return
	}
	tag, _ := typesystem.ScalarTag(et)
	r, err := typesystem.NewRange(tag, false, false, false, false)
	if err != nil {
		b.ctx.report(b.ctx.errorf(diagnostics.ErrTypeMismatch, n, "%v", err))
		return
	}
	b.out = r
}
