package analyzer

import (
	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/config"
	"github.com/kiinaq/hexen-sub001/internal/constant"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// resolver visits one expression node. Children are resolved through
// ctx.expr so every node gets its own target and its type recorded.
type resolver struct {
	ctx    *Context
	target typesystem.Type
	out    operand
}

// expr resolves an expression bottom-up with target as the top-down
// context. A nil expression is a malformed AST.
func (ctx *Context) expr(e ast.Expression, target typesystem.Type) operand {
	if e == nil {
		ctx.malformed(nil, "missing expression")
	}
	r := &resolver{ctx: ctx, target: target, out: unknown()}
	e.Accept(r)
	if r.out.typ == nil {
		r.out.typ = typesystem.TUnknown
	}
	ctx.record(e, r.out.typ)
	return r.out
}

func (r *resolver) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	v, err := constant.ParseInt(n.Value)
	if err != nil {
		r.ctx.malformed(n, "%v", err)
	}
	r.out = operand{typ: typesystem.TComptimeInt, val: v}
}

func (r *resolver) VisitFloatLiteral(n *ast.FloatLiteral) {
	v, err := constant.ParseFloat(n.Value)
	if err != nil {
		r.ctx.malformed(n, "%v", err)
	}
	r.out = operand{typ: typesystem.TComptimeFloat, val: v}
}

func (r *resolver) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	r.out = typed(typesystem.TBool)
}

func (r *resolver) VisitStringLiteral(n *ast.StringLiteral) {
	r.out = typed(typesystem.TString)
}

// undef is handled by declarations; anywhere else it is misplaced.
func (r *resolver) VisitUndefLiteral(n *ast.UndefLiteral) {
	r.ctx.report(r.ctx.errorf(diagnostics.ErrMissingAnnotation, n,
		"undef is only allowed as the initializer of an annotated mut declaration").
		WithHelp("declare the variable as `mut name: T = undef`"))
	r.out = unknown()
}

func (r *resolver) VisitIdentifier(n *ast.Identifier) {
	sym, ok := r.ctx.Scope.Lookup(n.Value)
	if !ok {
		d := r.ctx.errorf(diagnostics.ErrScope, n, "undeclared identifier %s", n.Value)
		if _, isFunc := r.ctx.Scope.LookupFunction(n.Value); isFunc {
			d.WithHelp("functions are not values; call it as `" + n.Value + "(...)`")
		}
		r.ctx.report(d)
		r.out = unknown()
		return
	}
	if !sym.Initialized {
		r.ctx.report(r.ctx.errorf(diagnostics.ErrScope, n, "%s is read before it is initialized", n.Value).
			WithHelp("assign a value to " + n.Value + " before using it"))
		r.out = typed(sym.Type)
		return
	}
	r.out = operand{typ: sym.Type}
	if sym.IsComptime() {
		r.out.val = sym.Value
		r.out.elems = sym.Elements
		if b := sym.Bounds; b != nil {
			// Overflow in a preserved range is reported where it is used.
			r.out.bounds = &rangeBounds{
				start: b.Start, end: b.End, step: b.Step,
				startNode: n, endNode: n, stepNode: n,
			}
		}
	}
}

func (r *resolver) VisitPrefixExpression(n *ast.PrefixExpression) {
	r.out = r.ctx.prefix(n, r.target)
}

func (r *resolver) VisitInfixExpression(n *ast.InfixExpression) {
	r.out = r.ctx.infix(n, r.target)
}

func (r *resolver) VisitConversionExpression(n *ast.ConversionExpression) {
	r.out = r.ctx.conversion(n)
}

func (r *resolver) VisitArrayLiteral(n *ast.ArrayLiteral) {
	r.out = r.ctx.arrayLiteral(n, r.target)
}

func (r *resolver) VisitRangeExpression(n *ast.RangeExpression) {
	r.out = r.ctx.rangeExpr(n, r.target)
}

func (r *resolver) VisitIndexExpression(n *ast.IndexExpression) {
	r.out = r.ctx.index(n)
}

func (r *resolver) VisitMemberExpression(n *ast.MemberExpression) {
	r.out = r.ctx.member(n)
}

func (r *resolver) VisitCallExpression(n *ast.CallExpression) {
	r.out = r.ctx.callExpr(n)
}

func (r *resolver) VisitBlockExpression(n *ast.BlockExpression) {
	r.out = r.ctx.blockExpr(n, r.target)
}

func (r *resolver) VisitIfExpression(n *ast.IfExpression) {
	r.out = r.ctx.ifExpr(n, r.target)
}

// conversion resolves `value:Type`. The value is resolved without context,
// then converted. Comptime values are range-checked against the target;
// float values are truncated first, as the conversion does.
func (ctx *Context) conversion(n *ast.ConversionExpression) operand {
	if n.Target == nil {
		ctx.malformed(n, "conversion without target type")
	}
	target := ctx.typeExpr(n.Target)
	src := ctx.expr(n.Value, nil)
	if typesystem.IsUnknown(target) || typesystem.IsUnknown(src.typ) {
		return operand{typ: target, explicit: true}
	}
	res, err := typesystem.Convert(src.typ, target)
	if err != nil {
		ctx.reportCoercion(n, err, "")
		return operand{typ: target, explicit: true}
	}
	if tag, ok := typesystem.ScalarTag(target); ok && src.val.IsValid() {
		ctx.checkFits(n.Value, src.val, tag)
	}
	if src.typ.IsComptime() {
		switch t := res.(type) {
		case typesystem.ConcreteArray:
			ctx.checkElementsFit(n.Value, src.elems, t.Element)
		case typesystem.Range:
			if src.bounds != nil {
				ctx.checkBoundsFit(src.bounds, t.Element)
			}
			ctx.requireFloatStep(n, t)
		}
	}
	return operand{typ: res, explicit: true}
}

// member resolves property access. Arrays expose `length`.
func (ctx *Context) member(n *ast.MemberExpression) operand {
	if n.Member == nil {
		ctx.malformed(n, "property access without property name")
	}
	left := ctx.expr(n.Left, nil)
	if typesystem.IsUnknown(left.typ) {
		return unknown()
	}
	if n.Member.Value == config.LengthProperty {
		switch t := left.typ.(type) {
		case typesystem.ComptimeArray:
			return operand{typ: typesystem.TComptimeInt, val: constant.Int(int64(t.Dims[0]))}
		case typesystem.ConcreteArray:
			return typed(typesystem.TUsize)
		}
	}
	ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.Member, "%s has no property %s", left.typ, n.Member.Value))
	return unknown()
}
