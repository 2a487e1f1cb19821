package analyzer

import (
	"fmt"
	"strings"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/config"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/symbols"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// declaration handles `val`/`mut` bindings.
//
//	val x = v        keeps a comptime v comptime, with its folded value
//	val x: T = v     materializes v to T
//	mut x: T = v     materializes v to T
//	mut x = v        only for an already concrete v
//	mut x: T = undef declares x uninitialized
func (ctx *Context) declaration(n *ast.DeclarationStatement) {
	if n.Name == nil || n.Value == nil {
		ctx.malformed(n, "declaration without name or value")
	}
	name := n.Name.Value
	keyword := config.ValKeyword
	if n.Mutable {
		keyword = config.MutKeyword
	}

	var annot typesystem.Type
	if n.TypeAnnotation != nil {
		annot = ctx.typeExpr(n.TypeAnnotation)
		if typesystem.IsVoid(annot) {
			ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.TypeAnnotation, "variable %s cannot have type void", name))
			annot = typesystem.TUnknown
		}
	}

	if _, isUndef := n.Value.(*ast.UndefLiteral); isUndef {
		ctx.undefDeclaration(n, annot)
		return
	}

	op := ctx.expr(n.Value, annot)
	var typ typesystem.Type
	switch {
	case annot != nil:
		typ = ctx.materialize(n.Value, op, annot, "")
	case typesystem.IsVoid(op.typ):
		ctx.report(ctx.errorf(diagnostics.ErrTypeMismatch, n.Value, "cannot bind %s to a void value", name))
		typ = typesystem.TUnknown
	case n.Mutable && op.typ.IsComptime():
		suggestion := suggestType(op.typ)
		ctx.report(ctx.errorf(diagnostics.ErrMissingAnnotation, n.Name, "mut %s needs a type annotation: a mutable variable cannot hold %s", name, op.typ).
			WithHelp(fmt.Sprintf("annotate the type, e.g. `%s %s: %s = ...`", keyword, name, suggestion)))
		typ = typesystem.TUnknown
	default:
		typ = op.typ
	}

	sym := ctx.declare(n.Name, typ, n.Mutable)
	if sym != nil && typ.IsComptime() {
		sym.Value = op.val
		sym.Elements = op.elems
		if b := op.bounds; b != nil {
			sym.Bounds = &symbols.RangeValues{Start: b.start, End: b.end, Step: b.step}
		}
	}
}

func (ctx *Context) undefDeclaration(n *ast.DeclarationStatement, annot typesystem.Type) {
	name := n.Name.Value
	switch {
	case annot == nil:
		ctx.report(ctx.errorf(diagnostics.ErrMissingAnnotation, n.Value, "undef requires a type annotation").
			WithHelp(fmt.Sprintf("declare it as `mut %s: T = undef`", name)))
		ctx.declare(n.Name, typesystem.TUnknown, n.Mutable)
	case !n.Mutable:
		ctx.report(ctx.errorf(diagnostics.ErrMutability, n.Value, "val %s = undef can never be initialized", name).
			WithHelp(fmt.Sprintf("declare it as `mut %s: %s = undef`", name, annot)))
		ctx.declare(n.Name, annot, false)
	default:
		if sym := ctx.declare(n.Name, annot, true); sym != nil {
			sym.Initialized = false
		}
	}
	if annot != nil {
		ctx.record(n.Value, annot)
	}
}

// declare adds name to the innermost scope and reports duplicates.
func (ctx *Context) declare(id *ast.Identifier, t typesystem.Type, mutable bool) *symbols.Symbol {
	sym, err := ctx.Scope.Declare(id.Value, t, mutable)
	if err != nil {
		if symbols.IsAlreadyDeclared(err) {
			ctx.report(ctx.errorf(diagnostics.ErrScope, id, "%s is already declared in this scope", id.Value).
				WithHelp("assign to the existing variable, or pick another name"))
		} else {
			ctx.report(ctx.errorf(diagnostics.ErrScope, id, "cannot declare %s: %v", id.Value, err))
		}
		return nil
	}
	sym.DefinitionNode = id
	ctx.record(id, t)
	return sym
}

// suggestType names the concrete type a comptime value would usually
// materialize to, for help lines.
func suggestType(t typesystem.Type) string {
	defaultTag := func(tag typesystem.Tag) typesystem.Tag {
		if tag == typesystem.ComptimeFloat {
			return typesystem.F64
		}
		return typesystem.I32
	}
	switch tt := t.(type) {
	case typesystem.Scalar:
		return defaultTag(tt.Tag).String()
	case typesystem.ComptimeArray:
		var sb strings.Builder
		for _, d := range tt.Dims {
			fmt.Fprintf(&sb, "[%d]", d)
		}
		return sb.String() + defaultTag(tt.Element).String()
	case typesystem.ComptimeRange:
		return config.RangeTypeName + "[" + defaultTag(tt.Element).String() + "]"
	}
	return t.String()
}
