package analyzer

import (
	"github.com/pkg/errors"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/config"
	"github.com/kiinaq/hexen-sub001/internal/constant"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/symbols"
	"github.com/kiinaq/hexen-sub001/internal/token"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// Scope is the symbol table the engine reads and writes. Storage is the
// caller's business; symbols.SymbolTable is the default implementation.
type Scope interface {
	Declare(name string, t typesystem.Type, mutable bool) (*symbols.Symbol, error)
	DeclareParameter(p symbols.Parameter) (*symbols.Symbol, error)
	Lookup(name string) (*symbols.Symbol, bool)
	EnterScope()
	EnterFunctionScope()
	ExitScope()
	ParameterInfo(name string) (symbols.Parameter, bool)
	MarkInitialized(name string)
	DeclareFunction(sig *symbols.FunctionSignature) error
	LookupFunction(name string) (*symbols.FunctionSignature, bool)
}

// Sink receives diagnostics. diagnostics.Bag is the default implementation.
type Sink interface {
	Report(err *diagnostics.DiagnosticError)
}

// Context carries everything one resolver call needs. Nested constructs
// (function bodies, expression blocks) get a derived copy; the scope, sink
// and type map are shared by all copies of one unit.
type Context struct {
	Scope   Scope
	Sink    Sink
	Options *config.Options
	Types   map[ast.Node]typesystem.Type

	// Slots maps every value filling a typed slot (annotated declaration,
	// assignment, argument, return) to the slot type it materialized to.
	Slots map[ast.Node]typesystem.Type

	signatures map[*ast.FunctionStatement]*symbols.FunctionSignature
	fn         *functionState
	block      *blockState
}

// functionState is the enclosing function of a statement.
type functionState struct {
	sig     *symbols.FunctionSignature
	returns int
}

// blockState collects the `->` values of the innermost expression block.
type blockState struct {
	target typesystem.Type
	yields []branch
}

// branch is one value-producing exit of a block or conditional.
type branch struct {
	node ast.Node
	op   operand
}

// operand is a resolved expression: its type plus what the resolver knows
// about it beyond the type.
type operand struct {
	typ typesystem.Type

	// val is the folded value of a comptime scalar.
	val constant.Value

	// explicit marks a `value:Type` conversion at the top of the expression.
	explicit bool

	// bounds holds the folded bounds of a comptime range.
	bounds *rangeBounds

	// elems holds the folded elements of a comptime array in row-major
	// order. It is nil once the elements were checked against a target.
	elems []constant.Value
}

func unknown() operand { return operand{typ: typesystem.TUnknown} }

func typed(t typesystem.Type) operand { return operand{typ: t} }

// NewContext creates a top-level context. A nil opts means defaults.
func NewContext(scope Scope, sink Sink, opts *config.Options) *Context {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	return &Context{
		Scope:   scope,
		Sink:    sink,
		Options: opts,
		Types:   make(map[ast.Node]typesystem.Type),
		Slots:   make(map[ast.Node]typesystem.Type),

		signatures: make(map[*ast.FunctionStatement]*symbols.FunctionSignature),
	}
}

func (ctx *Context) withFunction(sig *symbols.FunctionSignature) *Context {
	c := *ctx
	c.fn = &functionState{sig: sig}
	c.block = nil
	return &c
}

func (ctx *Context) withBlock(target typesystem.Type) *Context {
	c := *ctx
	c.block = &blockState{target: target}
	return &c
}

func (ctx *Context) pointerWidth() int {
	return ctx.Options.PointerWidth
}

func (ctx *Context) report(err *diagnostics.DiagnosticError) {
	if ctx.Sink != nil {
		ctx.Sink.Report(err)
	}
}

func (ctx *Context) errorf(code diagnostics.ErrorCode, node ast.Node, format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.Errorf(code, node.GetToken(), format, args...)
}

// reportCoercion turns a coercion failure into a diagnostic at node. what
// names the site ("argument 1 of f"), and may be empty.
func (ctx *Context) reportCoercion(node ast.Node, err *typesystem.CoercionError, what string) {
	msg := err.Message
	if what != "" {
		msg = what + ": " + msg
	}
	d := diagnostics.NewError(err.Code, node.GetToken(), msg)
	d.Help = err.Help
	d.Note = err.Note
	if err.Shape != nil {
		d.Help = shapeHelp(err.Shape)
	}
	ctx.report(d)
}

func (ctx *Context) record(node ast.Node, t typesystem.Type) {
	if ctx.Types != nil && node != nil {
		ctx.Types[node] = t
	}
}

// malformedAST aborts the unit. It travels as a panic so every deferred
// scope pop on the way up still runs, and is turned back into an error by
// guard.
type malformedAST struct {
	tok token.Token
	err error
}

func (ctx *Context) malformed(node ast.Node, format string, args ...interface{}) {
	m := &malformedAST{err: errors.Errorf(format, args...)}
	if node != nil {
		m.tok = node.GetToken()
	}
	panic(m)
}

// guard runs fn and converts a malformed-AST abort into an error. Any
// other panic keeps unwinding.
func (ctx *Context) guard(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		m, ok := r.(*malformedAST)
		if !ok {
			panic(r)
		}
		err = errors.Wrapf(m.err, "%s at %s", diagnostics.ErrMalformedAST.Name(), m.tok.Position())
	}()
	fn()
	return nil
}

// Analyze resolves expr with an optional target type. Recoverable problems
// go to the sink and come back as UNKNOWN; an error is returned only for a
// malformed AST.
func (ctx *Context) Analyze(expr ast.Expression, target typesystem.Type) (t typesystem.Type, err error) {
	t = typesystem.TUnknown
	err = ctx.guard(func() {
		t = ctx.expr(expr, target).typ
	})
	return t, err
}
