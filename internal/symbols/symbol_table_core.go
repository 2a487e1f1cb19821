package symbols

import (
	"strings"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/constant"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

type ScopeType int

const (
	ScopeGlobal ScopeType = iota // User code top-level
	ScopeFunction
	ScopeBlock
)

func (s ScopeType) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	}
	return "unknown"
}

type Symbol struct {
	Name        string
	Type        typesystem.Type
	Mutable     bool // declared with mut
	Initialized bool // false after `mut x: T = undef` until assigned
	IsParameter bool

	// Value is the folded value of a comptime scalar binding such as
	// `val x = 42`. Later materializations check it for overflow.
	Value constant.Value

	// Elements are the folded elements of a comptime array binding in
	// row-major order, nil when they are not all known.
	Elements []constant.Value

	// Bounds are the folded bounds of a comptime range binding.
	Bounds *RangeValues

	DefinitionNode ast.Node // The AST node where this symbol was defined
}

// RangeValues holds the folded start, end and step of a range. A missing
// or non-constant bound is an invalid value.
type RangeValues struct {
	Start, End, Step constant.Value
}

// IsComptime reports whether the binding still carries a comptime type.
func (s *Symbol) IsComptime() bool {
	return s.Type != nil && s.Type.IsComptime()
}

// Parameter is one declared parameter of a function signature.
type Parameter struct {
	Name    string
	Type    typesystem.Type
	Mutable bool
}

func (p Parameter) String() string {
	if p.Mutable {
		return "mut " + p.Name + ": " + p.Type.String()
	}
	return p.Name + ": " + p.Type.String()
}

// FunctionSignature is registered once in the header pass and never
// modified afterwards. Parameter and return types are always concrete.
type FunctionSignature struct {
	Name       string
	Parameters []Parameter
	Return     typesystem.Type
	Node       *ast.FunctionStatement
}

func (f *FunctionSignature) String() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.String()
	}
	ret := typesystem.Type(typesystem.TVoid)
	if f.Return != nil {
		ret = f.Return
	}
	return "func " + f.Name + "(" + strings.Join(params, ", ") + ") : " + ret.String()
}

// scope is one frame of the scope stack.
type scope struct {
	store     map[string]*Symbol
	outer     *scope
	scopeType ScopeType
}

func newScope(outer *scope, scopeType ScopeType) *scope {
	return &scope{
		store:     make(map[string]*Symbol),
		outer:     outer,
		scopeType: scopeType,
	}
}
