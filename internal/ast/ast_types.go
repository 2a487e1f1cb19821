package ast

import (
	"github.com/kiinaq/hexen-sub001/internal/token"
)

// --- Type System Nodes ---

// Type represents a type annotation node: i32, [3][_]f64, range[usize].
type Type interface {
	Node
	Accept(v TypeVisitor)
	typeNode()
}

type TypeVisitor interface {
	VisitNamedType(*NamedType)
	VisitArrayType(*ArrayType)
	VisitRangeType(*RangeType)
}

// NamedType represents a scalar type name like 'i32' or 'bool'.
type NamedType struct {
	Token token.Token
	Name  string
}

func (nt *NamedType) Accept(v TypeVisitor)  { v.VisitNamedType(nt) }
func (nt *NamedType) typeNode()             {}
func (nt *NamedType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token { return nt.Token }

// ArrayDim is one `[N]` or `[_]` of an array type.
type ArrayDim struct {
	Token    token.Token
	Size     int
	Wildcard bool
}

// ArrayType represents `[N]T`, `[_]T` and their multidimensional forms;
// Dims are listed outermost first.
type ArrayType struct {
	Token   token.Token // The first '[' token
	Dims    []*ArrayDim
	Element Type
}

func (at *ArrayType) Accept(v TypeVisitor)  { v.VisitArrayType(at) }
func (at *ArrayType) typeNode()             {}
func (at *ArrayType) TokenLiteral() string  { return at.Token.Lexeme }
func (at *ArrayType) GetToken() token.Token { return at.Token }

// RangeType represents `range[T]`.
type RangeType struct {
	Token   token.Token // The 'range' token
	Element Type
}

func (rt *RangeType) Accept(v TypeVisitor)  { v.VisitRangeType(rt) }
func (rt *RangeType) typeNode()             {}
func (rt *RangeType) TokenLiteral() string  { return rt.Token.Lexeme }
func (rt *RangeType) GetToken() token.Token { return rt.Token }
