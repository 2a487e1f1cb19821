package ast

import (
	"github.com/kiinaq/hexen-sub001/internal/token"
)

// IntegerLiteral keeps the literal text; its value is folded by the
// analyzer with arbitrary precision.
type IntegerLiteral struct {
	Token token.Token
	Value string
}

func (il *IntegerLiteral) Accept(v ExprVisitor)  { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type FloatLiteral struct {
	Token token.Token
	Value string
}

func (fl *FloatLiteral) Accept(v ExprVisitor)  { v.VisitFloatLiteral(fl) }
func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) Accept(v ExprVisitor)  { v.VisitBooleanLiteral(bl) }
func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v ExprVisitor)  { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// UndefLiteral is `undef`: an explicitly uninitialized value.
type UndefLiteral struct {
	Token token.Token
}

func (ul *UndefLiteral) Accept(v ExprVisitor)  { v.VisitUndefLiteral(ul) }
func (ul *UndefLiteral) expressionNode()       {}
func (ul *UndefLiteral) TokenLiteral() string  { return ul.Token.Lexeme }
func (ul *UndefLiteral) GetToken() token.Token { return ul.Token }

// PrefixExpression represents a prefix operation, e.g., -5 or !done.
type PrefixExpression struct {
	Token    token.Token // The prefix token, e.g. !
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v ExprVisitor)  { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression represents an infix operation, e.g., a + b.
type InfixExpression struct {
	Token    token.Token // The operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v ExprVisitor)  { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// ConversionExpression is the explicit conversion marker `value:Type`.
type ConversionExpression struct {
	Token  token.Token // The ':' token
	Value  Expression
	Target Type
}

func (ce *ConversionExpression) Accept(v ExprVisitor)  { v.VisitConversionExpression(ce) }
func (ce *ConversionExpression) expressionNode()       {}
func (ce *ConversionExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *ConversionExpression) GetToken() token.Token { return ce.Token }

// ArrayLiteral is `[e1, e2, ...]`; elements may themselves be array
// literals for multidimensional arrays.
type ArrayLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) Accept(v ExprVisitor)  { v.VisitArrayLiteral(al) }
func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// RangeExpression represents `a..b`, `a..=b`, `a..b:step`, `a..`, `..b`
// and `..`. Any bound may be nil.
type RangeExpression struct {
	Token     token.Token // The '..' or '..=' token
	Start     Expression
	End       Expression
	Step      Expression
	Inclusive bool
}

func (re *RangeExpression) Accept(v ExprVisitor)  { v.VisitRangeExpression(re) }
func (re *RangeExpression) expressionNode()       {}
func (re *RangeExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *RangeExpression) GetToken() token.Token { return re.Token }

// IndexExpression is `arr[i]` or the slice `arr[range]`.
type IndexExpression struct {
	Token token.Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) Accept(v ExprVisitor)  { v.VisitIndexExpression(ie) }
func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// MemberExpression represents property access, e.g. arr.length.
type MemberExpression struct {
	Token  token.Token // The '.' token
	Left   Expression
	Member *Identifier
}

func (me *MemberExpression) Accept(v ExprVisitor)  { v.VisitMemberExpression(me) }
func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token { return me.Token }

// CallExpression calls a named function.
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  *Identifier
	Arguments []Expression
}

func (ce *CallExpression) Accept(v ExprVisitor)  { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// BlockExpression is `{ stmts... }`. Used as an expression its value is
// the final YieldStatement; as a function body it is a statement list.
type BlockExpression struct {
	Token       token.Token // {
	Statements  []Statement
	RBraceToken token.Token // }
}

func (be *BlockExpression) Accept(v ExprVisitor)  { v.VisitBlockExpression(be) }
func (be *BlockExpression) expressionNode()       {}
func (be *BlockExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BlockExpression) GetToken() token.Token { return be.Token }

// IfExpression is a conditional with value-producing branches. Else-if
// chains are nested IfExpressions in Alternative.
type IfExpression struct {
	Token       token.Token // if
	Condition   Expression
	Consequence *BlockExpression
	Alternative Expression // *BlockExpression, *IfExpression or nil
}

func (ie *IfExpression) Accept(v ExprVisitor)  { v.VisitIfExpression(ie) }
func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token { return ie.Token }
