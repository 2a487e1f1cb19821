package ast

import (
	"github.com/kiinaq/hexen-sub001/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Expression is a Node that produces a value. The set of expressions is
// closed: every implementation appears in ExprVisitor, so a visitor that
// misses a kind does not compile.
type Expression interface {
	Node
	Accept(v ExprVisitor)
	expressionNode()
}

// Statement is a Node executed for its effect.
type Statement interface {
	Node
	Accept(v StmtVisitor)
	statementNode()
}

// ExprVisitor has one method per expression kind.
type ExprVisitor interface {
	VisitIntegerLiteral(*IntegerLiteral)
	VisitFloatLiteral(*FloatLiteral)
	VisitBooleanLiteral(*BooleanLiteral)
	VisitStringLiteral(*StringLiteral)
	VisitUndefLiteral(*UndefLiteral)
	VisitIdentifier(*Identifier)
	VisitPrefixExpression(*PrefixExpression)
	VisitInfixExpression(*InfixExpression)
	VisitConversionExpression(*ConversionExpression)
	VisitArrayLiteral(*ArrayLiteral)
	VisitRangeExpression(*RangeExpression)
	VisitIndexExpression(*IndexExpression)
	VisitMemberExpression(*MemberExpression)
	VisitCallExpression(*CallExpression)
	VisitBlockExpression(*BlockExpression)
	VisitIfExpression(*IfExpression)
}

// StmtVisitor has one method per statement kind.
type StmtVisitor interface {
	VisitDeclarationStatement(*DeclarationStatement)
	VisitAssignStatement(*AssignStatement)
	VisitReturnStatement(*ReturnStatement)
	VisitYieldStatement(*YieldStatement)
	VisitExpressionStatement(*ExpressionStatement)
	VisitFunctionStatement(*FunctionStatement)
}

// Program is the root node of one compilation unit.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// Identifier represents an identifier, e.g., a variable name.
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) Accept(v ExprVisitor)  { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// DeclarationStatement binds a name: `val x = 1`, `val x: i32 = 1`,
// `mut y: f64 = undef`.
type DeclarationStatement struct {
	Token          token.Token // 'val' or 'mut'
	Mutable        bool
	Name           *Identifier
	TypeAnnotation Type // Optional
	Value          Expression
}

func (ds *DeclarationStatement) Accept(v StmtVisitor)  { v.VisitDeclarationStatement(ds) }
func (ds *DeclarationStatement) statementNode()        {}
func (ds *DeclarationStatement) TokenLiteral() string  { return ds.Token.Lexeme }
func (ds *DeclarationStatement) GetToken() token.Token { return ds.Token }

// AssignStatement reassigns an existing mutable binding: `x = value`.
type AssignStatement struct {
	Token token.Token // the '=' token
	Name  *Identifier
	Value Expression
}

func (as *AssignStatement) Accept(v StmtVisitor)  { v.VisitAssignStatement(as) }
func (as *AssignStatement) statementNode()        {}
func (as *AssignStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token { return as.Token }

// ReturnStatement leaves the enclosing function.
type ReturnStatement struct {
	Token token.Token // The 'return' token
	Value Expression  // Optional return value
}

func (rs *ReturnStatement) Accept(v StmtVisitor)  { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// YieldStatement produces the value of an expression block: `-> value`.
type YieldStatement struct {
	Token token.Token // The '->' token
	Value Expression
}

func (ys *YieldStatement) Accept(v StmtVisitor)  { v.VisitYieldStatement(ys) }
func (ys *YieldStatement) statementNode()        {}
func (ys *YieldStatement) TokenLiteral() string  { return ys.Token.Lexeme }
func (ys *YieldStatement) GetToken() token.Token { return ys.Token }

// ExpressionStatement evaluates an expression for its effect, e.g. a call.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) Accept(v StmtVisitor)  { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// FunctionStatement declares a function.
// func name(a: i32, mut b: [_]f64) : i32 = { ... }
type FunctionStatement struct {
	Token      token.Token // The 'func' token
	Name       *Identifier
	Parameters []*Parameter
	ReturnType Type // nil means void
	Body       *BlockExpression
}

type Parameter struct {
	Token   token.Token
	Name    *Identifier
	Type    Type
	Mutable bool
}

func (fs *FunctionStatement) Accept(v StmtVisitor)  { v.VisitFunctionStatement(fs) }
func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }
