package ast

import (
	"strconv"

	"github.com/kiinaq/hexen-sub001/internal/config"
	"github.com/kiinaq/hexen-sub001/internal/token"
)

// Builder constructs nodes with synthetic but distinct source positions:
// every node gets the next column of the current line. Parsers do not use
// it; it exists for embedding the engine and for tests.
type Builder struct {
	line int
	col  int
}

func NewBuilder() *Builder {
	return &Builder{line: 1}
}

// Line moves the following nodes to a fresh line.
func (b *Builder) Line() *Builder {
	b.line++
	b.col = 0
	return b
}

func (b *Builder) tok(t token.TokenType, lexeme string) token.Token {
	b.col++
	return token.Token{Type: t, Lexeme: lexeme, Line: b.line, Column: b.col}
}

func (b *Builder) Program(file string, stmts ...Statement) *Program {
	return &Program{File: file, Statements: stmts}
}

// --- Expressions ---

func (b *Builder) Int(text string) *IntegerLiteral {
	return &IntegerLiteral{Token: b.tok(token.INT, text), Value: text}
}

func (b *Builder) Float(text string) *FloatLiteral {
	return &FloatLiteral{Token: b.tok(token.FLOAT, text), Value: text}
}

func (b *Builder) Bool(v bool) *BooleanLiteral {
	t := token.TRUE
	if !v {
		t = token.FALSE
	}
	return &BooleanLiteral{Token: b.tok(t, strconv.FormatBool(v)), Value: v}
}

func (b *Builder) Str(s string) *StringLiteral {
	return &StringLiteral{Token: b.tok(token.STRING, strconv.Quote(s)), Value: s}
}

func (b *Builder) Undef() *UndefLiteral {
	return &UndefLiteral{Token: b.tok(token.UNDEF, config.UndefKeyword)}
}

func (b *Builder) Ident(name string) *Identifier {
	return &Identifier{Token: b.tok(token.IDENT, name), Value: name}
}

func (b *Builder) Prefix(op string, right Expression) *PrefixExpression {
	return &PrefixExpression{Token: b.tok(token.TokenType(op), op), Operator: op, Right: right}
}

func (b *Builder) Infix(left Expression, op string, right Expression) *InfixExpression {
	return &InfixExpression{Token: b.tok(token.TokenType(op), op), Left: left, Operator: op, Right: right}
}

// Conv builds `value:target`.
func (b *Builder) Conv(value Expression, target Type) *ConversionExpression {
	return &ConversionExpression{Token: b.tok(token.COLON, ":"), Value: value, Target: target}
}

func (b *Builder) Array(elems ...Expression) *ArrayLiteral {
	if elems == nil {
		elems = []Expression{}
	}
	return &ArrayLiteral{Token: b.tok(token.LBRACKET, "["), Elements: elems}
}

// Range builds `start..end:step`; any bound may be nil.
func (b *Builder) Range(start, end, step Expression) *RangeExpression {
	return &RangeExpression{Token: b.tok(token.DOT_DOT, config.ExclusiveRangeOp), Start: start, End: end, Step: step}
}

// RangeIncl builds `start..=end:step`.
func (b *Builder) RangeIncl(start, end, step Expression) *RangeExpression {
	return &RangeExpression{Token: b.tok(token.DOT_DOT_EQ, config.InclusiveRangeOp), Start: start, End: end, Step: step, Inclusive: true}
}

func (b *Builder) Index(left, index Expression) *IndexExpression {
	return &IndexExpression{Token: b.tok(token.LBRACKET, "["), Left: left, Index: index}
}

func (b *Builder) Member(left Expression, name string) *MemberExpression {
	tok := b.tok(token.DOT, ".")
	return &MemberExpression{Token: tok, Left: left, Member: b.Ident(name)}
}

func (b *Builder) Call(name string, args ...Expression) *CallExpression {
	fn := b.Ident(name)
	return &CallExpression{Token: b.tok(token.LPAREN, "("), Function: fn, Arguments: args}
}

func (b *Builder) Block(stmts ...Statement) *BlockExpression {
	open := b.tok(token.LBRACE, "{")
	return &BlockExpression{Token: open, Statements: stmts, RBraceToken: b.tok(token.RBRACE, "}")}
}

// If builds a conditional; alt is nil, a *BlockExpression or an
// *IfExpression.
func (b *Builder) If(cond Expression, then *BlockExpression, alt Expression) *IfExpression {
	return &IfExpression{Token: b.tok(token.IF, "if"), Condition: cond, Consequence: then, Alternative: alt}
}

// --- Types ---

func (b *Builder) Named(name string) *NamedType {
	return &NamedType{Token: b.tok(token.IDENT, name), Name: name}
}

// ArrayOf builds `[d0][d1]...elem`. A negative size stands for `[_]`.
func (b *Builder) ArrayOf(elem Type, dims ...int) *ArrayType {
	at := &ArrayType{Token: b.tok(token.LBRACKET, "["), Element: elem}
	for _, d := range dims {
		if d < 0 {
			at.Dims = append(at.Dims, &ArrayDim{Token: b.tok(token.UNDERSCORE, config.WildcardDim), Wildcard: true})
			continue
		}
		at.Dims = append(at.Dims, &ArrayDim{Token: b.tok(token.INT, strconv.Itoa(d)), Size: d})
	}
	return at
}

func (b *Builder) RangeOf(elem Type) *RangeType {
	return &RangeType{Token: b.tok(token.RANGE, config.RangeTypeName), Element: elem}
}

// --- Statements ---

// Val builds `val name: typ = value`; typ may be nil.
func (b *Builder) Val(name string, typ Type, value Expression) *DeclarationStatement {
	return &DeclarationStatement{Token: b.tok(token.VAL, config.ValKeyword), Name: b.Ident(name), TypeAnnotation: typ, Value: value}
}

// Mut builds `mut name: typ = value`; typ may be nil.
func (b *Builder) Mut(name string, typ Type, value Expression) *DeclarationStatement {
	return &DeclarationStatement{Token: b.tok(token.MUT, config.MutKeyword), Mutable: true, Name: b.Ident(name), TypeAnnotation: typ, Value: value}
}

func (b *Builder) Assign(name string, value Expression) *AssignStatement {
	id := b.Ident(name)
	return &AssignStatement{Token: b.tok(token.ASSIGN, "="), Name: id, Value: value}
}

// Return builds `return value`; value may be nil.
func (b *Builder) Return(value Expression) *ReturnStatement {
	return &ReturnStatement{Token: b.tok(token.RETURN, "return"), Value: value}
}

func (b *Builder) Yield(value Expression) *YieldStatement {
	return &YieldStatement{Token: b.tok(token.ARROW, "->"), Value: value}
}

func (b *Builder) Expr(e Expression) *ExpressionStatement {
	var tok token.Token
	if e != nil {
		tok = e.GetToken()
	}
	return &ExpressionStatement{Token: tok, Expression: e}
}

func (b *Builder) Param(name string, typ Type) *Parameter {
	id := b.Ident(name)
	return &Parameter{Token: id.Token, Name: id, Type: typ}
}

func (b *Builder) MutParam(name string, typ Type) *Parameter {
	p := b.Param(name, typ)
	p.Mutable = true
	return p
}

// Func builds `func name(params) : ret = body`; ret may be nil for void.
func (b *Builder) Func(name string, params []*Parameter, ret Type, body *BlockExpression) *FunctionStatement {
	return &FunctionStatement{Token: b.tok(token.FUNC, "func"), Name: b.Ident(name), Parameters: params, ReturnType: ret, Body: body}
}
