package token

import "fmt"

type TokenType string

// Token is a lexed token. The analyzer only uses it as an opaque source
// location that flows into diagnostics.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

// Position renders "line:col", or "?" for a synthesized token.
func (t Token) Position() string {
	if t.Line == 0 && t.Column == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	STRING TokenType = "STRING"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
	UNDEF  TokenType = "UNDEF"

	ASSIGN    TokenType = "="
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	BACKSLASH TokenType = "\\"
	PERCENT   TokenType = "%"
	BANG      TokenType = "!"

	LT     TokenType = "<"
	GT     TokenType = ">"
	LTE    TokenType = "<="
	GTE    TokenType = ">="
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	AND    TokenType = "&&"
	OR     TokenType = "||"

	COLON      TokenType = ":"
	COMMA      TokenType = ","
	DOT        TokenType = "."
	DOT_DOT    TokenType = ".."
	DOT_DOT_EQ TokenType = "..="
	ARROW      TokenType = "->"
	LPAREN     TokenType = "("
	RPAREN     TokenType = ")"
	LBRACE     TokenType = "{"
	RBRACE     TokenType = "}"
	LBRACKET   TokenType = "["
	RBRACKET   TokenType = "]"
	UNDERSCORE TokenType = "_"

	FUNC   TokenType = "FUNC"
	VAL    TokenType = "VAL"
	MUT    TokenType = "MUT"
	RETURN TokenType = "RETURN"
	IF     TokenType = "IF"
	ELSE   TokenType = "ELSE"
	RANGE  TokenType = "RANGE"
)
