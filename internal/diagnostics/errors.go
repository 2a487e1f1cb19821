package diagnostics

import (
	"fmt"
	"strings"

	"github.com/kiinaq/hexen-sub001/internal/token"
)

type ErrorCode string

// Error taxonomy. Everything except ErrMalformedAST is recoverable at
// expression granularity.
const (
	ErrTypeMismatch          ErrorCode = "T001" // distinct concrete types without a conversion marker
	ErrOverflow              ErrorCode = "T002" // comptime literal outside the target's range
	ErrDimensionMismatch     ErrorCode = "T003" // array or range shape
	ErrArityMismatch         ErrorCode = "T004" // call argument count
	ErrUnsupportedConversion ErrorCode = "T005" // no conversion path exists, e.g. float -> usize index
	ErrMissingAnnotation     ErrorCode = "T006" // comptime value without enough context
	ErrScope                 ErrorCode = "T007" // undeclared, duplicate or uninitialized identifier
	ErrMutability            ErrorCode = "T008" // assignment to an immutable binding
	ErrRangeShape            ErrorCode = "T009" // step placement, float step requirement, zero step
	ErrMalformedAST          ErrorCode = "T100" // required child missing; aborts the unit
)

var codeNames = map[ErrorCode]string{
	ErrTypeMismatch:          "type mismatch",
	ErrOverflow:              "overflow",
	ErrDimensionMismatch:     "dimension mismatch",
	ErrArityMismatch:         "arity mismatch",
	ErrUnsupportedConversion: "unsupported conversion",
	ErrMissingAnnotation:     "missing annotation",
	ErrScope:                 "scope error",
	ErrMutability:            "mutability error",
	ErrRangeShape:            "invalid range",
	ErrMalformedAST:          "malformed AST",
}

// Name is the human-readable category of the code.
func (c ErrorCode) Name() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "error"
}

// DiagnosticError is one reported problem with its source location.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
	Help    string // exact syntax that resolves the problem
	Note    string // why no conversion exists, for categorical rules
}

// NewError creates a diagnostic at tok.
func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

// Errorf is NewError with a formatted message.
func Errorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

// WithHelp sets the suggestion line.
func (e *DiagnosticError) WithHelp(help string) *DiagnosticError {
	e.Help = help
	return e
}

// WithNote sets the explanation line.
func (e *DiagnosticError) WithNote(note string) *DiagnosticError {
	e.Note = note
	return e
}

func (e *DiagnosticError) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File + ":")
	}
	fmt.Fprintf(&sb, "%s: error [%s]: %s", e.Token.Position(), e.Code, e.Message)
	if e.Help != "" {
		sb.WriteString("\n  help: " + e.Help)
	}
	if e.Note != "" {
		sb.WriteString("\n  note: " + e.Note)
	}
	return sb.String()
}
