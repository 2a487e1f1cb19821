// symbols/symbol_table.go - Main symbol table entry point
//
// The symbol table is split into focused files:
// - symbol_table_core.go: Symbol, Parameter, FunctionSignature and scope frames
// - symbol_table_operations.go: declare, lookup, scope push/pop, parameters
// - symbol_table_functions.go: function signature registry

package symbols

import "github.com/pkg/errors"

// ErrAlreadyDeclared is returned (wrapped) by Declare, DeclareParameter and
// DeclareFunction when the name already exists in the target scope.
var ErrAlreadyDeclared = errors.New("already declared in this scope")

// ErrNoScope is returned by ExitScope when only the global scope is left.
var ErrNoScope = errors.New("no scope to exit")

// IsAlreadyDeclared reports whether err was caused by a duplicate declaration.
func IsAlreadyDeclared(err error) bool {
	return errors.Cause(err) == ErrAlreadyDeclared
}
