package symbols

import (
	"github.com/pkg/errors"

	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// SymbolTable is an in-memory scope stack. It is not safe for concurrent
// use; one compilation unit owns one table.
type SymbolTable struct {
	current   *scope
	depth     int
	functions map[string]*FunctionSignature
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		current:   newScope(nil, ScopeGlobal),
		functions: make(map[string]*FunctionSignature),
	}
}

// EnterScope pushes a block scope.
func (s *SymbolTable) EnterScope() {
	s.push(ScopeBlock)
}

// EnterFunctionScope pushes the scope holding a function's parameters and
// top-level body statements.
func (s *SymbolTable) EnterFunctionScope() {
	s.push(ScopeFunction)
}

func (s *SymbolTable) push(scopeType ScopeType) {
	s.current = newScope(s.current, scopeType)
	s.depth++
}

// ExitScope pops the innermost scope and drops its symbols. Popping the
// global scope is a programming error and panics.
func (s *SymbolTable) ExitScope() {
	if s.current.outer == nil {
		panic(ErrNoScope)
	}
	s.current = s.current.outer
	s.depth--
}

// Depth is the number of scopes above the global scope.
func (s *SymbolTable) Depth() int {
	return s.depth
}

// Declare adds an initialized binding to the innermost scope. Shadowing an
// outer binding is allowed; redeclaring in the same scope is not.
func (s *SymbolTable) Declare(name string, t typesystem.Type, mutable bool) (*Symbol, error) {
	if _, exists := s.current.store[name]; exists {
		return nil, errors.Wrapf(ErrAlreadyDeclared, "%s", name)
	}
	sym := &Symbol{Name: name, Type: t, Mutable: mutable, Initialized: true}
	s.current.store[name] = sym
	return sym, nil
}

// DeclareParameter declares p in the innermost scope, which must be a
// function scope.
func (s *SymbolTable) DeclareParameter(p Parameter) (*Symbol, error) {
	if s.current.scopeType != ScopeFunction {
		return nil, errors.Errorf("parameter %s declared in a %s scope", p.Name, s.current.scopeType)
	}
	sym, err := s.Declare(p.Name, p.Type, p.Mutable)
	if err != nil {
		return nil, err
	}
	sym.IsParameter = true
	return sym, nil
}

// Lookup finds the nearest binding of name.
func (s *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for sc := s.current; sc != nil; sc = sc.outer {
		if sym, ok := sc.store[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// ParameterInfo returns the parameter behind the nearest binding of name.
func (s *SymbolTable) ParameterInfo(name string) (Parameter, bool) {
	sym, ok := s.Lookup(name)
	if !ok || !sym.IsParameter {
		return Parameter{}, false
	}
	return Parameter{Name: sym.Name, Type: sym.Type, Mutable: sym.Mutable}, true
}

// MarkInitialized records that the nearest binding of name now holds a
// value.
func (s *SymbolTable) MarkInitialized(name string) {
	if sym, ok := s.Lookup(name); ok {
		sym.Initialized = true
	}
}
