package symbols

import "github.com/pkg/errors"

// DeclareFunction registers a signature. Functions live in a single
// unit-wide namespace regardless of the current scope.
func (s *SymbolTable) DeclareFunction(sig *FunctionSignature) error {
	if sig == nil {
		return errors.New("nil function signature")
	}
	if _, exists := s.functions[sig.Name]; exists {
		return errors.Wrapf(ErrAlreadyDeclared, "function %s", sig.Name)
	}
	s.functions[sig.Name] = sig
	return nil
}

func (s *SymbolTable) LookupFunction(name string) (*FunctionSignature, bool) {
	sig, ok := s.functions[name]
	return sig, ok
}
