package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/config"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/symbols"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// fixture is one compilation unit under test. Nodes are built with the
// embedded builder, then run once.
type fixture struct {
	*ast.Builder
	table *symbols.SymbolTable
	bag   *diagnostics.Bag
	an    *Analyzer
}

func newFixture(opts *config.Options) *fixture {
	table := symbols.NewSymbolTable()
	bag := diagnostics.NewBag("test.hxn")
	return &fixture{
		Builder: ast.NewBuilder(),
		table:   table,
		bag:     bag,
		an:      New(table, bag, opts),
	}
}

func strictOptions() *config.Options {
	opts := config.DefaultOptions()
	opts.BranchPolicy = config.BranchStrict
	return opts
}

func (f *fixture) run(t *testing.T, stmts ...ast.Statement) {
	t.Helper()
	require.NoError(t, f.an.Analyze(f.Program("test.hxn", stmts...)))
	assert.Equal(t, 0, f.table.Depth(), "scope stack must be balanced")
}

func (f *fixture) clean(t *testing.T) {
	t.Helper()
	assert.Empty(t, f.bag.Errors(), dump(f.bag.Errors()))
}

// single asserts exactly one diagnostic with the given code and returns it.
func (f *fixture) single(t *testing.T, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := f.bag.Errors()
	require.Len(t, errs, 1, dump(errs))
	assert.Equal(t, code, errs[0].Code, errs[0].Error())
	return errs[0]
}

func (f *fixture) codes() []diagnostics.ErrorCode {
	return f.bag.Codes()
}

// symbolType returns the type of a binding still visible at top level.
func (f *fixture) symbolType(t *testing.T, name string) typesystem.Type {
	t.Helper()
	sym, ok := f.table.Lookup(name)
	require.True(t, ok, "symbol %s", name)
	return sym.Type
}

// nodeType returns the type recorded for node during analysis.
func (f *fixture) nodeType(t *testing.T, node ast.Node) typesystem.Type {
	t.Helper()
	typ, ok := f.an.TypeMap[node]
	require.True(t, ok, "no type recorded for %s", node.TokenLiteral())
	return typ
}

// slotType returns the type node materialized to in a typed slot.
func (f *fixture) slotType(t *testing.T, node ast.Node) typesystem.Type {
	t.Helper()
	typ, ok := f.an.SlotMap[node]
	require.True(t, ok, "%s fills no typed slot", node.TokenLiteral())
	return typ
}

func dump(errs []*diagnostics.DiagnosticError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

func assertType(t *testing.T, want string, got typesystem.Type) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want, got.String())
}
