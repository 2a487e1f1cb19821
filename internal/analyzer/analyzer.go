package analyzer

import (
	"github.com/pkg/errors"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/config"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

type AnalysisMode int

const (
	ModeFull    AnalysisMode = iota // Headers then bodies
	ModeHeaders                     // Signature registration only
	ModeBodies                      // Statements and function bodies; headers must be done
)

// Analyzer performs semantic analysis of one compilation unit.
type Analyzer struct {
	ctx     *Context
	TypeMap map[ast.Node]typesystem.Type // Resolved type of every analyzed node
	SlotMap map[ast.Node]typesystem.Type // Materialized type of every value filling a typed slot
}

// New creates an Analyzer reporting to sink. A nil opts means defaults.
func New(scope Scope, sink Sink, opts *config.Options) *Analyzer {
	ctx := NewContext(scope, sink, opts)
	return &Analyzer{ctx: ctx, TypeMap: ctx.Types, SlotMap: ctx.Slots}
}

// Context returns the top-level context, for resolving single expressions
// against the unit's scope.
func (a *Analyzer) Context() *Context {
	return a.ctx
}

// Analyze runs the header pass then the body pass.
func (a *Analyzer) Analyze(program *ast.Program) error {
	return a.run(program, ModeFull)
}

// AnalyzeHeaders registers every top-level function signature.
func (a *Analyzer) AnalyzeHeaders(program *ast.Program) error {
	return a.run(program, ModeHeaders)
}

// AnalyzeBodies analyzes top-level statements and function bodies in
// source order.
func (a *Analyzer) AnalyzeBodies(program *ast.Program) error {
	return a.run(program, ModeBodies)
}

func (a *Analyzer) run(program *ast.Program, mode AnalysisMode) error {
	if program == nil {
		return errors.New("nil program")
	}
	err := a.ctx.guard(func() {
		if mode == ModeFull || mode == ModeHeaders {
			for _, stmt := range program.Statements {
				if fn, ok := stmt.(*ast.FunctionStatement); ok {
					a.ctx.declareFunction(fn)
				}
			}
		}
		if mode == ModeFull || mode == ModeBodies {
			a.ctx.statements(program.Statements)
		}
	})
	if err != nil && program.File != "" {
		return errors.WithMessage(err, program.File)
	}
	return err
}
