package pipeline

import (
	"github.com/google/uuid"

	"github.com/kiinaq/hexen-sub001/internal/ast"
	"github.com/kiinaq/hexen-sub001/internal/config"
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/symbols"
	"github.com/kiinaq/hexen-sub001/internal/typesystem"
)

// PipelineContext carries one compilation unit through the stages.
type PipelineContext struct {
	UnitID      uuid.UUID
	FilePath    string
	AstRoot     *ast.Program
	SymbolTable *symbols.SymbolTable
	TypeMap     map[ast.Node]typesystem.Type
	SlotMap     map[ast.Node]typesystem.Type // Materialized types at typed slots
	Diagnostics *diagnostics.Bag
	Options     *config.Options
	Errors      []error // Aborts (malformed AST, unreadable options), not diagnostics
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// NewPipelineContext creates the context of a unit for an already built AST.
func NewPipelineContext(file string, program *ast.Program) *PipelineContext {
	return &PipelineContext{
		UnitID:      uuid.New(),
		FilePath:    file,
		AstRoot:     program,
		SymbolTable: symbols.NewSymbolTable(),
		Diagnostics: diagnostics.NewBag(file),
	}
}

// Failed reports whether the unit produced diagnostics or aborted.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0 || (ctx.Diagnostics != nil && ctx.Diagnostics.HasErrors())
}

// Report returns the machine-readable diagnostics of the unit.
func (ctx *PipelineContext) Report() *diagnostics.Report {
	bag := ctx.Diagnostics
	if bag == nil {
		bag = diagnostics.NewBag(ctx.FilePath)
	}
	return diagnostics.NewReport(ctx.UnitID, bag)
}
