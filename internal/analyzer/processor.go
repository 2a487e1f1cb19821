package analyzer

import (
	"github.com/kiinaq/hexen-sub001/internal/diagnostics"
	"github.com/kiinaq/hexen-sub001/internal/pipeline"
	"github.com/kiinaq/hexen-sub001/internal/symbols"
)

// SemanticAnalyzerProcessor runs the engine as a pipeline stage.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	if ctx.SymbolTable == nil {
		ctx.SymbolTable = symbols.NewSymbolTable()
	}
	if ctx.Diagnostics == nil {
		ctx.Diagnostics = diagnostics.NewBag(ctx.FilePath)
		if ctx.Options != nil {
			ctx.Diagnostics.MaxErrors = ctx.Options.MaxErrors
		}
	}

	analyzer := New(ctx.SymbolTable, ctx.Diagnostics, ctx.Options)
	if err := analyzer.AnalyzeHeaders(ctx.AstRoot); err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	if err := analyzer.AnalyzeBodies(ctx.AstRoot); err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}

	ctx.TypeMap = analyzer.TypeMap // Export resolved types to context
	ctx.SlotMap = analyzer.SlotMap
	return ctx
}
