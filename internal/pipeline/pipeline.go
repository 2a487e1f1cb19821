package pipeline

// Pipeline runs a fixed sequence of stages over one unit.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run passes ctx through every stage in order. Later stages still run
// after an abort so the unit keeps every diagnostic collected so far; a
// stage that cannot work on a partial unit checks ctx itself.
func (p *Pipeline) Run(ctx *PipelineContext) *PipelineContext {
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
