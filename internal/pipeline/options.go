package pipeline

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kiinaq/hexen-sub001/internal/config"
)

// OptionsProcessor loads hexen.yaml from the unit's directory or one of
// its parents. Options already set on the context win.
type OptionsProcessor struct {
	// Root is the last directory searched. Empty means the filesystem root.
	Root string
}

func (op *OptionsProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Options == nil {
		opts, err := loadOptionsFor(ctx.FilePath, op.Root)
		if err != nil {
			ctx.Errors = append(ctx.Errors, err)
			opts = config.DefaultOptions()
		}
		ctx.Options = opts
	}
	if ctx.Diagnostics != nil {
		ctx.Diagnostics.MaxErrors = ctx.Options.MaxErrors
	}
	return ctx
}

func loadOptionsFor(file, root string) (*config.Options, error) {
	if file == "" {
		return config.DefaultOptions(), nil
	}
	path, err := config.FindOptions(filepath.Dir(file), root)
	if err != nil {
		return nil, errors.Wrap(err, "locating options")
	}
	if path == "" {
		return config.DefaultOptions(), nil
	}
	opts, err := config.LoadOptions(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return opts, nil
}
