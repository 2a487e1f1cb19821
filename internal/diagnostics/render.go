package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/kiinaq/hexen-sub001/internal/config"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiBlue   = "\033[34m"
	ansiCyan   = "\033[36m"
	ansiYellow = "\033[33m"
)

// Renderer prints diagnostics in the compiler's text format:
//
//	error[T001]: type mismatch: i32 and i64
//	  --> main.hxn:3:14
//	  = help: convert one operand explicitly: a:i64
//	  = note: ...
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer creates a renderer for w. In ColorAuto mode colors are used
// only when w is a terminal.
func NewRenderer(w io.Writer, mode config.ColorMode) *Renderer {
	return &Renderer{w: w, color: useColor(w, mode)}
}

func useColor(w io.Writer, mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) paint(style, s string) string {
	if !r.color {
		return s
	}
	return style + s + ansiReset
}

// Render writes one diagnostic.
func (r *Renderer) Render(err *DiagnosticError) error {
	head := fmt.Sprintf("error[%s]", err.Code)
	if _, e := fmt.Fprintf(r.w, "%s: %s\n", r.paint(ansiBold+ansiRed, head), r.paint(ansiBold, err.Message)); e != nil {
		return e
	}
	file := err.File
	if file == "" {
		file = "<unit>"
	}
	if _, e := fmt.Fprintf(r.w, "  %s %s:%s\n", r.paint(ansiBlue, "-->"), file, err.Token.Position()); e != nil {
		return e
	}
	if err.Help != "" {
		if _, e := fmt.Fprintf(r.w, "  = %s %s\n", r.paint(ansiCyan, "help:"), err.Help); e != nil {
			return e
		}
	}
	if err.Note != "" {
		if _, e := fmt.Fprintf(r.w, "  = %s %s\n", r.paint(ansiYellow, "note:"), err.Note); e != nil {
			return e
		}
	}
	return nil
}

// RenderAll writes every diagnostic followed by a summary line.
func (r *Renderer) RenderAll(errs []*DiagnosticError) error {
	for _, err := range errs {
		if e := r.Render(err); e != nil {
			return e
		}
	}
	if len(errs) == 0 {
		return nil
	}
	_, e := fmt.Fprintf(r.w, "%s\n", r.paint(ansiBold+ansiRed, fmt.Sprintf("analysis failed with %d error(s)", len(errs))))
	return e
}
