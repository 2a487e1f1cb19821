package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BranchPolicy decides what happens when the branches of a conditional all
// stay comptime but disagree on category (comptime_int vs comptime_float)
// and nothing forces them concrete.
type BranchPolicy string

const (
	// BranchDefer combines the branches like any comptime operands:
	// comptime_int and comptime_float give comptime_float.
	BranchDefer BranchPolicy = "defer"
	// BranchStrict reports the disagreement right away.
	BranchStrict BranchPolicy = "strict"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Options configures one analysis run. It is read from hexen.yaml:
//
//	branch_policy: strict
//	pointer_width: 64
//	max_errors: 50
//	color: auto
type Options struct {
	// BranchPolicy governs mixed comptime branch categories.
	// Defaults to "defer".
	BranchPolicy BranchPolicy `yaml:"branch_policy,omitempty"`

	// PointerWidth is the bit width of usize, used for overflow checks of
	// comptime literals. 32 or 64, defaults to 64.
	PointerWidth int `yaml:"pointer_width,omitempty"`

	// MaxErrors caps the diagnostics recorded per unit. 0 means unlimited.
	MaxErrors int `yaml:"max_errors,omitempty"`

	// Color selects colored diagnostic output. Defaults to "auto".
	Color ColorMode `yaml:"color,omitempty"`
}

// DefaultOptions returns the options used when no hexen.yaml exists.
func DefaultOptions() *Options {
	opts := &Options{}
	opts.setDefaults()
	return opts
}

// LoadOptions reads and validates an options file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options %s: %w", path, err)
	}
	return ParseOptions(data, path)
}

// ParseOptions parses options from YAML data. path is used in error messages.
func ParseOptions(data []byte, path string) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := opts.validate(path); err != nil {
		return nil, err
	}
	opts.setDefaults()
	return &opts, nil
}

// FindOptions looks for hexen.yaml in dir and its parents, up to and
// including root. An empty root searches up to the filesystem root. It
// returns an empty path and no error when there is none.
func FindOptions(dir, root string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	stop := ""
	if root != "" {
		if stop, err = filepath.Abs(root); err != nil {
			return "", fmt.Errorf("resolving %s: %w", root, err)
		}
	}
	for {
		candidate := filepath.Join(abs, OptionsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs || abs == stop {
			return "", nil
		}
		abs = parent
	}
}

func (o *Options) validate(path string) error {
	switch o.BranchPolicy {
	case "", BranchDefer, BranchStrict:
	default:
		return fmt.Errorf("%s: branch_policy must be %q or %q, got %q", path, BranchDefer, BranchStrict, o.BranchPolicy)
	}
	switch o.PointerWidth {
	case 0, 32, 64:
	default:
		return fmt.Errorf("%s: pointer_width must be 32 or 64, got %d", path, o.PointerWidth)
	}
	if o.MaxErrors < 0 {
		return fmt.Errorf("%s: max_errors must not be negative, got %d", path, o.MaxErrors)
	}
	switch o.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be auto, always or never, got %q", path, o.Color)
	}
	return nil
}

func (o *Options) setDefaults() {
	if o.BranchPolicy == "" {
		o.BranchPolicy = BranchDefer
	}
	if o.PointerWidth == 0 {
		o.PointerWidth = 64
	}
	if o.Color == "" {
		o.Color = ColorAuto
	}
}
