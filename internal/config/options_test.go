package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, BranchDefer, opts.BranchPolicy)
	assert.Equal(t, 64, opts.PointerWidth)
	assert.Equal(t, 0, opts.MaxErrors)
	assert.Equal(t, ColorAuto, opts.Color)
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions([]byte("branch_policy: strict\npointer_width: 32\nmax_errors: 10\n"), "hexen.yaml")
	require.NoError(t, err)
	assert.Equal(t, BranchStrict, opts.BranchPolicy)
	assert.Equal(t, 32, opts.PointerWidth)
	assert.Equal(t, 10, opts.MaxErrors)
	assert.Equal(t, ColorAuto, opts.Color, "unset fields get defaults")
}

func TestParseOptionsRejects(t *testing.T) {
	tests := map[string]string{
		"policy":     "branch_policy: lenient\n",
		"width":      "pointer_width: 16\n",
		"negative":   "max_errors: -1\n",
		"color":      "color: sometimes\n",
		"not yaml":   "branch_policy: [\n",
		"wrong type": "pointer_width: wide\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOptions([]byte(data), "hexen.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "hexen.yaml")
		})
	}
}

func TestFindAndLoadOptions(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindOptions(nested, root)
	require.NoError(t, err)
	assert.Empty(t, path, "the search stops at root")

	want := filepath.Join(root, OptionsFileName)
	require.NoError(t, os.WriteFile(want, []byte("branch_policy: strict\n"), 0o644))

	path, err = FindOptions(nested, root)
	require.NoError(t, err)
	assert.Equal(t, want, path)

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, BranchStrict, opts.BranchPolicy)

	_, err = LoadOptions(filepath.Join(root, "missing.yaml"))
	assert.Error(t, err)
}
