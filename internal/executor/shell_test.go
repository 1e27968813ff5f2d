package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fontpackgen/internal/dag"
	"github.com/vk/fontpackgen/internal/makefile"
)

func TestExpand(t *testing.T) {
	n := dag.Node{
		ID:   "build/unhinted/unspec-WarPixel-CN-Light.otd",
		Deps: []string{"build/noto/NotoSans-SemiCondensedLight.otd", "build/shs/SourceHanSansSC-Light.otd", "build/noto/NotoSans-SemiCondensedLight.otd"},
	}
	vars := map[string]string{"IDH_JOBS": "4", "V": "1.000"}

	testCases := []struct {
		line     string
		expected string
	}{
		{"otfccbuild $< -o $@", "otfccbuild build/noto/NotoSans-SemiCondensedLight.otd -o build/unhinted/unspec-WarPixel-CN-Light.otd"},
		{"cp $^ $@", "cp build/noto/NotoSans-SemiCondensedLight.otd build/shs/SourceHanSansSC-Light.otd build/unhinted/unspec-WarPixel-CN-Light.otd"},
		{"hint -j ${IDH_JOBS}", "hint -j 4"},
		{"hint -j $(IDH_JOBS)", "hint -j 4"},
		{"echo $V $$HOME", "echo 1.000 $HOME"},
		{"echo ${MISSING}x", "echo x"},
		{"echo ${UNTERMINATED", "echo ${UNTERMINATED"},
		{"echo $", "echo $"},
		{"python merge.py '{\"region\":\"CN\"}'", "python merge.py '{\"region\":\"CN\"}'"},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.expected, Expand(tc.line, n, vars))
		})
	}
}

func TestExpand_NoDeps(t *testing.T) {
	assert.Equal(t, "x  ", Expand("x $< $^", dag.Node{ID: "clean"}, nil))
}

func TestVariables(t *testing.T) {
	env := map[string]string{"IDH_JOBS": "16", "VERSION": "9.9"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	vars := Variables([]makefile.Variable{
		{Name: "VERSION", Value: "1.000"},
		{Name: "IDH_JOBS", Value: "8", Default: true},
	}, lookup)
	assert.Equal(t, map[string]string{"VERSION": "1.000", "IDH_JOBS": "16"}, vars)

	vars = Variables([]makefile.Variable{{Name: "IDH_JOBS", Value: "8", Default: true}}, nil)
	assert.Equal(t, map[string]string{"IDH_JOBS": "8"}, vars)
}

func TestShellRunner(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.txt"), []byte("glyphs"), 0o644))
	r := NewShellRunner(dir, map[string]string{"VERSION": "1.000"})

	t.Run("runs every line", func(t *testing.T) {
		out, err := r.Run(context.Background(), dag.Node{
			ID:       "out/copy.txt",
			Deps:     []string{"in.txt"},
			Commands: []string{"mkdir -p out/", "cp $^ $@", "@echo built ${VERSION}"},
		})
		require.NoError(t, err)
		assert.Equal(t, "built 1.000\n", string(out))

		content, err := os.ReadFile(filepath.Join(dir, "out", "copy.txt"))
		require.NoError(t, err)
		assert.Equal(t, "glyphs", string(content))
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		out, err := r.Run(context.Background(), dag.Node{
			ID:       "fail",
			Commands: []string{"echo before", "exit 3", "echo after"},
		})
		assert.ErrorContains(t, err, `command "exit 3" failed`)
		assert.Equal(t, "before\n", string(out))
	})

	t.Run("ignores failures of dash lines", func(t *testing.T) {
		out, err := r.Run(context.Background(), dag.Node{
			ID:       "clean",
			Commands: []string{"-exit 1", "echo done"},
		})
		require.NoError(t, err)
		assert.Equal(t, "done\n", string(out))
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.Run(ctx, dag.Node{ID: "slow", Commands: []string{"sleep 5"}})
		assert.Error(t, err)
	})
}

func TestRunnerFunc(t *testing.T) {
	var r Runner = RunnerFunc(func(ctx context.Context, n dag.Node) ([]byte, error) {
		return []byte(n.ID), nil
	})
	out, err := r.Run(context.Background(), dag.Node{ID: "all"})
	require.NoError(t, err)
	assert.Equal(t, "all", string(out))
}
