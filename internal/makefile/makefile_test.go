package makefile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fontpackgen/internal/dag"
)

func sampleGraph(t *testing.T) *dag.Graph {
	t.Helper()
	g := dag.New()
	require.NoError(t, g.Put(dag.Node{ID: "all", Deps: []string{"out/a.ttf"}, Phony: true}))
	require.NoError(t, g.Put(dag.Node{
		ID:       "out/a.ttf",
		Deps:     []string{"build/nowar/gbk-a.ttf"},
		Commands: []string{"mkdir -p out/", "cp $^ $@"},
	}))
	require.NoError(t, g.Put(dag.Node{ID: "hint2-300", Phony: true}))
	return g
}

func TestWrite(t *testing.T) {
	vars := []Variable{
		{Name: "VERSION", Value: "1.000"},
		{Name: "IDH_JOBS", Value: "8", Default: true},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, vars, sampleGraph(t)))

	expected := "VERSION=1.000\n" +
		"IDH_JOBS?=8\n" +
		"all: out/a.ttf\n" +
		"out/a.ttf: build/nowar/gbk-a.ttf\n" +
		"\tmkdir -p out/\n" +
		"\tcp $^ $@\n" +
		"hint2-300: \n"
	assert.Equal(t, expected, buf.String())
}

func TestWrite_DoesNotValidate(t *testing.T) {
	g := dag.New()
	require.NoError(t, g.Put(dag.Node{ID: "a", Deps: []string{"b"}}))
	require.NoError(t, g.Put(dag.Node{ID: "b", Deps: []string{"a"}}))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, g))
	assert.Equal(t, "a: b\nb: a\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesErrors(t *testing.T) {
	err := Write(failingWriter{}, []Variable{{Name: "A", Value: "b"}}, sampleGraph(t))
	assert.ErrorContains(t, err, "disk full")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Makefile")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteFile(path, []Variable{{Name: "VERSION", Value: "2.000"}}, sampleGraph(t)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "VERSION=2.000\n")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "Makefile")
	err := WriteFile(path, nil, sampleGraph(t))
	assert.ErrorContains(t, err, "failed to create temporary file")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
