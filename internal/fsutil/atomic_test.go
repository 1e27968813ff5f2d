package fsutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "fresh\n")
		return err
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileAtomic_RenderError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("boom")
	})
	assert.ErrorContains(t, err, "boom")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stale", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPrepareFile_CommitAndDiscard(t *testing.T) {
	dir := t.TempDir()
	kept := filepath.Join(dir, "Makefile")
	dropped := filepath.Join(dir, "names.json")
	render := func(s string) func(w io.Writer) error {
		return func(w io.Writer) error {
			_, err := io.WriteString(w, s)
			return err
		}
	}

	p1, err := PrepareFile(kept, render("all:\n"))
	require.NoError(t, err)
	p2, err := PrepareFile(dropped, render("{}\n"))
	require.NoError(t, err)
	assert.Equal(t, kept, p1.Path())
	assert.NoFileExists(t, kept, "nothing is visible before commit")
	assert.NoFileExists(t, dropped)

	require.NoError(t, p1.Commit())
	p2.Discard()

	content, err := os.ReadFile(kept)
	require.NoError(t, err)
	assert.Equal(t, "all:\n", string(content))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "discarded file left behind")
}

func TestCommitAll(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) *PendingFile {
		p, err := PrepareFile(filepath.Join(dir, name), func(w io.Writer) error {
			_, err := io.WriteString(w, name)
			return err
		})
		require.NoError(t, err)
		return p
	}

	require.NoError(t, CommitAll(write("a"), write("b")))

	for _, name := range []string{"a", "b"} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, name, string(content))
	}
}

func TestCommitAll_DiscardsRemainingOnFailure(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	p1, err := PrepareFile(blocked, func(w io.Writer) error { return nil })
	require.NoError(t, err)
	p2, err := PrepareFile(filepath.Join(dir, "after"), func(w io.Writer) error { return nil })
	require.NoError(t, err)
	// A non-empty directory at the destination makes the rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0o755))

	err = CommitAll(p1, p2)

	assert.ErrorContains(t, err, "failed to move")
	assert.NoFileExists(t, filepath.Join(dir, "after"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files left behind")
}
