package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRelPath(t *testing.T) {
	valid := []string{"a.txt", "src/main.py", "deep/nested/dir/file.go", "./a.txt"}
	for _, p := range valid {
		assert.NoError(t, CheckRelPath(p), p)
	}

	invalid := []string{"", "  ", "/etc/passwd", "../escape.txt", "../../etc/passwd", "a/../../b.txt", "src/../../../x"}
	for _, p := range invalid {
		err := CheckRelPath(p)
		require.Error(t, err, p)
		var te *TraversalError
		assert.ErrorAs(t, err, &te, p)
	}
}

func TestRootResolve(t *testing.T) {
	dir := t.TempDir()
	root, err := NewRoot(dir)
	require.NoError(t, err)

	abs, err := root.Resolve("src/a.go")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src", "a.go"), abs)

	_, err = root.Resolve("../outside.txt")
	var te *TraversalError
	require.ErrorAs(t, err, &te)
}

func TestRootReadLines(t *testing.T) {
	dir := t.TempDir()
	root, err := NewRoot(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("Hello\nworld\n"), 0644))

	lines, exists, err := root.ReadLines("hello.txt")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{"Hello", "world", ""}, lines)

	_, exists, err = root.ReadLines("missing.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRootReadLinesNoTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	root, err := NewRoot(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "raw.txt"), []byte("no newline"), 0644))
	lines, exists, err := root.ReadLines("raw.txt")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{"no newline"}, lines)
}
