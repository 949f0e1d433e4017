package mtc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/mtc/mtc"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestApplyFullListing(t *testing.T) {
	dir := t.TempDir()

	const content = "`web/src/index.js`\n\n```js\nconsole.log(\"hello world\");\n```\n"
	result, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.NoError(t, err)

	require.Equal(t, []string{"web/src/index.js"}, result["Created"])
	assert.Equal(t, "console.log(\"hello world\");\n", readFile(t, dir, "web/src/index.js"))
}

func TestApplyDiffHelloWorld(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hello.txt", "Hello")

	const content = "```diff\ndiff --git a/hello.txt b/hello.txt\n@@ -1,1 +1,1 @@\n-Hello\n+Hello, world!\n```\n"
	result, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"hello.txt"}, result["Modified"])
	assert.Equal(t, "Hello, world!", readFile(t, dir, "hello.txt"))
}

func TestApplyDiffMismatchLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hello.txt", "Goodbye")

	const content = "```diff\ndiff --git a/hello.txt b/hello.txt\n@@ -1,1 +1,1 @@\n-Hello\n+Hello, world!\n```\n"
	_, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `expected "Hello"`)
	assert.Contains(t, err.Error(), `found "Goodbye"`)

	// Re-read to confirm the failed patch wrote nothing.
	assert.Equal(t, "Goodbye", readFile(t, dir, "hello.txt"))
}

// A listing followed by a diff against the same file must compose: the
// diff applies on top of the listing, never the reverse.
func TestApplyListingThenDiffSameFile(t *testing.T) {
	dir := t.TempDir()

	const content = "`a.py`\n\n```python\nx = 1\nprint(x)\n```\n\nNow a fix:\n\n```diff\ndiff --git a/a.py b/a.py\n@@ -1,1 +1,1 @@\n-x = 1\n+x = 2\n```\n"
	result, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py"}, result["Created"])
	assert.Equal(t, []string{"a.py"}, result["Modified"])
	assert.Equal(t, "x = 2\nprint(x)\n", readFile(t, dir, "a.py"))
}

func TestApplyRename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.py", "a = 1\n")

	const content = "```diff\ndiff --git a/x.py b/y.py\nrename from x.py\nrename to y.py\n@@ -1,1 +1,1 @@\n-a = 1\n+a = 2\n```\n"
	result, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"x.py -> y.py"}, result["Renamed"])
	assert.Equal(t, "a = 2\n", readFile(t, dir, "y.py"))
	_, statErr := os.Stat(filepath.Join(dir, "x.py"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApplyDeleteViaDiff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gone.txt", "bye\n")

	const content = "```diff\ndiff --git a/gone.txt b/gone.txt\n--- a/gone.txt\n+++ /dev/null\n@@ -1,1 +0,0 @@\n-bye\n```\n"
	result, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"gone.txt"}, result["Deleted"])
	_, statErr := os.Stat(filepath.Join(dir, "gone.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApplyCreateViaDiff(t *testing.T) {
	dir := t.TempDir()

	const content = "```diff\ndiff --git a/new.txt b/new.txt\n--- /dev/null\n+++ b/new.txt\n@@ -0,0 +1,2 @@\n+first\n+second\n```\n"
	result, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"new.txt"}, result["Created"])
	assert.Equal(t, "first\nsecond\n", readFile(t, dir, "new.txt"))
}

func TestApplyPathTraversalRejected(t *testing.T) {
	dir := t.TempDir()

	const content = "`../../etc/passwd`\n\n```\nroot:x:0:0\n```\n"
	_, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes the project root")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestApplyUnrecognizedBlockSkipped(t *testing.T) {
	dir := t.TempDir()

	const content = "Some explanation:\n\n```python\nprint('no filename anywhere')\n```\n"
	result, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.NoError(t, err)

	require.Len(t, result["Skipped"], 1)
	assert.Contains(t, result["Skipped"][0], "no filename")
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestApplyUnterminatedFenceWarns(t *testing.T) {
	dir := t.TempDir()

	const content = "`a.txt`\n\n```\nok\n```\n\n```python\nnever closed\n"
	result, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, result["Created"])
	require.Len(t, result["Skipped"], 1)
	assert.Contains(t, result["Skipped"][0], "unterminated fence")
}

func TestApplyFailFastStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "wrong\n")

	const content = "```diff\ndiff --git a/a.txt b/a.txt\n@@ -1,1 +1,1 @@\n-right\n+RIGHT\n```\n\n`b.txt`\n\n```\nnever written\n```\n"
	_, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block 1")

	_, statErr := os.Stat(filepath.Join(dir, "b.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApplyKeepGoingRecordsFailureAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "wrong\n")

	const content = "```diff\ndiff --git a/a.txt b/a.txt\n@@ -1,1 +1,1 @@\n-right\n+RIGHT\n```\n\n`b.txt`\n\n```\nstill written\n```\n"
	result, err := mtc.Apply(content, mtc.Config{Root: dir, KeepGoing: true})
	require.NoError(t, err)

	require.Len(t, result["Failed"], 1)
	assert.Contains(t, result["Failed"][0], "block 1")
	assert.Equal(t, []string{"b.txt"}, result["Created"])
	assert.Equal(t, "wrong\n", readFile(t, dir, "a.txt"))
}

func TestApplyMalformedDiffReported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x\n")

	const content = "```diff\ndiff --git a/a.txt b/a.txt\n@@ -1,2 +1,1 @@\n-x\n```\n"
	_, err := mtc.Apply(content, mtc.Config{Root: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed diff")
	assert.Equal(t, "x\n", readFile(t, dir, "a.txt"))
}

func TestApplyEmptyContent(t *testing.T) {
	result, err := mtc.Apply("", mtc.Config{Root: t.TempDir()})
	require.NoError(t, err)
	for _, bucket := range []string{"Created", "Modified", "Failed", "Skipped"} {
		assert.Empty(t, result[bucket])
	}
}
