package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/mtc/internal/model"
)

func collect(t *testing.T, content string) ([]model.RawBlock, []Warning) {
	t.Helper()
	s := NewScanner(content)
	var blocks []model.RawBlock
	for {
		b, ok := s.Next()
		if !ok {
			break
		}
		blocks = append(blocks, b)
	}
	return blocks, s.Warnings()
}

func TestScannerSingleBlock(t *testing.T) {
	blocks, warnings := collect(t, "prose before\n```go\npackage main\n```\nprose after\n")
	require.Len(t, blocks, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, "go", blocks[0].Lang)
	assert.Equal(t, []string{"package main"}, blocks[0].Lines)
	assert.Equal(t, 0, blocks[0].Index)
}

func TestScannerNoLanguageTag(t *testing.T) {
	blocks, _ := collect(t, "```\nhello\n```\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, "", blocks[0].Lang)
}

func TestScannerLongerFence(t *testing.T) {
	blocks, _ := collect(t, "````markdown\nsome text\n````\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, "markdown", blocks[0].Lang)
	assert.Equal(t, []string{"some text"}, blocks[0].Lines)
}

func TestScannerInvalidTagIsNotAFence(t *testing.T) {
	// A fence annotation with spaces or '=' is not a valid opening fence.
	blocks, _ := collect(t, "``` file=x.txt\ncontent\n```\n")
	assert.Empty(t, blocks)
}

func TestScannerBackToBackBlocks(t *testing.T) {
	input := "```go\na\n```\n```py\nb\n```\n"
	blocks, warnings := collect(t, input)
	require.Len(t, blocks, 2)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"a"}, blocks[0].Lines)
	assert.Equal(t, []string{"b"}, blocks[1].Lines)
	assert.Equal(t, 1, blocks[1].Index)
}

func TestScannerPrecedingHint(t *testing.T) {
	input := "**src/main.py**\n\n```python\nprint('hi')\n```\n"
	blocks, _ := collect(t, input)
	require.Len(t, blocks, 1)
	assert.Equal(t, "**src/main.py**", blocks[0].PrecedingHint)
}

func TestScannerHintImmediatelyBeforeFence(t *testing.T) {
	input := "`src/a.go`\n```go\npackage a\n```\n"
	blocks, _ := collect(t, input)
	require.Len(t, blocks, 1)
	assert.Equal(t, "`src/a.go`", blocks[0].PrecedingHint)
}

func TestScannerHintTooFarAway(t *testing.T) {
	input := "src/a.go\n\n\nunrelated\n```go\npackage a\n```\n"
	blocks, _ := collect(t, input)
	require.Len(t, blocks, 1)
	assert.Equal(t, "unrelated", blocks[0].PrecedingHint)
}

func TestScannerPreviousFenceIsNotAHint(t *testing.T) {
	input := "```go\na\n```\n```go\nb\n```\n"
	blocks, _ := collect(t, input)
	require.Len(t, blocks, 2)
	assert.Equal(t, "", blocks[1].PrecedingHint)
}

func TestScannerUnterminatedFence(t *testing.T) {
	input := "```go\na\n```\nprose\n```py\nnever closed\n"
	blocks, warnings := collect(t, input)
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"a"}, blocks[0].Lines)
	require.Len(t, warnings, 1)
	assert.Equal(t, 5, warnings[0].Line)
	assert.Contains(t, warnings[0].Reason, "unterminated")
}

func TestScannerEmptyBlock(t *testing.T) {
	blocks, _ := collect(t, "```\n```\n")
	require.Len(t, blocks, 1)
	assert.Empty(t, blocks[0].Lines)
}

func TestScannerPreservesWhitespace(t *testing.T) {
	blocks, _ := collect(t, "```\n  indented\t\n```\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"  indented\t"}, blocks[0].Lines)
}
