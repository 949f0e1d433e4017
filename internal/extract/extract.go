// Package extract scans a document for fenced code regions.
//
// The scanner is a single-pass line state machine rather than a markdown
// parser: it has to keep the raw bytes of each region intact and report
// unterminated fences with their position, which an AST round-trip loses.
package extract

import (
	"fmt"
	"strings"

	"github.com/sokinpui/mtc/internal/model"
)

// Warning reports a recoverable problem found while scanning.
type Warning struct {
	Line   int // 1-based line in the source document
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// Scanner yields fenced blocks from a document in order. It is a single
// forward pass and cannot be restarted.
type Scanner struct {
	lines    []string
	pos      int
	index    int
	warnings []Warning
}

// NewScanner creates a Scanner over the full document text.
func NewScanner(content string) *Scanner {
	return &Scanner{lines: strings.Split(content, "\n")}
}

// Next returns the next fenced block in the document. The second return
// value is false once the document is exhausted.
func (s *Scanner) Next() (model.RawBlock, bool) {
	for s.pos < len(s.lines) {
		lang, ok := parseOpeningFence(s.lines[s.pos])
		if !ok {
			s.pos++
			continue
		}

		openLine := s.pos
		body, closed := s.collectBody(openLine + 1)
		if !closed {
			s.warnings = append(s.warnings, Warning{
				Line:   openLine + 1,
				Reason: "unterminated fence",
			})
			s.pos = len(s.lines)
			return model.RawBlock{}, false
		}

		block := model.RawBlock{
			Index:         s.index,
			Lang:          lang,
			PrecedingHint: s.precedingHint(openLine),
			Lines:         body,
		}
		s.index++
		return block, true
	}
	return model.RawBlock{}, false
}

// collectBody gathers lines from start until a closing fence. It returns
// the body and whether a closing fence was found; on success the scanner
// position is left just past the closing fence.
func (s *Scanner) collectBody(start int) ([]string, bool) {
	for i := start; i < len(s.lines); i++ {
		if isClosingFence(s.lines[i]) {
			body := make([]string, i-start)
			copy(body, s.lines[start:i])
			s.pos = i + 1
			return body, true
		}
	}
	return nil, false
}

// precedingHint returns the nearest non-blank line directly above the
// opening fence, looking past at most one blank line. LLM output usually
// puts a blank line between a path hint and the fence.
func (s *Scanner) precedingHint(openLine int) string {
	for i, off := openLine-1, 0; i >= 0 && off < 2; i, off = i-1, off+1 {
		line := strings.TrimSpace(s.lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "```") {
			return ""
		}
		return line
	}
	return ""
}

// Warnings returns the recoverable problems seen so far. Call after the
// scan is done to get the full set.
func (s *Scanner) Warnings() []Warning {
	return s.warnings
}

// parseOpeningFence reports whether line opens a fence and returns its
// language tag. A fence is three or more backticks; the tag, if present,
// must follow immediately and contain only letters, digits, and hyphens.
func parseOpeningFence(line string) (string, bool) {
	trimmed := strings.TrimRight(line, " \t\r")
	ticks := 0
	for ticks < len(trimmed) && trimmed[ticks] == '`' {
		ticks++
	}
	if ticks < 3 {
		return "", false
	}
	tag := trimmed[ticks:]
	if tag == "" {
		return "", true
	}
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return "", false
		}
	}
	return tag, true
}

// isClosingFence reports whether line is three or more backticks with no
// other content.
func isClosingFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != '`' {
			return false
		}
	}
	return true
}
