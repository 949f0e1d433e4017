package model

import "strings"

// RawBlock is one fenced region lifted from the source document.
type RawBlock struct {
	Index         int    // position in the document, 0-based
	Lang          string // fence language tag, "" when absent
	PrecedingHint string // non-blank line just before the opening fence
	Lines         []string
}

// FirstNonBlank returns the first body line with visible content, or "".
func (b RawBlock) FirstNonBlank() string {
	for _, line := range b.Lines {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// FileListing is a complete replacement (or creation) of one file.
type FileListing struct {
	Path  string
	Lines []string
}

// Summary holds the results of a run for display.
type Summary struct {
	Created  []string
	Modified []string
	Renamed  []string
	Deleted  []string
	Skipped  []string
	Failed   []string
	Message  string
}

// Clean reports whether the run had no skipped blocks and no failures.
func (s Summary) Clean() bool {
	return len(s.Skipped) == 0 && len(s.Failed) == 0
}
