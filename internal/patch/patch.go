// Package patch applies parsed file patches to pre-image content.
//
// Application is exact: every context and removed line must byte-match
// the pre-image at its position. There is no offset search and no partial
// application; any mismatch aborts the whole file patch and the caller's
// pre-image slice is never modified.
package patch

import (
	"fmt"

	"github.com/sokinpui/mtc/internal/diff"
)

// MismatchError reports a context or removed line that did not match the
// pre-image at the expected position.
type MismatchError struct {
	File     string
	Hunk     int // 1-based hunk index within the file patch
	Line     int // 1-based pre-image line number
	Expected string
	Found    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("patch mismatch in %s, hunk %d, line %d: expected %q, found %q",
		e.File, e.Hunk, e.Line, e.Expected, e.Found)
}

const endOfFile = "<end of file>"

// Apply runs fp's hunks in order against the pre-image lines and returns
// the post-image. current is read only.
func Apply(fp diff.FilePatch, current []string) ([]string, error) {
	out := make([]string, 0, len(current))
	cursor := 0

	for i, hunk := range fp.Hunks {
		start := hunk.OldStart - 1
		if hunk.OldCount == 0 && hunk.OldStart == 0 {
			// Pure insertions anchor to the line they follow, so git
			// writes -0,0 for an insertion before the first line.
			start = 0
		}
		if start < cursor {
			return nil, fmt.Errorf("hunk %d of %s overlaps the previous hunk", i+1, fp.OldPath)
		}
		if start > len(current) {
			return nil, &MismatchError{
				File:     fp.OldPath,
				Hunk:     i + 1,
				Line:     hunk.OldStart,
				Expected: fmt.Sprintf("a file with at least %d line(s)", hunk.OldStart),
				Found:    fmt.Sprintf("%d line(s)", len(current)),
			}
		}

		// Content the diff chose not to repeat is copied through
		// unchanged, never assumed.
		out = append(out, current[cursor:start]...)
		cursor = start

		for _, line := range hunk.Lines {
			switch line.Kind {
			case diff.Context, diff.Removed:
				if cursor >= len(current) {
					return nil, &MismatchError{
						File:     fp.OldPath,
						Hunk:     i + 1,
						Line:     cursor + 1,
						Expected: line.Text,
						Found:    endOfFile,
					}
				}
				if current[cursor] != line.Text {
					return nil, &MismatchError{
						File:     fp.OldPath,
						Hunk:     i + 1,
						Line:     cursor + 1,
						Expected: line.Text,
						Found:    current[cursor],
					}
				}
				if line.Kind == diff.Context {
					out = append(out, line.Text)
				}
				cursor++
			case diff.Added:
				out = append(out, line.Text)
			}
		}
	}

	out = append(out, current[cursor:]...)
	return out, nil
}
