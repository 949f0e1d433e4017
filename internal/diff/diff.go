// Package diff parses unified diff text into structured per-file patches.
package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// LineKind distinguishes the three kinds of hunk body lines.
type LineKind int

const (
	Context LineKind = iota
	Removed
	Added
)

// Line is one hunk body line with its prefix stripped.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a contiguous change region anchored to a 1-indexed range of the
// pre-image file. Context+Removed lines total OldCount; Context+Added
// lines total NewCount.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// FilePatch holds the ordered hunks for one file. OldPath and NewPath
// differ on a rename. An empty OldPath means the patch creates the file;
// an empty NewPath means it deletes the file.
type FilePatch struct {
	OldPath string
	NewPath string
	Hunks   []Hunk
}

// IsCreate reports whether the patch creates a new file.
func (fp FilePatch) IsCreate() bool { return fp.OldPath == "" }

// IsDelete reports whether the patch deletes the file.
func (fp FilePatch) IsDelete() bool { return fp.NewPath == "" }

// IsRename reports whether the patch moves content to a new path.
func (fp FilePatch) IsRename() bool {
	return fp.OldPath != "" && fp.NewPath != "" && fp.OldPath != fp.NewPath
}

// MalformedError reports a structural problem in a diff block.
type MalformedError struct {
	Line   int // 1-based line within the block body
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed diff at line %d: %s", e.Line, e.Reason)
}

const fileHeaderPrefix = "diff --git "

// IsFileHeader reports whether line is a per-file diff header.
func IsFileHeader(line string) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), fileHeaderPrefix)
	if !ok {
		return false
	}
	fields := strings.Fields(rest)
	return len(fields) == 2 &&
		strings.HasPrefix(fields[0], "a/") &&
		strings.HasPrefix(fields[1], "b/")
}

// metadata lines between the file header and the first hunk that are
// recognized and skipped (the ---/+++ pair is handled separately because
// it can refine the target paths).
var metadataPrefixes = []string{
	"index ",
	"old mode ",
	"new mode ",
	"new file mode ",
	"deleted file mode ",
	"similarity index ",
	"dissimilarity index ",
	"copy from ",
	"copy to ",
}

func isMetadata(line string) bool {
	for _, p := range metadataPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Parse turns the body of a diff block into a sequence of file patches.
func Parse(lines []string) ([]FilePatch, error) {
	var patches []FilePatch
	i := 0

	// Anything before the first file header is noise the classifier let
	// through; there must be at least one header.
	for i < len(lines) && !IsFileHeader(lines[i]) {
		i++
	}
	if i == len(lines) {
		return nil, &MalformedError{Line: 1, Reason: "no 'diff --git' header found"}
	}

	for i < len(lines) {
		fp, next, err := parseFilePatch(lines, i)
		if err != nil {
			return nil, err
		}
		patches = append(patches, fp)
		i = next
	}
	return patches, nil
}

// parseFilePatch consumes one file header and everything up to the next
// header (or end of input), returning the patch and the resume position.
func parseFilePatch(lines []string, start int) (FilePatch, int, error) {
	oldPath, newPath, err := parseFileHeader(lines[start], start)
	if err != nil {
		return FilePatch{}, 0, err
	}
	fp := FilePatch{OldPath: oldPath, NewPath: newPath}

	i := start + 1
	for i < len(lines) {
		line := lines[i]
		switch {
		case IsFileHeader(line):
			return fp, i, nil
		case strings.HasPrefix(line, "--- "):
			fp.OldPath = parsePathLine(strings.TrimPrefix(line, "--- "), "a/")
			i++
		case strings.HasPrefix(line, "+++ "):
			fp.NewPath = parsePathLine(strings.TrimPrefix(line, "+++ "), "b/")
			i++
		case strings.HasPrefix(line, "rename from "):
			fp.OldPath = strings.TrimSpace(strings.TrimPrefix(line, "rename from "))
			i++
		case strings.HasPrefix(line, "rename to "):
			fp.NewPath = strings.TrimSpace(strings.TrimPrefix(line, "rename to "))
			i++
		case isMetadata(line):
			i++
		case strings.HasPrefix(line, "@@"):
			hunk, next, err := parseHunk(lines, i)
			if err != nil {
				return FilePatch{}, 0, err
			}
			fp.Hunks = append(fp.Hunks, hunk)
			i = next
		case strings.TrimSpace(line) == "":
			i++
		default:
			return FilePatch{}, 0, &MalformedError{
				Line:   i + 1,
				Reason: fmt.Sprintf("unexpected line %q between hunks", line),
			}
		}
	}
	return fp, i, nil
}

// parseFileHeader extracts the two paths from a 'diff --git a/X b/Y' line,
// stripping the a/ and b/ prefixes the tool itself adds.
func parseFileHeader(line string, pos int) (string, string, error) {
	rest := strings.TrimPrefix(strings.TrimSpace(line), fileHeaderPrefix)
	fields := strings.Fields(rest)
	if len(fields) != 2 || !strings.HasPrefix(fields[0], "a/") || !strings.HasPrefix(fields[1], "b/") {
		return "", "", &MalformedError{
			Line:   pos + 1,
			Reason: fmt.Sprintf("bad file header %q", line),
		}
	}
	return fields[0][len("a/"):], fields[1][len("b/"):], nil
}

// parsePathLine handles a '--- a/path' or '+++ b/path' value. /dev/null
// maps to the empty path: no pre-image for a creation, no post-image for
// a deletion.
func parsePathLine(value, prefix string) string {
	value = strings.TrimSpace(value)
	if value == "/dev/null" {
		return ""
	}
	return strings.TrimPrefix(value, prefix)
}

// parseHunk parses one '@@' header and exactly OldCount+NewCount worth of
// body lines.
func parseHunk(lines []string, start int) (Hunk, int, error) {
	hunk, err := parseHunkHeader(lines[start], start)
	if err != nil {
		return Hunk{}, 0, err
	}

	oldLeft, newLeft := hunk.OldCount, hunk.NewCount
	i := start + 1
	for oldLeft > 0 || newLeft > 0 {
		if i >= len(lines) {
			return Hunk{}, 0, &MalformedError{
				Line:   i,
				Reason: fmt.Sprintf("hunk truncated: %d old and %d new line(s) missing", oldLeft, newLeft),
			}
		}
		line := lines[i]
		if line == `\ No newline at end of file` {
			i++
			continue
		}
		var hl Line
		switch {
		case line == "":
			// Some producers drop the leading space on blank context lines.
			hl = Line{Kind: Context}
		case line[0] == ' ':
			hl = Line{Kind: Context, Text: line[1:]}
		case line[0] == '-':
			hl = Line{Kind: Removed, Text: line[1:]}
		case line[0] == '+':
			hl = Line{Kind: Added, Text: line[1:]}
		default:
			return Hunk{}, 0, &MalformedError{
				Line:   i + 1,
				Reason: fmt.Sprintf("unexpected prefix in hunk body line %q", line),
			}
		}
		switch hl.Kind {
		case Context:
			if oldLeft <= 0 || newLeft <= 0 {
				return Hunk{}, 0, countMismatch(i, hunk)
			}
			oldLeft--
			newLeft--
		case Removed:
			if oldLeft <= 0 {
				return Hunk{}, 0, countMismatch(i, hunk)
			}
			oldLeft--
		case Added:
			if newLeft <= 0 {
				return Hunk{}, 0, countMismatch(i, hunk)
			}
			newLeft--
		}
		hunk.Lines = append(hunk.Lines, hl)
		i++
	}

	// A trailing no-newline marker belongs to this hunk.
	if i < len(lines) && lines[i] == `\ No newline at end of file` {
		i++
	}
	return hunk, i, nil
}

func countMismatch(pos int, h Hunk) error {
	return &MalformedError{
		Line:   pos + 1,
		Reason: fmt.Sprintf("hunk body does not match counts -%d,%d +%d,%d", h.OldStart, h.OldCount, h.NewStart, h.NewCount),
	}
}

// parseHunkHeader parses '@@ -old_start,old_count +new_start,new_count @@'.
// Counts default to 1 when omitted, per the unified diff convention.
// Trailing section text after the closing '@@' is tolerated.
func parseHunkHeader(line string, pos int) (Hunk, error) {
	bad := func() (Hunk, error) {
		return Hunk{}, &MalformedError{Line: pos + 1, Reason: fmt.Sprintf("bad hunk header %q", line)}
	}

	rest, ok := strings.CutPrefix(line, "@@ -")
	if !ok {
		return bad()
	}
	end := strings.Index(rest, " @@")
	if end < 0 {
		return bad()
	}
	ranges := strings.Fields(rest[:end])
	if len(ranges) != 2 || !strings.HasPrefix(ranges[1], "+") {
		return bad()
	}

	oldStart, oldCount, err := parseRange(ranges[0])
	if err != nil {
		return bad()
	}
	newStart, newCount, err := parseRange(ranges[1][1:])
	if err != nil {
		return bad()
	}
	return Hunk{OldStart: oldStart, OldCount: oldCount, NewStart: newStart, NewCount: newCount}, nil
}

func parseRange(s string) (start, count int, err error) {
	count = 1
	if comma := strings.IndexByte(s, ','); comma >= 0 {
		if count, err = strconv.Atoi(s[comma+1:]); err != nil {
			return 0, 0, err
		}
		s = s[:comma]
	}
	if start, err = strconv.Atoi(s); err != nil {
		return 0, 0, err
	}
	if start < 0 || count < 0 {
		return 0, 0, fmt.Errorf("negative range")
	}
	return start, count, nil
}
