// Package classify decides what each fenced block is: a unified diff, a
// full file listing with a target path, or something to skip.
package classify

import (
	"fmt"
	"path"
	"strings"

	"github.com/sokinpui/mtc/internal/diff"
	"github.com/sokinpui/mtc/internal/fs"
	"github.com/sokinpui/mtc/internal/model"
)

// Kind is the classification of one block.
type Kind int

const (
	Unrecognized Kind = iota
	DiffCandidate
	FileCandidate
)

// Result carries the classification and, for a FileCandidate, the listing
// with its declaration line already stripped.
type Result struct {
	Kind    Kind
	Listing model.FileListing
	Reason  string // set for Unrecognized
}

// match is one convention's opinion about a block.
type match struct {
	convention string
	path       string
	stripFirst bool // declaration line was inside the fence
}

// Classifier applies the configured convention rules to raw blocks.
type Classifier struct {
	rules Rules
}

// New creates a Classifier with the given rules.
func New(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Classify routes a block. A declared target that escapes the project
// root is an error, never a silent accept.
func (c *Classifier) Classify(block model.RawBlock) (Result, error) {
	if diff.IsFileHeader(block.FirstNonBlank()) {
		return Result{Kind: DiffCandidate}, nil
	}

	matches := c.findDeclarations(block)
	if len(matches) == 0 {
		return Result{Kind: Unrecognized, Reason: "no filename declaration found"}, nil
	}

	// Conventions that disagree on the target mean the block is
	// ambiguous; skipping beats guessing.
	first := matches[0]
	for _, m := range matches[1:] {
		if m.path != first.path {
			return Result{
				Kind: Unrecognized,
				Reason: fmt.Sprintf("conventions disagree on target: %s says %q, %s says %q",
					first.convention, first.path, m.convention, m.path),
			}, nil
		}
	}

	if err := fs.CheckRelPath(first.path); err != nil {
		return Result{}, err
	}

	lines := block.Lines
	if first.stripFirst {
		lines = stripFirstContentLine(lines)
	}
	return Result{
		Kind:    FileCandidate,
		Listing: model.FileListing{Path: first.path, Lines: lines},
	}, nil
}

// findDeclarations runs every enabled convention and collects each one's
// extracted path.
func (c *Classifier) findDeclarations(block model.RawBlock) []match {
	var matches []match
	for _, name := range c.rules.Conventions {
		switch name {
		case ConventionCommentPath:
			if p, ok := c.commentPath(block); ok {
				matches = append(matches, match{convention: name, path: p, stripFirst: true})
			}
		case ConventionFileDirective:
			if p, ok := c.fileDirective(block); ok {
				matches = append(matches, match{convention: name, path: p, stripFirst: true})
			}
		case ConventionHintLine:
			if p, ok := c.hintLine(block); ok {
				matches = append(matches, match{convention: name, path: p})
			}
		}
	}
	return matches
}

// commentPath matches a first body line that is a lone comment naming a
// path, e.g. '// src/main.go' or '# scripts/run.py'.
func (c *Classifier) commentPath(block model.RawBlock) (string, bool) {
	line := strings.TrimSpace(block.FirstNonBlank())
	for _, leader := range c.rules.CommentLeaders {
		rest, ok := strings.CutPrefix(line, leader)
		if !ok {
			continue
		}
		switch leader {
		case "/*":
			rest = strings.TrimSuffix(strings.TrimSpace(rest), "*/")
		case "<!--":
			rest = strings.TrimSuffix(strings.TrimSpace(rest), "-->")
		}
		if p := c.asPath(rest); p != "" {
			return p, true
		}
	}
	return "", false
}

// fileDirective matches the original tool's explicit forms:
// '# File: path' and 'filename: path'.
func (c *Classifier) fileDirective(block model.RawBlock) (string, bool) {
	line := strings.TrimSpace(block.FirstNonBlank())
	for _, directive := range []string{"# File:", "File:", "filename:"} {
		if rest, ok := strings.CutPrefix(line, directive); ok {
			if p := c.asPath(rest); p != "" {
				return p, true
			}
		}
	}
	return "", false
}

// hintLine matches a path declared on the line preceding the fence.
func (c *Classifier) hintLine(block model.RawBlock) (string, bool) {
	if block.PrecedingHint == "" {
		return "", false
	}
	for _, candidate := range hintCandidates(block.PrecedingHint) {
		if p := c.asPath(candidate); p != "" {
			return p, true
		}
	}
	return "", false
}

// asPath normalizes a candidate token and reports whether it plausibly
// names a file: a single token containing a separator or carrying a
// recognized extension.
func (c *Classifier) asPath(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":")
	if s == "" || strings.ContainsAny(s, " \t") {
		return ""
	}
	if strings.Contains(s, "/") {
		return s
	}
	ext := path.Ext(s)
	for _, allowed := range c.rules.Extensions {
		if ext == allowed {
			return s
		}
	}
	return ""
}

// stripFirstContentLine drops the declaration line (and a blank line
// directly after it) from a listing body.
func stripFirstContentLine(lines []string) []string {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rest := lines[i+1:]
		if len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
			rest = rest[1:]
		}
		return rest
	}
	return lines
}
