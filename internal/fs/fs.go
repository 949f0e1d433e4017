// Package fs provides the project root all file access goes through.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TraversalError reports a declared target path that escapes the project
// root or is otherwise unusable as a relative target.
type TraversalError struct {
	Path string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("path %q escapes the project root", e.Path)
}

// CheckRelPath validates a declared target path: it must be non-empty,
// relative, and free of traversal segments.
func CheckRelPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &TraversalError{Path: path}
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return &TraversalError{Path: path}
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return &TraversalError{Path: path}
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return &TraversalError{Path: path}
		}
	}
	return nil
}

// Root is an explicit project root. Declared paths resolve against it and
// are rejected when they escape it.
type Root struct {
	dir string
}

// NewRoot creates a Root at dir, defaulting to the working directory.
func NewRoot(dir string) (*Root, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid project root %q: %w", dir, err)
	}
	return &Root{dir: abs}, nil
}

// Dir returns the absolute root directory.
func (r *Root) Dir() string {
	return r.dir
}

// Resolve turns a declared relative path into an absolute one under the
// root, or fails with a TraversalError.
func (r *Root) Resolve(rel string) (string, error) {
	if err := CheckRelPath(rel); err != nil {
		return "", err
	}
	abs := filepath.Join(r.dir, filepath.FromSlash(rel))
	if inside, err := filepath.Rel(r.dir, abs); err != nil || strings.HasPrefix(inside, "..") {
		return "", &TraversalError{Path: rel}
	}
	return abs, nil
}

// ReadLines reads a file under the root and splits it into lines. The
// returned bool reports whether the file exists; a missing file is not an
// error. Splitting on "\n" keeps the final-newline byte round-trippable:
// a trailing newline shows up as a trailing empty element.
func (r *Root) ReadLines(rel string) ([]string, bool, error) {
	abs, err := r.Resolve(rel)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("could not read %s: %w", rel, err)
	}
	return strings.Split(string(data), "\n"), true, nil
}

// Exists reports whether rel names an existing file under the root.
func (r *Root) Exists(rel string) bool {
	abs, err := r.Resolve(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}
