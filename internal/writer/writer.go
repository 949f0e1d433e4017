// Package writer persists planned content to disk. It is the only place
// in the pipeline that produces filesystem output.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sokinpui/mtc/internal/fs"
	"github.com/sokinpui/mtc/internal/model"
)

// Writer writes listings and patched content under a project root,
// creating parent directories as needed. It never reformats: callers
// supply exact line content.
type Writer struct {
	root *fs.Root
}

// New creates a Writer rooted at root.
func New(root *fs.Root) *Writer {
	return &Writer{root: root}
}

// WriteListing writes a complete file listing, overwriting any previous
// version without backup. Listings come from fence bodies, which carry no
// final newline of their own, so one is appended.
func (w *Writer) WriteListing(listing model.FileListing) error {
	content := strings.Join(listing.Lines, "\n")
	if content != "" {
		content += "\n"
	}
	return w.writeBytes(listing.Path, []byte(content))
}

// WriteLines writes patched content exactly as computed; the final-newline
// byte is whatever the pre-image and hunks produced.
func (w *Writer) WriteLines(rel string, lines []string) error {
	return w.writeBytes(rel, []byte(strings.Join(lines, "\n")))
}

// Rename writes the patched content to newRel and removes oldRel only
// after the write succeeds, so a failed rename leaves the old file
// intact.
func (w *Writer) Rename(oldRel, newRel string, lines []string) error {
	if err := w.WriteLines(newRel, lines); err != nil {
		return err
	}
	return w.Remove(oldRel)
}

// Remove deletes a file under the root.
func (w *Writer) Remove(rel string) error {
	abs, err := w.root.Resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove %s: %w", rel, err)
	}
	return nil
}

func (w *Writer) writeBytes(rel string, data []byte) error {
	abs, err := w.root.Resolve(rel)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(abs); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory for %s: %w", rel, err)
		}
	}
	if err := os.WriteFile(abs, data, 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", rel, err)
	}
	return nil
}
