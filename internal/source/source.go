// Package source retrieves the document to process.
package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// Provider determines and retrieves the source content: an explicit file,
// piped stdin, or the system clipboard, in that order.
type Provider struct {
	path string
}

// New creates a Provider. path may be empty.
func New(path string) *Provider {
	return &Provider{path: path}
}

// Content returns the full document text.
func (p *Provider) Content() (string, error) {
	if p.path != "" {
		data, err := os.ReadFile(p.path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", p.path, err)
		}
		return string(data), nil
	}

	stat, _ := os.Stdin.Stat()
	if isPiped := (stat.Mode() & os.ModeCharDevice) == 0; isPiped {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(data), nil
	}

	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	return content, nil
}
