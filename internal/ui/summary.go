package ui

import (
	"fmt"

	"github.com/sokinpui/mtc/internal/model"
)

// PrintSummary reports the outcome of a run in plain (non-TUI) mode.
func PrintSummary(summary model.Summary) {
	Header("\n--- Summary ---")

	if summary.Message != "" {
		Info("%s", summary.Message)
	}

	section := func(printer func(string, ...interface{}), label, noun string, items []string) {
		if len(items) == 0 {
			return
		}
		printer("%s %d %s:", label, len(items), noun)
		for _, item := range items {
			fmt.Printf("  - %s\n", item)
		}
	}

	section(Success, "Created", "file(s)", summary.Created)
	section(Success, "Modified", "file(s)", summary.Modified)
	section(Success, "Renamed", "file(s)", summary.Renamed)
	section(Success, "Deleted", "file(s)", summary.Deleted)
	section(Warning, "Skipped", "block(s)", summary.Skipped)
	section(Error, "Failed", "target(s)", summary.Failed)

	if summary.Message == "" && summary.Clean() &&
		len(summary.Created)+len(summary.Modified)+len(summary.Renamed)+len(summary.Deleted) == 0 {
		Info("Nothing to do.")
	}
}
