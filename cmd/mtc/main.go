package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sokinpui/mtc/cli"
	"github.com/sokinpui/mtc/internal/tui"
	"github.com/sokinpui/mtc/internal/ui"
	"github.com/sokinpui/mtc/mtc"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app, err := mtc.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// The document is read before anything runs so the TUI never
	// competes with piped stdin.
	content, err := app.Content()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.NoAnimation {
		runPlain(app, content)
		return
	}

	m := tui.New(app, content)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	if finished, ok := final.(tui.Model); ok {
		os.Exit(finished.ExitCode())
	}
}

func runPlain(app *mtc.App, content string) {
	summary, err := app.Process(content)
	if err != nil {
		if e, ok := err.(*mtc.DetailedError); ok {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", e.Stack)
		}
		ui.Error("Error: %v", err)
		os.Exit(1)
	}

	ui.PrintSummary(summary)
	if !summary.Clean() {
		os.Exit(1)
	}
}
