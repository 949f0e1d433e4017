package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/mtc/internal/model"
	"github.com/sokinpui/mtc/mtc"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// --- Messages ---
type summaryMsg struct {
	model.Summary
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

// --- Model ---
type Model struct {
	app     *mtc.App
	content string
	spinner spinner.Model
	state   state
	summary summaryMsg
	err     error
}

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
)

// New creates the TUI model. content is the already-read source document;
// reading it up front keeps bubbletea's own stdin handling out of the way
// of piped input.
func New(app *mtc.App, content string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		app:     app,
		content: content,
		spinner: s,
		state:   stateProcessing,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runApp)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case summaryMsg:
		m.state = stateSummary
		m.summary = msg
		return m, tea.Quit

	case errorMsg:
		m.state = stateError
		m.err = msg
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		return fmt.Sprintf("%s Processing...", m.spinner.View())
	case stateError:
		return errorStyle.Render("Error: ", m.err.Error())
	case stateSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

// ExitCode reports the process exit status for the finished run: non-zero
// when anything failed or was skipped.
func (m Model) ExitCode() int {
	if m.state == stateError || !m.summary.Clean() {
		return 1
	}
	return 0
}

func (m *Model) renderSummary() string {
	var b strings.Builder

	if m.summary.Message != "" {
		b.WriteString(headerStyle.Render(m.summary.Message))
		b.WriteString("\n\n")
	}

	section := func(style lipgloss.Style, label string, items []string) bool {
		if len(items) == 0 {
			return false
		}
		b.WriteString(style.Render(label + ":"))
		b.WriteString("\n")
		for _, item := range items {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(item)))
		}
		return true
	}

	hasContent := false
	hasContent = section(successStyle, "Created", m.summary.Created) || hasContent
	hasContent = section(successStyle, "Modified", m.summary.Modified) || hasContent
	hasContent = section(successStyle, "Renamed", m.summary.Renamed) || hasContent
	hasContent = section(successStyle, "Deleted", m.summary.Deleted) || hasContent
	hasContent = section(warnStyle, "Skipped", m.summary.Skipped) || hasContent
	hasContent = section(errorStyle, "Failed", m.summary.Failed) || hasContent

	if !hasContent && m.summary.Message == "" {
		b.WriteString(faintStyle.Render("Nothing to do."))
	}

	return b.String()
}

func (m *Model) runApp() tea.Msg {
	summary, err := m.app.Process(m.content)
	if err != nil {
		// Check for detailed error to print stack
		if e, ok := err.(*mtc.DetailedError); ok {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", e.Stack)
		}
		return errorMsg{err}
	}
	return summaryMsg{
		Summary: summary,
	}
}
