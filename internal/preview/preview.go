// Package preview implements a terminal viewer for the generated
// markdown report.
package preview

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// viewerChrome is the number of lines below the scroll area: blank line
// + status bar.
const viewerChrome = 2

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// ReloadMsg is sent by the file watcher to trigger a report refresh.
type ReloadMsg struct{}

type contentMsg string

type errMsg struct{ err error }

// Model is the top-level bubbletea model for the report viewer.
type Model struct {
	path     string
	plain    bool // skip markdown styling, show the raw report
	viewport viewport.Model
	raw      string
	width    int
	height   int
	ready    bool
	err      error
}

// New creates a viewer for the report at path.
func New(path string, plain bool) *Model {
	return &Model{path: path, plain: plain}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.load
}

// load reads the report from disk.
func (m *Model) load() tea.Msg {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return errMsg{fmt.Errorf("reading report: %w", err)}
	}
	return contentMsg(data)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
			return m, tea.Quit
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "r":
			return m, m.load
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.viewportHeight())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.viewportHeight()
		}
		m.setContent()
		return m, nil

	case ReloadMsg:
		return m, m.load

	case contentMsg:
		m.raw = string(msg)
		m.err = nil
		m.setContent()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n\n" + m.renderStatusBar()
}

func (m *Model) viewportHeight() int {
	h := m.height - viewerChrome
	if m.err != nil {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// setContent re-renders the raw report for the current width and feeds
// it to the viewport, keeping the scroll position where possible.
func (m *Model) setContent() {
	if !m.ready {
		return
	}
	m.viewport.Height = m.viewportHeight()
	m.viewport.SetContent(m.render())
}

// render styles the raw markdown unless plain mode is on. Rendering
// failures fall back to the raw report rather than a dead screen.
func (m *Model) render() string {
	if m.plain || m.raw == "" {
		return m.raw
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styleForBackground()),
		glamour.WithWordWrap(m.width),
	)
	if err != nil {
		return m.raw
	}
	out, err := r.Render(m.raw)
	if err != nil {
		return m.raw
	}
	return out
}

// styleForBackground picks the glamour style matching the terminal
// background.
func styleForBackground() string {
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func (m *Model) renderStatusBar() string {
	percent := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100) //nolint:mnd // percentage
	status := fmt.Sprintf(" %s | %s | r:reload q:quit", m.path, percent)
	status = truncate(status, m.width)

	if m.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+m.err.Error(), m.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}

	return statusBarStyle.Render(status)
}

// truncate cuts s to width display cells, on rune boundaries.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
