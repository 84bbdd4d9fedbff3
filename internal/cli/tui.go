package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// treeBrowserModel is the bubbletea model for scrolling through a rendered
// dependency tree that is taller than the terminal.
type treeBrowserModel struct {
	Title  string
	Lines  []string
	Offset int
	Height int
}

func newTreeBrowserModel(title, rendered string) treeBrowserModel {
	return treeBrowserModel{
		Title:  title,
		Lines:  strings.Split(strings.TrimRight(rendered, "\n"), "\n"),
		Height: 20,
	}
}

func (m treeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m treeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		case "down", "j":
			if m.Offset < m.maxOffset() {
				m.Offset++
			}
		case "pgup", "b":
			m.Offset -= m.Height
			if m.Offset < 0 {
				m.Offset = 0
			}
		case "pgdown", "f", " ":
			m.Offset += m.Height
			if m.Offset > m.maxOffset() {
				m.Offset = m.maxOffset()
			}
		case "g", "home":
			m.Offset = 0
		case "G", "end":
			m.Offset = m.maxOffset()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 4
		if m.Height < 5 {
			m.Height = 5
		}
		if m.Offset > m.maxOffset() {
			m.Offset = m.maxOffset()
		}
	}
	return m, nil
}

func (m treeBrowserModel) maxOffset() int {
	max := len(m.Lines) - m.Height
	if max < 0 {
		return 0
	}
	return max
}

func (m treeBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ scroll  space page  g/G jump  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Lines) {
		end = len(m.Lines)
	}
	for _, line := range m.Lines[m.Offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d-%d/%d]", m.Offset+1, end, len(m.Lines))))
	return b.String()
}

// runTreeBrowser opens the rendered tree in an alt-screen pager.
func runTreeBrowser(title, rendered string) error {
	p := tea.NewProgram(newTreeBrowserModel(title, rendered), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
