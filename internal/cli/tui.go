package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

func stdinFd() uintptr {
	return os.Stdin.Fd()
}

// =============================================================================
// RootListModel - Interactive root concept selection
// =============================================================================

// rootEntry is one selectable concept with its connectivity.
type rootEntry struct {
	Node   concept.Node
	Degree int
}

// RootListModel is the bubbletea model for interactive root selection.
type RootListModel struct {
	Entries  []rootEntry
	Cursor   int
	Selected *rootEntry
	Height   int
	Offset   int
}

// NewRootListModel creates a root list model over the graph's nodes.
// Entries keep the graph's node order.
func NewRootListModel(g concept.Graph) RootListModel {
	m := model.Build(g)
	entries := make([]rootEntry, len(g.Nodes))
	for i, n := range g.Nodes {
		entries[i] = rootEntry{Node: n, Degree: m.Degree(n.ID)}
	}
	return RootListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m RootListModel) Init() tea.Cmd {
	return nil
}

func (m RootListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Entries[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RootListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root Concept"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		kind := string(e.Node.Type)
		if kind == "" {
			kind = "—"
		}

		title := e.Node.Title
		if title == "" {
			title = e.Node.ID
		}

		rows = append(rows, []string{cursor, e.Node.ID, title, kind, fmt.Sprintf("%d", e.Degree)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Title", "Type", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 || col == 4 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// runRootPicker runs the interactive selection and returns the chosen
// node ID. The second return is false when the user quit without
// selecting.
func runRootPicker(g concept.Graph) (string, bool, error) {
	p := tea.NewProgram(NewRootListModel(g))
	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("root picker: %w", err)
	}
	m, ok := final.(RootListModel)
	if !ok || m.Selected == nil {
		return "", false, nil
	}
	return m.Selected.Node.ID, true, nil
}
