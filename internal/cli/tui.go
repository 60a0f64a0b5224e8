package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stratum/pkg/layers"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StackModel - Interactive stack viewer
// =============================================================================

// StackEntry is one row of the viewer.
type StackEntry struct {
	Name   string
	Index  int
	Static bool
	Covers []string // layers this one must be above
	Under  []string // layers that must be above this one
}

// StackModel is the bubbletea model that lists layers from the top of the
// stack down. The selected layer's relations are shown below the table.
type StackModel struct {
	Entries []StackEntry
	Cursor  int
	Height  int
	Offset  int
}

// NewStackModel builds the viewer rows from a graph and its solution.
func NewStackModel(g *layers.Graph, sol layers.Solution) StackModel {
	infos := make(map[string]layers.Info, g.Len())
	under := make(map[string][]string)
	for _, info := range g.Layers() {
		infos[info.Name] = info
		for _, lower := range info.Above {
			under[lower] = append(under[lower], info.Name)
		}
	}

	order := sol.Order()
	entries := make([]StackEntry, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		info := infos[order[i]]
		entries = append(entries, StackEntry{
			Name:   info.Name,
			Index:  sol[info.Name],
			Static: info.Static,
			Covers: info.Above,
			Under:  under[info.Name],
		})
	}
	return StackModel{Entries: entries, Height: 15}
}

func (m StackModel) Init() tea.Cmd {
	return nil
}

func (m StackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.Entries) - 1)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo clamps i into range and scrolls so the cursor stays visible.
func (m *StackModel) moveTo(i int) {
	if len(m.Entries) == 0 {
		m.Cursor, m.Offset = 0, 0
		return
	}
	m.Cursor = min(max(i, 0), len(m.Entries)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m StackModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layer Stack"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("  no layers"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		kind := ""
		if e.Static {
			kind = "static"
		}
		rows = append(rows, []string{cursor, e.Name, strconv.Itoa(e.Index), kind})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Layer", "z-index", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			base := lipgloss.NewStyle()
			if col == 2 {
				base = base.Align(lipgloss.Right)
			}
			switch {
			case idx == m.Cursor:
				return base.Inherit(listSelectedStyle)
			case idx < len(m.Entries) && m.Entries[idx].Static:
				return base.Inherit(StyleStatic)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	sel := m.Entries[m.Cursor]
	b.WriteString(relationLine("above", sel.Covers))
	b.WriteString(relationLine("below", sel.Under))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

func relationLine(label string, names []string) string {
	value := "—"
	if len(names) > 0 {
		value = strings.Join(names, ", ")
	}
	return "  " + listDimStyle.Render(fmt.Sprintf("%-6s", label)) + " " + StyleValue.Render(value) + "\n"
}
