package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/jsonscope/pkg/collapse"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
	"github.com/matzehuels/jsonscope/pkg/render/text"
	"github.com/matzehuels/jsonscope/pkg/theme"
)

// =============================================================================
// TreeModel - Interactive tree navigation
// =============================================================================

// treeRow is one visible line of the tree: a node plus its field label and
// nesting depth. Children of collapsed containers produce no rows.
type treeRow struct {
	node  jsontree.Node
	label string
	depth int
}

// TreeModel is the bubbletea model for interactive tree exploration.
type TreeModel struct {
	Tree  jsontree.Node
	State collapse.State

	// SaveRequested is the state to persist after the program exits, set
	// when the user presses "s". Nil means nothing to save.
	SaveRequested *collapse.State

	Cursor int
	Height int
	Offset int

	rows     []treeRow
	status   string
	selected string

	styleString lipgloss.Style
	styleNumber lipgloss.Style
	styleBool   lipgloss.Style
	styleNull   lipgloss.Style
	styleHot    lipgloss.Style
}

// NewTreeModel creates a tree model with the given initial collapse state.
func NewTreeModel(tree jsontree.Node, state collapse.State, palette theme.Palette) TreeModel {
	m := TreeModel{
		Tree:        tree,
		State:       state,
		Height:      20,
		styleString: lipgloss.NewStyle().Foreground(lipgloss.Color(palette.String)),
		styleNumber: lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Number)),
		styleBool:   lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Bool)),
		styleNull:   lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Null)),
		styleHot:    lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Highlight)).Bold(true),
	}
	m.rebuildRows()
	return m
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
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
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor, m.Offset = 0, 0
		case "G":
			m.Cursor = len(m.rows) - 1
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		case "enter", " ":
			m.activateCursor()
		case "e":
			m.State = m.State.ExpandAll()
			m.rebuildRows()
			m.clampCursor()
			m.status = "expanded all"
		case "s":
			state := m.State
			m.SaveRequested = &state
			return m, tea.Quit
		default:
			if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
				depth := int(key[0] - '0')
				m.State = collapse.BelowDepth(m.Tree, depth)
				m.rebuildRows()
				m.clampCursor()
				m.status = fmt.Sprintf("collapsed below depth %d", depth)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// activateCursor flips the collapse state of the container under the cursor,
// or marks a scalar as the selected leaf. Activating the selected leaf again
// clears the selection.
func (m *TreeModel) activateCursor() {
	if m.Cursor >= len(m.rows) {
		return
	}
	n := m.rows[m.Cursor].node
	if !n.IsContainer() {
		if m.selected == n.Path {
			m.selected = ""
			m.status = ""
			return
		}
		m.selected = n.Path
		m.status = "selected " + n.Path
		return
	}
	m.State = m.State.Toggle(n.Path)
	m.rebuildRows()
	m.clampCursor()
}

// clampCursor keeps the cursor and scroll offset inside the row range after
// the rows shrink.
func (m *TreeModel) clampCursor() {
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Offset > m.Cursor {
		m.Offset = m.Cursor
	}
}

// rebuildRows recomputes the visible rows after a state change. The cursor
// is clamped by callers when rows shrink.
func (m *TreeModel) rebuildRows() {
	m.rows = m.rows[:0]
	m.appendRows(m.Tree, "", 0)
}

func (m *TreeModel) appendRows(n jsontree.Node, label string, depth int) {
	m.rows = append(m.rows, treeRow{node: n, label: label, depth: depth})
	if !n.IsContainer() || m.State.IsCollapsed(n.Path) {
		return
	}
	switch v := n.Value.(type) {
	case jsontree.List:
		for _, child := range v {
			m.appendRows(child, "", depth+1)
		}
	case jsontree.Object:
		for _, k := range n.Keys() {
			m.appendRows(v[k], k, depth+1)
		}
	}
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("jsonscope"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ toggle/select  0-9 depth  e expand all  s save  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + strings.Repeat("  ", row.depth) + m.renderRow(row, i == m.Cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))
	if m.status != "" {
		footer += "  " + m.status
	}
	b.WriteString(StyleDim.Render(footer))

	return b.String()
}

// renderRow styles a single visible row. The row under the cursor uses the
// highlight color for its label and value.
func (m TreeModel) renderRow(row treeRow, selected bool) string {
	n := row.node

	label := ""
	if row.label != "" {
		label = row.label + ": "
	}

	var body string
	if n.IsContainer() {
		opener, closer, unit := "{", "}", "fields"
		if n.Kind() == jsontree.KindList {
			opener, closer, unit = "[", "]", "items"
		}
		if m.State.IsCollapsed(n.Path) {
			body = fmt.Sprintf("%s…%s %d %s", opener, closer, n.Len(), unit)
			body = StyleDim.Render(body)
		} else {
			body = opener + "…" + closer
		}
	} else {
		style := m.scalarStyle(n)
		if m.selected != "" && n.Path == m.selected {
			style = m.styleHot
		}
		body = style.Render(text.FormatScalar(n.Value))
	}

	if selected {
		if label != "" {
			label = m.styleHot.Render(label)
		}
		if !n.IsContainer() {
			body = m.styleHot.Render(text.FormatScalar(n.Value))
		}
	}
	return label + body
}

func (m TreeModel) scalarStyle(n jsontree.Node) lipgloss.Style {
	switch n.Kind() {
	case jsontree.KindString:
		return m.styleString
	case jsontree.KindNumber:
		return m.styleNumber
	case jsontree.KindBool:
		return m.styleBool
	case jsontree.KindNull:
		return m.styleNull
	}
	return lipgloss.NewStyle()
}

// SelectedPath returns the path of the leaf marked with enter, or the empty
// string when nothing is selected.
func (m TreeModel) SelectedPath() string {
	return m.selected
}
