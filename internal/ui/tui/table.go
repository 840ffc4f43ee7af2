package tui

import (
	"strings"

	"grimm.is/langportal/internal/ui"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SelectedMsg is sent when Enter is pressed on a populated row.
type SelectedMsg struct {
	Table string
	Key   string
}

// Table is an interactive, keyboard-driven rendering of a ui.View.
type Table struct {
	ID    string
	view  ui.View
	table table.Model
}

// NewTable creates an empty interactive table. id is echoed in SelectedMsg.
func NewTable(id string, height int) Table {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Table{ID: id, table: t}
}

// SetView replaces the table contents. When the previously selected key is
// still present the cursor follows it.
func (m *Table) SetView(v ui.View) {
	prev, hadPrev := m.SelectedKey()

	columns := make([]table.Column, len(v.Headers))
	for i, h := range v.Headers {
		w := h.Width
		if w <= 0 {
			w = max(len(h.Title), 8)
		}
		columns[i] = table.Column{Title: h.Title, Width: w}
	}

	rows := make([]table.Row, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = table.Row(r.Cells)
	}

	// Rows must be cleared before columns change width.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.view = v

	cursor := 0
	if hadPrev {
		for i, r := range v.Rows {
			if r.Key == prev {
				cursor = i
				break
			}
		}
	}
	m.table.SetCursor(cursor)
}

// Current returns the projected view currently shown.
func (m Table) Current() ui.View { return m.view }

// SelectedKey returns the key of the highlighted row. It is false while
// loading or empty.
func (m Table) SelectedKey() (string, bool) {
	if m.view.Mode != ui.ModePopulated {
		return "", false
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.view.Rows) {
		return "", false
	}
	return m.view.Rows[idx].Key, true
}

// SetHeight sets the number of visible rows.
func (m *Table) SetHeight(h int) {
	m.table.SetHeight(max(h, 3))
}

// Focus and Blur toggle keyboard handling.
func (m *Table) Focus() { m.table.Focus() }
func (m *Table) Blur()  { m.table.Blur() }

// Focused reports whether the table handles keys.
func (m Table) Focused() bool { return m.table.Focused() }

// Init implements tea.Model.
func (m Table) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Table) Update(msg tea.Msg) (Table, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && m.table.Focused() {
		if k, ok := m.SelectedKey(); ok {
			id := m.ID
			return m, func() tea.Msg { return SelectedMsg{Table: id, Key: k} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Table) View() string {
	var b strings.Builder

	if m.view.Title != "" {
		b.WriteString(menuHeaderStyle.Render(m.view.Title))
		b.WriteString("\n")
	}

	if m.view.Mode == ui.ModeEmpty {
		b.WriteString(helpStyle.Render(m.view.Message))
	} else {
		b.WriteString(m.table.View())
	}

	return sectionStyle.Render(b.String())
}
