// Package tui draws the ui schema in the terminal.
package tui

import (
	"fmt"
	"strings"

	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/pagination"
	"grimm.is/langportal/internal/ui"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Styles for TUI rendering
var (
	// Colors
	primaryColor = lipgloss.Color("#25A065")
	dangerColor  = lipgloss.Color("#DC3545")
	mutedColor   = lipgloss.Color("240")
	borderColor  = lipgloss.Color("62")

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(primaryColor).
			Padding(0, 1).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginLeft(1)

	sectionStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#596E79")).
			Padding(0, 1)

	menuActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1F2D27")).
			Background(primaryColor).
			Bold(true).
			Padding(0, 1)

	menuKeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Faint(true)

	menuHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	currentPageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)

	pageStyle = lipgloss.NewStyle().Padding(0, 1)
)

// CellStyle returns the lipgloss style for a schema column style.
func CellStyle(s ui.Style) lipgloss.Style {
	switch s {
	case ui.StyleBold:
		return tableCellStyle.Bold(true)
	case ui.StyleMuted:
		return tableCellStyle.Foreground(mutedColor)
	case ui.StyleSuccess:
		return tableCellStyle.Foreground(primaryColor)
	case ui.StyleDanger:
		return tableCellStyle.Foreground(dangerColor)
	default:
		return tableCellStyle
	}
}

// Renderer draws static screens: menus, tables, detail fields and the
// pagination bar.
type Renderer struct {
	width int
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(width int) *Renderer {
	return &Renderer{width: width}
}

// SetWidth updates the terminal width.
func (r *Renderer) SetWidth(width int) {
	r.width = width
}

// RenderMenu renders the navigation menu as a single bar, highlighting
// activeID.
func (r *Renderer) RenderMenu(items []ui.MenuItem, activeID ui.MenuID) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		style := menuItemStyle
		if item.ID == activeID {
			style = menuActiveStyle
		}

		label := fmt.Sprintf("%s %s", Icon(item.Icon), item.Label)
		if item.Key != "" {
			label = menuKeyStyle.Render("["+item.Key+"]") + " " + label
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderBreadcrumb renders breadcrumb navigation.
func (r *Renderer) RenderBreadcrumb(parts ...string) string {
	return subtitleStyle.Render(strings.Join(parts, " > "))
}

// RenderTitle renders a page title bar.
func (r *Renderer) RenderTitle(icon, title string) string {
	if icon == "" {
		return titleStyle.Render(title)
	}
	return titleStyle.Render(Icon(icon) + " " + title)
}

// RenderView renders a projected table without interaction.
func (r *Renderer) RenderView(v ui.View) string {
	var b strings.Builder

	if v.Title != "" {
		b.WriteString(menuHeaderStyle.Render(v.Title))
		b.WriteString("\n")
	}

	// An empty view shows its message in place of the table.
	if v.Mode == ui.ModeEmpty {
		b.WriteString(helpStyle.Render(v.Message))
		return sectionStyle.Render(b.String())
	}

	headers := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		headers[i] = h.Title
	}
	rows := make([][]string, len(v.Rows))
	for i, row := range v.Rows {
		rows[i] = row.Cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if v.Mode == ui.ModeLoading || col >= len(v.Headers) {
				return tableCellStyle.Foreground(mutedColor)
			}
			return CellStyle(v.Headers[col].Style)
		})

	b.WriteString(t.Render())
	return sectionStyle.Render(b.String())
}

// RenderFields renders the labelled values of a detail page.
func (r *Renderer) RenderFields(title string, fields []ui.Field) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(menuHeaderStyle.Render(title))
		b.WriteString("\n\n")
	}
	for _, f := range fields {
		val := valueStyle.Render(f.Value)
		if f.Value == "" {
			val = helpStyle.Render("-")
		} else if f.Style != ui.StylePlain {
			val = CellStyle(f.Style).UnsetPadding().Render(f.Value)
		}
		b.WriteString(labelStyle.Render(f.Label+":") + " " + val + "\n")
	}
	return sectionStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderStat renders one dashboard figure.
func (r *Renderer) RenderStat(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Bold(true).Render(value)
}

// RenderPager renders the pagination bar for p. It is empty when there is
// at most one page.
func (r *Renderer) RenderPager(p models.Pagination) string {
	tokens, ok := pagination.Window(p.CurrentPage, p.TotalPages)
	if !ok {
		return ""
	}

	parts := make([]string, 0, len(tokens)+2)
	if _, enabled := pagination.Prev(p.CurrentPage); enabled {
		parts = append(parts, pageStyle.Render("‹ Prev"))
	} else {
		parts = append(parts, pageStyle.Foreground(mutedColor).Render("‹ Prev"))
	}
	for _, tok := range tokens {
		switch {
		case tok.Ellipsis:
			parts = append(parts, pageStyle.Foreground(mutedColor).Render(tok.String()))
		case tok.Page == p.CurrentPage:
			parts = append(parts, currentPageStyle.Render(tok.String()))
		default:
			parts = append(parts, pageStyle.Render(tok.String()))
		}
	}
	if _, enabled := pagination.Next(p.CurrentPage, p.TotalPages); enabled {
		parts = append(parts, pageStyle.Render("Next ›"))
	} else {
		parts = append(parts, pageStyle.Foreground(mutedColor).Render("Next ›"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Help renders a key hint line.
func Help(hints ...string) string {
	return helpStyle.Render(strings.Join(hints, "  "))
}

// Icon converts icon names to terminal-friendly representations.
func Icon(name string) string {
	icons := map[string]string{
		"home":     "🏠",
		"play":     "▶",
		"book":     "📖",
		"layers":   "📚",
		"clock":    "🕐",
		"settings": "⚙️",
		"activity": "📈",
	}
	if emoji, ok := icons[name]; ok {
		return emoji
	}
	return "•"
}
