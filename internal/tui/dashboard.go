package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/langportal/internal/controller"
)

// DashboardModel shows the last session, study progress and quick stats.
// The three cards load independently.
type DashboardModel struct {
	base
	ctl *controller.Dashboard
}

func newDashboardScreen(env *Env, r controller.Route) Screen {
	b := newBase(env, r)
	return &DashboardModel{base: b, ctl: controller.NewDashboard(env.API, b.life)}
}

func (m *DashboardModel) Init() tea.Cmd {
	return run(m.ctl.Begin()...)
}

func (m *DashboardModel) Loading() bool { return m.ctl.Loading() }

func (m *DashboardModel) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "s":
			return m, Navigate(m.ctl.SessionsRoute())
		case "g":
			if r, ok := m.ctl.GroupRoute(); ok {
				return m, Navigate(r)
			}
		case "enter":
			return m, Navigate(controller.Route{Path: controller.PathActivities, Page: 1})
		}
	}
	return m, nil
}

func (m *DashboardModel) View() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.lastSessionCard(), m.progressCard())
	return lipgloss.JoinVertical(lipgloss.Left, top, m.statsCard())
}

func (m *DashboardModel) lastSessionCard() string {
	l := m.ctl.Last
	lines := []string{StyleTitle.Render("Last Study Session")}
	switch {
	case l.Loading:
		lines = append(lines, StyleSubtitle.Render("Loading..."))
	case l.Data == nil:
		lines = append(lines, StyleSubtitle.Render("No sessions yet"))
	default:
		lines = append(lines,
			l.Data.GroupName,
			StyleSubtitle.Render(m.env.When(l.Data.CreatedAt)),
			StyleSubtitle.Render("[s] view session  [g] view group"),
		)
	}
	return StyleCard.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *DashboardModel) progressCard() string {
	p := m.ctl.Progress
	lines := []string{StyleTitle.Render("Study Progress")}
	if p.Loading {
		lines = append(lines, StyleSubtitle.Render("Loading..."))
	} else {
		lines = append(lines,
			fmt.Sprintf("%d / %d words studied", p.Data.TotalWordsStudied, p.Data.TotalAvailableWords),
			progressBar(p.Data.Percent()),
		)
	}
	return StyleCard.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *DashboardModel) statsCard() string {
	s := m.ctl.Stats
	lines := []string{StyleTitle.Render("Quick Stats")}
	if s.Loading {
		lines = append(lines, StyleSubtitle.Render("Loading..."))
	} else {
		r := m.env.Render
		lines = append(lines,
			r.RenderStat("Success rate", fmt.Sprintf("%.0f%%", s.Data.SuccessRate)),
			r.RenderStat("Study sessions", fmt.Sprint(s.Data.TotalStudySessions)),
			r.RenderStat("Active groups", fmt.Sprint(s.Data.TotalActiveGroups)),
			r.RenderStat("Study streak", fmt.Sprintf("%d days", s.Data.StudyStreakDays)),
			r.RenderStat("Mastery", fmt.Sprintf("%d%%", s.Data.Mastery())),
		)
	}
	return StyleCard.Width(74).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *DashboardModel) Hints() []string {
	return []string{"enter start studying", "s last session", "g its group"}
}

// progressBar renders a 20 cell bar for a 0-100 percentage.
func progressBar(percent int) string {
	w := 20
	percent = max(0, min(percent, 100))
	filled := w * percent / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", w-filled)
	return fmt.Sprintf("[%s] %d%%", bar, percent)
}
