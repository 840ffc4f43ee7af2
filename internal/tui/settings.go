package tui

import (
	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/langportal/internal/controller"
)

type resetKind int

const (
	resetNone resetKind = iota
	resetHistory
	resetFull
)

// settingsScreen runs the reset operations after a confirmation.
type settingsScreen struct {
	base
	ctl *controller.Settings

	pending resetKind
	confirm bool
	form    *huh.Form
}

func newSettingsScreen(env *Env, r controller.Route) Screen {
	b := newBase(env, r)
	return &settingsScreen{base: b, ctl: controller.NewSettings(env.API, env.Notifier, b.life)}
}

func (s *settingsScreen) Init() tea.Cmd { return nil }

func (s *settingsScreen) Loading() bool { return s.ctl.HistoryBusy() || s.ctl.FullBusy() }

func (s *settingsScreen) Capturing() bool { return s.form != nil }

func (s *settingsScreen) ask(kind resetKind) tea.Cmd {
	s.pending, s.confirm = kind, false
	switch kind {
	case resetHistory:
		s.form = ConfirmForm("Reset study history?", "All study sessions and word review counters are deleted.", &s.confirm)
	case resetFull:
		s.form = ConfirmForm("Perform a full reset?", "Every word, group and study session is removed and the initial data is restored.", &s.confirm)
	}
	return s.form.Init()
}

func (s *settingsScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if s.form == nil {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "h":
				if !s.ctl.HistoryBusy() {
					return s, s.ask(resetHistory)
				}
			case "f":
				if !s.ctl.FullBusy() {
					return s, s.ask(resetFull)
				}
			}
		}
		return s, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		s.form, s.pending = nil, resetNone
		return s, nil
	}

	m, cmd := s.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.form = nil
		kind := s.pending
		s.pending = resetNone
		if !s.confirm {
			return s, nil
		}
		var f controller.Fetch
		var err error
		if kind == resetHistory {
			f, err = s.ctl.BeginResetHistory()
		} else {
			f, err = s.ctl.BeginResetFull()
		}
		if err != nil {
			return s, nil
		}
		return s, run(f)
	case huh.StateAborted:
		s.form, s.pending = nil, resetNone
		return s, nil
	}
	return s, cmd
}

func (s *settingsScreen) View() string {
	if s.form != nil {
		return StyleCard.Render(s.form.View())
	}

	history := "Delete all study sessions and review counters."
	if s.ctl.HistoryBusy() {
		history = StyleStatusWarn.Render("Resetting...")
	}
	full := "Restore the initial words, groups and activities."
	if s.ctl.FullBusy() {
		full = StyleStatusWarn.Render("Resetting...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		StyleCard.Render(lipgloss.JoinVertical(lipgloss.Left,
			StyleTitle.Render("[h] Reset history"),
			StyleSubtitle.Render(history),
		)),
		StyleCard.Render(lipgloss.JoinVertical(lipgloss.Left,
			StyleStatusBad.Render("[f] Full reset"),
			StyleSubtitle.Render(full),
		)),
	)
}

func (s *settingsScreen) Hints() []string {
	if s.form != nil {
		return []string{"←/→ choose", "enter confirm", "esc cancel"}
	}
	return []string{"h reset history", "f full reset"}
}
