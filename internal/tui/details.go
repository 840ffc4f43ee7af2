package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/langportal/internal/controller"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/ui"
	render "grimm.is/langportal/internal/ui/tui"
)

// heading renders the top block of a detail page.
func heading[T any](env *Env, d *controller.Detail[T], kind string, fields func(T) (string, []ui.Field)) string {
	switch {
	case d.Loading || !d.Loaded:
		return StyleSubtitle.Render(fmt.Sprintf("Loading %s...", kind))
	case d.Err != nil:
		return StyleStatusBad.Render(fmt.Sprintf("%s %d is not available", kind, d.ID))
	}
	title, fs := fields(d.Data)
	return env.Render.RenderFields(title, fs)
}

// wordScreen shows a word, its counters and the groups it belongs to.
type wordScreen struct {
	base
	ctl    *controller.Detail[models.WordDetail]
	groups render.Table
}

func newWordScreen(env *Env, r controller.Route) Screen {
	b := newBase(env, r)
	return &wordScreen{
		base:   b,
		ctl:    controller.WordShow(env.API, b.life),
		groups: render.NewTable(controller.PathGroups, env.TableHeight(20)),
	}
}

func (s *wordScreen) Init() tea.Cmd {
	fetch := controller.Erase(s.ctl.Begin(s.route.ID))
	s.sync()
	return run(fetch)
}

func (s *wordScreen) Loading() bool { return s.ctl.Loading }

func (s *wordScreen) sync() {
	s.groups.SetView(ui.Project(ui.GroupRefsTable(), s.ctl.Data.Groups, s.ctl.Loading))
}

func (s *wordScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case controller.Applier:
		s.sync()
		return s, nil
	case render.SelectedMsg:
		if r, ok := selectedRoute(controller.PathGroups, msg.Key); ok {
			return s, Navigate(r)
		}
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "e" && s.ctl.Loaded && s.ctl.Err == nil {
			r := s.route.Detail(s.route.ID)
			r.Action = controller.ActionEdit
			return s, Navigate(r)
		}
	}

	var cmd tea.Cmd
	s.groups, cmd = s.groups.Update(msg)
	return s, cmd
}

func (s *wordScreen) View() string {
	head := heading(s.env, s.ctl, "Word", func(w models.WordDetail) (string, []ui.Field) {
		return w.Portuguese, ui.WordFields(w)
	})
	return lipgloss.JoinVertical(lipgloss.Left, head, s.groups.View())
}

func (s *wordScreen) Hints() []string {
	return []string{"e edit", "enter open group"}
}

// groupScreen shows a group with its words and sessions. tab moves focus
// between the two tables.
type groupScreen struct {
	base
	ctl      *controller.GroupShow
	words    render.Table
	sessions render.Table
}

func newGroupScreen(env *Env, r controller.Route) Screen {
	b := newBase(env, r)
	s := &groupScreen{
		base:     b,
		ctl:      controller.NewGroupShow(env.API, b.life),
		words:    render.NewTable(controller.PathWords, max(env.TableHeight(24)/2, 5)),
		sessions: render.NewTable(controller.PathSessions, max(env.TableHeight(24)/2, 5)),
	}
	s.sessions.Blur()
	return s
}

func (s *groupScreen) Init() tea.Cmd {
	fetches := s.ctl.Begin(s.route)
	s.sync()
	return run(fetches...)
}

func (s *groupScreen) Loading() bool {
	return s.ctl.Group.Loading || s.ctl.Words.Loading || s.ctl.Sessions.Loading
}

func (s *groupScreen) sync() {
	s.words.SetView(ui.Project(ui.WordsTable(), s.ctl.Words.Items(), s.ctl.Words.Loading))
	s.sessions.SetView(ui.Project(ui.SessionsTable(s.env.When), s.ctl.Sessions.Items(), s.ctl.Sessions.Loading))
}

func (s *groupScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case controller.Applier:
		s.sync()
		return s, nil
	case render.SelectedMsg:
		if r, ok := selectedRoute(msg.Table, msg.Key); ok {
			return s, Navigate(r)
		}
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "tab" {
			if s.words.Focused() {
				s.words.Blur()
				s.sessions.Focus()
			} else {
				s.sessions.Blur()
				s.words.Focus()
			}
			return s, nil
		}
		// The pager keys page whichever table has focus.
		if s.sessions.Focused() {
			if n, ok := pageStep(msg, s.ctl.Sessions.Pagination()); ok {
				s.route = s.route.WithSessionsPage(n)
				fetch := s.ctl.BeginSessions(s.route)
				s.sync()
				return s, run(fetch)
			}
		} else if r, ok := pageKey(msg, s.route, s.ctl.Words.Pagination()); ok {
			return s, Replace(r)
		}
	}

	var c1, c2 tea.Cmd
	s.words, c1 = s.words.Update(msg)
	s.sessions, c2 = s.sessions.Update(msg)
	return s, tea.Batch(c1, c2)
}

func (s *groupScreen) View() string {
	head := heading(s.env, s.ctl.Group, "Group", func(g models.GroupDetail) (string, []ui.Field) {
		return g.Name, ui.GroupFields(g)
	})
	parts := []string{head, s.words.View()}
	if pager := s.env.Render.RenderPager(s.ctl.Words.Pagination()); pager != "" {
		parts = append(parts, pager)
	}
	parts = append(parts, s.sessions.View())
	if pager := s.env.Render.RenderPager(s.ctl.Sessions.Pagination()); pager != "" {
		parts = append(parts, pager)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *groupScreen) Hints() []string {
	if s.sessions.Focused() {
		return []string{"tab switch table", "enter open", "←/→ page sessions"}
	}
	return []string{"tab switch table", "enter open", "←/→ page words"}
}

// sessionScreen shows a study session and the words reviewed in it.
type sessionScreen struct {
	base
	ctl   *controller.SessionShow
	words render.Table
}

func newSessionScreen(env *Env, r controller.Route) Screen {
	b := newBase(env, r)
	return &sessionScreen{
		base:  b,
		ctl:   controller.NewSessionShow(env.API, b.life),
		words: render.NewTable(controller.PathWords, env.TableHeight(22)),
	}
}

func (s *sessionScreen) Init() tea.Cmd {
	fetches := s.ctl.Begin(s.route)
	s.sync()
	return run(fetches...)
}

func (s *sessionScreen) Loading() bool {
	return s.ctl.Session.Loading || s.ctl.Words.Loading
}

func (s *sessionScreen) sync() {
	s.words.SetView(ui.Project(ui.WordsTable(), s.ctl.Words.Items(), s.ctl.Words.Loading))
}

func (s *sessionScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case controller.Applier:
		s.sync()
		return s, nil
	case render.SelectedMsg:
		if r, ok := selectedRoute(controller.PathWords, msg.Key); ok {
			return s, Navigate(r)
		}
		return s, nil
	case tea.KeyMsg:
		if r, ok := pageKey(msg, s.route, s.ctl.Words.Pagination()); ok {
			return s, Replace(r)
		}
	}

	var cmd tea.Cmd
	s.words, cmd = s.words.Update(msg)
	return s, cmd
}

func (s *sessionScreen) View() string {
	head := heading(s.env, s.ctl.Session, "Study session", func(d models.StudySessionDetail) (string, []ui.Field) {
		return fmt.Sprintf("Session #%d", d.ID), ui.SessionFields(d, s.env.When)
	})
	parts := []string{head, s.words.View()}
	if pager := s.env.Render.RenderPager(s.ctl.Words.Pagination()); pager != "" {
		parts = append(parts, pager)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *sessionScreen) Hints() []string {
	return []string{"enter open word", "←/→ page"}
}
