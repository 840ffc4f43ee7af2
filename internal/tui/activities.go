package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/langportal/internal/controller"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/notify"
	"grimm.is/langportal/internal/ui"
	render "grimm.is/langportal/internal/ui/tui"
)

// activitiesScreen lists every study activity.
type activitiesScreen struct {
	base
	ctl   *controller.Activities
	table render.Table
}

func newActivitiesScreen(env *Env, r controller.Route) Screen {
	b := newBase(env, r)
	return &activitiesScreen{
		base:  b,
		ctl:   controller.NewActivities(env.API, b.life),
		table: render.NewTable(r.Path, env.TableHeight(12)),
	}
}

func (s *activitiesScreen) Init() tea.Cmd {
	fetch := controller.Erase(s.ctl.Begin())
	s.sync()
	return run(fetch)
}

func (s *activitiesScreen) Loading() bool { return s.ctl.Loading }

func (s *activitiesScreen) sync() {
	s.table.SetView(ui.Project(ui.ActivitiesTable(), s.ctl.Data, s.ctl.Loading))
}

func (s *activitiesScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case controller.Applier:
		s.sync()
		return s, nil
	case render.SelectedMsg:
		if r, ok := selectedRoute(controller.PathActivities, msg.Key); ok {
			return s, Navigate(r)
		}
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "l" {
			if key, ok := s.table.SelectedKey(); ok {
				if r, ok := selectedRoute(controller.PathActivities, key); ok {
					r.Action = controller.ActionLaunch
					return s, Navigate(r)
				}
			}
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *activitiesScreen) View() string { return s.table.View() }

func (s *activitiesScreen) Hints() []string {
	return []string{"↑/↓ move", "enter open", "l launch"}
}

// activityScreen shows one activity and its past sessions.
type activityScreen struct {
	base
	ctl      *controller.ActivityShow
	sessions render.Table
}

func newActivityScreen(env *Env, r controller.Route) Screen {
	b := newBase(env, r)
	return &activityScreen{
		base:     b,
		ctl:      controller.NewActivityShow(env.API, b.life),
		sessions: render.NewTable(controller.PathSessions, env.TableHeight(20)),
	}
}

func (s *activityScreen) Init() tea.Cmd {
	fetches := s.ctl.Begin(s.route)
	s.sync()
	return run(fetches...)
}

func (s *activityScreen) Loading() bool {
	return s.ctl.Activity.Loading || s.ctl.Sessions.Loading
}

func (s *activityScreen) sync() {
	s.sessions.SetView(ui.Project(ui.SessionsTable(s.env.When), s.ctl.Sessions.Items(), s.ctl.Sessions.Loading))
}

func (s *activityScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case controller.Applier:
		s.sync()
		return s, nil
	case render.SelectedMsg:
		if r, ok := selectedRoute(controller.PathSessions, msg.Key); ok {
			return s, Navigate(r)
		}
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "l" {
			r := s.route.Detail(s.route.ID)
			r.Action = controller.ActionLaunch
			return s, Navigate(r)
		}
		if r, ok := pageKey(msg, s.route, s.ctl.Sessions.Pagination()); ok {
			return s, Replace(r)
		}
	}

	var cmd tea.Cmd
	s.sessions, cmd = s.sessions.Update(msg)
	return s, cmd
}

func (s *activityScreen) View() string {
	d := s.ctl.Activity
	var head string
	switch {
	case d.Loading:
		head = StyleSubtitle.Render("Loading activity...")
	case d.Err != nil:
		head = StyleStatusBad.Render("Activity not available")
	default:
		head = s.env.Render.RenderFields(d.Data.Name, ui.ActivityFields(d.Data))
	}

	parts := []string{head, s.sessions.View()}
	if pager := s.env.Render.RenderPager(s.ctl.Sessions.Pagination()); pager != "" {
		parts = append(parts, pager)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *activityScreen) Hints() []string {
	return []string{"l launch", "enter open session", "←/→ page"}
}

// launchScreen picks a word group and starts a session.
type launchScreen struct {
	base
	ctl    *controller.Launch
	groups render.Table
}

func newLaunchScreen(env *Env, r controller.Route) Screen {
	b := newBase(env, r)
	return &launchScreen{
		base:   b,
		ctl:    controller.NewLaunch(env.API, env.Notifier, b.life, env.LaunchBaseURL),
		groups: render.NewTable(controller.PathGroups, env.TableHeight(18)),
	}
}

func (s *launchScreen) Init() tea.Cmd {
	fetches := s.ctl.Begin(s.route.ID)
	s.sync()
	return run(fetches...)
}

func (s *launchScreen) Loading() bool { return s.ctl.Loading() || s.ctl.Launching() }

func (s *launchScreen) sync() {
	s.groups.SetView(ui.Project(ui.GroupsTable(), s.ctl.Groups.Data.Items, s.ctl.Groups.Loading))
	s.pick()
}

// pick keeps the selected group in step with the cursor.
func (s *launchScreen) pick() {
	if key, ok := s.groups.SelectedKey(); ok {
		if r, ok := selectedRoute(controller.PathGroups, key); ok {
			s.ctl.SelectGroup(r.ID)
		}
	}
}

func (s *launchScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case controller.Result[models.LaunchResult]:
		if s.ctl.Result.Err != nil || !s.ctl.Result.Loaded {
			return s, nil
		}
		if u, err := s.ctl.URL(); err == nil {
			notify.Info(s.env.Notifier, "Open the activity at %s", u)
		}
		return s, Replace(s.ctl.SessionRoute())

	case controller.Applier:
		s.sync()
		return s, nil

	case render.SelectedMsg:
		s.pick()
		return s, s.launch()
	}

	var cmd tea.Cmd
	s.groups, cmd = s.groups.Update(msg)
	s.pick()
	return s, cmd
}

func (s *launchScreen) launch() tea.Cmd {
	f, err := s.ctl.BeginLaunch()
	if err != nil {
		return nil
	}
	return run(f)
}

func (s *launchScreen) View() string {
	a := s.ctl.Activity
	title := "Launch"
	if a.Loaded && a.Err == nil {
		title = fmt.Sprintf("Launch %s", a.Data.Name)
	}

	status := StyleSubtitle.Render("Select a word group and press enter")
	if s.ctl.Launching() {
		status = StyleStatusWarn.Render("Launching...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.env.Render.RenderTitle("play", title),
		status,
		s.groups.View(),
	)
}

func (s *launchScreen) Hints() []string {
	return []string{"↑/↓ choose group", "enter launch"}
}
