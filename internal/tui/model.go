// Package tui is the interactive terminal application.
package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/brand"
	"grimm.is/langportal/internal/clock"
	"grimm.is/langportal/internal/controller"
	"grimm.is/langportal/internal/logging"
	"grimm.is/langportal/internal/metrics"
	"grimm.is/langportal/internal/notify"
	"grimm.is/langportal/internal/ui"
	render "grimm.is/langportal/internal/ui/tui"
)

// DefaultToastTTL is how long a notification stays in the footer.
const DefaultToastTTL = 4 * time.Second

// Options configure the application.
type Options struct {
	API           api.Provider
	Mode          api.Mode
	Center        *notify.Center
	Clock         clock.Clock
	LaunchBaseURL string
	ToastTTL      time.Duration
	Metrics       *metrics.Registry
	Logger        *logging.Logger
	Start         controller.Route
}

type toastMsg notify.Notification

type toastTickMsg struct{}

// Model is the main application state
type Model struct {
	env     *Env
	mode    api.Mode
	center  *notify.Center
	toasts  <-chan notify.Notification
	unsub   func()
	ttl     time.Duration
	metrics *metrics.Registry
	logger  *logging.Logger

	screen  Screen
	history []controller.Route
	start   controller.Route
	spinner spinner.Model
	ticking bool
}

// NewModel creates a new initial model. Close releases its notification
// subscription.
func NewModel(ctx context.Context, o Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.Center == nil {
		o.Center = notify.NewCenter(32, o.Clock)
	}
	if o.ToastTTL <= 0 {
		o.ToastTTL = DefaultToastTTL
	}
	if o.Metrics == nil {
		o.Metrics = metrics.Get()
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Start.Path == "" {
		o.Start = controller.Route{Path: controller.PathDashboard, Page: 1}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorLeaf)

	ch, unsub := o.Center.Subscribe(16)
	return Model{
		env: &Env{
			Ctx:           ctx,
			API:           o.API,
			Notifier:      o.Center,
			Clock:         clock.Or(o.Clock),
			LaunchBaseURL: o.LaunchBaseURL,
			Render:        render.NewRenderer(80),
		},
		mode:    o.Mode,
		center:  o.Center,
		toasts:  ch,
		unsub:   unsub,
		ttl:     o.ToastTTL,
		metrics: o.Metrics,
		logger:  o.Logger.WithComponent("tui"),
		start:   o.Start,
		spinner: sp,
	}
}

// Close unsubscribes from notifications and closes the current screen.
func (m Model) Close() {
	if m.screen != nil {
		m.screen.Close()
	}
	m.unsub()
}

// Init mounts the start route.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return navigateMsg{route: m.start, replace: true} },
		m.spinner.Tick,
		m.waitToast(),
	)
}

func (m Model) waitToast() tea.Cmd {
	ch := m.toasts
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return toastMsg(n)
	}
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return toastTickMsg{} })
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen != nil && m.screen.Capturing() {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc", "backspace":
			return m.back()
		case "r":
			if m.screen != nil {
				return m.navigate(m.screen.Route(), true)
			}
		}
		for _, item := range ui.MainMenu() {
			if msg.String() == item.Key {
				r, err := controller.ParseRoute(item.Path)
				if err == nil {
					return m.navigate(r, false)
				}
			}
		}

	case tea.WindowSizeMsg:
		m.env.Width = msg.Width
		m.env.Height = msg.Height
		m.env.Render.SetWidth(msg.Width)

	case navigateMsg:
		return m.navigate(msg.route, msg.replace)

	case backMsg:
		return m.back()

	case controller.Applier:
		if !msg.Apply() {
			m.logger.Debug("dropped stale result")
			return m, nil
		}

	case toastMsg:
		m.logger.Debug("notification", "level", msg.Level, "message", msg.Message)
		cmds := []tea.Cmd{m.waitToast()}
		if !m.ticking {
			m.ticking = true
			cmds = append(cmds, toastTick())
		}
		return m, tea.Batch(cmds...)

	case toastTickMsg:
		if len(m.center.Active(m.ttl)) == 0 {
			m.ticking = false
			return m, nil
		}
		return m, toastTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.screen == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

// navigate closes the current screen and mounts r. Unless replace is set the
// current route is pushed onto the history.
func (m Model) navigate(r controller.Route, replace bool) (Model, tea.Cmd) {
	if m.screen != nil {
		if !replace {
			m.history = append(m.history, m.screen.Route())
		}
		m.screen.Close()
	}

	m.screen = m.build(r)
	if item := ui.MenuForPath(r.Path); item != nil {
		m.metrics.RecordViewLoad(string(item.ID))
	}
	m.logger.Debug("navigate", "route", r.String())
	return m, m.screen.Init()
}

func (m Model) back() (Model, tea.Cmd) {
	if len(m.history) == 0 {
		return m, nil
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.navigate(prev, true)
}

// build creates the screen for r.
func (m Model) build(r controller.Route) Screen {
	env := m.env
	switch r.Path {
	case controller.PathWords:
		switch {
		case r.Action == controller.ActionNew, r.Action == controller.ActionEdit:
			return newWordFormScreen(env, r)
		case r.IsDetail():
			return newWordScreen(env, r)
		}
		return newWordsScreen(env, r)
	case controller.PathGroups:
		switch {
		case r.Action == controller.ActionNew, r.Action == controller.ActionEdit:
			return newGroupFormScreen(env, r)
		case r.IsDetail():
			return newGroupScreen(env, r)
		}
		return newGroupsScreen(env, r)
	case controller.PathSessions:
		if r.IsDetail() {
			return newSessionScreen(env, r)
		}
		return newSessionsScreen(env, r)
	case controller.PathActivities:
		switch {
		case r.IsDetail() && r.Action == controller.ActionLaunch:
			return newLaunchScreen(env, r)
		case r.IsDetail():
			return newActivityScreen(env, r)
		}
		return newActivitiesScreen(env, r)
	case controller.PathSettings:
		return newSettingsScreen(env, r)
	}
	return newDashboardScreen(env, controller.Route{Path: controller.PathDashboard, Page: 1})
}

// View renders the application
func (m Model) View() string {
	if m.screen == nil {
		return ""
	}
	doc := m.ViewTopBar() + "\n" + m.env.Render.RenderBreadcrumb(m.breadcrumb()...) + "\n\n"
	doc += m.screen.View()
	doc += "\n" + m.ViewFooter()
	return StyleApp.Render(doc)
}

func (m Model) breadcrumb() []string {
	r := m.screen.Route()
	parts := []string{brand.Name}
	if item := ui.MenuForPath(r.Path); item != nil {
		parts = append(parts, item.Label)
	}
	if r.IsDetail() {
		parts = append(parts, "#"+strconv.Itoa(r.ID))
	}
	if r.Action != "" {
		parts = append(parts, r.Action)
	}
	return parts
}

// ViewTopBar renders the top navigation menu
func (m Model) ViewTopBar() string {
	var active ui.MenuID
	if m.screen != nil {
		if item := ui.MenuForPath(m.screen.Route().Path); item != nil {
			active = item.ID
		}
	}

	head := []string{StyleTitle.Render(strings.ToUpper(brand.Name) + " ")}
	if m.mode == api.ModeMock {
		head = append(head, StyleBadgeMock.Render("MOCK"))
	}
	head = append(head, m.env.Render.RenderMenu(ui.MainMenu(), active))
	bar := lipgloss.JoinHorizontal(lipgloss.Top, head...)
	return StyleTopBar.Render(bar)
}

// ViewFooter renders active notifications, the loading spinner and key
// hints.
func (m Model) ViewFooter() string {
	var lines []string
	for _, n := range m.center.Active(m.ttl) {
		lines = append(lines, notify.Render(n))
	}

	status := ""
	if m.screen.Loading() {
		status = m.spinner.View() + " "
	}
	hints := append(m.screen.Hints(), "esc back", "r reload", "q quit")
	lines = append(lines, status+render.Help(hints...))
	return StyleFooter.Render(strings.Join(lines, "\n"))
}

// Run starts the application and blocks until it exits.
func Run(ctx context.Context, o Options, opts ...tea.ProgramOption) error {
	m := NewModel(ctx, o)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
