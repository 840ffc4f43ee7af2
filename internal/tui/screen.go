package tui

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/clock"
	"grimm.is/langportal/internal/controller"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/notify"
	"grimm.is/langportal/internal/pagination"
	render "grimm.is/langportal/internal/ui/tui"
)

// Screen is one mounted page of the application.
type Screen interface {
	Route() controller.Route
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	// Hints lists the screen's key bindings for the footer.
	Hints() []string
	// Capturing reports whether the screen consumes every key, e.g. while a
	// text field has focus.
	Capturing() bool
	Loading() bool
	// Close cancels outstanding fetches; late results are dropped.
	Close()
}

// Env is shared by every screen.
type Env struct {
	Ctx           context.Context
	API           api.Provider
	Notifier      notify.Notifier
	Clock         clock.Clock
	LaunchBaseURL string
	Render        *render.Renderer

	Width  int
	Height int
}

// When formats a backend timestamp relative to now. Unparseable values are
// shown verbatim.
func (e *Env) When(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return humanize.RelTime(t, e.Clock.Now(), "ago", "from now")
}

// TableHeight is the number of table rows that fit under the chrome.
func (e *Env) TableHeight(reserved int) int {
	if e.Height == 0 {
		return 10
	}
	return max(e.Height-reserved, 5)
}

// navigateMsg asks the application to show another route.
type navigateMsg struct {
	route   controller.Route
	replace bool
}

type backMsg struct{}

// Navigate shows r and remembers the current route for Back.
func Navigate(r controller.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

// Replace shows r in place of the current route.
func Replace(r controller.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r, replace: true} }
}

// Back returns to the previous route.
func Back() tea.Msg { return backMsg{} }

// run turns controller fetches into commands. Each result comes back as a
// controller.Applier message.
func run(fetches ...controller.Fetch) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(fetches))
	for _, f := range fetches {
		if f == nil {
			continue
		}
		cmds = append(cmds, func() tea.Msg { return f() })
	}
	return tea.Batch(cmds...)
}

// base carries what every screen has: the environment, a lifetime and the
// route it shows.
type base struct {
	env   *Env
	life  *controller.Lifetime
	route controller.Route
}

func newBase(env *Env, r controller.Route) base {
	return base{env: env, life: controller.NewLifetime(env.Ctx), route: r}
}

func (b *base) Route() controller.Route { return b.route }
func (b *base) Close()                  { b.life.Close() }
func (b *base) Capturing() bool         { return false }

// pageKey maps the pager keys to a route on another page.
func pageKey(msg tea.KeyMsg, r controller.Route, p models.Pagination) (controller.Route, bool) {
	if n, ok := pageStep(msg, p); ok {
		return r.WithPage(n), true
	}
	return r, false
}

// pageStep maps the pager keys to the page they move p to.
func pageStep(msg tea.KeyMsg, p models.Pagination) (int, bool) {
	switch msg.String() {
	case "left", "[":
		return pagination.Prev(p.CurrentPage)
	case "right", "]":
		return pagination.Next(p.CurrentPage, p.TotalPages)
	}
	return 0, false
}

// selectedRoute maps a selected row key to the detail route under path.
func selectedRoute(path string, key string) (controller.Route, bool) {
	id, err := strconv.Atoi(key)
	if err != nil || id < 1 {
		return controller.Route{}, false
	}
	return controller.Route{Path: path, ID: id, Page: 1}, true
}
