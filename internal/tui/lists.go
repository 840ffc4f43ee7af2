package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/langportal/internal/controller"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/ui"
	render "grimm.is/langportal/internal/ui/tui"
)

// listScreen is a paginated listing whose rows open a detail page.
type listScreen[T any] struct {
	base
	list  *controller.List[T]
	spec  ui.Table[T]
	table render.Table

	// search is nil for listings without client-side search.
	search *textinput.Model
	// creatable listings open a form on "n".
	creatable bool
}

func newListScreen[T any](env *Env, r controller.Route, list func(*controller.Lifetime) *controller.List[T], spec ui.Table[T]) *listScreen[T] {
	b := newBase(env, r)
	return &listScreen[T]{
		base:  b,
		list:  list(b.life),
		spec:  spec,
		table: render.NewTable(r.Path, env.TableHeight(14)),
	}
}

func (s *listScreen[T]) withSearch() *listScreen[T] {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search words..."
	ti.PromptStyle = StyleInputPrompt
	ti.PlaceholderStyle = StyleInputPlaceholder
	ti.SetValue(s.route.Query)
	s.search = &ti
	return s
}

func (s *listScreen[T]) Init() tea.Cmd {
	fetch := controller.Erase(s.list.Begin(s.route))
	s.sync()
	return run(fetch)
}

func (s *listScreen[T]) Loading() bool { return s.list.Loading }

func (s *listScreen[T]) Capturing() bool {
	return s.search != nil && s.search.Focused()
}

func (s *listScreen[T]) sync() {
	spec := s.spec
	if s.list.Searching() {
		spec.EmptyText = ui.EmptyWordsMatching(s.list.Route.Query)
	}
	s.table.SetView(ui.Project(spec, s.list.Items(), s.list.Loading))
}

func (s *listScreen[T]) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case controller.Applier:
		s.sync()
		return s, nil

	case render.SelectedMsg:
		if r, ok := selectedRoute(s.route.Path, msg.Key); ok {
			return s, Navigate(r)
		}
		return s, nil

	case tea.WindowSizeMsg:
		s.table.SetHeight(s.env.TableHeight(14))
		return s, nil

	case tea.KeyMsg:
		if s.Capturing() {
			return s.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			if s.search != nil {
				return s, s.search.Focus()
			}
		case "n":
			if s.creatable {
				return s, Navigate(controller.Route{Path: s.route.Path, Action: controller.ActionNew, Page: 1})
			}
		}
		if r, ok := pageKey(msg, s.route, s.list.Pagination()); ok {
			return s, Replace(r)
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *listScreen[T]) updateSearch(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.search.Blur()
		q := strings.TrimSpace(s.search.Value())
		if q == s.route.Query {
			return s, nil
		}
		return s, Replace(s.route.WithQuery(q))
	case "esc":
		s.search.Blur()
		s.search.SetValue(s.route.Query)
		return s, nil
	}

	var cmd tea.Cmd
	*s.search, cmd = s.search.Update(msg)
	return s, cmd
}

func (s *listScreen[T]) View() string {
	parts := []string{}
	if s.search != nil {
		parts = append(parts, s.search.View())
	}
	parts = append(parts, s.table.View())
	if pager := s.env.Render.RenderPager(s.list.Pagination()); pager != "" && !s.list.Loading {
		parts = append(parts, pager)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *listScreen[T]) Hints() []string {
	hints := []string{"↑/↓ move", "enter open", "←/→ page"}
	if s.search != nil {
		if s.Capturing() {
			return []string{"enter search", "esc cancel"}
		}
		hints = append(hints, "/ search")
	}
	if s.creatable {
		hints = append(hints, "n new")
	}
	return hints
}

func newWordsScreen(env *Env, r controller.Route) Screen {
	s := newListScreen(env, r, func(l *controller.Lifetime) *controller.List[models.Word] {
		return controller.Words(env.API, l)
	}, ui.WordsTable())
	s.creatable = true
	return s.withSearch()
}

func newGroupsScreen(env *Env, r controller.Route) Screen {
	s := newListScreen(env, r, func(l *controller.Lifetime) *controller.List[models.Group] {
		return controller.Groups(env.API, l)
	}, ui.GroupsTable())
	s.creatable = true
	return s
}

func newSessionsScreen(env *Env, r controller.Route) Screen {
	return newListScreen(env, r, func(l *controller.Lifetime) *controller.List[models.StudySession] {
		return controller.Sessions(env.API, l)
	}, ui.SessionsTable(env.When))
}
