package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/langportal/internal/controller"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/notify"
)

// wordFields is the word create/edit form.
type wordFields struct {
	Portuguese string `tui:"title=Portuguese,desc=Source-language text,validate=required"`
	English    string `tui:"title=English,desc=Target-language text,validate=required"`
}

// groupFields is the group create/edit form.
type groupFields struct {
	Name string `tui:"title=Name,placeholder=e.g. Basic Greetings,validate=required"`
}

// formScreen edits an F and saves it. Editing first loads the current
// values; creating starts from an empty F.
type formScreen[F any] struct {
	base
	title  string
	fields *F
	form   *huh.Form

	prefill *controller.Loader[F]
	load    func(ctx context.Context, id int) (F, error)
	save    *controller.Loader[int]
	saveFn  func(ctx context.Context, id int, f F) (int, error)
	saved   string
}

func (s *formScreen[F]) editing() bool { return s.route.ID > 0 }

func (s *formScreen[F]) Init() tea.Cmd {
	if s.editing() && s.load != nil {
		id := s.route.ID
		return run(controller.Erase(s.prefill.Start(func(ctx context.Context) (F, error) {
			return s.load(ctx, id)
		})))
	}
	return s.build()
}

func (s *formScreen[F]) build() tea.Cmd {
	s.form = AutoForm(s.fields)
	return s.form.Init()
}

func (s *formScreen[F]) Loading() bool {
	return s.prefill.Loading || s.save.Loading
}

// Capturing is true while the form is shown: letters belong to the inputs.
func (s *formScreen[F]) Capturing() bool { return s.form != nil }

func (s *formScreen[F]) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case controller.Result[F]:
		if s.prefill.Err != nil {
			return s, Back
		}
		*s.fields = s.prefill.Data
		return s, s.build()

	case controller.Result[int]:
		if s.save.Err != nil {
			// The facade already reported the failure; let the user retry.
			return s, s.build()
		}
		notify.Success(s.env.Notifier, "%s", s.saved)
		return s, Replace(controller.Route{Path: s.route.Path, ID: s.save.Data, Page: 1})

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, Back
		}
	}

	if s.form == nil || s.save.Loading {
		return s, nil
	}

	m, cmd := s.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.form = nil
		id, values := s.route.ID, *s.fields
		return s, run(controller.Erase(s.save.Start(func(ctx context.Context) (int, error) {
			return s.saveFn(ctx, id, values)
		})))
	case huh.StateAborted:
		return s, Back
	}
	return s, cmd
}

func (s *formScreen[F]) View() string {
	body := StyleSubtitle.Render("Loading...")
	switch {
	case s.save.Loading:
		body = StyleStatusWarn.Render("Saving...")
	case s.form != nil:
		body = s.form.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, StyleTitle.Render(s.title), StyleCard.Render(body))
}

func (s *formScreen[F]) Hints() []string {
	return []string{"enter next", "esc cancel"}
}

func newFormScreen[F any](env *Env, r controller.Route, title, saved string) *formScreen[F] {
	b := newBase(env, r)
	return &formScreen[F]{
		base:    b,
		title:   title,
		saved:   saved,
		fields:  new(F),
		prefill: controller.NewLoader[F](b.life),
		save:    controller.NewLoader[int](b.life),
	}
}

func newWordFormScreen(env *Env, r controller.Route) Screen {
	title := "New word"
	if r.ID > 0 {
		title = fmt.Sprintf("Edit word #%d", r.ID)
	}
	s := newFormScreen[wordFields](env, r, title, "Word saved")
	s.load = func(ctx context.Context, id int) (wordFields, error) {
		w, err := env.API.Word(ctx, id)
		return wordFields{Portuguese: w.Portuguese, English: w.English}, err
	}
	s.saveFn = func(ctx context.Context, id int, f wordFields) (int, error) {
		in := models.WordInput{Portuguese: f.Portuguese, English: f.English}
		var w models.Word
		var err error
		if id > 0 {
			w, err = env.API.UpdateWord(ctx, id, in)
		} else {
			w, err = env.API.CreateWord(ctx, in)
		}
		if w.ID == 0 {
			return id, err
		}
		return w.ID, err
	}
	return s
}

func newGroupFormScreen(env *Env, r controller.Route) Screen {
	title := "New group"
	if r.ID > 0 {
		title = fmt.Sprintf("Edit group #%d", r.ID)
	}
	s := newFormScreen[groupFields](env, r, title, "Group saved")
	s.load = func(ctx context.Context, id int) (groupFields, error) {
		g, err := env.API.Group(ctx, id)
		return groupFields{Name: g.Name}, err
	}
	s.saveFn = func(ctx context.Context, id int, f groupFields) (int, error) {
		in := models.GroupInput{Name: f.Name}
		var g models.Group
		var err error
		if id > 0 {
			g, err = env.API.UpdateGroup(ctx, id, in)
		} else {
			g, err = env.API.CreateGroup(ctx, in)
		}
		if g.ID == 0 {
			return id, err
		}
		return g.ID, err
	}
	return s
}
