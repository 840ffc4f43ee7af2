package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/controller"
	"grimm.is/langportal/internal/i18n"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/ui"
)

// splitArgs separates leading positional arguments from flags so that
// "group 3 --page 2" parses like "group --page 2 3".
func splitArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		pos = append(pos, args[0])
		args = args[1:]
	}
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return append(pos, fs.Args()...), nil
}

func parseID(kind string, pos []string, i int) (int, error) {
	if len(pos) <= i {
		return 0, fmt.Errorf("missing %s id", kind)
	}
	id, err := strconv.Atoi(pos[i])
	if err != nil || id < 1 {
		return 0, errors.New(Printer.Sprintf(i18n.MsgInvalidID, kind, pos[i]))
	}
	return id, nil
}

// emit prints v as indented JSON in JSON mode, otherwise the text returned
// by render.
func (a *App) emit(v any, render func() string) error {
	if a.JSON {
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(a.Out, render())
	return err
}

func (a *App) when(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return humanize.Time(t)
}

func (a *App) table(v ui.View, p *models.Pagination) string {
	out := a.Render.RenderView(v)
	if p != nil {
		if pager := a.Render.RenderPager(*p); pager != "" {
			out += "\n" + pager
		}
	}
	return out
}

func runList[T any](ctx context.Context, a *App, name, path string, args []string, list func(api.Provider, *controller.Lifetime) *controller.List[T], tbl ui.Table[T]) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	page := fs.Int("page", 1, "Page number")
	var query *string
	if path == controller.PathWords {
		query = fs.String("q", "", "Only show words matching this text")
	}
	if _, err := splitArgs(fs, args); err != nil {
		return err
	}

	r := controller.Route{Path: path, Page: *page}
	if query != nil {
		r = r.WithQuery(*query).WithPage(*page)
	}

	life := controller.NewLifetime(ctx)
	defer life.Close()
	l := list(a.API, life)
	if err := l.Load(r); err != nil {
		return err
	}

	if l.Searching() {
		tbl.EmptyText = ui.EmptyWordsMatching(r.Query)
	}
	visible := l.Visible()
	return a.emit(visible, func() string {
		p := visible.Pagination
		return a.table(ui.Project(tbl, visible.Items, false), &p)
	})
}

// RunWords lists words: words [--page N] [-q text]
func RunWords(ctx context.Context, a *App, args []string) error {
	return runList(ctx, a, "words", controller.PathWords, args, controller.Words, ui.WordsTable())
}

// RunGroups lists word groups.
func RunGroups(ctx context.Context, a *App, args []string) error {
	return runList(ctx, a, "groups", controller.PathGroups, args, controller.Groups, ui.GroupsTable())
}

// RunSessions lists study sessions.
func RunSessions(ctx context.Context, a *App, args []string) error {
	return runList(ctx, a, "sessions", controller.PathSessions, args, controller.Sessions, ui.SessionsTable(a.when))
}

// RunActivities lists the study activities.
func RunActivities(ctx context.Context, a *App, args []string) error {
	life := controller.NewLifetime(ctx)
	defer life.Close()
	c := controller.NewActivities(a.API, life)
	if err := c.Load(); err != nil {
		return err
	}
	return a.emit(c.Data, func() string {
		return a.table(ui.Project(ui.ActivitiesTable(), c.Data, false), nil)
	})
}

// detailArgs parses "<id> [--page N]".
func detailArgs(name, kind string, args []string) (controller.Route, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	page := fs.Int("page", 1, "Page number")
	pos, err := splitArgs(fs, args)
	if err != nil {
		return controller.Route{}, err
	}
	id, err := parseID(kind, pos, 0)
	if err != nil {
		return controller.Route{}, err
	}
	return controller.Route{ID: id, Page: max(*page, 1)}, nil
}

// RunWord shows one word and the groups it belongs to.
func RunWord(ctx context.Context, a *App, args []string) error {
	r, err := detailArgs("word", "word", args)
	if err != nil {
		return err
	}
	life := controller.NewLifetime(ctx)
	defer life.Close()
	d := controller.WordShow(a.API, life)
	if err := d.Load(r.ID); err != nil {
		return err
	}

	w := d.Data
	return a.emit(w, func() string {
		return lipgloss.JoinVertical(lipgloss.Left,
			a.Render.RenderFields(w.Portuguese, ui.WordFields(w)),
			"",
			a.table(ui.Project(ui.GroupRefsTable(), w.Groups, false), nil),
		)
	})
}

// RunGroup shows a group with a page of its words and its sessions.
func RunGroup(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet("group", flag.ContinueOnError)
	page := fs.Int("page", 1, "Words page")
	sessionsPage := fs.Int("sessions-page", 1, "Study sessions page")
	pos, err := splitArgs(fs, args)
	if err != nil {
		return err
	}
	id, err := parseID("group", pos, 0)
	if err != nil {
		return err
	}
	r := controller.Route{ID: id, Page: max(*page, 1)}.WithSessionsPage(*sessionsPage)

	life := controller.NewLifetime(ctx)
	defer life.Close()
	g := controller.NewGroupShow(a.API, life)
	if err := g.Load(r); err != nil {
		return err
	}

	out := struct {
		Group    models.GroupDetail                `json:"group"`
		Words    models.Page[models.Word]         `json:"words"`
		Sessions models.Page[models.StudySession] `json:"study_sessions"`
	}{g.Group.Data, g.Words.Data, g.Sessions.Data}
	return a.emit(out, func() string {
		words := ui.WordsTable()
		words.Title = "Words"
		sessions := ui.SessionsTable(a.when)
		sessions.Title = "Study Sessions"
		return lipgloss.JoinVertical(lipgloss.Left,
			a.Render.RenderFields(out.Group.Name, ui.GroupFields(out.Group)),
			"",
			a.table(ui.Project(words, out.Words.Items, false), &out.Words.Pagination),
			"",
			a.table(ui.Project(sessions, out.Sessions.Items, false), &out.Sessions.Pagination),
		)
	})
}

// RunSession shows a study session and the words reviewed in it.
func RunSession(ctx context.Context, a *App, args []string) error {
	r, err := detailArgs("session", "session", args)
	if err != nil {
		return err
	}
	life := controller.NewLifetime(ctx)
	defer life.Close()
	s := controller.NewSessionShow(a.API, life)
	if err := s.Load(r); err != nil {
		return err
	}

	out := struct {
		Session models.StudySessionDetail `json:"session"`
		Words   models.Page[models.Word]  `json:"words"`
	}{s.Session.Data, s.Words.Data}
	return a.emit(out, func() string {
		words := ui.WordsTable()
		words.Title = "Reviewed Words"
		return lipgloss.JoinVertical(lipgloss.Left,
			a.Render.RenderFields(out.Session.ActivityName, ui.SessionFields(out.Session, a.when)),
			"",
			a.table(ui.Project(words, out.Words.Items, false), &out.Words.Pagination),
		)
	})
}

// RunActivity shows an activity and a page of its past sessions.
func RunActivity(ctx context.Context, a *App, args []string) error {
	r, err := detailArgs("activity", "activity", args)
	if err != nil {
		return err
	}
	life := controller.NewLifetime(ctx)
	defer life.Close()
	s := controller.NewActivityShow(a.API, life)
	if err := s.Load(r); err != nil {
		return err
	}

	out := struct {
		Activity models.StudyActivity             `json:"activity"`
		Sessions models.Page[models.StudySession] `json:"study_sessions"`
	}{s.Activity.Data, s.Sessions.Data}
	return a.emit(out, func() string {
		sessions := ui.SessionsTable(a.when)
		sessions.Title = "Study Sessions"
		return lipgloss.JoinVertical(lipgloss.Left,
			a.Render.RenderFields(out.Activity.Name, ui.ActivityFields(out.Activity)),
			"",
			a.table(ui.Project(sessions, out.Sessions.Items, false), &out.Sessions.Pagination),
		)
	})
}

// RunDashboard prints the last session, study progress and quick stats.
// Each part falls back to its defaults independently.
func RunDashboard(ctx context.Context, a *App, args []string) error {
	life := controller.NewLifetime(ctx)
	defer life.Close()
	d := controller.NewDashboard(a.API, life)
	_ = d.Load()

	out := struct {
		LastStudySession *models.LastStudySession `json:"last_study_session"`
		StudyProgress    models.StudyProgress     `json:"study_progress"`
		QuickStats       models.QuickStats        `json:"quick_stats"`
	}{d.Last.Data, d.Progress.Data, d.Stats.Data}

	return a.emit(out, func() string {
		last := "No sessions yet"
		if s := out.LastStudySession; s != nil {
			last = fmt.Sprintf("%s (%s)", s.GroupName, a.when(s.CreatedAt))
		}
		p, st := out.StudyProgress, out.QuickStats
		return strings.Join([]string{
			a.Render.RenderStat("Last session", last),
			a.Render.RenderStat("Words studied", fmt.Sprintf("%d / %d (%d%%)", p.TotalWordsStudied, p.TotalAvailableWords, p.Percent())),
			a.Render.RenderStat("Success rate", fmt.Sprintf("%.0f%%", st.SuccessRate)),
			a.Render.RenderStat("Study sessions", strconv.Itoa(st.TotalStudySessions)),
			a.Render.RenderStat("Active groups", strconv.Itoa(st.TotalActiveGroups)),
			a.Render.RenderStat("Study streak", fmt.Sprintf("%d days", st.StudyStreakDays)),
			a.Render.RenderStat("Mastery", fmt.Sprintf("%d%%", st.Mastery())),
		}, "\n")
	})
}
