package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/charmbracelet/huh"

	"grimm.is/langportal/internal/controller"
	"grimm.is/langportal/internal/i18n"
	"grimm.is/langportal/internal/models"
)

// pickGroup asks for a word group. It is replaced in tests.
var pickGroup = func(groups []models.Group, selected *int) error {
	opts := make([]huh.Option[int], len(groups))
	for i, g := range groups {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (%d words)", g.Name, g.WordCount), g.ID)
	}
	return huh.NewSelect[int]().
		Title("Word group").
		Options(opts...).
		Value(selected).
		Run()
}

// RunLaunch starts a study session: launch <activity-id> [--group G]
func RunLaunch(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet("launch", flag.ContinueOnError)
	group := fs.Int("group", 0, "Word group id")
	pos, err := splitArgs(fs, args)
	if err != nil {
		return err
	}
	activityID, err := parseID("activity", pos, 0)
	if err != nil {
		return err
	}

	life := controller.NewLifetime(ctx)
	defer life.Close()
	l := controller.NewLaunch(a.API, a.Notifier, life, a.Config.UI.LaunchBaseURL)
	if err := l.Load(activityID); err != nil {
		return err
	}

	switch groups := l.Groups.Data.Items; {
	case *group > 0:
		l.SelectGroup(*group)
	case len(groups) > 1:
		if err := pickGroup(groups, &l.GroupID); err != nil {
			return err
		}
	}

	url, err := l.Launch()
	if err != nil {
		return err
	}

	res := l.Result.Data
	out := struct {
		SessionID int    `json:"session_id"`
		GroupID   int    `json:"group_id"`
		URL       string `json:"url"`
	}{res.ID, res.GroupID, url}
	if a.JSON {
		return a.emit(out, nil)
	}
	Printer.Fprintf(a.Out, i18n.MsgLaunchOpenedAt, url)
	return nil
}

// RunReview records an answer: review <session-id> <word-id> --correct|--wrong
func RunReview(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet("review", flag.ContinueOnError)
	correct := fs.Bool("correct", false, "The answer was correct")
	wrong := fs.Bool("wrong", false, "The answer was wrong")
	pos, err := splitArgs(fs, args)
	if err != nil {
		return err
	}
	sessionID, err := parseID("session", pos, 0)
	if err != nil {
		return err
	}
	wordID, err := parseID("word", pos, 1)
	if err != nil {
		return err
	}
	if *correct == *wrong {
		return errors.New("exactly one of --correct and --wrong is required")
	}

	res, err := a.API.SubmitReview(ctx, sessionID, models.ReviewInput{WordID: wordID, Correct: *correct})
	if err != nil {
		return err
	}
	return a.emit(res, func() string {
		verdict := "wrong"
		if *correct {
			verdict = "correct"
		}
		return fmt.Sprintf("Recorded %s answer for word %d in session %d", verdict, wordID, sessionID)
	})
}
