package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/huh"

	"grimm.is/langportal/internal/controller"
)

// confirm asks a yes/no question. It is replaced in tests.
var confirm = func(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Reset").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

// RunReset clears study data: reset history|full [--yes]
func RunReset(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	pos, err := splitArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 || (pos[0] != "history" && pos[0] != "full") {
		return fmt.Errorf("usage: reset history|full [--yes]")
	}

	title, desc := "Reset study history?", "All study sessions and review counts are deleted."
	if pos[0] == "full" {
		title, desc = "Reset the whole system?", "All words, groups and study history return to their initial state."
	}
	if !*yes {
		ok, err := confirm(title, desc)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	life := controller.NewLifetime(ctx)
	defer life.Close()
	s := controller.NewSettings(a.API, a.Notifier, life)
	if pos[0] == "full" {
		return s.ResetFull()
	}
	return s.ResetHistory()
}
