package cmd

import (
	"context"
	"errors"
	"flag"
	"time"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/health"
	"grimm.is/langportal/internal/i18n"
	"grimm.is/langportal/internal/ui"
)

var checksTable = ui.Table[health.Check]{
	Columns: []ui.Column[health.Check]{
		{Header: "Check", Field: "name", Style: ui.StyleBold},
		{Header: "Status", Field: "status"},
		{Header: "Message", Field: "message", Style: ui.StyleMuted},
		{Header: "Took", Value: func(c health.Check) string { return c.Duration.Round(time.Millisecond).String() }},
	},
}

// RunCheck validates the configuration and probes the backend. It fails
// when any check is unhealthy.
func RunCheck(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 5*time.Second, "Backend probe timeout")
	if _, err := splitArgs(fs, args); err != nil {
		return err
	}

	c := health.NewChecker(health.WithTTL(0))
	c.Register("config", health.Probe(health.StatusUnhealthy, "valid", func(context.Context) error {
		return a.ConfigErr
	}))
	c.Register("mode", func(context.Context) health.Check {
		if a.API.Mode() == api.ModeMock {
			return health.Check{Status: health.StatusDegraded, Message: Printer.Sprintf(i18n.MsgUsingMock)}
		}
		return health.Check{Status: health.StatusHealthy, Message: Printer.Sprintf(i18n.MsgUsingLive)}
	})
	// The raw provider is probed so that a failure is reported once, here.
	c.Register("backend", health.Probe(health.StatusUnhealthy, a.Config.API.BaseURL, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		_, err := a.API.Provider().StudyActivities(ctx)
		return err
	}))

	report := c.Check(ctx)
	checks := make([]health.Check, 0, len(report.Checks))
	for _, name := range report.Names() {
		checks = append(checks, report.Checks[name])
	}
	if err := a.emit(report, func() string {
		return a.table(ui.Project(checksTable, checks, false), nil)
	}); err != nil {
		return err
	}

	if report.Status == health.StatusUnhealthy {
		return errors.New("one or more checks failed")
	}
	return nil
}
