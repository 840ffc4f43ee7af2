package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"grimm.is/langportal/cmd"
	"grimm.is/langportal/internal/brand"
	"grimm.is/langportal/internal/i18n"
)

var printer = i18n.NewCLIPrinter()

type runFunc func(ctx context.Context, a *cmd.App, args []string) error

var commands = map[string]runFunc{
	"dashboard":  cmd.RunDashboard,
	"words":      cmd.RunWords,
	"word":       cmd.RunWord,
	"groups":     cmd.RunGroups,
	"group":      cmd.RunGroup,
	"sessions":   cmd.RunSessions,
	"session":    cmd.RunSession,
	"activities": cmd.RunActivities,
	"activity":   cmd.RunActivity,
	"launch":     cmd.RunLaunch,
	"review":     cmd.RunReview,
	"reset":      cmd.RunReset,
	"config":     cmd.RunConfig,
	"check":      cmd.RunCheck,
}

func main() {
	g, args, err := cmd.ParseGlobals(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage()
			return
		}
		printer.Fprintf(os.Stderr, i18n.MsgError, err)
		printUsage()
		os.Exit(2)
	}

	name := "console"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	switch name {
	case "version":
		printer.Printf("%s %s (%s)\n", brand.Name, brand.Version, brand.GitCommit)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	run, ok := commands[name]
	interactive := name == "console"
	if !ok && !interactive {
		printer.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// check reports an invalid configuration instead of refusing to start.
	g.AllowInvalidConfig = name == "check"
	app, err := cmd.NewApp(g, interactive)
	if err != nil {
		printer.Fprintf(os.Stderr, i18n.MsgError, err)
		os.Exit(1)
	}
	defer app.Close()

	if interactive {
		err = cmd.RunConsole(ctx, app, args, g.MetricsListen)
	} else {
		err = run(ctx, app, args)
	}
	if err != nil {
		printer.Fprintf(os.Stderr, i18n.MsgError, err)
		app.Close()
		os.Exit(1)
	}
}

func printUsage() {
	printer.Printf(`%s - vocabulary study portal

Usage:
  %s [global options] <command> [options]

Commands:
  console [route]       Interactive console (default), e.g. console /words/3
  dashboard             Last session, study progress and quick stats
  words                 List words
                        Options: --page N, -q <text>
  word <id>             Show a word and its groups
  groups                List word groups (--page N)
  group <id>            Show a group with its words and sessions
                        Options: --page N, --sessions-page N
  sessions              List study sessions (--page N)
  session <id>          Show a study session and its reviewed words (--page N)
  activities            List study activities
  activity <id>         Show an activity and its sessions (--page N)
  launch <activity-id>  Start a study session
                        Options: --group G (asks when omitted)
  review <session-id> <word-id> --correct|--wrong
                        Record an answer
  reset history|full    Reset study history or the whole system (--yes)
  config [--diff]       Print the effective configuration
                        Options: --format hcl|json|yaml
  check                 Validate the configuration and probe the backend
                        Options: --timeout 5s
  version               Print version information

Global options:
  --config <file>       Configuration file (default %s)
  --api-url <url>       Backend base URL
  --mock                Use the built-in data set
  --debug               Debug logging (console logs to %s.log)
  --json                Print JSON instead of tables
  --metrics-listen <addr>
                        Serve prometheus metrics while the console runs
`, brand.Name, brand.BinaryName, brand.DefaultConfigPath(), brand.LowerName)
}
