package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/brand"
	"grimm.is/langportal/internal/config"
	"grimm.is/langportal/internal/i18n"
	"grimm.is/langportal/internal/logging"
	"grimm.is/langportal/internal/metrics"
	"grimm.is/langportal/internal/notify"
	render "grimm.is/langportal/internal/ui/tui"
)

// Printer is the localized printer for CLI output.
var Printer = i18n.NewCLIPrinter()

// Globals are the flags accepted before the command name.
type Globals struct {
	ConfigPath    string
	APIURL        string
	Mock          *bool
	Debug         bool
	JSON          bool
	MetricsListen string

	// AllowInvalidConfig keeps going when the configuration fails
	// validation; the failure is kept in App.ConfigErr.
	AllowInvalidConfig bool
}

// ParseGlobals parses the global flags and returns the remaining arguments,
// starting with the command name.
func ParseGlobals(args []string) (Globals, []string, error) {
	var g Globals
	fs := flag.NewFlagSet(brand.LowerName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&g.ConfigPath, "config", "", "Configuration file")
	fs.StringVar(&g.APIURL, "api-url", "", "Backend base URL")
	mock := fs.Bool("mock", false, "Use the built-in data set instead of the backend")
	fs.BoolVar(&g.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&g.JSON, "json", false, "Print JSON instead of tables")
	fs.StringVar(&g.MetricsListen, "metrics-listen", "", "Serve prometheus metrics on this address (console only)")

	if err := fs.Parse(args); err != nil {
		return g, nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "mock" {
			g.Mock = mock
		}
	})
	return g, fs.Args(), nil
}

// App holds what every command needs.
type App struct {
	Config   *config.Config
	API      *api.Client
	Logger   *logging.Logger
	Metrics  *metrics.Registry
	Notifier notify.Notifier
	Render   *render.Renderer
	Out      io.Writer
	JSON     bool

	// ConfigErr is the validation failure of Config when
	// Globals.AllowInvalidConfig let it through.
	ConfigErr error

	// Center collects notifications for the console.
	Center *notify.Center

	logFile io.Closer
}

// NewApp loads the configuration and builds the API facade. Interactive
// apps log to a file, if at all, and collect notifications in a Center;
// the others log and report to stderr.
func NewApp(g Globals, interactive bool) (*App, error) {
	cfg, err := config.Load(g.ConfigPath, config.Overrides{
		APIURL: &g.APIURL,
		Mock:   g.Mock,
		Debug:  g.Debug,
	})
	var invalid config.ValidationErrors
	if err != nil && !(g.AllowInvalidConfig && errors.As(err, &invalid)) {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		ConfigErr: err,
		Metrics: metrics.Get(),
		Render:  render.NewRenderer(100),
		Out:     os.Stdout,
		JSON:    g.JSON,
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil && a.ConfigErr == nil {
		return nil, err
	}
	logCfg := logging.Config{Level: level, Output: os.Stderr, JSON: cfg.Log.JSON}
	path := cfg.Log.File
	if interactive && path == "" && g.Debug {
		path = brand.LowerName + ".log"
	}
	switch {
	case path != "":
		f, err := logging.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		logCfg.Output = f
		a.Logger = logging.New(logCfg)
	case interactive:
		a.Logger = logging.Discard()
	default:
		if !g.Debug {
			logCfg.Level = max(level, logging.LevelWarn)
		}
		a.Logger = logging.New(logCfg)
	}
	logging.SetDefault(a.Logger)

	if interactive {
		a.Center = notify.NewCenter(32, nil)
		a.Notifier = a.Center
	} else {
		a.Notifier = notify.NewWriter(os.Stderr)
	}

	live := api.NewHTTPProvider(cfg.API.BaseURL,
		api.WithUserAgent(cfg.API.UserAgent),
		api.WithLogger(a.Logger),
	)
	a.API = api.New(cfg.API, live, api.NewStaticProvider(),
		api.WithNotifier(a.Notifier),
		api.WithClientLogger(a.Logger),
		api.WithMetrics(a.Metrics),
	)
	return a, nil
}

// Close releases the log file, if any.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
