// Package config loads the portal configuration.
//
// Values are resolved in order of precedence: command-line flags, then
// LANGPORTAL_* environment variables, then the configuration file, then
// built-in defaults. The file may be HCL, JSON or YAML.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"grimm.is/langportal/internal/brand"
)

// Config is the top-level portal configuration.
type Config struct {
	API *APIConfig `hcl:"api,block" json:"api" yaml:"api"`
	UI  *UIConfig  `hcl:"ui,block" json:"ui" yaml:"ui"`
	Log *LogConfig `hcl:"log,block" json:"log" yaml:"log"`

	// Path is the file the configuration was loaded from, if any.
	Path string `json:"-" yaml:"-"`
}

// APIConfig selects the backend.
type APIConfig struct {
	BaseURL   string `hcl:"base_url,optional" json:"base_url" yaml:"base_url"`
	Mock      bool   `hcl:"mock,optional" json:"mock" yaml:"mock"`
	UserAgent string `hcl:"user_agent,optional" json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// UIConfig controls the terminal interface.
type UIConfig struct {
	// LaunchBaseURL is where launched study activities are opened.
	LaunchBaseURL string `hcl:"launch_base_url,optional" json:"launch_base_url" yaml:"launch_base_url"`
	ToastSeconds  int    `hcl:"toast_seconds,optional" json:"toast_seconds" yaml:"toast_seconds"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `hcl:"level,optional" json:"level" yaml:"level"`
	JSON  bool   `hcl:"json,optional" json:"json" yaml:"json"`
	File  string `hcl:"file,optional" json:"file,omitempty" yaml:"file,omitempty"`
}

// Defaults
const (
	DefaultLaunchBaseURL = "http://localhost:8081"
	DefaultToastSeconds  = 4
	DefaultLogLevel      = "info"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: &APIConfig{
			BaseURL:   brand.DefaultAPIURL,
			UserAgent: brand.UserAgent(brand.Version),
		},
		UI: &UIConfig{
			LaunchBaseURL: DefaultLaunchBaseURL,
			ToastSeconds:  DefaultToastSeconds,
		},
		Log: &LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// fillDefaults fills blocks and fields left empty by a partial file.
func (c *Config) fillDefaults() {
	d := Default()
	if c.API == nil {
		c.API = d.API
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = d.API.UserAgent
	}
	if c.UI == nil {
		c.UI = d.UI
	}
	if c.UI.LaunchBaseURL == "" {
		c.UI.LaunchBaseURL = d.UI.LaunchBaseURL
	}
	if c.UI.ToastSeconds == 0 {
		c.UI.ToastSeconds = d.UI.ToastSeconds
	}
	if c.Log == nil {
		c.Log = d.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration. The base URL is only checked when the
// live backend is used.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if !c.API.Mock {
		if err := checkHTTPURL(c.API.BaseURL); err != nil {
			errs = append(errs, ValidationError{Field: "api.base_url", Message: err.Error()})
		}
	}
	if c.UI.LaunchBaseURL != "" {
		if err := checkHTTPURL(c.UI.LaunchBaseURL); err != nil {
			errs = append(errs, ValidationError{Field: "ui.launch_base_url", Message: err.Error()})
		}
	}
	if c.UI.ToastSeconds < 1 {
		errs = append(errs, ValidationError{Field: "ui.toast_seconds", Message: "must be at least 1"})
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
