// Package brand provides centralized naming constants for the portal.
//
// The identity is loaded from brand.json at compile time via go:embed so that
// the dev server and the client agree on names and defaults.
package brand

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information
type Brand struct {
	Name            string `json:"name"`
	LowerName       string `json:"lowerName"`
	Description     string `json:"description"`
	Tagline         string `json:"tagline"`
	Repository      string `json:"repository"`
	ConfigEnvPrefix string `json:"configEnvPrefix"`
	ConfigFileName  string `json:"configFileName"`
	BinaryName      string `json:"binaryName"`
	DefaultAPIURL   string `json:"defaultAPIURL"`
	License         string `json:"license"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Description = b.Description
	Tagline = b.Tagline
	ConfigEnvPrefix = b.ConfigEnvPrefix
	ConfigFileName = b.ConfigFileName
	BinaryName = b.BinaryName
	DefaultAPIURL = b.DefaultAPIURL
}

var (
	Name            string
	LowerName       string
	Description     string
	Tagline         string
	ConfigEnvPrefix string
	ConfigFileName  string
	BinaryName      string
	DefaultAPIURL   string

	// Version is set at build time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// UserAgent returns a User-Agent string for HTTP requests
func UserAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return LowerName + "/" + version
}

// Env returns the prefixed environment variable name, e.g. Env("MOCK") is
// LANGPORTAL_MOCK.
func Env(suffix string) string {
	return ConfigEnvPrefix + "_" + suffix
}

// GetConfigDir returns the config directory.
// Priority: LANGPORTAL_CONFIG_DIR > $XDG_CONFIG_HOME/langportal > ~/.config/langportal
func GetConfigDir() string {
	if dir := os.Getenv(Env("CONFIG_DIR")); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, LowerName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", LowerName)
}

// DefaultConfigPath returns the path of the config file in GetConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}
