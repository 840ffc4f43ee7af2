package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v2"

	"grimm.is/langportal/internal/brand"
)

// Overrides carries command-line flag values. Nil fields were not set.
type Overrides struct {
	APIURL *string
	Mock   *bool
	Debug  bool
}

// Load resolves the effective configuration. path may be empty, in which
// case the default path is used if the file exists. An explicit path that
// does not exist is an error. When only validation fails the resolved
// configuration is returned along with the ValidationErrors.
func Load(path string, o Overrides) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = brand.DefaultConfigPath()
	}

	cfg, err := LoadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = Default()
	default:
		return nil, err
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	o.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile loads a config file (HCL, JSON or YAML) and fills defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cfg, err = LoadJSON(data)
	case ".yaml", ".yml":
		cfg, err = LoadYAML(data)
	default:
		cfg, err = LoadHCL(data, path)
	}
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// evalContext exposes ${home} and ${config_dir} to HCL expressions.
func evalContext(filename string) *hcl.EvalContext {
	home, _ := os.UserHomeDir()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home":       cty.StringVal(home),
			"config_dir": cty.StringVal(filepath.Dir(filename)),
		},
	}
}

// LoadHCL loads config from HCL bytes. Strings may interpolate ${home} and
// ${config_dir}, the directory holding filename.
func LoadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse error: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, evalContext(filename), &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("HCL decode error: %s", diags.Error())
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// LoadJSON loads config from JSON bytes.
func LoadJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// LoadYAML loads config from YAML bytes.
func LoadYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// ApplyEnv applies LANGPORTAL_* environment overrides using lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(brand.Env("API_URL")); ok && v != "" {
		cfg.API.BaseURL = v
	}
	if v, ok := lookup(brand.Env("MOCK")); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", brand.Env("MOCK"), err)
		}
		cfg.API.Mock = b
	}
	if v, ok := lookup(brand.Env("LOG_LEVEL")); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(brand.Env("LOG_JSON")); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", brand.Env("LOG_JSON"), err)
		}
		cfg.Log.JSON = b
	}
	if v, ok := lookup(brand.Env("LAUNCH_URL")); ok && v != "" {
		cfg.UI.LaunchBaseURL = v
	}
	return nil
}

func (o Overrides) apply(cfg *Config) {
	if o.APIURL != nil && *o.APIURL != "" {
		cfg.API.BaseURL = *o.APIURL
	}
	if o.Mock != nil {
		cfg.API.Mock = *o.Mock
	}
	if o.Debug {
		cfg.Log.Level = "debug"
	}
}
