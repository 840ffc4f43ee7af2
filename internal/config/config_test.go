package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.False(t, cfg.API.Mock)
	assert.Equal(t, DefaultToastSeconds, cfg.UI.ToastSeconds)
	assert.NoError(t, cfg.Validate())
}

func TestLoadHCL(t *testing.T) {
	src := `
api {
  base_url = "https://vocab.example.com/api"
  mock     = true
}

log {
  level = "debug"
}
`
	cfg, err := LoadHCL([]byte(src), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, "https://vocab.example.com/api", cfg.API.BaseURL)
	assert.True(t, cfg.API.Mock)
	assert.NotEmpty(t, cfg.API.UserAgent)
	assert.Equal(t, "debug", cfg.Log.Level)
	// ui block omitted entirely
	require.NotNil(t, cfg.UI)
	assert.Equal(t, DefaultLaunchBaseURL, cfg.UI.LaunchBaseURL)
}

func TestLoadHCLVariables(t *testing.T) {
	src := `
log {
  file = "${config_dir}/portal.log"
}
`
	cfg, err := LoadHCL([]byte(src), filepath.Join("etc", "langportal", "langportal.hcl"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("etc", "langportal")+"/portal.log", cfg.Log.File)

	_, err = LoadHCL([]byte(`log { file = "${nope}/x.log" }`), "bad.hcl")
	assert.Error(t, err)
}

func TestLoadHCLErrors(t *testing.T) {
	_, err := LoadHCL([]byte(`api {`), "bad.hcl")
	assert.Error(t, err)

	_, err = LoadHCL([]byte(`unknown = 1`), "bad.hcl")
	assert.Error(t, err)
}

func TestLoadFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"hcl", "portal.hcl", "api {\n  base_url = \"http://h:1/api\"\n}\n"},
		{"json", "portal.json", `{"api": {"base_url": "http://h:1/api"}}`},
		{"yaml", "portal.yaml", "api:\n  base_url: http://h:1/api\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "http://h:1/api", cfg.API.BaseURL)
			assert.Equal(t, path, cfg.Path)
			assert.Equal(t, DefaultToastSeconds, cfg.UI.ToastSeconds)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LANGPORTAL_API_URL":    "http://env:9/api",
		"LANGPORTAL_MOCK":       "1",
		"LANGPORTAL_LOG_LEVEL":  "warn",
		"LANGPORTAL_LOG_JSON":   "true",
		"LANGPORTAL_LAUNCH_URL": "http://launch:1",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, lookup))
	assert.Equal(t, "http://env:9/api", cfg.API.BaseURL)
	assert.True(t, cfg.API.Mock)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "http://launch:1", cfg.UI.LaunchBaseURL)

	env["LANGPORTAL_MOCK"] = "maybe"
	assert.Error(t, ApplyEnv(Default(), lookup))
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, "portal.hcl", "api {\n  base_url = \"http://file:1/api\"\n  mock = false\n}\n")

	t.Run("file beats defaults", func(t *testing.T) {
		cfg, err := Load(path, Overrides{})
		require.NoError(t, err)
		assert.Equal(t, "http://file:1/api", cfg.API.BaseURL)
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("LANGPORTAL_API_URL", "http://env:1/api")
		cfg, err := Load(path, Overrides{})
		require.NoError(t, err)
		assert.Equal(t, "http://env:1/api", cfg.API.BaseURL)
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv("LANGPORTAL_API_URL", "http://env:1/api")
		t.Setenv("LANGPORTAL_MOCK", "false")
		url := "http://flag:1/api"
		mock := true
		cfg, err := Load(path, Overrides{APIURL: &url, Mock: &mock, Debug: true})
		require.NoError(t, err)
		assert.Equal(t, "http://flag:1/api", cfg.API.BaseURL)
		assert.True(t, cfg.API.Mock)
		assert.Equal(t, "debug", cfg.Log.Level)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"), Overrides{})
	assert.Error(t, err)

	t.Setenv("LANGPORTAL_CONFIG_DIR", t.TempDir())
	cfg, err := Load("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "ftp://nope"
	cfg.UI.ToastSeconds = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
	assert.True(t, strings.Contains(err.Error(), "api.base_url"))

	// Mock mode does not need a reachable backend.
	cfg = Default()
	cfg.API.Mock = true
	cfg.API.BaseURL = ""
	assert.NoError(t, cfg.Validate())
}

func TestSerialize(t *testing.T) {
	cfg := Default()

	hcl := string(cfg.HCL())
	assert.Contains(t, hcl, "api {")
	assert.Contains(t, hcl, `base_url`)

	back, err := LoadHCL(cfg.HCL(), "roundtrip.hcl")
	require.NoError(t, err)
	assert.Equal(t, cfg.API.BaseURL, back.API.BaseURL)

	js, err := cfg.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(js), `"toast_seconds": 4`)

	y, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(y), "toast_seconds: 4")
}
