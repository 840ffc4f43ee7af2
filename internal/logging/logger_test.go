package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf, JSON: true})
	if logger == nil {
		t.Fatal("New logger should not be nil")
	}

	t.Run("Levels", func(t *testing.T) {
		for _, tc := range []struct {
			log func(string, ...any)
			msg string
		}{
			{logger.Debug, "debug msg"},
			{logger.Info, "info msg"},
			{logger.Warn, "warn msg"},
			{logger.Error, "error msg"},
		} {
			buf.Reset()
			tc.log(tc.msg)
			if !strings.Contains(buf.String(), tc.msg) {
				t.Errorf("expected %q in output, got %q", tc.msg, buf.String())
			}
		}
	})

	t.Run("DynamicLevel", func(t *testing.T) {
		logger.SetLevel(LevelError)
		if logger.GetLevel() != LevelError {
			t.Error("SetLevel failed")
		}

		buf.Reset()
		logger.Info("should not appear")
		if buf.Len() > 0 {
			t.Error("Logged info message when level was Error")
		}

		logger.SetLevel(LevelDebug)
	})

	t.Run("WithComponent", func(t *testing.T) {
		buf.Reset()
		logger.WithComponent("api").Info("msg")
		if !strings.Contains(buf.String(), `"component":"api"`) {
			t.Errorf("WithComponent missing component field: %s", buf.String())
		}
	})

	t.Run("WithFields", func(t *testing.T) {
		buf.Reset()
		logger.WithFields(map[string]any{"foo": "bar"}).Info("msg")
		if !strings.Contains(buf.String(), "foo") || !strings.Contains(buf.String(), "bar") {
			t.Error("WithFields missing fields")
		}
	})
}

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	logger.WithComponent("API").Info("request failed", "operation", "words", "error", "connection refused")

	line := buf.String()
	for _, want := range []string{"langportal[", "[info]", "api: request failed", "operation=words", `error="connection refused"`} {
		if !strings.Contains(line, want) {
			t.Errorf("console line %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "component=") {
		t.Error("component should be promoted to the header, not repeated as attribute")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"":        LevelInfo,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDefaultLogger(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default logger is nil")
	}

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	prev := Default()
	SetDefault(New(cfg))
	defer SetDefault(prev)

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	WithComponent("comp").Info("comp msg")

	if !strings.Contains(buf.String(), "comp: comp msg") {
		t.Errorf("Default logger output unexpected: %q", buf.String())
	}
	if strings.Contains(buf.String(), "] debug") {
		t.Error("debug should be filtered at the default info level")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
}
