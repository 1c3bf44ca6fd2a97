package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	mdwlog "github.com/msto63/scaliger/foundation/core/log"
)

func bufferLogger(t *testing.T, level, format string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{
		ServiceName: "test",
		Level:       level,
		Format:      format,
		Output:      &buf,
	})
	return Wrap(l, "test"), &buf
}

func TestNew(t *testing.T) {
	logger := New("test-service")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.Name() != "test-service" {
		t.Errorf("Name() = %v, want test-service", logger.Name())
	}
}

func TestLogger_WithLevel(t *testing.T) {
	logger, buf := bufferLogger(t, "info", "json")
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug message written at info level: %s", buf.String())
	}

	debug := logger.WithLevel(mdwlog.LevelDebug)
	if debug.Name() != "test" {
		t.Errorf("name should be preserved: got %v", debug.Name())
	}
	debug.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug message missing after WithLevel: %q", buf.String())
	}
}

func TestLogger_JSONFields(t *testing.T) {
	logger, buf := bufferLogger(t, "debug", "json")
	logger.Info("resolved", "jd", 2451545, "reform", "italy", "err", errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "resolved" {
		t.Errorf("message = %v, want resolved", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["jd"] != float64(2451545) {
		t.Errorf("jd = %v, want 2451545", entry["jd"])
	}
	if entry["err"] != "boom" {
		t.Errorf("err = %v, want boom", entry["err"])
	}
	if entry["logger"] != "test" {
		t.Errorf("logger = %v, want test", entry["logger"])
	}
}

func TestLogger_With(t *testing.T) {
	logger, buf := bufferLogger(t, "info", "logfmt")
	logger.With("component", "cache").Warn("evicted", "key", "k1")

	out := buf.String()
	for _, want := range []string{`component="cache"`, `key="k1"`, "evicted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLogger_OddKeyValues(t *testing.T) {
	logger, buf := bufferLogger(t, "info", "json")

	// The orphan key is dropped.
	logger.Info("message", "key1", "value1", "orphan")
	if strings.Contains(buf.String(), "orphan") {
		t.Errorf("orphan key logged: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected mdwlog.Level
	}{
		{"debug", mdwlog.LevelDebug},
		{"info", mdwlog.LevelInfo},
		{"warn", mdwlog.LevelWarn},
		{"warning", mdwlog.LevelWarn},
		{"error", mdwlog.LevelError},
		{"invalid", mdwlog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if got := parseFormat("text"); got != mdwlog.FormatText {
		t.Errorf("parseFormat(text) = %v, want text", got)
	}
	if got := parseFormat("xml"); got != mdwlog.FormatJSON {
		t.Errorf("parseFormat(xml) = %v, want json", got)
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")
	cfg := DefaultLoggerConfig("my-service")

	if cfg.ServiceName != "my-service" {
		t.Errorf("ServiceName = %v, want my-service", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %v, want json", cfg.Format)
	}
}

func TestDefaultLoggerConfig_Env(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "text")
	cfg := DefaultLoggerConfig("svc")

	if cfg.Level != "debug" || cfg.Format != "text" {
		t.Errorf("DefaultLoggerConfig() = %+v, want debug/text from environment", cfg)
	}
}

func TestNewServiceLogger(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	logger := NewServiceLogger("svc", "error")
	if logger.GetLevel() != mdwlog.LevelError {
		t.Errorf("GetLevel() = %v, want error", logger.GetLevel())
	}
}

func TestAdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	l := NewLogger(LoggerConfig{
		ServiceName:       "test",
		Level:             "info",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})
	l.Info("twice")

	if !strings.Contains(primary.String(), "twice") || !strings.Contains(extra.String(), "twice") {
		t.Errorf("outputs = %q and %q, want the message in both", primary.String(), extra.String())
	}
}

func TestToFields(t *testing.T) {
	fields := toFields()
	if fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields = toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	// Non-string keys are skipped
	fields = toFields(123, "value")
	if len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := Wrap(NewLogger(LoggerConfig{ServiceName: "benchmark", Output: &buf}), "benchmark")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
