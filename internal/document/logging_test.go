package document

import (
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf strings.Builder
	log := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("low-severity messages leaked: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("high-severity messages missing: %q", out)
	}
}

func TestLoggerFieldsAppear(t *testing.T) {
	var buf strings.Builder
	log := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	log.WithComponent("layout").Info("recomputed")

	if !strings.Contains(buf.String(), "component=layout") {
		t.Errorf("component field missing: %q", buf.String())
	}
}

func TestLoggerFormatsArgs(t *testing.T) {
	var buf strings.Builder
	log := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "vellum"})

	log.Info("laid out %d lines", 42)

	out := buf.String()
	if !strings.Contains(out, "laid out 42 lines") {
		t.Errorf("args not formatted: %q", out)
	}
	if !strings.Contains(out, "vellum") || !strings.Contains(out, "[INFO]") {
		t.Errorf("prefix or level missing: %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"ERROR", LogLevelError},
		{"bogus", LogLevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLogLevel(tc.in); got != tc.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNullLoggerDiscards(t *testing.T) {
	// Must not panic despite having no output writer.
	NullLogger.Error("nothing to see")
}
