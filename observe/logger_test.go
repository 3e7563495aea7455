package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_IncludesMonitorFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf).WithMonitor(ParseMonitorID("postgres:connections"))

	logger.Info(context.Background(), "probe started")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]

	if e["monitor.id"] != "postgres:connections" {
		t.Errorf("expected monitor.id='postgres:connections', got %v", e["monitor.id"])
	}
	if e["monitor.component"] != "postgres" {
		t.Errorf("expected monitor.component='postgres', got %v", e["monitor.component"])
	}
	if e["monitor.measurement"] != "connections" {
		t.Errorf("expected monitor.measurement='connections', got %v", e["monitor.measurement"])
	}
	if e["msg"] != "probe started" {
		t.Errorf("expected msg='probe started', got %v", e["msg"])
	}
	if _, ok := e["timestamp"].(string); !ok {
		t.Errorf("expected timestamp string, got %v", e["timestamp"])
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		configured string
		log        func(Logger)
		wantLevel  string
		wantLogged bool
	}{
		{"debug", func(l Logger) { l.Debug(context.Background(), "m") }, "debug", true},
		{"info", func(l Logger) { l.Debug(context.Background(), "m") }, "", false},
		{"info", func(l Logger) { l.Info(context.Background(), "m") }, "info", true},
		{"warn", func(l Logger) { l.Info(context.Background(), "m") }, "", false},
		{"warn", func(l Logger) { l.Warn(context.Background(), "m") }, "warn", true},
		{"error", func(l Logger) { l.Warn(context.Background(), "m") }, "", false},
		{"error", func(l Logger) { l.Error(context.Background(), "m") }, "error", true},
	}

	for _, tt := range tests {
		t.Run(tt.configured+"_"+tt.wantLevel, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLoggerWithWriter(tt.configured, &buf))

			entries := decodeLines(t, &buf)
			if !tt.wantLogged {
				if len(entries) != 0 {
					t.Errorf("expected entry to be filtered, got %v", entries)
				}
				return
			}
			if len(entries) != 1 || entries[0]["level"] != tt.wantLevel {
				t.Errorf("expected one %s entry, got %v", tt.wantLevel, entries)
			}
		})
	}
}

func TestLogger_RedactsSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Error(context.Background(), "collect failed",
		Field{Key: "dsn", Value: "postgres://admin:hunter2@db"},
		Field{Key: "error", Value: "timeout"},
	)

	if strings.Contains(buf.String(), "hunter2") {
		t.Error("dsn should be redacted, but found in output")
	}

	e := decodeLines(t, &buf)[0]
	if e["dsn"] != "[REDACTED]" {
		t.Errorf("expected dsn='[REDACTED]', got %v", e["dsn"])
	}
	if e["error"] != "timeout" {
		t.Errorf("expected error='timeout', got %v", e["error"])
	}
}

func TestLogger_WithMonitorDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter("info", &buf)
	_ = base.WithMonitor(MonitorMeta{ComponentName: "a", MeasurementName: "b"})

	base.Info(context.Background(), "plain")

	e := decodeLines(t, &buf)[0]
	if _, ok := e["monitor.id"]; ok {
		t.Error("base logger should not carry monitor fields")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
