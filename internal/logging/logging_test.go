package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func Test_Logging_ParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func Test_Logging_Text_Filters_By_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: "warn", Output: &buf})
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered:\n%s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "k=1") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
}

func Test_Logging_JSON_Format(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: "debug", Format: "json", Output: &buf})
	log.Debug("parse done", "tokens", 3)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not json: %v\n%s", err, buf.String())
	}
	if rec["msg"] != "parse done" || rec["tokens"] != float64(3) {
		t.Fatalf("unexpected record %v", rec)
	}
}

func Test_Logging_Discard_Is_Silent(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("discard logger should be disabled at every level")
	}
}
