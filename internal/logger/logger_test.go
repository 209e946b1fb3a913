package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Init("dcon-test", slog.LevelInfo, "json", &buf)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	logger.Debug("hidden")
	logger.Info("converted", "numeral", "0x2a")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["service"] != "dcon-test" {
		t.Errorf("expected service=dcon-test, got %v", rec["service"])
	}
	if rec["numeral"] != "0x2a" {
		t.Errorf("expected numeral=0x2a, got %v", rec["numeral"])
	}
}

func TestInit_Text(t *testing.T) {
	var buf bytes.Buffer
	Init("dcalc", slog.LevelDebug, "text", &buf).Debug("key", "rune", "7")

	if !strings.Contains(buf.String(), "service=dcalc") {
		t.Errorf("expected service attr in %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not enable any level")
	}
}

func TestOutput_Fallback(t *testing.T) {
	var buf bytes.Buffer
	w, c := Output("", &buf)
	if w != &buf || c != nil {
		t.Fatalf("expected fallback writer and nil closer, got %T %v", w, c)
	}
}

func TestOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dcon.log")
	w, c := Output(path, nil)
	if c == nil {
		t.Fatal("expected a closer for file output")
	}

	Init("dcon-test", slog.LevelInfo, "text", w).Info("to file")
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "msg=\"to file\"") {
		t.Errorf("log file missing record: %q", data)
	}
}
