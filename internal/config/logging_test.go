package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLog(t *testing.T) {
	// Just verify it doesn't panic
	s := &Settings{Root: ".", Workers: 1}
	Log(s)
}

func TestLogWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Root: "/repo",
		Scan: ScanSettings{
			FileTypes:      []string{"md", "ts"},
			ExcludeFolders: []string{".git"},
			MaxDepth:       4,
			OutputDir:      ".wiki-tree",
		},
		Workers: 2,
	}

	LogWithLogger(s, logger)

	output := buf.String()
	for _, want := range []string{"root", "value=/repo", "value=md,ts", "scan.max_depth", "value=.wiki-tree"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in log output, got: %s", want, output)
		}
	}
	if strings.Contains(output, "include_code_comments") {
		t.Error("Expected no include_code_comments line when disabled")
	}
	// debug lines are dropped at the default level
	if strings.Contains(output, "lock_timeout") {
		t.Error("Expected lock_timeout to be logged at debug level only")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("Expected info message to be filtered at warn level")
	}
	if !strings.Contains(output, "shown") {
		t.Error("Expected warn message in output")
	}

	buf.Reset()
	NewLogger(&buf, "bogus").Info("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Error("Expected unknown level to fall back to info")
	}
}

func TestSettingsLogValue(t *testing.T) {
	val := SettingsLogValue(Settings{Root: "/repo", Workers: 2})
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
}
