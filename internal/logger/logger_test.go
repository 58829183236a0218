package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "dunehall.log")

	// 1MB is the smallest size lumberjack accepts.
	cfg := FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1}
	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	// ~250 bytes a line, well past 1MB in total.
	row := strings.Repeat("#", 200)
	terrainLog := Named("terrain").Sugar()
	for i := range 6000 {
		terrainLog.Infof("grid row %d: %s", i, row)
	}
	Sync()

	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("active log file missing: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}
	var rotated []string
	for _, e := range entries {
		name := e.Name()
		if name == "dunehall.log" || !strings.HasPrefix(name, "dunehall-") {
			continue
		}
		// lumberjack appends a local timestamp: dunehall-2006-01-02T15-04-05.000.log
		if !strings.HasSuffix(name, ".log") || !strings.Contains(name, "-20") {
			t.Errorf("rotated file %s has an unexpected name", name)
		}
		rotated = append(rotated, name)
	}
	if len(rotated) == 0 {
		t.Error("no rotated files found")
	}
	if len(rotated) > cfg.MaxBackups {
		t.Errorf("kept %d backups, want at most %d", len(rotated), cfg.MaxBackups)
	}
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	all := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	tests := []struct {
		level string
		first int // index into all of the quietest level written
	}{
		{"error", 3},
		{"warn", 2},
		{"info", 1},
		{"debug", 0},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			if err := InitWithFileConfig(tt.level, FileConfig{Path: logFile, MaxSizeMB: 10}, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			view := Named("view")
			view.Debug("transition")
			Info("scene uploaded")
			Warn("drum below terrain")
			Error("render error")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			out := string(content)
			for i, lvl := range all {
				if got, want := strings.Contains(out, lvl), i >= tt.first; got != want {
					t.Errorf("level %s: %s present = %v, want %v", tt.level, lvl, got, want)
				}
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	if cfg.Path != "/tmp/test.log" {
		t.Errorf("expected path /tmp/test.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 {
		t.Errorf("expected MaxSizeMB 50, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 7 {
		t.Errorf("expected MaxAgeDays 7, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}

func TestNamedCarriesComponent(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "named.log")

	if err := InitWithFileConfig("debug", FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	Named("view").Debug("transition")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "view") || !strings.Contains(string(content), "transition") {
		t.Errorf("component name missing from %q", content)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"info", "info"},
		{"verbose", "info"},
		{"", "info"},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in).String(); got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSampledDropsRepeats(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "sampled.log")
	if err := InitWithFileConfig("debug", FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	log := Sampled("input", 2, 1000)
	for range 50 {
		log.Debug("drag")
	}
	Named("input").Debug("drag end")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	n := strings.Count(string(content), "drag\n")
	// A second boundary during the loop can reset the counter once.
	if n < 1 || n > 4 {
		t.Errorf("expected 1-4 sampled lines, got %d", n)
	}
	if !strings.Contains(string(content), "drag end") {
		t.Error("unsampled logger lost its entry")
	}
}
