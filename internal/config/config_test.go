package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

var allVars = []string{
	"WORD_SKETCH_SAVE_DIR", "WORD_SKETCH_PREFS", "WORD_SKETCH_LANGUAGE",
	"WORD_SKETCH_LOG_FILE", "WORD_SKETCH_LOG_LEVEL", "WORD_SKETCH_METRICS_ADDR",
	"WORD_SKETCH_SEED", "GEMINI_API_KEY", "WORD_SKETCH_RECORDER", "WORD_SKETCH_BRUSH",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SaveDir != ".word-sketch" {
		t.Errorf("SaveDir = %q", cfg.SaveDir)
	}
	if cfg.PrefsBackend != BackendFile || cfg.PrefsPath() != ".word-sketch" {
		t.Errorf("backend = %q, path = %q", cfg.PrefsBackend, cfg.PrefsPath())
	}
	if cfg.Language != "hi" {
		t.Errorf("Language = %q", cfg.Language)
	}
	if want := filepath.Join(".word-sketch", "word-sketch.log"); cfg.LogFile != want {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, want)
	}
	if cfg.LogLevel != log.InfoLevel {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.Seed != nil {
		t.Errorf("Seed = %d, want unset", *cfg.Seed)
	}
	if cfg.BrushWidth != 8 {
		t.Errorf("BrushWidth = %d", cfg.BrushWidth)
	}
	if len(cfg.Recorder) == 0 || cfg.Recorder[0] != "arecord" {
		t.Errorf("Recorder = %v", cfg.Recorder)
	}
	if cfg.GeminiAPIKey != "" || cfg.MetricsAddr != "" {
		t.Errorf("optional settings should be empty: %+v", cfg)
	}
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORD_SKETCH_SAVE_DIR", "/tmp/ws")
	t.Setenv("WORD_SKETCH_PREFS", "sqlite")
	t.Setenv("WORD_SKETCH_LANGUAGE", "en")
	t.Setenv("WORD_SKETCH_LOG_LEVEL", "debug")
	t.Setenv("WORD_SKETCH_SEED", "-3")
	t.Setenv("WORD_SKETCH_BRUSH", "12")
	t.Setenv("WORD_SKETCH_RECORDER", "rec -q")
	t.Setenv("WORD_SKETCH_METRICS_ADDR", ":9090")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PrefsPath() != filepath.Join("/tmp/ws", "preferences.db") {
		t.Errorf("PrefsPath = %q", cfg.PrefsPath())
	}
	if cfg.LogFile != filepath.Join("/tmp/ws", "word-sketch.log") {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.LogLevel != log.DebugLevel {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.Seed == nil || *cfg.Seed != uint64(0xfffffffffffffffd) {
		t.Errorf("Seed = %v", cfg.Seed)
	}
	if cfg.BrushWidth != 12 || cfg.Language != "en" || cfg.MetricsAddr != ":9090" || cfg.GeminiAPIKey != "k" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.Recorder) != 2 || cfg.Recorder[1] != "-q" {
		t.Errorf("Recorder = %v", cfg.Recorder)
	}
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		key, value string
		want       error
	}{
		{"WORD_SKETCH_PREFS", "postgres", ErrInvalidBackend},
		{"WORD_SKETCH_SEED", "abc", ErrInvalidSeed},
		{"WORD_SKETCH_BRUSH", "0", ErrInvalidBrush},
		{"WORD_SKETCH_BRUSH", "wide", ErrInvalidBrush},
		{"WORD_SKETCH_RECORDER", "   ", ErrEmptyRecorder},
		{"WORD_SKETCH_LOG_LEVEL", "loud", nil},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			if err == nil {
				t.Fatal("LoadConfig succeeded, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
