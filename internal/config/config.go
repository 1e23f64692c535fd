package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	ErrInvalidBackend = errors.New("config: WORD_SKETCH_PREFS must be \"file\" or \"sqlite\"")
	ErrInvalidSeed    = errors.New("config: WORD_SKETCH_SEED must be an integer")
	ErrInvalidBrush   = errors.New("config: WORD_SKETCH_BRUSH must be a positive integer")
	ErrEmptyRecorder  = errors.New("config: WORD_SKETCH_RECORDER is empty")
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

const defaultRecorder = "arecord -q -d 5 -f S16_LE -r 16000 -t wav"

// Config holds the application configuration.
type Config struct {
	SaveDir      string
	PrefsBackend string
	Language     string
	LogFile      string
	LogLevel     log.Level
	MetricsAddr  string
	Seed         *uint64
	GeminiAPIKey string
	Recorder     []string
	BrushWidth   int
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		SaveDir:      getEnv("WORD_SKETCH_SAVE_DIR", ".word-sketch"),
		PrefsBackend: getEnv("WORD_SKETCH_PREFS", BackendFile),
		Language:     getEnv("WORD_SKETCH_LANGUAGE", "hi"),
		MetricsAddr:  os.Getenv("WORD_SKETCH_METRICS_ADDR"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Recorder:     strings.Fields(getEnv("WORD_SKETCH_RECORDER", defaultRecorder)),
	}
	cfg.LogFile = getEnv("WORD_SKETCH_LOG_FILE", filepath.Join(cfg.SaveDir, "word-sketch.log"))

	if cfg.PrefsBackend != BackendFile && cfg.PrefsBackend != BackendSQLite {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidBackend, cfg.PrefsBackend)
	}
	if len(cfg.Recorder) == 0 {
		return nil, ErrEmptyRecorder
	}

	level, err := log.ParseLevel(getEnv("WORD_SKETCH_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("config: WORD_SKETCH_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if v := os.Getenv("WORD_SKETCH_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w, got %q", ErrInvalidSeed, v)
		}
		seed := uint64(n)
		cfg.Seed = &seed
	}

	width, err := strconv.Atoi(getEnv("WORD_SKETCH_BRUSH", "8"))
	if err != nil || width < 1 {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidBrush, os.Getenv("WORD_SKETCH_BRUSH"))
	}
	cfg.BrushWidth = width

	return cfg, nil
}

// PrefsPath is where the selected backend keeps preferences.
func (c *Config) PrefsPath() string {
	if c.PrefsBackend == BackendSQLite {
		return filepath.Join(c.SaveDir, "preferences.db")
	}
	return c.SaveDir
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
