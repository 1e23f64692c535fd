package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/word-sketch/internal/config"
	"github.com/tatianab/word-sketch/internal/engine"
	"github.com/tatianab/word-sketch/internal/models"
	"github.com/tatianab/word-sketch/internal/prefs"
	"github.com/tatianab/word-sketch/internal/speech"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	seed := uint64(1)
	cfg := &config.Config{
		SaveDir:      dir,
		PrefsBackend: backend,
		Language:     "hi",
		LogFile:      filepath.Join(dir, "logs", "word-sketch.log"),
		Seed:         &seed,
		Recorder:     []string{"arecord"},
		BrushWidth:   8,
	}
	return cfg
}

func TestNewUsesStoredLanguage(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)

			a, err := New(ctx, cfg)
			require.NoError(t, err)
			assert.Equal(t, "hi", a.Engine.Language())
			assert.IsType(t, speech.Unavailable{}, a.Capture)
			assert.Equal(t, models.ScreenIntro, a.Engine.Screen())

			require.NoError(t, a.Engine.SetLanguage("en"))
			require.NoError(t, prefs.SaveLanguage(ctx, a.Prefs, a.Engine.Language()))
			require.NoError(t, a.Close())

			a, err = New(ctx, cfg)
			require.NoError(t, err)
			defer a.Close()
			assert.Equal(t, "en", a.Engine.Language())

			info, err := os.Stat(cfg.LogFile)
			require.NoError(t, err)
			assert.Positive(t, info.Size(), "startup is logged")
		})
	}
}

func TestNewRejectsUnsupportedLanguage(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	cfg.Language = "fr"
	_, err := New(context.Background(), cfg)
	assert.ErrorIs(t, err, engine.ErrUnsupportedLanguage)
}

func TestCloseIsIdempotent(t *testing.T) {
	a, err := New(context.Background(), testConfig(t, config.BackendFile))
	require.NoError(t, err)
	assert.NoError(t, a.Close())
	assert.NoError(t, a.Close())
}
