// Package prefs stores the one setting that survives between sessions:
// the selected language.
package prefs

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tatianab/word-sketch/internal/models"
)

// Store reads and writes the persisted preferences.
type Store interface {
	Load(ctx context.Context) (*models.Preferences, error)
	Save(ctx context.Context, p *models.Preferences) error
	Close() error
}

// FileStore keeps preferences in a YAML file under a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Load(context.Context) (*models.Preferences, error) {
	return models.LoadPreferences(s.dir)
}

func (s *FileStore) Save(_ context.Context, p *models.Preferences) error {
	return p.Save(s.dir)
}

func (s *FileStore) Close() error { return nil }

// LoadLanguage returns the stored language when it is one of supported,
// and fallback otherwise. A store that cannot be read is logged and
// treated as empty.
func LoadLanguage(ctx context.Context, s Store, supported func(string) bool, fallback string, logger *log.Logger) string {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p, err := s.Load(ctx)
	if err != nil {
		logger.Warn("could not read preferences", "err", err)
		return fallback
	}
	if p.Language == "" {
		return fallback
	}
	if !supported(p.Language) {
		logger.Warn("ignoring stored language", "language", p.Language)
		return fallback
	}
	return p.Language
}

// SaveLanguage persists lang, keeping any other stored preferences.
func SaveLanguage(ctx context.Context, s Store, lang string) error {
	p, err := s.Load(ctx)
	if err != nil {
		p = &models.Preferences{}
	}
	p.Language = lang
	return s.Save(ctx, p)
}
