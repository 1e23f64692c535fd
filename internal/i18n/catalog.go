// Package i18n resolves localized strings and word content for the game.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/tatianab/word-sketch/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

const (
	Hindi   = "hi"
	English = "en"
)

// content is the language-independent part of the catalog.
type content struct {
	DefaultLanguage string           `yaml:"default_language"`
	Languages       []string         `yaml:"languages"`
	Words           []models.WordKey `yaml:"words"`
	Celebrations    []string         `yaml:"celebrations"`
	Stickers        []string         `yaml:"stickers"`
}

// locale holds every string table for one language.
type locale struct {
	Words   map[models.WordKey]string   `yaml:"words"`
	Clues   map[models.WordKey]string   `yaml:"clues"`
	Twists  map[models.WordKey][]string `yaml:"twists"`
	Strings map[string]string           `yaml:"strings"`
}

// Catalog is the immutable set of words, prompts and UI strings.
type Catalog struct {
	content content
	locales map[string]*locale
}

// Load parses the catalog embedded in the binary.
func Load() (*Catalog, error) {
	contentData, err := localesFS.ReadFile("locales/content.yaml")
	if err != nil {
		return nil, err
	}

	paths, err := fs.Glob(localesFS, "locales/*.yaml")
	if err != nil {
		return nil, err
	}
	locales := make(map[string][]byte, len(paths))
	for _, p := range paths {
		lang := strings.TrimSuffix(path.Base(p), ".yaml")
		if lang == "content" {
			continue
		}
		data, err := localesFS.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", lang, err)
		}
		locales[lang] = data
	}
	return Parse(contentData, locales)
}

// Parse builds a catalog from a content document and one document per
// language code.
func Parse(contentData []byte, locales map[string][]byte) (*Catalog, error) {
	var c content
	if err := yaml.Unmarshal(contentData, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if len(c.Words) == 0 {
		return nil, fmt.Errorf("catalog has no words")
	}
	if len(c.Languages) == 0 {
		return nil, fmt.Errorf("catalog has no languages")
	}
	if !slices.Contains(c.Languages, c.DefaultLanguage) {
		return nil, fmt.Errorf("default language %q is not one of %v", c.DefaultLanguage, c.Languages)
	}

	cat := &Catalog{content: c, locales: make(map[string]*locale, len(c.Languages))}
	for _, lang := range c.Languages {
		data, ok := locales[lang]
		if !ok {
			return nil, fmt.Errorf("missing locale %q", lang)
		}
		var loc locale
		if err := yaml.Unmarshal(data, &loc); err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", lang, err)
		}
		cat.locales[lang] = &loc
	}
	return cat, nil
}

// WordKeys returns the fixed, ordered word sequence.
func (c *Catalog) WordKeys() []models.WordKey {
	return slices.Clone(c.content.Words)
}

// Languages returns the supported language codes in display order.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.content.Languages)
}

// DefaultLanguage is used when no valid preference exists.
func (c *Catalog) DefaultLanguage() string {
	return c.content.DefaultLanguage
}

// Supported reports whether lang is one of the catalog's languages.
func (c *Catalog) Supported(lang string) bool {
	_, ok := c.locales[lang]
	return ok
}

// Celebrations returns the translation keys of the celebration messages.
func (c *Catalog) Celebrations() []string {
	return slices.Clone(c.content.Celebrations)
}

// Stickers returns the translation keys of the celebration stickers.
func (c *Catalog) Stickers() []string {
	return slices.Clone(c.content.Stickers)
}
