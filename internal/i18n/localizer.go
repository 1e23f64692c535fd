package i18n

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tatianab/word-sketch/internal/models"
)

// Localizer answers lookups against a Catalog. Lookups never fail: a miss
// resolves to the caller's fallback and is logged at debug level.
type Localizer struct {
	cat    *Catalog
	logger *log.Logger
}

// NewLocalizer returns a Localizer over cat. A nil logger discards misses.
func NewLocalizer(cat *Catalog, logger *log.Logger) *Localizer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Localizer{cat: cat, logger: logger.WithPrefix("i18n")}
}

// Catalog returns the underlying catalog.
func (l *Localizer) Catalog() *Catalog {
	return l.cat
}

// Resolve returns the template for key in lang with every %name% placeholder
// substituted from replacements. An unknown key or language yields fallback,
// or the key itself when fallback is empty.
func (l *Localizer) Resolve(lang, key, fallback string, replacements map[string]string) string {
	text, ok := l.lookup(lang, key)
	if !ok {
		l.logger.Debug("missing translation", "lang", lang, "key", key)
		text = fallback
		if text == "" {
			text = key
		}
	}
	return Substitute(text, replacements)
}

// Substitute replaces every %name% in template with replacements[name].
// Keys are applied in sorted order so the result is deterministic.
func Substitute(template string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return template
	}
	names := make([]string, 0, len(replacements))
	for name := range replacements {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		template = strings.ReplaceAll(template, "%"+name+"%", replacements[name])
	}
	return template
}

func (l *Localizer) lookup(lang, key string) (string, bool) {
	loc, ok := l.cat.locales[lang]
	if !ok {
		return "", false
	}
	text, ok := loc.Strings[key]
	return text, ok && text != ""
}

// Word returns the display string of a word key, or fallback.
func (l *Localizer) Word(lang string, key models.WordKey, fallback string) string {
	if loc, ok := l.cat.locales[lang]; ok {
		if w, ok := loc.Words[key]; ok && w != "" {
			return w
		}
	}
	l.logger.Debug("missing word", "lang", lang, "word", key)
	return fallback
}

// Clue returns the clue for a word key, or fallback.
func (l *Localizer) Clue(lang string, key models.WordKey, fallback string) string {
	if loc, ok := l.cat.locales[lang]; ok {
		if c, ok := loc.Clues[key]; ok && c != "" {
			return c
		}
	}
	l.logger.Debug("missing clue", "lang", lang, "word", key)
	return fallback
}

// Twists returns the twist prompt variants for a word key. The result is
// empty for unknown words or languages.
func (l *Localizer) Twists(lang string, key models.WordKey) []string {
	if loc, ok := l.cat.locales[lang]; ok {
		return slices.Clone(loc.Twists[key])
	}
	return nil
}
