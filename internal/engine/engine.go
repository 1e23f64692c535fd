// Package engine is the game flow controller: it owns the game state,
// moves between screens and answers everything a screen needs to render.
package engine

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tatianab/word-sketch/internal/analytics"
	"github.com/tatianab/word-sketch/internal/i18n"
	"github.com/tatianab/word-sketch/internal/models"
	"github.com/tatianab/word-sketch/internal/survey"
)

var (
	ErrUnsupportedLanguage = errors.New("engine: unsupported language")
	ErrNoWords             = errors.New("engine: no words to play")
	ErrNoSurvey            = errors.New("engine: survey is not running")
)

var screenViewEvents = map[models.Screen]string{
	models.ScreenIntro:     analytics.EventIntroScreenView,
	models.ScreenPlay:      analytics.EventPlayScreenView,
	models.ScreenCelebrate: analytics.EventCelebrateScreenView,
	models.ScreenSurvey:    analytics.EventSurveyScreenView,
	models.ScreenEnd:       analytics.EventEndScreenView,
}

// Engine is the game flow controller. It is the only writer of the game
// state; it is not safe for concurrent use.
type Engine struct {
	loc    *i18n.Localizer
	sink   analytics.Sink
	logger *log.Logger
	now    func() time.Time
	rng    *rand.Rand

	words     []models.WordKey
	lang      string
	sessionID string

	state       models.GameState
	screenStart time.Time

	// Variant seeds, re-rolled on screen entry and resolved at render time
	// so a language switch keeps the same pick.
	twistSeed       uint64
	celebrationSeed uint64
	stickerSeed     uint64

	survey *survey.Session
}

type Option func(*Engine)

// WithSink sends analytics events to sink. A sink that panics is logged
// and ignored.
func WithSink(sink analytics.Sink) Option {
	return func(e *Engine) { e.sink = sink }
}

func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithClock replaces time.Now for screen timing and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSeed makes every variant roll reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewPCG(seed, seed)) }
}

// WithLanguage sets the starting language instead of the catalog default.
func WithLanguage(lang string) Option {
	return func(e *Engine) { e.lang = lang }
}

// WithWords replaces the catalog's word sequence.
func WithWords(words []models.WordKey) Option {
	return func(e *Engine) { e.words = words }
}

func WithSessionID(id string) Option {
	return func(e *Engine) { e.sessionID = id }
}

// NewEngine returns a controller on the intro screen of round one.
func NewEngine(loc *i18n.Localizer, opts ...Option) (*Engine, error) {
	cat := loc.Catalog()
	e := &Engine{
		loc:       loc,
		sink:      analytics.Discard,
		now:       time.Now,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		words:     cat.WordKeys(),
		lang:      cat.DefaultLanguage(),
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.logger = e.logger.WithPrefix("engine")
	e.sink = analytics.Safe(e.sink, e.logger)

	if len(e.words) == 0 {
		return nil, ErrNoWords
	}
	if !cat.Supported(e.lang) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, e.lang)
	}

	e.state = e.initialState()
	e.screenStart = e.now()
	e.viewed()
	return e, nil
}

func (e *Engine) initialState() models.GameState {
	return models.GameState{
		CurrentRound:   1,
		CurrentScreen:  models.ScreenIntro,
		CurrentWordKey: e.words[0],
		TotalRounds:    len(e.words),
	}
}

// Advance performs the screen's forward transition. It reports false when
// the current screen has none (Survey and End).
func (e *Engine) Advance() bool {
	switch e.state.CurrentScreen {
	case models.ScreenIntro:
		e.enter(models.ScreenPlay)
	case models.ScreenPlay:
		e.enter(models.ScreenCelebrate)
	case models.ScreenCelebrate:
		done := e.state.CurrentWordKey
		e.state.CompletedWordKeys = append(e.state.CompletedWordKeys, done)
		e.emit(analytics.EventWordCompleted, map[string]any{"completed": len(e.state.CompletedWordKeys)})

		if e.state.CurrentRound < e.state.TotalRounds {
			e.state.CurrentRound++
			e.state.CurrentWordKey = e.words[e.state.CurrentRound-1]
			e.enter(models.ScreenIntro)
			return true
		}
		e.emit(analytics.EventGameCompleted, map[string]any{"words_learned": len(e.state.CompletedWordKeys)})
		e.enter(models.ScreenSurvey)
	default:
		e.logger.Debug("advance ignored", "screen", e.state.CurrentScreen)
		return false
	}
	return true
}

// GoToEnd leaves the survey for the end screen. It is a no-op elsewhere.
func (e *Engine) GoToEnd() bool {
	if e.state.CurrentScreen != models.ScreenSurvey {
		e.logger.Debug("go to end ignored", "screen", e.state.CurrentScreen)
		return false
	}
	e.emit(analytics.EventGameFullyCompleted, map[string]any{"words_learned": len(e.state.CompletedWordKeys)})
	e.enter(models.ScreenEnd)
	return true
}

// Reset returns to round one's intro screen from anywhere.
func (e *Engine) Reset() {
	if e.state.CurrentScreen == models.ScreenEnd {
		e.emit(analytics.EventRestartFromEnd, map[string]any{"words_learned": len(e.state.CompletedWordKeys)})
	}
	e.emit(analytics.EventGameReset, map[string]any{"from_screen": e.state.CurrentScreen.String()})

	prev := e.state.CurrentScreen
	e.state = e.initialState()
	e.state.CurrentScreen = prev
	e.survey = nil
	e.enter(models.ScreenIntro)
}

// enter switches to next, closing the timing of the screen being left and
// rolling whatever the new screen shows at random.
func (e *Engine) enter(next models.Screen) {
	now := e.now()
	prev := e.state.CurrentScreen
	e.emit(analytics.EventScreenDuration, map[string]any{
		"previous_screen": prev.String(),
		"duration_ms":     now.Sub(e.screenStart).Milliseconds(),
	})

	e.state.CurrentScreen = next
	e.screenStart = now
	e.logger.Debug("screen", "from", prev, "to", next, "round", e.state.CurrentRound, "word", e.state.CurrentWordKey)

	switch next {
	case models.ScreenPlay:
		e.twistSeed = e.rng.Uint64()
		e.emit(analytics.EventWordStarted, nil)
	case models.ScreenCelebrate:
		e.twistSeed = e.rng.Uint64()
		e.celebrationSeed = e.rng.Uint64()
		e.stickerSeed = e.rng.Uint64()
	case models.ScreenSurvey:
		e.survey = survey.NewSession(
			survey.WithSink(e.sink),
			survey.WithProps(e.props),
			survey.OnComplete(func(models.SurveyAnswers) { e.GoToEnd() }),
		)
	}
	e.viewed()
}

func (e *Engine) viewed() {
	screen := e.state.CurrentScreen
	e.emit(analytics.EventScreenView, map[string]any{"screen_name": screen.String()})
	e.emit(screenViewEvents[screen], nil)
}

func (e *Engine) props() map[string]any {
	return map[string]any{
		"session_id":   e.sessionID,
		"timestamp":    e.now().UnixMilli(),
		"round":        e.state.CurrentRound,
		"total_rounds": e.state.TotalRounds,
		"word":         string(e.state.CurrentWordKey),
		"language":     e.lang,
	}
}

func (e *Engine) emit(name string, extra map[string]any) {
	props := e.props()
	maps.Copy(props, extra)
	e.sink.Emit(name, props)
}

// State returns a copy of the game state.
func (e *Engine) State() models.GameState { return e.state.Clone() }

func (e *Engine) Screen() models.Screen { return e.state.CurrentScreen }
func (e *Engine) SessionID() string { return e.sessionID }

// ScreenStartedAt is when the current screen was entered.
func (e *Engine) ScreenStartedAt() time.Time { return e.screenStart }

// IsGameComplete reports whether every round has been played.
func (e *Engine) IsGameComplete() bool { return e.state.CurrentScreen == models.ScreenSurvey }

// IsFullyComplete reports whether the end screen has been reached.
func (e *Engine) IsFullyComplete() bool { return e.state.CurrentScreen == models.ScreenEnd }

func (e *Engine) Language() string { return e.lang }

// SetLanguage switches the display language.
func (e *Engine) SetLanguage(lang string) error {
	if !e.loc.Catalog().Supported(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if lang == e.lang {
		return nil
	}
	prev := e.lang
	e.lang = lang
	e.emit(analytics.EventLanguageChanged, map[string]any{"from": prev, "to": lang})
	return nil
}

// ToggleLanguage switches to the next supported language and returns it.
func (e *Engine) ToggleLanguage() string {
	langs := e.loc.Catalog().Languages()
	next := langs[0]
	for i, l := range langs {
		if l == e.lang {
			next = langs[(i+1)%len(langs)]
			break
		}
	}
	if err := e.SetLanguage(next); err != nil {
		e.logger.Warn("toggle language", "err", err)
	}
	return e.lang
}

// Text resolves a UI string in the current language.
func (e *Engine) Text(key string, replacements map[string]string) string {
	return e.loc.Resolve(e.lang, key, "", replacements)
}

// WordIn resolves a word key in lang, falling back to the key itself.
func (e *Engine) WordIn(lang string, key models.WordKey) string {
	return e.loc.Word(lang, key, string(key))
}

// CurrentWord is the current word in the current language.
func (e *Engine) CurrentWord() string {
	return e.WordIn(e.lang, e.state.CurrentWordKey)
}

func (e *Engine) Clue() string {
	return e.loc.Clue(e.lang, e.state.CurrentWordKey, "")
}

// TwistPrompt is the twist variant rolled on the last Play or Celebrate
// entry, in the current language.
func (e *Engine) TwistPrompt() string {
	twist, ok := PickVariant(e.twistSeed, e.loc.Twists(e.lang, e.state.CurrentWordKey))
	if !ok {
		return e.loc.Resolve(e.lang, "draw_your_word", "", map[string]string{"word": e.CurrentWord()})
	}
	return twist
}

// CelebrationMessage is the celebration rolled on the last Celebrate entry.
func (e *Engine) CelebrationMessage() string {
	key, ok := PickVariant(e.celebrationSeed, e.loc.Catalog().Celebrations())
	if !ok {
		return e.loc.Resolve(e.lang, "drawing_wonderful", "", map[string]string{"word": e.CurrentWord()})
	}
	return e.loc.Resolve(e.lang, key, "", nil)
}

// Sticker is the sticker rolled on the last Celebrate entry.
func (e *Engine) Sticker() string {
	key, ok := PickVariant(e.stickerSeed, e.loc.Catalog().Stickers())
	if !ok {
		return ""
	}
	return e.loc.Resolve(e.lang, key, "", nil)
}

// RoundProgress reads like "Round 2 of 3" in the current language.
func (e *Engine) RoundProgress() string {
	return e.loc.Resolve(e.lang, "round_progress", "Round %currentRound% of %totalRounds%", map[string]string{
		"currentRound": strconv.Itoa(e.state.CurrentRound),
		"totalRounds":  strconv.Itoa(e.state.TotalRounds),
	})
}

// LearnedWord is one completed word as shown on the end screen.
type LearnedWord struct {
	Key     models.WordKey
	Word    string
	English string
}

// LearnedWords lists the completed words in the current language, with
// the English word alongside.
func (e *Engine) LearnedWords() []LearnedWord {
	out := make([]LearnedWord, len(e.state.CompletedWordKeys))
	for i, key := range e.state.CompletedWordKeys {
		out[i] = LearnedWord{
			Key:     key,
			Word:    e.WordIn(e.lang, key),
			English: e.WordIn(i18n.English, key),
		}
	}
	return out
}

// Survey returns the running survey, or nil before the survey screen.
func (e *Engine) Survey() *survey.Session { return e.survey }

// SubmitAnswer records a survey answer.
func (e *Engine) SubmitAnswer(id string, value any) error {
	if e.survey == nil || e.state.CurrentScreen != models.ScreenSurvey {
		return ErrNoSurvey
	}
	return e.survey.Submit(id, value)
}
