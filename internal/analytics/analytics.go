// Package analytics defines the fire-and-forget event sink the game reports
// to, and a few sinks to plug into it.
package analytics

import (
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// Event names.
const (
	EventScreenView     = "screen_view"
	EventScreenDuration = "screen_duration"

	EventIntroScreenView     = "intro_screen_view"
	EventPlayScreenView      = "play_screen_view"
	EventCelebrateScreenView = "celebrate_screen_view"
	EventSurveyScreenView    = "survey_screen_view"
	EventEndScreenView       = "end_screen_view"

	EventDrawStepView     = "draw_step_view"
	EventTwistStepView    = "twist_step_view"
	EventVoiceStepView    = "voice_step_view"
	EventCompleteStepView = "complete_step_view"

	EventDrawingStarted          = "drawing_started"
	EventDrawingCompleted        = "drawing_completed"
	EventTwistContinue           = "twist_continue"
	EventVoiceRecordingStarted   = "voice_recording_started"
	EventVoiceRecordingCompleted = "voice_recording_completed"
	EventWordStarted             = "word_started"
	EventWordCompleted           = "word_completed"
	EventGameCompleted           = "game_completed"
	EventSurveyStarted           = "survey_started"
	EventSurveyQuestionViewed    = "survey_question_viewed"
	EventSurveyAnswerSelected    = "survey_answer_selected"
	EventSurveyCompleted         = "survey_completed"
	EventGameFullyCompleted      = "game_fully_completed"
	EventRestartFromEnd          = "restart_from_end"
	EventGameReset               = "game_reset"
	EventLanguageChanged         = "language_changed"
)

// Sink receives analytics events. Emit must not block; failures are the
// sink's own business and never reach the caller.
type Sink interface {
	Emit(name string, props map[string]any)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(name string, props map[string]any)

func (f SinkFunc) Emit(name string, props map[string]any) { f(name, props) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(string, map[string]any) {})

// Safe wraps a sink so that a panicking sink is logged and swallowed.
func Safe(next Sink, logger *log.Logger) Sink {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SinkFunc(func(name string, props map[string]any) {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("analytics sink failed", "event", name, "panic", r)
			}
		}()
		next.Emit(name, props)
	})
}

// Multi fans every event out to each sink in order. Each sink gets its own
// copy of the properties.
type Multi []Sink

func (m Multi) Emit(name string, props map[string]any) {
	for _, s := range m {
		s.Emit(name, maps.Clone(props))
	}
}

// LogSink writes every event as a structured log line.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger.WithPrefix("analytics")}
}

func (s *LogSink) Emit(name string, props map[string]any) {
	keys := slices.Sorted(maps.Keys(props))
	kv := make([]any, 0, 2+2*len(keys))
	kv = append(kv, "event", name)
	for _, k := range keys {
		kv = append(kv, k, props[k])
	}
	s.logger.Info("event", kv...)
}

// Event is one recorded emission.
type Event struct {
	Name  string
	Props map[string]any
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(name string, props map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Name: name, Props: maps.Clone(props)})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Names returns the recorded event names in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

// Last returns the most recent event with the given name.
func (r *Recorder) Last(name string) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Name == name {
			return r.events[i], true
		}
	}
	return Event{}, false
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
