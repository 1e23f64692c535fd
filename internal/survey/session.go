package survey

import (
	"fmt"
	"maps"

	"github.com/tatianab/word-sketch/internal/analytics"
	"github.com/tatianab/word-sketch/internal/models"
)

// Session walks a child through the questions: an intro page first, then
// one question per page. Answers survive moving back and forth.
type Session struct {
	questions []models.SurveyQuestion
	answers   models.SurveyAnswers
	onIntro   bool
	index     int
	done      bool

	sink       analytics.Sink
	props      func() map[string]any
	onComplete func(models.SurveyAnswers)
}

type Option func(*Session)

// WithSink reports survey milestones to sink.
func WithSink(sink analytics.Sink) Option {
	return func(s *Session) { s.sink = sink }
}

// WithProps supplies the properties attached to every event.
func WithProps(fn func() map[string]any) Option {
	return func(s *Session) { s.props = fn }
}

// OnComplete runs once when the last question is submitted.
func OnComplete(fn func(models.SurveyAnswers)) Option {
	return func(s *Session) { s.onComplete = fn }
}

// WithQuestions replaces the default question sequence.
func WithQuestions(qs []models.SurveyQuestion) Option {
	return func(s *Session) { s.questions = qs }
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		questions: Questions(),
		answers:   models.SurveyAnswers{},
		onIntro:   true,
		sink:      analytics.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) OnIntro() bool { return s.onIntro }
func (s *Session) Done() bool { return s.done }
func (s *Session) Index() int { return s.index }
func (s *Session) Total() int { return len(s.questions) }

// Answers returns a copy of every answer given so far.
func (s *Session) Answers() models.SurveyAnswers {
	return s.answers.Clone()
}

// Answer returns the stored answer for a question ID.
func (s *Session) Answer(id string) (any, bool) {
	v, ok := s.answers[id]
	return v, ok
}

// Begin leaves the intro page for the first question.
func (s *Session) Begin() {
	if !s.onIntro || s.done {
		return
	}
	s.onIntro = false
	s.index = 0
	s.emit(analytics.EventSurveyStarted, nil)
	if len(s.questions) == 0 {
		s.complete()
		return
	}
	s.viewed()
}

// Current returns the question on screen. It reports false on the intro
// page and after completion.
func (s *Session) Current() (models.SurveyQuestion, bool) {
	if s.onIntro || s.done || len(s.questions) == 0 {
		return models.SurveyQuestion{}, false
	}
	return s.questions[s.index], true
}

// Submit validates and stores an answer for question id.
func (s *Session) Submit(id string, v any) error {
	if s.done {
		return ErrFinished
	}
	q, ok := s.question(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	val, err := Validate(q, v)
	if err != nil {
		return err
	}
	s.answers[id] = val
	s.emit(analytics.EventSurveyAnswerSelected, map[string]any{
		"question_id": id,
		"answer":      val,
	})
	return nil
}

// CanAdvance reports whether Next would move on from the current page.
func (s *Session) CanAdvance() bool {
	if s.done {
		return false
	}
	if s.onIntro {
		return true
	}
	q, ok := s.Current()
	if !ok {
		return false
	}
	_, answered := s.answers[q.ID]
	return !q.Required || answered
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return !s.onIntro && s.index == len(s.questions)-1
}

// Next moves to the following page. On the last question it completes the
// survey instead. A required question without an answer holds the page.
func (s *Session) Next() error {
	if s.done {
		return ErrFinished
	}
	if s.onIntro {
		s.Begin()
		return nil
	}
	if !s.CanAdvance() {
		return fmt.Errorf("%w: %s", ErrAnswerRequired, s.questions[s.index].ID)
	}
	if s.IsLast() {
		s.complete()
		return nil
	}
	s.index++
	s.viewed()
	return nil
}

// Previous moves back one question. From the first question it returns to
// the intro page. It reports false when there is nowhere to go.
func (s *Session) Previous() bool {
	if s.done || s.onIntro {
		return false
	}
	if s.index == 0 {
		s.onIntro = true
		return true
	}
	s.index--
	s.viewed()
	return true
}

func (s *Session) complete() {
	s.done = true
	answers := s.answers.Clone()
	props := make(map[string]any, len(answers)+1)
	props["answered"] = len(answers)
	for id, v := range answers {
		props["answer_"+id] = v
	}
	s.emit(analytics.EventSurveyCompleted, props)
	if s.onComplete != nil {
		s.onComplete(answers)
	}
}

func (s *Session) viewed() {
	q := s.questions[s.index]
	s.emit(analytics.EventSurveyQuestionViewed, map[string]any{
		"question_id":    q.ID,
		"question_index": s.index + 1,
	})
}

func (s *Session) question(id string) (models.SurveyQuestion, bool) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.SurveyQuestion{}, false
}

func (s *Session) emit(name string, extra map[string]any) {
	props := map[string]any{}
	if s.props != nil {
		props = s.props()
	}
	maps.Copy(props, extra)
	s.sink.Emit(name, props)
}
