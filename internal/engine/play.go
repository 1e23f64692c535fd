package engine

import (
	"context"

	"github.com/tatianab/word-sketch/internal/analytics"
	"github.com/tatianab/word-sketch/internal/models"
	"github.com/tatianab/word-sketch/internal/speech"
)

// Step is a stage of the play screen.
type Step int

const (
	StepDraw Step = iota
	StepTwist
	StepVoice
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepDraw:
		return "draw"
	case StepTwist:
		return "twist"
	case StepVoice:
		return "voice"
	case StepComplete:
		return "complete"
	}
	return "step(?)"
}

var stepViewEvents = map[Step]string{
	StepDraw:     analytics.EventDrawStepView,
	StepTwist:    analytics.EventTwistStepView,
	StepVoice:    analytics.EventVoiceStepView,
	StepComplete: analytics.EventCompleteStepView,
}

// PlayFlow walks one play screen through drawing the word, drawing the
// twist and saying a sentence. Leaving the last step advances the game.
type PlayFlow struct {
	e          *Engine
	step       Step
	drew       bool
	recording  bool
	transcript string
}

// NewPlayFlow starts the steps of the current play screen. It returns nil
// when the game is not on a play screen.
func (e *Engine) NewPlayFlow() *PlayFlow {
	if e.state.CurrentScreen != models.ScreenPlay {
		return nil
	}
	p := &PlayFlow{e: e}
	p.viewed()
	return p
}

func (p *PlayFlow) Step() Step { return p.step }
func (p *PlayFlow) Recording() bool { return p.recording }
func (p *PlayFlow) Transcript() string { return p.transcript }

// StrokeStarted notes that the child put pen to canvas. Only the first
// stroke of the screen is reported.
func (p *PlayFlow) StrokeStarted() {
	if p.drew {
		return
	}
	p.drew = true
	p.e.emit(analytics.EventDrawingStarted, map[string]any{"step": p.step.String()})
}

// Next finishes the current step. From the last step it advances the game
// to the celebrate screen. It reports false while a recording is running.
func (p *PlayFlow) Next() bool {
	switch p.step {
	case StepDraw:
		p.e.emit(analytics.EventDrawingCompleted, nil)
		p.step = StepTwist
	case StepTwist:
		p.e.emit(analytics.EventTwistContinue, map[string]any{"twist": p.e.TwistPrompt()})
		p.step = StepVoice
	case StepVoice:
		if p.recording {
			return false
		}
		p.step = StepComplete
	case StepComplete:
		return p.e.Advance()
	}
	p.viewed()
	return true
}

// RecordSentence starts voice capture on the voice step. When c cannot
// capture, the step ends at once and RecordSentence returns nil. Otherwise
// it returns a function that blocks until the capture ends and yields the
// transcript; the caller runs it off the event loop and hands the result
// to VoiceEnded.
func (p *PlayFlow) RecordSentence(ctx context.Context, c speech.Capability) func() string {
	if p.step != StepVoice || p.recording {
		return nil
	}
	available := c != nil && c.Available()
	p.e.emit(analytics.EventVoiceRecordingStarted, map[string]any{"available": available})
	if !available {
		p.VoiceEnded("")
		return nil
	}
	p.recording = true
	req := speech.Request{Word: p.e.CurrentWord(), Language: p.e.Language()}
	return func() string {
		return speech.Await(ctx, c, req)
	}
}

// VoiceEnded closes the voice step. The transcript is recorded as given;
// it is never checked against the word.
func (p *PlayFlow) VoiceEnded(transcript string) {
	if p.step != StepVoice {
		return
	}
	p.recording = false
	p.transcript = transcript
	if transcript != "" {
		p.e.logger.Info("heard", "word", p.e.state.CurrentWordKey, "transcript", transcript)
	}
	p.e.emit(analytics.EventVoiceRecordingCompleted, map[string]any{
		"heard":      transcript != "",
		"transcript": transcript,
	})
	p.step = StepComplete
	p.viewed()
}

func (p *PlayFlow) viewed() {
	p.e.emit(stepViewEvents[p.step], map[string]any{"step": p.step.String()})
}
