package models

import "fmt"

// Screen is the screen the game is currently showing.
type Screen int

const (
	ScreenIntro Screen = iota
	ScreenPlay
	ScreenCelebrate
	ScreenSurvey
	ScreenEnd
)

var screenNames = [...]string{"intro", "play", "celebrate", "survey", "end"}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenNames[s]
}

// WordKey identifies a vocabulary item independently of any language.
// The display string is resolved at render time through the localizer.
type WordKey string

// GameState is the game flow controller's state. Only the controller mutates it.
type GameState struct {
	CurrentRound      int
	CurrentScreen     Screen
	CurrentWordKey    WordKey
	CompletedWordKeys []WordKey
	TotalRounds       int
}

// Clone returns a copy that shares no memory with s.
func (s GameState) Clone() GameState {
	out := s
	out.CompletedWordKeys = append([]WordKey(nil), s.CompletedWordKeys...)
	return out
}

// QuestionType is the input widget a survey question expects.
type QuestionType string

const (
	QuestionRadio  QuestionType = "radio"
	QuestionText   QuestionType = "text"
	QuestionSlider QuestionType = "slider"
	QuestionEmoji  QuestionType = "emoji"
	QuestionYesNo  QuestionType = "yesno"
)

// EmojiOption is one selectable face in an emoji question.
type EmojiOption struct {
	Emoji string `yaml:"emoji"`
	Label string `yaml:"label"` // translation key
	Value string `yaml:"value"`
}

// SurveyQuestion is the data contract for a single survey question.
// Question and Options hold translation keys, not display text.
type SurveyQuestion struct {
	ID       string        `yaml:"id"`
	Type     QuestionType  `yaml:"type"`
	Question string        `yaml:"question"`
	Options  []string      `yaml:"options,omitempty"`
	Min      int           `yaml:"min,omitempty"`
	Max      int           `yaml:"max,omitempty"`
	MaxLen   int           `yaml:"max_len,omitempty"`
	Emojis   []EmojiOption `yaml:"emojis,omitempty"`
	Required bool          `yaml:"required"`
}

// SurveyAnswers maps a question ID to a scalar answer (string or int).
type SurveyAnswers map[string]any

// Clone returns a shallow copy of the answers.
func (a SurveyAnswers) Clone() SurveyAnswers {
	out := make(SurveyAnswers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Preferences is everything that survives between sessions.
type Preferences struct {
	Language string `yaml:"language"`
}
