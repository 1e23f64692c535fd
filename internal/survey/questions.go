// Package survey runs the end-of-day feedback questionnaire.
package survey

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/tatianab/word-sketch/internal/models"
)

var (
	ErrUnknownQuestion = errors.New("survey: unknown question")
	ErrInvalidAnswer   = errors.New("survey: invalid answer")
	ErrAnswerRequired  = errors.New("survey: answer required")
	ErrFinished        = errors.New("survey: already completed")
)

// FavoriteGamesMaxLen caps the free-text answer, in runes.
const FavoriteGamesMaxLen = 500

var questions = []models.SurveyQuestion{
	{
		ID:       "play_again",
		Type:     models.QuestionRadio,
		Question: "play_again_question",
		Options:  []string{"play_again_tomorrow", "play_with_friends_tomorrow", "dont_want_to_play"},
		Required: true,
	},
	{
		ID:       "favorite_games",
		Type:     models.QuestionText,
		Question: "favorite_games_question",
		MaxLen:   FavoriteGamesMaxLen,
	},
	{
		ID:       "stars_earned",
		Type:     models.QuestionSlider,
		Question: "stars_earned_question",
		Min:      0,
		Max:      15,
		Required: true,
	},
	{
		ID:       "stars_feeling",
		Type:     models.QuestionEmoji,
		Question: "stars_feeling_question",
		Emojis: []models.EmojiOption{
			{Emoji: "😔", Label: "sad", Value: "sad"},
			{Emoji: "😐", Label: "okay", Value: "okay"},
			{Emoji: "😊", Label: "happy", Value: "happy"},
		},
		Required: true,
	},
	{
		ID:       "friends_stars",
		Type:     models.QuestionYesNo,
		Question: "friends_stars_question",
		Required: true,
	},
}

// Questions returns the fixed question sequence, in order.
func Questions() []models.SurveyQuestion {
	out := make([]models.SurveyQuestion, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		q.Emojis = slices.Clone(q.Emojis)
		out[i] = q
	}
	return out
}

// Validate checks v against q and returns it in canonical form: strings for
// choice and text questions, int for sliders.
func Validate(q models.SurveyQuestion, v any) (any, error) {
	switch q.Type {
	case models.QuestionRadio:
		s, ok := v.(string)
		if !ok || !slices.Contains(q.Options, s) {
			return nil, fmt.Errorf("%w: %v is not an option of %s", ErrInvalidAnswer, v, q.ID)
		}
		return s, nil

	case models.QuestionText:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects text", ErrInvalidAnswer, q.ID)
		}
		if q.MaxLen > 0 && utf8.RuneCountInString(s) > q.MaxLen {
			return nil, fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidAnswer, q.ID, q.MaxLen)
		}
		return s, nil

	case models.QuestionSlider:
		n, ok := asInt(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a whole number", ErrInvalidAnswer, q.ID)
		}
		if n < q.Min || n > q.Max {
			return nil, fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidAnswer, q.ID, q.Min, q.Max)
		}
		return n, nil

	case models.QuestionEmoji:
		s, ok := v.(string)
		if ok && slices.ContainsFunc(q.Emojis, func(e models.EmojiOption) bool { return e.Value == s }) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: %v is not a face of %s", ErrInvalidAnswer, v, q.ID)

	case models.QuestionYesNo:
		if s, ok := v.(string); ok && (s == "yes" || s == "no") {
			return s, nil
		}
		return nil, fmt.Errorf("%w: %s expects yes or no", ErrInvalidAnswer, q.ID)
	}
	return nil, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidAnswer, q.ID, q.Type)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
