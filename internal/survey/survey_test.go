package survey

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/word-sketch/internal/analytics"
	"github.com/tatianab/word-sketch/internal/models"
)

func TestQuestionsOrder(t *testing.T) {
	qs := Questions()
	var ids []string
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"play_again", "favorite_games", "stars_earned", "stars_feeling", "friends_stars"}, ids)
	assert.False(t, qs[1].Required, "favorite games is optional")

	// Callers get their own copy.
	qs[0].Options[0] = "changed"
	assert.Equal(t, "play_again_tomorrow", Questions()[0].Options[0])
}

func TestValidate(t *testing.T) {
	qs := Questions()
	byID := map[string]models.SurveyQuestion{}
	for _, q := range qs {
		byID[q.ID] = q
	}

	tests := []struct {
		id    string
		value any
		want  any
		ok    bool
	}{
		{"play_again", "dont_want_to_play", "dont_want_to_play", true},
		{"play_again", "maybe", nil, false},
		{"play_again", 1, nil, false},
		{"favorite_games", "Ludo", "Ludo", true},
		{"favorite_games", "", "", true},
		{"favorite_games", strings.Repeat("ग", FavoriteGamesMaxLen), strings.Repeat("ग", FavoriteGamesMaxLen), true},
		{"favorite_games", strings.Repeat("a", FavoriteGamesMaxLen+1), nil, false},
		{"stars_earned", 0, 0, true},
		{"stars_earned", 15, 15, true},
		{"stars_earned", float64(7), 7, true},
		{"stars_earned", int64(3), 3, true},
		{"stars_earned", 16, nil, false},
		{"stars_earned", -1, nil, false},
		{"stars_earned", 2.5, nil, false},
		{"stars_earned", "5", nil, false},
		{"stars_feeling", "happy", "happy", true},
		{"stars_feeling", "😊", nil, false},
		{"friends_stars", "yes", "yes", true},
		{"friends_stars", "no", "no", true},
		{"friends_stars", true, nil, false},
	}
	for _, tt := range tests {
		got, err := Validate(byID[tt.id], tt.value)
		if tt.ok {
			if err != nil {
				t.Errorf("Validate(%s, %v) = %v", tt.id, tt.value, err)
				continue
			}
			if got != tt.want {
				t.Errorf("Validate(%s, %v) = %v, want %v", tt.id, tt.value, got, tt.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAnswer) {
			t.Errorf("Validate(%s, %v) err = %v, want ErrInvalidAnswer", tt.id, tt.value, err)
		}
	}
}

func answerAll(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.Submit("play_again", "play_again_tomorrow"))
	require.NoError(t, s.Next())
	require.NoError(t, s.Next(), "favorite games may be skipped")
	require.NoError(t, s.Submit("stars_earned", 12))
	require.NoError(t, s.Next())
	require.NoError(t, s.Submit("stars_feeling", "okay"))
	require.NoError(t, s.Next())
	require.NoError(t, s.Submit("friends_stars", "no"))
	require.NoError(t, s.Next())
}

func TestSessionWalkthrough(t *testing.T) {
	rec := &analytics.Recorder{}
	var completed models.SurveyAnswers
	calls := 0
	s := NewSession(
		WithSink(rec),
		WithProps(func() map[string]any { return map[string]any{"session_id": "abc"} }),
		OnComplete(func(a models.SurveyAnswers) {
			calls++
			completed = a
		}),
	)

	assert.True(t, s.OnIntro())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.True(t, s.CanAdvance())

	require.NoError(t, s.Next())
	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "play_again", q.ID)

	assert.False(t, s.CanAdvance())
	err := s.Next()
	assert.ErrorIs(t, err, ErrAnswerRequired)
	assert.Equal(t, 0, s.Index())

	answerAll(t, s)

	assert.True(t, s.Done())
	assert.Equal(t, 1, calls)
	assert.Equal(t, models.SurveyAnswers{
		"play_again":    "play_again_tomorrow",
		"stars_earned":  12,
		"stars_feeling": "okay",
		"friends_stars": "no",
	}, completed)

	assert.ErrorIs(t, s.Next(), ErrFinished)
	assert.ErrorIs(t, s.Submit("friends_stars", "yes"), ErrFinished)
	assert.Equal(t, 1, calls)

	last, ok := rec.Last(analytics.EventSurveyCompleted)
	require.True(t, ok)
	assert.Equal(t, "abc", last.Props["session_id"])
	assert.Equal(t, 4, last.Props["answered"])
	assert.Equal(t, 12, last.Props["answer_stars_earned"])

	names := rec.Names()
	assert.Equal(t, analytics.EventSurveyStarted, names[0])
	assert.Equal(t, analytics.EventSurveyQuestionViewed, names[1])
}

func TestSessionPreviousKeepsAnswers(t *testing.T) {
	s := NewSession()
	s.Begin()
	require.NoError(t, s.Submit("play_again", "play_with_friends_tomorrow"))
	require.NoError(t, s.Next())
	require.NoError(t, s.Submit("favorite_games", "cricket"))

	assert.True(t, s.Previous())
	assert.Equal(t, 0, s.Index())
	v, ok := s.Answer("play_again")
	require.True(t, ok)
	assert.Equal(t, "play_with_friends_tomorrow", v)

	assert.True(t, s.Previous(), "back to the intro page")
	assert.True(t, s.OnIntro())
	assert.False(t, s.Previous())

	require.NoError(t, s.Next())
	require.NoError(t, s.Next(), "answer kept, so the page is not held")
	v, _ = s.Answer("favorite_games")
	assert.Equal(t, "cricket", v)
}

func TestSessionSubmitErrors(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.Submit("nope", "x"), ErrUnknownQuestion)
	assert.ErrorIs(t, s.Submit("stars_earned", 99), ErrInvalidAnswer)
	_, ok := s.Answer("stars_earned")
	assert.False(t, ok, "invalid answers are not stored")
}

func TestSessionWithoutQuestions(t *testing.T) {
	done := false
	s := NewSession(WithQuestions(nil), OnComplete(func(models.SurveyAnswers) { done = true }))
	require.NoError(t, s.Next())
	assert.True(t, done)
	assert.True(t, s.Done())
}
