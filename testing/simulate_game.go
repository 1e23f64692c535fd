package main

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/word-sketch/internal/analytics"
	"github.com/tatianab/word-sketch/internal/canvas"
	"github.com/tatianab/word-sketch/internal/config"
	"github.com/tatianab/word-sketch/internal/engine"
	"github.com/tatianab/word-sketch/internal/i18n"
	"github.com/tatianab/word-sketch/internal/models"
	"github.com/tatianab/word-sketch/internal/speech"
	"google.golang.org/api/option"
)

// maxSteps guards against a flow that never reaches the end screen.
const maxSteps = 100

func main() {
	ctx := context.Background()
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "simulate"})

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", "err", err)
	}
	logger.SetLevel(cfg.LogLevel)

	cat, err := i18n.Load()
	if err != nil {
		logger.Fatal("Failed to load catalog", "err", err)
	}

	opts := []engine.Option{
		engine.WithSink(analytics.NewLogSink(logger.WithPrefix("analytics"))),
		engine.WithLogger(logger),
		engine.WithLanguage(cfg.Language),
	}
	if cfg.Seed != nil {
		opts = append(opts, engine.WithSeed(*cfg.Seed))
	}
	eng, err := engine.NewEngine(i18n.NewLocalizer(cat, logger), opts...)
	if err != nil {
		logger.Fatal("Failed to create engine", "err", err)
	}

	// The player "speaks" by asking an LLM for a sentence with the word.
	var voice speech.Capability = speech.Unavailable{}
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			logger.Fatal("Failed to create player client", "err", err)
		}
		defer client.Close()
		voice = &playerVoice{model: client.GenerativeModel("gemini-2.5-flash")}
	}

	for step := 0; step < maxSteps && !eng.IsFullyComplete(); step++ {
		switch eng.Screen() {
		case models.ScreenIntro:
			fmt.Printf("--- %s ---\n", eng.RoundProgress())
			fmt.Printf("Word: %s (%s)\n", eng.CurrentWord(), eng.Clue())
			eng.Advance()
		case models.ScreenPlay:
			playRound(ctx, eng, voice)
		case models.ScreenCelebrate:
			fmt.Printf("%s %s\n\n", eng.CelebrationMessage(), eng.Sticker())
			eng.Advance()
		case models.ScreenSurvey:
			answerSurvey(eng, logger)
		}
	}

	fmt.Println("--- End ---")
	fmt.Println(eng.Text("words_you_learned", nil))
	for _, w := range eng.LearnedWords() {
		fmt.Printf("  %s (%s)\n", w.Word, w.English)
	}
	if !eng.IsFullyComplete() {
		logger.Fatal("Game did not finish", "screen", eng.Screen())
	}
}

// playRound draws the word and the twist on a fresh surface, then records
// a sentence.
func playRound(ctx context.Context, eng *engine.Engine, voice speech.Capability) {
	flow := eng.NewPlayFlow()
	surface := canvas.New()
	surface.Initialize(image.Pt(320, 240))

	fmt.Println(eng.Text("draw_your_word", map[string]string{"word": eng.CurrentWord()}))
	flow.StrokeStarted()
	scribble(surface, canvas.Palette[1], 160, 120, 60)
	flow.Next()

	fmt.Printf("Twist: %s\n", eng.TwistPrompt())
	scribble(surface, canvas.Palette[4], 80, 60, 30)
	surface.SetTool(canvas.Eraser, nil, 12)
	surface.HandleMouse(canvas.PointerDown, canvas.Point{X: 150, Y: 120})
	surface.HandleMouse(canvas.PointerMove, canvas.Point{X: 170, Y: 120})
	surface.HandleMouse(canvas.PointerUp, canvas.Point{X: 170, Y: 120})
	fmt.Printf("Painted %d of %d pixels\n", painted(surface), 320*240)
	flow.Next()

	if wait := flow.RecordSentence(ctx, voice); wait != nil {
		flow.VoiceEnded(wait())
	}
	if t := flow.Transcript(); t != "" {
		fmt.Printf("Said: %s\n", t)
	}
	flow.Next()
}

// scribble draws a closed loop of radius r around (cx, cy).
func scribble(s *canvas.Surface, c canvas.Swatch, cx, cy, r float64) {
	s.Snapshot()
	s.SetTool(canvas.Brush, c.Color, canvas.DefaultWidth)
	const n = 24
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / n
		p := canvas.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
		action := canvas.PointerMove
		if i == 0 {
			action = canvas.PointerDown
		}
		s.HandleMouse(action, p)
	}
	s.HandleMouse(canvas.PointerUp, canvas.Point{})
}

func painted(s *canvas.Surface) int {
	n := 0
	size := s.Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			if s.RGBAAt(x, y) != s.Background() {
				n++
			}
		}
	}
	return n
}

func answerSurvey(eng *engine.Engine, logger *log.Logger) {
	s := eng.Survey()
	if err := s.Next(); err != nil {
		logger.Fatal("Failed to begin survey", "err", err)
	}
	answers := map[string]any{
		"play_again":     "play_again_tomorrow",
		"favorite_games": "drawing games",
		"stars_earned":   len(eng.State().CompletedWordKeys) * 5,
		"stars_feeling":  "happy",
		"friends_stars":  "yes",
	}
	for !s.Done() {
		q, _ := s.Current()
		if v, ok := answers[q.ID]; ok {
			if err := eng.SubmitAnswer(q.ID, v); err != nil {
				logger.Warn("Answer rejected", "question", q.ID, "err", err)
			}
		}
		fmt.Printf("%s %s\n", eng.Text("question_of", map[string]string{
			"current": fmt.Sprint(s.Index() + 1),
			"total":   fmt.Sprint(s.Total()),
		}), eng.Text(q.Question, nil))
		if err := s.Next(); err != nil {
			logger.Fatal("Failed to continue survey", "question", q.ID, "err", err)
		}
	}
}

// playerVoice stands in for a microphone: the transcript is a sentence an
// LLM makes up with the word.
type playerVoice struct {
	model *genai.GenerativeModel
}

func (v *playerVoice) Available() bool { return true }

func (v *playerVoice) Start(ctx context.Context, req speech.Request, h speech.Handlers) {
	go func() {
		defer h.OnEnd()
		prompt := fmt.Sprintf("You are a five year old child learning the word %q (language code %s). Say one short, simple sentence using the word, in that language. Return ONLY the sentence.", req.Word, req.Language)
		resp, err := v.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return
		}
		h.OnResult(strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])))
	}()
}
