package speech

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/charmbracelet/log"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

//go:embed prompts/transcribe.txt
var transcribePrompt string

var transcribeTmpl = template.Must(template.New("transcribe").Parse(transcribePrompt))

// ErrNoAPIKey is returned when Gemini transcription is requested without a key.
var ErrNoAPIKey = errors.New("speech: GEMINI_API_KEY is not set")

var languageNames = map[string]string{
	"hi": "Hindi",
	"en": "English",
}

// GeminiCapture records one clip with an external recorder command and
// transcribes it with Gemini.
type GeminiCapture struct {
	client   *genai.Client
	recorder []string
	logger   *log.Logger

	record     func(ctx context.Context, path string) error
	transcribe func(ctx context.Context, audio []byte, prompt string) (string, error)
	lookPath   func(file string) (string, error)
}

// NewGeminiCapture creates a capture backed by gemini-2.5-flash. recorder is
// the command line of the recording program; the output file path is
// appended as its last argument.
func NewGeminiCapture(ctx context.Context, apiKey string, recorder []string, logger *log.Logger) (*GeminiCapture, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if len(recorder) == 0 {
		return nil, fmt.Errorf("speech: empty recorder command")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	model := client.GenerativeModel("gemini-2.5-flash")

	g := &GeminiCapture{
		client:   client,
		recorder: recorder,
		logger:   logger.WithPrefix("speech"),
		lookPath: exec.LookPath,
	}
	g.record = g.runRecorder
	g.transcribe = func(ctx context.Context, audio []byte, prompt string) (string, error) {
		resp, err := model.GenerateContent(ctx, genai.Blob{MIMEType: "audio/wav", Data: audio}, genai.Text(prompt))
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", nil
		}
		text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
		if !ok {
			return "", fmt.Errorf("unexpected response type from Gemini")
		}
		return strings.TrimSpace(string(text)), nil
	}
	return g, nil
}

// Close releases the Gemini client.
func (g *GeminiCapture) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Available reports whether the recorder program can be found.
func (g *GeminiCapture) Available() bool {
	_, err := g.lookPath(g.recorder[0])
	return err == nil
}

// Start records and transcribes on a new goroutine.
func (g *GeminiCapture) Start(ctx context.Context, req Request, h Handlers) {
	go g.capture(ctx, req, h)
}

func (g *GeminiCapture) capture(ctx context.Context, req Request, h Handlers) {
	defer func() {
		if h.OnEnd != nil {
			h.OnEnd()
		}
	}()

	transcript, err := g.recordAndTranscribe(ctx, req)
	if err != nil {
		g.logger.Warn("capture failed", "err", err)
		return
	}
	g.logger.Info("heard", "word", req.Word, "transcript", transcript)
	if transcript != "" && h.OnResult != nil {
		h.OnResult(transcript)
	}
}

func (g *GeminiCapture) recordAndTranscribe(ctx context.Context, req Request) (string, error) {
	dir, err := os.MkdirTemp("", "word-sketch-speech-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "clip.wav")
	if err := g.record(ctx, path); err != nil {
		return "", fmt.Errorf("record: %w", err)
	}
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(audio) == 0 {
		return "", nil
	}

	prompt, err := renderPrompt(req)
	if err != nil {
		return "", err
	}
	return g.transcribe(ctx, audio, prompt)
}

func (g *GeminiCapture) runRecorder(ctx context.Context, path string) error {
	args := append(append([]string(nil), g.recorder[1:]...), path)
	cmd := exec.CommandContext(ctx, g.recorder[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", g.recorder[0], err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func renderPrompt(req Request) (string, error) {
	name, ok := languageNames[req.Language]
	if !ok {
		name = req.Language
	}

	var buf bytes.Buffer
	data := struct {
		Word         string
		LanguageName string
	}{
		Word:         req.Word,
		LanguageName: name,
	}
	if err := transcribeTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
