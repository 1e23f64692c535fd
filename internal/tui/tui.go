package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/tatianab/word-sketch/internal/app"
	"github.com/tatianab/word-sketch/internal/canvas"
	"github.com/tatianab/word-sketch/internal/config"
	"github.com/tatianab/word-sketch/internal/engine"
	"github.com/tatianab/word-sketch/internal/models"
	"github.com/tatianab/word-sketch/internal/prefs"
	"github.com/tatianab/word-sketch/internal/speech"
	"github.com/tatianab/word-sketch/internal/survey"
)

// Rows above and below the canvas on the play screen.
const (
	headerRows = 3
	footerRows = 4
)

const (
	minBrush = 2
	maxBrush = 40
)

// Options are the collaborators of the terminal front end. Zero values
// are usable: no persistence, no speech, no logs.
type Options struct {
	Prefs      prefs.Store
	Capture    speech.Capability
	Logger     *log.Logger
	BrushWidth int
}

type model struct {
	ctx    context.Context
	engine *engine.Engine
	opts   Options
	keys   keyMap
	help   help.Model

	width  int
	height int

	screen    models.Screen
	clueShown bool
	play      *playScreen
	textInput textinput.Model
	cursor    int
	question  string
	notice    string
}

// playScreen lives as long as one play screen is shown.
type playScreen struct {
	flow   *engine.PlayFlow
	canvas *canvasView
	swatch int
	width  int
}

type voiceDoneMsg struct {
	transcript string
}

func NewModel(ctx context.Context, eng *engine.Engine, opts Options) model {
	if opts.Capture == nil {
		opts.Capture = speech.Unavailable{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.BrushWidth < 1 {
		opts.BrushWidth = canvas.DefaultWidth
	}

	ti := textinput.New()
	ti.CharLimit = survey.FavoriteGamesMaxLen
	ti.Width = 50

	m := model{
		ctx:       ctx,
		engine:    eng,
		opts:      opts,
		keys:      newKeyMap(),
		help:      help.New(),
		textInput: ti,
		screen:    eng.Screen(),
	}
	m.enterScreen()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.MouseMsg:
		if m.play != nil && m.play.canvas.mouse(msg) {
			m.play.flow.StrokeStarted()
		}
		return m, nil

	case voiceDoneMsg:
		if m.play != nil {
			m.play.flow.VoiceEnded(msg.transcript)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.typing() {
			return m.updateText(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Language):
			m.toggleLanguage()
			return m, nil
		}
		m.notice = ""

		var cmd tea.Cmd
		switch m.engine.Screen() {
		case models.ScreenIntro:
			m.updateIntro(msg)
		case models.ScreenPlay:
			cmd = m.updatePlay(msg)
		case models.ScreenCelebrate:
			if key.Matches(msg, m.keys.Next) {
				m.engine.Advance()
			}
		case models.ScreenSurvey:
			m.updateSurvey(msg)
		case models.ScreenEnd:
			if key.Matches(msg, m.keys.Restart) {
				m.engine.Reset()
			}
		}
		m.sync()
		return m, cmd
	}
	return m, nil
}

func (m *model) updateIntro(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.TellMore):
		m.clueShown = true
	case key.Matches(msg, m.keys.Know), key.Matches(msg, m.keys.Skip), key.Matches(msg, m.keys.Next):
		m.engine.Advance()
	}
}

func (m *model) updatePlay(msg tea.KeyMsg) tea.Cmd {
	p := m.play
	if p == nil {
		return nil
	}
	s := p.canvas.surface

	switch {
	case key.Matches(msg, m.keys.Colors):
		p.swatch = int(msg.String()[0] - '1')
		s.SetTool(canvas.Brush, canvas.Palette[p.swatch].Color, p.width)
	case key.Matches(msg, m.keys.Brush):
		s.SetTool(canvas.Brush, nil, p.width)
	case key.Matches(msg, m.keys.Eraser):
		s.SetTool(canvas.Eraser, nil, p.width)
	case key.Matches(msg, m.keys.Bigger):
		p.width = min(p.width+2, maxBrush)
		s.SetTool(s.Tool(), nil, p.width)
	case key.Matches(msg, m.keys.Smaller):
		p.width = max(p.width-2, minBrush)
		s.SetTool(s.Tool(), nil, p.width)
	case key.Matches(msg, m.keys.Undo):
		s.Undo()
	case key.Matches(msg, m.keys.Clear):
		s.Clear()
	case key.Matches(msg, m.keys.Record):
		wait := p.flow.RecordSentence(m.ctx, m.opts.Capture)
		if wait == nil {
			return nil
		}
		return func() tea.Msg {
			return voiceDoneMsg{transcript: wait()}
		}
	case key.Matches(msg, m.keys.Next):
		p.flow.Next()
	}
	return nil
}

func (m *model) updateSurvey(msg tea.KeyMsg) {
	s := m.engine.Survey()
	if s == nil {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Next):
		m.surveyNext(s)
		return
	case key.Matches(msg, m.keys.Back):
		s.Previous()
		return
	}

	q, ok := s.Current()
	if !ok {
		return
	}
	switch q.Type {
	case models.QuestionRadio:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, len(q.Options)-1)
		case !key.Matches(msg, m.keys.Select):
			return
		}
		m.submit(q.ID, q.Options[m.cursor])

	case models.QuestionSlider:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cursor = max(m.cursor-1, q.Min)
		case key.Matches(msg, m.keys.Right):
			m.cursor = min(m.cursor+1, q.Max)
		case !key.Matches(msg, m.keys.Select):
			return
		}
		m.submit(q.ID, m.cursor)

	case models.QuestionEmoji:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.cursor = min(m.cursor+1, len(q.Emojis)-1)
		case !key.Matches(msg, m.keys.Select):
			return
		}
		m.submit(q.ID, q.Emojis[m.cursor].Value)

	case models.QuestionYesNo:
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.cursor = 0
		case key.Matches(msg, m.keys.No):
			m.cursor = 1
		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
			m.cursor = 1 - m.cursor
		case !key.Matches(msg, m.keys.Select):
			return
		}
		m.submit(q.ID, yesNo[m.cursor])
	}
}

var yesNo = [2]string{"yes", "no"}

// updateText handles keys while the free-text survey question has focus.
func (m model) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.engine.Survey()
	q, _ := s.Current()
	switch {
	case key.Matches(msg, m.keys.Next):
		m.submit(q.ID, m.textInput.Value())
		m.surveyNext(s)
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.submit(q.ID, m.textInput.Value())
		s.Previous()
		m.sync()
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *model) submit(id string, v any) {
	if err := m.engine.SubmitAnswer(id, v); err != nil {
		m.opts.Logger.Warn("survey answer rejected", "question", id, "err", err)
		m.notice = err.Error()
	}
}

func (m *model) surveyNext(s *survey.Session) {
	err := s.Next()
	switch {
	case errors.Is(err, survey.ErrAnswerRequired):
		m.notice = m.engine.Text("answer_required", nil)
	case err != nil:
		m.opts.Logger.Warn("survey next", "err", err)
	}
}

func (m *model) toggleLanguage() {
	lang := m.engine.ToggleLanguage()
	if m.opts.Prefs == nil {
		return
	}
	if err := prefs.SaveLanguage(m.ctx, m.opts.Prefs, lang); err != nil {
		m.opts.Logger.Warn("could not save language", "err", err)
	}
}

// typing reports whether keys go to the free-text survey answer.
func (m model) typing() bool {
	if m.engine.Screen() != models.ScreenSurvey || m.engine.Survey() == nil {
		return false
	}
	q, ok := m.engine.Survey().Current()
	return ok && q.Type == models.QuestionText
}

// sync catches the view state up with the engine after a transition.
func (m *model) sync() {
	if screen := m.engine.Screen(); screen != m.screen {
		m.screen = screen
		m.enterScreen()
	}
	if m.screen == models.ScreenSurvey {
		m.syncQuestion()
	}
}

func (m *model) enterScreen() {
	m.clueShown = false
	m.play = nil
	m.question = ""
	if m.screen != models.ScreenPlay {
		return
	}
	m.play = &playScreen{
		flow:   m.engine.NewPlayFlow(),
		canvas: newCanvasView(m.opts.BrushWidth),
		width:  m.opts.BrushWidth,
	}
	m.layout()
}

// syncQuestion resets the answer widgets when the survey page changes,
// starting from the stored answer if there is one.
func (m *model) syncQuestion() {
	s := m.engine.Survey()
	if s == nil {
		return
	}
	q, ok := s.Current()
	if !ok {
		m.question = ""
		m.textInput.Blur()
		return
	}
	if q.ID == m.question {
		return
	}
	m.question = q.ID
	m.cursor = 0
	m.textInput.Blur()

	v, answered := s.Answer(q.ID)
	switch q.Type {
	case models.QuestionRadio:
		if answered {
			m.cursor = max(indexOf(q.Options, v), 0)
		}
	case models.QuestionSlider:
		m.cursor = q.Min
		if n, ok := v.(int); ok {
			m.cursor = n
		}
	case models.QuestionEmoji:
		for i, e := range q.Emojis {
			if e.Value == v {
				m.cursor = i
			}
		}
	case models.QuestionYesNo:
		if v == "no" {
			m.cursor = 1
		}
	case models.QuestionText:
		text, _ := v.(string)
		m.textInput.SetValue(text)
		m.textInput.Placeholder = m.engine.Text("favorite_games_placeholder", nil)
		m.textInput.Focus()
	}
}

func indexOf(options []string, v any) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}

// layout places the canvas between the play screen's header and footer.
// A terminal too small for it hides the canvas but keeps the drawing.
func (m *model) layout() {
	if m.play == nil {
		return
	}
	area := image.Rectangle{
		Min: image.Pt(1, headerRows),
		Max: image.Pt(m.width-1, m.height-footerRows),
	}
	if area.Empty() {
		m.play.canvas.area = image.Rectangle{}
		return
	}
	m.play.canvas.layout(area)
}

// Run shows the game until the player quits.
func Run(ctx context.Context, eng *engine.Engine, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, eng, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

// Start runs the game configured from the environment.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	defer a.Close()

	return Run(ctx, a.Engine, Options{
		Prefs:      a.Prefs,
		Capture:    a.Capture,
		Logger:     a.Logger,
		BrushWidth: a.Brush,
	})
}

func itoa(n int) string { return strconv.Itoa(n) }
