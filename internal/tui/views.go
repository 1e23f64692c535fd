package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/word-sketch/internal/canvas"
	"github.com/tatianab/word-sketch/internal/engine"
	"github.com/tatianab/word-sketch/internal/i18n"
	"github.com/tatianab/word-sketch/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6")).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#a855f7"))

	clueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			PaddingLeft(1).
			PaddingRight(1)

	choiceStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22c55e")).
			Bold(true).
			PaddingLeft(2)

	twistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a855f7")).
			Bold(true)

	stickerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1f2937")).
			Background(lipgloss.Color("#eab308")).
			Bold(true).
			Padding(0, 2)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	bodyStyle = lipgloss.NewStyle().
			Padding(1, 2)
)

func (m model) View() string {
	switch m.engine.Screen() {
	case models.ScreenIntro:
		return m.introView()
	case models.ScreenPlay:
		return m.playView()
	case models.ScreenCelebrate:
		return m.celebrateView()
	case models.ScreenSurvey:
		return m.surveyView()
	case models.ScreenEnd:
		return m.endView()
	}
	return ""
}

func (m model) header() string {
	lang := m.engine.Text("hindi", nil)
	if m.engine.Language() == i18n.English {
		lang = m.engine.Text("english", nil)
	}
	line := titleStyle.Render("✏️  Word Sketch") + "  " +
		progressStyle.Render(m.engine.RoundProgress()+" · "+m.engine.Text("language_switcher", nil)+": "+lang)
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

func (m model) footer(keys ...key.Binding) string {
	keys = append(keys, m.keys.Language, m.keys.Quit)
	var b strings.Builder
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(screenKeys(keys))))
	return b.String()
}

func (m model) page(lines ...string) string {
	body := bodyStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), body)
}

func (m model) introView() string {
	lines := []string{
		m.engine.Text("intro.do_you_know", nil),
		"",
		wordStyle.Render(m.engine.CurrentWord()),
		"",
	}
	if m.clueShown {
		lines = append(lines, clueStyle.Render("💡 "+m.engine.Clue()), "")
	}
	lines = append(lines,
		choiceStyle.Render("y  "+m.engine.Text("intro.yes_i_know", nil)),
		choiceStyle.Render("m  "+m.engine.Text("intro.no_tell_more", nil)),
		choiceStyle.Render("s  "+m.engine.Text("intro.skip_word", nil)),
		"",
		m.footer(m.keys.Know, m.keys.TellMore, m.keys.Skip),
	)
	return m.page(lines...)
}

// playView must put the canvas exactly at headerRows so that mouse
// coordinates line up with the surface's display rectangle.
func (m model) playView() string {
	p := m.play
	if p == nil {
		return m.header()
	}
	word := m.engine.CurrentWord()
	repl := map[string]string{"word": word}

	var instruction, action string
	var keys []key.Binding
	switch p.flow.Step() {
	case engine.StepDraw:
		instruction = m.engine.Text("draw_your_word", repl)
		action = m.engine.Text("im_done_drawing", nil)
	case engine.StepTwist:
		instruction = m.engine.Text("now_try_this_twist", nil) + " " + twistStyle.Render("✨ "+m.engine.TwistPrompt())
		action = m.engine.Text("continue", nil)
	case engine.StepVoice:
		instruction = m.engine.Text("say_sentence_with_word", repl) + " " + progressStyle.Render(m.engine.Text("record_sentence_instruction", repl))
		action = m.engine.Text("record_sentence", nil)
		if p.flow.Recording() {
			action = m.engine.Text("listening", nil)
		}
		keys = append(keys, m.keys.Record)
	case engine.StepComplete:
		instruction = m.engine.Text("completed_all_steps", nil)
		if t := p.flow.Transcript(); t != "" {
			instruction += " " + progressStyle.Render(m.engine.Text("heard", map[string]string{"transcript": t}))
		}
		action = m.engine.Text("next_word", nil)
	}
	keys = append(keys, m.keys.Next, m.keys.Colors, m.keys.Brush, m.keys.Eraser, m.keys.Bigger, m.keys.Undo, m.keys.Clear)

	clip := lipgloss.NewStyle()
	if m.width > 0 {
		clip = clip.MaxWidth(m.width)
	}
	lines := []string{
		m.header(),
		clip.Render(" " + instruction),
		clip.Render(" " + titleStyle.Render("⏎ "+action)),
	}
	if !p.canvas.area.Empty() {
		lines = append(lines, p.canvas.View())
	}
	lines = append(lines, clip.Render(m.toolbar()), m.footer(keys...))
	return strings.Join(lines, "\n")
}

func (m model) toolbar() string {
	p := m.play
	s := p.canvas.surface
	var b strings.Builder
	b.WriteString(" " + m.engine.Text("pick_a_color", nil) + " ")
	for i, sw := range canvas.Palette {
		mark := " "
		if i == p.swatch && s.Tool() == canvas.Brush {
			mark = "▸"
		}
		b.WriteString(mark + lipgloss.NewStyle().Foreground(lipgloss.Color(sw.Hex)).Render(fmt.Sprintf("%d██", i+1)))
	}
	tool := m.engine.Text("brush", nil)
	if s.Tool() == canvas.Eraser {
		tool = m.engine.Text("eraser", nil)
	}
	fmt.Fprintf(&b, "  %s · %s %d", tool, m.engine.Text("brush_size", nil), s.Width())
	return b.String()
}

func (m model) celebrateView() string {
	last := m.engine.State().CurrentRound == m.engine.State().TotalRounds
	next := m.engine.Text("next_word", nil)
	if last {
		next = m.engine.Text("complete_day_1", nil)
	}

	lines := []string{}
	if last {
		lines = append(lines, titleStyle.Render(m.engine.Text("game_complete", nil)), "")
	}
	lines = append(lines,
		wordStyle.Render("🎉 "+m.engine.CelebrationMessage()),
		"",
		m.engine.Text("drawing_wonderful", map[string]string{"word": m.engine.CurrentWord()}),
		"",
		stickerStyle.Render("⭐ "+m.engine.Sticker()),
		"",
		m.engine.Text("now_try_this_twist", nil)+" "+twistStyle.Render(m.engine.TwistPrompt()),
		"",
		titleStyle.Render("⏎ "+next),
		"",
		m.footer(m.keys.Next),
	)
	return m.page(lines...)
}

func (m model) surveyView() string {
	s := m.engine.Survey()
	if s == nil {
		return m.header()
	}
	if s.OnIntro() {
		return m.page(
			titleStyle.Render("🏆 "+m.engine.Text("day_1_complete", nil)),
			"",
			m.engine.Text("congratulations_day_1", nil),
			"",
			clueStyle.Render("💡 "+m.engine.Text("did_you_know", nil)),
			m.engine.Text("7_days_best_chance", nil),
			"",
			titleStyle.Render("⏎ "+m.engine.Text("continue_to_survey", nil)),
			"",
			m.footer(m.keys.Next),
		)
	}

	q, ok := s.Current()
	if !ok {
		return m.header()
	}
	lines := []string{
		progressStyle.Render(m.engine.Text("question_of", map[string]string{
			"current": itoa(s.Index() + 1),
			"total":   itoa(s.Total()),
		})),
		"",
		titleStyle.Render(m.engine.Text(q.Question, nil)),
		"",
	}
	lines = append(lines, m.questionWidget(q)...)

	next := m.engine.Text("next", nil)
	if s.IsLast() {
		next = m.engine.Text("complete_survey", nil)
	}
	lines = append(lines, "",
		progressStyle.Render("⇧⇥ "+m.engine.Text("previous", nil))+"   "+titleStyle.Render("⏎ "+next),
		"",
	)

	var keys []key.Binding
	switch q.Type {
	case models.QuestionText:
		return m.page(append(lines, m.footer(m.keys.Next, m.keys.Back))...)
	case models.QuestionYesNo:
		keys = append(keys, m.keys.Yes, m.keys.No)
	default:
		keys = append(keys, m.keys.Select)
	}
	keys = append(keys, m.keys.Next, m.keys.Back)
	return m.page(append(lines, m.footer(keys...))...)
}

func (m model) questionWidget(q models.SurveyQuestion) []string {
	answer, answered := m.engine.Survey().Answer(q.ID)
	var lines []string
	switch q.Type {
	case models.QuestionRadio:
		for i, opt := range q.Options {
			lines = append(lines, m.choice(i == m.cursor, opt == answer, m.engine.Text(opt, nil)))
		}
	case models.QuestionText:
		lines = append(lines, m.textInput.View())
	case models.QuestionSlider:
		width := q.Max - q.Min
		filled := m.cursor - q.Min
		bar := strings.Repeat("★", filled) + strings.Repeat("☆", width-filled)
		value := fmt.Sprintf("%d %s", m.cursor, m.engine.Text("stars", nil))
		if !answered {
			value = progressStyle.Render(value)
		}
		lines = append(lines, "◀ "+bar+" ▶  "+value)
	case models.QuestionEmoji:
		var faces []string
		for i, e := range q.Emojis {
			label := e.Emoji + " " + m.engine.Text(e.Label, nil)
			if i == m.cursor {
				label = "[" + label + "]"
			}
			if e.Value == answer {
				label = selectedStyle.Render(label)
			}
			faces = append(faces, label)
		}
		lines = append(lines, strings.Join(faces, "   "))
	case models.QuestionYesNo:
		for i, v := range yesNo {
			lines = append(lines, m.choice(i == m.cursor, v == answer, m.engine.Text(v, nil)))
		}
	}
	return lines
}

func (m model) choice(cursor, selected bool, label string) string {
	mark := "( )"
	if selected {
		mark = "(•)"
	}
	if cursor {
		return selectedStyle.Render("▸ " + mark + " " + label)
	}
	return choiceStyle.Render("  " + mark + " " + label)
}

func (m model) endView() string {
	lines := []string{
		titleStyle.Render("🌟 " + m.engine.Text("thank_you_for_playing", nil)),
		"",
		m.engine.Text("game_complete_message", nil),
		"",
		titleStyle.Render(m.engine.Text("words_you_learned", nil)),
	}
	for _, w := range m.engine.LearnedWords() {
		entry := w.Word
		if m.engine.Language() == i18n.Hindi {
			entry += " (" + w.English + ")"
		}
		lines = append(lines, choiceStyle.Render("• "+entry))
	}
	lines = append(lines,
		"",
		m.engine.Text("keep_practicing_message", nil),
		"",
		titleStyle.Render("⏎ "+m.engine.Text("play_again", nil)),
		"",
		progressStyle.Render(m.engine.Text("thank_you_footer", nil)),
		"",
		m.footer(m.keys.Restart),
	)
	return m.page(lines...)
}
