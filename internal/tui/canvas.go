package tui

import (
	"image"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/word-sketch/internal/canvas"
)

// Bitmap pixels per terminal cell. Each cell shows two stacked pixels
// through the upper half block glyph.
const (
	cellW = 4
	cellH = 8
)

// maxStyles bounds the cache of cell styles; anti-aliased edges produce
// many one-off colour pairs.
const maxStyles = 4096

// canvasView puts a drawing surface on a rectangle of terminal cells.
type canvasView struct {
	surface *canvas.Surface
	area    image.Rectangle
	styles  map[[2]color.RGBA]lipgloss.Style
}

func newCanvasView(brush int) *canvasView {
	s := canvas.New(canvas.WithReady(func(s *canvas.Surface) { s.Snapshot() }))
	s.SetTool(canvas.Brush, canvas.Palette[0].Color, brush)
	return &canvasView{
		surface: s,
		styles:  make(map[[2]color.RGBA]lipgloss.Style),
	}
}

// layout moves the canvas to area, in cells. The bitmap keeps a fixed
// number of pixels per cell, so a bigger terminal gets a bigger bitmap.
func (v *canvasView) layout(area image.Rectangle) {
	v.area = area.Canon()
	v.surface.Resize(image.Pt(v.area.Dx()*cellW, v.area.Dy()*cellH))
	v.surface.SetDisplay(canvas.Rect{
		X: float64(v.area.Min.X),
		Y: float64(v.area.Min.Y),
		W: float64(v.area.Dx()),
		H: float64(v.area.Dy()),
	})
}

// mouse feeds a terminal mouse event to the surface. It reports whether
// a new stroke began.
func (v *canvasView) mouse(msg tea.MouseMsg) bool {
	p := canvas.Point{X: float64(msg.X) + 0.5, Y: float64(msg.Y) + 0.5}
	inside := image.Pt(msg.X, msg.Y).In(v.area)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return false
		}
		v.surface.Snapshot()
		v.surface.HandleMouse(canvas.PointerDown, p)
		return true
	case tea.MouseActionMotion:
		if !inside {
			v.surface.HandleMouse(canvas.PointerLeave, p)
			return false
		}
		v.surface.HandleMouse(canvas.PointerMove, p)
	case tea.MouseActionRelease:
		v.surface.HandleMouse(canvas.PointerUp, p)
	}
	return false
}

func (v *canvasView) View() string {
	if v.area.Empty() {
		return ""
	}
	var b strings.Builder
	x0 := strings.Repeat(" ", v.area.Min.X)
	for row := 0; row < v.area.Dy(); row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(x0)
		for col := 0; col < v.area.Dx(); col++ {
			x := col*cellW + cellW/2
			top := v.surface.RGBAAt(x, row*cellH+cellH/4)
			bottom := v.surface.RGBAAt(x, row*cellH+3*cellH/4)
			b.WriteString(v.style(top, bottom).Render("▀"))
		}
	}
	return b.String()
}

func (v *canvasView) style(top, bottom color.RGBA) lipgloss.Style {
	k := [2]color.RGBA{top, bottom}
	if s, ok := v.styles[k]; ok {
		return s
	}
	if len(v.styles) > maxStyles {
		clear(v.styles)
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(canvas.Hex(top))).
		Background(lipgloss.Color(canvas.Hex(bottom)))
	v.styles[k] = s
	return s
}
