// Package canvas is the freehand drawing surface of the play screen: it
// turns pointer input into strokes on a bitmap, keeps drawn content across
// resizes and offers a bounded undo history.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
)

// Tool selects what a stroke does to the bitmap.
type Tool int

const (
	Brush Tool = iota
	Eraser
)

func (t Tool) String() string {
	if t == Eraser {
		return "eraser"
	}
	return "brush"
}

// DefaultWidth is the brush width of a new surface, in bitmap pixels.
const DefaultWidth = 8

// Point is a position in the input device's coordinate space.
type Point struct {
	X, Y float64
}

// Rect is where the surface is displayed, in input coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Surface is one drawing canvas. It is not safe for concurrent use; it is
// owned by a single play screen.
type Surface struct {
	bg      color.RGBA
	img     *image.RGBA
	display Rect

	tool  Tool
	color color.RGBA
	width int

	history *History
	drawing bool
	last    Point

	onReady    func(*Surface)
	readyFired bool
}

// Option configures a Surface.
type Option func(*Surface)

// WithBackground replaces the paper colour. Transparency is dropped.
func WithBackground(c color.Color) Option {
	return func(s *Surface) {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		rgba.A = 0xff
		s.bg = rgba
	}
}

// WithReady registers fn to run once, the first time the surface gets a
// bitmap with non-zero area.
func WithReady(fn func(*Surface)) Option {
	return func(s *Surface) { s.onReady = fn }
}

// New returns a surface with no bitmap yet. Call Initialize once the
// container size is known.
func New(opts ...Option) *Surface {
	s := &Surface{
		bg:      Background,
		tool:    Brush,
		color:   Palette[0].Color,
		width:   DefaultWidth,
		history: NewHistory(HistoryCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize allocates a bitmap of size filled with the background colour,
// dropping any previous content and history. Zero or negative sizes are
// ignored.
func (s *Surface) Initialize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	s.img = s.blank(size)
	s.history.Clear()
	s.drawing = false
	s.fireReady()
}

// Resize moves the drawing to a bitmap of the new size, anchored at the
// origin. Area outside the old bitmap is background; old content outside
// the new bounds is dropped. Zero or negative sizes are ignored.
func (s *Surface) Resize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	if s.img == nil {
		s.Initialize(size)
		return
	}
	if s.img.Bounds().Size() == size {
		return
	}
	next := s.blank(size)
	draw.Draw(next, s.img.Bounds().Intersect(next.Bounds()), s.img, image.Point{}, draw.Src)
	s.img = next
}

// SetDisplay records where the surface is shown, in input coordinates.
func (s *Surface) SetDisplay(r Rect) {
	s.display = r
}

// SetTool updates the stroke parameters. The colour is used only by the
// brush; widths below one pixel are raised to one.
func (s *Surface) SetTool(mode Tool, c color.Color, width int) {
	s.tool = mode
	if c != nil {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		rgba.A = 0xff
		s.color = rgba
	}
	s.width = max(width, 1)
}

// MapPoint converts an input-space point to bitmap pixel space, scaling by
// the ratio of bitmap resolution to displayed size.
func (s *Surface) MapPoint(p Point) Point {
	x, y := p.X-s.display.X, p.Y-s.display.Y
	if s.img == nil {
		return Point{x, y}
	}
	size := s.img.Bounds().Size()
	if s.display.W > 0 {
		x *= float64(size.X) / s.display.W
	}
	if s.display.H > 0 {
		y *= float64(size.Y) / s.display.H
	}
	return Point{x, y}
}

// BeginStroke starts a stroke at p and stamps a round dot there.
func (s *Surface) BeginStroke(p Point) {
	if s.img == nil {
		return
	}
	s.drawing = true
	s.last = s.MapPoint(p)
	s.stroke(s.last, s.last)
}

// ExtendStroke draws from the previous point to p. It does nothing unless
// a stroke is in progress.
func (s *Surface) ExtendStroke(p Point) {
	if !s.drawing || s.img == nil {
		return
	}
	next := s.MapPoint(p)
	s.stroke(s.last, next)
	s.last = next
}

// EndStroke finishes the current stroke, if any.
func (s *Surface) EndStroke() {
	s.drawing = false
}

// Snapshot saves the current bitmap for Undo. The oldest snapshot is
// evicted past HistoryCapacity.
func (s *Surface) Snapshot() {
	if s.img == nil {
		return
	}
	s.history.Push(cloneRGBA(s.img))
}

// Undo restores the most recent snapshot and drops it from history. It
// reports false when there was nothing to undo.
func (s *Surface) Undo() bool {
	snap, ok := s.history.Pop()
	if !ok || s.img == nil {
		return false
	}
	draw.Draw(s.img, snap.Bounds(), snap, image.Point{}, draw.Src)
	return true
}

// Clear paints the whole bitmap with the background and drops all history.
func (s *Surface) Clear() {
	s.history.Clear()
	if s.img == nil {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.bg), image.Point{}, draw.Src)
}

// Size is the bitmap size in pixels; zero before Initialize.
func (s *Surface) Size() image.Point {
	if s.img == nil {
		return image.Point{}
	}
	return s.img.Bounds().Size()
}

// Image returns the live bitmap, or nil before Initialize. Callers must not
// modify it.
func (s *Surface) Image() *image.RGBA { return s.img }

// RGBAAt returns the pixel at (x, y); out of range reads return the
// background.
func (s *Surface) RGBAAt(x, y int) color.RGBA {
	if s.img == nil || !image.Pt(x, y).In(s.img.Bounds()) {
		return s.bg
	}
	return s.img.RGBAAt(x, y)
}

func (s *Surface) Background() color.RGBA { return s.bg }
func (s *Surface) Tool() Tool { return s.tool }
func (s *Surface) Color() color.RGBA { return s.color }
func (s *Surface) Width() int { return s.width }
func (s *Surface) IsDrawing() bool { return s.drawing }
func (s *Surface) HistoryLen() int { return s.history.Len() }

func (s *Surface) blank(size image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(s.bg), image.Point{}, draw.Src)
	return img
}

func (s *Surface) fireReady() {
	if s.readyFired || s.onReady == nil {
		return
	}
	s.readyFired = true
	s.onReady(s)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
