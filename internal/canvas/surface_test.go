package canvas

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = Palette[0].Color
	blue = Palette[4].Color
)

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s := New()
	s.Initialize(image.Pt(w, h))
	s.SetDisplay(Rect{W: float64(w), H: float64(h)})
	require.Equal(t, image.Pt(w, h), s.Size())
	return s
}

func drawLine(s *Surface, from, to Point) {
	s.BeginStroke(from)
	s.ExtendStroke(Point{(from.X + to.X) / 2, (from.Y + to.Y) / 2})
	s.ExtendStroke(to)
	s.EndStroke()
}

func pixBytes(s *Surface) []byte {
	return bytes.Clone(s.Image().Pix)
}

func TestInitializeFillsBackground(t *testing.T) {
	s := newSurface(t, 20, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if s.RGBAAt(x, y) != Background {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, s.RGBAAt(x, y))
			}
		}
	}
	assert.Equal(t, uint8(0xff), s.RGBAAt(0, 0).A, "background must be opaque")
}

func TestZeroSizeIsSafe(t *testing.T) {
	s := New()

	assert.NotPanics(t, func() {
		s.Resize(image.Pt(0, 0))
		s.Initialize(image.Pt(-4, 10))
		s.SetDisplay(Rect{})
		s.BeginStroke(Point{1, 1})
		s.ExtendStroke(Point{5, 5})
		s.EndStroke()
		s.Snapshot()
		s.Clear()
	})
	assert.False(t, s.Undo())
	assert.Equal(t, image.Point{}, s.Size())
	assert.Nil(t, s.Image())
	assert.False(t, s.IsDrawing())
	assert.Equal(t, 0, s.HistoryLen())

	// A later non-zero resize allocates the bitmap.
	s.Resize(image.Pt(8, 8))
	assert.Equal(t, image.Pt(8, 8), s.Size())

	// And zero sizes keep the current bitmap untouched.
	s.Resize(image.Pt(0, 3))
	assert.Equal(t, image.Pt(8, 8), s.Size())
}

func TestReadyFiresOnce(t *testing.T) {
	calls := 0
	s := New(WithReady(func(s *Surface) {
		calls++
		s.Snapshot()
	}))

	s.Resize(image.Pt(0, 0))
	assert.Equal(t, 0, calls)

	s.Resize(image.Pt(10, 10))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.HistoryLen())

	s.Resize(image.Pt(20, 10))
	s.Initialize(image.Pt(30, 30))
	assert.Equal(t, 1, calls)
}

func TestBrushStroke(t *testing.T) {
	s := newSurface(t, 100, 100)
	s.SetTool(Brush, red, 10)

	drawLine(s, Point{10, 50}, Point{90, 50})

	assert.Equal(t, red, s.RGBAAt(50, 50))
	assert.Equal(t, red, s.RGBAAt(12, 48))
	assert.Equal(t, Background, s.RGBAAt(50, 30))
	assert.Equal(t, Background, s.RGBAAt(97, 50))
	assert.False(t, s.IsDrawing())
}

func TestBeginStampsDot(t *testing.T) {
	s := newSurface(t, 40, 40)
	s.SetTool(Brush, blue, 6)

	s.BeginStroke(Point{20, 20})
	assert.True(t, s.IsDrawing())
	assert.Equal(t, blue, s.RGBAAt(20, 20))
	s.EndStroke()
}

func TestExtendWithoutBeginIsNoop(t *testing.T) {
	s := newSurface(t, 40, 40)
	before := pixBytes(s)

	s.ExtendStroke(Point{5, 5})
	s.ExtendStroke(Point{35, 35})

	assert.Equal(t, before, pixBytes(s))

	s.BeginStroke(Point{5, 5})
	s.EndStroke()
	after := pixBytes(s)
	s.ExtendStroke(Point{35, 35})
	assert.Equal(t, after, pixBytes(s), "extend after end must not draw")
}

func TestEraserRestoresBackground(t *testing.T) {
	for _, c := range []color.RGBA{red, blue, Palette[7].Color} {
		t.Run(Hex(c), func(t *testing.T) {
			s := newSurface(t, 100, 100)
			s.SetTool(Brush, c, 12)
			drawLine(s, Point{10, 50}, Point{90, 50})
			require.Equal(t, c, s.RGBAAt(50, 50))

			s.SetTool(Eraser, nil, 12)
			drawLine(s, Point{10, 50}, Point{90, 50})

			for x := 15; x <= 85; x++ {
				for y := 47; y <= 52; y++ {
					if got := s.RGBAAt(x, y); got != Background {
						t.Fatalf("pixel (%d,%d) = %v after erase, want background", x, y, got)
					}
				}
			}
		})
	}
}

func TestEraserLeavesNoFringe(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
	}{
		{"sub-pixel centre", Point{10.4, 50.3}, Point{89.6, 50.3}},
		{"diagonal", Point{8, 12}, Point{91, 87}},
		{"steep", Point{47.7, 5.2}, Point{53.1, 94.9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSurface(t, 100, 100)
			s.SetTool(Brush, red, 12)
			drawLine(s, tt.from, tt.to)
			require.NotEqual(t, Background, s.RGBAAt(50, 50))

			s.SetTool(Eraser, nil, 12)
			drawLine(s, tt.from, tt.to)

			for y := 0; y < 100; y++ {
				for x := 0; x < 100; x++ {
					if got := s.RGBAAt(x, y); got != Background {
						t.Fatalf("pixel (%d,%d) = %v after erase, want background", x, y, got)
					}
				}
			}
		})
	}
}

func TestEraserKeepsColourSetting(t *testing.T) {
	s := New()
	s.SetTool(Brush, blue, 4)
	s.SetTool(Eraser, nil, 20)
	assert.Equal(t, Eraser, s.Tool())
	assert.Equal(t, blue, s.Color())
	assert.Equal(t, 20, s.Width())

	s.SetTool(Brush, nil, 0)
	assert.Equal(t, 1, s.Width())
}

func TestSnapshotUndoRestoresBytes(t *testing.T) {
	s := newSurface(t, 64, 48)
	s.SetTool(Brush, red, 5)
	drawLine(s, Point{5, 5}, Point{60, 40})

	s.Snapshot()
	want := pixBytes(s)

	s.SetTool(Brush, blue, 9)
	drawLine(s, Point{0, 40}, Point{63, 0})
	drawLine(s, Point{30, 0}, Point{30, 47})
	s.SetTool(Eraser, nil, 15)
	drawLine(s, Point{5, 5}, Point{60, 40})
	require.NotEqual(t, want, pixBytes(s))

	require.True(t, s.Undo())
	assert.Equal(t, want, pixBytes(s))
	assert.Equal(t, 0, s.HistoryLen())
	assert.False(t, s.Undo(), "undo on empty history is a no-op")
	assert.Equal(t, want, pixBytes(s))
}

func TestHistoryIsBounded(t *testing.T) {
	s := newSurface(t, 30, 30)
	var states [][]byte

	for i := 0; i < HistoryCapacity+3; i++ {
		s.SetTool(Brush, Palette[i%len(Palette)].Color, 3)
		s.BeginStroke(Point{float64(2 + 2*i), 15})
		s.EndStroke()
		s.Snapshot()
		states = append(states, pixBytes(s))
	}
	assert.Equal(t, HistoryCapacity, s.HistoryLen())

	for i := len(states) - 1; i >= len(states)-HistoryCapacity; i-- {
		require.True(t, s.Undo())
		assert.Equal(t, states[i], pixBytes(s), "undo %d", i)
	}
	assert.False(t, s.Undo())
}

func TestClearDropsHistory(t *testing.T) {
	s := newSurface(t, 30, 30)
	s.Snapshot()
	drawLine(s, Point{0, 0}, Point{29, 29})
	s.Snapshot()

	s.Clear()

	assert.Equal(t, 0, s.HistoryLen())
	blank := newSurface(t, 30, 30)
	assert.Equal(t, pixBytes(blank), pixBytes(s))
	assert.False(t, s.Undo())
}

func TestResizePreservesOrigin(t *testing.T) {
	s := newSurface(t, 100, 100)
	s.SetTool(Brush, red, 6)
	s.BeginStroke(Point{20, 20})
	s.EndStroke()
	s.BeginStroke(Point{80, 80})
	s.EndStroke()

	s.Resize(image.Pt(150, 120))
	assert.Equal(t, image.Pt(150, 120), s.Size())
	assert.Equal(t, red, s.RGBAAt(20, 20))
	assert.Equal(t, red, s.RGBAAt(80, 80))
	assert.Equal(t, Background, s.RGBAAt(140, 110), "grown area is background")

	s.Resize(image.Pt(50, 50))
	assert.Equal(t, red, s.RGBAAt(20, 20))

	s.Resize(image.Pt(100, 100))
	assert.Equal(t, red, s.RGBAAt(20, 20), "never-clipped content survives")
	assert.Equal(t, Background, s.RGBAAt(80, 80), "clipped content is lost")
}

func TestUndoAfterResize(t *testing.T) {
	s := newSurface(t, 40, 40)
	s.Snapshot()
	s.SetTool(Brush, red, 4)
	s.BeginStroke(Point{10, 10})
	s.EndStroke()

	s.Resize(image.Pt(20, 60))
	require.True(t, s.Undo())
	assert.Equal(t, image.Pt(20, 60), s.Size(), "undo keeps the current size")
	assert.Equal(t, Background, s.RGBAAt(10, 10))
}

func TestMapPointScalesToBitmap(t *testing.T) {
	s := New()
	s.Initialize(image.Pt(200, 100))
	s.SetDisplay(Rect{X: 10, Y: 20, W: 100, H: 50})

	assert.Equal(t, Point{100, 50}, s.MapPoint(Point{60, 45}))
	assert.Equal(t, Point{0, 0}, s.MapPoint(Point{10, 20}))

	s.SetTool(Brush, blue, 4)
	s.BeginStroke(Point{60, 45})
	s.EndStroke()
	assert.Equal(t, blue, s.RGBAAt(100, 50))
	assert.Equal(t, Background, s.RGBAAt(50, 25))
}

func TestMapPointWithoutDisplay(t *testing.T) {
	s := New()
	s.Initialize(image.Pt(50, 50))
	assert.Equal(t, Point{7, 9}, s.MapPoint(Point{7, 9}))
}

func TestHandleTouchUsesFirstContact(t *testing.T) {
	s := newSurface(t, 60, 60)
	s.SetTool(Brush, red, 6)

	s.HandleTouch(PointerDown, []Point{{10, 10}, {50, 50}})
	s.HandleTouch(PointerMove, []Point{{20, 10}, {50, 40}})
	s.HandleTouch(PointerUp, nil)

	assert.Equal(t, red, s.RGBAAt(15, 10))
	assert.Equal(t, Background, s.RGBAAt(50, 50))
	assert.Equal(t, Background, s.RGBAAt(50, 45))
	assert.False(t, s.IsDrawing())

	before := pixBytes(s)
	s.HandleTouch(PointerDown, nil)
	assert.Equal(t, before, pixBytes(s))
	assert.False(t, s.IsDrawing())
}

func TestHandleMouseLeaveEndsStroke(t *testing.T) {
	s := newSurface(t, 60, 60)
	s.HandleMouse(PointerDown, Point{5, 5})
	s.HandleMouse(PointerLeave, Point{70, 70})
	assert.False(t, s.IsDrawing())

	before := pixBytes(s)
	s.HandleMouse(PointerMove, Point{30, 30})
	assert.Equal(t, before, pixBytes(s))
}

func TestStrokeOffCanvasIsClipped(t *testing.T) {
	s := newSurface(t, 20, 20)
	assert.NotPanics(t, func() {
		drawLine(s, Point{-50, -50}, Point{-30, -10})
		drawLine(s, Point{-5, 10}, Point{40, 10})
	})
	assert.Equal(t, s.Color(), s.RGBAAt(10, 10))
}
