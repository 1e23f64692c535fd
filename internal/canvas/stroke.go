package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// stroke paints a segment from a to b (bitmap space) with round caps using
// the current tool. The segment is rasterized into a coverage mask first,
// then the tool's source is composited through it: the brush lays its
// colour over what is there and the eraser lays the background back down.
// The eraser's mask is binary so partly covered pixels come back as pure
// background.
func (s *Surface) stroke(a, b Point) {
	r := float64(s.width) / 2
	bounds := image.Rect(
		int(math.Floor(min(a.X, b.X)-r))-1,
		int(math.Floor(min(a.Y, b.Y)-r))-1,
		int(math.Ceil(max(a.X, b.X)+r))+1,
		int(math.Ceil(max(a.Y, b.Y)+r))+1,
	).Intersect(s.img.Bounds())
	if bounds.Empty() {
		return
	}

	mask := image.NewAlpha(bounds)
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	off := Point{float64(bounds.Min.X), float64(bounds.Min.Y)}

	fillCircle(z, mask, a.sub(off), r)
	if a != b {
		z.Reset(bounds.Dx(), bounds.Dy())
		fillQuad(z, mask, a.sub(off), b.sub(off), r)
		z.Reset(bounds.Dx(), bounds.Dy())
		fillCircle(z, mask, b.sub(off), r)
	}

	if s.tool == Eraser {
		for i, v := range mask.Pix {
			if v != 0 {
				mask.Pix[i] = 0xff
			}
		}
	}
	draw.DrawMask(s.img, bounds, image.NewUniform(s.source()), image.Point{}, mask, bounds.Min, draw.Over)
}

// source is the colour composited through a stroke's mask.
func (s *Surface) source() color.RGBA {
	if s.tool == Eraser {
		return s.bg
	}
	return s.color
}

func (p Point) sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// fillCircle adds a disc of radius r at c to mask. Each shape gets its own
// rasterizer pass so that overlapping shapes union instead of cancelling.
func fillCircle(z *vector.Rasterizer, mask *image.Alpha, c Point, r float64) {
	cx, cy, rr, k := float32(c.X), float32(c.Y), float32(r), float32(r*kappa)
	z.MoveTo(cx+rr, cy)
	z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
}

// fillQuad adds the body of a segment of width 2r from a to b to mask.
func fillQuad(z *vector.Rasterizer, mask *image.Alpha, a, b Point, r float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*r, dx/length*r
	z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
}
