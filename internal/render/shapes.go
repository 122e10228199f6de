package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter-circle arc.
const kappa = 0.5522847498

// shape rasterizes only the pixels of dst covered by the box (x0,y0)-(x1,y1).
// Path coordinates passed to the returned rasterizer are in dst space and
// are shifted by the box origin.
type shape struct {
	z      *vector.Rasterizer
	bounds image.Rectangle
	ox, oy float64
}

func newShape(dst draw.Image, x0, y0, x1, y1 float64) (shape, bool) {
	b := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	).Intersect(dst.Bounds())
	if b.Empty() {
		return shape{}, false
	}
	return shape{
		z:      vector.NewRasterizer(b.Dx(), b.Dy()),
		bounds: b,
		ox:     float64(b.Min.X),
		oy:     float64(b.Min.Y),
	}, true
}

func (s shape) moveTo(x, y float64) { s.z.MoveTo(f32(x-s.ox), f32(y-s.oy)) }
func (s shape) lineTo(x, y float64) { s.z.LineTo(f32(x-s.ox), f32(y-s.oy)) }

func (s shape) cubeTo(bx, by, cx, cy, dx, dy float64) {
	s.z.CubeTo(f32(bx-s.ox), f32(by-s.oy), f32(cx-s.ox), f32(cy-s.oy), f32(dx-s.ox), f32(dy-s.oy))
}

func (s shape) fill(dst draw.Image, c color.Color) {
	s.z.ClosePath()
	s.z.Draw(dst, s.bounds, image.NewUniform(c), image.Point{})
}

func fillCircle(dst draw.Image, cx, cy, r float64, c color.Color) {
	s, ok := newShape(dst, cx-r, cy-r, cx+r, cy+r)
	if !ok {
		return
	}
	k := kappa * r
	s.moveTo(cx+r, cy)
	s.cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	s.cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	s.cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	s.cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	s.fill(dst, c)
}

func fillRect(dst draw.Image, x0, y0, x1, y1 float64, c color.Color) {
	s, ok := newShape(dst, x0, y0, x1, y1)
	if !ok {
		return
	}
	s.moveTo(x0, y0)
	s.lineTo(x1, y0)
	s.lineTo(x1, y1)
	s.lineTo(x0, y1)
	s.fill(dst, c)
}

// strokeRect draws an outline of width w inside the rectangle.
func strokeRect(dst draw.Image, x0, y0, x1, y1, w float64, c color.Color) {
	fillRect(dst, x0, y0, x1, y0+w, c)
	fillRect(dst, x0, y1-w, x1, y1, c)
	fillRect(dst, x0, y0+w, x0+w, y1-w, c)
	fillRect(dst, x1-w, y0+w, x1, y1-w, c)
}

func f32(v float64) float32 { return float32(v) }
