// Package raster is the drawing surface shared by the scene compositor and the
// placeholder synthesizer.
//
// A Surface wraps a fixed-size *image.RGBA. Paths are rasterized with
// golang.org/x/image/vector using nonzero coverage accumulation and composited
// source-over; any image.Image can be used as paint, which is how the linear and
// radial gradients in this package are applied.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// Surface is a fixed-size RGBA pixel buffer. Its dimensions never change
// after New. A Surface is not safe for concurrent use.
type Surface struct {
	img  *image.RGBA
	w, h int
}

// New allocates a transparent surface. Non-positive sizes are clamped to 1.
func New(w, h int) *Surface {
	w = max(1, w)
	h = max(1, h)
	return &Surface{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		w:   w,
		h:   h,
	}
}

func (s *Surface) Width() int  { return s.w }
func (s *Surface) Height() int { return s.h }

// Image returns the backing image. Writes through it are visible to the surface.
func (s *Surface) Image() *image.RGBA { return s.img }

// Fill rasterizes p (every subpath implicitly closed) and composites paint over
// the covered pixels. Only the path's bounding box is visited.
func (s *Surface) Fill(p *Path, paint image.Image) {
	if p == nil || len(p.ops) == 0 || paint == nil {
		return
	}
	r := p.bounds().Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	pt := func(q point) (float32, float32) {
		return float32(q.x - ox), float32(q.y - oy)
	}
	open := false
	for _, o := range p.ops {
		switch o.kind {
		case opMove:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(o.pts[0]))
			open = true
		case opLine:
			x, y := pt(o.pts[0])
			z.LineTo(x, y)
		case opQuad:
			bx, by := pt(o.pts[0])
			cx, cy := pt(o.pts[1])
			z.QuadTo(bx, by, cx, cy)
		case opCubic:
			bx, by := pt(o.pts[0])
			cx, cy := pt(o.pts[1])
			dx, dy := pt(o.pts[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		case opClose:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
	z.Draw(s.img, r, paint, r.Min)
}

// FillRect fills the axis-aligned rectangle with its top-left corner at (x, y).
func (s *Surface) FillRect(x, y, w, h float64, paint image.Image) {
	if w <= 0 || h <= 0 {
		return
	}
	p := NewPath()
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	s.Fill(p, paint)
}

// FillCircle fills a disc of radius r centred at (cx, cy).
func (s *Surface) FillCircle(cx, cy, r float64, paint image.Image) {
	s.FillEllipse(cx, cy, r, r, 0, paint)
}

// FillEllipse fills an ellipse with radii rx, ry rotated by rotation radians.
func (s *Surface) FillEllipse(cx, cy, rx, ry, rotation float64, paint image.Image) {
	if rx <= 0 || ry <= 0 {
		return
	}
	p := NewPath()
	p.Ellipse(cx, cy, rx, ry, rotation)
	s.Fill(p, paint)
}

// StrokeLine strokes a single butt-capped segment.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, paint image.Image) {
	p := NewPath()
	p.MoveTo(x0, y0)
	p.LineTo(x1, y1)
	s.Stroke(p, width, paint)
}

// Stroke outlines every segment of the flattened path with a quad of the given
// width. All quads share one winding direction, so overlaps at joints do not
// cancel out under nonzero accumulation.
func (s *Surface) Stroke(p *Path, width float64, paint image.Image) {
	if p == nil || width <= 0 {
		return
	}
	hw := width / 2
	outline := NewPath()
	for _, line := range p.flatten() {
		for i := 1; i < len(line); i++ {
			a, b := line[i-1], line[i]
			dx, dy := b.x-a.x, b.y-a.y
			l := math.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			nx, ny := -dy/l*hw, dx/l*hw
			outline.MoveTo(a.x+nx, a.y+ny)
			outline.LineTo(b.x+nx, b.y+ny)
			outline.LineTo(b.x-nx, b.y-ny)
			outline.LineTo(a.x-nx, a.y-ny)
			outline.Close()
		}
	}
	s.Fill(outline, paint)
}

// Solid returns a uniform paint. The vector rasterizer has a fast path for it.
func Solid(c color.Color) *image.Uniform {
	return image.NewUniform(c)
}

// RGBA builds a non-premultiplied color from 8-bit channels and a [0,1] alpha.
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(a)}
}

// WithAlpha replaces the alpha of c (after un-premultiplying) with a in [0,1].
func WithAlpha(c color.Color, a float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = alpha8(a)
	return n
}

func alpha8(a float64) uint8 {
	if math.IsNaN(a) {
		return 0
	}
	return uint8(max(0, min(255, math.Round(a*255))))
}
