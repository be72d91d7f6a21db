package raster

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// ColorStop is one gradient stop. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  color.Color
}

// Transparent is the canvas "transparent" keyword: black with zero alpha.
var Transparent = color.NRGBA{}

// everywhere is the bounds reported by gradients, which are defined on the
// whole plane.
var everywhere = image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)

type premul struct{ r, g, b, a float64 }

type stopList struct {
	offsets []float64
	colors  []premul
}

func (l *stopList) add(offset float64, c color.Color) {
	if math.IsNaN(offset) {
		offset = 0
	}
	offset = max(0, min(1, offset))
	r, g, b, a := c.RGBA()
	pc := premul{float64(r), float64(g), float64(b), float64(a)}
	// Stops with equal offsets keep insertion order.
	i := sort.Search(len(l.offsets), func(i int) bool { return l.offsets[i] > offset })
	l.offsets = append(l.offsets, 0)
	l.colors = append(l.colors, premul{})
	copy(l.offsets[i+1:], l.offsets[i:])
	copy(l.colors[i+1:], l.colors[i:])
	l.offsets[i] = offset
	l.colors[i] = pc
}

// at interpolates in premultiplied space, padding outside [first, last].
func (l *stopList) at(t float64) color.RGBA64 {
	n := len(l.offsets)
	if n == 0 {
		return color.RGBA64{}
	}
	if math.IsNaN(t) {
		t = 0
	}
	var c premul
	switch {
	case t <= l.offsets[0]:
		c = l.colors[0]
	case t >= l.offsets[n-1]:
		c = l.colors[n-1]
	default:
		i := sort.Search(n, func(i int) bool { return l.offsets[i] > t })
		o0, o1 := l.offsets[i-1], l.offsets[i]
		c0, c1 := l.colors[i-1], l.colors[i]
		f := 0.0
		if o1 > o0 {
			f = (t - o0) / (o1 - o0)
		}
		c = premul{
			c0.r + (c1.r-c0.r)*f,
			c0.g + (c1.g-c0.g)*f,
			c0.b + (c1.b-c0.b)*f,
			c0.a + (c1.a-c0.a)*f,
		}
	}
	return color.RGBA64{
		R: uint16(min(c.r, c.a)),
		G: uint16(min(c.g, c.a)),
		B: uint16(min(c.b, c.a)),
		A: uint16(c.a),
	}
}

// LinearGradient varies color along the segment (X0,Y0)-(X1,Y1) and is
// constant along its perpendiculars. It implements image.Image so it can be
// used directly as paint.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	stops          stopList
}

func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddColorStop returns the gradient for chaining.
func (g *LinearGradient) AddColorStop(offset float64, c color.Color) *LinearGradient {
	g.stops.add(offset, c)
	return g
}

func (g *LinearGradient) ColorModel() color.Model { return color.RGBA64Model }
func (g *LinearGradient) Bounds() image.Rectangle { return everywhere }

// At samples at the pixel centre.
func (g *LinearGradient) At(x, y int) color.Color {
	return g.ColorAt(float64(x)+0.5, float64(y)+0.5)
}

func (g *LinearGradient) ColorAt(x, y float64) color.RGBA64 {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return g.stops.at(0)
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / l2
	return g.stops.at(t)
}

// RadialGradient is a concentric gradient between radius R0 and R1 around
// (CX, CY).
type RadialGradient struct {
	CX, CY, R0, R1 float64
	stops          stopList
}

func NewRadialGradient(cx, cy, r0, r1 float64) *RadialGradient {
	return &RadialGradient{CX: cx, CY: cy, R0: r0, R1: r1}
}

func (g *RadialGradient) AddColorStop(offset float64, c color.Color) *RadialGradient {
	g.stops.add(offset, c)
	return g
}

func (g *RadialGradient) ColorModel() color.Model { return color.RGBA64Model }
func (g *RadialGradient) Bounds() image.Rectangle { return everywhere }

func (g *RadialGradient) At(x, y int) color.Color {
	return g.ColorAt(float64(x)+0.5, float64(y)+0.5)
}

func (g *RadialGradient) ColorAt(x, y float64) color.RGBA64 {
	span := g.R1 - g.R0
	if span <= 0 {
		return g.stops.at(1)
	}
	d := math.Hypot(x-g.CX, y-g.CY)
	return g.stops.at((d - g.R0) / span)
}
