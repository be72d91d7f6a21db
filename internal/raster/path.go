package raster

import (
	"image"
	"math"
)

type point struct{ x, y float64 }

type opKind uint8

const (
	opMove opKind = iota
	opLine
	opQuad
	opCubic
	opClose
)

type op struct {
	kind opKind
	pts  [3]point
}

// Path is a sequence of subpaths in surface coordinates.
type Path struct {
	ops                    []op
	minX, minY, maxX, maxY float64
	start, pen             point
}

func NewPath() *Path {
	return &Path{
		minX: math.Inf(1),
		minY: math.Inf(1),
		maxX: math.Inf(-1),
		maxY: math.Inf(-1),
	}
}

func (p *Path) grow(pts ...point) {
	for _, q := range pts {
		p.minX = min(p.minX, q.x)
		p.minY = min(p.minY, q.y)
		p.maxX = max(p.maxX, q.x)
		p.maxY = max(p.maxY, q.y)
	}
}

func (p *Path) MoveTo(x, y float64) {
	q := point{x, y}
	p.ops = append(p.ops, op{kind: opMove, pts: [3]point{q}})
	p.grow(q)
	p.start, p.pen = q, q
}

func (p *Path) LineTo(x, y float64) {
	if len(p.ops) == 0 {
		p.MoveTo(x, y)
		return
	}
	q := point{x, y}
	p.ops = append(p.ops, op{kind: opLine, pts: [3]point{q}})
	p.grow(q)
	p.pen = q
}

// QuadTo adds a quadratic Bézier through control point (cx, cy) to (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if len(p.ops) == 0 {
		p.MoveTo(cx, cy)
	}
	c, q := point{cx, cy}, point{x, y}
	p.ops = append(p.ops, op{kind: opQuad, pts: [3]point{c, q}})
	p.grow(c, q)
	p.pen = q
}

// CubicTo adds a cubic Bézier with control points (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(p.ops) == 0 {
		p.MoveTo(c1x, c1y)
	}
	c1, c2, q := point{c1x, c1y}, point{c2x, c2y}, point{x, y}
	p.ops = append(p.ops, op{kind: opCubic, pts: [3]point{c1, c2, q}})
	p.grow(c1, c2, q)
	p.pen = q
}

func (p *Path) Close() {
	if len(p.ops) == 0 {
		return
	}
	p.ops = append(p.ops, op{kind: opClose})
	p.pen = p.start
}

// kappa is the control point distance for a quarter circle made of one cubic.
const kappa = 0.5522847498307936

// Ellipse appends a closed ellipse built from four cubic segments.
func (p *Path) Ellipse(cx, cy, rx, ry, rotation float64) {
	sin, cos := math.Sincos(rotation)
	tr := func(x, y float64) (float64, float64) {
		return cx + x*cos - y*sin, cy + x*sin + y*cos
	}
	kx, ky := rx*kappa, ry*kappa
	p.MoveTo(tr(rx, 0))
	seg := func(c1x, c1y, c2x, c2y, x, y float64) {
		ax, ay := tr(c1x, c1y)
		bx, by := tr(c2x, c2y)
		ex, ey := tr(x, y)
		p.CubicTo(ax, ay, bx, by, ex, ey)
	}
	seg(rx, ky, kx, ry, 0, ry)
	seg(-kx, ry, -rx, ky, -rx, 0)
	seg(-rx, -ky, -kx, -ry, 0, -ry)
	seg(kx, -ry, rx, -ky, rx, 0)
	p.Close()
}

// Polygon appends a closed polygon through the given x,y pairs.
func (p *Path) Polygon(xy ...float64) {
	if len(xy) < 4 {
		return
	}
	p.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		p.LineTo(xy[i], xy[i+1])
	}
	p.Close()
}

// bounds is the integer box covering every point and control point, padded by
// one pixel for anti-aliased edges.
func (p *Path) bounds() image.Rectangle {
	if len(p.ops) == 0 || math.IsInf(p.minX, 0) {
		return image.Rectangle{}
	}
	const limit = 1 << 24
	clampC := func(v float64) int {
		if math.IsNaN(v) {
			return 0
		}
		return int(max(-limit, min(limit, v)))
	}
	return image.Rect(
		clampC(math.Floor(p.minX))-1,
		clampC(math.Floor(p.minY))-1,
		clampC(math.Ceil(p.maxX))+1,
		clampC(math.Ceil(p.maxY))+1,
	)
}

const (
	quadSteps  = 8
	cubicSteps = 12
)

// flatten converts the path into polylines, one per subpath.
func (p *Path) flatten() [][]point {
	var lines [][]point
	var cur []point
	var start, pen point
	flush := func() {
		if len(cur) > 1 {
			lines = append(lines, cur)
		}
		cur = nil
	}
	for _, o := range p.ops {
		switch o.kind {
		case opMove:
			flush()
			start, pen = o.pts[0], o.pts[0]
			cur = []point{pen}
		case opLine:
			pen = o.pts[0]
			cur = append(cur, pen)
		case opQuad:
			a, c, b := pen, o.pts[0], o.pts[1]
			for i := 1; i <= quadSteps; i++ {
				t := float64(i) / quadSteps
				u := 1 - t
				cur = append(cur, point{
					u*u*a.x + 2*u*t*c.x + t*t*b.x,
					u*u*a.y + 2*u*t*c.y + t*t*b.y,
				})
			}
			pen = b
		case opCubic:
			a, c1, c2, b := pen, o.pts[0], o.pts[1], o.pts[2]
			for i := 1; i <= cubicSteps; i++ {
				t := float64(i) / cubicSteps
				u := 1 - t
				cur = append(cur, point{
					u*u*u*a.x + 3*u*u*t*c1.x + 3*u*t*t*c2.x + t*t*t*b.x,
					u*u*u*a.y + 3*u*u*t*c1.y + 3*u*t*t*c2.y + t*t*t*b.y,
				})
			}
			pen = b
		case opClose:
			cur = append(cur, start)
			pen = start
			flush()
			cur = []point{pen}
		}
	}
	flush()
	return lines
}
