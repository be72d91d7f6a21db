package raster

import (
	"image/color"
	"testing"
)

func TestNewClampsSize(t *testing.T) {
	s := New(0, -5)
	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("New(0,-5) = %dx%d, want 1x1", s.Width(), s.Height())
	}
	s = New(800, 500)
	if b := s.Image().Bounds(); b.Dx() != 800 || b.Dy() != 500 {
		t.Errorf("bounds = %v", b)
	}
}

func TestFillRectSolid(t *testing.T) {
	s := New(20, 20)
	s.FillRect(5, 5, 10, 10, Solid(color.NRGBA{R: 255, A: 255}))

	tests := []struct {
		name  string
		x, y  int
		wantA uint8
	}{
		{"inside", 10, 10, 255},
		{"corner inside", 5, 5, 255},
		{"outside left", 2, 10, 0},
		{"outside below", 10, 16, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Image().RGBAAt(tt.x, tt.y)
			if got.A != tt.wantA {
				t.Errorf("alpha at (%d,%d) = %d, want %d", tt.x, tt.y, got.A, tt.wantA)
			}
		})
	}
	if got := s.Image().RGBAAt(10, 10); got.R != 255 || got.G != 0 {
		t.Errorf("inside color = %v", got)
	}
}

func TestFillOutsideSurfaceIsNoop(t *testing.T) {
	s := New(10, 10)
	s.FillRect(50, 50, 10, 10, Solid(color.White))
	s.FillCircle(-100, -100, 5, Solid(color.White))
	for i, v := range s.Image().Pix {
		if v != 0 {
			t.Fatalf("pix[%d] = %d, want untouched surface", i, v)
		}
	}
}

func TestFillRectPartiallyOutside(t *testing.T) {
	s := New(10, 10)
	s.FillRect(-5, -5, 10, 10, Solid(color.NRGBA{G: 255, A: 255}))
	if got := s.Image().RGBAAt(0, 0); got.A != 255 {
		t.Errorf("clipped corner alpha = %d, want 255", got.A)
	}
	if got := s.Image().RGBAAt(7, 7); got.A != 0 {
		t.Errorf("outside alpha = %d, want 0", got.A)
	}
}

func TestFillCircle(t *testing.T) {
	s := New(40, 40)
	s.FillCircle(20, 20, 10, Solid(color.White))
	if got := s.Image().RGBAAt(20, 20); got.A != 255 {
		t.Errorf("centre alpha = %d", got.A)
	}
	if got := s.Image().RGBAAt(20, 8); got.A != 0 {
		t.Errorf("above circle alpha = %d", got.A)
	}
	// Bounding box corner lies outside the disc.
	if got := s.Image().RGBAAt(11, 11); got.A != 0 {
		t.Errorf("bbox corner alpha = %d", got.A)
	}
}

func TestFillSemiTransparentBlends(t *testing.T) {
	s := New(4, 4)
	s.FillRect(0, 0, 4, 4, Solid(color.NRGBA{B: 255, A: 255}))
	s.FillRect(0, 0, 4, 4, Solid(color.NRGBA{R: 255, A: 128}))
	got := s.Image().RGBAAt(1, 1)
	if got.A != 255 {
		t.Errorf("alpha = %d, want 255", got.A)
	}
	if got.R < 120 || got.R > 136 || got.B < 120 || got.B > 136 {
		t.Errorf("blend = %v, want roughly half red half blue", got)
	}
}

func TestStrokeLine(t *testing.T) {
	s := New(30, 30)
	s.StrokeLine(2, 15, 28, 15, 4, Solid(color.White))
	if got := s.Image().RGBAAt(15, 15); got.A != 255 {
		t.Errorf("on-line alpha = %d", got.A)
	}
	if got := s.Image().RGBAAt(15, 5); got.A != 0 {
		t.Errorf("off-line alpha = %d", got.A)
	}
}

func TestStrokeCurveDoesNotCancel(t *testing.T) {
	s := New(100, 40)
	p := NewPath()
	p.MoveTo(0, 20)
	for x := 0.0; x < 100; x += 50 {
		p.QuadTo(x+18, 15, x+32, 22)
		p.QuadTo(x+44, 26, x+50, 20)
	}
	s.Stroke(p, 3, Solid(color.White))
	covered := 0
	for x := 0; x < 100; x++ {
		for y := 10; y < 30; y++ {
			if s.Image().RGBAAt(x, y).A > 0 {
				covered++
				break
			}
		}
	}
	if covered < 95 {
		t.Errorf("stroke covers %d of 100 columns", covered)
	}
}

func TestLinearGradient(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0).
		AddColorStop(1, color.NRGBA{B: 255, A: 255}).
		AddColorStop(0, color.NRGBA{R: 255, A: 255})

	start := g.ColorAt(0, 0)
	if start.R != 0xffff || start.B != 0 {
		t.Errorf("start = %v, want red (stops are sorted)", start)
	}
	end := g.ColorAt(100, 50)
	if end.B != 0xffff || end.R != 0 {
		t.Errorf("end = %v, want blue", end)
	}
	mid := g.ColorAt(50, 0)
	if mid.R < 0x7000 || mid.R > 0x9000 {
		t.Errorf("mid red = %#x, want about half", mid.R)
	}
	if pad := g.ColorAt(-40, 0); pad != start {
		t.Errorf("pad before start = %v, want %v", pad, start)
	}
}

func TestGradientToTransparentIsPremultiplied(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0).
		AddColorStop(0, color.NRGBA{R: 255, G: 255, B: 255, A: 255}).
		AddColorStop(1, Transparent)
	c := g.ColorAt(5, 0)
	if c.R != c.A || c.G != c.A {
		t.Errorf("mid = %v, want premultiplied white (R == A)", c)
	}
}

func TestRadialGradient(t *testing.T) {
	g := NewRadialGradient(50, 50, 10, 30).
		AddColorStop(0, color.NRGBA{A: 0}).
		AddColorStop(1, color.NRGBA{A: 255})
	if c := g.ColorAt(50, 50); c.A != 0 {
		t.Errorf("inside inner radius A = %d, want 0", c.A)
	}
	if c := g.ColorAt(50, 90); c.A != 0xffff {
		t.Errorf("outside outer radius A = %d, want opaque", c.A)
	}
	if c := g.ColorAt(70, 50); c.A < 0x7000 || c.A > 0x9000 {
		t.Errorf("halfway A = %#x", c.A)
	}
}

func TestEmptyGradient(t *testing.T) {
	g := NewLinearGradient(0, 0, 0, 0)
	if c := g.ColorAt(3, 3); c.A != 0 {
		t.Errorf("empty gradient = %v, want transparent", c)
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(color.RGBA{R: 10, G: 20, B: 30, A: 255}, 0.5)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 128 {
		t.Errorf("WithAlpha = %v", c)
	}
	if RGBA(1, 2, 3, 2).A != 255 || RGBA(1, 2, 3, -1).A != 0 {
		t.Error("alpha not clamped")
	}
}

func TestDrawText(t *testing.T) {
	face, err := NewFace(Regular, 16)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	defer face.Close()

	s := New(120, 30)
	s.DrawText(face, "Hello", 4, 20, color.White)
	painted := 0
	for i := 3; i < len(s.Image().Pix); i += 4 {
		if s.Image().Pix[i] > 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Error("DrawText painted nothing")
	}
	if w := MeasureText(face, "Hello"); w <= 0 || w > 120 {
		t.Errorf("MeasureText = %v", w)
	}
	if MeasureText(nil, "x") != 0 {
		t.Error("MeasureText(nil) != 0")
	}
}

func TestNewFaceStyles(t *testing.T) {
	for _, st := range []FontStyle{Regular, Bold, Mono, FontStyle(42)} {
		f, err := NewFace(st, 11)
		if err != nil {
			t.Errorf("NewFace(%d): %v", st, err)
			continue
		}
		f.Close()
	}
}
