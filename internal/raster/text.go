package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontStyle selects one of the embedded Go font families.
type FontStyle int

const (
	Regular FontStyle = iota
	Bold
	Mono
)

// Parsed fonts are read-only and safe to share; faces are not, so NewFace is
// called once per render.
var fonts = [...]func() (*opentype.Font, error){
	Regular: sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(goregular.TTF) }),
	Bold:    sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(gobold.TTF) }),
	Mono:    sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(gomono.TTF) }),
}

// NewFace returns a face of the given pixel size (72 DPI, so points == pixels).
func NewFace(style FontStyle, size float64) (font.Face, error) {
	if style < Regular || style > Mono {
		style = Regular
	}
	f, err := fonts[style]()
	if err != nil {
		return nil, fmt.Errorf("parse font %d: %w", style, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// DrawText draws s with its baseline starting at (x, y).
func (s *Surface) DrawText(face font.Face, text string, x, y float64, c color.Color) {
	if face == nil || text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(text)
}

// DrawTextCentered centres s horizontally on x and vertically (by the face's
// ascent and descent) on y, like textAlign=center with textBaseline=middle.
func (s *Surface) DrawTextCentered(face font.Face, text string, x, y float64, c color.Color) {
	if face == nil || text == "" {
		return
	}
	m := face.Metrics()
	w := MeasureText(face, text)
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	s.DrawText(face, text, x-w/2, y+(ascent-descent)/2, c)
}

// MeasureText returns the advance width of s in pixels.
func MeasureText(face font.Face, text string) float64 {
	if face == nil {
		return 0
	}
	return float64(font.MeasureString(face, text)) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
