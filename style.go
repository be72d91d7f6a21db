package scenecraft

import (
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/scenecraft/internal/raster"
)

// overlay is one style post-process. It matches when any of its keys occurs
// in the lower-cased style label.
type overlay struct {
	name string
	keys []string
	draw func(s *raster.Surface, colors [PaletteSize]colorful.Color, rng *rand.Rand)
}

// Overlays are checked independently, so a label naming two styles
// ("cyberpunk sketch") layers both, in this order.
var overlays = []overlay{
	{"watercolor", []string{"watercolor"}, watercolorWash},
	{"oil painting", []string{"oil painting"}, oilStrokes},
	{"sketch", []string{"sketch"}, sketchHatching},
	{"vintage", []string{"vintage", "retro"}, vintageVignette},
	{"cyberpunk", []string{"cyberpunk", "neon", "anime"}, neonScanlines},
	{"3d render", []string{"3d render", "photorealistic"}, depthVignette},
}

// MatchStyles returns the names of the overlays the label selects, in the
// order they would be applied.
func MatchStyles(style string) []string {
	var out []string
	for _, o := range matchOverlays(style) {
		out = append(out, o.name)
	}
	return out
}

func matchOverlays(style string) []overlay {
	label := strings.ToLower(style)
	var out []overlay
	for _, o := range overlays {
		for _, k := range o.keys {
			if strings.Contains(label, k) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// ApplyStyle paints every overlay the label selects over s and returns their
// names. An unmatched label leaves s untouched. A nil rng uses an unseeded
// source.
func ApplyStyle(s *raster.Surface, style string, colors [PaletteSize]colorful.Color, rng *rand.Rand) []string {
	if rng == nil {
		rng = newRand()
	}
	var applied []string
	for _, o := range matchOverlays(style) {
		o.draw(s, colors, rng)
		applied = append(applied, o.name)
	}
	return applied
}

func watercolorWash(s *raster.Surface, colors [PaletteSize]colorful.Color, rng *rand.Rand) {
	w, h := float64(s.Width()), float64(s.Height())
	for i := range 22 {
		c := nrgba(colors[i%PaletteSize], alpha(0.38*0.20))
		x, y := rng.Float64()*w, rng.Float64()*h
		rx, ry := 70+rng.Float64()*110, 45+rng.Float64()*80
		s.FillEllipse(x, y, rx, ry, rng.Float64()*math.Pi, raster.Solid(c))
	}
}

func oilStrokes(s *raster.Surface, colors [PaletteSize]colorful.Color, rng *rand.Rand) {
	w, h := float64(s.Width()), float64(s.Height())
	for i := range 220 {
		c := nrgba(colors[i%PaletteSize], alpha(0.55*0.06))
		x, y := rng.Float64()*w, rng.Float64()*h
		l, a := 8+rng.Float64()*28, rng.Float64()*math.Pi
		width := 2 + rng.Float64()*3.5
		sin, cos := math.Sincos(a)
		s.StrokeLine(x, y, x+cos*l, y+sin*l, width, raster.Solid(c))
	}
}

func sketchHatching(s *raster.Surface, _ [PaletteSize]colorful.Color, rng *rand.Rand) {
	w, h := float64(s.Width()), float64(s.Height())
	pencil := raster.Solid(raster.RGBA(200, 200, 255, 0.55*0.06))
	for range 180 {
		x, y := rng.Float64()*w, rng.Float64()*h
		dx, dy := (rng.Float64()-0.5)*55, (rng.Float64()-0.5)*55
		s.StrokeLine(x, y, x+dx, y+dy, 0.6, pencil)
	}
}

func vintageVignette(s *raster.Surface, _ [PaletteSize]colorful.Color, _ *rand.Rand) {
	w, h := float64(s.Width()), float64(s.Height())
	vig := raster.NewRadialGradient(w/2, h/2, h*0.22, h*0.90).
		AddColorStop(0, raster.Transparent).
		AddColorStop(1, raster.RGBA(28, 12, 0, 0.62))
	s.FillRect(0, 0, w, h, vig)
	s.FillRect(0, 0, w, h, raster.Solid(raster.WithAlpha(hex("#c8a048"), 0.15)))
}

func neonScanlines(s *raster.Surface, _ [PaletteSize]colorful.Color, _ *rand.Rand) {
	w, h := float64(s.Width()), float64(s.Height())
	cyan := raster.Solid(raster.WithAlpha(hex("#00e5c8"), 0.07))
	violet := raster.Solid(raster.WithAlpha(hex("#7c5cff"), 0.07))
	for ly := 0; ly < s.Height(); ly += 3 {
		line := violet
		if ly%6 == 0 {
			line = cyan
		}
		s.FillRect(0, float64(ly), w, 1.5, line)
	}
	fringe := 0x44 / 255.0 * 0.24
	edge := raster.NewLinearGradient(0, 0, w, 0).
		AddColorStop(0, raster.WithAlpha(hex("#7c5cff"), fringe)).
		AddColorStop(0.5, raster.Transparent).
		AddColorStop(1, raster.WithAlpha(hex("#00e5c8"), fringe))
	s.FillRect(0, 0, w, h, edge)
}

func depthVignette(s *raster.Surface, _ [PaletteSize]colorful.Color, _ *rand.Rand) {
	w, h := float64(s.Width()), float64(s.Height())
	dof := raster.NewRadialGradient(w/2, h/2, h*0.14, h*0.72).
		AddColorStop(0, raster.Transparent).
		AddColorStop(1, color.NRGBA{A: alpha(0.38)})
	s.FillRect(0, 0, w, h, dof)
}

// StylePresets maps the style labels offered by the front end to the prompt
// expansion each one stands for.
var StylePresets = map[string]string{
	"Photorealistic": "photorealistic, ultra detailed, 8k, professional photography, sharp focus, award winning",
	"Anime":          "anime style, studio ghibli, vibrant colors, detailed illustration, cel shaded",
	"Oil Painting":   "oil painting, impressionist, thick brushstrokes, museum quality, masterpiece",
	"Cyberpunk":      "cyberpunk, neon lights, futuristic dystopia, blade runner aesthetic, rain",
	"Watercolor":     "watercolor painting, soft washes, artistic, delicate, flowing pigments, paper texture",
	"Sketch":         "pencil sketch, detailed line art, black and white, hand drawn, cross hatching",
	"3D Render":      "3D render, octane render, ray tracing, cinema 4d, hyperrealistic, studio lighting",
	"Vintage":        "vintage photograph, film grain, retro aesthetic, faded colors, nostalgic, 1970s",
}

// ExpandStyle returns the preset expansion for label, the label itself when
// it is not a preset, or a generic quality phrase when it is empty.
func ExpandStyle(label string) string {
	if label == "" {
		return "highly detailed, professional quality, 4k uhd"
	}
	if e, ok := StylePresets[label]; ok {
		return e
	}
	return label
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
