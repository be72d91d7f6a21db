package scenecraft

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/setanarut/scenecraft/internal/raster"
)

// Placeholder thumbnail geometry.
const (
	PlaceholderSize    = 400
	PlaceholderQuality = 88

	gridStep       = 30
	gridShift      = 23
	labelMaxRunes  = 18
	labelKeepRunes = 16
)

type theme struct {
	bg  [4]string
	acc string
}

var themes = map[string]theme{
	"Nature":     {[4]string{"#0a3d1f", "#1a6b3a", "#2d9e5a", "#5dbb7a"}, "#a8f0b8"},
	"Cityscape":  {[4]string{"#050d1a", "#0d2137", "#1a3a5c", "#2a5f8f"}, "#7ec8e3"},
	"Animals":    {[4]string{"#3d1f00", "#7a3f00", "#b86800", "#e8900a"}, "#ffe0a0"},
	"Technology": {[4]string{"#050510", "#0d0d2e", "#1a1a4e", "#2d2d80"}, "#00e5c8"},
	"Food":       {[4]string{"#2c0a0a", "#5c1a1a", "#8c3030", "#c05050"}, "#ffa07a"},
	"Travel":     {[4]string{"#0d2b4e", "#1a4b7a", "#2a6fa8", "#4090cc"}, "#a8d4f0"},
	"Abstract":   {[4]string{"#1a0a2e", "#2d1a4e", "#4a2a7c", "#6a3aaa"}, "#c8a0f8"},
	"Fashion":    {[4]string{"#1a0a14", "#3a1428", "#5c2040", "#8a3060"}, "#f0a0c8"},
	"Sunset":     {[4]string{"#1a0500", "#5c1500", "#c04000", "#ff7000"}, "#ffd080"},
	"Ocean":      {[4]string{"#000d1a", "#001a3a", "#003060", "#005090"}, "#60c0ff"},
}

// Categories are the placeholder themes in gallery order.
var Categories = []string{
	"Nature", "Cityscape", "Animals", "Technology", "Food",
	"Travel", "Abstract", "Fashion", "Sunset", "Ocean",
}

// CategorySearchTerms are the photo search phrases offered per category.
var CategorySearchTerms = map[string][]string{
	"Nature":     {"beautiful forest waterfall", "mountain meadow flowers", "tropical jungle birds", "autumn leaves river", "cherry blossom garden"},
	"Cityscape":  {"new york city skyline night", "tokyo street lights", "paris architecture", "london bridge evening", "dubai skyscrapers"},
	"Animals":    {"lion savanna wildlife", "colorful tropical fish", "red fox forest", "eagle flying sky", "wolf pack nature"},
	"Technology": {"futuristic technology concept", "computer circuit neon", "robot artificial intelligence", "space station earth", "cyberpunk city"},
	"Food":       {"gourmet restaurant dish", "colorful fresh fruits", "coffee art latte", "sushi platter japanese", "pizza artisan wood fire"},
	"Travel":     {"santorini greece blue", "maldives overwater bungalow", "bali rice terraces", "paris eiffel tower", "iceland northern lights"},
	"Abstract":   {"colorful abstract paint", "neon light bokeh photography", "geometric shapes minimal", "liquid marble texture", "rainbow prism light"},
	"Fashion":    {"fashion model portrait", "street style photography", "elegant dress editorial", "urban fashion photography", "model outdoor shoot"},
	"Sunset":     {"golden hour sunset beach", "dramatic sunset clouds", "sunset mountain silhouette", "ocean sunset orange sky", "desert sunset dunes"},
	"Ocean":      {"crystal clear turquoise ocean", "coral reef underwater", "tropical beach paradise", "ocean waves dramatic", "deep sea creatures"},
}

// PlaceholdersPerPage is the gallery page size used by PlaceholderIndex.
const PlaceholdersPerPage = 12

// Accent positions as fractions of the thumbnail.
var accentSpots = [7][2]float64{
	{0.2, 0.3}, {0.8, 0.2}, {0.5, 0.7}, {0.1, 0.8}, {0.9, 0.6}, {0.4, 0.15}, {0.7, 0.85},
}

// PlaceholderIndex is the global slot index of position slot on page.
func PlaceholderIndex(page, slot int) int {
	return page*PlaceholdersPerPage + slot
}

// PlaceholderLabel names a gallery slot: the search term when there is one,
// else the category, followed by the 1-based slot number.
func PlaceholderLabel(category, term string, page, slot int) string {
	label := term
	if label == "" {
		label = category
	}
	return fmt.Sprintf("%s %d", label, PlaceholderIndex(page, slot)+1)
}

// SearchTerm picks the category's search phrase for a page when the user
// has not typed one. Unknown categories use Nature's phrases. Any page,
// negative included, maps to a phrase.
func SearchTerm(category string, page int) string {
	terms, ok := CategorySearchTerms[category]
	if !ok {
		terms = CategorySearchTerms["Nature"]
	}
	n := len(terms)
	return terms[((page+len(category))%n+n)%n]
}

// RenderPlaceholder draws the thumbnail for (index, label, category). The
// result depends only on its arguments.
func RenderPlaceholder(index int, label, category string) *image.RGBA {
	t, ok := themes[category]
	if !ok {
		t = themes["Nature"]
	}
	// Negative indices would produce negative offsets and radii.
	if index < 0 {
		index = -index
	}
	const size = PlaceholderSize
	s := raster.New(size, size)
	acc := hex(t.acc)

	bg := raster.NewLinearGradient(0, 0, size, size)
	for i, c := range t.bg {
		bg.AddColorStop(float64(i)/float64(len(t.bg)-1), hex(c))
	}
	s.FillRect(0, 0, size, size, bg)

	for i, p := range accentSpots {
		r := float64(30 + (index*7+i*13)%60)
		a := 0.08 + float64((index+i)%5)*0.04
		c := acc
		c.A = uint8(a * 255)
		cx, cy := p[0]*size, p[1]*size
		s.FillCircle(cx, cy, r, radial(cx, cy, r, []stop{{0, c}, {1, raster.Transparent}}))
	}

	line := raster.Solid(raster.RGBA(255, 255, 255, 0.04))
	off := float64((index * gridShift) % gridStep)
	for x := off; x < size; x += gridStep {
		s.StrokeLine(x, 0, x, size, 1, line)
	}
	for y := off; y < size; y += gridStep {
		s.StrokeLine(0, y, size, y, 1, line)
	}

	k := float64(index % 3)
	band := acc
	band.A = 0x22
	diag := raster.NewLinearGradient(0, 0, size, size).
		AddColorStop(0, raster.Transparent).
		AddColorStop(0.45+k*0.05, raster.Transparent).
		AddColorStop(0.5+k*0.05, band).
		AddColorStop(1, raster.Transparent)
	s.FillRect(0, 0, size, size, diag)

	drawPlaceholderText(s, truncateRunes(label, labelMaxRunes, labelKeepRunes), strings.ToUpper(category), acc)
	return s.Image()
}

func drawPlaceholderText(s *raster.Surface, label, category string, acc color.NRGBA) {
	if face, err := raster.NewFace(raster.Bold, 22); err == nil {
		s.DrawTextCentered(face, label, 200, 200, raster.RGBA(255, 255, 255, 0.85))
		face.Close()
	} else {
		Logger().Warn("placeholder label font unavailable", "err", err)
	}
	if face, err := raster.NewFace(raster.Mono, 11); err == nil {
		c := acc
		c.A = 0xcc
		s.DrawTextCentered(face, category, 200, 228, c)
		face.Close()
	} else {
		Logger().Warn("placeholder category font unavailable", "err", err)
	}
}

// SynthesizePlaceholder renders the thumbnail and encodes it as JPEG.
func SynthesizePlaceholder(index int, label, category string) []byte {
	b, err := EncodeJPEG(RenderPlaceholder(index, label, category), PlaceholderQuality)
	if err != nil {
		Logger().Warn("encode placeholder", "err", err)
		return nil
	}
	return b
}
