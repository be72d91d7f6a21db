package utils

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// quadrants is a 64×64 image split into four flat colours.
func quadrants() *image.NRGBA {
	img := imaging.New(64, 64, color.Black)
	fill := func(r image.Rectangle, c color.NRGBA) {
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}
	fill(image.Rect(32, 0, 64, 32), color.NRGBA{240, 240, 240, 255})
	fill(image.Rect(0, 32, 32, 64), color.NRGBA{220, 30, 30, 255})
	fill(image.Rect(32, 32, 64, 64), color.NRGBA{30, 60, 220, 255})
	return img
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    PaletteMethod
		wantErr bool
	}{
		{"", PaletteMethodDominantColor, false},
		{"dominant", PaletteMethodDominantColor, false},
		{"KMeans", PaletteMethodKMeans, false},
		{"median-cut", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMethod(%q) = %v, %v", tt.in, got, err)
		}
	}
	if PaletteMethodKMeans.String() != "kmeans" {
		t.Error(PaletteMethodKMeans.String())
	}
}

func TestSortPaletteByBrightness(t *testing.T) {
	p := []colorful.Color{{R: 1, G: 1, B: 1}, {}, {R: 0.5, G: 0.5, B: 0.5}}
	SortPaletteByBrightness(p)
	for i := 1; i < len(p); i++ {
		if Luminance(p[i-1]) > Luminance(p[i]) {
			t.Fatalf("not sorted: %v", p)
		}
	}
}

func TestSelectDiverseWeightedColors(t *testing.T) {
	red := colorful.Color{R: 1}
	cands := []weightedColor{
		{red, 10},
		{colorful.Color{R: 0.98, G: 0.02}, 9},
		{colorful.Color{B: 1}, 1},
	}
	got := SelectDiverseWeightedColors(cands, 2)
	if len(got) != 2 {
		t.Fatalf("got %d colours", len(got))
	}
	if got[0] != red {
		t.Errorf("seed = %v, want the heaviest colour", got[0])
	}
	if got[1].B < 0.9 {
		t.Errorf("second pick %v is not the distant blue", got[1])
	}
	if SelectDiverseWeightedColors(nil, 3) != nil {
		t.Error("empty candidates produced colours")
	}
}

func TestExtractPalette(t *testing.T) {
	for _, m := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		t.Run(m.String(), func(t *testing.T) {
			p := ExtractPalette(quadrants(), 4, m)
			if len(p) == 0 || len(p) > 4 {
				t.Fatalf("got %d colours", len(p))
			}
		})
	}
}

func TestScenePalette(t *testing.T) {
	hexes := ScenePalette(quadrants(), 4, PaletteMethodKMeans)
	if len(hexes) == 0 || len(hexes) > 4 {
		t.Fatalf("got %v", hexes)
	}
	prev := -1.0
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			t.Fatalf("%q: %v", h, err)
		}
		if y := Luminance(c); y < prev {
			t.Errorf("palette %v not dark to bright", hexes)
		} else {
			prev = y
		}
	}
}

func TestSavePaletteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swatch.png")
	p := []colorful.Color{{R: 1}, {G: 1}, {B: 1}}
	if err := SavePalette(p, 8, path); err != nil {
		t.Fatal(err)
	}
	img, err := ReadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != (image.Point{24, 8}) {
		t.Errorf("swatch size = %v", got)
	}
	if r, g, b, _ := img.At(12, 4).RGBA(); r != 0 || g != 0xffff || b != 0 {
		t.Errorf("middle tile = %d %d %d", r, g, b)
	}
	if err := SavePalette(nil, 8, path); err == nil {
		t.Error("empty palette saved")
	}
}
