package scenecraft

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func mustPNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	b, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	return b
}

func mustDecode(t *testing.T, b []byte) image.Image {
	t.Helper()
	img, err := DecodeImage(b)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	return img
}

// squareOnWhite is a w×h white image with a red square of side n centred in it.
func squareOnWhite(w, h, n int) *image.NRGBA {
	img := imaging.New(w, h, color.White)
	r := image.Rect((w-n)/2, (h-n)/2, (w-n)/2+n, (h-n)/2+n)
	draw.Draw(img, r, image.NewUniform(color.NRGBA{200, 20, 20, 255}), image.Point{}, draw.Src)
	return img
}

func TestRemoveBackgroundUniformImageIsTransparent(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"small", 37, 23},
		{"single pixel", 1, 1},
		{"downscaled", 900, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mustPNG(t, imaging.New(tt.w, tt.h, color.NRGBA{30, 160, 90, 255}))
			out := mustDecode(t, RemoveBackground(in))
			if got := out.Bounds().Size(); got != (image.Point{tt.w, tt.h}) {
				t.Fatalf("size = %v, want %dx%d", got, tt.w, tt.h)
			}
			for y := range tt.h {
				for x := range tt.w {
					if _, _, _, a := out.At(x, y).RGBA(); a != 0 {
						t.Fatalf("pixel (%d,%d) alpha = %d, want 0", x, y, a)
					}
				}
			}
		})
	}
}

func TestSegmenterSquare(t *testing.T) {
	sg := NewSegmenter(squareOnWhite(60, 60, 20))
	sg.Build(DefaultOptions())
	res := sg.Result()

	alphaAt := func(x, y int) uint8 { return res.NRGBAAt(x, y).A }
	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"corner", 0, 0, 0},
		{"background near square", 18, 30, 0},
		{"interior", 30, 30, 255},
		{"one pixel inside edge", 21, 30, 255},
		{"edge", 20, 30, 150},
		{"square corner", 20, 20, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alphaAt(tt.x, tt.y); got != tt.want {
				t.Errorf("alpha(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
	if got, want := sg.Cleared(), 60*60-20*20; got != want {
		t.Errorf("Cleared = %d, want %d", got, want)
	}
	if got, want := sg.Feathered(), 4*20-4; got != want {
		t.Errorf("Feathered = %d, want %d", got, want)
	}
	if got := sg.Background().Hex(); got != "#ffffff" {
		t.Errorf("Background = %s", got)
	}
}

func TestSegmenterKeepsEnclosedBackground(t *testing.T) {
	// A white hole inside the square is not connected to the border.
	img := squareOnWhite(40, 40, 20)
	img.SetNRGBA(20, 20, color.NRGBA{255, 255, 255, 255})
	sg := NewSegmenter(img)
	sg.Build(DefaultOptions())
	if a := sg.Result().NRGBAAt(20, 20).A; a != 255 {
		t.Errorf("enclosed pixel alpha = %d, want 255", a)
	}
}

func TestSegmenterLargeImageKeepsSize(t *testing.T) {
	sg := NewSegmenter(squareOnWhite(1200, 800, 400))
	sg.Build(DefaultOptions())
	if got := sg.Work.Bounds().Size(); got != (image.Point{500, 333}) {
		t.Errorf("working size = %v", got)
	}
	res := sg.Result()
	if got := res.Bounds().Size(); got != (image.Point{1200, 800}) {
		t.Fatalf("result size = %v", got)
	}
	if a := res.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d", a)
	}
	if a := res.NRGBAAt(600, 400).A; a != 255 {
		t.Errorf("centre alpha = %d", a)
	}
	// The feathered rim survives the upscale as partial alpha.
	partial := false
	for x := 350; x < 450 && !partial; x++ {
		a := res.NRGBAAt(x, 400).A
		partial = a > 0 && a < 255
	}
	if !partial {
		t.Error("no soft edge along the square's left side")
	}
}

func TestRemoveBackgroundDecodeFailure(t *testing.T) {
	inputs := [][]byte{
		[]byte("definitely not an image"),
		{},
		[]byte("data:image/png;base64,!!!"),
		[]byte("data:image/png;base64," + "aGVsbG8="),
	}
	for _, in := range inputs {
		out := RemoveBackground(in)
		if !bytes.Equal(out, in) {
			t.Errorf("RemoveBackground(%q) changed the input", in)
		}
	}
}

func TestRemoveBackgroundDataURI(t *testing.T) {
	in := DataURI("image/png", mustPNG(t, squareOnWhite(30, 30, 10)))
	out := string(RemoveBackground([]byte(in)))
	if !strings.HasPrefix(out, "data:image/png;base64,") {
		t.Fatalf("output is not a PNG data URI: %.40s", out)
	}
	_, data, err := ParseDataURI(out)
	if err != nil {
		t.Fatal(err)
	}
	img := mustDecode(t, data)
	if got := img.Bounds().Size(); got != (image.Point{30, 30}) {
		t.Errorf("size = %v", got)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha = %d", a)
	}
}

func TestCutoutPicksOptionsFromSize(t *testing.T) {
	out, err := Cutout(mustPNG(t, squareOnWhite(50, 40, 10)), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustDecode(t, out).Bounds().Size(); got != (image.Point{50, 40}) {
		t.Errorf("size = %v", got)
	}
	if _, err := Cutout([]byte("nope"), DefaultOptions()); err == nil {
		t.Error("Cutout accepted garbage")
	}
}

func TestOptionsFromSize(t *testing.T) {
	if opt := OptionsFromSize(image.Point{}); opt.MaxSide != DefaultOptions().MaxSide {
		t.Errorf("zero size options = %+v", opt)
	}
	if opt := OptionsFromSize(image.Point{4000, 3000}); opt.UpscaleFilter.Support != imaging.CatmullRom.Support {
		t.Error("large input did not get the smoother upscale filter")
	}
}

// hugePNG is a 1×1 PNG whose header is rewritten to claim w×h pixels.
func hugePNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	b := mustPNG(t, imaging.New(1, 1, color.White))
	// Signature (8), IHDR length (4) and type (4), then width and height.
	binary.BigEndian.PutUint32(b[16:], w)
	binary.BigEndian.PutUint32(b[20:], h)
	binary.BigEndian.PutUint32(b[29:], crc32.ChecksumIEEE(b[12:29]))
	return b
}

func TestCutoutRejectsDeclaredHugeImage(t *testing.T) {
	in := hugePNG(t, 100_000, 100_000)
	if size, err := ImageSize(in); err != nil || size != (image.Point{100_000, 100_000}) {
		t.Fatalf("ImageSize = %v, %v", size, err)
	}
	if _, err := Cutout(in, DefaultOptions()); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("err = %v, want ErrImageTooLarge", err)
	}
	if out := RemoveBackground(in); !bytes.Equal(out, in) {
		t.Error("RemoveBackground changed an oversized input")
	}
}

func TestCutoutMaxPixels(t *testing.T) {
	in := mustPNG(t, squareOnWhite(20, 10, 4))
	tests := []struct {
		max     int
		wantErr bool
	}{
		{0, false},
		{200, false},
		{199, true},
	}
	for _, tt := range tests {
		opt := DefaultOptions()
		opt.MaxPixels = tt.max
		_, err := Cutout(in, opt)
		if got := errors.Is(err, ErrImageTooLarge); got != tt.wantErr {
			t.Errorf("MaxPixels %d: err = %v", tt.max, err)
		}
	}
}
