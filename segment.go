package scenecraft

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

type Options struct {
	// Longer side of the working raster. Inputs above it are downscaled before
	// the flood fill and upscaled back afterwards, which bounds the traversal.
	// Ideal: 400-600. Higher keeps thin edges but costs quadratically.
	MaxSide int
	// Euclidean RGB distance (0-441, channels in 0-255) under which a pixel
	// counts as background. Ideal start: 40-70.
	// Too low leaves a halo of background; too high eats into the subject.
	Tolerance float64
	// Feathered alpha for an opaque pixel with n transparent neighbours is
	// max(0, FeatherBase - FeatherStep*n).
	FeatherBase int
	FeatherStep int
	// Resampling filters for the downscale and the final upscale.
	DownscaleFilter imaging.ResampleFilter
	UpscaleFilter   imaging.ResampleFilter
	// Cutout refuses inputs whose header declares more pixels than this,
	// before any pixel memory is allocated. Zero disables the check.
	MaxPixels int
}

func DefaultOptions() Options {
	return Options{
		MaxSide:         500,
		Tolerance:       55,
		FeatherBase:     200,
		FeatherStep:     50,
		DownscaleFilter: imaging.Linear,
		UpscaleFilter:   imaging.Linear,
		MaxPixels:       40_000_000,
	}
}

// OptionsFromSize tunes the defaults for an input of the given size. Inputs
// that need a large upscale afterwards get a smoother filter so the feathered
// edge does not turn blocky.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	longer := max(size.X, size.Y)
	if float64(longer)/float64(opt.MaxSide) > 3 {
		opt.UpscaleFilter = imaging.CatmullRom
	}
	return opt
}

// Segmenter removes the background of one image. Create it with NewSegmenter,
// run Build once, then read Result.
type Segmenter struct {
	InputImage image.Image
	// Work is the (possibly downscaled) raster the fill runs on.
	Work *image.NRGBA

	seen      []bool
	bg        colorful.Color
	cleared   int
	feathered int
	result    *image.NRGBA
}

func NewSegmenter(input image.Image) *Segmenter {
	return &Segmenter{InputImage: input}
}

func (sg *Segmenter) Build(opt Options) {
	sg.downscale(max(1, opt.MaxSide), opt.DownscaleFilter)
	sg.estimateBackground()
	sg.floodFill(opt.Tolerance)
	sg.feather(opt.FeatherBase, opt.FeatherStep)
	sg.upscale(opt.UpscaleFilter)
	sg.seen = nil

	Logger().Debug("segmented",
		"size", sg.result.Bounds().Size(),
		"work", sg.Work.Bounds().Size(),
		"background", sg.bg.Hex(),
		"cleared", sg.cleared,
		"feathered", sg.feathered,
	)
}

// Result is the alpha-matted image at the input's original size. It is nil
// before Build.
func (sg *Segmenter) Result() *image.NRGBA { return sg.result }

// Background is the estimated background colour.
func (sg *Segmenter) Background() colorful.Color { return sg.bg }

// Cleared is the number of working-raster pixels made fully transparent by
// the flood fill.
func (sg *Segmenter) Cleared() int { return sg.cleared }

// Feathered is the number of edge pixels whose alpha was softened.
func (sg *Segmenter) Feathered() int { return sg.feathered }

func pixOffset(stride, x, y int) int {
	return y*stride + x*4
}

// ============ DOWNSCALE ============

func (sg *Segmenter) downscale(maxSide int, filter imaging.ResampleFilter) {
	b := sg.InputImage.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := min(1, float64(maxSide)/float64(max(w, h, 1)))
	if scale == 1 {
		sg.Work = imaging.Clone(sg.InputImage)
		return
	}
	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))
	sg.Work = imaging.Resize(sg.InputImage, nw, nh, filter)
}

// ============ BACKGROUND ESTIMATE ============

func (sg *Segmenter) estimateBackground() {
	w, h := sg.Work.Rect.Dx(), sg.Work.Rect.Dy()
	corners := [4][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}}
	var r, g, b [4]float64
	for i, c := range corners {
		off := pixOffset(sg.Work.Stride, c[0], c[1])
		r[i] = float64(sg.Work.Pix[off]) / 255
		g[i] = float64(sg.Work.Pix[off+1]) / 255
		b[i] = float64(sg.Work.Pix[off+2]) / 255
	}
	sg.bg = colorful.Color{
		R: stat.Mean(r[:], nil),
		G: stat.Mean(g[:], nil),
		B: stat.Mean(b[:], nil),
	}
}

// ============ FLOOD FILL ============

// floodFill clears every background-like pixel 4-connected to the border.
// It is an explicit queue over pixel indices; seen marks every pixel that was
// ever tested so each is examined at most once.
func (sg *Segmenter) floodFill(tolerance float64) {
	w, h := sg.Work.Rect.Dx(), sg.Work.Rect.Dy()
	pix, stride := sg.Work.Pix, sg.Work.Stride
	sg.seen = make([]bool, w*h)
	queue := make([]int, 0, 2*(w+h))

	push := func(x, y int) {
		i := y*w + x
		if sg.seen[i] {
			return
		}
		sg.seen[i] = true
		off := pixOffset(stride, x, y)
		c := colorful.Color{
			R: float64(pix[off]) / 255,
			G: float64(pix[off+1]) / 255,
			B: float64(pix[off+2]) / 255,
		}
		if c.DistanceRgb(sg.bg)*255 > tolerance {
			return
		}
		queue = append(queue, i)
	}

	for x := range w {
		push(x, 0)
		push(x, h-1)
	}
	for y := 1; y < h-1; y++ {
		push(0, y)
		push(w-1, y)
	}

	for head := 0; head < len(queue); head++ {
		x, y := queue[head]%w, queue[head]/w
		pix[pixOffset(stride, x, y)+3] = 0
		sg.cleared++
		if x+1 < w {
			push(x+1, y)
		}
		if x > 0 {
			push(x-1, y)
		}
		if y+1 < h {
			push(x, y+1)
		}
		if y > 0 {
			push(x, y-1)
		}
	}
}

// ============ FEATHER ============

// feather softens opaque pixels that touch the cleared region. Neighbour
// counts come from the alpha plane as it was right after the fill, so
// feathering does not cascade inwards.
func (sg *Segmenter) feather(base, step int) {
	w, h := sg.Work.Rect.Dx(), sg.Work.Rect.Dy()
	pix, stride := sg.Work.Pix, sg.Work.Stride
	alpha := make([]uint8, w*h)
	for y := range h {
		for x := range w {
			alpha[y*w+x] = pix[pixOffset(stride, x, y)+3]
		}
	}
	cleared := func(x, y int) int {
		if x < 0 || y < 0 || x >= w || y >= h || alpha[y*w+x] != 0 {
			return 0
		}
		return 1
	}
	for y := range h {
		for x := range w {
			if alpha[y*w+x] != 255 {
				continue
			}
			n := cleared(x+1, y) + cleared(x-1, y) + cleared(x, y+1) + cleared(x, y-1)
			if n == 0 {
				continue
			}
			pix[pixOffset(stride, x, y)+3] = uint8(max(0, min(255, base-step*n)))
			sg.feathered++
		}
	}
}

// ============ UPSCALE ============

func (sg *Segmenter) upscale(filter imaging.ResampleFilter) {
	b := sg.InputImage.Bounds()
	if sg.Work.Rect.Dx() == b.Dx() && sg.Work.Rect.Dy() == b.Dy() {
		sg.result = sg.Work
		return
	}
	sg.result = imaging.Resize(sg.Work, b.Dx(), b.Dy(), filter)
}

// ============ ENTRY POINTS ============

// RemoveBackground cuts the background out of an encoded image. input may be
// raw image bytes or a base64 data URI; the output is PNG bytes, or a PNG
// data URI when the input was one. If the input cannot be decoded it is
// returned unchanged.
func RemoveBackground(input []byte) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("background removal panicked, returning input", "panic", r)
			out = input
		}
	}()
	out, err := Cutout(input, DefaultOptions())
	if err != nil {
		Logger().Warn("background removal fell back to input", "err", err)
		return input
	}
	return out
}

// Cutout is RemoveBackground with explicit options and an error instead of
// the silent fallback. A zero MaxSide picks options from the input size.
// Inputs over opt.MaxPixels fail with ErrImageTooLarge.
func Cutout(input []byte, opt Options) ([]byte, error) {
	raw := input
	uri := isDataURI(input)
	if uri {
		_, data, err := ParseDataURI(string(input))
		if err != nil {
			return nil, err
		}
		raw = data
	}
	if opt.MaxPixels > 0 {
		size, err := ImageSize(raw)
		if err != nil {
			return nil, err
		}
		if int64(size.X)*int64(size.Y) > int64(opt.MaxPixels) {
			return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, size.X, size.Y)
		}
	}
	img, err := DecodeImage(raw)
	if err != nil {
		return nil, err
	}
	if opt.MaxSide <= 0 {
		opt = OptionsFromSize(img.Bounds().Size())
	}
	sg := NewSegmenter(img)
	sg.Build(opt)
	png, err := EncodePNG(sg.Result())
	if err != nil {
		return nil, fmt.Errorf("cutout: %w", err)
	}
	if uri {
		return []byte(DataURI("image/png", png)), nil
	}
	return png, nil
}
