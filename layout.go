package scenecraft

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/scenecraft/internal/raster"
)

// Scene canvas size in pixels.
const (
	SceneWidth  = 800
	SceneHeight = 500
)

// Positions below are fractions of the canvas unless noted as pixels.

type stop struct {
	at float64
	c  color.NRGBA
}

type skyTheme struct {
	when  Motif
	stops []stop
}

// skyThemes are tried in order; the first detected motif picks the gradient.
var skyThemes = []skyTheme{
	{SkySunset, []stop{{0, hex("#120520")}, {0.3, hex("#7a1a55")}, {0.65, hex("#d84515")}, {1, hex("#f09020")}}},
	{SkySunrise, []stop{{0, hex("#050818")}, {0.5, hex("#e05525")}, {1, hex("#f8c040")}}},
	{SkyNight, []stop{{0, hex("#01020a")}, {0.55, hex("#06041c")}, {1, hex("#0e0828")}}},
	{SkyDay, []stop{{0, hex("#0048b8")}, {0.6, hex("#1878e0")}, {1, hex("#58b0f8")}}},
	{SkyStorm, []stop{{0, hex("#0c0c18")}, {1, hex("#353548")}}},
	{SkyAutumn, []stop{{0, hex("#180800")}, {0.5, hex("#5a2808")}, {1, hex("#c05818")}}},
	{SkyWinter, []stop{{0, hex("#c8d8f0")}, {1, hex("#e8f0ff")}}},
}

const skyDepth = 0.78

const (
	starCount  = 260
	starDepth  = 0.85
	milkyDepth = 0.8
)

// glow is a radial blob: centre (x, y), radius r in pixels, palette slot and
// peak alpha.
type glow struct {
	x, y, r float64
	slot    int
	alpha   float64
}

var nebulaGlows = []glow{
	{0.25, 0.30, 200, 3, 0.13},
	{0.72, 0.42, 180, 4, 0.10},
	{0.50, 0.18, 150, 2, 0.09},
}

var atmosphereGlows = []glow{
	{0.15, 0.38, 170, 3, 0.13},
	{0.85, 0.52, 145, 4, 0.11},
	{0.50, 0.18, 120, 2, 0.09},
}

var (
	sunHalo = []stop{
		{0, hex("#ffffff")},
		{0.12, hex("#fffbdd")},
		{0.38, hexA("#ffcc44", 0xbb)},
		{0.65, hexA("#ff8811", 0x33)},
		{1, raster.Transparent},
	}
	sunDisc = hex("#fffbe0")
	sunRay  = color.NRGBA{255, 240, 120, alpha(0.12)}
)

const (
	sunHaloRadius = 100
	sunDiscRadius = 27
	sunRays       = 12
	sunRayInner   = 34
	sunRayOuter   = 82
	sunRayWidth   = 2
)

var (
	moonHalo   = []stop{{0, hex("#f4eeff")}, {0.5, hexA("#c8b0ee", 0xbb)}, {1, raster.Transparent}}
	moonDisc   = hex("#ede0ff")
	moonShadow = color.NRGBA{2, 5, 28, alpha(0.55)}
	moonGlow   = []stop{{0, color.NRGBA{180, 160, 255, alpha(0.12)}}, {1, raster.Transparent}}
)

const moonX, moonY = 0.78, 0.13

var (
	stormCloud  = color.NRGBA{55, 50, 75, alpha(0.55)}
	goldenCloud = color.NRGBA{255, 180, 100, alpha(0.20)}
	plainCloud  = color.NRGBA{255, 255, 255, alpha(0.22)}
)

// Cloud clusters: centre as fractions, width and height in pixels.
var cloudClusters = [][4]float64{
	{0.12, 0.10, 130, 44},
	{0.40, 0.07, 165, 52},
	{0.68, 0.12, 140, 46},
	{0.88, 0.07, 95, 34},
}

// Puffs relative to a cluster: offset and radius scale by cluster size.
var cloudPuffs = [][4]float64{
	{-0.3, 0.12, 0.62, 0.72},
	{0.28, 0.08, 0.58, 0.68},
	{0, 0, 1, 1},
}

// Ridges: peak x, base y, half width, height.
var ridges = [][4]float64{
	{-0.08, 0.68, 0.26, 0.38},
	{0.18, 0.60, 0.30, 0.48},
	{0.42, 0.65, 0.28, 0.42},
	{0.62, 0.58, 0.32, 0.50},
	{0.84, 0.66, 0.28, 0.40},
	{1.08, 0.70, 0.24, 0.36},
}

const snowCapFraction = 0.20

var snowCap = color.NRGBA{235, 232, 255, alpha(0.88)}

// Buildings: left, top, width, height.
var buildings = [][4]float64{
	{0.03, 0.56, 0.055, 0.42}, {0.09, 0.42, 0.048, 0.56}, {0.14, 0.60, 0.065, 0.38},
	{0.22, 0.47, 0.048, 0.51}, {0.28, 0.34, 0.038, 0.64}, {0.33, 0.54, 0.055, 0.44},
	{0.40, 0.61, 0.065, 0.37}, {0.48, 0.27, 0.038, 0.71}, {0.54, 0.46, 0.048, 0.52},
	{0.60, 0.56, 0.065, 0.42}, {0.68, 0.41, 0.048, 0.57}, {0.74, 0.31, 0.038, 0.67},
	{0.79, 0.51, 0.055, 0.47}, {0.86, 0.59, 0.065, 0.39}, {0.93, 0.44, 0.052, 0.54},
}

// Window grid, in pixels.
const (
	windowW, windowH   = 5, 7
	windowStepX        = 10
	windowStepY        = 15
	windowInsetX       = 5
	windowInsetTop     = 9
	windowInsetBottom  = 8
	windowLitThreshold = 0.32
)

const (
	waterHorizon     = 0.64
	shorelineHorizon = 0.72
	waveCount        = 10
	wavePeriod       = 50
	waveWidth        = 1.5
	reflectionLeft   = 0.32
	reflectionWidth  = 0.36
	reflectionGradX0 = 0.38
	reflectionGradX1 = 0.62
)

var (
	tropicalWater = hexA("#00c8d8", 0xbb)
	darkWater     = hexA("#001840", 0xbb)
	sunsetWater   = hexA("#602040", 0xaa)
	plainWater    = hexA("#004880", 0xaa)
	reflection    = color.NRGBA{255, 150, 30, alpha(0.40)}
)

var (
	autumnTree  = hex("#b04018")
	autumnTree2 = hex("#d06020")
	jungleTree  = hex("#1a8035")
	plainTree   = hex("#256a30")
	plainTree2  = hex("#307a40")
	trunk       = hex("#3a1e08")
)

// Trees: base x, base y as fractions; half width and height in pixels.
var (
	backgroundTrees = [][4]float64{
		{0.02, 0.88, 10, 32}, {0.08, 0.85, 12, 40}, {0.16, 0.87, 9, 30},
		{0.80, 0.86, 11, 36}, {0.88, 0.84, 13, 42}, {0.95, 0.88, 9, 30},
	}
	foregroundTrees = [][4]float64{
		{0.04, 0.96, 15, 58}, {0.11, 0.93, 13, 50}, {0.19, 0.97, 11, 40},
		{0.76, 0.96, 15, 58}, {0.84, 0.94, 13, 52}, {0.92, 0.97, 11, 42},
	}
)

// Canopy tiers: half-width scale, height scale, top offset above the base as a
// fraction of tree height.
var canopy = [][3]float64{
	{1, 0.50, 0.42},
	{0.75, 0.64, 0.66},
	{0.50, 0.82, 0.90},
}

var desertSand = []stop{{0, hex("#d8904e")}, {0.5, hex("#bc6e2a")}, {1, hex("#7e4212")}}

const (
	snowLine   = 0.72
	snowFlakes = 80
)

var (
	snowBand  = []stop{{0, hex("#dde8ff")}, {1, hex("#c0d4f8")}}
	snowFlake = color.NRGBA{255, 255, 255, alpha(0.75)}
)

const (
	urbanGround     = 0.77
	sandyGround     = 0.99
	openWaterGround = 1.1
	defaultGround   = 0.82
)

var (
	grassGround = []stop{{0, hexA("#1c4e18", 0xcc)}, {1, hex("#0c2808")}}
	snowGround  = []stop{{0, hexA("#dde8ff", 0xcc)}, {1, hex("#b0c8f8")}}
)

const (
	bokehCount  = 55
	bokehAlpha  = 0.65
	bokehSpread = 2.5
)

const (
	footerHeight   = 30
	footerTextSize = 12
	footerMaxRunes = 84
	footerKeep     = 81
	footerBrand    = "scenecraft · "
)

var (
	footerBar  = color.NRGBA{0, 0, 0, alpha(0.42)}
	footerText = color.NRGBA{255, 255, 255, alpha(0.62)}
)

// hex parses a literal colour from the tables above. It panics on a malformed
// literal, which can only be a programming error.
func hex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("scenecraft: bad colour literal " + s)
	}
	return nrgba(c, 0xff)
}

func hexA(s string, a uint8) color.NRGBA {
	c := hex(s)
	c.A = a
	return c
}

func nrgba(c colorful.Color, a uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{r, g, b, a}
}

func alpha(a float64) uint8 {
	return uint8(max(0, min(255, a*255+0.5)))
}
