package scenecraft

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/scenecraft/internal/raster"
)

// frame is the read-only input shared by every pass of one render. Only rng
// advances.
type frame struct {
	w, h   float64
	motifs Motifs
	colors [PaletteSize]colorful.Color
	style  string
	prompt string
	rng    *rand.Rand
}

func (f *frame) has(m Motif) bool { return f.motifs.Has(m) }

// slot returns palette colour i (wrapping) with alpha a in [0,1].
func (f *frame) slot(i int, a float64) color.NRGBA {
	return nrgba(f.colors[i%PaletteSize], alpha(a))
}

// slotA is slot with an 8-bit alpha, matching the "#rrggbbaa" literals the
// layout tables use.
func (f *frame) slotA(i int, a uint8) color.NRGBA {
	return nrgba(f.colors[i%PaletteSize], a)
}

// pass draws one layer and reports whether it painted anything.
type pass struct {
	name string
	draw func(s *raster.Surface, f *frame) bool
}

// scenePasses run strictly in this order; later passes paint over earlier ones.
var scenePasses = []pass{
	{"sky", drawSky},
	{"stars", drawStars},
	{"nebula", drawNebula},
	{"sun", drawSun},
	{"moon", drawMoon},
	{"clouds", drawClouds},
	{"mountains", drawMountains},
	{"city", drawCity},
	{"water", drawWater},
	{"forest", drawForest},
	{"desert", drawDesert},
	{"snow", drawSnow},
	{"ground", drawGround},
	{"atmosphere", drawAtmosphere},
	{"bokeh", drawBokeh},
	{"style", drawStyle},
	{"watermark", drawWatermark},
}

// PassNames lists the compositor passes in drawing order.
func PassNames() []string {
	out := make([]string, len(scenePasses))
	for i, p := range scenePasses {
		out[i] = p.name
	}
	return out
}

// composePasses folds the pass table over s and returns the names of the
// passes that drew.
func composePasses(s *raster.Surface, f *frame, passes []pass) []string {
	var drawn []string
	for i, p := range passes {
		ok := p.draw(s, f)
		Logger().Debug("scene pass", "n", i+1, "pass", p.name, "drawn", ok)
		if ok {
			drawn = append(drawn, p.name)
		}
	}
	return drawn
}

func linear(x0, y0, x1, y1 float64, stops []stop) *raster.LinearGradient {
	g := raster.NewLinearGradient(x0, y0, x1, y1)
	for _, st := range stops {
		g.AddColorStop(st.at, st.c)
	}
	return g
}

// radial is a gradient from the centre out to radius r.
func radial(cx, cy, r float64, stops []stop) *raster.RadialGradient {
	g := raster.NewRadialGradient(cx, cy, 0, r)
	for _, st := range stops {
		g.AddColorStop(st.at, st.c)
	}
	return g
}

// glowDisc fills a disc that fades from c at the centre to transparent.
func glowDisc(s *raster.Surface, cx, cy, r float64, c color.NRGBA) {
	s.FillCircle(cx, cy, r, radial(cx, cy, r, []stop{{0, c}, {1, raster.Transparent}}))
}

func triangle(s *raster.Surface, x0, y0, x1, y1, x2, y2 float64, paint color.Color) {
	p := raster.NewPath()
	p.Polygon(x0, y0, x1, y1, x2, y2)
	s.Fill(p, raster.Solid(paint))
}

// ============ SKY ============

func drawSky(s *raster.Surface, f *frame) bool {
	stops := []stop{{0, f.slotA(0, 0xff)}, {0.5, f.slotA(1, 0xff)}, {1, f.slotA(2, 0xbb)}}
	for _, t := range skyThemes {
		if f.has(t.when) {
			stops = t.stops
			break
		}
	}
	s.FillRect(0, 0, f.w, f.h, linear(0, 0, 0, f.h*skyDepth, stops))
	return true
}

func drawStars(s *raster.Surface, f *frame) bool {
	if !f.has(SkyNight) {
		return false
	}
	for range starCount {
		x := f.rng.Float64() * f.w
		y := f.rng.Float64() * f.h * starDepth
		r := f.rng.Float64()*1.8 + 0.2
		a := f.rng.Float64()*0.7 + 0.3
		s.FillCircle(x, y, r, raster.Solid(raster.RGBA(255, 255, 255, a)))
	}
	milky := linear(0, f.h*0.05, f.w, f.h*0.5, []stop{
		{0, raster.Transparent},
		{0.4, color.NRGBA{160, 140, 255, alpha(0.07)}},
		{0.6, color.NRGBA{200, 180, 255, alpha(0.11)}},
		{1, raster.Transparent},
	})
	s.FillRect(0, 0, f.w, f.h*milkyDepth, milky)
	return true
}

func drawNebula(s *raster.Surface, f *frame) bool {
	if !f.has(Nebula) {
		return false
	}
	for _, g := range nebulaGlows {
		glowDisc(s, g.x*f.w, g.y*f.h, g.r, f.slot(g.slot, g.alpha))
	}
	return true
}

// ============ SUN & MOON ============

func sunPosition(f *frame) (x, y float64) {
	switch {
	case f.has(SunsetExact):
		return f.w * 0.77, f.h * 0.36
	case f.has(SunriseExact):
		return f.w * 0.24, f.h * 0.36
	}
	return f.w * 0.28, f.h * 0.14
}

func drawSun(s *raster.Surface, f *frame) bool {
	if !f.has(Sun) {
		return false
	}
	sx, sy := sunPosition(f)
	s.FillCircle(sx, sy, sunHaloRadius, radial(sx, sy, sunHaloRadius, sunHalo))
	s.FillCircle(sx, sy, sunDiscRadius, raster.Solid(sunDisc))
	if f.has(SunsetExact) {
		return true
	}
	ray := raster.Solid(sunRay)
	for a := range sunRays {
		sin, cos := math.Sincos(float64(a) * math.Pi / 6)
		s.StrokeLine(sx+cos*sunRayInner, sy+sin*sunRayInner,
			sx+cos*sunRayOuter, sy+sin*sunRayOuter, sunRayWidth, ray)
	}
	return true
}

func drawMoon(s *raster.Surface, f *frame) bool {
	if !f.has(Moon) {
		return false
	}
	mx, my := f.w*moonX, f.h*moonY
	s.FillCircle(mx, my, 50, radial(mx, my, 50, moonHalo))
	s.FillCircle(mx, my, 23, raster.Solid(moonDisc))
	// Offset shadow disc carves the crescent.
	s.FillCircle(mx+10, my-5, 19, raster.Solid(moonShadow))
	s.FillCircle(mx, my, 90, radial(mx, my, 90, moonGlow))
	return true
}

// ============ CLOUDS ============

func drawClouds(s *raster.Surface, f *frame) bool {
	if !f.has(Cloud) {
		return false
	}
	tint := plainCloud
	switch {
	case f.has(StormTint):
		tint = stormCloud
	case f.has(GoldenTint):
		tint = goldenCloud
	}
	paint := raster.Solid(tint)
	for _, c := range cloudClusters {
		cx, cy, cw, ch := c[0]*f.w, c[1]*f.h, c[2], c[3]
		for _, p := range cloudPuffs {
			s.FillEllipse(cx+p[0]*cw, cy+p[1]*ch, cw*p[2], ch*p[3], 0, paint)
		}
	}
	return true
}

// ============ TERRAIN ============

func drawMountains(s *raster.Surface, f *frame) bool {
	if !f.has(Mountain) {
		return false
	}
	for i, r := range ridges {
		cx, base, hw, hh := r[0]*f.w, r[1]*f.h, r[2]*f.w, r[3]*f.h
		top := f.slotA(2, 0x88)
		if i%2 == 1 {
			top = f.slotA(1, 0xaa)
		}
		p := raster.NewPath()
		p.Polygon(cx-hw, base, cx, base-hh, cx+hw, base)
		s.Fill(p, linear(cx, base-hh, cx, base, []stop{{0, top}, {1, f.slotA(0, 0xcc)}}))
	}
	for _, r := range ridges {
		cx, peak, hw, hh := r[0]*f.w, (r[1]-r[3])*f.h, r[2]*f.w, r[3]*f.h
		capY := peak + hh*snowCapFraction
		triangle(s, cx-hw*snowCapFraction, capY, cx, peak, cx+hw*snowCapFraction, capY, snowCap)
	}
	return true
}

func drawCity(s *raster.Surface, f *frame) bool {
	if !f.has(City) {
		return false
	}
	for _, b := range buildings {
		x, y, w, h := b[0]*f.w, b[1]*f.h, b[2]*f.w, b[3]*f.h
		fill := linear(x, y, x+w, y+h, []stop{{0, f.slotA(2, 0xcc)}, {1, f.slotA(0, 0xff)}})
		s.FillRect(x, y, w, h, fill)
		for wy := y + windowInsetTop; wy < y+h-windowInsetBottom; wy += windowStepY {
			for wx := x + windowInsetX; wx < x+w-windowInsetX; wx += windowStepX {
				if f.rng.Float64() <= windowLitThreshold {
					continue
				}
				wa := 0.55 + f.rng.Float64()*0.45
				lit := raster.RGBA(255, 220, 80, wa*0.6)
				if f.rng.Float64() > 0.5 {
					lit = raster.RGBA(0, 229, 200, wa*0.7)
				}
				s.FillRect(wx, wy, windowW, windowH, raster.Solid(lit))
			}
		}
	}
	if f.has(NeonBand) {
		band := linear(0, f.h*0.75, 0, f.h, []stop{{0, f.slotA(3, 0x55)}, {1, f.slotA(4, 0x22)}})
		s.FillRect(0, f.h*0.75, f.w, f.h*0.25, band)
	}
	return true
}

func drawWater(s *raster.Surface, f *frame) bool {
	if !f.has(Ocean) {
		return false
	}
	horizon := f.h * waterHorizon
	if f.has(Shoreline) {
		horizon = f.h * shorelineHorizon
	}
	top := plainWater
	switch {
	case f.has(Tropical):
		top = tropicalWater
	case f.has(Dark):
		top = darkWater
	case f.has(SunsetExact):
		top = sunsetWater
	}
	depth := f.h - horizon
	s.FillRect(0, horizon, f.w, depth,
		linear(0, horizon, 0, f.h, []stop{{0, top}, {1, f.slotA(0, 0xff)}}))

	for wi := range waveCount {
		wy := horizon + float64(wi)*depth/waveCount
		p := raster.NewPath()
		p.MoveTo(0, wy)
		for wx := 0.0; wx <= f.w; wx += wavePeriod {
			p.QuadTo(wx+18, wy-5, wx+32, wy+2)
			p.QuadTo(wx+44, wy+6, wx+50, wy)
		}
		s.Stroke(p, waveWidth, raster.Solid(raster.RGBA(255, 255, 255, 0.08+float64(wi)*0.01)))
	}

	if f.has(Reflection) {
		sheen := linear(f.w*reflectionGradX0, horizon, f.w*reflectionGradX1, f.h,
			[]stop{{0, reflection}, {1, raster.Transparent}})
		s.FillRect(f.w*reflectionLeft, horizon, f.w*reflectionWidth, depth, sheen)
	}
	return true
}

func drawForest(s *raster.Surface, f *frame) bool {
	if !f.has(Forest) {
		return false
	}
	tc, tc2 := plainTree, plainTree2
	switch {
	case f.has(SkyAutumn):
		tc, tc2 = autumnTree, autumnTree2
	case f.has(Jungle):
		tc = jungleTree
	}
	far := tc
	far.A = 0x77
	for _, t := range backgroundTrees {
		x, y, hw, th := t[0]*f.w, t[1]*f.h, t[2], t[3]
		triangle(s, x-hw, y, x, y-th, x+hw, y, far)
	}
	bark := raster.Solid(trunk)
	for _, t := range foregroundTrees {
		x, y, hw, th := t[0]*f.w, t[1]*f.h, t[2], t[3]
		s.FillRect(x-2.5, y-14, 6, 16, bark)
		for li, c := range canopy {
			lw, lh, ly := hw*c[0], th*c[1], y-th*c[2]
			leaf := tc
			leaf.A = 0xcc
			if li == 1 {
				leaf = tc2
				leaf.A = 0xee
			}
			triangle(s, x-lw, ly+lh, x, ly, x+lw, ly+lh, leaf)
		}
	}
	return true
}

func drawDesert(s *raster.Surface, f *frame) bool {
	if !f.has(Desert) {
		return false
	}
	w, h := f.w, f.h
	p := raster.NewPath()
	p.MoveTo(0, h*0.76)
	p.CubicTo(w*0.18, h*0.52, w*0.42, h*0.70, w*0.58, h*0.54)
	p.CubicTo(w*0.74, h*0.40, w*0.88, h*0.62, w, h*0.50)
	p.LineTo(w, h)
	p.LineTo(0, h)
	p.Close()
	s.Fill(p, linear(0, h*0.45, 0, h, desertSand))
	return true
}

func drawSnow(s *raster.Surface, f *frame) bool {
	if !f.has(Snow) {
		return false
	}
	s.FillRect(0, f.h*snowLine, f.w, f.h*(1-snowLine), linear(0, f.h*0.7, 0, f.h, snowBand))
	flake := raster.Solid(snowFlake)
	for range snowFlakes {
		x := f.rng.Float64() * f.w
		y := f.rng.Float64() * f.h * snowLine
		r := f.rng.Float64()*2 + 0.5
		s.FillCircle(x, y, r, flake)
	}
	return true
}

// groundLine is the ground horizon as a fraction of the height; values at or
// past 1 mean no ground band.
func groundLine(f *frame) float64 {
	openWater := f.has(OpenWater) && !f.has(Beach)
	switch {
	case f.has(Urban):
		return urbanGround
	case f.has(Sandy):
		return sandyGround
	case openWater:
		return openWaterGround
	}
	return defaultGround
}

func drawGround(s *raster.Surface, f *frame) bool {
	gy := groundLine(f) * f.h
	if gy >= f.h {
		return false
	}
	stops := []stop{{0, f.slotA(1, 0xcc)}, {1, f.slotA(0, 0xff)}}
	switch {
	case f.has(Grass) && !f.has(GrassBlocker):
		stops = grassGround
	case f.has(SnowGround):
		stops = snowGround
	}
	s.FillRect(0, gy, f.w, f.h-gy, linear(0, gy, 0, f.h, stops))
	return true
}

// ============ ATMOSPHERE ============

func drawAtmosphere(s *raster.Surface, f *frame) bool {
	for _, g := range atmosphereGlows {
		glowDisc(s, g.x*f.w, g.y*f.h, g.r, f.slot(g.slot, g.alpha))
	}
	return true
}

func drawBokeh(s *raster.Surface, f *frame) bool {
	for i := range bokehCount {
		x := f.rng.Float64() * f.w
		y := f.rng.Float64() * f.h
		r := f.rng.Float64()*3.5 + 0.5
		glowDisc(s, x, y, r*bokehSpread, f.slot(i, bokehAlpha))
	}
	return true
}

func drawStyle(s *raster.Surface, f *frame) bool {
	return len(ApplyStyle(s, f.style, f.colors, f.rng)) > 0
}

// ============ WATERMARK ============

func drawWatermark(s *raster.Surface, f *frame) bool {
	s.FillRect(0, f.h-footerHeight, f.w, footerHeight, raster.Solid(footerBar))
	face, err := raster.NewFace(raster.Regular, footerTextSize)
	if err != nil {
		Logger().Warn("watermark font unavailable", "err", err)
		return true
	}
	defer face.Close()
	s.DrawText(face, footerBrand+truncateRunes(f.prompt, footerMaxRunes, footerKeep), 14, f.h-10, footerText)
	return true
}

// truncateRunes shortens s to keep runes plus an ellipsis when it is longer
// than limit runes.
func truncateRunes(s string, limit, keep int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:keep]) + "…"
}
