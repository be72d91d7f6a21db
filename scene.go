package scenecraft

import (
	"image"
	"math/rand/v2"

	"github.com/setanarut/scenecraft/internal/raster"
)

// SceneRequest is the input of one scene render.
type SceneRequest struct {
	Prompt  string
	Style   string
	Palette []string // up to five hex colours; bad or missing entries use DefaultPalette
	Mood    string
	Scene   string

	// Rand drives stars, windows, snowflakes, bokeh and brush overlays.
	// Nil uses an unseeded source; set it for reproducible output.
	Rand *rand.Rand
}

// SceneResult is a finished render plus what went into it.
type SceneResult struct {
	Image   *image.RGBA
	Palette Palette
	Motifs  Motifs
	// Passes lists, in drawing order, the passes that painted.
	Passes []string
	// Styles lists the style overlays that were applied.
	Styles []string
}

// RenderScene composes a SceneWidth×SceneHeight raster from the request.
// It has no failure mode: every input, including empty strings, yields a
// fully painted image.
func RenderScene(req SceneRequest) SceneResult {
	pal := ResolvePalette(req.Palette)
	rng := req.Rand
	if rng == nil {
		rng = newRand()
	}
	f := &frame{
		w:      SceneWidth,
		h:      SceneHeight,
		motifs: DetectMotifs(req.Prompt, req.Style, req.Mood, req.Scene),
		colors: pal.Colors(),
		style:  req.Style,
		prompt: req.Prompt,
		rng:    rng,
	}
	s := raster.New(SceneWidth, SceneHeight)
	passes := composePasses(s, f, scenePasses)

	Logger().Debug("scene rendered", "motifs", len(f.motifs.Active()), "passes", len(passes))
	return SceneResult{
		Image:   s.Image(),
		Palette: pal,
		Motifs:  f.motifs,
		Passes:  passes,
		Styles:  MatchStyles(req.Style),
	}
}

// SynthesizeScene renders a scene and returns it PNG-encoded. It returns nil
// only if encoding fails, which is logged.
func SynthesizeScene(prompt, style string, palette []string, mood, scene string) []byte {
	res := RenderScene(SceneRequest{
		Prompt:  prompt,
		Style:   style,
		Palette: palette,
		Mood:    mood,
		Scene:   scene,
	})
	b, err := EncodePNG(res.Image)
	if err != nil {
		Logger().Warn("encode scene", "err", err)
		return nil
	}
	return b
}
