// Command scenecraft renders scenes, cutouts and placeholders to files.
//
//	scenecraft scene -prompt "a lion at sunset" -style Photorealistic -out lion.png
//	scenecraft cutout -in photo.jpg -out cutout.png
//	scenecraft placeholder -index 3 -label "Ocean 4" -category Ocean -out ocean.jpg
//	scenecraft palette -in photo.jpg -k 5 -method kmeans -swatch swatch.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/setanarut/scenecraft"
	"github.com/setanarut/scenecraft/internal/config"
	"github.com/setanarut/scenecraft/utils"
)

var errUsage = errors.New("usage: scenecraft scene|cutout|placeholder|palette [flags]")

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	scenecraft.SetLogger(logger)

	if err := run(os.Args[1:], cfg); err != nil {
		logger.Error("scenecraft", "err", err)
		os.Exit(1)
	}
}

func run(args []string, cfg config.Config) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "scene":
		return runScene(args[1:])
	case "cutout":
		return runCutout(args[1:], cfg)
	case "placeholder":
		return runPlaceholder(args[1:], cfg)
	case "palette":
		return runPalette(args[1:])
	}
	return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
}

func runScene(args []string) error {
	fs := flag.NewFlagSet("scene", flag.ContinueOnError)
	prompt := fs.String("prompt", "", "scene description")
	style := fs.String("style", "", "art style, e.g. Watercolor or Cyberpunk")
	mood := fs.String("mood", "", "mood keywords")
	scene := fs.String("scene", "", "scene type keywords")
	palette := fs.String("palette", "", "comma separated hex colours")
	paletteFrom := fs.String("palette-from", "", "extract the palette from this photo instead")
	seed := fs.Uint64("seed", 0, "random seed; 0 picks one")
	out := fs.String("out", "scene.png", "output PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := scenecraft.SceneRequest{
		Prompt: *prompt,
		Style:  *style,
		Mood:   *mood,
		Scene:  *scene,
	}
	if *palette != "" {
		req.Palette = strings.Split(*palette, ",")
		for i := range req.Palette {
			req.Palette[i] = strings.TrimSpace(req.Palette[i])
		}
	}
	if *paletteFrom != "" {
		img, err := utils.ReadImage(*paletteFrom)
		if err != nil {
			return err
		}
		req.Palette = utils.ScenePalette(img, scenecraft.PaletteSize, utils.PaletteMethodDominantColor)
	}
	if *seed != 0 {
		req.Rand = rand.New(rand.NewPCG(*seed, *seed))
	}

	res := scenecraft.RenderScene(req)
	scenecraft.Logger().Debug("scene", "passes", res.Passes, "styles", res.Styles, "palette", res.Palette)
	return utils.SaveImage(res.Image, *out)
}

func runCutout(args []string, cfg config.Config) error {
	fs := flag.NewFlagSet("cutout", flag.ContinueOnError)
	in := fs.String("in", "", "input image")
	out := fs.String("out", "cutout.png", "output PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("cutout: -in is required")
	}
	input, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	opt := scenecraft.DefaultOptions()
	opt.MaxSide = cfg.SegmentMaxSide
	opt.Tolerance = cfg.SegmentTolerance
	opt.MaxPixels = cfg.MaxPixels
	png, err := scenecraft.Cutout(input, opt)
	if err != nil {
		return err
	}
	return os.WriteFile(*out, png, 0o644)
}

func runPlaceholder(args []string, cfg config.Config) error {
	fs := flag.NewFlagSet("placeholder", flag.ContinueOnError)
	index := fs.Int("index", 0, "gallery slot index")
	label := fs.String("label", "", "label text; defaults to \"<category> <index+1>\"")
	category := fs.String("category", "Nature", "theme: "+strings.Join(scenecraft.Categories, ", "))
	out := fs.String("out", "placeholder.jpg", "output JPEG")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *label == "" {
		*label = scenecraft.PlaceholderLabel(*category, "", 0, *index)
	}
	b, err := scenecraft.EncodeJPEG(scenecraft.RenderPlaceholder(*index, *label, *category), cfg.PlaceholderQuality)
	if err != nil {
		return err
	}
	return os.WriteFile(*out, b, 0o644)
}

func runPalette(args []string) error {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	in := fs.String("in", "", "input image")
	k := fs.Int("k", scenecraft.PaletteSize, "number of colours")
	method := fs.String("method", "dominantcolor", "dominantcolor or kmeans")
	swatch := fs.String("swatch", "", "also write a swatch PNG here")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("palette: -in is required")
	}
	m, err := utils.ParseMethod(*method)
	if err != nil {
		return err
	}
	img, err := utils.ReadImage(*in)
	if err != nil {
		return err
	}
	p := utils.ExtractPalette(img, *k, m)
	utils.SortPaletteByBrightness(p)
	hexes := make([]string, len(p))
	for i, c := range p {
		hexes[i] = c.Hex()
	}
	fmt.Println(strings.Join(hexes, ","))
	if *swatch != "" {
		return utils.SavePalette(p, 64, *swatch)
	}
	return nil
}
