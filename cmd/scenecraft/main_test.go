package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/setanarut/scenecraft/internal/config"
	"github.com/setanarut/scenecraft/utils"
)

func TestRunUsage(t *testing.T) {
	if err := run(nil, config.Config{}); !errors.Is(err, errUsage) {
		t.Errorf("no args err = %v", err)
	}
	if err := run([]string{"paint"}, config.Config{}); !errors.Is(err, errUsage) {
		t.Errorf("unknown command err = %v", err)
	}
}

func TestRunPipeline(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{SegmentMaxSide: 500, SegmentTolerance: 55, PlaceholderQuality: 88}
	scene := filepath.Join(dir, "scene.png")
	cut := filepath.Join(dir, "cut.png")
	ph := filepath.Join(dir, "ph.jpg")
	swatch := filepath.Join(dir, "swatch.png")

	steps := [][]string{
		{"scene", "-prompt", "desert at sunset", "-seed", "3", "-out", scene},
		{"scene", "-palette-from", scene, "-prompt", "city", "-out", scene},
		{"cutout", "-in", scene, "-out", cut},
		{"placeholder", "-index", "4", "-category", "Food", "-out", ph},
		{"palette", "-in", scene, "-k", "3", "-method", "kmeans", "-swatch", swatch},
	}
	for _, args := range steps {
		if err := run(args, cfg); err != nil {
			t.Fatalf("run(%v): %v", args, err)
		}
	}
	for _, f := range []string{scene, cut, ph, swatch} {
		if st, err := os.Stat(f); err != nil || st.Size() == 0 {
			t.Errorf("%s missing: %v", f, err)
		}
	}
	img, err := utils.ReadImage(ph)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 400 {
		t.Errorf("placeholder width = %d", img.Bounds().Dx())
	}
}

func TestRunFlagErrors(t *testing.T) {
	for _, args := range [][]string{
		{"cutout"},
		{"palette"},
		{"palette", "-in", "x.png", "-method", "octree"},
		{"scene", "-bogus"},
	} {
		if err := run(args, config.Config{}); err == nil {
			t.Errorf("run(%v) succeeded", args)
		}
	}
}
