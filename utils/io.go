package utils

import (
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// ReadImage opens an image file, honouring its EXIF orientation.
func ReadImage(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// SaveImage writes img to filename; the extension picks the format.
func SaveImage(img image.Image, filename string) error {
	return imaging.Save(img, filename)
}

// Swatch renders palette as a row of square tiles.
func Swatch(palette []colorful.Color, tileSize int) *image.NRGBA {
	if tileSize <= 0 {
		tileSize = 64
	}
	out := imaging.New(tileSize*len(palette), tileSize, color.Transparent)
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		tile := imaging.New(tileSize, tileSize, color.NRGBA{r, g, b, 255})
		out = imaging.Paste(out, tile, image.Pt(i*tileSize, 0))
	}
	return out
}

func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return errors.New("empty palette")
	}
	return SaveImage(Swatch(palette, tileSize), filename)
}
