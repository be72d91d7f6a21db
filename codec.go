package scenecraft

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotDataURI is returned by ParseDataURI for input that is not a
	// base64 data URI.
	ErrNotDataURI = errors.New("scenecraft: not a base64 data URI")
	// ErrEmptyImage is returned when there are no bytes to decode or the
	// decoded image has no pixels.
	ErrEmptyImage = errors.New("scenecraft: empty image")
	// ErrImageTooLarge is returned by Cutout when the declared pixel count
	// exceeds Options.MaxPixels.
	ErrImageTooLarge = errors.New("scenecraft: image too large")
)

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP bytes. JPEG EXIF
// orientation is applied.
func DecodeImage(b []byte) (image.Image, error) {
	if len(b) == 0 {
		return nil, ErrEmptyImage
	}
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return img, nil
}

// ImageSize reads the dimensions from the image header without decoding
// the pixels.
func ImageSize(b []byte) (image.Point, error) {
	if len(b) == 0 {
		return image.Point{}, ErrEmptyImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return image.Point{}, fmt.Errorf("decode image config: %w", err)
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG encodes img as JPEG with quality clamped to [1, 100].
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	q := max(1, min(100, quality))
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseDataURI splits "data:<mime>;base64,<payload>" into its media type and
// decoded payload.
func ParseDataURI(s string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	data, err = base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrNotDataURI, err)
	}
	return mime, data, nil
}

// DataURI encodes data as a base64 data URI of the given media type.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func isDataURI(b []byte) bool {
	return bytes.HasPrefix(b, []byte("data:"))
}
