package scenecraft

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMime string
		wantData string
		wantErr  bool
	}{
		{"png", "data:image/png;base64,aGVsbG8=", "image/png", "hello", false},
		{"trailing newline", "data:image/jpeg;base64,aGVsbG8=\n", "image/jpeg", "hello", false},
		{"no prefix", "image/png;base64,aGVsbG8=", "", "", true},
		{"no comma", "data:image/png;base64", "", "", true},
		{"not base64", "data:text/plain,hello", "", "", true},
		{"bad payload", "data:image/png;base64,@@@", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data, err := ParseDataURI(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrNotDataURI) {
					t.Errorf("err = %v, want ErrNotDataURI", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if mime != tt.wantMime || string(data) != tt.wantData {
				t.Errorf("got (%q, %q)", mime, data)
			}
		})
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	payload := []byte{0, 1, 2, 250, 255}
	mime, data, err := ParseDataURI(DataURI("image/webp", payload))
	if err != nil || mime != "image/webp" || string(data) != string(payload) {
		t.Errorf("round trip = (%q, %v, %v)", mime, data, err)
	}
}

func TestDecodeImageErrors(t *testing.T) {
	if _, err := DecodeImage(nil); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("nil input err = %v", err)
	}
	if _, err := DecodeImage([]byte("GIF89a but not really")); err == nil {
		t.Error("garbage decoded")
	}
}

func TestEncodeJPEGQualityClamped(t *testing.T) {
	img := imaging.New(16, 16, color.NRGBA{10, 200, 30, 255})
	for _, q := range []int{-5, 0, 50, 250} {
		b, err := EncodeJPEG(img, q)
		if err != nil {
			t.Fatalf("EncodeJPEG(q=%d): %v", q, err)
		}
		got, err := DecodeImage(b)
		if err != nil {
			t.Fatalf("decode q=%d: %v", q, err)
		}
		if got.Bounds().Size() != (image.Point{16, 16}) {
			t.Errorf("q=%d size = %v", q, got.Bounds())
		}
	}
}
