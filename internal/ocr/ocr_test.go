package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: 120, B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPreprocessUpscalesSmallImages(t *testing.T) {
	out := Preprocess(encodePNG(t, 200, 100))

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("preprocessed output is not an image: %v", err)
	}
	if got := img.Bounds().Dx(); got != minWidth {
		t.Errorf("width = %d, want %d", got, minWidth)
	}
	if got := img.Bounds().Dy(); got != 500 {
		t.Errorf("height = %d, want aspect-preserving 500", got)
	}
	r, g, b, _ := img.At(10, 10).RGBA()
	if r != g || g != b {
		t.Errorf("pixel not grayscale: %d %d %d", r, g, b)
	}
}

func TestPreprocessKeepsLargeImageSize(t *testing.T) {
	out := Preprocess(encodePNG(t, 1200, 40))
	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1200 || cfg.Height != 40 {
		t.Errorf("size = %dx%d, want 1200x40", cfg.Width, cfg.Height)
	}
}

func TestPreprocessPassesThroughNonImages(t *testing.T) {
	in := []byte("%PDF-1.4 not an image")
	if out := Preprocess(in); !bytes.Equal(out, in) {
		t.Error("non-image bytes should be returned unchanged")
	}
}
