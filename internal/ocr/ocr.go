// Package ocr recognizes text in uploaded receipt and statement images.
package ocr

import (
	"bytes"
	"context"

	"github.com/disintegration/imaging"
)

// Engine turns image bytes into text.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Images narrower than this are upscaled before recognition.
const minWidth = 1000

// Preprocess normalizes a photo for OCR: orientation from EXIF, grayscale,
// upscaling of small images and a contrast boost. Bytes that do not decode
// as an image are returned unchanged so the engine can try them as-is.
func Preprocess(data []byte) []byte {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data
	}

	gray := imaging.Grayscale(img)
	if w := gray.Bounds().Dx(); w > 0 && w < minWidth {
		gray = imaging.Resize(gray, minWidth, 0, imaging.Lanczos)
	}
	gray = imaging.AdjustContrast(gray, 20)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, gray, imaging.PNG); err != nil {
		return data
	}
	return buf.Bytes()
}
