// Package tesseract implements ocr.Engine on top of libtesseract.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"rp_admin_backend/internal/ocr"

	"github.com/otiai10/gosseract/v2"
)

// Engine runs recognition with a fresh gosseract client per call; the
// client is not safe for concurrent use.
type Engine struct {
	language   string
	preprocess bool
}

var _ ocr.Engine = (*Engine)(nil)

func New(language string, preprocess bool) *Engine {
	if language == "" {
		language = "eng"
	}
	return &Engine{language: language, preprocess: preprocess}
}

func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.preprocess {
		image = ocr.Preprocess(image)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("setting OCR language %q: %w", e.language, err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("loading image for OCR: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
