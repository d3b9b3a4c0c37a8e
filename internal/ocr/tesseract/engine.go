package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"ocr-backend/internal/ocr"
)

// Engine implements ocr.Extractor using the gosseract Tesseract binding.
// Every call owns its own client: created, used, and closed within the call,
// so concurrent extractions never share engine state.
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// New constructs a Tesseract engine configured for the given languages
// (Tesseract trained-data codes, e.g. "por", "eng").
func New(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = []string{"por"}
	}
	return &Engine{
		languages:     append([]string(nil), languages...),
		clientFactory: gosseract.NewClient,
	}
}

// ExtractText runs recognition on a single encoded image.
func (e *Engine) ExtractText(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(e.languages...); err != nil {
		return "", fmt.Errorf("%w: set languages: %v", ocr.ErrExtraction, err)
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("%w: set image: %v", ocr.ErrExtraction, err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("%w: recognize: %v", ocr.ErrExtraction, err)
	}
	return strings.TrimSpace(text), nil
}

var _ ocr.Extractor = (*Engine)(nil)
