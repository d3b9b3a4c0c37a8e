// Package ocr defines the text-extraction contract and its errors. Engines
// are pluggable so tests can run without a Tesseract installation.
package ocr

import (
	"context"
	"errors"
)

// ErrExtraction marks any initialization or recognition failure. Callers get
// either the full recognized text or this error, never partial output.
var ErrExtraction = errors.New("ocr extraction failed")

// Extractor recognizes text from an encoded image (JPEG or PNG).
type Extractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}
