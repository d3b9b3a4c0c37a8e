package tesseract

import (
	"context"
	"testing"
)

func TestNewDefaultsToPortuguese(t *testing.T) {
	e := New()
	if len(e.languages) != 1 || e.languages[0] != "por" {
		t.Fatalf("expected default languages [por], got %v", e.languages)
	}
}

func TestNewCopiesLanguageSlice(t *testing.T) {
	langs := []string{"por", "eng"}
	e := New(langs...)
	langs[0] = "deu"
	if e.languages[0] != "por" {
		t.Fatal("engine must not alias the caller's slice")
	}
}

func TestExtractTextHonorsCancelledContext(t *testing.T) {
	e := New("por")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.ExtractText(ctx, []byte{0x01}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
