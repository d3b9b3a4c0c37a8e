package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	payload := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 1, 2, 3}
	key, size, mimeType, err := store.Save(ctx, "google:1", "nota.png", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("expected size %d, got %d", len(payload), size)
	}
	if mimeType != "image/png" {
		t.Fatalf("expected image/png, got %q", mimeType)
	}
	if !strings.Contains(key, "ocr-") || !strings.Contains(key, "nota.png") {
		t.Fatalf("unexpected storage key %q", key)
	}

	f, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("stored bytes differ from payload")
	}
}

func TestSaveGeneratesDistinctKeysForSameName(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key1, _, _, err := store.Save(ctx, "google:1", "nota.png", bytes.NewReader([]byte("a")))
	if err != nil {
		t.Fatalf("Save 1: %v", err)
	}
	key2, _, _, err := store.Save(ctx, "google:1", "nota.png", bytes.NewReader([]byte("b")))
	if err != nil {
		t.Fatalf("Save 2: %v", err)
	}
	if key1 == key2 {
		t.Fatalf("expected distinct keys, both were %q", key1)
	}
}

func TestOpenRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"../etc/passwd", "/etc/passwd", "a/../../b"} {
		if _, err := store.Open(ctx, key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
