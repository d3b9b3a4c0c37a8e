package llm

import (
	"context"
	"errors"
)

// Client abstracts the language-model provider used to explain OCR text.
type Client interface {
	Explain(ctx context.Context, text, query string) (string, error)
}

var (
	// ErrThrottled signals provider rate limiting or quota exhaustion; a
	// later retry may succeed.
	ErrThrottled = errors.New("llm provider throttled")
	// ErrMalformedResponse signals a provider response without usable content.
	ErrMalformedResponse = errors.New("unexpected llm response format")
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("llm not configured")
)

// PlaceholderClient is used when no provider credentials are configured.
type PlaceholderClient struct{}

// Explain returns ErrNotConfigured.
func (PlaceholderClient) Explain(ctx context.Context, text, query string) (string, error) {
	_ = ctx
	_ = text
	_ = query
	return "", ErrNotConfigured
}
