package explain

import (
	"context"
	"errors"
	"strings"

	"ocr-backend/internal/documents"
	"ocr-backend/internal/llm"
	"ocr-backend/internal/shared/metrics"
)

// ErrEmptyQuery rejects blank queries before any lookup happens.
var ErrEmptyQuery = errors.New("query must not be empty")

// Service answers questions about a document's extracted text. The document
// lookup is owner-scoped and happens first: when it misses, the language
// model is never called.
type Service struct {
	Docs *documents.Service
	LLM  llm.Client
}

// Explain looks up the caller's document and asks the language model to
// explain its text in terms of the query.
func (s *Service) Explain(ctx context.Context, ownerID string, documentID int64, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	doc, err := s.Docs.FindByIDAndOwner(ctx, documentID, ownerID)
	if err != nil {
		return "", err
	}

	answer, err := s.LLM.Explain(ctx, doc.Text, query)
	if err != nil {
		if errors.Is(err, llm.ErrThrottled) {
			metrics.IncExplainThrottled()
		} else {
			metrics.IncExplainFailed()
		}
		return "", err
	}

	metrics.IncExplainCompleted()
	return answer, nil
}
