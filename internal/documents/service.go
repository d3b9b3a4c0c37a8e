package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ocr-backend/internal/ocr"
	"ocr-backend/internal/shared/auth"
	"ocr-backend/internal/shared/metrics"
	"ocr-backend/internal/shared/storage/object"
	"ocr-backend/internal/users"
)

const (
	// MaxUploadBytes caps uploaded files at 5 MiB.
	MaxUploadBytes = 5 << 20
	// DefaultPageSize is the listing page size exposed over HTTP.
	DefaultPageSize = 6

	maxPageSize = 100
)

// ListPage is one page of an owner's documents.
type ListPage struct {
	Documents   []Document
	CurrentPage int
	TotalPages  int
}

// Service contains business logic for documents.
type Service struct {
	Store     object.ObjectStore
	Repo      Repo
	Users     *users.Service
	Extractor ocr.Extractor
}

// Upload validates the file, stores it, extracts its text, ensures the
// caller exists as a user, and records the document. Validation failures
// happen before anything is stored, so a rejected upload leaves no rows and
// no files behind.
func (s *Service) Upload(ctx context.Context, identity auth.Identity, docName, fileName string, size int64, r io.Reader) (Document, error) {
	if strings.TrimSpace(fileName) == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if size > MaxUploadBytes {
		return Document{}, ErrFileTooLarge
	}

	var sniff [512]byte
	n, err := io.ReadFull(r, sniff[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if !allowedMimeType(http.DetectContentType(sniff[:n])) {
		return Document{}, ErrUnsupportedFileType
	}

	metrics.IncUploadStarted()
	start := time.Now()

	body := io.MultiReader(bytes.NewReader(sniff[:n]), r)
	storageKey, _, _, err := s.Store.Save(ctx, identity.ID, fileName, body)
	if err != nil {
		metrics.IncUploadFailed()
		return Document{}, fmt.Errorf("store upload: %w", err)
	}

	text, err := s.extractStored(ctx, storageKey)
	if err != nil {
		metrics.IncUploadFailed()
		return Document{}, err
	}

	if err := s.Users.EnsureExists(ctx, identity); err != nil {
		metrics.IncUploadFailed()
		return Document{}, fmt.Errorf("ensure user: %w", err)
	}

	doc, err := s.Repo.Create(ctx, Document{
		Name:    strings.TrimSpace(docName),
		FileURL: storageKey,
		Text:    text,
		UserID:  identity.ID,
	})
	if err != nil {
		metrics.IncUploadFailed()
		return Document{}, err
	}

	metrics.IncUploadCompleted()
	metrics.ObserveUploadDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	return doc, nil
}

// List returns the requested page of the caller's documents. Pages beyond
// the last one come back empty rather than erroring.
func (s *Service) List(ctx context.Context, ownerID string, page int, search string) (ListPage, error) {
	if page < 1 {
		page = 1
	}
	pageSize := DefaultPageSize
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	docs, total, err := s.Repo.ListByOwner(ctx, ownerID, pageSize, (page-1)*pageSize, strings.TrimSpace(search))
	if err != nil {
		return ListPage{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return ListPage{
		Documents:   docs,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

// FindByIDAndOwner returns a document scoped to its owner.
func (s *Service) FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (Document, error) {
	return s.Repo.FindByIDAndOwner(ctx, id, ownerID)
}

func (s *Service) extractStored(ctx context.Context, storageKey string) (string, error) {
	f, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("open stored upload: %w", err)
	}
	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read stored upload: %w", err)
	}
	return s.Extractor.ExtractText(ctx, image)
}

func allowedMimeType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png":
		return true
	}
	return false
}
