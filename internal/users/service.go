package users

import (
	"context"
	"errors"
	"strings"

	"ocr-backend/internal/shared/auth"
)

// Service contains business logic for users.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// EnsureExists persists the caller identity so documents have a stable owner
// row. Repeated calls with the same ID are no-ops.
func (s *Service) EnsureExists(ctx context.Context, identity auth.Identity) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(identity.ID) == "" {
		return errors.New("identity id is required")
	}
	return s.Repo.Upsert(ctx, User{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
		Image: identity.Picture,
	})
}

// GetByID fetches a user by ID.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}
