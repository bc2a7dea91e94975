package service

import (
	"context"
	"log/slog"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// Submit persists the message. Validation happens strictly before this
// point, so the store never sees invalid data.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if err := s.repo.Insert(ctx, msg); err != nil {
		return err
	}
	slog.Info("contact message stored", "id", msg.ID, "created_at", msg.CreatedAt)
	return nil
}
