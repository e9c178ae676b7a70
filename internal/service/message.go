package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/repo"
	"github.com/travelxplore/site/internal/telemetry"
)

// MessageService implements the contact inbox. Staff see every message;
// other users see only what they sent.
type MessageService struct {
	repo repo.MessageRepo
}

// NewMessageService constructs a MessageService backed by the provided repo.
func NewMessageService(r repo.MessageRepo) *MessageService {
	return &MessageService{repo: r}
}

// Submit stores m with sender as its author, whatever m.UserID held.
func (s *MessageService) Submit(ctx context.Context, sender domain.User, m domain.ContactMessage) (domain.ContactMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "message.submit", attribute.Int64("user.id", sender.ID))
	defer span.End()

	id := sender.ID
	m.UserID = &id
	m.IsRead = false

	result, err := s.repo.Create(ctx, m)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return domain.ContactMessage{}, fmt.Errorf("service.MessageService.Submit: %w", err)
	}
	return result, nil
}

// List returns the messages visible to viewer, newest first. Always non-nil.
func (s *MessageService) List(ctx context.Context, viewer domain.User) ([]domain.ContactMessage, error) {
	messages, err := s.repo.List(ctx, repo.ScopeFor(viewer))
	if err != nil {
		return nil, fmt.Errorf("service.MessageService.List: %w", err)
	}
	if messages == nil {
		return []domain.ContactMessage{}, nil
	}
	return messages, nil
}

// Get returns a message visible to viewer without changing it.
func (s *MessageService) Get(ctx context.Context, viewer domain.User, id int64) (domain.ContactMessage, error) {
	m, err := s.repo.GetByID(ctx, repo.ScopeFor(viewer), id)
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("service.MessageService.Get: %w", err)
	}
	return m, nil
}

// View returns a message visible to viewer and marks it read.
func (s *MessageService) View(ctx context.Context, viewer domain.User, id int64) (domain.ContactMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "message.view", attribute.Int64("message.id", id))
	defer span.End()

	m, err := s.repo.MarkRead(ctx, repo.ScopeFor(viewer), id)
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("service.MessageService.View: %w", err)
	}
	return m, nil
}

// Delete removes a message visible to viewer.
func (s *MessageService) Delete(ctx context.Context, viewer domain.User, id int64) error {
	ctx, span := telemetry.StartSpan(ctx, "message.delete", attribute.Int64("message.id", id))
	defer span.End()

	if err := s.repo.Delete(ctx, repo.ScopeFor(viewer), id); err != nil {
		return fmt.Errorf("service.MessageService.Delete: %w", err)
	}
	return nil
}
