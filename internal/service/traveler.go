package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/repo"
	"github.com/travelxplore/site/internal/telemetry"
)

// TravelerService implements the owner-scoped traveler contact list.
// The owner is always the caller; it is never taken from submitted data.
type TravelerService struct {
	repo repo.TravelerRepo
}

// NewTravelerService constructs a TravelerService backed by the provided repo.
func NewTravelerService(r repo.TravelerRepo) *TravelerService {
	return &TravelerService{repo: r}
}

// Create stores t as belonging to ownerID.
func (s *TravelerService) Create(ctx context.Context, ownerID int64, t domain.Traveler) (domain.Traveler, error) {
	ctx, span := telemetry.StartSpan(ctx, "traveler.create", attribute.Int64("user.id", ownerID))
	defer span.End()

	t.UserID = ownerID
	result, err := s.repo.Create(ctx, t)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return domain.Traveler{}, fmt.Errorf("service.TravelerService.Create: %w", err)
	}
	return result, nil
}

// Get returns domain.ErrNotFound when the traveler is missing or not owned
// by ownerID.
func (s *TravelerService) Get(ctx context.Context, ownerID, id int64) (domain.Traveler, error) {
	result, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("service.TravelerService.Get: %w", err)
	}
	return result, nil
}

// List returns the owner's travelers, newest first. Always non-nil.
func (s *TravelerService) List(ctx context.Context, ownerID int64) ([]domain.Traveler, error) {
	ctx, span := telemetry.StartSpan(ctx, "traveler.list", attribute.Int64("user.id", ownerID))
	defer span.End()

	travelers, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TravelerService.List: %w", err)
	}
	if travelers == nil {
		return []domain.Traveler{}, nil
	}
	return travelers, nil
}

// Update saves t, scoped to ownerID.
func (s *TravelerService) Update(ctx context.Context, ownerID int64, t domain.Traveler) (domain.Traveler, error) {
	ctx, span := telemetry.StartSpan(ctx, "traveler.update", attribute.Int64("traveler.id", t.ID))
	defer span.End()

	t.UserID = ownerID
	result, err := s.repo.Update(ctx, t)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("service.TravelerService.Update: %w", err)
	}
	return result, nil
}

// Delete removes the traveler, scoped to ownerID.
func (s *TravelerService) Delete(ctx context.Context, ownerID, id int64) error {
	ctx, span := telemetry.StartSpan(ctx, "traveler.delete", attribute.Int64("traveler.id", id))
	defer span.End()

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.TravelerService.Delete: %w", err)
	}
	return nil
}
