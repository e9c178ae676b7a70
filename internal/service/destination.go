package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/repo"
	"github.com/travelxplore/site/internal/telemetry"
)

// DestinationService implements the destination catalog. Reads are public;
// writes require domain.IsAdmin.
type DestinationService struct {
	repo repo.DestinationRepo
}

// NewDestinationService constructs a DestinationService backed by the provided repo.
func NewDestinationService(r repo.DestinationRepo) *DestinationService {
	return &DestinationService{repo: r}
}

// Create stores d with actor as its creator.
// Returns domain.ErrForbidden if actor is not an admin.
func (s *DestinationService) Create(ctx context.Context, actor domain.User, d domain.Destination) (domain.Destination, error) {
	ctx, span := telemetry.StartSpan(ctx, "destination.create")
	defer span.End()

	if !domain.IsAdmin(actor) {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", domain.ErrForbidden)
	}
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}

	id := actor.ID
	d.CreatedBy = &id
	result, err := s.repo.Create(ctx, d)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return result, nil
}

// Get returns a destination by id.
func (s *DestinationService) Get(ctx context.Context, id int64) (domain.Destination, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Get: %w", err)
	}
	return d, nil
}

// List returns every destination, newest first. Always non-nil.
func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	ds, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	if ds == nil {
		return []domain.Destination{}, nil
	}
	return ds, nil
}

// Featured returns up to domain.FeaturedLimit featured destinations, newest first.
func (s *DestinationService) Featured(ctx context.Context) ([]domain.Destination, error) {
	ctx, span := telemetry.StartSpan(ctx, "destination.featured")
	defer span.End()

	ds, err := s.repo.ListFeatured(ctx, domain.FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Featured: %w", err)
	}
	if ds == nil {
		return []domain.Destination{}, nil
	}
	return ds, nil
}

// Update saves the editable fields of d.
// Returns domain.ErrForbidden if actor is not an admin.
func (s *DestinationService) Update(ctx context.Context, actor domain.User, d domain.Destination) (domain.Destination, error) {
	ctx, span := telemetry.StartSpan(ctx, "destination.update", attribute.Int64("destination.id", d.ID))
	defer span.End()

	if !domain.IsAdmin(actor) {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", domain.ErrForbidden)
	}
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}
	result, err := s.repo.Update(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a destination.
// Returns domain.ErrForbidden if actor is not an admin.
func (s *DestinationService) Delete(ctx context.Context, actor domain.User, id int64) error {
	ctx, span := telemetry.StartSpan(ctx, "destination.delete", attribute.Int64("destination.id", id))
	defer span.End()

	if !domain.IsAdmin(actor) {
		return fmt.Errorf("service.DestinationService.Delete: %w", domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

// validateDestination re-checks the rules the database also enforces, so a
// caller that skipped the form layer gets a validation error instead of a
// constraint failure.
func validateDestination(d domain.Destination) error {
	if !d.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, d.Category)
	}
	if d.PricePerDay.IsNegative() {
		return fmt.Errorf("%w: price_per_day must not be negative", domain.ErrValidation)
	}
	if d.DurationDays < 1 {
		return fmt.Errorf("%w: duration_days must be positive", domain.ErrValidation)
	}
	return nil
}
