package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/service"
)

var (
	admin   = domain.User{ID: 1, IsStaff: true}
	regular = domain.User{ID: 2}
)

func destinationFixture() domain.Destination {
	return domain.Destination{
		ID:           4,
		Name:         "Lisbon",
		Country:      "Portugal",
		Category:     domain.CategoryCities,
		PricePerDay:  decimal.RequireFromString("120.50"),
		DurationDays: 5,
	}
}

func TestDestinationService_Create_StampsCreator(t *testing.T) {
	var got domain.Destination
	r := &mockDestinationRepo{
		create: func(_ context.Context, d domain.Destination) (domain.Destination, error) {
			got = d
			return d, nil
		},
	}

	_, err := service.NewDestinationService(r).Create(context.Background(), admin, destinationFixture())

	require.NoError(t, err)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, admin.ID, *got.CreatedBy)
}

func TestDestinationService_WritesRequireAdmin(t *testing.T) {
	// Repo fields left nil: a forbidden call must never reach storage.
	svc := service.NewDestinationService(&mockDestinationRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, regular, destinationFixture())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Update(ctx, regular, destinationFixture())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Delete(ctx, regular, 4)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDestinationService_SuperuserIsAdmin(t *testing.T) {
	r := &mockDestinationRepo{
		delete: func(_ context.Context, _ int64) error { return nil },
	}

	err := service.NewDestinationService(r).Delete(context.Background(), domain.User{ID: 3, IsSuperuser: true}, 4)

	assert.NoError(t, err)
}

func TestDestinationService_Validation(t *testing.T) {
	svc := service.NewDestinationService(&mockDestinationRepo{})
	tests := []struct {
		name   string
		mutate func(*domain.Destination)
	}{
		{"unknown category", func(d *domain.Destination) { d.Category = "desert" }},
		{"negative price", func(d *domain.Destination) { d.PricePerDay = decimal.NewFromInt(-1) }},
		{"zero duration", func(d *domain.Destination) { d.DurationDays = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := destinationFixture()
			tc.mutate(&d)

			_, err := svc.Create(context.Background(), admin, d)
			assert.ErrorIs(t, err, domain.ErrValidation)

			_, err = svc.Update(context.Background(), admin, d)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestDestinationService_Featured_UsesLimit(t *testing.T) {
	var gotLimit int
	r := &mockDestinationRepo{
		listFeatured: func(_ context.Context, limit int) ([]domain.Destination, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	ds, err := service.NewDestinationService(r).Featured(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.FeaturedLimit, gotLimit)
	assert.NotNil(t, ds)
}

func TestDestinationService_Get_NotFound(t *testing.T) {
	r := &mockDestinationRepo{
		getByID: func(_ context.Context, _ int64) (domain.Destination, error) {
			return domain.Destination{}, domain.ErrNotFound
		},
	}

	_, err := service.NewDestinationService(r).Get(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
