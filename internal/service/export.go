package service

import (
	"context"
	"fmt"

	"github.com/travelxplore/site/internal/domain"
)

// Export returns one row per traveler owned by ownerID, in list order.
func (s *TravelerService) Export(ctx context.Context, ownerID int64) ([]domain.TravelerExportRow, error) {
	travelers, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TravelerService.Export: %w", err)
	}

	rows := make([]domain.TravelerExportRow, 0, len(travelers))
	for _, t := range travelers {
		rows = append(rows, domain.TravelerExportRow{
			Name:        t.Name,
			Email:       t.Email,
			Phone:       t.Phone,
			Destination: t.Destination,
			AddedOn:     t.CreatedAt.UTC().Format("2006-01-02"),
		})
	}
	return rows, nil
}
