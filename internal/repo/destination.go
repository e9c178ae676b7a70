package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/travelxplore/site/internal/domain"
)

// DestinationRepo defines the persistence operations for the destination catalog.
type DestinationRepo interface {
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)

	GetByID(ctx context.Context, id int64) (domain.Destination, error)

	// List returns every destination, newest first.
	List(ctx context.Context) ([]domain.Destination, error)

	// ListFeatured returns at most limit featured destinations, newest first.
	ListFeatured(ctx context.Context, limit int) ([]domain.Destination, error)

	// Update overwrites the editable fields and refreshes updated_at.
	// created_by and created_at never change.
	Update(ctx context.Context, d domain.Destination) (domain.Destination, error)

	Delete(ctx context.Context, id int64) error
}

type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `id, name, country, description, category, image_url, price_per_day,
	duration_days, highlights, is_featured, created_by, created_at, updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations (name, country, description, category, image_url, price_per_day,
		                          duration_days, highlights, is_featured, created_by)
		VALUES (@name, @country, @description, @category, @image_url, @price_per_day,
		        @duration_days, @highlights, @is_featured, @created_by)
		RETURNING ` + destinationColumns

	args := destinationArgs(d)
	args["created_by"] = d.CreatedBy

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id int64) (domain.Destination, error) {
	const q = `SELECT ` + destinationColumns + ` FROM destinations WHERE id = @id`

	result, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		ORDER BY created_at DESC, id DESC`

	ds, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	return ds, nil
}

func (r *pgDestinationRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE is_featured
		ORDER BY created_at DESC, id DESC
		LIMIT @limit`

	ds, err := r.query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListFeatured: %w", err)
	}
	return ds, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations
		SET name          = @name,
		    country       = @country,
		    description   = @description,
		    category      = @category,
		    image_url     = @image_url,
		    price_per_day = @price_per_day,
		    duration_days = @duration_days,
		    highlights    = @highlights,
		    is_featured   = @is_featured,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + destinationColumns

	args := destinationArgs(d)
	args["id"] = d.ID

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM destinations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDestinationRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Destination, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func destinationArgs(d domain.Destination) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":          d.Name,
		"country":       d.Country,
		"description":   d.Description,
		"category":      string(d.Category),
		"image_url":     d.ImageURL,
		"price_per_day": toNumeric(d.PricePerDay),
		"duration_days": d.DurationDays,
		"highlights":    d.Highlights,
		"is_featured":   d.IsFeatured,
	}
}

// toNumeric and fromNumeric bridge decimal.Decimal and Postgres NUMERIC
// without registering a custom pgx type.
func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d        domain.Destination
		category string
		price    pgtype.Numeric
	)
	err := s.Scan(&d.ID, &d.Name, &d.Country, &d.Description, &category, &d.ImageURL, &price,
		&d.DurationDays, &d.Highlights, &d.IsFeatured, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Destination{}, notFound(err)
	}
	d.Category = domain.Category(category)
	d.PricePerDay = fromNumeric(price)
	return d, nil
}
