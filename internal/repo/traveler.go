package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/travelxplore/site/internal/domain"
)

// TravelerRepo defines the persistence operations for travelers.
// Every read, update and delete is scoped by owner id so a row belonging to
// another user is indistinguishable from a missing one.
type TravelerRepo interface {
	Create(ctx context.Context, t domain.Traveler) (domain.Traveler, error)

	// GetByID returns domain.ErrNotFound if the traveler does not exist or is
	// owned by someone else.
	GetByID(ctx context.Context, ownerID, id int64) (domain.Traveler, error)

	// ListByOwner returns the owner's travelers, newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Traveler, error)

	// Update matches on both t.ID and t.UserID.
	Update(ctx context.Context, t domain.Traveler) (domain.Traveler, error)

	Delete(ctx context.Context, ownerID, id int64) error
}

type pgTravelerRepo struct {
	db db
}

// NewTravelerRepo constructs a TravelerRepo backed by the provided db connection.
func NewTravelerRepo(db db) TravelerRepo {
	return &pgTravelerRepo{db: db}
}

const travelerColumns = `id, user_id, name, email, phone, destination, created_at`

func (r *pgTravelerRepo) Create(ctx context.Context, t domain.Traveler) (domain.Traveler, error) {
	const q = `
		INSERT INTO travelers (user_id, name, email, phone, destination)
		VALUES (@user_id, @name, @email, @phone, @destination)
		RETURNING ` + travelerColumns

	result, err := scanTraveler(r.db.QueryRow(ctx, q, travelerArgs(t)))
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("repo.TravelerRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTravelerRepo) GetByID(ctx context.Context, ownerID, id int64) (domain.Traveler, error) {
	const q = `SELECT ` + travelerColumns + ` FROM travelers WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": ownerID})
	result, err := scanTraveler(row)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("repo.TravelerRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTravelerRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Traveler, error) {
	const q = `
		SELECT ` + travelerColumns + `
		FROM travelers
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TravelerRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var travelers []domain.Traveler
	for rows.Next() {
		t, err := scanTraveler(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TravelerRepo.ListByOwner: scan: %w", err)
		}
		travelers = append(travelers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TravelerRepo.ListByOwner: rows: %w", err)
	}
	return travelers, nil
}

func (r *pgTravelerRepo) Update(ctx context.Context, t domain.Traveler) (domain.Traveler, error) {
	const q = `
		UPDATE travelers
		SET name        = @name,
		    email       = @email,
		    phone       = @phone,
		    destination = @destination
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + travelerColumns

	args := travelerArgs(t)
	args["id"] = t.ID

	result, err := scanTraveler(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("repo.TravelerRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTravelerRepo) Delete(ctx context.Context, ownerID, id int64) error {
	const q = `DELETE FROM travelers WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TravelerRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TravelerRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func travelerArgs(t domain.Traveler) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":     t.UserID,
		"name":        t.Name,
		"email":       t.Email,
		"phone":       t.Phone,
		"destination": t.Destination,
	}
}

func scanTraveler(s scanner) (domain.Traveler, error) {
	var t domain.Traveler
	if err := s.Scan(&t.ID, &t.UserID, &t.Name, &t.Email, &t.Phone, &t.Destination, &t.CreatedAt); err != nil {
		return domain.Traveler{}, notFound(err)
	}
	return t, nil
}
