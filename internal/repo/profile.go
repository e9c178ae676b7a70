package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelxplore/site/internal/domain"
)

// ProfileRepo defines the persistence operations for user profiles.
// A user has at most one profile; user_id is unique.
type ProfileRepo interface {
	// Create inserts the profile created alongside a new account.
	Create(ctx context.Context, p domain.Profile) (domain.Profile, error)

	// GetOrCreate returns the user's profile, inserting an empty one first if
	// none exists. Concurrent callers for the same user all receive the same row.
	GetOrCreate(ctx context.Context, userID int64) (domain.Profile, error)

	// GetByUserID returns domain.ErrNotFound when the user has no profile yet.
	// It never inserts.
	GetByUserID(ctx context.Context, userID int64) (domain.Profile, error)

	// Update overwrites the mutable fields of the profile owned by p.UserID.
	Update(ctx context.Context, p domain.Profile) (domain.Profile, error)
}

type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

const profileColumns = `id, user_id, phone, address, profile_picture, date_of_birth`

func (r *pgProfileRepo) Create(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	const q = `
		INSERT INTO user_profiles (user_id, phone, address, profile_picture, date_of_birth)
		VALUES (@user_id, @phone, @address, @profile_picture, @date_of_birth)
		RETURNING ` + profileColumns

	result, err := scanProfile(r.db.QueryRow(ctx, q, profileArgs(p)))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Create: %w", err)
	}
	return result, nil
}

// GetOrCreate uses a no-op DO UPDATE so RETURNING yields the existing row on
// conflict; DO NOTHING would return no row at all.
func (r *pgProfileRepo) GetOrCreate(ctx context.Context, userID int64) (domain.Profile, error) {
	const q = `
		INSERT INTO user_profiles (user_id)
		VALUES (@user_id)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + profileColumns

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.GetOrCreate: %w", err)
	}
	return result, nil
}

func (r *pgProfileRepo) GetByUserID(ctx context.Context, userID int64) (domain.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = @user_id`

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.GetByUserID: %w", err)
	}
	return result, nil
}

func (r *pgProfileRepo) Update(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	const q = `
		UPDATE user_profiles
		SET phone           = @phone,
		    address         = @address,
		    profile_picture = @profile_picture,
		    date_of_birth   = @date_of_birth
		WHERE user_id = @user_id
		RETURNING ` + profileColumns

	result, err := scanProfile(r.db.QueryRow(ctx, q, profileArgs(p)))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Update: %w", err)
	}
	return result, nil
}

func profileArgs(p domain.Profile) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":         p.UserID,
		"phone":           p.Phone,
		"address":         p.Address,
		"profile_picture": p.Picture,
		"date_of_birth":   p.DateOfBirth, // nil becomes NULL
	}
}

func scanProfile(s scanner) (domain.Profile, error) {
	var (
		p   domain.Profile
		dob pgtype.Date
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.Phone, &p.Address, &p.Picture, &dob); err != nil {
		return domain.Profile{}, notFound(err)
	}
	if dob.Valid {
		d := dob.Time
		p.DateOfBirth = &d
	}
	return p, nil
}
