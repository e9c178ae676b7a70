package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/travelxplore/site/internal/domain"
)

// UserRepo defines the persistence operations for accounts.
type UserRepo interface {
	// Create inserts a user. Returns domain.ErrDuplicateUsername or
	// domain.ErrDuplicateEmail when a unique constraint rejects the row.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user has that id.
	GetByID(ctx context.Context, id int64) (domain.User, error)

	// GetByUsername matches the username exactly.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists compares case-insensitively, matching the unique index.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateContact overwrites first name, last name and email.
	UpdateContact(ctx context.Context, u domain.User) (domain.User, error)

	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name,
	is_staff, is_superuser, is_active, date_joined, last_login`

func (r *pgUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (username, email, password_hash, first_name, last_name,
		                   is_staff, is_superuser, is_active)
		VALUES (@username, @email, @password_hash, @first_name, @last_name,
		        @is_staff, @is_superuser, @is_active)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"username":      u.Username,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"is_staff":      u.IsStaff,
		"is_superuser":  u.IsSuperuser,
		"is_active":     u.IsActive,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", translateUnique(err))
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username = @username`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE username = @username)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.UserRepo.UsernameExists: %w", err)
	}
	return exists, nil
}

func (r *pgUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email <> '' AND lower(email) = lower(@email))`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.UserRepo.EmailExists: %w", err)
	}
	return exists, nil
}

func (r *pgUserRepo) UpdateContact(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		UPDATE users
		SET first_name = @first_name,
		    last_name  = @last_name,
		    email      = @email
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.UpdateContact: %w", translateUnique(err))
	}
	return result, nil
}

func (r *pgUserRepo) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	const q = `UPDATE users SET last_login = @at WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "at": at})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.TouchLastLogin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.TouchLastLogin: %w", domain.ErrNotFound)
	}
	return nil
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.IsStaff, &u.IsSuperuser, &u.IsActive, &u.DateJoined, &u.LastLogin)
	if err != nil {
		return domain.User{}, notFound(err)
	}
	return u, nil
}
