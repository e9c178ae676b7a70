package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/travelxplore/site/internal/domain"
)

// MessageScope restricts message queries to the rows a viewer may see.
type MessageScope struct {
	OwnerID int64
	All     bool
}

// ScopeFor returns the scope of u: staff see every message, everyone else
// only the messages they sent.
func ScopeFor(u domain.User) MessageScope {
	return MessageScope{OwnerID: u.ID, All: u.IsStaff}
}

func (s MessageScope) args() pgx.NamedArgs {
	return pgx.NamedArgs{"user_id": s.OwnerID, "all": s.All}
}

func (s MessageScope) argsWithID(id int64) pgx.NamedArgs {
	args := s.args()
	args["id"] = id
	return args
}

// MessageRepo defines the persistence operations for contact messages.
type MessageRepo interface {
	Create(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error)

	// List returns the messages visible in scope, newest first.
	List(ctx context.Context, scope MessageScope) ([]domain.ContactMessage, error)

	GetByID(ctx context.Context, scope MessageScope, id int64) (domain.ContactMessage, error)

	// MarkRead sets is_read and returns the updated row in one statement.
	// Rows outside scope are left untouched and reported as domain.ErrNotFound.
	MarkRead(ctx context.Context, scope MessageScope, id int64) (domain.ContactMessage, error)

	Delete(ctx context.Context, scope MessageScope, id int64) error
}

type pgMessageRepo struct {
	db db
}

// NewMessageRepo constructs a MessageRepo backed by the provided db connection.
func NewMessageRepo(db db) MessageRepo {
	return &pgMessageRepo{db: db}
}

const messageColumns = `id, user_id, name, email, phone, subject, message, created_at, is_read`

// inScope is appended to every per-row query.
const inScope = `(@all::boolean OR user_id = @user_id)`

func (r *pgMessageRepo) Create(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	const q = `
		INSERT INTO contact_messages (user_id, name, email, phone, subject, message)
		VALUES (@user_id, @name, @email, @phone, @subject, @message)
		RETURNING ` + messageColumns

	args := pgx.NamedArgs{
		"user_id": m.UserID,
		"name":    m.Name,
		"email":   m.Email,
		"phone":   m.Phone,
		"subject": m.Subject,
		"message": m.Message,
	}

	result, err := scanMessage(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("repo.MessageRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMessageRepo) List(ctx context.Context, scope MessageScope) ([]domain.ContactMessage, error) {
	const q = `
		SELECT ` + messageColumns + `
		FROM contact_messages
		WHERE ` + inScope + `
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, scope.args())
	if err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.List: %w", err)
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MessageRepo.List: scan: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.List: rows: %w", err)
	}
	return messages, nil
}

func (r *pgMessageRepo) GetByID(ctx context.Context, scope MessageScope, id int64) (domain.ContactMessage, error) {
	const q = `
		SELECT ` + messageColumns + `
		FROM contact_messages
		WHERE id = @id AND ` + inScope

	result, err := scanMessage(r.db.QueryRow(ctx, q, scope.argsWithID(id)))
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("repo.MessageRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgMessageRepo) MarkRead(ctx context.Context, scope MessageScope, id int64) (domain.ContactMessage, error) {
	const q = `
		UPDATE contact_messages
		SET is_read = true
		WHERE id = @id AND ` + inScope + `
		RETURNING ` + messageColumns

	result, err := scanMessage(r.db.QueryRow(ctx, q, scope.argsWithID(id)))
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("repo.MessageRepo.MarkRead: %w", err)
	}
	return result, nil
}

func (r *pgMessageRepo) Delete(ctx context.Context, scope MessageScope, id int64) error {
	const q = `DELETE FROM contact_messages WHERE id = @id AND ` + inScope

	tag, err := r.db.Exec(ctx, q, scope.argsWithID(id))
	if err != nil {
		return fmt.Errorf("repo.MessageRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.MessageRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanMessage(s scanner) (domain.ContactMessage, error) {
	var m domain.ContactMessage
	err := s.Scan(&m.ID, &m.UserID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.CreatedAt, &m.IsRead)
	if err != nil {
		return domain.ContactMessage{}, notFound(err)
	}
	return m, nil
}
