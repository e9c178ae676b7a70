package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5"
)

// SessionStore persists scs session data in the sessions table.
type SessionStore struct {
	db db
}

var _ scs.CtxStore = (*SessionStore)(nil)

// NewSessionStore constructs a SessionStore backed by the provided db connection.
func NewSessionStore(db db) *SessionStore {
	return &SessionStore{db: db}
}

// FindCtx returns the session data for token. Expired sessions are reported
// as not found.
func (s *SessionStore) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	const q = `SELECT data FROM sessions WHERE token = @token AND expiry > now()`

	var data []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token}).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("repo.SessionStore.Find: %w", err)
	}
	return data, true, nil
}

// CommitCtx inserts or replaces the session data for token.
func (s *SessionStore) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	const q = `
		INSERT INTO sessions (token, data, expiry)
		VALUES (@token, @data, @expiry)
		ON CONFLICT (token) DO UPDATE SET data = EXCLUDED.data, expiry = EXCLUDED.expiry`

	_, err := s.db.Exec(ctx, q, pgx.NamedArgs{"token": token, "data": b, "expiry": expiry})
	if err != nil {
		return fmt.Errorf("repo.SessionStore.Commit: %w", err)
	}
	return nil
}

// DeleteCtx removes token. Deleting an unknown token is not an error.
func (s *SessionStore) DeleteCtx(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token = @token`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"token": token}); err != nil {
		return fmt.Errorf("repo.SessionStore.Delete: %w", err)
	}
	return nil
}

func (s *SessionStore) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *SessionStore) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *SessionStore) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}

// DeleteExpired purges expired sessions and returns how many were removed.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expiry <= now()`)
	if err != nil {
		return 0, fmt.Errorf("repo.SessionStore.DeleteExpired: %w", err)
	}
	return tag.RowsAffected(), nil
}
