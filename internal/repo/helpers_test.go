package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/repo"
	"github.com/travelxplore/site/testutil"
)

func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// createUser inserts a regular user inside tx.
func createUser(t *testing.T, tx pgx.Tx, username string) domain.User {
	t.Helper()
	u, err := repo.NewUserRepo(tx).Create(context.Background(), domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	})
	require.NoError(t, err, "create user %q", username)
	return u
}
