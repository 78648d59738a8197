package test_utils

import (
	"context"
	"testing"

	"github.com/finboard/finboard/pkg/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestUser stores a user with a random uid and returns it.
func CreateTestUser(t *testing.T, db *pgxpool.Pool) user.User {
	t.Helper()
	u := user.User{
		Uid:         uuid.NewString(),
		Username:    "test_" + uuid.NewString(),
		DisplayName: "Test User",
	}
	id, err := user.NewUserRepo(db).CreateUser(context.Background(), u)
	require.NoError(t, err)
	u.Id = id
	return u
}

// ContextWithUser returns a background context carrying u as the current user.
func ContextWithUser(u user.User) context.Context {
	return user.WithUser(context.Background(), u)
}
