package savings_goal

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/finboard/finboard/internal/test_utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	u := test_utils.CreateTestUser(t, db)
	return context.Background(), NewRepository(db), u.Id
}

func TestRepositoryImpl_CreateAndGet(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)

	created, err := repo.Create(ctx, userId, vacation())
	require.NoError(t, err)

	stored, err := repo.Get(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Goa trip", stored.Title)
	assert.Equal(t, Vacation, stored.Category)
	assert.Equal(t, 60000.0, stored.TargetAmount)
	assert.True(t, stored.TargetDate.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRepositoryImpl_ListNewestFirst(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)
	for _, title := range []string{"First", "Second"} {
		g := vacation()
		g.Title = title
		_, err := repo.Create(ctx, userId, g)
		require.NoError(t, err)
	}

	goals, err := repo.List(ctx, userId)

	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "Second", goals[0].Title)
}

func TestRepositoryImpl_UpdateAndDelete(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)
	_, _, otherUserId := setupTestRepository(t)
	created, err := repo.Create(ctx, userId, vacation())
	require.NoError(t, err)

	changed := created
	changed.CurrentAmount = 30000
	_, err = repo.Update(ctx, otherUserId, changed)
	assert.ErrorIs(t, err, ErrSavingsGoalNotFound)

	updated, err := repo.Update(ctx, userId, changed)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, updated.CurrentAmount)

	deleted, err := repo.Delete(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
}
