package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocuz/vocuz/internal/testutil"
)

func missionTestSetup(t *testing.T) (*SQLiteMissionRepo, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, database)
	return NewSQLiteMissionRepo(database), user.ID
}

func TestMissionRepo_CreateAndGetByID(t *testing.T) {
	repo, userID := missionTestSetup(t)
	ctx := context.Background()

	m := testutil.NewTestMission(userID, "Write report")
	require.NoError(t, repo.Create(ctx, m))

	fetched, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", fetched.Title)
	assert.Equal(t, userID, fetched.UserID)
	assert.False(t, fetched.IsCompleted)
	assert.WithinDuration(t, m.CreatedAt, fetched.CreatedAt, time.Microsecond)
}

func TestMissionRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := missionTestSetup(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMissionRepo_BlankTitleRejectedBySchema(t *testing.T) {
	repo, userID := missionTestSetup(t)

	err := repo.Create(context.Background(), testutil.NewTestMission(userID, "   "))
	assert.Error(t, err)
}

func TestMissionRepo_SelectPendingInCreationOrder(t *testing.T) {
	repo, userID := missionTestSetup(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	a := testutil.NewTestMission(userID, "A", testutil.WithMissionCreatedAt(base))
	b := testutil.NewTestMission(userID, "B", testutil.WithMissionCreatedAt(base.Add(time.Minute)), testutil.WithCompleted(true))
	c := testutil.NewTestMission(userID, "C", testutil.WithMissionCreatedAt(base.Add(2*time.Minute)))
	// Inserted out of order on purpose.
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	pending, err := repo.Select(ctx, PendingFilter(userID), OrderCreatedAsc)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "A", pending[0].Title)
	assert.Equal(t, "C", pending[1].Title)

	all, err := repo.Select(ctx, MissionFilter{UserID: userID}, OrderCreatedDesc)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{all[0].Title, all[1].Title, all[2].Title})
}

func TestMissionRepo_SelectSameTimestampKeepsInsertionOrder(t *testing.T) {
	repo, userID := missionTestSetup(t)
	ctx := context.Background()
	ts := time.Now().UTC()

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestMission(userID, title, testutil.WithMissionCreatedAt(ts))))
	}

	list, err := repo.Select(ctx, PendingFilter(userID), OrderCreatedAsc)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "third", list[2].Title)
}

func TestMissionRepo_SelectScopedToUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteMissionRepo(database)
	ctx := context.Background()
	alice := testutil.SeedUser(t, database)
	bob := testutil.SeedUser(t, database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestMission(alice.ID, "alice's")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestMission(bob.ID, "bob's")))

	list, err := repo.Select(ctx, MissionFilter{UserID: bob.ID}, OrderCreatedAsc)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob's", list[0].Title)
}

func TestMissionRepo_UpdatePatch(t *testing.T) {
	repo, userID := missionTestSetup(t)
	ctx := context.Background()
	m := testutil.NewTestMission(userID, "Old", testutil.WithMissionCreatedAt(time.Now().UTC().Add(-time.Hour)))
	require.NoError(t, repo.Create(ctx, m))

	done := true
	require.NoError(t, repo.Update(ctx, m.ID, MissionPatch{IsCompleted: &done}))

	fetched, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsCompleted)
	assert.Equal(t, "Old", fetched.Title)
	assert.True(t, fetched.UpdatedAt.After(m.UpdatedAt))

	title := "New"
	require.NoError(t, repo.Update(ctx, m.ID, MissionPatch{Title: &title}))
	fetched, err = repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Title)
	assert.True(t, fetched.IsCompleted)
}

func TestMissionRepo_UpdateMissing(t *testing.T) {
	repo, _ := missionTestSetup(t)
	done := true

	err := repo.Update(context.Background(), "missing", MissionPatch{IsCompleted: &done})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMissionRepo_EmptyPatchIsNoop(t *testing.T) {
	repo, _ := missionTestSetup(t)

	assert.NoError(t, repo.Update(context.Background(), "missing", MissionPatch{}))
}

func TestMissionRepo_Delete(t *testing.T) {
	repo, userID := missionTestSetup(t)
	ctx := context.Background()
	m := testutil.NewTestMission(userID, "Gone soon")
	require.NoError(t, repo.Create(ctx, m))

	require.NoError(t, repo.Delete(ctx, m.ID))
	_, err := repo.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, m.ID), ErrNotFound)
}
