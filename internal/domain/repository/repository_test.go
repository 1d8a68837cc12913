package repository

import (
	"context"
	"testing"
	"time"

	"runboard/internal/common"
	"runboard/internal/domain/model"
	"runboard/internal/platform/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func TestUserRepositoryCreateWithProfile(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	user := &model.User{Username: "kid", Email: "kid@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, users.Create(ctx, user))
	require.NotZero(t, user.ID)

	profile, err := users.FindProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, profile.Bio)

	found, err := users.FindByUsername(ctx, "kid")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserRepositoryDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	require.NoError(t, users.Create(ctx, &model.User{Username: "kid", Email: "a@example.com", PasswordHash: "x", Role: model.RoleUser}))
	err := users.Create(ctx, &model.User{Username: "kid", Email: "b@example.com", PasswordHash: "x", Role: model.RoleUser})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestUserRepositoryUpdateRole(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	user := &model.User{Username: "kid", Email: "kid@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, users.Create(ctx, user))

	require.NoError(t, users.UpdateRole(ctx, user.ID, model.RoleAdmin))
	found, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, found.Role)

	assert.ErrorIs(t, users.UpdateRole(ctx, 999, model.RoleAdmin), common.ErrNotFound)
}

func TestListWithApprovedRunsFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	challenges := NewChallengeRepository(db)
	runs := NewRunRepository(db)

	user := &model.User{Username: "kid", Email: "kid@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, users.Create(ctx, user))
	easy := &model.Challenge{Name: "Easy", Slug: "easy", Difficulty: 2, League: "bronze"}
	hard := &model.Challenge{Name: "Hard", Slug: "hard", Difficulty: 9, League: "gold"}
	require.NoError(t, challenges.Create(ctx, easy))
	require.NoError(t, challenges.Create(ctx, hard))

	first := &model.Run{UserID: user.ID, ChallengeID: easy.ID, VideoURL: "https://v.test/1", Status: model.RunStatusPending}
	second := &model.Run{UserID: user.ID, ChallengeID: hard.ID, VideoURL: "https://v.test/2", Status: model.RunStatusPending}
	require.NoError(t, runs.Create(ctx, first))
	require.NoError(t, runs.Create(ctx, second))

	now := time.Now()
	require.NoError(t, runs.UpdateStatus(ctx, first.ID, model.RunStatusApproved, &now))

	loaded, err := users.ListWithApprovedRuns(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Len(t, loaded[0].Runs, 1)
	assert.Equal(t, first.ID, loaded[0].Runs[0].ID)
	assert.Equal(t, "bronze", loaded[0].Runs[0].Challenge.League)
}

func TestRunRepositoryRecentAndStatus(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	challenges := NewChallengeRepository(db)
	runs := NewRunRepository(db)

	user := &model.User{Username: "kid", Email: "kid@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, users.Create(ctx, user))
	ch := &model.Challenge{Name: "Any%", Slug: "any", Difficulty: 4, League: "silver"}
	require.NoError(t, challenges.Create(ctx, ch))

	var ids []uint
	for i := 0; i < 3; i++ {
		run := &model.Run{UserID: user.ID, ChallengeID: ch.ID, VideoURL: "https://v.test/x", Status: model.RunStatusPending}
		require.NoError(t, runs.Create(ctx, run))
		ids = append(ids, run.ID)
	}

	recent, err := runs.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, "kid", recent[0].User.Username)
	assert.Equal(t, "Any%", recent[0].Challenge.Name)

	err = runs.UpdateStatus(ctx, 12345, model.RunStatusApproved, nil)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = runs.FindByID(ctx, 12345)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDiscussionRepositoryComments(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	discussions := NewDiscussionRepository(db)

	user := &model.User{Username: "kid", Email: "kid@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, users.Create(ctx, user))

	a := &model.Discussion{Title: "Routes", Content: "...", AuthorID: user.ID}
	b := &model.Discussion{Title: "Glitches", Content: "...", AuthorID: user.ID}
	require.NoError(t, discussions.Create(ctx, a))
	require.NoError(t, discussions.Create(ctx, b))

	root := &model.Comment{Content: "first", AuthorID: user.ID, DiscussionID: a.ID}
	require.NoError(t, discussions.CreateComment(ctx, root))
	reply := &model.Comment{Content: "reply", AuthorID: user.ID, DiscussionID: a.ID, ParentID: &root.ID}
	require.NoError(t, discussions.CreateComment(ctx, reply))

	counts, err := discussions.CountComments(ctx, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[a.ID])
	assert.Equal(t, int64(0), counts[b.ID])

	comments, err := discussions.ListComments(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "kid", comments[1].Author.Username)
	require.NotNil(t, comments[1].ParentID)
	assert.Equal(t, root.ID, *comments[1].ParentID)

	recent, err := discussions.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, b.ID, recent[0].ID)
}
