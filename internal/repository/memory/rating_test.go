package memory

import (
	"context"
	"testing"

	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEnforcesUniquePair(t *testing.T) {
	ratings := NewRatingRepository(NewUserRepository())
	ctx := context.Background()

	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: 1, Stars: 4}))

	err := ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: 1, Stars: 2})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 2, UserID: 1, Stars: 4}))
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: 2, Stars: 4}))
}

func TestDeleteFreesPair(t *testing.T) {
	ratings := NewRatingRepository(NewUserRepository())
	ctx := context.Background()

	r := model.Rating{MediaID: 1, UserID: 1, Stars: 4}
	require.NoError(t, ratings.Create(ctx, &r))
	require.NoError(t, ratings.AddLike(ctx, r.ID, 2))
	require.NoError(t, ratings.Delete(ctx, r.ID))

	require.ErrorIs(t, ratings.Delete(ctx, r.ID), repository.ErrNotFound)

	// Pair and likes are gone.
	_, err := ratings.GetByMediaAndUser(ctx, 1, 1)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: 1, Stars: 3}))
}

func TestLikes(t *testing.T) {
	ratings := NewRatingRepository(NewUserRepository())
	ctx := context.Background()

	r := model.Rating{MediaID: 1, UserID: 1, Stars: 4}
	require.NoError(t, ratings.Create(ctx, &r))

	require.ErrorIs(t, ratings.AddLike(ctx, 99, 2), repository.ErrNotFound)
	require.NoError(t, ratings.AddLike(ctx, r.ID, 2))
	require.ErrorIs(t, ratings.AddLike(ctx, r.ID, 2), repository.ErrDuplicate)
	require.NoError(t, ratings.AddLike(ctx, r.ID, 3))

	n, err := ratings.LikeCount(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := ratings.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Likes)
}

func TestLeaderboardOrdering(t *testing.T) {
	users := NewUserRepository()
	ratings := NewRatingRepository(users)
	ctx := context.Background()

	alice := model.User{Username: "alice"}
	bob := model.User{Username: "bob"}
	carol := model.User{Username: "carol"}
	for _, u := range []*model.User{&alice, &bob, &carol} {
		require.NoError(t, users.Create(ctx, u))
	}

	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: bob.ID, Stars: 4}))
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 2, UserID: bob.ID, Stars: 4}))
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: carol.ID, Stars: 4}))

	entries, err := ratings.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, int64(2), entries[0].RatingCount)
	assert.Equal(t, "carol", entries[1].Username)
	// Users without ratings still appear, with a zero count.
	assert.Equal(t, "alice", entries[2].Username)
	assert.Equal(t, int64(0), entries[2].RatingCount)

	var total int64
	for _, e := range entries {
		total += e.RatingCount
	}
	assert.Equal(t, int64(3), total)
}
