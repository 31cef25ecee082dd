package aggregation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mediarate/mediarate/gen/mocks"
	"github.com/mediarate/mediarate/internal/controller/aggregation"
	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/internal/repository/memory"
	"github.com/mediarate/mediarate/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func seed(t *testing.T) (*aggregation.Controller, *memory.UserRepository, *memory.RatingRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	ratings := memory.NewRatingRepository(users)
	return aggregation.New(ratings, zap.NewNop()), users, ratings
}

func TestStatsForUser(t *testing.T) {
	c, _, ratings := seed(t)
	ctx := context.Background()

	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: 7, Stars: 4}))
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 2, UserID: 7, Stars: 5}))
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: 8, Stars: 1}))

	stats := c.StatsForUser(ctx, 7)
	assert.Equal(t, int64(2), stats.TotalRatings)
	assert.InDelta(t, 4.5, stats.AverageScore, 1e-9)
}

func TestStatsForUserWithoutRatings(t *testing.T) {
	c, _, _ := seed(t)
	stats := c.StatsForUser(context.Background(), 7)
	assert.Equal(t, model.UserStats{}, stats)
}

func TestStatsDegradeToZeroOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRatingRepository(ctrl)
	c := aggregation.New(repo, zap.NewNop())

	repo.EXPECT().CountByUser(gomock.Any(), int64(7)).Return(int64(0), errors.New("storage down"))

	stats := c.StatsForUser(context.Background(), 7)
	assert.Equal(t, model.UserStats{}, stats)
}

func TestStatsDegradeToZeroOnAverageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRatingRepository(ctrl)
	c := aggregation.New(repo, zap.NewNop())

	repo.EXPECT().CountByUser(gomock.Any(), int64(7)).Return(int64(3), nil)
	repo.EXPECT().AverageByUser(gomock.Any(), int64(7)).Return(0.0, errors.New("storage down"))

	stats := c.StatsForUser(context.Background(), 7)
	assert.Equal(t, model.UserStats{}, stats)
}

func TestLeaderboardIncludesUsersWithoutRatings(t *testing.T) {
	c, users, ratings := seed(t)
	ctx := context.Background()

	active := model.User{Username: "active"}
	quiet := model.User{Username: "quiet"}
	require.NoError(t, users.Create(ctx, &active))
	require.NoError(t, users.Create(ctx, &quiet))

	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: active.ID, Stars: 4}))
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 2, UserID: active.ID, Stars: 2}))

	entries, err := c.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "active", entries[0].Username)
	assert.Equal(t, int64(2), entries[0].RatingCount)
	assert.Equal(t, "quiet", entries[1].Username)
	assert.Equal(t, int64(0), entries[1].RatingCount)
}

func TestLeaderboardFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRatingRepository(ctrl)
	c := aggregation.New(repo, zap.NewNop())

	repo.EXPECT().Leaderboard(gomock.Any()).Return(nil, errors.New("storage down"))

	_, err := c.Leaderboard(context.Background())
	require.ErrorIs(t, err, errs.ErrUnavailable)
}
