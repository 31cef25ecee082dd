package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/mediarate/mediarate/internal/auth"
	"github.com/mediarate/mediarate/internal/controller/aggregation"
	"github.com/mediarate/mediarate/internal/controller/user"
	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/internal/repository/memory"
	"github.com/mediarate/mediarate/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	ctrl    *user.Controller
	ratings *memory.RatingRepository
	tokens  *auth.Manager
}

func newFixture() *fixture {
	users := memory.NewUserRepository()
	ratings := memory.NewRatingRepository(users)
	tokens := auth.NewManager([]byte("test-secret"), time.Hour)
	agg := aggregation.New(ratings, zap.NewNop())
	return &fixture{
		ctrl:    user.New(users, agg, tokens),
		ratings: ratings,
		tokens:  tokens,
	}
}

func TestRegister(t *testing.T) {
	f := newFixture()
	u, err := f.ctrl.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)

	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "secret", u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture()
	_, err := f.ctrl.Register(context.Background(), "", "secret")
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.ctrl.Register(context.Background(), "alice", "")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture()
	_, err := f.ctrl.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)

	_, err = f.ctrl.Register(context.Background(), "alice", "other")
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), "username already exists")
}

func TestLogin(t *testing.T) {
	f := newFixture()
	registered, err := f.ctrl.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)

	token, err := f.ctrl.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	id, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture()
	_, err := f.ctrl.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)

	// Unknown usernames and wrong passwords yield the same error.
	_, unknownErr := f.ctrl.Login(context.Background(), "bob", "secret")
	require.ErrorIs(t, unknownErr, errs.ErrForbidden)

	_, wrongErr := f.ctrl.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, wrongErr, errs.ErrForbidden)

	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestProfileIncludesStats(t *testing.T) {
	f := newFixture()
	u, err := f.ctrl.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, f.ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: u.ID, Stars: 4}))
	require.NoError(t, f.ratings.Create(ctx, &model.Rating{MediaID: 2, UserID: u.ID, Stars: 2}))

	profile, err := f.ctrl.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, int64(2), profile.TotalRatings)
	assert.InDelta(t, 3.0, profile.AverageScore, 1e-9)
}

func TestProfileNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.ctrl.Profile(context.Background(), 42)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	u, err := f.ctrl.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)

	email := "alice@example.com"
	require.NoError(t, f.ctrl.UpdateProfile(context.Background(), u.ID, model.ProfileUpdate{Email: &email}))

	genre := "SciFi"
	require.NoError(t, f.ctrl.UpdateProfile(context.Background(), u.ID, model.ProfileUpdate{FavoriteGenre: &genre}))

	profile, err := f.ctrl.Profile(context.Background(), u.ID)
	require.NoError(t, err)
	// Nil fields leave the stored value untouched.
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "SciFi", profile.FavoriteGenre)
}
