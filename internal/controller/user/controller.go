// Package user owns accounts: registration, login and profiles.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
	"golang.org/x/crypto/bcrypt"
)

// tokenIssuer signs a bearer token for an authenticated user.
type tokenIssuer interface {
	Issue(u model.User) (string, error)
}

// statsProvider supplies the derived rating figures for a profile.
// It never fails; a degraded source yields zero values.
type statsProvider interface {
	StatsForUser(ctx context.Context, userID int64) model.UserStats
}

// Controller manages accounts. All collaborators are required; wire an
// aggregation controller backed by the rating store for stats.
type Controller struct {
	repo   repository.UserRepository
	stats  statsProvider
	tokens tokenIssuer
}

// New creates a user controller.
func New(repo repository.UserRepository, stats statsProvider, tokens tokenIssuer) *Controller {
	return &Controller{repo: repo, stats: stats, tokens: tokens}
}

// Register creates a new account with a hashed password.
func (c *Controller) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", errs.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("password is required: %w", errs.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", errs.ErrUnavailable)
	}
	u := model.User{Username: username, PasswordHash: string(hash)}
	if err := c.repo.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("username already exists: %w", errs.ErrConflict)
		}
		return nil, fmt.Errorf("saving user: %w", errs.ErrUnavailable)
	}
	return &u, nil
}

// Login verifies the credentials and returns a signed bearer token.
// Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (c *Controller) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username is required: %w", errs.ErrValidation)
	}
	if password == "" {
		return "", fmt.Errorf("password is required: %w", errs.ErrValidation)
	}

	u, err := c.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("invalid credentials: %w", errs.ErrForbidden)
		}
		return "", fmt.Errorf("loading user: %w", errs.ErrUnavailable)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", fmt.Errorf("invalid credentials: %w", errs.ErrForbidden)
	}

	token, err := c.tokens.Issue(*u)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", errs.ErrUnavailable)
	}
	return token, nil
}

// Profile returns the account fields together with the derived rating
// statistics.
func (c *Controller) Profile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	u, err := c.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("loading user: %w", errs.ErrUnavailable)
	}

	stats := c.stats.StatsForUser(ctx, userID)
	return &model.UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FavoriteGenre: u.FavoriteGenre,
		TotalRatings:  stats.TotalRatings,
		AverageScore:  stats.AverageScore,
	}, nil
}

// UpdateProfile changes the mutable profile fields. Nil fields keep
// their stored value.
func (c *Controller) UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) error {
	u, err := c.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user not found: %w", errs.ErrNotFound)
		}
		return fmt.Errorf("loading user: %w", errs.ErrUnavailable)
	}

	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.FavoriteGenre != nil {
		u.FavoriteGenre = *update.FavoriteGenre
	}
	if err := c.repo.UpdateProfile(ctx, u); err != nil {
		return fmt.Errorf("updating profile: %w", errs.ErrUnavailable)
	}
	return nil
}
