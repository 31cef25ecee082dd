// Package favorite owns the user/media favorite relation.
package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
)

// Controller manages favorites. Add is deliberately not idempotent: a
// duplicate add is a conflict, not a no-op.
type Controller struct {
	repo repository.FavoriteRepository
}

// New creates a favorite controller.
func New(repo repository.FavoriteRepository) *Controller {
	return &Controller{repo: repo}
}

// Add marks a media entry as a favorite of the user.
func (c *Controller) Add(ctx context.Context, userID, mediaID int64) error {
	if err := c.repo.Add(ctx, userID, mediaID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("media is already a favorite: %w", errs.ErrConflict)
		}
		return fmt.Errorf("saving favorite: %w", errs.ErrUnavailable)
	}
	return nil
}

// Remove unmarks a favorite, failing if it was not set.
func (c *Controller) Remove(ctx context.Context, userID, mediaID int64) error {
	if err := c.repo.Remove(ctx, userID, mediaID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("favorite not found: %w", errs.ErrNotFound)
		}
		return fmt.Errorf("removing favorite: %w", errs.ErrUnavailable)
	}
	return nil
}

// ListForUser returns the full media entries the user marked as
// favorites.
func (c *Controller) ListForUser(ctx context.Context, userID int64) ([]model.MediaEntry, error) {
	entries, err := c.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", errs.ErrUnavailable)
	}
	return entries, nil
}
