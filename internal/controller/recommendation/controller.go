// Package recommendation derives media suggestions from a user's
// rating history.
package recommendation

import (
	"context"
	"fmt"

	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
)

// Controller computes the genre- and content-affinity suggestions.
// Both are pure reads; for a user with no rating of 4 stars or more
// they are empty.
type Controller struct {
	repo repository.MediaRepository
}

// New creates a recommendation controller.
func New(repo repository.MediaRepository) *Controller {
	return &Controller{repo: repo}
}

// ByGenre suggests unrated media that share a genre with media the user
// rated at least 4 stars.
func (c *Controller) ByGenre(ctx context.Context, userID int64) ([]model.MediaEntry, error) {
	entries, err := c.repo.RecommendByGenre(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("computing genre recommendations: %w", errs.ErrUnavailable)
	}
	return entries, nil
}

// ByContent narrows ByGenre to media whose type and age restriction
// also match a highly rated entry. Its results are always a subset of
// ByGenre's.
func (c *Controller) ByContent(ctx context.Context, userID int64) ([]model.MediaEntry, error) {
	entries, err := c.repo.RecommendByContent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("computing content recommendations: %w", errs.ErrUnavailable)
	}
	return entries, nil
}
