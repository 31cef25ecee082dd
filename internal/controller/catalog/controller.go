// Package catalog owns media entries and their genre tags.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
)

// Controller implements create, lookup, search and owner-scoped
// mutation of catalog entries.
type Controller struct {
	repo repository.MediaRepository
}

// New creates a catalog controller.
func New(repo repository.MediaRepository) *Controller {
	return &Controller{repo: repo}
}

// Create validates and stores a new media entry. The creator is always
// the authenticated caller, never taken from the input.
func (c *Controller) Create(ctx context.Context, entry model.MediaEntry, creatorID int64) (*model.MediaEntry, error) {
	if entry.Title == "" {
		return nil, fmt.Errorf("title is required: %w", errs.ErrValidation)
	}
	if entry.MediaType == "" {
		return nil, fmt.Errorf("media type is required (MOVIE, SERIES, GAME): %w", errs.ErrValidation)
	}
	mediaType, err := normalizeMediaType(entry.MediaType)
	if err != nil {
		return nil, err
	}
	genres := normalizeGenres(entry.Genres)
	if len(genres) == 0 {
		return nil, fmt.Errorf("at least one genre is required: %w", errs.ErrValidation)
	}

	entry.MediaType = mediaType
	entry.Genres = genres
	entry.CreatorID = creatorID
	if err := c.repo.Create(ctx, &entry); err != nil {
		return nil, fmt.Errorf("saving media: %w", errs.ErrUnavailable)
	}
	return &entry, nil
}

// Get retrieves a media entry by id.
func (c *Controller) Get(ctx context.Context, id int64) (*model.MediaEntry, error) {
	entry, err := c.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("media not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("loading media: %w", errs.ErrUnavailable)
	}
	return entry, nil
}

// GetAll returns every media entry.
func (c *Controller) GetAll(ctx context.Context) ([]model.MediaEntry, error) {
	entries, err := c.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading media: %w", errs.ErrUnavailable)
	}
	return entries, nil
}

// Search returns the entries matching every given predicate, in the
// requested order.
func (c *Controller) Search(ctx context.Context, filter model.MediaFilter) ([]model.MediaEntry, error) {
	entries, err := c.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("searching media: %w", errs.ErrUnavailable)
	}
	return entries, nil
}

// Update applies a partial patch. Only the creator may update; fields
// keep their stored value unless the patch supplies a replacement.
func (c *Controller) Update(ctx context.Context, id int64, patch model.MediaPatch, userID int64) (*model.MediaEntry, error) {
	entry, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.CreatorID != userID {
		return nil, fmt.Errorf("only the creator may update this media: %w", errs.ErrForbidden)
	}

	if patch.Title != nil && *patch.Title != "" {
		entry.Title = *patch.Title
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.MediaType != nil && *patch.MediaType != "" {
		mediaType, err := normalizeMediaType(*patch.MediaType)
		if err != nil {
			return nil, err
		}
		entry.MediaType = mediaType
	}
	if patch.ReleaseYear != nil && *patch.ReleaseYear != 0 {
		entry.ReleaseYear = *patch.ReleaseYear
	}
	if genres := normalizeGenres(patch.Genres); len(genres) > 0 {
		entry.Genres = genres
	}
	if patch.AgeRestriction != nil && *patch.AgeRestriction != 0 {
		entry.AgeRestriction = *patch.AgeRestriction
	}

	if err := c.repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("updating media: %w", errs.ErrUnavailable)
	}
	return entry, nil
}

// Delete removes a media entry. Only the creator may delete.
func (c *Controller) Delete(ctx context.Context, id, userID int64) error {
	entry, err := c.Get(ctx, id)
	if err != nil {
		return err
	}
	if entry.CreatorID != userID {
		return fmt.Errorf("only the creator may delete this media: %w", errs.ErrForbidden)
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting media: %w", errs.ErrUnavailable)
	}
	return nil
}

// normalizeMediaType upper-cases the type and checks it against the
// known set.
func normalizeMediaType(mediaType string) (string, error) {
	t := strings.ToUpper(mediaType)
	if !model.ValidMediaType(t) {
		return "", fmt.Errorf("media type must be MOVIE, SERIES or GAME: %w", errs.ErrValidation)
	}
	return t, nil
}

// normalizeGenres trims every entry and drops blank ones.
func normalizeGenres(genres []string) []string {
	var normalized []string
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g != "" {
			normalized = append(normalized, g)
		}
	}
	return normalized
}
