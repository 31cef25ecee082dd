// Package rating owns the rating ledger: ratings, their likes and the
// comment confirmation state.
package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/internal/event"
	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
	"go.uber.org/zap"
)

// Controller enforces the one-rating-per-user-and-media invariant and
// ownership on every mutation. Successful writes are announced on the
// event stream; publish failures are logged and never fail the write.
type Controller struct {
	repo     repository.RatingRepository
	producer event.Producer
	logger   *zap.Logger
}

// New creates a rating controller. Pass event.NopProducer when no
// broker is configured.
func New(repo repository.RatingRepository, producer event.Producer, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, producer: producer, logger: logger}
}

// Create stores a new rating. The duplicate check here gives a clean
// conflict message; the storage unique key keeps it correct under
// concurrent requests.
func (c *Controller) Create(ctx context.Context, mediaID, userID int64, stars int, comment string) (*model.Rating, error) {
	if err := validateStars(stars); err != nil {
		return nil, err
	}

	_, err := c.repo.GetByMediaAndUser(ctx, mediaID, userID)
	if err == nil {
		return nil, fmt.Errorf("you have already rated this media: %w", errs.ErrConflict)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading rating: %w", errs.ErrUnavailable)
	}

	rating := model.Rating{
		MediaID: mediaID,
		UserID:  userID,
		Stars:   stars,
		Comment: comment,
	}
	if err := c.repo.Create(ctx, &rating); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("you have already rated this media: %w", errs.ErrConflict)
		}
		return nil, fmt.Errorf("saving rating: %w", errs.ErrUnavailable)
	}
	c.publish(ctx, rating, model.RatingEventTypePut)
	return &rating, nil
}

// Update overwrites stars and comment. Only the author may update, and
// the changed comment always needs re-confirmation.
func (c *Controller) Update(ctx context.Context, ratingID, userID int64, stars int, comment string) (*model.Rating, error) {
	if err := validateStars(stars); err != nil {
		return nil, err
	}
	rating, err := c.ownRating(ctx, ratingID, userID, "only the author may update this rating")
	if err != nil {
		return nil, err
	}

	rating.Stars = stars
	rating.Comment = comment
	rating.CommentConfirmed = false
	if err := c.repo.Update(ctx, rating); err != nil {
		return nil, fmt.Errorf("updating rating: %w", errs.ErrUnavailable)
	}
	c.publish(ctx, *rating, model.RatingEventTypePut)
	return rating, nil
}

// Delete removes a rating. Only the author may delete.
func (c *Controller) Delete(ctx context.Context, ratingID, userID int64) error {
	rating, err := c.ownRating(ctx, ratingID, userID, "only the author may delete this rating")
	if err != nil {
		return err
	}
	if err := c.repo.Delete(ctx, ratingID); err != nil {
		return fmt.Errorf("deleting rating: %w", errs.ErrUnavailable)
	}
	c.publish(ctx, *rating, model.RatingEventTypeDelete)
	return nil
}

// ConfirmComment marks the comment as confirmed. The transition is
// one-way; only a later Update resets it.
func (c *Controller) ConfirmComment(ctx context.Context, ratingID, userID int64) error {
	if _, err := c.ownRating(ctx, ratingID, userID, "only the author may confirm the comment"); err != nil {
		return err
	}
	if err := c.repo.ConfirmComment(ctx, ratingID); err != nil {
		return fmt.Errorf("confirming comment: %w", errs.ErrUnavailable)
	}
	return nil
}

// Like records a like on someone else's rating. Authors cannot like
// their own ratings, and a second like from the same user conflicts.
func (c *Controller) Like(ctx context.Context, ratingID, userID int64) error {
	rating, err := c.get(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating.UserID == userID {
		return fmt.Errorf("you cannot like your own rating: %w", errs.ErrForbidden)
	}
	if err := c.repo.AddLike(ctx, ratingID, userID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("you have already liked this rating: %w", errs.ErrConflict)
		}
		return fmt.Errorf("saving like: %w", errs.ErrUnavailable)
	}
	return nil
}

// ByUser returns a user's rating history, newest first.
func (c *Controller) ByUser(ctx context.Context, userID int64) ([]model.Rating, error) {
	ratings, err := c.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading ratings: %w", errs.ErrUnavailable)
	}
	return ratings, nil
}

func (c *Controller) get(ctx context.Context, ratingID int64) (*model.Rating, error) {
	rating, err := c.repo.Get(ctx, ratingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("rating not found: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("loading rating: %w", errs.ErrUnavailable)
	}
	return rating, nil
}

// ownRating loads a rating and checks the caller authored it. The
// existence check runs first so NotFound wins over Forbidden.
func (c *Controller) ownRating(ctx context.Context, ratingID, userID int64, denial string) (*model.Rating, error) {
	rating, err := c.get(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if rating.UserID != userID {
		return nil, fmt.Errorf("%s: %w", denial, errs.ErrForbidden)
	}
	return rating, nil
}

func (c *Controller) publish(ctx context.Context, rating model.Rating, eventType model.RatingEventType) {
	err := c.producer.Publish(ctx, model.RatingEvent{Rating: rating, EventType: eventType})
	if err != nil {
		c.logger.Warn("Failed to publish rating event",
			zap.Int64("ratingId", rating.ID),
			zap.String("eventType", string(eventType)),
			zap.Error(err))
	}
}

func validateStars(stars int) error {
	if stars < 1 || stars > 5 {
		return fmt.Errorf("stars must be between 1 and 5: %w", errs.ErrValidation)
	}
	return nil
}
