// Package repository defines the storage ports of the platform and the
// errors every implementation must surface. Uniqueness violations are
// enforced by the store itself (unique keys in MySQL, map membership in
// the memory implementations) and reported as ErrDuplicate; controllers
// never rely on their own check-then-insert alone.
package repository

import (
	"context"
	"errors"

	"github.com/mediarate/mediarate/pkg/model"
)

// ErrNotFound is returned when no row matches the given key.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// guarantee of the store.
var ErrDuplicate = errors.New("duplicate entry")

// MediaRepository stores catalog entries together with their genre tags.
type MediaRepository interface {
	// Create persists a new entry and its genres atomically, setting m.ID.
	Create(ctx context.Context, m *model.MediaEntry) error
	Get(ctx context.Context, id int64) (*model.MediaEntry, error)
	GetAll(ctx context.Context) ([]model.MediaEntry, error)
	Search(ctx context.Context, filter model.MediaFilter) ([]model.MediaEntry, error)
	// Update replaces the stored row and its genre set atomically.
	Update(ctx context.Context, m *model.MediaEntry) error
	Delete(ctx context.Context, id int64) error

	// RecommendByGenre returns every entry sharing a genre with media the
	// user rated at least 4 stars, excluding media the user already rated.
	RecommendByGenre(ctx context.Context, userID int64) ([]model.MediaEntry, error)
	// RecommendByContent narrows RecommendByGenre to entries whose
	// (mediaType, ageRestriction) pair also matches a highly rated entry.
	RecommendByContent(ctx context.Context, userID int64) ([]model.MediaEntry, error)
}

// RatingRepository stores ratings and their likes.
type RatingRepository interface {
	// Create persists a new rating, setting r.ID and r.CreatedAt.
	// Returns ErrDuplicate if the user already rated the media.
	Create(ctx context.Context, r *model.Rating) error
	Get(ctx context.Context, id int64) (*model.Rating, error)
	GetByMediaAndUser(ctx context.Context, mediaID, userID int64) (*model.Rating, error)
	Update(ctx context.Context, r *model.Rating) error
	Delete(ctx context.Context, id int64) error
	ConfirmComment(ctx context.Context, id int64) error
	// AddLike records a like; ErrDuplicate if the user already liked it.
	AddLike(ctx context.Context, ratingID, userID int64) error
	LikeCount(ctx context.Context, ratingID int64) (int64, error)
	FindByUser(ctx context.Context, userID int64) ([]model.Rating, error)

	CountByUser(ctx context.Context, userID int64) (int64, error)
	AverageByUser(ctx context.Context, userID int64) (float64, error)
	// Leaderboard lists every user with their rating count, most active
	// first. Users without ratings appear with a count of zero.
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
}

// FavoriteRepository stores the user/media favorite relation.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, mediaID int64) error
	Remove(ctx context.Context, userID, mediaID int64) error
	FindByUser(ctx context.Context, userID int64) ([]model.MediaEntry, error)
}

// UserRepository stores accounts.
type UserRepository interface {
	// Create persists a new user, setting u.ID. Returns ErrDuplicate if
	// the username is taken.
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, u *model.User) error
}
