package mysql

import (
	"context"
	"database/sql"

	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
)

// FavoriteRepository stores the user/media favorite relation in MySQL.
type FavoriteRepository struct {
	db    *sql.DB
	media *MediaRepository
}

// NewFavoriteRepository creates a MySQL-backed favorite store.
func NewFavoriteRepository(db *sql.DB, media *MediaRepository) *FavoriteRepository {
	return &FavoriteRepository{db: db, media: media}
}

// Add records a favorite. The unique key on (user_id, media_id) makes a
// second add for the same pair a duplicate, not a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, mediaID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, media_id) VALUES (?, ?)", userID, mediaID)
	if isDuplicate(err) {
		return repository.ErrDuplicate
	}
	return err
}

// Remove deletes a favorite, failing if the pair is absent.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, mediaID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND media_id = ?", userID, mediaID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FindByUser returns the full media entries a user marked as favorite.
func (r *FavoriteRepository) FindByUser(ctx context.Context, userID int64) ([]model.MediaEntry, error) {
	query := `SELECT ` + mediaColumns + `
		FROM media_entries m
		JOIN favorites f ON f.media_id = m.id
		WHERE f.user_id = ?
		ORDER BY m.id`
	return r.media.queryMedia(ctx, query, userID)
}
