package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
)

const ratingColumns = `r.id, r.media_id, r.user_id, r.stars, r.comment, r.comment_confirmed, r.created_at,
	(SELECT COUNT(*) FROM rating_likes l WHERE l.rating_id = r.id)`

// RatingRepository stores ratings and likes in MySQL.
type RatingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a MySQL-backed rating store.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create inserts a rating. The unique key on (media_id, user_id) is the
// race-safe guarantee behind the controller's duplicate check.
func (r *RatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	rating.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ratings (media_id, user_id, stars, comment, comment_confirmed, created_at)
		 VALUES (?, ?, ?, ?, FALSE, ?)`,
		rating.MediaID, rating.UserID, rating.Stars, rating.Comment, rating.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rating.ID = id
	rating.CommentConfirmed = false
	return nil
}

// Get retrieves a rating with its like count.
func (r *RatingRepository) Get(ctx context.Context, id int64) (*model.Rating, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ratingColumns+" FROM ratings r WHERE r.id = ?", id)
	return scanRating(row)
}

// GetByMediaAndUser retrieves the rating a user gave a media entry.
func (r *RatingRepository) GetByMediaAndUser(ctx context.Context, mediaID, userID int64) (*model.Rating, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ratingColumns+" FROM ratings r WHERE r.media_id = ? AND r.user_id = ?", mediaID, userID)
	return scanRating(row)
}

// Update overwrites stars, comment and confirmation state.
func (r *RatingRepository) Update(ctx context.Context, rating *model.Rating) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE ratings SET stars = ?, comment = ?, comment_confirmed = ? WHERE id = ?",
		rating.Stars, rating.Comment, rating.CommentConfirmed, rating.ID)
	return err
}

// Delete removes a rating; its likes cascade.
func (r *RatingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ratings WHERE id = ?", id)
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

// ConfirmComment flips the confirmation flag to true.
func (r *RatingRepository) ConfirmComment(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE ratings SET comment_confirmed = TRUE WHERE id = ?", id)
	return err
}

// AddLike records a like. The unique key on (rating_id, user_id) makes
// a second like from the same user a duplicate.
func (r *RatingRepository) AddLike(ctx context.Context, ratingID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO rating_likes (rating_id, user_id) VALUES (?, ?)", ratingID, userID)
	if isDuplicate(err) {
		return repository.ErrDuplicate
	}
	return err
}

// LikeCount returns the number of likes for a rating.
func (r *RatingRepository) LikeCount(ctx context.Context, ratingID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rating_likes WHERE rating_id = ?", ratingID).Scan(&n)
	return n, err
}

// FindByUser returns a user's ratings, newest first.
func (r *RatingRepository) FindByUser(ctx context.Context, userID int64) ([]model.Rating, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+ratingColumns+" FROM ratings r WHERE r.user_id = ? ORDER BY r.created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []model.Rating{}
	for rows.Next() {
		rating, err := scanRatingRow(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, *rating)
	}
	return ratings, rows.Err()
}

// CountByUser returns the number of ratings a user has written.
func (r *RatingRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ratings WHERE user_id = ?", userID).Scan(&n)
	return n, err
}

// AverageByUser returns the mean star value of a user's ratings, or 0
// when the user has none.
func (r *RatingRepository) AverageByUser(ctx context.Context, userID int64) (float64, error) {
	var avg float64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(stars), 0) FROM ratings WHERE user_id = ?", userID).Scan(&avg)
	return avg, err
}

// Leaderboard lists every user with their rating count, most active
// first. The outer join keeps users without any ratings.
func (r *RatingRepository) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, COUNT(r.id) AS rating_count
		 FROM users u
		 LEFT JOIN ratings r ON r.user_id = u.id
		 GROUP BY u.id, u.username
		 ORDER BY rating_count DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.RatingCount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanRating(row *sql.Row) (*model.Rating, error) {
	rating, err := scanRatingRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return rating, err
}

func scanRatingRow(row rowScanner) (*model.Rating, error) {
	var rating model.Rating
	err := row.Scan(&rating.ID, &rating.MediaID, &rating.UserID, &rating.Stars,
		&rating.Comment, &rating.CommentConfirmed, &rating.CreatedAt, &rating.Likes)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
