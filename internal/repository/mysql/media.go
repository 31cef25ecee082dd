package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
)

const mediaColumns = "m.id, m.title, m.description, m.media_type, m.release_year, m.age_restriction, m.creator_id"

// MediaRepository stores catalog entries and their genre tags in MySQL.
type MediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a MySQL-backed catalog store.
func NewMediaRepository(db *sql.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create inserts the entry and its genres in one transaction so a
// failure partway never leaves genres missing.
func (r *MediaRepository) Create(ctx context.Context, m *model.MediaEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO media_entries (title, description, media_type, release_year, age_restriction, creator_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Title, m.Description, m.MediaType, m.ReleaseYear, m.AgeRestriction, m.CreatorID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	if err := insertGenres(ctx, tx, m.ID, m.Genres); err != nil {
		return err
	}
	return tx.Commit()
}

// Get retrieves a media entry with its genres.
func (r *MediaRepository) Get(ctx context.Context, id int64) (*model.MediaEntry, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+mediaColumns+" FROM media_entries m WHERE m.id = ?", id)
	m, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if m.Genres, err = r.genresFor(ctx, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

// GetAll returns every media entry.
func (r *MediaRepository) GetAll(ctx context.Context) ([]model.MediaEntry, error) {
	return r.queryMedia(ctx, "SELECT "+mediaColumns+" FROM media_entries m ORDER BY m.id")
}

// Search applies the conjunctive filter in SQL. Average scores come
// from a grouped subquery so a rating threshold and score ordering see
// the same figures.
func (r *MediaRepository) Search(ctx context.Context, filter model.MediaFilter) ([]model.MediaEntry, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT " + mediaColumns + " FROM media_entries m ")
	if filter.Genre != "" {
		sb.WriteString("JOIN media_genres mg ON mg.media_id = m.id ")
	}
	sb.WriteString("LEFT JOIN (SELECT media_id, AVG(stars) AS avg_score FROM ratings GROUP BY media_id) r ON r.media_id = m.id ")
	sb.WriteString("WHERE 1=1 ")

	if filter.Title != "" {
		sb.WriteString("AND LOWER(m.title) LIKE ? ")
		args = append(args, "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.Genre != "" {
		sb.WriteString("AND LOWER(mg.genre) = ? ")
		args = append(args, strings.ToLower(filter.Genre))
	}
	if filter.MediaType != "" {
		sb.WriteString("AND LOWER(m.media_type) = ? ")
		args = append(args, strings.ToLower(filter.MediaType))
	}
	if filter.ReleaseYear != nil {
		sb.WriteString("AND m.release_year = ? ")
		args = append(args, *filter.ReleaseYear)
	}
	if filter.AgeRestriction != nil {
		sb.WriteString("AND m.age_restriction = ? ")
		args = append(args, *filter.AgeRestriction)
	}
	if filter.MinRating != nil {
		sb.WriteString("AND r.avg_score >= ? ")
		args = append(args, *filter.MinRating)
	}

	switch filter.SortBy {
	case "title":
		sb.WriteString("ORDER BY m.title ASC")
	case "year":
		sb.WriteString("ORDER BY m.release_year ASC")
	case "score":
		// MySQL has no NULLS LAST; unrated media sort after rated ones.
		sb.WriteString("ORDER BY r.avg_score IS NULL, r.avg_score DESC")
	}

	return r.queryMedia(ctx, sb.String(), args...)
}

// Update replaces the stored row and rewrites the genre set in one
// transaction.
func (r *MediaRepository) Update(ctx context.Context, m *model.MediaEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE media_entries SET title = ?, description = ?, media_type = ?, release_year = ?, age_restriction = ?
		 WHERE id = ?`,
		m.Title, m.Description, m.MediaType, m.ReleaseYear, m.AgeRestriction, m.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM media_genres WHERE media_id = ?", m.ID); err != nil {
		return err
	}
	if err := insertGenres(ctx, tx, m.ID, m.Genres); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a media entry; genres, ratings and favorites cascade.
func (r *MediaRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM media_entries WHERE id = ?", id)
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

// RecommendByGenre returns unrated media sharing a genre with media the
// user rated at least 4 stars.
func (r *MediaRepository) RecommendByGenre(ctx context.Context, userID int64) ([]model.MediaEntry, error) {
	query := `SELECT DISTINCT ` + mediaColumns + `
		FROM media_entries m
		JOIN media_genres mg ON mg.media_id = m.id
		WHERE mg.genre IN (
			SELECT mg2.genre
			FROM ratings r
			JOIN media_genres mg2 ON mg2.media_id = r.media_id
			WHERE r.user_id = ? AND r.stars >= 4
		)
		AND m.id NOT IN (SELECT media_id FROM ratings WHERE user_id = ?)`
	return r.queryMedia(ctx, query, userID, userID)
}

// RecommendByContent narrows RecommendByGenre to media whose type and
// age restriction also match a highly rated entry.
func (r *MediaRepository) RecommendByContent(ctx context.Context, userID int64) ([]model.MediaEntry, error) {
	query := `SELECT DISTINCT ` + mediaColumns + `
		FROM media_entries m
		JOIN media_genres mg ON mg.media_id = m.id
		WHERE (m.media_type, m.age_restriction) IN (
			SELECT m2.media_type, m2.age_restriction
			FROM ratings r2
			JOIN media_entries m2 ON m2.id = r2.media_id
			WHERE r2.user_id = ? AND r2.stars >= 4
		)
		AND mg.genre IN (
			SELECT mg3.genre
			FROM ratings r3
			JOIN media_genres mg3 ON mg3.media_id = r3.media_id
			WHERE r3.user_id = ? AND r3.stars >= 4
		)
		AND m.id NOT IN (SELECT media_id FROM ratings WHERE user_id = ?)`
	return r.queryMedia(ctx, query, userID, userID, userID)
}

func (r *MediaRepository) queryMedia(ctx context.Context, query string, args ...any) ([]model.MediaEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.MediaEntry{}
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Genres, err = r.genresFor(ctx, entries[i].ID); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (r *MediaRepository) genresFor(ctx context.Context, mediaID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT genre FROM media_genres WHERE media_id = ? ORDER BY genre", mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func insertGenres(ctx context.Context, tx *sql.Tx, mediaID int64, genres []string) error {
	for _, g := range genres {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO media_genres (media_id, genre) VALUES (?, ?)", mediaID, g); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedia(row rowScanner) (*model.MediaEntry, error) {
	var m model.MediaEntry
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.MediaType, &m.ReleaseYear, &m.AgeRestriction, &m.CreatorID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
