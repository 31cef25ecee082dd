package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
)

// UserRepository stores accounts in MySQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a MySQL-backed user store.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. The unique key on username rejects duplicates.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, email, favorite_genre) VALUES (?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Email, u.FavoriteGenre)
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
	u.ID = id
	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

// UpdateProfile overwrites the mutable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *model.User) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET email = ?, favorite_genre = ? WHERE id = ?",
		u.Email, u.FavoriteGenre, u.ID)
	if err != nil {
		return err
	}
	if _, err := res.RowsAffected(); err != nil {
		return err
	}
	return nil
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, email, favorite_genre FROM users WHERE "+where, arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FavoriteGenre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
