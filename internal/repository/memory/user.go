package memory

import (
	"context"
	"sync"

	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
)

// UserRepository is an in-memory user store.
type UserRepository struct {
	sync.RWMutex
	data      map[int64]*model.User
	usernames map[string]int64
	nextID    int64
}

// NewUserRepository creates a new in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		data:      map[int64]*model.User{},
		usernames: map[string]int64{},
	}
}

// Create adds a user, enforcing username uniqueness.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	r.Lock()
	defer r.Unlock()

	if _, taken := r.usernames[u.Username]; taken {
		return repository.ErrDuplicate
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.data[u.ID] = &cp
	r.usernames[u.Username] = u.ID
	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.RLock()
	defer r.RUnlock()

	u, ok := r.data[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.RLock()
	defer r.RUnlock()

	id, ok := r.usernames[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r.data[id]
	return &cp, nil
}

// UpdateProfile overwrites the mutable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *model.User) error {
	r.Lock()
	defer r.Unlock()

	stored, ok := r.data[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Email = u.Email
	stored.FavoriteGenre = u.FavoriteGenre
	return nil
}

// allUsers returns a snapshot of every stored user.
func (r *UserRepository) allUsers() []model.User {
	r.RLock()
	defer r.RUnlock()

	users := make([]model.User, 0, len(r.data))
	for _, u := range r.data {
		users = append(users, *u)
	}
	return users
}
