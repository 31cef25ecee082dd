package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
)

type favoriteKey struct {
	userID  int64
	mediaID int64
}

// FavoriteRepository is an in-memory favorite store.
type FavoriteRepository struct {
	sync.RWMutex
	data  map[favoriteKey]struct{}
	media *MediaRepository
}

// NewFavoriteRepository creates a new in-memory favorite store. The
// media store is consulted to return full entries on listing.
func NewFavoriteRepository(media *MediaRepository) *FavoriteRepository {
	return &FavoriteRepository{
		data:  map[favoriteKey]struct{}{},
		media: media,
	}
}

// Add records a favorite. A second add for the same pair fails.
func (r *FavoriteRepository) Add(ctx context.Context, userID, mediaID int64) error {
	r.Lock()
	defer r.Unlock()

	key := favoriteKey{userID, mediaID}
	if _, exists := r.data[key]; exists {
		return repository.ErrDuplicate
	}
	r.data[key] = struct{}{}
	return nil
}

// Remove deletes a favorite, failing if the pair is absent.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, mediaID int64) error {
	r.Lock()
	defer r.Unlock()

	key := favoriteKey{userID, mediaID}
	if _, exists := r.data[key]; !exists {
		return repository.ErrNotFound
	}
	delete(r.data, key)
	return nil
}

// FindByUser returns the full media entries a user marked as favorite.
func (r *FavoriteRepository) FindByUser(ctx context.Context, userID int64) ([]model.MediaEntry, error) {
	r.RLock()
	var ids []int64
	for key := range r.data {
		if key.userID == userID {
			ids = append(ids, key.mediaID)
		}
	}
	r.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	entries := make([]model.MediaEntry, 0, len(ids))
	for _, id := range ids {
		m, err := r.media.Get(ctx, id)
		if err != nil {
			// Media deleted since it was favorited; skip the orphan.
			continue
		}
		entries = append(entries, *m)
	}
	return entries, nil
}
