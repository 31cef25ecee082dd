package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
	"go.opentelemetry.io/otel"
)

const ratingTracerID = "rating-repository-memory"

type ratingKey struct {
	mediaID int64
	userID  int64
}

// RatingRepository is an in-memory rating and like store. The
// (mediaID, userID) uniqueness is enforced the way a unique key would
// in MySQL: on insert, under the write lock.
type RatingRepository struct {
	sync.RWMutex
	data   map[int64]*model.Rating
	byPair map[ratingKey]int64
	likes  map[int64]map[int64]struct{}
	users  *UserRepository
	nextID int64
}

// NewRatingRepository creates a new in-memory rating store. The user
// store is consulted for the leaderboard, which lists every account.
func NewRatingRepository(users *UserRepository) *RatingRepository {
	return &RatingRepository{
		data:   map[int64]*model.Rating{},
		byPair: map[ratingKey]int64{},
		likes:  map[int64]map[int64]struct{}{},
		users:  users,
	}
}

// Create adds a rating, enforcing one rating per user and media.
func (r *RatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	r.Lock()
	defer r.Unlock()

	_, span := otel.Tracer(ratingTracerID).Start(ctx, "Repository/Create")
	defer span.End()

	key := ratingKey{rating.MediaID, rating.UserID}
	if _, exists := r.byPair[key]; exists {
		return repository.ErrDuplicate
	}
	r.nextID++
	rating.ID = r.nextID
	rating.CreatedAt = time.Now().UTC()
	cp := *rating
	r.data[rating.ID] = &cp
	r.byPair[key] = rating.ID
	return nil
}

// Get retrieves a rating by id.
func (r *RatingRepository) Get(ctx context.Context, id int64) (*model.Rating, error) {
	r.RLock()
	defer r.RUnlock()

	_, span := otel.Tracer(ratingTracerID).Start(ctx, "Repository/Get")
	defer span.End()

	rating, ok := r.data[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rating
	cp.Likes = int64(len(r.likes[id]))
	return &cp, nil
}

// GetByMediaAndUser retrieves the rating a user gave a media entry.
func (r *RatingRepository) GetByMediaAndUser(ctx context.Context, mediaID, userID int64) (*model.Rating, error) {
	r.RLock()
	defer r.RUnlock()

	id, ok := r.byPair[ratingKey{mediaID, userID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r.data[id]
	cp.Likes = int64(len(r.likes[id]))
	return &cp, nil
}

// Update overwrites stars, comment and confirmation state.
func (r *RatingRepository) Update(ctx context.Context, rating *model.Rating) error {
	r.Lock()
	defer r.Unlock()

	stored, ok := r.data[rating.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Stars = rating.Stars
	stored.Comment = rating.Comment
	stored.CommentConfirmed = rating.CommentConfirmed
	return nil
}

// Delete removes a rating and its likes.
func (r *RatingRepository) Delete(ctx context.Context, id int64) error {
	r.Lock()
	defer r.Unlock()

	rating, ok := r.data[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.byPair, ratingKey{rating.MediaID, rating.UserID})
	delete(r.data, id)
	delete(r.likes, id)
	return nil
}

// ConfirmComment flips the confirmation flag to true.
func (r *RatingRepository) ConfirmComment(ctx context.Context, id int64) error {
	r.Lock()
	defer r.Unlock()

	rating, ok := r.data[id]
	if !ok {
		return repository.ErrNotFound
	}
	rating.CommentConfirmed = true
	return nil
}

// AddLike records a like, enforcing one like per user and rating.
func (r *RatingRepository) AddLike(ctx context.Context, ratingID, userID int64) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.data[ratingID]; !ok {
		return repository.ErrNotFound
	}
	set, ok := r.likes[ratingID]
	if !ok {
		set = map[int64]struct{}{}
		r.likes[ratingID] = set
	}
	if _, liked := set[userID]; liked {
		return repository.ErrDuplicate
	}
	set[userID] = struct{}{}
	return nil
}

// LikeCount returns the number of likes for a rating.
func (r *RatingRepository) LikeCount(ctx context.Context, ratingID int64) (int64, error) {
	r.RLock()
	defer r.RUnlock()

	return int64(len(r.likes[ratingID])), nil
}

// FindByUser returns a user's ratings, newest first.
func (r *RatingRepository) FindByUser(ctx context.Context, userID int64) ([]model.Rating, error) {
	r.RLock()
	defer r.RUnlock()

	var ratings []model.Rating
	for _, rating := range r.data {
		if rating.UserID != userID {
			continue
		}
		cp := *rating
		cp.Likes = int64(len(r.likes[rating.ID]))
		ratings = append(ratings, cp)
	}
	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].CreatedAt.After(ratings[j].CreatedAt)
	})
	return ratings, nil
}

// CountByUser returns the number of ratings a user has written.
func (r *RatingRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	r.RLock()
	defer r.RUnlock()

	var n int64
	for _, rating := range r.data {
		if rating.UserID == userID {
			n++
		}
	}
	return n, nil
}

// AverageByUser returns the mean star value of a user's ratings, or 0
// when the user has none.
func (r *RatingRepository) AverageByUser(ctx context.Context, userID int64) (float64, error) {
	r.RLock()
	defer r.RUnlock()

	var sum, n int
	for _, rating := range r.data {
		if rating.UserID == userID {
			sum += rating.Stars
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

// Leaderboard lists every user with their rating count, most active first.
func (r *RatingRepository) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	counts := map[int64]int64{}
	r.RLock()
	for _, rating := range r.data {
		counts[rating.UserID]++
	}
	r.RUnlock()

	users := r.users.allUsers()
	entries := make([]model.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, model.LeaderboardEntry{
			UserID:      u.ID,
			Username:    u.Username,
			RatingCount: counts[u.ID],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RatingCount != entries[j].RatingCount {
			return entries[i].RatingCount > entries[j].RatingCount
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries, nil
}

// ratedMedia returns mediaID -> stars for every rating by the user.
func (r *RatingRepository) ratedMedia(userID int64) map[int64]int {
	r.RLock()
	defer r.RUnlock()

	rated := map[int64]int{}
	for _, rating := range r.data {
		if rating.UserID == userID {
			rated[rating.MediaID] = rating.Stars
		}
	}
	return rated
}

// mediaAverages returns mediaID -> mean stars across all ratings.
func (r *RatingRepository) mediaAverages() map[int64]float64 {
	r.RLock()
	defer r.RUnlock()

	sums := map[int64]int{}
	counts := map[int64]int{}
	for _, rating := range r.data {
		sums[rating.MediaID] += rating.Stars
		counts[rating.MediaID]++
	}
	avgs := make(map[int64]float64, len(sums))
	for id, sum := range sums {
		avgs[id] = float64(sum) / float64(counts[id])
	}
	return avgs
}
