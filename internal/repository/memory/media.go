package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
	"go.opentelemetry.io/otel"
)

const mediaTracerID = "media-repository-memory"

// MediaRepository is an in-memory catalog store. It consults the rating
// store for average scores and recommendation queries, mirroring the
// joins the MySQL implementation performs.
type MediaRepository struct {
	sync.RWMutex
	data    map[int64]*model.MediaEntry
	ratings *RatingRepository
	nextID  int64
}

// NewMediaRepository creates a new in-memory catalog store.
func NewMediaRepository(ratings *RatingRepository) *MediaRepository {
	return &MediaRepository{
		data:    map[int64]*model.MediaEntry{},
		ratings: ratings,
	}
}

// Create adds a media entry and assigns its id.
func (r *MediaRepository) Create(ctx context.Context, m *model.MediaEntry) error {
	r.Lock()
	defer r.Unlock()

	_, span := otel.Tracer(mediaTracerID).Start(ctx, "Repository/Create")
	defer span.End()

	r.nextID++
	m.ID = r.nextID
	cp := *m
	cp.Genres = append([]string(nil), m.Genres...)
	r.data[m.ID] = &cp
	return nil
}

// Get retrieves a media entry by id.
func (r *MediaRepository) Get(ctx context.Context, id int64) (*model.MediaEntry, error) {
	r.RLock()
	defer r.RUnlock()

	_, span := otel.Tracer(mediaTracerID).Start(ctx, "Repository/Get")
	defer span.End()

	m, ok := r.data[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneMedia(m), nil
}

// GetAll returns every media entry, ordered by id.
func (r *MediaRepository) GetAll(ctx context.Context) ([]model.MediaEntry, error) {
	r.RLock()
	defer r.RUnlock()

	return r.snapshot(func(*model.MediaEntry) bool { return true }), nil
}

// Search applies the conjunctive filter and the requested ordering.
func (r *MediaRepository) Search(ctx context.Context, filter model.MediaFilter) ([]model.MediaEntry, error) {
	avgs := r.ratings.mediaAverages()

	r.RLock()
	entries := r.snapshot(func(m *model.MediaEntry) bool {
		return matchesFilter(m, filter, avgs)
	})
	r.RUnlock()

	switch filter.SortBy {
	case "title":
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Title < entries[j].Title })
	case "year":
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].ReleaseYear < entries[j].ReleaseYear })
	case "score":
		sort.SliceStable(entries, func(i, j int) bool {
			ai, iRated := avgs[entries[i].ID]
			aj, jRated := avgs[entries[j].ID]
			if iRated != jRated {
				return iRated // unrated entries sort last
			}
			return ai > aj
		})
	}
	return entries, nil
}

// Update overwrites a stored entry and its genre set.
func (r *MediaRepository) Update(ctx context.Context, m *model.MediaEntry) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.data[m.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *m
	cp.Genres = append([]string(nil), m.Genres...)
	r.data[m.ID] = &cp
	return nil
}

// Delete removes a media entry.
func (r *MediaRepository) Delete(ctx context.Context, id int64) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.data[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// RecommendByGenre returns unrated media sharing a genre with media the
// user rated at least 4 stars.
func (r *MediaRepository) RecommendByGenre(ctx context.Context, userID int64) ([]model.MediaEntry, error) {
	rated := r.ratings.ratedMedia(userID)
	liked := r.likedGenres(rated)

	r.RLock()
	defer r.RUnlock()

	return r.snapshot(func(m *model.MediaEntry) bool {
		if _, alreadyRated := rated[m.ID]; alreadyRated {
			return false
		}
		return hasAnyGenre(m, liked)
	}), nil
}

// RecommendByContent narrows RecommendByGenre to media whose type and
// age restriction also match a highly rated entry.
func (r *MediaRepository) RecommendByContent(ctx context.Context, userID int64) ([]model.MediaEntry, error) {
	rated := r.ratings.ratedMedia(userID)
	liked := r.likedGenres(rated)
	pairs := r.likedPairs(rated)

	r.RLock()
	defer r.RUnlock()

	return r.snapshot(func(m *model.MediaEntry) bool {
		if _, alreadyRated := rated[m.ID]; alreadyRated {
			return false
		}
		if _, ok := pairs[contentPair{m.MediaType, m.AgeRestriction}]; !ok {
			return false
		}
		return hasAnyGenre(m, liked)
	}), nil
}

type contentPair struct {
	mediaType      string
	ageRestriction int
}

// likedGenres collects the genres of media the user rated >= 4 stars.
func (r *MediaRepository) likedGenres(rated map[int64]int) map[string]struct{} {
	r.RLock()
	defer r.RUnlock()

	liked := map[string]struct{}{}
	for mediaID, stars := range rated {
		if stars < 4 {
			continue
		}
		if m, ok := r.data[mediaID]; ok {
			for _, g := range m.Genres {
				liked[g] = struct{}{}
			}
		}
	}
	return liked
}

// likedPairs collects the (mediaType, ageRestriction) pairs of media the
// user rated >= 4 stars.
func (r *MediaRepository) likedPairs(rated map[int64]int) map[contentPair]struct{} {
	r.RLock()
	defer r.RUnlock()

	pairs := map[contentPair]struct{}{}
	for mediaID, stars := range rated {
		if stars < 4 {
			continue
		}
		if m, ok := r.data[mediaID]; ok {
			pairs[contentPair{m.MediaType, m.AgeRestriction}] = struct{}{}
		}
	}
	return pairs
}

// snapshot returns copies of all entries matching keep, ordered by id.
// Callers must hold at least the read lock.
func (r *MediaRepository) snapshot(keep func(*model.MediaEntry) bool) []model.MediaEntry {
	ids := make([]int64, 0, len(r.data))
	for id, m := range r.data {
		if keep(m) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	entries := make([]model.MediaEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, *cloneMedia(r.data[id]))
	}
	return entries
}

func matchesFilter(m *model.MediaEntry, filter model.MediaFilter, avgs map[int64]float64) bool {
	if filter.Title != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(filter.Title)) {
		return false
	}
	if filter.Genre != "" && !hasGenreFold(m, filter.Genre) {
		return false
	}
	if filter.MediaType != "" && !strings.EqualFold(m.MediaType, filter.MediaType) {
		return false
	}
	if filter.ReleaseYear != nil && m.ReleaseYear != *filter.ReleaseYear {
		return false
	}
	if filter.AgeRestriction != nil && m.AgeRestriction != *filter.AgeRestriction {
		return false
	}
	if filter.MinRating != nil {
		avg, rated := avgs[m.ID]
		if !rated || avg < *filter.MinRating {
			return false
		}
	}
	return true
}

func hasGenreFold(m *model.MediaEntry, genre string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

func hasAnyGenre(m *model.MediaEntry, genres map[string]struct{}) bool {
	for _, g := range m.Genres {
		if _, ok := genres[g]; ok {
			return true
		}
	}
	return false
}

func cloneMedia(m *model.MediaEntry) *model.MediaEntry {
	cp := *m
	cp.Genres = append([]string(nil), m.Genres...)
	return &cp
}
