package memory

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T) (*MediaRepository, *RatingRepository) {
	t.Helper()
	ratings := NewRatingRepository(NewUserRepository())
	media := NewMediaRepository(ratings)
	ctx := context.Background()

	entries := []model.MediaEntry{
		{Title: "Dune", MediaType: "MOVIE", ReleaseYear: 2021, AgeRestriction: 12, Genres: []string{"SciFi"}},
		{Title: "Arrival", MediaType: "MOVIE", ReleaseYear: 2016, AgeRestriction: 12, Genres: []string{"SciFi", "Drama"}},
		{Title: "The Witcher", MediaType: "GAME", ReleaseYear: 2015, AgeRestriction: 18, Genres: []string{"Fantasy"}},
	}
	for i := range entries {
		require.NoError(t, media.Create(ctx, &entries[i]))
	}
	return media, ratings
}

func searchTitles(t *testing.T, media *MediaRepository, filter model.MediaFilter) []string {
	t.Helper()
	entries, err := media.Search(context.Background(), filter)
	require.NoError(t, err)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

func TestSearchFilters(t *testing.T) {
	media, ratings := seedCatalog(t)
	ctx := context.Background()
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: 1, Stars: 5}))
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 2, UserID: 1, Stars: 2}))

	year := 2016
	age := 18
	minRating := 4.0
	tests := []struct {
		name   string
		filter model.MediaFilter
		want   []string
	}{
		{"title substring, case folded", model.MediaFilter{Title: "dUn"}, []string{"Dune"}},
		{"genre case folded", model.MediaFilter{Genre: "scifi"}, []string{"Dune", "Arrival"}},
		{"media type", model.MediaFilter{MediaType: "game"}, []string{"The Witcher"}},
		{"release year", model.MediaFilter{ReleaseYear: &year}, []string{"Arrival"}},
		{"age restriction", model.MediaFilter{AgeRestriction: &age}, []string{"The Witcher"}},
		// Unrated media never pass a rating threshold.
		{"minimum rating", model.MediaFilter{MinRating: &minRating}, []string{"Dune"}},
		{"conjunction", model.MediaFilter{Genre: "SciFi", MediaType: "MOVIE", ReleaseYear: &year}, []string{"Arrival"}},
		{"no match", model.MediaFilter{Title: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchTitles(t, media, tt.filter)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected search result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchSortByScore(t *testing.T) {
	media, ratings := seedCatalog(t)
	ctx := context.Background()
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 2, UserID: 1, Stars: 5}))
	require.NoError(t, ratings.Create(ctx, &model.Rating{MediaID: 1, UserID: 1, Stars: 3}))

	got := searchTitles(t, media, model.MediaFilter{SortBy: "score"})
	// Highest average first, unrated entries last.
	want := []string{"Arrival", "Dune", "The Witcher"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestSearchSortByTitleAndYear(t *testing.T) {
	media, _ := seedCatalog(t)

	byTitle := searchTitles(t, media, model.MediaFilter{SortBy: "title"})
	assert.Equal(t, []string{"Arrival", "Dune", "The Witcher"}, byTitle)

	byYear := searchTitles(t, media, model.MediaFilter{SortBy: "year"})
	assert.Equal(t, []string{"The Witcher", "Arrival", "Dune"}, byYear)
}

func TestGetReturnsCopy(t *testing.T) {
	media, _ := seedCatalog(t)
	ctx := context.Background()

	m, err := media.Get(ctx, 1)
	require.NoError(t, err)
	m.Title = "mutated"
	m.Genres[0] = "mutated"

	again, err := media.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", again.Title)
	assert.Equal(t, []string{"SciFi"}, again.Genres)
}

func TestDeleteNotFound(t *testing.T) {
	media, _ := seedCatalog(t)
	require.ErrorIs(t, media.Delete(context.Background(), 99), repository.ErrNotFound)
}
