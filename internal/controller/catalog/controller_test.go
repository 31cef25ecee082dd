package catalog_test

import (
	"context"
	"testing"

	"github.com/mediarate/mediarate/internal/controller/catalog"
	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/internal/repository/memory"
	"github.com/mediarate/mediarate/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() *catalog.Controller {
	ratings := memory.NewRatingRepository(memory.NewUserRepository())
	return catalog.New(memory.NewMediaRepository(ratings))
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		entry   model.MediaEntry
		wantMsg string
	}{
		{
			name:    "missing title",
			entry:   model.MediaEntry{MediaType: "MOVIE", Genres: []string{"Action"}},
			wantMsg: "title is required",
		},
		{
			name:    "missing media type",
			entry:   model.MediaEntry{Title: "Dune", Genres: []string{"SciFi"}},
			wantMsg: "media type is required (MOVIE, SERIES, GAME)",
		},
		{
			name:    "unknown media type",
			entry:   model.MediaEntry{Title: "Dune", MediaType: "BOOK", Genres: []string{"SciFi"}},
			wantMsg: "media type must be MOVIE, SERIES or GAME",
		},
		{
			name:    "no genres",
			entry:   model.MediaEntry{Title: "Dune", MediaType: "MOVIE"},
			wantMsg: "at least one genre is required",
		},
		{
			name:    "only blank genres",
			entry:   model.MediaEntry{Title: "Dune", MediaType: "MOVIE", Genres: []string{"  ", ""}},
			wantMsg: "at least one genre is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			_, err := c.Create(context.Background(), tt.entry, 1)
			require.ErrorIs(t, err, errs.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCreateNormalizes(t *testing.T) {
	c := newController()
	created, err := c.Create(context.Background(), model.MediaEntry{
		Title:     "Dune",
		MediaType: "movie",
		Genres:    []string{" SciFi ", "", "Drama"},
		CreatorID: 99, // must be overridden by the caller identity
	}, 7)
	require.NoError(t, err)

	assert.Equal(t, "MOVIE", created.MediaType)
	assert.Equal(t, []string{"SciFi", "Drama"}, created.Genres)
	assert.Equal(t, int64(7), created.CreatorID)
	assert.NotZero(t, created.ID)
}

func TestGetNotFound(t *testing.T) {
	c := newController()
	_, err := c.Get(context.Background(), 42)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdatePartialPatch(t *testing.T) {
	c := newController()
	created, err := c.Create(context.Background(), model.MediaEntry{
		Title:       "Dune",
		Description: "Desert planet",
		MediaType:   "MOVIE",
		ReleaseYear: 2021,
		Genres:      []string{"SciFi"},
	}, 1)
	require.NoError(t, err)

	title := "Dune: Part Two"
	year := 2024
	updated, err := c.Update(context.Background(), created.ID, model.MediaPatch{
		Title:       &title,
		ReleaseYear: &year,
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, "Dune: Part Two", updated.Title)
	assert.Equal(t, 2024, updated.ReleaseYear)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Desert planet", updated.Description)
	assert.Equal(t, "MOVIE", updated.MediaType)
	assert.Equal(t, []string{"SciFi"}, updated.Genres)
}

func TestUpdateZeroValuesKeepStored(t *testing.T) {
	c := newController()
	created, err := c.Create(context.Background(), model.MediaEntry{
		Title:       "Dune",
		MediaType:   "MOVIE",
		ReleaseYear: 2021,
		Genres:      []string{"SciFi"},
	}, 1)
	require.NoError(t, err)

	empty := ""
	zero := 0
	updated, err := c.Update(context.Background(), created.ID, model.MediaPatch{
		Title:       &empty,
		ReleaseYear: &zero,
		Genres:      []string{"  "},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, 2021, updated.ReleaseYear)
	assert.Equal(t, []string{"SciFi"}, updated.Genres)
}

func TestUpdateRejectsUnknownMediaType(t *testing.T) {
	c := newController()
	created, err := c.Create(context.Background(), model.MediaEntry{
		Title: "Dune", MediaType: "MOVIE", Genres: []string{"SciFi"},
	}, 1)
	require.NoError(t, err)

	bad := "BOOK"
	_, err = c.Update(context.Background(), created.ID, model.MediaPatch{MediaType: &bad}, 1)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateForbiddenForNonCreator(t *testing.T) {
	c := newController()
	created, err := c.Create(context.Background(), model.MediaEntry{
		Title: "Dune", MediaType: "MOVIE", Genres: []string{"SciFi"},
	}, 1)
	require.NoError(t, err)

	title := "Hijacked"
	_, err = c.Update(context.Background(), created.ID, model.MediaPatch{Title: &title}, 2)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestDelete(t *testing.T) {
	c := newController()
	created, err := c.Create(context.Background(), model.MediaEntry{
		Title: "Dune", MediaType: "MOVIE", Genres: []string{"SciFi"},
	}, 1)
	require.NoError(t, err)

	err = c.Delete(context.Background(), created.ID, 2)
	require.ErrorIs(t, err, errs.ErrForbidden)

	require.NoError(t, c.Delete(context.Background(), created.ID, 1))

	_, err = c.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
