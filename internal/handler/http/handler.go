// Package http exposes the platform over HTTP and maps controller
// errors to status codes.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mediarate/mediarate/internal/auth"
	"github.com/mediarate/mediarate/internal/controller/aggregation"
	"github.com/mediarate/mediarate/internal/controller/catalog"
	"github.com/mediarate/mediarate/internal/controller/favorite"
	"github.com/mediarate/mediarate/internal/controller/rating"
	"github.com/mediarate/mediarate/internal/controller/recommendation"
	"github.com/mediarate/mediarate/internal/controller/user"
	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/pkg/model"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

// Handler routes API requests to the controllers.
type Handler struct {
	catalog   *catalog.Controller
	ratings   *rating.Controller
	favorites *favorite.Controller
	users     *user.Controller
	recs      *recommendation.Controller
	agg       *aggregation.Controller
	tokens    *auth.Manager
	logger    *zap.Logger
	scope     tally.Scope
}

// New creates the API handler. Pass tally.NoopScope when metrics are
// not reported.
func New(
	catalogCtrl *catalog.Controller,
	ratingCtrl *rating.Controller,
	favoriteCtrl *favorite.Controller,
	userCtrl *user.Controller,
	recCtrl *recommendation.Controller,
	aggCtrl *aggregation.Controller,
	tokens *auth.Manager,
	logger *zap.Logger,
	scope tally.Scope,
) *Handler {
	return &Handler{
		catalog:   catalogCtrl,
		ratings:   ratingCtrl,
		favorites: favoriteCtrl,
		users:     userCtrl,
		recs:      recCtrl,
		agg:       aggCtrl,
		tokens:    tokens,
		logger:    logger,
		scope:     scope,
	}
}

// Routes builds the route table. Register and login are public; every
// other API route requires a bearer token.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users/register", h.handleRegister)
	mux.HandleFunc("POST /api/users/login", h.handleLogin)

	mux.Handle("GET /api/users/{id}/profile", h.requireAuth(h.handleProfile))
	mux.Handle("PUT /api/users/{id}/profile", h.requireAuth(h.handleProfileUpdate))
	mux.Handle("GET /api/users/{id}/ratings", h.requireAuth(h.handleUserRatings))
	mux.Handle("GET /api/users/{id}/favorites", h.requireAuth(h.handleUserFavorites))
	mux.Handle("GET /api/users/{id}/recommendations", h.requireAuth(h.handleRecommendations))

	mux.Handle("GET /api/media", h.requireAuth(h.handleMediaList))
	mux.Handle("POST /api/media", h.requireAuth(h.handleMediaCreate))
	mux.Handle("GET /api/media/{id}", h.requireAuth(h.handleMediaGet))
	mux.Handle("PUT /api/media/{id}", h.requireAuth(h.handleMediaUpdate))
	mux.Handle("DELETE /api/media/{id}", h.requireAuth(h.handleMediaDelete))
	mux.Handle("POST /api/media/{id}/rate", h.requireAuth(h.handleRate))
	mux.Handle("POST /api/media/{id}/favorite", h.requireAuth(h.handleFavoriteAdd))
	mux.Handle("DELETE /api/media/{id}/favorite", h.requireAuth(h.handleFavoriteRemove))

	mux.Handle("PUT /api/ratings/{id}", h.requireAuth(h.handleRatingUpdate))
	mux.Handle("DELETE /api/ratings/{id}", h.requireAuth(h.handleRatingDelete))
	mux.Handle("POST /api/ratings/{id}/like", h.requireAuth(h.handleLike))
	mux.Handle("POST /api/ratings/{id}/confirm", h.requireAuth(h.handleConfirm))

	mux.Handle("GET /api/leaderboard", h.requireAuth(h.handleLeaderboard))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	u, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// Failed credentials are a 401 here, not the usual 403.
		if errors.Is(err, errs.ErrForbidden) {
			h.writeJSON(w, http.StatusUnauthorized, errorBody(err))
			return
		}
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	profile, err := h.users.Profile(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if id != callerID(r) {
		h.writeError(w, errs.ErrForbidden)
		return
	}
	var update model.ProfileUpdate
	if !h.readJSON(w, r, &update) {
		return
	}
	if err := h.users.UpdateProfile(r.Context(), id, update); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUserRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	ratings, err := h.ratings.ByUser(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ratings)
}

func (h *Handler) handleUserFavorites(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	entries, err := h.favorites.ListForUser(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var entries []model.MediaEntry
	var err error
	switch r.URL.Query().Get("strategy") {
	case "", "genre":
		entries, err = h.recs.ByGenre(r.Context(), id)
	case "content":
		entries, err = h.recs.ByContent(r.Context(), id)
	default:
		h.writeJSON(w, http.StatusBadRequest,
			map[string]string{"error": "strategy must be genre or content"})
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleMediaList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMediaFilter(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}
	var entries []model.MediaEntry
	if filter == (model.MediaFilter{}) {
		entries, err = h.catalog.GetAll(r.Context())
	} else {
		entries, err = h.catalog.Search(r.Context(), filter)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleMediaCreate(w http.ResponseWriter, r *http.Request) {
	var entry model.MediaEntry
	if !h.readJSON(w, r, &entry) {
		return
	}
	created, err := h.catalog.Create(r.Context(), entry, callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleMediaGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	entry, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleMediaUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var patch model.MediaPatch
	if !h.readJSON(w, r, &patch) {
		return
	}
	entry, err := h.catalog.Update(r.Context(), id, patch, callerID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleMediaDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.Delete(r.Context(), id, callerID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ratingInput struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

func (h *Handler) handleRate(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var input ratingInput
	if !h.readJSON(w, r, &input) {
		return
	}
	created, err := h.ratings.Create(r.Context(), mediaID, callerID(r), input.Stars, input.Comment)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleRatingUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var input ratingInput
	if !h.readJSON(w, r, &input) {
		return
	}
	updated, err := h.ratings.Update(r.Context(), id, callerID(r), input.Stars, input.Comment)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleRatingDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.ratings.Delete(r.Context(), id, callerID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.ratings.Like(r.Context(), id, callerID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.ratings.ConfirmComment(r.Context(), id, callerID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleFavoriteAdd(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.favorites.Add(r.Context(), callerID(r), mediaID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleFavoriteRemove(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.favorites.Remove(r.Context(), callerID(r), mediaID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.agg.Leaderboard(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func parseMediaFilter(r *http.Request) (model.MediaFilter, error) {
	q := r.URL.Query()
	filter := model.MediaFilter{
		Title:     q.Get("title"),
		Genre:     q.Get("genre"),
		MediaType: q.Get("mediaType"),
		SortBy:    q.Get("sortBy"),
	}
	if v := q.Get("releaseYear"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return model.MediaFilter{}, errors.New("releaseYear must be a number")
		}
		filter.ReleaseYear = &year
	}
	if v := q.Get("ageRestriction"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return model.MediaFilter{}, errors.New("ageRestriction must be a number")
		}
		filter.AgeRestriction = &age
	}
	if v := q.Get("rating"); v != "" {
		minRating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.MediaFilter{}, errors.New("rating must be a number")
		}
		filter.MinRating = &minRating
	}
	return filter, nil
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps an error kind to its status code.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Error(err))
	}
	h.writeJSON(w, status, errorBody(err))
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}
