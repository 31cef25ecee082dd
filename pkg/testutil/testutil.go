// Package testutil wires the platform on in-memory storage for tests.
package testutil

import (
	"time"

	"github.com/mediarate/mediarate/internal/auth"
	"github.com/mediarate/mediarate/internal/controller/aggregation"
	"github.com/mediarate/mediarate/internal/controller/catalog"
	"github.com/mediarate/mediarate/internal/controller/favorite"
	"github.com/mediarate/mediarate/internal/controller/rating"
	"github.com/mediarate/mediarate/internal/controller/recommendation"
	"github.com/mediarate/mediarate/internal/controller/user"
	"github.com/mediarate/mediarate/internal/event"
	httphandler "github.com/mediarate/mediarate/internal/handler/http"
	"github.com/mediarate/mediarate/internal/repository/memory"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

// Platform bundles the in-memory repositories and controllers so a test
// can reach any layer directly.
type Platform struct {
	Users     *memory.UserRepository
	Ratings   *memory.RatingRepository
	Media     *memory.MediaRepository
	Favorites *memory.FavoriteRepository

	Catalog        *catalog.Controller
	Rating         *rating.Controller
	Favorite       *favorite.Controller
	User           *user.Controller
	Recommendation *recommendation.Controller
	Aggregation    *aggregation.Controller

	Tokens *auth.Manager
}

// NewPlatform wires every controller on fresh in-memory storage with a
// no-op event producer.
func NewPlatform() *Platform {
	logger := zap.NewNop()
	users := memory.NewUserRepository()
	ratings := memory.NewRatingRepository(users)
	media := memory.NewMediaRepository(ratings)
	favorites := memory.NewFavoriteRepository(media)

	tokens := auth.NewManager([]byte("test-secret"), time.Hour)
	aggCtrl := aggregation.New(ratings, logger)

	return &Platform{
		Users:          users,
		Ratings:        ratings,
		Media:          media,
		Favorites:      favorites,
		Catalog:        catalog.New(media),
		Rating:         rating.New(ratings, event.NopProducer{}, logger),
		Favorite:       favorite.New(favorites),
		User:           user.New(users, aggCtrl, tokens),
		Recommendation: recommendation.New(media),
		Aggregation:    aggCtrl,
		Tokens:         tokens,
	}
}

// NewTestHandler creates the HTTP handler on top of a fresh platform.
func NewTestHandler() (*httphandler.Handler, *Platform) {
	p := NewPlatform()
	h := httphandler.New(p.Catalog, p.Rating, p.Favorite, p.User, p.Recommendation,
		p.Aggregation, p.Tokens, zap.NewNop(), tally.NoopScope)
	return h, p
}
