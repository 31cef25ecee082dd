package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediarate/mediarate/internal/auth"
	"github.com/mediarate/mediarate/internal/controller/aggregation"
	"github.com/mediarate/mediarate/internal/controller/catalog"
	"github.com/mediarate/mediarate/internal/controller/favorite"
	"github.com/mediarate/mediarate/internal/controller/rating"
	"github.com/mediarate/mediarate/internal/controller/recommendation"
	"github.com/mediarate/mediarate/internal/controller/user"
	"github.com/mediarate/mediarate/internal/event"
	kafkaproducer "github.com/mediarate/mediarate/internal/event/kafka"
	httphandler "github.com/mediarate/mediarate/internal/handler/http"
	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/internal/repository/memory"
	"github.com/mediarate/mediarate/internal/repository/mysql"
	"github.com/mediarate/mediarate/pkg/metrics"
	"github.com/mediarate/mediarate/pkg/tracing"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const serviceName = "mediarate"

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	f, err := os.Open("configs/default.yaml")
	if err != nil {
		logger.Fatal("Failed to open configuration", zap.Error(err))
	}
	var cfg config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		logger.Fatal("Failed to parse configuration", zap.Error(err))
	}
	f.Close()

	logger.Info("Starting the mediarate server", zap.Int("port", cfg.API.Port))

	tracer, closer, err := tracing.NewTracer(serviceName, cfg.Jaeger.Host, cfg.Jaeger.Port, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Jaeger tracer", zap.Error(err))
	}
	defer closer.Close()
	opentracing.SetGlobalTracer(tracer)

	var (
		mediaRepo    repository.MediaRepository
		ratingRepo   repository.RatingRepository
		favoriteRepo repository.FavoriteRepository
		userRepo     repository.UserRepository
	)
	if cfg.Database.DSN != "" {
		db, err := mysql.Open(cfg.Database.DSN)
		if err != nil {
			logger.Fatal("Failed to connect to the database", zap.Error(err))
		}
		defer db.Close()
		media := mysql.NewMediaRepository(db)
		mediaRepo = media
		ratingRepo = mysql.NewRatingRepository(db)
		favoriteRepo = mysql.NewFavoriteRepository(db, media)
		userRepo = mysql.NewUserRepository(db)
		logger.Info("Using MySQL storage")
	} else {
		users := memory.NewUserRepository()
		ratings := memory.NewRatingRepository(users)
		media := memory.NewMediaRepository(ratings)
		mediaRepo = media
		ratingRepo = ratings
		favoriteRepo = memory.NewFavoriteRepository(media)
		userRepo = users
		logger.Info("Using in-memory storage")
	}

	var producer event.Producer = event.NopProducer{}
	if cfg.Kafka.Enabled {
		producer, err = kafkaproducer.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Fatal("Failed to create Kafka producer", zap.Error(err))
		}
	}
	defer producer.Close()

	scope := metrics.NewScope(serviceName)
	defer scope.Close()

	tokens := auth.NewManager([]byte(cfg.Auth.Secret), time.Duration(cfg.Auth.TTLMinutes)*time.Minute)

	catalogCtrl := catalog.New(mediaRepo)
	ratingCtrl := rating.New(ratingRepo, producer, logger)
	favoriteCtrl := favorite.New(favoriteRepo)
	aggCtrl := aggregation.New(ratingRepo, logger)
	recCtrl := recommendation.New(mediaRepo)
	userCtrl := user.New(userRepo, aggCtrl, tokens)

	h := httphandler.New(catalogCtrl, ratingCtrl, favoriteCtrl, userCtrl, recCtrl, aggCtrl, tokens, logger, scope)
	mux := h.Routes()
	mux.Handle("GET /metrics", scope.Handler())

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.API.Port),
		Handler: httphandler.RateLimit(limiter, h.Instrument(mux)),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s := <-sigChan
		logger.Info("Received signal, attempting graceful shutdown", zap.Any("signal", s))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Failed to shut down cleanly", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to serve", zap.Error(err))
	}
	<-done
	logger.Info("Gracefully stopped the server")
}
