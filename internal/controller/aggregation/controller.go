// Package aggregation derives per-user statistics and the global
// leaderboard from the rating ledger.
package aggregation

import (
	"context"
	"fmt"

	"github.com/mediarate/mediarate/internal/errs"
	"github.com/mediarate/mediarate/internal/repository"
	"github.com/mediarate/mediarate/pkg/model"
	"go.uber.org/zap"
)

// Controller computes read-only aggregates over the rating store.
type Controller struct {
	repo   repository.RatingRepository
	logger *zap.Logger
}

// New creates an aggregation controller.
func New(repo repository.RatingRepository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

// StatsForUser returns the rating count and average score for a user.
// A storage failure degrades to zero values instead of an error so
// profile views stay renderable.
func (c *Controller) StatsForUser(ctx context.Context, userID int64) model.UserStats {
	count, err := c.repo.CountByUser(ctx, userID)
	if err != nil {
		c.logger.Warn("Falling back to zero stats", zap.Int64("userId", userID), zap.Error(err))
		return model.UserStats{}
	}
	avg, err := c.repo.AverageByUser(ctx, userID)
	if err != nil {
		c.logger.Warn("Falling back to zero stats", zap.Int64("userId", userID), zap.Error(err))
		return model.UserStats{}
	}
	return model.UserStats{TotalRatings: count, AverageScore: avg}
}

// Leaderboard lists every user ordered by rating count, most active
// first. Order among users with equal counts is unspecified.
func (c *Controller) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	entries, err := c.repo.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading leaderboard: %w", errs.ErrUnavailable)
	}
	return entries, nil
}
