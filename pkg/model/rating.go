package model

import "time"

// Rating is a single user's rating of a media entry. At most one rating
// exists per (MediaID, UserID) pair.
type Rating struct {
	ID               int64     `json:"id"`
	MediaID          int64     `json:"mediaId"`
	UserID           int64     `json:"userId"`
	Stars            int       `json:"stars"`
	Comment          string    `json:"comment,omitempty"`
	CommentConfirmed bool      `json:"commentConfirmed"`
	Likes            int64     `json:"likes"`
	CreatedAt        time.Time `json:"createdAt"`
}

// LeaderboardEntry is one row of the global leaderboard.
type LeaderboardEntry struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	RatingCount int64  `json:"ratingCount"`
}

// UserStats are the derived per-user rating figures.
type UserStats struct {
	TotalRatings int64   `json:"totalRatings"`
	AverageScore float64 `json:"averageScore"`
}

// RatingEventType marks a rating event as a write or a removal.
type RatingEventType string

const (
	RatingEventTypePut    = RatingEventType("put")
	RatingEventTypeDelete = RatingEventType("delete")
)

// RatingEvent is published to the event stream after a successful
// ledger write.
type RatingEvent struct {
	Rating
	EventType RatingEventType `json:"eventType"`
}
