package model

// User is an account in the platform. The password hash never leaves
// the server.
type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email,omitempty"`
	FavoriteGenre string `json:"favoriteGenre,omitempty"`
	PasswordHash  string `json:"-"`
}

// UserProfile is the profile view: account fields plus derived stats.
type UserProfile struct {
	ID            int64   `json:"id"`
	Username      string  `json:"username"`
	Email         string  `json:"email,omitempty"`
	FavoriteGenre string  `json:"favoriteGenre,omitempty"`
	TotalRatings  int64   `json:"totalRatings"`
	AverageScore  float64 `json:"averageScore"`
}

// ProfileUpdate carries the profile fields a user may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Email         *string `json:"email"`
	FavoriteGenre *string `json:"favoriteGenre"`
}
