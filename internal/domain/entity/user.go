package entity

import "time"

// User represents a registered account.
// TotalFollowers, TotalFollowing, and TotalArticles are denormalized counters
// kept in sync with the followers table and the user's articles.
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	Bio            string
	ProfilePicPath string
	TotalFollowers int64
	TotalFollowing int64
	TotalArticles  int64
	CreatedAt      time.Time
}
