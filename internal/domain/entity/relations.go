package entity

import "time"

// LikeTarget names the kind of entity a like points at.
type LikeTarget string

const (
	TargetArticle LikeTarget = "article"
	TargetComment LikeTarget = "comment"
)

// Valid reports whether the target is one of the accepted values.
func (t LikeTarget) Valid() bool {
	return t == TargetArticle || t == TargetComment
}

// Like records that a user liked an article or a comment.
// At most one like exists per (UserID, TargetID, TargetType); the database
// enforces this with a unique constraint, and a conflicting insert is treated
// as "already liked".
type Like struct {
	ID         int64
	UserID     int64
	TargetID   int64
	TargetType LikeTarget
	CreatedAt  time.Time
}

// Follower is a directed edge in the follow graph: FollowerID follows UserID.
// At most one edge exists per ordered pair.
type Follower struct {
	ID         int64
	UserID     int64
	FollowerID int64
	CreatedAt  time.Time
}

// SavedArticle is a bookmark. ArticleTitle and Tags are snapshots taken at
// save time so bookmark search and filtering never join against articles.
type SavedArticle struct {
	ID           int64
	UserID       int64
	ArticleID    int64
	ArticleTitle string
	Tags         []string
	CreatedAt    time.Time
}

// TempImage tracks an uploaded image that has not yet been attached to an
// article or comment. Rows older than the retention window are reclaimed by
// the cleanup worker together with their files.
type TempImage struct {
	ID        int64
	UserID    int64
	ImagePath string
	CreatedAt time.Time
}
