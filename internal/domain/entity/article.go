// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, Comment, and Tag, along
// with their validation rules and domain-specific errors.
package entity

import "time"

// Article represents a published post in the system.
// LikeCount and CommentCount are denormalized aggregates: they always mirror
// the number of Like and Comment rows referencing this article and are
// maintained inside the same transaction as the relation write.
type Article struct {
	ID           int64
	AuthorID     int64
	Title        string
	Slug         string
	Summary      string
	Body         string
	Tags         []string
	Images       []string
	LikeCount    int64
	CommentCount int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TimeSpan selects the createdAt window for the ranked ("top") feed.
type TimeSpan string

const (
	SpanWeek     TimeSpan = "week"
	SpanMonth    TimeSpan = "month"
	SpanYear     TimeSpan = "year"
	SpanInfinity TimeSpan = "infinity"
)

// WindowStart returns the lower createdAt bound for the span relative to now.
// The zero time is returned for SpanInfinity, meaning no bound.
func (s TimeSpan) WindowStart(now time.Time) time.Time {
	switch s {
	case SpanWeek:
		return now.AddDate(0, 0, -7)
	case SpanMonth:
		return now.AddDate(0, -1, 0)
	case SpanYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// Valid reports whether the span is one of the accepted values.
func (s TimeSpan) Valid() bool {
	switch s {
	case SpanWeek, SpanMonth, SpanYear, SpanInfinity:
		return true
	}
	return false
}
