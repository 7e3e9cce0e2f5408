// Package article provides use cases for publishing and reading articles:
// feed pages, ranked pages, creation with tag and image bookkeeping, and the
// deletion cascade.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrNotArticleAuthor indicates that the acting user does not own the
	// article. Only the author may modify or delete an article.
	ErrNotArticleAuthor = errors.New("not the article author")

	// ErrInvalidTimeSpan indicates an unrecognized ranked-feed window.
	// Valid values are week, month, year, and infinity.
	ErrInvalidTimeSpan = errors.New("invalid time span")

	// ErrFollowedFilterRequiresAuth indicates the followedTarget feed filter
	// was used without an authenticated viewer.
	ErrFollowedFilterRequiresAuth = errors.New("followed filter requires authentication")
)
