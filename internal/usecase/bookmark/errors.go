// Package bookmark provides the saved-article use cases. Bookmarks carry a
// title and tag snapshot taken at save time so listing and searching them
// never touches the articles table.
package bookmark

import "errors"

// ErrArticleNotFound indicates the bookmarked article does not exist.
var ErrArticleNotFound = errors.New("article not found")
