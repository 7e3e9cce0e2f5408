package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	// Article routes
	{Pattern: regexp.MustCompile(`^/articles/top/[^/]+$`), Template: "/articles/top/:timeSpan"},
	{Pattern: regexp.MustCompile(`^/articles/\d+/comments$`), Template: "/articles/:id/comments"},
	{Pattern: regexp.MustCompile(`^/articles/\d+/save$`), Template: "/articles/:id/save"},
	{Pattern: regexp.MustCompile(`^/articles/\d+/unsave$`), Template: "/articles/:id/unsave"},
	{Pattern: regexp.MustCompile(`^/articles/\d+$`), Template: "/articles/:id"},
	{Pattern: regexp.MustCompile(`^/articles/[^/]+$`), Template: "/articles/:slug"},

	// Interaction routes
	{Pattern: regexp.MustCompile(`^/interact/like/[^/]+/\d+$`), Template: "/interact/like/:targetType/:id"},
	{Pattern: regexp.MustCompile(`^/interact/unlike/[^/]+/\d+$`), Template: "/interact/unlike/:targetType/:id"},

	// Comment routes
	{Pattern: regexp.MustCompile(`^/comments/\d+$`), Template: "/comments/:id"},

	// User routes
	{Pattern: regexp.MustCompile(`^/users/\d+/follow$`), Template: "/users/:id/follow"},
	{Pattern: regexp.MustCompile(`^/users/\d+/unfollow$`), Template: "/users/:id/unfollow"},
	{Pattern: regexp.MustCompile(`^/users/[^/]+$`), Template: "/users/:username"},

	// Tag routes
	{Pattern: regexp.MustCompile(`^/tags/[^/]+/follow$`), Template: "/tags/:name/follow"},
	{Pattern: regexp.MustCompile(`^/tags/[^/]+/unfollow$`), Template: "/tags/:name/unfollow"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. It converts paths with IDs or names (e.g.
// /articles/123) to template format (e.g. /articles/:id). Static paths like
// /health or /bookmarks pass through unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
